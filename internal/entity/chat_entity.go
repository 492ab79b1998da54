package entity

import (
	"time"
)

type ChatSessionStatus string

const (
	ChatSessionActive ChatSessionStatus = "active"
	ChatSessionEnded  ChatSessionStatus = "ended"
)

const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

type ChatSession struct {
	Id        uint
	UserId    *uint
	Status    ChatSessionStatus
	StartedAt time.Time
	EndedAt   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ChatMessage struct {
	Id            uint
	ChatSessionId uint
	Sender        string
	Text          string
	RiskScore     *int
	Emotion       *string
	CreatedAt     time.Time
}
