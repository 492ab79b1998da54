package model

import (
	"time"
)

type ChatMessage struct {
	Id            uint      `gorm:"primaryKey;autoIncrement"`
	ChatSessionId uint      `gorm:"not null;index"`
	Sender        string    `gorm:"type:varchar(20);not null"`
	Text          string    `gorm:"type:text;not null"`
	RiskScore     *int      `gorm:""`
	Emotion       *string   `gorm:"type:varchar(50)"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
