package model

import (
	"time"
)

type ChatSession struct {
	Id        uint       `gorm:"primaryKey;autoIncrement"`
	UserId    *uint      `gorm:"index"`
	Status    string     `gorm:"type:varchar(20);not null;default:'active'"`
	StartedAt time.Time  `gorm:"autoCreateTime"`
	EndedAt   *time.Time
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
