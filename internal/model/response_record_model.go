package model

import (
	"time"
)

// ResponseRecord is append-only. UserEmail is deliberately not a foreign
// key; rows survive account deletion and anonymous relay turns.
type ResponseRecord struct {
	Id           uint      `gorm:"primaryKey;autoIncrement"`
	UserEmail    string    `gorm:"type:varchar(150);not null;index"`
	QuestionId   *int      `gorm:""`
	QuestionText string    `gorm:"type:text;not null"`
	Response     string    `gorm:"type:text;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (ResponseRecord) TableName() string {
	return "user_responses"
}
