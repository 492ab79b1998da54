package model

import (
	"time"
)

type Report struct {
	Id             uint      `gorm:"primaryKey;autoIncrement"`
	UserId         *uint     `gorm:"index"`
	ChatSessionId  *uint     `gorm:"index"`
	PsychologistId *uint     `gorm:"index"`
	Summary        string    `gorm:"type:text;not null"`
	RiskScore      int       `gorm:"not null;default:0"`
	Urgency        string    `gorm:"type:varchar(20)"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (Report) TableName() string {
	return "reports"
}
