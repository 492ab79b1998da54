package entity

import (
	"time"
)

type ReportUrgency string

const (
	UrgencyHigh     ReportUrgency = "high"
	UrgencyModerate ReportUrgency = "moderate"
	UrgencyNormal   ReportUrgency = "normal"
)

type Report struct {
	Id             uint
	UserId         *uint
	ChatSessionId  *uint
	PsychologistId *uint
	Summary        string
	RiskScore      int
	Urgency        ReportUrgency
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Psychologist struct {
	Id        uint
	Name      string
	Email     string
	Phone     *string
	Notes     *string
	CreatedAt time.Time
}
