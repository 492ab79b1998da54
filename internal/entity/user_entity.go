package entity

import (
	"time"
)

type User struct {
	Id             uint
	FirstName      string
	LastName       string
	Email          string
	AgeGroup       string
	PasswordHash   string
	PsychologistId *uint
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type UserRefreshToken struct {
	Id        uint
	UserId    uint
	TokenHash string
	ExpiresAt time.Time
	Revoked   bool
	IpAddress string
	UserAgent string
	CreatedAt time.Time
}
