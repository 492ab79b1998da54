package specification

import (
	"gorm.io/gorm"
)

type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

type ByChatSessionId struct {
	SessionId uint
}

func (s ByChatSessionId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id = ?", s.SessionId)
}

type ByUserId struct {
	UserId uint
}

func (s ByUserId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserId)
}

// ByAnonymousUser matches rows that belong to no registered user.
type ByAnonymousUser struct{}

func (s ByAnonymousUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id IS NULL")
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}
