package store

import (
	"context"
	"time"
)

// Session is the server-held state binding a browser to an authenticated
// user. The token travels in an opaque cookie; everything else stays here.
type Session struct {
	Token     string    `json:"token"`
	UserEmail string    `json:"user_email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionStore abstracts the backing store so the in-memory cache and redis
// implementations are interchangeable.
type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, token string) (*Session, bool)
	Delete(ctx context.Context, token string) error
}
