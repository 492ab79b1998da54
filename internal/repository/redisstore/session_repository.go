package redisstore

import (
	"context"
	"encoding/json"
	"time"

	"medisos-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "medisos:session:"

type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *SessionRepository) Save(ctx context.Context, session *store.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, keyPrefix+session.Token, raw, r.ttl).Err()
}

func (r *SessionRepository) Get(ctx context.Context, token string) (*store.Session, bool) {
	raw, err := r.client.Get(ctx, keyPrefix+token).Bytes()
	if err != nil {
		return nil, false
	}
	var session store.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, false
	}
	return &session, true
}

func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, keyPrefix+token).Err()
}
