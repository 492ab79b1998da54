package memory

import (
	"context"
	"testing"
	"time"

	"medisos-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndGet(t *testing.T) {
	repo := NewSessionRepository(time.Hour)
	ctx := context.Background()

	session := &store.Session{Token: "tok-1", UserEmail: "a@b.com", FirstName: "A", LastName: "B"}
	require.NoError(t, repo.Save(ctx, session))

	got, ok := repo.Get(ctx, "tok-1")
	require.True(t, ok)
	assert.Equal(t, "a@b.com", got.UserEmail)

	_, ok = repo.Get(ctx, "unknown")
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	repo := NewSessionRepository(time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &store.Session{Token: "tok-1", UserEmail: "a@b.com"}))
	require.NoError(t, repo.Delete(ctx, "tok-1"))

	_, ok := repo.Get(ctx, "tok-1")
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	repo := NewSessionRepository(20 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &store.Session{Token: "tok-1", UserEmail: "a@b.com"}))
	time.Sleep(40 * time.Millisecond)

	_, ok := repo.Get(ctx, "tok-1")
	assert.False(t, ok)
}
