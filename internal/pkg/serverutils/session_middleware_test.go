package serverutils

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"medisos-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapSessionStore struct {
	sessions map[string]*store.Session
}

func (s *mapSessionStore) Save(_ context.Context, session *store.Session) error {
	s.sessions[session.Token] = session
	return nil
}

func (s *mapSessionStore) Get(_ context.Context, token string) (*store.Session, bool) {
	session, ok := s.sessions[token]
	return session, ok
}

func (s *mapSessionStore) Delete(_ context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

func newTestApp(sessions store.SessionStore) *fiber.App {
	app := fiber.New()
	app.Use(NewSessionMiddleware(sessions, nil, "medisos_session", "test-secret"))
	app.Get("/open", func(ctx *fiber.Ctx) error {
		if s := SessionFromCtx(ctx); s != nil {
			return ctx.SendString(s.UserEmail)
		}
		return ctx.SendString("anonymous")
	})
	app.Get("/private", RequireSession, func(ctx *fiber.Ctx) error {
		return ctx.SendString("ok")
	})
	app.Get("/dashboard", RequireSessionOrRedirect, func(ctx *fiber.Ctx) error {
		return ctx.SendString("dashboard")
	})
	return app
}

func TestCookieSessionResolved(t *testing.T) {
	sessions := &mapSessionStore{sessions: map[string]*store.Session{
		"tok-1": {Token: "tok-1", UserEmail: "a@b.com"},
	}}
	app := newTestApp(sessions)

	req := httptest.NewRequest("GET", "/open", nil)
	req.AddCookie(&http.Cookie{Name: "medisos_session", Value: "tok-1"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "a@b.com", string(body))
}

func TestAnonymousPassesOpenRoutes(t *testing.T) {
	app := newTestApp(&mapSessionStore{sessions: map[string]*store.Session{}})

	resp, err := app.Test(httptest.NewRequest("GET", "/open", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "anonymous", string(body))
}

func TestRequireSessionRejectsAnonymous(t *testing.T) {
	app := newTestApp(&mapSessionStore{sessions: map[string]*store.Session{}})

	resp, err := app.Test(httptest.NewRequest("GET", "/private", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestUnknownCookieTreatedAsAnonymous(t *testing.T) {
	app := newTestApp(&mapSessionStore{sessions: map[string]*store.Session{}})

	req := httptest.NewRequest("GET", "/private", nil)
	req.AddCookie(&http.Cookie{Name: "medisos_session", Value: "stale"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestDashboardRedirectsAnonymousToLogin(t *testing.T) {
	app := newTestApp(&mapSessionStore{sessions: map[string]*store.Session{}})

	resp, err := app.Test(httptest.NewRequest("GET", "/dashboard", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}
