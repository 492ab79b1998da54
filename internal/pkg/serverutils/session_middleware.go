package serverutils

import (
	"medisos-be/internal/repository/specification"
	"medisos-be/internal/repository/unitofwork"
	"medisos-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const sessionLocalKey = "session"

// NewSessionMiddleware resolves the request identity once, at request entry,
// and stashes the explicit session object in Locals. Cookie sessions win;
// a bearer token is accepted as a fallback for API clients. The middleware
// never rejects; gating is done by RequireSession on the routes that need it.
func NewSessionMiddleware(sessions store.SessionStore, uowFactory unitofwork.RepositoryFactory, cookieName, jwtSecret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if token := ctx.Cookies(cookieName); token != "" {
			if session, found := sessions.Get(ctx.Context(), token); found {
				ctx.Locals(sessionLocalKey, session)
				return ctx.Next()
			}
		}

		authHeader := ctx.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			if session := sessionFromBearer(ctx, authHeader[7:], uowFactory, jwtSecret); session != nil {
				ctx.Locals(sessionLocalKey, session)
			}
		}

		return ctx.Next()
	}
}

func sessionFromBearer(ctx *fiber.Ctx, tokenStr string, uowFactory unitofwork.RepositoryFactory, jwtSecret string) *store.Session {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	userId, ok := claims["user_id"].(float64)
	if !ok {
		return nil
	}

	uow := uowFactory.NewUnitOfWork(ctx.Context())
	user, err := uow.UserRepository().FindOne(ctx.Context(), specification.ByID{ID: uint(userId)})
	if err != nil || user == nil {
		return nil
	}

	return &store.Session{
		UserEmail: user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

// SessionFromCtx returns the session resolved by NewSessionMiddleware, or
// nil for anonymous requests.
func SessionFromCtx(ctx *fiber.Ctx) *store.Session {
	if session, ok := ctx.Locals(sessionLocalKey).(*store.Session); ok {
		return session
	}
	return nil
}

// RequireSession gates API routes: anonymous requests get a 401 envelope.
func RequireSession(ctx *fiber.Ctx) error {
	if SessionFromCtx(ctx) == nil {
		return Error(ctx, fiber.StatusUnauthorized, "User not logged in")
	}
	return ctx.Next()
}

// RequireSessionOrRedirect gates browser pages: anonymous requests are sent
// to the login page instead of receiving a JSON error.
func RequireSessionOrRedirect(ctx *fiber.Ctx) error {
	if SessionFromCtx(ctx) == nil {
		return ctx.Redirect("/login", fiber.StatusFound)
	}
	return ctx.Next()
}
