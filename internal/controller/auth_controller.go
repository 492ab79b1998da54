package controller

import (
	"errors"
	"net/url"
	"time"

	"medisos-be/internal/dto"
	"medisos-be/internal/pkg/serverutils"
	"medisos-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
}

type authController struct {
	service    service.IAuthService
	cookieName string
	cookieTTL  time.Duration
}

func NewAuthController(service service.IAuthService, cookieName string, cookieTTL time.Duration) IAuthController {
	return &authController{
		service:    service,
		cookieName: cookieName,
		cookieTTL:  cookieTTL,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	r.Post("/register", c.Register)
	r.Post("/login_process", c.Login)
	r.Post("/logout", c.Logout)
	r.Get("/me", serverutils.RequireSession, c.Me)
}

// Register handles the registration form. Success lands the browser on the
// dashboard with a fresh session; a duplicate email is sent to the login page.
func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed form data")
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return c.redirectWithError(ctx, "/register", err.Error())
	}

	session, err := c.service.Register(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return c.redirectWithError(ctx, "/login", "Email already registered. Please log in.")
		}
		return c.redirectWithError(ctx, "/register", err.Error())
	}

	c.setSessionCookie(ctx, session.Token)
	return ctx.Redirect("/dashboard", fiber.StatusFound)
}

// Login handles the login form. Bad credentials bounce back to the login page
// with the same message for unknown emails and wrong passwords.
func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed form data")
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return c.redirectWithError(ctx, "/login", err.Error())
	}

	session, tokens, err := c.service.Login(ctx.Context(), &req, ctx.IP(), ctx.Get("User-Agent"))
	if err != nil {
		return c.redirectWithError(ctx, "/login", "Invalid credentials")
	}

	c.setSessionCookie(ctx, session.Token)

	// API clients get the JWT pair instead of a redirect.
	if ctx.Accepts("text/html", "application/json") == "application/json" {
		return serverutils.Success(ctx, fiber.StatusOK, "Login successful", tokens)
	}
	return ctx.Redirect("/dashboard", fiber.StatusFound)
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	token := ctx.Cookies(c.cookieName)
	if err := c.service.Logout(ctx.Context(), token); err != nil {
		return err
	}
	ctx.Cookie(&fiber.Cookie{
		Name:     c.cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return ctx.Redirect("/login", fiber.StatusFound)
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	session := serverutils.SessionFromCtx(ctx)
	me, err := c.service.Me(ctx.Context(), session.UserEmail)
	if err != nil {
		return err
	}
	return serverutils.Success(ctx, fiber.StatusOK, "", me)
}

func (c *authController) setSessionCookie(ctx *fiber.Ctx, token string) {
	ctx.Cookie(&fiber.Cookie{
		Name:     c.cookieName,
		Value:    token,
		Expires:  time.Now().Add(c.cookieTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// redirectWithError bounces the browser back to a page; the page script
// surfaces the message as a client-side alert.
func (c *authController) redirectWithError(ctx *fiber.Ctx, page, message string) error {
	return ctx.Redirect(page+"?error="+url.QueryEscape(message), fiber.StatusFound)
}
