package controller

import (
	"path/filepath"

	"medisos-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

// pageController serves the static pages. Only the dashboard is gated; the
// guard redirects anonymous browsers to /login.
type IPageController interface {
	RegisterRoutes(r fiber.Router)
}

type pageController struct {
	staticDir string
}

func NewPageController(staticDir string) IPageController {
	return &pageController{staticDir: staticDir}
}

func (c *pageController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.page("homepage.html"))
	r.Get("/login", c.page("login.html"))
	r.Get("/register", c.page("register.html"))
	r.Get("/dashboard", serverutils.RequireSessionOrRedirect, c.page("dashboard.html"))
}

func (c *pageController) page(name string) fiber.Handler {
	path := filepath.Join(c.staticDir, name)
	return func(ctx *fiber.Ctx) error {
		return ctx.SendFile(path)
	}
}
