package handlers

import (
	"errors"
	"time"

	"hotel-concierge/internal/service"
	"hotel-concierge/pkg/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
	session     *config.SessionConfig
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, session *config.SessionConfig, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		session:     session,
		logger:      logger,
	}
}

// Login handles the credential form. On success it sets the session cookie
// and sends the browser to the chat page; on failure it re-renders the login
// page with an error flag.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	token, err := h.authService.Login(c.Context(), username, password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			h.logger.Error("Login failed", zap.Error(err))
		}
		return c.Redirect("/login?error=1", fiber.StatusFound)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.session.CookieName,
		Value:    token,
		Expires:  time.Now().Add(h.session.Expiration),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.Redirect("/", fiber.StatusFound)
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.ClearCookie(h.session.CookieName)
	return c.Redirect("/login", fiber.StatusFound)
}
