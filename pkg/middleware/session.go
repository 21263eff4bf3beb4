package middleware

import (
	"hotel-concierge/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SessionRequired guards browser routes. Requests without a valid session
// cookie are redirected to the login page, never executed.
func SessionRequired(jwtManager *auth.JWTManager, cookieName string, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(cookieName)
		if token == "" {
			return c.Redirect("/login", fiber.StatusFound)
		}

		claims, err := jwtManager.ValidateToken(token)
		if err != nil {
			logger.Warn("Invalid session token", zap.Error(err))
			c.ClearCookie(cookieName)
			return c.Redirect("/login", fiber.StatusFound)
		}

		c.Locals("username", claims.Username)

		return c.Next()
	}
}
