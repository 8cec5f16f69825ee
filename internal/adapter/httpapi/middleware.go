package httpapi

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/apetrov/vendomat-backend/internal/domain"
	"github.com/apetrov/vendomat-backend/internal/usecase/admin"
)

const sessionKey = "admin_session"

// AdminProtected authenticates the X-Admin-Pin header against the admin
// service and stores the resulting session in the request context.
func AdminProtected(adminService *admin.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pin := c.Get("X-Admin-Pin")
		if pin == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Missing admin PIN"})
		}

		session, err := adminService.Authenticate(pin)
		if err != nil {
			if errors.Is(err, domain.ErrAccessDenied) {
				return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid admin PIN"})
			}
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Authentication failed"})
		}

		c.Locals(sessionKey, session)
		return c.Next()
	}
}

// sessionFromCtx returns the admin session stored by AdminProtected.
func sessionFromCtx(c *fiber.Ctx) *admin.Session {
	session, _ := c.Locals(sessionKey).(*admin.Session)
	return session
}
