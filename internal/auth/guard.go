// Package auth guards the admin routes with a single shared secret sent in
// the x-admin-password header. There are no users, sessions or roles.
package auth

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fekuna/catalog-service/pkg/logger"
)

const HeaderAdminPassword = "x-admin-password"

// AdminGuard rejects every request with 503 when secret is empty, and with
// 401 unless the header matches secret exactly.
func AdminGuard(secret string, log logger.ZapLogger) fiber.Handler {
	want := []byte(secret)
	return func(c *fiber.Ctx) error {
		if len(want) == 0 {
			log.Warn("admin request rejected: no admin password configured", zap.String("path", c.Path()))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Server not configured"})
		}

		got := []byte(c.Get(HeaderAdminPassword))
		if !Matches(got, want) {
			log.Warn("admin request rejected", zap.String("path", c.Path()), zap.String("ip", c.IP()))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}
		return c.Next()
	}
}

// Matches compares in constant time with respect to the content of got.
func Matches(got, want []byte) bool {
	if len(got) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(got, want) == 1
}
