package middleware

import (
	"crypto/subtle"

	"github.com/ahmetcoskunkizilkaya/seal-bridge/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// BearerAuth requires "Authorization: Bearer <secret>" to match exactly.
// With an empty secret every request is rejected.
func BearerAuth(secret string) fiber.Handler {
	expected := []byte("Bearer " + secret)

	return func(c *fiber.Ctx) error {
		if secret == "" || subtle.ConstantTimeCompare([]byte(c.Get(fiber.HeaderAuthorization)), expected) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.MessageError{Error: "Unauthorized"})
		}
		return c.Next()
	}
}
