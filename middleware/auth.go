package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"grade-stats/utils"
)

// AuthRequired memvalidasi header "Authorization: Bearer <token>".
// An empty secret disables the check.
func AuthRequired(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if secret == "" {
			return c.Next()
		}

		header := c.Get(fiber.HeaderAuthorization)
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing bearer token"})
		}

		claims, err := utils.ValidateToken(secret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token: " + err.Error()})
		}

		c.Locals("subject", claims.Subject)
		c.Locals("role_name", claims.Role)
		return c.Next()
	}
}
