// file: internals/helpers/locals.go
package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetUserUUID membaca user_id dari Locals (diisi AuthMiddleware) sebagai uuid.UUID.
func GetUserUUID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid user ID")
	}
	return id, nil
}

func GetUserName(c *fiber.Ctx) string {
	if name, ok := c.Locals("user_name").(string); ok {
		return name
	}
	return ""
}

// GetUserCollege membaca asal kampus requester; dipakai privacy scoping resource.
func GetUserCollege(c *fiber.Ctx) string {
	if college, ok := c.Locals("college").(string); ok {
		return college
	}
	return ""
}

func IsAdmin(c *fiber.Ctx) bool {
	role, _ := c.Locals("userRole").(string)
	return role == "admin"
}
