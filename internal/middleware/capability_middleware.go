package middleware

import (
	"hr-timesheet-backend/internal/model"

	"github.com/gofiber/fiber/v2"
)

// Require lets the request through only when the caller's role grants capability.
// Must run after Auth.
func Require(capability model.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := CurrentActor(c)
		if actor == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Chưa đăng nhập"})
		}
		if !actor.Can(capability) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Bạn không có quyền thực hiện thao tác này (" + string(capability) + ")"})
		}
		return c.Next()
	}
}
