// Package http holds the public auth endpoint and the error mapping every
// Fiber route shares.
package http

import (
	"errors"
	"log"

	"hr-timesheet-backend/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler turns errors returned by handlers into {"error": msg}.
// Internal causes are logged and never sent to the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		if appErr.Kind == apperror.KindInternal {
			log.Printf("[ERROR] %s %s request_id=%v: %v", c.Method(), c.Path(), c.Locals("request_id"), appErr)
		}
		return c.Status(appErr.Status()).JSON(fiber.Map{"error": appErr.Message})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	log.Printf("[ERROR] %s %s request_id=%v: %v", c.Method(), c.Path(), c.Locals("request_id"), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Lỗi hệ thống, vui lòng thử lại"})
}
