package middleware

import (
	"strings"

	"hr-timesheet-backend/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const actorKey = "actor"

// Auth validates the bearer token and stores the caller as *model.Actor.
func Auth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Read the Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Chưa đăng nhập"})
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		// 2. Parse and validate the token
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.ErrUnauthorized
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Phiên đăng nhập không hợp lệ hoặc đã hết hạn"})
		}

		// 3. Rebuild the caller from the claims
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Phiên đăng nhập không hợp lệ"})
		}
		actor := actorFromClaims(claims)
		if !actor.Role.Valid() {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Vai trò không hợp lệ"})
		}
		c.Locals(actorKey, actor)

		return c.Next()
	}
}

func actorFromClaims(claims jwt.MapClaims) *model.Actor {
	actor := &model.Actor{}
	if v, ok := claims["user_id"].(float64); ok {
		actor.UserID = uint(v)
	}
	actor.Username, _ = claims["username"].(string)
	if role, ok := claims["role"].(string); ok {
		actor.Role = model.Role(role)
	}
	if ids, ok := claims["managed_dept_ids"].([]interface{}); ok {
		for _, raw := range ids {
			if v, ok := raw.(float64); ok && v > 0 {
				actor.ManagedDeptIDs = append(actor.ManagedDeptIDs, uint(v))
			}
		}
	}
	return actor
}

// CurrentActor returns the caller Auth stored, or nil on public routes.
func CurrentActor(c *fiber.Ctx) *model.Actor {
	actor, _ := c.Locals(actorKey).(*model.Actor)
	return actor
}
