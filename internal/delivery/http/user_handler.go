package http

import (
	"hr-timesheet-backend/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	usecase  *usecase.UserUsecase
	validate *validator.Validate
}

func NewUserHandler(u *usecase.UserUsecase) *UserHandler {
	return &UserHandler{usecase: u, validate: validator.New()}
}

func (h *UserHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Dữ liệu không hợp lệ"})
	}
	if err := h.validate.Struct(input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Vui lòng nhập tên đăng nhập và mật khẩu"})
	}

	token, user, err := h.usecase.Login(input.Username, input.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Đăng nhập thành công",
		"token":   token,
		"data":    user,
	})
}
