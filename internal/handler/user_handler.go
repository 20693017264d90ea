package handler

import (
	"hr-timesheet-backend/internal/middleware"
	"hr-timesheet-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

// UserHandler manages accounts; login lives in delivery/http.
type UserHandler struct {
	usecase *usecase.UserUsecase
}

func NewUserHandler(u *usecase.UserUsecase) *UserHandler {
	return &UserHandler{usecase: u}
}

func (h *UserHandler) GetAll(c *fiber.Ctx) error {
	users, err := h.usecase.GetAll()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": users})
}

func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	user, err := h.usecase.GetByID(id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": user})
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req usecase.UserRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	user, err := h.usecase.Create(req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Đã tạo tài khoản", "data": user})
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req usecase.UserRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	user, err := h.usecase.Update(id, req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Đã cập nhật tài khoản", "data": user})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.usecase.Delete(middleware.CurrentActor(c), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Đã xóa tài khoản"})
}
