package handler

import (
	"hr-timesheet-backend/internal/apperror"
	"hr-timesheet-backend/internal/repository"
	"hr-timesheet-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type EmployeeHandler struct {
	repo    repository.EmployeeRepository
	usecase *usecase.EmployeeUsecase
}

func NewEmployeeHandler(repo repository.EmployeeRepository, u *usecase.EmployeeUsecase) *EmployeeHandler {
	return &EmployeeHandler{repo: repo, usecase: u}
}

func (h *EmployeeHandler) GetAll(c *fiber.Ctx) error {
	deptID, err := queryUintPtr(c, "departmentId")
	if err != nil {
		return err
	}
	employees, err := h.repo.GetAll(c.Query("search"), deptID)
	if err != nil {
		return apperror.Internal("Không tải được danh sách nhân viên", err)
	}
	return c.JSON(fiber.Map{"data": employees})
}

func (h *EmployeeHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	employee, err := h.repo.GetByID(id)
	if err != nil {
		return apperror.FromDB(err, "Nhân viên không tồn tại")
	}
	return c.JSON(fiber.Map{"data": employee})
}

func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var req usecase.EmployeeRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	employee, err := h.usecase.Create(req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Đã thêm nhân viên", "data": employee})
}

func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req usecase.EmployeeRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	employee, err := h.usecase.Update(id, req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Đã cập nhật nhân viên", "data": employee})
}

func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.usecase.Delete(id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Đã xóa nhân viên cùng dữ liệu chấm công và đánh giá"})
}
