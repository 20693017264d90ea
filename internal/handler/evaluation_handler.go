package handler

import (
	"fmt"

	"hr-timesheet-backend/internal/middleware"
	"hr-timesheet-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type EvaluationHandler struct {
	loader  *usecase.CatalogLoader
	usecase *usecase.EvaluationUsecase
}

func NewEvaluationHandler(loader *usecase.CatalogLoader, u *usecase.EvaluationUsecase) *EvaluationHandler {
	return &EvaluationHandler{loader: loader, usecase: u}
}

func (h *EvaluationHandler) GetMonthly(c *fiber.Ctx) error {
	month, year, err := queryPeriod(c)
	if err != nil {
		return err
	}
	scope, err := parseScope(c, h.loader)
	if err != nil {
		return err
	}
	rows, err := h.usecase.Monthly(scope, month, year)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": rows})
}

func (h *EvaluationHandler) SaveBulk(c *fiber.Ctx) error {
	var req usecase.BulkEvaluationRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	n, err := h.usecase.SaveBulk(middleware.CurrentActor(c), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Đã lưu đánh giá tháng %02d/%d cho %d nhân viên", req.Month, req.Year, n),
		"data":    fiber.Map{"saved": n},
	})
}

func (h *EvaluationHandler) GetYearly(c *fiber.Ctx) error {
	year, err := queryInt(c, "year")
	if err != nil {
		return err
	}
	scope, err := parseScope(c, h.loader)
	if err != nil {
		return err
	}
	rows, err := h.usecase.Yearly(scope, year)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": rows})
}
