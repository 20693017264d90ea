package handler

import (
	"hr-timesheet-backend/internal/export"
	"hr-timesheet-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	loader *usecase.CatalogLoader
	report *usecase.ReportUsecase
}

func NewReportHandler(loader *usecase.CatalogLoader, report *usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{loader: loader, report: report}
}

func (h *ReportHandler) GetDashboard(c *fiber.Ctx) error {
	factoryID, err := queryUintPtr(c, "factoryId")
	if err != nil {
		return err
	}
	dashboard, err := h.report.Dashboard(c.Query("date"), factoryID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dashboard})
}

// GetBravo returns the payroll rows as JSON, or as an xlsx download with
// format=xlsx.
func (h *ReportHandler) GetBravo(c *fiber.Ctx) error {
	month, year, err := queryPeriod(c)
	if err != nil {
		return err
	}
	scope, err := parseScope(c, h.loader)
	if err != nil {
		return err
	}
	rows, err := h.report.Bravo(scope, month, year)
	if err != nil {
		return err
	}

	if c.Query("format") != "xlsx" {
		return c.JSON(fiber.Map{"data": rows})
	}
	data, err := export.BravoXLSX(rows)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Attachment(export.BravoFilename(month, year))
	return c.Send(data)
}
