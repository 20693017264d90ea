package handler

import (
	"fmt"

	"hr-timesheet-backend/internal/middleware"
	"hr-timesheet-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type TimesheetHandler struct {
	loader    *usecase.CatalogLoader
	report    *usecase.ReportUsecase
	timesheet *usecase.TimesheetUsecase
	lock      *usecase.LockUsecase
}

func NewTimesheetHandler(loader *usecase.CatalogLoader, report *usecase.ReportUsecase, timesheet *usecase.TimesheetUsecase, lock *usecase.LockUsecase) *TimesheetHandler {
	return &TimesheetHandler{loader: loader, report: report, timesheet: timesheet, lock: lock}
}

// GetDaily: ?date=YYYY-MM-DD plus a scope. No scope gives [].
func (h *TimesheetHandler) GetDaily(c *fiber.Ctx) error {
	scope, err := parseScope(c, h.loader)
	if err != nil {
		return err
	}
	rows, err := h.report.Daily(scope, c.Query("date"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": rows})
}

func (h *TimesheetHandler) SaveDaily(c *fiber.Ctx) error {
	var req usecase.SaveDailyRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	result, err := h.timesheet.SaveDaily(middleware.CurrentActor(c), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Đã lưu chấm công ngày %s cho %d nhân viên", req.Date, result.Saved+result.Cleared),
		"data":    result,
	})
}

func (h *TimesheetHandler) GetMonthly(c *fiber.Ctx) error {
	month, year, err := queryPeriod(c)
	if err != nil {
		return err
	}
	scope, err := parseScope(c, h.loader)
	if err != nil {
		return err
	}
	rows, err := h.report.Monthly(scope, month, year)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": rows})
}

// GetLock returns one department's state, or every lock row of the period
// when departmentId is omitted.
func (h *TimesheetHandler) GetLock(c *fiber.Ctx) error {
	month, year, err := queryPeriod(c)
	if err != nil {
		return err
	}
	deptID, err := queryUintPtr(c, "departmentId")
	if err != nil {
		return err
	}
	if deptID == nil {
		locks, err := h.lock.List(month, year)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"data": locks})
	}
	status, err := h.lock.Get(*deptID, month, year)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": status})
}

func (h *TimesheetHandler) SetLock(c *fiber.Ctx) error {
	var req usecase.SetLockRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	lock, err := h.lock.Set(middleware.CurrentActor(c), req)
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("Đã mở khóa bảng công tháng %02d/%d", req.Month, req.Year)
	if lock.IsLocked {
		msg = fmt.Sprintf("Đã khóa sổ bảng công tháng %02d/%d", req.Month, req.Year)
	}
	return c.JSON(fiber.Map{"message": msg, "data": lock})
}
