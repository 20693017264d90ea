package handler

import (
	"hr-timesheet-backend/internal/apperror"
	"hr-timesheet-backend/internal/repository"
	"hr-timesheet-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler serves attendance codes and lock rules.
type CatalogHandler struct {
	codeRepo     repository.AttendanceCodeRepository
	lockRuleRepo repository.LockRuleRepository
	masterData   *usecase.MasterDataUsecase
}

func NewCatalogHandler(codeRepo repository.AttendanceCodeRepository, lockRuleRepo repository.LockRuleRepository, masterData *usecase.MasterDataUsecase) *CatalogHandler {
	return &CatalogHandler{codeRepo: codeRepo, lockRuleRepo: lockRuleRepo, masterData: masterData}
}

func (h *CatalogHandler) GetAttendanceCodes(c *fiber.Ctx) error {
	codes, err := h.codeRepo.GetAll()
	if err != nil {
		return apperror.Internal("Không tải được danh mục ký hiệu", err)
	}
	return c.JSON(fiber.Map{"data": codes})
}

func (h *CatalogHandler) GetAttendanceCode(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	code, err := h.codeRepo.GetByID(id)
	if err != nil {
		return apperror.FromDB(err, "Ký hiệu chấm công không tồn tại")
	}
	return c.JSON(fiber.Map{"data": code})
}

func (h *CatalogHandler) CreateAttendanceCode(c *fiber.Ctx) error {
	var req usecase.AttendanceCodeRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	code, err := h.masterData.CreateAttendanceCode(req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Đã thêm ký hiệu chấm công", "data": code})
}

func (h *CatalogHandler) UpdateAttendanceCode(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req usecase.AttendanceCodeRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	code, err := h.masterData.UpdateAttendanceCode(id, req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Đã cập nhật ký hiệu chấm công", "data": code})
}

func (h *CatalogHandler) DeleteAttendanceCode(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.masterData.DeleteAttendanceCode(id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Đã xóa ký hiệu chấm công"})
}

// --- Lock rules ---

func (h *CatalogHandler) GetLockRules(c *fiber.Ctx) error {
	rules, err := h.lockRuleRepo.GetAll()
	if err != nil {
		return apperror.Internal("Không tải được lịch khóa", err)
	}
	return c.JSON(fiber.Map{"data": rules})
}

func (h *CatalogHandler) CreateLockRule(c *fiber.Ctx) error {
	var req usecase.LockRuleRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	rule, err := h.masterData.CreateLockRule(req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Đã thêm lịch khóa", "data": rule})
}

func (h *CatalogHandler) UpdateLockRule(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req usecase.LockRuleRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	rule, err := h.masterData.UpdateLockRule(id, req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Đã cập nhật lịch khóa", "data": rule})
}

func (h *CatalogHandler) DeleteLockRule(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.masterData.DeleteLockRule(id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Đã xóa lịch khóa"})
}
