package handler

import (
	"hr-timesheet-backend/internal/apperror"
	"hr-timesheet-backend/internal/repository"
	"hr-timesheet-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type OrganizationHandler struct {
	factoryRepo repository.FactoryRepository
	deptRepo    repository.DepartmentRepository
	kipRepo     repository.KipRepository
	masterData  *usecase.MasterDataUsecase
	loader      *usecase.CatalogLoader
}

func NewOrganizationHandler(
	factoryRepo repository.FactoryRepository,
	deptRepo repository.DepartmentRepository,
	kipRepo repository.KipRepository,
	masterData *usecase.MasterDataUsecase,
	loader *usecase.CatalogLoader,
) *OrganizationHandler {
	return &OrganizationHandler{
		factoryRepo: factoryRepo,
		deptRepo:    deptRepo,
		kipRepo:     kipRepo,
		masterData:  masterData,
		loader:      loader,
	}
}

// --- Factory ---

func (h *OrganizationHandler) GetFactories(c *fiber.Ctx) error {
	factories, err := h.factoryRepo.GetAll()
	if err != nil {
		return apperror.Internal("Không tải được danh sách nhà máy", err)
	}
	return c.JSON(fiber.Map{"data": factories})
}

func (h *OrganizationHandler) CreateFactory(c *fiber.Ctx) error {
	var req usecase.FactoryRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	factory, err := h.masterData.CreateFactory(req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Đã thêm nhà máy", "data": factory})
}

func (h *OrganizationHandler) DeleteFactory(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.masterData.DeleteFactory(id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Đã xóa nhà máy"})
}

// --- Department ---

func (h *OrganizationHandler) GetDepartments(c *fiber.Ctx) error {
	factoryID, err := queryUintPtr(c, "factoryId")
	if err != nil {
		return err
	}
	depts, err := h.deptRepo.GetAll(factoryID)
	if err != nil {
		return apperror.Internal("Không tải được danh sách bộ phận", err)
	}
	return c.JSON(fiber.Map{"data": depts})
}

// GetDepartmentOptions returns the section/department dropdown of a factory.
func (h *OrganizationHandler) GetDepartmentOptions(c *fiber.Ctx) error {
	factoryID, err := queryUintPtr(c, "factoryId")
	if err != nil {
		return err
	}
	if factoryID == nil {
		return apperror.Validation("Thiếu tham số factoryId")
	}
	options, err := h.loader.Options(*factoryID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": options})
}

func (h *OrganizationHandler) CreateDepartment(c *fiber.Ctx) error {
	var req usecase.DepartmentRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	dept, err := h.masterData.CreateDepartment(req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Đã thêm bộ phận", "data": dept})
}

func (h *OrganizationHandler) UpdateDepartment(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req usecase.DepartmentRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	dept, err := h.masterData.UpdateDepartment(id, req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Đã cập nhật bộ phận", "data": dept})
}

func (h *OrganizationHandler) DeleteDepartment(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.masterData.DeleteDepartment(id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Đã xóa bộ phận"})
}

// --- Kip ---

func (h *OrganizationHandler) GetKips(c *fiber.Ctx) error {
	factoryID, err := queryUintPtr(c, "factoryId")
	if err != nil {
		return err
	}
	kips, err := h.kipRepo.GetAll(factoryID)
	if err != nil {
		return apperror.Internal("Không tải được danh sách kíp", err)
	}
	return c.JSON(fiber.Map{"data": kips})
}

func (h *OrganizationHandler) CreateKip(c *fiber.Ctx) error {
	var req usecase.KipRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	kip, err := h.masterData.CreateKip(req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Đã thêm kíp", "data": kip})
}

func (h *OrganizationHandler) DeleteKip(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.masterData.DeleteKip(id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Đã xóa kíp"})
}
