package repository

import (
	"hr-timesheet-backend/internal/model"

	"gorm.io/gorm"
)

type FactoryRepository interface {
	GetAll() ([]model.Factory, error)
	GetByID(id uint) (*model.Factory, error)
	Create(factory *model.Factory) error
	Update(factory *model.Factory) error
	Delete(id uint) error
	CountDepartments(factoryID uint) (int64, error)
	CountKips(factoryID uint) (int64, error)
	CountLockRules(factoryID uint) (int64, error)
}

type factoryRepository struct {
	db *gorm.DB
}

func NewFactoryRepository(db *gorm.DB) FactoryRepository {
	return &factoryRepository{db}
}

func (r *factoryRepository) GetAll() ([]model.Factory, error) {
	var factories []model.Factory
	err := r.db.Order("id asc").Find(&factories).Error
	return factories, err
}

func (r *factoryRepository) GetByID(id uint) (*model.Factory, error) {
	var factory model.Factory
	err := r.db.First(&factory, id).Error
	return &factory, err
}

func (r *factoryRepository) Create(factory *model.Factory) error {
	return r.db.Create(factory).Error
}

func (r *factoryRepository) Update(factory *model.Factory) error {
	return r.db.Save(factory).Error
}

func (r *factoryRepository) Delete(id uint) error {
	return r.db.Delete(&model.Factory{}, id).Error
}

func (r *factoryRepository) CountDepartments(factoryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Department{}).Where("factory_id = ?", factoryID).Count(&count).Error
	return count, err
}

func (r *factoryRepository) CountKips(factoryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Kip{}).Where("factory_id = ?", factoryID).Count(&count).Error
	return count, err
}

func (r *factoryRepository) CountLockRules(factoryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.LockRule{}).Where("factory_id = ?", factoryID).Count(&count).Error
	return count, err
}

type DepartmentRepository interface {
	GetAll(factoryID *uint) ([]model.Department, error)
	GetByID(id uint) (*model.Department, error)
	GetByIDs(ids []uint) ([]model.Department, error)
	Create(dept *model.Department) error
	Update(dept *model.Department) error
	Delete(id uint) error
	CountEmployees(deptID uint) (int64, error)
	// CountManagers counts the user accounts that manage the department.
	CountManagers(deptID uint) (int64, error)
}

type departmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db}
}

func (r *departmentRepository) GetAll(factoryID *uint) ([]model.Department, error) {
	var depts []model.Department
	query := r.db.Preload("Factory").Order("factory_id asc").Order("code asc")
	if factoryID != nil {
		query = query.Where("factory_id = ?", *factoryID)
	}
	err := query.Find(&depts).Error
	return depts, err
}

func (r *departmentRepository) GetByID(id uint) (*model.Department, error) {
	var dept model.Department
	err := r.db.Preload("Factory").First(&dept, id).Error
	return &dept, err
}

func (r *departmentRepository) GetByIDs(ids []uint) ([]model.Department, error) {
	var depts []model.Department
	if len(ids) == 0 {
		return depts, nil
	}
	err := r.db.Where("id IN ?", ids).Order("id asc").Find(&depts).Error
	return depts, err
}

func (r *departmentRepository) Create(dept *model.Department) error {
	return r.db.Create(dept).Error
}

func (r *departmentRepository) Update(dept *model.Department) error {
	return r.db.Omit("Factory").Save(dept).Error
}

func (r *departmentRepository) Delete(id uint) error {
	return r.db.Delete(&model.Department{}, id).Error
}

func (r *departmentRepository) CountEmployees(deptID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Employee{}).Where("department_id = ?", deptID).Count(&count).Error
	return count, err
}

func (r *departmentRepository) CountManagers(deptID uint) (int64, error) {
	var count int64
	err := r.db.Table("user_managed_departments").Where("department_id = ?", deptID).Count(&count).Error
	return count, err
}

type KipRepository interface {
	GetAll(factoryID *uint) ([]model.Kip, error)
	GetByID(id uint) (*model.Kip, error)
	Create(kip *model.Kip) error
	Update(kip *model.Kip) error
	Delete(id uint) error
	CountEmployees(kipID uint) (int64, error)
}

type kipRepository struct {
	db *gorm.DB
}

func NewKipRepository(db *gorm.DB) KipRepository {
	return &kipRepository{db}
}

func (r *kipRepository) GetAll(factoryID *uint) ([]model.Kip, error) {
	var kips []model.Kip
	query := r.db.Preload("Factory").Order("factory_id asc").Order("name asc")
	if factoryID != nil {
		query = query.Where("factory_id = ?", *factoryID)
	}
	err := query.Find(&kips).Error
	return kips, err
}

func (r *kipRepository) GetByID(id uint) (*model.Kip, error) {
	var kip model.Kip
	err := r.db.Preload("Factory").First(&kip, id).Error
	return &kip, err
}

func (r *kipRepository) Create(kip *model.Kip) error {
	return r.db.Create(kip).Error
}

func (r *kipRepository) Update(kip *model.Kip) error {
	return r.db.Omit("Factory").Save(kip).Error
}

func (r *kipRepository) Delete(id uint) error {
	return r.db.Delete(&model.Kip{}, id).Error
}

func (r *kipRepository) CountEmployees(kipID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Employee{}).Where("kip_id = ?", kipID).Count(&count).Error
	return count, err
}
