package repository

import (
	"strings"

	"hr-timesheet-backend/internal/model"

	"gorm.io/gorm"
)

// Scope restricts a report to a set of departments, or failing that to a
// set of kips. DepartmentIDs wins when both are given; an empty Scope
// matches nobody.
type Scope struct {
	DepartmentIDs []uint
	KipIDs        []uint
}

func (s Scope) Empty() bool {
	return len(s.DepartmentIDs) == 0 && len(s.KipIDs) == 0
}

type EmployeeRepository interface {
	GetAll(search string, departmentID *uint) ([]model.Employee, error)
	GetByID(id uint) (*model.Employee, error)
	GetByIDs(ids []uint) ([]model.Employee, error)
	FindByScope(scope Scope) ([]model.Employee, error)
	Create(employee *model.Employee) error
	Update(employee *model.Employee) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) EmployeeRepository
}

type employeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db}
}

func (r *employeeRepository) WithTx(tx *gorm.DB) EmployeeRepository {
	return &employeeRepository{tx}
}

func (r *employeeRepository) GetAll(search string, departmentID *uint) ([]model.Employee, error) {
	var employees []model.Employee
	query := r.db.Preload("Department").Preload("Kip")

	if departmentID != nil {
		query = query.Where("department_id = ?", *departmentID)
	}
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + search + "%"
		query = query.Where("full_name LIKE ? OR code LIKE ?", like, like)
	}

	err := query.Order("code asc").Find(&employees).Error
	return employees, err
}

func (r *employeeRepository) GetByID(id uint) (*model.Employee, error) {
	var employee model.Employee
	err := r.db.Preload("Department").Preload("Kip").First(&employee, id).Error
	return &employee, err
}

func (r *employeeRepository) GetByIDs(ids []uint) ([]model.Employee, error) {
	var employees []model.Employee
	if len(ids) == 0 {
		return employees, nil
	}
	err := r.db.Preload("Department").Where("id IN ?", ids).Find(&employees).Error
	return employees, err
}

// FindByScope lists employees in report order: kip name, department name,
// then employee name.
func (r *employeeRepository) FindByScope(scope Scope) ([]model.Employee, error) {
	employees := []model.Employee{}
	if scope.Empty() {
		return employees, nil
	}

	query := r.db.Model(&model.Employee{}).
		Select("employees.*").
		Joins("LEFT JOIN kips ON kips.id = employees.kip_id").
		Joins("LEFT JOIN departments ON departments.id = employees.department_id").
		Preload("Department").
		Preload("Kip")

	if len(scope.DepartmentIDs) > 0 {
		query = query.Where("employees.department_id IN ?", scope.DepartmentIDs)
	} else {
		query = query.Where("employees.kip_id IN ?", scope.KipIDs)
	}

	err := query.
		Order("COALESCE(kips.name, '') ASC").
		Order("departments.name ASC").
		Order("employees.full_name ASC").
		Order("employees.id ASC").
		Find(&employees).Error
	return employees, err
}

func (r *employeeRepository) Create(employee *model.Employee) error {
	return r.db.Omit("Department", "Kip").Create(employee).Error
}

func (r *employeeRepository) Update(employee *model.Employee) error {
	return r.db.Omit("Department", "Kip").Save(employee).Error
}

// Delete removes the employee together with its timesheets and evaluations.
func (r *employeeRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", id).Delete(&model.Timesheet{}).Error; err != nil {
			return err
		}
		if err := tx.Where("employee_id = ?", id).Delete(&model.MonthlyEvaluation{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Employee{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
