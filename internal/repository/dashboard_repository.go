package repository

import (
	"hr-timesheet-backend/internal/model"

	"gorm.io/gorm"
)

type DepartmentStaffCount struct {
	DepartmentID   uint
	DepartmentCode string
	DepartmentName string
	Total          int64
}

type DepartmentCodeCount struct {
	DepartmentID uint
	Code         string
	Total        int64
}

type DashboardRepository interface {
	StaffByDepartment(factoryID *uint) ([]DepartmentStaffCount, error)
	MarksByDepartment(date string, factoryID *uint) ([]DepartmentCodeCount, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db}
}

// StaffByDepartment counts employees per department, including departments
// with no staff.
func (r *dashboardRepository) StaffByDepartment(factoryID *uint) ([]DepartmentStaffCount, error) {
	var rows []DepartmentStaffCount
	query := r.db.Model(&model.Department{}).
		Select("departments.id AS department_id, departments.code AS department_code, departments.name AS department_name, COUNT(employees.id) AS total").
		Joins("LEFT JOIN employees ON employees.department_id = departments.id").
		Group("departments.id, departments.code, departments.name").
		Order("departments.name asc")
	if factoryID != nil {
		query = query.Where("departments.factory_id = ?", *factoryID)
	}
	err := query.Scan(&rows).Error
	return rows, err
}

// MarksByDepartment counts the day's timesheet rows per department and
// attendance code.
func (r *dashboardRepository) MarksByDepartment(date string, factoryID *uint) ([]DepartmentCodeCount, error) {
	var rows []DepartmentCodeCount
	query := r.db.Model(&model.Timesheet{}).
		Select("employees.department_id AS department_id, attendance_codes.code AS code, COUNT(timesheets.id) AS total").
		Joins("JOIN employees ON employees.id = timesheets.employee_id").
		Joins("JOIN attendance_codes ON attendance_codes.id = timesheets.attendance_code_id").
		Where("timesheets.date = ?", date).
		Group("employees.department_id, attendance_codes.code")
	if factoryID != nil {
		query = query.
			Joins("JOIN departments ON departments.id = employees.department_id").
			Where("departments.factory_id = ?", *factoryID)
	}
	err := query.Scan(&rows).Error
	return rows, err
}
