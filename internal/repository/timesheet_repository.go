package repository

import (
	"time"

	"hr-timesheet-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TimesheetRepository interface {
	WithTx(tx *gorm.DB) TimesheetRepository
	Upsert(ts *model.Timesheet) error
	DeleteByEmployeeAndDate(employeeID uint, date string) error
	GetByEmployeesAndDate(employeeIDs []uint, date string) ([]model.Timesheet, error)
	GetByEmployeesAndRange(employeeIDs []uint, from, to string) ([]model.Timesheet, error)
	CountByAttendanceCode(codeID uint) (int64, error)
}

type timesheetRepository struct {
	db *gorm.DB
}

func NewTimesheetRepository(db *gorm.DB) TimesheetRepository {
	return &timesheetRepository{db}
}

func (r *timesheetRepository) WithTx(tx *gorm.DB) TimesheetRepository {
	return &timesheetRepository{tx}
}

// Upsert keeps one row per (employee, date); the last write wins.
func (r *timesheetRepository) Upsert(ts *model.Timesheet) error {
	ts.UpdatedAt = time.Now()
	return r.db.Omit("AttendanceCode").Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employee_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"attendance_code_id", "note", "updated_at"}),
	}).Create(ts).Error
}

func (r *timesheetRepository) DeleteByEmployeeAndDate(employeeID uint, date string) error {
	return r.db.Where("employee_id = ? AND date = ?", employeeID, date).Delete(&model.Timesheet{}).Error
}

func (r *timesheetRepository) GetByEmployeesAndDate(employeeIDs []uint, date string) ([]model.Timesheet, error) {
	var list []model.Timesheet
	if len(employeeIDs) == 0 {
		return list, nil
	}
	err := r.db.Preload("AttendanceCode").
		Where("employee_id IN ? AND date = ?", employeeIDs, date).
		Find(&list).Error
	return list, err
}

func (r *timesheetRepository) GetByEmployeesAndRange(employeeIDs []uint, from, to string) ([]model.Timesheet, error) {
	var list []model.Timesheet
	if len(employeeIDs) == 0 {
		return list, nil
	}
	err := r.db.Preload("AttendanceCode").
		Where("employee_id IN ? AND date BETWEEN ? AND ?", employeeIDs, from, to).
		Order("employee_id asc").Order("date asc").
		Find(&list).Error
	return list, err
}

func (r *timesheetRepository) CountByAttendanceCode(codeID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Timesheet{}).Where("attendance_code_id = ?", codeID).Count(&count).Error
	return count, err
}
