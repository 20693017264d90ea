package repository

import (
	"time"

	"hr-timesheet-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EvaluationRepository interface {
	GetByEmployeesAndPeriod(employeeIDs []uint, month, year int) ([]model.MonthlyEvaluation, error)
	GetByEmployeesAndYear(employeeIDs []uint, year int) ([]model.MonthlyEvaluation, error)
	UpsertBatch(evaluations []model.MonthlyEvaluation) error
}

type evaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db}
}

func (r *evaluationRepository) GetByEmployeesAndPeriod(employeeIDs []uint, month, year int) ([]model.MonthlyEvaluation, error) {
	var list []model.MonthlyEvaluation
	if len(employeeIDs) == 0 {
		return list, nil
	}
	err := r.db.Where("employee_id IN ? AND month = ? AND year = ?", employeeIDs, month, year).Find(&list).Error
	return list, err
}

func (r *evaluationRepository) GetByEmployeesAndYear(employeeIDs []uint, year int) ([]model.MonthlyEvaluation, error) {
	var list []model.MonthlyEvaluation
	if len(employeeIDs) == 0 {
		return list, nil
	}
	err := r.db.Where("employee_id IN ? AND year = ?", employeeIDs, year).
		Order("employee_id asc").Order("month asc").
		Find(&list).Error
	return list, err
}

func (r *evaluationRepository) UpsertBatch(evaluations []model.MonthlyEvaluation) error {
	if len(evaluations) == 0 {
		return nil
	}
	now := time.Now()
	for i := range evaluations {
		evaluations[i].UpdatedAt = now
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employee_id"}, {Name: "month"}, {Name: "year"}},
		DoUpdates: clause.AssignmentColumns([]string{"grade", "note", "updated_at"}),
	}).Create(&evaluations).Error
}
