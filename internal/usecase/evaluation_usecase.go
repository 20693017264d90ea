package usecase

import (
	"strings"

	"hr-timesheet-backend/internal/apperror"
	"hr-timesheet-backend/internal/model"
	"hr-timesheet-backend/internal/repository"
)

type EvaluationInput struct {
	EmployeeID uint   `json:"employeeId" validate:"required"`
	Grade      string `json:"grade" validate:"max=10"`
	Note       string `json:"note" validate:"max=255"`
}

type BulkEvaluationRequest struct {
	Month       int               `json:"month" validate:"required,min=1,max=12"`
	Year        int               `json:"year" validate:"required,min=1900,max=9999"`
	Evaluations []EvaluationInput `json:"evaluations" validate:"required,min=1,dive"`
}

type EvaluationRow struct {
	Employee   model.Employee           `json:"employee"`
	Evaluation *model.MonthlyEvaluation `json:"evaluation"`
}

type YearlyRow struct {
	Employee      model.Employee `json:"employee"`
	MonthlyGrades [12]*string    `json:"monthly_grades"`
	Summary       GradeCounts    `json:"summary"`
}

type EvaluationUsecase struct {
	employeeRepo   repository.EmployeeRepository
	evaluationRepo repository.EvaluationRepository
}

func NewEvaluationUsecase(employeeRepo repository.EmployeeRepository, evaluationRepo repository.EvaluationRepository) *EvaluationUsecase {
	return &EvaluationUsecase{employeeRepo: employeeRepo, evaluationRepo: evaluationRepo}
}

func (u *EvaluationUsecase) Monthly(scope repository.Scope, month, year int) ([]EvaluationRow, error) {
	if _, _, err := MonthRange(month, year); err != nil {
		return nil, err
	}
	rows := []EvaluationRow{}
	if scope.Empty() {
		return rows, nil
	}
	employees, err := u.employeeRepo.FindByScope(scope)
	if err != nil {
		return nil, apperror.Internal("Không tải được danh sách nhân viên", err)
	}
	list, err := u.evaluationRepo.GetByEmployeesAndPeriod(employeeIDs(employees), month, year)
	if err != nil {
		return nil, apperror.Internal("Không tải được đánh giá", err)
	}
	byEmployee := make(map[uint]model.MonthlyEvaluation, len(list))
	for _, ev := range list {
		byEmployee[ev.EmployeeID] = ev
	}
	for _, e := range employees {
		row := EvaluationRow{Employee: e}
		if ev, ok := byEmployee[e.ID]; ok {
			ev := ev
			row.Evaluation = &ev
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// SaveBulk upserts grades per (employee, month, year). The caller must be
// allowed to act on every employee's department.
func (u *EvaluationUsecase) SaveBulk(actor *model.Actor, req BulkEvaluationRequest) (int, error) {
	if _, _, err := MonthRange(req.Month, req.Year); err != nil {
		return 0, err
	}
	if len(req.Evaluations) == 0 {
		return 0, apperror.Validation("Không có đánh giá nào để lưu")
	}

	inputs := make(map[uint]EvaluationInput, len(req.Evaluations))
	ids := make([]uint, 0, len(req.Evaluations))
	for _, in := range req.Evaluations {
		if _, seen := inputs[in.EmployeeID]; !seen {
			ids = append(ids, in.EmployeeID)
		}
		inputs[in.EmployeeID] = in
	}

	employees, err := u.employeeRepo.GetByIDs(ids)
	if err != nil {
		return 0, apperror.Internal("Không tải được danh sách nhân viên", err)
	}
	if len(employees) != len(ids) {
		return 0, apperror.NotFound("Có nhân viên không tồn tại trong danh sách đánh giá")
	}
	for _, e := range employees {
		if !actor.CanAccessDepartment(e.DepartmentID) {
			name := "#"
			if e.Department != nil {
				name = e.Department.Name
			}
			return 0, apperror.Permission("Bạn không có quyền đánh giá nhân viên bộ phận %s", name)
		}
	}

	batch := make([]model.MonthlyEvaluation, 0, len(ids))
	for _, id := range ids {
		in := inputs[id]
		batch = append(batch, model.MonthlyEvaluation{
			EmployeeID: id,
			Month:      req.Month,
			Year:       req.Year,
			Grade:      strings.TrimSpace(in.Grade),
			Note:       in.Note,
		})
	}
	if err := u.evaluationRepo.UpsertBatch(batch); err != nil {
		return 0, apperror.Internal("Lưu đánh giá thất bại", err)
	}
	return len(batch), nil
}

// Yearly builds each employee's 12-month grade strip and A/B/C tally.
func (u *EvaluationUsecase) Yearly(scope repository.Scope, year int) ([]YearlyRow, error) {
	if _, _, err := MonthRange(1, year); err != nil {
		return nil, err
	}
	rows := []YearlyRow{}
	if scope.Empty() {
		return rows, nil
	}
	employees, err := u.employeeRepo.FindByScope(scope)
	if err != nil {
		return nil, apperror.Internal("Không tải được danh sách nhân viên", err)
	}
	list, err := u.evaluationRepo.GetByEmployeesAndYear(employeeIDs(employees), year)
	if err != nil {
		return nil, apperror.Internal("Không tải được đánh giá", err)
	}
	byEmployee := make(map[uint][]model.MonthlyEvaluation)
	for _, ev := range list {
		byEmployee[ev.EmployeeID] = append(byEmployee[ev.EmployeeID], ev)
	}
	for _, e := range employees {
		grades, counts := RollupGrades(byEmployee[e.ID])
		rows = append(rows, YearlyRow{Employee: e, MonthlyGrades: grades, Summary: counts})
	}
	return rows, nil
}
