package usecase

import (
	"time"

	"hr-timesheet-backend/config"
	"hr-timesheet-backend/internal/apperror"
	"hr-timesheet-backend/internal/model"
	"hr-timesheet-backend/internal/repository"
)

const dateLayout = "2006-01-02"

type DailyRow struct {
	Employee  model.Employee   `json:"employee"`
	Timesheet *model.Timesheet `json:"timesheet"`
}

type MonthlyRow struct {
	Employee   model.Employee    `json:"employee"`
	Timesheets []model.Timesheet `json:"timesheets"`
	Grade      *string           `json:"grade"`
	Summary    Summary           `json:"summary"`
}

type DashboardRow struct {
	DepartmentID   uint    `json:"department_id"`
	DepartmentCode string  `json:"department_code"`
	DepartmentName string  `json:"department_name"`
	TotalStaff     int64   `json:"total_staff"`
	Present        int64   `json:"present"`
	Absent         int64   `json:"absent"`
	Missing        int64   `json:"missing"`
	AbsentRate     float64 `json:"absent_rate"`
}

type Dashboard struct {
	Date        string         `json:"date"`
	TotalStaff  int64          `json:"total_staff"`
	Present     int64          `json:"present"`
	Absent      int64          `json:"absent"`
	Missing     int64          `json:"missing"`
	AbsentRate  float64        `json:"absent_rate"`
	Departments []DashboardRow `json:"departments"`
}

// BravoRow is one line of the payroll import sheet. Field order is the
// column order Bravo expects.
type BravoRow struct {
	Date           string `json:"date"`
	EntryUser      string `json:"entry_user"`
	DepartmentCode string `json:"department_code"`
	Marker         string `json:"marker"`
	EmployeeCode   string `json:"employee_code"`
	EmployeeName   string `json:"employee_name"`
	AttendanceCode string `json:"attendance_code"`
	CategoryLabel  string `json:"category_label"`
}

type ReportUsecase struct {
	employeeRepo   repository.EmployeeRepository
	timesheetRepo  repository.TimesheetRepository
	evaluationRepo repository.EvaluationRepository
	dashboardRepo  repository.DashboardRepository
	policy         config.Policy
	bravo          config.BravoConfig
}

func NewReportUsecase(
	employeeRepo repository.EmployeeRepository,
	timesheetRepo repository.TimesheetRepository,
	evaluationRepo repository.EvaluationRepository,
	dashboardRepo repository.DashboardRepository,
	policy config.Policy,
	bravo config.BravoConfig,
) *ReportUsecase {
	return &ReportUsecase{
		employeeRepo:   employeeRepo,
		timesheetRepo:  timesheetRepo,
		evaluationRepo: evaluationRepo,
		dashboardRepo:  dashboardRepo,
		policy:         policy,
		bravo:          bravo,
	}
}

func ParseDate(raw string) (string, error) {
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return "", apperror.Validation("Ngày không hợp lệ (định dạng YYYY-MM-DD): %q", raw)
	}
	return d.Format(dateLayout), nil
}

// MonthRange returns the first and last day of the month as YYYY-MM-DD.
func MonthRange(month, year int) (string, string, error) {
	if month < 1 || month > 12 || year < 1900 || year > 9999 {
		return "", "", apperror.Validation("Tháng/năm không hợp lệ: %d/%d", month, year)
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format(dateLayout), last.Format(dateLayout), nil
}

func employeeIDs(employees []model.Employee) []uint {
	ids := make([]uint, 0, len(employees))
	for _, e := range employees {
		ids = append(ids, e.ID)
	}
	return ids
}

// Daily returns every employee in scope with their mark for date, or nil.
func (u *ReportUsecase) Daily(scope repository.Scope, date string) ([]DailyRow, error) {
	rows := []DailyRow{}
	if scope.Empty() {
		return rows, nil
	}
	date, err := ParseDate(date)
	if err != nil {
		return nil, err
	}

	employees, err := u.employeeRepo.FindByScope(scope)
	if err != nil {
		return nil, apperror.Internal("Không tải được danh sách nhân viên", err)
	}
	marks, err := u.timesheetRepo.GetByEmployeesAndDate(employeeIDs(employees), date)
	if err != nil {
		return nil, apperror.Internal("Không tải được bảng công", err)
	}

	byEmployee := make(map[uint]model.Timesheet, len(marks))
	for _, m := range marks {
		byEmployee[m.EmployeeID] = m
	}
	for _, e := range employees {
		row := DailyRow{Employee: e}
		if m, ok := byEmployee[e.ID]; ok {
			m := m
			row.Timesheet = &m
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Monthly returns every employee in scope with all of their marks in the
// month, the month's evaluation grade and the computed Summary.
func (u *ReportUsecase) Monthly(scope repository.Scope, month, year int) ([]MonthlyRow, error) {
	from, to, err := MonthRange(month, year)
	if err != nil {
		return nil, err
	}
	rows := []MonthlyRow{}
	if scope.Empty() {
		return rows, nil
	}

	employees, err := u.employeeRepo.FindByScope(scope)
	if err != nil {
		return nil, apperror.Internal("Không tải được danh sách nhân viên", err)
	}
	ids := employeeIDs(employees)

	marks, err := u.timesheetRepo.GetByEmployeesAndRange(ids, from, to)
	if err != nil {
		return nil, apperror.Internal("Không tải được bảng công", err)
	}
	evaluations, err := u.evaluationRepo.GetByEmployeesAndPeriod(ids, month, year)
	if err != nil {
		return nil, apperror.Internal("Không tải được đánh giá", err)
	}

	marksByEmployee := make(map[uint][]model.Timesheet)
	for _, m := range marks {
		marksByEmployee[m.EmployeeID] = append(marksByEmployee[m.EmployeeID], m)
	}
	gradeByEmployee := make(map[uint]string, len(evaluations))
	for _, ev := range evaluations {
		gradeByEmployee[ev.EmployeeID] = ev.Grade
	}

	for _, e := range employees {
		list := marksByEmployee[e.ID]
		if list == nil {
			list = []model.Timesheet{}
		}
		row := MonthlyRow{Employee: e, Timesheets: list, Summary: Summarize(list, u.policy)}
		if g, ok := gradeByEmployee[e.ID]; ok {
			row.Grade = &g
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Dashboard counts present, absent and missing staff per department for a
// date. Absent means a mark whose code is on the absence list; an employee
// without any mark is missing, not absent.
func (u *ReportUsecase) Dashboard(date string, factoryID *uint) (*Dashboard, error) {
	date, err := ParseDate(date)
	if err != nil {
		return nil, err
	}

	staff, err := u.dashboardRepo.StaffByDepartment(factoryID)
	if err != nil {
		return nil, apperror.Internal("Không tải được số liệu nhân sự", err)
	}
	marks, err := u.dashboardRepo.MarksByDepartment(date, factoryID)
	if err != nil {
		return nil, apperror.Internal("Không tải được số liệu chấm công", err)
	}

	type tally struct{ present, absent int64 }
	byDept := make(map[uint]*tally)
	for _, m := range marks {
		t, ok := byDept[m.DepartmentID]
		if !ok {
			t = &tally{}
			byDept[m.DepartmentID] = t
		}
		if u.policy.IsAbsenceCode(m.Code) {
			t.absent += m.Total
		} else {
			t.present += m.Total
		}
	}

	out := &Dashboard{Date: date, Departments: make([]DashboardRow, 0, len(staff))}
	for _, s := range staff {
		row := DashboardRow{
			DepartmentID:   s.DepartmentID,
			DepartmentCode: s.DepartmentCode,
			DepartmentName: s.DepartmentName,
			TotalStaff:     s.Total,
		}
		if t, ok := byDept[s.DepartmentID]; ok {
			row.Present, row.Absent = t.present, t.absent
		}
		row.Missing = max(row.TotalStaff-row.Present-row.Absent, 0)
		row.AbsentRate = AbsentRate(row.Absent, row.TotalStaff)

		out.TotalStaff += row.TotalStaff
		out.Present += row.Present
		out.Absent += row.Absent
		out.Missing += row.Missing
		out.Departments = append(out.Departments, row)
	}
	out.AbsentRate = AbsentRate(out.Absent, out.TotalStaff)
	return out, nil
}

// Bravo flattens the month into payroll import rows.
func (u *ReportUsecase) Bravo(scope repository.Scope, month, year int) ([]BravoRow, error) {
	rows, err := u.Monthly(scope, month, year)
	if err != nil {
		return nil, err
	}
	return FlattenBravo(rows, u.bravo), nil
}

// FlattenBravo emits one row per employee per marked day, in monthly row
// order and then by date.
func FlattenBravo(rows []MonthlyRow, cfg config.BravoConfig) []BravoRow {
	out := []BravoRow{}
	for _, r := range rows {
		deptCode := ""
		if r.Employee.Department != nil {
			deptCode = r.Employee.Department.Code
		}
		for _, ts := range r.Timesheets {
			if ts.AttendanceCode == nil {
				continue
			}
			out = append(out, BravoRow{
				Date:           bravoDate(ts.Date),
				EntryUser:      cfg.EntryUserCode,
				DepartmentCode: deptCode,
				Marker:         cfg.MarkerValue,
				EmployeeCode:   r.Employee.Code,
				EmployeeName:   r.Employee.FullName,
				AttendanceCode: ts.AttendanceCode.Code,
				CategoryLabel:  ts.AttendanceCode.Category.Label(),
			})
		}
	}
	return out
}

// bravoDate renders YYYY-MM-DD as dd/MM/yyyy.
func bravoDate(date string) string {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return d.Format("02/01/2006")
}
