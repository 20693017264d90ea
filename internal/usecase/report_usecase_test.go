package usecase

import (
	"fmt"
	"testing"

	"hr-timesheet-backend/internal/apperror"
	"hr-timesheet-backend/internal/model"
	"hr-timesheet-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyEmptyScopeReturnsEmpty(t *testing.T) {
	f := seedFixture(t)

	rows, err := f.reportUsecase().Daily(repository.Scope{}, "2025-03-10")
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)

	// No filter at all, not even a date.
	rows, err = f.reportUsecase().Daily(repository.Scope{}, "")
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestDailyOrderAndMissingMarks(t *testing.T) {
	f := seedFixture(t)
	f.mark(t, f.employees[1].ID, "2025-03-10", "X")

	rows, err := f.reportUsecase().Daily(repository.Scope{DepartmentIDs: []uint{5, 6, 15}}, "2025-03-10")
	require.NoError(t, err)
	require.Len(t, rows, 4)

	// No kip sorts first, then Kíp 1 (department 5), then Kíp 2.
	names := []string{}
	for _, r := range rows {
		names = append(names, r.Employee.FullName)
	}
	assert.Equal(t, []string{"Phạm Thị Dung", "Nguyễn Văn An", "Trần Thị Bình", "Lê Văn Cường"}, names)

	assert.Nil(t, rows[1].Timesheet)
	require.NotNil(t, rows[2].Timesheet)
	assert.Equal(t, "X", rows[2].Timesheet.AttendanceCode.Code)
}

func TestDailyKipScope(t *testing.T) {
	f := seedFixture(t)

	rows, err := f.reportUsecase().Daily(repository.Scope{KipIDs: []uint{102}}, "2025-03-10")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Lê Văn Cường", rows[0].Employee.FullName)
}

func TestDailyRejectsBadDate(t *testing.T) {
	f := seedFixture(t)

	_, err := f.reportUsecase().Daily(repository.Scope{DepartmentIDs: []uint{5}}, "")
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestMonthlyRowsCarryMarksGradeAndSummary(t *testing.T) {
	f := seedFixture(t)
	an := f.employees[0]
	f.mark(t, an.ID, "2025-02-28", "X") // outside the month
	f.mark(t, an.ID, "2025-03-01", "X")
	f.mark(t, an.ID, "2025-03-02", "X/2")
	f.mark(t, an.ID, "2025-03-03", "CA3")
	f.mark(t, an.ID, "2025-03-31", "F")
	require.NoError(t, f.db.Create(&model.MonthlyEvaluation{EmployeeID: an.ID, Month: 3, Year: 2025, Grade: "A"}).Error)

	rows, err := f.reportUsecase().Monthly(repository.Scope{DepartmentIDs: []uint{5}}, 3, 2025)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	row := rows[0]
	assert.Equal(t, an.ID, row.Employee.ID)
	require.Len(t, row.Timesheets, 4)
	assert.Equal(t, "2025-03-01", row.Timesheets[0].Date)
	assert.Equal(t, "2025-03-31", row.Timesheets[3].Date)
	require.NotNil(t, row.Grade)
	assert.Equal(t, "A", *row.Grade)
	assert.Equal(t, 2.5, row.Summary.WorkDays)
	assert.Equal(t, map[string]int{"work": 1, "night": 1, "paid_leave": 1}, row.Summary.Buckets)

	assert.Nil(t, rows[1].Grade)
	assert.Empty(t, rows[1].Timesheets)
}

func TestMonthlyRejectsBadPeriod(t *testing.T) {
	f := seedFixture(t)

	_, err := f.reportUsecase().Monthly(repository.Scope{DepartmentIDs: []uint{5}}, 13, 2025)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestDashboardTriState(t *testing.T) {
	f := seedFixture(t)

	// Department 15 gets 20 staff: 15 present, 3 absent, 2 with no mark.
	var staff []model.Employee
	for i := 0; i < 19; i++ {
		staff = append(staff, model.Employee{
			Code: fmt.Sprintf("HC%02d", i), FullName: fmt.Sprintf("Nhân viên %02d", i), DepartmentID: 15,
		})
	}
	require.NoError(t, f.db.Create(&staff).Error)
	staff = append(staff, f.employees[3])
	require.Len(t, staff, 20)

	for i, e := range staff {
		switch {
		case i < 15:
			f.mark(t, e.ID, "2025-03-10", "X")
		case i == 15:
			f.mark(t, e.ID, "2025-03-10", "F")
		case i < 18:
			f.mark(t, e.ID, "2025-03-10", "KP")
		}
	}

	dash, err := f.reportUsecase().Dashboard("2025-03-10", uintPtr(2))
	require.NoError(t, err)

	var hc *DashboardRow
	for i := range dash.Departments {
		if dash.Departments[i].DepartmentID == 15 {
			hc = &dash.Departments[i]
		}
	}
	require.NotNil(t, hc)
	assert.Equal(t, int64(20), hc.TotalStaff)
	assert.Equal(t, int64(15), hc.Present)
	assert.Equal(t, int64(3), hc.Absent)
	assert.Equal(t, int64(2), hc.Missing)
	assert.Equal(t, 15.0, hc.AbsentRate)

	assert.Equal(t, int64(23), dash.TotalStaff)
	assert.Equal(t, int64(5), dash.Missing)
}

func TestBravoRows(t *testing.T) {
	f := seedFixture(t)
	f.mark(t, f.employees[0].ID, "2025-03-05", "X")
	f.mark(t, f.employees[0].ID, "2025-03-06", "KP")

	rows, err := f.reportUsecase().Bravo(repository.Scope{DepartmentIDs: []uint{5}}, 3, 2025)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, BravoRow{
		Date:           "05/03/2025",
		EntryUser:      "NV001",
		DepartmentCode: "2GT1",
		Marker:         "1",
		EmployeeCode:   "NV01",
		EmployeeName:   "Nguyễn Văn An",
		AttendanceCode: "X",
		CategoryLabel:  "Thời gian làm việc",
	}, rows[0])
	assert.Equal(t, "Nghỉ không phép", rows[1].CategoryLabel)
}
