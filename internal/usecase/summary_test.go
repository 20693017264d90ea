package usecase

import (
	"testing"

	"hr-timesheet-backend/config"
	"hr-timesheet-backend/internal/apperror"
	"hr-timesheet-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(code string, category model.AttendanceCategory) model.Timesheet {
	return model.Timesheet{AttendanceCode: &model.AttendanceCode{Code: code, Category: category}}
}

func TestSummarize(t *testing.T) {
	marks := []model.Timesheet{
		ts("X", model.CategoryTimeWork),
		ts("X", model.CategoryTimeWork),
		ts("CA3", model.CategoryTimeWork),
		ts("X/2", model.CategoryTimeWork),
		ts("F/2", model.CategoryPaidLeave),
		ts("F", model.CategoryPaidLeave),
		ts("KP", model.CategoryAWOL),
		{},
	}

	s := Summarize(marks, testPolicy())
	assert.Equal(t, 4.0, s.WorkDays)
	assert.Equal(t, map[string]int{"work": 2, "night": 1, "paid_leave": 2, "awol": 1}, s.Buckets)

	assert.Equal(t, s, Summarize(marks, testPolicy()))
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, config.Policy{})
	assert.Zero(t, s.WorkDays)
	assert.Empty(t, s.Buckets)
}

func TestRollupGrades(t *testing.T) {
	grades := []string{"A", "A-", "B", "C", "A"}
	var evals []model.MonthlyEvaluation
	for i, g := range grades {
		evals = append(evals, model.MonthlyEvaluation{Month: i + 1, Grade: g})
	}

	months, counts := RollupGrades(evals)
	require.Len(t, months, 12)
	for i, g := range grades {
		require.NotNil(t, months[i])
		assert.Equal(t, g, *months[i])
	}
	for i := len(grades); i < 12; i++ {
		assert.Nil(t, months[i])
	}
	assert.Equal(t, GradeCounts{A: 3, B: 1, C: 1}, counts)
}

func TestRollupGradesIgnoresBlankAndOutOfRange(t *testing.T) {
	months, counts := RollupGrades([]model.MonthlyEvaluation{
		{Month: 1, Grade: "  "},
		{Month: 0, Grade: "A"},
		{Month: 13, Grade: "A"},
		{Month: 2, Grade: "b+"},
		{Month: 3, Grade: "D"},
	})
	assert.Nil(t, months[0])
	assert.Equal(t, GradeCounts{B: 1}, counts)
}

func TestAbsentRate(t *testing.T) {
	assert.Equal(t, 15.0, AbsentRate(3, 20))
	assert.Equal(t, 33.3, AbsentRate(1, 3))
	assert.Equal(t, 0.0, AbsentRate(0, 0))
}

func TestMonthRange(t *testing.T) {
	from, to, err := MonthRange(2, 2024)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", from)
	assert.Equal(t, "2024-02-29", to)

	_, _, err = MonthRange(0, 2024)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestFlattenBravoSkipsMarksWithoutCode(t *testing.T) {
	rows := []MonthlyRow{{
		Employee:   model.Employee{Code: "NV09", FullName: "Đỗ Văn Hùng"},
		Timesheets: []model.Timesheet{{Date: "2025-03-01"}},
	}}
	assert.Empty(t, FlattenBravo(rows, config.BravoConfig{}))
}
