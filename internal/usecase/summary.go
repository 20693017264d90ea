package usecase

import (
	"math"
	"strings"

	"hr-timesheet-backend/config"
	"hr-timesheet-backend/internal/model"
)

// Summary is the per-employee monthly tally shown at the end of each row.
type Summary struct {
	WorkDays float64        `json:"work_days"`
	Buckets  map[string]int `json:"buckets"`
}

// Summarize counts work days and policy buckets over one employee's marks.
// A half-day code is worth 0.5 whatever its category; any other TIME_WORK
// code is worth 1. Marks without a loaded code are skipped.
func Summarize(timesheets []model.Timesheet, policy config.Policy) Summary {
	s := Summary{Buckets: make(map[string]int)}
	for _, ts := range timesheets {
		if ts.AttendanceCode == nil {
			continue
		}
		code := ts.AttendanceCode.Code
		switch {
		case policy.IsHalfDayCode(code):
			s.WorkDays += 0.5
		case ts.AttendanceCode.Category == model.CategoryTimeWork:
			s.WorkDays++
		}
		if bucket, ok := policy.CategoryBuckets[code]; ok {
			s.Buckets[bucket]++
		}
	}
	return s
}

type GradeCounts struct {
	A int `json:"A"`
	B int `json:"B"`
	C int `json:"C"`
}

// RollupGrades lays grades out by month and counts tiers by first letter.
func RollupGrades(evaluations []model.MonthlyEvaluation) ([12]*string, GradeCounts) {
	var months [12]*string
	var counts GradeCounts
	for _, ev := range evaluations {
		if ev.Month < 1 || ev.Month > 12 || strings.TrimSpace(ev.Grade) == "" {
			continue
		}
		grade := ev.Grade
		months[ev.Month-1] = &grade
	}
	for _, g := range months {
		if g == nil {
			continue
		}
		grade := strings.TrimSpace(*g)
		if grade == "" {
			continue
		}
		switch strings.ToUpper(grade[:1]) {
		case "A":
			counts.A++
		case "B":
			counts.B++
		case "C":
			counts.C++
		}
	}
	return months, counts
}

// AbsentRate is a percentage rounded to one decimal; zero staff gives 0.
func AbsentRate(absent, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(absent)/float64(total)*1000) / 10
}
