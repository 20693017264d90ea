package model

import "time"

type AttendanceCategory string

const (
	CategoryTimeWork  AttendanceCategory = "TIME_WORK"
	CategoryPaidLeave AttendanceCategory = "PAID_LEAVE"
	CategorySick      AttendanceCategory = "SICK"
	CategoryMaternity AttendanceCategory = "MATERNITY"
	CategoryUnpaid    AttendanceCategory = "UNPAID"
	CategoryAWOL      AttendanceCategory = "AWOL"
)

var categoryLabels = map[AttendanceCategory]string{
	CategoryTimeWork:  "Thời gian làm việc",
	CategoryPaidLeave: "Nghỉ phép có lương",
	CategorySick:      "Nghỉ ốm",
	CategoryMaternity: "Nghỉ thai sản",
	CategoryUnpaid:    "Nghỉ không lương",
	CategoryAWOL:      "Nghỉ không phép",
}

func (c AttendanceCategory) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label is the Vietnamese display name used on reports and the payroll export.
func (c AttendanceCategory) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

type AttendanceCode struct {
	ID          uint               `json:"id" gorm:"primaryKey"`
	Code        string             `json:"code" gorm:"size:10;uniqueIndex;not null"`
	Name        string             `json:"name" gorm:"size:100;not null"`
	Category    AttendanceCategory `json:"category" gorm:"size:20;not null"`
	Color       string             `json:"color" gorm:"size:20"`
	Factor      float64            `json:"factor" gorm:"default:1"`
	Description string             `json:"description"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// Timesheet is one attendance mark per employee per day. Date is YYYY-MM-DD.
type Timesheet struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	EmployeeID       uint      `json:"employee_id" gorm:"not null;uniqueIndex:idx_timesheet_employee_date"`
	Date             string    `json:"date" gorm:"size:10;not null;uniqueIndex:idx_timesheet_employee_date;index"`
	AttendanceCodeID uint      `json:"attendance_code_id" gorm:"index;not null"`
	Note             string    `json:"note"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	AttendanceCode *AttendanceCode `json:"attendance_code,omitempty" gorm:"foreignKey:AttendanceCodeID"`
}

// TimesheetLock closes a department's month ("khóa sổ"). A missing row and a
// row with IsLocked=false both mean unlocked.
type TimesheetLock struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	DepartmentID uint      `json:"department_id" gorm:"not null;uniqueIndex:idx_lock_department_period"`
	Month        int       `json:"month" gorm:"not null;uniqueIndex:idx_lock_department_period"`
	Year         int       `json:"year" gorm:"not null;uniqueIndex:idx_lock_department_period"`
	IsLocked     bool      `json:"is_locked"`
	LockedBy     string    `json:"locked_by" gorm:"size:50"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LockRule freezes a date range for one factory, or company wide when
// FactoryID is nil.
type LockRule struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FactoryID *uint     `json:"factory_id" gorm:"index"`
	FromDate  string    `json:"from_date" gorm:"size:10;not null"`
	ToDate    string    `json:"to_date" gorm:"size:10;not null"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`

	Factory *Factory `json:"factory,omitempty" gorm:"foreignKey:FactoryID"`
}

func (r LockRule) Covers(factoryID uint, date string) bool {
	if r.FactoryID != nil && *r.FactoryID != factoryID {
		return false
	}
	return date >= r.FromDate && date <= r.ToDate
}

type MonthlyEvaluation struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	EmployeeID uint      `json:"employee_id" gorm:"not null;uniqueIndex:idx_evaluation_employee_period"`
	Month      int       `json:"month" gorm:"not null;uniqueIndex:idx_evaluation_employee_period"`
	Year       int       `json:"year" gorm:"not null;uniqueIndex:idx_evaluation_employee_period;index"`
	Grade      string    `json:"grade" gorm:"size:10"`
	Note       string    `json:"note"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
