package usecase

import (
	"testing"

	"hr-timesheet-backend/config"
	"hr-timesheet-backend/internal/model"
	"hr-timesheet-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return openTestDB(t, "")
}

// openTestDB opens a private in-memory database; params are appended to the
// DSN (e.g. "&_foreign_keys=on").
func openTestDB(t *testing.T, params string) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared" + params
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	return db
}

// recordDepartmentLocks collects the row-lock strength of every query on
// departments. SQLite drops FOR clauses when rendering, so the statement is
// inspected instead of the SQL.
func recordDepartmentLocks(t *testing.T, db *gorm.DB) *[]string {
	t.Helper()
	var strengths []string
	require.NoError(t, db.Callback().Query().Before("gorm:query").Register("test:department_locks", func(tx *gorm.DB) {
		if tx.Statement.Table != "departments" {
			return
		}
		if c, ok := tx.Statement.Clauses["FOR"]; ok {
			if l, ok := c.Expression.(clause.Locking); ok {
				strengths = append(strengths, l.Strength)
			}
		}
	}))
	return &strengths
}

func testPolicy() config.Policy {
	return config.Policy{
		MatrixFactoryIDs: []uint{2},
		AbsenceCodes:     []string{"F", "Ô", "TS", "RO", "KP"},
		HalfDayCodes:     []string{"X/2", "F/2"},
		CategoryBuckets: map[string]string{
			"X": "work", "CA3": "night", "F": "paid_leave", "F/2": "paid_leave", "KP": "awol",
		},
	}
}

type fixture struct {
	db        *gorm.DB
	codes     map[string]model.AttendanceCode
	employees []model.Employee // An, Bình (dept 5, kíp 1), Cường (dept 6, kíp 2), Dung (dept 15)
}

func (f *fixture) code(t *testing.T, c string) *uint {
	t.Helper()
	ac, ok := f.codes[c]
	require.True(t, ok, "unknown code %s", c)
	id := ac.ID
	return &id
}

func uintPtr(v uint) *uint { return &v }

func seedFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	require.NoError(t, db.Create(&model.Factory{ID: 2, Code: "NM2", Name: "Nhà máy sợi 2"}).Error)
	require.NoError(t, db.Create(&[]model.Department{
		{ID: 5, Code: "2GT1", Name: "Tổ ghép thô kíp 1", FactoryID: 2, IsKip: true},
		{ID: 6, Code: "2GT2", Name: "Tổ ghép thô kíp 2", FactoryID: 2, IsKip: true},
		{ID: 15, Code: "2HC", Name: "Phòng hành chính", FactoryID: 2},
	}).Error)
	require.NoError(t, db.Create(&[]model.Kip{
		{ID: 101, Name: "Kíp 1", FactoryID: 2},
		{ID: 102, Name: "Kíp 2", FactoryID: 2},
	}).Error)

	codes := []model.AttendanceCode{
		{Code: "X", Name: "Làm việc", Category: model.CategoryTimeWork, Factor: 1},
		{Code: "X/2", Name: "Nửa ngày", Category: model.CategoryTimeWork, Factor: 0.5},
		{Code: "CA3", Name: "Ca đêm", Category: model.CategoryTimeWork, Factor: 1},
		{Code: "F", Name: "Phép năm", Category: model.CategoryPaidLeave, Factor: 1},
		{Code: "KP", Name: "Không phép", Category: model.CategoryAWOL, Factor: 1},
	}
	require.NoError(t, db.Create(&codes).Error)

	employees := []model.Employee{
		{Code: "NV01", FullName: "Nguyễn Văn An", DepartmentID: 5, KipID: uintPtr(101)},
		{Code: "NV02", FullName: "Trần Thị Bình", DepartmentID: 5, KipID: uintPtr(101)},
		{Code: "NV03", FullName: "Lê Văn Cường", DepartmentID: 6, KipID: uintPtr(102)},
		{Code: "NV04", FullName: "Phạm Thị Dung", DepartmentID: 15},
	}
	require.NoError(t, db.Create(&employees).Error)

	f := &fixture{db: db, codes: make(map[string]model.AttendanceCode), employees: employees}
	for _, c := range codes {
		f.codes[c.Code] = c
	}
	return f
}

func (f *fixture) timesheetUsecase(policy config.Policy) *TimesheetUsecase {
	return NewTimesheetUsecase(
		f.db,
		repository.NewEmployeeRepository(f.db),
		repository.NewTimesheetRepository(f.db),
		repository.NewLockRepository(f.db),
		repository.NewLockRuleRepository(f.db),
		repository.NewAttendanceCodeRepository(f.db),
		policy,
	)
}

func (f *fixture) reportUsecase() *ReportUsecase {
	return NewReportUsecase(
		repository.NewEmployeeRepository(f.db),
		repository.NewTimesheetRepository(f.db),
		repository.NewEvaluationRepository(f.db),
		repository.NewDashboardRepository(f.db),
		testPolicy(),
		config.BravoConfig{EntryUserCode: "NV001", MarkerValue: "1"},
	)
}

func (f *fixture) mark(t *testing.T, employeeID uint, date, code string) {
	t.Helper()
	require.NoError(t, repository.NewTimesheetRepository(f.db).Upsert(&model.Timesheet{
		EmployeeID: employeeID, Date: date, AttendanceCodeID: *f.code(t, code),
	}))
}

var (
	adminActor      = &model.Actor{UserID: 1, Username: "admin", Role: model.RoleAdmin}
	timekeeperActor = &model.Actor{UserID: 2, Username: "chamcong", Role: model.RoleTimekeeper, ManagedDeptIDs: []uint{5, 6}}
)
