package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hr-timesheet-backend/config"
	"hr-timesheet-backend/internal/database"
	deliveryhttp "hr-timesheet-backend/internal/delivery/http"
	"hr-timesheet-backend/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{Secret: "routes-test", TTL: time.Hour},
		Policy: config.Policy{
			MatrixFactoryIDs: []uint{2},
			AbsenceCodes:     []string{"F", "Ô", "TS", "RO", "KP"},
			HalfDayCodes:     []string{"X/2", "F/2"},
			CategoryBuckets:  map[string]string{"X": "work"},
		},
		Bravo: config.BravoConfig{EntryUserCode: "NV001", MarkerValue: "1"},
	}
}

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	require.NoError(t, database.SeedAll(db, "admin123"))

	app := fiber.New(fiber.Config{ErrorHandler: deliveryhttp.ErrorHandler})
	Setup(app, db, testConfig())
	return app, db
}

type apiResponse struct {
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Token   string          `json:"token"`
	Data    json.RawMessage `json:"data"`
}

func call(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, apiResponse) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out apiResponse
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func login(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	status, resp := call(t, app, http.MethodPost, "/api/login", "", fiber.Map{"username": username, "password": password})
	require.Equal(t, http.StatusOK, status, resp.Error)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func deptID(t *testing.T, db *gorm.DB, code string) uint {
	t.Helper()
	var d model.Department
	require.NoError(t, db.Where("code = ?", code).First(&d).Error)
	return d.ID
}

func codeID(t *testing.T, db *gorm.DB, code string) uint {
	t.Helper()
	var c model.AttendanceCode
	require.NoError(t, db.Where("code = ?", code).First(&c).Error)
	return c.ID
}

func TestLoginAndAuth(t *testing.T) {
	app, _ := setupApp(t)

	status, resp := call(t, app, http.MethodPost, "/api/login", "", fiber.Map{"username": "admin", "password": "sai"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.NotEmpty(t, resp.Error)

	status, _ = call(t, app, http.MethodGet, "/api/factories", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = call(t, app, http.MethodGet, "/api/factories", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	token := login(t, app, "admin", "admin123")
	status, resp = call(t, app, http.MethodGet, "/api/factories", token, nil)
	assert.Equal(t, http.StatusOK, status)
	var factories []model.Factory
	require.NoError(t, json.Unmarshal(resp.Data, &factories))
	assert.Len(t, factories, 2)
}

func TestDepartmentOptions(t *testing.T) {
	app, _ := setupApp(t)
	token := login(t, app, "admin", "admin123")

	status, resp := call(t, app, http.MethodGet, "/api/departments/options?factoryId=2", token, nil)
	require.Equal(t, http.StatusOK, status)
	var opts []struct {
		Token         string `json:"token"`
		DepartmentIDs []uint `json:"department_ids"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &opts))
	require.Len(t, opts, 3)
	assert.Equal(t, "SECTION:GT", opts[0].Token)
	assert.Len(t, opts[0].DepartmentIDs, 3)
	assert.Equal(t, "SECTION:KS", opts[1].Token)

	status, _ = call(t, app, http.MethodGet, "/api/departments/options", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestTimesheetFlowWithLock(t *testing.T) {
	app, db := setupApp(t)
	admin := login(t, app, "admin", "admin123")
	gt2 := deptID(t, db, "2GT2")

	status, resp := call(t, app, http.MethodPost, "/api/employees", admin, fiber.Map{
		"code": "NV100", "fullName": "Hoàng Văn Nam", "departmentId": gt2,
	})
	require.Equal(t, http.StatusCreated, status, resp.Error)
	var emp model.Employee
	require.NoError(t, json.Unmarshal(resp.Data, &emp))

	status, resp = call(t, app, http.MethodPost, "/api/users", admin, fiber.Map{
		"username": "chamcong", "password": "matkhau123", "role": "TIMEKEEPER", "managedDepartmentIds": []uint{gt2},
	})
	require.Equal(t, http.StatusCreated, status, resp.Error)
	timekeeper := login(t, app, "chamcong", "matkhau123")

	save := fiber.Map{
		"date":         "2025-03-14",
		"departmentId": gt2,
		"records":      []fiber.Map{{"employeeId": emp.ID, "attendanceCodeId": codeID(t, db, "X")}},
	}
	status, resp = call(t, app, http.MethodPost, "/api/timesheets/daily", timekeeper, save)
	require.Equal(t, http.StatusOK, status, resp.Error)
	assert.NotEmpty(t, resp.Message)

	// Section GT narrowed to Kíp 2 finds the employee.
	var kip2 model.Kip
	require.NoError(t, db.Where("name = ?", "Kíp 2").First(&kip2).Error)
	path := fmt.Sprintf("/api/timesheets/daily?date=2025-03-14&factoryId=2&tokens=SECTION:GT&kipIds=%d", kip2.ID)
	status, resp = call(t, app, http.MethodGet, path, timekeeper, nil)
	require.Equal(t, http.StatusOK, status, resp.Error)
	var rows []struct {
		Employee  model.Employee   `json:"employee"`
		Timesheet *model.Timesheet `json:"timesheet"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &rows))
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Timesheet)
	assert.Equal(t, "X", rows[0].Timesheet.AttendanceCode.Code)

	// Only lock-capable roles may close the month.
	lockReq := fiber.Map{"departmentId": gt2, "month": 3, "year": 2025, "isLocked": true}
	status, _ = call(t, app, http.MethodPost, "/api/timesheets/lock", timekeeper, lockReq)
	assert.Equal(t, http.StatusForbidden, status)
	status, resp = call(t, app, http.MethodPost, "/api/timesheets/lock", admin, lockReq)
	require.Equal(t, http.StatusOK, status, resp.Error)

	status, resp = call(t, app, http.MethodPost, "/api/timesheets/daily", timekeeper, save)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, resp.Error, "03/2025")

	status, resp = call(t, app, http.MethodPost, "/api/timesheets/daily", admin, save)
	assert.Equal(t, http.StatusOK, status, resp.Error)

	status, resp = call(t, app, http.MethodGet, fmt.Sprintf("/api/timesheets/lock?departmentId=%d&month=3&year=2025", gt2), timekeeper, nil)
	require.Equal(t, http.StatusOK, status)
	var lock struct {
		IsLocked bool   `json:"is_locked"`
		LockedBy string `json:"locked_by"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &lock))
	assert.True(t, lock.IsLocked)
	assert.Equal(t, "admin", lock.LockedBy)
}

func TestValidationErrors(t *testing.T) {
	app, _ := setupApp(t)
	token := login(t, app, "admin", "admin123")

	status, _ := call(t, app, http.MethodGet, "/api/timesheets/monthly?departmentId=1", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, app, http.MethodGet, "/api/timesheets/monthly?month=3&year=2025&departmentId=abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, app, http.MethodPost, "/api/timesheets/daily", token, fiber.Map{"date": "2025-03-14"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, resp := call(t, app, http.MethodGet, "/api/timesheets/daily?date=2025-03-14", token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "[]", string(resp.Data))

	status, resp = call(t, app, http.MethodGet, "/api/timesheets/daily", token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "[]", string(resp.Data))
}

func TestAttendanceCodeDeleteInUse(t *testing.T) {
	app, db := setupApp(t)
	token := login(t, app, "admin", "admin123")

	kp := codeID(t, db, "KP")
	emp := model.Employee{Code: "NV200", FullName: "Đặng Thị Lan", DepartmentID: deptID(t, db, "2GT1")}
	require.NoError(t, db.Create(&emp).Error)
	require.NoError(t, db.Create(&model.Timesheet{EmployeeID: emp.ID, Date: "2025-03-03", AttendanceCodeID: kp}).Error)

	status, resp := call(t, app, http.MethodDelete, fmt.Sprintf("/api/attendance-codes/%d", kp), token, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, resp.Error, "KP")

	status, _ = call(t, app, http.MethodDelete, "/api/attendance-codes/9999", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestBravoExport(t *testing.T) {
	app, db := setupApp(t)
	token := login(t, app, "admin", "admin123")

	gt1 := deptID(t, db, "2GT1")
	emp := model.Employee{Code: "NV300", FullName: "Bùi Văn Long", DepartmentID: gt1}
	require.NoError(t, db.Create(&emp).Error)
	require.NoError(t, db.Create(&model.Timesheet{EmployeeID: emp.ID, Date: "2025-03-03", AttendanceCodeID: codeID(t, db, "X")}).Error)

	path := fmt.Sprintf("/api/bravo-data/bravo?month=3&year=2025&departmentId=%d", gt1)
	status, resp := call(t, app, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, status, resp.Error)
	var rows []map[string]string
	require.NoError(t, json.Unmarshal(resp.Data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "03/03/2025", rows[0]["date"])
	assert.Equal(t, "2GT1", rows[0]["department_code"])

	req := httptest.NewRequest(http.MethodGet, path+"&format=xlsx", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	httpResp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, httpResp.StatusCode)
	assert.Contains(t, httpResp.Header.Get("Content-Disposition"), "bravo_03_2025.xlsx")
}

func TestStaffCannotManageCatalog(t *testing.T) {
	app, db := setupApp(t)
	admin := login(t, app, "admin", "admin123")

	status, _ := call(t, app, http.MethodPost, "/api/users", admin, fiber.Map{
		"username": "nhanvien", "password": "matkhau123", "role": "STAFF", "managedDepartmentIds": []uint{deptID(t, db, "2GT1")},
	})
	require.Equal(t, http.StatusCreated, status)
	staff := login(t, app, "nhanvien", "matkhau123")

	status, _ = call(t, app, http.MethodPost, "/api/factories", staff, fiber.Map{"code": "NM9", "name": "Nhà máy 9"})
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = call(t, app, http.MethodGet, "/api/users", staff, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = call(t, app, http.MethodGet, "/api/bravo-data/bravo?month=3&year=2025", staff, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = call(t, app, http.MethodGet, "/api/kips?factoryId=2", staff, nil)
	assert.Equal(t, http.StatusOK, status)
}
