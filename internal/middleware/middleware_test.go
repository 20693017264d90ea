package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hr-timesheet-backend/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/lock", Auth(testSecret), Require(model.CapLock), func(c *fiber.Ctx) error {
		actor := CurrentActor(c)
		return c.JSON(fiber.Map{"username": actor.Username, "depts": actor.ManagedDeptIDs})
	})
	return app
}

func get(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/lock", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthRejectsMissingAndBadTokens(t *testing.T) {
	app := newApp()

	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "").StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "rac").StatusCode)

	wrongKey := signToken(t, "other-secret", jwt.MapClaims{"role": "ADMIN", "exp": time.Now().Add(time.Hour).Unix()})
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, wrongKey).StatusCode)

	expired := signToken(t, testSecret, jwt.MapClaims{"role": "ADMIN", "exp": time.Now().Add(-time.Hour).Unix()})
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, expired).StatusCode)

	unknownRole := signToken(t, testSecret, jwt.MapClaims{"role": "GUEST", "exp": time.Now().Add(time.Hour).Unix()})
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, unknownRole).StatusCode)
}

func TestRequireCapability(t *testing.T) {
	app := newApp()

	timekeeper := signToken(t, testSecret, jwt.MapClaims{
		"user_id": 7, "username": "chamcong", "role": "TIMEKEEPER", "exp": time.Now().Add(time.Hour).Unix(),
	})
	assert.Equal(t, fiber.StatusForbidden, get(t, app, timekeeper).StatusCode)

	manager := signToken(t, testSecret, jwt.MapClaims{
		"user_id": 3, "username": "truongphong", "role": "HR_MANAGER", "exp": time.Now().Add(time.Hour).Unix(),
	})
	resp := get(t, app, manager)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
}

func TestRequireWithoutAuth(t *testing.T) {
	app := fiber.New()
	app.Get("/", Require(model.CapView), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestActorFromClaims(t *testing.T) {
	actor := actorFromClaims(jwt.MapClaims{
		"user_id":          float64(12),
		"username":         "chamcong",
		"role":             "TIMEKEEPER",
		"managed_dept_ids": []interface{}{float64(5), float64(6), "x", float64(0)},
	})
	assert.Equal(t, uint(12), actor.UserID)
	assert.Equal(t, "chamcong", actor.Username)
	assert.Equal(t, model.RoleTimekeeper, actor.Role)
	assert.Equal(t, []uint{5, 6}, actor.ManagedDeptIDs)
	assert.True(t, actor.CanAccessDepartment(6))
	assert.False(t, actor.CanAccessDepartment(15))

	empty := actorFromClaims(jwt.MapClaims{})
	assert.False(t, empty.Role.Valid())
	assert.Empty(t, empty.ManagedDeptIDs)
}

func TestRequestIDReusesClientValue(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(c.Locals("request_id").(string)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(RequestIDHeader))
}

func TestLoginLimiter(t *testing.T) {
	app := fiber.New()
	app.Post("/login", LoginLimiter(2), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}
