package handler

import (
	"strconv"
	"strings"

	"hr-timesheet-backend/internal/apperror"
	"hr-timesheet-backend/internal/repository"
	"hr-timesheet-backend/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// bindJSON parses the body into dst and runs its validate tags.
func bindJSON(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return apperror.Validation("Dữ liệu gửi lên không hợp lệ")
	}
	if err := validate.Struct(dst); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return apperror.Validation("Trường %s không hợp lệ (%s)", fe.Field(), fe.Tag())
		}
		return apperror.Validation("Dữ liệu gửi lên không hợp lệ")
	}
	return nil
}

func paramID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return 0, apperror.Validation("ID không hợp lệ")
	}
	return uint(id), nil
}

func queryInt(c *fiber.Ctx, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, apperror.Validation("Thiếu tham số %s", key)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.Validation("Tham số %s không hợp lệ", key)
	}
	return n, nil
}

// queryUintPtr returns nil when the parameter is absent.
func queryUintPtr(c *fiber.Ctx, key string) (*uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return nil, apperror.Validation("Tham số %s không hợp lệ", key)
	}
	v := uint(n)
	return &v, nil
}

// queryUintList reads "1,2,3"; any malformed entry fails the request.
func queryUintList(c *fiber.Ctx, key string) ([]uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	var out []uint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil || n == 0 {
			return nil, apperror.Validation("Tham số %s không hợp lệ: %q", key, part)
		}
		out = append(out, uint(n))
	}
	return out, nil
}

func queryTokens(c *fiber.Ctx) []string {
	var out []string
	for _, part := range strings.Split(c.Query("tokens"), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseScope reads departmentId, factoryId+tokens and kipIds and resolves
// them into the department/kip filter of a report.
func parseScope(c *fiber.Ctx, loader *usecase.CatalogLoader) (repository.Scope, error) {
	deptIDs, err := queryUintList(c, "departmentId")
	if err != nil {
		return repository.Scope{}, err
	}
	factoryID, err := queryUintPtr(c, "factoryId")
	if err != nil {
		return repository.Scope{}, err
	}
	kipIDs, err := queryUintList(c, "kipIds")
	if err != nil {
		return repository.Scope{}, err
	}
	return loader.ResolveScope(usecase.ScopeQuery{
		DepartmentIDs: deptIDs,
		FactoryID:     factoryID,
		Tokens:        queryTokens(c),
		KipIDs:        kipIDs,
	})
}

func queryPeriod(c *fiber.Ctx) (month, year int, err error) {
	if month, err = queryInt(c, "month"); err != nil {
		return 0, 0, err
	}
	if year, err = queryInt(c, "year"); err != nil {
		return 0, 0, err
	}
	return month, year, nil
}
