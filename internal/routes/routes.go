package routes

import (
	"hr-timesheet-backend/config"
	deliveryhttp "hr-timesheet-backend/internal/delivery/http"
	"hr-timesheet-backend/internal/handler"
	"hr-timesheet-backend/internal/middleware"
	"hr-timesheet-backend/internal/model"
	"hr-timesheet-backend/internal/repository"
	"hr-timesheet-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type repos struct {
	factory    repository.FactoryRepository
	department repository.DepartmentRepository
	kip        repository.KipRepository
	employee   repository.EmployeeRepository
	timesheet  repository.TimesheetRepository
	lock       repository.LockRepository
	lockRule   repository.LockRuleRepository
	code       repository.AttendanceCodeRepository
	evaluation repository.EvaluationRepository
	user       repository.UserRepository
	dashboard  repository.DashboardRepository
}

func newRepos(db *gorm.DB) repos {
	return repos{
		factory:    repository.NewFactoryRepository(db),
		department: repository.NewDepartmentRepository(db),
		kip:        repository.NewKipRepository(db),
		employee:   repository.NewEmployeeRepository(db),
		timesheet:  repository.NewTimesheetRepository(db),
		lock:       repository.NewLockRepository(db),
		lockRule:   repository.NewLockRuleRepository(db),
		code:       repository.NewAttendanceCodeRepository(db),
		evaluation: repository.NewEvaluationRepository(db),
		user:       repository.NewUserRepository(db),
		dashboard:  repository.NewDashboardRepository(db),
	}
}

// Setup mounts every endpoint under /api.
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	r := newRepos(db)
	loader := usecase.NewCatalogLoader(r.department, r.kip, cfg.Policy)
	masterData := usecase.NewMasterDataUsecase(r.factory, r.department, r.kip, r.code, r.timesheet, r.lockRule)
	userUC := usecase.NewUserUsecase(r.user, cfg.JWT)

	// Auth Routes
	loginHdl := deliveryhttp.NewUserHandler(userUC)
	app.Post("/api/login", middleware.LoginLimiter(10), loginHdl.Login)

	api := app.Group("/api", middleware.Auth(cfg.JWT.Secret))

	SetupOrganizationRoutes(api, handler.NewOrganizationHandler(r.factory, r.department, r.kip, masterData, loader))
	SetupEmployeeRoutes(api, handler.NewEmployeeHandler(r.employee, usecase.NewEmployeeUsecase(r.employee, r.department, r.kip)))

	report := usecase.NewReportUsecase(r.employee, r.timesheet, r.evaluation, r.dashboard, cfg.Policy, cfg.Bravo)
	timesheet := usecase.NewTimesheetUsecase(db, r.employee, r.timesheet, r.lock, r.lockRule, r.code, cfg.Policy)
	lock := usecase.NewLockUsecase(db, r.lock, r.department)
	SetupTimesheetRoutes(api, handler.NewTimesheetHandler(loader, report, timesheet, lock))
	SetupEvaluationRoutes(api, handler.NewEvaluationHandler(loader, usecase.NewEvaluationUsecase(r.employee, r.evaluation)))
	SetupReportRoutes(api, handler.NewReportHandler(loader, report))
	SetupCatalogRoutes(api, handler.NewCatalogHandler(r.code, r.lockRule, masterData))
	SetupUserRoutes(api, handler.NewUserHandler(userUC))
}

func SetupOrganizationRoutes(api fiber.Router, hdl *handler.OrganizationHandler) {
	view := middleware.Require(model.CapView)
	manage := middleware.Require(model.CapManageCatalog)

	api.Get("/factories", view, hdl.GetFactories)
	api.Post("/factories", manage, hdl.CreateFactory)
	api.Delete("/factories/:id", manage, hdl.DeleteFactory)

	api.Get("/departments", view, hdl.GetDepartments)
	api.Get("/departments/options", view, hdl.GetDepartmentOptions)
	api.Post("/departments", manage, hdl.CreateDepartment)
	api.Put("/departments/:id", manage, hdl.UpdateDepartment)
	api.Delete("/departments/:id", manage, hdl.DeleteDepartment)

	api.Get("/kips", view, hdl.GetKips)
	api.Post("/kips", manage, hdl.CreateKip)
	api.Delete("/kips/:id", manage, hdl.DeleteKip)
}

func SetupEmployeeRoutes(api fiber.Router, hdl *handler.EmployeeHandler) {
	group := api.Group("/employees")
	group.Get("/", middleware.Require(model.CapView), hdl.GetAll)
	group.Get("/:id", middleware.Require(model.CapView), hdl.GetByID)
	group.Post("/", middleware.Require(model.CapManageCatalog), hdl.Create)
	group.Put("/:id", middleware.Require(model.CapManageCatalog), hdl.Update)
	group.Delete("/:id", middleware.Require(model.CapManageCatalog), hdl.Delete)
}

func SetupTimesheetRoutes(api fiber.Router, hdl *handler.TimesheetHandler) {
	group := api.Group("/timesheets")
	group.Get("/daily", middleware.Require(model.CapView), hdl.GetDaily)
	group.Post("/daily", middleware.Require(model.CapEdit), hdl.SaveDaily)
	group.Get("/monthly", middleware.Require(model.CapView), hdl.GetMonthly)
	group.Get("/lock", middleware.Require(model.CapView), hdl.GetLock)
	group.Post("/lock", middleware.Require(model.CapLock), hdl.SetLock)
}

func SetupEvaluationRoutes(api fiber.Router, hdl *handler.EvaluationHandler) {
	group := api.Group("/evaluations")
	group.Get("/monthly", middleware.Require(model.CapView), hdl.GetMonthly)
	group.Post("/bulk", middleware.Require(model.CapEvaluate), hdl.SaveBulk)
	group.Get("/yearly", middleware.Require(model.CapView), hdl.GetYearly)
}

func SetupReportRoutes(api fiber.Router, hdl *handler.ReportHandler) {
	api.Get("/dashboard", middleware.Require(model.CapView), hdl.GetDashboard)
	api.Get("/bravo-data/bravo", middleware.Require(model.CapExport), hdl.GetBravo)
}

func SetupCatalogRoutes(api fiber.Router, hdl *handler.CatalogHandler) {
	codes := api.Group("/attendance-codes")
	codes.Get("/", middleware.Require(model.CapView), hdl.GetAttendanceCodes)
	codes.Get("/:id", middleware.Require(model.CapView), hdl.GetAttendanceCode)
	codes.Post("/", middleware.Require(model.CapManageCatalog), hdl.CreateAttendanceCode)
	codes.Put("/:id", middleware.Require(model.CapManageCatalog), hdl.UpdateAttendanceCode)
	codes.Delete("/:id", middleware.Require(model.CapManageCatalog), hdl.DeleteAttendanceCode)

	rules := api.Group("/admin/lock-rules", middleware.Require(model.CapLock))
	rules.Get("/", hdl.GetLockRules)
	rules.Post("/", hdl.CreateLockRule)
	rules.Put("/:id", hdl.UpdateLockRule)
	rules.Delete("/:id", hdl.DeleteLockRule)
}

func SetupUserRoutes(api fiber.Router, hdl *handler.UserHandler) {
	users := api.Group("/users", middleware.Require(model.CapManageUsers))
	users.Get("/", hdl.GetAll)
	users.Get("/:id", hdl.GetByID)
	users.Post("/", hdl.Create)
	users.Put("/:id", hdl.Update)
	users.Delete("/:id", hdl.Delete)
}
