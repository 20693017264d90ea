package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"hr-timesheet-backend/config"
	deliveryhttp "hr-timesheet-backend/internal/delivery/http"
	"hr-timesheet-backend/internal/middleware"
	"hr-timesheet-backend/internal/repository"
	"hr-timesheet-backend/internal/routes"
	"hr-timesheet-backend/internal/scheduler"
	"hr-timesheet-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	log.Println("1. Khởi động ứng dụng, đọc .env...")
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: không tìm thấy file .env, dùng biến môi trường hệ thống.")
	}
	cfg := config.Load()

	log.Println("2. Kết nối database...")
	db, err := config.ConnectDB(cfg.Database)
	if err != nil {
		log.Fatalf("Kết nối database thất bại: %v", err)
	}
	log.Println("3. Database sẵn sàng, thiết lập routes...")

	app := fiber.New(fiber.Config{
		AppName:      "hr-timesheet-backend",
		ErrorHandler: deliveryhttp.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.App.AllowedOrigins}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:request_id} ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.Setup(app, db, cfg)

	lockUC := usecase.NewLockUsecase(db, repository.NewLockRepository(db), repository.NewDepartmentRepository(db))
	cron, err := scheduler.StartAutoLock(cfg.Scheduler.AutoLockCron, lockUC)
	if err != nil {
		log.Fatalf("AUTO_LOCK_CRON không hợp lệ: %v", err)
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("Đang dừng server...")
		if cron != nil {
			<-cron.Stop().Done()
		}
		if err := app.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("4. Server sẵn sàng trên cổng :%s", cfg.App.Port)
	if err := app.Listen(":" + cfg.App.Port); err != nil {
		log.Fatalf("Server dừng: %v", err)
	}
}
