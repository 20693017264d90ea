package main

import (
	"log"

	"hr-timesheet-backend/config"
	"hr-timesheet-backend/internal/database"

	"github.com/joho/godotenv"
)

func main() {
	log.Println("🌱 Bắt đầu seed dữ liệu...")

	// Separate binary, so load .env here as well
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: không tìm thấy file .env, dùng biến môi trường hệ thống.")
	}

	cfg := config.Load()
	db, err := config.ConnectDB(cfg.Database)
	if err != nil {
		log.Fatalf("Kết nối database thất bại: %v", err)
	}

	if err := database.SeedAll(db, config.GetEnv("SEED_ADMIN_PASSWORD", "admin123")); err != nil {
		log.Fatalf("Seed thất bại: %v", err)
	}

	log.Println("✅ Seed hoàn tất!")
}
