package database

import (
	"fmt"
	"log"

	"hr-timesheet-backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAll inserts the reference data a fresh install needs. It is safe to
// run repeatedly: every row is matched on its natural key first.
func SeedAll(db *gorm.DB, adminPassword string) error {
	// 1. Factories
	office := model.Factory{Code: "VP", Name: "Văn phòng công ty"}
	spinning := model.Factory{Code: "NM2", Name: "Nhà máy sợi 2"}
	for _, f := range []*model.Factory{&office, &spinning} {
		if err := db.Where(model.Factory{Code: f.Code}).FirstOrCreate(f).Error; err != nil {
			return fmt.Errorf("seed factory %s: %w", f.Code, err)
		}
	}

	// 2. Departments: sections GT/KS run three shifts each
	depts := []model.Department{
		{Code: "1HC", Name: "Phòng hành chính nhân sự", FactoryID: office.ID},
		{Code: "1KT", Name: "Phòng kế toán", FactoryID: office.ID},
		{Code: fmt.Sprintf("%dHC", spinning.ID), Name: "Tổ hành chính nhà máy", FactoryID: spinning.ID},
	}
	for _, section := range []struct{ code, name string }{{"GT", "Ghép thô"}, {"KS", "Kéo sợi"}} {
		for shift := 1; shift <= 3; shift++ {
			depts = append(depts, model.Department{
				Code:      fmt.Sprintf("%d%s%d", spinning.ID, section.code, shift),
				Name:      fmt.Sprintf("Tổ %s kíp %d", section.name, shift),
				FactoryID: spinning.ID,
				IsKip:     true,
			})
		}
	}
	for i := range depts {
		if err := db.Where(model.Department{Code: depts[i].Code}).FirstOrCreate(&depts[i]).Error; err != nil {
			return fmt.Errorf("seed department %s: %w", depts[i].Code, err)
		}
	}

	// 3. Kips
	for _, name := range []string{"Kíp 1", "Kíp 2", "Kíp 3", "Hành chính"} {
		kip := model.Kip{Name: name, FactoryID: spinning.ID}
		if err := db.Where(model.Kip{Name: name, FactoryID: spinning.ID}).FirstOrCreate(&kip).Error; err != nil {
			return fmt.Errorf("seed kip %s: %w", name, err)
		}
	}

	// 4. Attendance codes
	codes := []model.AttendanceCode{
		{Code: "X", Name: "Làm việc cả ngày", Category: model.CategoryTimeWork, Color: "#2E7D32", Factor: 1},
		{Code: "X/2", Name: "Làm việc nửa ngày", Category: model.CategoryTimeWork, Color: "#66BB6A", Factor: 0.5},
		{Code: "CA3", Name: "Làm ca đêm", Category: model.CategoryTimeWork, Color: "#283593", Factor: 1.3},
		{Code: "F", Name: "Nghỉ phép năm", Category: model.CategoryPaidLeave, Color: "#F9A825", Factor: 1},
		{Code: "F/2", Name: "Nghỉ phép nửa ngày", Category: model.CategoryPaidLeave, Color: "#FBC02D", Factor: 0.5},
		{Code: "Ô", Name: "Nghỉ ốm", Category: model.CategorySick, Color: "#EF6C00", Factor: 1},
		{Code: "TS", Name: "Nghỉ thai sản", Category: model.CategoryMaternity, Color: "#AD1457", Factor: 1},
		{Code: "RO", Name: "Nghỉ việc riêng không lương", Category: model.CategoryUnpaid, Color: "#757575", Factor: 1},
		{Code: "KP", Name: "Nghỉ không phép", Category: model.CategoryAWOL, Color: "#C62828", Factor: 1},
	}
	for i := range codes {
		if err := db.Where(model.AttendanceCode{Code: codes[i].Code}).FirstOrCreate(&codes[i]).Error; err != nil {
			return fmt.Errorf("seed attendance code %s: %w", codes[i].Code, err)
		}
	}

	// 5. First admin account
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := model.User{Username: "admin", FullName: "Quản trị hệ thống", Role: model.RoleAdmin, Password: string(hashedPassword)}
	result := db.Where(model.User{Username: admin.Username}).FirstOrCreate(&admin)
	if result.Error != nil {
		return fmt.Errorf("seed admin: %w", result.Error)
	}
	// Keep the password in sync with the seed value even if the user exists
	if err := db.Model(&admin).Update("password", string(hashedPassword)).Error; err != nil {
		return err
	}
	log.Println("Seeding admin thành công")
	return nil
}
