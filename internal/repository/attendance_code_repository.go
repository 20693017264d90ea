package repository

import (
	"hr-timesheet-backend/internal/model"

	"gorm.io/gorm"
)

type AttendanceCodeRepository interface {
	WithTx(tx *gorm.DB) AttendanceCodeRepository
	GetAll() ([]model.AttendanceCode, error)
	GetByID(id uint) (*model.AttendanceCode, error)
	GetByIDs(ids []uint) ([]model.AttendanceCode, error)
	Create(code *model.AttendanceCode) error
	Update(code *model.AttendanceCode) error
	Delete(id uint) error
}

type attendanceCodeRepository struct {
	db *gorm.DB
}

func NewAttendanceCodeRepository(db *gorm.DB) AttendanceCodeRepository {
	return &attendanceCodeRepository{db}
}

func (r *attendanceCodeRepository) WithTx(tx *gorm.DB) AttendanceCodeRepository {
	return &attendanceCodeRepository{tx}
}

func (r *attendanceCodeRepository) GetAll() ([]model.AttendanceCode, error) {
	var codes []model.AttendanceCode
	err := r.db.Order("code asc").Find(&codes).Error
	return codes, err
}

func (r *attendanceCodeRepository) GetByID(id uint) (*model.AttendanceCode, error) {
	var code model.AttendanceCode
	err := r.db.First(&code, id).Error
	return &code, err
}

func (r *attendanceCodeRepository) GetByIDs(ids []uint) ([]model.AttendanceCode, error) {
	var codes []model.AttendanceCode
	if len(ids) == 0 {
		return codes, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&codes).Error
	return codes, err
}

func (r *attendanceCodeRepository) Create(code *model.AttendanceCode) error {
	return r.db.Create(code).Error
}

func (r *attendanceCodeRepository) Update(code *model.AttendanceCode) error {
	return r.db.Save(code).Error
}

func (r *attendanceCodeRepository) Delete(id uint) error {
	return r.db.Delete(&model.AttendanceCode{}, id).Error
}
