package repository

import (
	"hr-timesheet-backend/internal/model"

	"gorm.io/gorm"
)

type LockRuleRepository interface {
	WithTx(tx *gorm.DB) LockRuleRepository
	GetAll() ([]model.LockRule, error)
	GetByID(id uint) (*model.LockRule, error)
	FindCovering(date string) ([]model.LockRule, error)
	Create(rule *model.LockRule) error
	Update(rule *model.LockRule) error
	Delete(id uint) error
}

type lockRuleRepository struct {
	db *gorm.DB
}

func NewLockRuleRepository(db *gorm.DB) LockRuleRepository {
	return &lockRuleRepository{db}
}

func (r *lockRuleRepository) WithTx(tx *gorm.DB) LockRuleRepository {
	return &lockRuleRepository{tx}
}

func (r *lockRuleRepository) GetAll() ([]model.LockRule, error) {
	var rules []model.LockRule
	err := r.db.Preload("Factory").Order("from_date desc").Find(&rules).Error
	return rules, err
}

func (r *lockRuleRepository) GetByID(id uint) (*model.LockRule, error) {
	var rule model.LockRule
	err := r.db.First(&rule, id).Error
	return &rule, err
}

// FindCovering returns every rule whose range contains date, for any factory.
func (r *lockRuleRepository) FindCovering(date string) ([]model.LockRule, error) {
	var rules []model.LockRule
	err := r.db.Where("from_date <= ? AND to_date >= ?", date, date).Find(&rules).Error
	return rules, err
}

func (r *lockRuleRepository) Create(rule *model.LockRule) error {
	return r.db.Omit("Factory").Create(rule).Error
}

func (r *lockRuleRepository) Update(rule *model.LockRule) error {
	return r.db.Omit("Factory").Save(rule).Error
}

func (r *lockRuleRepository) Delete(id uint) error {
	return r.db.Delete(&model.LockRule{}, id).Error
}
