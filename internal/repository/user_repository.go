package repository

import (
	"errors"

	"hr-timesheet-backend/internal/model"

	"gorm.io/gorm"
)

// ErrUnknownDepartment is returned when a managed department id does not exist.
var ErrUnknownDepartment = errors.New("unknown managed department")

type UserRepository interface {
	GetByUsername(username string) (*model.User, error)
	GetAll() ([]model.User, error)
	GetByID(id uint) (*model.User, error)
	Create(user *model.User, managedDeptIDs []uint) error
	Update(user *model.User, managedDeptIDs []uint) error
	Delete(id uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db}
}

func (r *userRepository) GetByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.db.Preload("ManagedDepartments").Where("username = ?", username).First(&user).Error
	return &user, err
}

func (r *userRepository) GetAll() ([]model.User, error) {
	var users []model.User
	err := r.db.Preload("ManagedDepartments").Order("username asc").Find(&users).Error
	return users, err
}

func (r *userRepository) GetByID(id uint) (*model.User, error) {
	var user model.User
	err := r.db.Preload("ManagedDepartments").First(&user, id).Error
	return &user, err
}

func (r *userRepository) Create(user *model.User, managedDeptIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("ManagedDepartments").Create(user).Error; err != nil {
			return err
		}
		return replaceManagedDepartments(tx, user, managedDeptIDs)
	})
}

func (r *userRepository) Update(user *model.User, managedDeptIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("ManagedDepartments").Save(user).Error; err != nil {
			return err
		}
		return replaceManagedDepartments(tx, user, managedDeptIDs)
	})
}

func replaceManagedDepartments(tx *gorm.DB, user *model.User, ids []uint) error {
	var depts []model.Department
	if len(ids) == 0 {
		user.ManagedDepartments = nil
		return tx.Model(user).Association("ManagedDepartments").Clear()
	}
	unique := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	if err := tx.Where("id IN ?", ids).Find(&depts).Error; err != nil {
		return err
	}
	if len(depts) != len(unique) {
		return ErrUnknownDepartment
	}
	if err := tx.Model(user).Association("ManagedDepartments").Replace(depts); err != nil {
		return err
	}
	user.ManagedDepartments = depts
	return nil
}

func (r *userRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		user := model.User{ID: id}
		if err := tx.Model(&user).Association("ManagedDepartments").Clear(); err != nil {
			return err
		}
		return tx.Delete(&model.User{}, id).Error
	})
}
