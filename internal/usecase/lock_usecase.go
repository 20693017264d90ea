package usecase

import (
	"log"
	"time"

	"hr-timesheet-backend/internal/apperror"
	"hr-timesheet-backend/internal/model"
	"hr-timesheet-backend/internal/repository"

	"gorm.io/gorm"
)

// SystemActor is recorded as lockedBy for locks the scheduler creates.
const SystemActor = "system"

type SetLockRequest struct {
	DepartmentID uint  `json:"departmentId" validate:"required"`
	Month        int   `json:"month" validate:"required,min=1,max=12"`
	Year         int   `json:"year" validate:"required,min=1900,max=9999"`
	IsLocked     *bool `json:"isLocked" validate:"required"`
}

type LockStatus struct {
	DepartmentID uint       `json:"department_id"`
	Month        int        `json:"month"`
	Year         int        `json:"year"`
	IsLocked     bool       `json:"is_locked"`
	LockedBy     string     `json:"locked_by"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

type LockUsecase struct {
	db       *gorm.DB
	lockRepo repository.LockRepository
	deptRepo repository.DepartmentRepository
}

func NewLockUsecase(db *gorm.DB, lockRepo repository.LockRepository, deptRepo repository.DepartmentRepository) *LockUsecase {
	return &LockUsecase{db: db, lockRepo: lockRepo, deptRepo: deptRepo}
}

func (u *LockUsecase) Get(departmentID uint, month, year int) (*LockStatus, error) {
	if _, _, err := MonthRange(month, year); err != nil {
		return nil, err
	}
	lock, err := u.lockRepo.Get(departmentID, month, year)
	if err != nil {
		return nil, apperror.Internal("Không đọc được trạng thái khóa sổ", err)
	}
	status := &LockStatus{DepartmentID: departmentID, Month: month, Year: year}
	if lock != nil {
		status.IsLocked = lock.IsLocked
		status.LockedBy = lock.LockedBy
		status.UpdatedAt = &lock.UpdatedAt
	}
	return status, nil
}

func (u *LockUsecase) List(month, year int) ([]model.TimesheetLock, error) {
	if _, _, err := MonthRange(month, year); err != nil {
		return nil, err
	}
	locks, err := u.lockRepo.ListByPeriod(month, year)
	if err != nil {
		return nil, apperror.Internal("Không đọc được trạng thái khóa sổ", err)
	}
	return locks, nil
}

// Set locks or unlocks a department's month and records who did it.
func (u *LockUsecase) Set(actor *model.Actor, req SetLockRequest) (*model.TimesheetLock, error) {
	if _, _, err := MonthRange(req.Month, req.Year); err != nil {
		return nil, err
	}
	if req.IsLocked == nil {
		return nil, apperror.Validation("Thiếu trạng thái khóa")
	}
	if _, err := u.deptRepo.GetByID(req.DepartmentID); err != nil {
		return nil, apperror.FromDB(err, "Bộ phận không tồn tại")
	}
	if !actor.CanAccessDepartment(req.DepartmentID) {
		return nil, apperror.Permission("Bạn không có quyền khóa sổ bộ phận này")
	}

	lock := &model.TimesheetLock{
		DepartmentID: req.DepartmentID,
		Month:        req.Month,
		Year:         req.Year,
		IsLocked:     *req.IsLocked,
		LockedBy:     actor.Username,
	}
	var saved *model.TimesheetLock
	err := u.db.Transaction(func(tx *gorm.DB) error {
		lockRepo := u.lockRepo.WithTx(tx)
		// Waits for in-flight daily saves of the department to commit.
		if err := lockRepo.GuardDepartments([]uint{req.DepartmentID}, true); err != nil {
			return err
		}
		if err := lockRepo.Upsert(lock); err != nil {
			return err
		}
		var err error
		saved, err = lockRepo.Get(req.DepartmentID, req.Month, req.Year)
		return err
	})
	if err != nil {
		return nil, apperror.Internal("Cập nhật khóa sổ thất bại", err)
	}
	return saved, nil
}

// AutoLockPreviousMonth closes the month before now for every department
// that has no lock row yet.
func (u *LockUsecase) AutoLockPreviousMonth(now time.Time) (int64, error) {
	prev := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
	n, err := u.lockRepo.LockAllUnlocked(int(prev.Month()), prev.Year(), SystemActor)
	if err != nil {
		return 0, apperror.Internal("Tự động khóa sổ thất bại", err)
	}
	log.Printf("auto-lock %02d/%d: %d departments locked", int(prev.Month()), prev.Year(), n)
	return n, nil
}
