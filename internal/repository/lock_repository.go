package repository

import (
	"errors"
	"time"

	"hr-timesheet-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LockRepository interface {
	WithTx(tx *gorm.DB) LockRepository
	// Get returns nil, nil when the period has never been locked.
	Get(departmentID uint, month, year int) (*model.TimesheetLock, error)
	Upsert(lock *model.TimesheetLock) error
	ListByPeriod(month, year int) ([]model.TimesheetLock, error)
	LockAllUnlocked(month, year int, lockedBy string) (int64, error)
	// GuardDepartments row-locks the departments whose lock state the caller
	// reads (shared) or changes (exclusive). Lock rows are created lazily, so
	// the department row is what saves and lock changes serialize on. Only
	// meaningful inside a transaction.
	GuardDepartments(ids []uint, exclusive bool) error
}

type lockRepository struct {
	db *gorm.DB
}

func NewLockRepository(db *gorm.DB) LockRepository {
	return &lockRepository{db}
}

func (r *lockRepository) WithTx(tx *gorm.DB) LockRepository {
	return &lockRepository{tx}
}

func (r *lockRepository) Get(departmentID uint, month, year int) (*model.TimesheetLock, error) {
	var lock model.TimesheetLock
	err := r.db.Where("department_id = ? AND month = ? AND year = ?", departmentID, month, year).First(&lock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lock, nil
}

func (r *lockRepository) Upsert(lock *model.TimesheetLock) error {
	lock.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "department_id"}, {Name: "month"}, {Name: "year"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_locked", "locked_by", "updated_at"}),
	}).Create(lock).Error
}

func (r *lockRepository) ListByPeriod(month, year int) ([]model.TimesheetLock, error) {
	var locks []model.TimesheetLock
	err := r.db.Where("month = ? AND year = ?", month, year).Order("department_id asc").Find(&locks).Error
	return locks, err
}

func (r *lockRepository) GuardDepartments(ids []uint, exclusive bool) error {
	if len(ids) == 0 {
		return nil
	}
	strength := clause.LockingStrengthShare
	if exclusive {
		strength = clause.LockingStrengthUpdate
	}
	var depts []model.Department
	return r.db.Clauses(clause.Locking{Strength: strength}).
		Where("id IN ?", ids).Order("id asc").Find(&depts).Error
}

// LockAllUnlocked creates a locked row for every department that has no row
// for the period yet. Departments someone explicitly unlocked stay unlocked.
func (r *lockRepository) LockAllUnlocked(month, year int, lockedBy string) (int64, error) {
	var created int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var all []uint
		if err := tx.Model(&model.Department{}).
			Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
			Order("id asc").Pluck("id", &all).Error; err != nil {
			return err
		}

		var existing []uint
		if err := tx.Model(&model.TimesheetLock{}).
			Where("month = ? AND year = ?", month, year).
			Pluck("department_id", &existing).Error; err != nil {
			return err
		}
		has := make(map[uint]bool, len(existing))
		for _, id := range existing {
			has[id] = true
		}

		locks := make([]model.TimesheetLock, 0, len(all))
		for _, id := range all {
			if has[id] {
				continue
			}
			locks = append(locks, model.TimesheetLock{
				DepartmentID: id, Month: month, Year: year, IsLocked: true, LockedBy: lockedBy,
			})
		}
		if len(locks) == 0 {
			return nil
		}
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&locks)
		if result.Error != nil {
			return result.Error
		}
		created = result.RowsAffected
		return nil
	})
	return created, err
}
