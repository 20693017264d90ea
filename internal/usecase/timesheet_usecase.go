package usecase

import (
	"sort"
	"strconv"
	"time"

	"hr-timesheet-backend/config"
	"hr-timesheet-backend/internal/apperror"
	"hr-timesheet-backend/internal/model"
	"hr-timesheet-backend/internal/repository"

	"gorm.io/gorm"
)

type DailyRecord struct {
	EmployeeID uint `json:"employeeId" validate:"required"`
	// AttendanceCodeID nil clears the day.
	AttendanceCodeID *uint  `json:"attendanceCodeId"`
	Note             string `json:"note" validate:"max=255"`
}

type SaveDailyRequest struct {
	Date         string        `json:"date" validate:"required"`
	DepartmentID uint          `json:"departmentId"`
	Records      []DailyRecord `json:"records" validate:"required,min=1,dive"`
}

type SaveResult struct {
	Saved   int `json:"saved"`
	Cleared int `json:"cleared"`
}

type TimesheetUsecase struct {
	db            *gorm.DB
	employeeRepo  repository.EmployeeRepository
	timesheetRepo repository.TimesheetRepository
	lockRepo      repository.LockRepository
	lockRuleRepo  repository.LockRuleRepository
	codeRepo      repository.AttendanceCodeRepository
	policy        config.Policy
}

func NewTimesheetUsecase(
	db *gorm.DB,
	employeeRepo repository.EmployeeRepository,
	timesheetRepo repository.TimesheetRepository,
	lockRepo repository.LockRepository,
	lockRuleRepo repository.LockRuleRepository,
	codeRepo repository.AttendanceCodeRepository,
	policy config.Policy,
) *TimesheetUsecase {
	return &TimesheetUsecase{
		db:            db,
		employeeRepo:  employeeRepo,
		timesheetRepo: timesheetRepo,
		lockRepo:      lockRepo,
		lockRuleRepo:  lockRuleRepo,
		codeRepo:      codeRepo,
		policy:        policy,
	}
}

// SaveDaily writes one day's marks for a batch of employees. The department
// permission check, the lock check for every department the batch touches
// and the writes share one transaction: either every record lands or none.
func (u *TimesheetUsecase) SaveDaily(actor *model.Actor, req SaveDailyRequest) (*SaveResult, error) {
	date, err := ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if len(req.Records) == 0 {
		return nil, apperror.Validation("Không có bản ghi chấm công nào để lưu")
	}

	// Last record wins when the same employee appears twice.
	records := make(map[uint]DailyRecord, len(req.Records))
	for _, r := range req.Records {
		if r.EmployeeID == 0 {
			return nil, apperror.Validation("Thiếu mã nhân viên trong bản ghi chấm công")
		}
		records[r.EmployeeID] = r
	}
	ids := make([]uint, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := &SaveResult{}
	err = u.db.Transaction(func(tx *gorm.DB) error {
		employees, err := u.employeeRepo.WithTx(tx).GetByIDs(ids)
		if err != nil {
			return apperror.Internal("Không tải được danh sách nhân viên", err)
		}
		if len(employees) != len(ids) {
			return apperror.NotFound("Có nhân viên không tồn tại trong danh sách chấm công")
		}

		if err := u.checkGate(tx, actor, employees, date); err != nil {
			return err
		}
		if err := u.checkCodes(tx, records); err != nil {
			return err
		}

		tsRepo := u.timesheetRepo.WithTx(tx)
		for _, id := range ids {
			r := records[id]
			if r.AttendanceCodeID == nil {
				if err := tsRepo.DeleteByEmployeeAndDate(id, date); err != nil {
					return apperror.Internal("Lưu bảng công thất bại", err)
				}
				result.Cleared++
				continue
			}
			ts := &model.Timesheet{EmployeeID: id, Date: date, AttendanceCodeID: *r.AttendanceCodeID, Note: r.Note}
			if err := tsRepo.Upsert(ts); err != nil {
				return apperror.Internal("Lưu bảng công thất bại", err)
			}
			result.Saved++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// checkGate runs per real department of the employees, never per the
// department the client claims, so an unlocked department in the same batch
// cannot carry writes into a locked one.
func (u *TimesheetUsecase) checkGate(tx *gorm.DB, actor *model.Actor, employees []model.Employee, date string) error {
	depts := make(map[uint]*model.Department)
	for _, e := range employees {
		if _, ok := depts[e.DepartmentID]; !ok {
			depts[e.DepartmentID] = e.Department
		}
	}
	deptIDs := make([]uint, 0, len(depts))
	for id := range depts {
		deptIDs = append(deptIDs, id)
	}
	sort.Slice(deptIDs, func(i, j int) bool { return deptIDs[i] < deptIDs[j] })

	for _, id := range deptIDs {
		if !actor.CanAccessDepartment(id) {
			return apperror.Permission("Bạn không có quyền chấm công cho bộ phận %s", deptName(depts[id], id))
		}
	}
	if actor.Can(model.CapBypassLock) {
		return nil
	}

	month, year := periodOf(date)
	lockRepo := u.lockRepo.WithTx(tx)
	// Held until commit: a lock cannot be set between this check and the writes.
	if err := lockRepo.GuardDepartments(deptIDs, false); err != nil {
		return apperror.Internal("Không kiểm tra được trạng thái khóa sổ", err)
	}
	for _, id := range deptIDs {
		lock, err := lockRepo.Get(id, month, year)
		if err != nil {
			return apperror.Internal("Không kiểm tra được trạng thái khóa sổ", err)
		}
		if lock != nil && lock.IsLocked {
			return apperror.Locked(deptName(depts[id], id), month, year)
		}
	}

	if !u.policy.EnforceLockRules {
		return nil
	}
	rules, err := u.lockRuleRepo.WithTx(tx).FindCovering(date)
	if err != nil {
		return apperror.Internal("Không kiểm tra được lịch khóa", err)
	}
	for _, id := range deptIDs {
		dept := depts[id]
		if dept == nil {
			continue
		}
		for _, rule := range rules {
			if rule.Covers(dept.FactoryID, date) {
				return apperror.Permission("Ngày %s nằm trong khoảng khóa chấm công (%s đến %s): %s",
					date, rule.FromDate, rule.ToDate, rule.Reason)
			}
		}
	}
	return nil
}

func (u *TimesheetUsecase) checkCodes(tx *gorm.DB, records map[uint]DailyRecord) error {
	wanted := make(map[uint]bool)
	for _, r := range records {
		if r.AttendanceCodeID != nil {
			wanted[*r.AttendanceCodeID] = true
		}
	}
	if len(wanted) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(wanted))
	for id := range wanted {
		ids = append(ids, id)
	}
	codes, err := u.codeRepo.WithTx(tx).GetByIDs(ids)
	if err != nil {
		return apperror.Internal("Không tải được danh mục ký hiệu chấm công", err)
	}
	if len(codes) != len(ids) {
		return apperror.Validation("Ký hiệu chấm công không tồn tại")
	}
	return nil
}

func deptName(d *model.Department, id uint) string {
	if d == nil {
		return "#" + strconv.FormatUint(uint64(id), 10)
	}
	return d.Name
}

// periodOf expects a date already normalised by ParseDate.
func periodOf(date string) (month, year int) {
	d, _ := time.Parse(dateLayout, date)
	return int(d.Month()), d.Year()
}
