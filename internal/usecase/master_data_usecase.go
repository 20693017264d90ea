package usecase

import (
	"strings"

	"hr-timesheet-backend/internal/apperror"
	"hr-timesheet-backend/internal/model"
	"hr-timesheet-backend/internal/repository"
)

type FactoryRequest struct {
	Code string `json:"code" validate:"required,max=20"`
	Name string `json:"name" validate:"required,max=150"`
}

type DepartmentRequest struct {
	Code      string `json:"code" validate:"required,max=30"`
	Name      string `json:"name" validate:"required,max=150"`
	FactoryID uint   `json:"factoryId" validate:"required"`
	IsKip     bool   `json:"isKip"`
}

type KipRequest struct {
	Name      string `json:"name" validate:"required,max=50"`
	FactoryID uint   `json:"factoryId" validate:"required"`
}

type AttendanceCodeRequest struct {
	Code        string                   `json:"code" validate:"required,max=10"`
	Name        string                   `json:"name" validate:"required,max=100"`
	Category    model.AttendanceCategory `json:"category" validate:"required"`
	Color       string                   `json:"color" validate:"max=20"`
	Factor      *float64                 `json:"factor" validate:"omitempty,gte=0"`
	Description string                   `json:"description"`
}

type LockRuleRequest struct {
	FactoryID *uint  `json:"factoryId"`
	FromDate  string `json:"fromDate" validate:"required"`
	ToDate    string `json:"toDate" validate:"required"`
	Reason    string `json:"reason" validate:"max=255"`
}

// MasterDataUsecase owns writes to the reference tables and the referential
// checks that guard their deletes.
type MasterDataUsecase struct {
	factoryRepo   repository.FactoryRepository
	deptRepo      repository.DepartmentRepository
	kipRepo       repository.KipRepository
	codeRepo      repository.AttendanceCodeRepository
	timesheetRepo repository.TimesheetRepository
	lockRuleRepo  repository.LockRuleRepository
}

func NewMasterDataUsecase(
	factoryRepo repository.FactoryRepository,
	deptRepo repository.DepartmentRepository,
	kipRepo repository.KipRepository,
	codeRepo repository.AttendanceCodeRepository,
	timesheetRepo repository.TimesheetRepository,
	lockRuleRepo repository.LockRuleRepository,
) *MasterDataUsecase {
	return &MasterDataUsecase{
		factoryRepo:   factoryRepo,
		deptRepo:      deptRepo,
		kipRepo:       kipRepo,
		codeRepo:      codeRepo,
		timesheetRepo: timesheetRepo,
		lockRuleRepo:  lockRuleRepo,
	}
}

// --- Factory ---

func (u *MasterDataUsecase) CreateFactory(req FactoryRequest) (*model.Factory, error) {
	factory := &model.Factory{Code: strings.TrimSpace(req.Code), Name: strings.TrimSpace(req.Name)}
	if err := u.factoryRepo.Create(factory); err != nil {
		return nil, apperror.FromDB(err, "")
	}
	return factory, nil
}

func (u *MasterDataUsecase) DeleteFactory(id uint) error {
	if _, err := u.factoryRepo.GetByID(id); err != nil {
		return apperror.FromDB(err, "Nhà máy không tồn tại")
	}
	guards := []struct {
		count func(uint) (int64, error)
		what  string
	}{
		{u.factoryRepo.CountDepartments, "bộ phận trực thuộc"},
		{u.factoryRepo.CountKips, "kíp làm việc"},
		{u.factoryRepo.CountLockRules, "lịch khóa chấm công"},
	}
	for _, g := range guards {
		n, err := g.count(id)
		if err != nil {
			return apperror.Internal("Không kiểm tra được dữ liệu của nhà máy", err)
		}
		if n > 0 {
			return apperror.Referential("Không thể xóa nhà máy vì còn %d %s", n, g.what)
		}
	}
	return apperror.FromDB(u.factoryRepo.Delete(id), "Nhà máy không tồn tại")
}

// --- Department ---

func (u *MasterDataUsecase) CreateDepartment(req DepartmentRequest) (*model.Department, error) {
	if _, err := u.factoryRepo.GetByID(req.FactoryID); err != nil {
		return nil, apperror.FromDB(err, "Nhà máy không tồn tại")
	}
	dept := &model.Department{
		Code:      strings.TrimSpace(req.Code),
		Name:      strings.TrimSpace(req.Name),
		FactoryID: req.FactoryID,
		IsKip:     req.IsKip,
	}
	if err := u.deptRepo.Create(dept); err != nil {
		return nil, apperror.FromDB(err, "")
	}
	return dept, nil
}

func (u *MasterDataUsecase) UpdateDepartment(id uint, req DepartmentRequest) (*model.Department, error) {
	dept, err := u.deptRepo.GetByID(id)
	if err != nil {
		return nil, apperror.FromDB(err, "Bộ phận không tồn tại")
	}
	if req.FactoryID != dept.FactoryID {
		if _, err := u.factoryRepo.GetByID(req.FactoryID); err != nil {
			return nil, apperror.FromDB(err, "Nhà máy không tồn tại")
		}
	}
	dept.Code = strings.TrimSpace(req.Code)
	dept.Name = strings.TrimSpace(req.Name)
	dept.FactoryID = req.FactoryID
	dept.IsKip = req.IsKip
	dept.Factory = nil
	if err := u.deptRepo.Update(dept); err != nil {
		return nil, apperror.FromDB(err, "Bộ phận không tồn tại")
	}
	return dept, nil
}

func (u *MasterDataUsecase) DeleteDepartment(id uint) error {
	if _, err := u.deptRepo.GetByID(id); err != nil {
		return apperror.FromDB(err, "Bộ phận không tồn tại")
	}
	n, err := u.deptRepo.CountEmployees(id)
	if err != nil {
		return apperror.Internal("Không kiểm tra được nhân viên của bộ phận", err)
	}
	if n > 0 {
		return apperror.Referential("Không thể xóa bộ phận vì còn %d nhân viên đang làm việc", n)
	}
	n, err = u.deptRepo.CountManagers(id)
	if err != nil {
		return apperror.Internal("Không kiểm tra được tài khoản quản lý bộ phận", err)
	}
	if n > 0 {
		return apperror.Referential("Không thể xóa bộ phận vì đang được gán cho %d tài khoản quản lý", n)
	}
	return apperror.FromDB(u.deptRepo.Delete(id), "Bộ phận không tồn tại")
}

// --- Kip ---

func (u *MasterDataUsecase) CreateKip(req KipRequest) (*model.Kip, error) {
	if _, err := u.factoryRepo.GetByID(req.FactoryID); err != nil {
		return nil, apperror.FromDB(err, "Nhà máy không tồn tại")
	}
	kip := &model.Kip{Name: strings.TrimSpace(req.Name), FactoryID: req.FactoryID}
	if err := u.kipRepo.Create(kip); err != nil {
		return nil, apperror.FromDB(err, "")
	}
	return kip, nil
}

func (u *MasterDataUsecase) DeleteKip(id uint) error {
	if _, err := u.kipRepo.GetByID(id); err != nil {
		return apperror.FromDB(err, "Kíp không tồn tại")
	}
	n, err := u.kipRepo.CountEmployees(id)
	if err != nil {
		return apperror.Internal("Không kiểm tra được nhân viên của kíp", err)
	}
	if n > 0 {
		return apperror.Referential("Không thể xóa kíp vì còn %d nhân viên thuộc kíp", n)
	}
	return apperror.FromDB(u.kipRepo.Delete(id), "Kíp không tồn tại")
}

// --- Attendance code ---

func (u *MasterDataUsecase) CreateAttendanceCode(req AttendanceCodeRequest) (*model.AttendanceCode, error) {
	code := &model.AttendanceCode{}
	if err := applyAttendanceCode(code, req); err != nil {
		return nil, err
	}
	if err := u.codeRepo.Create(code); err != nil {
		return nil, apperror.FromDB(err, "")
	}
	return code, nil
}

func (u *MasterDataUsecase) UpdateAttendanceCode(id uint, req AttendanceCodeRequest) (*model.AttendanceCode, error) {
	code, err := u.codeRepo.GetByID(id)
	if err != nil {
		return nil, apperror.FromDB(err, "Ký hiệu chấm công không tồn tại")
	}
	if err := applyAttendanceCode(code, req); err != nil {
		return nil, err
	}
	if err := u.codeRepo.Update(code); err != nil {
		return nil, apperror.FromDB(err, "Ký hiệu chấm công không tồn tại")
	}
	return code, nil
}

func applyAttendanceCode(code *model.AttendanceCode, req AttendanceCodeRequest) error {
	if !req.Category.Valid() {
		return apperror.Validation("Nhóm ký hiệu không hợp lệ: %s", req.Category)
	}
	code.Code = strings.TrimSpace(req.Code)
	code.Name = strings.TrimSpace(req.Name)
	code.Category = req.Category
	code.Color = req.Color
	code.Description = req.Description
	code.Factor = 1
	if req.Factor != nil {
		code.Factor = *req.Factor
	}
	return nil
}

// DeleteAttendanceCode refuses while any timesheet still uses the code.
func (u *MasterDataUsecase) DeleteAttendanceCode(id uint) error {
	code, err := u.codeRepo.GetByID(id)
	if err != nil {
		return apperror.FromDB(err, "Ký hiệu chấm công không tồn tại")
	}
	n, err := u.timesheetRepo.CountByAttendanceCode(id)
	if err != nil {
		return apperror.Internal("Không kiểm tra được dữ liệu chấm công", err)
	}
	if n > 0 {
		return apperror.Referential("Không thể xóa ký hiệu %s vì đang được sử dụng trong %d ngày công", code.Code, n)
	}
	return apperror.FromDB(u.codeRepo.Delete(id), "Ký hiệu chấm công không tồn tại")
}

// --- Lock rule ---

func (u *MasterDataUsecase) CreateLockRule(req LockRuleRequest) (*model.LockRule, error) {
	rule := &model.LockRule{}
	if err := u.applyLockRule(rule, req); err != nil {
		return nil, err
	}
	if err := u.lockRuleRepo.Create(rule); err != nil {
		return nil, apperror.FromDB(err, "")
	}
	return rule, nil
}

func (u *MasterDataUsecase) UpdateLockRule(id uint, req LockRuleRequest) (*model.LockRule, error) {
	rule, err := u.lockRuleRepo.GetByID(id)
	if err != nil {
		return nil, apperror.FromDB(err, "Lịch khóa không tồn tại")
	}
	if err := u.applyLockRule(rule, req); err != nil {
		return nil, err
	}
	if err := u.lockRuleRepo.Update(rule); err != nil {
		return nil, apperror.FromDB(err, "Lịch khóa không tồn tại")
	}
	return rule, nil
}

func (u *MasterDataUsecase) DeleteLockRule(id uint) error {
	if _, err := u.lockRuleRepo.GetByID(id); err != nil {
		return apperror.FromDB(err, "Lịch khóa không tồn tại")
	}
	return apperror.FromDB(u.lockRuleRepo.Delete(id), "Lịch khóa không tồn tại")
}

func (u *MasterDataUsecase) applyLockRule(rule *model.LockRule, req LockRuleRequest) error {
	from, err := ParseDate(req.FromDate)
	if err != nil {
		return err
	}
	to, err := ParseDate(req.ToDate)
	if err != nil {
		return err
	}
	if to < from {
		return apperror.Validation("Ngày kết thúc phải sau ngày bắt đầu")
	}
	if req.FactoryID != nil {
		if _, err := u.factoryRepo.GetByID(*req.FactoryID); err != nil {
			return apperror.FromDB(err, "Nhà máy không tồn tại")
		}
	}
	rule.FactoryID = req.FactoryID
	rule.FromDate = from
	rule.ToDate = to
	rule.Reason = req.Reason
	rule.Factory = nil
	return nil
}
