package usecase

import (
	"strings"

	"hr-timesheet-backend/internal/apperror"
	"hr-timesheet-backend/internal/model"
	"hr-timesheet-backend/internal/repository"
)

type EmployeeRequest struct {
	Code         string `json:"code" validate:"required,max=30"`
	FullName     string `json:"fullName" validate:"required,max=150"`
	Birthday     string `json:"birthday"`
	Gender       string `json:"gender" validate:"max=10"`
	Address      string `json:"address"`
	Phone        string `json:"phone" validate:"max=20"`
	Position     string `json:"position" validate:"max=100"`
	DepartmentID uint   `json:"departmentId" validate:"required"`
	KipID        *uint  `json:"kipId"`
	StartDate    string `json:"startDate"`
	IDCardNumber string `json:"idCardNumber" validate:"max=20"`
	IDCardDate   string `json:"idCardDate"`
	IDCardPlace  string `json:"idCardPlace"`
	BankAccount  string `json:"bankAccount" validate:"max=30"`
	TaxCode      string `json:"taxCode" validate:"max=20"`
}

type EmployeeUsecase struct {
	employeeRepo repository.EmployeeRepository
	deptRepo     repository.DepartmentRepository
	kipRepo      repository.KipRepository
}

func NewEmployeeUsecase(employeeRepo repository.EmployeeRepository, deptRepo repository.DepartmentRepository, kipRepo repository.KipRepository) *EmployeeUsecase {
	return &EmployeeUsecase{employeeRepo: employeeRepo, deptRepo: deptRepo, kipRepo: kipRepo}
}

func (u *EmployeeUsecase) Create(req EmployeeRequest) (*model.Employee, error) {
	employee := &model.Employee{}
	if err := u.apply(employee, req); err != nil {
		return nil, err
	}
	if err := u.employeeRepo.Create(employee); err != nil {
		return nil, apperror.FromDB(err, "")
	}
	return u.employeeRepo.GetByID(employee.ID)
}

func (u *EmployeeUsecase) Update(id uint, req EmployeeRequest) (*model.Employee, error) {
	employee, err := u.employeeRepo.GetByID(id)
	if err != nil {
		return nil, apperror.FromDB(err, "Nhân viên không tồn tại")
	}
	if err := u.apply(employee, req); err != nil {
		return nil, err
	}
	if err := u.employeeRepo.Update(employee); err != nil {
		return nil, apperror.FromDB(err, "Nhân viên không tồn tại")
	}
	return u.employeeRepo.GetByID(id)
}

// Delete also removes the employee's timesheets and evaluations.
func (u *EmployeeUsecase) Delete(id uint) error {
	return apperror.FromDB(u.employeeRepo.Delete(id), "Nhân viên không tồn tại")
}

func (u *EmployeeUsecase) apply(e *model.Employee, req EmployeeRequest) error {
	for _, d := range []string{req.Birthday, req.StartDate, req.IDCardDate} {
		if d == "" {
			continue
		}
		if _, err := ParseDate(d); err != nil {
			return err
		}
	}
	dept, err := u.deptRepo.GetByID(req.DepartmentID)
	if err != nil {
		return apperror.FromDB(err, "Bộ phận không tồn tại")
	}
	if req.KipID != nil {
		kip, err := u.kipRepo.GetByID(*req.KipID)
		if err != nil {
			return apperror.FromDB(err, "Kíp không tồn tại")
		}
		if kip.FactoryID != dept.FactoryID {
			return apperror.Validation("Kíp %s không thuộc nhà máy của bộ phận %s", kip.Name, dept.Name)
		}
	}

	e.Code = strings.TrimSpace(req.Code)
	e.FullName = strings.TrimSpace(req.FullName)
	e.Birthday = req.Birthday
	e.Gender = req.Gender
	e.Address = req.Address
	e.Phone = req.Phone
	e.Position = req.Position
	e.DepartmentID = req.DepartmentID
	e.KipID = req.KipID
	e.StartDate = req.StartDate
	e.IDCardNumber = req.IDCardNumber
	e.IDCardDate = req.IDCardDate
	e.IDCardPlace = req.IDCardPlace
	e.BankAccount = req.BankAccount
	e.TaxCode = req.TaxCode
	e.Department = nil
	e.Kip = nil
	return nil
}
