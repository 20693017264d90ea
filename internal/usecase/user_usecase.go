package usecase

import (
	"errors"
	"strings"
	"time"

	"hr-timesheet-backend/config"
	"hr-timesheet-backend/internal/apperror"
	"hr-timesheet-backend/internal/model"
	"hr-timesheet-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRequest struct {
	Username string     `json:"username" validate:"required,min=3,max=50"`
	Password string     `json:"password" validate:"omitempty,min=6"`
	FullName string     `json:"fullName" validate:"max=150"`
	Role     model.Role `json:"role" validate:"required"`
	// ManagedDepartmentIDs limits TIMEKEEPER and STAFF accounts.
	ManagedDepartmentIDs []uint `json:"managedDepartmentIds"`
}

type UserUsecase struct {
	repo repository.UserRepository
	jwt  config.JWTConfig
}

func NewUserUsecase(repo repository.UserRepository, jwtCfg config.JWTConfig) *UserUsecase {
	return &UserUsecase{repo: repo, jwt: jwtCfg}
}

var errBadCredentials = apperror.Unauthorized("Tên đăng nhập hoặc mật khẩu không đúng")

func (u *UserUsecase) Login(username, password string) (string, *model.User, error) {
	// 1. Find the account
	user, err := u.repo.GetByUsername(strings.TrimSpace(username))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, errBadCredentials
	}
	if err != nil {
		return "", nil, apperror.Internal("Đăng nhập thất bại", err)
	}

	// 2. Compare password with the stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, errBadCredentials
	}

	// 3. Issue the token
	token, err := u.IssueToken(user)
	if err != nil {
		return "", nil, apperror.Internal("Không tạo được phiên đăng nhập", err)
	}
	return token, user, nil
}

// IssueToken signs the claims middleware.Auth turns back into an Actor.
func (u *UserUsecase) IssueToken(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":          user.ID,
		"username":         user.Username,
		"role":             string(user.Role),
		"managed_dept_ids": user.ManagedDeptIDs(),
		"exp":              time.Now().Add(u.jwt.TTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.jwt.Secret))
}

func (u *UserUsecase) GetAll() ([]model.User, error) {
	users, err := u.repo.GetAll()
	if err != nil {
		return nil, apperror.Internal("Không tải được danh sách tài khoản", err)
	}
	return users, nil
}

func (u *UserUsecase) GetByID(id uint) (*model.User, error) {
	user, err := u.repo.GetByID(id)
	if err != nil {
		return nil, apperror.FromDB(err, "Tài khoản không tồn tại")
	}
	return user, nil
}

func (u *UserUsecase) Create(req UserRequest) (*model.User, error) {
	if !req.Role.Valid() {
		return nil, apperror.Validation("Vai trò không hợp lệ: %s", req.Role)
	}
	if req.Password == "" {
		return nil, apperror.Validation("Mật khẩu không được để trống")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal("Không mã hóa được mật khẩu", err)
	}
	user := &model.User{
		Username: strings.TrimSpace(req.Username),
		Password: string(hashed),
		FullName: req.FullName,
		Role:     req.Role,
	}
	if err := u.repo.Create(user, req.ManagedDepartmentIDs); err != nil {
		if errors.Is(err, repository.ErrUnknownDepartment) {
			return nil, apperror.Validation("Bộ phận quản lý không tồn tại")
		}
		return nil, apperror.FromDB(err, "")
	}
	return user, nil
}

// Update keeps the current password when req.Password is empty.
func (u *UserUsecase) Update(id uint, req UserRequest) (*model.User, error) {
	if !req.Role.Valid() {
		return nil, apperror.Validation("Vai trò không hợp lệ: %s", req.Role)
	}
	user, err := u.repo.GetByID(id)
	if err != nil {
		return nil, apperror.FromDB(err, "Tài khoản không tồn tại")
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperror.Internal("Không mã hóa được mật khẩu", err)
		}
		user.Password = string(hashed)
	}
	user.Username = strings.TrimSpace(req.Username)
	user.FullName = req.FullName
	user.Role = req.Role
	if err := u.repo.Update(user, req.ManagedDepartmentIDs); err != nil {
		if errors.Is(err, repository.ErrUnknownDepartment) {
			return nil, apperror.Validation("Bộ phận quản lý không tồn tại")
		}
		return nil, apperror.FromDB(err, "Tài khoản không tồn tại")
	}
	return user, nil
}

func (u *UserUsecase) Delete(actor *model.Actor, id uint) error {
	if actor != nil && actor.UserID == id {
		return apperror.Validation("Không thể tự xóa tài khoản đang đăng nhập")
	}
	if _, err := u.repo.GetByID(id); err != nil {
		return apperror.FromDB(err, "Tài khoản không tồn tại")
	}
	return apperror.FromDB(u.repo.Delete(id), "Tài khoản không tồn tại")
}
