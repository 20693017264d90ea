// Package apperror carries the error kinds the HTTP layer turns into status
// codes. Messages are meant to be shown to the user as-is.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindPermission
	KindLocked
	KindReferential
	KindConflict
	KindNotFound
	KindUnauthorized
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindPermission, KindLocked:
		return http.StatusForbidden
	case KindReferential, KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Permission(format string, args ...any) *Error {
	return &Error{Kind: KindPermission, Message: fmt.Sprintf(format, args...)}
}

// Locked is the Lock Gate rejection; the message always names the period.
func Locked(departmentName string, month, year int) *Error {
	return &Error{
		Kind:    KindLocked,
		Message: fmt.Sprintf("Bảng công tháng %02d/%d của bộ phận %s đã bị khóa sổ, không thể chỉnh sửa", month, year, departmentName),
	}
}

func Referential(format string, args ...any) *Error {
	return &Error{Kind: KindReferential, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...any) *Error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// FromDB classifies a persistence error. Record-not-found becomes NotFound
// with notFoundMsg, unique violations become Conflict, foreign key
// violations become Referential, anything else Internal.
func FromDB(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("%s", notFoundMsg)
	}
	if IsDuplicate(err) {
		return &Error{Kind: KindConflict, Message: "Dữ liệu đã tồn tại (trùng mã)", Err: err}
	}
	if IsForeignKey(err) {
		return &Error{Kind: KindReferential, Message: "Dữ liệu đang được tham chiếu ở nơi khác, không thể thay đổi", Err: err}
	}
	return Internal("Lỗi hệ thống, vui lòng thử lại", err)
}

// IsDuplicate recognises unique-constraint failures. With TranslateError on,
// mysql and postgres arrive as gorm.ErrDuplicatedKey; the message match
// covers connections opened without it.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint")
}

func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsForeignKey is IsDuplicate for foreign key violations (mysql 1451/1452,
// postgres 23503, sqlite 787).
func IsForeignKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}
