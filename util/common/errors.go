package common

import (
	"errors"
	"fmt"
	"strings"
)

const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeForbidden     = "FORBIDDEN"
	ErrCodeInternal      = "INTERNAL"
	ErrCodeConflict      = "CONFLICT"
	ErrCodeMisconfigured = "MISCONFIGURED"
	ErrCodeExternal      = "EXTERNAL"
)

// ServiceError wraps a service layer failure with the operation that
// produced it and a stable code for transport mapping.
type ServiceError struct {
	Op      string
	Code    string
	Err     error
	Context map[string]any
}

func (e *ServiceError) Error() string {
	var sb strings.Builder
	if e.Op != "" {
		sb.WriteString("[")
		sb.WriteString(e.Op)
		sb.WriteString("] ")
	}
	if e.Code != "" {
		sb.WriteString("(")
		sb.WriteString(e.Code)
		sb.WriteString(") ")
	}
	if e.Err != nil {
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func NewServiceError(op string, err error) *ServiceError {
	return &ServiceError{
		Op:  op,
		Err: err,
	}
}

func (e *ServiceError) WithCode(code string) *ServiceError {
	e.Code = code
	return e
}

func (e *ServiceError) WithContext(key string, val any) *ServiceError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = val
	return e
}

func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return NewServiceError(op, err)
}

func Wrapf(op string, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	return NewServiceError(op, fmt.Errorf("%s: %w", msg, err))
}

var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal server error")
)

// initData verification failures.
var (
	ErrMissingHash     = errors.New("init data has no hash")
	ErrBadSignature    = errors.New("init data signature mismatch")
	ErrMissingUser     = errors.New("init data has no user")
	ErrBadUserJSON     = errors.New("init data user is not valid json")
	ErrInitDataExpired = errors.New("init data is too old")
	ErrBotTokenMissing = errors.New("server misconfigured: BOT_TOKEN is not set")
)

// User and registration failures.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrRegistrationClosed = errors.New("registration is closed")
)

// Telegram bot failures.
var (
	ErrTelegramNotRunning   = errors.New("telegram bot is not running")
	ErrTelegramInvalidToken = errors.New("invalid telegram bot token")
	ErrTelegramNoAdmins     = errors.New("no telegram admin chat ids configured")
)

// WrapError adds context to an error without an operation name.
func WrapError(err error, context string) error {
	if err == nil {
		return nil
	}
	return NewErrorf("%s: %v", context, err)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrUserNotFound)
}
