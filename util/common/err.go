package common

import (
	"errors"
	"fmt"

	"github.com/protorns/tg-miniapp-server/logger"
)

func NewErrorf(format string, a ...any) error {
	msg := fmt.Sprintf(format, a...)
	return errors.New(msg)
}

func NewError(a ...any) error {
	msg := fmt.Sprintln(a...)
	return errors.New(msg)
}

func Recover(msg string) any {
	panicErr := recover()
	if panicErr != nil {
		if msg != "" {
			logger.Error(msg, "panic:", panicErr)
		}
	}
	return panicErr
}

// HandleError logs the error and wraps it with the operation name.
func HandleError(op string, err error) error {
	if err == nil {
		return nil
	}
	logger.Warningf("[%s] %v", op, err)
	return NewServiceError(op, err)
}

// HandleErrorWithCode logs the error and wraps it with an error code.
func HandleErrorWithCode(op string, code string, err error) error {
	if err == nil {
		return nil
	}
	logger.Warningf("[%s] (%s) %v", op, code, err)
	return NewServiceError(op, err).WithCode(code)
}

// LogAndReturn logs the error and returns it unmodified.
func LogAndReturn(op string, err error) error {
	if err == nil {
		return nil
	}
	logger.Warningf("[%s] %v", op, err)
	return err
}

// IgnoreError logs the error as a warning and drops it.
func IgnoreError(op string, err error) {
	if err != nil {
		logger.Warningf("[%s] ignored error: %v", op, err)
	}
}

// GetErrorCode extracts the error code used for HTTP status mapping.
func GetErrorCode(err error) string {
	var se *ServiceError
	if errors.As(err, &se) && se.Code != "" {
		return se.Code
	}
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUserNotFound):
		return ErrCodeNotFound
	case errors.Is(err, ErrInvalidInput):
		return ErrCodeInvalidInput
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrBadSignature),
		errors.Is(err, ErrMissingHash), errors.Is(err, ErrMissingUser),
		errors.Is(err, ErrBadUserJSON), errors.Is(err, ErrInitDataExpired):
		return ErrCodeUnauthorized
	case errors.Is(err, ErrBotTokenMissing):
		return ErrCodeMisconfigured
	case errors.Is(err, ErrRegistrationClosed):
		return ErrCodeForbidden
	default:
		return ErrCodeInternal
	}
}
