package common

import (
	"errors"
	"testing"
)

func TestNewErrorf(t *testing.T) {
	err := NewErrorf("failed for %s: %d", "user", 42)
	if err == nil {
		t.Fatal("NewErrorf should return an error")
	}
	if err.Error() != "failed for user: 42" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestServiceErrorFormat(t *testing.T) {
	base := errors.New("boom")
	se := NewServiceError("UserService.GetProfile", base).WithCode(ErrCodeNotFound)

	msg := se.Error()
	if msg != "[UserService.GetProfile] (NOT_FOUND) boom" {
		t.Errorf("unexpected format: %q", msg)
	}
	if !errors.Is(se, base) {
		t.Error("ServiceError should unwrap to the original error")
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap("op", nil) != nil {
		t.Error("Wrap(nil) should be nil")
	}
	if Wrapf("op", nil, "context") != nil {
		t.Error("Wrapf(nil) should be nil")
	}
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"user not found", ErrUserNotFound, ErrCodeNotFound},
		{"wrapped not found", Wrap("op", ErrUserNotFound), ErrCodeNotFound},
		{"bad signature", ErrBadSignature, ErrCodeUnauthorized},
		{"missing hash", ErrMissingHash, ErrCodeUnauthorized},
		{"expired", ErrInitDataExpired, ErrCodeUnauthorized},
		{"bot token missing", ErrBotTokenMissing, ErrCodeMisconfigured},
		{"registration closed", ErrRegistrationClosed, ErrCodeForbidden},
		{"invalid input", ErrInvalidInput, ErrCodeInvalidInput},
		{"unknown", errors.New("something"), ErrCodeInternal},
		{"explicit code wins", NewServiceError("op", errors.New("x")).WithCode(ErrCodeConflict), ErrCodeConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetErrorCode(tt.err); got != tt.want {
				t.Errorf("GetErrorCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsNotFoundError(t *testing.T) {
	if !IsNotFoundError(ErrUserNotFound) {
		t.Error("ErrUserNotFound should be a not-found error")
	}
	if IsNotFoundError(ErrUnauthorized) {
		t.Error("ErrUnauthorized should not be a not-found error")
	}
}
