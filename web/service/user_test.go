package service

import (
	"errors"
	"testing"

	"github.com/protorns/tg-miniapp-server/database"
	"github.com/protorns/tg-miniapp-server/database/model"
	"github.com/protorns/tg-miniapp-server/util/common"
)

func newTestUserService() *UserService {
	return NewUserService(nil, NewSettingService(nil))
}

func TestUserService_AuthenticateRegisters(t *testing.T) {
	setupTestDB(t)
	cleanupUsers(t)

	s := newTestUserService()
	u := &WebAppUser{Id: 500, FirstName: "Carol", LastName: "Chen", Username: "carol"}

	user, err := s.Authenticate(u)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if user.TgId != 500 || user.TgUsername != "carol" {
		t.Errorf("unexpected user: %+v", user)
	}
	if user.FullName != "Carol Chen" {
		t.Errorf("FullName should be seeded from Telegram profile, got %q", user.FullName)
	}

	var count int64
	database.GetDB().Model(&model.User{}).Count(&count)
	if count != 1 {
		t.Errorf("expected one stored user, got %d", count)
	}
}

func TestUserService_AuthenticateRefreshesUsername(t *testing.T) {
	setupTestDB(t)
	cleanupUsers(t)

	s := newTestUserService()
	database.GetDB().Create(&model.User{TgId: 501, TgUsername: "oldname", FullName: "Dana D", Department: "Sales"})

	user, err := s.Authenticate(&WebAppUser{Id: 501, Username: "newname"})
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if user.TgUsername != "newname" {
		t.Errorf("username should be refreshed, got %q", user.TgUsername)
	}
	if user.FullName != "Dana D" || user.Department != "Sales" {
		t.Errorf("profile fields must not be touched on re-auth: %+v", user)
	}
}

func TestUserService_AuthenticateRegistrationClosed(t *testing.T) {
	setupTestDB(t)
	cleanupUsers(t)

	settings := NewSettingService(nil)
	if err := settings.SetRegistrationOpen(false); err != nil {
		t.Fatalf("SetRegistrationOpen failed: %v", err)
	}
	s := NewUserService(nil, settings)

	_, err := s.Authenticate(&WebAppUser{Id: 502, Username: "late"})
	if !errors.Is(err, common.ErrRegistrationClosed) {
		t.Errorf("expected ErrRegistrationClosed, got %v", err)
	}

	// Existing users still authenticate while registration is closed.
	database.GetDB().Create(&model.User{TgId: 503, TgUsername: "existing"})
	if _, err := s.Authenticate(&WebAppUser{Id: 503, Username: "existing"}); err != nil {
		t.Errorf("existing user should authenticate: %v", err)
	}
}

func TestUserService_GetProfile(t *testing.T) {
	setupTestDB(t)
	cleanupUsers(t)

	s := newTestUserService()

	_, err := s.GetProfile(404)
	if !errors.Is(err, common.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}

	database.GetDB().Create(&model.User{TgId: 600, FullName: "Eve E"})
	user, err := s.GetProfile(600)
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if user.FullName != "Eve E" {
		t.Errorf("unexpected profile: %+v", user)
	}
}

func TestUserService_SaveProfile(t *testing.T) {
	setupTestDB(t)
	cleanupUsers(t)

	s := newTestUserService()

	if _, err := s.SaveProfile(700, "Nobody", "Nowhere"); !errors.Is(err, common.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound for unknown user, got %v", err)
	}

	database.GetDB().Create(&model.User{TgId: 700, TgUsername: "frank"})
	user, err := s.SaveProfile(700, "Frank F", "Finance")
	if err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	if user.FullName != "Frank F" || user.Department != "Finance" {
		t.Errorf("profile not saved: %+v", user)
	}
	if user.TgUsername != "frank" {
		t.Errorf("username must survive profile save: %q", user.TgUsername)
	}
}

func TestUserService_Counts(t *testing.T) {
	setupTestDB(t)
	cleanupUsers(t)

	s := newTestUserService()
	for _, u := range []*model.User{
		{TgId: 1, Department: "Engineering"},
		{TgId: 2, Department: "Engineering"},
		{TgId: 3, Department: "Sales"},
	} {
		database.GetDB().Create(u)
	}

	total, err := s.CountUsers()
	if err != nil {
		t.Fatalf("CountUsers failed: %v", err)
	}
	if total != 3 {
		t.Errorf("CountUsers() = %d, want 3", total)
	}

	byDept, err := s.CountByDepartment()
	if err != nil {
		t.Fatalf("CountByDepartment failed: %v", err)
	}
	if byDept["Engineering"] != 2 {
		t.Errorf("unexpected department counts: %v", byDept)
	}
}
