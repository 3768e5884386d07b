package entity

import (
	"strings"
	"testing"

	"github.com/protorns/tg-miniapp-server/database/model"
)

func TestProfileUpdate_CheckValid_Ok(t *testing.T) {
	p := &ProfileUpdate{
		FullName:   "  Alice Anderson ",
		Department: " Engineering ",
	}
	if err := p.CheckValid(); err != nil {
		t.Errorf("CheckValid() unexpected error: %v", err)
	}
	if p.FullName != "Alice Anderson" {
		t.Errorf("FullName not trimmed: %q", p.FullName)
	}
	if p.Department != "Engineering" {
		t.Errorf("Department not trimmed: %q", p.Department)
	}
}

func TestProfileUpdate_CheckValid_EmptyName(t *testing.T) {
	p := &ProfileUpdate{FullName: "   ", Department: "Sales"}
	if err := p.CheckValid(); err == nil {
		t.Error("CheckValid() should reject empty full_name")
	}
}

func TestProfileUpdate_CheckValid_TooLong(t *testing.T) {
	p := &ProfileUpdate{FullName: strings.Repeat("x", 129)}
	if err := p.CheckValid(); err == nil {
		t.Error("CheckValid() should reject overlong full_name")
	}

	p = &ProfileUpdate{FullName: "ok", Department: strings.Repeat("y", 129)}
	if err := p.CheckValid(); err == nil {
		t.Error("CheckValid() should reject overlong department")
	}
}

func TestProfileFromUser(t *testing.T) {
	u := &model.User{
		Id:         7,
		TgId:       42,
		TgUsername: "bob",
		FullName:   "Bob B",
		Department: "Support",
	}
	p := ProfileFromUser(u)
	if p.TgId != 42 || p.Username != "bob" || p.FullName != "Bob B" || p.Department != "Support" {
		t.Errorf("unexpected profile: %+v", p)
	}
}
