package entity

import (
	"strings"
	"unicode/utf8"

	"github.com/protorns/tg-miniapp-server/database/model"
	"github.com/protorns/tg-miniapp-server/util/common"
)

const (
	maxFullNameLen   = 128
	maxDepartmentLen = 128
)

// AuthPayload is the body of POST /api/auth/telegram.
type AuthPayload struct {
	InitData string `json:"initData" form:"initData"`
}

// ProfileUpdate is the body of POST /api/profile. Field names follow the
// Mini App client contract.
type ProfileUpdate struct {
	FullName   string `json:"full_name" form:"full_name"`
	Department string `json:"department" form:"department"`
}

// CheckValid rejects updates the client should never send.
func (p *ProfileUpdate) CheckValid() error {
	p.FullName = strings.TrimSpace(p.FullName)
	p.Department = strings.TrimSpace(p.Department)

	if p.FullName == "" {
		return common.Wrap("ProfileUpdate.CheckValid", common.ErrInvalidInput)
	}
	if utf8.RuneCountInString(p.FullName) > maxFullNameLen {
		return common.Wrapf("ProfileUpdate.CheckValid", common.ErrInvalidInput,
			"full_name longer than %d characters", maxFullNameLen)
	}
	if utf8.RuneCountInString(p.Department) > maxDepartmentLen {
		return common.Wrapf("ProfileUpdate.CheckValid", common.ErrInvalidInput,
			"department longer than %d characters", maxDepartmentLen)
	}
	return nil
}

// Profile is the wire representation of a user, matching the original client
// contract (tg_id / username / full_name / department).
type Profile struct {
	TgId       int64  `json:"tg_id"`
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	Department string `json:"department"`
}

// ProfileFromUser converts the stored model into the wire shape.
func ProfileFromUser(u *model.User) *Profile {
	return &Profile{
		TgId:       u.TgId,
		Username:   u.TgUsername,
		FullName:   u.FullName,
		Department: u.Department,
	}
}

// ServerStatus is returned by the admin status endpoint.
type ServerStatus struct {
	Version string  `json:"version"`
	Uptime  uint64  `json:"uptime"`
	Cpu     float64 `json:"cpu"`
	Mem     struct {
		Current uint64 `json:"current"`
		Total   uint64 `json:"total"`
	} `json:"mem"`
	Users int64 `json:"users"`
}
