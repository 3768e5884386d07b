package model

import "time"

// User is a Mini App user keyed by their Telegram account ID. FullName and
// Department are the profile fields the user edits; TgUsername mirrors the
// Telegram handle and is refreshed on every authentication.
type User struct {
	Id         int       `json:"id" form:"id" gorm:"primaryKey;autoIncrement"`
	TgId       int64     `json:"tgId" form:"tgId" gorm:"uniqueIndex;not null"`
	TgUsername string    `json:"tgUsername" form:"tgUsername"`
	FullName   string    `json:"fullName" form:"fullName"`
	Department string    `json:"department" form:"department"`
	CreatedAt  time.Time `json:"createdAt" form:"createdAt" gorm:"autoCreateTime"`
}
