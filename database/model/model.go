// Package model contains the database models.
// Models are split by domain into separate files:
// - user.go: User model
// - setting.go: Setting model
package model
