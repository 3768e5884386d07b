package service

import (
	"os"
	"testing"

	"github.com/protorns/tg-miniapp-server/database"
	"github.com/protorns/tg-miniapp-server/database/model"
)

func setupTestDB(t *testing.T) {
	f, err := os.CreateTemp("", "tma_test_*.db")
	if err != nil {
		t.Fatalf("Failed to create temp db file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	if err := database.InitDB("", dbPath); err != nil {
		t.Fatalf("Failed to init db: %v", err)
	}

	t.Cleanup(func() {
		database.CloseDB()
		os.Remove(dbPath)
	})
}

// cleanupUsers keeps tests isolated when they share a DB.
func cleanupUsers(t *testing.T) {
	t.Helper()
	database.GetDB().Where("1 = 1").Delete(&model.User{})
	database.GetDB().Where("1 = 1").Delete(&model.Setting{})
}
