package service

import (
	"strings"
	"testing"

	"github.com/protorns/tg-miniapp-server/database"
	"github.com/protorns/tg-miniapp-server/database/model"
)

func newTestTgbot(t *testing.T) *Tgbot {
	userService := newTestUserService()
	serverService := NewServerService(userService)
	settingService := NewSettingService(nil)
	return NewTgbot(userService, serverService, settingService, "", []int64{1})
}

func TestTgbot_CheckAdmin(t *testing.T) {
	bot := NewTgbot(nil, nil, nil, "", []int64{10, 20})
	if !bot.checkAdmin(10) || !bot.checkAdmin(20) {
		t.Error("configured ids should be admins")
	}
	if bot.checkAdmin(30) {
		t.Error("unknown id should not be admin")
	}
}

func TestTgbot_StatsText(t *testing.T) {
	setupTestDB(t)
	cleanupUsers(t)

	for _, u := range []*model.User{
		{TgId: 1, Department: "Engineering"},
		{TgId: 2, Department: "Engineering"},
		{TgId: 3},
	} {
		database.GetDB().Create(u)
	}

	bot := newTestTgbot(t)
	text := bot.statsText()

	if !strings.Contains(text, "Users: 3") {
		t.Errorf("stats should contain total: %q", text)
	}
	if !strings.Contains(text, "Engineering: 2") {
		t.Errorf("stats should contain department counts: %q", text)
	}
	if !strings.Contains(text, "(no department): 1") {
		t.Errorf("stats should name the empty department: %q", text)
	}
}

func TestTgbot_ToggleRegistration(t *testing.T) {
	setupTestDB(t)
	cleanupUsers(t)

	bot := newTestTgbot(t)

	reply := bot.toggleRegistration("/registration off")
	if reply != "Registration closed" {
		t.Errorf("unexpected reply: %q", reply)
	}
	open, err := bot.settingService.GetRegistrationOpen()
	if err != nil {
		t.Fatalf("GetRegistrationOpen failed: %v", err)
	}
	if open {
		t.Error("registration should be closed")
	}

	reply = bot.toggleRegistration("/registration on")
	if reply != "Registration opened" {
		t.Errorf("unexpected reply: %q", reply)
	}

	// Without a valid argument the current state is reported.
	reply = bot.toggleRegistration("/registration maybe")
	if !strings.Contains(reply, "Registration is open") {
		t.Errorf("unexpected reply: %q", reply)
	}
}

func TestTgbot_SendMessageNotRunning(t *testing.T) {
	bot := NewTgbot(nil, nil, nil, "", []int64{1})
	if err := bot.SendMessage("hello"); err == nil {
		t.Error("SendMessage should fail when the bot is not running")
	}
	if bot.IsRunning() {
		t.Error("bot should not report running before Start")
	}
}

func TestTgbot_StartWithoutToken(t *testing.T) {
	bot := NewTgbot(nil, nil, nil, "", []int64{1})
	if err := bot.Start(); err != nil {
		t.Errorf("Start without token should be a no-op, got %v", err)
	}
	if bot.IsRunning() {
		t.Error("bot must stay off without a token")
	}
}
