package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/protorns/tg-miniapp-server/config"
	"github.com/protorns/tg-miniapp-server/logger"
	"github.com/protorns/tg-miniapp-server/util/common"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"
)

// TelegramService decouples callers from the concrete bot. Anything that can
// deliver messages to the admin chats satisfies it.
type TelegramService interface {
	SendMessage(msg string) error
	SendMessageTo(chatId int64, msg string) error
	IsRunning() bool
}

// Tgbot is the admin-facing Telegram bot: it answers a small command set for
// configured admins and delivers notifications.
type Tgbot struct {
	userService    *UserService
	serverService  *ServerService
	settingService *SettingService

	botToken string
	adminIds []int64

	bot        *telego.Bot
	botHandler *th.BotHandler

	running bool
	mu      sync.RWMutex
	cancel  context.CancelFunc
}

func NewTgbot(userService *UserService, serverService *ServerService, settingService *SettingService, botToken string, adminIds []int64) *Tgbot {
	return &Tgbot{
		userService:    userService,
		serverService:  serverService,
		settingService: settingService,
		botToken:       botToken,
		adminIds:       adminIds,
	}
}

// ProvideTgbot builds the bot from static config.
func ProvideTgbot(userService *UserService, serverService *ServerService, settingService *SettingService) *Tgbot {
	return NewTgbot(userService, serverService, settingService, config.GetBotToken(), config.GetAdminChatIDs())
}

func (t *Tgbot) checkAdmin(tgId int64) bool {
	for _, id := range t.adminIds {
		if id == tgId {
			return true
		}
	}
	return false
}

// Start connects to the Bot API and begins long polling. Without a token or
// admins the bot stays off and Start is a no-op.
func (t *Tgbot) Start() error {
	if t.botToken == "" {
		logger.Info("BOT_TOKEN not set, telegram bot disabled")
		return nil
	}
	if len(t.adminIds) == 0 {
		logger.Info("no admin chat ids configured, telegram bot disabled")
		return nil
	}

	bot, err := telego.NewBot(t.botToken)
	if err != nil {
		return common.Wrap("Tgbot.Start", err)
	}
	t.bot = bot

	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel

	params := telego.GetUpdatesParams{
		Timeout: 10,
	}
	updates, err := bot.UpdatesViaLongPolling(ctx, &params)
	if err != nil {
		cancel()
		return common.Wrap("Tgbot.Start", err)
	}

	botHandler, err := th.NewBotHandler(bot, updates)
	if err != nil {
		cancel()
		return common.Wrap("Tgbot.Start", err)
	}
	t.botHandler = botHandler

	botHandler.HandleMessage(func(hctx *th.Context, message telego.Message) error {
		t.answerCommand(&message, message.Chat.ID, t.checkAdmin(message.From.ID))
		return nil
	}, th.AnyCommand())

	go func() {
		if err := botHandler.Start(); err != nil {
			logger.Error("telegram bot handler stopped:", err)
		}
	}()

	t.mu.Lock()
	t.running = true
	t.mu.Unlock()

	logger.Infof("Telegram bot started, %d admin chat(s)", len(t.adminIds))
	return nil
}

func (t *Tgbot) Stop() {
	t.mu.Lock()
	wasRunning := t.running
	t.running = false
	t.mu.Unlock()

	if !wasRunning {
		return
	}
	if t.botHandler != nil {
		common.IgnoreError("Tgbot.Stop", t.botHandler.Stop())
	}
	if t.cancel != nil {
		t.cancel()
	}
	logger.Info("Telegram bot stopped")
}

func (t *Tgbot) IsRunning() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.running
}

func (t *Tgbot) answerCommand(message *telego.Message, chatId int64, isAdmin bool) {
	command, _, _ := tu.ParseCommand(message.Text)

	var msg string
	switch command {
	case "start", "help":
		msg = "Commands:\n/id - show your Telegram ID\n/stats - user stats (admin)\n/status - server status (admin)\n/registration on|off - toggle registration (admin)"
	case "id":
		msg = "Your Telegram ID: " + strconv.FormatInt(message.From.ID, 10)
	case "stats":
		if !isAdmin {
			msg = "Unknown command, see /help"
			break
		}
		msg = t.statsText()
	case "status":
		if !isAdmin {
			msg = "Unknown command, see /help"
			break
		}
		msg = t.statusText()
	case "registration":
		if !isAdmin {
			msg = "Unknown command, see /help"
			break
		}
		msg = t.toggleRegistration(message.Text)
	default:
		msg = "Unknown command, see /help"
	}

	common.IgnoreError("Tgbot.answerCommand", t.SendMessageTo(chatId, msg))
}

func (t *Tgbot) statsText() string {
	total, err := t.userService.CountUsers()
	if err != nil {
		return "stats unavailable: " + err.Error()
	}
	byDept, err := t.userService.CountByDepartment()
	if err != nil {
		return "stats unavailable: " + err.Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Users: %d\n", total)

	depts := make([]string, 0, len(byDept))
	for d := range byDept {
		depts = append(depts, d)
	}
	sort.Strings(depts)
	for _, d := range depts {
		name := d
		if name == "" {
			name = "(no department)"
		}
		fmt.Fprintf(&sb, "%s: %d\n", name, byDept[d])
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (t *Tgbot) statusText() string {
	status := t.serverService.GetStatus()
	return fmt.Sprintf("Version: %s\nUptime: %s\nCPU: %.1f%%\nMem: %d/%d MiB\nUsers: %d",
		status.Version,
		FormatUptime(status.Uptime),
		status.Cpu,
		status.Mem.Current/1024/1024,
		status.Mem.Total/1024/1024,
		status.Users,
	)
}

func (t *Tgbot) toggleRegistration(text string) string {
	_, _, args := tu.ParseCommand(text)
	if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
		open, err := t.settingService.GetRegistrationOpen()
		if err != nil {
			return "registration state unavailable: " + err.Error()
		}
		if open {
			return "Registration is open. Use /registration off to close it."
		}
		return "Registration is closed. Use /registration on to open it."
	}

	open := args[0] == "on"
	if err := t.settingService.SetRegistrationOpen(open); err != nil {
		return "failed to update registration: " + err.Error()
	}
	if open {
		return "Registration opened"
	}
	return "Registration closed"
}

// SendMessage delivers msg to every admin chat.
func (t *Tgbot) SendMessage(msg string) error {
	if !t.IsRunning() {
		return common.ErrTelegramNotRunning
	}
	var lastErr error
	for _, chatId := range t.adminIds {
		if err := t.SendMessageTo(chatId, msg); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// SendMessageTo delivers msg to a single chat.
func (t *Tgbot) SendMessageTo(chatId int64, msg string) error {
	if !t.IsRunning() {
		return common.ErrTelegramNotRunning
	}
	_, err := t.bot.SendMessage(context.Background(), tu.Message(tu.ID(chatId), msg))
	if err != nil {
		logger.Warningf("send telegram message to %d failed: %v", chatId, err)
	}
	return err
}
