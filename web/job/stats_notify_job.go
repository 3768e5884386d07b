package job

import (
	"fmt"
	"sort"
	"strings"

	"github.com/protorns/tg-miniapp-server/logger"
	"github.com/protorns/tg-miniapp-server/web/service"
)

// StatsNotifyJob sends the periodic user report to the admin chats. It runs
// on the web server's cron, so it only implements Run.
type StatsNotifyJob struct {
	userService     *service.UserService
	telegramService service.TelegramService
}

func NewStatsNotifyJob(userService *service.UserService, telegramService service.TelegramService) *StatsNotifyJob {
	return &StatsNotifyJob{
		userService:     userService,
		telegramService: telegramService,
	}
}

func (j *StatsNotifyJob) Run() {
	if j.telegramService == nil || !j.telegramService.IsRunning() {
		return
	}

	text, err := j.buildReport()
	if err != nil {
		logger.Warning("build stats report failed:", err)
		return
	}
	if err := j.telegramService.SendMessage(text); err != nil {
		logger.Warning("send stats report failed:", err)
	}
}

func (j *StatsNotifyJob) buildReport() (string, error) {
	total, err := j.userService.CountUsers()
	if err != nil {
		return "", err
	}
	byDept, err := j.userService.CountByDepartment()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 Daily report\nUsers: %d\n", total)

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
	return strings.TrimRight(sb.String(), "\n"), nil
}
