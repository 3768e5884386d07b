package service

import (
	"time"

	"github.com/protorns/tg-miniapp-server/config"
	"github.com/protorns/tg-miniapp-server/logger"
	"github.com/protorns/tg-miniapp-server/web/entity"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// ServerService exposes host-level stats for the admin status endpoint and
// the bot's /status command.
type ServerService struct {
	userService *UserService
}

func NewServerService(userService *UserService) *ServerService {
	return &ServerService{
		userService: userService,
	}
}

func (s *ServerService) GetStatus() *entity.ServerStatus {
	status := &entity.ServerStatus{
		Version: config.GetVersion(),
	}

	percents, err := cpu.Percent(0, false)
	if err != nil {
		logger.Warning("get cpu percent failed:", err)
	} else if len(percents) > 0 {
		status.Cpu = percents[0]
	}

	upTime, err := host.Uptime()
	if err != nil {
		logger.Warning("get uptime failed:", err)
	} else {
		status.Uptime = upTime
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		logger.Warning("get virtual memory failed:", err)
	} else {
		status.Mem.Current = memInfo.Used
		status.Mem.Total = memInfo.Total
	}

	if s.userService != nil {
		count, err := s.userService.CountUsers()
		if err != nil {
			logger.Warning("count users failed:", err)
		} else {
			status.Users = count
		}
	}

	return status
}

// FormatUptime renders seconds for the bot's plain-text status reply.
func FormatUptime(seconds uint64) string {
	return (time.Duration(seconds) * time.Second).String()
}
