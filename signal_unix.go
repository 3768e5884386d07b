//go:build !windows

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/protorns/tg-miniapp-server/bootstrap"
	"github.com/protorns/tg-miniapp-server/logger"
	"github.com/protorns/tg-miniapp-server/web/job"
)

// setupSignalHandler registers signal listeners (Unix adds SIGUSR2).
func setupSignalHandler(sigCh chan os.Signal) {
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGUSR2)
}

// handleCustomSignal handles platform-specific signals. SIGUSR2 triggers an
// immediate stats notification. Returns true when the signal was consumed.
func handleCustomSignal(sig os.Signal, runtime *bootstrap.Runtime) bool {
	if sig == syscall.SIGUSR2 {
		logger.Info("Received SIGUSR2 signal. Sending stats notification...")
		job.NewStatsNotifyJob(runtime.App.UserService, runtime.App.TgBot).Run()
		return true
	}
	return false
}
