//go:build windows

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/protorns/tg-miniapp-server/bootstrap"
)

// setupSignalHandler registers signal listeners (basic signals only).
func setupSignalHandler(sigCh chan os.Signal) {
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
}

// handleCustomSignal handles platform-specific signals. Windows has no
// SIGUSR2, so nothing is consumed here.
func handleCustomSignal(sig os.Signal, runtime *bootstrap.Runtime) bool {
	return false
}
