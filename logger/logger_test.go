package logger

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/op/go-logging"
)

func TestGetLogsContainsRecent(t *testing.T) {
	Info("logger test marker info")
	Error("logger test marker error")

	logs := GetLogs(50, "DEBUG")
	joined := strings.Join(logs, "\n")
	if !strings.Contains(joined, "logger test marker info") {
		t.Error("GetLogs should contain buffered info entry")
	}
	if !strings.Contains(joined, "logger test marker error") {
		t.Error("GetLogs should contain buffered error entry")
	}
}

func TestGetLogsLevelFilter(t *testing.T) {
	Debug("only visible at debug")

	logs := GetLogs(50, "ERROR")
	for _, l := range logs {
		if strings.Contains(l, "only visible at debug") {
			t.Error("ERROR filter should not return DEBUG entries")
		}
	}
}

type captureListener struct {
	mu       sync.Mutex
	messages []string
	done     chan struct{}
}

func (c *captureListener) OnLog(level logging.Level, message string, formattedLog string) {
	c.mu.Lock()
	c.messages = append(c.messages, message)
	c.mu.Unlock()
	select {
	case c.done <- struct{}{}:
	default:
	}
}

func TestListenerReceivesRecords(t *testing.T) {
	l := &captureListener{done: make(chan struct{}, 1)}
	AddLogListener(l)
	defer RemoveLogListener(l)

	Warning("listener test warning")

	select {
	case <-l.done:
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not receive the record in time")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	found := false
	for _, m := range l.messages {
		if strings.Contains(m, "listener test warning") {
			found = true
		}
	}
	if !found {
		t.Error("listener should have received the warning message")
	}
}

func TestRemoveListener(t *testing.T) {
	l := &captureListener{done: make(chan struct{}, 1)}
	AddLogListener(l)
	RemoveLogListener(l)

	Warning("after removal")

	select {
	case <-l.done:
		t.Error("removed listener should not receive records")
	case <-time.After(200 * time.Millisecond):
	}
}
