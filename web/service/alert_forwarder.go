package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/protorns/tg-miniapp-server/logger"

	"github.com/op/go-logging"
)

// AlertForwarder pushes ERROR-level log records to the admin chats, batched
// so a burst of errors becomes one message instead of a flood.
type AlertForwarder struct {
	telegramService TelegramService
	isEnabled       bool
	buffer          chan *alertRecord
	flushInterval   time.Duration
	batchSize       int
	ctx             context.Context
	cancel          context.CancelFunc
	wg              sync.WaitGroup
	mu              sync.RWMutex
}

type alertRecord struct {
	Level     logging.Level
	Formatted string
	Timestamp time.Time
}

func NewAlertForwarder(telegramService TelegramService) *AlertForwarder {
	ctx, cancel := context.WithCancel(context.Background())

	return &AlertForwarder{
		telegramService: telegramService,
		buffer:          make(chan *alertRecord, 200),
		flushInterval:   30 * time.Second,
		batchSize:       10,
		ctx:             ctx,
		cancel:          cancel,
	}
}

func (f *AlertForwarder) Name() string {
	return "AlertForwarder"
}

// Start registers the forwarder as a log listener. Without a running bot it
// stays disabled.
func (f *AlertForwarder) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.isEnabled {
		return nil
	}
	if f.telegramService == nil || !f.telegramService.IsRunning() {
		logger.Info("telegram bot not running, error alert forwarding disabled")
		return nil
	}

	f.isEnabled = true
	logger.AddLogListener(f)

	f.wg.Add(1)
	go f.worker()

	logger.Info("error alert forwarding enabled")
	return nil
}

func (f *AlertForwarder) Stop() error {
	f.mu.Lock()
	if !f.isEnabled {
		f.mu.Unlock()
		return nil
	}
	f.isEnabled = false
	f.mu.Unlock()

	logger.RemoveLogListener(f)
	f.cancel()
	f.wg.Wait()
	return nil
}

// OnLog implements logger.LogListener. Only ERROR and above is forwarded;
// when the buffer is full the record is dropped rather than blocking the
// logging path.
func (f *AlertForwarder) OnLog(level logging.Level, message string, formattedLog string) {
	if level > logging.ERROR {
		return
	}
	f.mu.RLock()
	enabled := f.isEnabled
	f.mu.RUnlock()
	if !enabled {
		return
	}

	select {
	case f.buffer <- &alertRecord{Level: level, Formatted: formattedLog, Timestamp: time.Now()}:
	default:
	}
}

func (f *AlertForwarder) worker() {
	defer f.wg.Done()

	ticker := time.NewTicker(f.flushInterval)
	defer ticker.Stop()

	var pending []*alertRecord
	flush := func() {
		if len(pending) == 0 {
			return
		}
		f.send(pending)
		pending = nil
	}

	for {
		select {
		case rec := <-f.buffer:
			pending = append(pending, rec)
			if len(pending) >= f.batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-f.ctx.Done():
			flush()
			return
		}
	}
}

func (f *AlertForwarder) send(records []*alertRecord) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "⚠️ %d error(s) on %s:\n", len(records), "tma-server")
	for _, rec := range records {
		sb.WriteString(rec.Formatted)
		sb.WriteByte('\n')
	}

	if err := f.telegramService.SendMessage(strings.TrimRight(sb.String(), "\n")); err != nil {
		// Deliberately not logger.Error: that would feed back into the
		// forwarder itself.
		logger.Warningf("forward error alert failed: %v", err)
	}
}
