package bootstrap

import (
	"github.com/protorns/tg-miniapp-server/database"
	"github.com/protorns/tg-miniapp-server/logger"
	"github.com/protorns/tg-miniapp-server/web"
	"github.com/protorns/tg-miniapp-server/web/job"
	"github.com/protorns/tg-miniapp-server/web/service"
)

// Runtime holds the running servers and background workers.
type Runtime struct {
	App            *App
	WebServer      *web.Server
	JobManager     *job.Manager
	AlertForwarder *service.AlertForwarder
}

func NewRuntime(app *App) *Runtime {
	return &Runtime{
		App:        app,
		JobManager: job.NewManager(),
	}
}

// StartTelegramBot starts long polling. Without a token this is a no-op.
func (r *Runtime) StartTelegramBot() {
	if err := r.App.TgBot.Start(); err != nil {
		logger.Warningf("telegram bot failed to start: %v", err)
	}
}

// StartWebServer builds and starts the HTTP server.
func (r *Runtime) StartWebServer() error {
	r.WebServer = web.NewServer(
		r.App.AuthService,
		r.App.UserService,
		r.App.SettingService,
		r.App.ServerService,
	)
	r.WebServer.SetTelegramService(r.App.TgBot)
	return r.WebServer.Start()
}

// StartJobs registers and starts all background workers.
func (r *Runtime) StartJobs() {
	r.AlertForwarder = service.NewAlertForwarder(r.App.TgBot)
	r.JobManager.Register(r.AlertForwarder)
	r.JobManager.StartAll()
}

// Restart tears down the web server and workers and brings them back up.
// Used by the SIGHUP handler; the bot keeps its long-polling session.
func (r *Runtime) Restart() error {
	r.JobManager.StopAll()

	if r.WebServer != nil {
		if err := r.WebServer.Stop(); err != nil {
			logger.Warning("web server stop:", err)
		}
	}

	if err := r.StartWebServer(); err != nil {
		return err
	}
	logger.Info("Web server restarted successfully.")

	// Forwarder contexts are single-use; rebuild the worker set.
	r.JobManager = job.NewManager()
	r.StartJobs()
	return nil
}

// StopAll stops workers first, then servers, then the bot.
func (r *Runtime) StopAll() {
	r.JobManager.StopAll()

	if r.WebServer != nil {
		if err := r.WebServer.Stop(); err != nil {
			logger.Warning("web server stop:", err)
		}
	}

	r.App.TgBot.Stop()

	if err := database.CloseDB(); err != nil {
		logger.Warning("close database:", err)
	}
}
