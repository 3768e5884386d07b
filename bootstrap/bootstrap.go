package bootstrap

import (
	"log"

	"github.com/protorns/tg-miniapp-server/config"
	"github.com/protorns/tg-miniapp-server/database"
	"github.com/protorns/tg-miniapp-server/database/repository"
	"github.com/protorns/tg-miniapp-server/logger"
	"github.com/protorns/tg-miniapp-server/web/service"

	"github.com/joho/godotenv"
)

// App holds every service instance the application runs on.
type App struct {
	SettingService *service.SettingService
	UserService    *service.UserService
	ServerService  *service.ServerService
	AuthService    *service.TelegramAuthService
	TgBot          *service.Tgbot

	// Repositories
	UserRepo    repository.UserRepository
	SettingRepo repository.SettingRepository
}

// NewApp assembles the application object graph.
func NewApp(
	settingService *service.SettingService,
	userService *service.UserService,
	serverService *service.ServerService,
	authService *service.TelegramAuthService,
	tgBot *service.Tgbot,
	userRepo repository.UserRepository,
	settingRepo repository.SettingRepository,
) *App {
	// Manual patch for the user<->bot cycle Wire cannot close itself.
	userService.SetTelegramService(tgBot)

	return &App{
		SettingService: settingService,
		UserService:    userService,
		ServerService:  serverService,
		AuthService:    authService,
		TgBot:          tgBot,

		UserRepo:    userRepo,
		SettingRepo: settingRepo,
	}
}

// InitDatabase opens the configured database connection.
func InitDatabase() error {
	return database.InitDB(config.GetDatabaseURL(), config.GetDBPath())
}

// InitLogger configures the logging system from the static config.
func InitLogger() {
	var level logger.Level
	switch config.GetLogLevel() {
	case config.Debug:
		level = logger.DEBUG
	case config.Info:
		level = logger.INFO
	case config.Notice:
		level = logger.NOTICE
	case config.Warning:
		level = logger.WARNING
	case config.Error:
		level = logger.ERROR
	default:
		log.Fatalf("Unknown log level: %v", config.GetLogLevel())
	}

	logger.InitLogger(level)
}

// LoadEnv loads a local .env file when present.
func LoadEnv() {
	_ = godotenv.Load()
}

// Initialize runs the full application startup sequence.
func Initialize() (*App, error) {
	log.Printf("Starting %v %v", config.GetName(), config.GetVersion())

	LoadEnv()
	InitLogger()

	if err := InitDatabase(); err != nil {
		return nil, err
	}

	return InitializeApp()
}
