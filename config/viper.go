package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// initStaticConfig wires viper: env first, optional config file, defaults last.
func initStaticConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("toml")
	viper.AddConfigPath("/etc/tma-server")
	viper.AddConfigPath(".")
	viper.AddConfigPath(getBaseDir())

	viper.SetEnvPrefix("TMA")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Plain platform variables keep their historical, unprefixed names.
	_ = viper.BindEnv("web.port", "PORT", "TMA_WEB_PORT")
	_ = viper.BindEnv("web.allowed_origins", "ALLOWED_ORIGINS", "TMA_WEB_ALLOWED_ORIGINS")
	_ = viper.BindEnv("telegram.bot_token", "BOT_TOKEN", "TMA_TELEGRAM_BOT_TOKEN")
	_ = viper.BindEnv("database.url", "DATABASE_URL", "TMA_DATABASE_URL")
	_ = viper.BindEnv("telegram.admin_chat_ids", "ADMIN_CHAT_IDS", "TMA_TELEGRAM_ADMIN_CHAT_IDS")
	_ = viper.BindEnv("telegram.initdata_max_age", "TMA_TELEGRAM_INITDATA_MAX_AGE")

	setStaticDefaults()

	// The config file is optional; missing file silently falls back to env
	// and defaults.
	_ = viper.ReadInConfig()
}

// RefreshEnvConfig re-reads the environment into viper. Tests change env
// variables after the package init already ran.
func RefreshEnvConfig() {
	viper.Set("app.debug", os.Getenv("TMA_DEBUG") == "true")
	viper.Set("app.log_level", os.Getenv("TMA_LOG_LEVEL"))
	viper.Set("paths.db_folder", os.Getenv("TMA_DB_FOLDER"))
	if v := os.Getenv("PORT"); v != "" {
		viper.Set("web.port", v)
	} else {
		viper.Set("web.port", 8000)
	}
	viper.Set("web.allowed_origins", os.Getenv("ALLOWED_ORIGINS"))
	viper.Set("telegram.bot_token", os.Getenv("BOT_TOKEN"))
	viper.Set("telegram.admin_chat_ids", os.Getenv("ADMIN_CHAT_IDS"))
	viper.Set("database.url", os.Getenv("DATABASE_URL"))
}

func setStaticDefaults() {
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")

	viper.SetDefault("web.port", 8000)
	viper.SetDefault("web.allowed_origins", "*")

	viper.SetDefault("telegram.bot_token", "")
	viper.SetDefault("telegram.admin_chat_ids", "")
	viper.SetDefault("telegram.initdata_max_age", "0")

	viper.SetDefault("database.url", "")
}
