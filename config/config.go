package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug   LogLevel = "debug"
	Info    LogLevel = "info"
	Notice  LogLevel = "notice"
	Warning LogLevel = "warning"
	Error   LogLevel = "error"
)

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := viper.GetString("app.log_level")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return viper.GetBool("app.debug")
}

// GetPort returns the TCP port the web server binds to. The hosting platform
// injects PORT; without it the default of 8000 applies.
func GetPort() int {
	return viper.GetInt("web.port")
}

// GetBotToken returns the Telegram bot token. It is used both for initData
// verification and for the admin bot. When empty every auth attempt fails
// with a misconfiguration error.
func GetBotToken() string {
	return viper.GetString("telegram.bot_token")
}

// GetDatabaseURL returns the Postgres DSN. Empty selects the local SQLite
// fallback under the DB folder.
func GetDatabaseURL() string {
	return viper.GetString("database.url")
}

// GetAllowedOrigins parses the ALLOWED_ORIGINS list. "*" or an empty value
// allows every origin.
func GetAllowedOrigins() []string {
	raw := viper.GetString("web.allowed_origins")
	if raw == "" || raw == "*" {
		return []string{"*"}
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// GetAdminChatIDs returns the Telegram chat IDs that receive admin
// notifications and may run admin bot commands. Invalid entries are skipped.
func GetAdminChatIDs() []int64 {
	raw := viper.GetString("telegram.admin_chat_ids")
	if raw == "" {
		return nil
	}
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// GetInitDataMaxAge returns the maximum accepted age of a signed initData
// payload. Zero disables the check; auth_date is then ignored entirely.
func GetInitDataMaxAge() time.Duration {
	return viper.GetDuration("telegram.initdata_max_age")
}

func getBaseDir() string {
	exePath, err := os.Executable()
	if err != nil {
		return "."
	}
	exeDir := filepath.Dir(exePath)
	exeDirLower := strings.ToLower(filepath.ToSlash(exeDir))
	if strings.Contains(exeDirLower, "/appdata/local/temp/") || strings.Contains(exeDirLower, "/go-build") {
		wd, err := os.Getwd()
		if err != nil {
			return "."
		}
		return wd
	}
	return exeDir
}

func GetDBFolderPath() string {
	path := viper.GetString("paths.db_folder")
	if path != "" {
		return path
	}
	if runtime.GOOS == "windows" {
		return getBaseDir()
	}
	return "/var/lib/tma-server"
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func init() {
	initStaticConfig()
}
