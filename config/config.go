package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// App carries everything read from the environment at startup.
type App struct {
	Port         string
	AdminIDs     []int64 // chat ids allowed to run operator commands
	RelayToken   string  // shared secret the bot relay sends on /api/events
	RelaySendURL string  // relay endpoint for outbound pushes
	SeedEmail    string  // first dashboard operator, created if missing
	SeedPassword string
	SeedChatID   int64
}

func Load() App {
	cfg := App{
		Port:         os.Getenv("PORT"),
		RelayToken:   os.Getenv("RELAY_TOKEN"),
		RelaySendURL: os.Getenv("RELAY_SEND_URL"),
		SeedEmail:    os.Getenv("OPERATOR_EMAIL"),
		SeedPassword: os.Getenv("OPERATOR_PASSWORD"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	cfg.AdminIDs = ParseAdminIDs(os.Getenv("ADMIN_IDS"))
	if raw := os.Getenv("OPERATOR_CHAT_ID"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			cfg.SeedChatID = id
		}
	}
	return cfg
}

// ParseAdminIDs parses the comma-separated ADMIN_IDS value. Blank and
// malformed entries are skipped.
func ParseAdminIDs(raw string) []int64 {
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

// InitDB opens the configured database. Default is a local sqlite file;
// set DB_DRIVER=mysql with DB_DSN for a shared instance.
func InitDB() (*gorm.DB, error) {
	driver := os.Getenv("DB_DRIVER")
	dsn := os.Getenv("DB_DSN")

	gormCfg := &gorm.Config{TranslateError: true}

	switch driver {
	case "mysql":
		if dsn == "" {
			return nil, fmt.Errorf("DB_DSN is required when DB_DRIVER=mysql")
		}
		return gorm.Open(mysql.Open(dsn), gormCfg)
	case "", "sqlite":
		if dsn == "" {
			dsn = "acai_bot.db"
		}
		return gorm.Open(sqlite.Open(dsn), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}
