package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Shop     ShopConfig
	Telegram TelegramConfig
}

type ServerConfig struct {
	Addr string
}

// StorageConfig selects the record store backend. Backend is one of
// "memory", "file" or "postgres".
type StorageConfig struct {
	Backend string
	File    string
	DB      DBConfig
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type ShopConfig struct {
	Name         string
	DefaultUPIID string
}

// TelegramConfig enables the end-of-day report notifier when Token is set.
type TelegramConfig struct {
	Token  string
	ChatID int64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	chatID, _ := strconv.ParseInt(getEnv("TELEGRAM_CHAT_ID", "0"), 10, 64)

	return &Config{
		Server: ServerConfig{
			Addr: getEnv("LISTEN_ADDR", ":8081"),
		},
		Storage: StorageConfig{
			Backend: getEnv("STORAGE", "file"),
			File:    getEnv("STORAGE_FILE", "eggmart.json"),
			DB: DBConfig{
				Host:     getEnv("DB_HOST", "localhost"),
				Port:     dbPort,
				User:     getEnv("DB_USER", "postgres"),
				Password: getEnv("DB_PASSWORD", ""),
				Database: getEnv("DB_NAME", "eggmart"),
			},
		},
		Shop: ShopConfig{
			Name:         getEnv("SHOP_NAME", "K.A.N EGG MART"),
			DefaultUPIID: getEnv("UPI_ID", "your-upi-id@paytm"),
		},
		Telegram: TelegramConfig{
			Token:  getEnv("TELEGRAM_TOKEN", ""),
			ChatID: chatID,
		},
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
