package config

import (
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type Config struct {
	DB       DBConfig
	Telegram TelegramConfig
	Payment  PaymentConfig
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type TelegramConfig struct {
	Token   string
	AdminID int64 // the only user allowed to run /admin_orders
}

type PaymentConfig struct {
	ProviderToken string
	Payload       string // correlation token checked at pre-checkout
	Currency      string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	adminID, _ := strconv.ParseInt(getEnv("ADMIN_ID", "0"), 10, 64)

	payload := getEnv("PAYMENT_PAYLOAD", "")
	if payload == "" {
		// One fixed token per process; every invoice carries it and
		// pre-checkout rejects anything else.
		payload = uuid.NewString()
	}

	return &Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     port,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "food_delivery"),
		},
		Telegram: TelegramConfig{
			Token:   getEnv("TOKEN", ""),
			AdminID: adminID,
		},
		Payment: PaymentConfig{
			ProviderToken: getEnv("PROVIDER_TOKEN", ""),
			Payload:       payload,
			Currency:      getEnv("PAYMENT_CURRENCY", "RUB"),
		},
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
