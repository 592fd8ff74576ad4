package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	Navigation  NavigationConfig
	Reservation ReservationConfig
	Redis       RedisConfig
	AMQP        AMQPConfig
	Worker      WorkerConfig
}

type AppConfig struct {
	Name       string `validate:"required"`
	Port       string `validate:"required,numeric"`
	Debug      bool
	LogPath    string
	AdminToken string
}

type DatabaseConfig struct {
	Host     string `validate:"required"`
	Port     string `validate:"required,numeric"`
	Name     string `validate:"required"`
	User     string `validate:"required"`
	Password string
	MaxConns int32 `validate:"min=1"`
	Migrate  bool
}

type NavigationConfig struct {
	// CodecKey obfuscates navigation tokens. It is not a secret in the
	// cryptographic sense.
	CodecKey string `validate:"required,min=13"`
	Path     string `validate:"required,startswith=/"`
}

type ReservationConfig struct {
	Epoch time.Time `validate:"required"`
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int `validate:"min=0"`
	CacheTTL time.Duration
}

// Enabled reports whether a Redis address was configured.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type AMQPConfig struct {
	URL         string
	TicketQueue string `validate:"required"`
}

func (c AMQPConfig) Enabled() bool {
	return c.URL != ""
}

type WorkerConfig struct {
	CleanInterval    time.Duration `validate:"gt=0"`
	ExpireAfter      time.Duration `validate:"gt=0"`
	ScheduleInterval time.Duration `validate:"gt=0"`
	DaysAhead        int           `validate:"min=0"`
}

func LoadConfig() (*Config, error) {
	return loadConfig(".env")
}

func loadConfig(file string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(file)
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "kino-booking")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIGRATE", true)
	v.SetDefault("NAVIGATION_PATH", "/kino")
	v.SetDefault("RESERVATION_EPOCH", "2025-01-01T00:00:00Z")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CATALOG_CACHE_TTL", "10m")
	v.SetDefault("AMQP_TICKET_QUEUE", "ticket.issued")
	v.SetDefault("RESERVATION_CLEAN_INTERVAL", "1m")
	v.SetDefault("RESERVATION_EXPIRE_AFTER", "5m")
	v.SetDefault("SHOW_SCHEDULE_INTERVAL", "1h")
	v.SetDefault("SHOW_DAYS_AHEAD", 2)

	if err := v.ReadInConfig(); err != nil {
		// Environment variables alone are enough
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.AutomaticEnv()

	epoch, err := time.Parse(time.RFC3339, v.GetString("RESERVATION_EPOCH"))
	if err != nil {
		return nil, fmt.Errorf("parse RESERVATION_EPOCH: %w", err)
	}

	config := &Config{
		App: AppConfig{
			Name:       v.GetString("APP_NAME"),
			Port:       v.GetString("PORT"),
			Debug:      v.GetBool("DEBUG"),
			LogPath:    v.GetString("LOG_PATH"),
			AdminToken: v.GetString("ADMIN_TOKEN"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
			Migrate:  v.GetBool("DB_MIGRATE"),
		},
		Navigation: NavigationConfig{
			CodecKey: v.GetString("CODEC_KEY"),
			Path:     v.GetString("NAVIGATION_PATH"),
		},
		Reservation: ReservationConfig{
			Epoch: epoch,
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			CacheTTL: v.GetDuration("CATALOG_CACHE_TTL"),
		},
		AMQP: AMQPConfig{
			URL:         v.GetString("AMQP_URL"),
			TicketQueue: v.GetString("AMQP_TICKET_QUEUE"),
		},
		Worker: WorkerConfig{
			CleanInterval:    v.GetDuration("RESERVATION_CLEAN_INTERVAL"),
			ExpireAfter:      v.GetDuration("RESERVATION_EXPIRE_AFTER"),
			ScheduleInterval: v.GetDuration("SHOW_SCHEDULE_INTERVAL"),
			DaysAhead:        v.GetInt("SHOW_DAYS_AHEAD"),
		},
	}

	if errs := ValidateStruct(config); len(errs) > 0 {
		return nil, fmt.Errorf("invalid config: %s", FormatValidationErrors(errs))
	}

	return config, nil
}
