// Package db opens the optional gorm database that stores detection history.
package db

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"animal_detector/internal/platform/env"
)

// retryInterval は接続リトライの間隔です。
const retryInterval = 3 * time.Second

// ErrNotConfigured は DB_DRIVER が未設定の場合に返されます。
var ErrNotConfigured = errors.New("database is not configured")

// Config はデータベース接続設定です。
type Config struct {
	Driver   string // "sqlite" または "postgres"
	Path     string // sqlite のファイルパス
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	ConnectTimeout time.Duration
	RunMigrations  bool
}

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
func LoadConfigFromEnv() Config {
	return Config{
		Driver:         env.String("DB_DRIVER", ""),
		Path:           env.String("DB_PATH", "detections.db"),
		Host:           env.String("DB_HOST", "localhost"),
		Port:           env.String("DB_PORT", "5432"),
		User:           env.String("DB_USER", ""),
		Password:       env.String("DB_PASSWORD", ""),
		Name:           env.String("DB_NAME", ""),
		SSLMode:        env.String("DB_SSLMODE", "disable"),
		ConnectTimeout: env.Duration("DB_CONNECT_TIMEOUT", 60*time.Second),
		RunMigrations:  env.Bool("RUN_MIGRATIONS", true),
	}
}

// BuildDSN はドライバーに応じた接続文字列を生成します。
func BuildDSN(cfg Config) string {
	if cfg.Driver == "sqlite" {
		return cfg.Path
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

// Opener はDSNからgorm.DBを開く関数です。テストで差し替え可能にするために分離しています。
type Opener func(dsn string) (*gorm.DB, error)

// OpenerFor はドライバー名に対応するOpenerを返します。
func OpenerFor(driver string) (Opener, error) {
	switch driver {
	case "sqlite":
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
		}, nil
	case "postgres":
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), &gorm.Config{})
		}, nil
	case "":
		return nil, ErrNotConfigured
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

// ConnectWithRetry は timeout に達するまで retryInterval 間隔で接続を試みます。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "interval", retryInterval)
		time.Sleep(retryInterval)
	}
}

// OpenDB は設定に従って接続し、RunMigrations が true の場合は models をマイグレーションします。
func OpenDB(cfg Config, models ...any) (*gorm.DB, error) {
	open, err := OpenerFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := ConnectWithRetry(BuildDSN(cfg), cfg.ConnectTimeout, open)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations && len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}

	slog.Info("database connection successful", "driver", cfg.Driver)
	return db, nil
}
