package db

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestBuildDSN_Postgres はPostgreSQL用のDSN文字列が正しく生成されることを検証します。
func TestBuildDSN_Postgres(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Driver:   "postgres",
		User:     "testuser",
		Password: "testpass",
		Name:     "testdb",
		Host:     "localhost",
		Port:     "5432",
		SSLMode:  "disable",
	}

	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	assert.Equal(t, expected, BuildDSN(cfg))
}

// TestBuildDSN_SQLite はSQLiteの場合にファイルパスがそのままDSNになることを検証します。
func TestBuildDSN_SQLite(t *testing.T) {
	t.Parallel()

	cfg := Config{Driver: "sqlite", Path: "/var/lib/detector/detections.db", Host: "ignored"}

	assert.Equal(t, "/var/lib/detector/detections.db", BuildDSN(cfg))
}

// TestOpenerFor はドライバー名ごとの結果を検証します。
func TestOpenerFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		driver  string
		wantErr error
	}{
		{"sqlite", nil},
		{"postgres", nil},
		{"", ErrNotConfigured},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			t.Parallel()

			open, err := OpenerFor(tt.driver)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, open)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, open)
		})
	}

	_, err := OpenerFor("mysql")
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}

// TestConnectWithRetry_SuccessOnFirstTry は初回接続成功時にリトライせずDBを返すことを検証します。
func TestConnectWithRetry_SuccessOnFirstTry(t *testing.T) {
	t.Parallel()

	mockDB := &gorm.DB{}
	attempts := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attempts++
		return mockDB, nil
	}

	db, err := ConnectWithRetry("test-dsn", 5*time.Second, opener)

	require.NoError(t, err)
	assert.Same(t, mockDB, db)
	assert.Equal(t, 1, attempts)
}

// TestConnectWithRetry_RetriesOnFailure は接続失敗時にリトライして最終的に成功することを検証します。
func TestConnectWithRetry_RetriesOnFailure(t *testing.T) {
	// リトライ待機に時間がかかるため並列実行しない

	mockDB := &gorm.DB{}
	attempts := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attempts++
		if attempts < 2 {
			return nil, errors.New("connection refused")
		}
		return mockDB, nil
	}

	db, err := ConnectWithRetry("test-dsn", 10*time.Second, opener)

	require.NoError(t, err)
	assert.Same(t, mockDB, db)
	assert.Equal(t, 2, attempts)
}

// TestConnectWithRetry_TimeoutAfterRetries はタイムアウト後にエラーが返されることを検証します。
func TestConnectWithRetry_TimeoutAfterRetries(t *testing.T) {
	t.Parallel()

	attempts := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attempts++
		return nil, errors.New("connection refused")
	}

	_, err := ConnectWithRetry("test-dsn", 100*time.Millisecond, opener)

	assert.ErrorContains(t, err, "connection refused")
	assert.Equal(t, 1, attempts)
}

type migrationProbe struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

// TestOpenDB_SQLite はSQLiteファイルを開きマイグレーションが実行されることを検証します。
func TestOpenDB_SQLite(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Driver:         "sqlite",
		Path:           filepath.Join(t.TempDir(), "test.db"),
		ConnectTimeout: time.Second,
		RunMigrations:  true,
	}

	db, err := OpenDB(cfg, &migrationProbe{})
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&migrationProbe{}))
}

// TestOpenDB_NotConfigured はDB_DRIVER未設定時にErrNotConfiguredが返されることを検証します。
func TestOpenDB_NotConfigured(t *testing.T) {
	t.Parallel()

	_, err := OpenDB(Config{})

	assert.ErrorIs(t, err, ErrNotConfigured)
}

// TestLoadConfigFromEnv は環境変数からデータベース設定が正しく読み込まれることを検証します。
func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_USER", "envuser")
	t.Setenv("DB_PASSWORD", "envpass")
	t.Setenv("DB_NAME", "envdb")
	t.Setenv("DB_HOST", "envhost")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_SSLMODE", "require")
	t.Setenv("RUN_MIGRATIONS", "false")

	cfg := LoadConfigFromEnv()

	assert.Equal(t, "postgres", cfg.Driver)
	assert.Equal(t, "envuser", cfg.User)
	assert.Equal(t, "envpass", cfg.Password)
	assert.Equal(t, "envdb", cfg.Name)
	assert.Equal(t, "envhost", cfg.Host)
	assert.Equal(t, "5433", cfg.Port)
	assert.Equal(t, "require", cfg.SSLMode)
	assert.False(t, cfg.RunMigrations)
	assert.Equal(t, 60*time.Second, cfg.ConnectTimeout)
}
