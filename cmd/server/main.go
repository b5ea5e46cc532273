package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"animal_detector/internal/app/di"
	"animal_detector/internal/app/router"
	authhandler "animal_detector/internal/feature/auth/transport/handler"
	"animal_detector/internal/feature/detection/adapters/history"
	"animal_detector/internal/feature/detection/adapters/upload"
	detectionhandler "animal_detector/internal/feature/detection/transport/handler"
	"animal_detector/internal/feature/detection/usecase"
	infradb "animal_detector/internal/platform/db"
	"animal_detector/internal/platform/env"
	platformhandler "animal_detector/internal/platform/http/handler"
	infraredis "animal_detector/internal/platform/redis"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	health := map[string]platformhandler.Check{}

	// Redis（推論キャッシュ）
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(ctx, infraredis.LoadConfig()); err != nil {
		log.Println("[WARN] Redis unavailable. Running without inference cache:", err)
	} else {
		rdb = tmp
		health["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// db（検出履歴）
	var db *gorm.DB
	if tmp, err := infradb.OpenDB(infradb.LoadConfigFromEnv(), &history.DetectionModel{}); err != nil {
		if !errors.Is(err, infradb.ErrNotConfigured) {
			log.Fatalf("failed to open database: %v", err)
		}
		log.Println("[WARN] DB_DRIVER not set. Detection history disabled.")
	} else {
		db = tmp
		health["db"] = func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}

	// Adapters
	detector, closeDetector, err := di.NewDetector(ctx, rdb)
	if err != nil {
		log.Fatalf("failed to create detector: %v", err)
	}
	defer func() {
		if err := closeDetector(); err != nil {
			log.Println("[ERROR] Failed to close detector:", err)
		}
	}()

	notifier, err := di.NewNotifier(ctx)
	if err != nil {
		log.Fatalf("failed to create notifier: %v", err)
	}
	if notifier == nil {
		log.Println("[WARN] MAILJET_API_KEY not set. Email alerts disabled.")
	}

	sheetLog := di.NewSheetLog()
	sheetPath := ""
	if sheetLog != nil {
		sheetPath = sheetLog.Path()
	}

	// Usecase
	detectionUC := usecase.NewDetectionUsecase(detector, upload.NewFileStore(upload.LoadPath()), notifier, di.NewPolicy(),
		di.NewRecorders(db, sheetLog)...)
	historyUC := usecase.NewHistoryUsecase(di.NewHistoryRepository(db), sheetPath)
	authUC := di.NewAuthUsecase()

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv("JWT_SECRET") == "" {
		log.Println("[WARN] JWT_SECRET is not set. Operator endpoints will reject every request.")
	}

	// ルータ生成
	r := router.NewRouter(env.String("FRONTEND_DIR", "frontend"), router.Handlers{
		Auth:      authhandler.NewAuthHandler(authUC),
		Detection: detectionhandler.NewDetectionHandler(detectionUC),
		History:   detectionhandler.NewHistoryHandler(historyUC),
		Health:    health,
	})

	srv := &http.Server{
		Addr:              ":" + env.String("PORT", "8080"),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      90 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("server listening", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
