// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"animal_detector/internal/feature/detection/adapters/cache"
	"animal_detector/internal/feature/detection/adapters/history"
	"animal_detector/internal/feature/detection/adapters/roboflow"
	"animal_detector/internal/feature/detection/adapters/sheet"
	"animal_detector/internal/feature/detection/adapters/vision"
	"animal_detector/internal/feature/detection/usecase"
	"animal_detector/internal/platform/env"
	infrahttp "animal_detector/internal/platform/http"
)

const (
	ProviderRoboflow = "roboflow"
	ProviderVision   = "vision"
)

// NewDetector creates the configured inference provider wrapped in the Redis cache.
// The returned close func releases provider resources and is never nil.
func NewDetector(ctx context.Context, rdb *redis.Client) (usecase.Detector, func() error, error) {
	noop := func() error { return nil }

	var (
		inner   usecase.Detector
		closeFn = noop
	)
	switch provider := strings.ToLower(env.String("INFERENCE_PROVIDER", ProviderRoboflow)); provider {
	case ProviderRoboflow:
		cfg := roboflow.LoadConfig()
		d, err := roboflow.NewRoboflowDetector(cfg, infrahttp.NewHTTPClient(cfg.Timeout))
		if err != nil {
			return nil, noop, err
		}
		inner = d
	case ProviderVision:
		d, err := vision.NewVisionDetector(ctx)
		if err != nil {
			return nil, noop, err
		}
		inner, closeFn = d, d.Close
	default:
		return nil, noop, fmt.Errorf("unsupported INFERENCE_PROVIDER %q", provider)
	}

	ttl := env.Duration("INFERENCE_CACHE_TTL", cache.DefaultTTL)
	return cache.NewCachingDetector(rdb, ttl, inner, cache.DefaultNamespace), closeFn, nil
}

// NewPolicy reads DETECTION_MIN_CONFIDENCE. 0 keeps every allow-listed detection.
func NewPolicy() usecase.Policy {
	minConf := env.Float("DETECTION_MIN_CONFIDENCE", 0)
	if minConf < 0 || minConf > 100 {
		slog.Warn("DETECTION_MIN_CONFIDENCE out of range; using 0", "value", minConf)
		minConf = 0
	}
	return usecase.Policy{MinConfidence: minConf}
}

// NewSheetLog returns the spreadsheet log, or nil when DETECTION_SHEET_PATH is empty.
func NewSheetLog() *sheet.ExcelLog {
	path := sheet.LoadPath()
	if path == "" {
		return nil
	}
	return sheet.NewExcelLog(path)
}

// NewRecorders returns the enabled detection recorders in write order: spreadsheet, then database.
func NewRecorders(db *gorm.DB, sheetLog *sheet.ExcelLog) []usecase.DetectionRecorder {
	var recorders []usecase.DetectionRecorder
	if sheetLog != nil {
		recorders = append(recorders, sheetLog)
	}
	if db != nil {
		recorders = append(recorders, history.NewDetectionRepository(db))
	}
	return recorders
}

// NewHistoryRepository returns the gorm history repository, or nil without a database.
func NewHistoryRepository(db *gorm.DB) usecase.HistoryRepository {
	if db == nil {
		return nil
	}
	return history.NewDetectionRepository(db)
}
