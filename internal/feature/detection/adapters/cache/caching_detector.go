// Package cache provides a Redis-backed cache in front of a Detector.
package cache

import (
	"context"
	"errors"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"animal_detector/internal/feature/detection/domain/entity"
	"animal_detector/internal/feature/detection/usecase"
)

const (
	// DefaultTTL is used when a non-positive TTL is given.
	DefaultTTL = 15 * time.Minute
	// DefaultNamespace prefixes every cache key.
	DefaultNamespace = "inference"
)

// CachingDetector decorates a Detector with Redis caching keyed by the
// SHA-256 of the image bytes. Identical uploads skip the inference call.
type CachingDetector struct {
	inner     usecase.Detector
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.Detector = (*CachingDetector)(nil)

// NewCachingDetector wraps inner. A nil rdb disables caching.
func NewCachingDetector(rdb *redis.Client, ttl time.Duration, inner usecase.Detector, namespace string) *CachingDetector {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &CachingDetector{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Detect returns cached predictions when present, otherwise calls the inner detector and caches the result.
func (c *CachingDetector) Detect(ctx context.Context, imageData []byte) ([]entity.Prediction, error) {
	if c.rdb == nil {
		return c.inner.Detect(ctx, imageData)
	}

	key := c.cacheKey(imageData)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Prediction
		if err := json.Unmarshal(b, &out); err == nil {
			slog.Debug("inference cache hit", "key", key)
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	} else if readFailed(err) {
		slog.Warn("inference cache read failed", "error", err)
	}

	// 2) Fallback to the provider
	out, err := c.inner.Detect(ctx, imageData)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
			slog.Warn("inference cache write failed", "error", err)
		}
	}

	return out, nil
}

// cacheKey returns "<namespace>:<sha256 hex>".
func (c *CachingDetector) cacheKey(imageData []byte) string {
	sum := sha256.Sum256(imageData)
	return c.namespace + ":" + hex.EncodeToString(sum[:])
}

// readFailed はキャッシュ未登録（redis.Nil、ラップされたものを含む）以外のエラーかどうかを返します。
func readFailed(err error) bool {
	return err != nil && !errors.Is(err, redis.Nil)
}
