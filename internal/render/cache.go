package render

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	stderrors "errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"qr-engine/internal/common/errors"
	"qr-engine/internal/common/logger"
	"qr-engine/internal/common/metrics"
)

const cacheKeyPrefix = "qr:render:"

type cacheEntry struct {
	ContentType string `msgpack:"contentType"`
	Image       []byte `msgpack:"image"`
	CreatedAt   int64  `msgpack:"createdAt"`
}

// CachingRenderer serves repeated renders from Redis. Cache failures are
// logged and the call falls through to the wrapped renderer.
type CachingRenderer struct {
	next   Renderer
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
	now    func() time.Time
}

func NewCachingRenderer(next Renderer, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachingRenderer {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &CachingRenderer{next: next, redis: rdb, ttl: ttl, logger: log, now: time.Now}
}

// CacheKey is the Redis key for a payload rendered with normalized opts.
func CacheKey(payload string, opts StyleOptions) string {
	sum := sha256.Sum256([]byte(payload + "|" + opts.key()))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

func (c *CachingRenderer) Render(ctx context.Context, payload string, opts StyleOptions) ([]byte, error) {
	key := CacheKey(payload, opts)

	img, err := c.get(ctx, key)
	switch {
	case err == nil:
		metrics.QRRenderCacheTotal.WithLabelValues(metrics.CacheHit).Inc()
		return img, nil
	case stderrors.Is(err, redis.Nil):
		metrics.QRRenderCacheTotal.WithLabelValues(metrics.CacheMiss).Inc()
	default:
		metrics.QRRenderCacheTotal.WithLabelValues(metrics.CacheBypass).Inc()
		c.logger.Warn("render cache read failed, bypassing", map[string]interface{}{
			"key":   key,
			"error": errors.NewCacheUnavailableError(err).Error(),
		})
		return c.next.Render(ctx, payload, opts)
	}

	img, err = c.next.Render(ctx, payload, opts)
	if err != nil {
		return nil, err
	}
	c.put(ctx, key, opts.ContentType(), img)
	return img, nil
}

func (c *CachingRenderer) get(ctx context.Context, key string) ([]byte, error) {
	raw, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}
	var entry cacheEntry
	if err := msgpack.Unmarshal(raw, &entry); err != nil {
		return nil, err
	}
	return entry.Image, nil
}

func (c *CachingRenderer) put(ctx context.Context, key, contentType string, img []byte) {
	data, err := msgpack.Marshal(&cacheEntry{
		ContentType: contentType,
		Image:       img,
		CreatedAt:   c.now().Unix(),
	})
	if err != nil {
		c.logger.Warn("render cache encode failed", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("render cache write failed", map[string]interface{}{
			"key":   key,
			"error": errors.NewCacheUnavailableError(err).Error(),
		})
	}
}
