// Package criteriacache caches intent extractions in a key-value store.
package criteriacache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/prodsearch/internal/db"
	"github.com/kailas-cloud/prodsearch/internal/domain/intent"
)

const cacheKeyPrefix = "criteria_cache:"

// store is the consumer interface for the criteria cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedExtractor is a caching decorator over an intent extractor.
// Identical queries against the same model reuse the stored criteria.
type CachedExtractor struct {
	inner      intent.Extractor
	store      store
	model      string
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
// A non-positive ttl keeps entries until evicted.
func New(
	inner intent.Extractor,
	s store,
	model string,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedExtractor {
	return &CachedExtractor{
		inner:      inner,
		store:      s,
		model:      model,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Extract returns cached criteria or calls the inner extractor.
// Cache hit: zero tokens. Failed extractions are never cached.
func (c *CachedExtractor) Extract(ctx context.Context, query string) (intent.Extraction, error) {
	key := c.cacheKey(query)

	if ext, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return ext, nil
	}

	c.incCache("miss")

	ext, err := c.inner.Extract(ctx, query)
	if err != nil {
		return intent.Extraction{}, fmt.Errorf("extract intent: %w", err)
	}

	c.putToCache(ctx, key, ext)
	return ext, nil
}

// HealthCheck delegates to inner if it supports health checks.
func (c *CachedExtractor) HealthCheck(ctx context.Context) error {
	if hc, ok := c.inner.(intent.HealthChecker); ok {
		return hc.HealthCheck(ctx) //nolint:wrapcheck // transparent decorator
	}
	return nil
}

func (c *CachedExtractor) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedExtractor) cacheKey(query string) string {
	h := sha256.New()
	h.Write([]byte(c.model))
	h.Write([]byte{0})
	h.Write([]byte(query))
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}

func (c *CachedExtractor) getFromCache(ctx context.Context, key string) (intent.Extraction, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached criteria", zap.String("key", key), zap.Error(err))
		}
		return intent.Extraction{}, false
	}
	if len(data) == 0 {
		return intent.Extraction{}, false
	}

	var e entry
	if err = json.Unmarshal(data, &e); err != nil {
		c.logger.Warn("Failed to parse cached criteria", zap.String("key", key), zap.Error(err))
		return intent.Extraction{}, false
	}
	crit, err := e.toCriteria()
	if err != nil {
		c.logger.Warn("Discarding invalid cached criteria", zap.String("key", key), zap.Error(err))
		return intent.Extraction{}, false
	}

	return intent.Extraction{Criteria: crit, Matched: e.Matched}, true
}

func (c *CachedExtractor) putToCache(ctx context.Context, key string, ext intent.Extraction) {
	data, err := json.Marshal(toEntry(ext.Criteria, ext.Matched))
	if err != nil {
		c.logger.Warn("Failed to encode criteria for cache", zap.Error(err))
		return
	}
	if err = c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache criteria", zap.String("key", key), zap.Error(err))
	}
}
