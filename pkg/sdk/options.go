package prodsearch

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	catalogPath string
	products    []Product
	hasProducts bool

	apiKey    string
	baseURL   string
	model     string
	extractor Extractor

	cacheAddrs    []string
	cachePassword string
	cacheTTL      time.Duration

	dailyTokens   int64
	monthlyTokens int64
	rejectOverrun bool

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithCatalogFile loads the catalog from a JSON or YAML file.
func WithCatalogFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.catalogPath = path
	})
}

// WithProducts uses an in-memory catalog. Takes precedence over WithCatalogFile.
func WithProducts(products []Product) Option {
	return optionFunc(func(c *clientConfig) {
		c.products = products
		c.hasProducts = true
	})
}

// WithOpenAI enables natural-language search through an OpenAI-compatible API.
// Empty baseURL keeps the public endpoint; empty model uses the default.
func WithOpenAI(apiKey, baseURL, model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.apiKey = apiKey
		c.baseURL = baseURL
		c.model = model
	})
}

// WithExtractor sets a custom criteria extractor. Takes precedence over WithOpenAI.
func WithExtractor(e Extractor) Option {
	return optionFunc(func(c *clientConfig) {
		c.extractor = e
	})
}

// WithRedisCache caches extracted criteria in Redis or Valkey.
// A non-positive ttl keeps entries until evicted.
func WithRedisCache(addr, password string, ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheAddrs = []string{addr}
		c.cachePassword = password
		c.cacheTTL = ttl
	})
}

// WithTokenBudget caps extraction tokens per UTC day and month (0 = unlimited).
// With reject set, searches fail with ErrIntentQuotaExceeded once a cap is hit;
// otherwise overruns are only logged.
func WithTokenBudget(daily, monthly int64, reject bool) Option {
	return optionFunc(func(c *clientConfig) {
		c.dailyTokens = daily
		c.monthlyTokens = monthly
		c.rejectOverrun = reject
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
