package prodsearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/prodsearch/internal/db"
	dbRedis "github.com/kailas-cloud/prodsearch/internal/db/redis"
	"github.com/kailas-cloud/prodsearch/internal/domain"
	"github.com/kailas-cloud/prodsearch/internal/domain/catalog"
	"github.com/kailas-cloud/prodsearch/internal/domain/intent"
	"github.com/kailas-cloud/prodsearch/internal/domain/product"
	"github.com/kailas-cloud/prodsearch/internal/domain/search/criteria"
	"github.com/kailas-cloud/prodsearch/internal/metrics"
	budgetrepo "github.com/kailas-cloud/prodsearch/internal/repository/budget"
	catalogrepo "github.com/kailas-cloud/prodsearch/internal/repository/catalog"
	"github.com/kailas-cloud/prodsearch/internal/repository/criteriacache"
	openaiIntent "github.com/kailas-cloud/prodsearch/internal/transport/openai"
	healthuc "github.com/kailas-cloud/prodsearch/internal/usecase/health"
	intentuc "github.com/kailas-cloud/prodsearch/internal/usecase/intent"
	searchuc "github.com/kailas-cloud/prodsearch/internal/usecase/search"
	usageuc "github.com/kailas-cloud/prodsearch/internal/usecase/usage"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultProvider         = "openai"
)

// Internal interfaces, swapped out in tests.
type searchUseCase interface {
	Search(ctx context.Context, query string) (searchuc.Outcome, error)
	Filter(ctx context.Context, c criteria.Criteria) searchuc.Outcome
	Products() []product.Product
}

// Client is the prodsearch SDK entry point. It is safe for concurrent use.
type Client struct {
	store     db.Store
	searchSvc searchUseCase
	healthSvc healthUseCase
	usageSvc  usageUseCase
	obs       *observer
}

// New creates a Client. A catalog is required (WithCatalogFile or WithProducts).
// The provided context is used for the cache readiness check and budget restore.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	var store db.Store
	if len(cfg.cacheAddrs) > 0 {
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:     cfg.cacheAddrs,
			Password:  cfg.cachePassword,
			KeyPrefix: domain.KeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("prodsearch: create cache store: %w", err)
		}
		if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			s.Close()
			return nil, fmt.Errorf("prodsearch: cache not ready: %w", err)
		}
		store = s
	}

	return wireClient(ctx, cat, store, cfg, obs), nil
}

func loadCatalog(cfg *clientConfig) (catalog.Catalog, error) {
	switch {
	case cfg.hasProducts:
		return catalogToDomain(cfg.products)
	case cfg.catalogPath != "":
		cat, err := catalogrepo.LoadFile(cfg.catalogPath)
		if err != nil {
			return catalog.Catalog{}, fmt.Errorf("prodsearch: %w", err)
		}
		return cat, nil
	default:
		return catalog.Catalog{}, errors.New("prodsearch: catalog required (use WithCatalogFile or WithProducts)")
	}
}

func wireClient(ctx context.Context, cat catalog.Catalog, store db.Store, cfg *clientConfig, obs *observer) *Client {
	logger := zap.NewNop()
	def := domain.DefaultIntentConfig()

	var (
		base     intent.Extractor
		provider = defaultProvider
		model    = cfg.model
	)
	switch {
	case cfg.extractor != nil:
		base = &extractorAdapter{inner: cfg.extractor}
		provider, model = "custom", "custom"
	case cfg.apiKey != "":
		if model == "" {
			model = def.Model
		}
		base = openaiIntent.NewExtractor(&openaiIntent.Config{
			APIKey:      cfg.apiKey,
			BaseURL:     cfg.baseURL,
			Model:       model,
			MaxQueryLen: def.MaxQueryLen,
			Provider:    provider,
			Logger:      logger,
		})
	}

	var (
		extractor    searchuc.IntentExtractor
		intentHealth healthuc.IntentChecker
		budgetReader usageuc.BudgetReader
		cachePinger  healthuc.CachePinger
	)
	if store != nil {
		cachePinger = store
	}

	if base != nil {
		action := intentuc.BudgetActionWarn
		if cfg.rejectOverrun {
			action = intentuc.BudgetActionReject
		}
		budget := intentuc.NewBudgetTracker(provider, cfg.dailyTokens, cfg.monthlyTokens, action, logger)
		if store != nil {
			budget.WithStore(ctx, budgetrepo.New(store, 0, 0))
			base = criteriacache.New(base, store, model, cfg.cacheTTL, metrics.CriteriaCacheTotal, logger)
		}
		budgetReader = budget

		chain := intent.NewNormalizedExtractor(
			intentuc.NewInstrumentedExtractor(base, provider, model, budget, logger),
		)
		extractor = chain
		intentHealth = chain
	}

	return &Client{
		store:     store,
		searchSvc: searchuc.New(cat, extractor),
		healthSvc: healthuc.New(cat, cachePinger, intentHealth),
		usageSvc:  usageuc.New(budgetReader),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Products returns the catalog in its original order.
func (c *Client) Products() []Product {
	return productsFromDomain(c.searchSvc.Products())
}

// Filter evaluates structured criteria against the catalog.
func (c *Client) Filter(ctx context.Context, crit Criteria) (products []Product, err error) {
	start := time.Now()
	defer func() { c.obs.observe("filter", start, len(products), err) }()

	dc, err := criteriaToDomain(crit)
	if err != nil {
		return nil, err
	}
	return productsFromDomain(c.searchSvc.Filter(ctx, dc).Products), nil
}

// Search extracts criteria from a free-text query and evaluates them.
// Requires WithOpenAI or WithExtractor.
func (c *Client) Search(ctx context.Context, query string) (res SearchResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, len(res.Products), err) }()

	ctx, usage := domain.NewContextWithUsage(ctx)
	out, err := c.searchSvc.Search(ctx, query)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search: %w", err)
	}
	return SearchResult{
		Criteria:    criteriaFromDomain(out.Criteria),
		Matched:     out.Matched,
		Products:    productsFromDomain(out.Products),
		TotalTokens: usage.TotalTokens,
	}, nil
}
