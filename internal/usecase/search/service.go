package search

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/prodsearch/internal/domain"
	"github.com/kailas-cloud/prodsearch/internal/domain/catalog"
	"github.com/kailas-cloud/prodsearch/internal/domain/product"
	"github.com/kailas-cloud/prodsearch/internal/domain/search/criteria"
	"github.com/kailas-cloud/prodsearch/internal/logger"
	"github.com/kailas-cloud/prodsearch/internal/metrics"
)

// Outcome is the result of one evaluation together with the criteria that produced it.
type Outcome struct {
	Criteria criteria.Criteria
	Matched  bool
	Products []product.Product
}

// Service answers product queries against an immutable catalog.
type Service struct {
	catalog   catalog.Catalog
	extractor IntentExtractor
}

// New creates a search service. extractor may be nil when only structured
// filtering is needed; Search then fails with ErrIntentProviderError.
func New(cat catalog.Catalog, extractor IntentExtractor) *Service {
	return &Service{catalog: cat, extractor: extractor}
}

// Search extracts criteria from a free-text query and evaluates them.
// A response without structured criteria yields the whole catalog.
func (s *Service) Search(ctx context.Context, query string) (Outcome, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Outcome{}, domain.ErrEmptyQuery
	}
	if s.extractor == nil {
		return Outcome{}, fmt.Errorf("%w: no extractor configured", domain.ErrIntentProviderError)
	}

	ctx = logger.With(ctx, zap.String("query", query))
	ext, err := s.extractor.Extract(ctx, query)
	if err != nil {
		return Outcome{}, fmt.Errorf("extract criteria: %w", err)
	}
	domain.UsageFromContext(ctx).AddTokens(ext.TotalTokens)

	if !ext.Matched {
		logger.FromContext(ctx).Debug("no structured criteria extracted, returning full catalog")
	}

	out := s.evaluate(ctx, ext.Criteria)
	out.Matched = ext.Matched
	return out, nil
}

// Filter evaluates already-structured criteria.
func (s *Service) Filter(ctx context.Context, c criteria.Criteria) Outcome {
	out := s.evaluate(ctx, c)
	out.Matched = true
	return out
}

// Products returns the full catalog in its original order.
func (s *Service) Products() []product.Product {
	return s.catalog.Products()
}

func (s *Service) evaluate(ctx context.Context, c criteria.Criteria) Outcome {
	products := Evaluate(s.catalog, c)

	path := "filter"
	if c.FindExtreme() != "" {
		path = "extreme"
	}
	outcome := "match"
	if len(products) == 0 {
		outcome = "empty"
	}
	metrics.SearchEvaluationsTotal.WithLabelValues(path, outcome).Inc()
	metrics.SearchResultSize.Observe(float64(len(products)))

	logger.FromContext(ctx).Debug("criteria evaluated",
		zap.String("path", path),
		zap.Int("catalog_size", s.catalog.Len()),
		zap.Int("results", len(products)),
	)

	return Outcome{Criteria: c, Products: products}
}
