// Package intent defines the contract between the search core and the
// natural-language intent extractor that turns free text into Criteria.
package intent

import (
	"context"
	"strings"

	"github.com/kailas-cloud/prodsearch/internal/domain/search/criteria"
)

// Extractor turns a free-text query into structured search criteria.
type Extractor interface {
	Extract(ctx context.Context, query string) (Extraction, error)
}

// HealthChecker verifies intent provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Extraction carries extracted criteria and token usage through the decorator chain.
// Matched is false when the provider produced no structured criteria; Criteria is
// then the zero value, which selects the whole catalog.
type Extraction struct {
	Criteria     criteria.Criteria
	Matched      bool
	PromptTokens int
	TotalTokens  int
}

// NormalizedExtractor is a domain decorator that trims and collapses whitespace
// before delegating, so equivalent queries share one cache entry.
type NormalizedExtractor struct {
	inner Extractor
}

// NewNormalizedExtractor wraps inner with query normalization.
func NewNormalizedExtractor(inner Extractor) *NormalizedExtractor {
	return &NormalizedExtractor{inner: inner}
}

// Extract normalizes the query and delegates.
func (n *NormalizedExtractor) Extract(ctx context.Context, query string) (Extraction, error) {
	return n.inner.Extract(ctx, Normalize(query))
}

// HealthCheck delegates to inner if it supports health checks.
func (n *NormalizedExtractor) HealthCheck(ctx context.Context) error {
	if hc, ok := n.inner.(HealthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	return nil
}

// Normalize trims the query and collapses internal whitespace runs to one space.
func Normalize(query string) string {
	return strings.Join(strings.Fields(query), " ")
}
