package prodsearch

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/prodsearch/internal/domain"
	"github.com/kailas-cloud/prodsearch/internal/domain/intent"
)

// Extractor turns a free-text query into Criteria.
// Plug in a custom model with WithExtractor.
type Extractor interface {
	Extract(ctx context.Context, query string) (Extraction, error)
}

// Extraction is the structured reading of a query.
type Extraction struct {
	Criteria Criteria
	// Matched is false when the query carried no structured intent.
	Matched      bool
	PromptTokens int
	TotalTokens  int
}

// extractorAdapter wraps a public Extractor to satisfy the internal intent.Extractor.
type extractorAdapter struct {
	inner Extractor
}

func (a *extractorAdapter) Extract(ctx context.Context, query string) (intent.Extraction, error) {
	ext, err := a.inner.Extract(ctx, query)
	if err != nil {
		return intent.Extraction{}, fmt.Errorf("extract: %w", err)
	}
	c, err := criteriaToDomain(ext.Criteria)
	if err != nil {
		return intent.Extraction{}, fmt.Errorf("%w: %w", domain.ErrMalformedExtraction, err)
	}
	return intent.Extraction{
		Criteria:     c,
		Matched:      ext.Matched,
		PromptTokens: ext.PromptTokens,
		TotalTokens:  ext.TotalTokens,
	}, nil
}
