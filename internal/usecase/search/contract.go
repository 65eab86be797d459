package search

import (
	"context"

	"github.com/kailas-cloud/prodsearch/internal/domain/intent"
)

// IntentExtractor turns a free-text query into structured criteria.
type IntentExtractor interface {
	Extract(ctx context.Context, query string) (intent.Extraction, error)
}
