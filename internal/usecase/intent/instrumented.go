// Package intent wraps the intent extractor with budget enforcement and observability.
package intent

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	domintent "github.com/kailas-cloud/prodsearch/internal/domain/intent"
	"github.com/kailas-cloud/prodsearch/internal/metrics"
)

// BudgetChecker is the local interface for budget enforcement.
type BudgetChecker interface {
	Check(ctx context.Context) error
	Record(tokens int64)
	RemainingDaily() int64
	RemainingMonthly() int64
}

// InstrumentedExtractor wraps an extractor with budget enforcement and logging.
// Transport metrics (requests, duration, tokens) are recorded in transport/openai.
type InstrumentedExtractor struct {
	inner    domintent.Extractor
	provider string
	model    string
	budget   BudgetChecker
	logger   *zap.Logger
}

// NewInstrumentedExtractor wraps an extractor. budget may be nil (unlimited).
func NewInstrumentedExtractor(
	inner domintent.Extractor, provider, model string,
	budget BudgetChecker, logger *zap.Logger,
) *InstrumentedExtractor {
	return &InstrumentedExtractor{
		inner:    inner,
		provider: provider,
		model:    model,
		budget:   budget,
		logger:   logger,
	}
}

// Extract checks the budget, delegates, and records consumed tokens.
func (p *InstrumentedExtractor) Extract(ctx context.Context, query string) (domintent.Extraction, error) {
	if p.budget != nil {
		if err := p.budget.Check(ctx); err != nil {
			p.logger.Error("Intent budget exceeded",
				zap.String("provider", p.provider),
				zap.String("model", p.model),
				zap.Error(err),
			)
			return domintent.Extraction{}, fmt.Errorf("budget check: %w", err)
		}
	}

	start := time.Now()
	ext, err := p.inner.Extract(ctx, query)
	duration := time.Since(start)

	if err != nil {
		p.logger.Error("Intent extraction failed",
			zap.String("provider", p.provider),
			zap.String("model", p.model),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return domintent.Extraction{}, fmt.Errorf("extract: %w", err)
	}

	if p.budget != nil && ext.TotalTokens > 0 {
		p.budget.Record(int64(ext.TotalTokens))
		remaining := metrics.IntentBudgetTokensRemaining
		remaining.WithLabelValues(p.provider, "daily").Set(float64(p.budget.RemainingDaily()))
		remaining.WithLabelValues(p.provider, "monthly").Set(float64(p.budget.RemainingMonthly()))
	}

	if !ext.Matched {
		metrics.IntentUnmatchedTotal.WithLabelValues(p.provider, p.model).Inc()
	}

	p.logger.Debug("Intent extraction completed",
		zap.String("provider", p.provider),
		zap.String("model", p.model),
		zap.Duration("duration", duration),
		zap.Bool("matched", ext.Matched),
		zap.Int("prompt_tokens", ext.PromptTokens),
		zap.Int("total_tokens", ext.TotalTokens),
	)

	return ext, nil
}

// HealthCheck delegates to inner if it supports health checks.
func (p *InstrumentedExtractor) HealthCheck(ctx context.Context) error {
	if hc, ok := p.inner.(domintent.HealthChecker); ok {
		return hc.HealthCheck(ctx) //nolint:wrapcheck // transparent decorator
	}
	return nil
}
