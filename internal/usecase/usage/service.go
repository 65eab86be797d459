// Package usage reports intent token consumption against the configured budget.
package usage

import (
	"context"
	"time"

	domusage "github.com/kailas-cloud/prodsearch/internal/domain/usage"
	"github.com/kailas-cloud/prodsearch/internal/domain/usage/budget"
)

// Service handles usage reporting.
type Service struct {
	br  BudgetReader
	now func() time.Time
}

// New creates a Service. br can be nil when no extractor is configured.
func New(br BudgetReader) *Service {
	return &Service{br: br, now: func() time.Time { return time.Now().UTC() }}
}

// GetReport builds a usage report for the period. Anything but day reports the month.
func (s *Service) GetReport(_ context.Context, period domusage.Period) domusage.Report {
	now := s.now()

	var (
		start, end             time.Time
		limit, used, remaining int64
		provider               string
	)

	if period == domusage.PeriodDay {
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 0, 1)
		if s.br != nil {
			limit, used, remaining = s.br.DailyLimit(), s.br.DailyUsed(), s.br.RemainingDaily()
		}
	} else {
		period = domusage.PeriodMonth
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, 0)
		if s.br != nil {
			limit, used, remaining = s.br.MonthlyLimit(), s.br.MonthlyUsed(), s.br.RemainingMonthly()
		}
	}
	if s.br != nil {
		provider = s.br.Provider()
	}

	exhausted := limit > 0 && remaining <= 0
	b := budget.New(limit, remaining, exhausted, end.UnixMilli())

	return domusage.NewReport(period, start.UnixMilli(), end.UnixMilli(), provider, used, b)
}
