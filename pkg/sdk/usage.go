package prodsearch

import (
	"context"
	"time"

	domusage "github.com/kailas-cloud/prodsearch/internal/domain/usage"
)

// UsagePeriod is the aggregation window for usage reports.
type UsagePeriod string

// UsagePeriod constants.
const (
	PeriodDay   UsagePeriod = "day"
	PeriodMonth UsagePeriod = "month"
)

// UsageReport contains extraction token usage for a UTC day or month.
type UsageReport struct {
	Period      UsagePeriod
	PeriodStart time.Time
	PeriodEnd   time.Time
	Provider    string
	TokensUsed  int64
	Budget      BudgetStatus
}

// BudgetStatus tracks token quota state. A zero TokensLimit means unlimited.
type BudgetStatus struct {
	TokensLimit     int64
	TokensRemaining int64
	IsExhausted     bool
	ResetsAt        time.Time
}

// Usage returns a token usage report. Unknown periods report the month.
func (c *Client) Usage(ctx context.Context, period UsagePeriod) UsageReport {
	report := c.usageSvc.GetReport(ctx, domusage.Period(period))
	b := report.Budget()

	return UsageReport{
		Period:      UsagePeriod(report.Period()),
		PeriodStart: time.UnixMilli(report.PeriodStart()).UTC(),
		PeriodEnd:   time.UnixMilli(report.PeriodEnd()).UTC(),
		Provider:    report.Provider(),
		TokensUsed:  report.TokensUsed(),
		Budget: BudgetStatus{
			TokensLimit:     b.TokensLimit(),
			TokensRemaining: b.TokensRemaining(),
			IsExhausted:     b.IsExhausted(),
			ResetsAt:        time.UnixMilli(b.ResetsAt()).UTC(),
		},
	}
}

// usageUseCase is the internal interface for usage reports.
type usageUseCase interface {
	GetReport(ctx context.Context, period domusage.Period) domusage.Report
}
