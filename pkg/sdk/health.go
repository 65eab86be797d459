package prodsearch

import (
	"context"

	healthuc "github.com/kailas-cloud/prodsearch/internal/usecase/health"
)

// HealthStatus represents the aggregated client health.
type HealthStatus struct {
	Status       string            // "ok", "degraded", "error"
	Checks       map[string]string // component → "ok"/"error"
	CatalogItems int
}

// Health checks the catalog and, when configured, the cache and the extractor.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status:       string(report.Status),
		Checks:       checks,
		CatalogItems: report.CatalogItems,
	}
}

// healthUseCase is the internal interface for health checks.
type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
