// Package health aggregates component checks for the health endpoint.
package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates an optional component is failing; filtering still works.
	Degraded Status = "degraded"
	// Unhealthy indicates the catalog is unusable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names reported in Report.Checks.
const (
	ComponentCatalog = "catalog"
	ComponentCache   = "cache"
	ComponentIntent  = "intent"
)

// Report aggregates health check results.
type Report struct {
	Status       Status
	Checks       map[string]CheckResult
	CatalogItems int
}

// Service coordinates health checks.
type Service struct {
	catalog CatalogReader
	cache   CachePinger
	intent  IntentChecker
}

// New creates a Service. cache and intent can be nil when not configured.
func New(catalog CatalogReader, cache CachePinger, intent IntentChecker) *Service {
	return &Service{catalog: catalog, cache: cache, intent: intent}
}

// Check runs health checks against all configured components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 3)

	items := s.catalog.Len()
	checks[ComponentCatalog] = resultOf(items > 0)

	if s.cache != nil {
		checks[ComponentCache] = resultOf(s.cache.Ping(ctx) == nil)
	}
	if s.intent != nil {
		checks[ComponentIntent] = resultOf(s.intent.HealthCheck(ctx) == nil)
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}
	if checks[ComponentCatalog] == CheckError {
		status = Unhealthy
	}

	return Report{Status: status, Checks: checks, CatalogItems: items}
}

func resultOf(ok bool) CheckResult {
	if ok {
		return CheckOK
	}
	return CheckError
}
