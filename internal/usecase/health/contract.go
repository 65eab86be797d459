package health

import "context"

// CatalogReader reports the loaded catalog size.
type CatalogReader interface {
	Len() int
}

// CachePinger checks criteria cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// IntentChecker checks intent provider availability.
type IntentChecker interface {
	HealthCheck(ctx context.Context) error
}
