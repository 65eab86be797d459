package domain

import "context"

type intentUsageKey struct{}

// IntentUsage collects intent extraction token usage for a single HTTP request.
// The handler puts a mutable pointer into the context before calling the service;
// the service writes after extraction; the handler reads it for response headers.
type IntentUsage struct {
	TotalTokens int
	Used        bool // true if extraction ran, even on a cache hit with 0 tokens
}

// NewContextWithUsage returns a context with an intent usage collector.
func NewContextWithUsage(ctx context.Context) (context.Context, *IntentUsage) {
	u := &IntentUsage{}
	return context.WithValue(ctx, intentUsageKey{}, u), u
}

// UsageFromContext extracts the usage collector from context. Returns nil if not set.
func UsageFromContext(ctx context.Context) *IntentUsage {
	u, _ := ctx.Value(intentUsageKey{}).(*IntentUsage)
	return u
}

// AddTokens records consumed tokens.
func (u *IntentUsage) AddTokens(n int) {
	if u != nil {
		u.TotalTokens += n
		u.Used = true
	}
}
