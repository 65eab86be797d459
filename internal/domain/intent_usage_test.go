package domain

import (
	"context"
	"testing"
)

func TestUsageFromContext_Missing(t *testing.T) {
	if u := UsageFromContext(context.Background()); u != nil {
		t.Errorf("expected nil, got %+v", u)
	}
	// nil receiver must be safe
	UsageFromContext(context.Background()).AddTokens(5)
}

func TestUsageFromContext_Collects(t *testing.T) {
	ctx, u := NewContextWithUsage(context.Background())
	UsageFromContext(ctx).AddTokens(10)
	UsageFromContext(ctx).AddTokens(0)

	if u.TotalTokens != 10 {
		t.Errorf("TotalTokens = %d, want 10", u.TotalTokens)
	}
	if !u.Used {
		t.Error("Used = false after AddTokens")
	}
}

func TestInvalidCriteriaError(t *testing.T) {
	err := NewInvalidCriteria("sort_by", "random", "unknown sort key")
	want := `invalid criteria: sort_by "random": unknown sort key`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	bare := &InvalidCriteriaError{Field: "category", Value: "Garden"}
	if bare.Error() != `invalid criteria: category "Garden"` {
		t.Errorf("Error() = %q", bare.Error())
	}
}
