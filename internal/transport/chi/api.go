package chi

import (
	"time"

	"github.com/kailas-cloud/prodsearch/internal/domain/product"
	"github.com/kailas-cloud/prodsearch/internal/domain/search/criteria"
)

// ErrorCode is a machine-readable error identifier returned to clients.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest          ErrorCode = "bad_request"
	ErrorCodeValidationFailed    ErrorCode = "validation_failed"
	ErrorCodeUnauthorized        ErrorCode = "unauthorized"
	ErrorCodeIntentProviderError ErrorCode = "intent_provider_error"
	ErrorCodeMalformedExtraction ErrorCode = "malformed_extraction"
	ErrorCodeRateLimited         ErrorCode = "rate_limited"
	ErrorCodeQuotaExceeded       ErrorCode = "intent_quota_exceeded"
	ErrorCodeNotFound            ErrorCode = "not_found"
	ErrorCodeInternalError       ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// Criteria is the wire form of a product query. Absent fields impose no constraint.
type Criteria struct {
	Category    *string   `json:"category,omitempty"`
	MinPrice    *float64  `json:"min_price,omitempty"`
	MaxPrice    *float64  `json:"max_price,omitempty"`
	MinRating   *float64  `json:"min_rating,omitempty"`
	MaxRating   *float64  `json:"max_rating,omitempty"`
	InStockOnly *bool     `json:"in_stock_only,omitempty"`
	Keywords    *[]string `json:"keywords,omitempty"`
	SortBy      *string   `json:"sort_by,omitempty"`
	Limit       *int      `json:"limit,omitempty"`
	FindExtreme *string   `json:"find_extreme,omitempty"`
}

// ListProductsParams holds the GET /v1/products query string.
type ListProductsParams = Criteria

// SearchRequest is the body of POST /v1/search.
type SearchRequest struct {
	Query string `json:"query"`
}

// Product is the wire form of a catalog entry.
type Product struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Rating   float64 `json:"rating"`
	InStock  bool    `json:"in_stock"`
}

// ProductListResponse is returned by the filter endpoints.
type ProductListResponse struct {
	Count int       `json:"count"`
	Items []Product `json:"items"`
}

// SearchResponse is returned by POST /v1/search.
type SearchResponse struct {
	Criteria Criteria  `json:"criteria"`
	Matched  bool      `json:"matched"`
	Count    int       `json:"count"`
	Items    []Product `json:"items"`
}

// UsageResponse is returned by GET /v1/usage.
type UsageResponse struct {
	Period        string       `json:"period"`
	Provider      string       `json:"provider,omitempty"`
	TokensUsed    int64        `json:"tokens_used"`
	PeriodStartAt *time.Time   `json:"period_start_at,omitempty"`
	PeriodEndAt   *time.Time   `json:"period_end_at,omitempty"`
	Budget        BudgetStatus `json:"budget"`
}

// BudgetStatus describes the token budget for the reported period.
type BudgetStatus struct {
	TokensLimit     int64      `json:"tokens_limit"`
	TokensRemaining int64      `json:"tokens_remaining"`
	IsExhausted     bool       `json:"is_exhausted"`
	ResetsAt        *time.Time `json:"resets_at,omitempty"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status       string            `json:"status"`
	Checks       map[string]string `json:"checks"`
	CatalogItems int               `json:"catalog_items"`
}

func criteriaFromAPI(c Criteria) (criteria.Criteria, error) {
	p := criteria.Params{
		Category:    deref(c.Category),
		MinPrice:    c.MinPrice,
		MaxPrice:    c.MaxPrice,
		MinRating:   c.MinRating,
		MaxRating:   c.MaxRating,
		InStockOnly: deref(c.InStockOnly),
		SortBy:      deref(c.SortBy),
		Limit:       deref(c.Limit),
		FindExtreme: deref(c.FindExtreme),
	}
	if c.Keywords != nil {
		p.Keywords = *c.Keywords
	}
	return criteria.New(p)
}

func criteriaToAPI(c criteria.Criteria) Criteria {
	p := c.Params()
	out := Criteria{
		Category:    nonZero(p.Category),
		MinPrice:    p.MinPrice,
		MaxPrice:    p.MaxPrice,
		MinRating:   p.MinRating,
		MaxRating:   p.MaxRating,
		InStockOnly: nonZero(p.InStockOnly),
		SortBy:      nonZero(p.SortBy),
		Limit:       nonZero(p.Limit),
		FindExtreme: nonZero(p.FindExtreme),
	}
	if len(p.Keywords) > 0 {
		out.Keywords = &p.Keywords
	}
	return out
}

func productsToAPI(products []product.Product) []Product {
	items := make([]Product, len(products))
	for i, p := range products {
		items[i] = Product{
			Name:     p.Name(),
			Category: string(p.Category()),
			Price:    p.Price(),
			Rating:   p.Rating(),
			InStock:  p.InStock(),
		}
	}
	return items
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func nonZero[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}
