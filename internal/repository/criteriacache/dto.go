package criteriacache

import (
	"github.com/kailas-cloud/prodsearch/internal/domain/search/criteria"
)

// entry is the cached JSON form of an extraction. Token counts are not stored,
// a hit consumes none.
type entry struct {
	Matched     bool     `json:"matched"`
	Category    string   `json:"category,omitempty"`
	MinPrice    *float64 `json:"min_price,omitempty"`
	MaxPrice    *float64 `json:"max_price,omitempty"`
	MinRating   *float64 `json:"min_rating,omitempty"`
	MaxRating   *float64 `json:"max_rating,omitempty"`
	InStockOnly bool     `json:"in_stock_only,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	SortBy      string   `json:"sort_by,omitempty"`
	Limit       int      `json:"limit,omitempty"`
	FindExtreme string   `json:"find_extreme,omitempty"`
}

func toEntry(c criteria.Criteria, matched bool) entry {
	p := c.Params()
	return entry{
		Matched:     matched,
		Category:    p.Category,
		MinPrice:    p.MinPrice,
		MaxPrice:    p.MaxPrice,
		MinRating:   p.MinRating,
		MaxRating:   p.MaxRating,
		InStockOnly: p.InStockOnly,
		Keywords:    p.Keywords,
		SortBy:      p.SortBy,
		Limit:       p.Limit,
		FindExtreme: p.FindExtreme,
	}
}

// toCriteria revalidates the cached fields, a stale entry written by an older
// build with a since-removed enum value fails here instead of in the engine.
func (e entry) toCriteria() (criteria.Criteria, error) {
	return criteria.New(criteria.Params{
		Category:    e.Category,
		MinPrice:    e.MinPrice,
		MaxPrice:    e.MaxPrice,
		MinRating:   e.MinRating,
		MaxRating:   e.MaxRating,
		InStockOnly: e.InStockOnly,
		Keywords:    e.Keywords,
		SortBy:      e.SortBy,
		Limit:       e.Limit,
		FindExtreme: e.FindExtreme,
	})
}
