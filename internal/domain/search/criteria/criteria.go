// Package criteria defines the validated, partially-specified product query.
//
// Every field is optional. An absent field imposes no constraint, so the zero
// Criteria matches the whole catalog in its original order.
package criteria

import (
	"math"
	"strconv"

	"github.com/kailas-cloud/prodsearch/internal/domain"
	"github.com/kailas-cloud/prodsearch/internal/domain/product"
	"github.com/kailas-cloud/prodsearch/internal/domain/search/extreme"
	"github.com/kailas-cloud/prodsearch/internal/domain/search/order"
)

// Params is the loosely-typed input accepted at the construction boundary.
// Enum fields are raw strings so that values coming from an untrusted
// extractor are checked here instead of deep inside the pipeline.
type Params struct {
	Category    string
	MinPrice    *float64
	MaxPrice    *float64
	MinRating   *float64
	MaxRating   *float64
	InStockOnly bool
	Keywords    []string
	SortBy      string
	Limit       int
	FindExtreme string
}

// Criteria is a validated product query.
type Criteria struct {
	category    product.Category
	minPrice    *float64
	maxPrice    *float64
	minRating   *float64
	maxRating   *float64
	inStockOnly bool
	keywords    []string
	sortBy      order.Key
	limit       int
	findExtreme extreme.Kind
}

// New validates params and creates Criteria.
// Unknown category, sort_by or find_extreme values and non-finite bounds fail
// with domain.ErrInvalidCriteria. A non-positive limit is treated as absent.
// Empty keywords are dropped since they match every name.
func New(p Params) (Criteria, error) {
	c := Criteria{inStockOnly: p.InStockOnly}

	if p.Category != "" {
		cat := product.Category(p.Category)
		if !cat.IsValid() {
			return Criteria{}, domain.NewInvalidCriteria("category", p.Category, "unknown category")
		}
		c.category = cat
	}

	bounds := []struct {
		field string
		in    *float64
		out   **float64
	}{
		{"min_price", p.MinPrice, &c.minPrice},
		{"max_price", p.MaxPrice, &c.maxPrice},
		{"min_rating", p.MinRating, &c.minRating},
		{"max_rating", p.MaxRating, &c.maxRating},
	}
	for _, b := range bounds {
		if b.in == nil {
			continue
		}
		v := *b.in
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Criteria{}, domain.NewInvalidCriteria(
				b.field, strconv.FormatFloat(v, 'g', -1, 64), "must be a finite number",
			)
		}
		*b.out = &v
	}

	for _, kw := range p.Keywords {
		if kw != "" {
			c.keywords = append(c.keywords, kw)
		}
	}

	if p.SortBy != "" {
		key := order.Key(p.SortBy)
		if !key.IsValid() {
			return Criteria{}, domain.NewInvalidCriteria("sort_by", p.SortBy, "unknown sort key")
		}
		c.sortBy = key
	}

	if p.Limit > 0 {
		c.limit = p.Limit
	}

	if p.FindExtreme != "" {
		kind := extreme.Kind(p.FindExtreme)
		if !kind.IsValid() {
			return Criteria{}, domain.NewInvalidCriteria("find_extreme", p.FindExtreme, "unknown extreme kind")
		}
		c.findExtreme = kind
	}

	return c, nil
}

// Category returns the category equality filter ("" when absent).
func (c Criteria) Category() product.Category { return c.category }

// MinPrice returns the inclusive lower price bound.
func (c Criteria) MinPrice() (float64, bool) { return deref(c.minPrice) }

// MaxPrice returns the inclusive upper price bound.
func (c Criteria) MaxPrice() (float64, bool) { return deref(c.maxPrice) }

// MinRating returns the inclusive lower rating bound.
func (c Criteria) MinRating() (float64, bool) { return deref(c.minRating) }

// MaxRating returns the inclusive upper rating bound.
func (c Criteria) MaxRating() (float64, bool) { return deref(c.maxRating) }

// InStockOnly reports whether out-of-stock products are excluded.
func (c Criteria) InStockOnly() bool { return c.inStockOnly }

// Keywords returns a copy of the name keywords, in order.
func (c Criteria) Keywords() []string {
	if len(c.keywords) == 0 {
		return nil
	}
	out := make([]string, len(c.keywords))
	copy(out, c.keywords)
	return out
}

// SortBy returns the sort key ("" when absent).
func (c Criteria) SortBy() order.Key { return c.sortBy }

// Limit returns the result cap (0 when absent).
func (c Criteria) Limit() int { return c.limit }

// FindExtreme returns the extreme query kind ("" when absent).
func (c Criteria) FindExtreme() extreme.Kind { return c.findExtreme }

// IsEmpty reports whether no field is set.
func (c Criteria) IsEmpty() bool {
	return c.category == "" &&
		c.minPrice == nil && c.maxPrice == nil &&
		c.minRating == nil && c.maxRating == nil &&
		!c.inStockOnly && len(c.keywords) == 0 &&
		c.sortBy == "" && c.limit == 0 && c.findExtreme == ""
}

// Params returns the criteria as constructor input, for serialization.
func (c Criteria) Params() Params {
	return Params{
		Category:    string(c.category),
		MinPrice:    clonePtr(c.minPrice),
		MaxPrice:    clonePtr(c.maxPrice),
		MinRating:   clonePtr(c.minRating),
		MaxRating:   clonePtr(c.maxRating),
		InStockOnly: c.inStockOnly,
		Keywords:    c.Keywords(),
		SortBy:      string(c.sortBy),
		Limit:       c.limit,
		FindExtreme: string(c.findExtreme),
	}
}

func deref(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

func clonePtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
