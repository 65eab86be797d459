package prodsearch

// Category is a product category.
type Category string

// Category constants.
const (
	CategoryElectronics Category = "Electronics"
	CategoryFitness     Category = "Fitness"
	CategoryKitchen     Category = "Kitchen"
	CategoryBooks       Category = "Books"
	CategoryClothing    Category = "Clothing"
)

// SortKey orders results by a product attribute.
type SortKey string

// SortKey constants.
const (
	SortPriceAsc   SortKey = "price_asc"
	SortPriceDesc  SortKey = "price_desc"
	SortRatingAsc  SortKey = "rating_asc"
	SortRatingDesc SortKey = "rating_desc"
	SortNameAsc    SortKey = "name_asc"
	SortNameDesc   SortKey = "name_desc"
)

// ExtremeKind selects the products holding an extreme value.
type ExtremeKind string

// ExtremeKind constants.
const (
	ExtremeLowestRating  ExtremeKind = "lowest_rating"
	ExtremeHighestRating ExtremeKind = "highest_rating"
	ExtremeCheapest      ExtremeKind = "cheapest"
	ExtremeMostExpensive ExtremeKind = "most_expensive"
)

// Product is a catalog entry.
type Product struct {
	Name     string
	Category Category
	Price    float64
	Rating   float64 // 0..5
	InStock  bool
}

// Criteria is a partially-specified query. Zero fields impose no constraint.
// When FindExtreme is set only Category, InStockOnly and Keywords apply;
// ranges, SortBy and Limit are ignored.
type Criteria struct {
	Category    Category
	MinPrice    *float64
	MaxPrice    *float64
	MinRating   *float64
	MaxRating   *float64
	InStockOnly bool
	Keywords    []string // case-insensitive name substrings, all must match
	SortBy      SortKey
	Limit       int // <= 0 means no limit
	FindExtreme ExtremeKind
}

// SearchResult is the outcome of a natural-language search.
type SearchResult struct {
	Criteria Criteria
	// Matched is false when the model produced no structured criteria;
	// Products then holds the whole catalog.
	Matched     bool
	Products    []Product
	TotalTokens int
}
