package search

import (
	"github.com/kailas-cloud/prodsearch/internal/domain/product"
	"github.com/kailas-cloud/prodsearch/internal/domain/search/criteria"
	"github.com/kailas-cloud/prodsearch/internal/domain/search/extreme"
)

// ResolveExtreme applies the category, stock and keyword pre-filters of c, then
// returns every product tied at the requested minimum or maximum, in input order.
// Values are compared with exact equality. An unknown kind returns the
// pre-filtered products unchanged.
func ResolveExtreme(kind extreme.Kind, products []product.Product, c criteria.Criteria) []product.Product {
	products = applyStages(products, c, extremePreFilters)
	if len(products) == 0 {
		return products
	}

	var (
		value   func(p product.Product) float64
		highest bool
	)
	switch kind {
	case extreme.LowestRating:
		value = product.Product.Rating
	case extreme.HighestRating:
		value, highest = product.Product.Rating, true
	case extreme.Cheapest:
		value = product.Product.Price
	case extreme.MostExpensive:
		value, highest = product.Product.Price, true
	default:
		return products
	}

	target := value(products[0])
	for _, p := range products[1:] {
		v := value(p)
		if (highest && v > target) || (!highest && v < target) {
			target = v
		}
	}

	return keep(products, func(p product.Product) bool { return value(p) == target })
}
