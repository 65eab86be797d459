package search

import (
	"cmp"
	"slices"

	"github.com/kailas-cloud/prodsearch/internal/domain/product"
	"github.com/kailas-cloud/prodsearch/internal/domain/search/order"
)

// Sort returns a stably sorted copy of products. Equal keys keep their input
// order in both directions. An unrecognized key returns the input unchanged.
func Sort(products []product.Product, key order.Key) []product.Product {
	compare := comparator(key)
	if compare == nil {
		return products
	}
	sorted := slices.Clone(products)
	slices.SortStableFunc(sorted, compare)
	return sorted
}

func comparator(key order.Key) func(a, b product.Product) int {
	var asc func(a, b product.Product) int
	switch key {
	case order.PriceAsc, order.PriceDesc:
		asc = func(a, b product.Product) int { return cmp.Compare(a.Price(), b.Price()) }
	case order.RatingAsc, order.RatingDesc:
		asc = func(a, b product.Product) int { return cmp.Compare(a.Rating(), b.Rating()) }
	case order.NameAsc, order.NameDesc:
		// raw byte-wise order, no case folding
		asc = func(a, b product.Product) int { return cmp.Compare(a.Name(), b.Name()) }
	default:
		return nil
	}
	if key.Descending() {
		return func(a, b product.Product) int { return asc(b, a) }
	}
	return asc
}

// Limit returns at most the first n products. A non-positive n is a no-op.
func Limit(products []product.Product, n int) []product.Product {
	if n <= 0 || n >= len(products) {
		return products
	}
	return products[:n]
}
