package prodsearch

import (
	"fmt"

	"github.com/kailas-cloud/prodsearch/internal/domain/catalog"
	"github.com/kailas-cloud/prodsearch/internal/domain/product"
	searchuc "github.com/kailas-cloud/prodsearch/internal/usecase/search"
)

// TypedCatalog evaluates Criteria over caller-owned structs.
// Fields are mapped with struct tags:
//
//	type Item struct {
//	    SKU    string
//	    Title  string  `prodsearch:"name"`
//	    Dept   string  `prodsearch:"category"`
//	    Cost   float64 `prodsearch:"price"`
//	    Stars  float32 `prodsearch:"rating"`
//	    OnHand bool    `prodsearch:"in_stock"` // optional, defaults to in stock
//	}
//
// Results are the original T values, so untagged fields survive the round trip.
type TypedCatalog[T any] struct {
	items []T
	cat   catalog.Catalog
	// positions maps a product to the indices of identical items, in catalog order.
	positions map[productKey][]int
}

type productKey struct {
	name     string
	category product.Category
	price    float64
	rating   float64
	inStock  bool
}

func keyOf(p product.Product) productKey {
	return productKey{p.Name(), p.Category(), p.Price(), p.Rating(), p.InStock()}
}

// NewTypedCatalog validates items and builds a catalog. The schema is parsed once.
func NewTypedCatalog[T any](items []T) (*TypedCatalog[T], error) {
	meta, err := parseSchema[T]()
	if err != nil {
		return nil, err
	}

	products := make([]product.Product, len(items))
	positions := make(map[productKey][]int, len(items))
	for i, item := range items {
		p, ok := meta.toProduct(item)
		if !ok {
			return nil, fmt.Errorf("prodsearch: item %d: %w: nil", i, ErrInvalidProduct)
		}
		dp, err := product.New(p.Name, product.Category(p.Category), p.Price, p.Rating, p.InStock)
		if err != nil {
			return nil, fmt.Errorf("prodsearch: item %d: %w", i, err)
		}
		products[i] = dp
		k := keyOf(dp)
		positions[k] = append(positions[k], i)
	}

	return &TypedCatalog[T]{
		items:     append([]T(nil), items...),
		cat:       catalog.New(products),
		positions: positions,
	}, nil
}

// Len returns the number of items.
func (tc *TypedCatalog[T]) Len() int { return len(tc.items) }

// Filter evaluates c and returns the matching items. Never nil on success.
func (tc *TypedCatalog[T]) Filter(c Criteria) ([]T, error) {
	dc, err := criteriaToDomain(c)
	if err != nil {
		return nil, err
	}

	res := searchuc.Evaluate(tc.cat, dc)

	// Every stage preserves the relative order of identical products,
	// so the n-th occurrence of a key maps to its n-th position.
	seen := make(map[productKey]int, len(res))
	out := make([]T, len(res))
	for i, p := range res {
		k := keyOf(p)
		out[i] = tc.items[tc.positions[k][seen[k]]]
		seen[k]++
	}
	return out, nil
}

// Query returns a fluent query builder over this catalog.
func (tc *TypedCatalog[T]) Query() *QueryBuilder[T] {
	return &QueryBuilder[T]{tc: tc}
}
