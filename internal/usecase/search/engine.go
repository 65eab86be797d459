package search

import (
	"strings"

	"github.com/kailas-cloud/prodsearch/internal/domain/catalog"
	"github.com/kailas-cloud/prodsearch/internal/domain/product"
	"github.com/kailas-cloud/prodsearch/internal/domain/search/criteria"
)

// stage narrows the surviving products. A stage whose criteria field is
// absent returns its input unchanged.
type stage func(products []product.Product, c criteria.Criteria) []product.Product

// filterStages run in this exact order on the non-extreme path.
var filterStages = []stage{
	byCategory,
	byMaxPrice,
	byMinPrice,
	byMinRating,
	byMaxRating,
	byStock,
	byKeywords,
}

// extremePreFilters run before extreme selection. Range bounds are not among them.
var extremePreFilters = []stage{
	byCategory,
	byStock,
	byKeywords,
}

// Evaluate returns the catalog products matching c, in result order.
//
// With find_extreme set the Extreme Resolver replaces the range filters and the
// sort and limit stages entirely: min/max price and rating, sort_by and limit
// are ignored for that query. Otherwise the filter stages run, then the stable
// sort, then the limit. The result is never nil; an empty result is a valid answer.
func Evaluate(cat catalog.Catalog, c criteria.Criteria) []product.Product {
	products := cat.Products()

	if kind := c.FindExtreme(); kind != "" {
		return ResolveExtreme(kind, products, c)
	}

	products = applyStages(products, c, filterStages)

	if key := c.SortBy(); key != "" {
		products = Sort(products, key)
	}

	return Limit(products, c.Limit())
}

func applyStages(products []product.Product, c criteria.Criteria, stages []stage) []product.Product {
	for _, s := range stages {
		products = s(products, c)
	}
	return products
}

// keep returns the products satisfying pred, preserving order.
func keep(products []product.Product, pred func(p product.Product) bool) []product.Product {
	out := make([]product.Product, 0, len(products))
	for _, p := range products {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

func byCategory(products []product.Product, c criteria.Criteria) []product.Product {
	cat := c.Category()
	if cat == "" {
		return products
	}
	return keep(products, func(p product.Product) bool { return p.Category() == cat })
}

func byMaxPrice(products []product.Product, c criteria.Criteria) []product.Product {
	bound, ok := c.MaxPrice()
	if !ok {
		return products
	}
	return keep(products, func(p product.Product) bool { return p.Price() <= bound })
}

func byMinPrice(products []product.Product, c criteria.Criteria) []product.Product {
	bound, ok := c.MinPrice()
	if !ok {
		return products
	}
	return keep(products, func(p product.Product) bool { return p.Price() >= bound })
}

func byMinRating(products []product.Product, c criteria.Criteria) []product.Product {
	bound, ok := c.MinRating()
	if !ok {
		return products
	}
	return keep(products, func(p product.Product) bool { return p.Rating() >= bound })
}

func byMaxRating(products []product.Product, c criteria.Criteria) []product.Product {
	bound, ok := c.MaxRating()
	if !ok {
		return products
	}
	return keep(products, func(p product.Product) bool { return p.Rating() <= bound })
}

func byStock(products []product.Product, c criteria.Criteria) []product.Product {
	if !c.InStockOnly() {
		return products
	}
	return keep(products, product.Product.InStock)
}

// byKeywords narrows once per keyword, each a case-insensitive substring match on the name.
func byKeywords(products []product.Product, c criteria.Criteria) []product.Product {
	for _, kw := range c.Keywords() {
		needle := strings.ToLower(kw)
		products = keep(products, func(p product.Product) bool {
			return strings.Contains(strings.ToLower(p.Name()), needle)
		})
	}
	return products
}
