package prodsearch

import (
	"fmt"

	"github.com/kailas-cloud/prodsearch/internal/domain/catalog"
	"github.com/kailas-cloud/prodsearch/internal/domain/product"
	"github.com/kailas-cloud/prodsearch/internal/domain/search/criteria"
)

func criteriaToDomain(c Criteria) (criteria.Criteria, error) {
	dc, err := criteria.New(criteria.Params{
		Category:    string(c.Category),
		MinPrice:    c.MinPrice,
		MaxPrice:    c.MaxPrice,
		MinRating:   c.MinRating,
		MaxRating:   c.MaxRating,
		InStockOnly: c.InStockOnly,
		Keywords:    c.Keywords,
		SortBy:      string(c.SortBy),
		Limit:       c.Limit,
		FindExtreme: string(c.FindExtreme),
	})
	if err != nil {
		return criteria.Criteria{}, fmt.Errorf("prodsearch: %w", err)
	}
	return dc, nil
}

func criteriaFromDomain(c criteria.Criteria) Criteria {
	p := c.Params()
	return Criteria{
		Category:    Category(p.Category),
		MinPrice:    p.MinPrice,
		MaxPrice:    p.MaxPrice,
		MinRating:   p.MinRating,
		MaxRating:   p.MaxRating,
		InStockOnly: p.InStockOnly,
		Keywords:    p.Keywords,
		SortBy:      SortKey(p.SortBy),
		Limit:       p.Limit,
		FindExtreme: ExtremeKind(p.FindExtreme),
	}
}

func catalogToDomain(products []Product) (catalog.Catalog, error) {
	out := make([]product.Product, len(products))
	for i, p := range products {
		dp, err := product.New(p.Name, product.Category(p.Category), p.Price, p.Rating, p.InStock)
		if err != nil {
			return catalog.Catalog{}, fmt.Errorf("prodsearch: product %d: %w", i, err)
		}
		out[i] = dp
	}
	return catalog.New(out), nil
}

func productsFromDomain(products []product.Product) []Product {
	out := make([]Product, len(products))
	for i, p := range products {
		out[i] = Product{
			Name:     p.Name(),
			Category: Category(p.Category()),
			Price:    p.Price(),
			Rating:   p.Rating(),
			InStock:  p.InStock(),
		}
	}
	return out
}

func productsToDomain(products []Product) []product.Product {
	out := make([]product.Product, len(products))
	for i, p := range products {
		out[i] = product.Reconstruct(p.Name, product.Category(p.Category), p.Price, p.Rating, p.InStock)
	}
	return out
}
