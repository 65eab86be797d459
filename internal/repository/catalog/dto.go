package catalog

import (
	"fmt"

	"github.com/kailas-cloud/prodsearch/internal/domain/product"
)

// productRecord is one catalog entry as stored on disk. Pointer fields tell a
// missing key apart from a zero value.
type productRecord struct {
	Name     string   `json:"name"     yaml:"name"`
	Category string   `json:"category" yaml:"category"`
	Price    *float64 `json:"price"    yaml:"price"`
	Rating   *float64 `json:"rating"   yaml:"rating"`
	InStock  *bool    `json:"in_stock" yaml:"in_stock"`
}

func (r productRecord) toDomain() (product.Product, error) {
	switch {
	case r.Price == nil:
		return product.Product{}, fmt.Errorf("price is required")
	case r.Rating == nil:
		return product.Product{}, fmt.Errorf("rating is required")
	case r.InStock == nil:
		return product.Product{}, fmt.Errorf("in_stock is required")
	}
	p, err := product.New(r.Name, product.Category(r.Category), *r.Price, *r.Rating, *r.InStock)
	if err != nil {
		return product.Product{}, fmt.Errorf("build product: %w", err)
	}
	return p, nil
}
