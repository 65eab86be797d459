package product

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/prodsearch/internal/domain"
)

// Product is an immutable catalog record.
type Product struct {
	name     string
	category Category
	price    float64
	rating   float64
	inStock  bool
}

// New validates and creates a Product.
// Name must be non-empty, category one of Categories(), price non-negative.
// Rating is conventionally 0-5 but only required to be a finite number.
func New(name string, category Category, price, rating float64, inStock bool) (Product, error) {
	if name == "" {
		return Product{}, fmt.Errorf("%w: name is required", domain.ErrInvalidProduct)
	}
	if !category.IsValid() {
		return Product{}, fmt.Errorf("%w: unknown category %q for %q", domain.ErrInvalidProduct, category, name)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return Product{}, fmt.Errorf("%w: price must be a non-negative number for %q", domain.ErrInvalidProduct, name)
	}
	if math.IsNaN(rating) || math.IsInf(rating, 0) {
		return Product{}, fmt.Errorf("%w: rating must be finite for %q", domain.ErrInvalidProduct, name)
	}
	return Product{name: name, category: category, price: price, rating: rating, inStock: inStock}, nil
}

// Reconstruct creates a Product without validation (tests and trusted fixtures).
func Reconstruct(name string, category Category, price, rating float64, inStock bool) Product {
	return Product{name: name, category: category, price: price, rating: rating, inStock: inStock}
}

// Name returns the product name.
func (p Product) Name() string { return p.name }

// Category returns the product category.
func (p Product) Category() Category { return p.category }

// Price returns the product price.
func (p Product) Price() float64 { return p.price }

// Rating returns the product rating.
func (p Product) Rating() float64 { return p.rating }

// InStock reports whether the product is available.
func (p Product) InStock() bool { return p.inStock }
