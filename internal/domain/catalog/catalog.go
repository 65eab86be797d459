// Package catalog holds the immutable, loaded-once product collection.
package catalog

import "github.com/kailas-cloud/prodsearch/internal/domain/product"

// Catalog is an ordered, read-only sequence of products.
// Position in the sequence is the only product identity.
type Catalog struct {
	products []product.Product
}

// New creates a Catalog from a copy of products.
func New(products []product.Product) Catalog {
	cp := make([]product.Product, len(products))
	copy(cp, products)
	return Catalog{products: cp}
}

// Products returns a copy of the products in catalog order.
func (c Catalog) Products() []product.Product {
	cp := make([]product.Product, len(c.products))
	copy(cp, c.products)
	return cp
}

// Len returns the number of products.
func (c Catalog) Len() int { return len(c.products) }

// IsEmpty reports whether the catalog has no products.
func (c Catalog) IsEmpty() bool { return len(c.products) == 0 }
