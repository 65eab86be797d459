package prodsearch

import (
	"github.com/kailas-cloud/prodsearch/internal/presenter"
	searchuc "github.com/kailas-cloud/prodsearch/internal/usecase/search"
)

// Evaluate filters, sorts and limits products by c. The input slice is not
// modified and the result is never nil. Products are validated first.
func Evaluate(products []Product, c Criteria) ([]Product, error) {
	dc, err := criteriaToDomain(c)
	if err != nil {
		return nil, err
	}
	cat, err := catalogToDomain(products)
	if err != nil {
		return nil, err
	}
	return productsFromDomain(searchuc.Evaluate(cat, dc)), nil
}

// Format renders products as the numbered console listing.
func Format(products []Product) string {
	return presenter.Text(productsToDomain(products))
}
