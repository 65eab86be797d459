package search

import (
	"testing"

	"github.com/kailas-cloud/prodsearch/internal/domain/catalog"
	"github.com/kailas-cloud/prodsearch/internal/domain/product"
	"github.com/kailas-cloud/prodsearch/internal/domain/search/order"
)

func TestSort(t *testing.T) {
	tests := []struct {
		name string
		key  order.Key
		want []string
	}{
		{"price asc stable", order.PriceAsc, []string{"p2", "p4", "p1", "p3"}},
		{"price desc stable", order.PriceDesc, []string{"p1", "p3", "p2", "p4"}},
		{"rating asc", order.RatingAsc, []string{"p3", "p1", "p4", "p2"}},
		{"rating desc", order.RatingDesc, []string{"p2", "p4", "p1", "p3"}},
		{"unknown key is a no-op", order.Key("popularity"), []string{"p1", "p2", "p3", "p4"}},
	}

	products := []product.Product{
		mustProduct(t, "p1", product.Books, 20, 4.0, true),
		mustProduct(t, "p2", product.Books, 10, 4.8, true),
		mustProduct(t, "p3", product.Books, 20, 3.5, true),
		mustProduct(t, "p4", product.Books, 10, 4.2, true),
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertNames(t, Sort(products, tt.key), tt.want...)
		})
	}
}

func TestSort_NameIsByteWise(t *testing.T) {
	products := []product.Product{
		mustProduct(t, "banana", product.Kitchen, 1, 1, true),
		mustProduct(t, "Cherry", product.Kitchen, 1, 1, true),
		mustProduct(t, "apple", product.Kitchen, 1, 1, true),
		mustProduct(t, "Apple", product.Kitchen, 1, 1, true),
	}

	// uppercase sorts before lowercase
	assertNames(t, Sort(products, order.NameAsc), "Apple", "Cherry", "apple", "banana")
	assertNames(t, Sort(products, order.NameDesc), "banana", "apple", "Cherry", "Apple")
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	products := storeCatalog(t).Products()
	before := names(products)

	_ = Sort(products, order.PriceAsc)

	assertNames(t, products, before...)
}

func TestSort_StabilityOnStore(t *testing.T) {
	// Equal prices keep catalog order in both directions.
	sorted := Sort(storeCatalog(t).Products(), order.PriceDesc)
	assertNames(t, sorted[:2], "Wireless Headphones", "Smartwatch")

	sorted = Sort(storeCatalog(t).Products(), order.PriceAsc)
	assertNames(t, sorted[:2], "Novel: The Great Adventure", "Men's T-Shirt")
}

func TestLimit(t *testing.T) {
	products := catalog.New([]product.Product{
		mustProduct(t, "a", product.Books, 1, 1, true),
		mustProduct(t, "b", product.Books, 1, 1, true),
		mustProduct(t, "c", product.Books, 1, 1, true),
	}).Products()

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{"truncates", 2, []string{"a", "b"}},
		{"exact length", 3, []string{"a", "b", "c"}},
		{"larger than length", 10, []string{"a", "b", "c"}},
		{"zero is a no-op", 0, []string{"a", "b", "c"}},
		{"negative is a no-op", -1, []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertNames(t, Limit(products, tt.n), tt.want...)
		})
	}
}
