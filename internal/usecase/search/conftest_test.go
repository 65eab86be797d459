package search

import (
	"context"
	"testing"

	"github.com/kailas-cloud/prodsearch/internal/domain/catalog"
	"github.com/kailas-cloud/prodsearch/internal/domain/intent"
	"github.com/kailas-cloud/prodsearch/internal/domain/product"
	"github.com/kailas-cloud/prodsearch/internal/domain/search/criteria"
)

// --- Fixtures ---

func mustProduct(t *testing.T, name string, cat product.Category, price, rating float64, inStock bool) product.Product {
	t.Helper()
	p, err := product.New(name, cat, price, rating, inStock)
	if err != nil {
		t.Fatalf("product.New(%q): %v", name, err)
	}
	return p
}

// abcCatalog is the three-product catalog used throughout the engine tests.
func abcCatalog(t *testing.T) catalog.Catalog {
	t.Helper()
	return catalog.New([]product.Product{
		mustProduct(t, "A", product.Electronics, 500, 4.0, true),
		mustProduct(t, "B", product.Electronics, 300, 4.5, true),
		mustProduct(t, "C", product.Kitchen, 300, 3.0, false),
	})
}

// storeCatalog mirrors a small mixed storefront.
func storeCatalog(t *testing.T) catalog.Catalog {
	t.Helper()
	return catalog.New([]product.Product{
		mustProduct(t, "Wireless Headphones", product.Electronics, 199.99, 4.5, true),
		mustProduct(t, "Yoga Mat", product.Fitness, 29.99, 4.3, true),
		mustProduct(t, "Blender", product.Kitchen, 49.99, 4.2, false),
		mustProduct(t, "Smartwatch", product.Electronics, 199.99, 4.6, true),
		mustProduct(t, "Dumbbells", product.Fitness, 49.99, 4.5, true),
		mustProduct(t, "Novel: The Great Adventure", product.Books, 14.99, 4.3, true),
		mustProduct(t, "Men's T-Shirt", product.Clothing, 14.99, 4.1, true),
		mustProduct(t, "Air Fryer", product.Kitchen, 89.99, 4.5, false),
		mustProduct(t, "Bluetooth Speaker", product.Electronics, 49.99, 4.1, false),
		mustProduct(t, "gaming mouse", product.Electronics, 59.99, 4.1, true),
	})
}

func mustCriteria(t *testing.T, p criteria.Params) criteria.Criteria {
	t.Helper()
	c, err := criteria.New(p)
	if err != nil {
		t.Fatalf("criteria.New: %v", err)
	}
	return c
}

func ptr(v float64) *float64 { return &v }

func names(products []product.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name()
	}
	return out
}

func assertNames(t *testing.T, got []product.Product, want ...string) {
	t.Helper()
	gotNames := names(got)
	if len(gotNames) != len(want) {
		t.Fatalf("got %v, want %v", gotNames, want)
	}
	for i := range want {
		if gotNames[i] != want[i] {
			t.Fatalf("got %v, want %v", gotNames, want)
		}
	}
}

// isSubsequence reports whether sub appears in full in the same relative order.
func isSubsequence(sub, full []string) bool {
	i := 0
	for _, s := range full {
		if i < len(sub) && sub[i] == s {
			i++
		}
	}
	return i == len(sub)
}

// --- Mocks ---

type mockExtractor struct {
	ext       intent.Extraction
	err       error
	lastQuery string
	calls     int
}

func (m *mockExtractor) Extract(_ context.Context, query string) (intent.Extraction, error) {
	m.calls++
	m.lastQuery = query
	return m.ext, m.err
}
