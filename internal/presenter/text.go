// Package presenter renders search results as console text.
package presenter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kailas-cloud/prodsearch/internal/domain/product"
)

// NoResults is printed instead of an empty listing.
const NoResults = "No products found matching your criteria."

// Text renders products as a numbered listing, or NoResults when empty.
func Text(products []product.Product) string {
	if len(products) == 0 {
		return NoResults
	}

	var b strings.Builder
	b.WriteString("Filtered Products:\n")
	for i, p := range products {
		stock := "Out of Stock"
		if p.InStock() {
			stock = "In Stock"
		}
		fmt.Fprintf(&b, "%d. %s - $%.2f, Rating: %s, %s\n", i+1, p.Name(), p.Price(), Rating(p.Rating()), stock)
	}
	return b.String()
}

// Write renders products to w.
func Write(w io.Writer, products []product.Product) error {
	if _, err := io.WriteString(w, Text(products)); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// Rating formats a rating in its shortest form, keeping at least one decimal (4 -> "4.0").
func Rating(r float64) string {
	s := strconv.FormatFloat(r, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
