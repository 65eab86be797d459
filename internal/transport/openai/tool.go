package openai

import (
	"fmt"
	"math"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/kailas-cloud/prodsearch/internal/domain/product"
	"github.com/kailas-cloud/prodsearch/internal/domain/search/criteria"
	"github.com/kailas-cloud/prodsearch/internal/domain/search/extreme"
	"github.com/kailas-cloud/prodsearch/internal/domain/search/order"
)

// searchTool describes the criteria shape to the model. Enums come from the
// domain so the schema cannot drift from what criteria.New accepts.
func searchTool(name string) openai.Tool {
	params := jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"category": {
				Type:        jsonschema.String,
				Description: "Product category (e.g., Electronics, Fitness, Kitchen, Books, Clothing)",
				Enum:        enumOf(product.Categories()),
			},
			"max_price": {
				Type:        jsonschema.Number,
				Description: "Maximum price the user is willing to pay",
			},
			"min_price": {
				Type:        jsonschema.Number,
				Description: "Minimum price required",
			},
			"min_rating": {
				Type:        jsonschema.Number,
				Description: "Minimum rating required (0-5 scale)",
			},
			"max_rating": {
				Type:        jsonschema.Number,
				Description: "Maximum rating allowed (0-5 scale)",
			},
			"in_stock_only": {
				Type:        jsonschema.Boolean,
				Description: "Whether to show only products that are in stock",
			},
			"keywords": {
				Type:        jsonschema.Array,
				Items:       &jsonschema.Definition{Type: jsonschema.String},
				Description: "Keywords to search for in product names",
			},
			"sort_by": {
				Type:        jsonschema.String,
				Description: "How to sort the results",
				Enum:        enumOf(order.Keys()),
			},
			"limit": {
				Type:        jsonschema.Integer,
				Description: "Maximum number of products to return",
			},
			"find_extreme": {
				Type:        jsonschema.String,
				Description: "Find products with extreme values",
				Enum:        enumOf(extreme.Kinds()),
			},
		},
		Required: []string{},
	}

	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        name,
			Description: "Search for products based on user criteria",
			Parameters:  params,
		},
	}
}

func enumOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// toolArgs is the loosely-typed tool call payload. limit arrives as a JSON
// number and may carry a fractional part.
type toolArgs struct {
	Category    string   `json:"category"`
	MinPrice    *float64 `json:"min_price"`
	MaxPrice    *float64 `json:"max_price"`
	MinRating   *float64 `json:"min_rating"`
	MaxRating   *float64 `json:"max_rating"`
	InStockOnly bool     `json:"in_stock_only"`
	Keywords    []string `json:"keywords"`
	SortBy      string   `json:"sort_by"`
	Limit       *float64 `json:"limit"`
	FindExtreme string   `json:"find_extreme"`
}

func (a toolArgs) toCriteria() (criteria.Criteria, error) {
	p := criteria.Params{
		Category:    a.Category,
		MinPrice:    a.MinPrice,
		MaxPrice:    a.MaxPrice,
		MinRating:   a.MinRating,
		MaxRating:   a.MaxRating,
		InStockOnly: a.InStockOnly,
		Keywords:    a.Keywords,
		SortBy:      a.SortBy,
		FindExtreme: a.FindExtreme,
	}
	if a.Limit != nil {
		switch n := *a.Limit; {
		case math.IsNaN(n) || n > math.MaxInt32:
			return criteria.Criteria{}, fmt.Errorf("limit %v out of range", n)
		case n >= 1:
			p.Limit = int(n)
		}
	}

	c, err := criteria.New(p)
	if err != nil {
		return criteria.Criteria{}, fmt.Errorf("build criteria: %w", err)
	}
	return c, nil
}
