// Package prodsearch provides a Go client for criteria-driven product search
// over an in-memory catalog.
//
// The catalog is loaded once and never mutated. Queries are either structured
// Criteria or free text, which an OpenAI-compatible model turns into Criteria
// through function calling.
//
// # Pure evaluation
//
//	max := 400.0
//	res, _ := prodsearch.Evaluate(products, prodsearch.Criteria{
//	    Category: prodsearch.CategoryElectronics,
//	    MaxPrice: &max,
//	    SortBy:   prodsearch.SortPriceAsc,
//	})
//
// # Client with natural-language search
//
//	client, _ := prodsearch.New(ctx,
//	    prodsearch.WithCatalogFile("products.json"),
//	    prodsearch.WithOpenAI(os.Getenv("OPENAI_API_KEY"), "", ""),
//	)
//	res, _ := client.Search(ctx, "cheapest fitness gear in stock")
//	fmt.Print(prodsearch.Format(res.Products))
package prodsearch
