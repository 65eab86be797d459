package prodsearch

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func f64(v float64) *float64 { return &v }

func abc() []Product {
	return []Product{
		{Name: "A", Category: CategoryElectronics, Price: 500, Rating: 4.0, InStock: true},
		{Name: "B", Category: CategoryElectronics, Price: 300, Rating: 4.5, InStock: true},
		{Name: "C", Category: CategoryKitchen, Price: 300, Rating: 3.0, InStock: false},
	}
}

func productNames(products []Product) string {
	names := make([]string, len(products))
	for i, p := range products {
		names[i] = p.Name
	}
	return strings.Join(names, ",")
}

type fakeExtractor struct {
	ext Extraction
	err error
}

func (f *fakeExtractor) Extract(_ context.Context, _ string) (Extraction, error) {
	return f.ext, f.err
}

// --- Evaluate ---

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		c    Criteria
		want string
	}{
		{"electronics by price", Criteria{Category: CategoryElectronics, SortBy: SortPriceAsc}, "B,A"},
		{"cheapest ties", Criteria{FindExtreme: ExtremeCheapest}, "B,C"},
		{"min rating limit", Criteria{MinRating: f64(4.0), Limit: 1}, "A"},
		{"in stock", Criteria{InStockOnly: true}, "A,B"},
		{"empty criteria", Criteria{}, "A,B,C"},
		{"no match", Criteria{MaxPrice: f64(100)}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(abc(), tt.c)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got == nil {
				t.Fatal("result must not be nil")
			}
			if productNames(got) != tt.want {
				t.Errorf("got %s, want %s", productNames(got), tt.want)
			}
		})
	}
}

func TestEvaluate_Invalid(t *testing.T) {
	if _, err := Evaluate(abc(), Criteria{SortBy: "popularity"}); !errors.Is(err, ErrInvalidCriteria) {
		t.Errorf("unknown sort key: got %v, want ErrInvalidCriteria", err)
	}
	bad := []Product{{Name: "X", Category: CategoryBooks, Price: -1, Rating: 3}}
	if _, err := Evaluate(bad, Criteria{}); !errors.Is(err, ErrInvalidProduct) {
		t.Errorf("negative price: got %v, want ErrInvalidProduct", err)
	}
}

func TestEvaluate_DoesNotMutateInput(t *testing.T) {
	in := abc()
	if _, err := Evaluate(in, Criteria{SortBy: SortNameDesc}); err != nil {
		t.Fatal(err)
	}
	if productNames(in) != "A,B,C" {
		t.Errorf("input reordered: %s", productNames(in))
	}
}

func TestFormat(t *testing.T) {
	got := Format(abc()[:1])
	want := "Filtered Products:\n1. A - $500.00, Rating: 4.0, In Stock\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if Format(nil) != "No products found matching your criteria." {
		t.Errorf("empty listing = %q", Format(nil))
	}
}

// --- Client ---

func TestNew_NoCatalog(t *testing.T) {
	if _, err := New(context.Background()); err == nil {
		t.Fatal("expected error when no catalog provided")
	}
}

func TestNew_CatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.yaml")
	data := "- {name: Yoga Mat, category: Fitness, price: 29.99, rating: 4.3, in_stock: true}\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := New(context.Background(), WithCatalogFile(path))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()

	if productNames(c.Products()) != "Yoga Mat" {
		t.Errorf("products = %s", productNames(c.Products()))
	}

	if _, err := New(context.Background(), WithCatalogFile(filepath.Join(t.TempDir(), "nope.json"))); !errors.Is(err, ErrCatalogNotFound) {
		t.Errorf("missing file: got %v, want ErrCatalogNotFound", err)
	}
}

func TestClient_Filter(t *testing.T) {
	c, err := New(context.Background(), WithProducts(abc()))
	if err != nil {
		t.Fatal(err)
	}

	got, err := c.Filter(context.Background(), Criteria{Keywords: []string{"b"}})
	if err != nil {
		t.Fatal(err)
	}
	if productNames(got) != "B" {
		t.Errorf("got %s, want B", productNames(got))
	}

	if _, err := c.Filter(context.Background(), Criteria{Category: "Toys"}); !errors.Is(err, ErrInvalidCriteria) {
		t.Errorf("got %v, want ErrInvalidCriteria", err)
	}
}

func TestClient_Search(t *testing.T) {
	ext := &fakeExtractor{ext: Extraction{
		Criteria:    Criteria{Category: CategoryElectronics, SortBy: SortRatingDesc, Limit: 1},
		Matched:     true,
		TotalTokens: 120,
	}}
	c, err := New(context.Background(), WithProducts(abc()), WithExtractor(ext))
	if err != nil {
		t.Fatal(err)
	}

	res, err := c.Search(context.Background(), "best rated electronics")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Matched || productNames(res.Products) != "B" {
		t.Errorf("result = %+v", res)
	}
	if res.TotalTokens != 120 {
		t.Errorf("tokens = %d, want 120", res.TotalTokens)
	}
	if res.Criteria.SortBy != SortRatingDesc || res.Criteria.Limit != 1 {
		t.Errorf("criteria = %+v", res.Criteria)
	}

	report := c.Usage(context.Background(), PeriodDay)
	if report.TokensUsed != 120 || report.Provider != "custom" {
		t.Errorf("usage = %+v", report)
	}
}

func TestClient_SearchErrors(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		q    string
		want error
	}{
		{"no extractor", nil, "phones", ErrIntentProviderError},
		{"empty query", []Option{WithExtractor(&fakeExtractor{})}, "  ", ErrEmptyQuery},
		{
			"invalid extracted criteria",
			[]Option{WithExtractor(&fakeExtractor{ext: Extraction{Criteria: Criteria{FindExtreme: "newest"}, Matched: true}})},
			"newest", ErrMalformedExtraction,
		},
		{
			"extractor failure",
			[]Option{WithExtractor(&fakeExtractor{err: ErrRateLimited})},
			"phones", ErrRateLimited,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(context.Background(), append([]Option{WithProducts(abc())}, tt.opts...)...)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := c.Search(context.Background(), tt.q); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestClient_BudgetReject(t *testing.T) {
	ext := &fakeExtractor{ext: Extraction{Matched: false, TotalTokens: 10}}
	c, err := New(context.Background(), WithProducts(abc()), WithExtractor(ext), WithTokenBudget(5, 0, true))
	if err != nil {
		t.Fatal(err)
	}

	res, err := c.Search(context.Background(), "anything")
	if err != nil {
		t.Fatalf("first search within budget: %v", err)
	}
	if res.Matched || productNames(res.Products) != "A,B,C" {
		t.Errorf("unmatched search should return catalog, got %+v", res)
	}

	if _, err := c.Search(context.Background(), "again"); !errors.Is(err, ErrIntentQuotaExceeded) {
		t.Errorf("got %v, want ErrIntentQuotaExceeded", err)
	}

	report := c.Usage(context.Background(), PeriodDay)
	if !report.Budget.IsExhausted || report.Budget.TokensLimit != 5 {
		t.Errorf("budget = %+v", report.Budget)
	}
}

func TestClient_Health(t *testing.T) {
	c, err := New(context.Background(), WithProducts(abc()))
	if err != nil {
		t.Fatal(err)
	}
	h := c.Health(context.Background())
	if h.Status != "ok" || h.CatalogItems != 3 {
		t.Errorf("health = %+v", h)
	}

	empty, err := New(context.Background(), WithProducts(nil))
	if err != nil {
		t.Fatal(err)
	}
	if h := empty.Health(context.Background()); h.Status != "error" {
		t.Errorf("empty catalog status = %q, want error", h.Status)
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}

	WithOpenAI("sk", "http://localhost:1234/v1", "m").apply(cfg)
	if cfg.apiKey != "sk" || cfg.baseURL != "http://localhost:1234/v1" || cfg.model != "m" {
		t.Errorf("openai = %+v", cfg)
	}

	WithRedisCache("localhost:6379", "pw", time.Hour).apply(cfg)
	if cfg.cacheAddrs[0] != "localhost:6379" || cfg.cachePassword != "pw" || cfg.cacheTTL != time.Hour {
		t.Errorf("cache = %v %q %s", cfg.cacheAddrs, cfg.cachePassword, cfg.cacheTTL)
	}

	WithTokenBudget(10, 100, true).apply(cfg)
	if cfg.dailyTokens != 10 || cfg.monthlyTokens != 100 || !cfg.rejectOverrun {
		t.Error("budget options not applied")
	}

	logger := slog.Default()
	WithLogger(logger).apply(cfg)
	if cfg.logger != logger {
		t.Error("expected logger to be set")
	}

	reg := prometheus.NewRegistry()
	WithPrometheus(reg).apply(cfg)
	if cfg.metricsReg != reg {
		t.Error("expected metricsReg to be set")
	}
}

func TestClient_Close_NilStore(t *testing.T) {
	c := &Client{store: nil}
	c.Close()
}

// --- observer ---

func TestObserver_NilSafe(t *testing.T) {
	var obs *observer
	obs.observe("test", time.Now(), 0, nil)
	obs.observe("test", time.Now(), 0, errors.New("err"))
}

func TestObserver_WithPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(context.Background(), WithProducts(abc()), WithPrometheus(reg))
	if err != nil {
		t.Fatal(err)
	}

	_, _ = c.Filter(context.Background(), Criteria{})
	_, _ = c.Filter(context.Background(), Criteria{SortBy: "bogus"})

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	found := map[string]int{}
	for _, f := range families {
		found[f.GetName()] = len(f.GetMetric())
	}
	if found["prodsearch_sdk_operations_total"] != 2 {
		t.Errorf("expected ok and error samples, got %d", found["prodsearch_sdk_operations_total"])
	}
	if _, ok := found["prodsearch_sdk_result_size"]; !ok {
		t.Error("prodsearch_sdk_result_size not found")
	}

	// A second client on the same registry reuses the collectors.
	if _, err := New(context.Background(), WithProducts(abc()), WithPrometheus(reg)); err != nil {
		t.Errorf("re-register: %v", err)
	}
}

func TestObserver_WithLogger(t *testing.T) {
	obs, err := newObserver(slog.Default(), nil)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}
	obs.observe("test.op", time.Now(), 3, nil)
	obs.observe("test.op", time.Now(), 0, errors.New("test error"))
}
