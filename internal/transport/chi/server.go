package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/prodsearch/internal/domain"
	domusage "github.com/kailas-cloud/prodsearch/internal/domain/usage"
	healthuc "github.com/kailas-cloud/prodsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/prodsearch/internal/usecase/search"
	usageuc "github.com/kailas-cloud/prodsearch/internal/usecase/usage"
)

// maxBodyBytes caps request bodies; criteria and queries are small.
const maxBodyBytes = 64 << 10

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the product search HTTP API.
type Server struct {
	search        *searchuc.Service
	usage         *usageuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	usage *usageuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search: search,
		usage:  usage,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		// malformed extractions may also wrap ErrInvalidCriteria; they are the provider's fault
		sentinelHandler(domain.ErrMalformedExtraction, http.StatusBadGateway, ErrorCodeMalformedExtraction),
		validationHandler,
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest, ErrorCodeBadRequest),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, ErrorCodeRateLimited),
		sentinelHandler(domain.ErrIntentQuotaExceeded, http.StatusPaymentRequired, ErrorCodeQuotaExceeded),
		sentinelHandler(domain.ErrIntentProviderError, http.StatusBadGateway, ErrorCodeIntentProviderError),
	}
	return s
}

// SearchProducts handles POST /v1/search.
func (s *Server) SearchProducts(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	out, err := s.search.Search(ctx, req.Query)
	setIntentHeaders(w, usage)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := productsToAPI(out.Products)
	writeJSON(w, http.StatusOK, SearchResponse{
		Criteria: criteriaToAPI(out.Criteria),
		Matched:  out.Matched,
		Count:    len(items),
		Items:    items,
	})
}

// FilterProducts handles POST /v1/products/filter.
func (s *Server) FilterProducts(w http.ResponseWriter, r *http.Request) {
	var body Criteria
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	s.filter(w, r, body)
}

// ListProducts handles GET /v1/products. Query parameters mirror the filter body;
// keywords repeat (?keywords=a&keywords=b).
func (s *Server) ListProducts(w http.ResponseWriter, r *http.Request) {
	var params ListProductsParams
	query := r.URL.Query()

	binds := []struct {
		name string
		dest any
	}{
		{"category", &params.Category},
		{"min_price", &params.MinPrice},
		{"max_price", &params.MaxPrice},
		{"min_rating", &params.MinRating},
		{"max_rating", &params.MaxRating},
		{"in_stock_only", &params.InStockOnly},
		{"keywords", &params.Keywords},
		{"sort_by", &params.SortBy},
		{"limit", &params.Limit},
		{"find_extreme", &params.FindExtreme},
	}
	for _, b := range binds {
		if err := runtime.BindQueryParameter("form", true, false, b.name, query, b.dest); err != nil {
			writeError(w, http.StatusBadRequest, ErrorCodeBadRequest,
				fmt.Sprintf("Invalid format for parameter %s: %s", b.name, err))
			return
		}
	}

	s.filter(w, r, params)
}

func (s *Server) filter(w http.ResponseWriter, r *http.Request, body Criteria) {
	c, err := criteriaFromAPI(body)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	out := s.search.Filter(r.Context(), c)
	items := productsToAPI(out.Products)
	writeJSON(w, http.StatusOK, ProductListResponse{Count: len(items), Items: items})
}

// GetUsage handles GET /v1/usage?period=day|month.
func (s *Server) GetUsage(w http.ResponseWriter, r *http.Request) {
	var periodParam *string
	if err := runtime.BindQueryParameter("form", true, false, "period", r.URL.Query(), &periodParam); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid format for parameter period: "+err.Error())
		return
	}

	period := domusage.PeriodMonth
	if periodParam != nil {
		p := domusage.Period(*periodParam)
		if !p.IsValid() {
			writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed,
				fmt.Sprintf("period must be %q or %q", domusage.PeriodDay, domusage.PeriodMonth))
			return
		}
		period = p
	}

	report := s.usage.GetReport(r.Context(), period)

	start := time.UnixMilli(report.PeriodStart()).UTC()
	end := time.UnixMilli(report.PeriodEnd()).UTC()
	resp := UsageResponse{
		Period:        string(report.Period()),
		Provider:      report.Provider(),
		TokensUsed:    report.TokensUsed(),
		PeriodStartAt: &start,
		PeriodEndAt:   &end,
		Budget: BudgetStatus{
			TokensLimit:     report.Budget().TokensLimit(),
			TokensRemaining: report.Budget().TokensRemaining(),
			IsExhausted:     report.Budget().IsExhausted(),
		},
	}
	if !report.Budget().IsUnlimited() && report.Budget().ResetsAt() > 0 {
		resetsAt := time.UnixMilli(report.Budget().ResetsAt()).UTC()
		resp.Budget.ResetsAt = &resetsAt
	}

	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:       string(report.Status),
		Checks:       checks,
		CatalogItems: report.CatalogItems,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func setIntentHeaders(w http.ResponseWriter, usage *domain.IntentUsage) {
	if usage != nil && usage.Used {
		w.Header().Set("X-Intent-Tokens", strconv.Itoa(usage.TotalTokens))
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrMalformedExtraction,
		domain.ErrInvalidCriteria,
		domain.ErrEmptyQuery,
		domain.ErrRateLimited,
		domain.ErrIntentQuotaExceeded,
		domain.ErrIntentProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// validationHandler reports the offending criteria field to the client.
func validationHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrInvalidCriteria) {
		return false
	}
	var ice *domain.InvalidCriteriaError
	if errors.As(err, &ice) {
		msg = ice.Error()
	}
	writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, msg)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
