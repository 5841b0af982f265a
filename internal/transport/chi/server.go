// Package chi implements the HTTP transport: JSON request/response mapping,
// routing, and translation of domain errors into status codes.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/atelier-cloud/catalog/internal/domain"
	domprod "github.com/atelier-cloud/catalog/internal/domain/product"
	domprom "github.com/atelier-cloud/catalog/internal/domain/promo"
	"github.com/atelier-cloud/catalog/internal/domain/search/filter"
	"github.com/atelier-cloud/catalog/internal/domain/search/query"
	cataloguc "github.com/atelier-cloud/catalog/internal/usecase/catalog"
	healthuc "github.com/atelier-cloud/catalog/internal/usecase/health"
	promouc "github.com/atelier-cloud/catalog/internal/usecase/promo"
	searchuc "github.com/atelier-cloud/catalog/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the use case services and maps them onto HTTP endpoints.
type Server struct {
	catalog       *cataloguc.Service
	search        *searchuc.Service
	promos        *promouc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	now           func() time.Time
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	catalog *cataloguc.Service,
	search *searchuc.Service,
	promos *promouc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		catalog: catalog,
		search:  search,
		promos:  promos,
		health:  health,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrProductNotFound, http.StatusNotFound, codeProductNotFound),
		sentinelHandler(domain.ErrPromoNotFound, http.StatusNotFound, codePromoNotFound),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, codeAlreadyExists),
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrEmbeddingUnavailable, http.StatusBadGateway, codeEmbeddingUnavailable),
		sentinelHandler(domain.ErrRetrieval, http.StatusInternalServerError, codeSearchFailed),
	}
	return s
}

// Routes registers all API endpoints on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Post("/", s.CreateProduct)
			r.Get("/", s.ListProducts)
			r.Get("/{id}", s.GetProduct)
			r.Patch("/{id}", s.UpdateProduct)
			r.Delete("/{id}", s.DeleteProduct)
		})
		r.Post("/search", s.Search)
		r.Route("/promos", func(r chi.Router) {
			r.Post("/", s.CreatePromo)
			r.Get("/", s.ListPromos)
			r.Get("/{code}", s.GetPromo)
			r.Delete("/{code}", s.DeletePromo)
			r.Post("/{code}/redeem", s.RedeemPromo)
		})
	})
}

// CreateProduct handles POST /api/v1/products.
func (s *Server) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	p, err := s.catalog.Create(r.Context(), req.toAttrs())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, productToResponse(&p))
}

// GetProduct handles GET /api/v1/products/{id}.
func (s *Server) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := s.catalog.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, productToResponse(&p))
}

// UpdateProduct handles PATCH /api/v1/products/{id}.
func (s *Server) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	p, err := s.catalog.Update(r.Context(), id, req.toPatch())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, productToResponse(&p))
}

// DeleteProduct handles DELETE /api/v1/products/{id}.
func (s *Server) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := s.catalog.Delete(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, codeProductNotFound, domain.ErrProductNotFound.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListProducts handles GET /api/v1/products.
func (s *Server) ListProducts(w http.ResponseWriter, r *http.Request) {
	f, err := filtersFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	offset, err := intQueryParam(r, "offset", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	limit, err := intQueryParam(r, "limit", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	products, total, err := s.catalog.List(r.Context(), f, offset, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := listProductsResponse{
		Products: make([]productResponse, 0, len(products)),
		Total:    total,
		Offset:   offset,
		Limit:    limit,
	}
	for i := range products {
		resp.Products = append(resp.Products, productToResponse(&products[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Search handles POST /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	// Semantic is the default mode; minScore falls back to the
	// domain default when the caller leaves it unset.
	semantic := true
	if req.Semantic != nil {
		semantic = *req.Semantic
	}
	minScore := query.DefaultMinScore
	if req.MinScore != nil {
		minScore = *req.MinScore
	}

	f := filter.Filters{
		Category: req.Category,
		Status:   domprod.Status(req.Status),
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
	}

	q, err := query.New(req.Query, f, semantic, req.TopK, minScore)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results, err := s.search.Search(r.Context(), &q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resultsToResponse(q.Text(), q.Semantic(), results))
}

// CreatePromo handles POST /api/v1/promos.
func (s *Server) CreatePromo(w http.ResponseWriter, r *http.Request) {
	var req createPromoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	p, err := s.promos.Create(r.Context(), req.Code, domprom.Type(req.Type), req.Value, req.MaxUses, req.EndDate)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, promoToResponse(&p, s.now()))
}

// GetPromo handles GET /api/v1/promos/{code}.
func (s *Server) GetPromo(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	p, err := s.promos.Get(r.Context(), code)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, promoToResponse(&p, s.now()))
}

// ListPromos handles GET /api/v1/promos.
func (s *Server) ListPromos(w http.ResponseWriter, r *http.Request) {
	promos, err := s.promos.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	now := s.now()
	resp := listPromosResponse{
		Promos: make([]promoResponse, 0, len(promos)),
		Total:  len(promos),
	}
	for i := range promos {
		resp.Promos = append(resp.Promos, promoToResponse(&promos[i], now))
	}
	writeJSON(w, http.StatusOK, resp)
}

// DeletePromo handles DELETE /api/v1/promos/{code}.
func (s *Server) DeletePromo(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	deleted, err := s.promos.Delete(r.Context(), code)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, codePromoNotFound, domain.ErrPromoNotFound.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RedeemPromo handles POST /api/v1/promos/{code}/redeem.
func (s *Server) RedeemPromo(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	var req redeemPromoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	discount, used, err := s.promos.Redeem(r.Context(), code, req.Amount)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, redeemPromoResponse{
		Code:        used.Code(),
		Discount:    discount,
		FinalAmount: req.Amount - discount,
		Uses:        used.Uses(),
	})
}

// HealthCheck handles GET /health. Returns 503 when any component is down.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics (Prometheus format).
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// handleDomainError maps a domain error onto an HTTP response.
func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

// safeDomainMessage returns an error message safe for API responses.
// Only known sentinel messages pass through; anything else may carry
// internal details (addresses, keys) and is masked.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrProductNotFound,
		domain.ErrPromoNotFound,
		domain.ErrValidation,
		domain.ErrAlreadyExists,
		domain.ErrEmbeddingUnavailable,
		domain.ErrRetrieval,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

func filtersFromQuery(r *http.Request) (filter.Filters, error) {
	f := filter.Filters{
		Category: r.URL.Query().Get("category"),
		Status:   domprod.Status(r.URL.Query().Get("status")),
	}
	var err error
	if f.MinPrice, err = floatQueryParam(r, "min_price"); err != nil {
		return filter.Filters{}, err
	}
	if f.MaxPrice, err = floatQueryParam(r, "max_price"); err != nil {
		return filter.Filters{}, err
	}
	return f, nil
}

func intQueryParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("invalid " + name + " parameter")
	}
	return v, nil
}

func floatQueryParam(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errors.New("invalid " + name + " parameter")
	}
	return &v, nil
}
