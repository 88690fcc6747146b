package chi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/antopucung/GodotTeko-sub003/internal/domain/product"
	"github.com/antopucung/GodotTeko-sub003/internal/domain/search/request"
	"github.com/antopucung/GodotTeko-sub003/internal/domain/search/result"
	healthuc "github.com/antopucung/GodotTeko-sub003/internal/usecase/health"
	searchuc "github.com/antopucung/GodotTeko-sub003/internal/usecase/search"
)

// searchFailedMessage is the message of the last-resort search error envelope.
const searchFailedMessage = "Failed to fetch products"

// Server serves the catalog HTTP API.
type Server struct {
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	defaultLimit  int
	maxLimit      int
	suggestLimit  int
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search *searchuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	return &Server{
		search:        search,
		health:        health,
		logger:        logger,
		defaultLimit:  request.DefaultLimit,
		maxLimit:      request.MaxLimit,
		suggestLimit:  searchuc.DefaultSuggestLimit,
		errorHandlers: defaultErrorHandlers(),
	}
}

// WithPagination overrides the default page size and its cap.
func (s *Server) WithPagination(defaultLimit, maxLimit int) *Server {
	if defaultLimit > 0 {
		s.defaultLimit = defaultLimit
	}
	if maxLimit > 0 {
		s.maxLimit = maxLimit
	}
	return s
}

// WithSuggestLimit overrides the number of suggestions returned when the caller asks for none.
func (s *Server) WithSuggestLimit(n int) *Server {
	if n > 0 {
		s.suggestLimit = n
	}
	return s
}

// SearchProducts handles GET /api/products.
func (s *Server) SearchProducts(w http.ResponseWriter, r *http.Request) {
	params := bindSearchParams(r.URL.Query())
	limit := params.limit()
	if limit <= 0 {
		limit = s.defaultLimit
	}
	req := request.New(params.filters(), params.page(), limit, s.maxLimit)

	env, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.logger.Error("product search failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError,
			result.NewErrorEnvelope(string(ErrorCodeCatalogUnavailable), searchFailedMessage))
		return
	}

	writeJSON(w, http.StatusOK, env)
}

// productResponse is the body of GET /api/products/{id}.
type productResponse struct {
	Data product.Product `json:"data"`
}

// GetProduct handles GET /api/products/{id}.
func (s *Server) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		s.NotFound(w, r)
		return
	}

	p, err := s.search.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, productResponse{Data: p})
}

// suggestResponse is the body of GET /api/products/suggest.
type suggestResponse struct {
	Data []result.Suggestion `json:"data"`
}

// SuggestProducts handles GET /api/products/suggest.
func (s *Server) SuggestProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := deref(scalar[string](q, "q"))
	limit := deref(scalar[int](q, "limit"))
	if limit <= 0 || limit > s.maxLimit {
		limit = s.suggestLimit
	}

	suggestions, err := s.search.Suggest(r.Context(), query, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, suggestResponse{Data: suggestions})
}

// ProductFilters handles GET /api/products/filters.
func (s *Server) ProductFilters(w http.ResponseWriter, r *http.Request) {
	facets, err := s.search.Facets(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, facets)
}

// healthResponse is the body of GET /health.
type healthResponse struct {
	Status healthuc.Status                 `json:"status"`
	Checks map[string]healthuc.CheckResult `json:"checks"`
}

// HealthCheck handles GET /health. Degraded still answers 200: searches are served.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: report.Status,
		Checks: report.Checks,
	})
}

// NotFound answers unknown routes with the JSON error body.
func (s *Server) NotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, ErrorCodeNotFound, "route not found")
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
