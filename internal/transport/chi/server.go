// Package chi is the HTTP API layer: routing, request decoding, and
// domain error to status code mapping.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/nermeennasim/chainreach-ai/internal/domain"
	domcontent "github.com/nermeennasim/chainreach-ai/internal/domain/content"
	domret "github.com/nermeennasim/chainreach-ai/internal/domain/retrieval"
	domseg "github.com/nermeennasim/chainreach-ai/internal/domain/segment"
	complianceuc "github.com/nermeennasim/chainreach-ai/internal/usecase/compliance"
	healthuc "github.com/nermeennasim/chainreach-ai/internal/usecase/health"
	retrievaluc "github.com/nermeennasim/chainreach-ai/internal/usecase/retrieval"
	segmentuc "github.com/nermeennasim/chainreach-ai/internal/usecase/segment"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the retrieval, compliance, and segmentation services.
type Server struct {
	retrieval     *retrievaluc.Service
	compliance    *complianceuc.Service
	segments      *segmentuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	retrieval *retrievaluc.Service,
	compliance *complianceuc.Service,
	segments *segmentuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		retrieval:  retrieval,
		compliance: compliance,
		segments:   segments,
		health:     health,
		logger:     logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidArgument, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrContentNotFound, http.StatusNotFound, codeContentNotFound),
		sentinelHandler(domain.ErrCustomerNotFound, http.StatusNotFound, codeCustomerNotFound),
		sentinelHandler(domain.ErrVectorDimMismatch, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbeddingProviderError),
		sentinelHandler(domain.ErrClassifierError, http.StatusBadGateway, codeClassifierError),
		sentinelHandler(domain.ErrRepositoryUnavailable, http.StatusServiceUnavailable, codeStorageUnavailable),
	}
	return s
}

// Routes registers all API routes on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.healthCheck)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Post("/search", s.searchContent)
	r.Get("/content", s.listContent)
	r.Get("/content/{id}", s.getContent)
	r.Post("/validate", s.validateMessages)
	r.Get("/stats", s.complianceStats)
	r.Post("/segment/manual", s.segmentManual)
	r.Post("/segment/customer", s.segmentCustomer)
}

// searchContent handles POST /search.
func (s *Server) searchContent(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	criteria := domcontent.NewCriteria(
		req.ContentType, req.CampaignName, req.Audience, req.ComplianceStatus, req.Tags,
	)
	rankReq, err := domret.NewRankRequest(req.Query, criteria, req.TopK, s.retrieval.DefaultTopK())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results, err := s.retrieval.Rank(r.Context(), &rankReq)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponseFromResults(results))
}

// listContent handles GET /content with skip/limit pagination.
func (s *Server) listContent(w http.ResponseWriter, r *http.Request) {
	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "skip must be an integer")
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "limit must be an integer")
		return
	}

	results, err := s.retrieval.ListActive(r.Context(), skip, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponseFromResults(results))
}

// getContent handles GET /content/{id}.
func (s *Server) getContent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := s.retrieval.GetByID(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resultToItem(&result))
}

// validateMessages handles POST /validate.
func (s *Server) validateMessages(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	report, err := s.compliance.Validate(r.Context(), req.Messages)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, validateResponseFromReport(report))
}

// complianceStats handles GET /stats.
func (s *Server) complianceStats(w http.ResponseWriter, r *http.Request) {
	stats := s.compliance.CurrentStats()
	writeJSON(w, http.StatusOK, statsResponse{
		TotalRequests: stats.TotalRequests,
		Mode:          stats.Mode,
	})
}

// segmentManual handles POST /segment/manual.
func (s *Server) segmentManual(w http.ResponseWriter, r *http.Request) {
	var req manualSegmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	pred, err := s.segments.PredictManual(r.Context(), domseg.RFMFeatures{
		Recency:   req.Recency,
		Frequency: req.Frequency,
		Monetary:  req.Monetary,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, predictionToResponse(pred, ""))
}

// segmentCustomer handles POST /segment/customer.
func (s *Server) segmentCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerSegmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	pred, err := s.segments.PredictCustomer(r.Context(), req.CustomerID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, predictionToResponse(pred, req.CustomerID))
}

// healthCheck handles GET /health.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
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

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
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

// safeDomainMessage returns the sentinel message without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidArgument,
		domain.ErrContentNotFound,
		domain.ErrCustomerNotFound,
		domain.ErrVectorDimMismatch,
		domain.ErrEmbeddingProviderError,
		domain.ErrClassifierError,
		domain.ErrRepositoryUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler matching a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
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
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
