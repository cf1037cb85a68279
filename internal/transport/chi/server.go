// Package chi is the HTTP transport: routing, request decoding, and
// domain-error to status-code mapping.
package chi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	domdoc "github.com/sodam-cloud/kbrouter/internal/domain/document"
	"github.com/sodam-cloud/kbrouter/internal/domain/search/strategy"
	domvocab "github.com/sodam-cloud/kbrouter/internal/domain/vocabulary"
	healthuc "github.com/sodam-cloud/kbrouter/internal/usecase/health"
	keyworduc "github.com/sodam-cloud/kbrouter/internal/usecase/keywordindex"
	retrievaluc "github.com/sodam-cloud/kbrouter/internal/usecase/retrieval"
	"github.com/sodam-cloud/kbrouter/internal/usecase/router"
	semanticuc "github.com/sodam-cloud/kbrouter/internal/usecase/semanticindex"
)

// Server is the HTTP API server.
type Server struct {
	retrieval     *retrievaluc.Service
	keywords      *keyworduc.Service
	semantic      *semanticuc.Service
	tunables      *router.Tunables
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	retrieval *retrievaluc.Service,
	keywords *keyworduc.Service,
	semantic *semanticuc.Service,
	tunables *router.Tunables,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		retrieval:     retrieval,
		keywords:      keywords,
		semantic:      semantic,
		tunables:      tunables,
		health:        health,
		logger:        logger,
		errorHandlers: defaultErrorHandlers(),
	}
}

// Routes registers all routes on a fresh router. Middleware is owned by the
// composition root.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/router-config", s.GetRouterConfig)
		r.Put("/router-config", s.UpdateRouterConfig)

		r.Route("/tenants/{tenant}", func(r chi.Router) {
			r.Post("/resolve", s.Resolve)
			r.Post("/search", s.Search)
			r.Post("/search/mood", s.SearchByMood)

			r.Post("/documents", s.IndexDocument)
			r.Get("/documents/{id}", s.GetDocument)
			r.Delete("/documents/{id}", s.DeleteDocument)
			r.Get("/documents/{id}/similar", s.FindSimilar)

			r.Post("/vocabulary", s.AddWord)
			r.Get("/vocabulary", s.ListVocabulary)
			r.Put("/vocabulary/{category}/{word}", s.UpdateWord)
			r.Post("/vocabulary/forbidden-check", s.CheckForbidden)
			r.Post("/vocabulary/recommend", s.RecommendWords)
		})
	})

	return r
}

// Resolve handles POST /api/v1/tenants/{tenant}/resolve.
func (s *Server) Resolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Request == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "request text is required")
		return
	}

	res, err := s.retrieval.Resolve(
		r.Context(), chi.URLParam(r, "tenant"), req.Request, req.Context, req.AvailableFilters,
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resolutionToDTO(res))
}

// Search handles POST /api/v1/tenants/{tenant}/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query is required")
		return
	}

	results, strat, err := s.retrieval.Search(
		r.Context(), chi.URLParam(r, "tenant"), req.Query, strategy.Strategy(req.Strategy), req.Limit,
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Strategy: string(strat),
		Results:  resultsToDTO(results),
		Total:    len(results),
	})
}

// SearchByMood handles POST /api/v1/tenants/{tenant}/search/mood.
func (s *Server) SearchByMood(w http.ResponseWriter, r *http.Request) {
	var req moodSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Emotion == "" && req.Tone == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "emotion or tone is required")
		return
	}

	results, err := s.retrieval.SearchByMood(
		r.Context(), chi.URLParam(r, "tenant"), req.Emotion, req.Tone, req.Audience, req.Limit,
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Strategy: string(strategy.Hybrid),
		Results:  resultsToDTO(results),
		Total:    len(results),
	})
}

// IndexDocument handles POST /api/v1/tenants/{tenant}/documents.
func (s *Server) IndexDocument(w http.ResponseWriter, r *http.Request) {
	var req indexDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	doc, err := s.semantic.Index(
		r.Context(), chi.URLParam(r, "tenant"), req.Content,
		domdoc.Type(req.Type), domdoc.Axis(req.Axis), req.Metadata,
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, documentToDTO(&doc))
}

// GetDocument handles GET /api/v1/tenants/{tenant}/documents/{id}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.semantic.Get(r.Context(), chi.URLParam(r, "tenant"), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, documentToDTO(&doc))
}

// DeleteDocument handles DELETE /api/v1/tenants/{tenant}/documents/{id}.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.semantic.Delete(r.Context(), chi.URLParam(r, "tenant"), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// FindSimilar handles GET /api/v1/tenants/{tenant}/documents/{id}/similar.
func (s *Server) FindSimilar(w http.ResponseWriter, r *http.Request) {
	var limit int
	if err := runtime.BindQueryParameter(
		"form", true, false, "limit", r.URL.Query(), &limit,
	); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "invalid limit: "+err.Error())
		return
	}
	if limit <= 0 {
		limit = 10
	}

	matches, err := s.semantic.FindSimilar(
		r.Context(), chi.URLParam(r, "tenant"), chi.URLParam(r, "id"), limit,
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results := semanticuc.ToResults(matches)
	writeJSON(w, http.StatusOK, searchResponse{
		Strategy: string(strategy.Semantic),
		Results:  resultsToDTO(results),
		Total:    len(results),
	})
}

// AddWord handles POST /api/v1/tenants/{tenant}/vocabulary.
func (s *Server) AddWord(w http.ResponseWriter, r *http.Request) {
	var req wordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	entry, err := domvocab.New(
		req.Word, domvocab.Category(req.Category),
		req.RelatedWords, req.Synonyms, req.Antonyms,
		req.UsageContext, req.Intensity, req.TargetAudience,
	)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	if err := s.keywords.AddWord(r.Context(), chi.URLParam(r, "tenant"), entry); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, entryToDTO(&entry))
}

// ListVocabulary handles GET /api/v1/tenants/{tenant}/vocabulary.
func (s *Server) ListVocabulary(w http.ResponseWriter, r *http.Request) {
	var category string
	if err := runtime.BindQueryParameter(
		"form", true, true, "category", r.URL.Query(), &category,
	); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "category is required: "+err.Error())
		return
	}
	if !domvocab.Category(category).IsValid() {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "unknown category "+category)
		return
	}

	entries, err := s.keywords.EntriesByCategory(
		r.Context(), chi.URLParam(r, "tenant"), domvocab.Category(category),
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": entriesToDTO(entries),
		"total": len(entries),
	})
}

// UpdateWord handles PUT /api/v1/tenants/{tenant}/vocabulary/{category}/{word}.
func (s *Server) UpdateWord(w http.ResponseWriter, r *http.Request) {
	var req wordPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	category := domvocab.Category(chi.URLParam(r, "category"))
	if !category.IsValid() {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "unknown category "+string(category))
		return
	}

	patch := domvocab.Patch{
		RelatedWords:   req.RelatedWords,
		Synonyms:       req.Synonyms,
		Antonyms:       req.Antonyms,
		UsageContext:   req.UsageContext,
		Intensity:      req.Intensity,
		TargetAudience: req.TargetAudience,
	}

	err := s.keywords.UpdateWord(
		r.Context(), chi.URLParam(r, "tenant"), chi.URLParam(r, "word"), category, patch,
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CheckForbidden handles POST /api/v1/tenants/{tenant}/vocabulary/forbidden-check.
func (s *Server) CheckForbidden(w http.ResponseWriter, r *http.Request) {
	var req forbiddenCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "text is required")
		return
	}

	report, err := s.keywords.SuggestAlternatives(r.Context(), chi.URLParam(r, "tenant"), req.Text)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reportToDTO(report))
}

// RecommendWords handles POST /api/v1/tenants/{tenant}/vocabulary/recommend.
func (s *Server) RecommendWords(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	entries, err := s.keywords.Recommend(
		r.Context(), chi.URLParam(r, "tenant"), req.Emotion, req.Tone, req.Audience, req.Limit,
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": entriesToDTO(entries),
		"total": len(entries),
	})
}

// GetRouterConfig handles GET /api/v1/router-config.
func (s *Server) GetRouterConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, configToDTO(s.tunables.Snapshot()))
}

// UpdateRouterConfig handles PUT /api/v1/router-config.
func (s *Server) UpdateRouterConfig(w http.ResponseWriter, r *http.Request) {
	var req routerConfigPatchDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.MinScore != nil && (*req.MinScore < 0 || *req.MinScore > 1) {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "min_score must be between 0 and 1")
		return
	}
	if req.VectorWeight != nil && *req.VectorWeight < 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "vector_weight must not be negative")
		return
	}
	if req.KeywordWeight != nil && *req.KeywordWeight < 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "keyword_weight must not be negative")
		return
	}

	updated := s.tunables.Update(req.toPatch())
	writeJSON(w, http.StatusOK, configToDTO(updated))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}
