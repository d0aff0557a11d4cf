package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yazarlar/articlekit/internal/domain/article"
	"github.com/yazarlar/articlekit/internal/domain/category"
	"github.com/yazarlar/articlekit/internal/domain/popularity"
	"github.com/yazarlar/articlekit/internal/domain/similarity"
	healthuc "github.com/yazarlar/articlekit/internal/usecase/health"
)

// DefaultMaxBodyBytes caps request bodies when the server is built without a limit.
const DefaultMaxBodyBytes = 8 << 20

// Summarizer produces extractive summaries.
type Summarizer interface {
	Summarize(ctx context.Context, text string, maxSentences int) string
}

// SimilarityRanker ranks candidates against a query text.
type SimilarityRanker interface {
	FindSimilar(ctx context.Context, queryText string, candidates []article.Document, topN int) []similarity.Result
}

// CategorySuggester suggests and resolves category labels.
type CategorySuggester interface {
	Suggest(title, content string) string
	Scores(title, content string) category.Scores
	Resolve(label string, taxonomy []category.Category) []category.Category
}

// PopularityRanker orders articles by engagement.
type PopularityRanker interface {
	Top(entries []popularity.Entry, limit int) []popularity.Ranked
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Services groups the use cases exposed over HTTP.
type Services struct {
	Summary    Summarizer
	Similarity SimilarityRanker
	Category   CategorySuggester
	Popularity PopularityRanker
	Health     HealthChecker
}

// Server is the JSON API adapter over the article assistant use cases.
type Server struct {
	svc          Services
	maxBodyBytes int64
	logger       *zap.Logger
}

// NewServer creates an HTTP API server. maxBodyBytes <= 0 uses DefaultMaxBodyBytes.
func NewServer(svc Services, maxBodyBytes int64, logger *zap.Logger) *Server {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{svc: svc, maxBodyBytes: maxBodyBytes, logger: logger}
}

// Routes registers the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/summarize", s.Summarize)
		r.Post("/similar", s.FindSimilar)
		r.Post("/categories/suggest", s.SuggestCategory)
		r.Post("/top", s.Top)
	})
}

// Summarize handles POST /api/v1/summarize.
func (s *Server) Summarize(w http.ResponseWriter, r *http.Request) {
	var req SummarizeRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "text is required")
		return
	}
	if req.MaxSentences < 0 {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "max_sentences must not be negative")
		return
	}

	writeJSON(w, http.StatusOK, SummarizeResponse{
		Summary: s.svc.Summary.Summarize(r.Context(), req.Text, req.MaxSentences),
	})
}

// FindSimilar handles POST /api/v1/similar.
func (s *Server) FindSimilar(w http.ResponseWriter, r *http.Request) {
	var req SimilarRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.TopN < 0 {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "top_n must not be negative")
		return
	}

	candidates := make([]article.Document, 0, len(req.Candidates))
	for i, c := range req.Candidates {
		doc, err := documentFromDTO(c)
		if err != nil {
			writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, fmt.Sprintf("candidates[%d]: %v", i, err))
			return
		}
		candidates = append(candidates, doc)
	}

	results := s.svc.Similarity.FindSimilar(r.Context(), req.Query, candidates, req.TopN)
	writeJSON(w, http.StatusOK, similarityToDTO(results))
}

// SuggestCategory handles POST /api/v1/categories/suggest.
func (s *Server) SuggestCategory(w http.ResponseWriter, r *http.Request) {
	var req SuggestCategoryRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Title) == "" && strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "title or content is required")
		return
	}

	label := s.svc.Category.Suggest(req.Title, req.Content)
	resp := SuggestCategoryResponse{
		SuggestedCategory: label,
		Scores:            s.svc.Category.Scores(req.Title, req.Content),
	}
	if len(req.Taxonomy) > 0 {
		if matches := s.svc.Category.Resolve(label, req.Taxonomy); len(matches) > 0 {
			resp.Categories = matches
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// Top handles POST /api/v1/top.
func (s *Server) Top(w http.ResponseWriter, r *http.Request) {
	var req TopRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Limit < 0 {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "limit must not be negative")
		return
	}

	entries := make([]popularity.Entry, 0, len(req.Articles))
	for i, a := range req.Articles {
		if a.Likes < 0 || a.Views < 0 {
			writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed,
				fmt.Sprintf("articles[%d]: likes and views must not be negative", i))
			return
		}
		doc, err := documentFromDTO(a.Document)
		if err != nil {
			writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, fmt.Sprintf("articles[%d]: %v", i, err))
			return
		}
		entries = append(entries, popularity.Entry{Document: doc, Likes: a.Likes, Views: a.Views})
	}

	writeJSON(w, http.StatusOK, popularityToDTO(s.svc.Popularity.Top(entries, req.Limit)))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.svc.Health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// decode reads a JSON body into v. On failure it writes the error response
// and returns false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, ErrorCodePayloadTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return false
		}
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
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
