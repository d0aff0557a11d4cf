package chi

import (
	"github.com/yazarlar/articlekit/internal/domain/article"
	"github.com/yazarlar/articlekit/internal/domain/category"
	"github.com/yazarlar/articlekit/internal/domain/popularity"
	"github.com/yazarlar/articlekit/internal/domain/similarity"
)

// ErrorCode is a machine-readable error identifier.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeUnauthorized     ErrorCode = "unauthorized"
	ErrorCodePayloadTooLarge  ErrorCode = "payload_too_large"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// DocumentDTO is a candidate article on the wire.
type DocumentDTO struct {
	ID       string         `json:"id"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// SummarizeRequest is the body of POST /api/v1/summarize.
type SummarizeRequest struct {
	Text         string `json:"text"`
	MaxSentences int    `json:"max_sentences,omitempty"`
}

// SummarizeResponse is returned by POST /api/v1/summarize.
type SummarizeResponse struct {
	Summary string `json:"summary"`
}

// SimilarRequest is the body of POST /api/v1/similar.
type SimilarRequest struct {
	Query      string        `json:"query"`
	Candidates []DocumentDTO `json:"candidates"`
	TopN       int           `json:"top_n,omitempty"`
}

// ScoredDocument is a document with its ranking score.
type ScoredDocument struct {
	Document DocumentDTO `json:"document"`
	Score    float64     `json:"score"`
}

// RankingResponse is returned by the ranking endpoints.
type RankingResponse struct {
	Results []ScoredDocument `json:"results"`
}

// SuggestCategoryRequest is the body of POST /api/v1/categories/suggest.
type SuggestCategoryRequest struct {
	Title    string              `json:"title"`
	Content  string              `json:"content"`
	Taxonomy []category.Category `json:"taxonomy,omitempty"`
}

// SuggestCategoryResponse is returned by POST /api/v1/categories/suggest.
// Categories lists the taxonomy records matching the label, if any.
type SuggestCategoryResponse struct {
	SuggestedCategory string              `json:"suggested_category"`
	Scores            map[string]int      `json:"scores"`
	Categories        []category.Category `json:"categories,omitempty"`
}

// EngagementDTO is an article with its engagement counters.
type EngagementDTO struct {
	Document DocumentDTO `json:"document"`
	Likes    int64       `json:"likes"`
	Views    int64       `json:"views"`
}

// TopRequest is the body of POST /api/v1/top.
type TopRequest struct {
	Articles []EngagementDTO `json:"articles"`
	Limit    int             `json:"limit,omitempty"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func documentFromDTO(d DocumentDTO) (article.Document, error) {
	return article.New(d.ID, d.Content, d.Metadata)
}

func documentToDTO(d *article.Document) DocumentDTO {
	return DocumentDTO{ID: d.ID(), Content: d.Content(), Metadata: d.Metadata()}
}

func similarityToDTO(results []similarity.Result) RankingResponse {
	out := make([]ScoredDocument, len(results))
	for i := range results {
		doc := results[i].Document()
		out[i] = ScoredDocument{Document: documentToDTO(&doc), Score: results[i].Score()}
	}
	return RankingResponse{Results: out}
}

func popularityToDTO(ranked []popularity.Ranked) RankingResponse {
	out := make([]ScoredDocument, len(ranked))
	for i := range ranked {
		out[i] = ScoredDocument{Document: documentToDTO(&ranked[i].Entry.Document), Score: ranked[i].Score}
	}
	return RankingResponse{Results: out}
}
