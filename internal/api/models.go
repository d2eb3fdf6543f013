package api

import (
	"strings"

	"github.com/ktgktg/blogsmith/internal/domain"
)

// Common request/response structures

// LoginRequest defines the payload for the login endpoint. Users are the
// rows of the Notion user database.
type LoginRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Password string `json:"user_pw" validate:"required"`
}

// StatusResponse is returned by login and logout.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	UserID  string `json:"user_id,omitempty"`
	// AccessToken mirrors the session cookie for clients that cannot use it
	AccessToken  string `json:"token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresAt    string `json:"expires_at,omitempty"`
}

// CheckResponse reports the authenticated user.
type CheckResponse struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"user_id"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	// RefreshToken is the JWT refresh token to be used to obtain a new token pair
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	// ExpiresAt is the RFC 3339 timestamp when the access token expires
	ExpiresAt string `json:"expires_at"`
}

// TitleRequest asks for a title suggestion.
type TitleRequest struct {
	Keyword string `json:"keyword" validate:"required"`
	Model   string `json:"model"   validate:"required"`
	APIKey  string `json:"api_key"`
}

// TitleResponse carries a generated title.
type TitleResponse struct {
	Title string `json:"title"`
}

// ContentRequest asks for an article body for a title.
type ContentRequest struct {
	Title   string `json:"title"   validate:"required"`
	Keyword string `json:"keyword"`
	Model   string `json:"model"   validate:"required"`
	APIKey  string `json:"api_key"`
}

// ContentResponse carries generated article text.
type ContentResponse struct {
	Content string `json:"content"`
	Model   string `json:"model,omitempty"`
}

// BriefFields are the article description fields shared by draft and final
// requests.
type BriefFields struct {
	Topic            string   `json:"topic"             validate:"required"`
	Intent           string   `json:"article_intent"    validate:"required"`
	Audience         string   `json:"target_audience"   validate:"required"`
	Tone             string   `json:"tone_style"        validate:"required"`
	DetailedKeywords string   `json:"detailed_keywords"`
	AgeGroups        []string `json:"age_groups"`
	Gender           string   `json:"gender"`
}

// Brief converts the fields to the domain brief.
func (b BriefFields) Brief() domain.Brief {
	groups := make([]string, 0, len(b.AgeGroups))
	for _, g := range b.AgeGroups {
		if g = strings.TrimSpace(g); g != "" {
			groups = append(groups, g)
		}
	}
	return domain.Brief{
		Topic:            strings.TrimSpace(b.Topic),
		Intent:           strings.TrimSpace(b.Intent),
		Audience:         strings.TrimSpace(b.Audience),
		Tone:             strings.TrimSpace(b.Tone),
		DetailedKeywords: strings.TrimSpace(b.DetailedKeywords),
		AgeGroups:        groups,
		Gender:           strings.TrimSpace(b.Gender),
	}
}

// DraftRequest asks for one draft from one provider.
type DraftRequest struct {
	BriefFields
	Model  string `json:"model"   validate:"required"`
	APIKey string `json:"api_key"`
}

// AnalyzeRequest asks for a critique of a draft.
type AnalyzeRequest struct {
	DraftContent string `json:"draft_content" validate:"required"`
	Model        string `json:"model"         validate:"required"`
	APIKey       string `json:"api_key"`
}

// AnalyzeResponse is the structured critique of a draft.
type AnalyzeResponse struct {
	Pros        []string `json:"pros"`
	Cons        []string `json:"cons"`
	Improvement string   `json:"improvement"`
}

// DraftInput is a prior draft sent for synthesis.
type DraftInput struct {
	Model   string `json:"model"   validate:"required"`
	Content string `json:"content" validate:"required"`
}

// AnalysisInput is a prior critique sent for synthesis.
type AnalysisInput struct {
	Model       string   `json:"model"`
	Pros        []string `json:"pros"`
	Cons        []string `json:"cons"`
	Improvement string   `json:"improvement"`
}

// FinalRequest asks for the final article merged from drafts and analyses.
// Model is accepted for compatibility; the synthesis provider is fixed by
// configuration.
type FinalRequest struct {
	BriefFields
	Drafts   []DraftInput    `json:"drafts"   validate:"required,min=1,dive"`
	Analyses []AnalysisInput `json:"analyses"`
	Model    string          `json:"model"`
	APIKey   string          `json:"api_key"`
}

// SaveArticleRequest stores an article explicitly.
type SaveArticleRequest struct {
	Topic    string `json:"topic"           validate:"required"`
	Content  string `json:"content"         validate:"required"`
	Intent   string `json:"article_intent"`
	Audience string `json:"target_audience"`
	Model    string `json:"model"`
	Kind     string `json:"kind"`
}

// ArticleResponse is one entry of the article history.
type ArticleResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Topic       string `json:"topic"`
	Content     string `json:"content"`
	CreatedDate string `json:"created_date"`
	Model       string `json:"model"`
	Intent      string `json:"article_intent"`
	Audience    string `json:"target_audience"`
	Kind        string `json:"kind"`
}

// HistoryResponse lists the user's articles.
type HistoryResponse struct {
	Articles []ArticleResponse `json:"articles"`
}

// APIKeysRequest replaces the caller's stored provider keys. An empty value
// clears the key.
type APIKeysRequest struct {
	OpenAI string `json:"openai"`
	Groq   string `json:"groq"`
	Gemini string `json:"gemini"`
}

// APIKeysResponse reports the caller's stored keys, masked.
type APIKeysResponse struct {
	APIKeys map[string]string `json:"api_keys"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status    string          `json:"status"`
	Providers map[string]bool `json:"providers"`
	Storage   bool            `json:"storage"`
}
