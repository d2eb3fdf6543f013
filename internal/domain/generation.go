package domain

import (
	"fmt"
	"strings"
)

// Provider identifies an external text-generation service.
type Provider string

// Supported providers.
const (
	ProviderOpenAI Provider = "openai"
	ProviderGroq   Provider = "groq"
	ProviderGemini Provider = "gemini"
)

// Providers lists every supported provider in a stable order.
var Providers = []Provider{ProviderOpenAI, ProviderGroq, ProviderGemini}

// ParseProvider normalizes name and checks it against the supported set.
func ParseProvider(name string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(name)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedProvider, name)
	}
	return p, nil
}

// Valid reports whether p is one of the supported providers.
func (p Provider) Valid() bool {
	switch p {
	case ProviderOpenAI, ProviderGroq, ProviderGemini:
		return true
	}
	return false
}

// Label is the human-facing provider name used in messages.
func (p Provider) Label() string {
	switch p {
	case ProviderOpenAI:
		return "OpenAI"
	case ProviderGroq:
		return "Groq"
	case ProviderGemini:
		return "Gemini"
	}
	return string(p)
}

// Operation is one of the five generation tasks.
type Operation string

// Generation operations.
const (
	OperationTitle     Operation = "title"
	OperationContent   Operation = "content"
	OperationDraft     Operation = "draft"
	OperationCritique  Operation = "critique"
	OperationSynthesis Operation = "synthesis"
)

// Operations lists every operation in a stable order.
var Operations = []Operation{
	OperationTitle, OperationContent, OperationDraft, OperationCritique, OperationSynthesis,
}

// Valid reports whether o is a known operation.
func (o Operation) Valid() bool {
	for _, known := range Operations {
		if o == known {
			return true
		}
	}
	return false
}

// Field names understood by the prompt templates.
const (
	FieldKeyword          = "keyword"
	FieldTitle            = "title"
	FieldTopic            = "topic"
	FieldIntent           = "intent"
	FieldAudience         = "audience"
	FieldTone             = "tone"
	FieldDetailedKeywords = "detailed_keywords"
	FieldAgeGroups        = "age_groups"
	FieldGender           = "gender"
	FieldDraft            = "draft"
	FieldDrafts           = "drafts"
)

// Fields carries the named string parameters of a generation request.
type Fields map[string]string

// DraftRef is a prior draft fed into synthesis.
type DraftRef struct {
	Provider Provider `json:"model" validate:"required"`
	Text     string   `json:"content" validate:"required"`
}

// Critique is the structured analysis of a single draft.
type Critique struct {
	Provider    Provider `json:"model,omitempty"`
	Strengths   []string `json:"pros"`
	Weaknesses  []string `json:"cons"`
	Improvement string   `json:"improvement"`
}

// Brief is the caller-supplied description of the article to write.
type Brief struct {
	Topic            string
	Intent           string
	Audience         string
	Tone             string
	DetailedKeywords string
	AgeGroups        []string
	Gender           string
}

// Fields converts the brief to template fields. Empty optional values are
// omitted so template defaults apply.
func (b Brief) Fields() Fields {
	f := Fields{
		FieldTopic:    b.Topic,
		FieldIntent:   b.Intent,
		FieldAudience: b.Audience,
		FieldTone:     b.Tone,
	}
	if b.DetailedKeywords != "" {
		f[FieldDetailedKeywords] = b.DetailedKeywords
	}
	if len(b.AgeGroups) > 0 {
		f[FieldAgeGroups] = strings.Join(b.AgeGroups, ", ")
	}
	if b.Gender != "" {
		f[FieldGender] = b.Gender
	}
	return f
}

// GenerationRequest is everything needed for one generation call. It is
// built per call and not modified afterwards.
type GenerationRequest struct {
	Operation  Operation
	Provider   Provider
	Fields     Fields
	Drafts     []DraftRef
	Critiques  []Critique
	Credential string
}

// GenerationResult is the sanitized output of a successful call.
type GenerationResult struct {
	Text      string
	Operation Operation
	Provider  Provider
}
