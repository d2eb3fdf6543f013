package generation

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/ktgktg/blogsmith/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var defaultCatalog []byte

// promptTemplate is one operation's entry in the prompt catalog.
type promptTemplate struct {
	Required []string          `yaml:"required"`
	Optional []string          `yaml:"optional"`
	Defaults map[string]string `yaml:"defaults"`
	Template string            `yaml:"template"`

	tmpl *template.Template
}

// PromptInput is the data a template is rendered from. Drafts and Critiques
// are only read by the synthesis template.
type PromptInput struct {
	Fields    domain.Fields
	Drafts    []domain.DraftRef
	Critiques []domain.Critique
}

// PromptBuilder renders the fixed instruction text for each operation.
// It is immutable after construction and safe for concurrent use.
type PromptBuilder struct {
	templates map[domain.Operation]*promptTemplate
}

// NewPromptBuilder loads the embedded prompt catalog.
func NewPromptBuilder() (*PromptBuilder, error) {
	return LoadPromptBuilder(defaultCatalog)
}

// LoadPromptBuilder parses a YAML prompt catalog. Every known operation must
// have an entry and every template must parse.
func LoadPromptBuilder(catalog []byte) (*PromptBuilder, error) {
	var raw map[string]*promptTemplate
	if err := yaml.Unmarshal(catalog, &raw); err != nil {
		return nil, fmt.Errorf("%w: parse prompt catalog: %v", ErrInvalidConfig, err)
	}

	b := &PromptBuilder{templates: make(map[domain.Operation]*promptTemplate, len(raw))}
	for _, op := range domain.Operations {
		entry, ok := raw[string(op)]
		if !ok || entry == nil {
			return nil, fmt.Errorf("%w: no prompt for operation %q", ErrInvalidConfig, op)
		}
		tmpl, err := template.New(string(op)).Option("missingkey=error").Parse(entry.Template)
		if err != nil {
			return nil, fmt.Errorf("%w: prompt %q: %v", ErrInvalidConfig, op, err)
		}
		entry.tmpl = tmpl
		b.templates[op] = entry
	}
	return b, nil
}

// Render produces the prompt for op. It fails only with *MissingFieldError
// when a required field is absent or blank, or ErrUnknownOperation.
func (b *PromptBuilder) Render(op domain.Operation, in PromptInput) (string, error) {
	entry, ok := b.templates[op]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}

	data := make(map[string]string)
	for k, v := range in.Fields {
		data[k] = strings.TrimSpace(v)
	}
	if op == domain.OperationSynthesis {
		data[domain.FieldDrafts] = formatDrafts(in.Drafts)
		data[fieldCritiques] = formatCritiques(in.Critiques)
	}

	for _, name := range entry.Required {
		if data[name] == "" {
			return "", &MissingFieldError{Field: name}
		}
	}
	for _, name := range entry.Optional {
		if _, ok := data[name]; !ok {
			data[name] = ""
		}
	}
	for name, def := range entry.Defaults {
		if data[name] == "" {
			data[name] = def
		}
	}

	var sb strings.Builder
	if err := entry.tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("%w: render %q: %v", ErrInvalidConfig, op, err)
	}
	return sb.String(), nil
}

const fieldCritiques = "critiques"

func formatDrafts(drafts []domain.DraftRef) string {
	parts := make([]string, 0, len(drafts))
	for _, d := range drafts {
		parts = append(parts, fmt.Sprintf("## %s 초안:\n%s", d.Provider, d.Text))
	}
	return strings.Join(parts, "\n\n")
}

func formatCritiques(critiques []domain.Critique) string {
	parts := make([]string, 0, len(critiques))
	for _, c := range critiques {
		parts = append(parts, fmt.Sprintf("## %s 분석:\n장점: %s\n단점: %s\n개선: %s",
			c.Provider,
			strings.Join(c.Strengths, ", "),
			strings.Join(c.Weaknesses, ", "),
			c.Improvement))
	}
	return strings.Join(parts, "\n\n")
}
