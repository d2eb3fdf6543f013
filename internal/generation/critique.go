package generation

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/ktgktg/blogsmith/internal/domain"
)

var embeddedObject = regexp.MustCompile(`(?s)\{.*\}`)

type critiquePayload struct {
	Pros        []string `json:"pros"`
	Strengths   []string `json:"strengths"`
	Cons        []string `json:"cons"`
	Weaknesses  []string `json:"weaknesses"`
	Improvement string   `json:"improvement"`
}

// ParseCritique reads a critique from model output. It accepts a bare JSON
// object, or the outermost object embedded in prose. Anything else becomes a
// critique whose improvement is the raw text.
func ParseCritique(raw string) domain.Critique {
	raw = strings.TrimSpace(raw)
	if c, ok := decodeCritique(raw); ok {
		return c
	}
	if obj := embeddedObject.FindString(raw); obj != "" {
		if c, ok := decodeCritique(obj); ok {
			return c
		}
	}
	return domain.Critique{Strengths: []string{}, Weaknesses: []string{}, Improvement: raw}
}

func decodeCritique(s string) (domain.Critique, bool) {
	if !strings.HasPrefix(s, "{") {
		return domain.Critique{}, false
	}
	var p critiquePayload
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		return domain.Critique{}, false
	}
	c := domain.Critique{
		Strengths:   append(p.Pros, p.Strengths...),
		Weaknesses:  append(p.Cons, p.Weaknesses...),
		Improvement: p.Improvement,
	}
	if c.Strengths == nil {
		c.Strengths = []string{}
	}
	if c.Weaknesses == nil {
		c.Weaknesses = []string{}
	}
	return c, true
}
