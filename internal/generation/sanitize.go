package generation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ktgktg/blogsmith/internal/config"
	"github.com/ktgktg/blogsmith/internal/domain"
)

// Script names a block of code points the sanitizer can remove.
type Script string

// Removable scripts.
const (
	ScriptHan      Script = "han"
	ScriptHiragana Script = "hiragana"
	ScriptKatakana Script = "katakana"
	ScriptCyrillic Script = "cyrillic"
	ScriptLatinExt Script = "latin_ext"
	ScriptThai     Script = "thai"
	ScriptArabic   Script = "arabic"
)

type runeRange struct{ lo, hi rune }

var scriptRanges = map[Script]runeRange{
	ScriptHan:      {0x4E00, 0x9FFF},
	ScriptHiragana: {0x3040, 0x309F},
	ScriptKatakana: {0x30A0, 0x30FF},
	ScriptCyrillic: {0x0400, 0x04FF},
	ScriptLatinExt: {0x1E00, 0x1EFF},
	ScriptThai:     {0x0E00, 0x0E7F},
	ScriptArabic:   {0x0600, 0x06FF},
}

// AllScripts lists every removable script.
var AllScripts = []Script{
	ScriptHan, ScriptHiragana, ScriptKatakana, ScriptCyrillic, ScriptLatinExt, ScriptThai, ScriptArabic,
}

var (
	boldPattern    = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicPattern  = regexp.MustCompile(`\*([^*\s](?:[^*]*[^*\s])?)\*`)
	headingPattern = regexp.MustCompile(`(?m)^#{1,6}(?:[ \t]+|$)`)
)

// Profile selects the passes applied to one operation's output.
type Profile struct {
	StripMarkdown bool
	Scripts       []Script
}

// Sanitizer cleans generated text according to a Profile.
type Sanitizer struct {
	stripMarkdown bool
	ranges        []runeRange
}

// NewSanitizer validates p and builds a Sanitizer for it.
func NewSanitizer(p Profile) (*Sanitizer, error) {
	s := &Sanitizer{stripMarkdown: p.StripMarkdown}
	for _, name := range p.Scripts {
		r, ok := scriptRanges[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown script %q", ErrInvalidConfig, name)
		}
		s.ranges = append(s.ranges, r)
	}
	return s, nil
}

// Clean strips markdown emphasis and heading markers and removes runes in the
// configured script ranges. A line-initial '#' directly followed by a
// non-space character is a hashtag and is kept. The passes repeat until the
// text stops changing, so Clean(Clean(x)) == Clean(x).
func (s *Sanitizer) Clean(text string) string {
	for {
		next := s.pass(text)
		if next == text {
			return next
		}
		text = next
	}
}

func (s *Sanitizer) pass(text string) string {
	if s.stripMarkdown {
		text = boldPattern.ReplaceAllString(text, "$1")
		text = italicPattern.ReplaceAllString(text, "$1")
		text = headingPattern.ReplaceAllString(text, "")
	}
	if len(s.ranges) > 0 {
		text = strings.Map(s.filterRune, text)
	}
	return strings.TrimSpace(text)
}

func (s *Sanitizer) filterRune(r rune) rune {
	for _, rng := range s.ranges {
		if r >= rng.lo && r <= rng.hi {
			return -1
		}
	}
	return r
}

// CleanAll cleans each element of items, dropping ones left empty.
func (s *Sanitizer) CleanAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if cleaned := s.Clean(item); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

// Sanitizers holds one Sanitizer per operation.
type Sanitizers map[domain.Operation]*Sanitizer

// NewSanitizers builds a Sanitizer for every operation. Operations absent
// from profiles get a sanitizer that only trims whitespace.
func NewSanitizers(profiles map[domain.Operation]Profile) (Sanitizers, error) {
	out := make(Sanitizers, len(domain.Operations))
	for _, op := range domain.Operations {
		s, err := NewSanitizer(profiles[op])
		if err != nil {
			return nil, fmt.Errorf("sanitize profile %q: %w", op, err)
		}
		out[op] = s
	}
	return out, nil
}

// For returns the sanitizer for op.
func (s Sanitizers) For(op domain.Operation) *Sanitizer {
	if san, ok := s[op]; ok {
		return san
	}
	return &Sanitizer{}
}

// DefaultProfiles mirrors the shipped configuration: synthesis keeps foreign
// scripts, content and critique keep their markdown.
func DefaultProfiles() map[domain.Operation]Profile {
	return map[domain.Operation]Profile{
		domain.OperationTitle:     {StripMarkdown: true, Scripts: AllScripts},
		domain.OperationContent:   {StripMarkdown: false, Scripts: AllScripts},
		domain.OperationDraft:     {StripMarkdown: true, Scripts: AllScripts},
		domain.OperationCritique:  {StripMarkdown: false, Scripts: AllScripts},
		domain.OperationSynthesis: {StripMarkdown: true},
	}
}

// ProfilesFromConfig converts the sanitize section of the configuration.
func ProfilesFromConfig(cfg config.SanitizeConfig) map[domain.Operation]Profile {
	convert := func(p config.SanitizeProfile) Profile {
		scripts := make([]Script, 0, len(p.Scripts))
		for _, name := range p.Scripts {
			scripts = append(scripts, Script(strings.ToLower(strings.TrimSpace(name))))
		}
		return Profile{StripMarkdown: p.StripMarkdown, Scripts: scripts}
	}
	return map[domain.Operation]Profile{
		domain.OperationTitle:     convert(cfg.Title),
		domain.OperationContent:   convert(cfg.Content),
		domain.OperationDraft:     convert(cfg.Draft),
		domain.OperationCritique:  convert(cfg.Critique),
		domain.OperationSynthesis: convert(cfg.Synthesis),
	}
}
