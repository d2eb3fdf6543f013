package generation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Provider SDKs often fold the response body into the error string, either
// as a Python-style literal or as JSON. Patterns are tried in order; the
// first one is captured, the rest match whole.
var (
	errorCodePattern  = regexp.MustCompile(`(?s)Error code: \d+ - (\{.*\})`)
	singleQuotedError = regexp.MustCompile(`\{'error':\s*\{[^}]+\}\}`)
	doubleQuotedError = regexp.MustCompile(`\{"error":\s*\{[^}]+\}\}`)
)

// extractPayload pulls a structured error object out of msg. It returns nil
// when nothing parses.
func extractPayload(msg string) map[string]any {
	if m := errorCodePattern.FindStringSubmatch(msg); m != nil {
		if p := parseLiteral(m[1]); p != nil {
			return p
		}
	}
	for _, re := range []*regexp.Regexp{singleQuotedError, doubleQuotedError} {
		if frag := re.FindString(msg); frag != "" {
			if p := parseLiteral(frag); p != nil {
				return p
			}
		}
	}
	return nil
}

// parseLiteral reads a brace-delimited object. YAML flow mappings accept both
// quote styles, so it goes first; JSON with normalized quotes is the fallback.
func parseLiteral(s string) map[string]any {
	var out map[string]any
	if err := yaml.Unmarshal([]byte(s), &out); err == nil && out != nil {
		return out
	}
	out = nil
	if err := json.Unmarshal([]byte(strings.ReplaceAll(s, "'", `"`)), &out); err == nil && out != nil {
		return out
	}
	return nil
}

// errorFields flattens the provider's error object into strings.
type errorFields struct {
	Code    string
	Type    string
	Status  string
	Message string
}

func fieldsOf(payload map[string]any) errorFields {
	if payload == nil {
		return errorFields{}
	}
	obj := payload
	if inner, ok := asMap(payload["error"]); ok {
		obj = inner
	}
	return errorFields{
		Code:    stringOf(obj["code"]),
		Type:    stringOf(obj["type"]),
		Status:  stringOf(obj["status"]),
		Message: stringOf(obj["message"]),
	}
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

func stringOf(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		if s == "None" {
			return ""
		}
		return s
	default:
		return fmt.Sprint(s)
	}
}
