package generation

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/ktgktg/blogsmith/internal/domain"
	"github.com/ktgktg/blogsmith/internal/redact"
)

// providerRules holds everything Classify knows about one provider's errors.
type providerRules struct {
	// deprecations lists retired model ids with their replacement. A
	// non-empty list enables the decommissioned-model check.
	deprecations       []modelDeprecation
	defaultReplacement string
	modelURL           string

	// quotaCategory is what a quota signal means for this provider. Some
	// report plain rate limiting with "quota" wording.
	quotaCategory Category
	quotaMessage  string
	quotaURL      string

	rateMessage string
	rateURL     string

	// credentialMarkers are matched case-sensitively in addition to the
	// shared lowercase markers.
	credentialMarkers []string
	credentialMessage string
	credentialURL     string
}

type modelDeprecation struct {
	model       string
	replacement string
}

var rulesByProvider = map[domain.Provider]providerRules{
	domain.ProviderOpenAI: {
		quotaCategory:     CategoryQuotaExceeded,
		quotaMessage:      "OpenAI API 할당량이 초과되었습니다. 계정의 결제 정보와 사용량을 확인해주세요.",
		quotaURL:          "https://platform.openai.com/usage",
		rateMessage:       "OpenAI API 요청 한도가 초과되었습니다. 잠시 후 다시 시도해주세요.",
		credentialMessage: "OpenAI API 키가 유효하지 않습니다. API 키를 확인해주세요.",
		credentialURL:     "https://platform.openai.com/api-keys",
	},
	domain.ProviderGroq: {
		deprecations: []modelDeprecation{
			{model: "llama-3.1-70b-versatile", replacement: "llama-3.3-70b-versatile"},
			{model: "llama3-70b-8192", replacement: "llama-3.3-70b-versatile"},
			{model: "llama3-8b-8192", replacement: "llama-3.1-8b-instant"},
		},
		defaultReplacement: "llama-3.3-70b-versatile",
		modelURL:           "https://console.groq.com/docs/deprecations",
		quotaCategory:      CategoryRateLimited,
		quotaMessage:       "Groq API 요청 한도가 초과되었습니다. 잠시 후 다시 시도해주세요.",
		quotaURL:           "https://console.groq.com/limits",
		rateMessage:        "Groq API 요청 한도가 초과되었습니다. 잠시 후 다시 시도해주세요.",
		rateURL:            "https://console.groq.com/limits",
		credentialMessage:  "Groq API 키가 유효하지 않습니다. API 키를 확인해주세요.",
		credentialURL:      "https://console.groq.com/keys",
	},
	domain.ProviderGemini: {
		quotaCategory:     CategoryRateLimited,
		quotaMessage:      "Gemini API 요청 한도가 초과되었습니다. 잠시 후 다시 시도해주세요.",
		quotaURL:          "https://ai.google.dev/pricing",
		rateMessage:       "Gemini API 요청 한도가 초과되었습니다. 잠시 후 다시 시도해주세요.",
		rateURL:           "https://ai.google.dev/pricing",
		credentialMarkers: []string{"API key", "API_KEY_INVALID"},
		credentialMessage: "Gemini API 키가 유효하지 않습니다. API 키를 확인해주세요.",
		credentialURL:     "https://ai.google.dev/",
	},
}

var backtickModel = regexp.MustCompile("model `([^`]+)`")

// signals is a failure reduced to the things the rules look at.
type signals struct {
	raw    string
	lower  string
	status int
	fields errorFields
}

func collectSignals(err error) signals {
	s := signals{raw: err.Error()}
	s.lower = strings.ToLower(s.raw)
	s.fields = fieldsOf(extractPayload(s.raw))

	var ce *CallError
	if errors.As(err, &ce) {
		s.status = ce.StatusCode
		if p := ce.payload(); p != nil {
			s.fields = fieldsOf(p)
		}
	}
	return s
}

func (s signals) has(substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s.lower, sub) {
			return true
		}
	}
	return false
}

func (s signals) codeIs(values ...string) bool {
	for _, v := range values {
		if s.fields.Code == v || s.fields.Type == v || s.fields.Status == v {
			return true
		}
	}
	return false
}

// Classify maps a failed provider call to a user-facing Failure. The same
// wording can mean different things per provider, so the rules are looked up
// by provider. It never fails; anything unrecognised is CategoryUnknown.
func Classify(err error, provider domain.Provider) *Failure {
	if err == nil {
		return &Failure{Category: CategoryUnknown, Provider: provider, Message: provider.Label() + " API 오류"}
	}

	sig := collectSignals(err)
	rules, known := rulesByProvider[provider]
	failure := func(c Category, msg, url string) *Failure {
		return &Failure{Category: c, Provider: provider, Message: msg, RemediationURL: url, Err: err}
	}

	if known && len(rules.deprecations) > 0 {
		if deprecated, replacement, ok := decommissionedModel(sig, rules); ok {
			msg := fmt.Sprintf("사용 중인 %s 모델(%s)이 더 이상 지원되지 않습니다. %s 모델로 업데이트되었습니다.",
				provider.Label(), deprecated, replacement)
			return failure(CategoryModelUnavailable, msg, rules.modelURL)
		}
	}

	if known && (sig.codeIs("insufficient_quota") || sig.has("insufficient_quota", "quota")) {
		return failure(rules.quotaCategory, rules.quotaMessage, rules.quotaURL)
	}

	if sig.status == http.StatusTooManyRequests ||
		sig.codeIs("rate_limit_exceeded", "RESOURCE_EXHAUSTED") ||
		sig.has("rate_limit", "rate limit", "resource_exhausted") ||
		strings.Contains(sig.raw, "429") {
		msg, url := rules.rateMessage, rules.rateURL
		if !known {
			msg = provider.Label() + " API 요청 한도가 초과되었습니다. 잠시 후 다시 시도해주세요."
		}
		return failure(CategoryRateLimited, msg, url)
	}

	if sig.status == http.StatusUnauthorized ||
		sig.codeIs("invalid_api_key") ||
		sig.has("invalid_api_key", "authentication", "incorrect api key") ||
		containsAny(sig.raw, rules.credentialMarkers) {
		msg, url := rules.credentialMessage, rules.credentialURL
		if !known {
			msg = provider.Label() + " API 키가 유효하지 않습니다. API 키를 확인해주세요."
		}
		return failure(CategoryInvalidCredential, msg, url)
	}

	detail := sig.fields.Message
	if detail == "" {
		detail = sig.raw
	}
	return failure(CategoryUnknown, fmt.Sprintf("%s API 오류: %s", provider.Label(), redact.Credentials(detail)), "")
}

// decommissionedModel reports the retired model named by the failure and its
// replacement, if the failure says a model was decommissioned.
func decommissionedModel(sig signals, rules providerRules) (string, string, bool) {
	for _, d := range rules.deprecations {
		if strings.Contains(sig.raw, d.model) {
			return d.model, d.replacement, true
		}
	}
	if !sig.codeIs("model_decommissioned") && !sig.has("model_decommissioned", "decommissioned") {
		return "", "", false
	}
	model := "알 수 없음"
	if m := backtickModel.FindStringSubmatch(sig.raw); m != nil {
		model = m[1]
	}
	return model, rules.defaultReplacement, true
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
