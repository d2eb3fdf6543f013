package generation

import (
	"errors"
	"strings"
	"testing"

	"github.com/ktgktg/blogsmith/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPromptBuilder(t *testing.T) *PromptBuilder {
	t.Helper()
	b, err := NewPromptBuilder()
	require.NoError(t, err)
	return b
}

func TestRenderTitleMissingKeyword(t *testing.T) {
	b := newTestPromptBuilder(t)

	_, err := b.Render(domain.OperationTitle, PromptInput{})

	var missing *MissingFieldError
	require.True(t, errors.As(err, &missing), "expected MissingFieldError, got %v", err)
	assert.Equal(t, "keyword", missing.Field)
}

func TestRenderReportsFirstMissingFieldInOrder(t *testing.T) {
	b := newTestPromptBuilder(t)

	_, err := b.Render(domain.OperationDraft, PromptInput{Fields: domain.Fields{
		domain.FieldTopic:  "텃밭 가꾸기",
		domain.FieldIntent: "   ",
	}})

	var missing *MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "intent", missing.Field, "blank values count as missing")
}

func TestRenderTitle(t *testing.T) {
	b := newTestPromptBuilder(t)

	prompt, err := b.Render(domain.OperationTitle, PromptInput{Fields: domain.Fields{domain.FieldKeyword: "텃밭"}})

	require.NoError(t, err)
	assert.Contains(t, prompt, "키워드: 텃밭")
	assert.Contains(t, prompt, "제목만 출력하세요")
}

func TestRenderContentOptionalKeyword(t *testing.T) {
	b := newTestPromptBuilder(t)

	without, err := b.Render(domain.OperationContent, PromptInput{Fields: domain.Fields{domain.FieldTitle: "초보 텃밭 가이드"}})
	require.NoError(t, err)
	assert.Contains(t, without, "제목: 초보 텃밭 가이드")
	assert.NotContains(t, without, "키워드:")

	with, err := b.Render(domain.OperationContent, PromptInput{Fields: domain.Fields{
		domain.FieldTitle:   "초보 텃밭 가이드",
		domain.FieldKeyword: "상추",
	}})
	require.NoError(t, err)
	assert.Contains(t, with, "제목: 초보 텃밭 가이드\n키워드: 상추")
}

func TestRenderDraftDefaults(t *testing.T) {
	b := newTestPromptBuilder(t)
	brief := domain.Brief{Topic: "텃밭 가꾸기", Intent: "정보성", Audience: "초보자", Tone: "친근함"}

	prompt, err := b.Render(domain.OperationDraft, PromptInput{Fields: brief.Fields()})
	require.NoError(t, err)
	assert.Contains(t, prompt, "주제: 텃밭 가꾸기")
	assert.Contains(t, prompt, "연령층: 전체")
	assert.Contains(t, prompt, "성별: 전체")
	assert.NotContains(t, prompt, "세부 키워드")

	brief.AgeGroups = []string{"20대", "30대"}
	brief.Gender = "여성"
	brief.DetailedKeywords = "상추, 방울토마토"
	prompt, err = b.Render(domain.OperationDraft, PromptInput{Fields: brief.Fields()})
	require.NoError(t, err)
	assert.Contains(t, prompt, "톤/스타일: 친근함\n세부 키워드: 상추, 방울토마토\n연령층: 20대, 30대\n성별: 여성")
}

func TestRenderCritique(t *testing.T) {
	b := newTestPromptBuilder(t)

	prompt, err := b.Render(domain.OperationCritique, PromptInput{Fields: domain.Fields{domain.FieldDraft: "초안 본문"}})
	require.NoError(t, err)
	assert.Contains(t, prompt, "초안 내용:\n초안 본문")
	assert.Contains(t, prompt, `"pros"`)
}

func TestRenderSynthesisPreservesOrder(t *testing.T) {
	b := newTestPromptBuilder(t)
	brief := domain.Brief{Topic: "텃밭", Intent: "정보성", Audience: "초보자", Tone: "친근함"}

	prompt, err := b.Render(domain.OperationSynthesis, PromptInput{
		Fields: brief.Fields(),
		Drafts: []domain.DraftRef{
			{Provider: domain.ProviderGroq, Text: "그록 초안"},
			{Provider: domain.ProviderOpenAI, Text: "오픈에이아이 초안"},
		},
		Critiques: []domain.Critique{
			{Provider: domain.ProviderGroq, Strengths: []string{"간결함", "구체성"}, Weaknesses: []string{"짧음"}, Improvement: "예시 추가"},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, "## groq 초안:\n그록 초안\n\n## openai 초안:\n오픈에이아이 초안")
	assert.Contains(t, prompt, "## groq 분석:\n장점: 간결함, 구체성\n단점: 짧음\n개선: 예시 추가")
	assert.Less(t, strings.Index(prompt, "groq 초안"), strings.Index(prompt, "openai 초안"))
}

func TestRenderSynthesisRequiresDrafts(t *testing.T) {
	b := newTestPromptBuilder(t)
	brief := domain.Brief{Topic: "텃밭", Intent: "정보성", Audience: "초보자", Tone: "친근함"}

	_, err := b.Render(domain.OperationSynthesis, PromptInput{Fields: brief.Fields()})

	var missing *MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "drafts", missing.Field)
}

func TestRenderUnknownOperation(t *testing.T) {
	b := newTestPromptBuilder(t)
	_, err := b.Render("summary", PromptInput{})
	assert.ErrorIs(t, err, ErrUnknownOperation)
}

func TestLoadPromptBuilderValidatesCatalog(t *testing.T) {
	_, err := LoadPromptBuilder([]byte("title:\n  template: hi\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig, "every operation needs a template")

	_, err = LoadPromptBuilder([]byte(": not yaml"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
