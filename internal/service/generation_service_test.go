package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ktgktg/blogsmith/internal/domain"
	"github.com/ktgktg/blogsmith/internal/generation"
	"github.com/ktgktg/blogsmith/internal/mocks"
	"github.com/ktgktg/blogsmith/internal/platform/logger"
	"github.com/ktgktg/blogsmith/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	svc       *GenerationService
	completer *mocks.MockCompleter
	archiver  *mocks.MockArchiver
	articles  *mocks.MockArticleRepository
	keys      *store.MemoryCredentialStore
}

func newServiceFixture(t *testing.T, completer *mocks.MockCompleter) *serviceFixture {
	t.Helper()

	prompts, err := generation.NewPromptBuilder()
	require.NoError(t, err)
	sans, err := generation.NewSanitizers(generation.DefaultProfiles())
	require.NoError(t, err)
	l, _ := logger.NewTestLogger()

	completers := map[domain.Provider]generation.Completer{
		domain.ProviderOpenAI: completer,
		domain.ProviderGroq:   completer,
		domain.ProviderGemini: completer,
	}
	adapter := generation.NewAdapter(completers, map[domain.Provider]string{
		domain.ProviderOpenAI: "sk-default",
		domain.ProviderGemini: "gemini-default",
	})

	f := &serviceFixture{
		completer: completer,
		archiver:  &mocks.MockArchiver{},
		articles:  &mocks.MockArticleRepository{},
		keys:      store.NewMemoryCredentialStore(),
	}
	f.svc, err = NewGenerationService(GenerationServiceConfig{
		Generator:         generation.NewPipeline(prompts, adapter, sans, l),
		Credentials:       NewCredentialResolver(f.keys, l),
		Archiver:          f.archiver,
		Articles:          f.articles,
		SynthesisProvider: domain.ProviderGemini,
		Logger:            l,
	})
	require.NoError(t, err)
	return f
}

func gardenBrief() domain.Brief {
	return domain.Brief{Topic: "텃밭 가꾸기", Intent: "정보성", Audience: "초보자", Tone: "친근함"}
}

func TestGenerateDraftCleansAndArchivesOnce(t *testing.T) {
	completer := mocks.NewMockCompleterWithText("## 텃밭 시작하기\n**상추**는 *쉽습니다* 積累\n#텃밭")
	f := newServiceFixture(t, completer)

	res, err := f.svc.GenerateDraft(context.Background(), Caller{Owner: "gardener"}, gardenBrief(), domain.ProviderOpenAI)

	require.NoError(t, err)
	assert.Equal(t, "텃밭 시작하기\n상추는 쉽습니다 \n#텃밭", res.Text)
	assert.Equal(t, 1, completer.CallCount())
	assert.Equal(t, "sk-default", completer.LastAPIKey())

	records := f.archiver.Records()
	require.Len(t, records, 1, "exactly one persistence call")
	assert.Equal(t, "gardener", records[0].Owner)
	assert.Equal(t, domain.ArticleKindDraft, records[0].Kind)
	assert.Equal(t, domain.ProviderOpenAI, records[0].Provider)
	assert.Equal(t, "텃밭 가꾸기", records[0].Title)
	assert.Equal(t, res.Text, records[0].Body)
}

func TestGenerateDraftFailureIsClassifiedAndNotArchived(t *testing.T) {
	completer := mocks.NewMockCompleterWithError(errors.New("Error code: 401 - {'error': {'code': 'invalid_api_key', 'message': 'Incorrect API key provided: sk-abc123'}}"))
	f := newServiceFixture(t, completer)

	_, err := f.svc.GenerateDraft(context.Background(), Caller{Owner: "gardener"}, gardenBrief(), domain.ProviderOpenAI)

	failure, ok := generation.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, generation.CategoryInvalidCredential, failure.Category)
	assert.Empty(t, f.archiver.Records())
}

func TestGenerateDraftWithoutOwnerSkipsArchive(t *testing.T) {
	f := newServiceFixture(t, mocks.NewMockCompleterWithText("본문"))

	_, err := f.svc.GenerateDraft(context.Background(), Caller{}, gardenBrief(), domain.ProviderOpenAI)

	require.NoError(t, err)
	assert.Empty(t, f.archiver.Records())
}

func TestGenerateTitleUsesStoredAndOverrideKeys(t *testing.T) {
	ctx := context.Background()
	completer := mocks.NewMockCompleterWithText("**텃밭** 입문")
	f := newServiceFixture(t, completer)
	require.NoError(t, f.keys.PutAll(ctx, "gardener", map[domain.Provider]string{domain.ProviderGroq: "gsk_stored"}))

	res, err := f.svc.GenerateTitle(ctx, Caller{Owner: "gardener"}, "텃밭", domain.ProviderGroq)
	require.NoError(t, err)
	assert.Equal(t, "텃밭 입문", res.Text)
	assert.Equal(t, "gsk_stored", completer.LastAPIKey())

	_, err = f.svc.GenerateTitle(ctx, Caller{Owner: "gardener", Credential: "gsk_call"}, "텃밭", domain.ProviderGroq)
	require.NoError(t, err)
	assert.Equal(t, "gsk_call", completer.LastAPIKey())
	assert.Empty(t, f.archiver.Records(), "titles are not archived")
}

func TestGenerateTitleErrors(t *testing.T) {
	ctx := context.Background()
	completer := mocks.NewMockCompleterWithText("x")
	f := newServiceFixture(t, completer)

	_, err := f.svc.GenerateTitle(ctx, Caller{}, "", domain.ProviderOpenAI)
	var missing *generation.MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, domain.FieldKeyword, missing.Field)

	_, err = f.svc.GenerateTitle(ctx, Caller{}, "텃밭", "claude")
	assert.ErrorIs(t, err, domain.ErrUnsupportedProvider)

	_, err = f.svc.GenerateTitle(ctx, Caller{Owner: "gardener"}, "텃밭", domain.ProviderGroq)
	assert.ErrorIs(t, err, generation.ErrMissingCredential)

	assert.Zero(t, completer.CallCount())
}

func TestGenerateContentKeepsMarkdown(t *testing.T) {
	completer := mocks.NewMockCompleterWithText("## 준비물\n- **모종삽**")
	f := newServiceFixture(t, completer)

	res, err := f.svc.GenerateContent(context.Background(), Caller{}, "텃밭 입문", "", domain.ProviderOpenAI)

	require.NoError(t, err)
	assert.Equal(t, "## 준비물\n- **모종삽**", res.Text)
	assert.Equal(t, 4000, completer.Calls.Params[0].MaxTokens)
}

func TestAnalyzeDraft(t *testing.T) {
	completer := mocks.NewMockCompleterWithText(`분석 결과입니다: {"pros": ["구성이 명확함", "漢字"], "cons": ["예시 부족 積累"], "improvement": "사례를 추가하세요"}`)
	f := newServiceFixture(t, completer)

	c, err := f.svc.AnalyzeDraft(context.Background(), Caller{}, "초안 본문", domain.ProviderOpenAI)

	require.NoError(t, err)
	assert.Equal(t, domain.ProviderOpenAI, c.Provider)
	assert.Equal(t, []string{"구성이 명확함"}, c.Strengths)
	assert.Equal(t, []string{"예시 부족"}, c.Weaknesses)
	assert.Equal(t, "사례를 추가하세요", c.Improvement)
	assert.True(t, completer.Calls.Params[0].JSON)
	assert.Empty(t, f.archiver.Records())
}

func TestAnalyzeDraftUnstructuredOutput(t *testing.T) {
	f := newServiceFixture(t, mocks.NewMockCompleterWithText("전반적으로 좋습니다"))

	c, err := f.svc.AnalyzeDraft(context.Background(), Caller{}, "초안", domain.ProviderOpenAI)

	require.NoError(t, err)
	assert.Empty(t, c.Strengths)
	assert.Empty(t, c.Weaknesses)
	assert.Equal(t, "전반적으로 좋습니다", c.Improvement)
}

func TestAnalyzeDraftRejectsEmptyDraft(t *testing.T) {
	completer := mocks.NewMockCompleterWithText("x")
	f := newServiceFixture(t, completer)

	_, err := f.svc.AnalyzeDraft(context.Background(), Caller{}, "  ", domain.ProviderOpenAI)

	assert.ErrorIs(t, err, ErrEmptyDraft)
	assert.Zero(t, completer.CallCount())
}

func TestSynthesizeFinalUsesConfiguredProvider(t *testing.T) {
	completer := mocks.NewMockCompleterWithText("# 최종 원고\n상추와 토마토 トマト")
	f := newServiceFixture(t, completer)

	drafts := []domain.DraftRef{
		{Provider: domain.ProviderOpenAI, Text: "오픈AI 초안"},
		{Provider: domain.ProviderGroq, Text: "그록 초안"},
	}
	critiques := []domain.Critique{
		{Provider: domain.ProviderOpenAI, Strengths: []string{"명확함"}, Weaknesses: []string{"짧음"}, Improvement: "보강"},
	}
	res, err := f.svc.SynthesizeFinal(context.Background(), Caller{Owner: "gardener"}, gardenBrief(), drafts, critiques)

	require.NoError(t, err)
	assert.Equal(t, domain.ProviderGemini, res.Provider)
	assert.Equal(t, "최종 원고\n상추와 토마토 トマト", res.Text, "synthesis keeps foreign scripts")
	assert.Equal(t, "gemini-default", completer.LastAPIKey())
	assert.Contains(t, completer.Calls.Prompts[0], "## openai 초안:\n오픈AI 초안")
	assert.Contains(t, completer.Calls.Prompts[0], "## openai 분석:\n장점: 명확함\n단점: 짧음\n개선: 보강")

	records := f.archiver.Records()
	require.Len(t, records, 1)
	assert.Equal(t, domain.ArticleKindFinal, records[0].Kind)
	assert.Equal(t, domain.ProviderGemini, records[0].Provider)
}

func TestSynthesizeFinalRequiresDrafts(t *testing.T) {
	f := newServiceFixture(t, mocks.NewMockCompleterWithText("x"))

	_, err := f.svc.SynthesizeFinal(context.Background(), Caller{}, gardenBrief(), nil, nil)

	assert.ErrorIs(t, err, ErrNoDrafts)
}

func TestSaveAndListArticles(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t, mocks.NewMockCompleterWithText("x"))

	rec, err := domain.NewArticleRecord("gardener", domain.ArticleKindFinal, domain.ProviderOpenAI, gardenBrief(), "본문")
	require.NoError(t, err)
	require.NoError(t, f.svc.SaveArticle(ctx, rec))
	assert.Equal(t, []*domain.ArticleRecord{rec}, f.articles.Stored())

	f.articles.Articles = []domain.ArticleRecord{*rec}
	list, err := f.svc.ListArticles(ctx, "gardener", domain.ArticleKindFinal)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = f.svc.ListArticles(ctx, "gardener", "published")
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = f.svc.SaveArticle(ctx, &domain.ArticleRecord{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	storeErr := errors.New("notion down")
	f.articles.StoreErr = storeErr
	assert.ErrorIs(t, f.svc.SaveArticle(ctx, rec), storeErr)
}

func TestArticlesWithoutStore(t *testing.T) {
	prompts, err := generation.NewPromptBuilder()
	require.NoError(t, err)
	svc, err := NewGenerationService(GenerationServiceConfig{
		Generator:         generation.NewPipeline(prompts, generation.NewAdapter(nil, nil), nil, nil),
		SynthesisProvider: domain.ProviderGemini,
	})
	require.NoError(t, err)

	_, err = svc.ListArticles(context.Background(), "gardener", domain.ArticleKindDraft)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, svc.SaveArticle(context.Background(), &domain.ArticleRecord{}), ErrStorageUnavailable)
}

func TestNewGenerationServiceValidates(t *testing.T) {
	_, err := NewGenerationService(GenerationServiceConfig{SynthesisProvider: domain.ProviderGemini})
	assert.Error(t, err)

	prompts, err := generation.NewPromptBuilder()
	require.NoError(t, err)
	_, err = NewGenerationService(GenerationServiceConfig{
		Generator:         generation.NewPipeline(prompts, generation.NewAdapter(nil, nil), nil, nil),
		SynthesisProvider: "claude",
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedProvider)
}
