package generation

import (
	"testing"

	"github.com/ktgktg/blogsmith/internal/config"
	"github.com/ktgktg/blogsmith/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSanitizer(t *testing.T, p Profile) *Sanitizer {
	t.Helper()
	s, err := NewSanitizer(p)
	require.NoError(t, err)
	return s
}

func TestSanitizerClean(t *testing.T) {
	full := Profile{StripMarkdown: true, Scripts: AllScripts}
	markdownOnly := Profile{StripMarkdown: true}
	scriptsOnly := Profile{Scripts: []Script{ScriptHan}}

	tests := []struct {
		name    string
		profile Profile
		in      string
		want    string
	}{
		{name: "bold and italic", profile: full, in: "**bold** and *italic*", want: "bold and italic"},
		{name: "heading stripped hashtag kept", profile: full, in: "## Heading\n#hashtag", want: "Heading\n#hashtag"},
		{name: "cjk run removed", profile: scriptsOnly, in: "정상 텍스트 混合 text", want: "정상 텍스트  text"},
		{name: "bold across lines", profile: markdownOnly, in: "**첫 줄\n둘째 줄** 끝", want: "첫 줄\n둘째 줄 끝"},
		{name: "italic across lines", profile: markdownOnly, in: "*기울임\n계속* 끝", want: "기울임\n계속 끝"},
		{name: "all heading levels", profile: markdownOnly, in: "# 하나\n###### 여섯\n####### 일곱", want: "하나\n여섯\n####### 일곱"},
		{name: "bare heading marker", profile: full, in: "##\n본문", want: "본문"},
		{name: "bare marker between paragraphs", profile: markdownOnly, in: "소개\n###\n본문 #태그", want: "소개\n\n본문 #태그"},
		{name: "hashtags at line start", profile: full, in: "#텃밭 #초보\n#가드닝", want: "#텃밭 #초보\n#가드닝"},
		{name: "bullet stars survive", profile: markdownOnly, in: "* 하나\n* 둘", want: "* 하나\n* 둘"},
		{name: "nested emphasis", profile: markdownOnly, in: "***강조***", want: "강조"},
		{name: "japanese and cyrillic", profile: full, in: "まず 시작 привет 끝", want: "시작  끝"},
		{name: "thai arabic vietnamese", profile: full, in: "가สวัสดี나مرحبا다ạ", want: "가나다"},
		{name: "markdown kept when disabled", profile: scriptsOnly, in: "## 소제목\n**굵게**", want: "## 소제목\n**굵게**"},
		{name: "no matches is noop", profile: full, in: "그냥 문장입니다.", want: "그냥 문장입니다."},
		{name: "empty", profile: full, in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSanitizer(t, tt.profile)
			assert.Equal(t, tt.want, s.Clean(tt.in))
		})
	}
}

func TestSanitizerCleanIsIdempotent(t *testing.T) {
	s := newTestSanitizer(t, Profile{StripMarkdown: true, Scripts: AllScripts})

	inputs := []string{
		"**a*b**",
		"*a**b*",
		"#漢 title",
		"## #tag",
		"  ## 들여쓴 제목",
		"****",
		"* *x* *",
		"**굵게 *기울임* 굵게**\n### 제목\n#태그 混合 テキスト",
		"*\n*",
	}
	for _, in := range inputs {
		once := s.Clean(in)
		assert.Equal(t, once, s.Clean(once), "input %q", in)
	}
}

func TestNewSanitizerRejectsUnknownScript(t *testing.T) {
	_, err := NewSanitizer(Profile{Scripts: []Script{"klingon"}})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSanitizerCleanAll(t *testing.T) {
	s := newTestSanitizer(t, Profile{Scripts: AllScripts})
	got := s.CleanAll([]string{"구체적인 예시", "漢字", " 간결함 "})
	assert.Equal(t, []string{"구체적인 예시", "간결함"}, got)
}

func TestDefaultProfilesSynthesisSkipsScriptFilter(t *testing.T) {
	sans, err := NewSanitizers(DefaultProfiles())
	require.NoError(t, err)

	assert.Equal(t, "최종 混合", sans.For(domain.OperationSynthesis).Clean("**최종** 混合"))
	assert.Equal(t, "초안", sans.For(domain.OperationDraft).Clean("**초안** 混合"))
	assert.Equal(t, "## 본문", sans.For(domain.OperationContent).Clean("## 본문 混合"))
}

func TestProfilesFromConfig(t *testing.T) {
	profiles := ProfilesFromConfig(config.SanitizeConfig{
		Draft:     config.SanitizeProfile{StripMarkdown: true, Scripts: []string{"han", " Cyrillic "}},
		Synthesis: config.SanitizeProfile{StripMarkdown: true},
	})

	require.Len(t, profiles, len(domain.Operations))
	assert.True(t, profiles[domain.OperationDraft].StripMarkdown)
	assert.Equal(t, []Script{ScriptHan, ScriptCyrillic}, profiles[domain.OperationDraft].Scripts)
	assert.Empty(t, profiles[domain.OperationSynthesis].Scripts)

	sans, err := NewSanitizers(profiles)
	require.NoError(t, err)
	assert.Equal(t, "초안  text", sans.For(domain.OperationDraft).Clean("초안 混 text"))
}
