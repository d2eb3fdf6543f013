package notion

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jomei/notionapi"
)

// Notion rejects rich text longer than this many characters.
const maxTextLength = 2000

// maxTitleLength bounds the 제목 property.
const maxTitleLength = 200

// maxBlocksPerRequest is the most children a single create or append call accepts.
const maxBlocksPerRequest = 100

func richText(s string) []notionapi.RichText {
	return []notionapi.RichText{{
		Type:      notionapi.ObjectTypeText,
		Text:      &notionapi.Text{Content: s},
		PlainText: s,
	}}
}

func plainText(rt []notionapi.RichText) string {
	var b strings.Builder
	for _, t := range rt {
		if t.Text != nil {
			b.WriteString(t.Text.Content)
			continue
		}
		b.WriteString(t.PlainText)
	}
	return b.String()
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// splitText cuts s into chunks of at most limit runes. Lines are kept whole
// where possible, then words, and only single words longer than limit are
// cut mid-word.
func splitText(s string, limit int) []string {
	if runeLen(s) <= limit {
		return []string{s}
	}

	var (
		chunks []string
		cur    string
	)
	flush := func() {
		if part := strings.TrimRightFunc(cur, unicode.IsSpace); part != "" {
			chunks = append(chunks, part)
		}
		cur = ""
	}

	for _, line := range strings.Split(s, "\n") {
		if runeLen(cur)+runeLen(line)+1 <= limit {
			if cur == "" {
				cur = line
			} else {
				cur += "\n" + line
			}
			continue
		}

		flush()
		if runeLen(line) <= limit {
			cur = line
			continue
		}

		for _, word := range strings.Split(line, " ") {
			for runeLen(word) > limit {
				flush()
				r := []rune(word)
				chunks = append(chunks, string(r[:limit]))
				word = string(r[limit:])
			}
			switch {
			case cur == "":
				cur = word
			case runeLen(cur)+runeLen(word)+1 > limit:
				flush()
				cur = word
			default:
				cur += " " + word
			}
		}
	}
	flush()

	return chunks
}
