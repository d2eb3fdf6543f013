package notion

import (
	"context"
	"fmt"
	"strings"

	"github.com/jomei/notionapi"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

type blockKind int

const (
	kindParagraph blockKind = iota
	kindHeading1
	kindHeading2
	kindHeading3
	kindBullet
	kindNumbered
)

var markdown = goldmark.New()

// markdownBlocks converts body into page blocks following its markdown
// structure. Every block holds at most maxTextLength runes.
func markdownBlocks(body string) []notionapi.Block {
	src := []byte(body)
	doc := markdown.Parser().Parse(text.NewReader(src))

	var blocks []notionapi.Block
	add := func(kind blockKind, s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		for _, chunk := range splitText(s, maxTextLength) {
			blocks = append(blocks, newBlock(kind, chunk))
		}
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			add(headingKind(node.Level), nodeText(node, src))
		case *ast.List:
			kind := kindBullet
			if node.IsOrdered() {
				kind = kindNumbered
			}
			for item := node.FirstChild(); item != nil; item = item.NextSibling() {
				add(kind, nodeText(item, src))
			}
		default:
			add(kindParagraph, nodeText(node, src))
		}
	}

	if len(blocks) == 0 && strings.TrimSpace(body) != "" {
		for _, chunk := range splitText(body, maxTextLength) {
			blocks = append(blocks, newBlock(kindParagraph, chunk))
		}
	}
	return blocks
}

func headingKind(level int) blockKind {
	switch level {
	case 1:
		return kindHeading1
	case 2:
		return kindHeading2
	default:
		return kindHeading3
	}
}

// nodeText returns the source lines of a block node, descending into
// containers such as list items and block quotes.
func nodeText(n ast.Node, src []byte) string {
	if n.Type() != ast.TypeBlock {
		return ""
	}
	if lines := n.Lines(); lines != nil && lines.Len() > 0 {
		parts := make([]string, 0, lines.Len())
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			parts = append(parts, strings.TrimRight(string(seg.Value(src)), "\r\n"))
		}
		return strings.Join(parts, "\n")
	}

	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t := nodeText(c, src); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}

func newBlock(kind blockKind, s string) notionapi.Block {
	rt := richText(s)
	switch kind {
	case kindHeading1:
		return &notionapi.Heading1Block{
			BasicBlock: basicBlock(notionapi.BlockTypeHeading1),
			Heading1:   notionapi.Heading{RichText: rt},
		}
	case kindHeading2:
		return &notionapi.Heading2Block{
			BasicBlock: basicBlock(notionapi.BlockTypeHeading2),
			Heading2:   notionapi.Heading{RichText: rt},
		}
	case kindHeading3:
		return &notionapi.Heading3Block{
			BasicBlock: basicBlock(notionapi.BlockTypeHeading3),
			Heading3:   notionapi.Heading{RichText: rt},
		}
	case kindBullet:
		return &notionapi.BulletedListItemBlock{
			BasicBlock:       basicBlock(notionapi.BlockTypeBulletedListItem),
			BulletedListItem: notionapi.ListItem{RichText: rt},
		}
	case kindNumbered:
		return &notionapi.NumberedListItemBlock{
			BasicBlock:       basicBlock(notionapi.BlockTypeNumberedListItem),
			NumberedListItem: notionapi.ListItem{RichText: rt},
		}
	default:
		return &notionapi.ParagraphBlock{
			BasicBlock: basicBlock(notionapi.BlockTypeParagraph),
			Paragraph:  notionapi.Paragraph{RichText: rt},
		}
	}
}

func basicBlock(t notionapi.BlockType) notionapi.BasicBlock {
	return notionapi.BasicBlock{Object: notionapi.ObjectTypeBlock, Type: t}
}

// blockLine renders one block back to markdown-ish text. Unsupported block
// types render as "".
func blockLine(b notionapi.Block) string {
	switch blk := b.(type) {
	case *notionapi.Heading1Block:
		return prefixed("# ", plainText(blk.Heading1.RichText))
	case *notionapi.Heading2Block:
		return prefixed("## ", plainText(blk.Heading2.RichText))
	case *notionapi.Heading3Block:
		return prefixed("### ", plainText(blk.Heading3.RichText))
	case *notionapi.BulletedListItemBlock:
		return prefixed("- ", plainText(blk.BulletedListItem.RichText))
	case *notionapi.NumberedListItemBlock:
		return prefixed("1. ", plainText(blk.NumberedListItem.RichText))
	case *notionapi.ParagraphBlock:
		return plainText(blk.Paragraph.RichText)
	case *notionapi.QuoteBlock:
		return plainText(blk.Quote.RichText)
	case *notionapi.CodeBlock:
		return plainText(blk.Code.RichText)
	}
	return ""
}

func prefixed(prefix, s string) string {
	if s == "" {
		return ""
	}
	return prefix + s
}

// pageText reads every child block of page and joins their text with
// newlines.
func pageText(ctx context.Context, blocks BlockService, page notionapi.BlockID) (string, error) {
	var (
		lines  []string
		cursor notionapi.Cursor
	)
	for {
		resp, err := blocks.GetChildren(ctx, page, &notionapi.Pagination{
			StartCursor: cursor,
			PageSize:    maxBlocksPerRequest,
		})
		if err != nil {
			return "", fmt.Errorf("failed to read page blocks: %w", err)
		}
		for _, b := range resp.Results {
			if line := blockLine(b); line != "" {
				lines = append(lines, line)
			}
		}
		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		cursor = notionapi.Cursor(resp.NextCursor)
	}
	return strings.Join(lines, "\n"), nil
}
