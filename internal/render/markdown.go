// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"strings"

	"github.com/KusmierczykHobbyPrjs/sci-tools/internal/markdown"
)

// MarkdownOptions controls the markdown renderer.
type MarkdownOptions struct {
	// GdocMath re-delimits inline math as $$...$$ and escapes underscores
	// inside math, so a Google Docs paste keeps equations as plain text
	// until the Auto-LaTeX add-on picks them up.
	GdocMath bool

	// IncludeReferences appends a References section collecting every link
	// in the document.
	IncludeReferences bool
}

// Markdown re-serializes a document as cleaned markdown. In default mode
// the output re-parses to the exact document it was rendered from.
func Markdown(doc *markdown.Document, opts MarkdownOptions) string {
	var b strings.Builder

	ordinal := make(map[int]int) // depth -> current ordered-item number
	for _, blk := range doc.Blocks {
		if blk.Kind != markdown.BlockListItem {
			clear(ordinal)
		}
		renderMarkdownBlock(&b, blk, opts, ordinal)
	}

	if opts.IncludeReferences {
		if links := doc.Links(); len(links) > 0 {
			b.WriteString("# References\n\n")
			for _, l := range links {
				fmt.Fprintf(&b, "- %s: %s\n", l.Text, l.URL)
			}
			b.WriteString("\n")
		}
	}

	out := strings.TrimRight(b.String(), "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}

func renderMarkdownBlock(b *strings.Builder, blk markdown.Block, opts MarkdownOptions, ordinal map[int]int) {
	switch blk.Kind {
	case markdown.BlockHeading:
		fmt.Fprintf(b, "%s %s\n\n", strings.Repeat("#", blk.Level), markdownSpans(blk.Spans, opts))
	case markdown.BlockParagraph:
		fmt.Fprintf(b, "%s\n\n", markdownSpans(blk.Spans, opts))
	case markdown.BlockListItem:
		indent := strings.Repeat("  ", blk.Depth)
		marker := "-"
		if blk.Ordered {
			ordinal[blk.Depth]++
			marker = fmt.Sprintf("%d.", ordinal[blk.Depth])
		}
		fmt.Fprintf(b, "%s%s %s\n", indent, marker, markdownSpans(blk.Spans, opts))
	case markdown.BlockCode:
		fmt.Fprintf(b, "```%s\n%s\n```\n\n", blk.Lang, blk.Raw)
	case markdown.BlockMath:
		payload := blk.Raw
		if opts.GdocMath {
			payload = escapeMathUnderscores(payload)
		}
		fmt.Fprintf(b, "$$\n%s\n$$\n\n", payload)
	case markdown.BlockPassthrough:
		fmt.Fprintf(b, "%s\n\n", blk.Raw)
	}
}

func markdownSpans(spans []markdown.Span, opts MarkdownOptions) string {
	var b strings.Builder
	for _, s := range spans {
		switch s.Kind {
		case markdown.SpanText:
			b.WriteString(s.Text)
		case markdown.SpanBold:
			fmt.Fprintf(&b, "**%s**", markdownSpans(s.Children, opts))
		case markdown.SpanItalic:
			fmt.Fprintf(&b, "*%s*", markdownSpans(s.Children, opts))
		case markdown.SpanMath:
			if opts.GdocMath {
				fmt.Fprintf(&b, "$$%s$$", escapeMathUnderscores(s.Text))
			} else {
				fmt.Fprintf(&b, "$%s$", s.Text)
			}
		case markdown.SpanLink:
			fmt.Fprintf(&b, "[%s](%s)", s.Text, s.URL)
		}
	}
	return b.String()
}
