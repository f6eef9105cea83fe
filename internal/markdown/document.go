// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markdown parses a restricted markdown dialect into a document
// model of blocks and inline spans. Parsing is fail-open: syntax the parser
// does not recognize, or recognizes but cannot balance, is preserved as
// literal text rather than reported as an error.
package markdown

// BlockKind tags a Block variant.
type BlockKind int

const (
	// BlockHeading is an ATX heading (#, ##, ...).
	BlockHeading BlockKind = iota
	// BlockParagraph is a run of plain text lines.
	BlockParagraph
	// BlockListItem is one bullet or numbered list entry.
	BlockListItem
	// BlockCode is a fenced code block.
	BlockCode
	// BlockMath is display math ($$, \[..\], equation environment, or a
	// fenced block tagged "math").
	BlockMath
	// BlockPassthrough is raw text carried through unchanged in every
	// output dialect.
	BlockPassthrough
)

// Block is one top-level structural unit. Kind selects the variant; the
// remaining fields are populated per variant and zero otherwise.
type Block struct {
	Kind BlockKind

	// Level is the heading level (1-6) for BlockHeading.
	Level int

	// Ordered and Depth describe BlockListItem entries. Depth counts
	// nesting levels starting at zero.
	Ordered bool
	Depth   int

	// Lang is the fence info string for BlockCode.
	Lang string

	// Raw is the payload for BlockCode, BlockMath, and BlockPassthrough.
	// Math payloads are opaque: they are never re-tokenized as markdown.
	Raw string

	// Spans is the inline content for BlockHeading, BlockParagraph, and
	// BlockListItem.
	Spans []Span
}

// SpanKind tags a Span variant.
type SpanKind int

const (
	// SpanText is literal text.
	SpanText SpanKind = iota
	// SpanBold is **emphasized** content.
	SpanBold
	// SpanItalic is *emphasized* content.
	SpanItalic
	// SpanMath is inline math; Text is the opaque payload.
	SpanMath
	// SpanLink is a [text](url) link.
	SpanLink
)

// Span is one inline unit. Bold and italic spans nest through Children;
// text, math, and link spans are leaves.
type Span struct {
	Kind SpanKind

	// Text is the literal for SpanText, the payload for SpanMath, and the
	// link text for SpanLink.
	Text string

	// URL is the link destination for SpanLink.
	URL string

	// Children is the nested content for SpanBold and SpanItalic.
	Children []Span
}

// Document is an ordered sequence of blocks parsed from one source text.
type Document struct {
	Blocks []Block
}

// Link is a (text, url) pair collected from a document.
type Link struct {
	Text string
	URL  string
}

// Links returns every link span in document order. Duplicate URLs keep the
// first occurrence, upgrading to a longer link text when one appears later.
func (d *Document) Links() []Link {
	var order []string
	byURL := make(map[string]string)

	var walk func(spans []Span)
	walk = func(spans []Span) {
		for _, s := range spans {
			switch s.Kind {
			case SpanLink:
				if _, seen := byURL[s.URL]; !seen {
					order = append(order, s.URL)
					byURL[s.URL] = s.Text
				} else if len(s.Text) > len(byURL[s.URL]) {
					byURL[s.URL] = s.Text
				}
			case SpanBold, SpanItalic:
				walk(s.Children)
			}
		}
	}
	for _, b := range d.Blocks {
		walk(b.Spans)
	}

	links := make([]Link, 0, len(order))
	for _, url := range order {
		links = append(links, Link{Text: byURL[url], URL: url})
	}
	return links
}
