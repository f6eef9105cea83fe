// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"regexp"
	"strings"

	"github.com/KusmierczykHobbyPrjs/sci-tools/internal/markdown"
)

// Transforms in this file rewrite the document model before rendering.
// Keeping them off the render path keeps both renderers pure functions, and
// guarantees the markdown renderer's output re-parses to the document it
// was given: every normalization has already happened by then.

// sectionNumber matches a hardcoded section number at the start of a
// heading buffer ("3.", "2.1", "1.2.3.").
var sectionNumber = regexp.MustCompile(`^\**\d+(?:\.\d+)*\.?\s*`)

// NormalizeMathPayloads applies NormalizeMath to every math block and span.
func NormalizeMathPayloads(doc *markdown.Document) {
	for i := range doc.Blocks {
		b := &doc.Blocks[i]
		if b.Kind == markdown.BlockMath {
			b.Raw = NormalizeMath(b.Raw)
		}
		normalizeMathSpans(b.Spans)
	}
}

func normalizeMathSpans(spans []markdown.Span) {
	for i := range spans {
		switch spans[i].Kind {
		case markdown.SpanMath:
			spans[i].Text = NormalizeMath(spans[i].Text)
		case markdown.SpanBold, markdown.SpanItalic:
			normalizeMathSpans(spans[i].Children)
		}
	}
}

// GreekToMath rewrites Greek codepoints in plain text as inline math spans,
// so both dialects render them as macros rather than raw unicode.
func GreekToMath(doc *markdown.Document) {
	for i := range doc.Blocks {
		doc.Blocks[i].Spans = greekSpans(doc.Blocks[i].Spans)
	}
}

func greekSpans(spans []markdown.Span) []markdown.Span {
	var out []markdown.Span
	for _, s := range spans {
		switch s.Kind {
		case markdown.SpanText:
			out = append(out, splitGreek(s.Text)...)
		case markdown.SpanBold, markdown.SpanItalic:
			s.Children = greekSpans(s.Children)
			out = append(out, s)
		default:
			out = append(out, s)
		}
	}
	return out
}

func splitGreek(text string) []markdown.Span {
	var out []markdown.Span
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			out = append(out, markdown.Span{Kind: markdown.SpanText, Text: plain.String()})
			plain.Reset()
		}
	}

	for _, r := range text {
		if macro, ok := greekLetters[r]; ok && macro != "o" {
			flush()
			out = append(out, markdown.Span{Kind: markdown.SpanMath, Text: macro})
			continue
		}
		plain.WriteRune(r)
	}
	flush()
	return out
}

// CleanLinks strips URL fragments from every link.
func CleanLinks(doc *markdown.Document) {
	for i := range doc.Blocks {
		cleanLinkSpans(doc.Blocks[i].Spans)
	}
}

func cleanLinkSpans(spans []markdown.Span) {
	for i := range spans {
		switch spans[i].Kind {
		case markdown.SpanLink:
			spans[i].URL = cleanURL(spans[i].URL)
		case markdown.SpanBold, markdown.SpanItalic:
			cleanLinkSpans(spans[i].Children)
		}
	}
}

// cleanURL drops the fragment part of a URL.
func cleanURL(url string) string {
	if i := strings.IndexByte(url, '#'); i >= 0 {
		return url[:i]
	}
	return url
}

// NormalizeQuotes replaces typographic quote characters in plain text with
// their ASCII forms.
func NormalizeQuotes(doc *markdown.Document) {
	for i := range doc.Blocks {
		normalizeQuoteSpans(doc.Blocks[i].Spans)
	}
}

var quoteReplacer = strings.NewReplacer(
	"‘", "'", "’", "'",
	"“", `"`, "”", `"`,
	"`", "'",
)

func normalizeQuoteSpans(spans []markdown.Span) {
	for i := range spans {
		switch spans[i].Kind {
		case markdown.SpanText:
			spans[i].Text = quoteReplacer.Replace(spans[i].Text)
		case markdown.SpanBold, markdown.SpanItalic:
			normalizeQuoteSpans(spans[i].Children)
		}
	}
}

// StripSectionNumbers removes hardcoded numbering ("2.1 Results") from
// headings; sectioning commands number themselves.
func StripSectionNumbers(doc *markdown.Document) {
	for i := range doc.Blocks {
		b := &doc.Blocks[i]
		if b.Kind != markdown.BlockHeading || len(b.Spans) == 0 {
			continue
		}
		first := &b.Spans[0]
		if first.Kind != markdown.SpanText {
			continue
		}
		first.Text = sectionNumber.ReplaceAllString(first.Text, "")
		if first.Text == "" && len(b.Spans) > 1 {
			b.Spans = b.Spans[1:]
		}
	}
}

// PromoteHeadings shifts all heading levels up until a level-1 heading
// exists, so a document whose top level is ## still gets \section commands.
// Bounded at four promotions, matching the deepest recognized level.
func PromoteHeadings(doc *markdown.Document) {
	for round := 0; round < 4; round++ {
		minLevel := 0
		for _, b := range doc.Blocks {
			if b.Kind == markdown.BlockHeading && (minLevel == 0 || b.Level < minLevel) {
				minLevel = b.Level
			}
		}
		if minLevel <= 1 {
			return
		}
		for i := range doc.Blocks {
			if doc.Blocks[i].Kind == markdown.BlockHeading {
				doc.Blocks[i].Level--
			}
		}
	}
}
