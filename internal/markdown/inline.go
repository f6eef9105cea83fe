// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import "strings"

// parseSpans tokenizes inline content into spans. The scan runs left to
// right; the first delimiter that opens and closes wins. A delimiter with no
// matching close before end of block stays literal text, so unbalanced
// input cannot corrupt the rest of the block.
func parseSpans(s string) []Span {
	var spans []Span
	var text strings.Builder

	flush := func() {
		if text.Len() > 0 {
			spans = append(spans, Span{Kind: SpanText, Text: text.String()})
			text.Reset()
		}
	}

	i := 0
	for i < len(s) {
		switch {
		case strings.HasPrefix(s[i:], "$$"):
			if end := strings.Index(s[i+2:], "$$"); end >= 0 {
				flush()
				spans = append(spans, Span{Kind: SpanMath, Text: s[i+2 : i+2+end]})
				i += end + 4
				continue
			}
			text.WriteString("$$")
			i += 2

		case s[i] == '$':
			if end := strings.IndexByte(s[i+1:], '$'); end > 0 {
				flush()
				spans = append(spans, Span{Kind: SpanMath, Text: s[i+1 : i+1+end]})
				i += end + 2
				continue
			}
			text.WriteByte('$')
			i++

		case strings.HasPrefix(s[i:], `\(`):
			if end := strings.Index(s[i+2:], `\)`); end >= 0 {
				flush()
				spans = append(spans, Span{Kind: SpanMath, Text: strings.TrimSpace(s[i+2 : i+2+end])})
				i += end + 4
				continue
			}
			text.WriteString(`\(`)
			i += 2

		case strings.HasPrefix(s[i:], "**"):
			if end := strings.Index(s[i+2:], "**"); end > 0 {
				flush()
				spans = append(spans, Span{Kind: SpanBold, Children: parseSpans(s[i+2 : i+2+end])})
				i += end + 4
				continue
			}
			text.WriteString("**")
			i += 2

		case s[i] == '*':
			if end := strings.IndexByte(s[i+1:], '*'); end > 0 {
				flush()
				spans = append(spans, Span{Kind: SpanItalic, Children: parseSpans(s[i+1 : i+1+end])})
				i += end + 2
				continue
			}
			text.WriteByte('*')
			i++

		case s[i] == '[':
			if linkText, url, n, ok := parseLink(s[i:]); ok {
				flush()
				spans = append(spans, Span{Kind: SpanLink, Text: linkText, URL: url})
				i += n
				continue
			}
			text.WriteByte('[')
			i++

		default:
			text.WriteByte(s[i])
			i++
		}
	}
	flush()

	return spans
}

// parseLink matches [text](url) at the start of s. The url must be
// non-empty and free of whitespace. Returns the text, url, and the number
// of bytes consumed.
func parseLink(s string) (text, url string, n int, ok bool) {
	closeBracket := strings.IndexByte(s, ']')
	if closeBracket < 0 || closeBracket+1 >= len(s) || s[closeBracket+1] != '(' {
		return "", "", 0, false
	}
	closeParen := strings.IndexByte(s[closeBracket+2:], ')')
	if closeParen < 0 {
		return "", "", 0, false
	}

	url = s[closeBracket+2 : closeBracket+2+closeParen]
	if url == "" || strings.ContainsAny(url, " \t\n") {
		return "", "", 0, false
	}
	return s[1:closeBracket], url, closeBracket + closeParen + 3, true
}
