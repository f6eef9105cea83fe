// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import (
	"regexp"
	"strings"
)

var (
	// headingPattern matches ATX headings: one to six # markers and a space.
	headingPattern = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)

	// ulistPattern matches unordered list items. The space after the marker
	// is required so *emphasis* at the start of a line is not a list.
	ulistPattern = regexp.MustCompile(`^(\s*)[-*]\s+(.*)$`)

	// olistPattern matches ordered list items ("1. item" or "1) item").
	olistPattern = regexp.MustCompile(`^(\s*)\d+[.)]\s+(.*)$`)
)

// Parse reads a full markdown source text and returns its document model.
// It never fails: unrecognized or unbalanced constructs degrade to literal
// text (passthrough blocks or plain-text spans).
func Parse(src string) *Document {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	lines := strings.Split(src, "\n")

	doc := &Document{}
	var para []string

	flushPara := func() {
		if len(para) == 0 {
			return
		}
		text := strings.Join(para, "\n")
		para = para[:0]
		doc.Blocks = append(doc.Blocks, Block{
			Kind:  BlockParagraph,
			Spans: parseSpans(text),
		})
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			flushPara()
			continue
		}

		if strings.HasPrefix(trimmed, "```") {
			flushPara()
			lang := strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
			body, next := collectUntil(lines, i+1, isFenceClose)
			i = next
			block := Block{Kind: BlockCode, Lang: lang, Raw: body}
			if lang == "math" {
				// ```math fences are display math, not code.
				block = Block{Kind: BlockMath, Raw: body}
			}
			doc.Blocks = append(doc.Blocks, block)
			continue
		}

		if strings.HasPrefix(trimmed, "$$") {
			flushPara()
			doc.Blocks = append(doc.Blocks, parseDollarMath(lines, &i)...)
			continue
		}

		if strings.HasPrefix(trimmed, `\[`) {
			flushPara()
			doc.Blocks = append(doc.Blocks, parseDelimitedMath(lines, &i, `\[`, `\]`)...)
			continue
		}

		if strings.HasPrefix(trimmed, `\begin{equation}`) {
			flushPara()
			doc.Blocks = append(doc.Blocks, parseDelimitedMath(lines, &i, `\begin{equation}`, `\end{equation}`)...)
			continue
		}

		if m := headingPattern.FindStringSubmatch(line); m != nil {
			flushPara()
			doc.Blocks = append(doc.Blocks, Block{
				Kind:  BlockHeading,
				Level: len(m[1]),
				Spans: parseSpans(m[2]),
			})
			continue
		}

		if m := olistPattern.FindStringSubmatch(line); m != nil {
			flushPara()
			doc.Blocks = append(doc.Blocks, Block{
				Kind:    BlockListItem,
				Ordered: true,
				Depth:   len(m[1]) / 2,
				Spans:   parseSpans(m[2]),
			})
			continue
		}

		if m := ulistPattern.FindStringSubmatch(line); m != nil {
			flushPara()
			doc.Blocks = append(doc.Blocks, Block{
				Kind:  BlockListItem,
				Depth: len(m[1]) / 2,
				Spans: parseSpans(m[2]),
			})
			continue
		}

		para = append(para, line)
	}
	flushPara()

	return doc
}

func isFenceClose(line string) bool {
	return strings.TrimSpace(line) == "```"
}

// collectUntil joins lines[start:] up to (excluding) the first line matched
// by done, returning the body and the index of the closing line. When no
// closing line exists the body runs to the end of input.
func collectUntil(lines []string, start int, done func(string) bool) (string, int) {
	for i := start; i < len(lines); i++ {
		if done(lines[i]) {
			return strings.Join(lines[start:i], "\n"), i
		}
	}
	return strings.Join(lines[start:], "\n"), len(lines)
}

// parseDollarMath handles a block starting with $$ at lines[*i]. It covers
// the single-line form ($$x+y$$), the fenced form ($$ alone on opening and
// closing lines), and the mixed form where payload shares the opening or
// closing line. An unclosed $$ falls open to a passthrough block.
func parseDollarMath(lines []string, i *int) []Block {
	trimmed := strings.TrimSpace(lines[*i])

	if len(trimmed) >= 4 && strings.HasSuffix(trimmed, "$$") && trimmed != "$$" {
		payload := strings.TrimSpace(trimmed[2 : len(trimmed)-2])
		return []Block{{Kind: BlockMath, Raw: payload}}
	}

	first := strings.TrimSpace(strings.TrimPrefix(trimmed, "$$"))
	start := *i
	for j := *i + 1; j < len(lines); j++ {
		t := strings.TrimSpace(lines[j])
		if t == "$$" || strings.HasSuffix(t, "$$") {
			var body []string
			if first != "" {
				body = append(body, first)
			}
			body = append(body, lines[*i+1:j]...)
			if t != "$$" {
				body = append(body, strings.TrimSuffix(t, "$$"))
			}
			*i = j
			return []Block{{Kind: BlockMath, Raw: strings.TrimSpace(strings.Join(body, "\n"))}}
		}
	}

	// No closing delimiter: keep the raw lines unchanged.
	*i = len(lines) - 1
	return []Block{{Kind: BlockPassthrough, Raw: strings.Join(lines[start:], "\n")}}
}

// parseDelimitedMath handles \[..\] and \begin{equation}..\end{equation}
// display math at lines[*i], in single-line or multi-line form. Unclosed
// blocks fall open to passthrough.
func parseDelimitedMath(lines []string, i *int, open, closing string) []Block {
	trimmed := strings.TrimSpace(lines[*i])

	if strings.HasSuffix(trimmed, closing) && trimmed != open {
		payload := strings.TrimPrefix(trimmed, open)
		payload = strings.TrimSuffix(payload, closing)
		return []Block{{Kind: BlockMath, Raw: strings.TrimSpace(payload)}}
	}

	first := strings.TrimSpace(strings.TrimPrefix(trimmed, open))
	start := *i
	for j := *i + 1; j < len(lines); j++ {
		t := strings.TrimSpace(lines[j])
		if strings.HasSuffix(t, closing) {
			var body []string
			if first != "" {
				body = append(body, first)
			}
			body = append(body, lines[*i+1:j]...)
			if rest := strings.TrimSuffix(t, closing); rest != "" {
				body = append(body, rest)
			}
			*i = j
			return []Block{{Kind: BlockMath, Raw: strings.TrimSpace(strings.Join(body, "\n"))}}
		}
	}

	*i = len(lines) - 1
	return []Block{{Kind: BlockPassthrough, Raw: strings.Join(lines[start:], "\n")}}
}
