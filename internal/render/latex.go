// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render emits a parsed markdown document in one of two output
// dialects: LaTeX source, or cleaned markdown with an optional math mode
// for Google Docs. Both renderers are pure functions over the document;
// all content normalization happens in the transforms.
package render

import (
	"fmt"
	"strings"

	"github.com/KusmierczykHobbyPrjs/sci-tools/internal/markdown"
)

// LaTeXOptions controls the LaTeX renderer.
type LaTeXOptions struct {
	// IncludeReferences appends a References section collecting every link
	// in the document.
	IncludeReferences bool
}

// latexSpecial maps characters that are syntactically significant in LaTeX
// to their escaped forms. Applied to plain text only; math and code
// payloads pass through verbatim.
var latexSpecial = strings.NewReplacer(
	"%", `\%`,
	"&", `\&`,
	"_", `\_`,
	"#", `\#`,
	"$", `\$`,
	"{", `\{`,
	"}", `\}`,
	"\u201C", "``",
	"\u201D", "''",
	"\u2018", "`",
	"\u2019", "'",
)

// LaTeX renders a document as a complete compilable LaTeX source. An empty
// document renders as an empty string.
func LaTeX(doc *markdown.Document, opts LaTeXOptions) string {
	links := doc.Links()
	if len(doc.Blocks) == 0 && (!opts.IncludeReferences || len(links) == 0) {
		return ""
	}

	var body strings.Builder
	for i := 0; i < len(doc.Blocks); i++ {
		b := doc.Blocks[i]
		if b.Kind == markdown.BlockListItem {
			run := listRun(doc.Blocks[i:])
			consumed := 0
			for consumed < len(run) {
				consumed += renderLaTeXList(&body, run[consumed:], run[consumed].Depth)
			}
			body.WriteString("\n")
			i += len(run) - 1
			continue
		}
		renderLaTeXBlock(&body, b)
	}

	if opts.IncludeReferences && len(links) > 0 {
		body.WriteString("\n\\section{References}\n\\begin{enumerate}\n")
		for _, l := range links {
			fmt.Fprintf(&body, "\\item %s: \\url{%s}\n", latexSpans([]markdown.Span{{Kind: markdown.SpanText, Text: l.Text}}), l.URL)
		}
		body.WriteString("\\end{enumerate}\n")
	}

	var out strings.Builder
	out.WriteString("\\documentclass{article}\n")
	out.WriteString("\\usepackage{amsmath, amssymb, url, hyperref}\n")
	if hasCodeLanguage(doc) {
		out.WriteString("\\usepackage{listings}\n")
	}
	out.WriteString("\\begin{document}\n\n")
	out.WriteString(strings.TrimRight(body.String(), "\n"))
	out.WriteString("\n\n\\end{document}\n")
	return out.String()
}

func hasCodeLanguage(doc *markdown.Document) bool {
	for _, b := range doc.Blocks {
		if b.Kind == markdown.BlockCode && b.Lang != "" {
			return true
		}
	}
	return false
}

func renderLaTeXBlock(w *strings.Builder, b markdown.Block) {
	switch b.Kind {
	case markdown.BlockHeading:
		content := latexSpans(b.Spans)
		switch b.Level {
		case 1:
			fmt.Fprintf(w, "\\section{%s}\n\n", content)
		case 2:
			fmt.Fprintf(w, "\\subsection{%s}\n\n", content)
		case 3:
			fmt.Fprintf(w, "\\subsubsection{%s}\n\n", content)
		case 4:
			fmt.Fprintf(w, "\\paragraph{%s}\n\n", content)
		default:
			// No sectioning command this deep; keep the text.
			fmt.Fprintf(w, "%s\n\n", content)
		}
	case markdown.BlockParagraph:
		fmt.Fprintf(w, "%s\n\n", latexSpans(b.Spans))
	case markdown.BlockCode:
		if b.Lang != "" {
			fmt.Fprintf(w, "\\begin{lstlisting}[language=%s]\n%s\n\\end{lstlisting}\n\n", b.Lang, b.Raw)
		} else {
			fmt.Fprintf(w, "\\begin{verbatim}\n%s\n\\end{verbatim}\n\n", b.Raw)
		}
	case markdown.BlockMath:
		fmt.Fprintf(w, "\\begin{equation}\n%s\n\\end{equation}\n\n", b.Raw)
	case markdown.BlockPassthrough:
		fmt.Fprintf(w, "%s\n\n", b.Raw)
	}
}

// listRun returns the maximal prefix of consecutive list-item blocks.
func listRun(blocks []markdown.Block) []markdown.Block {
	n := 0
	for n < len(blocks) && blocks[n].Kind == markdown.BlockListItem {
		n++
	}
	return blocks[:n]
}

// renderLaTeXList emits one itemize or enumerate environment for the items
// at the given depth, recursing for deeper nesting. Returns the number of
// items consumed.
func renderLaTeXList(w *strings.Builder, items []markdown.Block, depth int) int {
	env := "itemize"
	if items[0].Ordered {
		env = "enumerate"
	}
	fmt.Fprintf(w, "\\begin{%s}\n", env)

	i := 0
	for i < len(items) {
		it := items[i]
		if it.Depth < depth || (it.Depth == depth && it.Ordered != items[0].Ordered) {
			break
		}
		if it.Depth > depth {
			i += renderLaTeXList(w, items[i:], it.Depth)
			continue
		}
		fmt.Fprintf(w, "\\item %s\n", latexSpans(it.Spans))
		i++
	}

	fmt.Fprintf(w, "\\end{%s}\n", env)
	return i
}

// latexSpans renders inline content in LaTeX syntax. Math payloads pass
// through verbatim; everything else is escaped.
func latexSpans(spans []markdown.Span) string {
	var b strings.Builder
	for _, s := range spans {
		switch s.Kind {
		case markdown.SpanText:
			b.WriteString(latexSpecial.Replace(s.Text))
		case markdown.SpanBold:
			fmt.Fprintf(&b, "\\textbf{%s}", latexSpans(s.Children))
		case markdown.SpanItalic:
			fmt.Fprintf(&b, "\\textit{%s}", latexSpans(s.Children))
		case markdown.SpanMath:
			fmt.Fprintf(&b, "$%s$", s.Text)
		case markdown.SpanLink:
			fmt.Fprintf(&b, "\\href{%s}{%s}", s.URL, latexSpecial.Replace(s.Text))
		}
	}
	return b.String()
}
