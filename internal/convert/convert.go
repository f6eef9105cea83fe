// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements the markdown dialect conversion pipeline:
// input to document model to one of two output dialects (LaTeX source or
// cleaned markdown). HTML input, from a file or fetched from a URL, is
// first normalized to markdown.
package convert

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/KusmierczykHobbyPrjs/sci-tools/internal/httputil"
	"github.com/KusmierczykHobbyPrjs/sci-tools/internal/markdown"
	"github.com/KusmierczykHobbyPrjs/sci-tools/internal/render"
	"github.com/KusmierczykHobbyPrjs/sci-tools/pkg/types"
)

// File converts the input — a markdown file, an HTML file, or an http(s)
// URL — and writes the result to outputPath. When outputPath is empty the
// destination is derived from the input name: stem.tex for LaTeX,
// stem-clean.md for markdown. Returns the path written.
func File(ctx context.Context, input, outputPath string, cfg types.ConvertConfig, w io.Writer) (string, error) {
	var src string
	switch {
	case isURL(input):
		page, err := httputil.Fetch(ctx, nil, input)
		if err != nil {
			return "", err
		}
		src, err = fromHTML(page)
		if err != nil {
			return "", fmt.Errorf("normalizing %s: %w", input, err)
		}
	case isHTMLPath(input):
		data, err := os.ReadFile(input)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", input, err)
		}
		src, err = fromHTML(string(data))
		if err != nil {
			return "", fmt.Errorf("normalizing HTML input %s: %w", input, err)
		}
	default:
		data, err := os.ReadFile(input)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", input, err)
		}
		src = string(data)
	}

	out, err := Text(src, cfg)
	if err != nil {
		return "", err
	}

	if outputPath == "" {
		outputPath = derivedPath(input, cfg.Format)
	}
	if err := os.WriteFile(outputPath, []byte(out), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", outputPath, err)
	}

	fmt.Fprintf(w, "converted: %s -> %s\n", input, outputPath)
	return outputPath, nil
}

// Text converts markdown source text to the configured output dialect.
// Conversion itself cannot fail; malformed input degrades to literal text
// during parsing.
func Text(src string, cfg types.ConvertConfig) (string, error) {
	doc := markdown.Parse(src)

	switch cfg.Format {
	case types.OutputLaTeX:
		render.StripSectionNumbers(doc)
		render.PromoteHeadings(doc)
		render.CleanLinks(doc)
		render.NormalizeMathPayloads(doc)
		render.GreekToMath(doc)
		return render.LaTeX(doc, render.LaTeXOptions{
			IncludeReferences: cfg.IncludeReferences,
		}), nil
	case types.OutputMarkdown, "":
		render.CleanLinks(doc)
		render.NormalizeQuotes(doc)
		render.NormalizeMathPayloads(doc)
		render.GreekToMath(doc)
		return render.Markdown(doc, render.MarkdownOptions{
			GdocMath:          cfg.GdocMath,
			IncludeReferences: cfg.IncludeReferences,
		}), nil
	default:
		return "", fmt.Errorf("unknown output format %q", cfg.Format)
	}
}

// derivedPath builds the default output path. For file inputs it sits next
// to the input file; for URL inputs the name comes from the last path
// segment, written to the current directory.
func derivedPath(input string, format types.OutputFormat) string {
	stem := input
	if isURL(input) {
		stem = "page"
		if u, err := url.Parse(input); err == nil {
			if base := path.Base(u.Path); base != "" && base != "/" && base != "." {
				stem = base
			}
		}
	}
	stem = strings.TrimSuffix(stem, filepath.Ext(stem))
	if format == types.OutputLaTeX {
		return stem + ".tex"
	}
	return stem + "-clean.md"
}

func isURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

func isHTMLPath(p string) bool {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".html", ".htm":
		return true
	}
	return false
}
