// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bundle concatenates Go source files into a single stream for
// pasting into a chat or review context, shortening every doc comment to
// its first sentence to keep the result compact.
package bundle

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"os"
	"sort"
	"strings"
)

// Files concatenates the given source files to w, separated by a header
// naming each file. Files that fail to parse are emitted unchanged; the
// bundle is a best-effort aid, not a compiler.
func Files(paths []string, w io.Writer) error {
	for i, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "// ===== %s =====\n\n", path)

		out := src
		if strings.HasSuffix(path, ".go") {
			out = []byte(ShortenDocs(string(src), path))
		}
		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("writing bundle: %w", err)
		}
		if len(out) > 0 && out[len(out)-1] != '\n' {
			fmt.Fprintln(w)
		}
	}
	return nil
}

// ShortenDocs rewrites every doc comment in a Go source file to its first
// sentence. Unparseable source is returned unchanged.
func ShortenDocs(src, filename string) string {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return src
	}

	type edit struct {
		startLine int
		endLine   int
		text      string
	}
	var edits []edit

	addDoc := func(g *ast.CommentGroup) {
		if g == nil {
			return
		}
		full := strings.TrimSpace(g.Text())
		short := firstSentence(full)
		if short == "" || short == full {
			return
		}
		edits = append(edits, edit{
			startLine: fset.Position(g.Pos()).Line,
			endLine:   fset.Position(g.End()).Line,
			text:      "// " + short,
		})
	}

	addDoc(f.Doc)
	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			addDoc(d.Doc)
		case *ast.GenDecl:
			addDoc(d.Doc)
			for _, spec := range d.Specs {
				switch sp := spec.(type) {
				case *ast.TypeSpec:
					addDoc(sp.Doc)
				case *ast.ValueSpec:
					addDoc(sp.Doc)
				}
			}
		}
	}

	if len(edits) == 0 {
		return src
	}

	// Splice bottom-up so earlier line numbers stay valid.
	sort.Slice(edits, func(i, j int) bool { return edits[i].startLine > edits[j].startLine })

	lines := strings.Split(src, "\n")
	for _, e := range edits {
		if e.startLine < 1 || e.endLine > len(lines) {
			continue
		}
		indent := leadingWhitespace(lines[e.startLine-1])
		replaced := append([]string{}, lines[:e.startLine-1]...)
		replaced = append(replaced, indent+e.text)
		replaced = append(replaced, lines[e.endLine:]...)
		lines = replaced
	}
	return strings.Join(lines, "\n")
}

// firstSentence extracts the first sentence of a doc comment, falling back
// to the first line when no reasonably long sentence exists.
func firstSentence(text string) string {
	if text == "" {
		return ""
	}
	if i := strings.Index(text, "."); i >= 0 {
		sentence := strings.TrimSpace(text[:i])
		if len(sentence) > 10 {
			return strings.Join(strings.Fields(sentence), " ") + "."
		}
	}
	line, _, _ := strings.Cut(text, "\n")
	return strings.TrimSpace(line)
}

func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
