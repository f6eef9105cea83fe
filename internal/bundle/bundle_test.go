// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bundle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleSource = `// Package sample demonstrates doc shortening. It has a second
// sentence that should disappear from the bundle.
package sample

// Add returns the sum of its arguments. Negative
// values are fine; overflow is the caller's problem.
func Add(a, b int) int {
	return a + b
}

// ok
func short() {}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestShortenDocs(t *testing.T) {
	out := ShortenDocs(sampleSource, "sample.go")

	if !strings.Contains(out, "// Package sample demonstrates doc shortening.\n") {
		t.Errorf("package doc not shortened:\n%s", out)
	}
	if strings.Contains(out, "second") {
		t.Errorf("second sentence survived:\n%s", out)
	}
	if !strings.Contains(out, "// Add returns the sum of its arguments.\n") {
		t.Errorf("func doc not shortened:\n%s", out)
	}
	if strings.Contains(out, "overflow") {
		t.Errorf("func doc tail survived:\n%s", out)
	}
	// A doc that is already one short line stays as it was.
	if !strings.Contains(out, "// ok\n") {
		t.Errorf("short doc changed:\n%s", out)
	}
	if !strings.Contains(out, "return a + b") {
		t.Errorf("function body lost:\n%s", out)
	}
}

func TestShortenDocsUnparseableSourceUnchanged(t *testing.T) {
	src := "this is not go code {"
	if got := ShortenDocs(src, "broken.go"); got != src {
		t.Errorf("got %q, want input unchanged", got)
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.go", sampleSource)
	b := writeFile(t, dir, "notes.txt", "plain text, no go parsing\n")

	var out strings.Builder
	if err := Files([]string{a, b}, &out); err != nil {
		t.Fatal(err)
	}
	got := out.String()

	if !strings.Contains(got, "// ===== "+a+" =====") {
		t.Errorf("missing header for %s:\n%s", a, got)
	}
	if !strings.Contains(got, "// ===== "+b+" =====") {
		t.Errorf("missing header for %s:\n%s", b, got)
	}
	if strings.Contains(got, "second sentence") {
		t.Errorf("go doc not shortened in bundle:\n%s", got)
	}
	if !strings.Contains(got, "plain text, no go parsing") {
		t.Errorf("non-go file content lost:\n%s", got)
	}
	if strings.Index(got, a) > strings.Index(got, "notes.txt") {
		t.Error("files out of order")
	}
}

func TestFilesMissingInput(t *testing.T) {
	var out strings.Builder
	err := Files([]string{filepath.Join(t.TempDir(), "absent.go")}, &out)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
