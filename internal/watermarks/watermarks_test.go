// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package watermarks

import (
	"strings"
	"testing"

	"github.com/KusmierczykHobbyPrjs/sci-tools/pkg/types"
)

func TestCleanInvisibleCharacters(t *testing.T) {
	// Zero-width space between "in" and "visible".
	in := "in\u200bvisible"
	cleaned, report := Clean(in, types.WatermarksConfig{PreserveSpaces: true})

	if cleaned != "invisible" {
		t.Errorf("cleaned = %q", cleaned)
	}
	if report.Totals[types.CategoryInvisible] != 1 {
		t.Errorf("totals = %v", report.Totals)
	}
	if report.Removed != 1 {
		t.Errorf("removed = %d", report.Removed)
	}

	f := report.Findings[0]
	if f.Codepoint != "U+200B" {
		t.Errorf("codepoint = %s", f.Codepoint)
	}
	if f.Position != 2 {
		t.Errorf("position = %d", f.Position)
	}
	if f.Before != "in" || !strings.HasPrefix(f.After, "\u200bvisible") {
		t.Errorf("context = %q / %q", f.Before, f.After)
	}
}

func TestCleanHomoglyphs(t *testing.T) {
	// Cyrillic \u0430 inside a latin word; the unmapped \u043c stays as-is.
	in := "p\u0430r\u043cword"
	cleaned, report := Clean(in, types.WatermarksConfig{PreserveSpaces: true})

	if cleaned != "par\u043cword" {
		t.Errorf("cleaned = %q", cleaned)
	}
	if report.Totals[types.CategoryHomoglyph] != 1 {
		t.Errorf("totals = %v", report.Totals)
	}
}

func TestCleanReplacesCyrillic(t *testing.T) {
	in := "с\u043ede" // Cyrillic es + Cyrillic o, then "de"
	cleaned, report := Clean(in, types.WatermarksConfig{PreserveSpaces: true})

	if cleaned != "code" {
		t.Errorf("cleaned = %q, want code", cleaned)
	}
	if report.Totals[types.CategoryHomoglyph] != 2 {
		t.Errorf("totals = %v", report.Totals)
	}
}

func TestCleanWhitespaceVariants(t *testing.T) {
	in := "a\u00a0b\u2009c" // non-breaking space, thin space
	cleaned, report := Clean(in, types.WatermarksConfig{PreserveSpaces: true})

	if cleaned != "a b c" {
		t.Errorf("cleaned = %q", cleaned)
	}
	if report.Totals[types.CategoryWhitespace] != 2 {
		t.Errorf("totals = %v", report.Totals)
	}
}

func TestCleanControlCharacters(t *testing.T) {
	in := "a\x07b\tc\nd" // bell removed; tab and newline kept
	cleaned, report := Clean(in, types.WatermarksConfig{PreserveSpaces: true})

	if cleaned != "ab\tc\nd" {
		t.Errorf("cleaned = %q", cleaned)
	}
	if report.Totals[types.CategoryControl] != 1 {
		t.Errorf("totals = %v", report.Totals)
	}
}

func TestCleanSpaceRuns(t *testing.T) {
	in := "a  b   c"

	preserved, report := Clean(in, types.WatermarksConfig{PreserveSpaces: true})
	if preserved != in {
		t.Errorf("preserved = %q, want unchanged", preserved)
	}
	if report.Totals[types.CategorySpaceRun] != 2 {
		t.Errorf("totals = %v", report.Totals)
	}
	for _, f := range report.Findings {
		if f.Category == types.CategorySpaceRun && !f.Preserved {
			t.Errorf("space run not marked preserved: %+v", f)
		}
	}

	collapsed, _ := Clean(in, types.WatermarksConfig{PreserveSpaces: false})
	if collapsed != "a b c" {
		t.Errorf("collapsed = %q", collapsed)
	}
}

func TestCleanPlainTextUntouched(t *testing.T) {
	in := "Plain ASCII text, nothing to see.\nSecond line."
	cleaned, report := Clean(in, types.WatermarksConfig{PreserveSpaces: true})

	if cleaned != in {
		t.Errorf("cleaned = %q", cleaned)
	}
	if len(report.Findings) != 0 {
		t.Errorf("findings = %+v", report.Findings)
	}
	if report.Removed != 0 {
		t.Errorf("removed = %d", report.Removed)
	}
}

func TestAnalyzeIntervalPattern(t *testing.T) {
	// A zero-width space every 5 characters looks deliberate.
	var b strings.Builder
	for i := 0; i < 6; i++ {
		b.WriteString("abcd\u200b")
	}
	_, report := Clean(b.String(), types.WatermarksConfig{PreserveSpaces: true})

	if len(report.Patterns) != 1 {
		t.Fatalf("patterns = %+v", report.Patterns)
	}
	p := report.Patterns[0]
	if p.Codepoint != "U+200B" || p.Interval != 5 {
		t.Errorf("pattern = %+v", p)
	}
	if p.Consistency < 0.99 {
		t.Errorf("consistency = %f", p.Consistency)
	}
}

func TestAnalyzeBinaryEncoding(t *testing.T) {
	// Two distinct invisible characters, eight or more occurrences: the
	// shape of a binary-encoded payload.
	var b strings.Builder
	for i := 0; i < 4; i++ {
		b.WriteString("x\u200bx\u200c")
	}
	_, report := Clean(b.String(), types.WatermarksConfig{PreserveSpaces: true})

	if !report.BinaryEncoding {
		t.Error("binary encoding not detected")
	}

	_, report = Clean("x\u200bx", types.WatermarksConfig{PreserveSpaces: true})
	if report.BinaryEncoding {
		t.Error("binary encoding misdetected for a single occurrence")
	}
}

func TestSummary(t *testing.T) {
	_, report := Clean("in\u200bvisible с\u043ede  here", types.WatermarksConfig{PreserveSpaces: true})
	out := Summary(report)

	for _, want := range []string{
		string(types.CategoryInvisible) + ":",
		string(types.CategoryHomoglyph) + ":",
		"removed:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}
