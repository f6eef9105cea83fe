// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watermarks detects and strips text watermarking techniques:
// invisible Unicode characters, homoglyph substitutions, exotic whitespace,
// and control characters. Every removal is recorded with its position and
// surrounding context, and occurrence intervals are analyzed for signs of
// deliberate data encoding.
package watermarks

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/KusmierczykHobbyPrjs/sci-tools/pkg/types"
)

// invisibleChars are zero-width and joiner characters with no visual effect.
var invisibleChars = map[rune]string{
	'​': "Zero Width Space",
	'‌': "Zero Width Non-Joiner",
	'‍': "Zero Width Joiner",
	' ': "Narrow No-Break Space",
	'⁠': "Word Joiner",
	'\uFEFF': "Zero Width No-Break Space",
}

// homoglyph is a character that renders like a latin letter.
type homoglyph struct {
	repl string
	name string
}

// homoglyphs maps lookalike characters to their latin replacements.
var homoglyphs = map[rune]homoglyph{
	// Cyrillic letters that render like latin.
	'а': {"a", "Cyrillic small letter a"},
	'е': {"e", "Cyrillic small letter ie"},
	'о': {"o", "Cyrillic small letter o"},
	'р': {"p", "Cyrillic small letter er"},
	'с': {"c", "Cyrillic small letter es"},
	'х': {"x", "Cyrillic small letter ha"},
	'В': {"B", "Cyrillic capital letter ve"},
	'Н': {"H", "Cyrillic capital letter en"},
	'М': {"M", "Cyrillic capital letter em"},
	'К': {"K", "Cyrillic capital letter ka"},

	// Mathematical alphanumerics.
	'𝐚': {"a", "Mathematical bold small a"},
	'𝐛': {"b", "Mathematical bold small b"},
	'𝐀': {"A", "Mathematical bold capital A"},
	'𝐁': {"B", "Mathematical bold capital B"},
	'𝑎': {"a", "Mathematical italic small a"},
	'𝑏': {"b", "Mathematical italic small b"},
	'𝒂': {"a", "Mathematical bold italic small a"},
	'𝒃': {"b", "Mathematical bold italic small b"},

	// Other common lookalikes.
	'ɑ': {"a", "Latin small letter alpha"},
	'ℯ': {"e", "Script small e"},
	'ｉ': {"i", "Fullwidth latin small letter i"},
	'ｏ': {"o", "Fullwidth latin small letter o"},
}

// spaceVariants are whitespace characters replaced with a plain space.
var spaceVariants = map[rune]string{
	' ': "Non-Breaking Space",
	' ': "En Quad",
	' ': "Em Quad",
	' ': "En Space",
	' ': "Em Space",
	' ': "Three-Per-Em Space",
	' ': "Four-Per-Em Space",
	' ': "Six-Per-Em Space",
	' ': "Figure Space",
	' ': "Punctuation Space",
	' ': "Thin Space",
	' ': "Hair Space",
	' ': "Line Separator",
	' ': "Paragraph Separator",
	' ': "Medium Mathematical Space",
	'　': "Ideographic Space",
}

// spaceRuns matches two or more consecutive plain spaces.
var spaceRuns = regexp.MustCompile(` {2,}`)

const contextSize = 20

// Clean analyzes text for watermarks and returns the cleaned text together
// with a full report. Space runs are reported but preserved unless
// preservation is disabled in cfg.
func Clean(text string, cfg types.WatermarksConfig) (string, *types.WatermarkReport) {
	report := &types.WatermarkReport{
		Totals: make(map[types.WatermarkCategory]int),
	}

	runes := []rune(text)
	var out []rune

	record := func(pos int, r rune, name string, cat types.WatermarkCategory, repl string) {
		report.Findings = append(report.Findings, types.WatermarkFinding{
			Position:    pos,
			Rune:        string(r),
			Codepoint:   fmt.Sprintf("U+%04X", r),
			Name:        name,
			Category:    cat,
			Replacement: repl,
			Before:      contextBefore(runes, pos),
			After:       contextAfter(runes, pos),
		})
		report.Totals[cat]++
		if repl != string(r) {
			report.Removed++
		}
	}

	for pos, r := range runes {
		switch {
		case invisibleChars[r] != "":
			record(pos, r, invisibleChars[r], types.CategoryInvisible, "")
		case homoglyphs[r].repl != "":
			h := homoglyphs[r]
			record(pos, r, h.name, types.CategoryHomoglyph, h.repl)
			out = append(out, []rune(h.repl)...)
		case spaceVariants[r] != "":
			record(pos, r, spaceVariants[r], types.CategoryWhitespace, " ")
			out = append(out, ' ')
		case isControl(r):
			record(pos, r, fmt.Sprintf("Control character (0x%02X)", r), types.CategoryControl, "")
		default:
			out = append(out, r)
		}
	}

	cleaned := string(out)
	cleaned = reportSpaceRuns(cleaned, cfg, report)

	analyzePatterns(report)
	return cleaned, report
}

// isControl reports control characters excluding tab, newline, and
// carriage return.
func isControl(r rune) bool {
	switch {
	case r >= 0x00 && r <= 0x08, r == 0x0B, r == 0x0C,
		r >= 0x0E && r <= 0x1F, r >= 0x7F && r <= 0x9F:
		return true
	}
	return false
}

// reportSpaceRuns records runs of multiple spaces in the cleaned text,
// collapsing them when preservation is off.
func reportSpaceRuns(cleaned string, cfg types.WatermarksConfig, report *types.WatermarkReport) string {
	runes := []rune(cleaned)
	for _, loc := range spaceRuns.FindAllStringIndex(cleaned, -1) {
		run := cleaned[loc[0]:loc[1]]
		pos := len([]rune(cleaned[:loc[0]]))
		repl := run
		if !cfg.PreserveSpaces {
			repl = " "
		}
		report.Findings = append(report.Findings, types.WatermarkFinding{
			Position:    pos,
			Rune:        run,
			Codepoint:   "N/A",
			Name:        fmt.Sprintf("Multiple Spaces (%d spaces)", len(run)),
			Category:    types.CategorySpaceRun,
			Replacement: repl,
			Preserved:   cfg.PreserveSpaces,
			Before:      contextBefore(runes, pos),
			After:       contextAfter(runes, pos),
		})
		report.Totals[types.CategorySpaceRun]++
	}

	if !cfg.PreserveSpaces {
		cleaned = spaceRuns.ReplaceAllString(cleaned, " ")
	}
	return cleaned
}

func contextBefore(runes []rune, pos int) string {
	start := pos - contextSize
	if start < 0 {
		start = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	return string(runes[start:pos])
}

func contextAfter(runes []rune, pos int) string {
	if pos >= len(runes) {
		return ""
	}
	end := pos + contextSize + 1
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[pos:end])
}

// analyzePatterns looks for consistent spacing between occurrences of each
// watermark character, and for a two-character invisible alphabet
// suggestive of binary encoding.
func analyzePatterns(report *types.WatermarkReport) {
	positions := make(map[string][]int)
	invisible := make(map[string]int)

	for _, f := range report.Findings {
		if f.Preserved {
			continue
		}
		positions[f.Codepoint] = append(positions[f.Codepoint], f.Position)
		if f.Category == types.CategoryInvisible {
			invisible[f.Codepoint]++
		}
	}

	codepoints := make([]string, 0, len(positions))
	for cp := range positions {
		codepoints = append(codepoints, cp)
	}
	sort.Strings(codepoints)

	for _, cp := range codepoints {
		pos := positions[cp]
		if len(pos) < 4 {
			continue
		}
		intervals := make(map[int]int)
		for i := 1; i < len(pos); i++ {
			intervals[pos[i]-pos[i-1]]++
		}
		best, bestCount := 0, 0
		for interval, count := range intervals {
			if count > bestCount {
				best, bestCount = interval, count
			}
		}
		consistency := float64(bestCount) / float64(len(pos)-1)
		if consistency >= 0.6 {
			report.Patterns = append(report.Patterns, types.IntervalPattern{
				Codepoint:   cp,
				Interval:    best,
				Consistency: consistency,
				Count:       bestCount,
			})
		}
	}

	total := 0
	for _, n := range invisible {
		total += n
	}
	report.BinaryEncoding = len(invisible) == 2 && total >= 8
}

// Summary renders a short human-readable report.
func Summary(report *types.WatermarkReport) string {
	var b strings.Builder

	cats := make([]string, 0, len(report.Totals))
	for c := range report.Totals {
		cats = append(cats, string(c))
	}
	sort.Strings(cats)

	for _, c := range cats {
		fmt.Fprintf(&b, "%-22s %d\n", c+":", report.Totals[types.WatermarkCategory(c)])
	}
	fmt.Fprintf(&b, "%-22s %d\n", "removed:", report.Removed)
	for _, p := range report.Patterns {
		fmt.Fprintf(&b, "interval pattern: %s every %d chars (%.0f%% consistent)\n",
			p.Codepoint, p.Interval, p.Consistency*100)
	}
	if report.BinaryEncoding {
		b.WriteString("two-character invisible alphabet detected: possible binary encoding\n")
	}
	return b.String()
}
