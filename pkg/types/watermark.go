// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// WatermarkCategory classifies a detected watermarking technique.
type WatermarkCategory string

const (
	CategoryInvisible  WatermarkCategory = "invisible-character"
	CategoryHomoglyph  WatermarkCategory = "homoglyph"
	CategoryWhitespace WatermarkCategory = "whitespace-variation"
	CategoryControl    WatermarkCategory = "control-character"
	CategorySpaceRun   WatermarkCategory = "multiple-spaces"
)

// WatermarkFinding records one detected watermark character with its context.
type WatermarkFinding struct {
	// Position is the rune offset in the original text.
	Position int `json:"position" yaml:"position"`

	// Rune is the offending character (or space run).
	Rune string `json:"rune" yaml:"rune"`

	// Codepoint is the U+XXXX notation for the character.
	Codepoint string `json:"codepoint" yaml:"codepoint"`

	// Name is the Unicode character name.
	Name string `json:"name" yaml:"name"`

	// Category classifies the watermarking technique.
	Category WatermarkCategory `json:"category" yaml:"category"`

	// Replacement is the substituted text; "" means the character was removed.
	Replacement string `json:"replacement" yaml:"replacement"`

	// Preserved is true for findings reported but left in the output
	// (space runs when preservation is enabled).
	Preserved bool `json:"preserved,omitempty" yaml:"preserved,omitempty"`

	// Before and After give the surrounding text.
	Before string `json:"before" yaml:"before"`
	After  string `json:"after" yaml:"after"`
}

// IntervalPattern describes a consistent spacing between occurrences of one
// watermark character, a signature of deliberate encoding.
type IntervalPattern struct {
	Codepoint   string  `json:"codepoint" yaml:"codepoint"`
	Interval    int     `json:"interval" yaml:"interval"`
	Consistency float64 `json:"consistency" yaml:"consistency"`
	Count       int     `json:"count" yaml:"count"`
}

// WatermarkReport summarizes a watermark analysis run.
type WatermarkReport struct {
	// Findings lists every detected character in original-position order.
	Findings []WatermarkFinding `json:"findings" yaml:"findings"`

	// Totals counts findings per category.
	Totals map[WatermarkCategory]int `json:"totals" yaml:"totals"`

	// Removed is the number of characters stripped or replaced.
	Removed int `json:"removed" yaml:"removed"`

	// Patterns lists detected interval patterns; a non-empty list suggests
	// the watermark encodes data.
	Patterns []IntervalPattern `json:"patterns,omitempty" yaml:"patterns,omitempty"`

	// BinaryEncoding is true when exactly two invisible characters alternate
	// through the text, consistent with bit-level encoding.
	BinaryEncoding bool `json:"binary_encoding,omitempty" yaml:"binary_encoding,omitempty"`
}
