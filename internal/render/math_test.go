// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import "testing"

func TestNormalizeMath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain equation unchanged", "x^2 + y^2 = z^2", "x^2 + y^2 = z^2"},
		{"escaped underscores unescaped", `x\_i + y\_j`, "x_{i} + y_{j}"},
		{"bare subscript braced", "a_i = b_j", "a_{i} = b_{j}"},
		{"braced subscript untouched", "a_{ij}", "a_{ij}"},
		{"greek codepoints to macros", "α + β", `\alpha + \beta`},
		{"omicron stays latin", "ο(n)", "o(n)"},
		{"equals gains padding", "a=b", "a = b"},
		{"equals padding collapsed", "a   =   b", "a = b"},
		{"left right removed", `\left( x \right)`, "( x )"},
		{"negative thin space removed", `a\!b`, "ab"},
		{"thin space after paren removed", `f(x)\, + 1`, "f(x) + 1"},
		{"semicolon padding around equals", "a;=;b", "a = b"},
		{"center dot to cdot", "a · b", `a \cdot  b`},
		{"ellipsis to ldots", "1, …", `1, \ldots`},
		{"star to ast", "a*b", `a\ast b`},
		{"surrounding space trimmed", "  x + y  ", "x + y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeMath(tt.in); got != tt.want {
				t.Errorf("NormalizeMath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeMathIdempotent(t *testing.T) {
	inputs := []string{
		"x^2 + y^2 = z^2",
		`x\_i + y\_j`,
		"α=β",
		`\left( a \right) = b`,
		"a;=;b",
		"f(x) = a · b",
	}

	for _, in := range inputs {
		once := NormalizeMath(in)
		twice := NormalizeMath(once)
		if once != twice {
			t.Errorf("NormalizeMath not stable for %q:\n once  %q\n twice %q", in, once, twice)
		}
	}
}
