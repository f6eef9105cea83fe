// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"regexp"
	"strings"
)

// greekLetters maps Greek codepoints to LaTeX macros. Omicron has no macro;
// it renders as a latin o.
var greekLetters = map[rune]string{
	'α': `\alpha`, 'β': `\beta`, 'γ': `\gamma`, 'δ': `\delta`,
	'ε': `\epsilon`, 'ζ': `\zeta`, 'η': `\eta`, 'θ': `\theta`,
	'ι': `\iota`, 'κ': `\kappa`, 'λ': `\lambda`, 'μ': `\mu`,
	'ν': `\nu`, 'ξ': `\xi`, 'ο': "o", 'π': `\pi`,
	'ρ': `\rho`, 'σ': `\sigma`, 'τ': `\tau`, 'υ': `\upsilon`,
	'φ': `\phi`, 'χ': `\chi`, 'ψ': `\psi`, 'ω': `\omega`,
	'Γ': `\Gamma`, 'Δ': `\Delta`, 'Θ': `\Theta`, 'Λ': `\Lambda`,
	'Ξ': `\Xi`, 'Π': `\Pi`, 'Σ': `\Sigma`, 'Υ': `\Upsilon`,
	'Φ': `\Phi`, 'Ψ': `\Psi`, 'Ω': `\Omega`,
}

// bareSubscript matches a subscript whose argument is a single unbraced
// character.
var bareSubscript = regexp.MustCompile(`_([a-zA-Z0-9])`)

// equalsSpacing normalizes whitespace around an equals sign. Collapse and
// re-pad in one pass so applying it twice is a no-op; the output must
// survive another parse-render cycle unchanged.
var equalsSpacing = regexp.MustCompile(`[ \t]*=[ \t]*`)

// relations lists the operators whose thin-space decorations (\; \, ;) are
// flattened to plain spacing.
var relations = []string{"=", "|", `\le`, `\ge`, `\|`, "-"}

// NormalizeMath cleans a math payload: escaped underscores are unescaped,
// Greek codepoints become macros, bare subscripts gain braces, and common
// decoration noise (\left, \right, \!, thin-space padding) is flattened.
// The result is stable under repeated application.
func NormalizeMath(s string) string {
	s = strings.ReplaceAll(s, `\_`, "_")

	var b strings.Builder
	for _, r := range s {
		if macro, ok := greekLetters[r]; ok {
			b.WriteString(macro)
			continue
		}
		b.WriteRune(r)
	}
	s = b.String()

	s = bareSubscript.ReplaceAllString(s, "_{$1}")
	s = simplifyEquation(s)
	return strings.TrimSpace(s)
}

// simplifyEquation removes sizing and spacing commands that add noise
// without changing the rendered equation.
func simplifyEquation(s string) string {
	s = strings.ReplaceAll(s, `\left(`, "(")
	s = strings.ReplaceAll(s, `\right)`, ")")
	s = strings.ReplaceAll(s, `\left[`, "[")
	s = strings.ReplaceAll(s, `\right]`, "]")
	s = strings.ReplaceAll(s, `\left{`, "{")
	s = strings.ReplaceAll(s, `\right}`, "}")
	s = strings.ReplaceAll(s, `\!`, "")
	s = strings.ReplaceAll(s, `)\,`, ")")

	for _, rel := range relations {
		for _, pad := range []string{";", `\;`, `\,`} {
			s = strings.ReplaceAll(s, "\n"+pad+rel+pad, " "+rel+" ")
			s = strings.ReplaceAll(s, pad+rel+pad, " "+rel+" ")
		}
	}
	s = equalsSpacing.ReplaceAllString(s, " = ")

	s = strings.ReplaceAll(s, "·", `\cdot `)
	s = strings.ReplaceAll(s, "…", `\ldots `)
	s = strings.ReplaceAll(s, "*", `\ast `)
	return s
}

// escapeMathUnderscores escapes every underscore in a math payload. The
// markdown previewer in Google Docs would otherwise treat x_i as the start
// of italics; the Auto-LaTeX add-on strips the escapes back out.
func escapeMathUnderscores(s string) string {
	return strings.ReplaceAll(s, "_", `\_`)
}
