// Package cashbook turns aggregated fiscal-year day records into
// print-ready row pairs, lays them out onto fixed-geometry pages, and
// assembles the statutory reports as abstract draw instructions.
package cashbook

import "github.com/rivo/uniseg"

// FontMetrics measures rendered text width. Layout depends on it for
// wrapping and right-alignment; the PDF sink supplies real glyph metrics
// when available.
type FontMetrics interface {
	WidthOfTextAtSize(text string, size float64, bold bool) float64
}

// SarabunMetrics approximates TH Sarabun New advance widths per grapheme
// cluster. Combining marks (vowels above/below, tone marks) take no
// horizontal space; Thai base consonants run slightly wider than half an em.
type SarabunMetrics struct{}

const (
	thaiBaseRatio  = 0.46
	latinRatio     = 0.42
	digitRatio     = 0.45
	spaceRatio     = 0.26
	narrowRatio    = 0.24
	boldWidthBonus = 1.03
)

// WidthOfTextAtSize implements FontMetrics.
func (SarabunMetrics) WidthOfTextAtSize(text string, size float64, bold bool) float64 {
	var w float64
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		w += clusterRatio(gr.Runes()) * size
	}
	if bold {
		w *= boldWidthBonus
	}
	return w
}

func clusterRatio(runes []rune) float64 {
	if len(runes) == 0 {
		return 0
	}
	r := runes[0]
	switch {
	case r == ' ':
		return spaceRatio
	case r >= '0' && r <= '9':
		return digitRatio
	case r == '.' || r == ',' || r == '-' || r == '(' || r == ')' || r == '/':
		return narrowRatio
	case isThaiCombining(r):
		return 0
	case r >= 0x0E00 && r <= 0x0E7F:
		return thaiBaseRatio
	default:
		return latinRatio
	}
}

// isThaiCombining reports whether the rune is a zero-advance Thai mark:
// upper/lower vowels, tone marks, thanthakhat.
func isThaiCombining(r rune) bool {
	switch {
	case r == 0x0E31:
		return true
	case r >= 0x0E34 && r <= 0x0E3A:
		return true
	case r >= 0x0E47 && r <= 0x0E4E:
		return true
	}
	return false
}
