package cashbook

import (
	"strings"

	"github.com/rivo/uniseg"
)

// WrapText splits text into lines no wider than maxWidth at the given font
// size. Segmentation follows Unicode word boundaries so scripts without
// whitespace-delimited words, Thai in particular, still wrap at sensible
// points; a single segment wider than the column is force-split grapheme by
// grapheme so no input can overflow or loop.
func WrapText(m FontMetrics, text string, maxWidth, size float64, bold bool) []string {
	if text == "" {
		return []string{""}
	}
	if m.WidthOfTextAtSize(text, size, bold) <= maxWidth {
		return []string{text}
	}

	var lines []string
	var current string
	rest := text
	state := -1
	for rest != "" {
		var seg string
		seg, rest, state = uniseg.FirstWordInString(rest, state)
		candidate := current + seg
		if m.WidthOfTextAtSize(candidate, size, bold) <= maxWidth {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, strings.TrimRight(current, " "))
			current = strings.TrimLeft(seg, " ")
			if current == "" || m.WidthOfTextAtSize(current, size, bold) <= maxWidth {
				continue
			}
			seg = current
			current = ""
		}
		// Segment alone exceeds the column: split per grapheme cluster.
		lines = append(lines, splitClusters(m, seg, maxWidth, size, bold, &current)...)
	}
	if strings.TrimSpace(current) != "" {
		lines = append(lines, strings.TrimRight(current, " "))
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

// splitClusters hard-wraps an oversized segment. The trailing partial line
// is handed back through current so following segments can continue it.
func splitClusters(m FontMetrics, seg string, maxWidth, size float64, bold bool, current *string) []string {
	var lines []string
	var line string
	gr := uniseg.NewGraphemes(seg)
	for gr.Next() {
		cluster := gr.Str()
		if line != "" && m.WidthOfTextAtSize(line+cluster, size, bold) > maxWidth {
			lines = append(lines, line)
			line = ""
		}
		line += cluster
	}
	*current = line
	return lines
}

// LineCount returns how many wrapped lines the text needs, minimum one.
func LineCount(m FontMetrics, text string, maxWidth, size float64, bold bool) int {
	if text == "" {
		return 1
	}
	return len(WrapText(m, text, maxWidth, size, bold))
}
