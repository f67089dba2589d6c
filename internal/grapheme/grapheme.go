// Package grapheme measures and fits plain cell text in terminal cells.
package grapheme

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// ClusterWidth returns the terminal cell width of a single cluster.
// Zero-width clusters that uniseg still renders (some emoji sequences) fall
// back to uniseg's estimate.
func ClusterWidth(cluster string) int {
	w := runewidth.StringWidth(cluster)
	if w < 0 {
		w = 0
	}
	if w == 0 {
		if fallback := uniseg.StringWidth(cluster); fallback > w {
			w = fallback
		}
	}
	return w
}

// Width returns the terminal cell width of plain text. Newlines and tabs
// count as single cells since cells are single-line.
func Width(text string) int {
	w := 0
	for _, c := range Split(text) {
		if c == "\t" || c == "\n" || c == "\r\n" {
			w++
			continue
		}
		w += ClusterWidth(c)
	}
	return w
}

// Truncate cuts text to at most width cells, never splitting a cluster.
// When text is cut and tail fits, tail replaces the last cells.
func Truncate(text string, width int, tail string) string {
	if width <= 0 {
		return ""
	}
	if Width(text) <= width {
		return text
	}
	tw := Width(tail)
	if tw > width {
		tail, tw = "", 0
	}

	limit := width - tw
	var sb strings.Builder
	used := 0
	for _, c := range Split(text) {
		cw := ClusterWidth(c)
		if used+cw > limit {
			break
		}
		sb.WriteString(c)
		used += cw
	}
	sb.WriteString(tail)
	return sb.String()
}

// Flatten replaces control whitespace with spaces so text fits one line.
func Flatten(text string) string {
	if !strings.ContainsAny(text, "\t\r\n") {
		return text
	}
	r := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")
	return r.Replace(text)
}
