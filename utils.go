package scrim

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// span describes a leading or trailing slice of a string: its size in
// bytes and its printed width in cells
type span struct {
	length int
	width  int
}

// simplePrefix returns the longest grapheme prefix of text that is no
// wider than available cells. Never cuts inside a grapheme.
func simplePrefix(text string, available int) span {
	var sp span
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		w := runewidth.StringWidth(cluster)
		if sp.width+w > available {
			break
		}
		sp.width += w
		sp.length += len(cluster)
	}
	return sp
}

// simpleSuffix returns the longest grapheme suffix of text that is no
// wider than available cells
func simpleSuffix(text string, available int) span {
	var clusters []string
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		clusters = append(clusters, g.Str())
	}
	var sp span
	for i := len(clusters) - 1; i >= 0; i-- {
		w := runewidth.StringWidth(clusters[i])
		if sp.width+w > available {
			break
		}
		sp.width += w
		sp.length += len(clusters[i])
	}
	return sp
}

// firstGrapheme returns the grapheme cluster starting at the front of
// text, empty when text is empty
func firstGrapheme(text string) string {
	g := uniseg.NewGraphemes(text)
	if g.Next() {
		return g.Str()
	}
	return ""
}

// lastGrapheme returns the grapheme cluster ending the text, empty when
// text is empty
func lastGrapheme(text string) string {
	var last string
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		last = g.Str()
	}
	return last
}
