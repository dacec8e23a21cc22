package render

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// Text renders the display for a terminal.
//
//	Original: helo wrld
//	Best suggestion: hello world (82%)
//	Grammar corrected: Hello world.
//
//	Per word:
//	  helo
//	    Correction: hello
//	    ...
func (d *Display) Text() string {
	var b strings.Builder
	line(&b, "", labelOriginal, d.Summary.Original)
	line(&b, "", labelBest, BestWithBadge(d.Summary))
	line(&b, "", labelGrammar, d.Grammar)
	if len(d.Words) == 0 {
		return b.String()
	}
	b.WriteString("\n" + labelPerWord + ":\n")
	for _, w := range d.Words {
		b.WriteString("  " + Clean(w.Original) + "\n")
		line(&b, "    ", labelCorrection, orNone(Clean(w.Correction)))
		line(&b, "    ", labelSpell, orNone(Clean(w.SpellCandidates)))
		line(&b, "    ", labelFuzzy, orNone(Clean(w.FuzzyCandidates)))
	}
	return b.String()
}

// BestWithBadge is "hello world (82%)", cleaned for a terminal.
func BestWithBadge(s Summary) string {
	return Clean(s.BestSuggestion) + " (" + s.Confidence + ")"
}

// Clean strips escape sequences and control characters from server text
// so it cannot drive the terminal. Newlines collapse to spaces.
func Clean(s string) string {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\t", " ").Replace(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, ansi.Strip(s))
}

func line(b *strings.Builder, indent, label, value string) {
	b.WriteString(indent + label + " " + Clean(value) + "\n")
}
