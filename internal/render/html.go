package render

import (
	"bytes"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Labels shared by the HTML and text sinks.
const (
	labelOriginal   = "Original:"
	labelBest       = "Best suggestion:"
	labelGrammar    = "Grammar corrected:"
	labelPerWord    = "Per word"
	labelCorrection = "Correction:"
	labelSpell      = "Spell candidates:"
	labelFuzzy      = "Fuzzy candidates:"
	none            = "(none)"
)

// HTML renders the display as a fragment rooted at <div class="result">.
func (d *Display) HTML() string {
	var buf bytes.Buffer
	// Render only fails on writer errors; bytes.Buffer has none.
	_ = html.Render(&buf, d.Node())
	return buf.String()
}

// Node builds the DOM tree of the display. Server text only ever lands in
// text nodes.
func (d *Display) Node() *html.Node {
	summary := elem(atom.Section, "summary",
		field(atom.P, labelOriginal, text(d.Summary.Original)),
		field(atom.P, labelBest,
			text(d.Summary.BestSuggestion),
			text(" ("),
			elem(atom.Span, "badge", text(d.Summary.Confidence)),
			text(")"),
		),
	)
	grammar := elem(atom.Section, "grammar", field(atom.P, labelGrammar, text(d.Grammar)))

	root := elem(atom.Div, "result", summary, grammar)
	if len(d.Words) == 0 {
		return root
	}

	perWord := elem(atom.Section, "per-word", elem(atom.H3, "", text(labelPerWord)))
	for _, w := range d.Words {
		perWord.AppendChild(elem(atom.Div, "word",
			elem(atom.H4, "", text(w.Original)),
			elem(atom.Ul, "",
				field(atom.Li, labelCorrection, text(orNone(w.Correction))),
				field(atom.Li, labelSpell, text(orNone(w.SpellCandidates))),
				field(atom.Li, labelFuzzy, text(orNone(w.FuzzyCandidates))),
			),
		))
	}
	root.AppendChild(perWord)
	return root
}

// field is <tag><strong>label</strong> value...</tag>.
func field(tag atom.Atom, label string, value ...*html.Node) *html.Node {
	n := elem(tag, "", elem(atom.Strong, "", text(label)), text(" "))
	for _, v := range value {
		n.AppendChild(v)
	}
	return n
}

func elem(tag atom.Atom, class string, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: tag, Data: tag.String()}
	if class != "" {
		n.Attr = []html.Attribute{{Key: "class", Val: class}}
	}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func text(s string) *html.Node { return &html.Node{Type: html.TextNode, Data: s} }

func orNone(s string) string {
	if s == "" {
		return none
	}
	return s
}
