// Package render turns a correction response into a display model and
// writes it out as an HTML fragment or as terminal text.
//
// Display keeps server strings raw. Escaping happens at the sinks:
// HTML is produced as a DOM tree, so every text node is escaped by the
// encoder, and Text strips terminal control sequences.
package render

import (
	"strconv"
	"strings"

	"github.com/Alfex4936/corrector/internal/model"
)

// Display is the presentation of one response.
type Display struct {
	Summary Summary
	Grammar string
	Words   []Word // empty when the response carried no per-word breakdown
}

// Summary is the single best-suggestion block.
type Summary struct {
	Original       string
	BestSuggestion string
	Confidence     string // badge text, e.g. "82%"
}

// Word is one per-word block.
type Word struct {
	Original        string
	Correction      string
	SpellCandidates string // comma-joined, server order
	FuzzyCandidates string // "word (score%)" pairs, comma-joined, server order
}

// Build maps res onto a Display. It is pure: equal responses give equal displays.
func Build(res *model.Response) *Display {
	d := &Display{
		Summary: Summary{
			Original:       res.Original,
			BestSuggestion: res.BestSuggestion,
			Confidence:     Percent(res.Confidence),
		},
		Grammar: res.GrammarCorrected,
	}
	if len(res.PerWord) == 0 {
		return d
	}
	d.Words = make([]Word, 0, len(res.PerWord))
	for _, w := range res.PerWord {
		d.Words = append(d.Words, Word{
			Original:        w.Original,
			Correction:      w.SpellCorrection,
			SpellCandidates: strings.Join(w.SpellCandidates, ", "),
			FuzzyCandidates: fuzzyList(w.FuzzyCandidates),
		})
	}
	return d
}

// Percent formats a 0–100 score as "82%" (or "82.5%").
func Percent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

func fuzzyList(cands []model.FuzzyCandidate) string {
	if len(cands) == 0 {
		return ""
	}
	parts := make([]string, len(cands))
	for i, c := range cands {
		parts[i] = c.Word + " (" + Percent(c.Score) + ")"
	}
	return strings.Join(parts, ", ")
}
