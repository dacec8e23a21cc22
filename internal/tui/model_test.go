package tui

import (
	"context"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alfex4936/corrector/corrector"
	"github.com/Alfex4936/corrector/internal/model"
	"github.com/Alfex4936/corrector/internal/render"
)

type fakeChecker struct {
	mu    sync.Mutex
	texts []string
}

func (f *fakeChecker) SubmitCheck(_ context.Context, raw string) corrector.Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, raw)
	return corrector.Outcome{}
}

func newTestModel() (*Model, *fakeChecker) {
	fc := &fakeChecker{}
	return NewModel(context.Background(), fc, NewOutput()), fc
}

func TestEnterSubmitsInputText(t *testing.T) {
	m, fc := newTestModel()
	m.input.SetValue("helo wrld")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())
	assert.Equal(t, []string{"helo wrld"}, fc.texts)
}

func TestEnterWithBlankInputStillGoesThroughClient(t *testing.T) {
	m, fc := newTestModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, []string{""}, fc.texts)
}

func TestViewShowsCheckingState(t *testing.T) {
	m, _ := newTestModel()
	_, cmd := m.Update(stateMsg{Seq: 1, Phase: corrector.PhaseChecking})
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Checking…")
}

func TestViewShowsErrorMessage(t *testing.T) {
	m, _ := newTestModel()
	m.Update(stateMsg{Seq: 1, Phase: corrector.PhaseError, Message: corrector.MsgContactError})
	assert.Contains(t, m.View(), corrector.MsgContactError)
}

func TestViewShowsResult(t *testing.T) {
	m, _ := newTestModel()
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	d := render.Build(&model.Response{
		Original:         "helo wrld",
		BestSuggestion:   "hello world",
		Confidence:       82,
		GrammarCorrected: "Hello world.",
		PerWord: []model.PerWordSuggestion{{
			Original:        "helo",
			SpellCorrection: "hello",
			SpellCandidates: []string{"hello", "help"},
			FuzzyCandidates: []model.FuzzyCandidate{{Word: "hello", Score: 90}},
		}},
	})
	m.Update(stateMsg{Seq: 1, Phase: corrector.PhaseResult, Display: d})

	view := m.View()
	for _, want := range []string{"helo wrld", "hello world", "82%", "Hello world.", "hello, help", "hello (90%)"} {
		assert.Contains(t, view, want)
	}
}

func TestRenderDisplayTruncatesLongValues(t *testing.T) {
	d := &render.Display{
		Summary: render.Summary{Original: strings.Repeat("x", 200), BestSuggestion: "y", Confidence: "1%"},
	}
	out := renderDisplay(d, 40)
	assert.Contains(t, out, "…")
	assert.NotContains(t, out, strings.Repeat("x", 60))
}

func TestEscQuits(t *testing.T) {
	m, _ := newTestModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestOutputDeliversStates(t *testing.T) {
	out := NewOutput()
	out.Update(corrector.State{Seq: 7, Phase: corrector.PhaseChecking})

	msg := out.Next()()
	require.IsType(t, stateMsg{}, msg)
	assert.Equal(t, uint64(7), msg.(stateMsg).Seq)
}

func TestOutputAfterCloseDoesNotBlock(t *testing.T) {
	out := NewOutput()
	out.Close()
	out.Close()
	for i := 0; i < 32; i++ {
		out.Update(corrector.State{Seq: uint64(i)})
	}
	// buffered states may still be delivered; once drained Next returns nil.
	for i := 0; i < 32; i++ {
		if out.Next()() == nil {
			return
		}
	}
	t.Fatal("Next kept delivering after Close")
}
