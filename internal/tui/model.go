// Package tui provides the interactive Bubble Tea front-end: one text
// input, Enter to check, and an output region owned by the client.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Alfex4936/corrector/corrector"
	"github.com/Alfex4936/corrector/internal/render"
)

// Checker is the part of corrector.Client the TUI drives.
type Checker interface {
	SubmitCheck(ctx context.Context, rawInput string) corrector.Outcome
}

// Model implements the Bubble Tea correction UI.
type Model struct {
	ctx     context.Context
	checker Checker
	out     *Output

	input textinput.Model
	spin  spinner.Model
	state corrector.State

	width  int
	height int
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	badgeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#1E1E1E")).Background(lipgloss.Color("#7FB069")).Padding(0, 1)
	wordStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	regionStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444")).Padding(0, 1)
	defaultWidth = 80
)

// NewModel constructs the TUI. out must be the Output the checker was
// built with.
func NewModel(ctx context.Context, checker Checker, out *Output) *Model {
	ti := textinput.New()
	ti.Placeholder = "Type a word or sentence"
	ti.Prompt = "› "
	ti.CharLimit = 2000
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		ctx:     ctx,
		checker: checker,
		out:     out,
		input:   ti,
		spin:    sp,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.out.Next())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.out.Close()
			return m, tea.Quit
		case tea.KeyEnter:
			return m, m.submit(m.input.Value())
		}
	case stateMsg:
		m.state = corrector.State(msg)
		cmds := []tea.Cmd{m.out.Next()}
		if m.state.Phase == corrector.PhaseChecking {
			cmds = append(cmds, m.spin.Tick)
		}
		return m, tea.Batch(cmds...)
	case spinner.TickMsg:
		if m.state.Phase != corrector.PhaseChecking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs the check off the UI loop. The client reports progress
// through Output, so the command itself produces no message.
func (m *Model) submit(text string) tea.Cmd {
	ctx, checker := m.ctx, m.checker
	return func() tea.Msg {
		checker.SubmitCheck(ctx, text)
		return nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	inner := width - 4
	if inner < 10 {
		inner = 10
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("corrector") + "\n\n")
	b.WriteString(m.input.View() + "\n\n")
	b.WriteString(regionStyle.Width(inner).Render(m.region(inner-2)) + "\n")
	b.WriteString(hintStyle.Render("enter: check · esc: quit"))
	return b.String()
}

// region renders the output area for the current state.
func (m *Model) region(width int) string {
	switch m.state.Phase {
	case corrector.PhaseChecking:
		return m.spin.View() + " Checking…"
	case corrector.PhaseError:
		return errorStyle.Render(m.state.Message)
	case corrector.PhaseResult:
		if m.state.Display != nil {
			return renderDisplay(m.state.Display, width)
		}
	}
	return hintStyle.Render("Results appear here.")
}

func renderDisplay(d *render.Display, width int) string {
	lines := []string{
		field("Original:", d.Summary.Original, width),
		labelStyle.Render("Best suggestion:") + " " +
			valueStyle.Render(fit(render.Clean(d.Summary.BestSuggestion), width-len("Best suggestion: ")-len(d.Summary.Confidence)-3)) +
			" " + badgeStyle.Render(d.Summary.Confidence),
		field("Grammar corrected:", d.Grammar, width),
	}
	for _, w := range d.Words {
		lines = append(lines,
			"",
			wordStyle.Render(fit(render.Clean(w.Original), width)),
			field("  Correction:", orNone(w.Correction), width),
			field("  Spell:", orNone(w.SpellCandidates), width),
			field("  Fuzzy:", orNone(w.FuzzyCandidates), width),
		)
	}
	return strings.Join(lines, "\n")
}

func field(label, value string, width int) string {
	return labelStyle.Render(label) + " " + valueStyle.Render(fit(render.Clean(value), width-runewidth.StringWidth(label)-1))
}

// fit truncates s to width display cells.
func fit(s string, width int) string {
	if width < 1 {
		width = 1
	}
	return runewidth.Truncate(s, width, "…")
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
