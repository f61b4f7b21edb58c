package display

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"violin-fingering/fingering"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	currentNoteStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#00FFFF"))

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC"))

	restStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555"))

	shiftStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6666"))
)

// PreviewModel is the Bubble Tea model for a read-only scroll through a
// solved fingering: the current note highlighted, with a lookahead of
// upcoming notes below it. It owns no solver state and drives no
// playback clock — advancing is purely user-paced (left/right/space), in
// keeping with the solver's non-goal of temporal feasibility.
type PreviewModel struct {
	title   string
	bpm     float64
	out     fingering.Output
	cursor  int // index into out.Events
	window  int // how many events to show at once
	quitting bool
}

// NewPreviewModel constructs a preview over a solved Output.
func NewPreviewModel(title string, bpm float64, out fingering.Output) *PreviewModel {
	return &PreviewModel{title: title, bpm: bpm, out: out, window: 12}
}

func (m *PreviewModel) Init() tea.Cmd {
	return nil
}

func (m *PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "left", "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "right", "down", "j", " ":
			if m.cursor < len(m.out.Events)-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = len(m.out.Events) - 1
		}
	}
	return m, nil
}

func (m *PreviewModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("  ")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%.0f BPM · total cost %.3f", m.bpm, m.out.TotalCost)))
	b.WriteString("\n\n")

	start := m.cursor
	end := start + m.window
	if end > len(m.out.Events) {
		end = len(m.out.Events)
	}

	var prevAnchor = -1
	if start > 0 {
		for i := start - 1; i >= 0; i-- {
			if m.out.Events[i].Type == "N" {
				prevAnchor = m.out.Events[i].AnchorSemitones
				break
			}
		}
	}

	for i := start; i < end; i++ {
		ev := m.out.Events[i]
		line := m.renderLine(ev, prevAnchor)
		if i == m.cursor {
			b.WriteString(currentNoteStyle.Render("▶ " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
		if ev.Type == "N" {
			prevAnchor = ev.AnchorSemitones
		}
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render("←/→ step through notes · q to quit"))
	return b.String()
}

// renderLine renders one FingeringItem, flagging an anchor shift from
// the previous sounded note in red — a purely visual cue, not a solver
// decision.
func (m *PreviewModel) renderLine(ev fingering.FingeringItem, prevAnchor int) string {
	if ev.Type == "R" {
		return restStyle.Render(fmt.Sprintf("rest  %.2f beats", ev.DurationBeats))
	}

	base := fmt.Sprintf("%-4s  string=%s  finger=%d  stop=%2d  anchor=%2d  shape=(%d,%d,%d)",
		ev.Note, ev.String, ev.Finger, ev.StopSemitones, ev.AnchorSemitones, ev.O2, ev.O3, ev.O4)

	if prevAnchor != -1 && ev.AnchorSemitones != prevAnchor {
		return shiftStyle.Render(base + "  [shift]")
	}
	return noteStyle.Render(base)
}
