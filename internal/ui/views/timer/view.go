package timer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	subgoaldto "sprintbell/internal/modules/subgoal/dto"
	timerdto "sprintbell/internal/modules/timer/dto"
	"sprintbell/internal/ui/theme"
)

// ─── model ───────────────────────────────────────────────────────────────────

// Model renders the countdown. It holds no ports: the app model pushes state
// in from timer events.
type Model struct {
	state    timerdto.StateOutput
	goals    subgoaldto.ListOutput
	progress progress.Model
	width    int
	height   int
}

func New() Model {
	bar := progress.New(
		progress.WithGradient(string(theme.Sapphire), string(theme.Lavender)),
		progress.WithoutPercentage(),
	)
	return Model{progress: bar}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = max(10, min(60, m.width-8))
	case progress.FrameMsg:
		pm, cmd := m.progress.Update(msg)
		if bar, ok := pm.(progress.Model); ok {
			m.progress = bar
		}
		return m, cmd
	}
	return m, nil
}

// SetState updates the countdown and animates the bar toward the new progress.
func (m *Model) SetState(state timerdto.StateOutput) tea.Cmd {
	m.state = state
	return m.progress.SetPercent(state.Progress)
}

func (m *Model) SetGoals(goals subgoaldto.ListOutput) {
	m.goals = goals
}

func (m Model) State() timerdto.StateOutput { return m.state }

func (m Model) View() string {
	s := m.state
	var sb strings.Builder

	sb.WriteString(theme.Title.Render(s.Title) + "\n\n")

	clock := theme.Clock.Foreground(theme.PhaseColor(s.Phase)).Render(formatClock(s.RemainingSeconds))
	sb.WriteString(clock + "\n\n")
	sb.WriteString(m.progress.View() + "\n\n")
	sb.WriteString(theme.Muted.Render(phaseLabel(s)) + "\n")

	if m.goals.Total > 0 {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("goals: %d/%d completed", m.goals.Completed, m.goals.Total)) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("space: start/pause  r: reset  n: new session"))

	box := theme.Pane.Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// ─── private ─────────────────────────────────────────────────────────────────

func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func phaseLabel(s timerdto.StateOutput) string {
	switch {
	case s.Phase == "completed":
		return "✅ session complete"
	case s.IsRunning:
		return "▶ running"
	case s.RemainingSeconds < s.TotalDurationSeconds:
		return "⏸ paused"
	default:
		return "ready"
	}
}
