package journal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	sessionlogdto "sprintbell/internal/modules/sessionlog/dto"
	"sprintbell/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Stats(ctx context.Context) (sessionlogdto.StatsOutput, error)
	Report(ctx context.Context, day time.Time) (string, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Stats  sessionlogdto.StatsOutput
	Report string
	Err    error
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model shows aggregate stats and today's markdown report.
type Model struct {
	port     Port
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	stats    sessionlogdto.StatsOutput
	report   string
	err      error
	loading  bool
	width    int
	height   int
}

func New(port Port) Model {
	vp := viewport.New(0, 0)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(0),
	)

	return Model{
		port:     port,
		viewport: vp,
		spinner:  sp,
		renderer: r,
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.width
		m.viewport.Height = max(1, m.height-3)
		m.viewport.SetContent(m.renderContent())

	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		m.stats = msg.Stats
		m.report = msg.Report
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoTop()

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	var vCmd tea.Cmd
	m.viewport, vCmd = m.viewport.Update(msg)
	cmds = append(cmds, vCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading journal…")
	}
	header := theme.Title.Render("Journal") + "  " + theme.Muted.Render(m.statsLine())
	return lipgloss.JoinVertical(lipgloss.Left, header, "", m.viewport.View())
}

// Refresh reloads stats and today's report.
func (m *Model) Refresh() tea.Cmd {
	m.loading = true
	port := m.port
	load := func() tea.Msg {
		if port == nil {
			return LoadedMsg{}
		}
		ctx := context.Background()
		stats, err := port.Stats(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		report, err := port.Report(ctx, time.Now())
		return LoadedMsg{Stats: stats, Report: report, Err: err}
	}
	return tea.Batch(load, m.spinner.Tick)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) statsLine() string {
	s := m.stats
	return fmt.Sprintf("%d sessions · %d completed · %d interrupted · %s focused",
		s.Sessions, s.Completed, s.Interrupted, formatFocus(s.FocusedSeconds))
}

func (m Model) renderContent() string {
	if m.err != nil {
		return theme.Hot.Render("journal: " + m.err.Error())
	}
	if strings.TrimSpace(m.report) == "" {
		return theme.Muted.Render("No sessions logged today")
	}
	if m.renderer == nil {
		return m.report
	}
	out, err := m.renderer.Render(m.report)
	if err != nil {
		return m.report
	}
	return out
}

func formatFocus(seconds int) string {
	d := time.Duration(seconds) * time.Second
	return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
}
