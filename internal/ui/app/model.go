package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	commanddto "sprintbell/internal/modules/command/dto"
	sessionlogdto "sprintbell/internal/modules/sessionlog/dto"
	timerdto "sprintbell/internal/modules/timer/dto"
	"sprintbell/internal/ui/components"
	"sprintbell/internal/ui/theme"
	goalsview "sprintbell/internal/ui/views/goals"
	journalview "sprintbell/internal/ui/views/journal"
	timerview "sprintbell/internal/ui/views/timer"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type timerPort interface {
	State(ctx context.Context) timerdto.StateOutput
	Start(ctx context.Context) timerdto.StateOutput
	Stop(ctx context.Context) timerdto.StateOutput
	Toggle(ctx context.Context) timerdto.StateOutput
	Reset(ctx context.Context, input timerdto.ResetInput) (timerdto.StateOutput, error)
	NewSession(ctx context.Context, input timerdto.NewSessionInput) (timerdto.StateOutput, error)
	ForceSave(ctx context.Context)
	Subscribe(buffer int) (<-chan timerdto.EventOutput, func())
}

type goalsPort interface {
	goalsview.Port
	ClearAll(ctx context.Context) error
	MarkAllCompleted(ctx context.Context) error
}

type journalPort interface {
	Stats(ctx context.Context) (sessionlogdto.StatsOutput, error)
	Report(ctx context.Context, day time.Time) (string, error)
}

type commandPort interface {
	Open(ctx context.Context, rawURL string) (commanddto.Result, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabTimer tabID = iota
	tabGoals
	tabJournal
	tabCount
)

var tabLabels = [tabCount]string{
	"Timer", "Goals", "Journal",
}

// ─── async messages ───────────────────────────────────────────────────────────

type timerEventMsg struct {
	event timerdto.EventOutput
}

type eventsClosedMsg struct{}

type actionDoneMsg struct {
	state  timerdto.StateOutput
	status string
	err    error
}

type commandDoneMsg struct {
	result commanddto.Result
	err    error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Toggle  key.Binding
	Reset   key.Binding
	New     key.Binding
	Stop    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new session")),
		Stop:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Toggle, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Stop, k.Reset, k.New},
		{k.Tab, k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. Countdown state arrives through the
// timer's event subscription; goals and journal are loaded through ports.
type Model struct {
	timer    timerPort
	goals    goalsPort
	journal  journalPort
	commands commandPort

	events      <-chan timerdto.EventOutput
	unsubscribe func()

	timerView   timerview.Model
	goalsView   goalsview.Model
	journalView journalview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(timer timerPort, goals goalsPort, journal journalPort, commands commandPort) Model {
	events, unsubscribe := timer.Subscribe(64)
	tv := timerview.New()
	tv.SetState(timer.State(context.Background()))
	return Model{
		timer:       timer,
		goals:       goals,
		journal:     journal,
		commands:    commands,
		events:      events,
		unsubscribe: unsubscribe,
		timerView:   tv,
		goalsView:   goalsview.New(goals),
		journalView: journalview.New(journal),
		activeTab:   tabTimer,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.goalsView.Init(),
		m.waitForEvent(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case timerEventMsg:
		cmds = append(cmds, m.timerView.SetState(msg.event.State), m.waitForEvent())
		switch msg.event.Kind {
		case "completed":
			m.status = "🎯 session complete: " + msg.event.State.Title
			cmds = append(cmds, m.goalsView.Reload())
			if m.activeTab == tabJournal {
				cmds = append(cmds, m.journalView.Refresh())
			}
		case "new_session", "reset":
			cmds = append(cmds, m.goalsView.Reload())
		}
		return m, tea.Batch(cmds...)

	case eventsClosedMsg:
		m.status = "timer shut down"
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = msg.status
		return m, m.timerView.SetState(msg.state)

	case commandDoneMsg:
		if msg.err != nil {
			m.status = "open: " + msg.err.Error()
		} else {
			m.status = msg.result.Message
		}
		return m, m.goalsView.Reload()

	case goalsview.LoadedMsg:
		if msg.Err == nil {
			m.timerView.SetGoals(msg.List)
		} else {
			m.status = msg.Err.Error()
		}
		var cmd tea.Cmd
		m.goalsView, cmd = m.goalsView.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		if m.activeTab == tabGoals && m.goalsView.Editing() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, m.quit()
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			if m.activeTab == tabJournal {
				cmds = append(cmds, m.journalView.Refresh())
			}
			return m, tea.Batch(cmds...)
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			if m.activeTab == tabJournal {
				cmds = append(cmds, m.journalView.Refresh())
			}
			return m, tea.Batch(cmds...)
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		case " ":
			return m, m.actionCmd("", func(ctx context.Context) (timerdto.StateOutput, error) {
				return m.timer.Toggle(ctx), nil
			})
		case "s":
			return m, m.actionCmd("stopped", func(ctx context.Context) (timerdto.StateOutput, error) {
				return m.timer.Stop(ctx), nil
			})
		case "r":
			state := m.timerView.State()
			return m, m.actionCmd("reset", func(ctx context.Context) (timerdto.StateOutput, error) {
				return m.timer.Reset(ctx, timerdto.ResetInput{DurationSeconds: state.TotalDurationSeconds, Title: state.Title})
			})
		case "n":
			return m, m.actionCmd("new session", func(ctx context.Context) (timerdto.StateOutput, error) {
				return m.timer.NewSession(ctx, timerdto.NewSessionInput{})
			})
		}
	}

	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabTimer:
		m.timerView, tabCmd = m.timerView.Update(msg)
	case tabGoals:
		m.goalsView, tabCmd = m.goalsView.Update(msg)
	case tabJournal:
		m.journalView, tabCmd = m.journalView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(1, m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar))

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabTimer:
		return m.timerView.View()
	case tabGoals:
		return m.goalsView.View()
	case tabJournal:
		return m.journalView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "sprintbell  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	state := m.timerView.State()
	left := m.status
	if state.IsRunning {
		left = theme.Hot.Render("● "+state.DisplayText) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "start":
		return m, m.actionCmd("started", func(ctx context.Context) (timerdto.StateOutput, error) {
			return m.timer.Start(ctx), nil
		})

	case "pause":
		return m, m.actionCmd("", func(ctx context.Context) (timerdto.StateOutput, error) {
			return m.timer.Toggle(ctx), nil
		})

	case "stop":
		return m, m.actionCmd("stopped", func(ctx context.Context) (timerdto.StateOutput, error) {
			return m.timer.Stop(ctx), nil
		})

	case "reset":
		if len(parts) < 2 {
			m.status = "usage: reset <minutes> [title]"
			return m, nil
		}
		minutes, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid minutes"
			return m, nil
		}
		title := strings.TrimSpace(strings.TrimPrefix(input, parts[0]+" "+parts[1]))
		if title == "" {
			title = m.timerView.State().Title
		}
		return m, m.actionCmd("reset", func(ctx context.Context) (timerdto.StateOutput, error) {
			return m.timer.Reset(ctx, timerdto.ResetInput{DurationSeconds: minutes * 60, Title: title})
		})

	case "new":
		in := timerdto.NewSessionInput{}
		if len(parts) >= 2 {
			minutes, err := strconv.Atoi(parts[1])
			if err != nil {
				m.status = "invalid minutes"
				return m, nil
			}
			seconds := minutes * 60
			in.DurationSeconds = &seconds
			if title := strings.TrimSpace(strings.TrimPrefix(input, parts[0]+" "+parts[1])); title != "" {
				in.Title = &title
			}
		}
		return m, m.actionCmd("new session", func(ctx context.Context) (timerdto.StateOutput, error) {
			return m.timer.NewSession(ctx, in)
		})

	case "goal":
		text := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		if text == "" {
			m.status = "usage: goal <text>"
			return m, nil
		}
		return m, m.goalCmd(func(ctx context.Context) error {
			_, err := m.goals.Add(ctx, text)
			return err
		})

	case "done-all":
		return m, m.goalCmd(m.goals.MarkAllCompleted)

	case "clear-goals":
		return m, m.goalCmd(m.goals.ClearAll)

	case "open":
		if len(parts) < 2 || m.commands == nil {
			m.status = "usage: open <sprintbell://url>"
			return m, nil
		}
		rawURL := parts[1]
		return m, func() tea.Msg {
			result, err := m.commands.Open(context.Background(), rawURL)
			return commandDoneMsg{result: result, err: err}
		}

	case "journal":
		m.activeTab = tabJournal
		return m, m.journalView.Refresh()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.timerView, _ = m.timerView.Update(sz)
	m.goalsView, _ = m.goalsView.Update(sz)
	m.journalView, _ = m.journalView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return timerEventMsg{event: event}
	}
}

func (m Model) actionCmd(status string, fn func(ctx context.Context) (timerdto.StateOutput, error)) tea.Cmd {
	return func() tea.Msg {
		state, err := fn(context.Background())
		if status == "" {
			status = state.DisplayText
		}
		return actionDoneMsg{state: state, status: status, err: err}
	}
}

func (m Model) goalCmd(fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := fn(ctx); err != nil {
			return goalsview.LoadedMsg{Err: fmt.Errorf("goals: %w", err)}
		}
		list, err := m.goals.List(ctx)
		return goalsview.LoadedMsg{List: list, Err: err}
	}
}

// quit persists the countdown before leaving so a relaunch can restore it.
func (m Model) quit() tea.Cmd {
	m.timer.ForceSave(context.Background())
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	return tea.Quit
}
