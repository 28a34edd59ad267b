package goals

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	subgoaldto "sprintbell/internal/modules/subgoal/dto"
	"sprintbell/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	List(ctx context.Context) (subgoaldto.ListOutput, error)
	Add(ctx context.Context, text string) (subgoaldto.GoalOutput, error)
	Toggle(ctx context.Context, ref string) (subgoaldto.GoalOutput, error)
	Delete(ctx context.Context, ref string) error
}

// ─── messages ────────────────────────────────────────────────────────────────

// LoadedMsg carries a fresh goal list. The app model also forwards it to the
// timer view for the summary line.
type LoadedMsg struct {
	List subgoaldto.ListOutput
	Err  error
}

// ─── list item ───────────────────────────────────────────────────────────────

type goalItem struct {
	goal subgoaldto.GoalOutput
}

func (i goalItem) Title() string {
	if i.goal.IsCompleted {
		return "✓ " + i.goal.Text
	}
	return "○ " + i.goal.Text
}
func (i goalItem) Description() string { return i.goal.CreatedAt.Format("15:04") }
func (i goalItem) FilterValue() string { return i.goal.Text }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port   Port
	list   list.Model
	input  textinput.Model
	adding bool
	width  int
	height int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Sub-goals"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	ti := textinput.New()
	ti.Placeholder = "what should this session achieve?"
	ti.CharLimit = 200

	return Model{port: port, list: l, input: ti}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.height-3)
		m.input.Width = max(10, m.width-6)

	case LoadedMsg:
		if msg.Err != nil {
			m.list.Title = "Sub-goals: " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Sub-goals"
		items := make([]list.Item, len(msg.List.Goals))
		for i, g := range msg.List.Goals {
			items[i] = goalItem{goal: g}
		}
		cmds = append(cmds, m.list.SetItems(items))

	case tea.KeyMsg:
		if m.adding {
			switch msg.String() {
			case "esc":
				m.adding = false
				m.input.Blur()
				return m, nil
			case "enter":
				text := strings.TrimSpace(m.input.Value())
				m.adding = false
				m.input.Blur()
				m.input.SetValue("")
				if text == "" {
					return m, nil
				}
				return m, m.mutate(func(ctx context.Context) error {
					_, err := m.port.Add(ctx, text)
					return err
				})
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "a":
			m.adding = true
			return m, m.input.Focus()
		case "x", "enter":
			if id, ok := m.selectedID(); ok {
				return m, m.mutate(func(ctx context.Context) error {
					_, err := m.port.Toggle(ctx, id)
					return err
				})
			}
		case "d":
			if id, ok := m.selectedID(); ok {
				return m, m.mutate(func(ctx context.Context) error {
					return m.port.Delete(ctx, id)
				})
			}
		}
	}

	var lCmd tea.Cmd
	m.list, lCmd = m.list.Update(msg)
	cmds = append(cmds, lCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	body := m.list.View()
	var footer string
	if m.adding {
		footer = theme.Hot.Render("add: ") + m.input.View()
	} else {
		footer = theme.Muted.Render("a: add  x: toggle  d: delete")
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

// Editing reports whether the add-goal input has focus. The app model checks
// this so typed characters are not taken as global keys.
func (m Model) Editing() bool { return m.adding }

// Reload fetches the goal list.
func (m Model) Reload() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		if port == nil {
			return LoadedMsg{}
		}
		list, err := port.List(context.Background())
		return LoadedMsg{List: list, Err: err}
	}
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) selectedID() (string, bool) {
	if item, ok := m.list.SelectedItem().(goalItem); ok {
		return item.goal.ID, true
	}
	return "", false
}

func (m Model) mutate(fn func(ctx context.Context) error) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		ctx := context.Background()
		if err := fn(ctx); err != nil {
			return LoadedMsg{Err: err}
		}
		list, err := port.List(ctx)
		return LoadedMsg{List: list, Err: err}
	}
}
