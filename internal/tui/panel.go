package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/schism-dev/schism/internal/config"
	"github.com/schism-dev/schism/internal/dataset"
	"github.com/schism-dev/schism/internal/mockserver"
	"github.com/schism-dev/schism/internal/ui"
)

// itemKind distinguishes the two flaggable item types in the panel.
type itemKind int

const (
	kindRoute itemKind = iota
	kindMiddleware
)

// item is one toggleable row: a route or a middleware.
type item struct {
	kind  itemKind
	label string
	key   string // flag key in the FlagSet
}

// tickMsg drives the periodic log refresh.
type tickMsg time.Time

// Model is the bubbletea model for the control panel.
type Model struct {
	theme   *ui.Theme
	flags   *mockserver.FlagSet
	store   *dataset.Store
	logs    *LogBuffer
	refresh time.Duration

	items  []item
	cursor int
	width  int
	height int
	status string
}

// NewModel builds the panel model from the running server's project,
// flag set, store and log buffer.
func NewModel(theme *ui.Theme, project *config.Project, flags *mockserver.FlagSet,
	store *dataset.Store, logs *LogBuffer, refresh time.Duration) Model {
	if refresh <= 0 {
		refresh = time.Second
	}
	return Model{
		theme:   theme,
		flags:   flags,
		store:   store,
		logs:    logs,
		refresh: refresh,
		items:   buildItems(project),
		width:   80,
		height:  24,
	}
}

// buildItems lists every route, then every middleware referenced by the
// project, each with its flag key.
func buildItems(project *config.Project) []item {
	var items []item
	for _, route := range project.Routes {
		items = append(items, item{
			kind:  kindRoute,
			label: route.Key(),
			key:   route.Key(),
		})
	}
	seen := make(map[string]bool)
	for _, route := range project.Routes {
		for _, name := range route.Middleware {
			if seen[name] {
				continue
			}
			seen[name] = true
			items = append(items, item{
				kind:  kindMiddleware,
				label: name,
				key:   mockserver.MiddlewareKey(name),
			})
		}
	}
	return items
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		// The view re-reads flags and logs on every render; the tick
		// only forces a redraw while requests arrive in the background.
		return m, m.tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter", " ":
			m.toggleCurrent()
		case "r":
			if err := m.store.Reset(); err != nil {
				m.status = "reset failed: " + err.Error()
			} else {
				m.status = "datasets reset to their on-disk state"
			}
		}
	}
	return m, nil
}

// toggleCurrent arms or disarms the selected item's one-shot failure.
func (m *Model) toggleCurrent() {
	if len(m.items) == 0 {
		return
	}
	it := m.items[m.cursor]
	if m.flags.Armed(it.key) {
		m.flags.Disarm(it.key)
		m.status = it.label + " will pass"
	} else {
		m.flags.Arm(it.key)
		m.status = it.label + " will fail once"
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.Title("SCHISM control panel"))
	b.WriteString("\n\n")

	b.WriteString(m.renderItems())
	b.WriteString("\n")
	b.WriteString(m.renderLog())
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(m.theme.Accent(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.Muted("enter: toggle failure  r: reset data  q: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderItems() string {
	var b strings.Builder
	lastKind := itemKind(-1)
	for i, it := range m.items {
		if it.kind != lastKind {
			if it.kind == kindRoute {
				b.WriteString(m.theme.Muted("Routes") + "\n")
			} else {
				b.WriteString(m.theme.Muted("Middleware") + "\n")
			}
			lastKind = it.kind
		}

		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		state := m.theme.Success("[PASSING]")
		if m.flags.Armed(it.key) {
			state = m.theme.Error("[FAILING]")
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, state, it.label)
	}
	return b.String()
}

// logPaneLines is how many log lines the pane shows at most.
const logPaneLines = 12

func (m Model) renderLog() string {
	lines := m.logs.Lines()
	if len(lines) > logPaneLines {
		lines = lines[len(lines)-logPaneLines:]
	}
	content := strings.Join(lines, "\n")
	if content == "" {
		content = m.theme.Muted("(no requests yet)")
	}

	width := m.width - 4
	if width < 20 {
		width = 20
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(width)
	if !m.theme.NoColor {
		box = box.BorderForeground(lipgloss.Color(m.theme.Colors.Muted))
	}
	return box.Render(content)
}

// Run starts the panel and blocks until the user quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
