package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/treeview/pkg/render"
	"github.com/matzehuels/treeview/pkg/render/dom"
	"github.com/matzehuels/treeview/pkg/tree"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDirStyle      = lipgloss.NewStyle().Foreground(colorBlue)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// Row glyphs.
const (
	glyphExpanded = "▾"
	glyphFolded   = "▸"
	glyphCursor   = "› "
	indentUnit    = "  "
)

// =============================================================================
// Key bindings
// =============================================================================

type outlineKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Toggle      key.Binding
	Expand      key.Binding
	Collapse    key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Quit        key.Binding
}

func (k outlineKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Expand, k.Collapse, k.ExpandAll, k.CollapseAll, k.Quit}
}

var outlineKeys = outlineKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "enter"),
		key.WithHelp("space", "toggle"),
	),
	Expand: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "open"),
	),
	Collapse: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "close"),
	),
	ExpandAll: key.NewBinding(
		key.WithKeys("E"),
		key.WithHelp("E", "expand all"),
	),
	CollapseAll: key.NewBinding(
		key.WithKeys("C"),
		key.WithHelp("C", "collapse all"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// =============================================================================
// OutlineModel - Interactive collapsible outline
// =============================================================================

// OutlineModel is the bubbletea model of the view command. It renders the
// forest into an in-memory document and drives the same collapse state
// machine the HTML page uses.
type OutlineModel struct {
	Title   string
	Outline *render.Outline
	Rows    []render.Row
	Cursor  int
	Offset  int
	Height  int

	keys outlineKeyMap
}

// NewOutlineModel creates an outline model for forest.
func NewOutlineModel(title string, forest []*tree.Node, collapsed bool) OutlineModel {
	outline := render.Render(dom.NewRoot(), nil, forest, render.WithDefaultCollapsed(collapsed))
	return OutlineModel{
		Title:   title,
		Outline: outline,
		Rows:    outline.Rows(),
		Height:  20,
		keys:    outlineKeys,
	}
}

func (m OutlineModel) Init() tea.Cmd {
	return nil
}

func (m OutlineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.move(m.Cursor - 1)
		case key.Matches(msg, m.keys.Down):
			m.move(m.Cursor + 1)
		case key.Matches(msg, m.keys.Top):
			m.move(0)
		case key.Matches(msg, m.keys.Bottom):
			m.move(len(m.Rows) - 1)
		case key.Matches(msg, m.keys.Toggle):
			if row, ok := m.current(); ok && row.Collapsible {
				m.Outline.Toggle(row.ID)
				m.refresh()
			}
		case key.Matches(msg, m.keys.Expand):
			m.expand()
		case key.Matches(msg, m.keys.Collapse):
			m.collapse()
		case key.Matches(msg, m.keys.ExpandAll):
			m.Outline.ExpandAll()
			m.refresh()
		case key.Matches(msg, m.keys.CollapseAll):
			m.Outline.CollapseAll()
			m.refresh()
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 5
		if m.Height < 5 {
			m.Height = 5
		}
		m.move(m.Cursor)
	}
	return m, nil
}

func (m *OutlineModel) current() (render.Row, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Rows) {
		return render.Row{}, false
	}
	return m.Rows[m.Cursor], true
}

// move places the cursor at i, clamped to the visible rows, and scrolls.
func (m *OutlineModel) move(i int) {
	if i >= len(m.Rows) {
		i = len(m.Rows) - 1
	}
	if i < 0 {
		i = 0
	}
	m.Cursor = i
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// refresh recomputes the visible rows, keeping the cursor on the same node.
func (m *OutlineModel) refresh() {
	id := ""
	if row, ok := m.current(); ok {
		id = row.ID
	}
	m.Rows = m.Outline.Rows()
	for i, row := range m.Rows {
		if row.ID == id {
			m.move(i)
			return
		}
	}
	m.move(m.Cursor)
}

// expand opens a collapsed directory, or steps into an open one.
func (m *OutlineModel) expand() {
	row, ok := m.current()
	if !ok || !row.Collapsible {
		return
	}
	if row.Collapsed {
		m.Outline.SetCollapsed(row.ID, false)
		m.refresh()
		return
	}
	m.move(m.Cursor + 1)
}

// collapse closes an open directory, or jumps to the parent row.
func (m *OutlineModel) collapse() {
	row, ok := m.current()
	if !ok {
		return
	}
	if row.Collapsible && !row.Collapsed {
		m.Outline.SetCollapsed(row.ID, true)
		m.refresh()
		return
	}
	for i := m.Cursor - 1; i >= 0; i-- {
		if m.Rows[i].Depth == row.Depth-1 {
			m.move(i)
			return
		}
	}
}

func (m OutlineModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(m.help()))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}
	for i := m.Offset; i < end; i++ {
		b.WriteString(m.renderRow(m.Rows[i], i == m.Cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))
	return b.String()
}

func (m OutlineModel) help() string {
	var parts []string
	for _, k := range m.keys.ShortHelp() {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "  ")
}

// renderRow draws one outline line: cursor, indent, caret, then name.
func (m OutlineModel) renderRow(row render.Row, selected bool) string {
	cursor := indentUnit
	if selected {
		cursor = glyphCursor
	}

	caret := " "
	if row.Collapsible {
		caret = glyphExpanded
		if row.Collapsed {
			caret = glyphFolded
		}
	}

	name := row.Node.Name
	if row.Node.Meta.Icon != "" {
		name += listDimStyle.Render(" (" + row.Node.Meta.Icon + ")")
	}

	style := listNormalStyle
	switch {
	case selected:
		style = listSelectedStyle
	case row.Node.IsDir():
		style = listDirStyle
	}
	return cursor + strings.Repeat(indentUnit, row.Depth) + listDimStyle.Render(caret) + " " + style.Render(name)
}
