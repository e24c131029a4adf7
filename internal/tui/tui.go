// Package tui implements a three-pane terminal navigator: components
// (sorted), the selected component's incoming/outgoing neighbors, and
// the underlying file edges of the selected neighbor. Grounded on the
// three-column list model in original_source/src/ui.rs, expressed as a
// bubbletea model/update/view loop in the style of the catalog TUI.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cppdep/cppdep/internal/depgraph"
	"github.com/cppdep/cppdep/internal/query"
)

var (
	borderStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	selectedItem = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("240"))
)

// keyMap mirrors the catalog browser's key.Binding/help.KeyMap split so
// the footer help line and the actual bindings can never drift apart.
type keyMap struct {
	Up, Down, PageUp, PageDown, Left, Right      key.Binding
	ToggleIncoming, ToggleOutgoing, TogglePublic key.Binding
	Quit                                         key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:              key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:            key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		PageUp:          key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:        key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Left:            key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev column")),
		Right:           key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next column")),
		ToggleIncoming:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "incoming")),
		ToggleOutgoing:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "outgoing")),
		TogglePublic:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "public only")),
		Quit:            key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.ToggleIncoming, k.ToggleOutgoing, k.TogglePublic, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// column is one of the three navigable lists.
type column struct {
	items    []string
	selected int
}

func newColumn(items []string) column {
	return column{items: items}
}

func (c *column) moveUp(n int) {
	c.selected -= n
	if c.selected < 0 {
		c.selected = 0
	}
}

func (c *column) moveDown(n int) {
	c.selected += n
	if c.selected > len(c.items)-1 {
		c.selected = len(c.items) - 1
	}
	if c.selected < 0 {
		c.selected = 0
	}
}

// model is the bubbletea model driving the navigator.
type model struct {
	q *query.Facade

	// sortedComponents holds the component refs in name-sorted order;
	// columns[0].items is their rendered names.
	sortedComponents []depgraph.ComponentRef
	columns          [3]column
	heights          [3]int

	selColumn        int
	showIncoming     bool
	showOnlyPublic   bool
	neighborRefs     []depgraph.ComponentRef
	neighborEdgeSets [][]depgraph.Edge

	keys keyMap
	help help.Model
}

// New builds the navigator's initial model over a built query facade.
func New(q *query.Facade) model {
	comps := q.Components()
	refs := make([]depgraph.ComponentRef, len(comps))
	for i := range comps {
		refs[i] = depgraph.ComponentRef(i)
	}
	sort.Slice(refs, func(i, j int) bool {
		return comps[refs[i]].NiceName() < comps[refs[j]].NiceName()
	})

	names := make([]string, len(refs))
	for i, r := range refs {
		names[i] = comps[r].NiceName()
	}

	m := model{
		q:                q,
		sortedComponents: refs,
		columns:          [3]column{newColumn(names), newColumn(nil), newColumn(nil)},
		showIncoming:     true,
		keys:             newKeyMap(),
		help:             help.New(),
	}
	m.refreshNeighbors()
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

// refreshNeighbors recomputes columns 1 and 2 from the currently
// selected component in column 0, mirroring show_ui's "gui.invalid"
// recompute step.
func (m *model) refreshNeighbors() {
	if len(m.sortedComponents) == 0 {
		return
	}
	c := m.sortedComponents[m.columns[0].selected]
	incoming, outgoing := m.q.LinkedComponents(c, m.showOnlyPublic)

	var m2 map[depgraph.ComponentRef][]depgraph.Edge
	if m.showIncoming {
		m2 = incoming
	} else {
		m2 = outgoing
	}

	comps := m.q.Components()
	keys := make([]depgraph.ComponentRef, 0, len(m2))
	for k := range m2 {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return comps[keys[i]].NiceName() < comps[keys[j]].NiceName() })

	names := make([]string, len(keys))
	edgeSets := make([][]depgraph.Edge, len(keys))
	for i, k := range keys {
		names[i] = comps[k].NiceName()
		edgeSets[i] = m2[k]
	}

	m.neighborRefs = keys
	m.neighborEdgeSets = edgeSets
	m.columns[1] = newColumn(names)
	m.columns[2] = newColumn(m.edgeDescriptions(0))
}

func (m model) edgeDescriptions(neighborIdx int) []string {
	if neighborIdx < 0 || neighborIdx >= len(m.neighborEdgeSets) {
		return nil
	}
	files := m.q.Files()
	edges := m.neighborEdgeSets[neighborIdx]
	out := make([]string, len(edges))
	for i, e := range edges {
		out[i] = fmt.Sprintf("%s -> %s", files[e.From].Path, files[e.To].Path)
	}
	return out
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.heights[0] = msg.Height / 2
		m.heights[1] = msg.Height / 2
		m.heights[2] = msg.Height / 2
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.ToggleIncoming):
			m.showIncoming = true
			m.columns[1].selected = 0
			m.refreshNeighbors()
		case key.Matches(msg, m.keys.ToggleOutgoing):
			m.showIncoming = false
			m.columns[1].selected = 0
			m.refreshNeighbors()
		case key.Matches(msg, m.keys.TogglePublic):
			m.showOnlyPublic = !m.showOnlyPublic
			m.columns[1].selected = 0
			m.refreshNeighbors()
		case key.Matches(msg, m.keys.Up):
			m.onMove(-1)
		case key.Matches(msg, m.keys.Down):
			m.onMove(1)
		case key.Matches(msg, m.keys.PageUp):
			m.onMove(-max1(m.heights[m.selColumn]))
		case key.Matches(msg, m.keys.PageDown):
			m.onMove(max1(m.heights[m.selColumn]))
		case key.Matches(msg, m.keys.Left):
			if m.selColumn > 0 {
				m.selColumn--
			}
		case key.Matches(msg, m.keys.Right):
			if m.selColumn < 2 {
				m.selColumn++
			}
		}
	}
	return m, nil
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// onMove moves the selection in the focused column and cascades a
// refresh: moving in column 0 recomputes columns 1/2 from scratch;
// moving in column 1 only recomputes column 2's edge descriptions.
func (m *model) onMove(delta int) {
	col := &m.columns[m.selColumn]
	if delta < 0 {
		col.moveUp(-delta)
	} else {
		col.moveDown(delta)
	}

	switch m.selColumn {
	case 0:
		m.refreshNeighbors()
	case 1:
		m.columns[2] = newColumn(m.edgeDescriptions(m.columns[1].selected))
	}
}

func (m model) View() string {
	titles := [3]string{
		"Component (arrows/pgup/pgdn to navigate)",
		"",
		"",
	}
	if m.showIncoming {
		titles[1] = "Incoming (press o for outgoing)"
	} else {
		titles[1] = "Outgoing (press i for incoming)"
	}
	if m.showOnlyPublic {
		titles[2] = "Files (public only, toggle with p)"
	} else {
		titles[2] = "Files (all, toggle with p)"
	}

	var panes [3]string
	for i := 0; i < 3; i++ {
		panes[i] = renderColumn(titles[i], m.columns[i], m.selColumn == i)
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top, panes[0], panes[1])
	return lipgloss.JoinVertical(lipgloss.Left, top, panes[2], m.help.View(m.keys))
}

func renderColumn(title string, col column, focused bool) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	for i, item := range col.items {
		line := item
		if i == col.selected {
			if focused {
				line = selectedItem.Render("> " + item)
			} else {
				line = "> " + item
			}
		} else {
			line = "  " + item
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return borderStyle.Render(b.String())
}

// Run launches the interactive navigator over a built query facade,
// blocking until the user quits.
func Run(q *query.Facade) error {
	p := tea.NewProgram(New(q), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
