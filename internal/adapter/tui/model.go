// Package tui is the terminal rendition of the inventory page: a searchable
// list with +/- controls and an "add item" dialog.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rl1809/inventory-tracker/internal/core/domain"
	"github.com/rl1809/inventory-tracker/internal/core/view"
)

// Inventory is satisfied by the local service and by the gRPC client.
type Inventory interface {
	List(ctx context.Context) ([]domain.Item, error)
	Increment(ctx context.Context, name string) ([]domain.Item, error)
	Decrement(ctx context.Context, name string) ([]domain.Item, error)
}

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeAdd
)

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Increment key.Binding
	Decrement key.Binding
	Add       key.Binding
	Search    key.Binding
	Refresh   key.Binding
	Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Increment: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "add one")),
		Decrement: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "remove one")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add new item")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) help() string {
	bindings := []key.Binding{k.Up, k.Down, k.Increment, k.Decrement, k.Add, k.Search, k.Refresh, k.Quit}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

// syncedMsg carries the refreshed snapshot of a finished store operation.
type syncedMsg struct {
	op    string
	name  string
	items []domain.Item
	err   error
}

type Model struct {
	ctx       context.Context
	inventory Inventory
	state     *view.State
	keys      keyMap

	mode   mode
	search textinput.Model
	add    textinput.Model
	addErr string

	cursor int
	busy   bool
	status string
}

func New(ctx context.Context, inventory Inventory, state *view.State) Model {
	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "Search items..."

	add := textinput.New()
	add.Prompt = "> "
	add.Placeholder = "Item name"
	add.CharLimit = 200

	return Model{
		ctx:       ctx,
		inventory: inventory,
		state:     state,
		keys:      defaultKeys(),
		search:    search,
		add:       add,
		busy:      true,
	}
}

// Run blocks until the user quits.
func Run(ctx context.Context, inventory Inventory) error {
	p := tea.NewProgram(New(ctx, inventory, view.NewState()), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) load() tea.Cmd {
	return func() tea.Msg {
		items, err := m.inventory.List(m.ctx)
		return syncedMsg{op: "load", items: items, err: err}
	}
}

func (m Model) mutate(op, name string) tea.Cmd {
	fn := m.inventory.Increment
	if op == "decrement" {
		fn = m.inventory.Decrement
	}
	return func() tea.Msg {
		items, err := fn(m.ctx, name)
		return syncedMsg{op: op, name: name, items: items, err: err}
	}
}

// rows is the visible list in name order. Stores return documents in no
// particular order, so the cursor row must not depend on it.
func (m Model) rows() []domain.Item {
	visible := m.state.Visible()
	domain.SortByName(visible)
	return visible
}

func (m Model) selected() (domain.Item, bool) {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return domain.Item{}, false
	}
	return rows[m.cursor], true
}

// follow moves the cursor onto the row holding name, if it is still listed.
func (m *Model) follow(name string) {
	for i, it := range m.rows() {
		if it.Name == name {
			m.cursor = i
			return
		}
	}
}

func (m *Model) clampCursor() {
	n := len(m.rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case syncedMsg:
		m.busy = false
		prev, hadSelection := m.selected()
		if err := m.state.Sync(msg.items, msg.err); err != nil {
			m.status = fmt.Sprintf("%s failed: %v", msg.op, err)
		} else {
			m.status = statusLine(msg)
		}
		if hadSelection {
			m.follow(prev.Name)
		}
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeSearch:
			return m.updateSearch(msg)
		}
		return m.updateBrowse(msg)
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows())-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.addErr = ""
		m.add.Reset()
		return m, m.add.Focus()

	case key.Matches(msg, m.keys.Refresh):
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, m.load()

	case key.Matches(msg, m.keys.Increment), key.Matches(msg, m.keys.Decrement):
		it, ok := m.selected()
		if !ok || m.busy {
			return m, nil
		}
		op := "increment"
		if key.Matches(msg, m.keys.Decrement) {
			op = "decrement"
		}
		m.busy = true
		return m, m.mutate(op, it.Name)
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.mode = modeBrowse
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.state.SetQuery(m.search.Value())
	m.clampCursor()
	return m, cmd
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.add.Blur()
		return m, nil

	case "enter":
		name := m.add.Value()
		if err := domain.ValidateName(name); err != nil {
			m.addErr = "Name cannot be empty"
			return m, nil
		}
		if m.busy {
			m.addErr = "Busy, try again"
			return m, nil
		}
		m.mode = modeBrowse
		m.add.Reset()
		m.add.Blur()
		m.busy = true
		return m, m.mutate("increment", name)
	}

	var cmd tea.Cmd
	m.add, cmd = m.add.Update(msg)
	return m, cmd
}

func statusLine(msg syncedMsg) string {
	switch msg.op {
	case "increment":
		return "added one " + msg.name
	case "decrement":
		return "removed one " + msg.name
	}
	return fmt.Sprintf("loaded %d items", len(msg.items))
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Inventory Management"))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render("[a] Add New Item"))
	b.WriteString("\n\n")
	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	var list strings.Builder
	list.WriteString(headingStyle.Render("Inventory Items"))
	list.WriteString("\n")

	rows := m.rows()
	if len(rows) == 0 {
		list.WriteString(mutedStyle.Render("No items"))
	}
	for i, it := range rows {
		line := fmt.Sprintf("%-30s %s", it.DisplayName(), quantityStyle.Render(fmt.Sprint(it.Quantity)))
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		list.WriteString(line)
		if i < len(rows)-1 {
			list.WriteString("\n")
		}
	}
	b.WriteString(panelStyle.Render(list.String()))
	b.WriteString("\n")

	if m.mode == modeAdd {
		title := "Add Item"
		if m.addErr != "" {
			title += "  " + errorStyle.Render(m.addErr)
		}
		b.WriteString(modalStyle.Render(title + "\n" + m.add.View()))
		b.WriteString("\n")
	}

	switch {
	case m.busy:
		b.WriteString(mutedStyle.Render("working..."))
	case m.state.Err() != nil:
		b.WriteString(errorStyle.Render(m.status))
	default:
		b.WriteString(mutedStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.keys.help()))

	return b.String()
}
