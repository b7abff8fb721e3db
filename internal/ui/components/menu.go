package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/philiaspace/kotoba/internal/ui/theme"
)

// MenuItem is one selectable entry in a Menu.
type MenuItem struct {
	Label    string
	Detail   string // optional dim annotation after the label
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical selection menu. Navigation wraps at both ends and
// skips disabled items; digits 1-9 jump straight to an item.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	if len(items) > 0 && items[0].Disabled {
		m.Selected = m.next(0, 1)
	}
	return m
}

func (m Menu) Init() tea.Cmd {
	return nil
}

// next returns the index of the first enabled item reached from i in
// direction dir, wrapping around. Returns i if every other item is
// disabled.
func (m Menu) next(i, dir int) int {
	n := len(m.Items)
	for step := 1; step <= n; step++ {
		j := ((i+dir*step)%n + n) % n
		if !m.Items[j].Disabled {
			return j
		}
	}
	return i
}

func (m Menu) activate(i int) (Menu, tea.Cmd) {
	if i < 0 || i >= len(m.Items) {
		return m, nil
	}
	item := m.Items[i]
	if item.Disabled || item.Action == nil {
		return m, nil
	}
	m.Selected = i
	return m, item.Action()
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		m.Selected = m.next(m.Selected, -1)
	case "down", "j":
		m.Selected = m.next(m.Selected, +1)
	case "enter":
		return m.activate(m.Selected)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			return m.activate(int(key[0] - '1'))
		}
	}

	return m, nil
}

var (
	menuSelected = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	menuItem     = lipgloss.NewStyle().Foreground(theme.Text)
	menuDisabled = lipgloss.NewStyle().Foreground(theme.TextDim)
	menuDetail   = lipgloss.NewStyle().Foreground(theme.TextDim)
)

// View renders the menu.
func (m Menu) View() string {
	var s string
	for i, item := range m.Items {
		switch {
		case item.Disabled:
			s += menuDisabled.Render("    " + item.Label)
		case i == m.Selected:
			s += menuSelected.Render("  ▸ " + item.Label)
		default:
			s += menuItem.Render("    " + item.Label)
		}
		if item.Detail != "" {
			s += "  " + menuDetail.Render(item.Detail)
		}
		s += "\n"
	}
	return s
}
