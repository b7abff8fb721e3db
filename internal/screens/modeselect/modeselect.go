// Package modeselect is the landing menu: pick the adaptive streaming
// test or a fixed-length batch test.
package modeselect

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/philiaspace/kotoba/internal/router"
	"github.com/philiaspace/kotoba/internal/screen"
	testscreen "github.com/philiaspace/kotoba/internal/screens/test"
	"github.com/philiaspace/kotoba/internal/scoring"
	sess "github.com/philiaspace/kotoba/internal/session"
	"github.com/philiaspace/kotoba/internal/ui/components"
	"github.com/philiaspace/kotoba/internal/ui/layout"
	"github.com/philiaspace/kotoba/internal/ui/theme"
)

// ModeSelectScreen lets the learner choose how to be tested.
type ModeSelectScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*ModeSelectScreen)(nil)
var _ screen.KeyHintProvider = (*ModeSelectScreen)(nil)

// New creates a ModeSelectScreen over the shared test dependencies.
func New(deps testscreen.Deps) *ModeSelectScreen {
	push := func(mode scoring.Mode, size int) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: testscreen.New(deps, mode, size)}
			}
		}
	}

	items := []components.MenuItem{
		{
			Label:  "Adaptive Test",
			Detail: "streams harder words as you go",
			Action: push(scoring.ModeStreaming, 0),
		},
	}
	for _, size := range sess.BatchSizes {
		size := size
		detail := fmt.Sprintf("%d words, fixed length", size)
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("Batch Test %d", size),
			Detail: detail,
			Action: push(scoring.ModeBatch, size),
		})
	}
	items = append(items, components.MenuItem{
		Label: "Exit",
		Action: func() tea.Cmd {
			return tea.Quit
		},
	})

	return &ModeSelectScreen{menu: components.NewMenu(items)}
}

func (m *ModeSelectScreen) Title() string {
	return "Choose a Test"
}

func (m *ModeSelectScreen) Init() tea.Cmd {
	return nil
}

func (m *ModeSelectScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
}

func (m *ModeSelectScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m *ModeSelectScreen) View(width, height int) string {
	var sections []string

	title := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render("How would you like to measure your vocabulary?")
	sections = append(sections, title)

	sub := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("Mark the words you can read and understand.")
	sections = append(sections, sub, "")

	sections = append(sections, m.menu.View())

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
