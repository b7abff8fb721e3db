// Package app wires configuration, the word store client and the screen
// stack into one Bubble Tea program.
package app

import (
	"fmt"
	"net/http"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/philiaspace/kotoba/internal/config"
	"github.com/philiaspace/kotoba/internal/router"
	"github.com/philiaspace/kotoba/internal/screen"
	"github.com/philiaspace/kotoba/internal/screens/modeselect"
	testscreen "github.com/philiaspace/kotoba/internal/screens/test"
	"github.com/philiaspace/kotoba/internal/screens/welcome"
	"github.com/philiaspace/kotoba/internal/scoring"
	"github.com/philiaspace/kotoba/internal/ui/layout"
	"github.com/philiaspace/kotoba/internal/wordstore"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel builds the dependency bundle from configuration and seeds
// the screen stack with the welcome splash.
func newAppModel(cfg *config.Config) (AppModel, error) {
	table, lv, err := cfg.LoadTables()
	if err != nil {
		return AppModel{}, err
	}

	client := wordstore.NewClient(cfg.Store.URL, cfg.Store.APIKey,
		wordstore.WithTables(cfg.Store.WordsTable, cfg.Store.TagsTable),
		wordstore.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.Store.TimeoutSeconds) * time.Second,
		}),
	)

	deps := testscreen.Deps{
		Resolver: client,
		Table:    table,
		Levels:   lv,
		Params:   scoring.DefaultParams(),
		Retry:    wordstore.DefaultRetryConfig(),
	}
	deps.Restart = func() screen.Screen {
		return modeselect.New(deps)
	}

	splash := welcome.New(func() screen.Screen {
		return modeselect.New(deps)
	})

	return AppModel{router: router.New(splash)}, nil
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()

	title := ""
	knownCount := -1
	if active != nil {
		title = active.Title()
		if kp, ok := active.(screen.KnownCountProvider); ok {
			knownCount = kp.KnownCount()
		}
	}

	header := layout.RenderHeader(title, knownCount, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			footerHints = append(hints, footerHints...)
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run loads configuration and starts the Bubble Tea program.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	model, err := newAppModel(cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
