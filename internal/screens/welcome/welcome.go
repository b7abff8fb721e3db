package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/philiaspace/kotoba/internal/router"
	"github.com/philiaspace/kotoba/internal/screen"
	"github.com/philiaspace/kotoba/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1200 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const cardArt = `  ╭─────────────╮
  │             │
  │     語      │
  │             │
  │   ことば    │
  │             │
  ╰─────────────╯`

// sparkle frames cycle around the word card
var sparkleFrames = []string{"✿", "❀"}

type tickMsg time.Time

// WelcomeScreen shows a splash animation before transitioning to mode
// selection.
type WelcomeScreen struct {
	nextFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen
// produced by nextFactory.
func New(nextFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		nextFactory: nextFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tea.Tick(tickInterval, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})

	case tea.KeyPressMsg:
		// A keypress skips the rest of the animation.
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.nextFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

// decorate flanks the top, middle and bottom card lines with sparkles.
// The two colors swap sides each line and the glyph cycles per tick.
func (w *WelcomeScreen) decorate(card string) string {
	glyph := sparkleFrames[w.tickCount%len(sparkleFrames)]
	colored := [2]string{
		lipgloss.NewStyle().Foreground(theme.Accent).Render(glyph),
		lipgloss.NewStyle().Foreground(theme.Secondary).Render(glyph),
	}

	lines := strings.Split(card, "\n")
	for i, row := range []int{0, 3, 6} {
		if row >= len(lines) {
			break
		}
		left, right := colored[i%2], colored[(i+1)%2]
		lines[row] = left + "  " + lines[row] + "  " + right
	}
	return strings.Join(lines, "\n")
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	cardStyle := lipgloss.NewStyle().Foreground(theme.Primary)

	// Phase 1+: word card
	rendered := cardStyle.Render(cardArt)

	// Phase 2+: sparkles around the card
	if w.elapsed >= phase1End {
		rendered = w.decorate(rendered)
	}

	sections = append(sections, rendered)

	// Phase 3+: banner + tagline
	if w.elapsed >= phase2End {
		sections = append(sections, "")
		sections = append(sections, RenderBanner(width))
		sections = append(sections, "")

		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("How many Japanese words do you know?")
		sections = append(sections, tagline)

		sections = append(sections, "")
		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to begin")
		sections = append(sections, hint)
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
