// Package results renders a finished test: the headline estimate, level
// equivalences, the competency radar and the per-band breakdown.
package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/philiaspace/kotoba/internal/router"
	"github.com/philiaspace/kotoba/internal/screen"
	"github.com/philiaspace/kotoba/internal/scoring"
	"github.com/philiaspace/kotoba/internal/ui/components"
	"github.com/philiaspace/kotoba/internal/ui/layout"
	"github.com/philiaspace/kotoba/internal/ui/theme"
)

// ResultsScreen shows the final score and offers a retest.
type ResultsScreen struct {
	result  scoring.Result
	report  report
	runID   string
	restart func() screen.Screen
	scroll  int
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen. runID identifies the finished run and
// restart produces a fresh mode-selection screen for the retest path.
func New(result scoring.Result, runID string, restart func() screen.Screen) *ResultsScreen {
	return &ResultsScreen{
		result:  result,
		report:  buildReport(result),
		runID:   runID,
		restart: restart,
	}
}

func (r *ResultsScreen) Title() string {
	return "Results"
}

func (r *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "R", Description: "Test again"},
		{Key: "Q", Description: "Quit"},
	}
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return r, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if r.scroll > 0 {
			r.scroll--
		}
	case "down", "j":
		r.scroll++
	case "r", "enter":
		next := r.restart()
		return r, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: next}
		}
	case "q":
		return r, tea.Quit
	}

	return r, nil
}

func (r *ResultsScreen) View(width, height int) string {
	content := r.renderContent(width)

	lines := strings.Split(content, "\n")
	if r.scroll > len(lines)-height {
		r.scroll = len(lines) - height
	}
	if r.scroll < 0 {
		r.scroll = 0
	}
	end := r.scroll + height
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[r.scroll:end], "\n")
}

func (r *ResultsScreen) renderContent(width int) string {
	var b strings.Builder

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("READING VOCABULARY TEST"))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Primary).Bold(true).
		Render(formatCount(r.result.TotalPredicted)))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("words recognized"))
	b.WriteString("\n\n")

	b.WriteString(center.Foreground(theme.Text).Italic(true).
		Render("“" + r.result.LiteracyDescription + "”"))
	b.WriteString("\n\n")

	b.WriteString(r.renderLevels(width))
	b.WriteString("\n\n")

	b.WriteString(center.Foreground(theme.Accent).
		Render(learnerLabel(r.result.LearnerType)))
	b.WriteString("\n\n")

	b.WriteString(r.renderRadar(width))
	b.WriteString("\n")
	b.WriteString(r.renderBands(width))
	b.WriteString("\n")
	if len(r.result.TagScores) > 0 {
		b.WriteString(r.renderTags(width))
		b.WriteString("\n")
	}
	b.WriteString(r.renderReport(width))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("run " + r.runID))

	return b.String()
}

// renderLevels shows the three equivalence boxes side by side.
func (r *ResultsScreen) renderLevels(width int) string {
	box := func(label, value string) string {
		content := lipgloss.NewStyle().Foreground(theme.TextDim).Render(label) +
			"\n" +
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(value)
		return theme.Card.Width(22).Align(lipgloss.Center).Render(content)
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		box("JLPT", r.result.JLPTLevel),
		box("CEFR", r.result.CEFRLevel),
		box("Native age", r.result.AgeEquivalent),
	)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, row)
}

// renderRadar draws the five competency axes as bars.
func (r *ResultsScreen) renderRadar(width int) string {
	axes := []struct {
		label string
		value int
	}{
		{"Survival ", r.result.Radar.Survival},
		{"Formal   ", r.result.Radar.Formal},
		{"Culture  ", r.result.Radar.Culture},
		{"Literary ", r.result.Radar.Literary},
		{"Kanji use", r.result.Radar.Complexity},
	}

	barWidth := min(width-10, 50)
	var b strings.Builder
	b.WriteString(sectionTitle(width, "Competency profile"))
	for _, axis := range axes {
		bar := components.ProgressBar{
			Label:       axis.label,
			Percent:     float64(axis.value) / 100,
			ShowPercent: true,
			Width:       barWidth,
			FillColor:   theme.Accent,
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n")
	}
	return b.String()
}

// renderBands draws the per-band recognition breakdown.
func (r *ResultsScreen) renderBands(width int) string {
	barWidth := min(width-10, 50)
	var b strings.Builder
	b.WriteString(sectionTitle(width, "Frequency bands"))
	for _, d := range r.result.Details {
		if d.TotalInBand == 0 {
			continue
		}
		ratio := float64(d.KnownInBand) / float64(d.TotalInBand)
		fill := theme.Primary
		if d.Dropped {
			fill = theme.Border
		}
		bar := components.ProgressBar{
			Label:       fmt.Sprintf("Band %d   ", d.BandID),
			Percent:     ratio,
			ShowPercent: true,
			Width:       barWidth,
			FillColor:   fill,
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n")
	}
	return b.String()
}

// renderTags draws the JLPT tag accuracy rows.
func (r *ResultsScreen) renderTags(width int) string {
	barWidth := min(width-10, 50)
	var b strings.Builder
	b.WriteString(sectionTitle(width, "JLPT profile"))
	for _, ts := range r.result.TagScores {
		if ts.Total == 0 {
			continue
		}
		bar := components.ProgressBar{
			Label:       fmt.Sprintf("%s (%d/%d)", ts.Level, ts.Known, ts.Total),
			Percent:     float64(ts.Score) / 100,
			ShowPercent: true,
			Width:       barWidth,
			FillColor:   theme.Secondary,
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n")
	}
	return b.String()
}

// renderReport writes the narrative analysis.
func (r *ResultsScreen) renderReport(width int) string {
	para := lipgloss.NewStyle().Width(min(width-8, 70)).Foreground(theme.Text)
	head := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)

	var b strings.Builder
	b.WriteString(sectionTitle(width, "Analysis"))

	section := func(title, body string) {
		block := head.Render(title) + "\n" + para.Render(body)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))
		b.WriteString("\n\n")
	}

	section("Evaluation", r.report.Summary)
	section("In practice", r.report.Practical)
	if r.report.Warning != "" {
		warn := lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("Foundation warning") +
			"\n" +
			lipgloss.NewStyle().Width(min(width-8, 70)).Foreground(theme.TextDim).Italic(true).Render(r.report.Warning)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, warn))
		b.WriteString("\n\n")
	}
	section("Next steps", r.report.Advice)

	return b.String()
}

func sectionTitle(width int, title string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Bold(true).
		Render(strings.ToUpper(title)) + "\n"
}

// formatCount renders 12345 as "12,345".
func formatCount(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	return s + "," + strings.Join(parts, ",")
}
