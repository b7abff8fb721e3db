package test

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/philiaspace/kotoba/internal/scoring"
	sess "github.com/philiaspace/kotoba/internal/session"
	"github.com/philiaspace/kotoba/internal/ui/theme"
)

const gridCols = 5

func (s *TestScreen) View(width, height int) string {
	if s.errMsg != "" {
		return s.renderError(width, height)
	}

	switch s.state.Phase {
	case sess.PhaseLoading:
		return s.renderLoading(width, height)
	case sess.PhaseTest:
		if s.state.Loading {
			return s.renderLoading(width, height)
		}
		return s.renderTest(width, height)
	case sess.PhaseCalculating, sess.PhaseResults:
		return s.renderCalculating(width, height)
	}

	return ""
}

func (s *TestScreen) renderTest(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Which of these words do you know?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(s.progressLine()))
	b.WriteString("\n\n")

	b.WriteString(s.renderGrid(width))

	return b.String()
}

// progressLine summarizes where the run stands: the active band for
// streaming, words remaining for batch.
func (s *TestScreen) progressLine() string {
	if s.state.Mode == scoring.ModeBatch {
		remaining := len(s.state.BatchQueue)
		for _, it := range s.state.Display {
			if it.ID != 0 {
				remaining++
			}
		}
		return fmt.Sprintf("%d of %d words remaining", remaining, s.batchSize)
	}
	return fmt.Sprintf("Difficulty %d of %d", s.state.ActiveBand, s.state.Table.MaxID())
}

// renderGrid lays the display slots out in two rows of five cards.
func (s *TestScreen) renderGrid(width int) string {
	cards := make([]string, 0, sess.DisplaySize)
	for i := 0; i < sess.DisplaySize; i++ {
		cards = append(cards, s.renderCard(i))
	}

	var rows []string
	for start := 0; start < len(cards); start += gridCols {
		end := start + gridCols
		if end > len(cards) {
			end = len(cards)
		}
		row := lipgloss.JoinHorizontal(lipgloss.Center, cards[start:end]...)
		rows = append(rows, lipgloss.PlaceHorizontal(width, lipgloss.Center, row))
	}
	return strings.Join(rows, "\n")
}

// cardInnerWidth fits the longest BCCWJ surface forms without reflow.
const cardInnerWidth = 12

func (s *TestScreen) renderCard(idx int) string {
	style := theme.WordCard
	if idx == s.selected {
		style = theme.WordCardSelected
	}

	var text string
	if idx < len(s.state.Display) && s.state.Display[idx].ID != 0 {
		if w, ok := s.state.Word(s.state.Display[idx].ID); ok {
			text = w.Text
		}
	}

	label := theme.Kanji.Render(text)
	if text == "" {
		label = lipgloss.NewStyle().Foreground(theme.TextDim).Render("・")
	}

	inner := lipgloss.NewStyle().
		Width(cardInnerWidth).
		Align(lipgloss.Center).
		Render(label)

	num := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d", (idx+1)%10))

	return style.Render(num + " " + inner)
}

func (s *TestScreen) renderLoading(width, height int) string {
	var b strings.Builder
	b.WriteString(s.spin.View() + " " + lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(loadingMessages[s.loadingIdx]))

	if attempt := s.slowAttempt.Load(); attempt > 0 {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("Slow connection, retrying... (%d/%d)", attempt, s.deps.Retry.MaxAttempts)))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func (s *TestScreen) renderCalculating(width, height int) string {
	msg := s.spin.View() + " " + lipgloss.NewStyle().
		Foreground(theme.Text).
		Render("Calculating your vocabulary size...")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}

func (s *TestScreen) renderError(width, height int) string {
	msg := lipgloss.NewStyle().
		Foreground(theme.Error).
		Render(s.errMsg) +
		"\n\n" +
		lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render("Press any key to go back.")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}
