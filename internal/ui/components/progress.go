package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/philiaspace/kotoba/internal/ui/theme"
)

// ProgressBar renders a horizontal ratio bar with an optional label and
// percentage readout. The zero value with a Width renders a bare bar.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int

	// FillColor overrides the default bar color when set. The results
	// screen colors band bars by depth this way.
	FillColor color.Color
}

const percentColWidth = 6 // "  100%"

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// View renders the bar at the configured width.
func (p ProgressBar) View() string {
	var b strings.Builder

	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label))
		b.WriteString("  ")
	}

	barWidth := p.Width - lipgloss.Width(b.String())
	if p.ShowPercent {
		barWidth -= percentColWidth
	}
	if barWidth < 4 {
		barWidth = 4
	}

	ratio := clamp01(p.Percent)
	filled := int(float64(barWidth)*ratio + 0.5)

	fill := theme.Secondary
	if p.FillColor != nil {
		fill = p.FillColor
	}

	b.WriteString(lipgloss.NewStyle().Foreground(fill).
		Render(strings.Repeat("█", filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).
		Render(strings.Repeat("░", barWidth-filled)))

	if p.ShowPercent {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %3d%%", int(ratio*100))))
	}

	return b.String()
}
