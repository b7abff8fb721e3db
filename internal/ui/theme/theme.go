package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette — deep night sky with an emerald accent run
var (
	Primary   = lipgloss.Color("#34D399") // Emerald
	Secondary = lipgloss.Color("#22D3EE") // Cyan
	Accent    = lipgloss.Color("#818CF8") // Indigo
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	// Kanji is for the word cards; their runes are double-width.
	Kanji = lipgloss.NewStyle().
		Bold(true).
		Foreground(Text)
)

// Components
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	WordCard = lipgloss.NewStyle().
			Background(BgCard).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)

	WordCardSelected = lipgloss.NewStyle().
				Background(BgCard).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Primary).
				Padding(0, 2)
)
