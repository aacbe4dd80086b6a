package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jptuazon/pusoy-dos/internal/game/card"
)

var (
	docStyle      = lipgloss.NewStyle().Margin(1, 2)
	redStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#CD0000")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	blackStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// suitLabelSets are the cosmetic suit label orderings the player can
// cycle through. Relabeling only changes what is printed next to a
// rank; card identity, and with it every score, is untouched.
var suitLabelSets = [][4]string{
	{"♣", "♠", "♥", "♦"},
	{"♠", "♥", "♦", "♣"},
	{"♥", "♦", "♣", "♠"},
	{"♦", "♣", "♠", "♥"},
}

func suitLabel(set int, s card.Suit) string {
	return suitLabelSets[set%len(suitLabelSets)][int(s)]
}

// labelSetFor matches a configured suit-label string against the known
// orderings; unknown strings fall back to the first set.
func labelSetFor(labels string) int {
	for i, set := range suitLabelSets {
		if set[0]+set[1]+set[2]+set[3] == labels {
			return i
		}
	}
	return 0
}

func cardStyle(label string) lipgloss.Style {
	if label == "♥" || label == "♦" {
		return redStyle
	}
	return blackStyle
}
