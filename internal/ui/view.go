package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jptuazon/pusoy-dos/internal/game/card"
	"github.com/jptuazon/pusoy-dos/internal/game/engine"
)

func (m *Model) label(c card.Card) string {
	return c.RankName() + suitLabel(m.labelSet, c.Suit())
}

func (m *Model) labels(cards []card.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = m.label(c)
	}
	return strings.Join(parts, " ")
}

func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle("Pusoy Dos"))
	sb.WriteString("\n\n")

	sb.WriteString(m.renderOpponents())
	sb.WriteString("\n")
	sb.WriteString(m.renderTableThrow())
	sb.WriteString("\n")
	sb.WriteString(m.renderHand())
	sb.WriteString("\n")
	sb.WriteString(m.renderStatus())

	if len(m.log) > 0 {
		sb.WriteString("\n" + dimStyle.Render(strings.Join(m.log, "\n")))
	}
	if m.errMsg != "" {
		sb.WriteString("\n" + errorStyle.Render(m.errMsg))
	}
	sb.WriteString("\n" + dimStyle.Render(
		"←/→ move  space select  enter throw  p pass  f forfeit  s suit labels  q quit"))

	return docStyle.Render(sb.String())
}

func (m *Model) renderOpponents() string {
	if !m.cfg.Game.ShowCounts {
		return ""
	}
	var parts []string
	for seat := 0; seat < m.game.NumPlayers; seat++ {
		if seat == humanSeat {
			continue
		}
		name := fmt.Sprintf("seat %d", seat)
		if m.game.Phase() != engine.PhaseRoundOver && m.game.Seat() == seat {
			name = cursorStyle.Render(name)
		}
		info := fmt.Sprintf("%s\n%d cards", name, m.game.Table.Seats[seat].Len())
		if !m.game.Active(seat) {
			info = fmt.Sprintf("%s\nout", name)
		}
		parts = append(parts, boxStyle.Width(12).Render(info))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderTableThrow() string {
	last := m.game.Table.LastPlayed.Cards()
	if len(last) == 0 {
		return boxStyle.Width(30).Render("(table is empty)")
	}
	var cards []string
	for _, c := range last {
		label := suitLabel(m.labelSet, c.Suit())
		cards = append(cards, cardStyle(label).Render(" "+c.RankName()+label+" "))
	}
	content := fmt.Sprintf("seat %d: %s\nscore to beat: %d",
		m.game.LastThrower(), strings.Join(cards, " "), m.game.BetterThis())
	return boxStyle.Render(content)
}

func (m *Model) renderHand() string {
	hand := m.game.Table.Seats[humanSeat]
	if hand.Empty() {
		return boxStyle.Render("(no cards)")
	}

	var markRow, cardRow strings.Builder
	for i := 0; i < hand.Len(); i++ {
		c := hand.At(i)
		label := suitLabel(m.labelSet, c.Suit())
		text := fmt.Sprintf("%-3s", c.RankName()+label)

		style := cardStyle(label).Margin(0, 1)
		cardRow.WriteString(style.Render(text))

		mark := "   "
		switch {
		case i == m.cursor && i < len(m.selected) && m.selected[i]:
			mark = selectedStyle.Render(" ▼ ")
		case i == m.cursor:
			mark = cursorStyle.Render(" ▼ ")
		case i < len(m.selected) && m.selected[i]:
			mark = selectedStyle.Render(" * ")
		}
		markRow.WriteString(" " + mark + " ")
	}

	title := fmt.Sprintf("your hand (%d cards)", hand.Len())
	content := lipgloss.JoinVertical(lipgloss.Left, title, markRow.String(), cardRow.String())
	return boxStyle.Render(content)
}

func (m *Model) renderStatus() string {
	switch m.game.Phase() {
	case engine.PhaseRoundOver:
		if m.game.Loser() < 0 {
			return "round abandoned, press r for a new deal or q to quit"
		}
		verdict := fmt.Sprintf("seat %d loses", m.game.Loser())
		if m.game.Loser() == humanSeat {
			verdict = "you lose"
		} else if order := m.game.FinishOrder(); len(order) > 0 && order[0] == humanSeat {
			verdict = "you win!"
		}
		return fmt.Sprintf("%s  press r for a new deal, q to quit", verdict)

	case engine.PhaseForcedOpen:
		if m.game.Seat() == humanSeat {
			return cursorStyle.Render(fmt.Sprintf(
				"your turn: open with a throw containing %s", m.label(m.game.ForcedCard())))
		}

	case engine.PhaseControlled:
		if m.game.Seat() == humanSeat {
			return cursorStyle.Render("your turn: you have control, throw anything")
		}

	case engine.PhaseNormal:
		if m.game.Seat() == humanSeat {
			return cursorStyle.Render(fmt.Sprintf(
				"your turn: beat score %d with %d cards, or pass",
				m.game.BetterThis(), m.game.Table.LastPlayed.Len()))
		}
	}
	return dimStyle.Render(fmt.Sprintf("waiting for seat %d...", m.game.Seat()))
}
