package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jptuazon/pusoy-dos/internal/config"
	"github.com/jptuazon/pusoy-dos/internal/game/card"
	"github.com/jptuazon/pusoy-dos/internal/network/client"
	"github.com/jptuazon/pusoy-dos/internal/protocol"
)

type serverMsg struct{ msg *protocol.Message }
type connClosedMsg struct{}

// OnlineModel is the bubbletea model for a networked table. All game
// state is the server's; this model only renders the latest snapshot
// and sends commands.
type OnlineModel struct {
	cfg    *config.Config
	client *client.Client
	name   string

	state    *protocol.StatePayload
	cursor   int
	selected []bool
	labelSet int

	log    []string
	errMsg string
	status string

	finishOrder []int
	loser       int
	over        bool
	closed      bool

	width  int
	height int
}

// NewOnlineModel dials nothing yet; Init connects.
func NewOnlineModel(cfg *config.Config, serverURL, name string) *OnlineModel {
	return &OnlineModel{
		cfg:      cfg,
		client:   client.New(serverURL),
		name:     name,
		labelSet: labelSetFor(cfg.Game.SuitLabels),
		status:   "connecting...",
		loser:    -1,
	}
}

func (m *OnlineModel) Init() tea.Cmd {
	if err := m.client.Connect(); err != nil {
		m.errMsg = fmt.Sprintf("connect failed: %v", err)
		m.closed = true
		return nil
	}
	if err := m.client.Hello(m.name, protocol.ConfigPayload{
		Players:     m.cfg.Game.Players,
		Discard:     m.cfg.Game.Discard,
		ControlMode: m.cfg.Game.ControlMode,
	}); err != nil {
		m.errMsg = err.Error()
	}
	return m.waitForServer()
}

// waitForServer blocks on the receive channel as a tea command.
func (m *OnlineModel) waitForServer() tea.Cmd {
	return func() tea.Msg {
		msg, err := m.client.Receive()
		if err != nil {
			return connClosedMsg{}
		}
		return serverMsg{msg: msg}
	}
}

func (m *OnlineModel) appendLog(line string) {
	m.log = append(m.log, line)
	if len(m.log) > 6 {
		m.log = m.log[len(m.log)-6:]
	}
}

func (m *OnlineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case connClosedMsg:
		m.closed = true
		m.status = "disconnected"
		return m, nil

	case serverMsg:
		m.handleServer(msg.msg)
		return m, m.waitForServer()

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m *OnlineModel) handleServer(msg *protocol.Message) {
	switch msg.Type {
	case protocol.MsgWelcome:
		m.status = fmt.Sprintf("seated at %d, waiting for players...", m.client.Seat)

	case protocol.MsgState:
		var state protocol.StatePayload
		if err := protocol.DecodePayload(msg, &state); err != nil {
			return
		}
		if m.state == nil || len(state.Hand) != len(m.selected) {
			m.selected = make([]bool, len(state.Hand))
			if m.cursor >= len(m.selected) {
				m.cursor = max(0, len(m.selected)-1)
			}
		}
		m.state = &state
		m.status = ""

	case protocol.MsgThrown:
		var thrown protocol.ThrownPayload
		if err := protocol.DecodePayload(msg, &thrown); err != nil {
			return
		}
		m.appendLog(fmt.Sprintf("seat %d throws %s for %d: %s",
			thrown.Seat, thrown.Shape, thrown.Score, m.labelIDs(thrown.Cards)))
		if thrown.Won {
			m.appendLog(fmt.Sprintf("seat %d is out of cards", thrown.Seat))
		}
		if thrown.Seat == m.client.Seat {
			m.errMsg = ""
		}

	case protocol.MsgPassed:
		var passed protocol.PassedPayload
		if err := protocol.DecodePayload(msg, &passed); err != nil {
			return
		}
		if passed.Forfeited {
			m.appendLog(fmt.Sprintf("seat %d forfeits", passed.Seat))
		} else {
			m.appendLog(fmt.Sprintf("seat %d passes", passed.Seat))
		}

	case protocol.MsgRoundOver:
		var ro protocol.RoundOverPayload
		if err := protocol.DecodePayload(msg, &ro); err != nil {
			return
		}
		m.over = true
		m.finishOrder = ro.FinishOrder
		m.loser = ro.Loser

	case protocol.MsgError:
		var e protocol.ErrorPayload
		if err := protocol.DecodePayload(msg, &e); err != nil {
			return
		}
		m.errMsg = e.Message
	}
}

func (m *OnlineModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		if !m.over && !m.closed {
			_ = m.client.Quit()
		}
		m.client.Close()
		return m, tea.Quit
	case "s":
		m.labelSet = (m.labelSet + 1) % len(suitLabelSets)
		return m, nil
	}

	if m.state == nil || m.over || m.closed {
		return m, nil
	}

	switch msg.String() {
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor < len(m.selected)-1 {
			m.cursor++
		}
	case " ":
		if m.cursor < len(m.selected) {
			m.selected[m.cursor] = !m.selected[m.cursor]
		}
	case "enter":
		any := false
		for _, sel := range m.selected {
			any = any || sel
		}
		if !any {
			m.errMsg = "select cards with space first"
			return m, nil
		}
		if err := m.client.Throw(m.state.Hand, m.selected); err != nil {
			m.errMsg = err.Error()
		}
	case "p":
		if err := m.client.Pass(); err != nil {
			m.errMsg = err.Error()
		}
	case "f":
		if err := m.client.Forfeit(); err != nil {
			m.errMsg = err.Error()
		}
	}
	return m, nil
}

func (m *OnlineModel) labelID(id int) string {
	c := card.Card(id)
	return c.RankName() + suitLabel(m.labelSet, c.Suit())
}

func (m *OnlineModel) labelIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = m.labelID(id)
	}
	return strings.Join(parts, " ")
}

func (m *OnlineModel) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle("Pusoy Dos (online)"))
	sb.WriteString("\n\n")

	switch {
	case m.over:
		verdict := "round abandoned"
		if m.loser >= 0 {
			verdict = fmt.Sprintf("round over, seat %d loses", m.loser)
			if m.loser == m.client.Seat {
				verdict = "round over, you lose"
			} else if len(m.finishOrder) > 0 && m.finishOrder[0] == m.client.Seat {
				verdict = "round over, you win!"
			}
		}
		sb.WriteString(verdict + "\n")
	case m.state == nil:
		sb.WriteString(m.status + "\n")
	default:
		sb.WriteString(m.renderTable())
	}

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

func (m *OnlineModel) renderTable() string {
	var sb strings.Builder
	st := m.state

	if m.cfg.Game.ShowCounts {
		var parts []string
		for seat, count := range st.Counts {
			if seat == st.Seat {
				continue
			}
			name := fmt.Sprintf("seat %d", seat)
			if st.Acting == seat {
				name = cursorStyle.Render(name)
			}
			parts = append(parts, boxStyle.Width(12).Render(fmt.Sprintf("%s\n%d cards", name, count)))
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
		sb.WriteString("\n")
	}

	if len(st.LastPlayed) == 0 {
		sb.WriteString(boxStyle.Width(30).Render("(table is empty)"))
	} else {
		sb.WriteString(boxStyle.Render(fmt.Sprintf("on the table: %s\nscore to beat: %d",
			m.labelIDs(st.LastPlayed), st.BetterThis)))
	}
	sb.WriteString("\n")

	var markRow, cardRow strings.Builder
	for i, id := range st.Hand {
		c := card.Card(id)
		label := suitLabel(m.labelSet, c.Suit())
		cardRow.WriteString(cardStyle(label).Margin(0, 1).Render(fmt.Sprintf("%-3s", c.RankName()+label)))

		mark := "   "
		switch {
		case i == m.cursor && m.selected[i]:
			mark = selectedStyle.Render(" ▼ ")
		case i == m.cursor:
			mark = cursorStyle.Render(" ▼ ")
		case m.selected[i]:
			mark = selectedStyle.Render(" * ")
		}
		markRow.WriteString(" " + mark + " ")
	}
	title := fmt.Sprintf("your hand (%d cards)", len(st.Hand))
	sb.WriteString(boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, markRow.String(), cardRow.String())))
	sb.WriteString("\n")

	if st.Acting == st.Seat {
		switch st.Phase {
		case "forced open":
			sb.WriteString(cursorStyle.Render(fmt.Sprintf(
				"your turn: open with a throw containing %s", m.labelID(st.ForcedCard))))
		case "controlled":
			sb.WriteString(cursorStyle.Render("your turn: you have control, throw anything"))
		default:
			sb.WriteString(cursorStyle.Render(fmt.Sprintf(
				"your turn: beat score %d with %d cards, or pass",
				st.BetterThis, len(st.LastPlayed))))
		}
	} else {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("waiting for seat %d...", st.Acting)))
	}
	return sb.String()
}
