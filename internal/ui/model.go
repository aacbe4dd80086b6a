// Package ui is the terminal front end for a local round: the player
// holds seat 0 and automated opponents fill the rest of the table.
package ui

import (
	"fmt"
	"math/rand/v2"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jptuazon/pusoy-dos/internal/config"
	"github.com/jptuazon/pusoy-dos/internal/game/engine"
	"github.com/jptuazon/pusoy-dos/internal/logger"
)

const humanSeat = 0

// botTickMsg fires when an automated seat should act.
type botTickMsg struct{}

// Model is the bubbletea model for a local game.
type Model struct {
	cfg  *config.Config
	game *engine.Game

	cursor   int
	selected []bool
	labelSet int

	log    []string
	errMsg string

	width  int
	height int
}

// NewModel deals a round per the config and returns the initial model.
func NewModel(cfg *config.Config) (*Model, error) {
	m := &Model{cfg: cfg, labelSet: labelSetFor(cfg.Game.SuitLabels)}
	if err := m.newRound(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) newRound() error {
	seed := m.cfg.Game.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	mode := engine.ControlBeatChance
	if m.cfg.Game.ControlMode == "immediate" {
		mode = engine.ControlImmediate
	}
	g, err := engine.New(m.cfg.Game.Players, m.cfg.Game.Discard, seed, mode)
	if err != nil {
		return err
	}
	m.game = g
	m.cursor = 0
	m.resetSelection()
	m.log = nil
	m.errMsg = ""
	m.appendLog(fmt.Sprintf("seat %d opens and must include %s",
		g.Seat(), m.label(g.ForcedCard())))
	return nil
}

func (m *Model) resetSelection() {
	m.selected = make([]bool, m.game.Table.Seats[humanSeat].Len())
	if m.cursor >= len(m.selected) {
		m.cursor = max(0, len(m.selected)-1)
	}
}

func (m *Model) appendLog(line string) {
	m.log = append(m.log, line)
	if len(m.log) > 6 {
		m.log = m.log[len(m.log)-6:]
	}
}

func (m *Model) Init() tea.Cmd {
	return m.maybeBotTurn()
}

// maybeBotTurn schedules a bot move when an automated seat is acting.
func (m *Model) maybeBotTurn() tea.Cmd {
	if m.game.Phase() == engine.PhaseRoundOver || m.game.Seat() == humanSeat {
		return nil
	}
	return tea.Tick(400*time.Millisecond, func(time.Time) tea.Msg {
		return botTickMsg{}
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case botTickMsg:
		return m.updateBot()

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m *Model) updateBot() (tea.Model, tea.Cmd) {
	seat := m.game.Seat()
	if m.game.Phase() == engine.PhaseRoundOver || seat == humanSeat {
		return m, nil
	}
	res, err := m.game.AutoPlay(seat)
	if err != nil {
		// A broken search would spin the bot loop forever; log and end
		// the round instead.
		logger.LogError("bot seat %d failed: %v", seat, err)
		m.game.Quit(seat)
		m.appendLog(fmt.Sprintf("seat %d hit an internal error, round abandoned", seat))
		return m, nil
	}
	m.recordResult(res)
	return m, m.maybeBotTurn()
}

func (m *Model) recordResult(res engine.Result) {
	if res.Passed {
		m.appendLog(fmt.Sprintf("seat %d passes", res.Seat))
	} else {
		m.appendLog(fmt.Sprintf("seat %d throws %s for %d: %s",
			res.Seat, res.Shape, res.Score, m.labels(res.Cards)))
	}
	if res.Won {
		m.appendLog(fmt.Sprintf("seat %d is out of cards", res.Seat))
	}
	if res.RoundOver {
		m.appendLog(fmt.Sprintf("round over, seat %d loses", m.game.Loser()))
	}
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		if m.game.Phase() != engine.PhaseRoundOver {
			m.game.Quit(humanSeat)
		}
		return m, tea.Quit

	case "s":
		m.labelSet = (m.labelSet + 1) % len(suitLabelSets)
		return m, nil

	case "r":
		if m.game.Phase() == engine.PhaseRoundOver {
			if err := m.newRound(); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			return m, m.maybeBotTurn()
		}
		return m, nil
	}

	if m.game.Phase() == engine.PhaseRoundOver || m.game.Seat() != humanSeat {
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
		return m.throwSelected()
	case "p":
		res, err := m.game.Pass(humanSeat)
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.recordResult(res)
		return m, m.maybeBotTurn()
	case "f":
		res, err := m.game.Forfeit(humanSeat)
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.appendLog("you forfeit the round")
		if res.RoundOver {
			m.appendLog(fmt.Sprintf("round over, seat %d loses", m.game.Loser()))
			return m, nil
		}
		return m, m.maybeBotTurn()
	}
	return m, nil
}

func (m *Model) throwSelected() (tea.Model, tea.Cmd) {
	var indices []int
	for i, sel := range m.selected {
		if sel {
			indices = append(indices, i)
		}
	}
	if len(indices) == 0 {
		m.errMsg = "select cards with space first"
		return m, nil
	}
	res, err := m.game.Throw(humanSeat, indices)
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	m.errMsg = ""
	m.resetSelection()
	m.recordResult(res)
	return m, m.maybeBotTurn()
}
