// Package engine drives the per-turn state machine: whose turn it is,
// forced openings, control transfer, and win/loss bookkeeping.
//
// The engine is single-threaded and synchronous. It never waits: the
// transport and input layers submit discrete, already-complete commands
// one at a time, and each command is applied in submission order. In a
// concurrent setting the engine must be owned by a single goroutine fed
// from a queue.
package engine

import (
	"github.com/jptuazon/pusoy-dos/internal/apperrors"
	"github.com/jptuazon/pusoy-dos/internal/game/card"
	"github.com/jptuazon/pusoy-dos/internal/game/dealer"
	"github.com/jptuazon/pusoy-dos/internal/game/rule"
	"github.com/jptuazon/pusoy-dos/internal/logger"
)

// Phase is the turn machine's state.
type Phase int

const (
	// PhaseForcedOpen: the round's first throw, which must contain the
	// globally lowest dealt card.
	PhaseForcedOpen Phase = iota
	// PhaseControlled: the acting seat holds control and throws freely.
	PhaseControlled
	// PhaseNormal: the acting seat must beat the table throw at its
	// arity, or pass.
	PhaseNormal
	// PhaseRoundOver: one seat remains with cards; it is the loser.
	PhaseRoundOver
)

func (p Phase) String() string {
	switch p {
	case PhaseForcedOpen:
		return "forced open"
	case PhaseControlled:
		return "controlled"
	case PhaseNormal:
		return "normal"
	default:
		return "round over"
	}
}

// ControlMode selects how control transfers when a seat empties its hand.
type ControlMode int

const (
	// ControlBeatChance: the seat after a winner gets one uncontested
	// bonus throw.
	ControlBeatChance ControlMode = iota
	// ControlImmediate: the winner's seat is simply skipped.
	ControlImmediate
)

// Result reports what one command did.
type Result struct {
	Seat      int
	Passed    bool
	Shape     rule.Shape
	Score     int
	Cards     []card.Card
	Won       bool
	RoundOver bool
}

// Game is the one mutable game-state instance: every zone on the table
// plus the turn state. Commands are its only mutators.
type Game struct {
	Table      *card.Table
	NumPlayers int
	Mode       ControlMode

	phase       Phase
	seat        int
	lastThrower int
	betterThis  int
	forced      card.Card

	active      []bool
	finishOrder []int
	forfeited   []int
	loser       int
}

// New deals a fresh round. The seat holding the globally lowest dealt
// card opens and must include that card in its first throw.
func New(numPlayers, discard int, seed uint64, mode ControlMode) (*Game, error) {
	t, err := dealer.Deal(numPlayers, discard, seed)
	if err != nil {
		return nil, err
	}
	forced, opener := dealer.LowestDealt(t, numPlayers)
	g := &Game{
		Table:       t,
		NumPlayers:  numPlayers,
		Mode:        mode,
		phase:       PhaseForcedOpen,
		seat:        opener,
		lastThrower: opener,
		forced:      forced,
		active:      make([]bool, numPlayers),
		loser:       -1,
	}
	for i := range g.active {
		g.active[i] = true
	}
	logger.LogInfo("new round: %d players, discard %d, seat %d opens with %v",
		numPlayers, discard, opener, forced)
	return g, nil
}

func (g *Game) Phase() Phase          { return g.phase }
func (g *Game) Seat() int             { return g.seat }
func (g *Game) BetterThis() int       { return g.betterThis }
func (g *Game) LastThrower() int      { return g.lastThrower }
func (g *Game) ForcedCard() card.Card { return g.forced }
func (g *Game) Loser() int            { return g.loser }

// Active reports whether the seat still holds cards and plays turns.
func (g *Game) Active(seat int) bool {
	return seat >= 0 && seat < g.NumPlayers && g.active[seat]
}

// FinishOrder lists the seats that emptied their hands, in order.
func (g *Game) FinishOrder() []int {
	out := make([]int, len(g.finishOrder))
	copy(out, g.finishOrder)
	return out
}

// Forfeited lists the seats removed by forfeit, in order.
func (g *Game) Forfeited() []int {
	out := make([]int, len(g.forfeited))
	copy(out, g.forfeited)
	return out
}

// policy translates the phase into the selector constraint for a throw.
func (g *Game) policy() (rule.Policy, int) {
	switch g.phase {
	case PhaseForcedOpen:
		return rule.ForcedOpen, 0
	case PhaseControlled:
		return rule.FreeThrow, 0
	default:
		return rule.MatchArity, g.Table.LastPlayed.Len()
	}
}

func (g *Game) checkTurn(seat int) error {
	if g.phase == PhaseRoundOver {
		return apperrors.ErrRoundOver
	}
	if seat < 0 || seat >= g.NumPlayers {
		return apperrors.ErrUnknownSeat
	}
	if seat != g.seat {
		return apperrors.ErrNotYourTurn
	}
	return nil
}

// Throw validates a human-proposed card subset (positions into the
// seat's hand) and, if legal, commits it and advances the turn.
func (g *Game) Throw(seat int, indices []int) (Result, error) {
	if err := g.checkTurn(seat); err != nil {
		return Result{}, err
	}
	pol, _ := g.policy()
	combo, err := rule.ValidateThrow(g.Table, seat, indices, pol, g.betterThis, g.forced)
	if err != nil {
		return Result{}, err
	}
	return g.applyThrow(seat, combo, g.Table.LastPlayed.Cards()), nil
}

// AutoPlay lets the move selector act for an automated seat: the
// cheapest legal throw if one exists, otherwise a pass. A failed
// forced-open search is an engine invariant violation, not a pass: the
// forced card is always playable as a single.
func (g *Game) AutoPlay(seat int) (Result, error) {
	if err := g.checkTurn(seat); err != nil {
		return Result{}, err
	}
	pol, arity := g.policy()
	combo, ok := rule.Select(g.Table.Seats[seat], pol, arity, g.betterThis, g.forced)
	if !ok {
		if pol == rule.ForcedOpen {
			logger.LogError("forced-open search exhausted for seat %d holding %v",
				seat, g.Table.Seats[seat].Cards())
			return Result{}, apperrors.ErrInvariant
		}
		return g.Pass(seat)
	}
	thrown := rule.CommitSelected(g.Table, seat, combo)
	return g.applyThrow(seat, combo, thrown), nil
}

func (g *Game) applyThrow(seat int, combo rule.Combo, thrown []card.Card) Result {
	g.betterThis = combo.Score
	g.lastThrower = seat
	res := Result{Seat: seat, Shape: combo.Shape, Score: combo.Score, Cards: thrown}
	logger.LogInfo("seat %d threw %s (score %d): %v, %d cards left",
		seat, combo.Shape, combo.Score, thrown, g.Table.Seats[seat].Len())

	if g.Table.Seats[seat].Empty() {
		res.Won = true
		g.finishOrder = append(g.finishOrder, seat)
		g.active[seat] = false
		if g.activeCount() == 1 {
			g.endRound(g.remainingSeat())
			res.RoundOver = true
			return res
		}
		next := g.nextActive(seat)
		switch g.Mode {
		case ControlBeatChance:
			// One bonus uncontested throw for the seat after the winner.
			g.seat = next
			g.lastThrower = next
			g.betterThis = 0
			g.phase = PhaseControlled
		default: // ControlImmediate
			// Winner skipped; the table throw still stands. If everyone
			// passes, the pass rotation hands control to the seat after
			// the departed winner.
			g.seat = next
			g.phase = PhaseNormal
		}
		return res
	}

	g.seat = g.nextActive(seat)
	g.phase = PhaseNormal
	return res
}

// Pass rotates to the next active seat. When rotation returns to the
// recorded last thrower (or past its seat, if it has since emptied its
// hand), control comes back uncontested: the threshold resets and the
// seat throws freely.
func (g *Game) Pass(seat int) (Result, error) {
	if err := g.checkTurn(seat); err != nil {
		return Result{}, err
	}
	if g.phase == PhaseForcedOpen {
		return Result{}, apperrors.ErrMustOpen
	}
	res := Result{Seat: seat, Passed: true}
	logger.LogInfo("seat %d passed", seat)

	if g.phase == PhaseControlled {
		// Declining control just hands the free throw onward.
		g.seat = g.nextActive(seat)
		g.lastThrower = g.seat
		g.betterThis = 0
		return res, nil
	}

	regained := false
	s := g.seat
	for {
		s = (s + 1) % g.NumPlayers
		if s == g.lastThrower {
			regained = true
		}
		if g.active[s] {
			break
		}
	}
	g.seat = s
	if regained {
		g.betterThis = 0
		g.phase = PhaseControlled
		g.lastThrower = s
	}
	return res, nil
}

// Forfeit removes a seat as if it lost: its cards retire to the discard
// pile and it leaves the rotation. Accepted from any seat at any time;
// the transport reports disconnects through this command.
func (g *Game) Forfeit(seat int) (Result, error) {
	if g.phase == PhaseRoundOver {
		return Result{}, apperrors.ErrRoundOver
	}
	if seat < 0 || seat >= g.NumPlayers || !g.active[seat] {
		return Result{}, apperrors.ErrUnknownSeat
	}
	logger.LogInfo("seat %d forfeits holding %d cards", seat, g.Table.Seats[seat].Len())
	g.Table.Discard.Add(g.Table.Seats[seat].RemoveAll()...)
	g.active[seat] = false
	g.forfeited = append(g.forfeited, seat)
	res := Result{Seat: seat, Passed: true}

	if g.activeCount() == 1 {
		last := g.remainingSeat()
		g.finishOrder = append(g.finishOrder, last)
		g.active[last] = false
		g.phase = PhaseRoundOver
		g.loser = seat
		res.RoundOver = true
		return res, nil
	}
	if g.seat == seat {
		g.seat = g.nextActive(seat)
		if g.phase == PhaseForcedOpen {
			// The opener is gone along with the forced card; the next
			// seat opens freely.
			g.phase = PhaseControlled
			g.lastThrower = g.seat
			g.betterThis = 0
		}
	}
	return res, nil
}

// Quit terminates the round immediately. Accepted from any seat.
func (g *Game) Quit(seat int) Result {
	logger.LogInfo("seat %d quit, round abandoned", seat)
	g.phase = PhaseRoundOver
	return Result{Seat: seat, RoundOver: true}
}

func (g *Game) endRound(loser int) {
	g.phase = PhaseRoundOver
	g.loser = loser
	g.active[loser] = false
	logger.LogInfo("round over: finish order %v, seat %d loses", g.finishOrder, loser)
}

func (g *Game) activeCount() int {
	n := 0
	for _, a := range g.active {
		if a {
			n++
		}
	}
	return n
}

func (g *Game) remainingSeat() int {
	for i, a := range g.active {
		if a {
			return i
		}
	}
	return -1
}

func (g *Game) nextActive(seat int) int {
	s := seat
	for i := 0; i < g.NumPlayers; i++ {
		s = (s + 1) % g.NumPlayers
		if g.active[s] {
			return s
		}
	}
	return seat
}
