package protocol

// HelloPayload joins a table. The game config travels with it so the
// server can detect peers configured differently before dealing.
type HelloPayload struct {
	Name   string        `json:"name"`
	Config ConfigPayload `json:"config"`
}

// ConfigPayload is the subset of game configuration that every peer at
// a table must agree on. Cosmetic settings (suit labels, count display)
// deliberately stay out.
type ConfigPayload struct {
	Players     int    `json:"players"`
	Discard     int    `json:"discard"`
	ControlMode string `json:"control_mode"`
}

// Mismatch names the first field where the two configs disagree, or ""
// when they match.
func (c ConfigPayload) Mismatch(other ConfigPayload) string {
	switch {
	case c.Players != other.Players:
		return "players"
	case c.Discard != other.Discard:
		return "discard"
	case c.ControlMode != other.ControlMode:
		return "control_mode"
	}
	return ""
}

// WelcomePayload answers a hello with the assigned seat.
type WelcomePayload struct {
	PlayerID string        `json:"player_id"`
	Seat     int           `json:"seat"`
	Config   ConfigPayload `json:"config"`
}

// ThrowPayload proposes a card subset. Cards are the full hand in its
// current order as numeric card ids, with Selected marking the proposed
// positions; the server re-validates against its own copy of the hand.
type ThrowPayload struct {
	Seat     int    `json:"seat"`
	Cards    []int  `json:"cards"`
	Selected []bool `json:"selected"`
}

// ThrownPayload announces a committed throw.
type ThrownPayload struct {
	Seat  int    `json:"seat"`
	Cards []int  `json:"cards"`
	Shape string `json:"shape"`
	Score int    `json:"score"`
	Left  int    `json:"left"` // cards remaining in the thrower's hand
	Won   bool   `json:"won"`
}

// PassedPayload announces a pass or forfeit.
type PassedPayload struct {
	Seat      int  `json:"seat"`
	Forfeited bool `json:"forfeited"`
}

// StatePayload is a full table snapshot from one seat's point of view:
// the receiver's own cards plus public state only.
type StatePayload struct {
	Seat       int    `json:"seat"`
	Phase      string `json:"phase"`
	Acting     int    `json:"acting"`
	Hand       []int  `json:"hand"`
	LastPlayed []int  `json:"last_played"`
	BetterThis int    `json:"better_this"`
	Counts     []int  `json:"counts"` // per-seat remaining card counts
	ForcedCard int    `json:"forced_card,omitempty"`
}

// RoundOverPayload closes the round.
type RoundOverPayload struct {
	FinishOrder []int `json:"finish_order"`
	Loser       int   `json:"loser"` // -1 when the round was abandoned
}

// ErrorPayload carries a coded rejection.
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
