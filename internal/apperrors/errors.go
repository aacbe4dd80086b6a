package apperrors

// GameError is a coded error shared by the engine and the table server.
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// Error codes carried over the wire.
const (
	CodeIllegalThrow = 1001
	CodeNotYourTurn  = 1002
	CodeMustOpen     = 1003
	CodeRoundOver    = 1004
	CodeUnknownSeat  = 1005
	CodeConfigClash  = 1006
	CodeInvariant    = 1500
)

var (
	// ErrIllegalThrow: the proposed card subset is not a legal throw for
	// the current constraints. State is unchanged.
	ErrIllegalThrow = &GameError{Code: CodeIllegalThrow, Message: "illegal throw"}
	// ErrNotYourTurn: a command arrived from a seat that is not acting.
	ErrNotYourTurn = &GameError{Code: CodeNotYourTurn, Message: "not your turn"}
	// ErrMustOpen: the forced opener tried to pass. The forced card is
	// always playable as a single, so the opener always has a throw.
	ErrMustOpen = &GameError{Code: CodeMustOpen, Message: "the opening seat must throw"}
	// ErrRoundOver: the round has ended; only a new deal accepts commands.
	ErrRoundOver = &GameError{Code: CodeRoundOver, Message: "round is over"}
	// ErrUnknownSeat: seat index outside the configured player count.
	ErrUnknownSeat = &GameError{Code: CodeUnknownSeat, Message: "unknown seat"}
	// ErrConfigMismatch: the peers disagree on game configuration.
	ErrConfigMismatch = &GameError{Code: CodeConfigClash, Message: "game configuration mismatch"}
	// ErrInvariant: a search failed to find a combination guaranteed to
	// exist. This is a bug in detector logic or state corruption, never
	// a player mistake; callers should log the hand and degrade.
	ErrInvariant = &GameError{Code: CodeInvariant, Message: "engine invariant violation"}
)
