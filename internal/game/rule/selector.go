package rule

import (
	"github.com/jptuazon/pusoy-dos/internal/game/card"
)

// Policy is the constraint the current turn places on a throw.
type Policy int

const (
	// ForcedOpen: the round's first throw, which must contain the
	// globally lowest dealt card.
	ForcedOpen Policy = iota
	// FreeThrow: the seat holds control and may throw any shape.
	FreeThrow
	// MatchArity: the throw must use exactly the arity on the table and
	// beat its score; failure to find one means pass.
	MatchArity
)

func (p Policy) String() string {
	switch p {
	case ForcedOpen:
		return "forced open"
	case FreeThrow:
		return "free throw"
	default:
		return "match arity"
	}
}

// searchArities is the descending order an unconstrained search walks.
// Four-card throws do not exist in the hierarchy.
var searchArities = [...]int{5, 3, 2, 1}

// Select produces the cheapest legal throw for the hand under the given
// policy. arity 0 means "any arity", searched descending {5,3,2,1};
// a nonzero arity restricts the search to that arity (the validator
// always restricts). forced is consulted only under ForcedOpen.
//
// Under ForcedOpen each detector is re-queried with its own last score
// as the next threshold until it yields a combination containing the
// forced card or exhausts; detectors are monotone over rising
// thresholds, so the walk terminates.
func Select(h *card.Hand, pol Policy, arity, betterThis int, forced card.Card) (Combo, bool) {
	arities := searchArities[:]
	if arity != 0 {
		arities = []int{arity}
	}

	switch pol {
	case MatchArity:
		return Detect(h, arity, betterThis)

	case FreeThrow:
		for _, a := range arities {
			if combo, ok := Detect(h, a, betterThis); ok {
				return combo, true
			}
		}
		return Combo{}, false

	default: // ForcedOpen
		for _, a := range arities {
			threshold := betterThis
			for {
				combo, ok := Detect(h, a, threshold)
				if !ok {
					break
				}
				if combo.Contains(h, forced) {
					return combo, true
				}
				threshold = combo.Score
			}
		}
		return Combo{}, false
	}
}
