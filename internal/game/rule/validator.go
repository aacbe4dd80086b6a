package rule

import (
	"github.com/jptuazon/pusoy-dos/internal/apperrors"
	"github.com/jptuazon/pusoy-dos/internal/game/card"
)

// ValidateThrow checks a human-proposed card subset against what the
// selector would produce and commits or reverts atomically.
//
// The subset moves from the seat's hand into the scratch zone (with a
// snapshot kept in the backup zone), then the selector runs restricted
// to the scratch hand. The throw is legal only when the selector's
// combination consumes the scratch zone entirely: no leftover, no
// shortfall. On success the table's previous throw retires to the
// discard pile and the scratch cards become the new last-played pile;
// on failure the hand is restored verbatim from the snapshot.
func ValidateThrow(t *card.Table, seat int, indices []int, pol Policy, betterThis int, forced card.Card) (Combo, error) {
	if seat < 0 || seat >= len(t.Seats) {
		return Combo{}, apperrors.ErrUnknownSeat
	}
	hand := t.Seats[seat]
	if len(indices) == 0 || len(indices) > hand.Len() {
		return Combo{}, apperrors.ErrIllegalThrow
	}
	for _, i := range indices {
		if i < 0 || i >= hand.Len() {
			return Combo{}, apperrors.ErrIllegalThrow
		}
	}

	t.Backup.Restore(hand)
	t.Scratch.Add(hand.RemoveAt(indices)...)

	// Under MatchArity the search is pinned to the table throw's arity,
	// not the scratch size; a size mismatch then fails the
	// full-consumption check exactly like any other partial match.
	arity := t.Scratch.Len()
	if pol == MatchArity {
		arity = t.LastPlayed.Len()
	}

	combo, ok := Select(t.Scratch, pol, arity, betterThis, forced)
	if ok && combo.Arity() == t.Scratch.Len() {
		t.Discard.Add(t.LastPlayed.RemoveAll()...)
		t.LastPlayed.Add(t.Scratch.RemoveAll()...)
		t.Backup.RemoveAll()
		return combo, nil
	}

	hand.Restore(t.Backup)
	t.Scratch.RemoveAll()
	t.Backup.RemoveAll()
	return Combo{}, apperrors.ErrIllegalThrow
}

// CommitSelected moves a combination chosen by the selector out of an
// automated seat's hand: the chosen positions are marked, removed, and
// become the new last-played pile while the previous throw retires to
// the discard pile.
func CommitSelected(t *card.Table, seat int, combo Combo) []card.Card {
	hand := t.Seats[seat]
	hand.ClearMarks()
	for _, i := range combo.Indices {
		hand.SetMark(i, true)
	}
	thrown := hand.RemoveMarked()
	t.Discard.Add(t.LastPlayed.RemoveAll()...)
	t.LastPlayed.Add(thrown...)
	return thrown
}
