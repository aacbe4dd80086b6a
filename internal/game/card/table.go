package card

import "fmt"

// MaxSeats is the largest supported player count.
const MaxSeats = 4

// Table holds every card zone in a round. Cards only ever move between
// zones; the union of all zones is the full 52-card deck at all times.
type Table struct {
	Seats      [MaxSeats]*Hand
	Discard    *Hand // everything thrown in past exchanges
	LastPlayed *Hand // the throw currently on the table
	Scratch    *Hand // a candidate selection under validation
	Backup     *Hand // snapshot zone for atomic revert
}

func NewTable() *Table {
	t := &Table{
		Discard:    NewHand(),
		LastPlayed: NewHand(),
		Scratch:    NewHand(),
		Backup:     NewHand(),
	}
	for i := range t.Seats {
		t.Seats[i] = NewHand()
	}
	return t
}

// CheckInvariant verifies that the zones jointly hold each of the 52
// card ids exactly once. The backup zone is excluded: it holds copies,
// not live cards.
func (t *Table) CheckInvariant() error {
	var seen [DeckSize]int
	count := func(h *Hand) {
		for _, c := range h.Cards() {
			if c >= 0 && c < DeckSize {
				seen[c]++
			}
		}
	}
	for _, s := range t.Seats {
		count(s)
	}
	count(t.Discard)
	count(t.LastPlayed)
	count(t.Scratch)
	for id, n := range seen {
		if n != 1 {
			return fmt.Errorf("card %v appears %d times across zones", Card(id), n)
		}
	}
	return nil
}
