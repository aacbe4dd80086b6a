// Package dealer shuffles and deals the deck and determines who opens.
package dealer

import (
	"fmt"
	"math/rand/v2"

	"github.com/jptuazon/pusoy-dos/internal/game/card"
)

// Deal shuffles a full deck with the given seed and distributes
// floor((52-discard)/numPlayers) cards round-robin starting at seat 0.
// The configured discard count plus any remainder goes to the discard
// zone, so the table always accounts for all 52 cards. Seat hands come
// back sorted ascending by card id.
func Deal(numPlayers, discard int, seed uint64) (*card.Table, error) {
	if numPlayers < 2 || numPlayers > card.MaxSeats {
		return nil, fmt.Errorf("player count %d not in [2,%d]", numPlayers, card.MaxSeats)
	}
	if discard < 0 || discard > card.DeckSize-numPlayers {
		return nil, fmt.Errorf("discard count %d leaves no cards to deal", discard)
	}

	deck := card.Deck()
	rng := rand.New(rand.NewPCG(seed, 0))
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	t := card.NewTable()
	perSeat := (card.DeckSize - discard) / numPlayers
	dealt := perSeat * numPlayers
	for i := 0; i < dealt; i++ {
		t.Seats[i%numPlayers].Add(deck[i])
	}
	t.Discard.Add(deck[dealt:]...)
	for i := 0; i < numPlayers; i++ {
		t.Seats[i].Sort()
	}
	return t, nil
}

// LowestDealt returns the lowest card id held by any seat. The seat
// holding it must open the round with a throw containing it.
func LowestDealt(t *card.Table, numPlayers int) (card.Card, int) {
	lowest := card.Card(card.DeckSize)
	seat := -1
	for i := 0; i < numPlayers; i++ {
		if low, ok := t.Seats[i].Lowest(); ok && low < lowest {
			lowest = low
			seat = i
		}
	}
	return lowest, seat
}
