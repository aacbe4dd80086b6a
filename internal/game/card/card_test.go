package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardIdentity(t *testing.T) {
	for rank := 0; rank < 13; rank++ {
		for suit := Suit(0); suit < 4; suit++ {
			c := New(rank, suit)
			assert.Equal(t, rank, c.Rank())
			assert.Equal(t, suit, c.Suit())
		}
	}
}

func TestRotatedSpace(t *testing.T) {
	tests := []struct {
		name    string
		card    Card
		rotated int
		rotRank int
	}{
		{"Ace of clubs becomes rotated zero", New(RankAce, Clubs), 0, 0},
		{"Two sits directly above the ace", New(RankTwo, Clubs), 4, 1},
		{"Three follows the two", New(0, Clubs), 8, 2},
		{"King of diamonds is the rotated top", New(RankKing, Diamonds), 51, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.rotated, tt.card.Rotated())
			assert.Equal(t, tt.rotRank, tt.card.RotatedRank())
		})
	}
}

func TestCardString(t *testing.T) {
	assert.Equal(t, "3♣", Card(0).String())
	assert.Equal(t, "2♦", New(RankTwo, Diamonds).String())
	assert.Equal(t, "10♥", New(RankTen, Hearts).String())
	assert.Equal(t, "card(52)", Card(52).String())
}

func TestDeckIsComplete(t *testing.T) {
	deck := Deck()
	require.Len(t, deck, DeckSize)
	for i, c := range deck {
		assert.Equal(t, Card(i), c)
	}
}

func TestHandMarksFollowSort(t *testing.T) {
	h := NewHand(New(RankTwo, Clubs), Card(0), New(5, Hearts))
	h.SetMark(0, true) // mark the 2

	h.Sort()
	require.Equal(t, []Card{Card(0), New(5, Hearts), New(RankTwo, Clubs)}, h.Cards())
	assert.Equal(t, []bool{false, false, true}, h.Marks())
}

func TestHandSortRotated(t *testing.T) {
	// By id the ace outranks the 4; rotated, the ace is lowest of all.
	h := NewHand(New(1, Spades), New(RankAce, Clubs))
	h.SortRotated()
	assert.Equal(t, New(RankAce, Clubs), h.At(0))
}

func TestHandRemoveMarked(t *testing.T) {
	h := NewHand(Card(0), Card(5), Card(10), Card(15))
	h.SetMark(1, true)
	h.SetMark(3, true)

	removed := h.RemoveMarked()
	assert.Equal(t, []Card{Card(5), Card(15)}, removed)
	assert.Equal(t, []Card{Card(0), Card(10)}, h.Cards())
	assert.Equal(t, []bool{false, false}, h.Marks())
}

func TestHandRemoveAt(t *testing.T) {
	h := NewHand(Card(0), Card(5), Card(10))
	removed := h.RemoveAt([]int{0, 2})
	assert.Equal(t, []Card{Card(0), Card(10)}, removed)
	assert.Equal(t, []Card{Card(5)}, h.Cards())
}

func TestHandRestore(t *testing.T) {
	h := NewHand(Card(0), Card(5), Card(10))
	snapshot := NewHand()
	snapshot.Restore(h)

	h.RemoveAt([]int{1})
	h.SetMark(0, true)
	require.Equal(t, 2, h.Len())

	h.Restore(snapshot)
	assert.Equal(t, []Card{Card(0), Card(5), Card(10)}, h.Cards())
	assert.Equal(t, []bool{false, false, false}, h.Marks())
}

func TestHandLowest(t *testing.T) {
	h := NewHand(Card(30), Card(7), Card(44))
	low, ok := h.Lowest()
	require.True(t, ok)
	assert.Equal(t, Card(7), low)

	_, ok = NewHand().Lowest()
	assert.False(t, ok)
}

func TestTableInvariant(t *testing.T) {
	tbl := NewTable()
	for i, c := range Deck() {
		tbl.Seats[i%4].Add(c)
	}
	require.NoError(t, tbl.CheckInvariant())

	// Moving a card between zones keeps the invariant.
	moved := tbl.Seats[0].RemoveAt([]int{0})
	tbl.LastPlayed.Add(moved...)
	require.NoError(t, tbl.CheckInvariant())

	// Duplicating one breaks it.
	tbl.Discard.Add(moved...)
	assert.Error(t, tbl.CheckInvariant())
}
