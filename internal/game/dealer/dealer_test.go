package dealer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jptuazon/pusoy-dos/internal/game/card"
)

func TestDealDistribution(t *testing.T) {
	tests := []struct {
		name       string
		players    int
		discard    int
		perSeat    int
		inDiscard  int
	}{
		{"Four players full deck", 4, 0, 13, 0},
		{"Three players full deck leaves one over", 3, 0, 17, 1},
		{"Two players with discard", 2, 10, 21, 10},
		{"Three players discard plus remainder", 3, 4, 16, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := Deal(tt.players, tt.discard, 42)
			require.NoError(t, err)

			for i := 0; i < tt.players; i++ {
				assert.Equal(t, tt.perSeat, tbl.Seats[i].Len(), "seat %d", i)
			}
			assert.GreaterOrEqual(t, tbl.Discard.Len(), tt.inDiscard)
			assert.Equal(t, card.DeckSize, tt.perSeat*tt.players+tbl.Discard.Len())
			assert.NoError(t, tbl.CheckInvariant())
		})
	}
}

func TestDealRejectsBadCounts(t *testing.T) {
	_, err := Deal(1, 0, 1)
	assert.Error(t, err)
	_, err = Deal(5, 0, 1)
	assert.Error(t, err)
	_, err = Deal(4, 52, 1)
	assert.Error(t, err)
	_, err = Deal(4, -1, 1)
	assert.Error(t, err)
}

func TestDealIsDeterministic(t *testing.T) {
	a, err := Deal(4, 0, 7)
	require.NoError(t, err)
	b, err := Deal(4, 0, 7)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		assert.Equal(t, a.Seats[i].Cards(), b.Seats[i].Cards())
	}

	c, err := Deal(4, 0, 8)
	require.NoError(t, err)
	same := true
	for i := 0; i < 4; i++ {
		if !assert.ObjectsAreEqual(a.Seats[i].Cards(), c.Seats[i].Cards()) {
			same = false
		}
	}
	assert.False(t, same, "different seeds should shuffle differently")
}

func TestDealtHandsAreSorted(t *testing.T) {
	tbl, err := Deal(4, 0, 99)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		cards := tbl.Seats[i].Cards()
		for j := 1; j < len(cards); j++ {
			assert.Less(t, cards[j-1], cards[j])
		}
	}
}

func TestLowestDealt(t *testing.T) {
	tbl, err := Deal(4, 0, 3)
	require.NoError(t, err)

	lowest, seat := LowestDealt(tbl, 4)
	require.GreaterOrEqual(t, seat, 0)
	assert.True(t, tbl.Seats[seat].Contains(lowest))
	for i := 0; i < 4; i++ {
		low, ok := tbl.Seats[i].Lowest()
		require.True(t, ok)
		assert.GreaterOrEqual(t, low, lowest)
	}

	// With no discard every card is dealt, so the forced card is id 0.
	assert.Equal(t, card.Card(0), lowest)
}
