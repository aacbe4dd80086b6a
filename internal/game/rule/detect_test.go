package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jptuazon/pusoy-dos/internal/game/card"
)

func mk(rank int, suit card.Suit) card.Card {
	return card.New(rank, suit)
}

func handOf(cards ...card.Card) *card.Hand {
	return card.NewHand(cards...)
}

func comboCards(t *testing.T, h *card.Hand, combo Combo) []card.Card {
	t.Helper()
	out := make([]card.Card, 0, len(combo.Indices))
	for _, i := range combo.Indices {
		out = append(out, h.At(i))
	}
	return out
}

func TestDetectSingle(t *testing.T) {
	// 3 scores 1, 2 scores 13; suit never matters for singles.
	h := handOf(mk(card.RankTwo, card.Clubs), mk(0, card.Diamonds), mk(6, card.Hearts))

	combo, ok := Detect(h, 1, 0)
	require.True(t, ok)
	assert.Equal(t, ShapeSingle, combo.Shape)
	assert.Equal(t, 1, combo.Score)
	assert.Equal(t, []card.Card{mk(0, card.Diamonds)}, comboCards(t, h, combo))

	combo, ok = Detect(h, 1, 7)
	require.True(t, ok)
	assert.Equal(t, 13, combo.Score)

	_, ok = Detect(h, 1, 13)
	assert.False(t, ok)
}

func TestDetectPairSuitBreaksTies(t *testing.T) {
	// Two pairs of threes exist; the cheaper one uses the two lowest ids
	// and scores as its higher card's id.
	h := handOf(mk(0, card.Clubs), mk(0, card.Spades), mk(0, card.Hearts))

	combo, ok := Detect(h, 2, 0)
	require.True(t, ok)
	assert.Equal(t, ShapePair, combo.Shape)
	assert.Equal(t, int(mk(0, card.Spades)), combo.Score)

	combo, ok = Detect(h, 2, combo.Score)
	require.True(t, ok)
	assert.Equal(t, int(mk(0, card.Hearts)), combo.Score)
}

func TestDetectPairMixedRanksRejected(t *testing.T) {
	h := handOf(mk(0, card.Clubs), mk(1, card.Clubs), mk(2, card.Clubs))
	_, ok := Detect(h, 2, 0)
	assert.False(t, ok)
}

func TestDetectTrio(t *testing.T) {
	h := handOf(
		mk(3, card.Clubs), mk(3, card.Spades), mk(3, card.Hearts),
		mk(9, card.Clubs), mk(9, card.Spades), mk(9, card.Diamonds),
	)
	combo, ok := Detect(h, 3, 0)
	require.True(t, ok)
	assert.Equal(t, ShapeTrio, combo.Shape)
	assert.Equal(t, 4, combo.Score)

	combo, ok = Detect(h, 3, 4)
	require.True(t, ok)
	assert.Equal(t, 10, combo.Score)
}

func TestDetectArityFourNeverThrows(t *testing.T) {
	h := handOf(mk(4, card.Clubs), mk(4, card.Spades), mk(4, card.Hearts), mk(4, card.Diamonds))
	_, ok := Detect(h, 4, 0)
	assert.False(t, ok)
}

func TestDetectStraight(t *testing.T) {
	h := handOf(
		mk(0, card.Clubs), mk(1, card.Spades), mk(2, card.Hearts),
		mk(3, card.Diamonds), mk(4, card.Clubs), mk(10, card.Clubs),
	)
	combo, ok := Detect(h, 5, 0)
	require.True(t, ok)
	assert.Equal(t, ShapeStraight, combo.Shape)
	// High card 7 of clubs: rotated id 24, score 24-15.
	assert.Equal(t, 9, combo.Score)
}

func TestDetectStraightEnumeratesByHighCard(t *testing.T) {
	// Both sevens complete the run; re-querying with the first score
	// yields the higher-suited seven next.
	h := handOf(
		mk(0, card.Clubs), mk(1, card.Spades), mk(2, card.Hearts),
		mk(3, card.Diamonds), mk(4, card.Clubs), mk(4, card.Diamonds),
	)
	first, ok := Detect(h, 5, 0)
	require.True(t, ok)
	assert.Equal(t, 9, first.Score)

	second, ok := Detect(h, 5, first.Score)
	require.True(t, ok)
	assert.Greater(t, second.Score, first.Score)
	assert.Equal(t, mk(4, card.Diamonds).Rotated()-15, second.Score)
}

func TestDetectTenToAceIsTopStraight(t *testing.T) {
	h := handOf(
		mk(card.RankTen, card.Clubs), mk(card.RankJack, card.Clubs),
		mk(card.RankQueen, card.Spades), mk(card.RankKing, card.Hearts),
		mk(card.RankAce, card.Diamonds),
	)
	combo, ok := Detect(h, 5, 0)
	require.True(t, ok)
	assert.Equal(t, ShapeStraight, combo.Shape)
	// Scored off the ace: id 47 minus 7.
	assert.Equal(t, 40, combo.Score)
	assert.Equal(t, straightMax, combo.Score)
}

func TestDetectFlush(t *testing.T) {
	h := handOf(
		mk(0, card.Clubs), mk(1, card.Clubs), mk(2, card.Clubs),
		mk(3, card.Clubs), mk(5, card.Clubs), mk(card.RankKing, card.Clubs),
	)
	combo, ok := Detect(h, 5, 0)
	require.True(t, ok)
	assert.Equal(t, ShapeFlush, combo.Shape)
	// Four lowest clubs plus the 8: rank 5 + 36.
	assert.Equal(t, 41, combo.Score)

	combo, ok = Detect(h, 5, 41)
	require.True(t, ok)
	assert.Equal(t, 46, combo.Score) // king-high clubs flush
}

func TestDetectFlushPicksGlobalMinimumAcrossSuits(t *testing.T) {
	// A king-high clubs flush scores 46; an 8-high spades flush scores
	// 5+8+36 = 49. The clubs one must win even though spades sorts later.
	h := handOf(
		mk(0, card.Clubs), mk(1, card.Clubs), mk(2, card.Clubs),
		mk(3, card.Clubs), mk(card.RankKing, card.Clubs),
		mk(0, card.Spades), mk(1, card.Spades), mk(2, card.Spades),
		mk(3, card.Spades), mk(5, card.Spades),
	)
	combo, ok := Detect(h, 5, 0)
	require.True(t, ok)
	assert.Equal(t, ShapeFlush, combo.Shape)
	assert.Equal(t, 46, combo.Score)
}

func TestDetectFullHouse(t *testing.T) {
	h := handOf(
		mk(0, card.Clubs), mk(0, card.Spades), mk(0, card.Hearts),
		mk(2, card.Clubs), mk(2, card.Spades),
	)
	combo, ok := Detect(h, 5, 0)
	require.True(t, ok)
	assert.Equal(t, ShapeFullHouse, combo.Shape)
	assert.Equal(t, 73, combo.Score)
}

func TestDetectFullHousePairPreference(t *testing.T) {
	tests := []struct {
		name     string
		cards    []card.Card
		pairRank int
	}{
		{
			// A lone jack pair is spared by breaking the much lower trio
			// of fours instead.
			name: "High pair spared when a low spare trio exists",
			cards: []card.Card{
				mk(0, card.Clubs), mk(0, card.Spades), mk(0, card.Hearts),
				mk(card.RankJack, card.Clubs), mk(card.RankJack, card.Spades),
				mk(1, card.Clubs), mk(1, card.Spades), mk(1, card.Hearts),
			},
			pairRank: 1,
		},
		{
			// A low pair is used as is.
			name: "Low pair used directly",
			cards: []card.Card{
				mk(0, card.Clubs), mk(0, card.Spades), mk(0, card.Hearts),
				mk(2, card.Clubs), mk(2, card.Spades),
				mk(1, card.Clubs), mk(1, card.Spades), mk(1, card.Hearts),
			},
			pairRank: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handOf(tt.cards...)
			combo, ok := Detect(h, 5, 0)
			require.True(t, ok)
			require.Equal(t, ShapeFullHouse, combo.Shape)

			rankCount := map[int]int{}
			for _, c := range comboCards(t, h, combo) {
				rankCount[c.Rank()]++
			}
			assert.Equal(t, 2, rankCount[tt.pairRank])
		})
	}
}

func TestDetectFullHouseBreaksQuadWhenCheaper(t *testing.T) {
	// A full house scores below any four of a kind, so three cards off
	// the quad plus the pair is the minimal throw here.
	h := handOf(
		mk(0, card.Clubs), mk(0, card.Spades), mk(0, card.Hearts), mk(0, card.Diamonds),
		mk(1, card.Clubs), mk(1, card.Spades),
	)
	combo, ok := Detect(h, 5, 0)
	require.True(t, ok)
	assert.Equal(t, ShapeFullHouse, combo.Shape)
	assert.Equal(t, 73, combo.Score)
}

func TestDetectFourOfAKind(t *testing.T) {
	h := handOf(
		mk(4, card.Clubs), mk(4, card.Spades), mk(4, card.Hearts), mk(4, card.Diamonds),
		mk(0, card.Clubs),
	)
	combo, ok := Detect(h, 5, 0)
	require.True(t, ok)
	assert.Equal(t, ShapeFourOfAKind, combo.Shape)
	assert.Equal(t, 90, combo.Score) // sevens: rank 4 + 86
}

func TestDetectFourOfAKindKickerPreference(t *testing.T) {
	// The lone jack is spared; a four from the pair rides along instead.
	// The threshold pushes past the full house band so the quad stays
	// whole.
	h := handOf(
		mk(0, card.Clubs), mk(0, card.Spades), mk(0, card.Hearts), mk(0, card.Diamonds),
		mk(card.RankJack, card.Clubs),
		mk(1, card.Clubs), mk(1, card.Spades),
	)
	combo, ok := Detect(h, 5, 85)
	require.True(t, ok)
	require.Equal(t, ShapeFourOfAKind, combo.Shape)

	for _, c := range comboCards(t, h, combo) {
		assert.NotEqual(t, card.RankJack, c.Rank())
	}
}

func TestDetectStraightFlushUpgrade(t *testing.T) {
	// A suited run is first found as a straight and must come back with
	// the straight flush score.
	h := handOf(
		mk(6, card.Spades), mk(7, card.Spades), mk(8, card.Spades),
		mk(9, card.Spades), mk(10, card.Spades),
	)
	combo, ok := Detect(h, 5, 0)
	require.True(t, ok)
	assert.Equal(t, ShapeStraightFlush, combo.Shape)
	// 9*suit + high rank + 97 with the king of spades on top.
	assert.Equal(t, 116, combo.Score)
}

func TestDetectRoyalFlushUpgrade(t *testing.T) {
	h := handOf(
		mk(card.RankTen, card.Hearts), mk(card.RankJack, card.Hearts),
		mk(card.RankQueen, card.Hearts), mk(card.RankKing, card.Hearts),
		mk(card.RankAce, card.Hearts),
	)
	combo, ok := Detect(h, 5, 0)
	require.True(t, ok)
	assert.Equal(t, ShapeRoyalFlush, combo.Shape)
	assert.Equal(t, 137, combo.Score)
}

func TestFiveCardBandsAreDisjoint(t *testing.T) {
	assert.Less(t, straightMax, flushBase+5)
	assert.Equal(t, ShapeStraight, ShapeOfFive(40))
	assert.Equal(t, ShapeFlush, ShapeOfFive(41))
	assert.Equal(t, ShapeFlush, ShapeOfFive(72))
	assert.Equal(t, ShapeFullHouse, ShapeOfFive(73))
	assert.Equal(t, ShapeFullHouse, ShapeOfFive(85))
	assert.Equal(t, ShapeFourOfAKind, ShapeOfFive(86))
	assert.Equal(t, ShapeFourOfAKind, ShapeOfFive(98))
	assert.Equal(t, ShapeStraightFlush, ShapeOfFive(99))
	assert.Equal(t, ShapeStraightFlush, ShapeOfFive(134))
	assert.Equal(t, ShapeRoyalFlush, ShapeOfFive(135))
	assert.Equal(t, ShapeRoyalFlush, ShapeOfFive(138))
}

func TestDetectEnumerationIsMonotone(t *testing.T) {
	h := handOf(
		mk(0, card.Clubs), mk(0, card.Spades),
		mk(2, card.Clubs), mk(2, card.Hearts),
		mk(7, card.Spades), mk(7, card.Diamonds),
	)
	threshold := 0
	var scores []int
	for {
		combo, ok := Detect(h, 2, threshold)
		if !ok {
			break
		}
		scores = append(scores, combo.Score)
		threshold = combo.Score
	}
	require.Len(t, scores, 3)
	for i := 1; i < len(scores); i++ {
		assert.Greater(t, scores[i], scores[i-1])
	}
}

func TestClassifyRejectsJunk(t *testing.T) {
	_, _, ok := Classify([]card.Card{
		mk(0, card.Clubs), mk(2, card.Spades), mk(5, card.Hearts),
		mk(7, card.Diamonds), mk(9, card.Clubs),
	})
	assert.False(t, ok)

	_, _, ok = Classify([]card.Card{mk(0, card.Clubs)})
	assert.False(t, ok)
}

func TestClassifyDoesNotTouchMarks(t *testing.T) {
	h := handOf(
		mk(0, card.Clubs), mk(1, card.Spades), mk(2, card.Hearts),
		mk(3, card.Diamonds), mk(4, card.Clubs),
	)
	_, ok := Detect(h, 5, 0)
	require.True(t, ok)
	for i := 0; i < h.Len(); i++ {
		assert.False(t, h.Marked(i))
	}
}
