// Package rule implements the Pusoy Dos throw hierarchy: shape
// classification, per-shape detectors, the move selector and the throw
// validator.
//
// Every legal throw gets an integer score. Scores are totally ordered
// inside one shape band and bands never overlap across the five-card
// hierarchy, so "beats" is a plain integer comparison during an ongoing
// exchange:
//
//	straight        1 ... 40
//	flush          41 ... 72
//	full house     73 ... 85
//	four of a kind 86 ... 98
//	straight flush 99 ... 134
//	royal flush   135 ... 138
//
// Singles score 1-13 (rank only), pairs 1-52 (the higher card's id, so
// suit breaks rank ties), trios 1-13. Scores of different arities are
// never compared; the turn engine guarantees that.
package rule

import (
	"github.com/jptuazon/pusoy-dos/internal/game/card"
)

// Shape is the kind of a throw.
type Shape int

const (
	ShapeNone Shape = iota
	ShapeSingle
	ShapePair
	ShapeTrio
	ShapeStraight
	ShapeFlush
	ShapeFullHouse
	ShapeFourOfAKind
	ShapeStraightFlush
	ShapeRoyalFlush
)

var shapeNames = map[Shape]string{
	ShapeSingle:        "single",
	ShapePair:          "pair",
	ShapeTrio:          "trio",
	ShapeStraight:      "straight",
	ShapeFlush:         "flush",
	ShapeFullHouse:     "full house",
	ShapeFourOfAKind:   "four of a kind",
	ShapeStraightFlush: "straight flush",
	ShapeRoyalFlush:    "royal flush",
}

func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return "none"
}

// Score band constants for the five-card hierarchy.
const (
	flushBase         = 36
	fullHouseBase     = 73
	fourOfAKindBase   = 86
	straightFlushBase = 97
	royalFlushBase    = 135

	straightMax = 40
	flushMax    = 72
	fullMax     = 85
	fourMax     = 98
	sflushMax   = 134
	royalMax    = 138
)

// Combo is one detected throw: its score and the positions of its cards
// in the hand it was detected on.
type Combo struct {
	Shape   Shape
	Score   int
	Indices []int
}

func (c Combo) Arity() int { return len(c.Indices) }

// Contains reports whether the combo, taken from h, includes the card id.
func (c Combo) Contains(h *card.Hand, target card.Card) bool {
	for _, i := range c.Indices {
		if h.At(i) == target {
			return true
		}
	}
	return false
}

// ShapeOfFive maps a five-card score to its band.
func ShapeOfFive(score int) Shape {
	switch {
	case score >= royalFlushBase:
		return ShapeRoyalFlush
	case score > fourMax:
		return ShapeStraightFlush
	case score >= fourOfAKindBase:
		return ShapeFourOfAKind
	case score >= fullHouseBase:
		return ShapeFullHouse
	case score > straightMax:
		return ShapeFlush
	case score >= 1:
		return ShapeStraight
	default:
		return ShapeNone
	}
}

// Classify determines the exact shape and score of a complete five-card
// set, independent of any hand context. Detectors for straight and flush
// defer to it after every five-card detection: a set they report may
// really be a straight flush or royal flush, and the upgraded score must
// win out.
func Classify(cards []card.Card) (Shape, int, bool) {
	if len(cards) != 5 {
		return ShapeNone, 0, false
	}

	sorted := make([]card.Card, 5)
	copy(sorted, cards)
	for i := 1; i < 5; i++ { // tiny fixed size, insertion sort by rotated id
		for j := i; j > 0 && sorted[j].Rotated() < sorted[j-1].Rotated(); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	sameSuit := true
	for _, c := range sorted[1:] {
		if c.Suit() != sorted[0].Suit() {
			sameSuit = false
			break
		}
	}
	consecutive := true
	for i := 1; i < 5; i++ {
		if sorted[i].RotatedRank() != sorted[i-1].RotatedRank()+1 {
			consecutive = false
			break
		}
	}

	// 10-J-Q-K-A is not adjacent in the rotated space and is handled by
	// name: royal when suited, the top straight band otherwise.
	royalRun, ace := isRoyalRun(sorted)

	switch {
	case sameSuit && royalRun:
		return ShapeRoyalFlush, int(sorted[0].Suit()) + royalFlushBase, true
	case sameSuit && consecutive:
		high := sorted[4]
		return ShapeStraightFlush, 9*int(high.Suit()) + high.Rank() + straightFlushBase, true
	}

	var counts [13]int
	for _, c := range sorted {
		counts[c.Rank()]++
	}
	for r, n := range counts {
		switch n {
		case 4:
			return ShapeFourOfAKind, r + fourOfAKindBase, true
		case 3:
			for r2, n2 := range counts {
				if n2 == 2 && r2 != r {
					return ShapeFullHouse, r + fullHouseBase, true
				}
			}
			return ShapeNone, 0, false
		}
	}

	switch {
	case sameSuit:
		high := sorted[0]
		for _, c := range sorted[1:] {
			if c.Rank() > high.Rank() {
				high = c
			}
		}
		return ShapeFlush, high.Rank() + 8*int(high.Suit()) + flushBase, true
	case consecutive:
		return ShapeStraight, sorted[4].Rotated() - 15, true
	case royalRun:
		return ShapeStraight, int(ace) - 7, true
	}
	return ShapeNone, 0, false
}

// isRoyalRun reports whether the five cards are exactly 10,J,Q,K,A of
// any suits, and returns the ace.
func isRoyalRun(cards []card.Card) (bool, card.Card) {
	var have [13]bool
	var ace card.Card
	for _, c := range cards {
		if have[c.Rank()] {
			return false, 0
		}
		have[c.Rank()] = true
		if c.Rank() == card.RankAce {
			ace = c
		}
	}
	for _, r := range []int{card.RankTen, card.RankJack, card.RankQueen, card.RankKing, card.RankAce} {
		if !have[r] {
			return false, 0
		}
	}
	return true, ace
}
