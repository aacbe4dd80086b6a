package rule

import (
	"sort"

	"github.com/jptuazon/pusoy-dos/internal/game/card"
)

// Detect finds the cheapest combination of the given arity whose score
// strictly exceeds betterThis. Detectors are pure: they never touch the
// hand's selection markers, they only report positions, so the same code
// serves automated seats and scratch-zone validation. Repeated calls
// that feed the returned score back in as the next threshold enumerate
// all qualifying combinations of a shape in strictly ascending order.
//
// Arity 4 is not a legal throw shape and always reports nothing.
func Detect(h *card.Hand, arity, betterThis int) (Combo, bool) {
	switch arity {
	case 1:
		return detectSingle(h, betterThis)
	case 2:
		return detectPair(h, betterThis)
	case 3:
		return detectTrio(h, betterThis)
	case 5:
		return detectFive(h, betterThis)
	default:
		return Combo{}, false
	}
}

// byID returns the hand's positions ordered ascending by card id.
func byID(h *card.Hand) []int {
	idx := make([]int, h.Len())
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return h.At(idx[a]) < h.At(idx[b]) })
	return idx
}

func detectSingle(h *card.Hand, betterThis int) (Combo, bool) {
	for _, p := range byID(h) {
		if score := h.At(p).Rank() + 1; score > betterThis {
			return Combo{Shape: ShapeSingle, Score: score, Indices: []int{p}}, true
		}
	}
	return Combo{}, false
}

func detectPair(h *card.Hand, betterThis int) (Combo, bool) {
	idx := byID(h)
	for i := 1; i < len(idx); i++ {
		lo, hi := h.At(idx[i-1]), h.At(idx[i])
		if lo.Rank() != hi.Rank() {
			continue
		}
		// The pair scores as its higher card's id, so suit breaks ties
		// between pairs of equal rank.
		if score := int(hi); score > betterThis {
			return Combo{Shape: ShapePair, Score: score, Indices: []int{idx[i-1], idx[i]}}, true
		}
	}
	return Combo{}, false
}

func detectTrio(h *card.Hand, betterThis int) (Combo, bool) {
	ranks := rankPositions(h)
	for r := 0; r < 13; r++ {
		if len(ranks[r]) < 3 {
			continue
		}
		if score := r + 1; score > betterThis {
			return Combo{Shape: ShapeTrio, Score: score, Indices: ranks[r][:3]}, true
		}
	}
	return Combo{}, false
}

// detectFive tries the five-card sub-shapes in ascending band order;
// the bands are disjoint, so the first hit is the overall minimum. The
// result then goes through Classify so a straight or flush that is
// secretly a straight flush reports the upgraded score.
func detectFive(h *card.Hand, betterThis int) (Combo, bool) {
	if h.Len() < 5 {
		return Combo{}, false
	}
	detectors := []func(*card.Hand, int) (Combo, bool){
		detectStraight,
		detectFlush,
		detectFullHouse,
		detectFourOfAKind,
		detectStraightFlush,
		detectRoyalFlush,
	}
	for _, detect := range detectors {
		combo, ok := detect(h, betterThis)
		if !ok {
			continue
		}
		cards := make([]card.Card, 0, 5)
		for _, p := range combo.Indices {
			cards = append(cards, h.At(p))
		}
		if shape, score, ok := Classify(cards); ok && score > combo.Score {
			combo.Shape, combo.Score = shape, score
		}
		return combo, true
	}
	return Combo{}, false
}

// rankPositions groups hand positions by rank, each group ascending by id.
func rankPositions(h *card.Hand) [13][]int {
	var ranks [13][]int
	for _, p := range byID(h) {
		r := h.At(p).Rank()
		ranks[r] = append(ranks[r], p)
	}
	return ranks
}

// rotRankPositions groups hand positions by rotated rank, ascending by
// rotated id within a group. Only the straight scans use this grouping.
func rotRankPositions(h *card.Hand) [13][]int {
	idx := make([]int, h.Len())
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return h.At(idx[a]).Rotated() < h.At(idx[b]).Rotated() })
	var ranks [13][]int
	for _, p := range idx {
		r := h.At(p).RotatedRank()
		ranks[r] = append(ranks[r], p)
	}
	return ranks
}

func detectStraight(h *card.Hand, betterThis int) (Combo, bool) {
	ranks := rotRankPositions(h)

	// Runs scanned by rising high card: the score is the high card's
	// rotated id minus 15, so iterating high rank then suit yields the
	// combinations in ascending score order.
	for high := 4; high <= 12; high++ {
		runComplete := true
		for r := high - 4; r <= high; r++ {
			if len(ranks[r]) == 0 {
				runComplete = false
				break
			}
		}
		if !runComplete {
			continue
		}
		for _, p := range ranks[high] {
			score := h.At(p).Rotated() - 15
			if score <= betterThis {
				continue
			}
			indices := make([]int, 0, 5)
			for r := high - 4; r < high; r++ {
				indices = append(indices, ranks[r][0])
			}
			indices = append(indices, p)
			return Combo{Shape: ShapeStraight, Score: score, Indices: indices}, true
		}
	}

	// 10-J-Q-K-A sits above every rotated run and is scored off the ace.
	return detectRoyalRun(h, betterThis, -1)
}

// detectRoyalRun finds a 10,J,Q,K,A set. With suit < 0 the suits are
// free and the result is the top straight band (score aceID-7); with a
// fixed suit it is the royal flush of that suit.
func detectRoyalRun(h *card.Hand, betterThis int, suit int) (Combo, bool) {
	ranks := rankPositions(h)
	need := []int{card.RankTen, card.RankJack, card.RankQueen, card.RankKing}

	pick := func(r int) int {
		for _, p := range ranks[r] {
			if suit < 0 || int(h.At(p).Suit()) == suit {
				return p
			}
		}
		return -1
	}

	base := make([]int, 0, 4)
	for _, r := range need {
		p := pick(r)
		if p < 0 {
			return Combo{}, false
		}
		base = append(base, p)
	}
	for _, p := range ranks[card.RankAce] {
		ace := h.At(p)
		if suit >= 0 && int(ace.Suit()) != suit {
			continue
		}
		shape, score := ShapeStraight, int(ace)-7
		if suit >= 0 {
			shape, score = ShapeRoyalFlush, suit+royalFlushBase
		}
		if score > betterThis {
			return Combo{Shape: shape, Score: score, Indices: append(base, p)}, true
		}
	}
	return Combo{}, false
}

func detectFlush(h *card.Hand, betterThis int) (Combo, bool) {
	var bySuit [4][]int
	for _, p := range byID(h) {
		s := h.At(p).Suit()
		bySuit[s] = append(bySuit[s], p)
	}

	// Suit bands overlap across suits (a high clubs flush can outscore a
	// low spades flush), so the cheapest qualifying flush of each suit
	// competes and the global minimum wins.
	var best Combo
	found := false
	for s := 0; s < 4; s++ {
		list := bySuit[s]
		if len(list) < 5 {
			continue
		}
		for i := 4; i < len(list); i++ {
			score := h.At(list[i]).Rank() + 8*s + flushBase
			if score <= betterThis {
				continue
			}
			if !found || score < best.Score {
				indices := make([]int, 0, 5)
				indices = append(indices, list[:4]...)
				indices = append(indices, list[i])
				best = Combo{Shape: ShapeFlush, Score: score, Indices: indices}
				found = true
			}
			break
		}
	}
	return best, found
}

func detectFullHouse(h *card.Hand, betterThis int) (Combo, bool) {
	ranks := rankPositions(h)

	trio := -1
	for r := 0; r < 13; r++ {
		if len(ranks[r]) == 3 && r+fullHouseBase > betterThis {
			trio = r
			break
		}
	}
	if trio < 0 {
		for r := 0; r < 13; r++ {
			if len(ranks[r]) == 4 && r+fullHouseBase > betterThis {
				trio = r
				break
			}
		}
	}
	if trio < 0 {
		return Combo{}, false
	}

	// Pair choice: the lowest natural pair, except that a high lone pair
	// is spared by breaking a clearly lower spare trio instead, so the
	// best resources are not starved.
	pairRank, spareTrio, spareQuad := -1, -1, -1
	for r := 0; r < 13; r++ {
		switch {
		case len(ranks[r]) == 2 && pairRank < 0:
			pairRank = r
		case len(ranks[r]) == 3 && r != trio && spareTrio < 0:
			spareTrio = r
		case len(ranks[r]) == 4 && r != trio && spareQuad < 0:
			spareQuad = r
		}
	}
	pair := -1
	switch {
	case pairRank > 7 && spareTrio >= 0 && spareTrio < pairRank-4:
		pair = spareTrio
	case pairRank >= 0:
		pair = pairRank
	case spareTrio >= 0:
		pair = spareTrio
	case spareQuad >= 0:
		pair = spareQuad
	}
	if pair < 0 {
		return Combo{}, false
	}

	indices := make([]int, 0, 5)
	indices = append(indices, ranks[trio][:3]...)
	indices = append(indices, ranks[pair][:2]...)
	return Combo{Shape: ShapeFullHouse, Score: trio + fullHouseBase, Indices: indices}, true
}

func detectFourOfAKind(h *card.Hand, betterThis int) (Combo, bool) {
	ranks := rankPositions(h)

	quad := -1
	for r := 0; r < 13; r++ {
		if len(ranks[r]) == 4 && r+fourOfAKindBase > betterThis {
			quad = r
			break
		}
	}
	if quad < 0 {
		return Combo{}, false
	}

	// Kicker: the lowest excess card, preferring loners over breaking
	// groups, and sparing a high loner when a much lower pair can donate.
	single, pair, trio, quad2 := -1, -1, -1, -1
	for r := 0; r < 13; r++ {
		if r == quad {
			continue
		}
		switch len(ranks[r]) {
		case 1:
			if single < 0 {
				single = r
			}
		case 2:
			if pair < 0 {
				pair = r
			}
		case 3:
			if trio < 0 {
				trio = r
			}
		case 4:
			if quad2 < 0 {
				quad2 = r
			}
		}
	}
	kicker := -1
	switch {
	case single > 7 && pair >= 0 && single-pair >= 4:
		kicker = pair
	case single >= 0:
		kicker = single
	case pair >= 0:
		kicker = pair
	case trio >= 0:
		kicker = trio
	case quad2 >= 0:
		kicker = quad2
	}
	if kicker < 0 {
		return Combo{}, false
	}

	indices := make([]int, 0, 5)
	indices = append(indices, ranks[quad]...)
	indices = append(indices, ranks[kicker][0])
	return Combo{Shape: ShapeFourOfAKind, Score: quad + fourOfAKindBase, Indices: indices}, true
}

func detectStraightFlush(h *card.Hand, betterThis int) (Combo, bool) {
	// One card per (suit, rotated rank) at most, so a run inside a suit
	// is unique. The per-suit bands overlap, same as flushes: take the
	// global minimum across suits.
	var best Combo
	found := false
	for s := 0; s < 4; s++ {
		var pos [13]int
		for i := range pos {
			pos[i] = -1
		}
		for i := 0; i < h.Len(); i++ {
			if c := h.At(i); int(c.Suit()) == s {
				pos[c.RotatedRank()] = i
			}
		}
		for high := 4; high <= 12; high++ {
			runComplete := true
			for r := high - 4; r <= high; r++ {
				if pos[r] < 0 {
					runComplete = false
					break
				}
			}
			if !runComplete {
				continue
			}
			score := 9*s + h.At(pos[high]).Rank() + straightFlushBase
			if score <= betterThis {
				continue
			}
			if !found || score < best.Score {
				indices := make([]int, 0, 5)
				for r := high - 4; r <= high; r++ {
					indices = append(indices, pos[r])
				}
				best = Combo{Shape: ShapeStraightFlush, Score: score, Indices: indices}
				found = true
			}
			break
		}
	}
	return best, found
}

func detectRoyalFlush(h *card.Hand, betterThis int) (Combo, bool) {
	for s := 0; s < 4; s++ {
		if combo, ok := detectRoyalRun(h, betterThis, s); ok {
			return combo, true
		}
	}
	return Combo{}, false
}
