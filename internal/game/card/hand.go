package card

import "sort"

// Hand is an ordered sequence of cards with a parallel slice of selection
// markers. The marker says "this card is part of the combination being
// assembled or reported"; it is positional state, deliberately separate
// from card identity.
type Hand struct {
	cards []Card
	marks []bool
}

// NewHand builds a hand holding the given cards, all unmarked.
func NewHand(cards ...Card) *Hand {
	h := &Hand{
		cards: make([]Card, len(cards)),
		marks: make([]bool, len(cards)),
	}
	copy(h.cards, cards)
	return h
}

func (h *Hand) Len() int          { return len(h.cards) }
func (h *Hand) Empty() bool       { return len(h.cards) == 0 }
func (h *Hand) At(i int) Card     { return h.cards[i] }
func (h *Hand) Marked(i int) bool { return h.marks[i] }

// Cards returns a copy of the hand's cards in order.
func (h *Hand) Cards() []Card {
	out := make([]Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// Marks returns a copy of the selection markers in order.
func (h *Hand) Marks() []bool {
	out := make([]bool, len(h.marks))
	copy(out, h.marks)
	return out
}

func (h *Hand) Add(cards ...Card) {
	h.cards = append(h.cards, cards...)
	h.marks = append(h.marks, make([]bool, len(cards))...)
}

func (h *Hand) SetMark(i int, on bool) { h.marks[i] = on }

func (h *Hand) ToggleMark(i int) { h.marks[i] = !h.marks[i] }

func (h *Hand) ClearMarks() {
	for i := range h.marks {
		h.marks[i] = false
	}
}

// MarkedIndices returns the positions of all marked cards, ascending.
func (h *Hand) MarkedIndices() []int {
	var out []int
	for i, m := range h.marks {
		if m {
			out = append(out, i)
		}
	}
	return out
}

// MarkedCards returns the marked cards in hand order.
func (h *Hand) MarkedCards() []Card {
	var out []Card
	for i, m := range h.marks {
		if m {
			out = append(out, h.cards[i])
		}
	}
	return out
}

// Contains reports whether the hand holds the given card id.
func (h *Hand) Contains(c Card) bool {
	for _, held := range h.cards {
		if held == c {
			return true
		}
	}
	return false
}

// Lowest returns the lowest card id in the hand.
func (h *Hand) Lowest() (Card, bool) {
	if len(h.cards) == 0 {
		return 0, false
	}
	low := h.cards[0]
	for _, c := range h.cards[1:] {
		if c < low {
			low = c
		}
	}
	return low, true
}

// Sort orders the hand ascending by card id; markers follow their cards.
func (h *Hand) Sort() {
	h.sortBy(func(a, b Card) bool { return a < b })
}

// SortRotated orders the hand ascending in the rotated index space.
// Detectors scanning for straights use this ordering.
func (h *Hand) SortRotated() {
	h.sortBy(func(a, b Card) bool { return a.Rotated() < b.Rotated() })
}

func (h *Hand) sortBy(less func(a, b Card) bool) {
	idx := make([]int, len(h.cards))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return less(h.cards[idx[i]], h.cards[idx[j]]) })
	cards := make([]Card, len(h.cards))
	marks := make([]bool, len(h.marks))
	for to, from := range idx {
		cards[to] = h.cards[from]
		marks[to] = h.marks[from]
	}
	h.cards, h.marks = cards, marks
}

// RemoveMarked takes every marked card out of the hand and returns them
// in hand order. Remaining cards keep their relative order.
func (h *Hand) RemoveMarked() []Card {
	var removed []Card
	cards := h.cards[:0]
	marks := h.marks[:0]
	for i, c := range h.cards {
		if h.marks[i] {
			removed = append(removed, c)
		} else {
			cards = append(cards, c)
			marks = append(marks, false)
		}
	}
	h.cards, h.marks = cards, marks
	return removed
}

// RemoveAt takes the cards at the given positions out of the hand and
// returns them in hand order.
func (h *Hand) RemoveAt(indices []int) []Card {
	take := make(map[int]bool, len(indices))
	for _, i := range indices {
		take[i] = true
	}
	var removed []Card
	cards := h.cards[:0]
	marks := h.marks[:0]
	for i, c := range h.cards {
		if take[i] {
			removed = append(removed, c)
		} else {
			cards = append(cards, c)
			marks = append(marks, h.marks[i])
		}
	}
	h.cards, h.marks = cards, marks
	return removed
}

// RemoveAll empties the hand and returns everything it held.
func (h *Hand) RemoveAll() []Card {
	out := h.cards
	h.cards = nil
	h.marks = nil
	return out
}

// Clone returns a deep copy of the hand, markers included.
func (h *Hand) Clone() *Hand {
	c := &Hand{
		cards: make([]Card, len(h.cards)),
		marks: make([]bool, len(h.marks)),
	}
	copy(c.cards, h.cards)
	copy(c.marks, h.marks)
	return c
}

// Restore overwrites the hand with the snapshot's contents.
func (h *Hand) Restore(snapshot *Hand) {
	h.cards = make([]Card, len(snapshot.cards))
	h.marks = make([]bool, len(snapshot.marks))
	copy(h.cards, snapshot.cards)
	copy(h.marks, snapshot.marks)
}
