package card

import "fmt"

// DeckSize is the number of cards in a Pusoy Dos deck. There are no jokers.
const DeckSize = 52

// Card is the identity of one card, an integer in [0, DeckSize).
// Rank is id/4 over the order 3,4,5,6,7,8,9,10,J,Q,K,A,2 (2 highest),
// suit is id%4. Exactly one instance of each id exists across a game;
// selection state is tracked separately by Hand, never in the id.
type Card int

// Suit is the fixed internal suit identity of a card. Any user-facing
// suit-label reordering is cosmetic and must never reach scoring.
type Suit int

const (
	Clubs Suit = iota
	Spades
	Hearts
	Diamonds
)

var suitSymbols = map[Suit]string{
	Clubs:    "♣",
	Spades:   "♠",
	Hearts:   "♥",
	Diamonds: "♦",
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return "?"
}

// rankNames maps rank indices to card faces, lowest first.
var rankNames = [13]string{"3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A", "2"}

// Rank indices of the faces that matter to the rules by name.
const (
	RankTen   = 7
	RankJack  = 8
	RankQueen = 9
	RankKing  = 10
	RankAce   = 11
	RankTwo   = 12
)

// New builds the card with the given rank index (0=3 ... 12=2) and suit.
func New(rank int, suit Suit) Card {
	return Card(rank*4 + int(suit))
}

// Rank returns the card's rank index, 0 for a 3 up to 12 for a 2.
func (c Card) Rank() int { return int(c) / 4 }

// Suit returns the card's fixed internal suit.
func (c Card) Suit() Suit { return Suit(int(c) % 4) }

// Rotated maps the card into the rotated index space used only for
// straight adjacency: the whole deck is shifted by two ranks so that the
// ace lands at rotated rank 0 and the 2 directly after it at rotated
// rank 1. A-2-3-4-5 and 2-3-4-5-6 are runs; K-A is not.
func (c Card) Rotated() int { return (int(c) + 8) % DeckSize }

// RotatedRank returns the card's rank in the rotated space.
func (c Card) RotatedRank() int { return c.Rotated() / 4 }

// RankName returns the card's face name without a suit symbol.
func (c Card) RankName() string {
	return rankNames[c.Rank()]
}

func (c Card) String() string {
	if c < 0 || c >= DeckSize {
		return fmt.Sprintf("card(%d)", int(c))
	}
	return rankNames[c.Rank()] + c.Suit().String()
}

// Deck returns all 52 cards in ascending id order.
func Deck() []Card {
	deck := make([]Card, DeckSize)
	for i := range deck {
		deck[i] = Card(i)
	}
	return deck
}
