package engine

// Suit constants, packed into the upper 4 bits of Card.
const (
	SuitHearts     uint8 = 0
	SuitDiamonds   uint8 = 1
	SuitClubs      uint8 = 2
	SuitSpades     uint8 = 3
	SuitRedJoker   uint8 = 4
	SuitBlackJoker uint8 = 5
)

// Rank constants, packed into the lower 4 bits of Card.
const (
	RankAce   uint8 = 0
	RankTwo   uint8 = 1
	RankThree uint8 = 2
	RankFour  uint8 = 3
	RankFive  uint8 = 4
	RankSix   uint8 = 5
	RankSeven uint8 = 6
	RankEight uint8 = 7
	RankNine  uint8 = 8
	RankTen   uint8 = 9
	RankJack  uint8 = 10
	RankQueen uint8 = 11
	RankKing  uint8 = 12
	RankJoker uint8 = 13
)

// Card is a packed uint8: upper 4 bits = suit, lower 4 bits = rank.
type Card uint8

// NoCard is the skip marker. It never appears in a deck; a move carrying it
// is a pass.
const NoCard Card = 0xFF

// NewCard constructs a Card from suit and rank.
func NewCard(suit, rank uint8) Card {
	return Card((suit << 4) | (rank & 0x0F))
}

// Suit returns the suit bits (upper 4).
func (c Card) Suit() uint8 { return uint8(c) >> 4 }

// Rank returns the rank bits (lower 4).
func (c Card) Rank() uint8 { return uint8(c) & 0x0F }

// Value returns the point value of the card.
//   - Joker → 0
//   - Ace → 1
//   - Two–Ten → face value
//   - Jack, Queen, King → 11, 12, 13
func (c Card) Value() int {
	if c == NoCard {
		return 0
	}
	r := c.Rank()
	switch {
	case r == RankJoker:
		return 0
	case r <= RankKing:
		return int(r) + 1
	}
	return 0
}

// Valid reports whether c is a card that can exist in a deck.
func (c Card) Valid() bool {
	if c == NoCard {
		return false
	}
	s, r := c.Suit(), c.Rank()
	switch {
	case s <= SuitSpades:
		return r <= RankKing
	case s == SuitRedJoker || s == SuitBlackJoker:
		return r == RankJoker
	}
	return false
}

var (
	rankSymbols = [...]string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "T", "J", "Q", "K", "J"}
	suitSymbols = [...]string{"H", "D", "C", "S", "R", "B"}
)

// String renders the card as rank then suit ("QH", "TD"). Jokers render as
// "RJ" and "BJ"; NoCard renders as "--".
func (c Card) String() string {
	if !c.Valid() {
		return "--"
	}
	if c.Rank() == RankJoker {
		return suitSymbols[c.Suit()] + "J"
	}
	return rankSymbols[c.Rank()] + suitSymbols[c.Suit()]
}
