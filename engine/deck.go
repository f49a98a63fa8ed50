package engine

// Deck holds the draw pile and the discard pile. Cards are dealt from the
// front of the draw pile.
type Deck struct {
	draw    []Card
	discard []Card
	rng     uint64
}

// NewDeck builds a full deck for the given rules and shuffles it with the
// seed. The same seed always yields the same order.
func NewDeck(seed uint64, rules HouseRules) *Deck {
	d := &Deck{
		draw: make([]Card, 0, rules.deckSize()),
		rng:  seed,
	}
	if d.rng == 0 {
		d.rng = 1 // xorshift can't start at 0
	}

	// 4 suits × 13 ranks = 52 + jokers.
	for suit := SuitHearts; suit <= SuitSpades; suit++ {
		for rank := RankAce; rank <= RankKing; rank++ {
			d.draw = append(d.draw, NewCard(suit, rank))
		}
	}
	jokerSuits := [2]uint8{SuitRedJoker, SuitBlackJoker}
	for j := uint8(0); j < rules.jokers(); j++ {
		d.draw = append(d.draw, NewCard(jokerSuits[j], RankJoker))
	}

	d.shuffle()
	return d
}

// newDeckFrom builds a deck with a fixed draw order. Used by tests.
func newDeckFrom(cards []Card) *Deck {
	d := &Deck{draw: make([]Card, len(cards)), rng: 1}
	copy(d.draw, cards)
	return d
}

// ---------------------------------------------------------------------------
// xorshift64 RNG, inline
// ---------------------------------------------------------------------------

func (d *Deck) nextRand() uint64 {
	x := d.rng
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	d.rng = x
	return x
}

// shuffle is a Fisher-Yates shuffle of the draw pile.
func (d *Deck) shuffle() {
	for i := len(d.draw) - 1; i > 0; i-- {
		j := int(d.nextRand() % uint64(i+1))
		d.draw[i], d.draw[j] = d.draw[j], d.draw[i]
	}
}

// Deal removes and returns the first n cards of the draw pile, in order.
// If fewer than n remain, all remaining cards are returned; an exhausted
// deck yields an empty slice.
func (d *Deck) Deal(n int) []Card {
	if n <= 0 {
		return nil
	}
	if n > len(d.draw) {
		n = len(d.draw)
	}
	out := make([]Card, n)
	copy(out, d.draw[:n])
	d.draw = d.draw[n:]
	return out
}

// Discard puts c on top of the discard pile.
func (d *Deck) Discard(c Card) {
	d.discard = append(d.discard, c)
}

// Size returns the number of cards left in the draw pile.
func (d *Deck) Size() int { return len(d.draw) }

// DiscardSize returns the number of cards in the discard pile.
func (d *Deck) DiscardSize() int { return len(d.discard) }

// DiscardTop returns the most recently discarded card, or NoCard.
func (d *Deck) DiscardTop() Card {
	if len(d.discard) == 0 {
		return NoCard
	}
	return d.discard[len(d.discard)-1]
}

// DiscardPile returns a copy of the discard pile, oldest first.
func (d *Deck) DiscardPile() []Card {
	out := make([]Card, len(d.discard))
	copy(out, d.discard)
	return out
}

// DrawPile returns a copy of the draw pile in deal order.
func (d *Deck) DrawPile() []Card {
	out := make([]Card, len(d.draw))
	copy(out, d.draw)
	return out
}
