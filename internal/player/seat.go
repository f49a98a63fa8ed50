// Package player provides the Player implementations used by the game
// binary: automated bots and a human reading moves from a line-oriented
// input.
package player

import (
	"sort"

	engine "github.com/Kgervais7/MooseInTheHouse/engine"
)

// Seat holds the hand and house bookkeeping shared by every player kind.
// It is embedded by Bot and Human, which add ChooseMove.
type Seat struct {
	id    int
	name  string
	hand  []engine.Card
	house map[int][]engine.Card
}

func newSeat(id int, name string) Seat {
	return Seat{id: id, name: name, house: make(map[int][]engine.Card)}
}

// ID returns the stable player ID.
func (s *Seat) ID() int { return s.id }

// Name returns the display name.
func (s *Seat) Name() string { return s.name }

// Hand returns a copy of the hand in the order cards were received.
func (s *Seat) Hand() []engine.Card {
	return append([]engine.Card(nil), s.hand...)
}

// AddToHand appends cards to the hand.
func (s *Seat) AddToHand(cards ...engine.Card) {
	s.hand = append(s.hand, cards...)
}

// RemoveFromHand removes the first copy of c.
func (s *Seat) RemoveFromHand(c engine.Card) bool {
	for i, h := range s.hand {
		if h == c {
			s.hand = append(s.hand[:i:i], s.hand[i+1:]...)
			return true
		}
	}
	return false
}

// House returns a copy of the house, keyed by the ID of the player who
// placed each card.
func (s *Seat) House() map[int][]engine.Card {
	out := make(map[int][]engine.Card, len(s.house))
	for giver, cards := range s.house {
		out[giver] = append([]engine.Card(nil), cards...)
	}
	return out
}

// PlaceInHouse files the move's card under the acting player.
func (s *Seat) PlaceInHouse(m engine.Move) {
	s.house[m.Player] = append(s.house[m.Player], m.Card)
}

// houseHolder is anything with a house; every engine.Player is one.
type houseHolder interface {
	House() map[int][]engine.Card
}

// HouseSize returns the total number of cards placed with this player.
func HouseSize(p houseHolder) int {
	n := 0
	for _, cards := range p.House() {
		n += len(cards)
	}
	return n
}

// HouseGivers returns the IDs present in p's house, ascending.
func HouseGivers(p houseHolder) []int {
	house := p.House()
	ids := make([]int, 0, len(house))
	for id := range house {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
