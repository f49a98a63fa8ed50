package engine

import (
	"context"
	"errors"
	"sort"
	"testing"
)

// stubPlayer is a minimal Player. Its strategy is a function so each test
// can script the moves it needs; the default discards the first card in hand
// and passes when the hand is empty.
type stubPlayer struct {
	id     int
	hand   []Card
	house  map[int][]Card
	choose func(p *stubPlayer, t Table) (Move, error)
	calls  int
}

func newStubPlayer(id int) *stubPlayer {
	return &stubPlayer{id: id, house: make(map[int][]Card)}
}

func (p *stubPlayer) ID() int { return p.id }

func (p *stubPlayer) Hand() []Card { return append([]Card(nil), p.hand...) }

func (p *stubPlayer) AddToHand(cards ...Card) { p.hand = append(p.hand, cards...) }

func (p *stubPlayer) RemoveFromHand(c Card) bool {
	for i, h := range p.hand {
		if h == c {
			p.hand = append(p.hand[:i], p.hand[i+1:]...)
			return true
		}
	}
	return false
}

func (p *stubPlayer) House() map[int][]Card {
	out := make(map[int][]Card, len(p.house))
	for k, v := range p.house {
		out[k] = append([]Card(nil), v...)
	}
	return out
}

func (p *stubPlayer) PlaceInHouse(m Move) { p.house[m.Player] = append(p.house[m.Player], m.Card) }

func (p *stubPlayer) ChooseMove(_ context.Context, t Table) (Move, error) {
	p.calls++
	if p.choose != nil {
		return p.choose(p, t)
	}
	return discardFirst(p, t)
}

func discardFirst(p *stubPlayer, _ Table) (Move, error) {
	if len(p.hand) == 0 {
		return Pass(p.id), nil
	}
	return DiscardMove(p.id, p.hand[0]), nil
}

func alwaysPass(p *stubPlayer, _ Table) (Move, error) { return Pass(p.id), nil }

// giveLeft places the first card in the next player's house, discarding
// when the hand is down to one card.
func giveLeft(p *stubPlayer, t Table) (Move, error) {
	if len(p.hand) == 0 {
		return Pass(p.id), nil
	}
	if len(p.hand) == 1 {
		return DiscardMove(p.id, p.hand[0]), nil
	}
	others := t.PlayersExcept(p.id)
	return HouseMove(p.id, others[0].ID(), p.hand[0]), nil
}

func failing(err error) func(*stubPlayer, Table) (Move, error) {
	return func(*stubPlayer, Table) (Move, error) { return Move{}, err }
}

var errStrategy = errors.New("strategy exploded")

// countingObserver tallies each hook.
type countingObserver struct {
	hands, houses, deck, discard int
	moves                        []Move
}

func (o *countingObserver) HandsChanged() { o.hands++ }

func (o *countingObserver) HousesChanged() { o.houses++ }

func (o *countingObserver) DeckChanged() { o.deck++ }

func (o *countingObserver) DiscardPileChanged() { o.discard++ }

func (o *countingObserver) MoveRecorded(m Move) { o.moves = append(o.moves, m) }

func stubRoster(n int) ([]Player, []*stubPlayer) {
	players := make([]Player, n)
	stubs := make([]*stubPlayer, n)
	for i := 0; i < n; i++ {
		stubs[i] = newStubPlayer(i)
		players[i] = stubs[i]
	}
	return players, stubs
}

// mustNewGame builds a game with default rules and a fixed seed.
func mustNewGame(tb testing.TB, n int) (*Game, []*stubPlayer) {
	players, stubs := stubRoster(n)
	g, err := NewGame(42, DefaultHouseRules(), players, nil)
	if err != nil {
		tb.Fatalf("NewGame: %v", err)
	}
	return g, stubs
}

// allCards collects every card in hands, houses, draw pile and discard pile.
func allCards(g *Game) []Card {
	var out []Card
	for _, p := range g.Players() {
		out = append(out, p.Hand()...)
		for _, cards := range p.House() {
			out = append(out, cards...)
		}
	}
	out = append(out, g.Deck().DrawPile()...)
	out = append(out, g.Deck().DiscardPile()...)
	return out
}

func sortedCards(cards []Card) []Card {
	out := append([]Card(nil), cards...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sameCards(a, b []Card) bool {
	if len(a) != len(b) {
		return false
	}
	a, b = sortedCards(a), sortedCards(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// fullDeck returns the 52 standard cards in construction order.
func fullDeck() []Card {
	cards := make([]Card, 0, 52)
	for suit := SuitHearts; suit <= SuitSpades; suit++ {
		for rank := RankAce; rank <= RankKing; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}
