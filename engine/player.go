package engine

import "context"

// Player is the capability the engine consumes for each seat. Implementations
// hold the hand and house; the engine is the only caller of the mutating
// methods.
type Player interface {
	ID() int
	Hand() []Card
	AddToHand(cards ...Card)
	// RemoveFromHand takes one copy of c out of the hand and reports whether
	// it was there.
	RemoveFromHand(c Card) bool
	// House returns the cards other players have placed with this player,
	// keyed by the giver's ID.
	House() map[int][]Card
	PlaceInHouse(m Move)
	// ChooseMove picks the player's move for the current turn. It may read
	// the table but must not change it. Human implementations may block
	// until ctx is done.
	ChooseMove(ctx context.Context, table Table) (Move, error)
}

// Table is the read-only view of a game handed to strategies and observers.
type Table interface {
	Players() []Player
	Player(id int) (Player, bool)
	PlayersExcept(id int) []Player
	DrawPileSize() int
	DiscardTop() Card
	DiscardPile() []Card
	History() *History
	Round() int
	Rules() HouseRules
}
