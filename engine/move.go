package engine

import "fmt"

// DiscardPile is the receiver of a move that sends its card to the discard
// pile. Player IDs must never equal it.
const DiscardPile = -1

// Move is one action by one player: a card played either to the discard pile
// or into another player's house. Moves are values and are never mutated
// after creation.
type Move struct {
	Player   int  // acting player
	Receiver int  // receiving player ID, or DiscardPile
	Card     Card // NoCard for a pass
}

// DiscardMove returns a move sending c from player to the discard pile.
func DiscardMove(player int, c Card) Move {
	return Move{Player: player, Receiver: DiscardPile, Card: c}
}

// HouseMove returns a move placing c in receiver's house.
func HouseMove(player, receiver int, c Card) Move {
	return Move{Player: player, Receiver: receiver, Card: c}
}

// Pass returns the skip move for player.
func Pass(player int) Move {
	return Move{Player: player, Receiver: DiscardPile, Card: NoCard}
}

// Skipped reports whether the move is a pass. A move is skipped exactly when
// it carries NoCard; the receiver is ignored.
func (m Move) Skipped() bool { return m.Card == NoCard }

// IsDiscard reports whether the move targets the discard pile.
func (m Move) IsDiscard() bool { return !m.Skipped() && m.Receiver == DiscardPile }

func (m Move) String() string {
	switch {
	case m.Skipped():
		return fmt.Sprintf("player %d passes", m.Player)
	case m.Receiver == DiscardPile:
		return fmt.Sprintf("player %d discards %s", m.Player, m.Card)
	default:
		return fmt.Sprintf("player %d puts %s in player %d's house", m.Player, m.Card, m.Receiver)
	}
}
