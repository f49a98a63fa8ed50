package player

import (
	"context"
	"fmt"
	"math/rand/v2"

	engine "github.com/Kgervais7/MooseInTheHouse/engine"
)

// DefaultHouseRate is the chance a bot places a card in an opponent's house
// instead of discarding.
const DefaultHouseRate = 0.25

// Bot is an automated player with a seeded strategy:
//   - empty hand: pass;
//   - with probability houseRate: put the highest card in the house of the
//     opponent holding the fewest house cards;
//   - otherwise discard a card matching the discard top's rank if one is
//     held, else the highest card.
type Bot struct {
	Seat
	rng       *rand.Rand
	houseRate float64
}

// NewBot returns a bot whose choices are reproducible for a given seed.
func NewBot(id int, seed uint64, houseRate float64) *Bot {
	return &Bot{
		Seat:      newSeat(id, fmt.Sprintf("bot-%d", id)),
		rng:       rand.New(rand.NewPCG(seed, uint64(id))),
		houseRate: houseRate,
	}
}

// ChooseMove implements engine.Player.
func (b *Bot) ChooseMove(ctx context.Context, t engine.Table) (engine.Move, error) {
	if err := ctx.Err(); err != nil {
		return engine.Move{}, err
	}
	if len(b.hand) == 0 {
		return engine.Pass(b.id), nil
	}

	high := highestCard(b.hand)
	if b.houseRate > 0 && b.rng.Float64() < b.houseRate {
		if target, ok := smallestHouse(t.PlayersExcept(b.id)); ok {
			return engine.HouseMove(b.id, target.ID(), high), nil
		}
	}

	if top := t.DiscardTop(); top != engine.NoCard {
		for _, c := range b.hand {
			if c.Rank() == top.Rank() {
				return engine.DiscardMove(b.id, c), nil
			}
		}
	}
	return engine.DiscardMove(b.id, high), nil
}

// highestCard returns the highest-value card, earliest on ties.
func highestCard(hand []engine.Card) engine.Card {
	best := hand[0]
	for _, c := range hand[1:] {
		if c.Value() > best.Value() {
			best = c
		}
	}
	return best
}

// smallestHouse returns the opponent with the fewest house cards, earliest
// in roster order on ties.
func smallestHouse(opponents []engine.Player) (engine.Player, bool) {
	if len(opponents) == 0 {
		return nil, false
	}
	best, bestSize := opponents[0], HouseSize(opponents[0])
	for _, p := range opponents[1:] {
		if n := HouseSize(p); n < bestSize {
			best, bestSize = p, n
		}
	}
	return best, true
}
