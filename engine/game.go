// Package engine implements the Moose in the House turn engine.
//
// A Game owns the deck, the player roster and the move history. It deals the
// opening hands, runs turns in roster order (draw, choose, apply, record) and
// ends the game once the draw pile is empty and every player passed in their
// most recent turn. Strategies and displays plug in through the Player and
// Observer interfaces; the package has no dependencies outside the standard
// library.
package engine

import (
	"context"
	"fmt"
	"sync"
)

// MinPlayers is the smallest roster the engine accepts.
const MinPlayers = 2

// EndReason records why a game stopped.
type EndReason uint8

const (
	EndNone       EndReason = iota // still playing
	EndStalemate                   // draw pile empty and every player passed
	EndRoundLimit                  // HouseRules.MaxRounds reached
)

func (r EndReason) String() string {
	switch r {
	case EndStalemate:
		return "stalemate"
	case EndRoundLimit:
		return "round_limit"
	default:
		return "none"
	}
}

// Game holds the complete state of one session.
type Game struct {
	rules    HouseRules
	players  []Player
	deck     *Deck
	history  History
	observer Observer

	current int // roster index of the player whose turn is next
	round   int // completed rounds
	end     EndReason

	turnMu sync.Mutex // serializes turns
}

// NewGame validates the roster, shuffles a fresh deck with seed and deals
// rules.HandSize cards to each player in roster order. A nil observer is
// replaced by NopObserver; a non-nil one is synced with all four hooks after
// the deal.
func NewGame(seed uint64, rules HouseRules, players []Player, obs Observer) (*Game, error) {
	if err := validateRules(rules); err != nil {
		return nil, err
	}
	return newGame(NewDeck(seed, rules), rules, players, obs)
}

func newGame(deck *Deck, rules HouseRules, players []Player, obs Observer) (*Game, error) {
	if err := validateRoster(players); err != nil {
		return nil, err
	}

	g := &Game{
		rules:    rules,
		players:  append([]Player(nil), players...),
		deck:     deck,
		observer: NopObserver{},
	}

	for _, p := range g.players {
		if dealt := g.deck.Deal(rules.HandSize); len(dealt) > 0 {
			p.AddToHand(dealt...)
		}
	}

	if obs != nil {
		g.SetObserver(obs)
	}
	return g, nil
}

func validateRules(r HouseRules) error {
	if r.HandSize < 0 || r.DrawPerTurn < 0 || r.MaxRounds < 0 {
		return fmt.Errorf("%w: hand size %d, draw per turn %d, max rounds %d",
			ErrInvalidRules, r.HandSize, r.DrawPerTurn, r.MaxRounds)
	}
	return nil
}

func validateRoster(players []Player) error {
	if len(players) < MinPlayers {
		return fmt.Errorf("%w: need at least %d players, got %d", ErrInvalidRoster, MinPlayers, len(players))
	}
	seen := make(map[int]bool, len(players))
	for i, p := range players {
		if p == nil {
			return fmt.Errorf("%w: player at seat %d is nil", ErrInvalidRoster, i)
		}
		id := p.ID()
		if id < 0 {
			return fmt.Errorf("%w: player at seat %d has negative id %d", ErrInvalidRoster, i, id)
		}
		if seen[id] {
			return fmt.Errorf("%w: duplicate player id %d", ErrInvalidRoster, id)
		}
		seen[id] = true
	}
	return nil
}

// SetObserver attaches obs and syncs it with every hook. nil detaches.
func (g *Game) SetObserver(obs Observer) {
	if obs == nil {
		g.observer = NopObserver{}
		return
	}
	g.observer = obs
	syncAll(obs)
}

// ---------------------------------------------------------------------------
// Turn loop
// ---------------------------------------------------------------------------

// Run plays rounds until the game is over. It stops at the first error,
// which is either a context error, a strategy error or ErrInvalidMove.
func (g *Game) Run(ctx context.Context) error {
	for !g.Over() {
		if err := g.PlayRound(ctx); err != nil {
			return err
		}
	}
	return nil
}

// PlayRound plays turns until the current round is complete.
func (g *Game) PlayRound(ctx context.Context) error {
	start := g.round
	for g.round == start && !g.Over() {
		if _, err := g.PlayTurn(ctx); err != nil {
			return err
		}
	}
	return nil
}

// PlayTurn plays one turn for the player whose turn it is and returns the
// move that was applied. The end condition is evaluated whenever the turn
// completes a round. Concurrent callers block until the running turn is done.
func (g *Game) PlayTurn(ctx context.Context) (Move, error) {
	g.turnMu.Lock()
	defer g.turnMu.Unlock()

	if g.end != EndNone {
		return Move{}, ErrGameOver
	}
	if err := ctx.Err(); err != nil {
		return Move{}, err
	}

	p := g.players[g.current]

	// An exhausted deck deals nothing; the turn goes on without a draw.
	if drawn := g.deck.Deal(g.rules.DrawPerTurn); len(drawn) > 0 {
		p.AddToHand(drawn...)
	}
	g.observer.HandsChanged()
	g.observer.DeckChanged()

	m, err := p.ChooseMove(ctx, g)
	if err != nil {
		return Move{}, fmt.Errorf("player %d: choose move: %w", p.ID(), err)
	}
	if err := g.processMove(p, m); err != nil {
		return Move{}, err
	}
	g.observer.HandsChanged()
	g.observer.HousesChanged()

	g.history.append(m)
	if r, ok := g.observer.(MoveRecorder); ok {
		r.MoveRecorded(m)
	}

	g.current++
	if g.current == len(g.players) {
		g.current = 0
		g.round++
		g.end = g.checkEnd()
	}
	return m, nil
}

// processMove applies m for the acting player p. Validation happens before
// any state changes, so a rejected move leaves the game untouched.
func (g *Game) processMove(p Player, m Move) error {
	if m.Player != p.ID() {
		return fmt.Errorf("%w: move by player %d during player %d's turn", ErrInvalidMove, m.Player, p.ID())
	}
	if m.Skipped() {
		return nil
	}

	var receiver Player
	if m.Receiver != DiscardPile {
		if m.Receiver == m.Player {
			return fmt.Errorf("%w: player %d cannot place %s in their own house", ErrInvalidMove, m.Player, m.Card)
		}
		r, ok := g.Player(m.Receiver)
		if !ok {
			return fmt.Errorf("%w: receiving player %d does not exist", ErrInvalidMove, m.Receiver)
		}
		receiver = r
	}

	if !p.RemoveFromHand(m.Card) {
		return fmt.Errorf("%w: player %d does not hold %s", ErrInvalidMove, m.Player, m.Card)
	}

	if receiver == nil {
		g.deck.Discard(m.Card)
		g.observer.DiscardPileChanged()
		return nil
	}
	receiver.PlaceInHouse(m)
	return nil
}

// checkEnd evaluates the end condition at a round boundary.
func (g *Game) checkEnd() EndReason {
	if g.gameOver() {
		return EndStalemate
	}
	if g.rules.MaxRounds > 0 && g.round >= g.rules.MaxRounds {
		return EndRoundLimit
	}
	return EndNone
}

// gameOver reports whether the draw pile is empty and each of the last N
// moves (N = roster size) was a pass.
func (g *Game) gameOver() bool {
	if g.deck.Size() != 0 {
		return false
	}
	return g.history.allSkipped(len(g.players))
}

// ---------------------------------------------------------------------------
// Query methods
// ---------------------------------------------------------------------------

// Over reports whether the game has ended.
func (g *Game) Over() bool { return g.end != EndNone }

// EndReason returns why the game ended, or EndNone.
func (g *Game) EndReason() EndReason { return g.end }

// Round returns the number of completed rounds.
func (g *Game) Round() int { return g.round }

// CurrentPlayer returns the player whose turn is next.
func (g *Game) CurrentPlayer() Player { return g.players[g.current] }

// Rules returns the house rules in effect.
func (g *Game) Rules() HouseRules { return g.rules }

// Deck returns the game deck. Callers outside the engine should only read it.
func (g *Game) Deck() *Deck { return g.deck }

// History returns the move log.
func (g *Game) History() *History { return &g.history }

// DrawPileSize returns the number of undealt cards.
func (g *Game) DrawPileSize() int { return g.deck.Size() }

// DiscardTop returns the top of the discard pile, or NoCard.
func (g *Game) DiscardTop() Card { return g.deck.DiscardTop() }

// DiscardPile returns a copy of the discard pile.
func (g *Game) DiscardPile() []Card { return g.deck.DiscardPile() }

// Players returns the roster in turn order.
func (g *Game) Players() []Player {
	return append([]Player(nil), g.players...)
}

// Player returns the player with the given id.
func (g *Game) Player(id int) (Player, bool) {
	for _, p := range g.players {
		if p.ID() == id {
			return p, true
		}
	}
	return nil, false
}

// PlayersExcept returns every player but id, in roster order.
func (g *Game) PlayersExcept(id int) []Player {
	out := make([]Player, 0, len(g.players))
	for _, p := range g.players {
		if p.ID() != id {
			out = append(out, p)
		}
	}
	return out
}
