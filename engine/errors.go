package engine

import "errors"

var (
	// ErrInvalidMove marks a move the engine cannot apply: unknown or
	// self-targeted receiver, a card the player does not hold, or a move
	// made out of turn. It indicates a strategy bug.
	ErrInvalidMove = errors.New("invalid move")

	// ErrInvalidRoster marks a player list the engine refuses to start with.
	ErrInvalidRoster = errors.New("invalid roster")

	// ErrInvalidRules marks house rules with negative counts.
	ErrInvalidRules = errors.New("invalid house rules")

	// ErrGameOver is returned when a turn is requested after the game ended.
	ErrGameOver = errors.New("game is already over")
)
