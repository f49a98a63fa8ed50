package session

import (
	"strings"

	engine "github.com/Kgervais7/MooseInTheHouse/engine"
)

// Action types carried in published move records.
const (
	ActionDiscard = "discard"
	ActionHouse   = "house"
	ActionPass    = "pass"
)

func actionType(m engine.Move) string {
	switch {
	case m.Skipped():
		return ActionPass
	case m.IsDiscard():
		return ActionDiscard
	default:
		return ActionHouse
	}
}

func payload(m engine.Move) map[string]any {
	switch actionType(m) {
	case ActionDiscard:
		return map[string]any{"card": m.Card.String()}
	case ActionHouse:
		return map[string]any{"card": m.Card.String(), "receiver": m.Receiver}
	}
	return nil
}

func handString(hand []engine.Card) string {
	parts := make([]string, len(hand))
	for i, c := range hand {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
