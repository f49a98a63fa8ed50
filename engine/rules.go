package engine

// HouseRules holds configurable game rule settings.
type HouseRules struct {
	HandSize    int   // cards dealt to each player before the first turn
	DrawPerTurn int   // cards drawn at the start of every turn
	NumJokers   uint8 // 0, 1, or 2 jokers in the deck
	MaxRounds   int   // 0 = unlimited
}

// DefaultHouseRules returns the standard rules: four cards each, one draw per
// turn, no jokers, no round limit.
func DefaultHouseRules() HouseRules {
	return HouseRules{
		HandSize:    4,
		DrawPerTurn: 1,
		NumJokers:   0,
		MaxRounds:   0,
	}
}

// deckSize returns the number of cards a deck built with these rules holds.
func (r *HouseRules) deckSize() int {
	return 52 + int(r.jokers())
}

func (r *HouseRules) jokers() uint8 {
	if r.NumJokers > 2 {
		return 2
	}
	return r.NumJokers
}
