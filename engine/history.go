package engine

// History is the append-only move log of one game. Only the engine appends.
type History struct {
	moves []Move
}

func (h *History) append(m Move) { h.moves = append(h.moves, m) }

// Len returns the number of recorded moves.
func (h *History) Len() int { return len(h.moves) }

// At returns the i-th move, oldest first.
func (h *History) At(i int) (Move, bool) {
	if i < 0 || i >= len(h.moves) {
		return Move{}, false
	}
	return h.moves[i], true
}

// Last returns a copy of the most recent n moves, oldest first. It returns
// fewer than n when the history is shorter.
func (h *History) Last(n int) []Move {
	if n <= 0 {
		return nil
	}
	if n > len(h.moves) {
		n = len(h.moves)
	}
	out := make([]Move, n)
	copy(out, h.moves[len(h.moves)-n:])
	return out
}

// Moves returns a copy of the full history.
func (h *History) Moves() []Move {
	out := make([]Move, len(h.moves))
	copy(out, h.moves)
	return out
}

// allSkipped reports whether the last n moves exist and are all passes.
func (h *History) allSkipped(n int) bool {
	if n <= 0 || len(h.moves) < n {
		return false
	}
	for _, m := range h.moves[len(h.moves)-n:] {
		if !m.Skipped() {
			return false
		}
	}
	return true
}
