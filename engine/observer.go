package engine

// Observer receives push notifications after the engine changes state.
// Hooks run synchronously on the engine's goroutine and must not modify the
// game.
type Observer interface {
	HandsChanged()
	HousesChanged()
	DeckChanged()
	DiscardPileChanged()
}

// MoveRecorder is implemented by observers that also want each move as it
// is appended to the history.
type MoveRecorder interface {
	MoveRecorded(m Move)
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) HandsChanged()       {}
func (NopObserver) HousesChanged()      {}
func (NopObserver) DeckChanged()        {}
func (NopObserver) DiscardPileChanged() {}

// MultiObserver fans every notification out to each observer in order.
type MultiObserver []Observer

// NewMultiObserver drops nil entries and collapses the trivial cases.
func NewMultiObserver(obs ...Observer) Observer {
	var out MultiObserver
	for _, o := range obs {
		if o != nil {
			out = append(out, o)
		}
	}
	switch len(out) {
	case 0:
		return NopObserver{}
	case 1:
		return out[0]
	}
	return out
}

func (m MultiObserver) HandsChanged() {
	for _, o := range m {
		o.HandsChanged()
	}
}

func (m MultiObserver) HousesChanged() {
	for _, o := range m {
		o.HousesChanged()
	}
}

func (m MultiObserver) DeckChanged() {
	for _, o := range m {
		o.DeckChanged()
	}
}

func (m MultiObserver) DiscardPileChanged() {
	for _, o := range m {
		o.DiscardPileChanged()
	}
}

func (m MultiObserver) MoveRecorded(mv Move) {
	for _, o := range m {
		if r, ok := o.(MoveRecorder); ok {
			r.MoveRecorded(mv)
		}
	}
}

// syncAll fires every hook once so a newly attached observer can render the
// full state.
func syncAll(o Observer) {
	o.DeckChanged()
	o.HandsChanged()
	o.HousesChanged()
	o.DiscardPileChanged()
}
