package gamemaster

import (
	"anima/game"
)

// UnitView is a copy of a unit's visible state.
type UnitView struct {
	Name   string
	Side   game.Side
	Slot   int
	HP     int
	MaxHP  int
	Shield int
	Alive  bool
}

// Update is published once per round, after CheckVictory.
type Update struct {
	Round   int // the round that was just played
	Outcome game.Outcome
	Player  []UnitView
	Enemy   []UnitView
	Hand    int
	Draw    int
	Discard int
}

// UpdateGetter returns the next update without blocking. ok is false when no
// update is waiting; closed is true once the final update has been read.
type UpdateGetter func() (u Update, ok bool, closed bool)

// Feed publishes round updates to a reader that may run on another goroutine.
// When the buffer is full the oldest update is dropped.
type Feed struct {
	ch     chan Update
	closed bool
}

func NewFeed(buffer int) *Feed {
	if buffer < 1 {
		buffer = 1
	}
	return &Feed{ch: make(chan Update, buffer)}
}

// Observer returns the hook to pass to WithObserver.
func (f *Feed) Observer() Observer {
	return f.observe
}

// Updates is closed after the update carrying the final outcome.
func (f *Feed) Updates() <-chan Update {
	return f.ch
}

// Getter returns a non-blocking reader over the feed.
func (f *Feed) Getter() UpdateGetter {
	return func() (Update, bool, bool) {
		select {
		case u, ok := <-f.ch:
			if !ok {
				return Update{}, false, true
			}
			return u, true, false
		default:
			return Update{}, false, false
		}
	}
}

func (f *Feed) observe(t Tick) {
	if t.Phase != PhaseCheckVictory || f.closed {
		return
	}
	b := t.Battle
	f.publish(Update{
		Round:   t.Round,
		Outcome: t.Outcome,
		Player:  Snapshot(b.Player),
		Enemy:   Snapshot(b.Enemy),
		Hand:    b.PlayerDeck.HandSize(),
		Draw:    b.PlayerDeck.DrawSize(),
		Discard: b.PlayerDeck.DiscardSize(),
	})
	if t.Outcome.Terminal() {
		f.Close()
	}
}

func (f *Feed) publish(u Update) {
	for {
		select {
		case f.ch <- u:
			return
		default:
		}
		select {
		case <-f.ch:
		default:
		}
	}
}

// Close ends the feed early; later observations are ignored. The feed closes
// itself after the final update.
func (f *Feed) Close() {
	if !f.closed {
		f.closed = true
		close(f.ch)
	}
}

// Snapshot copies the state of every unit on the team in slot order.
func Snapshot(t *game.Team) []UnitView {
	units := t.Units()
	views := make([]UnitView, len(units))
	for i, u := range units {
		views[i] = UnitView{
			Name:   u.Name,
			Side:   u.Side,
			Slot:   u.Slot,
			HP:     u.HP(),
			MaxHP:  u.MaxHP,
			Shield: u.Shield(),
			Alive:  u.IsAlive(),
		}
	}
	return views
}
