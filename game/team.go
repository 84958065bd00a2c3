package game

import (
	"fmt"

	"anima/meta"
)

// SlotState distinguishes an empty slot from an occupied one.
type SlotState int

const (
	SlotEmpty SlotState = iota
	SlotOccupied
)

// Slot is one team position. The zero value is Empty.
type Slot struct {
	unit *Unit
}

func (s Slot) State() SlotState {
	if s.unit == nil {
		return SlotEmpty
	}
	return SlotOccupied
}

// Unit returns the occupant and true, or nil and false for an empty slot.
func (s Slot) Unit() (*Unit, bool) {
	return s.unit, s.unit != nil
}

// Team is a fixed four-slot roster, slot 0 front to slot 3 rear.
type Team struct {
	Name  string
	Side  Side
	slots [meta.TeamSlots]Slot
}

func NewTeam(name string, side Side) *Team {
	return &Team{Name: name, Side: side}
}

// Place puts u into slot i and stamps its side and slot. Units are placed once, before battle.
func (t *Team) Place(i int, u *Unit) error {
	if i < 0 || i >= meta.TeamSlots {
		return fmt.Errorf("place %s at %d: %w", u.Name, i, ErrSlotOutOfRange)
	}
	if t.slots[i].State() == SlotOccupied {
		return fmt.Errorf("place %s at %d: %w", u.Name, i, ErrSlotOccupied)
	}
	u.Side = t.Side
	u.Slot = i
	t.slots[i] = Slot{unit: u}
	return nil
}

// Slot returns the slot at index i. Out-of-range indexes read as empty.
func (t *Team) Slot(i int) Slot {
	if i < 0 || i >= meta.TeamSlots {
		return Slot{}
	}
	return t.slots[i]
}

// Units returns every occupant in slot order, defeated or not.
func (t *Team) Units() []*Unit {
	units := make([]*Unit, 0, meta.TeamSlots)
	for _, s := range t.slots {
		if u, ok := s.Unit(); ok {
			units = append(units, u)
		}
	}
	return units
}

// Alive returns the living occupants in slot order.
func (t *Team) Alive() []*Unit {
	units := make([]*Unit, 0, meta.TeamSlots)
	for _, s := range t.slots {
		if u, ok := s.Unit(); ok && u.IsAlive() {
			units = append(units, u)
		}
	}
	return units
}

// FrontMostAlive returns the living unit with the lowest slot index.
func (t *Team) FrontMostAlive() (*Unit, bool) {
	for _, s := range t.slots {
		if u, ok := s.Unit(); ok && u.IsAlive() {
			return u, true
		}
	}
	return nil, false
}

// Defeated reports whether no living unit remains.
func (t *Team) Defeated() bool {
	_, ok := t.FrontMostAlive()
	return !ok
}

// Has reports whether u occupies one of this team's slots.
func (t *Team) Has(u *Unit) bool {
	if u == nil {
		return false
	}
	for _, s := range t.slots {
		if s.unit == u {
			return true
		}
	}
	return false
}

// Cards returns all cards owned by the team's units, in slot then creation order.
func (t *Team) Cards() []*Card {
	var cards []*Card
	for _, u := range t.Units() {
		cards = append(cards, u.cards...)
	}
	return cards
}

func (t *Team) validate(requireCards bool) error {
	units := t.Units()
	if len(units) == 0 {
		return fmt.Errorf("%s team %q: %w", t.Side, t.Name, ErrNoUnits)
	}
	for _, u := range units {
		if u.Side != t.Side {
			return fmt.Errorf("%s team %q: unit %s: %w", t.Side, t.Name, u.Name, ErrWrongSide)
		}
		if err := u.validate(); err != nil {
			return fmt.Errorf("%s team %q: %w", t.Side, t.Name, err)
		}
		if requireCards && len(u.cards) == 0 {
			return fmt.Errorf("%s team %q: unit %s: %w", t.Side, t.Name, u.Name, ErrUnitWithoutCards)
		}
		for _, c := range u.cards {
			if c.owner == nil || !t.Has(c.owner) {
				return fmt.Errorf("%s team %q: card %q: %w", t.Side, t.Name, c.Name, ErrOrphanCard)
			}
		}
	}
	return nil
}
