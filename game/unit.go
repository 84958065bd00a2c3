package game

import "fmt"

// Stats is the fixed stat line a unit enters the battle with.
// HP is the starting HP; zero means full health.
type Stats struct {
	MaxHP   int
	HP      int
	Speed   int
	Attack  int
	Defense int
}

// Unit is a single battlefield actor. HP and Shield only change through
// ReceiveDamage, AddShield, Heal and ResetShield, and are never negative.
// A defeated unit keeps its slot.
type Unit struct {
	Name    string
	Side    Side
	Slot    int
	MaxHP   int
	Speed   int
	Attack  int
	Defense int

	hp     int
	shield int
	cards  []*Card
}

// NewUnit creates an unplaced unit. Side and Slot are assigned by Team.Place.
func NewUnit(name string, stats Stats) *Unit {
	hp := stats.HP
	if hp <= 0 || hp > stats.MaxHP {
		hp = stats.MaxHP
	}
	if hp < 0 {
		hp = 0
	}
	return &Unit{
		Name:    name,
		MaxHP:   stats.MaxHP,
		Speed:   stats.Speed,
		Attack:  stats.Attack,
		Defense: stats.Defense,
		hp:      hp,
	}
}

func (u *Unit) HP() int     { return u.hp }
func (u *Unit) Shield() int { return u.shield }

// IsAlive reports HP > 0.
func (u *Unit) IsAlive() bool { return u.hp > 0 }

// ReceiveDamage lets the shield absorb first, then reduces HP floored at zero.
// It returns the absorbed amount and the HP actually lost.
func (u *Unit) ReceiveDamage(amount int) (absorbed, lost int) {
	if amount <= 0 {
		return 0, 0
	}
	absorbed = min(u.shield, amount)
	u.shield -= absorbed
	remaining := amount - absorbed
	if remaining > 0 {
		before := u.hp
		u.hp = max(0, u.hp-remaining)
		lost = before - u.hp
	}
	return absorbed, lost
}

// AddShield adds a positive amount to the shield and returns what was added.
func (u *Unit) AddShield(amount int) int {
	if amount <= 0 {
		return 0
	}
	u.shield += amount
	return amount
}

// Heal restores HP up to MaxHP and returns the HP gained. Defeated units stay defeated.
func (u *Unit) Heal(amount int) int {
	if amount <= 0 || !u.IsAlive() {
		return 0
	}
	before := u.hp
	u.hp = min(u.MaxHP, u.hp+amount)
	return u.hp - before
}

// ResetShield drops the shield to zero.
func (u *Unit) ResetShield() {
	u.shield = 0
}

// Cards returns the cards owned by this unit.
func (u *Unit) Cards() []*Card {
	out := make([]*Card, len(u.cards))
	copy(out, u.cards)
	return out
}

// AddCard creates a card owned by this unit. Ownership never changes afterwards.
func (u *Unit) AddCard(spec CardSpec) *Card {
	c := &Card{
		Name:   spec.Name,
		Kind:   spec.Kind,
		Cost:   max(0, spec.Cost),
		Effect: spec.Effect,
		Hint:   spec.Hint,
		Text:   spec.Text,
		owner:  u,
	}
	u.cards = append(u.cards, c)
	return c
}

func (u *Unit) String() string {
	return fmt.Sprintf("%s(%s#%d)", u.Name, u.Side, u.Slot)
}

func (u *Unit) validate() error {
	if u.MaxHP <= 0 {
		return fmt.Errorf("%s: max hp %d: %w", u.Name, u.MaxHP, ErrInvalidStats)
	}
	if u.Speed < 0 || u.Attack < 0 || u.Defense < 0 {
		return fmt.Errorf("%s: negative stat: %w", u.Name, ErrInvalidStats)
	}
	return nil
}
