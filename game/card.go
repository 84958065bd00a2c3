package game

import (
	"fmt"
	"strings"
)

// CardKind is the closed set of actions a card or intent can perform.
type CardKind int

const (
	Attack CardKind = iota
	Shield
	Heal
)

var cardKindNames = [...]string{"attack", "shield", "heal"}

func (k CardKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("CardKind(%d)", int(k))
	}
	return cardKindNames[k]
}

func (k CardKind) Valid() bool {
	return k >= Attack && k <= Heal
}

// ParseCardKind accepts the lower-case names plus the "buff" alias used by
// older skill tables for shields.
func ParseCardKind(s string) (CardKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "attack":
		return Attack, nil
	case "shield", "buff":
		return Shield, nil
	case "heal":
		return Heal, nil
	}
	return 0, fmt.Errorf("unknown card kind %q", s)
}

// TargetHint is the closed set of targeting suggestions shown with a card.
type TargetHint int

const (
	TargetSelf TargetHint = iota
	TargetAlly
	TargetEnemyFront
	TargetEnemy
)

var targetHintNames = [...]string{"self", "ally", "enemy_front", "enemy"}

func (h TargetHint) String() string {
	if h < TargetSelf || h > TargetEnemy {
		return fmt.Sprintf("TargetHint(%d)", int(h))
	}
	return targetHintNames[h]
}

func ParseTargetHint(s string) (TargetHint, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return TargetSelf, nil
	}
	for i, name := range targetHintNames {
		if name == v {
			return TargetHint(i), nil
		}
	}
	return 0, fmt.Errorf("unknown target hint %q", s)
}

// DefaultHint returns the hint matching the default targeting of kind.
func DefaultHint(kind CardKind) TargetHint {
	if kind == Attack {
		return TargetEnemyFront
	}
	return TargetSelf
}

// CardSpec describes a card before it is bound to its owner.
type CardSpec struct {
	Name   string
	Kind   CardKind
	Cost   int
	Effect int // display only; shield/heal magnitudes are fixed per side
	Hint   TargetHint
	Text   string
}

// Card is a playable action. Its owner is fixed at creation.
type Card struct {
	ID     int // unique within a team's deck
	Name   string
	Kind   CardKind
	Cost   int
	Effect int
	Hint   TargetHint
	Text   string

	owner *Unit
}

func (c *Card) Owner() *Unit { return c.owner }

func (c *Card) String() string {
	owner := "?"
	if c.owner != nil {
		owner = c.owner.Name
	}
	return fmt.Sprintf("[%d] %s (%s, cost %d, %s)", c.ID, c.Name, c.Kind, c.Cost, owner)
}
