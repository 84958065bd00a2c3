package gamemaster

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"anima/game"
	"anima/utils"
)

var ErrInvalidSelection = errors.New("invalid selection")

// Request is what a provider sees during PlayerSelect. Hand, Intents and the
// teams are read-only views; a provider must not mutate them.
type Request struct {
	Round   int
	Hand    []*game.Card
	Energy  int
	Intents []game.Intent
	Player  *game.Team
	Enemy   *game.Team
	// Attempt counts proposals for this round, starting at 1.
	Attempt int
	// Rejection is why the previous proposal was refused, nil on the first attempt.
	Rejection error
}

// Choice is one card to play and an optional bound target.
type Choice struct {
	Card   *game.Card
	Target *game.Unit
}

// ActionProvider picks the cards to play in a round.
type ActionProvider interface {
	Propose(ctx context.Context, req Request) ([]Choice, error)
}

// IntentViewer is implemented by providers that want to be shown the enemy
// intents before they are asked to choose.
type IntentViewer interface {
	ShowIntents(round int, intents []game.Intent)
}

// ProviderFunc adapts a function to ActionProvider.
type ProviderFunc func(ctx context.Context, req Request) ([]Choice, error)

func (f ProviderFunc) Propose(ctx context.Context, req Request) ([]Choice, error) {
	return f(ctx, req)
}

// Cost is the total energy cost of the choices.
func Cost(choices []Choice) int {
	total := 0
	for _, c := range choices {
		if c.Card != nil {
			total += c.Card.Cost
		}
	}
	return total
}

// Validate checks a proposal against the request. Errors wrap ErrInvalidSelection.
func Validate(req Request, choices []Choice) error {
	seen := make(map[*game.Card]bool, len(choices))
	for _, ch := range choices {
		c := ch.Card
		if c == nil {
			return fmt.Errorf("%w: empty choice", ErrInvalidSelection)
		}
		if utils.FindIndex(req.Hand, c) < 0 {
			return fmt.Errorf("%w: card %q is not in hand", ErrInvalidSelection, c.Name)
		}
		if seen[c] {
			return fmt.Errorf("%w: card %q chosen twice", ErrInvalidSelection, c.Name)
		}
		seen[c] = true

		owner := c.Owner()
		if owner == nil || !owner.IsAlive() {
			return fmt.Errorf("%w: owner of %q is defeated", ErrInvalidSelection, c.Name)
		}
		if err := validateTarget(req, c, ch.Target); err != nil {
			return err
		}
	}

	if cost := Cost(choices); cost > req.Energy {
		return fmt.Errorf("%w: cost %d exceeds energy %d", ErrInvalidSelection, cost, req.Energy)
	}
	return nil
}

func validateTarget(req Request, c *game.Card, target *game.Unit) error {
	if target == nil {
		return nil
	}
	want := req.Player
	if c.Kind == game.Attack {
		want = req.Enemy
	}
	if !want.Has(target) {
		return fmt.Errorf("%w: %s cannot target %s", ErrInvalidSelection, c.Name, target)
	}
	if !target.IsAlive() {
		return fmt.Errorf("%w: target %s is defeated", ErrInvalidSelection, target)
	}
	return nil
}

// AutoSelect is the reference policy: cheapest cards first, each taken while
// it fits the remaining energy and its owner is alive. Attacks go to the enemy
// front-most unit, shields and heals to the owner.
func AutoSelect(req Request) []Choice {
	hand := make([]*game.Card, len(req.Hand))
	copy(hand, req.Hand)
	sort.SliceStable(hand, func(i, j int) bool { return hand[i].Cost < hand[j].Cost })

	var choices []Choice
	budget := req.Energy
	for _, c := range hand {
		owner := c.Owner()
		if c.Cost > budget || owner == nil || !owner.IsAlive() {
			continue
		}
		ch := Choice{Card: c, Target: owner}
		if c.Kind == game.Attack {
			ch.Target = nil
			if front, ok := req.Enemy.FrontMostAlive(); ok {
				ch.Target = front
			}
		}
		choices = append(choices, ch)
		budget -= c.Cost
	}
	return choices
}
