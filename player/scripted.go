package player

import (
	"context"
	"fmt"

	"anima/game"
	"anima/gamemaster"
)

// Step answers one proposal request.
type Step func(req gamemaster.Request) ([]gamemaster.Choice, error)

// Scripted answers requests from a queue of steps and records everything it is
// shown. Once the queue is empty it falls back to the auto policy.
type Scripted struct {
	steps    []Step
	Requests []gamemaster.Request
	Intents  [][]game.Intent
}

func NewScripted(steps ...Step) *Scripted {
	return &Scripted{steps: steps}
}

// Then queues another step.
func (s *Scripted) Then(step Step) *Scripted {
	s.steps = append(s.steps, step)
	return s
}

// Remaining is the number of queued steps.
func (s *Scripted) Remaining() int { return len(s.steps) }

func (s *Scripted) Propose(ctx context.Context, req gamemaster.Request) ([]gamemaster.Choice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.Requests = append(s.Requests, req)
	if len(s.steps) == 0 {
		return gamemaster.AutoSelect(req), nil
	}
	step := s.steps[0]
	s.steps = s.steps[1:]
	return step(req)
}

func (s *Scripted) ShowIntents(round int, intents []game.Intent) {
	s.Intents = append(s.Intents, intents)
}

// Pass plays nothing.
func Pass() Step {
	return func(gamemaster.Request) ([]gamemaster.Choice, error) { return nil, nil }
}

// Fail returns err from the provider.
func Fail(err error) Step {
	return func(gamemaster.Request) ([]gamemaster.Choice, error) { return nil, err }
}

// Fixed proposes the given choices as they are, valid or not.
func Fixed(choices ...gamemaster.Choice) Step {
	return func(gamemaster.Request) ([]gamemaster.Choice, error) { return choices, nil }
}

// PlayNamed plays the hand cards with the given names, in order, without bound
// targets. A name that is not in hand is an error.
func PlayNamed(names ...string) Step {
	return func(req gamemaster.Request) ([]gamemaster.Choice, error) {
		used := make(map[*game.Card]bool, len(names))
		choices := make([]gamemaster.Choice, 0, len(names))
		for _, name := range names {
			c := findCard(req.Hand, name, used)
			if c == nil {
				return nil, fmt.Errorf("card %q not in hand", name)
			}
			used[c] = true
			choices = append(choices, gamemaster.Choice{Card: c})
		}
		return choices, nil
	}
}

func findCard(hand []*game.Card, name string, used map[*game.Card]bool) *game.Card {
	for _, c := range hand {
		if c.Name == name && !used[c] {
			return c
		}
	}
	return nil
}
