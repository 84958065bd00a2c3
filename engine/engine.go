package engine

import (
	"fmt"

	"anima/game"
	"anima/meta"
)

// Action is one unit of work for Execute: a played card on the player side, or
// an enemy intent (Card nil). Target is the bound target, if any.
type Action struct {
	Actor  *game.Unit
	Kind   game.CardKind
	Target *game.Unit
	Card   *game.Card
}

// PlayCard builds the action for a chosen card.
func PlayCard(c *game.Card, target *game.Unit) Action {
	return Action{Actor: c.Owner(), Kind: c.Kind, Target: target, Card: c}
}

// FromIntent builds the action for an enemy intent.
func FromIntent(in game.Intent) Action {
	return Action{Actor: in.Unit, Kind: in.Kind}
}

// Engine resolves single actions against a battle using a rule set.
type Engine struct {
	rules game.Rules
}

func New(rules game.Rules) *Engine {
	if rules == nil {
		rules = game.NewStandardRules()
	}
	return &Engine{rules: rules}
}

func (e *Engine) Rules() game.Rules { return e.rules }

// Execute resolves a single action and narrates it. It returns false when the
// action had no effect because the actor is defeated or no target remains.
func (e *Engine) Execute(b *game.Battle, a Action) bool {
	if a.Actor == nil || !a.Actor.IsAlive() {
		return false
	}

	switch a.Kind {
	case game.Attack:
		return e.attack(b, a)
	case game.Shield:
		target := supportTarget(a)
		added := e.rules.ApplyShield(target, magnitude(a.Actor))
		b.Narrate(game.Event{Kind: game.EventAction, Actor: a.Actor, Action: a.Kind, Target: target,
			Amount: added, HP: target.HP(), Card: a.Card})
		return true
	case game.Heal:
		target := supportTarget(a)
		healed := e.rules.ApplyHeal(target, magnitude(a.Actor))
		b.Narrate(game.Event{Kind: game.EventAction, Actor: a.Actor, Action: a.Kind, Target: target,
			Amount: healed, HP: target.HP(), Card: a.Card})
		return true
	default:
		panic(fmt.Sprintf("engine: unknown card kind %d", int(a.Kind)))
	}
}

func (e *Engine) attack(b *game.Battle, a Action) bool {
	target := a.Target
	if target == nil || !target.IsAlive() {
		var ok bool
		target, ok = b.Opponent(a.Actor.Side).FrontMostAlive()
		if !ok {
			b.Narrate(game.Event{Kind: game.EventNoTarget, Actor: a.Actor, Action: a.Kind, Card: a.Card})
			return false
		}
	}

	dmg := e.rules.ComputeDamage(a.Actor, target)
	shieldBefore := target.Shield()

	// defeat lines follow the attack line
	var pending []game.Event
	lost := e.rules.ApplyDamage(target, dmg, game.NarratorFunc(func(ev game.Event) {
		pending = append(pending, ev)
	}))

	b.Narrate(game.Event{
		Kind:     game.EventAction,
		Actor:    a.Actor,
		Action:   a.Kind,
		Target:   target,
		Amount:   dmg,
		Absorbed: shieldBefore - target.Shield(),
		Lost:     lost,
		HP:       target.HP(),
		Card:     a.Card,
	})
	for _, ev := range pending {
		b.Narrate(ev)
	}
	return true
}

// supportTarget keeps a bound target only while it is alive; otherwise the actor
// supports itself.
func supportTarget(a Action) *game.Unit {
	if a.Target != nil && a.Target.IsAlive() {
		return a.Target
	}
	return a.Actor
}

func magnitude(actor *game.Unit) int {
	if actor.Side == game.Player {
		return meta.PlayerMagnitude
	}
	return meta.EnemyMagnitude
}
