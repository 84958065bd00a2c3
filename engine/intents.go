package engine

import (
	"anima/game"
	"anima/meta"
)

// PickEnemyIntents decides every living enemy unit's action for the round from
// one look at the enemy front-most unit F: Heal while F is below the heal
// threshold, Shield while F's shield is under the shield threshold, else Attack.
// All enemy units share the same intent.
func PickEnemyIntents(enemy *game.Team) []game.Intent {
	kind := game.Attack
	if front, ok := enemy.FrontMostAlive(); ok {
		switch {
		case float64(front.HP()) < meta.HealThreshold*float64(front.MaxHP):
			kind = game.Heal
		case front.Shield() < meta.ShieldThreshold:
			kind = game.Shield
		}
	}

	alive := enemy.Alive()
	intents := make([]game.Intent, 0, len(alive))
	for _, u := range alive {
		intents = append(intents, game.Intent{Unit: u, Kind: kind})
	}
	return intents
}
