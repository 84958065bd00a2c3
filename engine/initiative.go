package engine

import (
	"sort"

	"anima/game"
)

// BuildInitiative returns every living unit of both teams in acting order:
// higher speed first, player before enemy on equal speed, then lower slot.
func BuildInitiative(player, enemy *game.Team) []*game.Unit {
	order := append(player.Alive(), enemy.Alive()...)
	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if a.Speed != b.Speed {
			return a.Speed > b.Speed
		}
		if a.Side != b.Side {
			return a.Side < b.Side
		}
		return a.Slot < b.Slot
	})
	return order
}
