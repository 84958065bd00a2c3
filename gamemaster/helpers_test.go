package gamemaster

import (
	"context"
	"testing"

	"anima/engine"
	"anima/game"

	"github.com/stretchr/testify/require"
)

type unitDef struct {
	name  string
	stats game.Stats
	cards []game.CardSpec
}

func card(name string, kind game.CardKind, cost int) game.CardSpec {
	return game.CardSpec{Name: name, Kind: kind, Cost: cost, Hint: game.DefaultHint(kind)}
}

func buildTeam(t *testing.T, name string, side game.Side, defs ...unitDef) *game.Team {
	t.Helper()
	team := game.NewTeam(name, side)
	for i, d := range defs {
		u := game.NewUnit(d.name, d.stats)
		for _, c := range d.cards {
			u.AddCard(c)
		}
		require.NoError(t, team.Place(i, u))
	}
	return team
}

// skirmish is a small balanced fight that always ends in a wipe-out.
func skirmish(t *testing.T) (*game.Team, *game.Team) {
	t.Helper()
	player := buildTeam(t, "anima", game.Player,
		unitDef{"Knight", game.Stats{MaxHP: 40, Speed: 3, Attack: 12, Defense: 3}, []game.CardSpec{
			card("Slash", game.Attack, 1), card("Guard", game.Shield, 1), card("Cleave", game.Attack, 2)}},
		unitDef{"Ranger", game.Stats{MaxHP: 30, Speed: 5, Attack: 10, Defense: 1}, []game.CardSpec{
			card("Shot", game.Attack, 1), card("Volley", game.Attack, 2)}},
		unitDef{"Cleric", game.Stats{MaxHP: 28, Speed: 2, Attack: 6, Defense: 1}, []game.CardSpec{
			card("Mend", game.Heal, 1), card("Smite", game.Attack, 1)}},
		unitDef{"Mage", game.Stats{MaxHP: 24, Speed: 4, Attack: 14, Defense: 0}, []game.CardSpec{
			card("Bolt", game.Attack, 2), card("Ward", game.Shield, 1)}},
	)
	enemy := buildTeam(t, "wilds", game.Enemy,
		unitDef{name: "Gray", stats: game.Stats{MaxHP: 45, Speed: 2, Attack: 9, Defense: 2}},
		unitDef{name: "Green", stats: game.Stats{MaxHP: 35, Speed: 5, Attack: 8, Defense: 1}},
		unitDef{name: "Red", stats: game.Stats{MaxHP: 30, Speed: 5, Attack: 10, Defense: 1}},
	)
	return player, enemy
}

func newBattle(t *testing.T, player, enemy *game.Team, log game.Narrator) *game.Battle {
	t.Helper()
	b, err := game.NewBattle(player, enemy, 11, log)
	require.NoError(t, err)
	return b
}

var auto = ProviderFunc(func(_ context.Context, req Request) ([]Choice, error) {
	return AutoSelect(req), nil
})

func newMaster(b *game.Battle, p ActionProvider, opts ...Option) *GameMaster {
	return New(b, engine.New(game.NewStandardRules()), p, opts...)
}
