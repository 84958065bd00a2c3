package gamemaster

import (
	"testing"

	"anima/game"

	"github.com/stretchr/testify/require"
)

func selectionFixture(t *testing.T) (Request, map[string]*game.Card) {
	t.Helper()
	player := buildTeam(t, "anima", game.Player,
		unitDef{"Knight", game.Stats{MaxHP: 30, Speed: 3, Attack: 8}, []game.CardSpec{
			card("Cleave", game.Attack, 2), card("Guard", game.Shield, 1)}},
		unitDef{"Cleric", game.Stats{MaxHP: 20, Speed: 2, Attack: 4}, []game.CardSpec{
			card("Mend", game.Heal, 1), card("Smite", game.Attack, 1)}},
		unitDef{"Fallen", game.Stats{MaxHP: 20, Speed: 2}, []game.CardSpec{
			card("Last Stand", game.Attack, 0)}},
	)
	enemy := buildTeam(t, "wilds", game.Enemy,
		unitDef{name: "Gray", stats: game.Stats{MaxHP: 40}},
		unitDef{name: "Red", stats: game.Stats{MaxHP: 30}},
	)
	player.Units()[2].ReceiveDamage(100)

	cards := map[string]*game.Card{}
	for _, c := range player.Cards() {
		cards[c.Name] = c
	}
	req := Request{
		Round:  1,
		Hand:   player.Cards(),
		Energy: 3,
		Player: player,
		Enemy:  enemy,
	}
	return req, cards
}

func TestValidate(t *testing.T) {
	req, cards := selectionFixture(t)
	gray := req.Enemy.Units()[0]
	red := req.Enemy.Units()[1]
	knight := req.Player.Units()[0]

	t.Run("accepts a proposal within budget", func(t *testing.T) {
		err := Validate(req, []Choice{{Card: cards["Cleave"], Target: red}, {Card: cards["Mend"], Target: knight}})
		require.NoError(t, err)
	})

	t.Run("accepts passing", func(t *testing.T) {
		require.NoError(t, Validate(req, nil))
	})

	t.Run("rejects", func(t *testing.T) {
		stray := game.NewUnit("Stray", game.Stats{MaxHP: 1}).AddCard(card("Stray", game.Attack, 0))
		deadEnemy := req.Enemy.Units()[1]

		cases := map[string][]Choice{
			"card not in hand":   {{Card: stray}},
			"duplicate card":     {{Card: cards["Guard"]}, {Card: cards["Guard"]}},
			"over budget":        {{Card: cards["Cleave"]}, {Card: cards["Guard"]}, {Card: cards["Smite"]}},
			"defeated owner":     {{Card: cards["Last Stand"]}},
			"attack on ally":     {{Card: cards["Smite"], Target: knight}},
			"heal on enemy":      {{Card: cards["Mend"], Target: gray}},
			"empty choice":       {{}},
			"target not on team": {{Card: cards["Smite"], Target: game.NewUnit("Ghost", game.Stats{MaxHP: 1})}},
		}
		for name, choices := range cases {
			t.Run(name, func(t *testing.T) {
				require.ErrorIs(t, Validate(req, choices), ErrInvalidSelection)
			})
		}

		t.Run("defeated target", func(t *testing.T) {
			deadEnemy.ReceiveDamage(100)
			require.ErrorIs(t, Validate(req, []Choice{{Card: cards["Smite"], Target: deadEnemy}}), ErrInvalidSelection)
		})
	})
}

func TestAutoSelect(t *testing.T) {
	req, cards := selectionFixture(t)
	gray := req.Enemy.Units()[0]

	choices := AutoSelect(req)

	require.NoError(t, Validate(req, choices), "Auto selection always validates")
	require.Equal(t, []Choice{
		{Card: cards["Guard"], Target: cards["Guard"].Owner()},
		{Card: cards["Mend"], Target: cards["Mend"].Owner()},
		{Card: cards["Smite"], Target: gray},
	}, choices, "Cheapest first in hand order, skipping defeated owners")
	require.Equal(t, 3, Cost(choices))
}

func TestAutoSelectRespectsBudget(t *testing.T) {
	req, _ := selectionFixture(t)
	req.Energy = 0

	require.Empty(t, AutoSelect(req))
}
