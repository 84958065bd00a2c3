package roster

import (
	"os"
	"path/filepath"
	"testing"

	"anima/game"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	f, err := Default()
	require.NoError(t, err)

	t.Run("starter archetypes", func(t *testing.T) {
		gray, ok := f.Archetype("gray")
		require.True(t, ok)
		require.Equal(t, 85, gray.HP)
		require.Equal(t, 2, gray.Speed)
		red, _ := f.Archetype("red")
		require.Equal(t, 70, red.HP)
	})

	t.Run("enemy bolster parses as shield", func(t *testing.T) {
		s, ok := f.Skill("ENEMY_BOLSTER")
		require.True(t, ok)
		spec, err := s.Spec()
		require.NoError(t, err)
		require.Equal(t, game.Shield, spec.Kind)
		require.Equal(t, game.TargetSelf, spec.Hint)
	})

	t.Run("default teams fight", func(t *testing.T) {
		player, err := f.Build("starters", game.Player)
		require.NoError(t, err)
		enemy, err := f.Build("gray_patrol", game.Enemy)
		require.NoError(t, err)

		require.Len(t, player.Units(), 4)
		require.Len(t, enemy.Units(), 3)
		scout, ok := enemy.Slot(3).Unit()
		require.True(t, ok, "Explicit slot is honoured")
		require.Equal(t, "Scout", scout.Name)
		require.Equal(t, game.SlotEmpty, enemy.Slot(2).State())

		_, err = game.NewBattle(player, enemy, 1, nil)
		require.NoError(t, err)
	})
}

func TestBuild(t *testing.T) {
	const doc = `
fallback_skill: POKE
archetypes:
  - {code: brute, name: Brute, hp: 40, speed: 1, attack: 8, defense: 2}
skills:
  - {code: POKE, name: Poke, kind: attack, cost: 1}
  - {code: HUDDLE, name: Huddle, kind: shield, cost: 1}
teams:
  - name: pair
    units:
      - {name: One, archetype: brute, skills: [HUDDLE]}
      - {name: Two, archetype: brute, hp: 10}
`
	f, err := Parse([]byte(doc))
	require.NoError(t, err)

	team, err := f.Build("pair", game.Player)
	require.NoError(t, err)

	two, ok := team.Slot(1).Unit()
	require.True(t, ok)
	require.Equal(t, 10, two.HP(), "Wounded start")
	require.Equal(t, 40, two.MaxHP)
	require.Len(t, two.Cards(), 1)
	require.Equal(t, "Poke", two.Cards()[0].Name, "Skill-less units get the fallback")
	require.Equal(t, game.TargetEnemyFront, two.Cards()[0].Hint)

	_, err = f.Build("missing", game.Enemy)
	require.ErrorIs(t, err, ErrUnknownTeam)
}

func TestValidate(t *testing.T) {
	cases := map[string]struct {
		doc  string
		want error
	}{
		"unknown skill": {`
archetypes: [{code: a, hp: 1}]
teams: [{name: t, units: [{archetype: a, skills: [NOPE]}]}]`, ErrUnknownSkill},
		"unknown archetype": {`
teams: [{name: t, units: [{archetype: ghost}]}]`, ErrUnknownArchetype},
		"duplicate skill": {`
skills: [{code: X, kind: attack}, {code: X, kind: heal}]`, ErrDuplicate},
		"too many units": {`
archetypes: [{code: a, hp: 1}]
teams: [{name: t, units: [{archetype: a}, {archetype: a}, {archetype: a}, {archetype: a}, {archetype: a}]}]`, ErrTeamSize},
		"slot clash": {`
archetypes: [{code: a, hp: 1}]
teams: [{name: t, units: [{archetype: a, slot: 1}, {archetype: a}]}]`, game.ErrSlotOccupied},
		"slot out of range": {`
archetypes: [{code: a, hp: 1}]
teams: [{name: t, units: [{archetype: a, slot: 4}]}]`, game.ErrSlotOutOfRange},
		"bad stats": {`
archetypes: [{code: a, hp: 0}]`, game.ErrInvalidStats},
		"unknown fallback": {`
fallback_skill: NOPE`, ErrUnknownSkill},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			require.ErrorIs(t, err, tc.want)
		})
	}

	t.Run("bad kind", func(t *testing.T) {
		_, err := Parse([]byte(`skills: [{code: X, kind: dance}]`))
		require.ErrorContains(t, err, "unknown card kind")
	})
}

func TestPlayerUnitWithoutSkillsIsRejected(t *testing.T) {
	f, err := Parse([]byte(`
archetypes: [{code: a, hp: 10}]
teams: [{name: t, units: [{name: Bare, archetype: a}]}]`))
	require.NoError(t, err)

	player, err := f.Build("t", game.Player)
	require.NoError(t, err)
	enemy, err := f.Build("t", game.Enemy)
	require.NoError(t, err)

	_, err = game.NewBattle(player, enemy, 1, nil)
	require.ErrorIs(t, err, game.ErrUnitWithoutCards)
}

func TestLoadRoundTrip(t *testing.T) {
	f, err := Default()
	require.NoError(t, err)
	b, err := f.Marshal()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, b, 0o644))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, f, loaded)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestRandomize(t *testing.T) {
	f, err := Default()
	require.NoError(t, err)

	a, err := Randomize(f, game.Enemy, 4, 77)
	require.NoError(t, err)
	b, err := Randomize(f, game.Enemy, 4, 77)
	require.NoError(t, err)

	require.Len(t, a.Units(), 4)
	for i, u := range a.Units() {
		v := b.Units()[i]
		require.Equal(t, u.Name, v.Name)
		require.Equal(t, u.MaxHP, v.MaxHP)
		require.Len(t, u.Cards(), SkillsPerUnit)
		for j, c := range u.Cards() {
			require.Equal(t, c.Name, v.Cards()[j].Name, "Same seed, same skills")
		}
	}

	_, err = Randomize(f, game.Enemy, 5, 1)
	require.ErrorIs(t, err, ErrTeamSize)
}
