package experiments

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"anima/game"
	"anima/gamemaster"
	"anima/player"
	"anima/roster"

	"github.com/stretchr/testify/require"
)

func defaultSetup(t *testing.T) Setup {
	t.Helper()
	f, err := roster.Default()
	require.NoError(t, err)
	return Setup{
		Player: func(uint64) (*game.Team, error) { return f.Build("starters", game.Player) },
		Enemy: func(seed uint64) (*game.Team, error) {
			return roster.Randomize(f, game.Enemy, 3, seed)
		},
		Provider: func(uint64) gamemaster.ActionProvider { return player.NewAuto() },
	}
}

func TestRunBatch(t *testing.T) {
	dir := t.TempDir()

	summary, results, err := RunBatch(context.Background(), Batch{Name: "smoke", Battles: 3, FirstSeed: 100, OutDir: dir}, defaultSetup(t))

	require.NoError(t, err)
	require.Len(t, results, 3)
	require.Equal(t, 3, summary.Battles)
	require.Equal(t, 3, summary.PlayerWins+summary.EnemyWins+summary.Draws)
	for i, res := range results {
		require.Equal(t, uint64(100+i), res.Seed)
		require.True(t, res.Outcome.Terminal())
		require.Equal(t, res.Rounds, res.Metric.Rounds)
	}

	for _, name := range []string{"battle_records.csv", "round_records.csv"} {
		_, err := os.Stat(filepath.Join(summary.Dir, name))
		require.NoError(t, err, name)
	}
}

func TestRunBatchIsReproducible(t *testing.T) {
	batch := Batch{Name: "repro", Battles: 2, FirstSeed: 7}

	_, a, err := RunBatch(context.Background(), batch, defaultSetup(t))
	require.NoError(t, err)
	_, b, err := RunBatch(context.Background(), batch, defaultSetup(t))
	require.NoError(t, err)

	for i := range a {
		require.Equal(t, a[i].Outcome, b[i].Outcome)
		require.Equal(t, a[i].Rounds, b[i].Rounds)
		require.Equal(t, a[i].Metric.Damage, b[i].Metric.Damage)
	}
}

func TestRunBatchStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, results, err := RunBatch(ctx, Batch{Name: "cancel", Battles: 2}, defaultSetup(t))

	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, results)
}

func TestRunBatchNeedsBattles(t *testing.T) {
	_, _, err := RunBatch(context.Background(), Batch{Name: "empty"}, defaultSetup(t))
	require.Error(t, err)
}
