package experiments

import (
	"context"
	"fmt"

	"anima/engine"
	"anima/experiments/metrics"
	"anima/game"
	"anima/gamemaster"

	"github.com/rs/zerolog/log"
)

// Setup builds the pieces of one battle from its seed.
type Setup struct {
	Player   func(seed uint64) (*game.Team, error)
	Enemy    func(seed uint64) (*game.Team, error)
	Provider func(seed uint64) gamemaster.ActionProvider
	Rules    game.Rules
	Options  []gamemaster.Option
}

// Batch runs Battles battles on consecutive seeds starting at FirstSeed. When
// OutDir is set, battle and round records are written there as CSV.
type Batch struct {
	Name      string
	Battles   int
	FirstSeed uint64
	OutDir    string
}

// Summary counts outcomes over a batch.
type Summary struct {
	Battles    int
	PlayerWins int
	EnemyWins  int
	Draws      int
	Dir        string
}

func (s Summary) String() string {
	return fmt.Sprintf("%d battles: %d player wins, %d enemy wins, %d draws", s.Battles, s.PlayerWins, s.EnemyWins, s.Draws)
}

func RunBatch(ctx context.Context, b Batch, setup Setup) (Summary, []gamemaster.Result, error) {
	if b.Battles < 1 {
		return Summary{}, nil, fmt.Errorf("batch %q: no battles", b.Name)
	}

	log.Info().Msgf("starting %s batch of %d battles from seed %d...", b.Name, b.Battles, b.FirstSeed)

	summary := Summary{}
	results := make([]gamemaster.Result, 0, b.Battles)
	battleRecords := []metrics.BattleRecord{}
	roundRecords := []metrics.RoundRecord{}

	for i := 0; i < b.Battles; i++ {
		seed := b.FirstSeed + uint64(i)
		log.Info().Msgf("starting battle %d of %d (seed %d)...", i+1, b.Battles, seed)

		res, err := runBattle(ctx, seed, setup)
		if err != nil {
			return summary, results, fmt.Errorf("battle %d (seed %d): %w", i+1, seed, err)
		}
		results = append(results, res)
		summary.Battles++
		switch res.Outcome {
		case game.PlayerWin:
			summary.PlayerWins++
		case game.EnemyWin:
			summary.EnemyWins++
		case game.Draw:
			summary.Draws++
		}

		battleRecords = append(battleRecords, metrics.BattleRecord{ID: i + 1, BattleMetric: res.Metric})
		for _, rm := range res.Records {
			roundRecords = append(roundRecords, metrics.RoundRecord{Battle: i + 1, RoundMetric: rm})
		}

		log.Info().Msgf("completed battle %d of %d: %s in %d round(s)", i+1, b.Battles, res.Outcome, res.Rounds)
	}

	log.Info().Msgf("completed %s batch: %s", b.Name, summary)

	if b.OutDir == "" {
		return summary, results, nil
	}

	writer, err := metrics.NewWriter(b.OutDir, b.Name)
	if err != nil {
		return summary, results, fmt.Errorf("failed to create batch writer: %w", err)
	}
	summary.Dir = writer.Dir()

	err = writer.WriteBattleRecords(battleRecords)
	if err != nil {
		return summary, results, fmt.Errorf("failed to write battle records: %w", err)
	}
	log.Info().Msg("stored battle records")

	err = writer.WriteRoundRecords(roundRecords)
	if err != nil {
		return summary, results, fmt.Errorf("failed to write round records: %w", err)
	}
	log.Info().Msg("stored round records")

	return summary, results, nil
}

func runBattle(ctx context.Context, seed uint64, setup Setup) (gamemaster.Result, error) {
	player, err := setup.Player(seed)
	if err != nil {
		return gamemaster.Result{}, fmt.Errorf("player team: %w", err)
	}
	enemy, err := setup.Enemy(seed)
	if err != nil {
		return gamemaster.Result{}, fmt.Errorf("enemy team: %w", err)
	}
	battle, err := game.NewBattle(player, enemy, seed, nil)
	if err != nil {
		return gamemaster.Result{}, err
	}

	opts := append([]gamemaster.Option{gamemaster.WithMetrics()}, setup.Options...)
	gm := gamemaster.New(battle, engine.New(setup.Rules), setup.Provider(seed), opts...)
	return gm.Run(ctx)
}
