package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"anima/catalog"
	"anima/config"
	"anima/engine"
	"anima/experiments"
	"anima/game"
	"anima/gamemaster"
	"anima/player"
	"anima/roster"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	flag.Func("seed", "battle seed (default: random)", func(s string) error {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return err
		}
		cfg.Seed = &v
		return nil
	})
	flag.StringVar(&cfg.Roster, "roster", cfg.Roster, "roster YAML file (default: embedded roster)")
	flag.StringVar(&cfg.Catalog, "catalog", cfg.Catalog, "SQLite catalog file, seeded with the embedded roster when empty")
	flag.StringVar(&cfg.PlayerTeam, "player-team", cfg.PlayerTeam, "player team name")
	flag.StringVar(&cfg.EnemyTeam, "enemy-team", cfg.EnemyTeam, "enemy team name")
	flag.IntVar(&cfg.RandomEnemy, "random-enemy", cfg.RandomEnemy, "size of a random enemy team (0: use -enemy-team)")
	flag.StringVar(&cfg.Player, "player", cfg.Player, "card picker: auto, sampler or console")
	flag.Float64Var(&cfg.Temperature, "temperature", cfg.Temperature, "sampler temperature")
	flag.IntVar(&cfg.Battles, "battles", cfg.Battles, "number of battles on consecutive seeds")
	flag.StringVar(&cfg.OutDir, "out", cfg.OutDir, "directory for batch CSV records")
	flag.IntVar(&cfg.MaxRounds, "max-rounds", cfg.MaxRounds, "round cap before a draw")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	flag.BoolVar(&cfg.LogJSON, "json", cfg.LogJSON, "log JSON instead of console output")
	importPath := flag.String("import", "", "import a roster YAML file into -catalog and exit")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *importPath != "" {
		err = importRoster(ctx, cfg, *importPath)
	} else {
		err = run(ctx, cfg)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("anima failed")
	}
}

func setupLogging(cfg config.Config) {
	level, _ := cfg.Level()
	zerolog.SetGlobalLevel(level)
	if !cfg.LogJSON {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func importRoster(ctx context.Context, cfg config.Config, path string) error {
	if cfg.Catalog == "" {
		return fmt.Errorf("-import needs -catalog")
	}
	f, err := roster.Load(path)
	if err != nil {
		return err
	}
	store, err := catalog.Open(ctx, cfg.Catalog)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.SaveFile(ctx, f); err != nil {
		return err
	}
	log.Info().Msgf("imported %s into %s", path, cfg.Catalog)
	return nil
}

func loadRoster(ctx context.Context, cfg config.Config) (*roster.File, error) {
	switch {
	case cfg.Roster != "":
		return roster.Load(cfg.Roster)
	case cfg.Catalog != "":
		store, err := catalog.Open(ctx, cfg.Catalog)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		f, err := store.LoadFile(ctx)
		if err != nil {
			return nil, err
		}
		if len(f.Archetypes) > 0 {
			return f, nil
		}
		log.Info().Msgf("catalog %s is empty, seeding it with the default roster", cfg.Catalog)
		f, err = roster.Default()
		if err != nil {
			return nil, err
		}
		return f, store.SaveFile(ctx, f)
	default:
		return roster.Default()
	}
}

func run(ctx context.Context, cfg config.Config) error {
	f, err := loadRoster(ctx, cfg)
	if err != nil {
		return err
	}

	seed, generated, err := cfg.ResolveSeed()
	if err != nil {
		return err
	}
	if generated {
		log.Info().Msgf("using random seed %d", seed)
	}

	setup := experiments.Setup{
		Player: func(uint64) (*game.Team, error) { return f.Build(cfg.PlayerTeam, game.Player) },
		Enemy: func(seed uint64) (*game.Team, error) {
			if cfg.RandomEnemy > 0 {
				return roster.Randomize(f, game.Enemy, cfg.RandomEnemy, seed)
			}
			return f.Build(cfg.EnemyTeam, game.Enemy)
		},
		Provider: func(seed uint64) gamemaster.ActionProvider {
			switch strings.ToLower(cfg.Player) {
			case config.PlayerSampler:
				return player.NewSampler(seed, cfg.Temperature)
			case config.PlayerConsole:
				return player.NewConsole(os.Stdin, os.Stdout)
			default:
				return player.NewAuto()
			}
		},
		Options: []gamemaster.Option{gamemaster.WithMaxRounds(cfg.MaxRounds)},
	}

	if cfg.Battles > 1 {
		summary, _, err := experiments.RunBatch(ctx, experiments.Batch{
			Name:      "battles",
			Battles:   cfg.Battles,
			FirstSeed: seed,
			OutDir:    cfg.OutDir,
		}, setup)
		if err != nil {
			return err
		}
		fmt.Println(summary)
		if summary.Dir != "" {
			fmt.Printf("records written to %s\n", summary.Dir)
		}
		return nil
	}

	return runSingle(ctx, cfg, seed, setup)
}

func runSingle(ctx context.Context, cfg config.Config, seed uint64, setup experiments.Setup) error {
	playerTeam, err := setup.Player(seed)
	if err != nil {
		return err
	}
	enemyTeam, err := setup.Enemy(seed)
	if err != nil {
		return err
	}

	var narrator game.Narrator = game.NewLogNarrator(log.Logger)
	if strings.EqualFold(cfg.Player, config.PlayerConsole) {
		narrator = game.NarratorFunc(func(e game.Event) { fmt.Println(e) })
	}
	battle, err := game.NewBattle(playerTeam, enemyTeam, seed, narrator)
	if err != nil {
		return err
	}

	feed := gamemaster.NewFeed(4)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for u := range feed.Updates() {
			log.Debug().Msgf("after round %d: player %s, enemy %s, deck %d/%d/%d",
				u.Round, aliveSummary(u.Player), aliveSummary(u.Enemy), u.Draw, u.Hand, u.Discard)
		}
	}()

	opts := append(setup.Options, gamemaster.WithObserver(feed.Observer()), gamemaster.WithMetrics())
	gm := gamemaster.New(battle, engine.New(game.NewStandardRules()), setup.Provider(seed), opts...)
	res, err := gm.Run(ctx)
	feed.Close()
	<-done
	if err != nil {
		return err
	}

	fmt.Printf("%s after %d round(s) (seed %d): %d damage, %d shield, %d healed, %d card(s) played\n",
		res.Outcome, res.Rounds, res.Seed, res.Metric.Damage, res.Metric.ShieldAdded, res.Metric.Healed, res.Metric.CardsPlayed)
	return nil
}

func aliveSummary(units []gamemaster.UnitView) string {
	parts := make([]string, 0, len(units))
	for _, u := range units {
		if u.Alive {
			parts = append(parts, fmt.Sprintf("%s %d/%d", u.Name, u.HP, u.MaxHP))
		}
	}
	if len(parts) == 0 {
		return "wiped out"
	}
	return strings.Join(parts, ", ")
}
