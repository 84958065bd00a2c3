package gamemaster

import (
	"context"
	"errors"
	"fmt"

	"anima/engine"
	"anima/experiments/metrics"
	"anima/game"
	"anima/meta"

	"github.com/rs/zerolog/log"
)

var ErrBattleOver = errors.New("battle is over")

// Phase is a step of the round state machine.
type Phase int

const (
	PhaseDraw Phase = iota
	PhaseShowIntents
	PhasePlayerSelect
	PhaseResolve
	PhaseCleanup
	PhaseCheckVictory
)

var phaseNames = [...]string{"draw", "show_intents", "player_select", "resolve", "cleanup", "check_victory"}

func (p Phase) String() string {
	if p < PhaseDraw || p > PhaseCheckVictory {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Tick describes the battle after a phase. Round is the round being played.
type Tick struct {
	Phase   Phase
	Round   int
	Outcome game.Outcome
	Battle  *game.Battle
}

// Observer is called after every phase. It must not mutate the battle.
type Observer func(Tick)

// Result is the outcome of Run. Metric and Records stay empty without WithMetrics.
type Result struct {
	Outcome game.Outcome
	Rounds  int
	Seed    uint64
	Metric  metrics.BattleMetric
	Records []metrics.RoundMetric
}

// GameMaster drives one battle round by round:
// Draw, ShowIntents, PlayerSelect, Resolve, Cleanup, CheckVictory.
type GameMaster struct {
	battle   *game.Battle
	engine   *engine.Engine
	provider ActionProvider

	maxRounds   int
	handSize    int
	energy      int
	maxAttempts int
	metrics     metrics.Collector
	observers   []Observer

	started bool
	round   int
	played  int
	result  Result

	// drawn is the round whose Draw and intents are done, so a round aborted
	// during PlayerSelect resumes without drawing again.
	drawn   int
	intents []game.Intent
}

// Option configures a GameMaster.
type Option func(*GameMaster)

// WithMaxRounds sets the round cap after which the battle is a draw.
func WithMaxRounds(n int) Option {
	return func(gm *GameMaster) {
		if n < 1 {
			panic("max rounds must be at least 1")
		}
		gm.maxRounds = n
	}
}

// WithHandSize sets how many cards are drawn each round.
func WithHandSize(n int) Option {
	return func(gm *GameMaster) {
		if n < 0 {
			panic("hand size cannot be negative")
		}
		gm.handSize = n
	}
}

// WithEnergy sets the per-round energy budget.
func WithEnergy(n int) Option {
	return func(gm *GameMaster) {
		if n < 0 {
			panic("energy cannot be negative")
		}
		gm.energy = n
	}
}

// WithMaxAttempts sets how many rejected proposals are tolerated per round
// before the auto-selection policy takes over.
func WithMaxAttempts(n int) Option {
	return func(gm *GameMaster) {
		if n < 1 {
			panic("max attempts must be at least 1")
		}
		gm.maxAttempts = n
	}
}

// WithMetrics collects per-round and per-battle metrics into the Result.
func WithMetrics() Option {
	return func(gm *GameMaster) {
		gm.metrics = metrics.NewCollector()
	}
}

func WithObserver(o Observer) Option {
	return func(gm *GameMaster) {
		if o != nil {
			gm.observers = append(gm.observers, o)
		}
	}
}

func New(b *game.Battle, eng *engine.Engine, provider ActionProvider, opts ...Option) *GameMaster {
	if b == nil || provider == nil {
		panic("gamemaster needs a battle and an action provider")
	}
	if eng == nil {
		eng = engine.New(game.NewStandardRules())
	}
	gm := &GameMaster{
		battle:      b,
		engine:      eng,
		provider:    provider,
		maxRounds:   meta.MaxRounds,
		handSize:    meta.HandSize,
		energy:      meta.EnergyPerRound,
		maxAttempts: meta.MaxSelectAttempts,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, opt := range opts {
		opt(gm)
	}
	b.Attach(gm.metrics)
	return gm
}

func (gm *GameMaster) Battle() *game.Battle { return gm.battle }

// Outcome is the current outcome; OutcomeNone while the battle runs.
func (gm *GameMaster) Outcome() game.Outcome { return gm.result.Outcome }

// Run plays rounds until the battle ends. The context is checked before every
// round; a cancelled battle returns OutcomeNone with the context error and is
// left between rounds. A provider error aborts inside PlayerSelect after the
// round's draw; a later Run or PlayRound resumes that round with the same hand
// and intents.
func (gm *GameMaster) Run(ctx context.Context) (Result, error) {
	if gm.result.Outcome.Terminal() {
		return gm.result, ErrBattleOver
	}
	log.Info().Msgf("battle %q vs %q starting with seed %d", gm.battle.Player.Name, gm.battle.Enemy.Name, gm.battle.Seed)

	for {
		if err := ctx.Err(); err != nil {
			log.Warn().Err(err).Msgf("battle aborted before round %d", gm.battle.Round)
			return gm.pending(), err
		}
		outcome, err := gm.PlayRound(ctx)
		if err != nil {
			return gm.pending(), err
		}
		if outcome.Terminal() {
			return gm.result, nil
		}
	}
}

// PlayRound runs exactly one round and returns the outcome after it.
func (gm *GameMaster) PlayRound(ctx context.Context) (game.Outcome, error) {
	if gm.result.Outcome.Terminal() {
		return gm.result.Outcome, ErrBattleOver
	}
	if !gm.started {
		gm.started = true
		gm.metrics.Start(gm.battle.Seed)
	}

	b := gm.battle
	gm.round = b.Round
	if gm.drawn != b.Round {
		gm.metrics.StartRound(b.Round)
		b.Narrate(game.Event{Kind: game.EventRound, Detail: fmt.Sprintf("round %d begins", b.Round)})

		b.Draw(gm.handSize)
		gm.observe(PhaseDraw)

		gm.intents = engine.PickEnemyIntents(b.Enemy)
		for _, in := range gm.intents {
			b.Narrate(game.Event{Kind: game.EventIntent, Actor: in.Unit, Action: in.Kind})
		}
		gm.drawn = b.Round
	}
	intents := gm.intents
	if v, ok := gm.provider.(IntentViewer); ok {
		v.ShowIntents(b.Round, intents)
	}
	gm.observe(PhaseShowIntents)

	choices, err := gm.selectCards(ctx, intents)
	if err != nil {
		return game.OutcomeNone, err
	}
	gm.observe(PhasePlayerSelect)

	executed := gm.resolve(choices, intents)
	gm.observe(PhaseResolve)

	b.ResetShields()
	if err := b.PlayerDeck.Discard(executed); err != nil {
		return game.OutcomeNone, fmt.Errorf("round %d cleanup: %w", b.Round, err)
	}
	gm.observe(PhaseCleanup)

	gm.played++
	gm.metrics.EndRound(len(b.Player.Alive()), len(b.Enemy.Alive()))
	outcome := b.Winner()
	if !outcome.Terminal() {
		b.Round++
		if b.Round > gm.maxRounds {
			outcome = game.Draw
		}
	}
	if outcome.Terminal() {
		gm.finish(outcome)
	}
	gm.observe(PhaseCheckVictory)
	return outcome, nil
}

func (gm *GameMaster) selectCards(ctx context.Context, intents []game.Intent) ([]Choice, error) {
	b := gm.battle
	req := Request{
		Round:   b.Round,
		Hand:    b.PlayerDeck.Hand(),
		Energy:  gm.energy,
		Intents: intents,
		Player:  b.Player,
		Enemy:   b.Enemy,
	}

	for attempt := 1; attempt <= gm.maxAttempts; attempt++ {
		req.Attempt = attempt
		choices, err := gm.provider.Propose(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("round %d: propose: %w", b.Round, err)
		}
		if err := Validate(req, choices); err != nil {
			log.Debug().Err(err).Msgf("round %d: proposal %d of %d rejected", b.Round, attempt, gm.maxAttempts)
			gm.metrics.AddRejection()
			req.Rejection = err
			continue
		}
		gm.metrics.AddSelection(len(choices), Cost(choices))
		return choices, nil
	}

	log.Warn().Msgf("round %d: no valid proposal after %d attempts, using auto selection", b.Round, gm.maxAttempts)
	gm.metrics.AddFallback()
	req.Rejection = nil
	choices := AutoSelect(req)
	gm.metrics.AddSelection(len(choices), Cost(choices))
	return choices, nil
}

// resolve walks initiative order and returns the cards that were played.
func (gm *GameMaster) resolve(choices []Choice, intents []game.Intent) []*game.Card {
	b := gm.battle
	byOwner := make(map[*game.Unit][]Choice)
	for _, ch := range choices {
		owner := ch.Card.Owner()
		byOwner[owner] = append(byOwner[owner], ch)
	}
	intentOf := make(map[*game.Unit]game.Intent, len(intents))
	for _, in := range intents {
		intentOf[in.Unit] = in
	}

	var executed []*game.Card
	for _, u := range engine.BuildInitiative(b.Player, b.Enemy) {
		if b.Winner().Terminal() {
			break
		}
		if !u.IsAlive() {
			continue
		}
		if u.Side == game.Player {
			for _, ch := range byOwner[u] {
				if !u.IsAlive() || b.Winner().Terminal() {
					break
				}
				gm.engine.Execute(b, engine.PlayCard(ch.Card, ch.Target))
				executed = append(executed, ch.Card)
			}
			continue
		}
		if in, ok := intentOf[u]; ok {
			gm.engine.Execute(b, engine.FromIntent(in))
		}
	}
	return executed
}

func (gm *GameMaster) finish(outcome game.Outcome) {
	b := gm.battle
	detail := fmt.Sprintf("battle ends: %s after %d round(s)", outcome, gm.played)
	b.Narrate(game.Event{Kind: game.EventOutcome, Detail: detail})
	log.Info().Msgf("battle %q vs %q: %s after %d round(s)", b.Player.Name, b.Enemy.Name, outcome, gm.played)

	metric, records := gm.metrics.Complete(outcome)
	gm.result = Result{
		Outcome: outcome,
		Rounds:  gm.played,
		Seed:    b.Seed,
		Metric:  metric,
		Records: records,
	}
}

func (gm *GameMaster) pending() Result {
	return Result{Outcome: game.OutcomeNone, Rounds: gm.played, Seed: gm.battle.Seed}
}

func (gm *GameMaster) observe(p Phase) {
	t := Tick{Phase: p, Round: gm.round, Outcome: gm.result.Outcome, Battle: gm.battle}
	for _, o := range gm.observers {
		o(t)
	}
}
