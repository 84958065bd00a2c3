package metrics

import (
	"time"

	"anima/game"
)

// RoundMetric summarises one round of a battle.
type RoundMetric struct {
	Round       int
	Drawn       int
	Reshuffled  bool
	CardsChosen int
	CardsPlayed int // cards that actually ran; chosen cards of a unit defeated first are not played
	EnergySpent int
	Rejections  int
	Fallback    bool
	Actions     int
	Damage      int
	ShieldAdded int
	Healed      int
	Defeats     int
	PlayerAlive int
	EnemyAlive  int
}

// BattleMetric summarises a whole battle.
type BattleMetric struct {
	Seed        uint64
	Outcome     string
	Rounds      int
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
	Actions     int
	CardsChosen int
	CardsPlayed int
	EnergySpent int
	Damage      int
	ShieldAdded int
	Healed      int
	Defeats     int
	Reshuffles  int
	Rejections  int
	Fallbacks   int
}

// Collector gathers metrics while the director runs a battle. It also listens
// to the battle narrative to count actions and their magnitudes.
type Collector interface {
	game.Narrator
	Start(seed uint64)
	StartRound(round int)
	AddSelection(cards, energy int)
	AddRejection()
	AddFallback()
	EndRound(playerAlive, enemyAlive int)
	Complete(outcome game.Outcome) (BattleMetric, []RoundMetric)
}

type collector struct {
	battle  BattleMetric
	rounds  []RoundMetric
	current *RoundMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(seed uint64) {
	m.battle = BattleMetric{Seed: seed, StartTime: time.Now()}
	m.rounds = nil
	m.current = nil
}

func (m *collector) StartRound(round int) {
	m.rounds = append(m.rounds, RoundMetric{Round: round})
	m.current = &m.rounds[len(m.rounds)-1]
}

func (m *collector) Narrate(e game.Event) {
	if m.current == nil {
		return
	}
	switch e.Kind {
	case game.EventDraw:
		m.current.Drawn += e.Amount
	case game.EventReshuffle:
		m.current.Reshuffled = true
	case game.EventDefeat:
		m.current.Defeats++
	case game.EventNoTarget:
		if e.Card != nil {
			m.current.CardsPlayed++
		}
	case game.EventAction:
		m.current.Actions++
		if e.Card != nil {
			m.current.CardsPlayed++
		}
		switch e.Action {
		case game.Attack:
			m.current.Damage += e.Lost
		case game.Shield:
			m.current.ShieldAdded += e.Amount
		case game.Heal:
			m.current.Healed += e.Amount
		}
	}
}

func (m *collector) AddSelection(cards, energy int) {
	if m.current == nil {
		return
	}
	m.current.CardsChosen += cards
	m.current.EnergySpent += energy
}

func (m *collector) AddRejection() {
	if m.current != nil {
		m.current.Rejections++
	}
}

func (m *collector) AddFallback() {
	if m.current != nil {
		m.current.Fallback = true
	}
}

func (m *collector) EndRound(playerAlive, enemyAlive int) {
	if m.current == nil {
		return
	}
	m.current.PlayerAlive = playerAlive
	m.current.EnemyAlive = enemyAlive
	m.current = nil
}

func (m *collector) Complete(outcome game.Outcome) (BattleMetric, []RoundMetric) {
	b := m.battle
	b.Outcome = outcome.String()
	b.EndTime = time.Now()
	b.Duration = b.EndTime.Sub(b.StartTime)
	b.Rounds = len(m.rounds)
	for _, r := range m.rounds {
		b.Actions += r.Actions
		b.CardsChosen += r.CardsChosen
		b.CardsPlayed += r.CardsPlayed
		b.EnergySpent += r.EnergySpent
		b.Damage += r.Damage
		b.ShieldAdded += r.ShieldAdded
		b.Healed += r.Healed
		b.Defeats += r.Defeats
		b.Rejections += r.Rejections
		if r.Reshuffled {
			b.Reshuffles++
		}
		if r.Fallback {
			b.Fallbacks++
		}
	}
	rounds := make([]RoundMetric, len(m.rounds))
	copy(rounds, m.rounds)
	return b, rounds
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Narrate(game.Event)                   {}
func (m *dummyCollector) Start(seed uint64)                    {}
func (m *dummyCollector) StartRound(round int)                 {}
func (m *dummyCollector) AddSelection(cards, energy int)       {}
func (m *dummyCollector) AddRejection()                        {}
func (m *dummyCollector) AddFallback()                         {}
func (m *dummyCollector) EndRound(playerAlive, enemyAlive int) {}
func (m *dummyCollector) Complete(outcome game.Outcome) (BattleMetric, []RoundMetric) {
	return BattleMetric{Outcome: outcome.String()}, nil
}
