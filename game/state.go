package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Battle is the mutable state of one battle: both teams, their decks, the round
// counter, the random stream used to order card draws and the narrative sink.
// It lives exactly as long as the battle.
type Battle struct {
	Player     *Team
	Enemy      *Team
	PlayerDeck *Deck
	EnemyDeck  *Deck
	Round      int
	Seed       uint64

	rng *rand.Rand
	log Narrator
}

// NewBattle checks the loader preconditions once and builds the battle state.
// Every player unit must own at least one card; enemy units act through intents.
// The player draw pile is shuffled with the battle's random stream.
func NewBattle(player, enemy *Team, seed uint64, log Narrator) (*Battle, error) {
	if player == nil || enemy == nil {
		return nil, fmt.Errorf("new battle: both teams are required")
	}
	if player.Side != Player || enemy.Side != Enemy {
		return nil, fmt.Errorf("new battle: %w", ErrWrongSide)
	}
	if err := player.validate(true); err != nil {
		return nil, fmt.Errorf("new battle: %w", err)
	}
	if err := enemy.validate(false); err != nil {
		return nil, fmt.Errorf("new battle: %w", err)
	}
	if log == nil {
		log = NarratorFunc(func(Event) {})
	}

	b := &Battle{
		Player:     player,
		Enemy:      enemy,
		PlayerDeck: NewDeck(player.Cards()),
		EnemyDeck:  NewDeck(enemy.Cards()),
		Round:      1,
		Seed:       seed,
		rng:        rand.New(rand.NewSource(seed)),
		log:        log,
	}
	b.PlayerDeck.Shuffle(b.rng)
	return b, nil
}

// Narrate stamps the current round on e and forwards it to the sink.
func (b *Battle) Narrate(e Event) {
	e.Round = b.Round
	b.log.Narrate(e)
}

// Attach adds another narrative sink next to the existing one.
func (b *Battle) Attach(n Narrator) {
	if n != nil {
		b.log = Narrators(b.log, n)
	}
}

func (b *Battle) Team(side Side) *Team {
	if side == Player {
		return b.Player
	}
	return b.Enemy
}

func (b *Battle) Opponent(side Side) *Team {
	return b.Team(side.Opponent())
}

func (b *Battle) Deck(side Side) *Deck {
	if side == Player {
		return b.PlayerDeck
	}
	return b.EnemyDeck
}

// Draw deals up to n cards into the player hand. It is the only consumer of the
// battle's random stream.
func (b *Battle) Draw(n int) (drawn []*Card, reshuffled bool) {
	discarded := b.PlayerDeck.DiscardSize()
	drawn, reshuffled = b.PlayerDeck.Draw(n, b.rng)
	if reshuffled {
		b.Narrate(Event{Kind: EventReshuffle, Amount: discarded})
	}
	b.Narrate(Event{Kind: EventDraw, Amount: len(drawn)})
	return drawn, reshuffled
}

// ResetShields sets every unit's shield on both teams to zero, alive or not.
func (b *Battle) ResetShields() {
	for _, t := range []*Team{b.Player, b.Enemy} {
		for _, u := range t.Units() {
			u.ResetShield()
		}
	}
}

// Winner reports a wipe-out outcome, or OutcomeNone while both sides stand.
// It does not consider the round cap.
func (b *Battle) Winner() Outcome {
	switch {
	case b.Enemy.Defeated():
		return PlayerWin
	case b.Player.Defeated():
		return EnemyWin
	default:
		return OutcomeNone
	}
}
