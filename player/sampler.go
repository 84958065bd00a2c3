package player

import (
	"context"
	"math"

	"anima/game"
	"anima/gamemaster"
	"anima/meta"

	"golang.org/x/exp/rand"
)

// Sampler picks cards at random, weighted by a rough estimate of each card's
// value this round. Lower temperatures favour the best-looking card.
type Sampler struct {
	rng         *rand.Rand
	temperature float64
}

func NewSampler(seed uint64, temperature float64) *Sampler {
	if temperature <= 0 {
		panic("temperature must be positive")
	}
	return &Sampler{
		rng:         rand.New(rand.NewSource(seed)),
		temperature: temperature,
	}
}

func (s *Sampler) Propose(ctx context.Context, req gamemaster.Request) ([]gamemaster.Choice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var choices []gamemaster.Choice
	chosen := make(map[*game.Card]bool)
	budget := req.Energy
	for {
		var candidates []*game.Card
		var scores []float64
		for _, c := range req.Hand {
			owner := c.Owner()
			if chosen[c] || c.Cost > budget || owner == nil || !owner.IsAlive() {
				continue
			}
			candidates = append(candidates, c)
			scores = append(scores, score(req, c))
		}
		if len(candidates) == 0 {
			return choices, nil
		}

		c := candidates[s.sample(adjustTemperature(scores, s.temperature))]
		chosen[c] = true
		budget -= c.Cost
		choices = append(choices, gamemaster.Choice{Card: c, Target: target(req, c)})
	}
}

func score(req gamemaster.Request, c *game.Card) float64 {
	owner := c.Owner()
	switch c.Kind {
	case game.Attack:
		front, ok := req.Enemy.FrontMostAlive()
		if !ok {
			return 0.1
		}
		return float64(max(game.MinDamage, owner.Attack-front.Defense))
	case game.Heal:
		if u := mostWounded(req.Player); u != nil {
			return math.Max(0.1, float64(min(meta.PlayerMagnitude, u.MaxHP-u.HP())))
		}
		return 0.1
	default:
		return meta.PlayerMagnitude / 2
	}
}

func target(req gamemaster.Request, c *game.Card) *game.Unit {
	switch c.Kind {
	case game.Attack:
		if front, ok := req.Enemy.FrontMostAlive(); ok {
			return front
		}
		return nil
	case game.Heal:
		if u := mostWounded(req.Player); u != nil {
			return u
		}
	}
	return c.Owner()
}

func mostWounded(t *game.Team) *game.Unit {
	var best *game.Unit
	for _, u := range t.Alive() {
		if u.HP() < u.MaxHP && (best == nil || u.MaxHP-u.HP() > best.MaxHP-best.HP()) {
			best = u
		}
	}
	return best
}

func adjustTemperature(scores []float64, temperature float64) []float64 {
	exponent := 1.0 / temperature
	sum := 0.0
	policy := make([]float64, len(scores))
	for i, v := range scores {
		p := math.Pow(v, exponent)
		sum += p
		policy[i] = p
	}
	if sum == 0 {
		for i := range policy {
			policy[i] = 1 / float64(len(policy))
		}
		return policy
	}
	for i := range policy {
		policy[i] /= sum
	}
	return policy
}

func (s *Sampler) sample(policy []float64) int {
	sampled := s.rng.Float64()
	cumulative := 0.0
	for i, p := range policy {
		cumulative += p
		if sampled < cumulative {
			return i
		}
	}
	return len(policy) - 1 // rounding
}
