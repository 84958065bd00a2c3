package game

// MinDamage is the floor of any computed hit.
const MinDamage = 1

type StandardRules struct{}

func NewStandardRules() *StandardRules {
	return &StandardRules{}
}

// ComputeDamage is attack minus defense, never less than MinDamage.
func (sr *StandardRules) ComputeDamage(attacker, target *Unit) int {
	return max(MinDamage, attacker.Attack-target.Defense)
}

func (sr *StandardRules) ApplyDamage(target *Unit, amount int, log Narrator) int {
	wasAlive := target.IsAlive()
	_, lost := target.ReceiveDamage(amount)
	if wasAlive && !target.IsAlive() && log != nil {
		log.Narrate(Event{Kind: EventDefeat, Target: target})
	}
	return lost
}

func (sr *StandardRules) ApplyShield(target *Unit, amount int) int {
	return target.AddShield(max(0, amount))
}

func (sr *StandardRules) ApplyHeal(target *Unit, amount int) int {
	return target.Heal(max(0, amount))
}
