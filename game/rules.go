package game

// Rules is the stat arithmetic of a battle. Implementations are stateless and
// total: non-positive magnitudes are no-ops, never errors.
type Rules interface {
	ComputeDamage(attacker, target *Unit) int
	// ApplyDamage returns the HP actually lost and narrates a defeat when HP reaches zero.
	ApplyDamage(target *Unit, amount int, log Narrator) int
	// ApplyShield returns the shield added.
	ApplyShield(target *Unit, amount int) int
	// ApplyHeal returns the HP restored.
	ApplyHeal(target *Unit, amount int) int
}
