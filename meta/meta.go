// meta/meta.go
package meta

// MaxRounds is the last round a battle may play before it ends in a draw.
const MaxRounds = 50

// HandSize is the number of cards dealt to the player hand each round.
const HandSize = 5

// EnergyPerRound is the player's card-cost budget for one round.
const EnergyPerRound = 3

// TeamSlots is the number of positions on each side, front (0) to rear.
const TeamSlots = 4

// PlayerMagnitude is the shield/heal amount of a player-side action.
const PlayerMagnitude = 8

// EnemyMagnitude is the shield/heal amount of an enemy-side action.
const EnemyMagnitude = 6

// HealThreshold is the HP fraction of the enemy front unit below which enemies heal.
const HealThreshold = 0.4

// ShieldThreshold is the front unit shield below which enemies shield.
const ShieldThreshold = 6

// MaxSelectAttempts bounds how often a provider is re-prompted before the
// director falls back to the automatic selection.
const MaxSelectAttempts = 8
