package game

import "errors"

// Side identifies which roster a unit fights for. Player sorts before Enemy.
type Side int

const (
	Player Side = iota
	Enemy
)

func (s Side) String() string {
	switch s {
	case Player:
		return "player"
	case Enemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == Player {
		return Enemy
	}
	return Player
}

// Outcome is the final status of a battle. OutcomeNone means the battle is still running.
type Outcome int

const (
	OutcomeNone Outcome = iota
	PlayerWin
	EnemyWin
	Draw
)

func (o Outcome) String() string {
	switch o {
	case PlayerWin:
		return "player_win"
	case EnemyWin:
		return "enemy_win"
	case Draw:
		return "draw"
	default:
		return "none"
	}
}

// Terminal reports whether the battle is over.
func (o Outcome) Terminal() bool {
	return o != OutcomeNone
}

// Intent binds one enemy unit to the action kind it will perform this round.
type Intent struct {
	Unit *Unit
	Kind CardKind
}

var (
	ErrNoUnits          = errors.New("team has no units")
	ErrUnitWithoutCards = errors.New("unit has no cards")
	ErrOrphanCard       = errors.New("card has no owner on this team")
	ErrInvalidStats     = errors.New("invalid unit stats")
	ErrSlotOutOfRange   = errors.New("slot out of range")
	ErrSlotOccupied     = errors.New("slot already occupied")
	ErrWrongSide        = errors.New("team side mismatch")
)
