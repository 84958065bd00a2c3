// Package player holds the action providers that pick cards for the player side.
package player

import (
	"context"

	"anima/gamemaster"
)

// Auto plays the reference selection policy every round.
type Auto struct{}

func NewAuto() *Auto {
	return &Auto{}
}

func (a *Auto) Propose(ctx context.Context, req gamemaster.Request) ([]gamemaster.Choice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return gamemaster.AutoSelect(req), nil
}
