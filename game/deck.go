package game

import (
	"fmt"

	"anima/utils"
)

// Shuffler orders cards. *rand.Rand from golang.org/x/exp/rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Deck moves a team's fixed card collection between the draw pile, the hand and
// the discard pile. The three piles are disjoint and always add up to Total.
type Deck struct {
	draw    []*Card
	hand    []*Card
	discard []*Card
	total   int
}

// NewDeck puts every card in the draw pile, in the given order, and numbers them from 1.
func NewDeck(cards []*Card) *Deck {
	draw := make([]*Card, len(cards))
	copy(draw, cards)
	for i, c := range draw {
		c.ID = i + 1
	}
	return &Deck{draw: draw, total: len(draw)}
}

// Shuffle reorders the draw pile.
func (d *Deck) Shuffle(s Shuffler) {
	s.Shuffle(len(d.draw), func(i, j int) {
		d.draw[i], d.draw[j] = d.draw[j], d.draw[i]
	})
}

// Draw moves up to n cards from the top of the draw pile into the hand. When the
// draw pile runs out and the discard pile is not empty, the discard pile is
// shuffled into the draw pile once and drawing continues. If both are empty it
// stops early.
func (d *Deck) Draw(n int, s Shuffler) (drawn []*Card, reshuffled bool) {
	for len(drawn) < n {
		if len(d.draw) == 0 {
			if len(d.discard) == 0 || reshuffled {
				break
			}
			d.draw = append(d.draw, d.discard...)
			d.discard = nil
			d.Shuffle(s)
			reshuffled = true
		}
		card := d.draw[0]
		d.draw = d.draw[1:]
		d.hand = append(d.hand, card)
		drawn = append(drawn, card)
	}
	return drawn, reshuffled
}

// Discard moves the given cards from the hand to the discard pile.
func (d *Deck) Discard(cards []*Card) error {
	for _, c := range cards {
		var ok bool
		d.hand, ok = utils.Remove(d.hand, c)
		if !ok {
			return fmt.Errorf("discard %s: card not in hand", c.Name)
		}
		d.discard = append(d.discard, c)
	}
	return nil
}

// InHand reports whether c is currently in the hand.
func (d *Deck) InHand(c *Card) bool {
	return utils.FindIndex(d.hand, c) >= 0
}

func (d *Deck) Hand() []*Card        { return clone(d.hand) }
func (d *Deck) DrawPile() []*Card    { return clone(d.draw) }
func (d *Deck) DiscardPile() []*Card { return clone(d.discard) }

func (d *Deck) HandSize() int    { return len(d.hand) }
func (d *Deck) DrawSize() int    { return len(d.draw) }
func (d *Deck) DiscardSize() int { return len(d.discard) }

// Total is the size of the original card collection.
func (d *Deck) Total() int { return d.total }

// Conserved reports whether the three piles still add up to Total.
func (d *Deck) Conserved() bool {
	return len(d.draw)+len(d.hand)+len(d.discard) == d.total
}

func clone(cards []*Card) []*Card {
	out := make([]*Card, len(cards))
	copy(out, cards)
	return out
}
