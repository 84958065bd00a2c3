package player

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"anima/game"
	"anima/gamemaster"
)

// Console lets a human pick cards on a terminal. Each line lists hand numbers,
// optionally bound to a slot with @: "1 3@2" plays card 1 and card 3 on slot 2.
// Attack slots refer to the enemy team, shield and heal slots to the player team.
// An empty line passes and "auto" uses the reference policy.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

func (c *Console) ShowIntents(round int, intents []game.Intent) {
	fmt.Fprintf(c.out, "\n=== round %d ===\nenemy intents:\n", round)
	for _, in := range intents {
		fmt.Fprintf(c.out, "  %s -> %s\n", in.Unit, in.Kind)
	}
}

func (c *Console) Propose(ctx context.Context, req gamemaster.Request) ([]gamemaster.Choice, error) {
	if req.Rejection != nil {
		fmt.Fprintf(c.out, "rejected: %v\n", req.Rejection)
	}
	c.render(req)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fmt.Fprint(c.out, "> ")
		if !c.in.Scan() {
			if err := c.in.Err(); err != nil {
				return nil, fmt.Errorf("read selection: %w", err)
			}
			return nil, fmt.Errorf("read selection: %w", io.EOF)
		}

		line := strings.TrimSpace(c.in.Text())
		if strings.EqualFold(line, "auto") {
			return gamemaster.AutoSelect(req), nil
		}
		choices, err := ParseSelection(line, req)
		if err != nil {
			fmt.Fprintf(c.out, "%v\n", err)
			continue
		}
		return choices, nil
	}
}

func (c *Console) render(req gamemaster.Request) {
	fmt.Fprintf(c.out, "energy %d\n", req.Energy)
	renderTeam(c.out, req.Player)
	renderTeam(c.out, req.Enemy)
	fmt.Fprintln(c.out, "hand:")
	for i, card := range req.Hand {
		fmt.Fprintf(c.out, "  [%d] %s (%s, %s, cost %d)", i+1, card.Name, card.Owner().Name, card.Kind, card.Cost)
		if card.Text != "" {
			fmt.Fprintf(c.out, " %s", card.Text)
		}
		fmt.Fprintln(c.out)
	}
}

func renderTeam(w io.Writer, t *game.Team) {
	fmt.Fprintf(w, "%s %q:\n", t.Side, t.Name)
	for _, u := range t.Units() {
		status := fmt.Sprintf("hp %d/%d shield %d", u.HP(), u.MaxHP, u.Shield())
		if !u.IsAlive() {
			status = "defeated"
		}
		fmt.Fprintf(w, "  @%d %s %s\n", u.Slot, u.Name, status)
	}
}

// ParseSelection turns a line of "<hand#>" or "<hand#>@<slot>" tokens, separated
// by spaces or commas, into choices. It checks the syntax only; the director
// validates the result.
func ParseSelection(line string, req gamemaster.Request) ([]gamemaster.Choice, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' })
	choices := make([]gamemaster.Choice, 0, len(fields))
	for _, f := range fields {
		index, slot, hasSlot := strings.Cut(f, "@")
		n, err := strconv.Atoi(index)
		if err != nil || n < 1 || n > len(req.Hand) {
			return nil, fmt.Errorf("unknown card %q, pick 1..%d", index, len(req.Hand))
		}
		ch := gamemaster.Choice{Card: req.Hand[n-1]}
		if hasSlot {
			s, err := strconv.Atoi(slot)
			if err != nil {
				return nil, fmt.Errorf("bad slot %q", slot)
			}
			team := req.Player
			if ch.Card.Kind == game.Attack {
				team = req.Enemy
			}
			u, ok := team.Slot(s).Unit()
			if !ok {
				return nil, fmt.Errorf("slot %d of %s is empty", s, team.Side)
			}
			ch.Target = u
		}
		choices = append(choices, ch)
	}
	return choices, nil
}
