package game

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// EventKind classifies narrative events.
type EventKind int

const (
	EventRound EventKind = iota
	EventDraw
	EventReshuffle
	EventIntent
	EventAction
	EventNoTarget
	EventDefeat
	EventOutcome
)

var eventKindNames = [...]string{"round", "draw", "reshuffle", "intent", "action", "no_target", "defeat", "outcome"}

func (k EventKind) String() string {
	if k < EventRound || k > EventOutcome {
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
	return eventKindNames[k]
}

// Event is one line of battle narrative.
type Event struct {
	Round    int
	Kind     EventKind
	Actor    *Unit
	Action   CardKind
	Target   *Unit
	Amount   int // damage dealt, shield added or HP healed; cards drawn for EventDraw
	Absorbed int // shield absorbed part of a damage event
	Lost     int // HP lost in a damage event
	HP       int // target HP after the event
	Card     *Card
	Detail   string
}

func (e Event) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "round %d: ", e.Round)
	switch e.Kind {
	case EventAction:
		fmt.Fprintf(&b, "%s %s", name(e.Actor), strings.ToUpper(e.Action.String()))
		if e.Card != nil {
			fmt.Fprintf(&b, " [%s]", e.Card.Name)
		}
		fmt.Fprintf(&b, " -> %s for %d", name(e.Target), e.Amount)
		if e.Action == Attack {
			fmt.Fprintf(&b, " (shield absorbed %d, hp lost %d, hp %d/%d)", e.Absorbed, e.Lost, e.HP, e.Target.MaxHP)
		}
	case EventNoTarget:
		fmt.Fprintf(&b, "%s %s finds no target", name(e.Actor), strings.ToUpper(e.Action.String()))
	case EventIntent:
		fmt.Fprintf(&b, "%s intends to %s", name(e.Actor), e.Action)
	case EventDefeat:
		fmt.Fprintf(&b, "%s is defeated", name(e.Target))
	case EventDraw:
		fmt.Fprintf(&b, "drew %d card(s)", e.Amount)
	case EventReshuffle:
		fmt.Fprintf(&b, "discard pile shuffled into draw pile (%d cards)", e.Amount)
	case EventRound, EventOutcome:
		b.WriteString(e.Detail)
	}
	if e.Detail != "" && e.Kind != EventRound && e.Kind != EventOutcome {
		fmt.Fprintf(&b, " (%s)", e.Detail)
	}
	return b.String()
}

func name(u *Unit) string {
	if u == nil {
		return "-"
	}
	return u.String()
}

// Narrator is the sink for battle narrative.
type Narrator interface {
	Narrate(Event)
}

// NarratorFunc adapts a function to Narrator.
type NarratorFunc func(Event)

func (f NarratorFunc) Narrate(e Event) { f(e) }

// Recorder keeps every event in memory.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Narrate(e Event) { r.Events = append(r.Events, e) }

// Lines renders the recorded events.
func (r *Recorder) Lines() []string {
	lines := make([]string, len(r.Events))
	for i, e := range r.Events {
		lines[i] = e.String()
	}
	return lines
}

// Count returns how many events of kind were recorded.
func (r *Recorder) Count(kind EventKind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// LogNarrator writes each event as a structured zerolog line.
type LogNarrator struct {
	Logger zerolog.Logger
	Level  zerolog.Level
}

func NewLogNarrator(logger zerolog.Logger) *LogNarrator {
	return &LogNarrator{Logger: logger, Level: zerolog.InfoLevel}
}

func (l *LogNarrator) Narrate(e Event) {
	ev := l.Logger.WithLevel(l.Level).
		Int("round", e.Round).
		Str("event", e.Kind.String())
	if e.Actor != nil {
		ev = ev.Str("actor", e.Actor.String())
	}
	if e.Kind == EventAction || e.Kind == EventIntent || e.Kind == EventNoTarget {
		ev = ev.Str("action", e.Action.String())
	}
	if e.Target != nil {
		ev = ev.Str("target", e.Target.String())
	}
	if e.Kind == EventAction || e.Kind == EventDraw || e.Kind == EventReshuffle {
		ev = ev.Int("amount", e.Amount)
	}
	ev.Msg(e.String())
}

type multiNarrator []Narrator

func (m multiNarrator) Narrate(e Event) {
	for _, n := range m {
		n.Narrate(e)
	}
}

// Narrators fans each event out to every non-nil narrator.
func Narrators(narrators ...Narrator) Narrator {
	var out multiNarrator
	for _, n := range narrators {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}
