// Package roster loads archetypes, skills and team line-ups from YAML and
// turns them into battle-ready teams.
package roster

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"anima/game"
	"anima/meta"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultRoster []byte

var (
	ErrUnknownSkill     = errors.New("unknown skill")
	ErrUnknownArchetype = errors.New("unknown archetype")
	ErrUnknownTeam      = errors.New("unknown team")
	ErrDuplicate        = errors.New("duplicate code")
	ErrTeamSize         = errors.New("team size out of range")
)

type File struct {
	FallbackSkill string      `yaml:"fallback_skill"`
	Archetypes    []Archetype `yaml:"archetypes"`
	Skills        []Skill     `yaml:"skills"`
	Teams         []TeamDef   `yaml:"teams"`
}

type Archetype struct {
	Code        string `yaml:"code"`
	Name        string `yaml:"name"`
	HP          int    `yaml:"hp"`
	Speed       int    `yaml:"speed"`
	Attack      int    `yaml:"attack"`
	Defense     int    `yaml:"defense"`
	Description string `yaml:"description"`
}

type Skill struct {
	Code   string `yaml:"code"`
	Name   string `yaml:"name"`
	Kind   string `yaml:"kind"`
	Cost   int    `yaml:"cost"`
	Effect int    `yaml:"effect"`
	Target string `yaml:"target"`
	Text   string `yaml:"text"`
}

type TeamDef struct {
	Name  string    `yaml:"name"`
	Units []UnitDef `yaml:"units"`
}

// UnitDef places one archetype on a team. Slot defaults to the unit's position
// in the list; HP is an optional wounded start.
type UnitDef struct {
	Name      string   `yaml:"name"`
	Archetype string   `yaml:"archetype"`
	Slot      *int     `yaml:"slot"`
	HP        int      `yaml:"hp"`
	Skills    []string `yaml:"skills"`
}

// Default returns the embedded roster.
func Default() (*File, error) {
	f, err := Parse(defaultRoster)
	if err != nil {
		return nil, fmt.Errorf("default roster: %w", err)
	}
	return f, nil
}

// Load reads and validates a roster file.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Marshal renders the file back to YAML.
func (f *File) Marshal() ([]byte, error) {
	return yaml.Marshal(f)
}

// Validate checks cross references, kinds and slots.
func (f *File) Validate() error {
	archetypes := make(map[string]bool, len(f.Archetypes))
	for _, a := range f.Archetypes {
		if a.Code == "" {
			return fmt.Errorf("archetype %q: missing code", a.Name)
		}
		if archetypes[a.Code] {
			return fmt.Errorf("archetype %q: %w", a.Code, ErrDuplicate)
		}
		if a.HP <= 0 || a.Speed < 0 || a.Attack < 0 || a.Defense < 0 {
			return fmt.Errorf("archetype %q: %w", a.Code, game.ErrInvalidStats)
		}
		archetypes[a.Code] = true
	}

	skills := make(map[string]bool, len(f.Skills))
	for _, s := range f.Skills {
		if s.Code == "" {
			return fmt.Errorf("skill %q: missing code", s.Name)
		}
		if skills[s.Code] {
			return fmt.Errorf("skill %q: %w", s.Code, ErrDuplicate)
		}
		if _, err := s.Spec(); err != nil {
			return fmt.Errorf("skill %q: %w", s.Code, err)
		}
		skills[s.Code] = true
	}
	if f.FallbackSkill != "" && !skills[f.FallbackSkill] {
		return fmt.Errorf("fallback skill %q: %w", f.FallbackSkill, ErrUnknownSkill)
	}

	teams := make(map[string]bool, len(f.Teams))
	for _, t := range f.Teams {
		if teams[t.Name] {
			return fmt.Errorf("team %q: %w", t.Name, ErrDuplicate)
		}
		teams[t.Name] = true
		if len(t.Units) == 0 || len(t.Units) > meta.TeamSlots {
			return fmt.Errorf("team %q has %d units: %w", t.Name, len(t.Units), ErrTeamSize)
		}
		slots := make(map[int]bool, len(t.Units))
		for i, u := range t.Units {
			if !archetypes[u.Archetype] {
				return fmt.Errorf("team %q unit %q: archetype %q: %w", t.Name, u.Name, u.Archetype, ErrUnknownArchetype)
			}
			for _, code := range u.Skills {
				if !skills[code] {
					return fmt.Errorf("team %q unit %q: skill %q: %w", t.Name, u.Name, code, ErrUnknownSkill)
				}
			}
			slot := u.slot(i)
			if slot < 0 || slot >= meta.TeamSlots {
				return fmt.Errorf("team %q unit %q: %w", t.Name, u.Name, game.ErrSlotOutOfRange)
			}
			if slots[slot] {
				return fmt.Errorf("team %q unit %q: %w", t.Name, u.Name, game.ErrSlotOccupied)
			}
			slots[slot] = true
		}
	}
	return nil
}

// Spec converts the skill into a card description.
func (s Skill) Spec() (game.CardSpec, error) {
	kind, err := game.ParseCardKind(s.Kind)
	if err != nil {
		return game.CardSpec{}, err
	}
	hint := game.DefaultHint(kind)
	if strings.TrimSpace(s.Target) != "" {
		if hint, err = game.ParseTargetHint(s.Target); err != nil {
			return game.CardSpec{}, err
		}
	}
	if s.Cost < 0 {
		return game.CardSpec{}, fmt.Errorf("negative cost %d", s.Cost)
	}
	name := s.Name
	if name == "" {
		name = s.Code
	}
	return game.CardSpec{Name: name, Kind: kind, Cost: s.Cost, Effect: s.Effect, Hint: hint, Text: s.Text}, nil
}

func (u UnitDef) slot(i int) int {
	if u.Slot != nil {
		return *u.Slot
	}
	return i
}

func (f *File) Archetype(code string) (Archetype, bool) {
	for _, a := range f.Archetypes {
		if a.Code == code {
			return a, true
		}
	}
	return Archetype{}, false
}

func (f *File) Skill(code string) (Skill, bool) {
	for _, s := range f.Skills {
		if s.Code == code {
			return s, true
		}
	}
	return Skill{}, false
}

func (f *File) Team(name string) (TeamDef, bool) {
	for _, t := range f.Teams {
		if t.Name == name {
			return t, true
		}
	}
	return TeamDef{}, false
}

// Build creates the named team on the given side. Units without skills get the
// fallback skill when one is configured.
func (f *File) Build(name string, side game.Side) (*game.Team, error) {
	def, ok := f.Team(name)
	if !ok {
		return nil, fmt.Errorf("team %q: %w", name, ErrUnknownTeam)
	}
	return f.build(def, side)
}

func (f *File) build(def TeamDef, side game.Side) (*game.Team, error) {
	team := game.NewTeam(def.Name, side)
	for i, ud := range def.Units {
		u, err := f.unit(ud)
		if err != nil {
			return nil, fmt.Errorf("team %q: %w", def.Name, err)
		}
		if err := team.Place(ud.slot(i), u); err != nil {
			return nil, fmt.Errorf("team %q: %w", def.Name, err)
		}
	}
	return team, nil
}

func (f *File) unit(ud UnitDef) (*game.Unit, error) {
	a, ok := f.Archetype(ud.Archetype)
	if !ok {
		return nil, fmt.Errorf("unit %q: archetype %q: %w", ud.Name, ud.Archetype, ErrUnknownArchetype)
	}
	name := ud.Name
	if name == "" {
		name = a.Name
	}
	u := game.NewUnit(name, game.Stats{MaxHP: a.HP, HP: ud.HP, Speed: a.Speed, Attack: a.Attack, Defense: a.Defense})

	codes := ud.Skills
	if len(codes) == 0 && f.FallbackSkill != "" {
		codes = []string{f.FallbackSkill}
	}
	for _, code := range codes {
		s, ok := f.Skill(code)
		if !ok {
			return nil, fmt.Errorf("unit %q: skill %q: %w", name, code, ErrUnknownSkill)
		}
		spec, err := s.Spec()
		if err != nil {
			return nil, fmt.Errorf("unit %q: skill %q: %w", name, code, err)
		}
		u.AddCard(spec)
	}
	return u, nil
}
