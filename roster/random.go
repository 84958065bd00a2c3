package roster

import (
	"fmt"

	"anima/game"
	"anima/meta"

	"golang.org/x/exp/rand"
)

// SkillsPerUnit is how many skills a randomized unit is given.
const SkillsPerUnit = 2

// Randomize builds a team of size units with random archetypes and skills. The
// same file, side, size and seed always produce the same team.
func Randomize(f *File, side game.Side, size int, seed uint64) (*game.Team, error) {
	if size < 1 || size > meta.TeamSlots {
		return nil, fmt.Errorf("randomize %d units: %w", size, ErrTeamSize)
	}
	if len(f.Archetypes) == 0 {
		return nil, fmt.Errorf("randomize: no archetypes: %w", ErrUnknownArchetype)
	}
	if len(f.Skills) == 0 && f.FallbackSkill == "" {
		return nil, fmt.Errorf("randomize: no skills: %w", ErrUnknownSkill)
	}

	rng := rand.New(rand.NewSource(seed))
	def := TeamDef{Name: fmt.Sprintf("random-%d", seed)}
	for i := 0; i < size; i++ {
		a := f.Archetypes[rng.Intn(len(f.Archetypes))]
		ud := UnitDef{Name: fmt.Sprintf("%s %c", a.Name, 'A'+i), Archetype: a.Code}
		for _, j := range rng.Perm(len(f.Skills))[:min(SkillsPerUnit, len(f.Skills))] {
			ud.Skills = append(ud.Skills, f.Skills[j].Code)
		}
		def.Units = append(def.Units, ud)
	}
	return f.build(def, side)
}
