package game

import "testing"

func newUnit(t *testing.T, team *Team, slot int, name string, stats Stats, kinds ...CardKind) *Unit {
	t.Helper()
	u := NewUnit(name, stats)
	for _, k := range kinds {
		u.AddCard(CardSpec{Name: name + " " + k.String(), Kind: k, Cost: 1})
	}
	if err := team.Place(slot, u); err != nil {
		t.Fatalf("place %s: %v", name, err)
	}
	return u
}
