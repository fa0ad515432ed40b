package engine

import "fmt"

// championCatalog returns the ordered champion pool made available at
// EnterChampSelect (spec.md §4.3.2: "Champ 1", ..., "Champ 100",
// implementation-defined catalog, stable order).
func championCatalog() []string {
	champs := make([]string, 100)
	for i := range champs {
		champs[i] = fmt.Sprintf("Champ %d", i+1)
	}
	return champs
}

// MapDefinition names a playable map and documents (but does not enforce,
// spec.md §9c) its team-count bounds.
type MapDefinition struct {
	Name     string
	MinTeams int
	MaxTeams int
}

// knownMaps is the catalog UpdateSettings validates map names against
// (spec.md §4.3.2 "map must match a known map name").
func knownMaps() []MapDefinition {
	return []MapDefinition{
		{Name: "Default", MinTeams: 2, MaxTeams: 2},
		{Name: "Jungle", MinTeams: 2, MaxTeams: 4},
		{Name: "Proving Grounds", MinTeams: 2, MaxTeams: 2},
		{Name: "Skyward Ruins", MinTeams: 2, MaxTeams: 6},
	}
}

func isKnownMap(name string) bool {
	for _, m := range knownMaps() {
		if m.Name == name {
			return true
		}
	}
	return false
}
