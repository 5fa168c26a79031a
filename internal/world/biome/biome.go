// Package biome defines the closed set of biomes and the threshold
// classifier that maps noise samples onto them.
package biome

import (
	"strings"

	"github.com/pkg/errors"

	"chosenoffset.com/frontier/internal/textmatch"
)

// Biome is a terrain category assigned per world grid cell.
type Biome uint8

const (
	// None is returned for coordinates outside the generated world.
	None Biome = iota
	Forest
	Plains
	Desert
	Snow
	Swamp
)

var names = [...]string{
	None:   "none",
	Forest: "forest",
	Plains: "plains",
	Desert: "desert",
	Snow:   "snow",
	Swamp:  "swamp",
}

// All returns every real biome in declaration order.
func All() []Biome {
	return []Biome{Forest, Plains, Desert, Snow, Swamp}
}

func (b Biome) String() string {
	if int(b) < len(names) {
		return names[b]
	}
	return "unknown"
}

// Valid reports whether b is one of the real biomes.
func (b Biome) Valid() bool {
	return b >= Forest && b <= Swamp
}

// MarshalText implements encoding.TextMarshaler.
func (b Biome) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Biome) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// Parse resolves a biome name, case-insensitively.
func Parse(name string) (Biome, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	candidates := make([]string, 0, len(names)-1)
	for _, b := range All() {
		if names[b] == key {
			return b, nil
		}
		candidates = append(candidates, names[b])
	}
	return None, errors.Errorf("unknown biome %q%s", name, textmatch.Suggestion(key, candidates))
}
