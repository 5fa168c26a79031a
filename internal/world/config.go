package world

import (
	"math"

	"github.com/pkg/errors"

	"chosenoffset.com/frontier/internal/world/biome"
	"chosenoffset.com/frontier/internal/world/resource"
)

// ErrInvalidDimensions is the cause of every error about a non-positive
// or non-finite world size.
var ErrInvalidDimensions = errors.New("world dimensions must be positive and finite")

// SpawnRule describes one kind of resource a biome can spawn. Each cell of
// the biome makes Attempts independent draws, each succeeding with Chance.
type SpawnRule struct {
	Type     resource.Type
	Attempts int
	Chance   float64
	Hits     int
}

// SpawnTable lists the spawn rules of each biome. Rules are applied in
// slice order.
type SpawnTable map[biome.Biome][]SpawnRule

// DefaultSpawnTable is the stock resource distribution.
func DefaultSpawnTable() SpawnTable {
	return SpawnTable{
		biome.Forest: {
			{Type: resource.Wood, Attempts: 3, Chance: 1.0, Hits: 3},
			{Type: resource.Stone, Attempts: 1, Chance: 0.5, Hits: 5},
		},
		biome.Plains: {
			{Type: resource.Wood, Attempts: 1, Chance: 0.3, Hits: 3},
			{Type: resource.Food, Attempts: 2, Chance: 0.7, Hits: 1},
		},
		biome.Desert: {
			{Type: resource.Mineral, Attempts: 1, Chance: 0.4, Hits: 10},
			{Type: resource.Stone, Attempts: 1, Chance: 0.3, Hits: 7},
		},
		biome.Snow: {
			{Type: resource.Wood, Attempts: 1, Chance: 0.6, Hits: 4},
			{Type: resource.Stone, Attempts: 1, Chance: 0.4, Hits: 6},
		},
		biome.Swamp: {
			{Type: resource.Wood, Attempts: 1, Chance: 0.4, Hits: 3},
			{Type: resource.Mineral, Attempts: 1, Chance: 0.2, Hits: 10},
		},
	}
}

// Validate checks every rule in the table.
func (t SpawnTable) Validate() error {
	for b, rules := range t {
		if !b.Valid() {
			return errors.Errorf("spawn table: invalid biome %v", b)
		}
		for i, r := range rules {
			switch {
			case r.Attempts < 0:
				return errors.Errorf("spawn table: %s rule %d: negative attempts %d", b, i, r.Attempts)
			case !(r.Chance >= 0 && r.Chance <= 1):
				return errors.Errorf("spawn table: %s rule %d: chance %v outside [0, 1]", b, i, r.Chance)
			case r.Hits <= 0:
				return errors.Errorf("spawn table: %s rule %d: hits must be positive, got %d", b, i, r.Hits)
			}
		}
	}
	return nil
}

// Config holds every input of world generation. Two generators built from
// equal configs produce identical worlds.
type Config struct {
	Width  float64
	Height float64
	Seed   string

	// CellSize is the side of the square biome cells.
	CellSize float64
	// BiomeScale multiplies cell coordinates before sampling noise. Smaller
	// values give larger biome regions.
	BiomeScale float64
	// JitterMargin keeps nodes this far from cell edges.
	JitterMargin float64

	Thresholds biome.Thresholds
	Spawns     SpawnTable
}

// DefaultConfig returns the stock generation settings for a world of the
// given size and seed.
func DefaultConfig(width, height float64, seed string) Config {
	return Config{
		Width:        width,
		Height:       height,
		Seed:         seed,
		CellSize:     100,
		BiomeScale:   0.003,
		JitterMargin: 20,
		Thresholds:   biome.DefaultThresholds,
		Spawns:       DefaultSpawnTable(),
	}
}

// Validate checks the construction preconditions.
func (c Config) Validate() error {
	if !positiveFinite(c.Width) || !positiveFinite(c.Height) {
		return errors.Wrapf(ErrInvalidDimensions, "got %vx%v", c.Width, c.Height)
	}
	if !positiveFinite(c.CellSize) {
		return errors.Errorf("cell size must be positive, got %v", c.CellSize)
	}
	if !positiveFinite(c.BiomeScale) {
		return errors.Errorf("biome scale must be positive, got %v", c.BiomeScale)
	}
	if !(c.JitterMargin >= 0 && 2*c.JitterMargin < c.CellSize) {
		return errors.Errorf("jitter margin %v must be in [0, %v)", c.JitterMargin, c.CellSize/2)
	}
	if err := c.Thresholds.Validate(); err != nil {
		return err
	}
	return c.Spawns.Validate()
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
