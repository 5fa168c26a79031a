// Package simulation provides configuration for the game simulation rules.
// Rules can be loaded from a JSON file so a world can be tuned without
// rebuilding.
package simulation

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"chosenoffset.com/frontier/internal/camera"
	"chosenoffset.com/frontier/internal/entity"
	"chosenoffset.com/frontier/internal/interaction"
	"chosenoffset.com/frontier/internal/world"
	"chosenoffset.com/frontier/internal/world/biome"
	"chosenoffset.com/frontier/internal/world/resource"
)

// Config holds all simulation rules for a session
type Config struct {
	World       WorldConfig         `json:"world"`
	Player      entity.MotionConfig `json:"player"`
	Camera      CameraConfig        `json:"camera"`
	Interaction InteractionConfig   `json:"interaction"`
	Loop        LoopConfig          `json:"loop"`
	Log         LogConfig           `json:"log"`
}

// WorldConfig defines world size and procedural generation
type WorldConfig struct {
	Width        float64          `json:"width"`
	Height       float64          `json:"height"`
	Seed         string           `json:"seed"`
	CellSize     float64          `json:"cell_size"`     // Side of a biome cell
	BiomeScale   float64          `json:"biome_scale"`   // Noise frequency; smaller = larger biomes
	JitterMargin float64          `json:"jitter_margin"` // Keep nodes this far from cell edges
	Thresholds   biome.Thresholds `json:"thresholds"`    // swamp|forest|plains|desert|snow cut points
	Spawns       []SpawnEntry     `json:"spawns"`
}

// SpawnEntry is one row of the spawn table, e.g.
// {"biome": "forest", "resource": "wood", "attempts": 3, "chance": 1, "hits": 3}
type SpawnEntry struct {
	Biome    biome.Biome   `json:"biome"`
	Resource resource.Type `json:"resource"`
	Attempts int           `json:"attempts"`
	Chance   float64       `json:"chance"`
	Hits     int           `json:"hits"`
}

// CameraConfig defines the viewport
type CameraConfig struct {
	ViewportWidth  int     `json:"viewport_width"`
	ViewportHeight int     `json:"viewport_height"`
	Smoothing      float64 `json:"smoothing"` // Fraction of the gap closed per tick
}

// InteractionConfig defines gathering
type InteractionConfig struct {
	GatherRadius float64 `json:"gather_radius"`
}

// LoopConfig defines the fixed-step scheduler
type LoopConfig struct {
	TickRate   int `json:"tick_rate"`    // Simulation ticks per second
	MaxCatchUp int `json:"max_catch_up"` // Most ticks run for one frame
}

// LogConfig selects log output
type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"` // "text" or "json"
}

// DefaultConfig returns the stock survival settings
func DefaultConfig() *Config {
	w := world.DefaultConfig(2000, 2000, "survival-seed-123")
	return &Config{
		World: WorldConfig{
			Width:        w.Width,
			Height:       w.Height,
			Seed:         w.Seed,
			CellSize:     w.CellSize,
			BiomeScale:   w.BiomeScale,
			JitterMargin: w.JitterMargin,
			Thresholds:   w.Thresholds,
			Spawns:       EntriesFromTable(w.Spawns),
		},
		Player: entity.DefaultMotion(),
		Camera: CameraConfig{
			ViewportWidth:  1280,
			ViewportHeight: 800,
			Smoothing:      camera.DefaultSmoothing,
		},
		Interaction: InteractionConfig{
			GatherRadius: interaction.DefaultGatherRadius,
		},
		Loop: LoopConfig{
			TickRate:   60,
			MaxCatchUp: 5,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads simulation config from a JSON file. Fields missing from
// the file keep their defaults; a missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrap(err, "failed to read simulation config")
	}

	config := DefaultConfig()
	// Spawn rows replace the default table wholesale rather than merging
	// into its elements.
	defaultSpawns := config.World.Spawns
	config.World.Spawns = nil
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Wrapf(err, "failed to parse simulation config %s", path)
	}
	if config.World.Spawns == nil {
		config.World.Spawns = defaultSpawns
	}
	if err := config.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid simulation config %s", path)
	}
	return config, nil
}

// Validate checks every construction precondition
func (c *Config) Validate() error {
	if err := c.WorldGen().Validate(); err != nil {
		return err
	}
	if err := c.Player.Validate(); err != nil {
		return err
	}
	if c.Camera.ViewportWidth <= 0 || c.Camera.ViewportHeight <= 0 {
		return errors.Errorf("viewport must be positive, got %dx%d", c.Camera.ViewportWidth, c.Camera.ViewportHeight)
	}
	if !(c.Camera.Smoothing > 0 && c.Camera.Smoothing <= 1) {
		return errors.Errorf("camera smoothing must be in (0, 1], got %v", c.Camera.Smoothing)
	}
	if !(c.Interaction.GatherRadius >= 0) {
		return errors.Errorf("gather radius must not be negative, got %v", c.Interaction.GatherRadius)
	}
	if c.Loop.TickRate <= 0 {
		return errors.Errorf("tick rate must be positive, got %d", c.Loop.TickRate)
	}
	if c.Loop.MaxCatchUp <= 0 {
		return errors.Errorf("max catch-up must be positive, got %d", c.Loop.MaxCatchUp)
	}
	return nil
}

// WorldGen converts the world section into generator settings
func (c *Config) WorldGen() world.Config {
	return world.Config{
		Width:        c.World.Width,
		Height:       c.World.Height,
		Seed:         c.World.Seed,
		CellSize:     c.World.CellSize,
		BiomeScale:   c.World.BiomeScale,
		JitterMargin: c.World.JitterMargin,
		Thresholds:   c.World.Thresholds,
		Spawns:       TableFromEntries(c.World.Spawns),
	}
}

// TableFromEntries groups spawn entries by biome, keeping their order
func TableFromEntries(entries []SpawnEntry) world.SpawnTable {
	table := make(world.SpawnTable)
	for _, e := range entries {
		table[e.Biome] = append(table[e.Biome], world.SpawnRule{
			Type:     e.Resource,
			Attempts: e.Attempts,
			Chance:   e.Chance,
			Hits:     e.Hits,
		})
	}
	return table
}

// EntriesFromTable flattens a spawn table in biome order
func EntriesFromTable(table world.SpawnTable) []SpawnEntry {
	var entries []SpawnEntry
	for _, b := range biome.All() {
		for _, r := range table[b] {
			entries = append(entries, SpawnEntry{
				Biome:    b,
				Resource: r.Type,
				Attempts: r.Attempts,
				Chance:   r.Chance,
				Hits:     r.Hits,
			})
		}
	}
	return entries
}
