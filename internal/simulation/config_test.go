package simulation

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"chosenoffset.com/frontier/internal/world"
	"chosenoffset.com/frontier/internal/world/biome"
	"chosenoffset.com/frontier/internal/world/resource"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "simulation.json")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected defaults to validate: %v", err)
	}
	if cfg.World.Width != 2000 || cfg.World.Height != 2000 {
		t.Errorf("Expected 2000x2000 world, got %vx%v", cfg.World.Width, cfg.World.Height)
	}
	if !reflect.DeepEqual(cfg.WorldGen().Spawns, world.DefaultSpawnTable()) {
		t.Error("Expected default spawn entries to round-trip into the default table")
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Error("Expected defaults for a missing file")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `{
		"world": {
			"width": 800,
			"seed": "custom",
			"spawns": [
				{"biome": "desert", "resource": "mineral", "attempts": 2, "chance": 0.25, "hits": 8}
			]
		},
		"player": {"speed_cap": 250},
		"interaction": {"gather_radius": 45}
	}`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.World.Width != 800 || cfg.World.Height != 2000 {
		t.Errorf("Expected 800x2000, got %vx%v", cfg.World.Width, cfg.World.Height)
	}
	if cfg.World.Seed != "custom" {
		t.Errorf("Expected seed 'custom', got '%s'", cfg.World.Seed)
	}
	if cfg.Player.SpeedCap != 250 || cfg.Player.Acceleration != 800 {
		t.Errorf("Expected speed cap override with default acceleration, got %+v", cfg.Player)
	}
	if cfg.Interaction.GatherRadius != 45 {
		t.Errorf("Expected gather radius 45, got %v", cfg.Interaction.GatherRadius)
	}

	table := cfg.WorldGen().Spawns
	if len(table) != 1 {
		t.Fatalf("Expected a single-biome table, got %v", table)
	}
	want := world.SpawnRule{Type: resource.Mineral, Attempts: 2, Chance: 0.25, Hits: 8}
	if got := table[biome.Desert]; len(got) != 1 || got[0] != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"malformed", `{"world": `, "failed to parse"},
		{"unknown biome", `{"world": {"spawns": [{"biome": "forrest", "resource": "wood", "attempts": 1, "chance": 1, "hits": 1}]}}`, `did you mean "forest"`},
		{"unknown resource", `{"world": {"spawns": [{"biome": "forest", "resource": "woood", "attempts": 1, "chance": 1, "hits": 1}]}}`, `did you mean "wood"`},
		{"zero width", `{"world": {"width": 0}}`, "world dimensions"},
		{"bad thresholds", `{"world": {"thresholds": [0.5, 0.1, 0.2, 0.3]}}`, "ascending"},
		{"bad viewport", `{"camera": {"viewport_width": 0}}`, "viewport"},
		{"bad tick rate", `{"loop": {"tick_rate": -1}}`, "tick rate"},
		{"bad friction", `{"player": {"friction": 2}}`, "friction"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Expected error containing %q, got %q", tt.wantMsg, err.Error())
			}
		})
	}
}

func TestValidateRanges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"smoothing", func(c *Config) { c.Camera.Smoothing = 0 }},
		{"radius", func(c *Config) { c.Interaction.GatherRadius = -5 }},
		{"catch up", func(c *Config) { c.Loop.MaxCatchUp = 0 }},
		{"cell size", func(c *Config) { c.World.CellSize = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestLoadConfigSpawnRows(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{"world": {"seed": "no-spawns"}}`))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !reflect.DeepEqual(cfg.WorldGen().Spawns, world.DefaultSpawnTable()) {
		t.Error("Expected the default spawn table when the file has no spawns")
	}

	// A row without hits must not pick up the default row's value
	_, err = LoadConfig(writeConfig(t, `{"world": {"spawns": [{"biome": "forest", "resource": "wood", "attempts": 1, "chance": 1}]}}`))
	if err == nil || !strings.Contains(err.Error(), "hits must be positive") {
		t.Errorf("Expected missing hits to fail validation, got %v", err)
	}
}
