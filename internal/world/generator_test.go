package world

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"chosenoffset.com/frontier/internal/world/biome"
	"chosenoffset.com/frontier/internal/world/resource"
)

// constField assigns the same biome to every cell.
type constField float64

func (f constField) Sample(x, y float64) float64 { return float64(f) }

func mustGenerate(t *testing.T, cfg Config) *Generator {
	t.Helper()
	g, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestGenerateIsDeterministic(t *testing.T) {
	cfg := DefaultConfig(1200, 900, "test-1")
	a := mustGenerate(t, cfg)
	b := mustGenerate(t, cfg)

	if len(a.Nodes()) != len(b.Nodes()) {
		t.Fatalf("Expected equal node counts, got %d and %d", len(a.Nodes()), len(b.Nodes()))
	}
	for i := range a.Nodes() {
		na, nb := a.Nodes()[i], b.Nodes()[i]
		if na.ID() != nb.ID() || na.Position() != nb.Position() || na.Type() != nb.Type() || na.HitsRequired() != nb.HitsRequired() {
			t.Fatalf("Node %d differs: %s@%v vs %s@%v", i, na.ID(), na.Position(), nb.ID(), nb.Position())
		}
	}
	for x := 0.0; x < 1200; x += 37 {
		for y := 0.0; y < 900; y += 41 {
			if a.BiomeAt(x, y) != b.BiomeAt(x, y) {
				t.Fatalf("BiomeAt(%v, %v) differs", x, y)
			}
		}
	}
}

func TestDifferentSeedsDiffer(t *testing.T) {
	a := mustGenerate(t, DefaultConfig(2000, 2000, "alpha"))
	b := mustGenerate(t, DefaultConfig(2000, 2000, "beta"))

	same := len(a.Nodes()) == len(b.Nodes())
	if same {
		for i := range a.Nodes() {
			if a.Nodes()[i].Position() != b.Nodes()[i].Position() {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("Expected different seeds to produce different worlds")
	}
}

func TestGeneratorReady(t *testing.T) {
	g := mustGenerate(t, DefaultConfig(400, 400, "test-1"))
	if g.State() != Ready {
		t.Errorf("Expected state ready, got %v", g.State())
	}
	stats := g.Stats()
	total := 0
	for _, n := range stats.Cells {
		total += n
	}
	if total != 16 {
		t.Errorf("Expected 16 cells, got %d", total)
	}
	if g.Spawn() != (mgl64.Vec2{200, 200}) {
		t.Errorf("Expected spawn at centre, got %v", g.Spawn())
	}
}

func TestNearbyExample(t *testing.T) {
	g := mustGenerate(t, DefaultConfig(400, 400, "test-1"))
	p := mgl64.Vec2{220, 220}
	for _, n := range g.Nearby(220, 220, 60) {
		if d := n.Distance(p); d > 60 {
			t.Errorf("Node %s at distance %v exceeds radius", n.ID(), d)
		}
		if n.IsGathered() {
			t.Errorf("Gathered node %s returned", n.ID())
		}
	}
}

func TestBiomeAtOutsideWorld(t *testing.T) {
	g := mustGenerate(t, DefaultConfig(400, 300, "edges"))

	tests := []struct {
		name string
		x, y float64
	}{
		{"negative x", -1, 10},
		{"negative y", 10, -0.001},
		{"right edge", 400, 10},
		{"bottom edge", 10, 300},
		{"far away", 1e9, 1e9},
		{"nan", math.NaN(), 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.BiomeAt(tt.x, tt.y); got != biome.None {
				t.Errorf("BiomeAt(%v, %v) = %v, want none", tt.x, tt.y, got)
			}
		})
	}

	if !g.BiomeAt(0, 0).Valid() || !g.BiomeAt(399.9, 299.9).Valid() {
		t.Error("Expected real biomes inside the world")
	}
}

func TestBiomeAtMatchesCellGrid(t *testing.T) {
	g, err := NewWithField(DefaultConfig(300, 300, "flat"), constField(0.7))
	if err != nil {
		t.Fatalf("NewWithField: %v", err)
	}
	g.EachCell(func(c Cell, origin, size mgl64.Vec2, b biome.Biome) {
		if b != biome.Snow {
			t.Errorf("Cell %v: expected snow, got %v", c, b)
		}
		if got := g.BiomeAt(origin.X()+size.X()-0.5, origin.Y()+0.5); got != b {
			t.Errorf("BiomeAt inside cell %v = %v, want %v", c, got, b)
		}
	})
}

func TestResourcesFollowSpawnTable(t *testing.T) {
	g, err := NewWithField(DefaultConfig(1000, 1000, "forest"), constField(-0.2))
	if err != nil {
		t.Fatalf("NewWithField: %v", err)
	}

	wood := 0
	seen := make(map[string]bool)
	for _, n := range g.Nodes() {
		if seen[n.ID()] {
			t.Fatalf("Duplicate node id %s", n.ID())
		}
		seen[n.ID()] = true

		if n.Biome() != biome.Forest {
			t.Errorf("Node %s: expected forest biome, got %v", n.ID(), n.Biome())
		}
		switch n.Type() {
		case resource.Wood:
			wood++
			if n.HitsRequired() != 3 {
				t.Errorf("Forest wood should need 3 hits, got %d", n.HitsRequired())
			}
		case resource.Stone:
			if n.HitsRequired() != 5 {
				t.Errorf("Forest stone should need 5 hits, got %d", n.HitsRequired())
			}
		default:
			t.Errorf("Unexpected %v in forest", n.Type())
		}
		if n.CurrentHits() != 0 || n.IsGathered() {
			t.Errorf("Node %s should start untouched", n.ID())
		}
	}

	// Wood always spawns three times per forest cell.
	if wood != 300 {
		t.Errorf("Expected 300 wood nodes, got %d", wood)
	}
}

func TestNodesStayInsideMargins(t *testing.T) {
	cfg := DefaultConfig(1050, 1030, "margins")
	g, err := NewWithField(cfg, constField(-0.2))
	if err != nil {
		t.Fatalf("NewWithField: %v", err)
	}
	for _, n := range g.Nodes() {
		p := n.Position()
		if p.X() < 0 || p.Y() < 0 || p.X() >= cfg.Width || p.Y() >= cfg.Height {
			t.Fatalf("Node %s at %v is outside the world", n.ID(), p)
		}
		c, ok := g.CellAt(p.X(), p.Y())
		if !ok {
			t.Fatalf("Node %s has no owning cell", n.ID())
		}
		localX := p.X() - float64(c.X)*cfg.CellSize
		localY := p.Y() - float64(c.Y)*cfg.CellSize
		fullCell := float64(c.X+1)*cfg.CellSize <= cfg.Width && float64(c.Y+1)*cfg.CellSize <= cfg.Height
		if fullCell && (localX < cfg.JitterMargin || localX > cfg.CellSize-cfg.JitterMargin ||
			localY < cfg.JitterMargin || localY > cfg.CellSize-cfg.JitterMargin) {
			t.Errorf("Node %s at local %v,%v is inside the jitter margin", n.ID(), localX, localY)
		}
	}
}

func TestHitThroughGenerator(t *testing.T) {
	g, err := NewWithField(DefaultConfig(100, 100, "hit"), constField(-0.2))
	if err != nil {
		t.Fatalf("NewWithField: %v", err)
	}
	n := g.Nodes()[0]
	for i := 0; i < n.HitsRequired()-1; i++ {
		if g.Hit(n) {
			t.Fatal("Node completed early")
		}
	}
	if !g.Hit(n) {
		t.Fatal("Expected final hit to complete the node")
	}
	for _, m := range g.Nearby(n.Position().X(), n.Position().Y(), 1) {
		if m == n {
			t.Error("Gathered node still returned by Nearby")
		}
	}
}

func TestInvalidConfig(t *testing.T) {
	base := DefaultConfig(400, 400, "x")

	tests := []struct {
		name   string
		mutate func(*Config)
		dims   bool
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, true},
		{"negative height", func(c *Config) { c.Height = -10 }, true},
		{"infinite width", func(c *Config) { c.Width = math.Inf(1) }, true},
		{"zero cell", func(c *Config) { c.CellSize = 0 }, false},
		{"zero scale", func(c *Config) { c.BiomeScale = 0 }, false},
		{"margin too large", func(c *Config) { c.JitterMargin = 50 }, false},
		{"margin NaN", func(c *Config) { c.JitterMargin = math.NaN() }, false},
		{"bad thresholds", func(c *Config) { c.Thresholds = biome.Thresholds{1, 0, 0, 0} }, false},
		{"bad chance", func(c *Config) {
			c.Spawns = SpawnTable{biome.Forest: {{Type: resource.Wood, Attempts: 1, Chance: 1.5, Hits: 1}}}
		}, false},
		{"bad hits", func(c *Config) {
			c.Spawns = SpawnTable{biome.Forest: {{Type: resource.Wood, Attempts: 1, Chance: 0.5, Hits: 0}}}
		}, false},
		{"sentinel biome", func(c *Config) {
			c.Spawns = SpawnTable{biome.None: {{Type: resource.Wood, Attempts: 1, Chance: 0.5, Hits: 1}}}
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			cfg.Spawns = DefaultSpawnTable()
			tt.mutate(&cfg)
			_, err := New(cfg)
			if err == nil {
				t.Fatal("Expected error")
			}
			if tt.dims && errors.Cause(err) != ErrInvalidDimensions {
				t.Errorf("Expected ErrInvalidDimensions cause, got %v", err)
			}
		})
	}
}

func TestStateString(t *testing.T) {
	want := map[State]string{
		Uninitialized:    "uninitialized",
		BiomesAssigned:   "biomes-assigned",
		ResourcesSpawned: "resources-spawned",
		Ready:            "ready",
	}
	for s, name := range want {
		if s.String() != name {
			t.Errorf("Expected %q, got %q", name, s.String())
		}
	}
}

func TestNodeIDsUseCellOrigin(t *testing.T) {
	cfg := DefaultConfig(400, 400, "ids")
	cfg.Spawns = SpawnTable{biome.Forest: {{Type: resource.Wood, Attempts: 3, Chance: 1, Hits: 3}}}
	g, err := NewWithField(cfg, constField(-0.2))
	if err != nil {
		t.Fatalf("NewWithField: %v", err)
	}

	// Cells are visited column by column, so (0, 100) follows (0, 0)
	want := []string{
		"forest-wood-0-0-0", "forest-wood-0-0-1", "forest-wood-0-0-2",
		"forest-wood-0-100-0",
	}
	nodes := g.Nodes()
	if len(nodes) != 48 {
		t.Fatalf("Expected 48 nodes, got %d", len(nodes))
	}
	for i, id := range want {
		if nodes[i].ID() != id {
			t.Errorf("Node %d: expected id %s, got %s", i, id, nodes[i].ID())
		}
	}
	if last := nodes[len(nodes)-1].ID(); last != "forest-wood-300-300-2" {
		t.Errorf("Expected last id forest-wood-300-300-2, got %s", last)
	}
}
