// Package world generates the static game world: a grid of biome cells and
// the resource nodes scattered over it.
package world

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"

	"chosenoffset.com/frontier/internal/logger"
	"chosenoffset.com/frontier/internal/world/biome"
	"chosenoffset.com/frontier/internal/world/noise"
	"chosenoffset.com/frontier/internal/world/resource"
	"chosenoffset.com/frontier/internal/world/spatial"
)

// State is the generation phase a Generator has reached.
type State uint8

const (
	Uninitialized State = iota
	BiomesAssigned
	ResourcesSpawned
	Ready
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case BiomesAssigned:
		return "biomes-assigned"
	case ResourcesSpawned:
		return "resources-spawned"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Cell is the integer index of a grid cell.
type Cell struct {
	X, Y int
}

// Grid maps every cell of the world to its biome.
type Grid map[Cell]biome.Biome

// Stats summarises a generated world.
type Stats struct {
	Cells map[biome.Biome]int
	Nodes map[resource.Type]int
}

// Generator builds the world once at construction and then serves
// read-only lookups. Hit is the only operation that mutates it.
type Generator struct {
	cfg        Config
	state      State
	field      noise.Field
	classifier biome.Classifier

	cols, rows int
	grid       Grid
	nodes      []*resource.Node
	index      *spatial.Index
}

// New generates a world using OpenSimplex noise seeded from cfg.Seed.
func New(cfg Config) (*Generator, error) {
	return NewWithField(cfg, noise.New(cfg.Seed))
}

// NewWithField generates a world sampling biomes from field.
func NewWithField(cfg Config, field noise.Field) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Generator{
		cfg:        cfg,
		field:      field,
		classifier: biome.Classifier{Thresholds: cfg.Thresholds},
		cols:       int(math.Ceil(cfg.Width / cfg.CellSize)),
		rows:       int(math.Ceil(cfg.Height / cfg.CellSize)),
	}

	g.assignBiomes()
	if err := g.spawnResources(); err != nil {
		return nil, err
	}
	g.index = spatial.New(g.nodes)
	g.state = Ready

	stats := g.Stats()
	fields := logrus.Fields{
		"width":  cfg.Width,
		"height": cfg.Height,
		"seed":   cfg.Seed,
		"cells":  len(g.grid),
		"nodes":  len(g.nodes),
	}
	for _, t := range resource.Types() {
		fields[t.String()] = stats.Nodes[t]
	}
	logger.Log.WithFields(fields).Info("World generated")

	return g, nil
}

func (g *Generator) assignBiomes() {
	g.grid = make(Grid, g.cols*g.rows)
	scale := g.cfg.BiomeScale
	for cx := 0; cx < g.cols; cx++ {
		for cy := 0; cy < g.rows; cy++ {
			origin := g.cellOrigin(Cell{cx, cy})
			v := g.field.Sample(origin.X()*scale, origin.Y()*scale)
			g.grid[Cell{cx, cy}] = g.classifier.Classify(v)
		}
	}
	g.state = BiomesAssigned
}

func (g *Generator) spawnResources() error {
	rng := seededRNG(g.cfg.Seed, "resources")
	for cx := 0; cx < g.cols; cx++ {
		for cy := 0; cy < g.rows; cy++ {
			cell := Cell{cx, cy}
			b := g.grid[cell]
			ordinal := 0
			for _, rule := range g.cfg.Spawns[b] {
				for i := 0; i < rule.Attempts; i++ {
					if rng.Float64() >= rule.Chance {
						continue
					}
					if err := g.addNode(rng, cell, b, rule, ordinal); err != nil {
						return err
					}
					ordinal++
				}
			}
		}
	}
	g.state = ResourcesSpawned
	return nil
}

// addNode places a node uniformly inside the in-bounds part of cell, kept
// JitterMargin away from its edges.
func (g *Generator) addNode(rng *rand.Rand, cell Cell, b biome.Biome, rule SpawnRule, ordinal int) error {
	origin := g.cellOrigin(cell)
	extentX := math.Min(g.cfg.CellSize, g.cfg.Width-origin.X())
	extentY := math.Min(g.cfg.CellSize, g.cfg.Height-origin.Y())

	pos := mgl64.Vec2{
		origin.X() + jitter(rng, extentX, g.cfg.JitterMargin),
		origin.Y() + jitter(rng, extentY, g.cfg.JitterMargin),
	}
	id := fmt.Sprintf("%s-%s-%g-%g-%d", b, rule.Type, origin.X(), origin.Y(), ordinal)

	n, err := resource.NewNode(id, rule.Type, pos, b, rule.Hits)
	if err != nil {
		return err
	}
	g.nodes = append(g.nodes, n)
	return nil
}

func jitter(rng *rand.Rand, extent, margin float64) float64 {
	span := extent - 2*margin
	if span <= 0 {
		// Still consume a draw so later nodes do not depend on cell clipping.
		rng.Float64()
		return extent / 2
	}
	return margin + rng.Float64()*span
}

func (g *Generator) cellOrigin(c Cell) mgl64.Vec2 {
	return mgl64.Vec2{float64(c.X) * g.cfg.CellSize, float64(c.Y) * g.cfg.CellSize}
}

// State reports the generation phase. A successfully constructed
// generator is always Ready.
func (g *Generator) State() State { return g.state }

func (g *Generator) Width() float64    { return g.cfg.Width }
func (g *Generator) Height() float64   { return g.cfg.Height }
func (g *Generator) CellSize() float64 { return g.cfg.CellSize }
func (g *Generator) Seed() string      { return g.cfg.Seed }

// Spawn is the player start position, the centre of the world.
func (g *Generator) Spawn() mgl64.Vec2 {
	return mgl64.Vec2{g.cfg.Width / 2, g.cfg.Height / 2}
}

// CellAt returns the cell owning world position (x, y). ok is false
// outside the world.
func (g *Generator) CellAt(x, y float64) (c Cell, ok bool) {
	if !(x >= 0 && y >= 0 && x < g.cfg.Width && y < g.cfg.Height) {
		return Cell{}, false
	}
	return Cell{
		X: int(math.Floor(x / g.cfg.CellSize)),
		Y: int(math.Floor(y / g.cfg.CellSize)),
	}, true
}

// BiomeAt returns the biome of the cell owning (x, y), or biome.None
// outside the world.
func (g *Generator) BiomeAt(x, y float64) biome.Biome {
	c, ok := g.CellAt(x, y)
	if !ok {
		return biome.None
	}
	if b, found := g.grid[c]; found {
		return b
	}
	return biome.None
}

// EachCell calls fn for every cell, column by column. size is the in-bounds
// extent of the cell, smaller than CellSize along the far world edges.
func (g *Generator) EachCell(fn func(c Cell, origin, size mgl64.Vec2, b biome.Biome)) {
	for cx := 0; cx < g.cols; cx++ {
		for cy := 0; cy < g.rows; cy++ {
			c := Cell{cx, cy}
			origin := g.cellOrigin(c)
			size := mgl64.Vec2{
				math.Min(g.cfg.CellSize, g.cfg.Width-origin.X()),
				math.Min(g.cfg.CellSize, g.cfg.Height-origin.Y()),
			}
			fn(c, origin, size, g.grid[c])
		}
	}
}

// Nodes returns every resource node, gathered ones included, in generation
// order. The slice is shared and must not be modified.
func (g *Generator) Nodes() []*resource.Node { return g.nodes }

// Index returns the proximity index over Nodes.
func (g *Generator) Index() *spatial.Index { return g.index }

// Nearby returns the ungathered nodes within radius of (x, y).
func (g *Generator) Nearby(x, y, radius float64) []*resource.Node {
	return g.index.Nearby(x, y, radius)
}

// Hit applies one gathering hit to n and reports whether it completed the
// node.
func (g *Generator) Hit(n *resource.Node) bool {
	gathered := n.Hit()
	entry := logger.Log.WithFields(logrus.Fields{
		"node": n.ID(),
		"hits": n.CurrentHits(),
		"of":   n.HitsRequired(),
	})
	if gathered {
		entry.Debug("Resource node depleted")
	} else {
		entry.Debug("Resource node hit")
	}
	return gathered
}

// Stats counts cells per biome and nodes per resource type.
func (g *Generator) Stats() Stats {
	s := Stats{
		Cells: make(map[biome.Biome]int),
		Nodes: make(map[resource.Type]int),
	}
	for _, b := range g.grid {
		s.Cells[b]++
	}
	for _, n := range g.nodes {
		s.Nodes[n.Type()]++
	}
	return s
}
