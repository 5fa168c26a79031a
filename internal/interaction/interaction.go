// Package interaction resolves the player's gather action against the
// nearest resource node in reach.
package interaction

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"chosenoffset.com/frontier/internal/inventory"
	"chosenoffset.com/frontier/internal/logger"
	"chosenoffset.com/frontier/internal/world/resource"
)

// DefaultGatherRadius is how close a node must be to be gathered.
const DefaultGatherRadius = 60

// ResourceSource owns the resource nodes. Hit is the only way the
// controller mutates a node.
type ResourceSource interface {
	Nearby(x, y, radius float64) []*resource.Node
	Hit(n *resource.Node) bool
}

// Locator reports where the gatherer stands.
type Locator interface {
	Position() mgl64.Vec2
}

// Outcome classifies a gather attempt.
type Outcome uint8

const (
	// NothingNearby means no ungathered node was in reach; nothing changed.
	NothingNearby Outcome = iota
	// Hit means the nearest node took a hit but is not depleted yet.
	Hit
	// Gathered means the hit depleted the node and the inventory grew.
	Gathered
)

func (o Outcome) String() string {
	switch o {
	case NothingNearby:
		return "nothing-nearby"
	case Hit:
		return "hit"
	case Gathered:
		return "gathered"
	default:
		return "unknown"
	}
}

// Result describes what a gather attempt did.
type Result struct {
	Outcome  Outcome
	Node     *resource.Node
	Distance float64
}

// Gathering is the in-progress state shown by the UI. It is empty when idle
// or right after a node was depleted.
type Gathering struct {
	Node   *resource.Node
	Active bool
}

// Controller applies gather actions.
type Controller struct {
	source    ResourceSource
	gatherer  Locator
	inventory *inventory.Inventory
	radius    float64
	gathering Gathering
}

// NewController creates a controller gathering within radius of gatherer.
func NewController(source ResourceSource, gatherer Locator, inv *inventory.Inventory, radius float64) (*Controller, error) {
	if source == nil || gatherer == nil || inv == nil {
		return nil, errors.New("interaction controller needs a resource source, a gatherer and an inventory")
	}
	if !(radius >= 0) {
		return nil, errors.Errorf("gather radius must not be negative, got %v", radius)
	}
	return &Controller{
		source:    source,
		gatherer:  gatherer,
		inventory: inv,
		radius:    radius,
	}, nil
}

// Radius returns the gather radius.
func (c *Controller) Radius() float64 { return c.radius }

// Gathering returns the current gathering state.
func (c *Controller) Gathering() Gathering { return c.gathering }

// Reset clears the gathering state.
func (c *Controller) Reset() { c.gathering = Gathering{} }

// NearestResource returns the closest ungathered node in reach without
// changing anything.
func (c *Controller) NearestResource() (*resource.Node, bool) {
	n, _, ok := c.nearest()
	return n, ok
}

// AttemptGather hits the nearest node in reach. A node needing k hits is
// depleted by the k-th attempt, which adds one unit of its type to the
// inventory.
func (c *Controller) AttemptGather() Result {
	node, dist, ok := c.nearest()
	if !ok {
		c.Reset()
		logger.Log.Debug("No resources nearby")
		return Result{Outcome: NothingNearby}
	}

	entry := logger.Log.WithFields(logrus.Fields{
		"node": node.ID(),
		"type": node.Type().String(),
	})

	if c.source.Hit(node) {
		c.inventory.Add(node.Type(), 1)
		c.Reset()
		entry.WithField("total", c.inventory.Count(node.Type())).Debug("Gathered resource")
		return Result{Outcome: Gathered, Node: node, Distance: dist}
	}

	c.gathering = Gathering{Node: node, Active: true}
	entry.WithField("hits", node.CurrentHits()).Debug("Gathering")
	return Result{Outcome: Hit, Node: node, Distance: dist}
}

// nearest orders candidates by distance, keeping query order for ties.
func (c *Controller) nearest() (*resource.Node, float64, bool) {
	pos := c.gatherer.Position()
	nodes := c.source.Nearby(pos.X(), pos.Y(), c.radius)
	if len(nodes) == 0 {
		return nil, 0, false
	}

	dists := make([]float64, len(nodes))
	order := make([]int, len(nodes))
	for i, n := range nodes {
		dists[i] = n.Distance(pos)
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return dists[order[a]] < dists[order[b]]
	})

	best := order[0]
	return nodes[best], dists[best], true
}
