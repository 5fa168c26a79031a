// Package spatial answers proximity queries over the world's resource nodes.
//
// Worlds hold hundreds of nodes, so queries are a linear scan in insertion
// order. Larger worlds would want a bucketed grid here.
package spatial

import (
	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/frontier/internal/world/resource"
)

// Index shares the node pointers it was built from; it never copies nodes.
type Index struct {
	nodes []*resource.Node
}

// New creates an index over nodes. The slice must not be appended to
// afterwards.
func New(nodes []*resource.Node) *Index {
	return &Index{nodes: nodes}
}

// Nearby returns every ungathered node within radius of (x, y), in
// insertion order.
func (idx *Index) Nearby(x, y, radius float64) []*resource.Node {
	if radius < 0 {
		return nil
	}
	p := mgl64.Vec2{x, y}
	var result []*resource.Node
	for _, n := range idx.nodes {
		if n.IsGathered() {
			continue
		}
		if n.Distance(p) <= radius {
			result = append(result, n)
		}
	}
	return result
}

// Len is the number of indexed nodes, gathered ones included.
func (idx *Index) Len() int {
	return len(idx.nodes)
}

// Remaining counts the nodes that have not been gathered yet.
func (idx *Index) Remaining() int {
	count := 0
	for _, n := range idx.nodes {
		if !n.IsGathered() {
			count++
		}
	}
	return count
}
