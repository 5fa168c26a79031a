package spatial

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/frontier/internal/world/biome"
	"chosenoffset.com/frontier/internal/world/resource"
)

func mustNode(t *testing.T, id string, x, y float64, hits int) *resource.Node {
	t.Helper()
	n, err := resource.NewNode(id, resource.Wood, mgl64.Vec2{x, y}, biome.Forest, hits)
	if err != nil {
		t.Fatalf("NewNode: %v", err)
	}
	return n
}

func ids(nodes []*resource.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID()
	}
	return out
}

func TestNearbyRadiusAndOrder(t *testing.T) {
	nodes := []*resource.Node{
		mustNode(t, "far", 200, 200, 1),
		mustNode(t, "east", 110, 100, 1),
		mustNode(t, "edge", 100, 160, 1),
		mustNode(t, "west", 90, 100, 1),
	}
	idx := New(nodes)

	got := ids(idx.Nearby(100, 100, 60))
	want := []string{"east", "edge", "west"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, got)
			break
		}
	}

	if n := idx.Nearby(100, 100, -1); len(n) != 0 {
		t.Errorf("Expected no results for negative radius, got %d", len(n))
	}
	if n := idx.Nearby(100, 100, 0); len(n) != 0 {
		t.Errorf("Expected no results for zero radius away from nodes, got %d", len(n))
	}
}

func TestNearbyExcludesGathered(t *testing.T) {
	a := mustNode(t, "a", 0, 0, 1)
	b := mustNode(t, "b", 1, 0, 2)
	idx := New([]*resource.Node{a, b})

	a.Hit()
	for _, n := range idx.Nearby(0, 0, 10) {
		if n.IsGathered() {
			t.Fatalf("Gathered node %s returned", n.ID())
		}
	}
	if got := ids(idx.Nearby(0, 0, 10)); len(got) != 1 || got[0] != "b" {
		t.Errorf("Expected [b], got %v", got)
	}
	if idx.Len() != 2 || idx.Remaining() != 1 {
		t.Errorf("Expected len 2 remaining 1, got %d and %d", idx.Len(), idx.Remaining())
	}

	// The index sees mutations through shared pointers.
	b.Hit()
	b.Hit()
	if n := idx.Nearby(0, 0, 10); len(n) != 0 {
		t.Errorf("Expected no results after gathering everything, got %v", ids(n))
	}
}
