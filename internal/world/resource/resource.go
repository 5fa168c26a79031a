// Package resource defines gatherable resource types and the depletable
// nodes placed in the world.
package resource

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"chosenoffset.com/frontier/internal/textmatch"
	"chosenoffset.com/frontier/internal/world/biome"
)

// Type is the kind of material a node yields.
type Type uint8

const (
	Wood Type = iota
	Stone
	Food
	Mineral
)

var typeNames = [...]string{
	Wood:    "wood",
	Stone:   "stone",
	Food:    "food",
	Mineral: "mineral",
}

// Types returns every resource type in declaration order.
func Types() []Type {
	return []Type{Wood, Stone, Food, Mineral}
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Parse resolves a resource type name, case-insensitively.
func Parse(name string) (Type, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, t := range Types() {
		if typeNames[t] == key {
			return t, nil
		}
	}
	return 0, errors.Errorf("unknown resource type %q%s", name, textmatch.Suggestion(key, typeNames[:]))
}

// Node is a depletable world object. It needs HitsRequired hits to be
// gathered; once gathered it stays gathered.
type Node struct {
	id           string
	typ          Type
	position     mgl64.Vec2
	biome        biome.Biome
	hitsRequired int
	currentHits  int
	gathered     bool
}

// NewNode creates an ungathered node.
func NewNode(id string, typ Type, position mgl64.Vec2, b biome.Biome, hitsRequired int) (*Node, error) {
	if hitsRequired <= 0 {
		return nil, errors.Errorf("node %s: hits required must be positive, got %d", id, hitsRequired)
	}
	return &Node{
		id:           id,
		typ:          typ,
		position:     position,
		biome:        b,
		hitsRequired: hitsRequired,
	}, nil
}

func (n *Node) ID() string                    { return n.id }
func (n *Node) Type() Type                    { return n.typ }
func (n *Node) Position() mgl64.Vec2          { return n.position }
func (n *Node) Biome() biome.Biome            { return n.biome }
func (n *Node) HitsRequired() int             { return n.hitsRequired }
func (n *Node) CurrentHits() int              { return n.currentHits }
func (n *Node) IsGathered() bool              { return n.gathered }
func (n *Node) Distance(p mgl64.Vec2) float64 { return n.position.Sub(p).Len() }

// Progress is the depleted fraction in [0, 1].
func (n *Node) Progress() float64 {
	return float64(n.currentHits) / float64(n.hitsRequired)
}

// Hit applies one gathering hit. It returns true only for the hit that
// completes the node; hits on a gathered node change nothing.
func (n *Node) Hit() bool {
	if n.gathered {
		return false
	}
	n.currentHits++
	if n.currentHits >= n.hitsRequired {
		n.currentHits = n.hitsRequired
		n.gathered = true
		return true
	}
	return false
}
