// Package noise provides the seeded scalar field used to lay out biomes.
package noise

import (
	"hash/fnv"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ojrac/opensimplex-go"
)

// Field is a deterministic scalar field over the plane.
type Field interface {
	// Sample returns a value in [-1, 1].
	Sample(x, y float64) float64
}

// Simplex is a Field backed by OpenSimplex noise.
type Simplex struct {
	seed  int64
	noise opensimplex.Noise
}

// New creates a field from a textual seed. Equal strings give equal fields
// in every process.
func New(seed string) *Simplex {
	return NewWithSeed(HashSeed(seed))
}

// NewWithSeed creates a field from a numeric seed.
func NewWithSeed(seed int64) *Simplex {
	return &Simplex{
		seed:  seed,
		noise: opensimplex.New(seed),
	}
}

// HashSeed maps a textual seed onto the numeric seed space with FNV-1a.
func HashSeed(seed string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(seed))
	return int64(h.Sum64())
}

// Seed returns the numeric seed of the field.
func (s *Simplex) Seed() int64 {
	return s.seed
}

// Sample evaluates the field at (x, y).
func (s *Simplex) Sample(x, y float64) float64 {
	return mgl64.Clamp(s.noise.Eval2(x, y), -1, 1)
}
