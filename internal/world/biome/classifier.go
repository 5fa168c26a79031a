package biome

import "github.com/pkg/errors"

// Thresholds are the four ascending cut points splitting [-1, 1] into the
// swamp, forest, plains, desert and snow bands.
type Thresholds [4]float64

// DefaultThresholds give swamp and snow the narrow extremes and plains the
// band around zero.
var DefaultThresholds = Thresholds{-0.4, -0.15, 0.15, 0.5}

// Validate checks that the thresholds are strictly ascending.
func (t Thresholds) Validate() error {
	for i := 1; i < len(t); i++ {
		if !(t[i-1] < t[i]) {
			return errors.Errorf("biome thresholds must be strictly ascending, got %v", t)
		}
	}
	return nil
}

// Classifier maps noise samples to biomes.
type Classifier struct {
	Thresholds Thresholds
}

// NewClassifier creates a classifier after validating the thresholds.
func NewClassifier(t Thresholds) (Classifier, error) {
	if err := t.Validate(); err != nil {
		return Classifier{}, err
	}
	return Classifier{Thresholds: t}, nil
}

// Classify is total: every float, NaN included, maps to exactly one biome.
func (c Classifier) Classify(v float64) Biome {
	t := c.Thresholds
	switch {
	case v < t[0]:
		return Swamp
	case v < t[1]:
		return Forest
	case v < t[2]:
		return Plains
	case v < t[3]:
		return Desert
	default:
		return Snow
	}
}
