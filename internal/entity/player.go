// Package entity holds the player and its motion model.
package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// Input is the directional state sampled once per tick.
type Input struct {
	Up, Down, Left, Right bool
}

// Direction composes the move vector: each held axis contributes one unit
// and diagonals are normalised so they are not faster than straight moves.
func (in Input) Direction() mgl64.Vec2 {
	var d mgl64.Vec2
	if in.Up {
		d[1]--
	}
	if in.Down {
		d[1]++
	}
	if in.Left {
		d[0]--
	}
	if in.Right {
		d[0]++
	}
	if d.X() != 0 && d.Y() != 0 {
		d = d.Normalize()
	}
	return d
}

// MotionConfig tunes the player's movement.
type MotionConfig struct {
	Radius       float64 `json:"radius"`
	SpeedCap     float64 `json:"speed_cap"`    // units per second
	Acceleration float64 `json:"acceleration"` // units per second squared
	Friction     float64 `json:"friction"`     // velocity multiplier per idle tick
	StopEpsilon  float64 `json:"stop_epsilon"` // per-axis speed snapped to zero
}

// DefaultMotion returns the stock movement tuning.
func DefaultMotion() MotionConfig {
	return MotionConfig{
		Radius:       20,
		SpeedCap:     200,
		Acceleration: 800,
		Friction:     0.85,
		StopEpsilon:  0.1,
	}
}

// Validate checks that the tuning describes a physical player.
func (c MotionConfig) Validate() error {
	switch {
	case !(c.Radius > 0):
		return errors.Errorf("player radius must be positive, got %v", c.Radius)
	case !(c.SpeedCap > 0):
		return errors.Errorf("player speed cap must be positive, got %v", c.SpeedCap)
	case !(c.Acceleration > 0):
		return errors.Errorf("player acceleration must be positive, got %v", c.Acceleration)
	case !(c.Friction >= 0 && c.Friction < 1):
		return errors.Errorf("player friction must be in [0, 1), got %v", c.Friction)
	case !(c.StopEpsilon >= 0):
		return errors.Errorf("player stop epsilon must not be negative, got %v", c.StopEpsilon)
	}
	return nil
}

// Player is the single controllable entity. Its speed never exceeds
// SpeedCap after an Update.
type Player struct {
	position mgl64.Vec2
	velocity mgl64.Vec2
	cfg      MotionConfig
}

// NewPlayer creates a player at rest at spawn.
func NewPlayer(spawn mgl64.Vec2, cfg MotionConfig) (*Player, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Player{position: spawn, cfg: cfg}, nil
}

// Update advances the player by dt seconds. Position is not clamped to the
// world; only the camera respects world bounds.
func (p *Player) Update(dt float64, in Input) {
	if !(dt > 0) {
		return
	}

	move := in.Direction()
	if move.X() != 0 || move.Y() != 0 {
		p.velocity = p.velocity.Add(move.Mul(p.cfg.Acceleration * dt))
		if speed := p.velocity.Len(); speed > p.cfg.SpeedCap {
			p.velocity = p.velocity.Mul(p.cfg.SpeedCap / speed)
		}
	} else {
		p.velocity = p.velocity.Mul(p.cfg.Friction)
		if math.Abs(p.velocity.X()) < p.cfg.StopEpsilon {
			p.velocity[0] = 0
		}
		if math.Abs(p.velocity.Y()) < p.cfg.StopEpsilon {
			p.velocity[1] = 0
		}
	}

	p.position = p.position.Add(p.velocity.Mul(dt))
}

func (p *Player) Position() mgl64.Vec2 { return p.position }
func (p *Player) Velocity() mgl64.Vec2 { return p.velocity }
func (p *Player) Radius() float64      { return p.cfg.Radius }
func (p *Player) SpeedCap() float64    { return p.cfg.SpeedCap }

// Speed is the magnitude of the current velocity.
func (p *Player) Speed() float64 {
	return p.velocity.Len()
}

// Teleport moves the player to pos and stops it.
func (p *Player) Teleport(pos mgl64.Vec2) {
	p.position = pos
	p.velocity = mgl64.Vec2{}
}
