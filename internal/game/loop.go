package game

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"

	"chosenoffset.com/frontier/internal/entity"
	"chosenoffset.com/frontier/internal/logger"
)

// TickFunc advances the simulation by one fixed step.
type TickFunc func(dt float64, in entity.Input)

// Loop runs fixed-size simulation ticks from variable frame times. It owns
// no timers itself, so tests and headless runs drive it with Step.
type Loop struct {
	step       float64
	maxCatchUp int
	tick       TickFunc
	render     func()

	running     bool
	accumulator float64
	ticks       uint64
	limit       uint64
	dropped     uint64

	// FPS bookkeeping
	frames    int
	frameTime float64
	fps       float64
}

// NewLoop creates a stopped loop ticking tickRate times per second. At most
// maxCatchUp ticks run per Step; render may be nil.
func NewLoop(tickRate, maxCatchUp int, tick TickFunc, render func()) (*Loop, error) {
	if tickRate <= 0 {
		return nil, errors.Errorf("tick rate must be positive, got %d", tickRate)
	}
	if maxCatchUp <= 0 {
		return nil, errors.Errorf("max catch-up must be positive, got %d", maxCatchUp)
	}
	if tick == nil {
		return nil, errors.New("tick function is required")
	}
	return &Loop{
		step:       1 / float64(tickRate),
		maxCatchUp: maxCatchUp,
		tick:       tick,
		render:     render,
	}, nil
}

// Start begins accepting steps. Starting a running loop does nothing.
func (l *Loop) Start() {
	if l.running {
		logger.Log.Warn("Loop is already running")
		return
	}
	l.running = true
	l.accumulator = 0
	l.frames = 0
	l.frameTime = 0
	logger.Log.WithField("step", l.step).Debug("Loop started")
}

// Stop halts the loop; later steps are ignored until Start.
func (l *Loop) Stop() {
	if !l.running {
		return
	}
	l.running = false
	logger.Log.WithField("ticks", l.ticks).Debug("Loop stopped")
}

func (l *Loop) Running() bool { return l.running }

// StepSize is the fixed tick duration in seconds.
func (l *Loop) StepSize() float64 { return l.step }

// Ticks is the number of ticks run since creation.
func (l *Loop) Ticks() uint64 { return l.ticks }

// Dropped counts ticks skipped because a frame exceeded the catch-up limit.
func (l *Loop) Dropped() uint64 { return l.dropped }

// FPS is the frame rate measured over the last full second of steps.
func (l *Loop) FPS() float64 { return l.fps }

// SetTickLimit stops the loop once n ticks have run in total. Zero removes
// the limit.
func (l *Loop) SetTickLimit(n uint64) { l.limit = n }

// Step adds elapsed seconds of real time, runs the fixed ticks now due and
// renders once. It returns the number of ticks run.
func (l *Loop) Step(elapsed float64, in entity.Input) int {
	if !l.running {
		return 0
	}
	if !(elapsed > 0) || math.IsInf(elapsed, 0) {
		elapsed = 0
	}
	l.accumulator += elapsed

	n := 0
	for l.accumulator >= l.step && n < l.maxCatchUp {
		l.tick(l.step, in)
		l.accumulator -= l.step
		l.ticks++
		n++
		if l.limit > 0 && l.ticks >= l.limit {
			l.accumulator = 0
			l.Stop()
			break
		}
	}
	if l.accumulator >= l.step {
		skipped := math.Floor(l.accumulator / l.step)
		l.dropped += uint64(skipped)
		l.accumulator -= skipped * l.step
		logger.Log.WithField("skipped", skipped).Debug("Frame too slow, dropping ticks")
	}

	if l.render != nil {
		l.render()
	}
	l.countFrame(elapsed)
	return n
}

func (l *Loop) countFrame(elapsed float64) {
	l.frames++
	l.frameTime += elapsed
	if l.frameTime >= 1 {
		l.fps = float64(l.frames) / l.frameTime
		l.frames = 0
		l.frameTime = 0
	}
}

// Run starts the loop and steps it every interval using wall-clock time
// until the context ends or the loop is stopped. input is polled once per
// step.
func (l *Loop) Run(ctx context.Context, interval time.Duration, input func() entity.Input) error {
	if interval <= 0 {
		return errors.Errorf("run interval must be positive, got %s", interval)
	}
	if input == nil {
		input = func() entity.Input { return entity.Input{} }
	}

	l.Start()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for l.running {
		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case now := <-ticker.C:
			l.Step(now.Sub(last).Seconds(), input())
			last = now
		}
	}
	return nil
}
