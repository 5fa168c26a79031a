// Package game ties the world, player, camera and gathering together into
// a running session.
package game

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"chosenoffset.com/frontier/internal/camera"
	"chosenoffset.com/frontier/internal/entity"
	"chosenoffset.com/frontier/internal/interaction"
	"chosenoffset.com/frontier/internal/inventory"
	"chosenoffset.com/frontier/internal/logger"
	"chosenoffset.com/frontier/internal/render"
	"chosenoffset.com/frontier/internal/simulation"
	"chosenoffset.com/frontier/internal/world"
	"chosenoffset.com/frontier/internal/world/resource"
)

// FPSMeter reports the frame rate measured by the rendering backend.
type FPSMeter interface {
	ActualFPS() float64
}

// Game holds all game state and logic.
type Game struct {
	Config      *simulation.Config
	World       *world.Generator
	Player      *entity.Player
	Camera      *camera.Camera
	Inventory   *inventory.Inventory
	Interaction *interaction.Controller
	Loop        *Loop

	Renderer render.Renderer
	InputMgr render.InputManager
	Meter    FPSMeter // nil in headless runs

	ScreenWidth  int
	ScreenHeight int

	// UI state
	Messages []Message

	// Debug
	FrameCount int
}

// New generates the world and places the player at its centre with the
// camera following. The loop is created stopped.
func New(cfg *simulation.Config) (*Game, error) {
	if cfg == nil {
		cfg = simulation.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	w, err := world.New(cfg.WorldGen())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate world")
	}

	player, err := entity.NewPlayer(w.Spawn(), cfg.Player)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create player")
	}

	cam, err := camera.New(
		float64(cfg.Camera.ViewportWidth), float64(cfg.Camera.ViewportHeight),
		w.Width(), w.Height(), cfg.Camera.Smoothing,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create camera")
	}
	cam.SetTarget(player)

	inv := inventory.New()
	inv.OnChange = func(t resource.Type, count int) {
		logger.Log.WithFields(logrus.Fields{"type": t.String(), "count": count}).Debug("Inventory changed")
	}

	ctrl, err := interaction.NewController(w, player, inv, cfg.Interaction.GatherRadius)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create interaction controller")
	}

	g := &Game{
		Config:       cfg,
		World:        w,
		Player:       player,
		Camera:       cam,
		Inventory:    inv,
		Interaction:  ctrl,
		ScreenWidth:  cfg.Camera.ViewportWidth,
		ScreenHeight: cfg.Camera.ViewportHeight,
	}

	g.Loop, err = NewLoop(cfg.Loop.TickRate, cfg.Loop.MaxCatchUp, g.Tick, nil)
	if err != nil {
		return nil, err
	}

	spawn := player.Position()
	logger.Log.WithFields(logrus.Fields{
		"world": fmt.Sprintf("%gx%g", w.Width(), w.Height()),
		"spawn": fmt.Sprintf("(%g, %g)", spawn.X(), spawn.Y()),
		"seed":  w.Seed(),
	}).Info("Game initialized")
	return g, nil
}

// SetBackend attaches the renderer and input source used by Update and Draw.
func (g *Game) SetBackend(r render.Renderer, in render.InputManager) {
	g.Renderer = r
	g.InputMgr = in
}

// FPS is the backend's drawn frame rate, or the loop's step rate when no
// backend meter is attached.
func (g *Game) FPS() float64 {
	if g.Meter != nil {
		return g.Meter.ActualFPS()
	}
	return g.Loop.FPS()
}

// Tick advances one simulation step: player motion, then the camera, then
// message timers.
func (g *Game) Tick(dt float64, in entity.Input) {
	g.Player.Update(dt, in)
	g.Camera.Update()
	g.updateMessages(dt)
}

// Gather hits the nearest resource and reports the outcome on screen.
func (g *Game) Gather() interaction.Result {
	res := g.Interaction.AttemptGather()
	switch res.Outcome {
	case interaction.NothingNearby:
		g.ShowMessage("Nothing to gather nearby")
	case interaction.Hit:
		g.ShowMessage(fmt.Sprintf("Gathering %s (%d/%d)",
			res.Node.Type(), res.Node.CurrentHits(), res.Node.HitsRequired()))
	case interaction.Gathered:
		g.ShowMessage(fmt.Sprintf("+1 %s (%d)", res.Node.Type(), g.Inventory.Count(res.Node.Type())))
	}
	return res
}

// Update handles input and advances the loop by one engine tick.
func (g *Game) Update() error {
	in := entity.Input{}
	if g.InputMgr != nil {
		if g.InputMgr.IsKeyJustPressed(render.KeyEscape) {
			return render.ErrQuit
		}
		if g.InputMgr.IsKeyJustPressed(render.KeyP) {
			g.TogglePause()
		}
		in = g.readInput()
		if g.Loop.Running() && g.InputMgr.IsKeyJustPressed(render.KeyE) {
			g.Gather()
		}
	}

	// The engine calls Update at the configured tick rate
	if g.Loop.Step(g.Loop.StepSize(), in) == 0 && !g.Loop.Running() {
		// Messages keep fading while paused
		g.updateMessages(g.Loop.StepSize())
	}
	return nil
}

func (g *Game) readInput() entity.Input {
	pressed := func(keys ...render.Key) bool {
		for _, k := range keys {
			if g.InputMgr.IsKeyPressed(k) {
				return true
			}
		}
		return false
	}
	return entity.Input{
		Up:    pressed(render.KeyW, render.KeyUp),
		Down:  pressed(render.KeyS, render.KeyDown),
		Left:  pressed(render.KeyA, render.KeyLeft),
		Right: pressed(render.KeyD, render.KeyRight),
	}
}

// TogglePause stops or restarts the loop.
func (g *Game) TogglePause() {
	if g.Loop.Running() {
		g.Loop.Stop()
		g.ShowMessage("Paused")
		return
	}
	g.Loop.Start()
	g.ShowMessage("Resumed")
}

// Layout resizes the camera to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 &&
		(outsideWidth != g.ScreenWidth || outsideHeight != g.ScreenHeight) {
		g.ScreenWidth = outsideWidth
		g.ScreenHeight = outsideHeight
		g.Camera.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return g.ScreenWidth, g.ScreenHeight
}

func (g *Game) updateMessages(dt float64) {
	var active []Message
	for _, msg := range g.Messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	g.Messages = active
}

// ShowMessage adds a new message to be displayed on screen.
func (g *Game) ShowMessage(text string) {
	g.Messages = append(g.Messages, Message{
		Text:     text,
		TimeLeft: MessageDuration,
		MaxTime:  MessageDuration,
	})
	logger.Log.WithField("message", text).Info("Message")
}

// Summary describes the session state for logs.
func (g *Game) Summary() logrus.Fields {
	pos := g.Player.Position()
	return logrus.Fields{
		"ticks":     g.Loop.Ticks(),
		"dropped":   g.Loop.Dropped(),
		"position":  fmt.Sprintf("(%.0f, %.0f)", pos.X(), pos.Y()),
		"biome":     g.World.BiomeAt(pos.X(), pos.Y()).String(),
		"inventory": g.Inventory.String(),
		"nodes":     len(g.World.Nodes()),
		"remaining": g.World.Index().Remaining(),
	}
}
