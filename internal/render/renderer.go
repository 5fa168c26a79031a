// Package render abstracts the graphics backend so game code can draw and
// read input without depending on a particular engine.
package render

import "image/color"

// Renderer is the main rendering interface that abstracts the underlying
// graphics engine. This allows swapping rendering backends without changing
// game logic.
type Renderer interface {
	// Shape operations
	FillRect(dst Image, x, y, width, height float32, clr color.Color)
	StrokeRect(dst Image, x, y, width, height, strokeWidth float32, clr color.Color)
	FillCircle(dst Image, x, y, radius float32, clr color.Color)
	StrokeCircle(dst Image, x, y, radius float32, strokeWidth float32, clr color.Color)

	// Text operations
	DrawText(dst Image, text string, x, y int, clr color.Color, scale float64)
	MeasureText(text string, scale float64) (width, height int)
}

// Image represents a renderable image surface.
type Image interface {
	Size() (width, height int)
	Fill(clr color.Color)
}

// InputManager handles input from the user (keyboard, mouse, etc).
type InputManager interface {
	IsKeyPressed(key Key) bool
	IsKeyJustPressed(key Key) bool
	GetCursorPosition() (x, y int)
}

// Key represents a keyboard key.
type Key int

// Key constants for the keys the game reads
const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyE // Gather key
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyP // Pause toggle
	KeyEscape
)

// Game represents the game interface that the engine will call.
type Game interface {
	// Update updates the game logic. It is called every tick (typically 60 times per second).
	Update() error

	// Draw draws the game screen. It is called every frame.
	Draw(screen Image)

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the game engine that manages the game loop and window.
type Engine interface {
	SetWindowSize(width, height int)
	SetWindowTitle(title string)
	SetWindowResizable(resizable bool)

	// SetTickRate sets how many times per second Game.Update is called.
	SetTickRate(tps int)

	// ActualFPS reports the measured frame rate.
	ActualFPS() float64

	// RunGame runs the game loop with the provided game.
	// This is a blocking call that runs until the game ends.
	RunGame(game Game) error
}

// ErrQuit can be returned from Game.Update to end RunGame without an error.
var ErrQuit = quitError{}

type quitError struct{}

func (quitError) Error() string { return "quit" }
