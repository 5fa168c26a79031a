package game

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/frontier/internal/render"
	"chosenoffset.com/frontier/internal/world"
	"chosenoffset.com/frontier/internal/world/biome"
)

const (
	nodeRadius      = 12
	highlightRadius = 18
	hudLineHeight   = 20
)

// Draw renders the game to the screen.
func (g *Game) Draw(screen render.Image) {
	g.FrameCount++
	if g.Renderer == nil {
		return
	}

	screen.Fill(colorBackground)
	g.drawBiomes(screen)
	g.drawWorldBorder(screen)
	g.drawResources(screen)
	g.drawPlayer(screen)
	g.drawUI(screen)
	g.drawHUD(screen)
}

func (g *Game) drawBiomes(screen render.Image) {
	g.World.EachCell(func(_ world.Cell, origin, size mgl64.Vec2, b biome.Biome) {
		if !g.rectVisible(origin, size) {
			return
		}
		p := g.Camera.WorldToScreen(origin)
		x, y := float32(p.X()), float32(p.Y())
		w, h := float32(size.X()), float32(size.Y())
		g.Renderer.FillRect(screen, x, y, w, h, BiomeColor(b))
		g.Renderer.StrokeRect(screen, x, y, w, h, 1, colorGrid)
	})
}

func (g *Game) rectVisible(origin, size mgl64.Vec2) bool {
	cam := g.Camera.Position()
	w, h := g.Camera.Size()
	return origin.X()+size.X() >= cam.X() && origin.X() <= cam.X()+w &&
		origin.Y()+size.Y() >= cam.Y() && origin.Y() <= cam.Y()+h
}

func (g *Game) drawWorldBorder(screen render.Image) {
	p := g.Camera.WorldToScreen(mgl64.Vec2{})
	g.Renderer.StrokeRect(screen, float32(p.X()), float32(p.Y()),
		float32(g.World.Width()), float32(g.World.Height()), 4, colorBorder)
}

func (g *Game) drawResources(screen render.Image) {
	for _, n := range g.World.Nodes() {
		if n.IsGathered() || !g.Camera.IsVisible(n.Position(), nodeRadius) {
			continue
		}
		p := g.Camera.WorldToScreen(n.Position())
		g.Renderer.FillCircle(screen, float32(p.X()), float32(p.Y()), nodeRadius, ResourceColor(n.Type()))
	}

	// Nearest node in reach
	if n, ok := g.Interaction.NearestResource(); ok {
		p := g.Camera.WorldToScreen(n.Position())
		g.Renderer.StrokeCircle(screen, float32(p.X()), float32(p.Y()), highlightRadius, 2, colorHighlight)
	}

	gathering := g.Interaction.Gathering()
	if gathering.Active && !gathering.Node.IsGathered() {
		p := g.Camera.WorldToScreen(gathering.Node.Position())
		const barWidth, barHeight = 30, 4
		x := float32(p.X()) - barWidth/2
		y := float32(p.Y()) - highlightRadius - 8
		g.Renderer.FillRect(screen, x, y, barWidth, barHeight, colorPanel)
		g.Renderer.FillRect(screen, x, y, barWidth*float32(gathering.Node.Progress()), barHeight, colorProgress)
	}
}

func (g *Game) drawPlayer(screen render.Image) {
	p := g.Camera.WorldToScreen(g.Player.Position())
	x, y := float32(p.X()), float32(p.Y())
	r := float32(g.Player.Radius())
	g.Renderer.FillCircle(screen, x, y, r, colorPlayer)
	g.Renderer.StrokeCircle(screen, x, y, r, 3, colorBorder)
}

func (g *Game) drawUI(screen render.Image) {
	// Draw on-screen messages
	y := g.ScreenHeight - 60
	for i := len(g.Messages) - 1; i >= 0; i-- {
		msg := g.Messages[i]
		alpha := uint8(255 * msg.Alpha())
		g.Renderer.DrawText(screen, msg.Text, 20, y, color.RGBA{255, 255, 255, alpha}, 1.0)
		y -= hudLineHeight
	}
}

func (g *Game) drawHUD(screen render.Image) {
	sw, sh := screen.Size()
	pos := g.Player.Position()
	lines := []string{
		fmt.Sprintf("FPS: %.0f  TPS: %d", g.FPS(), g.Config.Loop.TickRate),
		fmt.Sprintf("Position: (%.0f, %.0f)  %s", pos.X(), pos.Y(), g.World.BiomeAt(pos.X(), pos.Y())),
		fmt.Sprintf("Speed: %.0f", g.Player.Speed()),
	}
	if g.InputMgr != nil {
		cx, cy := g.InputMgr.GetCursorPosition()
		at := g.Camera.ScreenToWorld(mgl64.Vec2{float64(cx), float64(cy)})
		lines = append(lines, fmt.Sprintf("Cursor: (%.0f, %.0f)  %s", at.X(), at.Y(), g.World.BiomeAt(at.X(), at.Y())))
	}
	if !g.Loop.Running() {
		lines = append(lines, "PAUSED")
	}

	y := 10
	for _, line := range lines {
		g.Renderer.DrawText(screen, line, 10, y, colorText, 1.0)
		y += hudLineHeight
	}

	// Inventory panel, right-aligned
	y = 10
	for _, slot := range g.Inventory.Counts() {
		line := fmt.Sprintf("%s: %d", slot.Type, slot.Count)
		w, _ := g.Renderer.MeasureText(line, 1.0)
		g.Renderer.DrawText(screen, line, sw-w-10, y, colorText, 1.0)
		y += hudLineHeight
	}

	g.Renderer.DrawText(screen, "Controls: WASD or Arrow Keys, E to gather, P to pause",
		10, sh-hudLineHeight, colorText, 1.0)
}
