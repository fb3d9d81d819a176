package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/petri/camera"
	"github.com/pthm-cable/petri/components"
	"github.com/pthm-cable/petri/sim"
)

// Grid colors
var (
	ColorBackground = rl.Color{R: 18, G: 20, B: 24, A: 255}
	ColorGridLine   = rl.Color{R: 32, G: 35, B: 40, A: 255}
	ColorFood       = rl.Color{R: 60, G: 140, B: 70, A: 255}
	ColorDead       = rl.Color{R: 90, G: 90, B: 90, A: 255}
)

// GridRenderer draws a frame cell by cell through a camera.
type GridRenderer struct {
	cam       *camera.Camera
	ShowLines bool
	ShowFood  bool
	ShowDead  bool
}

// NewGridRenderer creates a renderer bound to cam with every layer shown.
func NewGridRenderer(cam *camera.Camera) *GridRenderer {
	return &GridRenderer{cam: cam, ShowLines: true, ShowFood: true, ShowDead: true}
}

// StrainColor maps a strain id to a stable hue.
func StrainColor(strain uint64) rl.Color {
	// Golden-ratio hue stepping keeps consecutive ids apart.
	hue := float32(math.Mod(float64(strain)*137.508, 360))
	return rl.ColorFromHSV(hue, 0.65, 0.95)
}

// Draw renders food, then dead organisms, then living ones on top.
// Cells outside the viewport are skipped.
func (g *GridRenderer) Draw(s sim.State) {
	cam := g.cam
	scale := cam.Scale()

	rl.ClearBackground(ColorBackground)

	for y := 0; y < s.Bounds.Height; y++ {
		for x := 0; x < s.Bounds.Width; x++ {
			pos := components.Coordinate{X: x, Y: y}
			if !cam.IsVisible(pos) {
				continue
			}
			sx, sy := cam.CellToScreen(pos)
			if g.ShowFood && s.FoodPresent(pos) {
				inset := scale * 0.3
				rl.DrawRectangleRec(rl.Rectangle{X: sx + inset, Y: sy + inset, Width: scale - 2*inset, Height: scale - 2*inset}, ColorFood)
			}
			if g.ShowLines && scale >= 6 {
				rl.DrawRectangleLinesEx(rl.Rectangle{X: sx, Y: sy, Width: scale, Height: scale}, 1, ColorGridLine)
			}
		}
	}

	for i := range s.Organisms {
		if o := &s.Organisms[i]; g.ShowDead && !o.Alive() {
			g.drawDead(o)
		}
	}
	for i := range s.Organisms {
		if o := &s.Organisms[i]; o.Alive() {
			g.drawAlive(o)
		}
	}
}

func (g *GridRenderer) drawDead(o *components.Organism) {
	if !g.cam.IsVisible(o.Position) {
		return
	}
	sx, sy := g.cam.CellToScreen(o.Position)
	s := g.cam.Scale()
	m := s * 0.25
	rl.DrawLineEx(rl.Vector2{X: sx + m, Y: sy + m}, rl.Vector2{X: sx + s - m, Y: sy + s - m}, 2, ColorDead)
	rl.DrawLineEx(rl.Vector2{X: sx + s - m, Y: sy + m}, rl.Vector2{X: sx + m, Y: sy + s - m}, 2, ColorDead)
}

// drawAlive draws a triangle pointing in the facing direction, faded by life.
func (g *GridRenderer) drawAlive(o *components.Organism) {
	if !g.cam.IsVisible(o.Position) {
		return
	}
	sx, sy := g.cam.CellToScreen(o.Position)
	s := g.cam.Scale()
	cx, cy := sx+s/2, sy+s/2
	r := s * 0.42

	// Screen y grows downward, grid y grows northward.
	dx, dy := o.Direction.Delta()
	fx, fy := float32(dx), float32(-dy)
	tip := rl.Vector2{X: cx + fx*r, Y: cy + fy*r}
	left := rl.Vector2{X: cx - fx*r*0.6 + fy*r*0.7, Y: cy - fy*r*0.6 - fx*r*0.7}
	right := rl.Vector2{X: cx - fx*r*0.6 - fy*r*0.7, Y: cy - fy*r*0.6 + fx*r*0.7}

	col := StrainColor(o.Strain)
	col.A = uint8(80 + 175*o.Life/components.MaxLife)
	// raylib expects counter-clockwise winding
	rl.DrawTriangle(tip, left, right, col)
}
