// Package inspector renders a detail panel for one selected organism.
package inspector

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/petri/camera"
	"github.com/pthm-cable/petri/components"
)

// Panel dimensions
const (
	PanelWidth   = 320
	PanelPadding = 10
	HeaderHeight = 30
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorHighlight   = rl.Color{R: 255, G: 255, B: 120, A: 255}
)

// Source yields the organisms of the frame currently on screen.
type Source interface {
	At(pos components.Coordinate) (components.Organism, bool)
}

// Inspector tracks the selected organism by id so the selection survives
// stepping between replay frames.
type Inspector struct {
	selected    uint64
	hasSelected bool
	panelX      int32
	panelY      int32
}

// NewInspector creates an inspector docked to the right edge of the screen.
func NewInspector(screenWidth int32) *Inspector {
	return &Inspector{
		panelX: screenWidth - PanelWidth - 10,
		panelY: 10,
	}
}

// Resize re-docks the panel.
func (ins *Inspector) Resize(screenWidth int32) {
	ins.panelX = screenWidth - PanelWidth - 10
}

// Select marks an organism as selected.
func (ins *Inspector) Select(id uint64) {
	ins.selected = id
	ins.hasSelected = true
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the selected organism id.
func (ins *Inspector) Selected() (uint64, bool) {
	return ins.selected, ins.hasSelected
}

// HandleInput selects the organism under a left click and clears the
// selection on right click or Escape. Clicks inside the panel are ignored.
func (ins *Inspector) HandleInput(mouse rl.Vector2, cam *camera.Camera, frame Source) {
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) || rl.IsKeyPressed(rl.KeyEscape) {
		ins.Deselect()
		return
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}
	if ins.hasSelected && int32(mouse.X) >= ins.panelX && int32(mouse.X) <= ins.panelX+PanelWidth &&
		int32(mouse.Y) >= ins.panelY {
		closeX := ins.panelX + PanelWidth - 25
		if int32(mouse.X) >= closeX && int32(mouse.Y) <= ins.panelY+25 {
			ins.Deselect()
		}
		return
	}

	if o, ok := frame.At(cam.ScreenToCell(mouse.X, mouse.Y)); ok {
		ins.Select(o.ID)
	}
}

// Draw renders the panel for the selected organism found in organisms.
// Nothing is drawn when there is no selection or the organism does not
// exist in this frame.
func (ins *Inspector) Draw(organisms []components.Organism, cam *camera.Camera) {
	if !ins.hasSelected {
		return
	}
	var org *components.Organism
	for i := range organisms {
		if organisms[i].ID == ins.selected {
			org = &organisms[i]
			break
		}
	}
	if org == nil {
		return
	}

	// Highlight the organism's cell
	sx, sy := cam.CellToScreen(org.Position)
	s := cam.Scale()
	rl.DrawRectangleLinesEx(rl.Rectangle{X: sx - 2, Y: sy - 2, Width: s + 4, Height: s + 4}, 2, ColorHighlight)

	fields := OrganismFields(*org)
	height := int32(HeaderHeight + PanelPadding*2)
	for _, f := range fields {
		if f.Widget == WidgetPattern {
			height += 40
		} else {
			height += 20
		}
	}

	x, y := ins.panelX, ins.panelY
	rl.DrawRectangle(x, y, PanelWidth, height, ColorPanelBg)
	rl.DrawRectangleLines(x, y, PanelWidth, height, ColorPanelBorder)
	rl.DrawRectangle(x, y, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText(org.Name.String(), x+PanelPadding, y+7, 18, ColorHeaderText)
	rl.DrawText("x", x+PanelWidth-20, y+5, 18, ColorCloseBtn)

	y += HeaderHeight + PanelPadding
	for _, f := range fields {
		y += DrawField(x+PanelPadding, y, f)
	}
}
