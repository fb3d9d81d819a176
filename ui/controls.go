package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsPanel lists the overlay toggles with their key bindings.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Draw renders the overlay list and returns the Y below the panel.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	categories := overlays.Categories()
	totalItems := 0
	for _, cat := range categories {
		totalItems += len(overlays.ByCategory(cat)) + 1 // +1 for category header
	}
	panelHeight := padding*2 + lineHeight + 4 + int32(totalItems)*lineHeight + int32(len(categories))*4

	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	y := r.DrawTitle(c.x+padding, c.y+padding, "Overlays")

	for _, category := range categories {
		y = r.DrawSectionHeader(c.x+padding, y, categoryLabel(category))
		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(c.x+padding, y, desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
			y += lineHeight
		}
		y += 4
	}

	return c.y + panelHeight
}

func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor, nameColor := r.Theme.ToggleOff, r.Theme.Muted
	if enabled {
		statusColor, nameColor = r.Theme.ToggleOn, r.Theme.Title
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, r.Theme.Muted)
	}
}

func categoryLabel(cat string) string {
	switch cat {
	case "grid":
		return "Grid"
	case "panels":
		return "Panels"
	default:
		return cat
	}
}

// Playback bar layout
const (
	PlaybackBarHeight = 44
	buttonWidth       = 36
	buttonHeight      = 24
	buttonGap         = 4
)

// PlaybackBar draws the transport buttons and seek slider along the bottom
// edge and applies clicks to a Playback.
type PlaybackBar struct {
	renderer *Renderer
}

// NewPlaybackBar creates a playback bar.
func NewPlaybackBar() *PlaybackBar {
	return &PlaybackBar{renderer: NewRenderer()}
}

// Contains reports whether a screen point lies over the bar, so grid
// clicks underneath it can be ignored.
func (b *PlaybackBar) Contains(mouse rl.Vector2, screenH int32) bool {
	return int32(mouse.Y) >= screenH-PlaybackBarHeight
}

// Draw renders the bar and applies any button or slider input to p.
func (b *PlaybackBar) Draw(p *Playback, screenW, screenH int32) {
	r := b.renderer
	top := screenH - PlaybackBarHeight
	r.DrawPanel(0, top, screenW, PlaybackBarHeight)

	x := float32(r.Theme.Padding)
	y := float32(top) + (PlaybackBarHeight-buttonHeight)/2
	button := func(label string) bool {
		hit := gui.Button(rl.Rectangle{X: x, Y: y, Width: buttonWidth, Height: buttonHeight}, label)
		x += buttonWidth + buttonGap
		return hit
	}

	if button("|<") {
		p.Step(-p.Len())
	}
	if button("<") {
		p.Step(-1)
	}
	if button(toggleText(p.Paused(), "Play", "Stop")) {
		p.TogglePause()
	}
	if button(">") {
		p.Step(1)
	}
	if button(">|") {
		p.Step(p.Len())
	}
	if button("-") {
		p.Slower()
	}
	if button("+") {
		p.Faster()
	}

	speedText := fmt.Sprintf("%d fps", p.Speed())
	rl.DrawText(speedText, int32(x), int32(y)+6, r.Theme.FontSize, r.Theme.Text)
	x += float32(rl.MeasureText(speedText, r.Theme.FontSize)) + 16

	if p.Len() < 2 {
		return
	}
	last := float32(p.Len() - 1)
	sliderW := float32(screenW) - x - 120
	if sliderW < 40 {
		return
	}
	pos := gui.SliderBar(
		rl.Rectangle{X: x, Y: y + 4, Width: sliderW, Height: buttonHeight - 8},
		"", "",
		float32(p.Index()), 0, last,
	)
	if idx := int(pos + 0.5); idx != p.Index() {
		p.Step(idx - p.Index())
	}
	rl.DrawText(fmt.Sprintf("%d / %d", p.Index()+1, p.Len()), int32(x+sliderW)+10, int32(y)+6, r.Theme.FontSize, r.Theme.Text)
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
