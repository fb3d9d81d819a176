// Package camera provides a 2D camera over a toroidal cell grid.
package camera

import (
	"math"

	"github.com/pthm-cable/petri/components"
)

// Camera controls the viewport into the grid.
// Supports pan and zoom with toroidal wrapping. Grid y grows northwards,
// so larger y values are drawn higher on screen.
type Camera struct {
	// Position is the camera center in cell units
	X, Y float32

	// Zoom level (1.0 = CellSize pixels per cell)
	Zoom     float32
	CellSize float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Grid dimensions in cells
	GridW, GridH int

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera centered on the grid with 1:1 zoom.
func New(viewportW, viewportH float32, b components.Bounds, cellSize float32) *Camera {
	c := &Camera{
		CellSize:  cellSize,
		ViewportW: viewportW,
		ViewportH: viewportH,
		GridW:     b.Width,
		GridH:     b.Height,
		MaxZoom:   8.0,
	}
	c.MinZoom = c.minZoom()
	c.Reset()
	return c
}

// minZoom keeps the visible area from exceeding one copy of the grid.
func (c *Camera) minZoom() float32 {
	zx := c.ViewportW / (float32(c.GridW) * c.CellSize)
	zy := c.ViewportH / (float32(c.GridH) * c.CellSize)
	return float32(math.Min(float64(zx), float64(zy)))
}

// Scale returns the on-screen size of one cell in pixels.
func (c *Camera) Scale() float32 {
	return c.CellSize * c.Zoom
}

// CellToScreen returns the top-left screen corner of a cell, choosing the
// toroidal copy nearest to the camera.
func (c *Camera) CellToScreen(pos components.Coordinate) (sx, sy float32) {
	dx := toroidalDelta(float32(pos.X)+0.5, c.X, float32(c.GridW))
	dy := toroidalDelta(float32(pos.Y)+0.5, c.Y, float32(c.GridH))

	s := c.Scale()
	sx = c.ViewportW/2 + dx*s - s/2
	sy = c.ViewportH/2 - dy*s - s/2
	return sx, sy
}

// ScreenToCell converts a screen position to the cell under it.
func (c *Camera) ScreenToCell(sx, sy float32) components.Coordinate {
	s := c.Scale()
	wx := c.X + (sx-c.ViewportW/2)/s
	wy := c.Y - (sy-c.ViewportH/2)/s
	return components.Coordinate{
		X: int(math.Floor(float64(mod(wx, float32(c.GridW))))),
		Y: int(math.Floor(float64(mod(wy, float32(c.GridH))))),
	}
}

// IsVisible reports whether any part of the cell's nearest copy is on screen.
func (c *Camera) IsVisible(pos components.Coordinate) bool {
	sx, sy := c.CellToScreen(pos)
	s := c.Scale()
	return sx+s >= 0 && sy+s >= 0 && sx <= c.ViewportW && sy <= c.ViewportH
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.MinZoom = c.minZoom()
	if c.Zoom < c.MinZoom {
		c.Zoom = c.MinZoom
	}
}

// Pan moves the camera by the given delta in screen pixels.
// Automatically wraps around grid boundaries.
func (c *Camera) Pan(dx, dy float32) {
	s := c.Scale()
	c.X = mod(c.X+dx/s, float32(c.GridW))
	c.Y = mod(c.Y-dy/s, float32(c.GridH))
}

// CenterOn moves the camera to the center of a cell.
func (c *Camera) CenterOn(pos components.Coordinate) {
	c.X = float32(pos.X) + 0.5
	c.Y = float32(pos.Y) + 0.5
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset centers the camera on the grid at the zoom that fits the whole grid.
func (c *Camera) Reset() {
	c.X = float32(c.GridW) / 2
	c.Y = float32(c.GridH) / 2
	c.Zoom = clamp(1.0, c.MinZoom, c.MaxZoom)
}

// toroidalDelta computes the shortest signed distance from 'from' to 'to'
// in a toroidal space of the given size.
func toroidalDelta(to, from, size float32) float32 {
	d := to - from
	if d > size/2 {
		d -= size
	} else if d < -size/2 {
		d += size
	}
	return d
}

// mod computes the positive modulo (Go's % can return negative).
func mod(x, m float32) float32 {
	r := float32(math.Mod(float64(x), float64(m)))
	if r < 0 {
		r += m
	}
	return r
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
