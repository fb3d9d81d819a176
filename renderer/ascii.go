// Package renderer draws world snapshots, as text for terminals and as
// raylib primitives for the replay viewer.
package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/pthm-cable/petri/components"
	"github.com/pthm-cable/petri/sim"
)

// Cell glyphs used by the text renderer. Living organisms use their
// direction glyph.
const (
	GlyphEmpty = ' '
	GlyphFood  = '.'
	GlyphDead  = 'x'
)

// ASCIIOptions controls text rendering.
type ASCIIOptions struct {
	Border bool // frame the grid with a box
	Header bool // print tick and population above the grid
}

// Glyphs returns the grid as rows of glyphs, north at the top.
// Living organisms hide dead ones; among equals the later organism wins.
func Glyphs(s sim.State) [][]byte {
	w, h := s.Bounds.Width, s.Bounds.Height
	rows := make([][]byte, h)
	alive := make([][]bool, h)
	for r := range rows {
		y := h - 1 - r
		rows[r] = make([]byte, w)
		alive[r] = make([]bool, w)
		for x := 0; x < w; x++ {
			rows[r][x] = GlyphEmpty
			if s.FoodPresent(components.Coordinate{X: x, Y: y}) {
				rows[r][x] = GlyphFood
			}
		}
	}

	for i := range s.Organisms {
		o := &s.Organisms[i]
		if !s.Bounds.Contains(o.Position) {
			continue
		}
		r, x := h-1-o.Position.Y, o.Position.X
		if o.Alive() {
			rows[r][x] = o.Direction.Glyph()
			alive[r][x] = true
		} else if !alive[r][x] {
			rows[r][x] = GlyphDead
		}
	}
	return rows
}

// WriteASCII renders one frame as text.
func WriteASCII(out io.Writer, s sim.State, opts ASCIIOptions) error {
	var sb strings.Builder
	if opts.Header {
		fmt.Fprintf(&sb, "tick %d  alive %d/%d\n", s.Tick, s.AliveCount(), len(s.Organisms))
	}
	edge := "+" + strings.Repeat("-", s.Bounds.Width) + "+\n"
	if opts.Border {
		sb.WriteString(edge)
	}
	for _, row := range Glyphs(s) {
		if opts.Border {
			sb.WriteByte('|')
		}
		sb.Write(row)
		if opts.Border {
			sb.WriteByte('|')
		}
		sb.WriteByte('\n')
	}
	if opts.Border {
		sb.WriteString(edge)
	}
	_, err := io.WriteString(out, sb.String())
	return err
}

// ASCII renders one bordered frame with a header.
func ASCII(s sim.State) string {
	var sb strings.Builder
	_ = WriteASCII(&sb, s, ASCIIOptions{Border: true, Header: true})
	return sb.String()
}
