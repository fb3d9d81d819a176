// Package ui provides the raylib replay viewer: panels, overlay toggles and
// playback controls drawn around the grid renderer.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// PanelAnchor specifies where a panel is anchored on screen.
type PanelAnchor int

const (
	AnchorTopLeft PanelAnchor = iota
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
)

// Place returns the top-left corner of a w x h panel anchored inside a
// screen of the given size with margin pixels of clearance.
func (a PanelAnchor) Place(screenW, screenH, w, h, margin int32) (x, y int32) {
	switch a {
	case AnchorTopRight:
		return screenW - w - margin, margin
	case AnchorBottomLeft:
		return margin, screenH - h - margin
	case AnchorBottomRight:
		return screenW - w - margin, screenH - h - margin
	default:
		return margin, margin
	}
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	Title         rl.Color
	SectionHeader rl.Color
	Text          rl.Color
	Muted         rl.Color
	Status        rl.Color
	ToggleOn      rl.Color
	ToggleOff     rl.Color
	BarBg         rl.Color
	BarLow        rl.Color
	BarMedium     rl.Color
	BarHigh       rl.Color
	Warn          rl.Color
	Alert         rl.Color

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
	TitleFontSize  int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:       rl.Color{R: 20, G: 25, B: 30, A: 230},
		PanelBorder:   rl.Color{R: 60, G: 70, B: 80, A: 255},
		Title:         rl.White,
		SectionHeader: rl.Yellow,
		Text:          rl.LightGray,
		Muted:         rl.Color{R: 150, G: 150, B: 150, A: 255},
		Status:        rl.Yellow,
		ToggleOn:      rl.Color{R: 100, G: 200, B: 100, A: 255},
		ToggleOff:     rl.Color{R: 80, G: 80, B: 80, A: 255},
		BarBg:         rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarLow:        rl.Color{R: 200, G: 100, B: 100, A: 255},
		BarMedium:     rl.Color{R: 200, G: 180, B: 100, A: 255},
		BarHigh:       rl.Color{R: 100, G: 200, B: 100, A: 255},
		Warn:          rl.Orange,
		Alert:         rl.Red,

		Padding:        10,
		LineHeight:     16,
		LabelWidth:     80,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
		TitleFontSize:  16,
	}
}
