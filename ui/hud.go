package ui

import (
	"fmt"
	"sort"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/petri/renderer"
	"github.com/pthm-cable/petri/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title      string
	Generation int
	Frame      int
	Frames     int
	Tick       int
	Alive      int
	Total      int
	Capacity   int
	Strains    int
	Speed      int
	FPS        int32
	Paused     bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// HUDHeight is the vertical space taken by the HUD; panels start below it.
const HUDHeight = 120

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	t := h.renderer.Theme
	rl.DrawText(data.Title, 10, 10, 20, t.Title)

	rl.DrawText(
		fmt.Sprintf("Generation: %d | Organisms: %d | Strains: %d", data.Generation, data.Total, data.Strains),
		10, 35, 16, t.Text,
	)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Frame: %d / %d | Speed: %d fps | FPS: %d",
			data.Tick, data.Frame+1, data.Frames, data.Speed, data.FPS),
		10, 55, 16, t.Text,
	)

	y := int32(77)
	if data.Capacity > 0 {
		y = h.renderer.DrawRatioBar(10, y, "Alive", float32(data.Alive), float32(data.Capacity), 360)
	}

	statusText := "Playing"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, y+2, 16, t.Status)
}

// DrawControls renders the control legend above the playback bar.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-PlaybackBarHeight-20, 14, h.renderer.Theme.Muted)
}

// PerfPanel renders the per-phase timing breakdown of the simulated run.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	x := p.x
	y := r.DrawTitle(x, p.y, "Step Performance")

	y = r.DrawLabelValue(x, y, "Avg tick", stats.AvgTickDuration.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "Max tick", stats.MaxTickDuration.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "Ticks/s", fmt.Sprintf("%.0f", stats.TicksPerSecond))
	y = r.DrawSectionHeader(x, y+4, "Phases")

	names := make([]string, 0, len(stats.PhasePct))
	for name := range stats.PhasePct {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return stats.PhasePct[names[i]] > stats.PhasePct[names[j]]
	})

	for _, name := range names {
		pct := stats.PhasePct[name]
		color := r.Theme.Text
		if pct > 50 {
			color = r.Theme.Alert
		} else if pct > 25 {
			color = r.Theme.Warn
		}
		rl.DrawText(fmt.Sprintf("%-14s %5.1f%%", name, pct), x, y, r.Theme.FontSize, color)
		y += 14
	}
}

// LeaderboardPanel lists the strains with the most living members.
type LeaderboardPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewLeaderboardPanel creates a new leaderboard panel.
func NewLeaderboardPanel(x, y, width int32) *LeaderboardPanel {
	return &LeaderboardPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (l *LeaderboardPanel) SetPosition(x, y int32) {
	l.x = x
	l.y = y
}

// Height returns the panel height for n entries.
func (l *LeaderboardPanel) Height(n int) int32 {
	t := l.renderer.Theme
	return t.Padding*2 + t.LineHeight + 4 + int32(n)*t.LineHeight
}

// Draw renders the leaderboard.
func (l *LeaderboardPanel) Draw(entries []telemetry.StrainStats) {
	r := l.renderer
	padding := r.Theme.Padding

	r.DrawPanel(l.x, l.y, l.width, l.Height(len(entries)))

	y := r.DrawTitle(l.x+padding, l.y+padding, "Strains")

	for _, s := range entries {
		text := fmt.Sprintf("#%d %s %d alive / %d  gen %d  %s",
			s.Rank, s.Name, s.Alive, s.Total, s.MaxGeneration, s.Pattern)
		y = r.DrawColorSwatch(l.x+padding, y, renderer.StrainColor(s.Strain), text)
	}
}
