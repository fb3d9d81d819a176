package ui

import (
	"errors"
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/petri/camera"
	"github.com/pthm-cable/petri/inspector"
	"github.com/pthm-cable/petri/renderer"
	"github.com/pthm-cable/petri/sim"
	"github.com/pthm-cable/petri/telemetry"
)

// ErrNoFrames is returned when a replay is requested for an empty history.
var ErrNoFrames = errors.New("history has no frames")

const controlsLegend = "Space: play/pause | ,/.: step | [/]: speed | Arrows: pan | +/-: zoom | Home: reset | Click: inspect"

// Options configures the replay window.
type Options struct {
	Title      string
	Width      int32
	Height     int32
	TargetFPS  int32
	CellSize   float32
	Generation int
	Capacity   int
	StrainTop  int
	Perf       telemetry.PerfStats
}

// DefaultOptions returns a window sized for the default grid.
func DefaultOptions() Options {
	return Options{
		Title:     "Petri",
		Width:     1280,
		Height:    720,
		TargetFPS: 60,
		CellSize:  14,
		StrainTop: 8,
	}
}

// Viewer replays the frames of a History.
type Viewer struct {
	opts     Options
	history  sim.History
	playback *Playback

	cam       *camera.Camera
	grid      *renderer.GridRenderer
	inspector *inspector.Inspector
	overlays  *OverlayRegistry

	hud         *HUD
	bar         *PlaybackBar
	controls    *ControlsPanel
	perf        *PerfPanel
	leaderboard *LeaderboardPanel

	frameIdx int
	frame    sim.State
	strains  []telemetry.StrainStats

	screenWidth, screenHeight int32
}

// NewViewer prepares a viewer over history. The first frame is decoded
// eagerly so a broken history fails before a window is opened.
func NewViewer(history sim.History, opts Options) (*Viewer, error) {
	if history == nil || history.Len() == 0 {
		return nil, ErrNoFrames
	}
	first, err := history.Frame(0)
	if err != nil {
		return nil, fmt.Errorf("decode first frame: %w", err)
	}

	v := &Viewer{
		opts:         opts,
		history:      history,
		playback:     NewPlayback(history.Len()),
		overlays:     NewOverlayRegistry(),
		hud:          NewHUD(),
		bar:          NewPlaybackBar(),
		controls:     NewControlsPanel(10, 0, 220),
		perf:         NewPerfPanel(10, 0),
		leaderboard:  NewLeaderboardPanel(10, HUDHeight, 420),
		screenWidth:  opts.Width,
		screenHeight: opts.Height,
	}
	v.cam = camera.New(float32(opts.Width), float32(opts.Height), first.Bounds, opts.CellSize)
	v.grid = renderer.NewGridRenderer(v.cam)
	v.inspector = inspector.NewInspector(opts.Width)
	v.setFrame(0, first)
	return v, nil
}

// Run opens the window and blocks until it is closed.
func (v *Viewer) Run() error {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(v.screenWidth, v.screenHeight, v.opts.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(v.opts.TargetFPS)

	slog.Info("replay started", "frames", v.history.Len(), "generation", v.opts.Generation)

	for !rl.WindowShouldClose() {
		v.handleInput()
		v.playback.Advance(rl.GetFrameTime())
		if err := v.sync(); err != nil {
			return err
		}
		v.draw()
	}
	return nil
}

// sync decodes the frame under the playback cursor if it changed.
func (v *Viewer) sync() error {
	idx := v.playback.Index()
	if idx == v.frameIdx {
		return nil
	}
	s, err := v.history.Frame(idx)
	if err != nil {
		return fmt.Errorf("decode frame %d: %w", idx, err)
	}
	v.setFrame(idx, s)
	return nil
}

func (v *Viewer) setFrame(idx int, s sim.State) {
	v.frameIdx = idx
	v.frame = s
	v.strains = telemetry.Leaderboard(v.opts.Generation, s.Organisms, v.opts.StrainTop)
}

func (v *Viewer) handleInput() {
	v.handleResize()

	if rl.IsKeyPressed(rl.KeySpace) {
		v.playback.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyComma) {
		v.playback.Step(-1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		v.playback.Step(1)
	}
	if rl.IsKeyPressed(rl.KeyLeftBracket) {
		v.playback.Slower()
	}
	if rl.IsKeyPressed(rl.KeyRightBracket) {
		v.playback.Faster()
	}
	if key := rl.GetKeyPressed(); key != 0 {
		if id, on, ok := v.overlays.HandleKeyPress(key); ok {
			slog.Debug("overlay toggled", "overlay", id, "enabled", on)
		}
	}

	v.handleCameraInput()

	mouse := rl.GetMousePosition()
	if !v.bar.Contains(mouse, v.screenHeight) {
		v.inspector.HandleInput(mouse, v.cam, v.frame)
	}
}

func (v *Viewer) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	if w == v.screenWidth && h == v.screenHeight {
		return
	}
	v.screenWidth, v.screenHeight = w, h
	v.cam.Resize(float32(w), float32(h))
	v.inspector.Resize(w)
}

func (v *Viewer) handleCameraInput() {
	const panSpeed = 8

	if rl.IsKeyDown(rl.KeyRight) {
		v.cam.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		v.cam.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		v.cam.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		v.cam.Pan(0, -panSpeed)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		v.cam.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		v.cam.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		v.cam.ZoomBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		v.cam.Reset()
	}
}

func (v *Viewer) draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	v.grid.ShowFood = v.overlays.IsEnabled(OverlayFood)
	v.grid.ShowLines = v.overlays.IsEnabled(OverlayGridLines)
	v.grid.ShowDead = v.overlays.IsEnabled(OverlayDead)
	v.grid.Draw(v.frame)

	v.hud.Draw(HUDData{
		Title:      v.opts.Title,
		Generation: v.opts.Generation,
		Frame:      v.frameIdx,
		Frames:     v.playback.Len(),
		Tick:       v.frame.Tick,
		Alive:      v.frame.AliveCount(),
		Total:      len(v.frame.Organisms),
		Capacity:   v.opts.Capacity,
		Strains:    len(v.frame.Strains()),
		Speed:      v.playback.Speed(),
		FPS:        rl.GetFPS(),
		Paused:     v.playback.Paused(),
	})

	y := int32(HUDHeight)
	if v.overlays.IsEnabled(OverlayLeaderboard) {
		v.leaderboard.SetPosition(10, y)
		v.leaderboard.Draw(v.strains)
		y += v.leaderboard.Height(len(v.strains)) + 10
	}
	if v.overlays.IsEnabled(OverlayHelp) {
		v.controls.SetPosition(10, y)
		y = v.controls.Draw(v.overlays) + 10
	}
	if v.overlays.IsEnabled(OverlayPerf) {
		v.perf.SetPosition(10, y)
		v.perf.Draw(v.opts.Perf)
	}

	v.inspector.Draw(v.frame.Organisms, v.cam)
	v.hud.DrawControls(v.screenHeight, controlsLegend)
	v.bar.Draw(v.playback, v.screenWidth, v.screenHeight)
}
