package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/pthm-cable/petri/config"
	"github.com/pthm-cable/petri/evolve"
	"github.com/pthm-cable/petri/renderer"
	"github.com/pthm-cable/petri/sim"
	"github.com/pthm-cable/petri/telemetry"
	"github.com/pthm-cable/petri/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot (empty = use config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = use config, which defaults to time-based)")
	generations := flag.Int("generations", 0, "Number of generations (0 = use config)")
	ticks := flag.Int("ticks", 0, "Ticks per generation (0 = use config)")
	printMap := flag.Bool("print", false, "Print the final world as an ASCII map")
	view := flag.Bool("view", false, "Open the replay viewer on the final generation")
	historyMode := flag.String("history", "", "Keep per-tick history: dense or compressed (empty = use config)")
	logText := flag.Bool("log-text", false, "Log as text instead of JSON")
	verbose := flag.Bool("v", false, "Enable debug logging")
	var weights []string
	flag.Func("weight", "Override a trait weight as name=value (repeatable)", func(s string) error {
		weights = append(weights, s)
		return nil
	})

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, handlerOpts)
	if *logText {
		handler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(handler))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// CLI overrides
	if *seed != 0 {
		cfg.Run.Seed = *seed
	}
	if *generations > 0 {
		cfg.Run.Generations = *generations
	}
	if *ticks > 0 {
		cfg.Run.TicksPerGeneration = *ticks
	}
	if *outputDir != "" {
		cfg.Telemetry.OutputDir = *outputDir
	}
	if *historyMode != "" {
		cfg.History.Save = true
		cfg.History.Mode = *historyMode
	}
	if *view {
		cfg.History.Save = true
	}
	for _, kv := range weights {
		if err := applyWeight(cfg, kv); err != nil {
			slog.Error("invalid -weight", "value", kv, "error", err)
			os.Exit(1)
		}
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid flags", "error", err)
		os.Exit(1)
	}

	output, err := telemetry.NewOutputManager(cfg.Telemetry.OutputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()

	runner := evolve.NewRunner(cfg, output)
	// Record the seed actually used so the run can be reproduced from config.yaml.
	cfg.Run.Seed = runner.Seed()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats, err := runner.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			slog.Warn("run interrupted", "completed_generations", len(stats))
		} else {
			slog.Error("run failed", "error", err)
			os.Exit(1)
		}
	}

	last := runner.Last()
	if last == nil {
		return
	}

	if *printMap {
		if err := renderer.WriteASCII(os.Stdout, last.State(), renderer.ASCIIOptions{Border: true, Header: true}); err != nil {
			slog.Error("failed to print map", "error", err)
		}
	}

	if *view {
		if err := replay(last, cfg, len(stats), runner.Perf()); err != nil {
			slog.Error("viewer failed", "error", err)
			os.Exit(1)
		}
	}
}

// replay opens the viewer over the final generation's history. History
// holds pre-tick frames, so the end state is appended as the last frame.
func replay(w *sim.World, cfg *config.Config, generation int, perf telemetry.PerfStats) error {
	h := w.History()
	if h == nil {
		return ui.ErrNoFrames
	}
	if err := h.Append(w.State()); err != nil {
		return err
	}

	opts := ui.DefaultOptions()
	opts.Generation = generation
	opts.Capacity = cfg.World.CarryingCapacity
	opts.StrainTop = cfg.Telemetry.StrainTop
	opts.Perf = perf

	v, err := ui.NewViewer(h, opts)
	if err != nil {
		return err
	}
	return v.Run()
}

// applyWeight parses a name=value pair and sets that trait weight.
func applyWeight(cfg *config.Config, kv string) error {
	name, raw, ok := strings.Cut(kv, "=")
	if !ok {
		return fmt.Errorf("expected name=value, got %q", kv)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("weight %s: %w", name, err)
	}
	return cfg.SetWeight(name, v)
}
