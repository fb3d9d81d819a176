package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/petri/components"
	"github.com/pthm-cable/petri/config"
	"github.com/pthm-cable/petri/genome"
	"github.com/pthm-cable/petri/traits"
)

func organism(id, strain uint64, life float64, gen int) components.Organism {
	return components.Organism{
		ID:         id,
		Strain:     strain,
		Generation: gen,
		Name:       components.Name("org"),
		Life:       life,
		Genome: genome.Genome{
			Traits:   traits.NewEven(traits.DefaultWeights()),
			Behavior: genome.Behavior{Pattern: []genome.Action{genome.MoveForward, genome.TurnLeft}},
		},
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector()
	c.RecordTick()
	c.RecordTick()
	c.RecordStep(3, 2, 1)
	c.RecordBirth()
	c.RecordDiscard()
	c.RecordDiscard()

	orgs := []components.Organism{
		organism(1, 1, 100, 1),
		organism(2, 1, 200, 2),
		organism(3, 3, 0, 4),
		organism(4, 4, 50, 1),
	}
	s := c.Flush(5, 4, orgs)

	if s.Generation != 5 || s.Ticks != 2 || s.Seeded != 4 {
		t.Errorf("header fields wrong: %+v", s)
	}
	if s.Survivors != 3 || s.Population != 4 {
		t.Errorf("survivors=%d population=%d, want 3/4", s.Survivors, s.Population)
	}
	if s.SurvivalRatio != 0.75 {
		t.Errorf("survival ratio = %v, want 0.75", s.SurvivalRatio)
	}
	if s.Births != 1 || s.Discarded != 2 || s.Deaths != 1 || s.Meals != 3 || s.Moves != 2 {
		t.Errorf("counters wrong: %+v", s)
	}
	if s.ActiveStrains != 2 || s.DominantStrain != 1 {
		t.Errorf("strains=%d dominant=%d, want 2/1", s.ActiveStrains, s.DominantStrain)
	}
	if s.MaxGeneration != 4 {
		t.Errorf("max generation = %d, want 4", s.MaxGeneration)
	}
	if s.AgingMagnitude != traits.EvenMagnitude {
		t.Errorf("aging magnitude = %v, want %d", s.AgingMagnitude, traits.EvenMagnitude)
	}

	// Counters reset after flush
	s = c.Flush(6, 0, nil)
	if s.Ticks != 0 || s.Births != 0 || s.SurvivalRatio != 0 {
		t.Errorf("collector not reset: %+v", s)
	}
}

func TestLeaderboard(t *testing.T) {
	orgs := []components.Organism{
		organism(1, 7, 10, 1),
		organism(2, 9, 10, 1),
		organism(3, 9, 10, 2),
		organism(4, 5, 0, 1),
		organism(5, 5, 0, 1),
		organism(6, 2, 10, 1),
	}

	board := Leaderboard(3, orgs, 0)
	want := []uint64{9, 2, 7, 5}
	if len(board) != len(want) {
		t.Fatalf("len = %d, want %d", len(board), len(want))
	}
	for i, id := range want {
		if board[i].Strain != id || board[i].Rank != i+1 {
			t.Errorf("rank %d: strain %d, want %d", i+1, board[i].Strain, id)
		}
	}
	if board[0].Alive != 2 || board[0].MaxGeneration != 2 || board[0].Pattern != "FL" {
		t.Errorf("top entry = %+v", board[0])
	}
	if board[3].Alive != 0 || board[3].Total != 2 || board[3].Pattern != "" {
		t.Errorf("extinct strain entry = %+v", board[3])
	}

	if got := Leaderboard(3, orgs, 2); len(got) != 2 {
		t.Errorf("top 2 returned %d entries", len(got))
	}
}

func TestBookmarkDetector(t *testing.T) {
	bd := NewBookmarkDetector(10)

	types := func(bs []Bookmark) []BookmarkType {
		var out []BookmarkType
		for _, b := range bs {
			out = append(out, b.Type)
		}
		return out
	}

	got := types(bd.Check(GenerationStats{Generation: 1, Seeded: 5, Survivors: 4, SurvivalRatio: 0.8, ActiveStrains: 3}))
	if len(got) != 0 {
		t.Errorf("generation 1 bookmarks = %v, want none", got)
	}

	got = types(bd.Check(GenerationStats{Generation: 2, Seeded: 10, Survivors: 1, SurvivalRatio: 0.1, ActiveStrains: 1}))
	if len(got) != 2 || got[0] != BookmarkMonoculture || got[1] != BookmarkCrash {
		t.Errorf("generation 2 bookmarks = %v, want [monoculture crash]", got)
	}

	got = types(bd.Check(GenerationStats{Generation: 3, Seeded: 10, Survivors: 10, SurvivalRatio: 1, ActiveStrains: 1}))
	if len(got) != 2 || got[0] != BookmarkSaturation || got[1] != BookmarkRecovery {
		t.Errorf("generation 3 bookmarks = %v, want [saturation recovery]", got)
	}

	got = types(bd.Check(GenerationStats{Generation: 4, Seeded: 10, Survivors: 0}))
	if len(got) != 1 || got[0] != BookmarkExtinction {
		t.Errorf("generation 4 bookmarks = %v, want [extinction]", got)
	}
}

func TestPerfCollector(t *testing.T) {
	p := NewPerfCollector(4)
	clock := time.Unix(0, 0)
	p.now = func() time.Time { return clock }
	advance := func(d time.Duration) { clock = clock.Add(d) }

	for i := 0; i < 2; i++ {
		p.StartTick()
		p.StartPhase(PhaseOrganisms)
		advance(3 * time.Millisecond)
		p.StartPhase(PhaseReproduction)
		advance(1 * time.Millisecond)
		p.EndTick()
	}

	s := p.Stats()
	if s.AvgTickDuration != 4*time.Millisecond {
		t.Errorf("avg tick = %v, want 4ms", s.AvgTickDuration)
	}
	if s.PhasePct[PhaseOrganisms] != 75 || s.PhasePct[PhaseReproduction] != 25 {
		t.Errorf("phase pct = %v", s.PhasePct)
	}
	if s.TicksPerSecond != 250 {
		t.Errorf("ticks/s = %v, want 250", s.TicksPerSecond)
	}
}

func TestOutputManager(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	for g := 1; g <= 2; g++ {
		if err := om.WriteGeneration(GenerationStats{Generation: g, Seeded: 10, Survivors: g}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WriteStrains([]StrainStats{{Generation: 1, Rank: 1, Strain: 3, Alive: 2}}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteBookmark(Bookmark{Type: BookmarkExtinction, Generation: 2, Description: "gone"}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(filepath.Join(dir, "generations.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	var rows []GenerationStats
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[1].Generation != 2 || rows[1].Survivors != 2 {
		t.Errorf("generations.csv rows = %+v", rows)
	}

	data, err := os.ReadFile(filepath.Join(dir, "bookmarks.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "type,generation,description") {
		t.Errorf("bookmarks.csv header = %q", strings.SplitN(string(data), "\n", 2)[0])
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml missing: %v", err)
	}
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v", om, err)
	}
	if err := om.WriteGeneration(GenerationStats{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
	if om.Dir() != "" {
		t.Error("disabled manager should have empty dir")
	}
}
