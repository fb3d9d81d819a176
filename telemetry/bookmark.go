package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkExtinction  BookmarkType = "extinction"
	BookmarkSaturation  BookmarkType = "saturation"
	BookmarkMonoculture BookmarkType = "monoculture"
	BookmarkCrash       BookmarkType = "crash"
	BookmarkRecovery    BookmarkType = "recovery"
)

// Bookmark marks a generation worth a closer look.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Generation  int          `csv:"generation"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"generation", b.Generation,
		"description", b.Description,
	)
}

// BookmarkDetector detects notable generations from successive stats.
type BookmarkDetector struct {
	capacity int

	prev        GenerationStats
	havePrev    bool
	saturated   bool
	monoculture bool
}

// NewBookmarkDetector creates a detector for worlds with the given carrying capacity.
func NewBookmarkDetector(capacity int) *BookmarkDetector {
	return &BookmarkDetector{capacity: capacity}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
// Saturation and monoculture fire once when first reached.
func (bd *BookmarkDetector) Check(stats GenerationStats) []Bookmark {
	var bookmarks []Bookmark
	add := func(t BookmarkType, format string, args ...any) {
		bookmarks = append(bookmarks, Bookmark{
			Type:        t,
			Generation:  stats.Generation,
			Description: fmt.Sprintf(format, args...),
		})
	}

	if stats.Extinct() && stats.Seeded > 0 {
		add(BookmarkExtinction, "All %d seeded organisms died", stats.Seeded)
	}

	if bd.capacity > 0 && stats.Survivors >= bd.capacity && !bd.saturated {
		bd.saturated = true
		add(BookmarkSaturation, "Survivors reached carrying capacity %d", bd.capacity)
	}

	if stats.ActiveStrains == 1 && !bd.monoculture {
		bd.monoculture = true
		add(BookmarkMonoculture, "Strain %d is the only surviving lineage", stats.DominantStrain)
	}

	if bd.havePrev && bd.prev.Survivors > 0 {
		drop := 1.0 - float64(stats.Survivors)/float64(bd.prev.Survivors)
		if drop > 0.5 && !stats.Extinct() {
			add(BookmarkCrash, "Survivors fell %.0f%% from %d to %d", drop*100, bd.prev.Survivors, stats.Survivors)
		}
	}

	if bd.havePrev && bd.prev.SurvivalRatio > 0 && bd.prev.SurvivalRatio < 0.25 && stats.SurvivalRatio >= 0.75 {
		add(BookmarkRecovery, "Survival ratio recovered from %.2f to %.2f", bd.prev.SurvivalRatio, stats.SurvivalRatio)
	}

	bd.prev = stats
	bd.havePrev = true
	return bookmarks
}
