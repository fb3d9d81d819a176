package sim

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/pthm-cable/petri/components"
	"github.com/pthm-cable/petri/systems"
)

// ErrFrameOutOfRange is returned when seeking past either end of a history.
var ErrFrameOutOfRange = errors.New("history frame out of range")

// History is an append-only sequence of world snapshots with random access.
type History interface {
	Append(s State) error
	Len() int
	Frame(i int) (State, error)
}

// HistoryMode selects how snapshots are retained.
type HistoryMode string

const (
	HistoryOff        HistoryMode = ""
	HistoryDense      HistoryMode = "dense"
	HistoryCompressed HistoryMode = "compressed"
)

// NewHistory returns the history for mode, or nil when recording is off.
func NewHistory(mode HistoryMode) (History, error) {
	switch mode {
	case HistoryOff:
		return nil, nil
	case HistoryDense:
		return &DenseHistory{}, nil
	case HistoryCompressed:
		return NewCompressedHistory()
	default:
		return nil, fmt.Errorf("unknown history mode %q", mode)
	}
}

// DenseHistory keeps a full clone of every frame.
type DenseHistory struct {
	frames []State
}

// Append stores a clone of s.
func (h *DenseHistory) Append(s State) error {
	h.frames = append(h.frames, s.Clone())
	return nil
}

// Len returns the number of frames.
func (h *DenseHistory) Len() int { return len(h.frames) }

// Frame returns a clone of frame i.
func (h *DenseHistory) Frame(i int) (State, error) {
	if i < 0 || i >= len(h.frames) {
		return State{}, fmt.Errorf("frame %d of %d: %w", i, len(h.frames), ErrFrameOutOfRange)
	}
	return h.frames[i].Clone(), nil
}

// frame is the encoded part of a State.
type frame struct {
	Tick      int
	Organisms []components.Organism
}

type frameMeta struct {
	bounds components.Bounds
	food   systems.FoodSource
}

// CompressedHistory stores each frame as an independently zstd-compressed
// gob blob so any tick can be decoded without replaying its predecessors.
type CompressedHistory struct {
	enc *zstd.Encoder
	dec *zstd.Decoder

	blobs [][]byte
	meta  []frameMeta
	raw   int
}

// NewCompressedHistory creates an empty compressed history.
func NewCompressedHistory() (*CompressedHistory, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	return &CompressedHistory{enc: enc, dec: dec}, nil
}

// Append encodes and compresses s.
func (h *CompressedHistory) Append(s State) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(frame{Tick: s.Tick, Organisms: s.Organisms}); err != nil {
		return fmt.Errorf("gob encode: %w", err)
	}
	h.raw += buf.Len()
	h.blobs = append(h.blobs, h.enc.EncodeAll(buf.Bytes(), nil))
	h.meta = append(h.meta, frameMeta{bounds: s.Bounds, food: s.Food})
	return nil
}

// Len returns the number of frames.
func (h *CompressedHistory) Len() int { return len(h.blobs) }

// Frame decompresses and decodes frame i.
func (h *CompressedHistory) Frame(i int) (State, error) {
	if i < 0 || i >= len(h.blobs) {
		return State{}, fmt.Errorf("frame %d of %d: %w", i, len(h.blobs), ErrFrameOutOfRange)
	}
	data, err := h.dec.DecodeAll(h.blobs[i], nil)
	if err != nil {
		return State{}, fmt.Errorf("zstd decode frame %d: %w", i, err)
	}
	var f frame
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&f); err != nil {
		return State{}, fmt.Errorf("gob decode frame %d: %w", i, err)
	}
	return State{
		Tick:      f.Tick,
		Bounds:    h.meta[i].bounds,
		Organisms: f.Organisms,
		Food:      h.meta[i].food,
	}, nil
}

// Sizes returns the total encoded and compressed byte counts.
func (h *CompressedHistory) Sizes() (raw, compressed int) {
	for _, b := range h.blobs {
		compressed += len(b)
	}
	return h.raw, compressed
}

// Close releases encoder and decoder resources.
func (h *CompressedHistory) Close() {
	h.enc.Close()
	h.dec.Close()
}
