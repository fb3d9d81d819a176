package ui

// Playback speeds in frames per second.
var playbackSpeeds = []int{1, 2, 5, 10, 20, 30, 60, 120, 240}

const defaultSpeedIndex = 3

// Playback is the replay cursor over a fixed number of frames. It starts
// paused on the first frame and pauses itself on reaching the last.
type Playback struct {
	frames   int
	index    int
	paused   bool
	speedIdx int
	accum    float32
}

// NewPlayback creates a paused cursor over frames frames.
func NewPlayback(frames int) *Playback {
	return &Playback{frames: frames, paused: true, speedIdx: defaultSpeedIndex}
}

// Len returns the number of frames.
func (p *Playback) Len() int { return p.frames }

// Index returns the current frame index.
func (p *Playback) Index() int { return p.index }

// Paused reports whether playback is paused.
func (p *Playback) Paused() bool { return p.paused }

// AtEnd reports whether the cursor is on the last frame.
func (p *Playback) AtEnd() bool { return p.index >= p.frames-1 }

// TogglePause flips the paused state. Resuming from the last frame
// restarts from the first.
func (p *Playback) TogglePause() {
	if p.paused && p.AtEnd() {
		p.index = 0
	}
	p.paused = !p.paused
	p.accum = 0
}

// SetPaused sets the paused state.
func (p *Playback) SetPaused(paused bool) {
	p.paused = paused
	p.accum = 0
}

// Speed returns the playback rate in frames per second.
func (p *Playback) Speed() int { return playbackSpeeds[p.speedIdx] }

// Faster moves to the next speed step.
func (p *Playback) Faster() {
	if p.speedIdx < len(playbackSpeeds)-1 {
		p.speedIdx++
	}
}

// Slower moves to the previous speed step.
func (p *Playback) Slower() {
	if p.speedIdx > 0 {
		p.speedIdx--
	}
}

// Seek moves to frame i, clamped to the valid range.
func (p *Playback) Seek(i int) {
	if p.frames == 0 {
		p.index = 0
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= p.frames {
		i = p.frames - 1
	}
	p.index = i
	p.accum = 0
}

// Step pauses and moves delta frames.
func (p *Playback) Step(delta int) {
	p.paused = true
	p.Seek(p.index + delta)
}

// Advance moves the cursor forward by the frames due after dt seconds of
// play. Returns true if the frame changed.
func (p *Playback) Advance(dt float32) bool {
	if p.paused || p.frames == 0 {
		return false
	}
	p.accum += dt * float32(p.Speed())
	n := int(p.accum)
	if n == 0 {
		return false
	}
	rem := p.accum - float32(n)

	prev := p.index
	p.Seek(prev + n)
	p.accum = rem
	if p.AtEnd() {
		p.paused = true
	}
	return p.index != prev
}
