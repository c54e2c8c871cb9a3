// Package timeline is a small seekable, reversible tween engine. A Timeline
// owns tracks of scheduled attribute changes on one clock and re-renders every
// track from its declared values whenever the playhead moves, so the state at
// any playhead is fully determined and independent of the path taken there.
package timeline

import (
	"fmt"

	"github.com/milk9111/starfolio/common"
)

// Callbacks are invoked from Advance after the frame has been rendered.
type Callbacks struct {
	OnStart           func(reversed bool)
	OnComplete        func()
	OnReverseComplete func()
	// OnError receives every failed attribute write. The rest of the frame
	// still renders.
	OnError func(key string, err error)
}

type Timeline struct {
	name     string
	tracks   []renderer
	keys     map[string]struct{}
	playhead float64
	scale    float64
	reversed bool
	active   bool
	killed   bool
	noop     bool
	cb       Callbacks
	err      error
}

// New returns an empty, paused timeline.
func New(name string) *Timeline {
	return &Timeline{name: name, scale: 1, keys: make(map[string]struct{})}
}

// Noop returns a timeline that never plays and never fires callbacks.
func Noop(name string) *Timeline {
	tl := New(name)
	tl.noop = true
	return tl
}

func (tl *Timeline) Name() string { return tl.name }
func (tl *Timeline) IsNoop() bool { return tl.noop }

func (tl *Timeline) SetCallbacks(cb Callbacks) {
	tl.cb = cb
}

// Err reports a construction problem such as a duplicated track key.
func (tl *Timeline) Err() error { return tl.err }

// Vec3 declares a vector track. Keys must be unique within the timeline.
func (tl *Timeline) Vec3(key string, set func(common.Vec3) error) Vec3Track {
	tr := &Track[common.Vec3]{name: key, set: set, lerp: func(a, b common.Vec3, p float64) common.Vec3 {
		return a.Lerp(b, p)
	}}
	tl.addTrack(tr)
	return Vec3Track{tr}
}

func (tl *Timeline) Bool(key string, set func(bool) error) BoolTrack {
	tr := &Track[bool]{name: key, set: set}
	tl.addTrack(tr)
	return BoolTrack{tr}
}

func (tl *Timeline) addTrack(r renderer) {
	if _, dup := tl.keys[r.key()]; dup && tl.err == nil {
		tl.err = fmt.Errorf("timeline %s: duplicate track %q", tl.name, r.key())
	}
	tl.keys[r.key()] = struct{}{}
	tl.tracks = append(tl.tracks, r)
}

// Duration is the end of the latest scheduled segment.
func (tl *Timeline) Duration() float64 {
	d := 0.0
	for _, tr := range tl.tracks {
		if e := tr.end(); e > d {
			d = e
		}
	}
	return d
}

func (tl *Timeline) Time() float64      { return tl.playhead }
func (tl *Timeline) TimeScale() float64 { return tl.scale }
func (tl *Timeline) Reversed() bool     { return tl.reversed }
func (tl *Timeline) IsActive() bool     { return tl.active }
func (tl *Timeline) Killed() bool       { return tl.killed }

// Progress is the playhead as a fraction of the duration.
func (tl *Timeline) Progress() float64 {
	d := tl.Duration()
	if d <= 0 {
		if tl.playhead > 0 {
			return 1
		}
		return 0
	}
	return common.Clamp01(tl.playhead / d)
}

// SetTimeScale changes playback speed. Non-positive scales are ignored.
func (tl *Timeline) SetTimeScale(s float64) {
	if s > 0 {
		tl.scale = s
	}
}

// Play restarts the timeline from 0 and plays it forward.
func (tl *Timeline) Play() bool {
	return tl.start(false)
}

// Reverse jumps to the end and plays backwards to 0.
func (tl *Timeline) Reverse() bool {
	return tl.start(true)
}

func (tl *Timeline) start(reversed bool) bool {
	if tl.noop || tl.killed {
		return false
	}
	tl.reversed = reversed
	tl.active = true
	tl.forget()
	if reversed {
		tl.playhead = tl.Duration()
	} else {
		tl.playhead = 0
	}
	tl.render(true)
	if tl.cb.OnStart != nil {
		tl.cb.OnStart(reversed)
	}
	return true
}

// Pause stops advancing without touching the rendered state.
func (tl *Timeline) Pause() {
	tl.active = false
}

// Seek moves the playhead and renders immediately. No callbacks fire.
func (tl *Timeline) Seek(t float64) {
	if tl.noop || tl.killed {
		return
	}
	tl.playhead = common.Clamp(t, 0, tl.Duration())
	tl.forget()
	tl.render(true)
}

// Advance moves an active timeline by dt seconds of wall time scaled by the
// time scale, renders, and fires completion callbacks when an end is reached.
func (tl *Timeline) Advance(dt float64) {
	if !tl.active || tl.noop || tl.killed {
		return
	}
	d := tl.Duration()
	step := dt * tl.scale
	if tl.reversed {
		tl.playhead -= step
	} else {
		tl.playhead += step
	}
	tl.playhead = common.Clamp(tl.playhead, 0, d)
	tl.render(false)

	switch {
	case !tl.reversed && tl.playhead >= d:
		tl.active = false
		if tl.cb.OnComplete != nil {
			tl.cb.OnComplete()
		}
	case tl.reversed && tl.playhead <= 0:
		tl.active = false
		if tl.cb.OnReverseComplete != nil {
			tl.cb.OnReverseComplete()
		}
	}
}

// Kill stops the timeline for good and drops its callbacks.
func (tl *Timeline) Kill() {
	tl.active = false
	tl.killed = true
	tl.cb = Callbacks{}
}

func (tl *Timeline) render(force bool) {
	for _, tr := range tl.tracks {
		if err := tr.render(tl.playhead, force); err != nil && tl.cb.OnError != nil {
			tl.cb.OnError(tr.key(), err)
		}
	}
}

func (tl *Timeline) forget() {
	for _, tr := range tl.tracks {
		tr.forget()
	}
}

func (tl *Timeline) String() string {
	state := "paused"
	switch {
	case tl.noop:
		state = "noop"
	case tl.killed:
		state = "killed"
	case tl.active && tl.reversed:
		state = "reversing"
	case tl.active:
		state = "playing"
	}
	return fmt.Sprintf("%s[%s %.2f/%.2f x%.2f]", tl.name, state, tl.playhead, tl.Duration(), tl.scale)
}
