// Package camera eases the scene camera to a vantage point per section,
// scrubbed directly by the scroll offset.
package camera

import (
	"fmt"

	"github.com/milk9111/starfolio/common"
	"github.com/milk9111/starfolio/scene"
	"github.com/milk9111/starfolio/scroll"
	"github.com/milk9111/starfolio/section"
	"github.com/milk9111/starfolio/timeline"
	"github.com/milk9111/starfolio/transition"
)

type Preset struct {
	Position common.Vec3
	LookAt   common.Vec3
	Duration float64
}

type Config struct {
	Initial       common.Vec3
	InitialLookAt common.Vec3
	Ease          string
	Presets       map[section.Section]Preset
}

func DefaultConfig() Config {
	far := Preset{Position: common.V3(0, 1.2, 9.5), Duration: 1.2}
	return Config{
		Initial: common.V3(0, 2, 12),
		Ease:    "power2.inOut",
		Presets: map[section.Section]Preset{
			section.Hero:     {Position: common.V3(0, 2, 10), Duration: 1.2},
			section.About:    {Position: common.V3(0, 1.5, 8.5), Duration: 1.2},
			section.Projects: far,
			section.Skills:   far,
			section.Contact:  far,
		},
	}
}

type scrub struct {
	sec   section.Section
	start float64
	end   float64
	tl    *timeline.Timeline
}

// Director owns one scrubbed timeline per section. The timeline of a section
// runs while the section's top scrolls through one viewport height; its
// playhead is the fraction of that range scrolled.
type Director struct {
	cfg    Config
	cam    scene.Camera
	scrubs []scrub

	last     int
	lastProg float64
	killed   bool
}

// NewDirector builds the per-section timelines. Failed camera writes are
// reported to observe as mutation failures. resolve may be nil.
func NewDirector(cfg Config, layout scroll.Layout, cam scene.Camera, observe transition.Observer, resolve func(string) (common.Ease, error)) (*Director, error) {
	if cam == nil {
		return nil, fmt.Errorf("camera: no camera mounted")
	}
	if resolve == nil {
		resolve = common.ParseEase
	}
	ease, err := resolve(cfg.Ease)
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	d := &Director{cfg: cfg, cam: cam, last: -1}
	from := cfg.Initial
	for _, sec := range section.All {
		preset, ok := cfg.Presets[sec]
		if !ok {
			return nil, fmt.Errorf("camera: no preset for %s", sec)
		}
		lookAt := preset.LookAt
		tl := timeline.New("camera." + sec.String())
		tl.Vec3("camera.position", func(v common.Vec3) error {
			if err := cam.SetPosition(v); err != nil {
				return err
			}
			return cam.LookAt(lookAt)
		}).To(0, preset.Duration, from, preset.Position, ease)
		tl.SetCallbacks(timeline.Callbacks{
			OnError: func(key string, err error) {
				observe.Emit(transition.Event{Kind: transition.EventMutationFailed, Section: sec, Detail: key, Err: err})
			},
		})
		d.scrubs = append(d.scrubs, scrub{sec: sec, tl: tl})
		from = preset.Position
	}
	d.Refresh(layout)
	return d, nil
}

// Place puts the camera at its initial position.
func (d *Director) Place() error {
	if err := d.cam.SetPosition(d.cfg.Initial); err != nil {
		return err
	}
	d.last = -1
	return d.cam.LookAt(d.cfg.InitialLookAt)
}

// Refresh recomputes the scroll ranges for a new layout.
func (d *Director) Refresh(layout scroll.Layout) {
	for i := range d.scrubs {
		s := &d.scrubs[i]
		if a, ok := layout.Anchor(s.sec); ok {
			s.start = a.Top
			s.end = a.Top + layout.Viewport
		} else {
			s.start, s.end = -1, -1
		}
	}
	d.last = -1
}

// Update scrubs the camera to offset. Only the timeline of the last section
// whose range has started is rendered.
func (d *Director) Update(offset float64) {
	if d.killed || len(d.scrubs) == 0 {
		return
	}
	idx := 0
	for i, s := range d.scrubs {
		if s.start >= 0 && offset >= s.start {
			idx = i
		}
	}
	s := d.scrubs[idx]
	prog := 0.0
	if s.end > s.start {
		prog = common.Clamp01((offset - s.start) / (s.end - s.start))
	}
	if idx == d.last && prog == d.lastProg {
		return
	}
	d.last, d.lastProg = idx, prog
	s.tl.Seek(prog * s.tl.Duration())
}

// Kill stops scrubbing. The camera keeps its last pose.
func (d *Director) Kill() {
	d.killed = true
	for _, s := range d.scrubs {
		s.tl.Kill()
	}
}
