package timeline

import (
	"sort"

	"github.com/milk9111/starfolio/common"
)

type segmentKind int

const (
	segTween segmentKind = iota
	segYoyo
	segSet
)

// segment is one scheduled change of a track's value. A set segment is
// discrete: it holds from before at and to from at onwards.
type segment[T any] struct {
	kind     segmentKind
	at       float64
	duration float64
	from     T
	to       T
	ease     common.Ease
}

func (s segment[T]) end() float64 {
	return s.at + s.duration
}

func (s segment[T]) valueAt(t float64, lerp func(a, b T, p float64) T) T {
	if s.kind == segSet || lerp == nil {
		if t >= s.at {
			return s.to
		}
		return s.from
	}
	p := 1.0
	if s.duration > 0 {
		p = common.Clamp01((t - s.at) / s.duration)
	}
	if s.kind == segYoyo {
		if p < 0.5 {
			p = 2 * p
		} else {
			p = 2 - 2*p
		}
	}
	ease := s.ease
	if ease == nil {
		ease = common.Linear
	}
	return lerp(s.from, s.to, ease(p))
}

type renderer interface {
	key() string
	end() float64
	render(t float64, force bool) error
	forget()
}

// Track is the sequence of segments that drive one attribute. At any playhead
// the value is produced by the last segment whose start has been reached, or
// by the first segment's starting value when none has.
type Track[T comparable] struct {
	name string
	set  func(T) error
	lerp func(a, b T, p float64) T
	segs []segment[T]

	last    T
	written bool
}

func (tr *Track[T]) key() string { return tr.name }

func (tr *Track[T]) end() float64 {
	end := 0.0
	for _, s := range tr.segs {
		if e := s.end(); e > end {
			end = e
		}
	}
	return end
}

func (tr *Track[T]) add(s segment[T]) {
	tr.segs = append(tr.segs, s)
	sort.SliceStable(tr.segs, func(i, j int) bool { return tr.segs[i].at < tr.segs[j].at })
}

func (tr *Track[T]) valueAt(t float64) (T, bool) {
	var zero T
	if len(tr.segs) == 0 {
		return zero, false
	}
	idx := -1
	for i, s := range tr.segs {
		if t >= s.at {
			idx = i
		}
	}
	if idx < 0 {
		first := tr.segs[0]
		return first.from, true
	}
	return tr.segs[idx].valueAt(t, tr.lerp), true
}

func (tr *Track[T]) render(t float64, force bool) error {
	v, ok := tr.valueAt(t)
	if !ok {
		return nil
	}
	if !force && tr.written && v == tr.last {
		return nil
	}
	tr.last = v
	tr.written = true
	return tr.set(v)
}

func (tr *Track[T]) forget() {
	tr.written = false
}

// Vec3Track animates a vector attribute.
type Vec3Track struct {
	*Track[common.Vec3]
}

// To tweens from -> to over [at, at+duration].
func (tr Vec3Track) To(at, duration float64, from, to common.Vec3, ease common.Ease) Vec3Track {
	tr.add(segment[common.Vec3]{kind: segTween, at: at, duration: duration, from: from, to: to, ease: ease})
	return tr
}

// Yoyo goes from -> to over the first half of the window and back to from
// over the second half.
func (tr Vec3Track) Yoyo(at, duration float64, from, to common.Vec3, ease common.Ease) Vec3Track {
	tr.add(segment[common.Vec3]{kind: segYoyo, at: at, duration: duration, from: from, to: to, ease: ease})
	return tr
}

// Set switches from before to after at the given offset.
func (tr Vec3Track) Set(at float64, before, after common.Vec3) Vec3Track {
	tr.add(segment[common.Vec3]{kind: segSet, at: at, from: before, to: after})
	return tr
}

// BoolTrack drives a discrete attribute such as visibility.
type BoolTrack struct {
	*Track[bool]
}

func (tr BoolTrack) Set(at float64, before, after bool) BoolTrack {
	tr.add(segment[bool]{kind: segSet, at: at, from: before, to: after})
	return tr
}
