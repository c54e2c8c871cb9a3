package component

// ScrollState is the virtual document scroll position in pixels. Target is
// where smooth scrolling is heading; Offset is what triggers observe.
type ScrollState struct {
	Offset   float64
	Target   float64
	Max      float64
	Viewport float64

	// Glide is a timed jump requested by header navigation. While Glide
	// is set the offset follows it instead of Target.
	Glide *ScrollGlide
}

// ScrollGlide eases the offset from From to To over Duration seconds.
type ScrollGlide struct {
	From     float64
	To       float64
	Duration float64
	Elapsed  float64
}

var ScrollStateComponent = NewComponent[ScrollState]()
