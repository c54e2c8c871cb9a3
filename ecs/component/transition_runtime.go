package component

// TransitionRuntime mirrors the animation manager's state for the HUD.
type TransitionRuntime struct {
	Current       string
	Active        string
	Progress      float64
	Reversing     bool
	Transitioning bool
	Completed     string
}

var TransitionRuntimeComponent = NewComponent[TransitionRuntime]()
