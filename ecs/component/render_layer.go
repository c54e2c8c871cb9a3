package component

// RenderLayer breaks depth ties deterministically; higher draws later.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
