package component

import "github.com/jakecoffman/cp"

// AmbientBody links a decorative entity to its Chipmunk body. The body moves
// in the scene's XY plane; Depth is the fixed Z coordinate.
type AmbientBody struct {
	Body   *cp.Body
	Depth  float64
	Radius float64
}

var AmbientBodyComponent = NewComponent[AmbientBody]()
