package component

type Visibility struct {
	Visible bool
}

var VisibilityComponent = NewComponent[Visibility]()
