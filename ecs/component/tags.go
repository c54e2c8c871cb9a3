package component

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

type AsteroidTag struct{}

var AsteroidTagComponent = NewComponent[AsteroidTag]()

type StarTag struct{}

var StarTagComponent = NewComponent[StarTag]()
