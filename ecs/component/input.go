package component

import "github.com/jakecoffman/cp"

// Input is written by the window/input layer before each tick.
type Input struct {
	Move   cp.Vector
	Attack bool
	Dash   bool
}

var InputComponent = NewComponent[Input]()
