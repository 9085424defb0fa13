package component

// Animation carries the clip name picked from the actor's logical state.
// Frame advance belongs to the renderer.
type Animation struct {
	Clip string
}

var AnimationComponent = NewComponent[Animation]()
