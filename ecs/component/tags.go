package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// Solid marks static blockers that push moving entities out.
type Solid struct{}

var SolidComponent = NewComponent[Solid]()

// Eatable marks collectibles the player picks up on contact.
type Eatable struct {
	Points int
}

var EatableComponent = NewComponent[Eatable]()

// Score accumulates collectible points on the player.
type Score struct {
	Points int
}

var ScoreComponent = NewComponent[Score]()
