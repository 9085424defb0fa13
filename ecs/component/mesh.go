package component

import "github.com/jakecoffman/cp"

// Mesh is the polygon shape of a sticky entity. Vertices are local to the
// owner's Motion; Indices lists triangles as consecutive index triples.
// The owner's Scale still defines the broad-phase box.
type Mesh struct {
	Vertices []cp.Vector
	Indices  []int
}

// Triangles returns the number of complete triangles in Indices.
func (m *Mesh) Triangles() int {
	return len(m.Indices) / 3
}

var MeshComponent = NewComponent[Mesh]()
