package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/ecs/component"
)

// motionBox is the axis-aligned box of size |Scale| centered on Position.
func motionBox(m *component.Motion) cp.BB {
	hw := math.Abs(m.Scale.X) / 2
	hh := math.Abs(m.Scale.Y) / 2
	return cp.BB{L: m.Position.X - hw, B: m.Position.Y - hh, R: m.Position.X + hw, T: m.Position.Y + hh}
}

// boxesOverlap is a separating-axis test on both extents. Boxes that only
// share an edge do not overlap.
func boxesOverlap(a, b cp.BB) bool {
	return a.L < b.R && b.L < a.R && a.B < b.T && b.B < a.T
}

// overlapExtents returns the overlap depth along x and y.
func overlapExtents(a, b cp.BB) (float64, float64) {
	ox := math.Min(a.R, b.R) - math.Max(a.L, b.L)
	oy := math.Min(a.T, b.T) - math.Max(a.B, b.B)
	return ox, oy
}

func boxContains(b cp.BB, p cp.Vector) bool {
	return p.X >= b.L && p.X <= b.R && p.Y >= b.B && p.Y <= b.T
}

func boxCorners(b cp.BB) [4]cp.Vector {
	return [4]cp.Vector{
		{X: b.L, Y: b.B},
		{X: b.R, Y: b.B},
		{X: b.R, Y: b.T},
		{X: b.L, Y: b.T},
	}
}

// transformVertex maps a local mesh vertex into world space: rotate by
// Angle, then scale per axis, then translate to Position.
func transformVertex(m *component.Motion, v cp.Vector) cp.Vector {
	sin, cos := math.Sincos(m.Angle)
	r := cp.Vector{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
	s := cp.Vector{X: r.X * m.Scale.X, Y: r.Y * m.Scale.Y}
	return s.Add(m.Position)
}

// pointInTriangle tests p against triangle abc using barycentric
// coordinates. Points on an edge count as inside.
func pointInTriangle(p, a, b, c cp.Vector) bool {
	v0 := c.Sub(a)
	v1 := b.Sub(a)
	v2 := p.Sub(a)

	dot00 := v0.Dot(v0)
	dot01 := v0.Dot(v1)
	dot02 := v0.Dot(v2)
	dot11 := v1.Dot(v1)
	dot12 := v1.Dot(v2)

	denom := dot00*dot11 - dot01*dot01
	if denom == 0 {
		return false
	}
	inv := 1 / denom
	u := (dot11*dot02 - dot01*dot12) * inv
	v := (dot00*dot12 - dot01*dot02) * inv
	return u >= 0 && v >= 0 && u+v <= 1
}

// meshOverlapsBox is the narrow-phase test between a mesh owned by m and
// an axis-aligned box: a mesh vertex inside the box, or a box corner
// inside a mesh triangle.
func meshOverlapsBox(mesh *component.Mesh, m *component.Motion, box cp.BB) bool {
	world := make([]cp.Vector, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		world[i] = transformVertex(m, v)
		if boxContains(box, world[i]) {
			return true
		}
	}

	corners := boxCorners(box)
	for t := 0; t < mesh.Triangles(); t++ {
		i0, i1, i2 := mesh.Indices[3*t], mesh.Indices[3*t+1], mesh.Indices[3*t+2]
		if i0 < 0 || i1 < 0 || i2 < 0 || i0 >= len(world) || i1 >= len(world) || i2 >= len(world) {
			continue
		}
		a, b, c := world[i0], world[i1], world[i2]
		for _, p := range corners {
			if pointInTriangle(p, a, b, c) {
				return true
			}
		}
	}
	return false
}

func sign(v, eps float64) float64 {
	switch {
	case v > eps:
		return 1
	case v < -eps:
		return -1
	}
	return 0
}
