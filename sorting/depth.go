package sorting

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Source yields camera-space depths for a set of drawable primitives.
type Source interface {
	Len() int
	Depth(view mgl32.Mat4, i int) float32
}

// PointDepth is the camera-space Z of p.
func PointDepth(view mgl32.Mat4, p mgl32.Vec3) float32 {
	return view.Mul4x1(p.Vec4(1)).Z()
}

// TriangleDepth is the minimum camera-space Z of the three vertices, not the
// centroid depth. Draw order of intersecting translucent faces depends on it.
func TriangleDepth(view mgl32.Mat4, tri [3]mgl32.Vec3) float32 {
	d := PointDepth(view, tri[0])
	if z := PointDepth(view, tri[1]); z < d {
		d = z
	}
	if z := PointDepth(view, tri[2]); z < d {
		d = z
	}
	return d
}

// Points adapts a slice of positions.
type Points []mgl32.Vec3

func (p Points) Len() int { return len(p) }

func (p Points) Depth(view mgl32.Mat4, i int) float32 { return PointDepth(view, p[i]) }

// Triangles adapts a slice of world-space triangles.
type Triangles [][3]mgl32.Vec3

func (t Triangles) Len() int { return len(t) }

func (t Triangles) Depth(view mgl32.Mat4, i int) float32 { return TriangleDepth(view, t[i]) }

// FlatPoints adapts packed xyz triplets, the layout of a position attribute buffer.
type FlatPoints []float32

func (f FlatPoints) Len() int { return len(f) / 3 }

func (f FlatPoints) Depth(view mgl32.Mat4, i int) float32 {
	return PointDepth(view, mgl32.Vec3{f[3*i], f[3*i+1], f[3*i+2]})
}
