package blendlab

import (
	"fmt"

	"github.com/gekko3d/blendlab/sorting"
	"github.com/go-gl/mathgl/mgl32"
)

// Floats per triangle in the packed buffers.
const (
	TriangleVertexFloats = 9
	TriangleColorFloats  = 12
)

// TranslucentMesh is a set of alpha-blended triangles in model space with
// one RGBA colour each.
type TranslucentMesh struct {
	Model mgl32.Mat4

	triangles sorting.Triangles
	vertices  []float32
	colors    []float32
	sorter    *sorting.SortCache
}

func NewTranslucentMesh(triangles [][3]mgl32.Vec3, colors [][4]float32) (*TranslucentMesh, error) {
	mesh := &TranslucentMesh{
		Model:  mgl32.Ident4(),
		sorter: sorting.NewSortCache(),
	}
	if err := mesh.SetTriangles(triangles, colors); err != nil {
		return nil, err
	}
	return mesh, nil
}

// SetTriangles replaces the geometry. The next sort is a full sort.
func (m *TranslucentMesh) SetTriangles(triangles [][3]mgl32.Vec3, colors [][4]float32) error {
	if len(colors) != len(triangles) {
		return fmt.Errorf("translucent mesh: %d triangles but %d colours", len(triangles), len(colors))
	}
	m.triangles = append(m.triangles[:0], triangles...)
	m.vertices = m.vertices[:0]
	m.colors = m.colors[:0]
	for i, tri := range triangles {
		for _, v := range tri {
			m.vertices = append(m.vertices, v[0], v[1], v[2])
			m.colors = append(m.colors, colors[i][:]...)
		}
	}
	m.sorter.Invalidate()
	return nil
}

func (m *TranslucentMesh) Len() int { return len(m.triangles) }

func (m *TranslucentMesh) SortStats() sorting.SortStats {
	return m.sorter.Stats()
}

// TriangleBuffers holds the mesh packed back-to-front: 9 position floats and
// 12 colour floats (RGBA per vertex) per triangle.
type TriangleBuffers struct {
	Vertices []float32
	Colors   []float32
	Order    []int
	Version  uint64
}

func (b *TriangleBuffers) Count() int { return len(b.Order) }

type TransparencyModule struct {
	Triangles [][3]mgl32.Vec3
	Colors    [][4]float32
	// Model defaults to identity when left zero.
	Model mgl32.Mat4
}

func (m TransparencyModule) Install(app *App, cmd *Commands) {
	mesh, err := NewTranslucentMesh(m.Triangles, m.Colors)
	if err != nil {
		panic(err)
	}
	if m.Model != (mgl32.Mat4{}) {
		mesh.Model = m.Model
	}
	ensureCamera(app, cmd)
	cmd.AddResources(mesh, &TriangleBuffers{})

	app.UseSystem(System(triangleSortSystem).InStage(PreRender))

	cmd.Logger().Infof("translucent mesh: %d triangles", mesh.Len())
}

func triangleSortSystem(mesh *TranslucentMesh, cam *OrbitCamera, buf *TriangleBuffers) {
	modelView := cam.ViewMatrix().Mul4(mesh.Model)
	order := mesh.sorter.Sort(modelView, mesh.triangles)

	buf.Order = append(buf.Order[:0], order...)
	buf.Vertices = sorting.Gather(buf.Vertices, mesh.vertices, order, TriangleVertexFloats)
	buf.Colors = sorting.Gather(buf.Colors, mesh.colors, order, TriangleColorFloats)
	buf.Version++
}

// TranslucentCube builds the 12 triangles of an axis-aligned cube centred on
// the origin, one colour per face.
func TranslucentCube(half, alpha float32) ([][3]mgl32.Vec3, [][4]float32) {
	h := half
	corners := [8]mgl32.Vec3{
		{-h, -h, -h}, {h, -h, -h}, {h, h, -h}, {-h, h, -h},
		{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h},
	}
	faces := [6][4]int{
		{4, 5, 6, 7}, // +z
		{1, 0, 3, 2}, // -z
		{5, 1, 2, 6}, // +x
		{0, 4, 7, 3}, // -x
		{7, 6, 2, 3}, // +y
		{0, 1, 5, 4}, // -y
	}
	palette := [6][3]float32{
		{1, 0, 0}, {0, 1, 0}, {0, 0, 1},
		{1, 1, 0}, {0, 1, 1}, {1, 0, 1},
	}

	tris := make([][3]mgl32.Vec3, 0, 12)
	colors := make([][4]float32, 0, 12)
	for f, q := range faces {
		c := [4]float32{palette[f][0], palette[f][1], palette[f][2], alpha}
		tris = append(tris,
			[3]mgl32.Vec3{corners[q[0]], corners[q[1]], corners[q[2]]},
			[3]mgl32.Vec3{corners[q[0]], corners[q[2]], corners[q[3]]},
		)
		colors = append(colors, c, c)
	}
	return tris, colors
}
