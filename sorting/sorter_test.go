package sorting

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomPoints(rng *rand.Rand, n int) Points {
	pts := make(Points, n)
	for i := range pts {
		pts[i] = mgl32.Vec3{
			rng.Float32()*20 - 10,
			rng.Float32()*20 - 10,
			rng.Float32()*20 - 10,
		}
	}
	return pts
}

func testView() mgl32.Mat4 {
	return mgl32.LookAtV(
		mgl32.Vec3{3, 4, 25},
		mgl32.Vec3{0, 0, 0},
		mgl32.Vec3{0, 1, 0},
	)
}

func requirePermutation(t *testing.T, order []int, n int) {
	t.Helper()
	require.Len(t, order, n)
	seen := make([]bool, n)
	for _, idx := range order {
		require.True(t, idx >= 0 && idx < n, "index %d out of range", idx)
		require.False(t, seen[idx], "index %d repeated", idx)
		seen[idx] = true
	}
}

func requireBackToFront(t *testing.T, view mgl32.Mat4, src Source, order []int) {
	t.Helper()
	for k := 1; k < len(order); k++ {
		prev := src.Depth(view, order[k-1])
		cur := src.Depth(view, order[k])
		require.LessOrEqual(t, prev, cur, "depth decreases at position %d", k)
	}
}

func TestSortCache_FullThenIncremental(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	view := testView()
	pts := randomPoints(rng, 500)

	cache := NewSortCache()
	order := cache.Sort(view, pts)
	requirePermutation(t, order, len(pts))
	requireBackToFront(t, view, pts, order)
	assert.Equal(t, 1, cache.Stats().FullSorts)

	for frame := 0; frame < 10; frame++ {
		for i := range pts {
			pts[i] = pts[i].Add(mgl32.Vec3{
				rng.Float32()*0.2 - 0.1,
				rng.Float32()*0.2 - 0.1,
				rng.Float32()*0.2 - 0.1,
			})
		}
		order = cache.Sort(view, pts)
		requirePermutation(t, order, len(pts))
		requireBackToFront(t, view, pts, order)
	}

	stats := cache.Stats()
	assert.Equal(t, 1, stats.FullSorts)
	assert.Equal(t, 10, stats.IncrementalSorts)
}

func TestSortCache_StaticOrderIsStable(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	view := testView()
	pts := randomPoints(rng, 64)

	cache := NewSortCache()
	first := append([]int(nil), cache.Sort(view, pts)...)
	shifts := cache.Stats().Shifts

	second := cache.Sort(view, pts)
	assert.Equal(t, first, second)
	assert.Equal(t, shifts, cache.Stats().Shifts, "sorted input must not move")
}

func TestSortCache_TrianglesUseNearestVertexDepth(t *testing.T) {
	// Centroid depths would order these B, A, C.
	a := [3]mgl32.Vec3{{0, 0, -10}, {1, 0, 0}, {0, 1, 0}}
	b := [3]mgl32.Vec3{{0, 0, -5}, {1, 0, -5}, {0, 1, -5}}
	c := [3]mgl32.Vec3{{0, 0, -1}, {1, 0, -1}, {0, 1, -1}}
	tris := Triangles{c, a, b}

	view := mgl32.Ident4()
	assert.Equal(t, float32(-10), TriangleDepth(view, a))

	cache := NewSortCache()
	order := cache.Sort(view, tris)
	assert.Equal(t, []int{1, 2, 0}, order)

	// The incremental path must agree.
	order = cache.Sort(view, tris)
	assert.Equal(t, []int{1, 2, 0}, order)
}

func TestSortCache_Degenerate(t *testing.T) {
	view := testView()
	cache := NewSortCache()

	assert.Empty(t, cache.Sort(view, Points{}))
	assert.Equal(t, []int{0}, cache.Sort(view, Points{{1, 2, 3}}))
	assert.Empty(t, cache.Sort(view, Points{}))
}

func TestSortCache_CountChanges(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	view := testView()
	cache := NewSortCache()

	pts := randomPoints(rng, 40)
	cache.Sort(view, pts)

	shrunk := pts[:25]
	order := cache.Sort(view, shrunk)
	requirePermutation(t, order, 25)
	requireBackToFront(t, view, shrunk, order)

	grown := append(Points(nil), shrunk...)
	grown = append(grown, randomPoints(rng, 30)...)
	order = cache.Sort(view, grown)
	requirePermutation(t, order, 55)
	requireBackToFront(t, view, grown, order)

	assert.Equal(t, 1, cache.Stats().FullSorts)
}

func TestSortCache_Invalidate(t *testing.T) {
	view := testView()
	cache := NewSortCache()
	pts := Points{{0, 0, 1}, {0, 0, -1}}

	cache.Sort(view, pts)
	cache.Invalidate()
	order := cache.Sort(view, pts)

	assert.Equal(t, 2, cache.Stats().FullSorts)
	assert.Equal(t, []int{1, 0}, order)
	assert.Equal(t, PointDepth(view, pts[1]), cache.Depth(1))
}

func TestFlatPointsMatchesPoints(t *testing.T) {
	view := testView()
	pts := Points{{1, 2, 3}, {-4, 5, -6}}
	flat := FlatPoints{1, 2, 3, -4, 5, -6}

	require.Equal(t, pts.Len(), flat.Len())
	for i := range pts {
		assert.InDelta(t, pts.Depth(view, i), flat.Depth(view, i), 1e-6)
	}
}

func TestGather(t *testing.T) {
	src := []float32{
		0, 0, 0,
		1, 1, 1,
		2, 2, 2,
	}
	dst := Gather(nil, src, []int{2, 0, 1}, 3)
	assert.Equal(t, []float32{2, 2, 2, 0, 0, 0, 1, 1, 1}, dst)

	reused := Gather(dst, src, []int{1}, 3)
	assert.Equal(t, []float32{1, 1, 1}, reused)
	assert.Same(t, &dst[0], &reused[0])
}
