// Package sorting orders translucent primitives back-to-front for alpha
// blending without order-independent transparency.
//
// Orders are ascending camera-space Z: with the camera looking down -Z the
// farthest primitive is drawn first.
package sorting

import (
	"cmp"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// SortStats counts how each Sort call was served.
type SortStats struct {
	FullSorts        int
	IncrementalSorts int
	// Shifts is the number of element moves made by insertion sorts.
	Shifts int
}

// SortCache keeps the previous frame's order so the next frame can be
// insertion-sorted. Objects move little between frames, the order is nearly
// sorted already and insertion sort runs close to O(N).
//
// A SortCache is owned by a single render loop and is not safe for
// concurrent use.
type SortCache struct {
	order  []int
	depths []float32
	primed bool
	stats  SortStats
}

func NewSortCache() *SortCache {
	return &SortCache{}
}

// Sort computes the back-to-front order of src under view. The returned slice
// is owned by the cache and valid until the next call.
func (c *SortCache) Sort(view mgl32.Mat4, src Source) []int {
	n := src.Len()

	if cap(c.depths) < n {
		c.depths = make([]float32, n)
	}
	c.depths = c.depths[:n]
	for i := 0; i < n; i++ {
		c.depths[i] = src.Depth(view, i)
	}

	if !c.primed {
		c.fullSort(n)
		return c.order
	}

	c.reconcile(n)
	c.insertionSort()
	c.stats.IncrementalSorts++
	return c.order
}

func (c *SortCache) fullSort(n int) {
	c.order = identity(c.order, n)
	slices.SortStableFunc(c.order, func(a, b int) int {
		return cmp.Compare(c.depths[a], c.depths[b])
	})
	c.primed = true
	c.stats.FullSorts++
}

// reconcile fits the previous order to n primitives: indices that no longer
// exist are dropped, new ones are appended at the end.
func (c *SortCache) reconcile(n int) {
	prev := len(c.order)
	if prev == n {
		return
	}
	kept := c.order[:0]
	for _, idx := range c.order {
		if idx < n {
			kept = append(kept, idx)
		}
	}
	for idx := prev; idx < n; idx++ {
		kept = append(kept, idx)
	}
	c.order = kept
}

func (c *SortCache) insertionSort() {
	order := c.order
	for i := 1; i < len(order); i++ {
		cur := order[i]
		d := c.depths[cur]
		j := i - 1
		for j >= 0 && c.depths[order[j]] > d {
			order[j+1] = order[j]
			j--
			c.stats.Shifts++
		}
		order[j+1] = cur
	}
}

// Order returns the most recent order.
func (c *SortCache) Order() []int { return c.order }

// Depth returns the depth computed for primitive i during the last Sort.
func (c *SortCache) Depth(i int) float32 { return c.depths[i] }

// Invalidate forces the next Sort to run a full sort, e.g. after the
// primitive set has been replaced wholesale.
func (c *SortCache) Invalidate() {
	c.primed = false
	c.order = c.order[:0]
}

func (c *SortCache) Stats() SortStats { return c.stats }

func identity(buf []int, n int) []int {
	if cap(buf) < n {
		buf = make([]int, n)
	}
	buf = buf[:n]
	for i := range buf {
		buf[i] = i
	}
	return buf
}
