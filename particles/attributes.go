package particles

// Attributes are the flat per-vertex arrays a point-sprite draw consumes.
type Attributes struct {
	Positions  []float32 // xyz
	Sizes      []float32
	TexOffsets []float32 // uv
	Alphas     []float32
}

// Stride of each attribute, in floats.
const (
	PositionStride  = 3
	SizeStride      = 1
	TexOffsetStride = 2
	AlphaStride     = 1
)

// PackAttributes fills dst with the live particles in the given order,
// reusing its slices. A nil order packs slots in pool order.
func (p *Pool) PackAttributes(order []int, dst *Attributes) {
	n := p.live
	if order != nil {
		n = len(order)
	}
	dst.Positions = resize(dst.Positions, n*PositionStride)
	dst.Sizes = resize(dst.Sizes, n*SizeStride)
	dst.TexOffsets = resize(dst.TexOffsets, n*TexOffsetStride)
	dst.Alphas = resize(dst.Alphas, n*AlphaStride)

	for k := 0; k < n; k++ {
		i := k
		if order != nil {
			i = order[k]
		}
		pos := p.pos[i]
		dst.Positions[3*k] = pos[0]
		dst.Positions[3*k+1] = pos[1]
		dst.Positions[3*k+2] = pos[2]
		dst.Sizes[k] = p.size[i]
		dst.TexOffsets[2*k] = p.tex[i][0]
		dst.TexOffsets[2*k+1] = p.tex[i][1]
		dst.Alphas[k] = p.alpha[i]
	}
}

// Count is the number of particles packed.
func (a *Attributes) Count() int { return len(a.Sizes) }

func resize(buf []float32, n int) []float32 {
	if cap(buf) < n {
		return make([]float32, n)
	}
	return buf[:n]
}
