package sorting

// Gather copies stride-sized records of src into dst in the given order and
// returns dst resized to len(order)*stride. dst is reused when large enough;
// the caller uploads the whole buffer each frame.
func Gather(dst, src []float32, order []int, stride int) []float32 {
	size := len(order) * stride
	if cap(dst) < size {
		dst = make([]float32, size)
	}
	dst = dst[:size]
	for k, idx := range order {
		copy(dst[k*stride:(k+1)*stride], src[idx*stride:(idx+1)*stride])
	}
	return dst
}
