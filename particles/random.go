package particles

import (
	"math"
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// randomInt draws an integer in [min, max]. An inverted range does not panic;
// it yields values between max+1 and min.
func randomInt(rng *rand.Rand, min, max int) int {
	return min + int(math.Floor(rng.Float64()*float64(max-min+1)))
}

func randomFloat(rng *rand.Rand, min, max float32) float32 {
	return min + rng.Float32()*(max-min)
}

// randomDirection normalizes three independent uniforms in [-1,1]. The result
// is biased toward the cube corners and not uniform over the sphere.
func randomDirection(rng *rand.Rand) mgl32.Vec3 {
	v := mgl32.Vec3{
		rng.Float32()*2 - 1,
		rng.Float32()*2 - 1,
		rng.Float32()*2 - 1,
	}
	l := math32.Sqrt(v.Dot(v))
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}
