package blendlab

import (
	"math/rand"
	"testing"

	"github.com/gekko3d/blendlab/particles"
	"github.com/gekko3d/blendlab/sorting"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParticleApp(t *testing.T, cfg particles.Config) *App {
	t.Helper()
	cam := OrbitCamera{Distance: 15, Pitch: 0.3, OrbitSpeed: 0.05}
	return NewAppBuilder().
		UseModule(
			CameraModule{Camera: cam},
			ParticleModule{Config: cfg, Center: mgl32.Vec3{0, 1, 0}, Rand: rand.New(rand.NewSource(9))},
		).
		Build()
}

func TestParticleModule_InstallResets(t *testing.T) {
	cfg := particles.DefaultConfig()
	cfg.Capacity = 100
	app := newParticleApp(t, cfg)

	em, ok := Resource[ParticleEmitter](app)
	require.True(t, ok)
	assert.Equal(t, 20, em.Pool.Live())
	assert.True(t, em.Enabled)

	_, err := uuid.Parse(string(em.Id))
	assert.NoError(t, err)
}

func TestParticleModule_FramesPackBackToFront(t *testing.T) {
	cfg := particles.DefaultConfig()
	cfg.Capacity = 200
	cfg.SpeedMin, cfg.SpeedMax = 0.05, 0.2
	app := newParticleApp(t, cfg)

	em, _ := Resource[ParticleEmitter](app)
	buf, _ := Resource[ParticleBuffers](app)
	cam, _ := Resource[OrbitCamera](app)

	for frame := 1; frame <= 30; frame++ {
		app.Step()

		require.Equal(t, uint64(frame), buf.Version)
		require.Equal(t, em.Pool.Live(), buf.Count())
		require.LessOrEqual(t, buf.Count(), cfg.Capacity)
		require.False(t, em.Pool.Dirty())

		view := cam.ViewMatrix()
		depths := sorting.FlatPoints(buf.Positions)
		for k := 1; k < depths.Len(); k++ {
			require.LessOrEqual(t, depths.Depth(view, k-1), depths.Depth(view, k))
		}
		for _, a := range buf.Alphas {
			require.True(t, a > 0 && a <= 1, "alpha %v out of range", a)
		}
	}

	stats := em.SortStats()
	assert.Equal(t, 1, stats.FullSorts)
	assert.Equal(t, 29, stats.IncrementalSorts)
}

func TestParticleModule_DisabledEmitterHoldsState(t *testing.T) {
	cfg := particles.DefaultConfig()
	cfg.Capacity = 50
	app := newParticleApp(t, cfg)

	em, _ := Resource[ParticleEmitter](app)
	em.Enabled = false
	app.Step()
	assert.Equal(t, 10, em.Pool.Live())
	assert.Zero(t, em.Pool.Counters().Ticks)

	em.Enabled = true
	app.Step()
	em.Reset()
	assert.Equal(t, 10, em.Pool.Live())

	app.Step()
	assert.Equal(t, 2, em.SortStats().FullSorts, "reset must force a full sort")
}
