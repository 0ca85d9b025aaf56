package blendlab

import (
	"math/rand"

	"github.com/gekko3d/blendlab/particles"
	"github.com/gekko3d/blendlab/sorting"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

type EmitterId string

// ParticleEmitter is the simulated particle pool plus the depth order it was
// last drawn in.
type ParticleEmitter struct {
	Id      EmitterId
	Enabled bool
	Pool    *particles.Pool

	sorter *sorting.SortCache
}

// Reset respawns the pool and drops the cached draw order.
func (em *ParticleEmitter) Reset() {
	em.Pool.Reset()
	em.sorter.Invalidate()
}

func (em *ParticleEmitter) SortStats() sorting.SortStats {
	return em.sorter.Stats()
}

// ParticleBuffers holds the live particles packed back-to-front. Version
// increases each time the buffers are repacked.
type ParticleBuffers struct {
	particles.Attributes
	Version uint64
}

type ParticleModule struct {
	Config particles.Config
	Center mgl32.Vec3
	Seed   int64
	// Rand overrides the Seed-derived source.
	Rand *rand.Rand
}

func (m ParticleModule) Install(app *App, cmd *Commands) {
	rng := m.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(m.Seed))
	}

	pool := particles.NewPool(m.Config, m.Center, rng)
	pool.Reset()

	emitter := &ParticleEmitter{
		Id:      EmitterId(uuid.NewString()),
		Enabled: true,
		Pool:    pool,
		sorter:  sorting.NewSortCache(),
	}
	ensureCamera(app, cmd)
	cmd.AddResources(emitter, &ParticleBuffers{})

	app.UseSystem(System(particleUpdateSystem).InStage(Update))
	app.UseSystem(System(particleSortSystem).InStage(PreRender))

	cmd.Logger().Infof("emitter %s: capacity %d, %d live after reset", emitter.Id, pool.Capacity(), pool.Live())
}

func particleUpdateSystem(em *ParticleEmitter, log Logger) {
	if !em.Enabled {
		return
	}
	em.Pool.Update()
	if log.DebugEnabled() {
		c := em.Pool.Counters()
		log.Debugf("emitter %s: tick %d live=%d spawned=%d expired=%d", em.Id, c.Ticks, em.Pool.Live(), c.Spawned, c.Expired)
	}
}

// particleSortSystem re-sorts every frame: particles move and so may the camera.
func particleSortSystem(em *ParticleEmitter, cam *OrbitCamera, buf *ParticleBuffers) {
	order := em.sorter.Sort(cam.ViewMatrix(), em.Pool)
	em.Pool.PackAttributes(order, &buf.Attributes)
	em.Pool.ClearDirty()
	buf.Version++
}
