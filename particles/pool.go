// Package particles simulates a fixed-capacity pool of point-sprite particles.
// Each tick moves, ages and fades live particles, removes the expired ones and
// spawns a random batch of replacements at the emitter center.
package particles

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// texCoupling ties texture scrolling to particle motion.
const texCoupling = 0.03

// Particle is a copy of one pool slot.
type Particle struct {
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Speed     float32
	Size      float32
	TexOffset mgl32.Vec2
	Alpha     float32
	Age       int
	Lifetime  int
}

// Counters are running totals since the pool was created.
type Counters struct {
	Spawned uint64
	Expired uint64
	Ticks   uint64
}

// Pool owns the particle attributes as parallel slices plus a live count.
// Slots [0, Live()) are alive; their order changes whenever one expires.
type Pool struct {
	Config Config

	center mgl32.Vec3
	rng    *rand.Rand

	pos   []mgl32.Vec3
	dir   []mgl32.Vec3
	speed []float32
	size  []float32
	tex   []mgl32.Vec2
	alpha []float32
	age   []int
	life  []int

	live     int
	capacity int
	dirty    bool
	counters Counters
}

// NewPool creates an empty pool emitting from center. Call Reset to populate it.
// A nil rng uses a time-independent default source.
func NewPool(cfg Config, center mgl32.Vec3, rng *rand.Rand) *Pool {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	p := &Pool{
		Config: cfg,
		center: center,
		rng:    rng,
	}
	p.ensureCapacity()
	return p
}

// ensureCapacity resizes the backing store when Config.Capacity changed,
// keeping the live particles that still fit.
func (p *Pool) ensureCapacity() {
	c := p.Config.Capacity
	if c < 0 {
		c = 0
	}
	if c == p.capacity && p.pos != nil {
		return
	}
	keep := min(p.live, c)

	pos := make([]mgl32.Vec3, c)
	dir := make([]mgl32.Vec3, c)
	speed := make([]float32, c)
	size := make([]float32, c)
	tex := make([]mgl32.Vec2, c)
	alpha := make([]float32, c)
	age := make([]int, c)
	life := make([]int, c)

	copy(pos, p.pos[:keep])
	copy(dir, p.dir[:keep])
	copy(speed, p.speed[:keep])
	copy(size, p.size[:keep])
	copy(tex, p.tex[:keep])
	copy(alpha, p.alpha[:keep])
	copy(age, p.age[:keep])
	copy(life, p.life[:keep])

	p.pos, p.dir, p.speed, p.size = pos, dir, speed, size
	p.tex, p.alpha, p.age, p.life = tex, alpha, age, life
	p.capacity = c
	p.live = keep
	p.dirty = true
}

// Reset respawns the pool at Config.InitialCount() fresh particles.
func (p *Pool) Reset() {
	p.ensureCapacity()
	p.live = min(p.Config.InitialCount(), p.capacity)
	for i := 0; i < p.live; i++ {
		p.initializeParticle(i)
	}
	p.counters.Spawned += uint64(p.live)
	p.dirty = true
}

func (p *Pool) initializeParticle(i int) {
	cfg := p.Config
	p.pos[i] = p.center
	p.size[i] = float32(randomInt(p.rng, cfg.SizeMin, cfg.SizeMax))
	p.tex[i] = mgl32.Vec2{p.rng.Float32(), p.rng.Float32()}
	p.alpha[i] = 1
	p.dir[i] = randomDirection(p.rng)
	p.speed[i] = randomFloat(p.rng, cfg.SpeedMin, cfg.SpeedMax)
	p.life[i] = randomInt(p.rng, cfg.LifetimeMin, cfg.LifetimeMax)
	p.age[i] = 0
}

// Update advances the simulation by one tick.
func (p *Pool) Update() {
	p.ensureCapacity()
	cfg := p.Config

	for i := 0; i < p.live; i++ {
		step := p.dir[i].Mul(p.speed[i])
		p.pos[i] = p.pos[i].Add(step)
		p.tex[i] = p.tex[i].Add(mgl32.Vec2{step.X(), step.Y()}.Mul(texCoupling))
		p.age[i]++
		p.alpha[i] = Alpha(p.age[i], p.life[i])
	}

	// The slot is refilled from the end, so it is checked again.
	i := 0
	for i < p.live {
		if p.age[i] >= p.life[i] {
			p.killAt(i)
			p.counters.Expired++
			continue
		}
		i++
	}

	n := randomInt(p.rng, cfg.SpawnMin, cfg.SpawnMax)
	if free := p.capacity - p.live; n > free {
		n = free
	}
	for ; n > 0; n-- {
		p.initializeParticle(p.live)
		p.live++
		p.counters.Spawned++
	}

	p.counters.Ticks++
	p.dirty = true
}

// Swap-remove one particle
func (p *Pool) killAt(i int) {
	last := p.live - 1
	p.pos[i] = p.pos[last]
	p.size[i] = p.size[last]
	p.tex[i] = p.tex[last]
	p.alpha[i] = p.alpha[last]
	p.dir[i] = p.dir[last]
	p.speed[i] = p.speed[last]
	p.age[i] = p.age[last]
	p.life[i] = p.life[last]
	p.live--
}

// Alpha fades a particle over its life: 1 at birth, cos(t*pi/2) in between
// and exactly 0 once age reaches lifetime. A zero lifetime counts as fully aged.
func Alpha(age, lifetime int) float32 {
	if lifetime <= 0 || age >= lifetime {
		return 0
	}
	t := float32(age) / float32(lifetime)
	return math32.Cos(t * math32.Pi / 2)
}

func (p *Pool) Live() int { return p.live }

func (p *Pool) Capacity() int { return p.capacity }

func (p *Pool) Center() mgl32.Vec3 { return p.center }

func (p *Pool) Counters() Counters { return p.counters }

// Dirty reports whether attributes changed since the last ClearDirty.
func (p *Pool) Dirty() bool { return p.dirty }

func (p *Pool) ClearDirty() { p.dirty = false }

// At returns a copy of live slot i.
func (p *Pool) At(i int) Particle {
	return Particle{
		Position:  p.pos[i],
		Direction: p.dir[i],
		Speed:     p.speed[i],
		Size:      p.size[i],
		TexOffset: p.tex[i],
		Alpha:     p.alpha[i],
		Age:       p.age[i],
		Lifetime:  p.life[i],
	}
}

// Len and Depth let the live particles be depth sorted directly.
func (p *Pool) Len() int { return p.live }

func (p *Pool) Depth(view mgl32.Mat4, i int) float32 {
	return view.Mul4x1(p.pos[i].Vec4(1)).Z()
}
