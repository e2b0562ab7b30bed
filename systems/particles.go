package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/sealant/components"
	"github.com/pthm-cable/sealant/config"
)

// Impact is a droplet hitting the wound plane. The simulation core emits
// these; the renderer consumes them for splat painting.
type Impact struct {
	X, Z     float32
	Material int
}

// ParticleView is a point-in-time droplet snapshot for rendering.
type ParticleView struct {
	X, Y, Z float32
	Alpha   float32
	Size    float32
}

// Pool is a fixed-capacity droplet pool on the ECS. Every slot entity is
// created once at construction; emission recycles inactive slots and
// advancement toggles them back off. The pool never grows.
type Pool struct {
	world  *ecs.World
	mapper *ecs.Map4[
		components.Position,
		components.Velocity,
		components.Sprite,
		components.Lifetime,
	]
	filter *ecs.Filter4[
		components.Position,
		components.Velocity,
		components.Sprite,
		components.Lifetime,
	]
	lifeMap *ecs.Map1[components.Lifetime]

	slots []ecs.Entity
	rng   *rand.Rand

	planeY       float32
	baseSpeed    float32
	speedPerLvl  float32
	maxAge       float32
	driftFreq    float32
	driftAmp     float32
	targetJitter float32
	alphaStart   float32
	alphaFloor   float32
	fadeRate     float32

	intensity int
	material  int

	active  int
	dropped int // emission requests refused by a full pool

	impacts []Impact
}

// NewPool creates a droplet pool with every slot pre-spawned inactive.
func NewPool(cfg *config.Config, seed int64) *Pool {
	p := &Pool{
		rng: rand.New(rand.NewSource(seed)),

		planeY:       float32(cfg.World.PlaneHeight),
		baseSpeed:    float32(cfg.Particles.BaseSpeed),
		speedPerLvl:  float32(cfg.Particles.SpeedPerLevel),
		maxAge:       float32(cfg.Particles.MaxAge),
		driftFreq:    float32(cfg.Particles.DriftFreq),
		driftAmp:     float32(cfg.Particles.DriftAmp),
		targetJitter: float32(cfg.Particles.TargetJitter),
		alphaStart:   float32(cfg.Particles.AlphaStart),
		alphaFloor:   float32(cfg.Particles.AlphaFloor),
		fadeRate:     float32(cfg.Particles.FadeRate),

		intensity: cfg.Spray.MinIntensity,
	}

	p.world = ecs.NewWorld()
	p.mapper = ecs.NewMap4[
		components.Position,
		components.Velocity,
		components.Sprite,
		components.Lifetime,
	](p.world)
	p.filter = ecs.NewFilter4[
		components.Position,
		components.Velocity,
		components.Sprite,
		components.Lifetime,
	](p.world)
	p.lifeMap = ecs.NewMap1[components.Lifetime](p.world)

	size := cfg.Particles.PoolSize
	p.slots = make([]ecs.Entity, 0, size)
	for i := 0; i < size; i++ {
		pos := components.Position{}
		vel := components.Velocity{}
		sprite := components.Sprite{}
		life := components.Lifetime{}
		p.slots = append(p.slots, p.mapper.NewEntity(&pos, &vel, &sprite, &life))
	}

	return p
}

// SetIntensity sets the spray intensity level used for emission speed,
// aim scatter, and drift amplitude.
func (p *Pool) SetIntensity(level int) {
	p.intensity = level
}

// SetMaterial sets the material stamped onto impact events.
func (p *Pool) SetMaterial(idx int) {
	p.material = idx
}

// Emit activates up to count inactive slots aimed from the nozzle origin
// toward (targetX, targetZ) on the wound plane. A full pool silently
// drops the excess; exhaustion is expected under sustained spraying, not
// an error.
func (p *Pool) Emit(originX, originY, originZ, targetX, targetZ float32, count int) {
	if count <= 0 {
		return
	}

	lvl := float32(p.intensity)
	speed := p.baseSpeed + p.speedPerLvl*lvl
	scatter := p.targetJitter * lvl

	remaining := count
	for _, e := range p.slots {
		if remaining == 0 {
			break
		}
		life := p.lifeMap.Get(e)
		if life.Active {
			continue
		}

		pos, vel, sprite, _ := p.mapper.Get(e)

		pos.X = originX + (p.rng.Float32()-0.5)*0.02
		pos.Y = originY + (p.rng.Float32()-0.5)*0.02
		pos.Z = originZ + (p.rng.Float32()-0.5)*0.02

		tx := targetX + (p.rng.Float32()-0.5)*2*scatter
		tz := targetZ + (p.rng.Float32()-0.5)*2*scatter

		dx := tx - pos.X
		dy := p.planeY - pos.Y
		dz := tz - pos.Z
		inv := 1 / float32(math.Sqrt(float64(dx*dx+dy*dy+dz*dz)))
		vel.X = dx * inv * speed
		vel.Y = dy * inv * speed
		vel.Z = dz * inv * speed

		sprite.Alpha = p.alphaStart
		sprite.Size = 0.006 + p.rng.Float32()*0.008
		sprite.Phase = p.rng.Float32() * 2 * math.Pi

		life.Age = 0
		life.Active = true
		p.active++
		remaining--
	}

	p.dropped += remaining
}

// Advance integrates all active droplets by dt and returns the impacts
// that occurred this tick. The returned slice is reused between calls.
// When spraying is false every active droplet fades out instead of flying
// its full ballistic arc.
func (p *Pool) Advance(dt float32, spraying bool) []Impact {
	p.impacts = p.impacts[:0]
	if dt <= 0 {
		return p.impacts
	}

	fade := float32(math.Exp(float64(-p.fadeRate * dt)))
	amp := p.driftAmp * float32(p.intensity)

	query := p.filter.Query()
	for query.Next() {
		pos, vel, sprite, life := query.Get()
		if !life.Active {
			continue
		}

		life.Age += dt

		// Lateral oscillation added to the horizontal velocity before
		// integrating; it does not accumulate into the stored velocity.
		osc := life.Age*p.driftFreq + sprite.Phase
		driftX := float32(math.Sin(float64(osc))) * amp
		driftZ := float32(math.Cos(float64(osc))) * amp

		prevY := pos.Y
		pos.X += (vel.X + driftX) * dt
		pos.Y += vel.Y * dt
		pos.Z += (vel.Z + driftZ) * dt

		if prevY > p.planeY && pos.Y <= p.planeY {
			p.impacts = append(p.impacts, Impact{X: pos.X, Z: pos.Z, Material: p.material})
			life.Active = false
			p.active--
			continue
		}

		if !spraying || life.Age > p.maxAge {
			sprite.Alpha *= fade
			if sprite.Alpha < p.alphaFloor {
				life.Active = false
				p.active--
			}
		}
	}

	return p.impacts
}

// Snapshot appends a view of every active droplet to buf and returns it.
func (p *Pool) Snapshot(buf []ParticleView) []ParticleView {
	query := p.filter.Query()
	for query.Next() {
		pos, _, sprite, life := query.Get()
		if !life.Active {
			continue
		}
		buf = append(buf, ParticleView{
			X: pos.X, Y: pos.Y, Z: pos.Z,
			Alpha: sprite.Alpha,
			Size:  sprite.Size,
		})
	}
	return buf
}

// DeactivateAll recycles every slot without freeing pool capacity and
// clears the drop counter, so a fresh session starts its own tally.
func (p *Pool) DeactivateAll() {
	query := p.filter.Query()
	for query.Next() {
		_, _, _, life := query.Get()
		life.Active = false
	}
	p.active = 0
	p.dropped = 0
}

// ActiveCount returns the number of live droplets.
func (p *Pool) ActiveCount() int {
	return p.active
}

// Capacity returns the fixed pool size.
func (p *Pool) Capacity() int {
	return len(p.slots)
}

// Dropped returns the count of emission requests refused because the
// pool was full, since construction or the last DeactivateAll.
func (p *Pool) Dropped() int {
	return p.dropped
}
