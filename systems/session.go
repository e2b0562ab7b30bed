package systems

import (
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/sealant/config"
)

// Phase is the session state.
type Phase uint8

const (
	PhaseIntro Phase = iota
	PhasePlaying
	PhaseWon
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIntro:
		return "intro"
	case PhasePlaying:
		return "playing"
	case PhaseWon:
		return "won"
	default:
		return "unknown"
	}
}

// Session owns one wound mask, coverage grid, and droplet pool, and runs
// the intro -> playing -> won state machine over them. All mutation
// happens inside Step; input setters only record the latest snapshot
// (last writer wins, read once per tick).
type Session struct {
	cfg *config.Config
	rng *rand.Rand

	mask     *Mask
	coverage *Coverage
	pool     *Pool

	phase       Phase
	elapsed     float64
	coveragePct float64
	impactCount int

	intensity int
	material  int

	aimX, aimZ float32
	aimValid   bool
	spraying   bool

	emitCarry float64 // fractional droplets owed from previous ticks

	finalElapsed float64
	finalImpacts int

	depositTicks int // ticks where a deposit changed the grid, for telemetry
	emittedTotal int
}

// NewSession creates a session in the intro phase with a freshly
// generated wound.
func NewSession(cfg *config.Config, seed int64) *Session {
	s := &Session{
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(seed)),
		intensity: clampInt(3, cfg.Spray.MinIntensity, cfg.Spray.MaxIntensity),
		pool:      NewPool(cfg, seed+1),
	}
	s.regenerate()
	s.coverage = NewCoverage(s.mask, cfg)
	return s
}

// regenerate replaces the wound mask and logs how it was produced.
func (s *Session) regenerate() {
	mask, stats := GenerateMask(s.rng, s.cfg)
	s.mask = mask

	if stats.Fallback {
		slog.Warn("wound_mask_fallback",
			"attempts", stats.Attempts,
			"live_cells", mask.Live(),
		)
	} else {
		slog.Info("wound_mask",
			"archetype", stats.Kind.String(),
			"attempts", stats.Attempts,
			"live_cells", mask.Live(),
		)
	}
}

// Start begins play. Only valid from the intro phase; anything else is
// ignored (won requires an explicit Reset first).
func (s *Session) Start() {
	if s.phase != PhaseIntro {
		return
	}
	s.phase = PhasePlaying
	slog.Info("session_start", "live_cells", s.mask.Live())
}

// Reset regenerates the wound, clears coverage and droplets, and zeroes
// counters. The session returns to intro; play resumes only via Start.
func (s *Session) Reset() {
	s.regenerate()
	s.coverage.Reset(s.mask)
	s.pool.DeactivateAll()

	s.phase = PhaseIntro
	s.elapsed = 0
	s.coveragePct = 0
	s.impactCount = 0
	s.spraying = false
	s.emitCarry = 0
	s.finalElapsed = 0
	s.finalImpacts = 0
	s.depositTicks = 0
	s.emittedTotal = 0
}

// SetAim records the latest world-space aim point. valid is false when
// the pointer ray misses the wound plane; deposits and emission are
// disabled for such ticks.
func (s *Session) SetAim(x, z float32, valid bool) {
	s.aimX = x
	s.aimZ = z
	s.aimValid = valid
}

// SetSpraying sets the trigger state.
func (s *Session) SetSpraying(on bool) {
	if s.phase != PhasePlaying {
		return
	}
	s.spraying = on
}

// SetIntensity selects the spray intensity, clamped to the configured
// range.
func (s *Session) SetIntensity(level int) {
	s.intensity = clampInt(level, s.cfg.Spray.MinIntensity, s.cfg.Spray.MaxIntensity)
}

// SetMaterial selects the coating material by index.
func (s *Session) SetMaterial(idx int) {
	if idx < 0 || idx >= len(s.cfg.Materials) {
		return
	}
	s.material = idx
}

// Step advances the simulation by dt seconds and returns the droplet
// impacts that occurred. dt is clamped to the configured max step so a
// backgrounded window cannot produce an unstable jump.
func (s *Session) Step(dt float64) []Impact {
	if dt <= 0 {
		return nil
	}
	if max := s.cfg.Session.MaxStep; dt > max {
		dt = max
	}

	if s.phase == PhasePlaying {
		s.elapsed += dt
	}

	active := s.phase == PhasePlaying && s.spraying && s.aimValid
	if active {
		s.depositAndEmit(dt)
	} else {
		s.emitCarry = 0
	}

	impacts := s.pool.Advance(float32(dt), active)
	s.impactCount += len(impacts)

	if s.phase == PhasePlaying && s.coveragePct >= s.cfg.Session.WinThreshold {
		s.win()
	}

	return impacts
}

// depositAndEmit applies one tick of spraying at the current aim point.
func (s *Session) depositAndEmit(dt float64) {
	mat := s.cfg.Materials[s.material]

	changed := s.coverage.Deposit(
		s.rng,
		s.aimX, s.aimZ,
		float32(s.cfg.Spray.WorldRadius),
		s.intensity,
		float32(mat.RateMult),
		float32(dt),
	)
	if changed {
		s.coveragePct = s.coverage.Percent()
		s.depositTicks++
	}

	// Emission rate scales with intensity; fractional droplets carry
	// over so low rates still emit.
	s.emitCarry += s.cfg.Particles.EmitPerSecond * float64(s.intensity) / 3.0 * dt
	count := int(s.emitCarry)
	if count > 0 {
		s.emitCarry -= float64(count)
		s.pool.SetIntensity(s.intensity)
		s.pool.SetMaterial(s.material)

		// Nozzle loosely follows the aim point from above the plane.
		ox := s.aimX * 0.35
		oy := float32(s.cfg.World.NozzleY)
		oz := float32(s.cfg.World.NozzleZ) + s.aimZ*0.35
		s.pool.Emit(ox, oy, oz, s.aimX, s.aimZ, count)
		s.emittedTotal += count
	}
}

// win freezes the session on reaching the coverage threshold.
func (s *Session) win() {
	s.phase = PhaseWon
	s.spraying = false
	s.finalElapsed = s.elapsed
	s.finalImpacts = s.impactCount

	slog.Info("session_won",
		"elapsed_sec", s.finalElapsed,
		"impacts", s.finalImpacts,
		"saturated_cells", s.coverage.SaturatedCells(),
		"live_cells", s.mask.Live(),
	)
}

// Phase returns the current session phase.
func (s *Session) Phase() Phase { return s.phase }

// CoveragePercent returns the last recomputed aggregate coverage.
func (s *Session) CoveragePercent() float64 { return s.coveragePct }

// Elapsed returns play time in seconds; frozen after the win.
func (s *Session) Elapsed() float64 {
	if s.phase == PhaseWon {
		return s.finalElapsed
	}
	return s.elapsed
}

// Impacts returns the cumulative droplet impact count.
func (s *Session) Impacts() int { return s.impactCount }

// Intensity returns the selected intensity level.
func (s *Session) Intensity() int { return s.intensity }

// Material returns the selected material index.
func (s *Session) Material() int { return s.material }

// Spraying reports the trigger state.
func (s *Session) Spraying() bool { return s.spraying }

// AimValid reports whether the latest aim snapshot hit the wound plane.
func (s *Session) AimValid() bool { return s.aimValid }

// Aim returns the latest world-space aim point.
func (s *Session) Aim() (float32, float32) { return s.aimX, s.aimZ }

// Mask returns the current wound mask.
func (s *Session) Mask() *Mask { return s.mask }

// Coverage returns the coverage grid.
func (s *Session) Coverage() *Coverage { return s.coverage }

// Pool returns the droplet pool.
func (s *Session) Pool() *Pool { return s.pool }

// DepositTicks returns how many ticks changed the grid, for telemetry.
func (s *Session) DepositTicks() int { return s.depositTicks }

// EmittedTotal returns the cumulative droplet emission count.
func (s *Session) EmittedTotal() int { return s.emittedTotal }
