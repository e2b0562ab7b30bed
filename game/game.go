// Package game wires the session, rendering, UI, and telemetry together.
package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sealant/camera"
	"github.com/pthm-cable/sealant/config"
	"github.com/pthm-cable/sealant/renderer"
	"github.com/pthm-cable/sealant/systems"
	"github.com/pthm-cable/sealant/telemetry"
	"github.com/pthm-cable/sealant/ui"
)

// DT is the fixed simulation timestep in seconds.
const DT = 1.0 / 60.0

// Camera rig placement, shared by picking and rendering.
const (
	CamX, CamY, CamZ          = 0.0, 1.6, 1.8
	CamTargetX, CamTargetY    = 0.0, 0.0
	CamTargetZ                = 0.0
	CamFovYDeg        float32 = 45
)

// Options configures game construction.
type Options struct {
	Seed           int64
	Headless       bool
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
}

// Game holds the complete application state.
type Game struct {
	cfg  *config.Config
	opts Options

	session *systems.Session

	rig      *camera.Rig
	scene    *renderer.Scene
	wound    *renderer.WoundRenderer
	droplets *renderer.DropletRenderer
	splats   *renderer.SplatRenderer
	hud      *ui.HUD

	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager

	tick   int32
	paused bool

	// Presentation-level speed control; fractional scales accumulate
	// whole fixed steps
	timeScale float64
	stepAccum float64

	// The wound texture re-uploads only after a deposit or reset
	woundDirty bool

	// Summary written once per won session
	summaryWritten bool
}

// NewGameWithOptions creates a game instance. In headless mode no raylib
// resources are touched; the graphical pieces stay nil.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()

	g := &Game{
		cfg:           cfg,
		opts:          opts,
		session:       systems.NewSession(cfg, opts.Seed),
		collector:     telemetry.NewCollector(opts.StatsWindowSec, DT),
		perfCollector: telemetry.NewPerfCollector(int(1 / DT)),
		woundDirty:    true,
		timeScale:     1,
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		panic("creating output manager: " + err.Error())
	}
	g.outputManager = om
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		panic("writing config snapshot: " + err.Error())
	}

	if !opts.Headless {
		g.rig = camera.New(
			camera.Vec3{X: CamX, Y: CamY, Z: CamZ},
			camera.Vec3{X: CamTargetX, Y: CamTargetY, Z: CamTargetZ},
			CamFovYDeg,
			float32(cfg.Screen.Width), float32(cfg.Screen.Height),
		)
		g.scene = renderer.NewScene(
			g.rig,
			float32(cfg.World.PlaneHeight), float32(cfg.World.Diameter),
			float32(cfg.World.NozzleY), float32(cfg.World.NozzleZ),
		)
		g.wound = renderer.NewWoundRenderer(float32(cfg.World.PlaneHeight), float32(cfg.World.Diameter))
		g.droplets = renderer.NewDropletRenderer()
		g.splats = renderer.NewSplatRenderer(float32(cfg.World.PlaneHeight))
		g.hud = ui.NewHUD(cfg)
	}

	return g
}

// Update runs one frame of the interactive game.
func (g *Game) Update() {
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseInput)
	g.handleInput()

	if !g.paused {
		g.stepAccum += g.timeScale
		for g.stepAccum >= 1 {
			g.stepAccum--
			g.step(DT)
		}
	}

	g.perfCollector.EndTick()
	g.perfCollector.RecordFrame()
}

// UpdateHeadless runs one scripted simulation tick without input or
// rendering. The script sweeps the nozzle over the wound plane so soak
// runs exercise the whole pipeline.
func (g *Game) UpdateHeadless() {
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseInput)
	if g.session.Phase() == systems.PhaseIntro {
		g.session.Start()
	}
	g.session.SetAim(g.scriptedAim())
	g.session.SetSpraying(true)

	g.step(DT)

	g.perfCollector.EndTick()
}

// scriptedAim sweeps the aim point in a lawnmower pattern across the
// bounded wound area.
func (g *Game) scriptedAim() (float32, float32, bool) {
	half := g.cfg.Derived.HalfDiameter * 0.8
	t := float32(g.tick) * DT

	rowPeriod := float32(2.2)
	row := int(t / rowPeriod)
	frac := t/rowPeriod - float32(row)

	x := -half + 2*half*frac
	if row%2 == 1 {
		x = -x
	}
	rows := 7
	z := -half + 2*half*float32(row%rows)/float32(rows-1)
	return x, z, true
}

// step advances the simulation and telemetry by one tick.
func (g *Game) step(dt float64) {
	prevDeposits := g.session.DepositTicks()
	prevEmitted := g.session.EmittedTotal()

	g.perfCollector.StartPhase(telemetry.PhaseSimulate)
	impacts := g.session.Step(dt)

	g.perfCollector.StartPhase(telemetry.PhaseAggregate)
	if d := g.session.DepositTicks() - prevDeposits; d > 0 {
		for i := 0; i < d; i++ {
			g.collector.RecordDepositTick()
		}
		g.woundDirty = true
	}
	g.collector.RecordEmitted(g.session.EmittedTotal() - prevEmitted)
	g.collector.RecordImpacts(len(impacts))

	if g.splats != nil {
		g.splats.Add(impacts)
		g.splats.Update(float32(dt))
	}

	g.tick++

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()
	g.maybeWriteSummary()
}

// Draw renders one frame.
func (g *Game) Draw() {
	g.perfCollector.StartPhase(telemetry.PhaseRender)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 12, G: 14, B: 18, A: 255})

	mat := g.cfg.Materials[g.session.Material()]
	matColor := [3]uint8{mat.Color[0], mat.Color[1], mat.Color[2]}

	if g.woundDirty {
		g.wound.Update(g.session.Coverage(), matColor)
		g.woundDirty = false
	}

	aimX, aimZ := g.session.Aim()
	g.scene.Begin()
	g.wound.Draw()
	g.droplets.Draw(g.session.Pool(), matColor)
	g.splats.Draw(matColor)
	g.scene.DrawNozzle(aimX, aimZ, g.session.Spraying())
	g.scene.DrawReticle(aimX, aimZ, float32(g.cfg.Spray.WorldRadius), g.session.AimValid())
	g.scene.End()

	actions := g.hud.Draw(ui.HUDData{
		Phase:        g.session.Phase(),
		CoveragePct:  g.session.CoveragePercent(),
		ElapsedSec:   g.session.Elapsed(),
		Impacts:      g.session.Impacts(),
		Intensity:    g.session.Intensity(),
		Material:     g.session.Material(),
		Materials:    g.cfg.Materials,
		FPS:          rl.GetFPS(),
		Paused:       g.paused,
		TimeScale:    g.timeScale,
		ScreenWidth:  int32(g.cfg.Screen.Width),
		ScreenHeight: int32(g.cfg.Screen.Height),
	})
	g.applyHUDActions(actions)

	rl.EndDrawing()
}

// applyHUDActions forwards HUD interactions to the session.
func (g *Game) applyHUDActions(a ui.HUDActions) {
	if a.StartPressed {
		g.session.Start()
	}
	if a.ResetPressed {
		g.reset()
	}
	if a.IntensityChanged {
		g.session.SetIntensity(a.Intensity)
	}
	if a.MaterialChanged {
		g.session.SetMaterial(a.Material)
		g.woundDirty = true
	}
}

// reset restarts the session and telemetry.
func (g *Game) reset() {
	g.session.Reset()
	g.collector.Reset(g.tick)
	if g.splats != nil {
		g.splats.Clear()
	}
	g.woundDirty = true
	g.summaryWritten = false
}

// Unload releases resources.
func (g *Game) Unload() {
	if g.wound != nil {
		g.wound.Unload()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// Session exposes the session for soak-run inspection.
func (g *Game) Session() *systems.Session {
	return g.session
}
