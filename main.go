package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/lumenark/vitae/camera"
	"github.com/lumenark/vitae/components"
	"github.com/lumenark/vitae/config"
	"github.com/lumenark/vitae/game"
	"github.com/lumenark/vitae/renderer"
	"github.com/lumenark/vitae/telemetry"
)

var (
	configPath   = flag.String("config", "", "Path to a YAML config overlay (defaults embedded)")
	seed         = flag.Int64("seed", 42, "RNG seed")
	initialSpeed = flag.Int("speed", 1, "Initial simulation speed (ticks per Update call, 1-10)")
	logStats     = flag.Bool("log", false, "Log world/perf state every stats window")
	logFile      = flag.String("logfile", "", "Write logs to file instead of stdout")
	statsWindow  = flag.Float64("stats-window", 10.0, "Telemetry sampling window, in seconds of sim time")
	outputDir    = flag.String("output", "", "Directory for telemetry/perf CSV output (empty disables)")
	snapshotDir  = flag.String("snapshots", "", "Directory for selected-agent JSON snapshots (empty disables)")
	headless     = flag.Bool("headless", false, "Run without graphics (for logging/benchmarking)")
	maxTicks     = flag.Int("max-ticks", 0, "Stop after N ticks (0 = run forever, useful with -headless)")
)

func main() {
	flag.Parse()

	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		game.SetLogWriter(f)
	}

	config.MustInit(*configPath)
	cfg := config.Cfg()

	opts := game.Options{
		Seed:           *seed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		SnapshotDir:    *snapshotDir,
		Headless:       *headless,
	}
	g := game.NewGameWithOptions(opts)
	defer g.Close()

	om, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "output manager: %v\n", err)
		os.Exit(1)
	}
	g.SetOutputManager(om)

	if *initialSpeed > 0 && *initialSpeed <= 10 {
		g.SetSpeed(*initialSpeed)
	}

	if *headless {
		runHeadless(g)
		return
	}
	runWindowed(g, cfg)
}

// runHeadless drives the simulation without graphics, useful for long
// unattended runs and benchmarking.
func runHeadless(g *game.Game) {
	game.Logf("Starting headless simulation (seed=%d, speed=%dx, max-ticks=%d)", *seed, *initialSpeed, *maxTicks)

	start := time.Now()
	lastReport := start
	const reportInterval = 10 * time.Second

	for {
		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			game.Logf("Reached max ticks (%d), stopping.", *maxTicks)
			break
		}

		g.Step()

		if time.Since(lastReport) >= reportInterval {
			elapsed := time.Since(start)
			tps := float64(g.Tick()) / elapsed.Seconds()
			game.Logf("[progress] tick=%d alive=%d %.0f ticks/sec elapsed=%s",
				g.Tick(), g.AliveCount(), tps, elapsed.Round(time.Second))
			lastReport = time.Now()
		}
	}

	elapsed := time.Since(start)
	game.Logf("Simulation complete. ticks=%d alive=%d elapsed=%s avg=%.0f ticks/sec",
		g.Tick(), g.AliveCount(), elapsed.Round(time.Millisecond), float64(g.Tick())/elapsed.Seconds())
}

// runWindowed drives the simulation with a raylib window: pan/zoom camera
// over the toroidal world, α grid as a background heatmap, agents drawn as
// their body-part chains.
func runWindowed(g *game.Game, cfg *config.Config) {
	screen := &cfg.Screen
	rl.InitWindow(int32(screen.Width), int32(screen.Height), "vitae")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(screen.TargetFPS))

	simSize := float32(cfg.World.SimSize)
	cam := camera.New(float32(screen.Width), float32(screen.Height), simSize, simSize)
	fx := renderer.NewDropletFX()
	fxRNG := rand.New(rand.NewSource(*seed + 1))

	for !rl.WindowShouldClose() {
		handleCameraInput(cam)
		if rl.IsKeyPressed(rl.KeySpace) {
			g.SetPaused(!g.Paused())
		}
		for k := rl.KeyOne; k <= rl.KeyNine; k++ {
			if rl.IsKeyPressed(k) {
				g.SetSpeed(int(k - rl.KeyOne + 1))
			}
		}

		g.Update()
		spawnEffects(g, cfg, fx, fxRNG)
		fx.Update(rl.GetFrameTime())
		draw(g, cam, fx)
	}
}

// spawnEffects samples rain intensity and agent trail deposits to seed a
// handful of decorative sparks each frame; it never feeds back into
// simulation state.
func spawnEffects(g *game.Game, cfg *config.Config, fx *renderer.DropletFX, rng *rand.Rand) {
	grids := g.Grids()
	cellSize := float32(cfg.World.SimSize) / float32(grids.Size)

	for i := 0; i < 6; i++ {
		idx := rng.Intn(len(grids.RainX))
		if grids.RainX[idx]*grids.RainX[idx]+grids.RainY[idx]*grids.RainY[idx] < 0.01 {
			continue
		}
		gx, gy := idx%grids.Size, idx/grids.Size
		fx.SpawnRain(float32(gx)*cellSize, float32(gy)*cellSize, rng)
	}

	agents := g.Agents()
	if len(agents) == 0 {
		return
	}
	for i := 0; i < 3; i++ {
		a := &agents[rng.Intn(len(agents))]
		fx.SpawnTrail(a.PosX, a.PosY, a.ColorR, a.ColorG, a.ColorB, rng)
	}
}

func handleCameraInput(cam *camera.Camera) {
	panSpeed := float32(8.0) / cam.Zoom
	if rl.IsKeyDown(rl.KeyRight) {
		cam.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		cam.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		cam.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		cam.Pan(0, -panSpeed)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		cam.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		cam.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		cam.ZoomBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		cam.Reset()
	}
}

func draw(g *game.Game, cam *camera.Camera, fx *renderer.DropletFX) {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 10, G: 12, B: 18, A: 255})

	drawAlphaField(g.Grids(), cam)
	agents := g.Agents()
	for i := range agents {
		drawAgent(&agents[i], cam)
	}
	fx.Draw(cam.WorldToScreen)

	status := fmt.Sprintf("tick %d  alive %d  speed %dx", g.Tick(), g.AliveCount(), g.Speed())
	if g.Paused() {
		status += "  [paused]"
	}
	rl.DrawText(status, 10, 10, 18, rl.RayWhite)
	rl.EndDrawing()
}

// drawAlphaField renders the food grid as a coarse heatmap, one rectangle
// per visible cell.
func drawAlphaField(grids *components.Grids, cam *camera.Camera) {
	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	cellSize := cam.WorldW / float32(grids.Size)
	if cellSize <= 0 {
		return
	}

	x0 := int(minX/cellSize) - 1
	x1 := int(maxX/cellSize) + 1
	y0 := int(minY/cellSize) - 1
	y1 := int(maxY/cellSize) + 1

	screenCell := cellSize * cam.Zoom
	for gy := y0; gy <= y1; gy++ {
		for gx := x0; gx <= x1; gx++ {
			alpha := grids.Alpha[grids.Idx(gx, gy)]
			if alpha <= 0.01 {
				continue
			}
			sx, sy := cam.WorldToScreen(float32(gx)*cellSize, float32(gy)*cellSize)
			shade := uint8(alpha * 180)
			rl.DrawRectangle(int32(sx), int32(sy), int32(screenCell)+1, int32(screenCell)+1,
				rl.Color{R: 20, G: shade + 40, B: 20, A: 255})
		}
	}
}

func drawAgent(a *components.Agent, cam *camera.Camera) {
	if !a.Alive {
		return
	}
	color := rl.Color{R: uint8(a.ColorR * 255), G: uint8(a.ColorG * 255), B: uint8(a.ColorB * 255), A: 255}
	for i := int32(0); i < a.BodyCount; i++ {
		sx, sy, radius, visible := cam.ProjectBodyPart(a, &a.Body[i])
		if !visible {
			continue
		}
		rl.DrawCircle(int32(sx), int32(sy), radius, color)
	}
}
