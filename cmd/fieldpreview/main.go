// fieldpreview is an interactive viewer for the environment grids: α
// (food), β (poison), γ (terrain) and the trail channels, driven through
// the real diffusion/rain systems so a tuner can see how config changes
// affect the steady-state field before running a full simulation.
//
// Usage: go run ./cmd/fieldpreview [-config path.yaml]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"

	"github.com/lumenark/vitae/components"
	"github.com/lumenark/vitae/config"
	"github.com/lumenark/vitae/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 600
	panelWidth   = windowWidth - previewSize - 30
)

type channel int

const (
	channelAlpha channel = iota
	channelBeta
	channelGamma
	channelTrailEnergy
	channelCount
)

func (c channel) String() string {
	switch c {
	case channelAlpha:
		return "alpha (food)"
	case channelBeta:
		return "beta (poison)"
	case channelGamma:
		return "gamma (terrain)"
	case channelTrailEnergy:
		return "trail energy"
	default:
		return "?"
	}
}

func main() {
	configPath := flag.String("config", "", "Path to a YAML config overlay (defaults embedded)")
	flag.Parse()
	config.MustInit(*configPath)
	cfg := config.Cfg()

	rl.InitWindow(windowWidth, windowHeight, "vitae field preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	grids := components.NewGrids(cfg.World.EnvGridSize)
	rain := systems.NewRainField(12345, &cfg.Environment)
	rng := rand.New(rand.NewSource(12345))

	seedGrids(grids)

	gridSize := grids.Size
	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	view := channelAlpha
	running := true
	var simTime float64

	updateTexture(texture, grids, view)

	for !rl.WindowShouldClose() {
		if running {
			simTime += cfg.Physics.DT
			systems.DiffuseGrids(grids, &cfg.Environment)
			windX := float32(cfg.Wind.Power * cfg.Wind.DirX)
			windY := float32(cfg.Wind.Power * cfg.Wind.DirY)
			systems.ComputeGammaSlope(grids, &cfg.Environment, windX, windY)
			systems.DiffuseTrails(grids, &cfg.Trails)
			rain.Update(grids, simTime)
			systems.Rain(grids, &cfg.Environment, rng)
			updateTexture(texture, grids, view)
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(gridSize), Height: float32(gridSize)},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0}, 0, rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText(fmt.Sprintf("Channel: %s", view), int32(panelX), int32(panelY), 18, rl.DarkGray)
		panelY += 30
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 160, Height: 30}, "Next channel") {
			view = (view + 1) % channelCount
			updateTexture(texture, grids, view)
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 160, Height: 30}, toggleText(running, "Pause", "Resume")) {
			running = !running
		}
		panelY += 50

		rl.DrawText("Alpha blur", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		cfg.Environment.AlphaBlur = float64(gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 80, Height: 20},
			"0", "1", float32(cfg.Environment.AlphaBlur), 0, 1))
		panelY += 35

		rl.DrawText("Beta blur", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		cfg.Environment.BetaBlur = float64(gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 80, Height: 20},
			"0", "1", float32(cfg.Environment.BetaBlur), 0, 1))
		panelY += 35

		rl.DrawText("Trail diffusion", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		cfg.Trails.Diffusion = float64(gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 80, Height: 20},
			"0", "1", float32(cfg.Trails.Diffusion), 0, 1))
		panelY += 35

		rl.DrawText("Rain noise scale", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		cfg.Environment.RainNoiseScale = float64(gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 80, Height: 20},
			"0.1", "20", float32(cfg.Environment.RainNoiseScale), 0.1, 20))
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 160, Height: 30}, "Reseed grids") {
			seedGrids(grids)
		}

		rl.DrawText("1/2/3/4 switch channel, Space pause", 10, windowHeight-24, 12, rl.Gray)
		if rl.IsKeyPressed(rl.KeyOne) {
			view = channelAlpha
		}
		if rl.IsKeyPressed(rl.KeyTwo) {
			view = channelBeta
		}
		if rl.IsKeyPressed(rl.KeyThree) {
			view = channelGamma
		}
		if rl.IsKeyPressed(rl.KeyFour) {
			view = channelTrailEnergy
		}
		if rl.IsKeyPressed(rl.KeySpace) {
			running = !running
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// seedGrids fills alpha/beta with a patchy random start and gamma with a
// low-frequency height field, so diffusion has something to spread from.
func seedGrids(grids *components.Grids) {
	rng := rand.New(rand.NewSource(1))
	for y := 0; y < grids.Size; y++ {
		for x := 0; x < grids.Size; x++ {
			idx := grids.Idx(x, y)
			if rng.Float32() < 0.05 {
				grids.Alpha[idx] = rng.Float32()
			}
			if rng.Float32() < 0.02 {
				grids.Beta[idx] = rng.Float32()
			}
			grids.Gamma[idx] = float32(0.5 + 0.3*rng.Float64())
		}
	}
}

func updateTexture(texture rl.Texture2D, grids *components.Grids, view channel) {
	size := grids.Size
	pixels := make([]color.RGBA, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			idx := grids.Idx(x, y)
			var v float32
			switch view {
			case channelAlpha:
				v = grids.Alpha[idx]
			case channelBeta:
				v = grids.Beta[idx]
			case channelGamma:
				v = grids.Gamma[idx]
			case channelTrailEnergy:
				v = components.Clamp01(grids.TrailE[idx])
			}
			pixels[y*size+x] = heatColor(components.Clamp01(v))
		}
	}
	rl.UpdateTexture(texture, pixels)
}

func heatColor(v float32) color.RGBA {
	switch {
	case v < 0.25:
		t := v / 0.25
		return color.RGBA{R: uint8(10 + t*30), G: uint8(20 + t*60), B: uint8(60 + t*100), A: 255}
	case v < 0.5:
		t := (v - 0.25) / 0.25
		return color.RGBA{R: uint8(40 + t*20), G: uint8(80 + t*120), B: uint8(160 + t*40), A: 255}
	case v < 0.75:
		t := (v - 0.5) / 0.25
		return color.RGBA{R: uint8(60 + t*140), G: uint8(200 - t*40), B: uint8(200 - t*150), A: 255}
	default:
		t := (v - 0.75) / 0.25
		return color.RGBA{R: uint8(200 + t*55), G: uint8(160 + t*95), B: uint8(50 + t*205), A: 255}
	}
}
