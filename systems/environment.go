package systems

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/lumenark/vitae/components"
	"github.com/lumenark/vitae/config"
)

// RainField drives the rain map's animated drift from two independent
// 4D OpenSimplex generators (one per channel), the same tiled fractal
// technique used for the earlier resource-capacity field.
type RainField struct {
	noiseX opensimplex.Noise
	noiseY opensimplex.Noise
	scale  float64
	speed  float64
	octaves int
}

// NewRainField seeds the two rain-channel noise generators.
func NewRainField(seed int64, cfg *config.EnvironmentConfig) *RainField {
	return &RainField{
		noiseX:  opensimplex.New(seed),
		noiseY:  opensimplex.New(seed + 1),
		scale:   cfg.RainNoiseScale,
		speed:   cfg.RainNoiseSpeed,
		octaves: cfg.RainNoiseOctaves,
	}
}

// Update refills grids.RainX/RainY with fractal-noise multipliers,
// tiled seamlessly across the toroidal world (spec.md §4.6 "Rain").
func (rf *RainField) Update(grids *components.Grids, t float64) {
	size := grids.Size
	for y := 0; y < size; y++ {
		v := float64(y) / float64(size)
		for x := 0; x < size; x++ {
			u := float64(x) / float64(size)
			idx := y*size + x
			grids.RainX[idx] = float32(rf.fbmTiled(rf.noiseX, u, v, t*rf.speed))
			grids.RainY[idx] = float32(rf.fbmTiled(rf.noiseY, u, v, t*rf.speed))
		}
	}
}

func (rf *RainField) fbmTiled(noise opensimplex.Noise, u, v, t float64) float64 {
	sum := 0.0
	amp := 0.5
	freq := rf.scale
	twoPi := 2.0 * math.Pi

	baseX := math.Cos(u * twoPi)
	baseY := math.Sin(u * twoPi)
	baseZ := math.Cos(v * twoPi)
	baseW := math.Sin(v * twoPi)

	cosXW, sinXW := math.Cos(t*0.7), math.Sin(t*0.7)
	cosYZ, sinYZ := math.Cos(t*0.53), math.Sin(t*0.53)

	nx := baseX*cosXW - baseW*sinXW
	nw := baseX*sinXW + baseW*cosXW
	ny := baseY*cosYZ - baseZ*sinYZ
	nz := baseY*sinYZ + baseZ*cosYZ

	for o := 0; o < rf.octaves; o++ {
		n := (noise.Eval4(nx*freq, ny*freq, nz*freq, nw*freq) + 1) * 0.5
		sum += amp * n
		freq *= 2.0
		amp *= 0.5
	}
	if sum > 1 {
		sum = 1
	}
	return sum
}

// DiffuseGrids runs the per-cell box-blur and slope-biased flux pass
// over alpha, beta and gamma (spec.md §4.6 "Diffusion + advection").
func DiffuseGrids(grids *components.Grids, cfg *config.EnvironmentConfig) {
	size := grids.Size
	alphaBlur, betaBlur, gammaBlur := float32(cfg.AlphaBlur), float32(cfg.BetaBlur), float32(cfg.GammaBlur)
	alphaBias, betaBias := float32(cfg.AlphaSlopeBias), float32(cfg.BetaSlopeBias)

	blurredAlpha := boxBlur3x3(grids, grids.Alpha)
	blurredBeta := boxBlur3x3(grids, grids.Beta)
	blurredGamma := boxBlur3x3(grids, grids.Gamma)

	newAlpha := make([]float32, len(grids.Alpha))
	newBeta := make([]float32, len(grids.Beta))
	newGamma := make([]float32, len(grids.Gamma))

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			idx := grids.Idx(x, y)

			a := mix(grids.Alpha[idx], blurredAlpha[idx], alphaBlur)
			b := mix(grids.Beta[idx], blurredBeta[idx], betaBlur)
			g := mix(grids.Gamma[idx], blurredGamma[idx], gammaBlur)

			a += slopeFlux(grids, grids.Alpha, x, y, alphaBias)
			b += slopeFlux(grids, grids.Beta, x, y, betaBias)

			newAlpha[idx] = components.Clamp01(a)
			newBeta[idx] = components.Clamp01(b)
			newGamma[idx] = components.Clamp01(g)
		}
	}

	copy(grids.Alpha, newAlpha)
	copy(grids.Beta, newBeta)
	copy(grids.Gamma, newGamma)
}

func boxBlur3x3(grids *components.Grids, field []float32) []float32 {
	size := grids.Size
	out := make([]float32, len(field))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			var sum float32
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					sum += field[grids.Idx(x+dx, y+dy)]
				}
			}
			out[grids.Idx(x, y)] = sum / 9
		}
	}
	return out
}

// slopeFlux computes the net cardinal-direction flux term for one cell
// (spec.md §4.6 "slope-biased flux term").
func slopeFlux(grids *components.Grids, field []float32, x, y int, bias float32) float32 {
	here := field[grids.Idx(x, y)]
	idx := grids.Idx(x, y)
	sx, sy := grids.SlopeX[idx], grids.SlopeY[idx]

	dirs := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	slopeDirs := [4]float32{sx, -sx, sy, -sy}

	var net float32
	for d := 0; d < 4; d++ {
		nx, ny := x+dirs[d][0], y+dirs[d][1]
		nIdx := grids.Idx(nx, ny)
		neighborVal := field[nIdx]
		nSx, nSy := grids.SlopeX[nIdx], grids.SlopeY[nIdx]
		var neighborDirSlope float32
		switch d {
		case 0:
			neighborDirSlope = -nSx
		case 1:
			neighborDirSlope = nSx
		case 2:
			neighborDirSlope = -nSy
		case 3:
			neighborDirSlope = nSy
		}

		fluxOut := maxf(slopeDirs[d]*bias, 0) * here
		fluxIn := maxf(-neighborDirSlope*bias, 0) * neighborVal
		net += fluxIn - fluxOut
	}
	return net / 8
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// Rain performs the two independent per-cell Bernoulli saturation trials
// (spec.md §4.6 "Rain").
func Rain(grids *components.Grids, cfg *config.EnvironmentConfig, rng *rand.Rand) {
	alphaMult, betaMult := float32(cfg.AlphaRainMultiplier), float32(cfg.BetaRainMultiplier)
	for i := range grids.Alpha {
		if rng.Float32() < alphaMult*0.05*grids.RainX[i] {
			grids.Alpha[i] = 1.0
		}
		if rng.Float32() < betaMult*0.05*grids.RainY[i] {
			grids.Beta[i] = 1.0
		}
	}
}

// ComputeGammaSlope recomputes the two slope channels from an
// 8-neighbor gradient of gamma (optionally mixed with chemistry) plus
// global wind (spec.md §4.6 "gamma slope recomputation").
func ComputeGammaSlope(grids *components.Grids, cfg *config.EnvironmentConfig, windX, windY float32) {
	size := grids.Size
	invSqrt2 := float32(1 / math.Sqrt2)
	height := make([]float32, len(grids.Gamma))
	for i := range grids.Gamma {
		height[i] = grids.Gamma[i] +
			grids.Alpha[i]*float32(cfg.ChemicalSlopeScaleAlpha) +
			grids.Beta[i]*float32(cfg.ChemicalSlopeScaleBeta)
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			idx := grids.Idx(x, y)
			gx := height[grids.Idx(x+1, y)] - height[grids.Idx(x-1, y)]
			gy := height[grids.Idx(x, y+1)] - height[grids.Idx(x, y-1)]

			gx += (height[grids.Idx(x+1, y+1)] - height[grids.Idx(x-1, y-1)]) * invSqrt2
			gx += (height[grids.Idx(x+1, y-1)] - height[grids.Idx(x-1, y+1)]) * invSqrt2
			gy += (height[grids.Idx(x+1, y+1)] - height[grids.Idx(x-1, y-1)]) * invSqrt2
			gy += (height[grids.Idx(x-1, y+1)] - height[grids.Idx(x+1, y-1)]) * invSqrt2

			grids.SlopeX[idx] = gx*0.5 + windX
			grids.SlopeY[idx] = gy*0.5 + windY
		}
	}
}

// DiffuseTrails runs the 3x3-average blend and decay over the trail
// grid (spec.md §4.6 "Trail diffusion").
func DiffuseTrails(grids *components.Grids, cfg *config.TrailsConfig) {
	diffusion, decay := float32(cfg.Diffusion), float32(cfg.Decay)
	blurR := boxBlur3x3(grids, grids.TrailR)
	blurG := boxBlur3x3(grids, grids.TrailG)
	blurB := boxBlur3x3(grids, grids.TrailB)
	blurE := boxBlur3x3(grids, grids.TrailE)

	for i := range grids.TrailR {
		grids.TrailR[i] = components.Clamp01(mix(grids.TrailR[i], blurR[i], diffusion)) * decay
		grids.TrailG[i] = components.Clamp01(mix(grids.TrailG[i], blurG[i], diffusion)) * decay
		grids.TrailB[i] = components.Clamp01(mix(grids.TrailB[i], blurB[i], diffusion)) * decay
		grids.TrailE[i] = mix(grids.TrailE[i], blurE[i], diffusion) * decay
	}
}
