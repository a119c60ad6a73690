package systems

import (
	"math"
	"math/rand"

	"github.com/lumenark/vitae/components"
	"github.com/lumenark/vitae/config"
)

// SignalDiskSamples is the jittered-disk sample count used by every
// Gaussian-kernel sensor (spec.md §4.3 "alpha-sensor / beta-sensor").
const SignalDiskSamples = 14

// signalDecay is the per-channel passive decay applied to non-sensor
// parts before the smoothing mix (spec.md §4.3 "Decay and smoothing").
const signalDecay = 0.99

// smoothMix is the blend rate between a part's previous signal and this
// frame's raw value.
const smoothMix = 0.75

// AgentNeighbor is a precomputed nearby-agent record used by the
// agent-alpha/agent-beta and trail-energy sensors.
type AgentNeighbor struct {
	Index            int
	DX, DY           float32
	DistSq           float32
	ColorR, ColorG, ColorB float32
}

// SignalEnv bundles everything the signal engine needs beyond the agent
// itself: the environment grids, this agent's live neighbor list (already
// gathered from the spatial hash by the caller), and the RNG used for the
// stochastic disk sampling.
type SignalEnv struct {
	Grids     *components.Grids
	SimSize   float32
	Neighbors []AgentNeighbor
	RNG       *rand.Rand
}

// Propagate runs one frame of the signal engine over a single agent's
// body-part chain: diffusion along the chain, sensor injection, decay and
// smoothing (spec.md §4.3).
func Propagate(a *components.Agent, env *SignalEnv, cfg *config.PhysicsConfig) {
	n := int(a.BodyCount)
	if n == 0 {
		return
	}

	prevAlpha := make([]float32, n)
	prevBeta := make([]float32, n)
	for i := 0; i < n; i++ {
		prevAlpha[i] = a.Body[i].Alpha
		prevBeta[i] = a.Body[i].Beta
	}

	for i := 0; i < n; i++ {
		part := &a.Body[i]
		base := part.Type.Base()
		row := components.PropTable[base]

		var rawA, rawB float32
		if isSensorType(base) {
			rawA, rawB = sampleSensor(a, i, part, base, env)
		} else {
			rawA, rawB = diffuseNeighbors(i, n, prevAlpha, prevBeta, row)
			rawA *= signalDecay
			rawB *= signalDecay
		}

		part.Alpha = clampSignal(mix(prevAlpha[i], rawA, smoothMix))
		part.Beta = clampSignal(mix(prevBeta[i], rawB, smoothMix))
	}
}

func mix(a, b, t float32) float32 { return a + (b-a)*t }

func clampSignal(v float32) float32 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

// diffuseNeighbors computes the anisotropic propagation value for an
// interior/edge part from its immediate chain neighbors.
func diffuseNeighbors(i, n int, alpha, beta []float32, row components.PropRow) (a, b float32) {
	switch {
	case n == 1:
		return alpha[i], beta[i]
	case i == 0:
		return alpha[i+1] * row.RightMult, beta[i+1] * row.RightMult
	case i == n-1:
		return alpha[i-1] * row.LeftMult, beta[i-1] * row.LeftMult
	default:
		return alpha[i-1]*row.LeftMult + alpha[i+1]*row.RightMult,
			beta[i-1]*row.LeftMult + beta[i+1]*row.RightMult
	}
}

func isSensorType(t components.BaseType) bool {
	c := components.CapabilitiesOf(t)
	return c.Has(components.CapAlphaSensor) || c.Has(components.CapBetaSensor) ||
		c.Has(components.CapEnergySensor) || c.Has(components.CapAgentAlphaSensor) ||
		c.Has(components.CapAgentBetaSensor) || c.Has(components.CapTrailEnergySensor) ||
		c.Has(components.CapSlopeSensor) || c.Has(components.CapPairingSensor) ||
		c.Has(components.CapClock)
}

// sampleSensor dispatches to the sensor kernel matching the part's base
// type (spec.md §4.3 "Sensor injection").
func sampleSensor(a *components.Agent, i int, part *components.BodyPart, base components.BaseType, env *SignalEnv) (alpha, beta float32) {
	row := components.PropTable[base]
	worldX, worldY := a.PosX+part.PosX, a.PosY+part.PosY

	switch base {
	case components.OrganAlphaSensor:
		v := diskGaussianDirectional(worldX, worldY, a.Rotation, env.Grids.Alpha, env, row, part)
		return v, 0
	case components.OrganBetaSensor:
		v := diskGaussianDirectional(worldX, worldY, a.Rotation, env.Grids.Beta, env, row, part)
		return 0, v
	case components.OrganAlphaMagnitude, components.OrganAlphaMagnitude2:
		v := diskGaussianMagnitude(worldX, worldY, env.Grids.Alpha, env)
		return v, 0
	case components.OrganBetaMagnitude, components.OrganBetaMagnitude2:
		v := diskGaussianMagnitude(worldX, worldY, env.Grids.Beta, env)
		return 0, v
	case components.OrganAgentAlphaSensor:
		return agentSensor(a, worldX, worldY, env), 0
	case components.OrganAgentBetaSensor:
		return 0, agentSensor(a, worldX, worldY, env)
	case components.OrganEnergySensor:
		return energySensor(a.Energy)
	case components.OrganTrailEnergySensor:
		return trailEnergySensor(worldX, worldY, env)
	case components.OrganSlopeSensor:
		return slopeSensor(a, part, worldX, worldY, env)
	case components.OrganPairingSensor:
		return pairingSensor(a, part)
	case components.OrganClock:
		return clockSensor(a, part)
	default:
		return 0, 0
	}
}

// diskGaussianDirectional implements the 14-sample jittered-disk kernel
// with directional (perpendicular-dot) weighting used by alpha/beta
// sensors (spec.md §4.3).
func diskGaussianDirectional(wx, wy, rotation float32, field []float32, env *SignalEnv, row components.PropRow, part *components.BodyPart) float32 {
	p1Sum := row.Param1 + float32(part.Type.Param())
	polarity := float32(1)
	if p1Sum < 0 {
		polarity = -1
	}
	baseRadius := float32(24.0)
	radius := float32(math.Abs(float64(p1Sum))) * baseRadius
	if radius < 1 {
		radius = 1
	}
	sigma := radius / 2
	perpX, perpY := float32(math.Cos(float64(rotation)+math.Pi/2)), float32(math.Sin(float64(rotation)+math.Pi/2))

	var sum float32
	for s := 0; s < SignalDiskSamples; s++ {
		ang := env.RNG.Float32() * 2 * math.Pi
		r := env.RNG.Float32() * radius
		dx, dy := float32(math.Cos(float64(ang)))*r, float32(math.Sin(float64(ang)))*r
		sampleX, sampleY := wx+dx, wy+dy
		v := sampleField(field, sampleX, sampleY, env)
		dist := float32(math.Sqrt(float64(dx*dx + dy*dy)))
		weight := float32(math.Exp(float64(-(dist * dist) / (2 * sigma * sigma))))
		dirLen := float32(math.Sqrt(float64(dx*dx + dy*dy)))
		var dot float32
		if dirLen > 1e-6 {
			dot = (perpX*dx + perpY*dy) / dirLen
		}
		sum += v * weight * dot
	}
	return polarity * float32(math.Abs(float64(sum)))
}

// diskGaussianMagnitude is the same kernel with the directional weight
// removed (pure Gaussian magnitude), used by alpha/beta-magnitude sensors.
func diskGaussianMagnitude(wx, wy float32, field []float32, env *SignalEnv) float32 {
	const radius, sigma = 24.0, 12.0
	var sum float32
	for s := 0; s < SignalDiskSamples; s++ {
		ang := env.RNG.Float32() * 2 * math.Pi
		r := env.RNG.Float32() * radius
		dx, dy := float32(math.Cos(float64(ang)))*r, float32(math.Sin(float64(ang)))*r
		v := sampleField(field, wx+dx, wy+dy, env)
		dist := float32(math.Sqrt(float64(dx*dx + dy*dy)))
		weight := float32(math.Exp(float64(-(dist * dist) / (2 * sigma * sigma))))
		sum += v * weight
	}
	return sum
}

func sampleField(field []float32, wx, wy float32, env *SignalEnv) float32 {
	x, y := env.Grids.CellOf(wx, wy, env.SimSize)
	return field[env.Grids.Idx(x, y)]
}

// agentSensor sums weighted, color-difference-gated contributions over
// live neighbor agents (spec.md §4.3 "agent-alpha / agent-beta").
func agentSensor(a *components.Agent, wx, wy float32, env *SignalEnv) float32 {
	const sigma = 40.0
	perpX, perpY := float32(math.Cos(float64(a.Rotation)+math.Pi/2)), float32(math.Sin(float64(a.Rotation)+math.Pi/2))
	var sum float32
	for _, nb := range env.Neighbors {
		d := float32(math.Sqrt(float64(nb.DistSq)))
		if d < 1e-6 {
			continue
		}
		weight := float32(math.Exp(float64(-nb.DistSq / (2 * sigma * sigma))))
		dot := (perpX*nb.DX + perpY*nb.DY) / d
		colorDiff := float32(math.Abs(float64(a.ColorR-nb.ColorR)) +
			math.Abs(float64(a.ColorG-nb.ColorG)) + math.Abs(float64(a.ColorB-nb.ColorB)))
		sum += weight * dot * colorDiff
	}
	return sum
}

// energySensor maps agent energy into both channels by affine
// interpolation with a saturation at 50 units (spec.md §4.3).
func energySensor(energy float32) (alpha, beta float32) {
	t := energy / 50
	if t > 1 {
		t = 1
	}
	alpha = -0.5 + t*(1.3-(-0.5))
	beta = 0.5 + t*(-0.7-0.5)
	return
}

func trailEnergySensor(wx, wy float32, env *SignalEnv) (alpha, beta float32) {
	var sum float32
	for _, nb := range env.Neighbors {
		weight := float32(math.Exp(float64(-nb.DistSq / (2 * 40.0 * 40.0))))
		x, y := env.Grids.CellOf(wx+nb.DX, wy+nb.DY, env.SimSize)
		e := env.Grids.TrailE[env.Grids.Idx(x, y)]
		sum += weight * e
	}
	s := float32(math.Tanh(float64(0.01 * sum)))
	if s >= 0 {
		return s, 0
	}
	return 0, -s
}

func slopeSensor(a *components.Agent, part *components.BodyPart, wx, wy float32, env *SignalEnv) (alpha, beta float32) {
	x, y := env.Grids.CellOf(wx, wy, env.SimSize)
	idx := env.Grids.Idx(x, y)
	sx, sy := env.Grids.SlopeX[idx], env.Grids.SlopeY[idx]
	dirX, dirY := float32(math.Cos(float64(a.Rotation))), float32(math.Sin(float64(a.Rotation)))
	alignment := sx*dirX + sy*dirY

	modifier := float32(part.Type.Param7())
	row := components.PropTable[part.Type.Base()]
	v := alignment * (modifier + row.Param1)
	if part.Type.PromoterIsAlpha() {
		return v, 0
	}
	return 0, v
}

func pairingSensor(a *components.Agent, part *components.BodyPart) (alpha, beta float32) {
	v := (float32(a.PairingCounter) / float32(components.GenomeBytes)) * (float32(part.Type.Param7()) / 127)
	if part.Type.PromoterIsAlpha() {
		return v, 0
	}
	return 0, v
}

// clockSensor advances a free-running or cross-channel-driven phase
// accumulator and emits its sine (spec.md §4.3 "clock").
func clockSensor(a *components.Agent, part *components.BodyPart) (alpha, beta float32) {
	pad := part.PadView()
	modifierParam1 := float32(part.Type.Param7())
	isAlphaEmit := part.Type.PromoterIsAlpha()

	phase := pad.ClockPhase()
	freeRunning := part.Type.Param7() >= 14 && part.Type.Param7() <= 15
	if freeRunning {
		phase += float32(a.Age) * modifierParam1 * 0.001
	} else if isAlphaEmit {
		phase += part.Beta
	} else {
		phase += part.Alpha
	}
	sine := float32(math.Sin(float64(phase)))
	pad.SetClockPhase(phase)
	pad.SetClockSine(sine)

	if isAlphaEmit {
		return sine, 0
	}
	return 0, sine
}
