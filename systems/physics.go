package systems

import (
	"math"

	"github.com/lumenark/vitae/components"
	"github.com/lumenark/vitae/config"
)

// NeighborAgent is a precomputed nearby live-agent record for the
// repulsion force term.
type NeighborAgent struct {
	DX, DY float32
	Mass   float32
}

// PhysicsInput bundles everything the overdamped physics step needs
// beyond the agent's own body (spec.md §4.4 "Physics engine").
type PhysicsInput struct {
	Grids     *components.Grids
	SimSize   float32
	Neighbors []NeighborAgent
	Wind      WindVector
	Phys      *config.PhysicsConfig
}

// WindVector is the global constant force term.
type WindVector struct {
	X, Y float32
}

// Step accumulates per-part forces and torque, then applies the
// overdamped force/torque model to update velocity, angular velocity,
// rotation and position (spec.md §4.4).
func Step(a *components.Agent, in *PhysicsInput, prevVelX, prevVelY, prevAngVel float32) {
	if a.TotalMass <= 0 {
		a.TotalMass = 1
	}
	mass := a.TotalMass

	var fx, fy, torque float32
	n := int(a.BodyCount)
	for i := 0; i < n; i++ {
		part := &a.Body[i]
		worldX, worldY := a.PosX+part.PosX, a.PosY+part.PosY
		row := components.PropTable[part.Type.Base()]

		// Slope gravity.
		gx, gy := gammaSlopeAt(in.Grids, worldX, worldY, in.SimSize)
		fx -= gx * float32(in.Phys.GammaStrength) * row.Mass
		fy -= gy * float32(in.Phys.GammaStrength) * row.Mass

		switch part.Type.Base() {
		case components.OrganPropeller:
			pfx, pfy, ptorque := propellerForce(a, part, row, in)
			fx += pfx
			fy += pfy
			torque += ptorque
		case components.OrganDisplacer:
			displacerTransfer(a, part, in)
		}
	}

	// Neighbor repulsion.
	for _, nb := range in.Neighbors {
		d2 := nb.DX*nb.DX + nb.DY*nb.DY
		if d2 < 1e-6 {
			continue
		}
		d := float32(math.Sqrt(float64(d2)))
		if d > float32(in.Phys.MaxRepulsionDistance) {
			continue
		}
		reduced := (mass * nb.Mass) / (mass + nb.Mass)
		forceMag := float32(in.Phys.RepulsionK) / d2 * reduced
		ceiling := float32(in.Phys.RepulsionForceCeiling)
		if forceMag > ceiling {
			forceMag = ceiling
		}
		ux, uy := nb.DX/d, nb.DY/d
		fx -= ux * forceMag
		fy -= uy * forceMag
	}

	// Global wind/gravity.
	fx += in.Wind.X
	fy += in.Wind.Y

	a.Torque = torque

	drag := mass * 0.5
	if drag <= 0 {
		drag = 1
	}
	rawVelX, rawVelY := fx/drag, fy/drag

	kappa := float32(1 - 2.5*float64(mass))
	if kappa < float32(in.Phys.VelocityBlendMin) {
		kappa = float32(in.Phys.VelocityBlendMin)
	}
	if kappa > float32(in.Phys.VelocityBlendMax) {
		kappa = float32(in.Phys.VelocityBlendMax)
	}
	velX := mix(prevVelX, rawVelX, kappa)
	velY := mix(prevVelY, rawVelY, kappa)

	speed := float32(math.Sqrt(float64(velX*velX + velY*velY)))
	velMax := float32(in.Phys.VelMax)
	if speed > velMax {
		scale := velMax / speed
		velX *= scale
		velY *= scale
	}

	inertia := momentOfInertia(a)
	if inertia <= 0 {
		inertia = 1
	}
	rawAngVel := torque / (inertia * 20)
	angVel := mix(prevAngVel, rawAngVel, float32(in.Phys.AngularBlend))
	angVelMax := float32(in.Phys.AngVelMax)
	if angVel > angVelMax {
		angVel = angVelMax
	} else if angVel < -angVelMax {
		angVel = -angVelMax
	}

	a.VelX, a.VelY = velX, velY
	a.AngVel = angVel
	if in.Phys.EnableGlobalRotation {
		a.Rotation += angVel
	}
	a.PosX += velX
	a.PosY += velY
	a.ClampPosition(in.SimSize)
}

func momentOfInertia(a *components.Agent) float32 {
	var i float32
	n := int(a.BodyCount)
	for k := 0; k < n; k++ {
		part := &a.Body[k]
		row := components.PropTable[part.Type.Base()]
		r2 := part.PosX*part.PosX + part.PosY*part.PosY
		i += row.Mass * r2
	}
	return i
}

func gammaSlopeAt(g *components.Grids, wx, wy, simSize float32) (sx, sy float32) {
	x, y := g.CellOf(wx, wy, simSize)
	idx := g.Idx(x, y)
	return g.SlopeX[idx], g.SlopeY[idx]
}

// propellerForce computes thrust magnitude from nearby enabler amplitude
// and direction perpendicular to the local segment (spec.md §4.4
// "Propeller").
func propellerForce(a *components.Agent, part *components.BodyPart, row components.PropRow, in *PhysicsInput) (fx, fy, torque float32) {
	amp := enablerAmplitude(a, part)
	thrust := row.ThrustForce * 3 * amp * amp

	localAngle := float32(math.Atan2(float64(part.PosY), float64(part.PosX)))
	chirality := float32(1)
	if part.Type.PromoterIsAlpha() {
		chirality = -1
	}
	dirAngle := a.Rotation + localAngle + float32(math.Pi/2)*chirality
	fx = float32(math.Cos(float64(dirAngle))) * thrust
	fy = float32(math.Sin(float64(dirAngle))) * thrust

	rx, ry := part.PosX, part.PosY
	crossZ := rx*fy - ry*fx
	torque = crossZ * 6 * float32(in.Phys.PropellerTorqueCoupling)

	propWash(a, part, amp, in)
	return
}

// enablerAmplitude sums max(0, 1-d/20) over enablers within 20 units of
// part, clamped to 1 (spec.md §4.4).
func enablerAmplitude(a *components.Agent, part *components.BodyPart) float32 {
	var amp float32
	n := int(a.BodyCount)
	for i := 0; i < n; i++ {
		other := &a.Body[i]
		if !components.CapabilitiesOf(other.Type.Base()).Has(components.CapInhibitor) {
			continue
		}
		dx, dy := other.PosX-part.PosX, other.PosY-part.PosY
		d := float32(math.Sqrt(float64(dx*dx + dy*dy)))
		if d < 20 {
			amp += 1 - d/20
		}
	}
	if amp > 1 {
		amp = 1
	}
	return amp
}

// propWash transfers a fraction of local cell chemistry and terrain
// downstream of a propeller (spec.md §4.4 "Propeller prop wash").
func propWash(a *components.Agent, part *components.BodyPart, amp float32, in *PhysicsInput) {
	row := components.PropTable[part.Type.Base()]
	wx, wy := a.PosX+part.PosX, a.PosY+part.PosY
	dirX, dirY := float32(math.Cos(float64(a.Rotation))), float32(math.Sin(float64(a.Rotation)))
	downX, downY := wx-dirX*8, wy-dirY*8

	srcX, srcY := in.Grids.CellOf(wx, wy, in.SimSize)
	dstX, dstY := in.Grids.CellOf(downX, downY, in.SimSize)
	src := in.Grids.Idx(srcX, srcY)
	dst := in.Grids.Idx(dstX, dstY)

	frac := float32(in.Phys.PropStrength) * amp * row.Mass
	transferCell(in.Grids.Alpha, src, dst, frac)
	transferCell(in.Grids.Beta, src, dst, frac)
	transferCell(in.Grids.Gamma, src, dst, frac)
}

func transferCell(field []float32, src, dst int, frac float32) {
	if src == dst {
		return
	}
	amount := field[src] * frac
	field[src] -= amount
	field[dst] += amount
	field[src] = components.Clamp01(field[src])
	field[dst] = components.Clamp01(field[dst])
}

// displacerTransfer moves a share of local alpha/beta/gamma a fixed
// distance along the part's sweep direction, preserving grid totals
// (spec.md §4.4 "Displacer").
func displacerTransfer(a *components.Agent, part *components.BodyPart, in *PhysicsInput) {
	const distance = 12.0
	wx, wy := a.PosX+part.PosX, a.PosY+part.PosY
	localAngle := float32(math.Atan2(float64(part.PosY), float64(part.PosX)))
	sweepAngle := a.Rotation + localAngle
	dstX := wx + float32(math.Cos(float64(sweepAngle)))*distance
	dstY := wy + float32(math.Sin(float64(sweepAngle)))*distance

	srcX, srcY := in.Grids.CellOf(wx, wy, in.SimSize)
	dstCX, dstCY := in.Grids.CellOf(dstX, dstY, in.SimSize)
	src := in.Grids.Idx(srcX, srcY)
	dst := in.Grids.Idx(dstCX, dstCY)

	const frac = 0.05
	transferCell(in.Grids.Alpha, src, dst, frac)
	transferCell(in.Grids.Beta, src, dst, frac)
	transferCell(in.Grids.Gamma, src, dst, frac)
}
