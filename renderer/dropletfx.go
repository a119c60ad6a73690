// Package renderer holds small display-only effects layered over the
// simulation window. DropletFX is a decorative particle system: short-lived
// sparks spawned when rain lands on a cell or an agent deposits a trail, so
// those events read as more than a flat color change. It is never read back
// by the core pipeline — a dropped particle changes nothing about the next
// tick's α/β/γ/trail grids or agent state.
package renderer

import (
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"
)

type spark struct {
	X, Y   float32
	VX, VY float32
	Life   float32
	MaxLife float32
	R, G, B uint8
}

// DropletFX owns a small ark world of spark entities, independent of the
// simulation's own fixed-capacity agent array.
type DropletFX struct {
	world  *ecs.World
	sparks *ecs.Map1[spark]
	filter *ecs.Filter1[spark]
}

// NewDropletFX creates an empty particle world.
func NewDropletFX() *DropletFX {
	world := ecs.NewWorld()
	return &DropletFX{
		world:  world,
		sparks: ecs.NewMap1[spark](world),
		filter: ecs.NewFilter1[spark](world),
	}
}

// SpawnRain adds a short downward-drifting spark where a rain event landed.
func (d *DropletFX) SpawnRain(x, y float32, rng *rand.Rand) {
	s := spark{
		X: x, Y: y,
		VX: (rng.Float32() - 0.5) * 4,
		VY: rng.Float32()*6 + 2,
		MaxLife: 0.4 + rng.Float32()*0.3,
		R: 120, G: 170, B: 255,
	}
	s.Life = s.MaxLife
	d.sparks.NewEntity(&s)
}

// SpawnTrail adds a short outward spark tinted to an agent's color, where a
// trail deposit happened.
func (d *DropletFX) SpawnTrail(x, y float32, colorR, colorG, colorB float32, rng *rand.Rand) {
	angle := rng.Float32() * 6.2831855
	speed := rng.Float32()*3 + 1
	s := spark{
		X: x, Y: y,
		VX: speed * cos32(angle), VY: speed * sin32(angle),
		MaxLife: 0.2 + rng.Float32()*0.2,
		R: uint8(colorR * 255), G: uint8(colorG * 255), B: uint8(colorB * 255),
	}
	s.Life = s.MaxLife
	d.sparks.NewEntity(&s)
}

// Update advances every spark and removes expired ones.
func (d *DropletFX) Update(dt float32) {
	var dead []ecs.Entity
	query := d.filter.Query()
	for query.Next() {
		s := query.Get()
		s.Life -= dt
		if s.Life <= 0 {
			dead = append(dead, query.Entity())
			continue
		}
		s.X += s.VX * dt
		s.Y += s.VY * dt
	}
	for _, e := range dead {
		d.sparks.Remove(e)
	}
}

// Draw renders every live spark through toScreen, a world-to-screen mapper
// supplied by the caller (so this package stays independent of the camera
// package's toroidal wrapping rules).
func (d *DropletFX) Draw(toScreen func(x, y float32) (sx, sy float32)) {
	query := d.filter.Query()
	for query.Next() {
		s := query.Get()
		sx, sy := toScreen(s.X, s.Y)
		fade := s.Life / s.MaxLife
		rl.DrawCircle(int32(sx), int32(sy), 1.5,
			rl.Color{R: s.R, G: s.G, B: s.B, A: uint8(fade * 200)})
	}
}

// Count returns the number of live sparks, for diagnostics.
func (d *DropletFX) Count() int {
	n := 0
	query := d.filter.Query()
	for query.Next() {
		n++
	}
	return n
}

func cos32(rad float32) float32 { return float32(math.Cos(float64(rad))) }

func sin32(rad float32) float32 { return float32(math.Sin(float64(rad))) }
