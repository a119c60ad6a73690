package renderer

import (
	"math/rand"
	"testing"
)

func TestSpawnRainAddsASpark(t *testing.T) {
	fx := NewDropletFX()
	rng := rand.New(rand.NewSource(1))
	fx.SpawnRain(10, 20, rng)
	if fx.Count() != 1 {
		t.Fatalf("Count() = %d, want 1 after one SpawnRain", fx.Count())
	}
}

func TestSpawnTrailAddsASpark(t *testing.T) {
	fx := NewDropletFX()
	rng := rand.New(rand.NewSource(1))
	fx.SpawnTrail(0, 0, 0.2, 0.4, 0.6, rng)
	if fx.Count() != 1 {
		t.Fatalf("Count() = %d, want 1 after one SpawnTrail", fx.Count())
	}
}

func TestUpdateExpiresDeadSparks(t *testing.T) {
	fx := NewDropletFX()
	rng := rand.New(rand.NewSource(1))
	fx.SpawnRain(0, 0, rng)
	fx.Update(100) // far longer than any spark's MaxLife
	if fx.Count() != 0 {
		t.Fatalf("Count() = %d, want 0 once every spark has expired", fx.Count())
	}
}

func TestUpdateKeepsLiveSparksAlive(t *testing.T) {
	fx := NewDropletFX()
	rng := rand.New(rand.NewSource(1))
	fx.SpawnRain(0, 0, rng)
	fx.Update(0.001)
	if fx.Count() != 1 {
		t.Fatalf("Count() = %d, want 1 right after a tiny update step", fx.Count())
	}
}
