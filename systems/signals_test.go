package systems

import (
	"math/rand"
	"testing"

	"github.com/lumenark/vitae/components"
)

func TestClampSignalBounds(t *testing.T) {
	cases := []struct {
		in, want float32
	}{
		{-2, -1},
		{2, 1},
		{0.5, 0.5},
	}
	for _, c := range cases {
		if got := clampSignal(c.in); got != c.want {
			t.Errorf("clampSignal(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestMixInterpolatesLinearly(t *testing.T) {
	if got := mix(0, 10, 0.5); got != 5 {
		t.Fatalf("mix(0, 10, 0.5) = %v, want 5", got)
	}
	if got := mix(2, 2, 0.3); got != 2 {
		t.Fatalf("mix with equal endpoints should return that value, got %v", got)
	}
}

func TestEnergySensorSaturatesAtFifty(t *testing.T) {
	a1, b1 := energySensor(50)
	a2, b2 := energySensor(500)
	if a1 != a2 || b1 != b2 {
		t.Fatalf("energy above 50 should saturate to the same reading: (%v,%v) vs (%v,%v)", a1, b1, a2, b2)
	}
}

func TestDiffuseNeighborsSingleSegmentPassesThrough(t *testing.T) {
	alpha := []float32{0.4}
	beta := []float32{0.2}
	row := components.PropTable[components.AminoA]
	a, b := diffuseNeighbors(0, 1, alpha, beta, row)
	if a != 0.4 || b != 0.2 {
		t.Fatalf("a lone segment should see its own previous signal unchanged, got (%v, %v)", a, b)
	}
}

func TestPropagateNoopOnEmptyBody(t *testing.T) {
	a := &components.Agent{}
	env := &SignalEnv{Grids: components.NewGrids(4), SimSize: 40, RNG: rand.New(rand.NewSource(1))}
	Propagate(a, env, nil)
}

func TestPropagateStructuralChainStaysWithinSignalRange(t *testing.T) {
	a := &components.Agent{BodyCount: 3}
	a.Body[0].Type = components.NewPartType(components.AminoA, 0)
	a.Body[1].Type = components.NewPartType(components.AminoA, 0)
	a.Body[2].Type = components.NewPartType(components.AminoA, 0)
	a.Body[0].Alpha = 1
	a.Body[1].Beta = -1

	env := &SignalEnv{Grids: components.NewGrids(4), SimSize: 40, RNG: rand.New(rand.NewSource(1))}
	Propagate(a, env, nil)

	for i := 0; i < 3; i++ {
		if a.Body[i].Alpha < -1 || a.Body[i].Alpha > 1 {
			t.Fatalf("body[%d].Alpha out of [-1,1]: %v", i, a.Body[i].Alpha)
		}
		if a.Body[i].Beta < -1 || a.Body[i].Beta > 1 {
			t.Fatalf("body[%d].Beta out of [-1,1]: %v", i, a.Body[i].Beta)
		}
	}
}
