package components

// Grids holds the process-wide environment fields: row-major square grids
// of side EnvGridSize (spec.md §3 "Environment grids", §6 "Grid buffer
// layout"). They are resource handles owned by the pipeline scheduler and
// passed by reference into each pass; nothing here is per-agent.
type Grids struct {
	Size int

	// Alpha ("food") and Beta ("poison"/mutagen), both clamped to [0,1].
	Alpha []float32
	Beta  []float32

	// Gamma is terrain height, plus its two derived slope channels, stored
	// as three contiguous row-major layers (spec.md §3, §6).
	Gamma  []float32
	SlopeX []float32
	SlopeY []float32

	// Trail is RGB (agent-color rolling average) plus an unclamped scalar
	// energy trail, stored as 4 floats per cell.
	TrailR []float32
	TrailG []float32
	TrailB []float32
	TrailE []float32

	// RainMap holds per-cell alpha/beta saturation-event multipliers,
	// typically driven by layered, time-drifting value noise.
	RainX []float32
	RainY []float32
}

// NewGrids allocates all fields at size x size, zeroed (spec.md Non-goals:
// "no dynamic resizing of grids during a run").
func NewGrids(size int) *Grids {
	n := size * size
	g := &Grids{
		Size:   size,
		Alpha:  make([]float32, n),
		Beta:   make([]float32, n),
		Gamma:  make([]float32, n),
		SlopeX: make([]float32, n),
		SlopeY: make([]float32, n),
		TrailR: make([]float32, n),
		TrailG: make([]float32, n),
		TrailB: make([]float32, n),
		TrailE: make([]float32, n),
		RainX:  make([]float32, n),
		RainY:  make([]float32, n),
	}
	return g
}

// Idx converts a wrapped (x, y) grid cell into a flat row-major index.
func (g *Grids) Idx(x, y int) int {
	x = wrapInt(x, g.Size)
	y = wrapInt(y, g.Size)
	return y*g.Size + x
}

func wrapInt(v, size int) int {
	if size <= 0 {
		return 0
	}
	v %= size
	if v < 0 {
		v += size
	}
	return v
}

// CellOf maps a world position into grid coordinates given the world's
// square extent simSize (spec.md §10 spatial hash: "floor(pos * N / SIM)").
func (g *Grids) CellOf(worldX, worldY, simSize float32) (x, y int) {
	if simSize <= 0 {
		return 0, 0
	}
	fx := worldX * float32(g.Size) / simSize
	fy := worldY * float32(g.Size) / simSize
	return wrapInt(int(fx), g.Size), wrapInt(int(fy), g.Size)
}

// Clamp01 clamps v into [0, 1], used after every pass that touches α, β, γ
// or trail RGB (spec.md invariant "Conservation under clamp").
func Clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
