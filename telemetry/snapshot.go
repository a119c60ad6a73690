package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lumenark/vitae/components"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// AgentSnapshot is the selected-agent readback record (spec.md "selected
// agent readback"): enough of an Agent's live state for offline inspection,
// without attempting to serialize the whole population for replay.
type AgentSnapshot struct {
	Version int   `json:"version"`
	Tick    int32 `json:"tick"`

	ID         uint64 `json:"id"`
	Generation uint32 `json:"generation"`

	PosX, PosY float32 `json:"pos"`
	Rotation   float32 `json:"rotation"`
	Energy     float32 `json:"energy"`
	Capacity   float32 `json:"capacity"`
	BodyCount  int32   `json:"body_count"`

	Genome string `json:"genome"`
}

// NewAgentSnapshot builds a readback record from a live agent.
func NewAgentSnapshot(tick int32, a *components.Agent) AgentSnapshot {
	return AgentSnapshot{
		Version:    SnapshotVersion,
		Tick:       tick,
		ID:         a.ID,
		Generation: a.Generation,
		PosX:       a.PosX,
		PosY:       a.PosY,
		Rotation:   a.Rotation,
		Energy:     a.Energy,
		Capacity:   a.Capacity,
		BodyCount:  a.BodyCount,
		Genome:     string(a.Genome[:a.GeneLength]),
	}
}

// SaveSnapshot writes a selected-agent snapshot to disk, returning the path.
func SaveSnapshot(snapshot *AgentSnapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("agent_%d_tick_%d.json", snapshot.ID, snapshot.Tick)
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a selected-agent snapshot from disk.
func LoadSnapshot(path string) (*AgentSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snapshot AgentSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}
