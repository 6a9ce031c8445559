package servo

import "sync"

// StateTable is the authoritative record of each joint's last commanded
// angle. Sweeps in one pose target disjoint joints, so per-entry locking is
// unnecessary; the coarse RWMutex exists so external readers (status API)
// never observe a torn snapshot.
type StateTable struct {
	mu     sync.RWMutex
	angles map[Joint]int
}

// NewStateTable creates a table with every joint at the neutral angle.
func NewStateTable() *StateTable {
	angles := make(map[Joint]int, len(channels))
	for _, j := range AllJoints() {
		angles[j] = NeutralAngle
	}
	return &StateTable{angles: angles}
}

// Get returns the last commanded angle for a joint. Unknown joints read as
// neutral.
func (t *StateTable) Get(j Joint) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if a, ok := t.angles[j]; ok {
		return a
	}
	return NeutralAngle
}

// Set records the commanded angle for a joint. Only the motion primitive
// engine writes here, after a sweep completes.
func (t *StateTable) Set(j Joint, angle int) {
	t.mu.Lock()
	t.angles[j] = angle
	t.mu.Unlock()
}

// Snapshot returns a copy of all joint angles.
func (t *StateTable) Snapshot() map[Joint]int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[Joint]int, len(t.angles))
	for j, a := range t.angles {
		out[j] = a
	}
	return out
}
