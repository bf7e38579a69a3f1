package forge

// Snapshot is a scoped capture of the manager's state. Releasing it feeds the
// saved copy back through the diffing mutators, restoring both the device and
// the cache to the captured configuration no matter what was touched in
// between.
//
// The usual pattern is
//
//	defer m.Snapshot().Release()
//
// which restores on every exit path. Snapshots may be nested; release the
// innermost first.
//
type Snapshot struct {
	saved    State
	m        *Manager
	released bool
}

// Snapshot captures the current state by value.
//
func (m *Manager) Snapshot() *Snapshot {
	return &Snapshot{saved: m.s.Clone(), m: m}
}

// Release restores the captured state. It never fails and is a no-op when
// called more than once.
//
func (s *Snapshot) Release() {
	if s.released {
		return
	}
	s.released = true
	s.m.setState(&s.saved)
}
