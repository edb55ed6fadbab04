// Package zone is the critical-section port the heap engine depends on
// (spec.md §5). It is intentionally the narrowest possible interface: a
// lazy one-time Create hook plus Lock/Unlock, mirroring the three C macros
// __emh_create_zone__/__emh_lock_zone__/__emh_unlock_zone__ from the
// original allocator this port is grounded on
// (_examples/original_source/emh_port.h), and named in the spirit of the
// teacher's own critical-section primitives in src/internal/task (PMutex,
// lazily-initialised, zero value ready for use).
package zone

import "sync"

// Zone is the three-hook critical-section port a heap.Engine is
// constructed with. Create is invoked exactly once, lazily, on the first
// call that needs the zone. Lock/Unlock must nest correctly around every
// mutating engine operation; implementations must guarantee Unlock runs on
// every return path.
type Zone interface {
	Create()
	Lock()
	Unlock()
}

// MutexZone is the default Zone: a single mutex per MutexZone value, suitable for
// coarse-grained mutual exclusion under preemptive multithreading. It
// provides no per-heap parallelism — two heaps guarded by the same
// MutexZone serialise against each other, exactly as spec.md §5 describes
// for the default port.
type MutexZone struct {
	mu sync.Mutex
}

// NewMutexZone returns a ready-to-use MutexZone. Its zero value would also
// work (sync.Mutex needs no initialisation), but NewMutexZone is provided
// for symmetry with callers that construct every dependency explicitly.
func NewMutexZone() *MutexZone {
	return &MutexZone{}
}

// Create is a no-op: sync.Mutex's zero value is already usable.
func (z *MutexZone) Create() {}

// Lock acquires the zone's mutex.
func (z *MutexZone) Lock() {
	z.mu.Lock()
}

// Unlock releases the zone's mutex.
func (z *MutexZone) Unlock() {
	z.mu.Unlock()
}
