// Package heap implements the embedded general-purpose heap allocator: an
// address-ordered, first-fit, boundary-coalescing allocator that manages one
// or more caller-supplied contiguous byte regions ("heaps"), each addressed
// by a small opaque HeapID packed directly into every allocated block's
// header so that Free needs nothing but the pointer it was given.
//
// All pointer arithmetic lives behind the five allocator operations exported
// from this package (Create, Alloc, Free, ZeroedAlloc, Realloc); callers
// never see a blockLink, only the unsafe.Pointer payloads those operations
// hand out and take back.
package heap

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/tinygo-org/emheap/heapopts"
	"github.com/tinygo-org/emheap/zone"
)

// HeapID identifies a registered heap. Valid ids are small non-negative
// integers; Create returns a negative value, together with an error, when it
// fails (registry full or region too small).
type HeapID int8

// blockLink is the per-block header, placed immediately before every user
// payload. It mirrors emh_blockLink_t from the original C allocator this
// engine is grounded on: one size word (packing byte size, the allocation
// bit and the owning heap id) plus a free-list pointer that is only
// meaningful while the block is free.
type blockLink struct {
	sizeWord uintptr
	nextFree *blockLink
}

// headerSize is sizeof(blockLink) rounded up to the configured alignment,
// guaranteeing every user pointer handed back by Alloc is itself aligned.
func headerSize(alignment uintptr) uintptr {
	return alignUp(unsafe.Sizeof(blockLink{}), alignment)
}

// minBlockSize is the splitting threshold: the splitting rule carves off
// only a remainder strictly larger than this; a remainder of this size or
// smaller is absorbed into the allocated block instead (invariant 8 in
// spec.md).
func minBlockSize(alignment uintptr) uintptr {
	return headerSize(alignment) * 2
}

func alignUp(x, alignment uintptr) uintptr {
	return (x + alignment - 1) &^ (alignment - 1)
}

// heapLink is one registered heap's descriptor.
type heapLink struct {
	start     blockLink  // embedded head sentinel; start.nextFree is the list head
	end       *blockLink // end sentinel; nil means this slot is unused
	freeBytes uintptr
	lowWater  uintptr
}

func (h *heapLink) registered() bool {
	return h.end != nil
}

// Engine is the allocator: a fixed-capacity registry of heaps sharing one
// critical-section port. The zero value is not usable; construct with New.
type Engine struct {
	cfg       heapopts.Config
	alignment uintptr
	header    uintptr
	minBlock  uintptr
	zone      zone.Zone
	zoneOnce  sync.Once
	heaps     []heapLink
}

// New constructs an Engine from a validated Config and a critical-section
// port. If z is nil, a default mutex-backed port (zone.NewMutexZone) is
// used, matching the original library's "defaults are no-ops except a real
// mutex is required" port contract (spec.md §5).
func New(cfg heapopts.Config, z zone.Zone) (*Engine, error) {
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("emheap: invalid config: %w", err)
	}
	if z == nil {
		z = zone.NewMutexZone()
	}
	alignment := uintptr(cfg.Alignment)
	e := &Engine{
		cfg:       cfg,
		alignment: alignment,
		header:    headerSize(alignment),
		minBlock:  minBlockSize(alignment),
		zone:      z,
		heaps:     make([]heapLink, cfg.MaxHeaps),
	}
	return e, nil
}

// ensureZone lazily initialises the critical-section port exactly once,
// across the lifetime of the Engine, matching spec.md §4.3 step 1.
func (e *Engine) ensureZone() {
	e.zoneOnce.Do(e.zone.Create)
}

// NumHeaps returns the configured heap capacity.
func (e *Engine) NumHeaps() int {
	return len(e.heaps)
}

func (e *Engine) validHeapID(id HeapID) bool {
	return id >= 0 && int(id) < len(e.heaps)
}

func (e *Engine) heapAt(id HeapID) *heapLink {
	return &e.heaps[id]
}
