package heap

import (
	"errors"
	"unsafe"
)

// ErrRegistryFull is returned by Create when every configured heap slot is
// already in use.
var ErrRegistryFull = errors.New("emheap: heap registry full")

// ErrRegionTooSmall is returned by Create when, after alignment trimming,
// the region cannot hold even an end sentinel and one free block.
var ErrRegionTooSmall = errors.New("emheap: region too small to hold a heap")

// Create registers region as a new heap and returns its id. The region may
// be misaligned; leading bytes are trimmed to the configured alignment
// before the usable capacity is computed (spec.md §6). The region's backing
// array must remain live and untouched by the caller for as long as the
// returned heap id is used: the engine places its free-list metadata
// directly inside it.
func (e *Engine) Create(region []byte) (HeapID, error) {
	e.ensureZone()
	e.zone.Lock()
	defer e.zone.Unlock()

	slot := HeapID(-1)
	for i := range e.heaps {
		if !e.heaps[i].registered() {
			slot = HeapID(i)
			break
		}
	}
	if slot < 0 {
		return -1, ErrRegistryFull
	}

	if len(region) == 0 {
		return -1, ErrRegionTooSmall
	}
	base := uintptr(unsafe.Pointer(&region[0]))
	regionEnd := base + uintptr(len(region))

	alignedStart := alignUp(base, e.alignment)
	if alignedStart >= regionEnd || regionEnd-alignedStart < e.header+e.minBlock {
		return -1, ErrRegionTooSmall
	}

	alignedTop := (regionEnd - e.header) &^ (e.alignment - 1)
	if alignedTop <= alignedStart {
		return -1, ErrRegionTooSmall
	}

	h := &e.heaps[slot]

	end := blockAtAddr(alignedTop)
	end.sizeWord = 0
	end.nextFree = nil
	h.end = end

	h.start.sizeWord = 0
	h.start.nextFree = blockAtAddr(alignedStart)

	initial := h.start.nextFree
	initial.sizeWord = alignedTop - alignedStart
	initial.nextFree = end

	h.freeBytes = initial.sizeWord
	h.lowWater = initial.sizeWord

	return slot, nil
}
