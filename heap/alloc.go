package heap

import "unsafe"

// Alloc returns a pointer to a payload of at least requested bytes from the
// given heap, or nil on any failure: bad heap id, bad size (zero, or one
// that would collide with the codec's metadata bits, or whose
// header-inclusive rounded form overflows), or exhaustion (no free block
// fits). Never logs, never retries, never panics on caller error.
func (e *Engine) Alloc(id HeapID, requested uintptr) unsafe.Pointer {
	if !e.validHeapID(id) {
		return nil
	}
	if requested == 0 {
		return nil
	}

	adjusted, ok := e.roundedBlockSize(requested)
	if !ok {
		return nil
	}

	e.ensureZone()
	e.zone.Lock()
	defer e.zone.Unlock()

	h := e.heapAt(id)
	if adjusted > h.freeBytes {
		return nil
	}

	predecessor := &h.start
	block := h.start.nextFree
	for block != h.end && block.sizeWord < adjusted {
		predecessor = block
		block = block.nextFree
	}
	if block == h.end {
		return nil
	}

	// Unlink the chosen block.
	predecessor.nextFree = block.nextFree

	chosenSize := block.sizeWord
	if chosenSize-adjusted > e.minBlock {
		remainder := blockAtAddr(addrOf(block) + adjusted)
		remainder.sizeWord = chosenSize - adjusted
		block.sizeWord = adjusted
		linkFree(h, remainder)
	}

	// Order matters: decrement freeBytes using the block's raw size before
	// the allocation bit is stamped in, then compare against lowWater. A
	// naive reordering under-reports the watermark (see DESIGN.md).
	h.freeBytes -= block.sizeWord
	if h.freeBytes < h.lowWater {
		h.lowWater = h.freeBytes
	}

	block.sizeWord = encodeAlloc(block.sizeWord, id)
	block.nextFree = nil

	return payloadOf(block, e.header)
}

// roundedBlockSize adds the header size to requested and rounds up to the
// configured alignment, rejecting sizes that would overflow or collide with
// the codec's reserved bits.
func (e *Engine) roundedBlockSize(requested uintptr) (uintptr, bool) {
	if requested > ^uintptr(0)-e.header-(e.alignment-1) {
		return 0, false // would overflow below
	}
	total := requested + e.header
	rounded := alignUp(total, e.alignment)
	if sizeCollidesWithMetadata(rounded) {
		return 0, false
	}
	return rounded, true
}

// Free releases the block pointed to by ptr back to its owning heap, the
// heap id having been recovered from the block's own header: callers never
// need to track which heap a pointer came from. A nil ptr is a no-op.
// Corrupted or already-free headers are detected best-effort (alloc bit
// clear, non-nil nextFree, or an out-of-range heap id) and silently
// ignored rather than causing a crash — spec.md treats this as the
// double-free guard, not a hard error.
func (e *Engine) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	block := blockFromPayload(ptr, e.header)

	// spec.md §5: the zone lock is held for the entirety of free, with no
	// carve-out like realloc's. The corruption/double-free guard below must
	// run under that same lock: checking it beforehand would let two
	// concurrent Free calls on the same pointer both pass validation before
	// either takes the lock, then both mutate the free list.
	e.ensureZone()
	e.zone.Lock()
	defer e.zone.Unlock()

	id := decodeHeapID(block.sizeWord)
	allocated := decodeAllocated(block.sizeWord)
	if !allocated || block.nextFree != nil || !e.validHeapID(id) {
		return
	}

	h := e.heapAt(id)
	block.sizeWord = decodeSize(block.sizeWord)
	h.freeBytes += block.sizeWord
	linkFree(h, block)
}

// ZeroedAlloc allocates space for n elements of elemSize bytes each and
// zeroes the entire returned payload (including any tail absorbed by the
// splitting rule). Returns nil on overflow of n*elemSize or on any Alloc
// failure.
func (e *Engine) ZeroedAlloc(id HeapID, n, elemSize uintptr) unsafe.Pointer {
	if n == 0 || elemSize == 0 {
		return nil
	}
	if elemSize > ^uintptr(0)/n {
		return nil // n * elemSize would overflow
	}
	total := n * elemSize

	ptr := e.Alloc(id, total)
	if ptr == nil {
		return nil
	}

	block := blockFromPayload(ptr, e.header)
	payloadSize := decodeSize(block.sizeWord) - e.header
	buf := unsafe.Slice((*byte)(ptr), payloadSize)
	for i := range buf {
		buf[i] = 0
	}
	return ptr
}

// Realloc resizes the allocation at ptr to newSize bytes, preserving
// min(oldSize, newSize) bytes of content. ptr == nil returns nil (no heap id
// can be recovered from a nil pointer). newSize == 0 frees ptr and returns
// nil. On failure to grow, the original block is left completely intact.
func (e *Engine) Realloc(ptr unsafe.Pointer, newSize uintptr) unsafe.Pointer {
	if ptr == nil {
		return nil
	}
	if newSize == 0 {
		e.Free(ptr)
		return nil
	}

	block := blockFromPayload(ptr, e.header)
	id := decodeHeapID(block.sizeWord)
	oldBlockSize := decodeSize(block.sizeWord)

	// Fast path: newSize rounded to alignment (no header added, matching
	// the original allocator's comparison) against the block's own raw
	// stored size. This is what lets Realloc(p, decodeSize-of-p's-header)
	// return p unchanged without touching the free list.
	if alignUp(newSize, e.alignment) == oldBlockSize {
		return ptr
	}

	newPtr := e.Alloc(id, newSize)
	if newPtr == nil {
		return nil
	}

	oldPayload := oldBlockSize - e.header
	n := oldPayload
	if newSize < n {
		n = newSize
	}
	src := unsafe.Slice((*byte)(ptr), n)
	dst := unsafe.Slice((*byte)(newPtr), n)
	copy(dst, src)

	e.Free(ptr)
	return newPtr
}
