package heap

import "unsafe"

// Word width of the host, in bits. The codec below packs the allocation bit
// and the heap-id field into the top bits of a single uintptr, so targets
// narrower than 32 bits cannot represent it: the high bits used here would
// collide with realistic block sizes.
const wordBits = unsafe.Sizeof(uintptr(0)) * 8

func init() {
	if wordBits < 32 {
		panic("emheap: heap engine requires a word size of at least 32 bits")
	}
}

// heapIDBits is K in spec terms: the width of the heap-id field.
const heapIDBits = 7

const (
	// allocBit is bit (W-16): set when a block is allocated.
	allocBit = uintptr(1) << (wordBits - 16)

	// heapIDShift positions the heap-id field just above the allocation bit.
	heapIDShift = wordBits - 15

	// heapIDBitmask masks a raw (unshifted) heap id to its 7-bit range.
	heapIDBitmask = uintptr(1)<<heapIDBits - 1

	// heapIDMask masks the heap-id field in place, within the size word.
	heapIDMask = heapIDBitmask << heapIDShift

	// metadataMask covers every bit the codec reserves (alloc bit + heap-id
	// field); a requested size must not collide with any of them.
	metadataMask = allocBit | heapIDMask
)

// encodeAlloc returns the size word for an allocated block of the given
// byte size and owning heap id. size must already be rounded and must not
// overlap metadataMask.
func encodeAlloc(size uintptr, id HeapID) uintptr {
	return size | allocBit | packHeapID(id)
}

// packHeapID shifts a heap id into its field position within the size word.
func packHeapID(id HeapID) uintptr {
	return (uintptr(id) & heapIDBitmask) << heapIDShift
}

// decodeSize extracts the byte size (including header) from a size word.
func decodeSize(word uintptr) uintptr {
	return word &^ metadataMask
}

// decodeAllocated reports whether the allocation bit is set in a size word.
func decodeAllocated(word uintptr) bool {
	return word&allocBit != 0
}

// decodeHeapID extracts the owning heap id from a size word.
func decodeHeapID(word uintptr) HeapID {
	return HeapID((word >> heapIDShift) & heapIDBitmask)
}

// sizeCollidesWithMetadata reports whether a rounded size has any bit set
// that the codec reserves for the allocation bit or the heap-id field. Per
// spec, such a size must be rejected rather than silently truncated.
func sizeCollidesWithMetadata(size uintptr) bool {
	return size&metadataMask != 0
}
