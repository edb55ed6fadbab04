package heap

import "unsafe"

// This file is the narrow unsafe boundary spec.md §9 calls for: every raw
// pointer/uintptr conversion in the engine goes through one of these
// helpers, so the rest of the package can reason about blockLink values
// without repeating unsafe.Pointer arithmetic.

func addrOf(b *blockLink) uintptr {
	return uintptr(unsafe.Pointer(b))
}

func blockAtAddr(addr uintptr) *blockLink {
	return (*blockLink)(unsafe.Pointer(addr))
}

// blockEnd returns the address one past the last byte of b, using its raw
// size word (valid for both free and allocated blocks: decodeSize masks off
// metadata bits that are always zero on a free block anyway).
func blockEnd(b *blockLink) uintptr {
	return addrOf(b) + decodeSize(b.sizeWord)
}

// payloadOf returns the user-visible pointer for an allocated block: the
// first byte past its header.
func payloadOf(b *blockLink, header uintptr) unsafe.Pointer {
	return unsafe.Pointer(addrOf(b) + header)
}

// blockFromPayload steps back from a user pointer to the header that
// precedes it.
func blockFromPayload(ptr unsafe.Pointer, header uintptr) *blockLink {
	return blockAtAddr(uintptr(ptr) - header)
}
