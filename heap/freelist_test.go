package heap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCoalesceBackwardAndForward exercises both merge directions of
// linkFree indirectly through the public API: three adjacent allocations,
// freed in an order that forces first a backward merge (freeing the
// middle block after the first) and then both merges at once (freeing the
// last block, which joins the merged pair below it and the trailing free
// block above it), ending with exactly one free block covering the whole
// region.
func TestCoalesceBackwardAndForward(t *testing.T) {
	e := newTestEngine(t, 8, 1)
	id, err := e.Create(make([]byte, 512))
	require.NoError(t, err)
	initial := e.Stats(id)

	a := e.Alloc(id, 32)
	b := e.Alloc(id, 32)
	c := e.Alloc(id, 32)
	require.NotNil(t, a)
	require.NotNil(t, b)
	require.NotNil(t, c)

	// Free a, then b: b's free should backward-coalesce into a's free
	// block since a is the lower address and contiguous with b.
	e.Free(a)
	require.Len(t, e.FreeList(id), 2)

	e.Free(b)
	listAfterB := e.FreeList(id)
	require.Len(t, listAfterB, 2, "a+b should have merged into one block, trailing free remains separate")

	// Free c: backward-coalesces into the merged a+b block and then
	// forward-coalesces with the trailing free block, ending with a single
	// free block spanning the whole heap.
	e.Free(c)
	final := e.FreeList(id)
	require.Len(t, final, 1)
	require.Equal(t, initial.FreeBytes, final[0].Size)

	stats := e.Stats(id)
	require.Equal(t, initial.FreeBytes, stats.FreeBytes)
}

func TestFreeListIsAddressOrdered(t *testing.T) {
	e := newTestEngine(t, 8, 1)
	id, err := e.Create(make([]byte, 1024))
	require.NoError(t, err)

	a := e.Alloc(id, 32)
	b := e.Alloc(id, 32)
	c := e.Alloc(id, 32)
	require.NotNil(t, a)
	require.NotNil(t, b)
	require.NotNil(t, c)

	// Free in reverse address order; the resulting free list must still
	// come back in ascending address order.
	e.Free(c)
	e.Free(b)
	e.Free(a)

	list := e.FreeList(id)
	for i := 1; i < len(list); i++ {
		require.Less(t, list[i-1].Offset, list[i].Offset)
	}
}
