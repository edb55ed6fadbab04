// Package regionsrc supplies byte regions for heap.Engine.Create to manage.
// The engine itself never acquires memory on its own (spec.md's Non-goals
// rule out automatic heap acquisition from the OS); these are opt-in
// sources a caller reaches for explicitly, the same way
// _examples/other_examples's tamago dma package is handed a raw start/size
// pair rather than fetching one itself.
package regionsrc

// Region is a byte slice a caller has decided to back a heap with, plus an
// optional teardown function for sources that hold an OS-level resource
// (an mmap mapping).
type Region struct {
	Bytes []byte
	close func() error
}

// Close releases any OS resource backing the region. It is a no-op for
// regions that are just plain Go byte slices.
func (r Region) Close() error {
	if r.close == nil {
		return nil
	}
	return r.close()
}

// FromSlice wraps an existing byte slice as a Region with no teardown,
// the trivial case: a caller-owned buffer, a slice of an mmap'd file, or
// test fixture data.
func FromSlice(b []byte) Region {
	return Region{Bytes: b}
}
