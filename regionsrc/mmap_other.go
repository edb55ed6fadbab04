//go:build !unix

package regionsrc

// Mmap falls back to a plain heap-allocated buffer on platforms where
// golang.org/x/sys/unix's Mmap isn't available (non-unix GOOS). The result
// behaves identically from heap.Engine's point of view; only the memory's
// provenance differs.
func Mmap(size int) (Region, error) {
	return Region{Bytes: make([]byte, size)}, nil
}
