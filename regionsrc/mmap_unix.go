//go:build unix

package regionsrc

import "golang.org/x/sys/unix"

// Mmap sources a Region from a fresh, anonymous, private mapping of size
// bytes — page-aligned memory the kernel hands out directly, closer to how
// firmware carves a heap out of a physical address range than a plain Go
// slice allocated by the runtime's own allocator. Close unmaps it.
func Mmap(size int) (Region, error) {
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return Region{}, err
	}
	return Region{
		Bytes: b,
		close: func() error {
			return unix.Munmap(b)
		},
	}, nil
}
