// Package heapopts holds the allocator's compile-time-style configuration
// as a validated Go value, the same role compileopts.Options plays for the
// teacher's compiler: a plain struct plus a Verify/Validate method that
// enumerates the legal values and rejects everything else with a
// descriptive error (compileopts/options.go).
package heapopts

import (
	"fmt"
)

// validAlignments enumerates the only legal ALIGNMENT values (spec.md §6).
var validAlignments = []int{1, 2, 4, 8, 16, 32}

// MaxHeapCap is the hard cap on MaxHeaps: heap ids are packed into a 7-bit
// header field, so more than 127 heaps cannot be addressed.
const MaxHeapCap = 127

// defaultMaxHeaps is used when MaxHeaps is left at zero (spec.md §6: "If
// omitted, defaults to 2").
const defaultMaxHeaps = 2

// Config is the engine's construction-time configuration: the analogue of
// the original C library's EMH_MALLOC_BYTE_ALIGNMENT / EMH_MALLOC_N_HEAPS
// preprocessor macros, expressed as ordinary validated fields since Go has
// no preprocessor to gate them at compile time.
type Config struct {
	// Alignment is the byte alignment every block header and user pointer
	// is rounded to. Must be one of 1, 2, 4, 8, 16, 32.
	Alignment int `yaml:"alignment"`

	// MaxHeaps is the registry's fixed capacity. Must be in (0, 127]. Zero
	// means "use the default of 2".
	MaxHeaps int `yaml:"maxHeaps"`
}

// DefaultConfig returns the configuration the original library falls back
// to when its macros are left unset: alignment matching a 64-bit word and
// a two-heap registry.
func DefaultConfig() Config {
	return Config{Alignment: 8, MaxHeaps: defaultMaxHeaps}
}

// Validate checks Config against spec.md §6's enumerated legal values. It
// does not fill in defaults: a MaxHeaps of zero passes, and Normalize is
// what replaces it with the default.
func (c Config) Validate() error {
	if !isInArray(validAlignments, c.Alignment) {
		return fmt.Errorf("heapopts: invalid alignment %d: valid values are %v", c.Alignment, validAlignments)
	}
	if c.MaxHeaps < 0 {
		return fmt.Errorf("heapopts: maxHeaps must not be negative, got %d", c.MaxHeaps)
	}
	if c.MaxHeaps > MaxHeapCap {
		return fmt.Errorf("heapopts: maxHeaps %d exceeds the hard cap of %d", c.MaxHeaps, MaxHeapCap)
	}
	return nil
}

// Normalize returns c with MaxHeaps defaulted to defaultMaxHeaps if it was
// left at zero. Call this (or rely on New, which calls it) before using a
// freshly decoded Config.
func (c Config) Normalize() Config {
	if c.MaxHeaps == 0 {
		c.MaxHeaps = defaultMaxHeaps
	}
	return c
}

func isInArray(haystack []int, needle int) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}
