// Package diagnostics formats heap invariant-check reports and prints them
// in a consistent way — the same job the teacher's diagnostics package does
// for compiler errors (sorted, printable, one Finding per problem), applied
// here to the free-list invariants spec.md §3 and §8 require every heap to
// satisfy between API calls.
package diagnostics

import (
	"fmt"
	"io"
	"sort"

	"github.com/tinygo-org/emheap/heap"
)

// Finding is a single invariant violation (or informational note) about one
// heap's current state.
type Finding struct {
	HeapID heap.HeapID
	Msg    string
}

// Report is the full set of findings for one or more heaps. CheckInvariants
// returns it sorted by message for stable, readable output; WriteTo prints
// findings in slice order.
type Report []Finding

// CheckInvariants inspects heap id's free list and counters through the
// engine's public API only (Stats, FreeList) — it never reaches past the
// unsafe boundary heap.Engine keeps to itself — and reports free blocks that
// are out of address order or overlap, adjacent free blocks left
// uncoalesced, a free-list total that differs from FreeBytes, and a
// low-water mark above FreeBytes.
func CheckInvariants(e *heap.Engine, id heap.HeapID) Report {
	var report Report

	blocks := e.FreeList(id)
	stats := e.Stats(id)

	var sum uintptr
	for i, b := range blocks {
		sum += b.Size
		if i == 0 {
			continue
		}
		prev := blocks[i-1]
		if prev.Offset+prev.Size > b.Offset {
			report = append(report, Finding{
				HeapID: id,
				Msg:    fmt.Sprintf("free list out of order: block at offset %d overlaps block at offset %d", prev.Offset, b.Offset),
			})
		} else if prev.Offset+prev.Size == b.Offset {
			report = append(report, Finding{
				HeapID: id,
				Msg:    fmt.Sprintf("adjacent free blocks were not coalesced: offsets %d and %d", prev.Offset, b.Offset),
			})
		}
	}

	if sum != stats.FreeBytes {
		report = append(report, Finding{
			HeapID: id,
			Msg:    fmt.Sprintf("free list totals %d bytes but FreeBytes reports %d", sum, stats.FreeBytes),
		})
	}

	if stats.LowWater > stats.FreeBytes {
		report = append(report, Finding{
			HeapID: id,
			Msg:    fmt.Sprintf("low-water mark %d exceeds current FreeBytes %d", stats.LowWater, stats.FreeBytes),
		})
	}

	sort.SliceStable(report, func(i, j int) bool {
		return report[i].Msg < report[j].Msg
	})

	return report
}

// WriteTo prints the report, one finding per line, or a clean-bill-of-health
// line if there are no findings.
func (r Report) WriteTo(w io.Writer) {
	if len(r) == 0 {
		fmt.Fprintln(w, "no invariant violations found")
		return
	}
	for _, f := range r {
		fmt.Fprintf(w, "heap %d: %s\n", f.HeapID, f.Msg)
	}
}

// OK reports whether the report is clean.
func (r Report) OK() bool {
	return len(r) == 0
}
