package main

import (
	"bufio"
	"fmt"
	"io"
	"unsafe"

	"github.com/google/shlex"
	"github.com/tinygo-org/emheap/diagnostics"
	"github.com/tinygo-org/emheap/heap"
	"github.com/tinygo-org/emheap/heapopts"
	"github.com/tinygo-org/emheap/regionsrc"
)

// repl holds the REPL's session state: the live engine, the names a user has
// given its heaps and live pointers, and the byte slices backing each heap
// (kept referenced here so the Go runtime never reclaims memory the engine
// is still walking through unsafe.Pointer arithmetic).
type repl struct {
	engine    *heap.Engine
	out       io.Writer
	heapNames map[string]heap.HeapID
	regions   []regionsrc.Region
	ptrs      map[string]unsafe.Pointer
}

func newREPL(e *heap.Engine, out io.Writer) *repl {
	return &repl{
		engine:    e,
		out:       out,
		heapNames: make(map[string]heap.HeapID),
		ptrs:      make(map[string]unsafe.Pointer),
	}
}

func (r *repl) createNamedRegion(rs heapopts.RegionSpec) error {
	size, err := parseSize(rs.Size)
	if err != nil {
		return err
	}
	region := regionsrc.FromSlice(make([]byte, size))
	return r.registerRegion(rs.Name, region)
}

func (r *repl) registerRegion(name string, region regionsrc.Region) error {
	id, err := r.engine.Create(region.Bytes)
	if err != nil {
		return err
	}
	r.regions = append(r.regions, region)
	r.heapNames[name] = id
	fmt.Fprintf(r.out, "heap %q registered as id %d (%d bytes)\n", name, id, len(region.Bytes))
	return nil
}

// run reads lines from in until EOF or a "quit"/"exit" command, dispatching
// each through shlex so quoted file paths and region names survive
// word-splitting the way a shell would handle them.
func (r *repl) run(in *bufio.Scanner) {
	fmt.Fprint(r.out, "heapctl> ")
	for in.Scan() {
		line := in.Text()
		fields, err := shlex.Split(line)
		if err != nil {
			fmt.Fprintf(r.out, "parse error: %v\n", err)
			fmt.Fprint(r.out, "heapctl> ")
			continue
		}
		if len(fields) == 0 {
			fmt.Fprint(r.out, "heapctl> ")
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return
		}
		if err := r.dispatch(fields[0], fields[1:]); err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
		}
		fmt.Fprint(r.out, "heapctl> ")
	}
}

func (r *repl) heapByName(name string) (heap.HeapID, error) {
	id, ok := r.heapNames[name]
	if !ok {
		return 0, fmt.Errorf("no such heap %q", name)
	}
	return id, nil
}

func (r *repl) ptrByName(name string) (unsafe.Pointer, error) {
	p, ok := r.ptrs[name]
	if !ok {
		return nil, fmt.Errorf("no such pointer %q", name)
	}
	return p, nil
}

func (r *repl) checkInvariants(name string) error {
	id, err := r.heapByName(name)
	if err != nil {
		return err
	}
	diagnostics.CheckInvariants(r.engine, id).WriteTo(r.out)
	return nil
}
