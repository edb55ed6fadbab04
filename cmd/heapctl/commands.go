package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/inhies/go-bytesize"
	"github.com/marcinbor85/gohex"
	"github.com/tinygo-org/emheap/regionsrc"
)

// dispatch runs one REPL command. Commands are deliberately terse verbs
// mirroring the allocator's own API (create/alloc/free/zalloc/realloc) plus
// a handful of inspection commands (stats/list/check) and one loader
// (load-hex).
func (r *repl) dispatch(cmd string, args []string) error {
	switch cmd {
	case "create":
		return r.cmdCreate(args)
	case "alloc":
		return r.cmdAlloc(args)
	case "zalloc":
		return r.cmdZalloc(args)
	case "free":
		return r.cmdFree(args)
	case "realloc":
		return r.cmdRealloc(args)
	case "stats":
		return r.cmdStats(args)
	case "list":
		return r.cmdList(args)
	case "blocks":
		return r.cmdBlocks(args)
	case "check":
		return r.cmdCheck(args)
	case "load-hex":
		return r.cmdLoadHex(args)
	case "help":
		return r.cmdHelp(args)
	default:
		return fmt.Errorf("unknown command %q (try \"help\")", cmd)
	}
}

func (r *repl) cmdCreate(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: create <name> <size>")
	}
	size, err := parseSize(args[1])
	if err != nil {
		return err
	}
	return r.registerRegion(args[0], regionsrc.FromSlice(make([]byte, size)))
}

func (r *repl) cmdAlloc(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: alloc <ptr-name> <heap-name> <size>")
	}
	id, err := r.heapByName(args[1])
	if err != nil {
		return err
	}
	size, err := parseSize(args[2])
	if err != nil {
		return err
	}
	p := r.engine.Alloc(id, size)
	if p == nil {
		return fmt.Errorf("alloc failed (heap %q exhausted or size rejected)", args[1])
	}
	r.ptrs[args[0]] = p
	fmt.Fprintf(r.out, "%s allocated (%s)\n", args[0], bytesize.New(float64(size)))
	return nil
}

func (r *repl) cmdZalloc(args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("usage: zalloc <ptr-name> <heap-name> <n> <elem-size>")
	}
	id, err := r.heapByName(args[1])
	if err != nil {
		return err
	}
	n, err := strconv.ParseUint(args[2], 10, 64)
	if err != nil {
		return fmt.Errorf("bad element count %q: %w", args[2], err)
	}
	elemSize, err := parseSize(args[3])
	if err != nil {
		return err
	}
	p := r.engine.ZeroedAlloc(id, uintptr(n), elemSize)
	if p == nil {
		return fmt.Errorf("zalloc failed (heap %q exhausted, overflow, or size rejected)", args[1])
	}
	r.ptrs[args[0]] = p
	fmt.Fprintf(r.out, "%s allocated and zeroed (%d x %s)\n", args[0], n, bytesize.New(float64(elemSize)))
	return nil
}

func (r *repl) cmdFree(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: free <ptr-name>")
	}
	p, err := r.ptrByName(args[0])
	if err != nil {
		return err
	}
	r.engine.Free(p)
	delete(r.ptrs, args[0])
	fmt.Fprintf(r.out, "%s freed\n", args[0])
	return nil
}

func (r *repl) cmdRealloc(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: realloc <ptr-name> <new-size>")
	}
	p, err := r.ptrByName(args[0])
	if err != nil {
		return err
	}
	size, err := parseSize(args[1])
	if err != nil {
		return err
	}
	newPtr := r.engine.Realloc(p, size)
	if newPtr == nil && size != 0 {
		return fmt.Errorf("realloc failed, %s left intact", args[0])
	}
	if size == 0 {
		delete(r.ptrs, args[0])
		fmt.Fprintf(r.out, "%s freed (realloc to zero)\n", args[0])
		return nil
	}
	r.ptrs[args[0]] = newPtr
	fmt.Fprintf(r.out, "%s resized to %s\n", args[0], bytesize.New(float64(size)))
	return nil
}

func (r *repl) cmdStats(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: stats <heap-name>")
	}
	id, err := r.heapByName(args[0])
	if err != nil {
		return err
	}
	stats := r.engine.Stats(id)
	fmt.Fprintf(r.out, "%s: free=%s low-water=%s\n", args[0],
		bytesize.New(float64(stats.FreeBytes)), bytesize.New(float64(stats.LowWater)))
	return nil
}

func (r *repl) cmdList(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("usage: list")
	}
	var lines []string
	for name, id := range r.heapNames {
		stats := r.engine.Stats(id)
		lines = append(lines, fmt.Sprintf("%-16s id=%d free=%s", name, id, bytesize.New(float64(stats.FreeBytes))))
	}
	r.page(lines)
	return nil
}

// cmdBlocks dumps every free block of one heap, in address order. This is
// the listing most likely to run past a terminal's height once a heap has
// fragmented, so it pages through r.page instead of printing unconditionally.
func (r *repl) cmdBlocks(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: blocks <heap-name>")
	}
	id, err := r.heapByName(args[0])
	if err != nil {
		return err
	}
	free := r.engine.FreeList(id)
	lines := make([]string, 0, len(free))
	for _, b := range free {
		lines = append(lines, fmt.Sprintf("  offset=%-10d size=%s", b.Offset, bytesize.New(float64(b.Size))))
	}
	if len(lines) == 0 {
		lines = append(lines, "  (no free blocks)")
	}
	r.page(lines)
	return nil
}

func (r *repl) cmdCheck(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: check <heap-name>")
	}
	return r.checkInvariants(args[0])
}

// cmdLoadHex loads an Intel HEX image and registers its first contiguous
// data segment as a new heap (any further segments are ignored), letting a firmware image's existing memory layout
// double as a heap region for experimentation.
func (r *repl) cmdLoadHex(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: load-hex <heap-name> <path.hex>")
	}
	f, err := os.Open(args[1])
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[1], err)
	}
	defer f.Close()

	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(f); err != nil {
		return fmt.Errorf("parsing %s: %w", args[1], err)
	}

	segments := mem.GetDataSegments()
	if len(segments) == 0 {
		return fmt.Errorf("%s: no data segments", args[1])
	}
	if len(segments) > 1 {
		fmt.Fprintf(r.out, "warning: %s has %d segments, using the first as the heap region\n", args[1], len(segments))
	}

	return r.registerRegion(args[0], regionsrc.FromSlice(segments[0].Data))
}

func (r *repl) cmdHelp([]string) error {
	fmt.Fprint(r.out, `commands:
  create <name> <size>                register a new heap backed by a fresh region
  alloc <ptr> <heap> <size>            allocate, binding the result to <ptr>
  zalloc <ptr> <heap> <n> <elem-size>  allocate n*elem-size bytes, zeroed
  free <ptr>                           release a pointer
  realloc <ptr> <new-size>             resize a pointer, moving it if needed
  stats <heap>                         print free bytes and low-water mark
  list                                 list all registered heaps
  blocks <heap>                        list every free block of one heap
  check <heap>                         run invariant checks and print findings
  load-hex <heap> <path.hex>           register a heap from an Intel HEX image
  help                                 this message
  quit | exit                          leave the REPL
`)
	return nil
}

func parseSize(s string) (uintptr, error) {
	bs, err := bytesize.Parse(s)
	if err != nil {
		return 0, fmt.Errorf("bad size %q: %w", s, err)
	}
	if bs < 0 {
		return 0, fmt.Errorf("size %q must not be negative", s)
	}
	return uintptr(bs), nil
}
