// Command heapctl is an interactive driver for the emheap allocator: a REPL
// over one or more heap.Engine heaps, for exercising and inspecting the
// allocator the way a developer bringing up a new board pokes at a
// bootloader's memory monitor rather than writing a throwaway test.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/tinygo-org/emheap/heap"
	"github.com/tinygo-org/emheap/heapopts"
	"github.com/tinygo-org/emheap/zone"
)

func main() {
	var configPath string
	var alignment int
	var maxHeaps int

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: heapctl [flags]\n")
		fmt.Fprintf(os.Stderr, "Interactive REPL over one or more emheap heaps.\n")
		flag.PrintDefaults()
	}
	flag.StringVar(&configPath, "config", "", "YAML file with allocator config and named regions (see heapopts.LoadConfig)")
	flag.IntVar(&alignment, "alignment", 8, "block alignment, ignored if -config is set")
	flag.IntVar(&maxHeaps, "max-heaps", 2, "heap registry capacity, ignored if -config is set")
	flag.Parse()

	out := colorable.NewColorableStdout()

	cfg := heapopts.Config{Alignment: alignment, MaxHeaps: maxHeaps}
	var regions []heapopts.RegionSpec
	if configPath != "" {
		var err error
		cfg, regions, err = heapopts.LoadConfig(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "heapctl: %v\n", err)
			os.Exit(1)
		}
	}

	engine, err := heap.New(cfg, zone.NewMutexZone())
	if err != nil {
		fmt.Fprintf(os.Stderr, "heapctl: %v\n", err)
		os.Exit(1)
	}

	r := newREPL(engine, out)
	for _, rs := range regions {
		if err := r.createNamedRegion(rs); err != nil {
			fmt.Fprintf(out, "heapctl: region %q: %v\n", rs.Name, err)
		}
	}

	r.run(bufio.NewScanner(os.Stdin))
}
