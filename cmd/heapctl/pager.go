package main

import (
	"fmt"

	"github.com/mattn/go-tty"
)

// pageSize is how many lines of listing output (list, blocks) are shown
// before the REPL pauses for a keystroke.
const pageSize = 20

// page prints lines to r.out, pausing every pageSize lines for a single
// keystroke read from the controlling terminal in raw mode — the
// "press any key" idiom github.com/mattn/go-tty exists to provide, in place
// of a line-buffered "press enter" prompt that would otherwise need its own
// bufio.Reader over stdin, competing with the REPL's own input loop.
func (r *repl) page(lines []string) {
	for i, line := range lines {
		fmt.Fprintln(r.out, line)
		if (i+1)%pageSize == 0 && i+1 < len(lines) {
			r.waitForKeystroke(len(lines) - i - 1)
		}
	}
}

// waitForKeystroke blocks for one raw keypress on the controlling terminal,
// or returns immediately if no controlling terminal can be opened: there is
// no key to wait for in that case. Whether stdin itself is a terminal is not
// checked.
func (r *repl) waitForKeystroke(remaining int) {
	t, err := tty.Open()
	if err != nil {
		return
	}
	defer t.Close()

	fmt.Fprintf(r.out, "-- more (%d remaining, press any key) --", remaining)
	t.ReadRune()
	fmt.Fprint(r.out, "\r                                              \r")
}
