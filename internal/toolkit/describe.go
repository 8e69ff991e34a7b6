package toolkit

import (
	"fmt"
	"io"
	"strings"
)

// Describe writes an indented outline of the element tree below e, top-most
// child first.
func Describe(w io.Writer, e Element) {
	describe(w, e, 0)
}

func describe(w io.Writer, e Element, depth int) {
	x, y := e.Position()
	state := ""
	if !e.Visible() {
		state = " (hidden)"
	}
	name := strings.TrimPrefix(fmt.Sprintf("%T", e), "*toolkit.")
	fmt.Fprintf(w, "%s%s %v at %d,%d%s\n", strings.Repeat("  ", depth), name, e.Dimensions(), x, y, state)

	c, ok := e.(Container)
	if !ok {
		return
	}
	for _, child := range c.container().children {
		describe(w, child, depth+1)
	}
}
