package tableau

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// RenderOptions controls tree rendering.
type RenderOptions struct {
	// Color enables ANSI styling.
	Color bool
	// Indent is repeated once per depth level. Defaults to two spaces.
	Indent string
	// Annotate appends each node's id and live child count.
	Annotate bool
}

var (
	liveStyle   = color.New(color.Bold)
	deadStyle   = color.New(color.Faint)
	markerStyle = color.New(color.FgRed, color.Bold)
)

const deadMarker = "✘"

// Render writes the tree depth first, one node per line, children indented
// below their parent. Dead nodes are dimmed and the node that closed a
// branch carries a ✘ marker.
func (t *tree[N]) Render(w io.Writer, opts RenderOptions) error {
	if len(t.nodes) == 0 {
		return nil
	}
	indent := opts.Indent
	if indent == "" {
		indent = "  "
	}

	style := func(c *color.Color) *color.Color {
		out := *c
		if opts.Color {
			out.EnableColor()
		} else {
			out.DisableColor()
		}
		return &out
	}
	live, dead, marker := style(liveStyle), style(deadStyle), style(markerStyle)

	type frame struct {
		id    NodeID
		depth int
	}
	stack := []frame{{id: t.Root()}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[f.id]

		var line strings.Builder
		line.WriteString(strings.Repeat(indent, f.depth))
		text := fmt.Sprint(n.value)
		if n.death == Alive {
			line.WriteString(live.Sprint(text))
		} else {
			line.WriteString(dead.Sprint(text))
		}
		if n.death == Contradiction {
			line.WriteString(" " + marker.Sprint(deadMarker))
		}
		if opts.Annotate {
			fmt.Fprintf(&line, " [#%d live=%d %s]", f.id, n.liveChildren, n.death)
		}
		line.WriteByte('\n')
		if _, err := io.WriteString(w, line.String()); err != nil {
			return fmt.Errorf("render node %d: %w", f.id, err)
		}

		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, frame{id: n.children[i], depth: f.depth + 1})
		}
	}
	return nil
}

// String renders the tree without color.
func (r *Result[N]) String() string {
	var b strings.Builder
	_ = r.Render(&b, RenderOptions{})
	return b.String()
}
