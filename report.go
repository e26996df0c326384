package tableaux

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

var (
	holdsStyle  = color.New(color.FgGreen, color.Bold)
	failsStyle  = color.New(color.FgRed, color.Bold)
	worldStyle  = color.New(color.FgCyan)
	headerStyle = color.New(color.Bold)
)

// WriteText prints the verdict, the countermodel with its world column
// aligned, and the tree when one was rendered.
func (r *Report) WriteText(w io.Writer, useColor bool) error {
	paint := func(c *color.Color, s string) string {
		cc := *c
		if useColor {
			cc.EnableColor()
		} else {
			cc.DisableColor()
		}
		return cc.Sprint(s)
	}

	var b strings.Builder
	if r.Holds {
		fmt.Fprintf(&b, "%s %s holds in %s\n", paint(holdsStyle, "✔"), r.Statement, r.System)
	} else {
		fmt.Fprintf(&b, "%s %s does not hold in %s\n", paint(failsStyle, "✘"), r.Statement, r.System)
	}

	if len(r.Entries) > 0 {
		b.WriteString(paint(headerStyle, "Countermodel:") + "\n")
		width := 0
		for _, e := range r.Entries {
			width = max(width, runewidth.StringWidth(e.Text))
		}
		for _, e := range r.Entries {
			if e.World == "" {
				fmt.Fprintf(&b, "➡ %s\n", e.Text)
				continue
			}
			fmt.Fprintf(&b, "➡ %s  %s\n", runewidth.FillRight(e.Text, width), paint(worldStyle, "@"+e.World))
		}
		if r.Model != "" {
			b.WriteString(r.Model)
			if !strings.HasSuffix(r.Model, "\n") {
				b.WriteByte('\n')
			}
		}
	}

	if r.Tree != "" {
		b.WriteString(paint(headerStyle, "Tableau:") + "\n")
		b.WriteString(r.Tree)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
