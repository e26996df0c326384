package cmd

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/gnoswap-labs/tableaux/internal/formula"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols",
	Short: "List the logical symbols and their ASCII spellings",
	RunE: func(cmd *cobra.Command, args []string) error {
		syms := append(formula.Symbols(formula.DialectModal), formula.SymTurnstile)
		width := runewidth.StringWidth("SYMBOL")
		for _, s := range syms {
			width = max(width, runewidth.StringWidth(s.Name))
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s  UNICODE  ASCII\n", runewidth.FillRight("SYMBOL", width))
		for _, s := range syms {
			modal := ""
			if s.Modal {
				modal = "  (modal)"
			}
			fmt.Fprintf(out, "%s  %s  %s%s\n",
				runewidth.FillRight(s.Name, width),
				runewidth.FillRight(s.Unicode, len("UNICODE")),
				runewidth.FillRight(s.ASCII, len("ASCII")),
				modal)
		}
		return nil
	},
}
