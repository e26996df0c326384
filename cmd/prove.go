package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/tableaux"
)

var (
	proveSystem string
	proveTree   bool
	proveJSON   bool
)

var proveCmd = &cobra.Command{
	Use:   "prove [statement]",
	Short: "Check whether an argument holds",
	Long: `Checks an argument Σ ⊢ A and prints a countermodel when it does not hold.
ASCII spellings such as "p > q, p |- q" are accepted.
Example) tableaux prove --system S4 "□p ⊢ □□p"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sys, err := resolveSystem(proveSystem)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		useColor := colorFor(out)
		opts := proofOptions()
		if proveTree {
			opts = append(opts, tableaux.WithTree(useColor))
		}

		statement := strings.Join(args, " ")
		report, err := tableaux.ProveStatement(sys, statement, opts...)
		if err != nil {
			return err
		}
		logger.Debug("argument checked",
			zap.String("statement", report.Statement),
			zap.Bool("holds", report.Holds),
			zap.Int("nodes", report.Nodes),
		)

		if proveJSON {
			d, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal report: %w", err)
			}
			fmt.Fprintln(out, string(d))
		} else if err := report.WriteText(out, useColor); err != nil {
			return err
		}

		if !report.Holds {
			return ErrFailed
		}
		return nil
	},
}

func init() {
	proveCmd.Flags().StringVarP(&proveSystem, "system", "s", "", "Logic to check in (classical, modal, K, T, D, B, S4, S5)")
	proveCmd.Flags().BoolVar(&proveTree, "tree", false, "Print the finished tableau")
	proveCmd.Flags().BoolVar(&proveJSON, "json", false, "Output the report in JSON format")
}
