package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/tableaux/internal/suite"
)

var (
	checkWatch   bool
	checkJSON    bool
	checkOutPath string
	checkWorkers int
	checkCache   string
	timeout      time.Duration

	proofCache *suite.Cache
)

var checkCmd = &cobra.Command{
	Use:   "check [suites...]",
	Short: "Check every argument of one or more YAML suites",
	Long: `Checks suites of arguments and compares each verdict with the expected one.
Example) tableaux check --watch examples/modal.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		if timeout > 0 && !checkWatch {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		proofCache = nil
		if checkCache != "" || checkWatch {
			c, err := suite.NewCache(checkCache)
			if err != nil {
				return err
			}
			proofCache = c
		}

		out := cmd.OutOrStdout()
		ok, err := runSuites(ctx, out, args)
		if err != nil {
			return err
		}
		if !checkWatch {
			if !ok {
				return ErrFailed
			}
			return nil
		}

		fmt.Fprintln(out, "Watching for changes, press Ctrl+C to stop")
		return suite.Watch(ctx, logger, args, func(path string) {
			if _, err := runSuites(ctx, out, []string{path}); err != nil {
				logger.Error("Error checking suite", zap.String("path", path), zap.Error(err))
			}
		})
	},
}

func init() {
	checkCmd.Flags().BoolVarP(&checkWatch, "watch", "w", false, "Re-check suites when they change")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Output outcomes in JSON format")
	checkCmd.Flags().StringVarP(&checkOutPath, "output", "o", "", "Output path (when using JSON)")
	checkCmd.Flags().IntVar(&checkWorkers, "workers", 0, "Arguments checked at once (default: number of CPUs)")
	checkCmd.Flags().StringVar(&checkCache, "cache", "", "Directory keeping proofs between runs")
	checkCmd.Flags().DurationVar(&timeout, "timeout", 0, "Give up after this long (0 means no limit)")
}

// runSuites loads and checks each suite and prints the outcomes. It reports
// whether every argument passed.
func runSuites(ctx context.Context, out io.Writer, paths []string) (bool, error) {
	var progress io.Writer
	if !checkJSON && isatty.IsTerminal(os.Stderr.Fd()) {
		progress = os.Stderr
	}

	allOK := true
	summaries := make([]suite.Summary, 0, len(paths))
	for _, path := range paths {
		s, err := suite.Load(path)
		if err != nil {
			return false, err
		}
		sum, err := s.Run(ctx, suite.RunOptions{
			Prove:    proofOptions(),
			Progress: progress,
			Workers:  checkWorkers,
			Cache:    proofCache,
			Logger:   logger,
		})
		if err != nil {
			return false, err
		}
		allOK = allOK && sum.OK()
		summaries = append(summaries, sum)
	}

	if checkJSON {
		return allOK, writeJSON(out, summaries)
	}
	useColor := colorFor(out)
	for _, sum := range summaries {
		printSummary(out, sum, useColor)
	}
	return allOK, nil
}

func printSummary(w io.Writer, sum suite.Summary, useColor bool) {
	pass := color.New(color.FgGreen)
	fail := color.New(color.FgRed, color.Bold)
	for _, c := range []*color.Color{pass, fail} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	fmt.Fprintf(w, "%s\n", sum.Suite)
	for _, o := range sum.Outcomes {
		switch {
		case o.Err != nil:
			fmt.Fprintf(w, "  %s %s: %v\n", fail.Sprint("✘"), o.Argument.Label(), o.Err)
		case !o.Pass:
			fmt.Fprintf(w, "  %s %s: expected holds=%t, got holds=%t\n",
				fail.Sprint("✘"), o.Argument.Label(), *o.Argument.Holds, o.Report.Holds)
			for _, n := range o.Report.Countermodel {
				fmt.Fprintf(w, "      ➡ %s\n", n)
			}
		default:
			verdict := "holds"
			if !o.Report.Holds {
				verdict = "does not hold"
			}
			fmt.Fprintf(w, "  %s %s (%s in %s)\n", pass.Sprint("✔"), o.Argument.Label(), verdict, o.Report.System)
		}
	}
	fmt.Fprintf(w, "%d passed, %d failed\n", sum.Passed, sum.Failed)
}

func writeJSON(out io.Writer, summaries []suite.Summary) error {
	d, err := json.Marshal(summaries)
	if err != nil {
		return fmt.Errorf("marshal outcomes: %w", err)
	}
	if checkOutPath == "" {
		_, err = fmt.Fprintln(out, string(d))
		return err
	}

	f, err := os.Create(checkOutPath)
	if err != nil {
		return fmt.Errorf("create JSON output file: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(d); err != nil {
		return fmt.Errorf("write JSON output file: %w", err)
	}
	return nil
}
