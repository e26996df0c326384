package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/tableaux"
	"github.com/gnoswap-labs/tableaux/internal/config"
)

// ErrFailed is returned when an argument does not hold or a suite has
// failures. It carries no message of its own; the command already printed
// the details.
var ErrFailed = errors.New("check failed")

var (
	cfgFile string
	verbose bool

	cfg    = config.Default()
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:           "tableaux",
	Short:         "tableaux - a semantic tableau prover for classical and modal logic",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = c

		l, err := newLogger(c, verbose)
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "Path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every expansion step")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(proveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(symbolsCmd)
}

func newLogger(c config.Config, verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	zc := zap.NewProductionConfig()
	zc.Encoding = "console"
	zc.Level = zap.NewAtomicLevelAt(c.Level())
	zc.DisableStacktrace = true
	return zc.Build()
}

// resolveSystem prefers the flag value over the configured system.
func resolveSystem(flag string) (tableaux.System, error) {
	name := flag
	if name == "" {
		name = cfg.System
	}
	return tableaux.ParseSystem(name)
}

func proofOptions() []tableaux.Option {
	return []tableaux.Option{
		tableaux.WithMaxNodes(cfg.MaxNodes),
		tableaux.WithMaxSteps(cfg.MaxSteps),
		tableaux.WithLogger(logger),
	}
}

// colorFor decides whether output written to w gets ANSI colors.
func colorFor(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return cfg.Color.Enabled(f)
	}
	return cfg.Color == config.ColorAlways
}
