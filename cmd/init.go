package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gnoswap-labs/tableaux/internal/config"
)

// initCmd: tableaux init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The file may not parse yet; init replaces it.
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = config.DefaultPath
		}
		if err := config.Write(path, config.Default()); err != nil {
			return fmt.Errorf("initialize config file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created/updated: %s\n", path)
		return nil
	},
}
