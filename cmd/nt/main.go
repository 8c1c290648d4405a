package main

import (
	"fmt"
	"os"

	"notetree/internal/app"
	"notetree/internal/config"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "nt: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file named by the defaults.
func loadConfig() (*config.Config, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("reading config (run 'nt config init' first?): %w", err)
	}
	return cfg, nil
}

// newApp reads the config and creates an NTApp. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "CreateNote", "Backup").
func newApp(cmd *cobra.Command, operation string) (*app.NTApp, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	a, err := app.NewNTApp(cfg, operation, app.Options{Verbose: verbose, Stderr: cmd.ErrOrStderr()})
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

var rootCmd = &cobra.Command{
	Use:           "nt",
	Short:         "Notes and snippets organized in a tree",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		return validateFormat(format)
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("format", "f", formatText, "Output format: text, json or yaml")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Echo all log records to stderr")

	rootCmd.AddCommand(nodeCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(snippetCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(snapshotsCmd)
	rootCmd.AddCommand(restoreCmd)
}
