package main

import (
	"fmt"
	"io"

	"notetree/internal/app"
	"notetree/internal/config"

	"github.com/spf13/cobra"
)

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults.BaseDir)
		if err := config.Init(defaults.ConfigPath, cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		if _, _, err := app.MigrateDatabase(cfg); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Configuration initialized at %s\n", defaults.ConfigPath)
		fmt.Fprintf(out, "Base Dir: %s\n", defaults.BaseDir)
		fmt.Fprintln(out, "Run 'nt key init' before taking backups.")
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		paths := app.NewPaths(cfg)

		return render(cmd, cfg, func(w io.Writer) error {
			fmt.Fprintf(w, "Configuration from %s:\n\n", defaults.ConfigPath)
			fmt.Fprintf(w, "Base Dir:    %s\n", cfg.BaseDir)
			fmt.Fprintf(w, "Log Dir:     %s\n", paths.Log)
			fmt.Fprintf(w, "Database:    %s %s\n", cfg.Database.Type, paths.Database)
			fmt.Fprintf(w, "Notes:       %s\n", paths.Notes)
			fmt.Fprintf(w, "Vault:       %s %s %s\n", cfg.Vault.Type, cfg.Vault.Name, paths.Vault)
			fmt.Fprintf(w, "Public Key:  %s\n", paths.PublicKey)
			fmt.Fprintf(w, "Private Key: %s\n", paths.PrivateKey)
			return nil
		})
	},
}

// db command
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the database schema",
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		before, after, err := app.MigrateDatabase(cfg)
		if err != nil {
			return err
		}
		if before.Version == after.Version {
			fmt.Fprintf(cmd.OutOrStdout(), "Schema already at version %d\n", after.Version)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Migrated schema from version %d to %d\n", before.Version, after.Version)
		return nil
	},
}

var dbStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		st, err := app.DatabaseStatus(cfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "version: %d\nlatest:  %d\npending: %d\ndirty:   %v\n",
			st.Version, st.Latest, st.Pending(), st.Dirty)
		return nil
	},
}

// key command
var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage snapshot encryption keys",
}

var keyInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate the snapshot key pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		pass, err := readPassphrase(cmd, "Passphrase: ")
		if err != nil {
			return err
		}
		confirm, err := readPassphrase(cmd, "Repeat passphrase: ")
		if err != nil {
			return err
		}
		if pass != confirm {
			return fmt.Errorf("passphrases do not match")
		}

		if err := app.InitKeys(cfg, pass); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Keys written to %s and %s\n", cfg.Encryption.PublicKeyPath, cfg.Encryption.PrivateKeyPath)
		return nil
	},
}

// backup command
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Store an encrypted snapshot of the database and note bodies",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "Backup")
		if err != nil {
			return err
		}
		defer a.Close()

		name, err := a.Backup()
		if err != nil {
			return fmt.Errorf("backup failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stored snapshot %s\n", name)
		return nil
	},
}

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List stored snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "ListSnapshots")
		if err != nil {
			return err
		}
		defer a.Close()

		names, err := a.ListSnapshots()
		if err != nil {
			return err
		}
		return render(cmd, names, func(w io.Writer) error {
			if len(names) == 0 {
				_, err := fmt.Fprintln(w, "No snapshots.")
				return err
			}
			for _, n := range names {
				fmt.Fprintln(w, n)
			}
			return nil
		})
	},
}

// restore command
var restoreCmd = &cobra.Command{
	Use:   "restore NAME DEST",
	Short: "Unpack a snapshot into a directory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pass, err := readPassphrase(cmd, "Passphrase: ")
		if err != nil {
			return err
		}

		a, err := newApp(cmd, "Restore")
		if err != nil {
			return err
		}
		defer a.Close()

		written, err := a.Restore(args[0], pass, args[1])
		if err != nil {
			return fmt.Errorf("restore failed: %w", err)
		}
		for _, p := range written {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %d file(s)\n", len(written))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbStatusCmd)

	keyCmd.AddCommand(keyInitCmd)
}
