package cli

import (
	"fmt"

	"github.com/ariel-frischer/cz/internal/config"
	clierrors "github.com/ariel-frischer/cz/internal/errors"
	"github.com/spf13/cobra"
)

var (
	configInitUserFlag    bool
	configInitForceFlag   bool
	configMigrateDryRun   bool
	configMigrateKeepJSON bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage cz configuration",
	Long: `Manage cz configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (CZ_*, scalar keys only)
  2. Project config (.cz/config.yml, or the legacy .cz/config.json)
  3. User config ($XDG_CONFIG_HOME/cz/config.yml)
  4. Built-in defaults`,
	Example: `  # Show the effective configuration
  cz config show

  # Create .cz/config.yml with the defaults
  cz config init

  # Convert .cz/config.json to YAML
  cz config migrate`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd, false)
		if err != nil {
			return err
		}
		data, err := config.Marshal(s.cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration",
	Long: `Write a commented configuration file holding the defaults.

The file goes to .cz/config.yml in the repository, or to the user
config directory with --user.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Convert .cz/config.json to .cz/config.yml",
	Long: `Convert the legacy JSON project configuration to YAML.

An existing .cz/config.yml is never overwritten. After a successful
migration the JSON file is renamed to config.json.bak.`,
	Args: cobra.NoArgs,
	RunE: runConfigMigrate,
}

func init() {
	configCmd.GroupID = GroupConfiguration
	configCmd.AddCommand(configShowCmd, configInitCmd, configMigrateCmd)
	rootCmd.AddCommand(configCmd)

	configInitCmd.Flags().BoolVar(&configInitUserFlag, "user", false, "Write the user config instead of the project config")
	configInitCmd.Flags().BoolVarP(&configInitForceFlag, "force", "f", false, "Overwrite an existing config file")
	configMigrateCmd.Flags().BoolVar(&configMigrateDryRun, "dry-run", false, "Show what would be migrated")
	configMigrateCmd.Flags().BoolVar(&configMigrateKeepJSON, "keep-json", false, "Keep the JSON file instead of renaming it to .bak")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	_, dir, err := openRepository()
	if err != nil {
		return err
	}
	path := config.ProjectConfigPath(dir)
	if configInitUserFlag {
		userPath, err := config.UserConfigPath()
		if err != nil {
			return err
		}
		path = userPath
	}

	if err := config.WriteDefaultConfig(path, configInitForceFlag); err != nil {
		return clierrors.NewConfigError(err.Error(), "Overwrite it with: cz config init --force")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runConfigMigrate(cmd *cobra.Command, args []string) error {
	_, dir, err := openRepository()
	if err != nil {
		return err
	}
	result, err := config.MigrateProjectConfig(dir, configMigrateDryRun)
	if err != nil {
		return clierrors.Wrap(err, clierrors.Configuration, "Check .cz/config.json for JSON syntax errors")
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Message)

	if result.Success && !configMigrateKeepJSON {
		if err := config.RemoveLegacyConfig(result.SourcePath, configMigrateDryRun); err != nil {
			return err
		}
		if !configMigrateDryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s.bak\n", result.SourcePath, result.SourcePath)
		}
	}
	return nil
}
