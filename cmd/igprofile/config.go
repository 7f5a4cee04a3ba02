package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"igprofile/pkg/auth"
	"igprofile/pkg/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage igprofile configuration files.

Configuration is loaded from:
  - Command line flags (highest priority)
  - Environment variables (INSTAGRAM_COOKIE, IGPROFILE_*)
  - Configuration file
  - Default values (lowest priority)`,
}

// initCmd represents the config init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to a file",
	Long: `Write the default configuration to 'igprofile.yaml' in the current
directory, or to the path given with --config. The cookie is never written.

'igprofile.yaml' in the current directory is picked up automatically.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfigFile: "true"},
	RunE:        runConfigInit,
}

// showCmd represents the config show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  `Show the configuration after merging all sources. The cookie is masked.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(showCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configFile
	if path == "" {
		path = "igprofile.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("configuration file already exists: %s", path)
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}

	printer.Success("Configuration file created: " + path)
	printer.Dim("Store your cookie with 'igprofile auth set' or export " + config.CookieEnvVar)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	display := *cfg
	if display.Instagram.Cookie != "" {
		display.Instagram.Cookie = auth.MaskCookie(display.Instagram.Cookie)
	}

	data, err := yaml.Marshal(&display)
	if err != nil {
		return fmt.Errorf("failed to format configuration: %w", err)
	}

	printer.Highlight("Current Configuration")
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}
