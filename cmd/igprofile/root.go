package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"igprofile/pkg/config"
	"igprofile/pkg/logger"
	"igprofile/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
	logFile    string
	noColor    bool

	// Populated by PersistentPreRunE
	cfg     *config.Config
	log     logger.Logger
	printer *ui.Printer
)

// skipConfigFile marks commands that must not read --config, such as the one creating it
const skipConfigFile = "skip-config-file"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "igprofile",
	Short: "Fetch Instagram profile metadata and recent image URLs",
	Long: `igprofile looks up an Instagram profile through the private web API and
prints its public metadata together with the image URLs of its recent posts.

A logged-in session cookie is required. It is read from INSTAGRAM_COOKIE,
the configuration file, or an account stored with 'igprofile auth set'.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		flags := map[string]interface{}{
			"log-level": logLevel,
			"log-file":  logFile,
			"no-color":  noColor,
		}
		if cmd.Flags().Changed("count") {
			flags["post-count"] = postCount
		}
		if cmd.Flags().Changed("timeout") {
			flags["timeout"] = fetchTimeout
		}
		if cmd.Flags().Changed("cookie") {
			flags["cookie"] = cookieFlag
		}

		var loaded *config.Config
		if cmd.Annotations[skipConfigFile] != "" {
			loaded = config.DefaultConfig()
			loaded.MergeCommandLineFlags(flags)
		} else {
			var err error
			if loaded, err = config.Load(configFile, flags); err != nil {
				return err
			}
		}

		l, err := logger.New(&loaded.Logging)
		if err != nil {
			return err
		}

		cfg = loaded
		log = l
		printer = ui.NewPrinter(cmd.OutOrStdout(), loaded.Logging.NoColor)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is ./.igprofile.yaml or ~/.config/igprofile/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error, disabled)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write JSON logs to this file")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.SetVersionTemplate(`igprofile {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
