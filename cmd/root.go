// =============================================================================
// Pricing Data Generator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (pricegen)
//   ├── generateCmd (pricegen generate)
//   ├── validateCmd (pricegen validate <file>)
//   └── versionCmd (pricegen version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the YAML configuration before any subcommand runs
//   3. Building the structured logger (stderr)
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/pricing-data-generator/internal/config"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// mainConfig is loaded in PersistentPreRunE.
var mainConfig *config.MainConfig

// logger is built from mainConfig in PersistentPreRunE.
var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pricegen",
	Short: "Pricing Data Generator - Build the order form pricing JSON from CSV price lists",
	Long: `Pricing Data Generator reads one price list per product (CSV, optionally
XLSX) and consolidates them into a single pricing_data.json document that the
order form uses to render option pickers and look up prices.

Each price list is named "<prefix>-<product-name>.csv" and carries a Quantity
and Price column plus any of the option columns Size, Paper Weight, Paper Type,
Paper Color, Parts, Sides and Ink Color.

Example Usage:
  pricegen generate                       # Read ./*.csv, write ./pricing_data.json
  pricegen generate --input-dir ./lists   # Read price lists from another directory
  pricegen generate --dry-run             # Build and validate without writing
  pricegen validate pricing_data.json     # Check an existing document`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultConfigFile,
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}

// initConfig loads the configuration and builds the logger. The default
// config file is optional; one named with --config must exist.
func initConfig(cmd *cobra.Command) error {
	required := cmd.Flags().Changed("config")

	cfg, err := config.LoadMainConfig(cfgFile, required)
	if err != nil {
		return err
	}

	mainConfig = cfg
	logger = newLogger(cmd.ErrOrStderr(), cfg, verbose)
	return nil
}

// newLogger builds the slog logger described by the configuration.
func newLogger(w io.Writer, cfg *config.MainConfig, verbose bool) *slog.Logger {
	level := parseLevel(cfg.LogLevel)
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}
