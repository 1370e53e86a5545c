// =============================================================================
// Pricing Data Generator - Version Command
// =============================================================================
//
// This file defines the 'version' command, which displays the application
// version, the pricing document version it writes, and build information.
//
// COMMAND USAGE:
//   pricegen version
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/pricing-data-generator/internal/pricing"
)

// These variables are set at build time using ldflags.
// Example build command:
//   go build -ldflags "-X 'github.com/ginjaninja78/pricing-data-generator/cmd.Version=1.1.0'"

// Version is the application version.
var Version = "1.0.0"

// BuildDate is the date the application was built.
var BuildDate = "unknown"

// versionCmd represents the 'version' command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version",
	Long:  `Display the application version, document format version, build date, and Go runtime version.`,

	// The version command needs no configuration.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {},

	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Pricing Data Generator")
		fmt.Fprintf(out, "Version:        %s\n", Version)
		fmt.Fprintf(out, "Document:       %s\n", pricing.CatalogVersion)
		fmt.Fprintf(out, "Build Date:     %s\n", BuildDate)
		fmt.Fprintf(out, "Go Version:     %s\n", runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
