// Package cli implements the glyphgen command tree.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/glyphgen/glyphgen/slogger"
)

var (
	logLevel  string
	outputDir string
)

// errSilent signals a failure whose message was already printed; Execute
// exits non-zero without printing it again.
var errSilent = errors.New("silent error")

var rootCmd = &cobra.Command{
	Use:   "glyphgen",
	Short: "Generate icons from Iconify, URLs, or local files",
	Long: "glyphgen fetches icons from the Iconify API, direct URLs, or local\n" +
		"files, applies color, size, background, and animation transforms, and\n" +
		"exports SVG, PNG, WebP, or ICO files.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Keys may live in a local .env file; a missing file is fine.
		_ = godotenv.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn",
		"Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "output",
		"Directory for generated files")
}

func newLogger() slogger.Logger {
	return slogger.New(slogger.LevelFromString(logLevel))
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errSilent) {
			fmt.Fprintln(os.Stderr, errorStyle.Sprintf("Error: %v", err))
		}
		os.Exit(1)
	}
}
