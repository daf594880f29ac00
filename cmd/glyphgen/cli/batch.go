package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glyphgen/glyphgen/config"
	"github.com/glyphgen/glyphgen/icon"
)

var batchCmd = &cobra.Command{
	Use:   "batch MANIFEST",
	Short: "Generate icons from a manifest file",
	Long: "Generate a set of icons described by a YAML or JSON manifest.\n\n" +
		"Manifest example:\n\n" +
		"  defaults:\n" +
		"    color: \"#ffffff\"\n" +
		"    size: 128\n" +
		"  icons:\n" +
		"    home: mdi:home\n" +
		"    star:\n" +
		"      icon: mdi:star\n" +
		"      color: \"(gold,orange)\"",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed, total, err := runBatch(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		// Partial failures are reported per entry; the exit code only
		// signals that nothing could be generated at all.
		if failed == total {
			return errSilent
		}
		return nil
	},
}

// runBatch parses the manifest and generates every entry, printing one line
// per result. Returns the number of failed entries and the entry count.
func runBatch(ctx context.Context, manifestPath string) (int, int, error) {
	manifest, err := config.ParseFile(manifestPath)
	if err != nil {
		return 0, 0, err
	}
	batch, err := manifest.BatchRequest()
	if err != nil {
		return 0, 0, err
	}

	gen := icon.New(icon.WithOutputDir(outputDir), icon.WithLogger(newLogger()))

	fmt.Println()
	fmt.Println(boldStyle.Sprintf("Generating %d icons from %s", len(batch.Entries), manifestPath))
	fmt.Println()

	failed := 0
	for _, res := range gen.Batch(ctx, batch) {
		if res.Err != nil {
			failed++
			fmt.Println(errorStyle.Sprintf("✗ %s: %v", res.Name, res.Err))
			continue
		}
		fmt.Println(successStyle.Sprintf("✓ %s → %s", res.Name, res.Path))
	}

	fmt.Println()
	if failed > 0 {
		fmt.Println(errorStyle.Sprintf("%d of %d icons failed", failed, len(batch.Entries)))
	} else {
		fmt.Println(successStyle.Sprintf("All %d icons generated", len(batch.Entries)))
	}
	return failed, len(batch.Entries), nil
}

func init() {
	rootCmd.AddCommand(batchCmd)
}
