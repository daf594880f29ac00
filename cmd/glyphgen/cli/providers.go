package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glyphgen/glyphgen/providers"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Show AI provider status",
	Long: "Show which AI providers are compiled into this build, which have API\n" +
		"keys configured, and which one search will use.",
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		snap := providers.CurrentSnapshot()

		installed := providers.Registered()
		fmt.Println()
		fmt.Printf("Installed providers: %s\n", orDefault(strings.Join(installed, ", "), "none"))
		fmt.Println()
		fmt.Println(providers.Classify(snap).Message())
	},
}

func init() {
	rootCmd.AddCommand(providersCmd)
}
