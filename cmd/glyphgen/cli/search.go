package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glyphgen/glyphgen"
	"github.com/glyphgen/glyphgen/icon"
	"github.com/glyphgen/glyphgen/providers"
)

var searchFlags struct {
	count       int
	generate    bool
	style       string
	projectType string
}

var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search for icons with an AI provider",
	Long: "Search for icons using natural language queries, answered by the\n" +
		"highest-priority configured AI provider.\n\n" +
		"Examples:\n\n" +
		"  glyphgen search \"payment icons for checkout on mobile\" -n 4\n" +
		"  glyphgen search \"vector database RAG-pipeline\" --style modern\n" +
		"  glyphgen search \"social media icons\" --generate",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]

		snap := providers.CurrentSnapshot()
		report := providers.Classify(snap)
		if report.Status != providers.StatusActive {
			fmt.Println(report.Message())
			return errSilent
		}

		provider, err := providers.NewActive(snap)
		if err != nil {
			return err
		}

		var sctx *glyphgen.SuggestContext
		if searchFlags.style != "" || searchFlags.projectType != "" {
			sctx = &glyphgen.SuggestContext{
				DesignStyle: searchFlags.style,
				ProjectType: searchFlags.projectType,
			}
		}

		fmt.Println()
		fmt.Printf("Searching: %s\n", query)
		fmt.Println(dimStyle.Sprintf("Provider: %s (%s)", provider.Name(), provider.ModelName()))
		fmt.Println()

		response, err := provider.SuggestIcons(cmd.Context(), query, sctx)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		suggestions := response.Suggestions
		if len(suggestions) > searchFlags.count {
			suggestions = suggestions[:searchFlags.count]
		}
		if len(suggestions) == 0 {
			fmt.Println("No suggestions found")
			return nil
		}

		for i, s := range suggestions {
			fmt.Printf("%d. %s\n", i+1, boldStyle.Sprint(s.IconName))
			fmt.Printf("   %s\n\n", s.Reason)
		}

		if !searchFlags.generate {
			return nil
		}

		fmt.Println("Generating icons...")
		fmt.Println()

		gen := icon.New(icon.WithOutputDir(outputDir), icon.WithLogger(newLogger()))
		failed := 0
		for _, s := range suggestions {
			req := suggestionRequest(s)
			result, err := gen.Generate(cmd.Context(), req)
			if err != nil {
				failed++
				fmt.Println(errorStyle.Sprintf("✗ %s: %v", s.IconName, err))
				continue
			}
			fmt.Println(successStyle.Sprintf("✓ %s → %s", s.IconName, result.Path))
		}
		if len(suggestions) > 0 && failed == len(suggestions) {
			return errSilent
		}
		return nil
	},
}

// suggestionRequest converts a suggestion and its style hints into a
// generation request. Unstyled suggestions come out white at 256px, which
// reads well on dark and transparent backgrounds alike.
func suggestionRequest(s glyphgen.IconSuggestion) icon.Request {
	color := "white"
	size := icon.DefaultSize
	req := icon.Request{Icon: s.IconName}
	if s.Style != nil {
		if s.Style.Color != "" {
			color = s.Style.Color
		}
		if s.Style.Size > 0 {
			size = s.Style.Size
		}
		req.BgColor = s.Style.BgColor
		req.BorderRadius = s.Style.BorderRadius
	}
	req.Color = color
	req.Size = &size
	return req
}

func init() {
	rootCmd.AddCommand(searchCmd)
	f := searchCmd.Flags()
	f.IntVarP(&searchFlags.count, "count", "n", 10, "Maximum number of suggestions")
	f.BoolVarP(&searchFlags.generate, "generate", "g", false, "Generate the suggested icons")
	f.StringVar(&searchFlags.style, "style", "", "Design style hint, e.g. 'modern'")
	f.StringVar(&searchFlags.projectType, "project-type", "", "Project type hint")
}
