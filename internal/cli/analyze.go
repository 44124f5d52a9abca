package cli

import (
	"fmt"
	"os"

	"github.com/reliefmap/relief/internal/model"
	"github.com/reliefmap/relief/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON   string
	outMD     string
	noCache   bool
	noFooter  bool
	shapeOnly bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <input.json>",
	Short: "Analyze one claim graph and generate a structural report",
	Long: `Analyze reads a single aggregate record of claims, relationship edges,
and optional ghost topics, runs the full analysis pipeline, and renders the
result:
- Topology: components, articulation points, hub, longest dependency chain
- Per-claim enrichment: leverage, keystone, evidence-gap, outlier scores
- Core ratios: concentration, alignment, tension, fragmentation, depth
- Shape classification with evidence and a transfer question
- Ranked, deduplicated findings

Example:
  relief analyze claims.json
  relief analyze claims.json --json analysis.json --md analysis.md
  relief analyze claims.json --shape-only`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&outJSON, "json", "analysis.json", "output JSON path")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result memoization")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	analyzeCmd.Flags().BoolVar(&shapeOnly, "shape-only", false, "print only the shape classification")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	input, err := model.DecodeInput(data)
	if err != nil {
		return fmt.Errorf("invalid input %s: %w", path, err)
	}

	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	analyzer := pipeline.NewAnalyzer(cfg)

	if shapeOnly {
		shape := analyzer.Classify(input)
		fmt.Printf("%s (confidence %.2f, signal %.2f)\n", shape.Primary, shape.Confidence, shape.SignalStrength)
		for _, ev := range shape.Evidence {
			fmt.Printf("  - %s\n", ev)
		}
		if shape.TransferQuestion != "" {
			fmt.Printf("\n%s\n", shape.TransferQuestion)
		}
		return nil
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", path)
		fmt.Fprintf(os.Stderr, "Claims: %d, edges: %d, ghosts: %d\n",
			len(input.Claims), len(input.Edges), len(input.Ghosts))
		fmt.Fprintln(os.Stderr)
	}

	result := analyzer.Analyze(input)

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Classified shape: %s\n", result.Shape.Primary)
		fmt.Fprintf(os.Stderr, "✓ Generated %d findings\n", len(result.Insights))
		fmt.Fprintln(os.Stderr)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(result, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(result, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", outMD)
		}
	}

	renderer.RenderSummary(result)
	return nil
}
