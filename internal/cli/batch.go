package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/reliefmap/relief/internal/model"
	"github.com/reliefmap/relief/internal/pipeline"
	"github.com/reliefmap/relief/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Analyze every claim graph in a directory in parallel",
	Long: `Batch processes a directory of input files concurrently:
- Pick up every .json file in the directory
- Analyze inputs in parallel with a configurable worker count
- Each analysis is an independent pure computation
- Generate individual reports for each input

Example:
  relief batch ./inputs
  relief batch ./inputs --concurrency 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./relief-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&noFooter, "batch-no-footer", false, "disable footer in Markdown reports")
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read input directory: %w", err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .json input files in %s", dir)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Relief batch analysis\n")
	fmt.Fprintf(os.Stderr, "  Inputs:   %d files from %s\n", len(paths), dir)
	fmt.Fprintf(os.Stderr, "  Workers:  %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	cfg := model.DefaultConfig()
	cfg.Concurrency.Workers = concurrency
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	analyzer := pipeline.NewAnalyzer(cfg)
	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)

	pool := worker.NewPool(cfg.Concurrency.Workers)
	results := pool.Run(ctx, paths, func(ctx context.Context, path string) (*model.StructuralAnalysis, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		input, err := model.DecodeInput(data)
		if err != nil {
			return nil, err
		}
		return analyzer.Analyze(input), nil
	})

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.Path, res.Err)
			continue
		}
		name := strings.TrimSuffix(filepath.Base(res.Path), ".json")
		jsonPath := filepath.Join(outputDir, name+".analysis.json")
		if err := renderer.RenderJSON(res.Analysis, jsonPath); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.Path, err)
			continue
		}
		mdPath := filepath.Join(outputDir, name+".analysis.md")
		if err := renderer.RenderMarkdown(res.Analysis, mdPath); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.Path, err)
			continue
		}
		fmt.Fprintf(os.Stderr, "✓ %s: %s\n", res.Path, res.Analysis.Shape.Primary)
	}

	fmt.Fprintf(os.Stderr, "\nProcessed %d inputs, %d failed\n", len(results), failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(results))
	}
	return nil
}
