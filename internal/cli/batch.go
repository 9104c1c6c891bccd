package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/mediguard/internal/model"
	"github.com/ppiankov/mediguard/internal/pipeline"
	"github.com/ppiankov/mediguard/internal/worker"
)

var (
	batchWorkers int
	batchRPS     float64
	batchBurst   int
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Screen multiple drug/condition pairs from a file in parallel",
	Long: `Batch screens drug/condition pairs concurrently:
- Read "drug,condition" lines from the input file
- Blank lines and lines starting with # are skipped
- Pairs are screened in parallel with a polite request rate toward openFDA

Example:
  mediguard batch pairs.csv
  mediguard batch pairs.csv --workers 8 --rps 4
  mediguard batch pairs.csv --timeout 5m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "number of concurrent workers (overrides config)")
	batchCmd.Flags().Float64Var(&batchRPS, "rps", 0, "openFDA requests per second (overrides config)")
	batchCmd.Flags().IntVar(&batchBurst, "burst", 0, "request burst size (overrides config)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := buildConfig()
	if batchWorkers > 0 {
		cfg.Batch.Workers = batchWorkers
	}
	if batchRPS > 0 {
		cfg.Batch.RequestsPerSecond = batchRPS
	}
	if batchBurst > 0 {
		cfg.Batch.Burst = batchBurst
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  MediGuard Batch Screening\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:  %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:     %d\n", cfg.Batch.Workers)
	fmt.Fprintf(os.Stderr, "  Rate:        %.1f req/s (burst %d)\n", cfg.Batch.RequestsPerSecond, cfg.Batch.Burst)
	fmt.Fprintf(os.Stderr, "  Timeout:     %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	logger := newLogger()

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	screener := worker.NewBatchScreener(p, cfg.Batch.Workers, cfg.Batch.RequestsPerSecond, cfg.Batch.Burst, logger)

	results, err := screener.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	warnings := 0
	failures := 0
	for _, result := range results {
		switch result.Result.Status {
		case model.StatusWarning:
			warnings++
			fmt.Fprintf(os.Stderr, "⚠ %s / %s: %s\n", result.Drug, result.Condition, result.Result.Message)
		case model.StatusError:
			failures++
			fmt.Fprintf(os.Stderr, "✗ %s / %s: %s\n", result.Drug, result.Condition, result.Result.Message)
		default:
			fmt.Fprintf(os.Stderr, "✓ %s / %s: %s\n", result.Drug, result.Condition, result.Result.Message)
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d pairs\n", len(results))
	fmt.Fprintf(os.Stderr, "  Warnings:  %d\n", warnings)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failures)
	fmt.Fprintf(os.Stderr, "\n")

	if err := printJSON(results); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
