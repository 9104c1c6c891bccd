package worker

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ppiankov/mediguard/internal/model"
)

// Checker runs a single drug/condition interaction check
type Checker interface {
	CheckDrugInteraction(ctx context.Context, drug, condition string) model.InteractionResult
}

// CheckJob screens one drug/condition pair
type CheckJob struct {
	Drug      string
	Condition string
	Checker   Checker
	Limiter   *Limiter
}

// CheckResult carries the outcome for one pair
type CheckResult struct {
	Drug      string                  `json:"drug"`
	Condition string                  `json:"condition"`
	Result    model.InteractionResult `json:"result"`
}

// GetError implements the Result interface
func (r CheckResult) GetError() error {
	if r.Result.Status == model.StatusError {
		return fmt.Errorf("%s", r.Result.Message)
	}
	return nil
}

// Execute implements the Job interface
func (j CheckJob) Execute(ctx context.Context) Result {
	if err := j.Limiter.Wait(ctx); err != nil {
		return CheckResult{
			Drug:      j.Drug,
			Condition: j.Condition,
			Result: model.InteractionResult{
				Status:  model.StatusError,
				Message: fmt.Sprintf("rate limiter interrupted: %v", err),
			},
		}
	}

	return CheckResult{
		Drug:      j.Drug,
		Condition: j.Condition,
		Result:    j.Checker.CheckDrugInteraction(ctx, j.Drug, j.Condition),
	}
}

// BatchScreener screens many drug/condition pairs concurrently
type BatchScreener struct {
	checker Checker
	workers int
	limiter *Limiter
	logger  *slog.Logger
}

// NewBatchScreener creates a screener running checks across the given
// number of workers, throttled to rps requests per second.
func NewBatchScreener(checker Checker, workers int, rps float64, burst int, logger *slog.Logger) *BatchScreener {
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchScreener{
		checker: checker,
		workers: workers,
		limiter: NewLimiter(rps, burst),
		logger:  logger,
	}
}

// ProcessFile reads "drug,condition" lines from path and screens each
// pair. Blank lines and lines starting with # are skipped.
func (b *BatchScreener) ProcessFile(ctx context.Context, path string) ([]CheckResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open batch file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var jobs []CheckJob
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		drug, condition, ok := strings.Cut(line, ",")
		if !ok {
			b.logger.Warn("skipping malformed batch line", "line", lineNo, "text", line)
			continue
		}
		jobs = append(jobs, CheckJob{
			Drug:      strings.TrimSpace(drug),
			Condition: strings.TrimSpace(condition),
			Checker:   b.checker,
			Limiter:   b.limiter,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("no drug,condition pairs found in %s", path)
	}

	return b.Run(ctx, jobs), nil
}

// Run executes the given jobs through the worker pool
func (b *BatchScreener) Run(ctx context.Context, jobs []CheckJob) []CheckResult {
	pool := NewPool(b.workers, len(jobs))
	pool.Start()

	for _, job := range jobs {
		if ctx.Err() != nil {
			break
		}
		pool.Submit(job)
	}
	results := pool.Wait()

	checkResults := make([]CheckResult, 0, len(results))
	for _, r := range results {
		if cr, ok := r.(CheckResult); ok {
			checkResults = append(checkResults, cr)
		}
	}
	return checkResults
}
