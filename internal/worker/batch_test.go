package worker

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/ppiankov/mediguard/internal/model"
)

type stubChecker struct {
	mu    sync.Mutex
	calls [][2]string
}

func (c *stubChecker) CheckDrugInteraction(_ context.Context, drug, condition string) model.InteractionResult {
	c.mu.Lock()
	c.calls = append(c.calls, [2]string{drug, condition})
	c.mu.Unlock()

	if drug == "ibuprofen" {
		return model.InteractionResult{
			Status:  model.StatusWarning,
			Message: "warning: the drug \"ibuprofen\" may not be suitable",
		}
	}
	return model.InteractionResult{Status: model.StatusOK, Message: "no known interaction found"}
}

func writeBatchFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pairs.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProcessFile(t *testing.T) {
	path := writeBatchFile(t, strings.Join([]string{
		"# drug,condition",
		"ibuprofen, kidney disease",
		"",
		"paracetamol,asthma",
		"malformed-line-without-comma",
		"  amoxicillin ,  penicillin allergy  ",
	}, "\n"))

	checker := &stubChecker{}
	screener := NewBatchScreener(checker, 2, 100, 4, nil)

	results, err := screener.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3 (comment, blank and malformed lines skipped)", len(results))
	}

	warnings := 0
	for _, r := range results {
		if r.Drug != strings.TrimSpace(r.Drug) || r.Condition != strings.TrimSpace(r.Condition) {
			t.Errorf("fields not trimmed: %q / %q", r.Drug, r.Condition)
		}
		if r.Result.Status == model.StatusWarning {
			warnings++
			if r.Drug != "ibuprofen" {
				t.Errorf("warning attributed to %q, want ibuprofen", r.Drug)
			}
		}
		if r.GetError() != nil {
			t.Errorf("unexpected error result for %q: %v", r.Drug, r.GetError())
		}
	}
	if warnings != 1 {
		t.Errorf("warnings = %d, want 1", warnings)
	}
	if len(checker.calls) != 3 {
		t.Errorf("checker called %d times, want 3", len(checker.calls))
	}
}

func TestProcessFileEmpty(t *testing.T) {
	path := writeBatchFile(t, "# only comments\n\n")

	screener := NewBatchScreener(&stubChecker{}, 2, 100, 4, nil)
	if _, err := screener.ProcessFile(context.Background(), path); err == nil {
		t.Fatal("expected error for a file without any pairs")
	}
}

func TestProcessFileMissing(t *testing.T) {
	screener := NewBatchScreener(&stubChecker{}, 2, 100, 4, nil)
	if _, err := screener.ProcessFile(context.Background(), "/nonexistent/pairs.csv"); err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestCheckResultGetError(t *testing.T) {
	ok := CheckResult{Result: model.InteractionResult{Status: model.StatusOK}}
	if ok.GetError() != nil {
		t.Error("ok result must not carry an error")
	}

	failed := CheckResult{Result: model.InteractionResult{
		Status:  model.StatusError,
		Message: "error fetching data from openFDA: connection refused",
	}}
	if err := failed.GetError(); err == nil || !strings.Contains(err.Error(), "openFDA") {
		t.Errorf("GetError() = %v, want the service failure message", err)
	}
}
