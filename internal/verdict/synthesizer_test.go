package verdict

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ppiankov/mediguard/internal/model"
)

func newOllamaSynthesizer(t *testing.T, baseURL string) *Synthesizer {
	t.Helper()
	provider, err := NewOllamaProvider(model.LLMConfig{
		BaseURL: baseURL,
		Model:   "test-model",
		Timeout: 5,
	})
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	return NewSynthesizer(provider, nil)
}

func TestSynthesize_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("expected path /api/generate, got %s", r.URL.Path)
		}

		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Stream {
			t.Error("expected stream=false")
		}
		if req.Model != "test-model" {
			t.Errorf("expected model test-model, got %s", req.Model)
		}
		for _, want := range []string{"pizza", "flour, water", "kidney disease"} {
			if !strings.Contains(req.Prompt, want) {
				t.Errorf("prompt missing %q", want)
			}
		}

		resp := ollamaResponse{
			Model:    "test-model",
			Response: "<think>sodium is the issue</think>Pizza is high in sodium, overall this is a CAUTION choice.\nCAUTION",
			Done:     true,
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	verdict := newOllamaSynthesizer(t, server.URL).Synthesize(context.Background(), "pizza", "flour, water", "kidney disease")

	if verdict.Classification != model.ClassificationCaution {
		t.Errorf("Classification = %v, want CAUTION", verdict.Classification)
	}
	if strings.Contains(verdict.Narrative, "<think>") {
		t.Errorf("reasoning block leaked: %q", verdict.Narrative)
	}
	if !strings.HasSuffix(verdict.Narrative, `<span class="status caution">CAUTION</span>`) {
		t.Errorf("trailing keyword not wrapped: %q", verdict.Narrative)
	}
}

func TestSynthesize_NoTrailingKeyword(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ollamaResponse{
			Model:    "test-model",
			Response: "It depends on the preparation. Consult a professional.",
			Done:     true,
		})
	}))
	defer server.Close()

	verdict := newOllamaSynthesizer(t, server.URL).Synthesize(context.Background(), "soup", "", "diabetes")

	if verdict.Classification != model.ClassificationUnknown {
		t.Errorf("Classification = %v, want UNKNOWN (degraded success, not an error)", verdict.Classification)
	}
	if verdict.Narrative != "It depends on the preparation. Consult a professional." {
		t.Errorf("Narrative = %q, want it shown unmarked", verdict.Narrative)
	}
}

func TestSynthesize_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ollamaResponse{Model: "test-model", Response: "", Done: true})
	}))
	defer server.Close()

	verdict := newOllamaSynthesizer(t, server.URL).Synthesize(context.Background(), "soup", "", "diabetes")

	if verdict.Narrative != "No detailed info found." {
		t.Errorf("Narrative = %q, want placeholder", verdict.Narrative)
	}
	if verdict.Classification != model.ClassificationUnknown {
		t.Errorf("Classification = %v, want UNKNOWN", verdict.Classification)
	}
}

func TestSynthesize_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	verdict := newOllamaSynthesizer(t, server.URL).Synthesize(context.Background(), "pizza", "flour", "kidney disease")

	if verdict.Classification != model.ClassificationUnknown {
		t.Errorf("Classification = %v, want UNKNOWN on failure", verdict.Classification)
	}
	if !strings.HasPrefix(verdict.Narrative, "Error contacting ollama:") {
		t.Errorf("Narrative = %q, want error narrative", verdict.Narrative)
	}
}

func TestSynthesize_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model 'test-model' not found"}`))
	}))
	defer server.Close()

	verdict := newOllamaSynthesizer(t, server.URL).Synthesize(context.Background(), "pizza", "flour", "kidney disease")

	if verdict.Classification != model.ClassificationUnknown {
		t.Errorf("Classification = %v, want UNKNOWN", verdict.Classification)
	}
	if !strings.Contains(verdict.Narrative, "model 'test-model' not found") {
		t.Errorf("Narrative = %q, want underlying API error message", verdict.Narrative)
	}
}
