package nutrition

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ppiankov/mediguard/internal/model"
)

func newTestClient(baseURL string) *Client {
	return NewClient(
		model.USDAConfig{APIKey: "test-key", BaseURL: baseURL, PageSize: 15},
		model.HTTPConfig{Timeout: 5 * time.Second},
		nil,
	)
}

func TestLookup_PrefersRecordWithIngredients(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/foods/search" {
			t.Errorf("expected path /foods/search, got %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("query") != "pizza" {
			t.Errorf("expected query pizza, got %s", q.Get("query"))
		}
		if q.Get("pageSize") != "15" {
			t.Errorf("expected pageSize 15, got %s", q.Get("pageSize"))
		}
		if q.Get("api_key") != "test-key" {
			t.Errorf("expected api_key test-key, got %s", q.Get("api_key"))
		}

		_, _ = w.Write([]byte(`{"foods":[
			{"description":"PIZZA PLAIN","ingredients":""},
			{"description":"PIZZA, CHEESE","ingredients":"flour, water","foodNutrients":[
				{"nutrientName":"Protein","value":5,"unitName":"G"},
				{"nutrientName":"Energy","value":250,"unitName":"KCAL"}
			]}
		]}`))
	}))
	defer server.Close()

	record := newTestClient(server.URL).Lookup(context.Background(), "pizza")
	if record == nil {
		t.Fatal("expected a record")
	}
	if record.Name != "PIZZA, CHEESE" {
		t.Errorf("Name = %q, want the second (non-blank ingredients) record", record.Name)
	}
	if record.Ingredients != "flour, water" {
		t.Errorf("Ingredients = %q, want %q", record.Ingredients, "flour, water")
	}
	if record.Energy != "250 KCAL" {
		t.Errorf("Energy = %q, want %q", record.Energy, "250 KCAL")
	}
}

func TestLookup_FallsBackToFirstRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"foods":[
			{"description":"APPLE RAW","ingredients":"  "},
			{"description":"APPLE JUICE","ingredients":""}
		]}`))
	}))
	defer server.Close()

	record := newTestClient(server.URL).Lookup(context.Background(), "apple")
	if record == nil {
		t.Fatal("expected a record")
	}
	if record.Name != "APPLE RAW" {
		t.Errorf("Name = %q, want first record when none has ingredients", record.Name)
	}
	if record.Ingredients != "Not specified" {
		t.Errorf("Ingredients = %q, want %q", record.Ingredients, "Not specified")
	}
	if record.Energy != "NA" {
		t.Errorf("Energy = %q, want NA without an energy nutrient", record.Energy)
	}
}

func TestLookup_EmptyAndFailureAreNil(t *testing.T) {
	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"foods":[]}`))
	}))
	defer empty.Close()

	if record := newTestClient(empty.URL).Lookup(context.Background(), "nothing"); record != nil {
		t.Errorf("expected nil for zero candidates, got %+v", record)
	}

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":"API_KEY_INVALID"}}`))
	}))
	defer failing.Close()

	if record := newTestClient(failing.URL).Lookup(context.Background(), "pizza"); record != nil {
		t.Errorf("expected nil on service error, got %+v", record)
	}

	closed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	closed.Close()

	if record := newTestClient(closed.URL).Lookup(context.Background(), "pizza"); record != nil {
		t.Errorf("expected nil on transport failure, got %+v", record)
	}
}

func TestExtractEnergy_FirstEnergyNutrientWins(t *testing.T) {
	nutrients := []nutrient{
		{NutrientName: "Protein", Value: 5, UnitName: "G"},
		{NutrientName: "Energy", Value: 250, UnitName: "KCAL"},
		{NutrientName: "Energy (Atwater)", Value: 1046, UnitName: "kJ"},
	}
	if got := extractEnergy(nutrients); got != "250 KCAL" {
		t.Errorf("extractEnergy = %q, want %q", got, "250 KCAL")
	}

	if got := extractEnergy(nil); got != "NA" {
		t.Errorf("extractEnergy(nil) = %q, want NA", got)
	}
}
