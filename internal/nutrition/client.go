// Package nutrition wraps the USDA FoodData Central search API and
// performs best-record selection among ambiguous results.
package nutrition

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ppiankov/mediguard/internal/model"
	"github.com/ppiankov/mediguard/internal/util"
)

// Client calls the FoodData Central /foods/search endpoint
type Client struct {
	baseURL    string
	apiKey     string
	pageSize   int
	httpClient *http.Client
	logger     *slog.Logger
}

// FoodData Central API structures
type searchResponse struct {
	Foods []foodRecord `json:"foods"`
}

type foodRecord struct {
	Description   string     `json:"description"`
	Ingredients   string     `json:"ingredients"`
	FoodNutrients []nutrient `json:"foodNutrients"`
}

type nutrient struct {
	NutrientName string  `json:"nutrientName"`
	Value        float64 `json:"value"`
	UnitName     string  `json:"unitName"`
}

// NewClient creates a new nutrition lookup client
func NewClient(cfg model.USDAConfig, httpCfg model.HTTPConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 15
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		pageSize:   pageSize,
		httpClient: util.NewHTTPClient(httpCfg.Timeout, httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
		logger:     logger,
	}
}

// Lookup searches for a food by free-text label and selects the best
// matching record: the first candidate with a non-blank ingredient
// list, else the first candidate. Returns nil when the service yields
// zero candidates or on transport failure; callers cannot tell the
// two apart.
func (c *Client) Lookup(ctx context.Context, foodLabel string) *model.NutritionRecord {
	resp, err := c.search(ctx, foodLabel)
	if err != nil {
		c.logger.Warn("nutrition lookup failed", "food", foodLabel, "error", err)
		return nil
	}
	if len(resp.Foods) == 0 {
		return nil
	}

	food := selectRecord(resp.Foods)

	record := &model.NutritionRecord{
		Name:        food.Description,
		Ingredients: food.Ingredients,
		Energy:      extractEnergy(food.FoodNutrients),
	}
	if record.Name == "" {
		record.Name = foodLabel
	}
	if record.Ingredients == "" {
		record.Ingredients = "Not specified"
	}
	return record
}

// selectRecord prefers the first candidate with non-blank ingredients
func selectRecord(foods []foodRecord) foodRecord {
	for _, f := range foods {
		if strings.TrimSpace(f.Ingredients) != "" {
			return f
		}
	}
	return foods[0]
}

// extractEnergy formats the first nutrient whose name contains
// "energy" (case-insensitive) as "<value> <unit>", else "NA"
func extractEnergy(nutrients []nutrient) string {
	for _, n := range nutrients {
		if strings.Contains(strings.ToLower(n.NutrientName), "energy") {
			value := strconv.FormatFloat(n.Value, 'f', -1, 64)
			return strings.TrimSpace(value + " " + n.UnitName)
		}
	}
	return "NA"
}

func (c *Client) search(ctx context.Context, query string) (*searchResponse, error) {
	reqURL := fmt.Sprintf("%s/foods/search?query=%s&pageSize=%d&api_key=%s",
		c.baseURL, url.QueryEscape(query), c.pageSize, url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error (%d): %s", httpResp.StatusCode, string(respBody))
	}

	var resp searchResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &resp, nil
}
