// Package druglabel wraps the openFDA drug label search and scans
// returned label text for a medical condition keyword.
//
// The match is a blunt heuristic on purpose: any textual co-occurrence
// of the condition anywhere in a label record counts as a possible
// interaction.
package druglabel

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/ppiankov/mediguard/internal/model"
	"github.com/ppiankov/mediguard/internal/util"
)

// Client calls the openFDA drug/label.json endpoint
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// labelResponse keeps results as raw JSON: the condition scan runs
// over the whole serialized record, not a structured field
type labelResponse struct {
	Results []json.RawMessage `json:"results"`
}

// NewClient creates a new drug label client
func NewClient(cfg model.OpenFDAConfig, httpCfg model.HTTPConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: util.NewHTTPClient(httpCfg.Timeout, httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
		logger:     logger,
	}
}

// Check looks up label records for the drug's generic name and scans
// them for the condition. It always returns a renderable result:
// transport failure maps to StatusError, never to a raised error.
func (c *Client) Check(ctx context.Context, drug, condition string) model.InteractionResult {
	records, err := c.search(ctx, drug)
	if err != nil {
		c.logger.Warn("drug label search failed", "drug", drug, "error", err)
		return model.InteractionResult{
			Status:  model.StatusError,
			Message: fmt.Sprintf("error fetching data from openFDA: %v", err),
		}
	}

	if len(records) == 0 {
		return model.InteractionResult{
			Status:  model.StatusInfo,
			Message: fmt.Sprintf("no data found for the drug %q", drug),
		}
	}

	needle := strings.ToLower(condition)
	for _, record := range records {
		if strings.Contains(strings.ToLower(string(record)), needle) {
			return model.InteractionResult{
				Status:  model.StatusWarning,
				Message: fmt.Sprintf("warning: the drug %q may not be suitable for the condition %q", drug, condition),
			}
		}
	}

	return model.InteractionResult{
		Status:  model.StatusOK,
		Message: fmt.Sprintf("no known interaction found between %q and %q", drug, condition),
	}
}

func (c *Client) search(ctx context.Context, drug string) ([]json.RawMessage, error) {
	reqURL := fmt.Sprintf("%s/drug/label.json?search=openfda.generic_name:%s",
		c.baseURL, url.QueryEscape(drug))

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

	// openFDA answers 404 with a NOT_FOUND error body when the search
	// matches nothing; that is lookup-empty, not a transport failure
	if httpResp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error (%d): %s", httpResp.StatusCode, string(respBody))
	}

	var resp labelResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return resp.Results, nil
}
