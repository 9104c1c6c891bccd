// Package vision wraps the Imagga image tagging service behind a
// stable in-process contract. Classification failure degrades to
// "no tags detected" rather than aborting a pipeline: transport and
// service errors are logged and swallowed.
package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"

	"github.com/ppiankov/mediguard/internal/model"
	"github.com/ppiankov/mediguard/internal/util"
)

// maxTags caps how many ranked tags a classification call yields
const maxTags = 10

// Client calls the Imagga /tags endpoint
type Client struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
	logger     *slog.Logger
}

// Imagga API structures
type tagsResponse struct {
	Result struct {
		Tags []struct {
			Confidence float64 `json:"confidence"`
			Tag        struct {
				En string `json:"en"`
			} `json:"tag"`
		} `json:"tags"`
	} `json:"result"`
	Status struct {
		Text string `json:"text"`
		Type string `json:"type"`
	} `json:"status"`
}

// NewClient creates a new vision tagging client
func NewClient(cfg model.ImaggaConfig, httpCfg model.HTTPConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		httpClient: util.NewHTTPClient(httpCfg.Timeout, httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
		logger:     logger,
	}
}

// Classify returns up to 10 ranked tags for the image, most confident
// first. Labels are lowercased; ties keep the service return order.
// Any failure yields an empty sequence.
func (c *Client) Classify(ctx context.Context, image []byte) []model.RankedTag {
	resp, err := c.requestTags(ctx, image)
	if err != nil {
		c.logger.Warn("image tagging failed", "error", err)
		return nil
	}

	raw := resp.Result.Tags
	if len(raw) == 0 {
		return nil
	}

	tags := make([]model.RankedTag, 0, len(raw))
	for _, t := range raw {
		tags = append(tags, model.RankedTag{
			Name:       strings.ToLower(t.Tag.En),
			Confidence: t.Confidence,
		})
	}

	// Stable: equal confidences keep service order
	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].Confidence > tags[j].Confidence
	})

	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}
	return tags
}

// ClassifyTop returns only the single most confident tag. The second
// return value is false when classification yields nothing.
func (c *Client) ClassifyTop(ctx context.Context, image []byte) (model.RankedTag, bool) {
	tags := c.Classify(ctx, image)
	if len(tags) == 0 {
		return model.RankedTag{}, false
	}
	return tags[0], true
}

func (c *Client) requestTags(ctx context.Context, image []byte) (*tagsResponse, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("image", "upload")
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("write image: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}

	url := fmt.Sprintf("%s/tags", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.SetBasicAuth(c.apiKey, c.apiSecret)

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
		var apiErr tagsResponse
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Status.Text != "" {
			return nil, fmt.Errorf("API error (%d): %s", httpResp.StatusCode, apiErr.Status.Text)
		}
		return nil, fmt.Errorf("API error (%d): %s", httpResp.StatusCode, string(respBody))
	}

	var resp tagsResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &resp, nil
}
