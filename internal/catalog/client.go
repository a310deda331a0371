package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"starhub/pkg/models"
)

const upstreamTimeout = 15 * time.Second

// Client fetches whole resource collections from the upstream catalog API.
// One GET per category, no retries; a transport error or timeout surfaces
// as a wrapped error and the caller decides what to do with the cold cache.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: upstreamTimeout},
	}
}

// FetchCategory returns the raw records for one category. The upstream
// answers either with a bare array or with a {"results": [...]} envelope;
// both shapes are normalized to a plain slice here.
func (c *Client) FetchCategory(ctx context.Context, cat Category) ([]models.Record, error) {
	url := fmt.Sprintf("%s/%s/", c.BaseURL, cat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("upstream: build request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream: request %s: %w", cat, err)
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("upstream: read %s: %w", cat, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream: %s status %d", cat, resp.StatusCode)
	}

	return decodeRecords(body)
}

func decodeRecords(body []byte) ([]models.Record, error) {
	var list []models.Record
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}

	var envelope struct {
		Results []models.Record `json:"results"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("upstream: decode: %w", err)
	}
	return envelope.Results, nil
}
