// Package lookup resolves show names to channel numbers through the external
// search endpoint.
package lookup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"lexhook/internal/domain"
	"lexhook/internal/slots"
)

type Client struct {
	url  string
	http *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		url:  strings.TrimSpace(url),
		http: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Enabled() bool {
	return c != nil && c.url != ""
}

type searchRequest struct {
	Query string `json:"q"`
}

// searchResponse accepts two shapes. The current contract is
// {"channel": 12} or {"notFound": true}. The legacy endpoint instead returns
// the channel as a string in body-json.errorMessage.
type searchResponse struct {
	Channel  json.RawMessage `json:"channel"`
	NotFound bool            `json:"notFound"`
	BodyJSON *struct {
		ErrorMessage json.RawMessage `json:"errorMessage"`
	} `json:"body-json"`
}

// Lookup asks the endpoint which channel carries show. A show the endpoint
// does not know, or answers with a non-numeric channel, is reported as not
// found; transport and decoding problems are errors.
func (c *Client) Lookup(ctx context.Context, show string) (domain.ShowLookupResult, error) {
	if !c.Enabled() {
		return domain.ShowLookupResult{}, fmt.Errorf("show lookup service is not configured")
	}
	body, _ := json.Marshal(searchRequest{Query: show})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return domain.ShowLookupResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.ShowLookupResult{}, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return domain.ShowLookupResult{}, fmt.Errorf("show lookup status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var out searchResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return domain.ShowLookupResult{}, fmt.Errorf("decode show lookup response: %w", err)
	}
	return out.result(), nil
}

func (r searchResponse) result() domain.ShowLookupResult {
	if r.NotFound {
		return domain.ShowLookupResult{}
	}
	if ch, ok := channelNumber(r.Channel); ok {
		return domain.ShowLookupResult{Channel: ch, Found: true}
	}
	if r.BodyJSON != nil {
		if ch, ok := channelNumber(r.BodyJSON.ErrorMessage); ok {
			return domain.ShowLookupResult{Channel: ch, Found: true}
		}
	}
	return domain.ShowLookupResult{}
}

// channelNumber accepts a JSON number or a numeric string.
func channelNumber(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", false
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil && i >= 0 {
			return strconv.FormatInt(i, 10), true
		}
		return "", false
	}
	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return "", false
	}
	str = strings.TrimSpace(str)
	if !slots.IsDigits(str) {
		return "", false
	}
	return str, true
}
