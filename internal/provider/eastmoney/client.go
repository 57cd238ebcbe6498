// Package eastmoney implements the secondary market-data provider against
// the EastMoney push2 quote APIs and the finance news portal. It needs no
// credential, which makes it the failover target when the primary
// provider cannot be constructed.
package eastmoney

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/lp452254117/alpha-predator/pkg/httputil"
	"github.com/lp452254117/alpha-predator/pkg/logger"
)

const Name = "eastmoney"

// Client handles communication with EastMoney
// ⭐ SSOT: EastMoney API calls go through this client only
type Client struct {
	httpClient   *httputil.Client
	logger       *logger.Logger
	quoteBaseURL string
	histBaseURL  string
	newsBaseURL  string
}

// NewClient creates a new EastMoney client
func NewClient(httpClient *httputil.Client, log *logger.Logger, quoteBaseURL, histBaseURL, newsBaseURL string) *Client {
	return &Client{
		httpClient:   httpClient,
		logger:       log,
		quoteBaseURL: quoteBaseURL,
		histBaseURL:  histBaseURL,
		newsBaseURL:  newsBaseURL,
	}
}

// Name returns the provider identifier
func (c *Client) Name() string {
	return Name
}

// secid converts an exchange-suffixed instrument code to the push2
// market-prefixed form ("600000.SH" -> "1.600000")
func secid(code string) string {
	parts := strings.SplitN(code, ".", 2)
	if len(parts) != 2 {
		return "0." + code
	}
	switch parts[1] {
	case "SH":
		return "1." + parts[0]
	default: // SZ and BJ both live on market 0
		return "0." + parts[0]
	}
}

// getJSON fetches a push2 endpoint and decodes the envelope into out
func (c *Client) getJSON(ctx context.Context, baseURL, path string, params url.Values, out interface{}) error {
	fullURL := fmt.Sprintf("%s%s?%s", baseURL, path, params.Encode())

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return fmt.Errorf("eastmoney request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("eastmoney %s: unexpected status code: %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("eastmoney %s: read response body failed: %w", path, err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("eastmoney %s: decode response failed: %w", path, err)
	}
	return nil
}
