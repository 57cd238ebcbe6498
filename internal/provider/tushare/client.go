// Package tushare implements the primary market-data provider against the
// Tushare Pro JSON-RPC-like HTTP API. Every call is a POST to a single
// endpoint carrying an api_name, the account token and a params map.
package tushare

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/lp452254117/alpha-predator/pkg/httputil"
	"github.com/lp452254117/alpha-predator/pkg/logger"
)

const Name = "tushare"

// Client handles communication with Tushare Pro
// ⭐ SSOT: Tushare Pro API calls go through this client only
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	token      string
}

// NewClient creates a new Tushare Pro client. A missing token means the
// provider is unavailable, which the caller treats as a failover signal,
// not a crash.
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL, token string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("tushare token not configured")
	}
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
		token:      token,
	}, nil
}

// Name returns the provider identifier
func (c *Client) Name() string {
	return Name
}

type apiRequest struct {
	APIName string            `json:"api_name"`
	Token   string            `json:"token"`
	Params  map[string]string `json:"params"`
	Fields  string            `json:"fields,omitempty"`
}

type apiResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		Fields []string          `json:"fields"`
		Items  [][]json.RawMessage `json:"items"`
	} `json:"data"`
}

// rowSet is a decoded Tushare result: column names plus row-major values
type rowSet struct {
	fields map[string]int
	items  [][]json.RawMessage
}

func (r rowSet) len() int { return len(r.items) }

func (r rowSet) float(row int, field string) float64 {
	idx, ok := r.fields[field]
	if !ok || idx >= len(r.items[row]) {
		return 0
	}
	var v float64
	if err := json.Unmarshal(r.items[row][idx], &v); err != nil {
		return 0
	}
	return v
}

func (r rowSet) str(row int, field string) string {
	idx, ok := r.fields[field]
	if !ok || idx >= len(r.items[row]) {
		return ""
	}
	var v string
	if err := json.Unmarshal(r.items[row][idx], &v); err != nil {
		return ""
	}
	return v
}

// call issues one API invocation and decodes the tabular payload
func (c *Client) call(ctx context.Context, apiName string, params map[string]string, fields string) (rowSet, error) {
	req := apiRequest{
		APIName: apiName,
		Token:   c.token,
		Params:  params,
		Fields:  fields,
	}

	resp, err := c.httpClient.PostJSON(ctx, c.baseURL, req)
	if err != nil {
		return rowSet{}, fmt.Errorf("tushare %s request failed: %w", apiName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return rowSet{}, fmt.Errorf("tushare %s: unexpected status code: %d", apiName, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return rowSet{}, fmt.Errorf("tushare %s: read response body failed: %w", apiName, err)
	}

	var decoded apiResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return rowSet{}, fmt.Errorf("tushare %s: decode response failed: %w", apiName, err)
	}
	if decoded.Code != 0 {
		return rowSet{}, fmt.Errorf("tushare %s: api error %d: %s", apiName, decoded.Code, decoded.Msg)
	}

	fieldIdx := make(map[string]int, len(decoded.Data.Fields))
	for i, f := range decoded.Data.Fields {
		fieldIdx[f] = i
	}

	c.logger.WithFields(map[string]interface{}{
		"api_name": apiName,
		"rows":     len(decoded.Data.Items),
	}).Debug("Tushare call completed")

	return rowSet{fields: fieldIdx, items: decoded.Data.Items}, nil
}
