package eastmoney

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lp452254117/alpha-predator/internal/contracts"
)

type klineResponse struct {
	Data struct {
		Code   string   `json:"code"`
		Name   string   `json:"name"`
		Klines []string `json:"klines"`
	} `json:"data"`
}

// FetchDailyBars fetches daily candles from the push2his kline API.
// Each kline row is a comma-joined string:
// date,open,close,high,low,volume,amount — note close before high/low.
func (c *Client) FetchDailyBars(ctx context.Context, code, start, end string) (*contracts.Series, error) {
	params := url.Values{}
	params.Set("secid", secid(code))
	params.Set("klt", "101") // daily
	params.Set("fqt", "1")   // forward adjusted
	params.Set("fields1", "f1,f2,f3,f4,f5,f6")
	params.Set("fields2", "f51,f52,f53,f54,f55,f56,f57")
	params.Set("beg", start)
	params.Set("end", end)

	var decoded klineResponse
	if err := c.getJSON(ctx, c.histBaseURL, "/api/qt/stock/kline/get", params, &decoded); err != nil {
		return nil, err
	}

	bars := make([]contracts.Bar, 0, len(decoded.Data.Klines))
	for _, line := range decoded.Data.Klines {
		bar, err := parseKline(line)
		if err != nil {
			c.logger.WithError(err).Warn("Skipping malformed kline row")
			continue
		}
		bars = append(bars, bar)
	}

	series, err := contracts.NewSeries(bars)
	if err != nil {
		return nil, fmt.Errorf("eastmoney kline %s: %w", code, err)
	}
	return series, nil
}

func parseKline(line string) (contracts.Bar, error) {
	parts := strings.Split(line, ",")
	if len(parts) < 7 {
		return contracts.Bar{}, fmt.Errorf("kline row has %d fields, want 7", len(parts))
	}

	date, err := time.Parse("2006-01-02", parts[0])
	if err != nil {
		return contracts.Bar{}, fmt.Errorf("bad kline date %q: %w", parts[0], err)
	}

	vals := make([]float64, 5)
	for i := 1; i <= 5; i++ {
		v, err := strconv.ParseFloat(parts[i], 64)
		if err != nil {
			return contracts.Bar{}, fmt.Errorf("bad kline field %q: %w", parts[i], err)
		}
		vals[i-1] = v
	}

	return contracts.Bar{
		Date:   date,
		Open:   vals[0],
		Close:  vals[1],
		High:   vals[2],
		Low:    vals[3],
		Volume: vals[4],
	}, nil
}
