package tushare

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/lp452254117/alpha-predator/internal/contracts"
)

const dailyFields = "ts_code,trade_date,open,high,low,close,vol,amount"

// FetchDailyBars fetches daily OHLCV bars for [start, end]. Tushare
// returns rows newest-first; the result is re-sorted ascending before
// series construction.
func (c *Client) FetchDailyBars(ctx context.Context, code, start, end string) (*contracts.Series, error) {
	rows, err := c.call(ctx, "daily", map[string]string{
		"ts_code":    code,
		"start_date": start,
		"end_date":   end,
	}, dailyFields)
	if err != nil {
		return nil, err
	}

	bars := make([]contracts.Bar, 0, rows.len())
	for i := 0; i < rows.len(); i++ {
		date, err := time.Parse("20060102", rows.str(i, "trade_date"))
		if err != nil {
			continue
		}
		bars = append(bars, contracts.Bar{
			Date:   date,
			Open:   rows.float(i, "open"),
			High:   rows.float(i, "high"),
			Low:    rows.float(i, "low"),
			Close:  rows.float(i, "close"),
			Volume: rows.float(i, "vol"),
		})
	}

	sort.Slice(bars, func(i, j int) bool {
		return bars[i].Date.Before(bars[j].Date)
	})

	series, err := contracts.NewSeries(bars)
	if err != nil {
		return nil, fmt.Errorf("tushare daily %s: %w", code, err)
	}
	return series, nil
}
