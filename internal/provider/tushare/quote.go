package tushare

import (
	"context"

	"github.com/lp452254117/alpha-predator/internal/contracts"
)

// FetchRealtimeQuote approximates a realtime quote from the two most
// recent daily bars. Tushare Pro has no tick-level surface at the basic
// quota tier, so the latest close stands in for the live price.
func (c *Client) FetchRealtimeQuote(ctx context.Context, code string) (contracts.Quote, error) {
	rows, err := c.call(ctx, "daily", map[string]string{"ts_code": code}, dailyFields)
	if err != nil {
		return contracts.Quote{}, err
	}
	if rows.len() == 0 {
		return contracts.Quote{}, nil
	}

	// Row 0 is the newest trading day
	q := contracts.Quote{
		Code:   rows.str(0, "ts_code"),
		Price:  rows.float(0, "close"),
		Open:   rows.float(0, "open"),
		High:   rows.float(0, "high"),
		Low:    rows.float(0, "low"),
		Volume: rows.float(0, "vol"),
		Amount: rows.float(0, "amount"),
	}
	if rows.len() > 1 {
		q.PreClose = rows.float(1, "close")
	}
	return q, nil
}

// FetchInstrumentInfo fetches listing metadata for one instrument
func (c *Client) FetchInstrumentInfo(ctx context.Context, code string) (contracts.InstrumentInfo, error) {
	rows, err := c.call(ctx, "stock_basic", map[string]string{
		"ts_code":     code,
		"list_status": "L",
	}, "ts_code,symbol,name,area,industry,market,list_date")
	if err != nil {
		return contracts.InstrumentInfo{}, err
	}
	if rows.len() == 0 {
		return contracts.InstrumentInfo{}, nil
	}

	return contracts.InstrumentInfo{
		Code:     rows.str(0, "ts_code"),
		Name:     rows.str(0, "name"),
		Industry: rows.str(0, "industry"),
		Market:   rows.str(0, "market"),
		ListDate: rows.str(0, "list_date"),
	}, nil
}
