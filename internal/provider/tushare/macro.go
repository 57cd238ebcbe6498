package tushare

import (
	"context"
	"fmt"

	"github.com/lp452254117/alpha-predator/internal/contracts"
)

// Major index codes tracked in the morning snapshot
var indexCodes = []struct {
	code string
	name string
}{
	{"000001.SH", "上证指数"},
	{"399001.SZ", "深证成指"},
	{"399006.SZ", "创业板指"},
}

// FetchIndexSnapshot returns the latest daily row for each major index
func (c *Client) FetchIndexSnapshot(ctx context.Context) ([]contracts.IndexQuote, error) {
	quotes := make([]contracts.IndexQuote, 0, len(indexCodes))

	for _, idx := range indexCodes {
		rows, err := c.call(ctx, "index_daily", map[string]string{
			"ts_code": idx.code,
		}, "ts_code,trade_date,close,pct_chg,vol,amount")
		if err != nil {
			return nil, fmt.Errorf("index snapshot %s: %w", idx.code, err)
		}
		if rows.len() == 0 {
			continue
		}

		quotes = append(quotes, contracts.IndexQuote{
			Code:      idx.code,
			Name:      idx.name,
			Price:     rows.float(0, "close"),
			ChangePct: rows.float(0, "pct_chg"),
			Volume:    rows.float(0, "vol"),
			Amount:    rows.float(0, "amount"),
		})
	}
	return quotes, nil
}

// FetchCapitalFlow fetches the northbound (HSGT) flow for a trade date.
// An empty date asks for the latest available row.
func (c *Client) FetchCapitalFlow(ctx context.Context, tradeDate string) (contracts.CapitalFlow, error) {
	params := map[string]string{}
	if tradeDate != "" {
		params["trade_date"] = tradeDate
	}

	rows, err := c.call(ctx, "moneyflow_hsgt", params, "trade_date,north_money,south_money")
	if err != nil {
		return contracts.CapitalFlow{}, err
	}
	if rows.len() == 0 {
		return contracts.CapitalFlow{}, nil
	}

	// north_money is the net northbound flow in million CNY
	north := rows.float(0, "north_money")
	flow := contracts.CapitalFlow{}
	if north >= 0 {
		flow.Inflow = north / 100
	} else {
		flow.Outflow = -north / 100
	}
	return flow, nil
}

// FetchMacroRate fetches the overnight Shibor rate for a date. An empty
// date asks for the latest fixing.
func (c *Client) FetchMacroRate(ctx context.Context, date string) (float64, error) {
	params := map[string]string{}
	if date != "" {
		params["date"] = date
	}

	rows, err := c.call(ctx, "shibor", params, "date,on,1w,1m")
	if err != nil {
		return 0, err
	}
	if rows.len() == 0 {
		return 0, fmt.Errorf("shibor: no rows returned")
	}
	return rows.float(0, "on"), nil
}
