package eastmoney

import (
	"context"
	"net/url"

	"github.com/lp452254117/alpha-predator/internal/contracts"
)

// Major index secids tracked in the morning snapshot
var indexSecids = []struct {
	code  string
	secid string
	name  string
}{
	{"000001.SH", "1.000001", "上证指数"},
	{"399001.SZ", "0.399001", "深证成指"},
	{"399006.SZ", "0.399006", "创业板指"},
}

type indexData struct {
	Price     float64 `json:"f43"`
	Volume    float64 `json:"f47"`
	Amount    float64 `json:"f48"`
	Name      string  `json:"f58"`
	ChangePct float64 `json:"f170"`
}

type indexResponse struct {
	Data *indexData `json:"data"`
}

// FetchIndexSnapshot fetches live quotes for the major market indexes.
// A missing row for one index is skipped, not fatal.
func (c *Client) FetchIndexSnapshot(ctx context.Context) ([]contracts.IndexQuote, error) {
	quotes := make([]contracts.IndexQuote, 0, len(indexSecids))

	for _, idx := range indexSecids {
		params := url.Values{}
		params.Set("secid", idx.secid)
		params.Set("fltt", "2")
		params.Set("fields", "f43,f47,f48,f58,f170")

		var decoded indexResponse
		if err := c.getJSON(ctx, c.quoteBaseURL, "/api/qt/stock/get", params, &decoded); err != nil {
			return nil, err
		}
		if decoded.Data == nil {
			continue
		}

		quotes = append(quotes, contracts.IndexQuote{
			Code:      idx.code,
			Name:      idx.name,
			Price:     decoded.Data.Price,
			ChangePct: decoded.Data.ChangePct,
			Volume:    decoded.Data.Volume,
			Amount:    decoded.Data.Amount,
		})
	}
	return quotes, nil
}

type flowResponse struct {
	Data struct {
		HK2SH struct {
			DayNetAmtIn float64 `json:"dayNetAmtIn"` // million CNY
		} `json:"hk2sh"`
		HK2SZ struct {
			DayNetAmtIn float64 `json:"dayNetAmtIn"`
		} `json:"hk2sz"`
	} `json:"data"`
}

// FetchCapitalFlow fetches today's northbound flow. The push2 kamt
// endpoint only carries the current session; tradeDate is accepted for
// interface compatibility and ignored.
func (c *Client) FetchCapitalFlow(ctx context.Context, tradeDate string) (contracts.CapitalFlow, error) {
	params := url.Values{}
	params.Set("fields1", "f1,f2,f3,f4")
	params.Set("fields2", "f51,f52,f53,f54")

	var decoded flowResponse
	if err := c.getJSON(ctx, c.quoteBaseURL, "/api/qt/kamt/get", params, &decoded); err != nil {
		return contracts.CapitalFlow{}, err
	}

	net := (decoded.Data.HK2SH.DayNetAmtIn + decoded.Data.HK2SZ.DayNetAmtIn) / 100
	flow := contracts.CapitalFlow{}
	if net >= 0 {
		flow.Inflow = net
	} else {
		flow.Outflow = -net
	}
	return flow, nil
}
