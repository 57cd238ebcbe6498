package eastmoney

import (
	"context"
	"net/url"
	"strconv"

	"github.com/lp452254117/alpha-predator/internal/contracts"
)

// quoteData mirrors the push2 stock/get field codes. fltt=2 makes the
// server send prices as decimals instead of scaled integers.
type quoteData struct {
	Price    float64 `json:"f43"`
	High     float64 `json:"f44"`
	Low      float64 `json:"f45"`
	Open     float64 `json:"f46"`
	Volume   float64 `json:"f47"`
	Amount   float64 `json:"f48"`
	Code     string  `json:"f57"`
	Name     string  `json:"f58"`
	PreClose float64 `json:"f60"`
	ListDate int64   `json:"f26"`
	Industry string  `json:"f127"`
}

type quoteResponse struct {
	Data *quoteData `json:"data"`
}

const quoteFields = "f43,f44,f45,f46,f47,f48,f57,f58,f60,f26,f127"

func (c *Client) fetchQuoteData(ctx context.Context, code string) (*quoteData, error) {
	params := url.Values{}
	params.Set("secid", secid(code))
	params.Set("fltt", "2")
	params.Set("fields", quoteFields)

	var decoded quoteResponse
	if err := c.getJSON(ctx, c.quoteBaseURL, "/api/qt/stock/get", params, &decoded); err != nil {
		return nil, err
	}
	return decoded.Data, nil
}

// FetchRealtimeQuote fetches the live quote for one instrument
func (c *Client) FetchRealtimeQuote(ctx context.Context, code string) (contracts.Quote, error) {
	data, err := c.fetchQuoteData(ctx, code)
	if err != nil {
		return contracts.Quote{}, err
	}
	if data == nil {
		return contracts.Quote{}, nil
	}

	return contracts.Quote{
		Code:     code,
		Name:     data.Name,
		Price:    data.Price,
		Open:     data.Open,
		High:     data.High,
		Low:      data.Low,
		PreClose: data.PreClose,
		Volume:   data.Volume,
		Amount:   data.Amount,
	}, nil
}

// FetchInstrumentInfo fetches instrument metadata from the quote surface
func (c *Client) FetchInstrumentInfo(ctx context.Context, code string) (contracts.InstrumentInfo, error) {
	data, err := c.fetchQuoteData(ctx, code)
	if err != nil {
		return contracts.InstrumentInfo{}, err
	}
	if data == nil {
		return contracts.InstrumentInfo{}, nil
	}

	info := contracts.InstrumentInfo{
		Code:     code,
		Name:     data.Name,
		Industry: data.Industry,
	}
	if data.ListDate > 0 {
		info.ListDate = strconv.FormatInt(data.ListDate, 10)
	}
	return info, nil
}
