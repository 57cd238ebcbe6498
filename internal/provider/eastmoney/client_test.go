package eastmoney

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lp452254117/alpha-predator/pkg/httputil"
	"github.com/lp452254117/alpha-predator/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log := logger.Nop()
	return NewClient(httputil.New(log).DisableRetry(), log,
		server.URL, server.URL, server.URL)
}

func TestSecid(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"600000.SH", "1.600000"},
		{"000001.SZ", "0.000001"},
		{"430047.BJ", "0.430047"},
		{"000001", "0.000001"},
	}
	for _, tt := range tests {
		if got := secid(tt.code); got != tt.want {
			t.Errorf("secid(%s) = %s, want %s", tt.code, got, tt.want)
		}
	}
}

func TestFetchDailyBars_ParsesKlines(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("secid"); got != "0.000001" {
			t.Errorf("secid = %s, want 0.000001", got)
		}
		if got := r.URL.Query().Get("klt"); got != "101" {
			t.Errorf("klt = %s, want 101", got)
		}
		// kline order is date,open,close,high,low,volume,amount
		fmt.Fprint(w, `{"data":{"code":"000001","name":"平安银行","klines":[
			"2024-01-02,10.00,10.20,10.30,9.90,1000,10200",
			"2024-01-03,10.20,10.50,10.60,10.10,1200,12600"
		]}}`)
	})

	series, err := client.FetchDailyBars(context.Background(), "000001.SZ", "20240101", "20240103")
	if err != nil {
		t.Fatalf("FetchDailyBars() error = %v", err)
	}

	if series.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", series.Len())
	}
	last := series.Last()
	if last.Close != 10.5 {
		t.Errorf("last close = %v, want 10.5", last.Close)
	}
	if last.High != 10.6 || last.Low != 10.1 {
		t.Errorf("high/low = %v/%v, want 10.6/10.1 (close-before-high order)", last.High, last.Low)
	}
}

func TestFetchRealtimeQuote(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("fltt"); got != "2" {
			t.Errorf("fltt = %s, want 2", got)
		}
		fmt.Fprint(w, `{"data":{"f43":10.5,"f44":10.6,"f45":10.1,"f46":10.2,
			"f47":1200,"f48":12600,"f57":"000001","f58":"平安银行","f60":10.2}}`)
	})

	q, err := client.FetchRealtimeQuote(context.Background(), "000001.SZ")
	if err != nil {
		t.Fatalf("FetchRealtimeQuote() error = %v", err)
	}
	if q.Price != 10.5 || q.PreClose != 10.2 {
		t.Errorf("Price/PreClose = %v/%v, want 10.5/10.2", q.Price, q.PreClose)
	}
	if q.Name != "平安银行" {
		t.Errorf("Name = %s", q.Name)
	}
}

func TestFetchRealtimeQuote_NullDataIsEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":null}`)
	})

	q, err := client.FetchRealtimeQuote(context.Background(), "999999.SZ")
	if err != nil {
		t.Fatalf("FetchRealtimeQuote() error = %v", err)
	}
	if !q.IsEmpty() {
		t.Errorf("quote = %+v, want empty", q)
	}
}

func TestFetchCapitalFlow_SumsBothChannels(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"hk2sh":{"dayNetAmtIn":3000},"hk2sz":{"dayNetAmtIn":2230.5}}}`)
	})

	flow, err := client.FetchCapitalFlow(context.Background(), "")
	if err != nil {
		t.Fatalf("FetchCapitalFlow() error = %v", err)
	}
	if flow.Inflow != 52.305 {
		t.Errorf("Inflow = %v, want 52.305", flow.Inflow)
	}
	if flow.Outflow != 0 {
		t.Errorf("Outflow = %v, want 0", flow.Outflow)
	}
}

func TestFetchNews_ScrapesHeadlines(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><ul id="newsListContent">
			<li><p class="title"><a href="/a/1.html">央行开展逆回购操作</a></p><p class="time">01月02日 09:15</p></li>
			<li><p class="title"><a href="/a/2.html">北向资金净流入</a></p><p class="time">01月02日 09:10</p></li>
			<li><p class="title"><a href="/a/3.html">第三条新闻</a></p><p class="time">01月02日 09:05</p></li>
		</ul></body></html>`)
	})

	items, err := client.FetchNews(context.Background(), 2)
	if err != nil {
		t.Fatalf("FetchNews() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2 (limit respected)", len(items))
	}
	if items[0].Title != "央行开展逆回购操作" {
		t.Errorf("items[0].Title = %s", items[0].Title)
	}
	if items[0].Time.IsZero() {
		t.Error("items[0].Time should be parsed")
	}
	if items[0].Time.Hour() != 9 || items[0].Time.Minute() != 15 {
		t.Errorf("items[0].Time = %v, want 09:15", items[0].Time)
	}
}
