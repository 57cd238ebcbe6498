package tushare

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lp452254117/alpha-predator/pkg/httputil"
	"github.com/lp452254117/alpha-predator/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log := logger.Nop()
	client, err := NewClient(httputil.New(log).DisableRetry(), log, server.URL, "test-token")
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client, server
}

func TestNewClient_RequiresToken(t *testing.T) {
	log := logger.Nop()
	if _, err := NewClient(httputil.New(log), log, "http://api.tushare.pro", ""); err == nil {
		t.Fatal("NewClient() with empty token should fail")
	}
}

func TestFetchDailyBars_ParsesAndSortsAscending(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req apiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.APIName != "daily" {
			t.Errorf("api_name = %s, want daily", req.APIName)
		}
		if req.Token != "test-token" {
			t.Errorf("token = %s, want test-token", req.Token)
		}
		if req.Params["ts_code"] != "000001.SZ" {
			t.Errorf("ts_code = %s", req.Params["ts_code"])
		}

		// Newest-first, as the real API responds
		fmt.Fprint(w, `{"code":0,"msg":null,"data":{
			"fields":["ts_code","trade_date","open","high","low","close","vol","amount"],
			"items":[
				["000001.SZ","20240103",10.2,10.6,10.1,10.5,1200,12600],
				["000001.SZ","20240102",10.0,10.3,9.9,10.2,1000,10200]
			]}}`)
	})

	series, err := client.FetchDailyBars(context.Background(), "000001.SZ", "20240101", "20240103")
	if err != nil {
		t.Fatalf("FetchDailyBars() error = %v", err)
	}

	if series.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", series.Len())
	}
	first := series.Bar(0)
	if first.Date.Format("20060102") != "20240102" {
		t.Errorf("first bar date = %s, want 20240102", first.Date.Format("20060102"))
	}
	if last := series.Last(); last.Close != 10.5 {
		t.Errorf("last close = %v, want 10.5", last.Close)
	}
}

func TestCall_APIErrorCode(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":2002,"msg":"token invalid","data":null}`)
	})

	if _, err := client.FetchDailyBars(context.Background(), "000001.SZ", "", ""); err == nil {
		t.Fatal("expected error on non-zero api code")
	}
}

func TestFetchRealtimeQuote_UsesLatestTwoBars(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":0,"msg":null,"data":{
			"fields":["ts_code","trade_date","open","high","low","close","vol","amount"],
			"items":[
				["000001.SZ","20240103",10.2,10.6,10.1,10.5,1200,12600],
				["000001.SZ","20240102",10.0,10.3,9.9,10.2,1000,10200]
			]}}`)
	})

	q, err := client.FetchRealtimeQuote(context.Background(), "000001.SZ")
	if err != nil {
		t.Fatalf("FetchRealtimeQuote() error = %v", err)
	}
	if q.Price != 10.5 {
		t.Errorf("Price = %v, want 10.5", q.Price)
	}
	if q.PreClose != 10.2 {
		t.Errorf("PreClose = %v, want 10.2", q.PreClose)
	}
}

func TestFetchCapitalFlow_SignSplitsInflowOutflow(t *testing.T) {
	tests := []struct {
		name        string
		northMoney  string
		wantInflow  float64
		wantOutflow float64
	}{
		{"net inflow", "5230.5", 52.305, 0},
		{"net outflow", "-1200", 0, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprintf(w, `{"code":0,"msg":null,"data":{
					"fields":["trade_date","north_money","south_money"],
					"items":[["20240103",%s,100]]}}`, tt.northMoney)
			})

			flow, err := client.FetchCapitalFlow(context.Background(), "20240103")
			if err != nil {
				t.Fatalf("FetchCapitalFlow() error = %v", err)
			}
			if flow.Inflow != tt.wantInflow {
				t.Errorf("Inflow = %v, want %v", flow.Inflow, tt.wantInflow)
			}
			if flow.Outflow != tt.wantOutflow {
				t.Errorf("Outflow = %v, want %v", flow.Outflow, tt.wantOutflow)
			}
		})
	}
}

func TestFetchMacroRate(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":0,"msg":null,"data":{
			"fields":["date","on","1w","1m"],
			"items":[["20240103",1.823,1.95,2.1]]}}`)
	})

	rate, err := client.FetchMacroRate(context.Background(), "20240103")
	if err != nil {
		t.Fatalf("FetchMacroRate() error = %v", err)
	}
	if rate != 1.823 {
		t.Errorf("rate = %v, want 1.823", rate)
	}
}
