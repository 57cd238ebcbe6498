package contracts

import (
	"testing"
	"time"
)

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestNewSeries_Valid(t *testing.T) {
	bars := []Bar{
		{Date: day(0), Open: 10, High: 11, Low: 9, Close: 10.5, Volume: 100},
		{Date: day(1), Open: 10.5, High: 12, Low: 10, Close: 11, Volume: 120},
	}

	s, err := NewSeries(bars)
	if err != nil {
		t.Fatalf("NewSeries() error = %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if s.Last().Close != 11 {
		t.Errorf("Last().Close = %v, want 11", s.Last().Close)
	}
}

func TestNewSeries_Invalid(t *testing.T) {
	tests := []struct {
		name string
		bars []Bar
	}{
		{
			name: "high below low",
			bars: []Bar{{Date: day(0), High: 9, Low: 10, Volume: 1}},
		},
		{
			name: "negative volume",
			bars: []Bar{{Date: day(0), High: 10, Low: 9, Volume: -1}},
		},
		{
			name: "duplicate dates",
			bars: []Bar{
				{Date: day(0), High: 10, Low: 9, Volume: 1},
				{Date: day(0), High: 10, Low: 9, Volume: 1},
			},
		},
		{
			name: "descending dates",
			bars: []Bar{
				{Date: day(1), High: 10, Low: 9, Volume: 1},
				{Date: day(0), High: 10, Low: 9, Volume: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSeries(tt.bars); err == nil {
				t.Error("NewSeries() expected error, got nil")
			}
		})
	}
}

func TestSeries_CopiesInput(t *testing.T) {
	bars := []Bar{{Date: day(0), High: 10, Low: 9, Close: 9.5, Volume: 1}}
	s, err := NewSeries(bars)
	if err != nil {
		t.Fatalf("NewSeries() error = %v", err)
	}

	bars[0].Close = 999
	if s.Bar(0).Close != 9.5 {
		t.Error("Series must not alias the caller's slice")
	}
}

func TestQuote_ChangePct(t *testing.T) {
	q := Quote{Price: 11, PreClose: 10}
	if got := q.ChangePct(); got != 10 {
		t.Errorf("ChangePct() = %v, want 10", got)
	}

	zero := Quote{Price: 11}
	if got := zero.ChangePct(); got != 0 {
		t.Errorf("ChangePct() with zero pre-close = %v, want 0", got)
	}
}

func TestQuote_IsEmpty(t *testing.T) {
	if !(Quote{}).IsEmpty() {
		t.Error("zero Quote should be empty")
	}
	if (Quote{Code: "600000.SH", Price: 10}).IsEmpty() {
		t.Error("populated Quote should not be empty")
	}
}
