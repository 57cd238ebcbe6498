package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %s, want 8080", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %s, want development", cfg.Env)
	}
	if cfg.Pipeline.CutoffTime != "09:29:30" {
		t.Errorf("CutoffTime = %s, want 09:29:30", cfg.Pipeline.CutoffTime)
	}
	if cfg.Pipeline.IncrementalTimeout != 30*time.Second {
		t.Errorf("IncrementalTimeout = %v, want 30s", cfg.Pipeline.IncrementalTimeout)
	}
	if cfg.Tushare.Token != "" {
		t.Errorf("Tushare.Token = %q, want empty", cfg.Tushare.Token)
	}
}

func TestLoad_MissingTokenIsNotAnError(t *testing.T) {
	os.Clearenv()
	os.Setenv("TUSHARE_TOKEN", "")

	if _, err := Load(); err != nil {
		t.Fatalf("Load() with empty token should not fail, got %v", err)
	}
}

func TestLoad_InvalidEnv(t *testing.T) {
	os.Clearenv()
	os.Setenv("ENV", "sandbox")

	if _, err := Load(); err == nil {
		t.Fatal("Load() with invalid ENV should fail")
	}
}

func TestLoad_InvalidCutoff(t *testing.T) {
	os.Clearenv()
	os.Setenv("PIPELINE_CUTOFF_TIME", "9am")

	if _, err := Load(); err == nil {
		t.Fatal("Load() with invalid cutoff should fail")
	}
}

func TestParseCutoff(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"09:29:30", 9*3600 + 29*60 + 30, false},
		{"00:00:00", 0, false},
		{"23:59:59", 23*3600 + 59*60 + 59, false},
		{"24:00:00", 0, true},
		{"9:29", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCutoff(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCutoff(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseCutoff(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
