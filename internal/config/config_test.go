package config

import (
	"os"
	"testing"
	"time"
)

// clearEnv unsets key for the test and restores it afterwards; env tests
// must not run in parallel.
func clearEnv(t *testing.T, key string) {
	t.Helper()
	if v, ok := os.LookupEnv(key); ok {
		os.Unsetenv(key)
		t.Cleanup(func() { os.Setenv(key, v) })
	}
}

func TestLoadClientDefaults(t *testing.T) {
	clearEnv(t, "TASKFLOW_API_URL")
	clearEnv(t, "TASKFLOW_STATE_DIR")
	clearEnv(t, "TASKFLOW_HTTP_TIMEOUT")

	cfg, err := LoadClient()
	if err != nil {
		t.Fatalf("LoadClient with default env failed: %v", err)
	}
	if got := cfg.Timeout.Duration(); got != 10*time.Second {
		t.Fatalf("expected default timeout 10s, got %v", got)
	}
	if cfg.APIBaseURL != "http://localhost:8080" {
		t.Fatalf("unexpected default API URL: %q", cfg.APIBaseURL)
	}
	if cfg.StateDir == "" {
		t.Fatal("state dir must resolve to a concrete path")
	}
}

func TestLoadClientTimeoutOverride(t *testing.T) {
	clearEnv(t, "TASKFLOW_API_URL")
	clearEnv(t, "TASKFLOW_STATE_DIR")
	t.Setenv("TASKFLOW_HTTP_TIMEOUT", "30")

	cfg, err := LoadClient()
	if err != nil {
		t.Fatalf("LoadClient failed: %v", err)
	}
	if got := cfg.Timeout.Duration(); got != 30*time.Second {
		t.Fatalf("bare numbers are seconds, expected 30s, got %v", got)
	}
}

func TestDurationSecondsSetValue(t *testing.T) {
	cases := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "10s", want: 10 * time.Second},
		{in: "5m", want: 5 * time.Minute},
		{in: "10", want: 10 * time.Second},
		{in: `"10s"`, want: 10 * time.Second},
		{in: "", wantErr: true},
		{in: "soon", wantErr: true},
	}
	for _, tc := range cases {
		var d durationSeconds
		err := d.SetValue(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("SetValue(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("SetValue(%q): %v", tc.in, err)
			continue
		}
		if d.Duration() != tc.want {
			t.Errorf("SetValue(%q) = %v, want %v", tc.in, d.Duration(), tc.want)
		}
	}
}
