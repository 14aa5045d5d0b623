package relay

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config does not validate: %v", err)
	}
	if cfg.Addr() != "127.0.0.1:8877" {
		t.Errorf("default addr = %q", cfg.Addr())
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relay.yaml")
	body := "host: 0.0.0.0\nport: 9000\nallowed-origin: https://notebooks.example.com\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Host != "0.0.0.0" || cfg.Port != 9000 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.AllowedOrigin != "https://notebooks.example.com" {
		t.Errorf("allowed origin = %q", cfg.AllowedOrigin)
	}
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relay.yaml")
	if err := os.WriteFile(path, []byte("port: 9100\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Host != DefaultHost {
		t.Errorf("host = %q, want default", cfg.Host)
	}
	if cfg.Port != 9100 {
		t.Errorf("port = %d", cfg.Port)
	}
	if cfg.AllowedOrigin != "*" {
		t.Errorf("allowed origin = %q", cfg.AllowedOrigin)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"valid", Config{Host: "127.0.0.1", Port: 8877, AllowedOrigin: "*"}, true},
		{"empty host", Config{Port: 8877, AllowedOrigin: "*"}, false},
		{"zero port", Config{Host: "127.0.0.1", AllowedOrigin: "*"}, false},
		{"port too large", Config{Host: "127.0.0.1", Port: 70000, AllowedOrigin: "*"}, false},
		{"empty origin", Config{Host: "127.0.0.1", Port: 8877}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}
