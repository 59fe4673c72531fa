package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/baditaflorin/go_doc_similarity/internal/config"
)

func TestLoadDefaultsExpandPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(tempHome, ".config", "docsim", "config.toml"); resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}
	if want := filepath.Join(tempHome, ".local", "share", "docsim", "history.db"); cfg.History.Path != want {
		t.Fatalf("unexpected history path: got %q want %q", cfg.History.Path, want)
	}
	if cfg.Server.Addr != "127.0.0.1:8080" {
		t.Fatalf("unexpected server addr: %q", cfg.Server.Addr)
	}
	if cfg.Engine.MaxTableCells != 25_000_000 {
		t.Fatalf("unexpected table budget: %d", cfg.Engine.MaxTableCells)
	}
}

func TestLoadOverridesFromFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "docsim.toml")

	payload := map[string]any{
		"logging": map[string]any{"format": " JSON "},
		"engine": map[string]any{
			"parallel":           true,
			"fast_tokenizer":     true,
			"passage_min_tokens": 4,
			"max_table_cells":    0,
		},
		"history": map[string]any{"enabled": false},
	}
	data, err := toml.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected normalized json format, got %q", cfg.Logging.Format)
	}
	if !cfg.Engine.Parallel || !cfg.Engine.FastTokenizer || cfg.Engine.PassageMinTokens != 4 {
		t.Fatalf("engine overrides not applied: %+v", cfg.Engine)
	}
	if cfg.Engine.MaxTableCells != 0 {
		t.Fatalf("expected unlimited table budget, got %d", cfg.Engine.MaxTableCells)
	}
	if cfg.History.Enabled {
		t.Fatal("expected history disabled")
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docsim.toml")
	if err := os.WriteFile(path, []byte("[engine]\nmax_cells = 3\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{name: "defaults", mutate: func(*config.Config) {}},
		{name: "empty addr", mutate: func(c *config.Config) { c.Server.Addr = "" }, want: "server.addr"},
		{name: "bad format", mutate: func(c *config.Config) { c.Logging.Format = "xml" }, want: "logging.format"},
		{name: "negative budget", mutate: func(c *config.Config) { c.Engine.MaxTableCells = -1 }, want: "max_table_cells"},
		{name: "negative passages", mutate: func(c *config.Config) { c.Engine.PassageMinTokens = -3 }, want: "passage_min_tokens"},
		{name: "history without path", mutate: func(c *config.Config) { c.History.Path = "" }, want: "history.path"},
		{name: "history disabled without path", mutate: func(c *config.Config) {
			c.History.Enabled = false
			c.History.Path = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestCreateSampleLoads(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	def := config.Default()
	if cfg.Engine.MaxTableCells != def.Engine.MaxTableCells || cfg.History.Limit != def.History.Limit {
		t.Fatalf("sample diverges from defaults: %+v", cfg)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.Engine.Parallel = true

	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var back config.Config
	if err := toml.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back != cfg {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", back, cfg)
	}
}
