package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/baditaflorin/go_doc_similarity/internal/app"
	"github.com/baditaflorin/go_doc_similarity/internal/config"
)

type cliTestEnv struct {
	dir        string
	configPath string
}

func setupCLITestEnv(t *testing.T) cliTestEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	cfg := config.Default()
	cfg.Logging.Output = filepath.Join(dir, "docsim.log")
	cfg.History.Path = filepath.Join(dir, "history.db")
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	configPath := filepath.Join(dir, "docsim.toml")
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cliTestEnv{dir: dir, configPath: configPath}
}

func (e cliTestEnv) writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestCompareTable(t *testing.T) {
	env := setupCLITestEnv(t)
	a := env.writeFile(t, "a.txt", "Le chat dort sur le canapé du salon.")
	b := env.writeFile(t, "b.txt", "le chat dort sur le canapé du salon")

	out, _, err := runCLI(t, []string{"compare", a, b, "--passages", "3"}, env.configPath)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	requireContains(t, out, "LCS")
	requireContains(t, out, "Levenshtein")
	requireContains(t, out, "Cosine")
	requireContains(t, out, "High similarity")
	requireContains(t, out, "Shared passages")
	requireContains(t, out, "Recorded as")
}

func TestCompareJSONAndHistory(t *testing.T) {
	env := setupCLITestEnv(t)
	a := env.writeFile(t, "a.txt", "chat noir")
	b := env.writeFile(t, "b.txt", "chien blanc")

	out, _, err := runCLI(t, []string{"compare", "--json", "--parallel", a, b}, env.configPath)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	var report app.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report %q: %v", out, err)
	}
	if report.Average != 0 || report.Level != "low" {
		t.Fatalf("unexpected report: %+v", report)
	}

	out, _, err = runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, report.ID[:8])
	requireContains(t, out, "a.txt")
}

func TestCompareNoHistory(t *testing.T) {
	env := setupCLITestEnv(t)
	a := env.writeFile(t, "a.txt", "chat")

	out, _, err := runCLI(t, []string{"compare", "--no-history", a, a}, env.configPath)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if strings.Contains(out, "Recorded as") {
		t.Fatalf("comparison was recorded: %s", out)
	}

	out, _, err = runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No comparisons recorded yet")
}

func TestCompareErrors(t *testing.T) {
	env := setupCLITestEnv(t)
	good := env.writeFile(t, "a.txt", "chat")
	odt := env.writeFile(t, "b.odt", "chat")
	docx := env.writeFile(t, "c.docx", "not a zip")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "missing file", args: []string{"compare", good, filepath.Join(env.dir, "nope.txt")}, want: "nope.txt"},
		{name: "unsupported", args: []string{"compare", good, odt}, want: "unsupported"},
		{name: "corrupt docx", args: []string{"compare", good, docx}, want: "c.docx"},
		{name: "arity", args: []string{"compare", good}, want: "accepts 2 arg"},
		{name: "table budget", args: []string{"compare", "--max-cells", "2", good, good}, want: "cell budget"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args, env.configPath)
			if err == nil {
				t.Fatal("expected error")
			}
			requireContains(t, err.Error(), tt.want)
		})
	}
}

func TestConfigInitAndShow(t *testing.T) {
	env := setupCLITestEnv(t)

	target := filepath.Join(env.dir, "init", "config.toml")
	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected error when config exists")
	}

	out, _, err = runCLI(t, []string{"config", "show"}, target)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "max_table_cells")
	requireContains(t, out, target)
}
