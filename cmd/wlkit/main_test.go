package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestRunUnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"bogus"}, &stdout, &stderr); code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if !strings.Contains(stderr.String(), "Unknown command: bogus") {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
}

func TestConfigValidate(t *testing.T) {
	good := writeConfig(t, "log_level: debug\n")
	var stdout, stderr bytes.Buffer
	if code := run([]string{"config", "validate", "--path", good}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "config: ok") {
		t.Fatalf("unexpected stdout %q", stdout.String())
	}

	bad := writeConfig(t, "log_level: loud\n")
	stdout.Reset()
	stderr.Reset()
	if code := run([]string{"config", "validate", "--path", bad}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "log_level") {
		t.Fatalf("expected the failing key in %q", stderr.String())
	}
}

func TestConfigPrint(t *testing.T) {
	path := writeConfig(t, "server:\n  workspaces: [code, mail]\n")
	var stdout, stderr bytes.Buffer
	if code := run([]string{"config", "print", "--path", path}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "- code") {
		t.Fatalf("expected overridden workspaces in %q", stdout.String())
	}

	stdout.Reset()
	if code := run([]string{"config", "print", "--defaults"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(stdout.String(), "WL-1") {
		t.Fatalf("expected the default output in %q", stdout.String())
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wlkit", "config.yaml")
	var stdout, stderr bytes.Buffer
	if code := run([]string{"config", "init", "--path", path}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr.String())
	}
	if code := run([]string{"config", "validate", "--path", path}, &stdout, &stderr); code != 0 {
		t.Fatalf("written config does not validate: %s", stderr.String())
	}
	if code := run([]string{"config", "init", "--path", path}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected refusal to overwrite, got %d", code)
	}
	if code := run([]string{"config", "init", "--path", path, "--force"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected --force to overwrite, got %d", code)
	}
}

func TestOutputsStatic(t *testing.T) {
	path := writeConfig(t, `outputs:
  - name: left
    width: 1920
    height: 1080
  - name: right
    x: 1920
    width: 2560
    height: 1440
    scale: 2
`)
	var stdout, stderr bytes.Buffer
	if code := run([]string{"outputs", "--path", path, "--json"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr.String())
	}
	var rows []outputRow
	if err := json.Unmarshal(stdout.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 2 || rows[0].ID != "left" || rows[0].Scale != 1 || rows[1].Scale != 2 {
		t.Fatalf("unexpected rows %+v", rows)
	}

	stdout.Reset()
	if code := run([]string{"outputs", "--path", path}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if strings.Contains(stdout.String(), "NAME") {
		t.Fatalf("expected no header when not writing to a terminal")
	}
	if !strings.Contains(stdout.String(), "2560x1440") {
		t.Fatalf("unexpected table %q", stdout.String())
	}
}

func TestLogLevel(t *testing.T) {
	for in, want := range map[string]string{"debug": "DEBUG", "info": "INFO", "warning": "WARN", "error": "ERROR", "": "INFO"} {
		if got := logLevel(in).String(); got != want {
			t.Fatalf("logLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
