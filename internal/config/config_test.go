package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/wlkit/internal/raster"
	"github.com/1broseidon/wlkit/internal/toolkit"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestDefaultConfig_ValidAndMatchesToolkitStyle(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if got, want := cfg.WindowStyle(), toolkit.DefaultWindowStyle(); got != want {
		t.Fatalf("window style round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
	if got, want := cfg.MenuStyle(), toolkit.DefaultMenuStyle(); got != want {
		t.Fatalf("menu style round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestLoadFromPath_MissingAndEmptyFileUseDefaults(t *testing.T) {
	dir := t.TempDir()

	res, err := LoadFromPath(filepath.Join(dir, "missing.yaml"))
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no files, got %v", res.Files)
	}

	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "# empty\n")
	res, err = LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Style.Window.Titlebar.Height != 22 {
		t.Fatalf("expected default titlebar height 22, got %d", res.Config.Style.Window.Titlebar.Height)
	}
	if len(res.Config.Server.Workspaces) != 4 {
		t.Fatalf("expected 4 default workspaces, got %v", res.Config.Server.Workspaces)
	}
}

func TestLoadFromPath_OverridesStyleAndOutputs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, strings.Join([]string{
		"style:",
		"  window:",
		"    titlebar:",
		"      height: 30",
		"      focussed_fill:",
		"        type: vertical",
		"        from: \"#102030\"",
		"        to: navy",
		"    border:",
		"      width: 3",
		"      color: \"#80ff0000\"",
		"outputs:",
		"  - name: DP-1",
		"    width: 2560",
		"    height: 1440",
		"    scale: 2",
		"  - name: DP-2",
		"    x: 1280",
		"    width: 1920",
		"    height: 1080",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	style := res.Config.WindowStyle()
	if style.Titlebar.Height != 30 {
		t.Fatalf("expected titlebar height 30, got %d", style.Titlebar.Height)
	}
	want := raster.Fill{Type: raster.FillVerticalGradient, From: 0xff102030, To: 0xff000080}
	if style.Titlebar.FocussedFill != want {
		t.Fatalf("expected fill %+v, got %+v", want, style.Titlebar.FocussedFill)
	}
	if style.Border != (toolkit.MarginStyle{Width: 3, Color: 0x80ff0000}) {
		t.Fatalf("unexpected border %+v", style.Border)
	}
	if style.Resizebar.Height != 7 {
		t.Fatalf("expected untouched resizebar height 7, got %d", style.Resizebar.Height)
	}

	outputs := res.Config.StaticOutputs()
	if len(outputs) != 2 {
		t.Fatalf("expected 2 outputs, got %d", len(outputs))
	}
	if outputs[0].ID != "DP-1" || outputs[0].Box().Width != 1280 {
		t.Fatalf("unexpected first output %+v", outputs[0])
	}
	if outputs[1].Scale != 1 {
		t.Fatalf("expected missing scale to mean 1, got %v", outputs[1].Scale)
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "unknown_key: 1\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown_key") && !strings.Contains(err.Error(), "field") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if !strings.Contains(err.Error(), "config.yaml") {
		t.Fatalf("expected error to include file path, got %v", err)
	}
}

func TestLoadFromPath_InvalidColor(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "style:\n  window:\n    border:\n      color: notacolor\n")

	_, err := LoadFromPath(path)
	if !errors.Is(err, ErrInvalidColor) {
		t.Fatalf("expected ErrInvalidColor, got %v", err)
	}
}

func TestLoadFromPath_IncludeOrderAndMainOverrides(t *testing.T) {
	dir := t.TempDir()
	incDir := filepath.Join(dir, "conf.d")
	if err := os.Mkdir(incDir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(incDir, "10-a.yaml"), "log_level: debug\nserver:\n  mcp: true\n")
	writeFile(t, filepath.Join(incDir, "20-b.yaml"), "log_level: error\n")
	writeFile(t, filepath.Join(incDir, "notes.txt"), "ignored")

	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "include:\n  - conf.d\nserver:\n  workspaces: [main]\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.LogLevel != "error" {
		t.Fatalf("expected later include to win, got %q", res.Config.LogLevel)
	}
	if !res.Config.Server.MCP {
		t.Fatalf("expected mcp from include to survive the main file")
	}
	if len(res.Config.Server.Workspaces) != 1 || res.Config.Server.Workspaces[0] != "main" {
		t.Fatalf("expected main file workspaces, got %v", res.Config.Server.Workspaces)
	}
	if len(res.Files) != 3 {
		t.Fatalf("expected 3 files, got %v", res.Files)
	}
	if res.Config.Include != nil {
		t.Fatalf("expected include to be cleared, got %v", res.Config.Include)
	}
}

func TestLoadFromPath_IncludeCycleDetection(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.yaml")
	writeFile(t, a, "include: [b.yaml]\n")
	writeFile(t, b, "include: [a.yaml]\n")

	_, err := LoadFromPath(a)
	if err == nil || !strings.Contains(err.Error(), "include cycle") {
		t.Fatalf("expected include cycle error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"titlebar height", func(c *Config) { c.Style.Window.Titlebar.Height = 0 }, "style.window.titlebar.height"},
		{"negative border", func(c *Config) { c.Style.Window.Border.Width = -1 }, "style.window.border.width"},
		{"fill type", func(c *Config) { c.Style.Menu.Item.Fill.Type = "radial" }, "style.menu.item.fill.type"},
		{"font size", func(c *Config) { c.Style.Menu.Item.Font.Size = 0 }, "style.menu.item.font.size"},
		{"unnamed output", func(c *Config) { c.Outputs[0].Name = "" }, "outputs[0].name"},
		{"duplicate output", func(c *Config) { c.Outputs = append(c.Outputs, c.Outputs[0]) }, "outputs[1].name"},
		{"empty output", func(c *Config) { c.Outputs[0].Width = 0 }, "outputs[0]"},
		{"static without outputs", func(c *Config) { c.Outputs = nil }, "outputs"},
		{"tiling mode", func(c *Config) { c.Tiling.Mode = "spiral" }, "tiling.mode"},
		{"tiling gap", func(c *Config) { c.Tiling.Gap = -2 }, "tiling.gap"},
		{"master percent", func(c *Config) { c.Tiling.MasterPercent = 95 }, "tiling.master_percent"},
		{"stack rows", func(c *Config) { c.Tiling.MaxStackRows = 0 }, "tiling"},
		{"binding action", func(c *Config) { c.Bindings["Mod4-x"] = "dance" }, "bindings.Mod4-x"},
		{"output source", func(c *Config) { c.Server.OutputSource = "drm" }, "server.output_source"},
		{"no workspaces", func(c *Config) { c.Server.Workspaces = nil }, "server.workspaces"},
		{"duplicate workspace", func(c *Config) { c.Server.Workspaces = []string{"a", "a"} }, "server.workspaces"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("expected path %q, got %q (%v)", tt.path, verr.Path, err)
			}
		})
	}

	cfg := DefaultConfig()
	cfg.Server.OutputSource = OutputSourceX11
	cfg.Outputs = nil
	if err := cfg.Validate(); err != nil {
		t.Fatalf("x11 source should not need static outputs: %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Server.MCP = true
	cfg.Style.Menu.Item.Width = 250
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !res.Config.Server.MCP || res.Config.Style.Menu.Item.Width != 250 {
		t.Fatalf("saved values not loaded back: %+v", res.Config.Server)
	}
	if res.Config.MenuStyle() != cfg.MenuStyle() {
		t.Fatalf("menu style changed across save")
	}
}
