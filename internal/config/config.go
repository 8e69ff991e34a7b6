package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/wlkit/internal/hotkeys"
	"github.com/1broseidon/wlkit/internal/output"
	"github.com/1broseidon/wlkit/internal/raster"
	"github.com/1broseidon/wlkit/internal/tiling"
	"github.com/1broseidon/wlkit/internal/toolkit"
)

// FillType names a raster fill in YAML.
type FillType string

const (
	FillSolid      FillType = "solid"
	FillHorizontal FillType = "horizontal"
	FillVertical   FillType = "vertical"
	FillDiagonal   FillType = "diagonal"
)

// Fill is a solid or gradient fill. To defaults to From.
type Fill struct {
	Type FillType `yaml:"type"`
	From Color    `yaml:"from"`
	To   *Color   `yaml:"to,omitempty"`
}

// Font selects the face used for decoration text.
type Font struct {
	Face string  `yaml:"face"`
	Bold bool    `yaml:"bold,omitempty"`
	Size float64 `yaml:"size"`
}

// Margin is the width and color of a border or margin.
type Margin struct {
	Width int   `yaml:"width"`
	Color Color `yaml:"color"`
}

type Titlebar struct {
	Height            int    `yaml:"height"`
	BezelWidth        int    `yaml:"bezel_width"`
	FocussedFill      Fill   `yaml:"focussed_fill"`
	BlurredFill       Fill   `yaml:"blurred_fill"`
	FocussedTextColor Color  `yaml:"focussed_text_color"`
	BlurredTextColor  Color  `yaml:"blurred_text_color"`
	Font              Font   `yaml:"font"`
	Margin            Margin `yaml:"margin"`
}

type Resizebar struct {
	Height      int    `yaml:"height"`
	BezelWidth  int    `yaml:"bezel_width"`
	CornerWidth int    `yaml:"corner_width"`
	Fill        Fill   `yaml:"fill"`
	Margin      Margin `yaml:"margin"`
}

// WindowStyle configures window decorations.
type WindowStyle struct {
	Titlebar  Titlebar  `yaml:"titlebar"`
	Resizebar Resizebar `yaml:"resizebar"`
	Border    Margin    `yaml:"border"`
	Margin    Margin    `yaml:"margin"`
}

type MenuItem struct {
	Width                int   `yaml:"width"`
	Height               int   `yaml:"height"`
	BezelWidth           int   `yaml:"bezel_width"`
	Padding              int   `yaml:"padding"`
	Fill                 Fill  `yaml:"fill"`
	HighlightedFill      Fill  `yaml:"highlighted_fill"`
	EnabledTextColor     Color `yaml:"enabled_text_color"`
	HighlightedTextColor Color `yaml:"highlighted_text_color"`
	DisabledTextColor    Color `yaml:"disabled_text_color"`
	Font                 Font  `yaml:"font"`
}

// MenuStyle configures menus.
type MenuStyle struct {
	Item   MenuItem `yaml:"item"`
	Border Margin   `yaml:"border"`
	Margin Margin   `yaml:"margin"`
}

type Style struct {
	Window WindowStyle `yaml:"window"`
	Menu   MenuStyle   `yaml:"menu"`
}

// Output is a statically configured output.
type Output struct {
	Name   string  `yaml:"name"`
	X      int     `yaml:"x"`
	Y      int     `yaml:"y"`
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Scale  float64 `yaml:"scale,omitempty"`
}

// OutputSource selects where serve takes the output layout from.
type OutputSource string

const (
	OutputSourceStatic OutputSource = "static"
	OutputSourceX11    OutputSource = "x11"
)

type Server struct {
	OutputSource OutputSource `yaml:"output_source"`
	// Display is the X display used by the x11 output source.
	Display    string   `yaml:"display,omitempty"`
	MCP        bool     `yaml:"mcp"`
	Workspaces []string `yaml:"workspaces"`
}

// Tiling configures the tile_windows arrangement.
type Tiling struct {
	Mode            tiling.Mode `yaml:"mode"`
	Gap             int         `yaml:"gap"`
	FlexibleLastRow bool        `yaml:"flexible_last_row"`
	MasterPercent   int         `yaml:"master_percent"`
	MaxStackRows    int         `yaml:"max_stack_rows"`
	MaxStackCols    int         `yaml:"max_stack_cols"`
}

// Config holds the application configuration.
type Config struct {
	Include  []string `yaml:"include,omitempty"`
	LogLevel string   `yaml:"log_level"`
	Style    Style    `yaml:"style"`
	Tiling   Tiling   `yaml:"tiling"`
	// Bindings map key sequences (X keybind syntax, e.g. "Mod4-t") to
	// actions. They are grabbed only with the x11 output source. An empty
	// action disables a default binding.
	Bindings map[string]hotkeys.Action `yaml:"bindings,omitempty"`
	Outputs  []Output                  `yaml:"outputs,omitempty"`
	Server   Server                    `yaml:"server"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Style: Style{
			Window: windowStyleFrom(toolkit.DefaultWindowStyle()),
			Menu:   menuStyleFrom(toolkit.DefaultMenuStyle()),
		},
		Tiling: Tiling{
			Mode:            tiling.ModeGrid,
			Gap:             8,
			FlexibleLastRow: true,
			MasterPercent:   60,
			MaxStackRows:    3,
			MaxStackCols:    2,
		},
		Bindings: map[string]hotkeys.Action{
			"Mod4-t":         hotkeys.ActionTile,
			"Mod4-Tab":       hotkeys.ActionActivateNext,
			"Mod4-Shift-Tab": hotkeys.ActionActivatePrevious,
			"Mod4-Right":     hotkeys.ActionNextWorkspace,
			"Mod4-Left":      hotkeys.ActionPreviousWorkspace,
			"Mod4-q":         hotkeys.ActionClose,
			"Mod4-Up":        hotkeys.ActionMaximize,
			"Mod4-Escape":    hotkeys.ActionLock,
		},
		Outputs: []Output{
			{Name: "WL-1", Width: 1280, Height: 800, Scale: 1},
		},
		Server: Server{
			OutputSource: OutputSourceStatic,
			Workspaces:   []string{"1", "2", "3", "4"},
		},
	}
}

// ValidationError reports an invalid value at a YAML path.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}

	w := c.Style.Window
	if w.Titlebar.Height < 1 {
		return &ValidationError{Path: "style.window.titlebar.height", Err: fmt.Errorf("height must be >= 1")}
	}
	if w.Resizebar.Height < 1 {
		return &ValidationError{Path: "style.window.resizebar.height", Err: fmt.Errorf("height must be >= 1")}
	}
	if w.Resizebar.CornerWidth < 0 {
		return &ValidationError{Path: "style.window.resizebar.corner_width", Err: fmt.Errorf("corner_width must be >= 0")}
	}
	checks := []struct {
		path string
		m    Margin
	}{
		{"style.window.titlebar.margin", w.Titlebar.Margin},
		{"style.window.resizebar.margin", w.Resizebar.Margin},
		{"style.window.border", w.Border},
		{"style.window.margin", w.Margin},
		{"style.menu.border", c.Style.Menu.Border},
		{"style.menu.margin", c.Style.Menu.Margin},
	}
	for _, chk := range checks {
		if chk.m.Width < 0 {
			return &ValidationError{Path: chk.path + ".width", Err: fmt.Errorf("width must be >= 0")}
		}
	}
	fills := []struct {
		path string
		f    Fill
	}{
		{"style.window.titlebar.focussed_fill", w.Titlebar.FocussedFill},
		{"style.window.titlebar.blurred_fill", w.Titlebar.BlurredFill},
		{"style.window.resizebar.fill", w.Resizebar.Fill},
		{"style.menu.item.fill", c.Style.Menu.Item.Fill},
		{"style.menu.item.highlighted_fill", c.Style.Menu.Item.HighlightedFill},
	}
	for _, chk := range fills {
		if _, err := chk.f.raster(); err != nil {
			return &ValidationError{Path: chk.path + ".type", Err: err}
		}
	}
	if err := validateFont("style.window.titlebar.font", w.Titlebar.Font); err != nil {
		return err
	}

	item := c.Style.Menu.Item
	if item.Width < 1 || item.Height < 1 {
		return &ValidationError{Path: "style.menu.item", Err: fmt.Errorf("width and height must be >= 1")}
	}
	if item.Padding < 0 {
		return &ValidationError{Path: "style.menu.item.padding", Err: fmt.Errorf("padding must be >= 0")}
	}
	if err := validateFont("style.menu.item.font", item.Font); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(c.Outputs))
	for i, o := range c.Outputs {
		path := fmt.Sprintf("outputs[%d]", i)
		if strings.TrimSpace(o.Name) == "" {
			return &ValidationError{Path: path + ".name", Err: fmt.Errorf("name is required")}
		}
		if _, dup := seen[o.Name]; dup {
			return &ValidationError{Path: path + ".name", Err: fmt.Errorf("duplicate output %q", o.Name)}
		}
		seen[o.Name] = struct{}{}
		if o.Width < 1 || o.Height < 1 {
			return &ValidationError{Path: path, Err: fmt.Errorf("width and height must be >= 1")}
		}
		if o.Scale < 0 {
			return &ValidationError{Path: path + ".scale", Err: fmt.Errorf("scale must be >= 0")}
		}
	}

	t := c.Tiling
	if !t.Mode.Valid() {
		return &ValidationError{Path: "tiling.mode", Err: fmt.Errorf("mode must be one of: grid, vertical, horizontal, master_stack")}
	}
	if t.Gap < 0 {
		return &ValidationError{Path: "tiling.gap", Err: fmt.Errorf("gap must be >= 0")}
	}
	if t.MasterPercent < 10 || t.MasterPercent > 90 {
		return &ValidationError{Path: "tiling.master_percent", Err: fmt.Errorf("master_percent must be between 10 and 90")}
	}
	if t.MaxStackRows < 1 || t.MaxStackCols < 1 {
		return &ValidationError{Path: "tiling", Err: fmt.Errorf("max_stack_rows and max_stack_cols must be >= 1")}
	}

	for seq, action := range c.Bindings {
		if strings.TrimSpace(seq) == "" {
			return &ValidationError{Path: "bindings", Err: fmt.Errorf("key sequence must not be empty")}
		}
		if action != "" && !action.Valid() {
			return &ValidationError{Path: "bindings." + seq, Err: fmt.Errorf("unknown action %q", action)}
		}
	}

	switch c.Server.OutputSource {
	case OutputSourceStatic:
		if len(c.Outputs) == 0 {
			return &ValidationError{Path: "outputs", Err: fmt.Errorf("the static output source needs at least one output")}
		}
	case OutputSourceX11:
	default:
		return &ValidationError{Path: "server.output_source", Err: fmt.Errorf("output_source must be one of: static, x11")}
	}
	if len(c.Server.Workspaces) == 0 {
		return &ValidationError{Path: "server.workspaces", Err: fmt.Errorf("workspaces must not be empty")}
	}
	names := make(map[string]struct{}, len(c.Server.Workspaces))
	for _, name := range c.Server.Workspaces {
		if strings.TrimSpace(name) == "" {
			return &ValidationError{Path: "server.workspaces", Err: fmt.Errorf("workspace names must not be empty")}
		}
		if _, dup := names[name]; dup {
			return &ValidationError{Path: "server.workspaces", Err: fmt.Errorf("duplicate workspace %q", name)}
		}
		names[name] = struct{}{}
	}
	return nil
}

func validateFont(path string, f Font) error {
	if f.Size <= 0 {
		return &ValidationError{Path: path + ".size", Err: fmt.Errorf("size must be > 0")}
	}
	return nil
}

// WindowStyle returns the toolkit decoration style.
func (c *Config) WindowStyle() toolkit.WindowStyle {
	w := c.Style.Window
	return toolkit.WindowStyle{
		Titlebar: toolkit.TitlebarStyle{
			FocussedFill:      w.Titlebar.FocussedFill.mustRaster(),
			BlurredFill:       w.Titlebar.BlurredFill.mustRaster(),
			FocussedTextColor: w.Titlebar.FocussedTextColor.ARGB(),
			BlurredTextColor:  w.Titlebar.BlurredTextColor.ARGB(),
			Height:            w.Titlebar.Height,
			BezelWidth:        w.Titlebar.BezelWidth,
			Font:              w.Titlebar.Font.raster(),
			Margin:            w.Titlebar.Margin.toolkit(),
		},
		Resizebar: toolkit.ResizebarStyle{
			Fill:        w.Resizebar.Fill.mustRaster(),
			Height:      w.Resizebar.Height,
			BezelWidth:  w.Resizebar.BezelWidth,
			CornerWidth: w.Resizebar.CornerWidth,
			Margin:      w.Resizebar.Margin.toolkit(),
		},
		Border: w.Border.toolkit(),
		Margin: w.Margin.toolkit(),
	}
}

// MenuStyle returns the toolkit menu style.
func (c *Config) MenuStyle() toolkit.MenuStyle {
	m := c.Style.Menu
	return toolkit.MenuStyle{
		Item: toolkit.MenuItemStyle{
			Fill:                 m.Item.Fill.mustRaster(),
			HighlightedFill:      m.Item.HighlightedFill.mustRaster(),
			EnabledTextColor:     m.Item.EnabledTextColor.ARGB(),
			HighlightedTextColor: m.Item.HighlightedTextColor.ARGB(),
			DisabledTextColor:    m.Item.DisabledTextColor.ARGB(),
			Font:                 m.Item.Font.raster(),
			Width:                m.Item.Width,
			Height:               m.Item.Height,
			BezelWidth:           m.Item.BezelWidth,
			Padding:              m.Item.Padding,
		},
		Margin: m.Margin.toolkit(),
		Border: m.Border.toolkit(),
	}
}

// StaticOutputs returns the configured outputs, keyed by name.
func (c *Config) StaticOutputs() []output.Output {
	outputs := make([]output.Output, 0, len(c.Outputs))
	for _, o := range c.Outputs {
		scale := o.Scale
		if scale == 0 {
			scale = 1
		}
		outputs = append(outputs, output.Output{
			ID:     output.ID(o.Name),
			Name:   o.Name,
			X:      o.X,
			Y:      o.Y,
			Width:  o.Width,
			Height: o.Height,
			Scale:  scale,
		})
	}
	return outputs
}

// TilingLayout returns the configured arrangement.
func (c *Config) TilingLayout() tiling.Layout {
	return tiling.Layout{
		Mode:            c.Tiling.Mode,
		Gap:             c.Tiling.Gap,
		FlexibleLastRow: c.Tiling.FlexibleLastRow,
		MasterPercent:   c.Tiling.MasterPercent,
		MaxStackRows:    c.Tiling.MaxStackRows,
		MaxStackCols:    c.Tiling.MaxStackCols,
	}
}

// Marshal encodes the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Save writes the config to path, creating the directory.
func (c *Config) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (f Fill) raster() (raster.Fill, error) {
	to := f.From
	if f.To != nil {
		to = *f.To
	}
	var t raster.FillType
	switch f.Type {
	case FillSolid, "":
		t = raster.FillSolid
	case FillHorizontal:
		t = raster.FillHorizontalGradient
	case FillVertical:
		t = raster.FillVerticalGradient
	case FillDiagonal:
		t = raster.FillDiagonalGradient
	default:
		return raster.Fill{}, fmt.Errorf("fill type must be one of: solid, horizontal, vertical, diagonal")
	}
	return raster.Fill{Type: t, From: f.From.ARGB(), To: to.ARGB()}, nil
}

// mustRaster is used on validated configs.
func (f Fill) mustRaster() raster.Fill {
	r, err := f.raster()
	if err != nil {
		panic(err)
	}
	return r
}

func fillFrom(f raster.Fill) Fill {
	out := Fill{Type: FillSolid, From: Color(f.From)}
	switch f.Type {
	case raster.FillHorizontalGradient:
		out.Type = FillHorizontal
	case raster.FillVerticalGradient:
		out.Type = FillVertical
	case raster.FillDiagonalGradient:
		out.Type = FillDiagonal
	}
	if f.To != f.From {
		to := Color(f.To)
		out.To = &to
	}
	return out
}

func (f Font) raster() raster.Font {
	weight := raster.WeightNormal
	if f.Bold {
		weight = raster.WeightBold
	}
	return raster.Font{Face: f.Face, Weight: weight, Size: f.Size}
}

func fontFrom(f raster.Font) Font {
	return Font{Face: f.Face, Bold: f.Weight == raster.WeightBold, Size: f.Size}
}

func (m Margin) toolkit() toolkit.MarginStyle {
	return toolkit.MarginStyle{Width: m.Width, Color: m.Color.ARGB()}
}

func marginFrom(m toolkit.MarginStyle) Margin {
	return Margin{Width: m.Width, Color: Color(m.Color)}
}

func windowStyleFrom(s toolkit.WindowStyle) WindowStyle {
	return WindowStyle{
		Titlebar: Titlebar{
			Height:            s.Titlebar.Height,
			BezelWidth:        s.Titlebar.BezelWidth,
			FocussedFill:      fillFrom(s.Titlebar.FocussedFill),
			BlurredFill:       fillFrom(s.Titlebar.BlurredFill),
			FocussedTextColor: Color(s.Titlebar.FocussedTextColor),
			BlurredTextColor:  Color(s.Titlebar.BlurredTextColor),
			Font:              fontFrom(s.Titlebar.Font),
			Margin:            marginFrom(s.Titlebar.Margin),
		},
		Resizebar: Resizebar{
			Height:      s.Resizebar.Height,
			BezelWidth:  s.Resizebar.BezelWidth,
			CornerWidth: s.Resizebar.CornerWidth,
			Fill:        fillFrom(s.Resizebar.Fill),
			Margin:      marginFrom(s.Resizebar.Margin),
		},
		Border: marginFrom(s.Border),
		Margin: marginFrom(s.Margin),
	}
}

func menuStyleFrom(s toolkit.MenuStyle) MenuStyle {
	return MenuStyle{
		Item: MenuItem{
			Width:                s.Item.Width,
			Height:               s.Item.Height,
			BezelWidth:           s.Item.BezelWidth,
			Padding:              s.Item.Padding,
			Fill:                 fillFrom(s.Item.Fill),
			HighlightedFill:      fillFrom(s.Item.HighlightedFill),
			EnabledTextColor:     Color(s.Item.EnabledTextColor),
			HighlightedTextColor: Color(s.Item.HighlightedTextColor),
			DisabledTextColor:    Color(s.Item.DisabledTextColor),
			Font:                 fontFrom(s.Item.Font),
		},
		Border: marginFrom(s.Border),
		Margin: marginFrom(s.Margin),
	}
}
