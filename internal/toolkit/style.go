package toolkit

import "github.com/1broseidon/wlkit/internal/raster"

// MarginStyle is the width and color of a margin or border.
type MarginStyle struct {
	Width int
	Color uint32
}

// TitlebarStyle describes the titlebar decoration.
type TitlebarStyle struct {
	FocussedFill      raster.Fill
	BlurredFill       raster.Fill
	FocussedTextColor uint32
	BlurredTextColor  uint32
	Height            int
	BezelWidth        int
	Font              raster.Font
	// Margin separates the title from the buttons.
	Margin MarginStyle
}

// ResizebarStyle describes the resize bar decoration.
type ResizebarStyle struct {
	Fill        raster.Fill
	Height      int
	BezelWidth  int
	CornerWidth int
	Margin      MarginStyle
}

// WindowStyle combines the decoration styles of a window.
type WindowStyle struct {
	Titlebar  TitlebarStyle
	Resizebar ResizebarStyle
	Border    MarginStyle
	// Margin separates titlebar, content and resize bar.
	Margin MarginStyle
}

// MenuItemStyle describes the look of menu items.
type MenuItemStyle struct {
	Fill                 raster.Fill
	HighlightedFill      raster.Fill
	EnabledTextColor     uint32
	HighlightedTextColor uint32
	DisabledTextColor    uint32
	Font                 raster.Font
	Width                int
	Height               int
	BezelWidth           int
	Padding              int
}

// MenuStyle describes a menu.
type MenuStyle struct {
	Item   MenuItemStyle
	Margin MarginStyle
	Border MarginStyle
}

// DefaultWindowStyle returns the built-in window style.
func DefaultWindowStyle() WindowStyle {
	return WindowStyle{
		Titlebar: TitlebarStyle{
			FocussedFill:      raster.Fill{Type: raster.FillHorizontalGradient, From: 0xff505a5e, To: 0xff202a2e},
			BlurredFill:       raster.Solid(0xffc2c0c5),
			FocussedTextColor: 0xffffffff,
			BlurredTextColor:  0xff000000,
			Height:            22,
			BezelWidth:        1,
			Font:              raster.Font{Face: "Go", Weight: raster.WeightBold, Size: 15},
			Margin:            MarginStyle{Width: 1, Color: 0xff000000},
		},
		Resizebar: ResizebarStyle{
			Fill:        raster.Solid(0xffc2c0c5),
			Height:      7,
			BezelWidth:  1,
			CornerWidth: 29,
			Margin:      MarginStyle{Width: 1, Color: 0xff000000},
		},
		Border: MarginStyle{Width: 1, Color: 0xff000000},
		Margin: MarginStyle{Width: 1, Color: 0xff000000},
	}
}

// DefaultMenuStyle returns the built-in menu style.
func DefaultMenuStyle() MenuStyle {
	return MenuStyle{
		Item: MenuItemStyle{
			Fill:                 raster.Fill{Type: raster.FillHorizontalGradient, From: 0xffc2c0c5, To: 0xff828085},
			HighlightedFill:      raster.Solid(0xffffffff),
			EnabledTextColor:     0xff000000,
			HighlightedTextColor: 0xff000000,
			DisabledTextColor:    0xff808080,
			Font:                 raster.Font{Face: "Go", Weight: raster.WeightNormal, Size: 14},
			Width:                196,
			Height:               22,
			BezelWidth:           1,
			Padding:              6,
		},
		Margin: MarginStyle{Width: 1, Color: 0xff000000},
		Border: MarginStyle{Width: 1, Color: 0xff000000},
	}
}
