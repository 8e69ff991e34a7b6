package toolkit

import (
	"image"
	"log"

	"github.com/1broseidon/wlkit/internal/raster"
)

// MenuItemState is the interaction state of a menu item.
type MenuItemState int

const (
	MenuItemEnabled MenuItemState = iota
	MenuItemHighlighted
	MenuItemDisabled
)

func (s MenuItemState) String() string {
	switch s {
	case MenuItemEnabled:
		return "enabled"
	case MenuItemHighlighted:
		return "highlighted"
	case MenuItemDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// MenuMode selects how menu items are triggered.
type MenuMode int

const (
	// MenuModeNormal triggers on a primary-button click.
	MenuModeNormal MenuMode = iota
	// MenuModeRightClick triggers on a secondary-button release, for
	// menus opened by pressing the secondary button.
	MenuModeRightClick
)

// MenuItem is a labelled entry of a Menu, optionally opening a submenu.
type MenuItem struct {
	Buffer

	menu    *Menu
	style   MenuItemStyle
	text    string
	state   MenuItemState
	mode    MenuMode
	submenu *Menu

	textures          [3]*raster.Buffer
	disconnectSubmenu func()

	Triggered Signal[*MenuItem]
}

// NewMenuItem creates an enabled item with the given label.
func NewMenuItem(env *Env, style MenuItemStyle, text string) *MenuItem {
	mi := &MenuItem{style: style, text: text}
	mi.InitBuffer(mi, env)
	mi.redraw()
	return mi
}

func (mi *MenuItem) Text() string { return mi.text }

// SetText changes the label.
func (mi *MenuItem) SetText(text string) {
	if mi.text == text {
		return
	}
	mi.text = text
	mi.redraw()
}

func (mi *MenuItem) State() MenuItemState { return mi.state }

func (mi *MenuItem) Mode() MenuMode { return mi.mode }

// Menu returns the menu holding the item.
func (mi *MenuItem) Menu() *Menu { return mi.menu }

// SetEnabled enables or disables the item. Disabling a highlighted item
// clears the menu's highlight.
func (mi *MenuItem) SetEnabled(enabled bool) {
	switch {
	case enabled && mi.state == MenuItemDisabled:
		mi.setState(MenuItemEnabled)
	case !enabled && mi.state != MenuItemDisabled:
		mi.setState(MenuItemDisabled)
	}
}

// Submenu returns the submenu opened by the item, if any.
func (mi *MenuItem) Submenu() *Menu { return mi.submenu }

// SetSubmenu attaches a submenu that opens while the item is highlighted.
// The submenu is owned by the item's menu once both are connected.
func (mi *MenuItem) SetSubmenu(sub *Menu) {
	if mi.submenu == sub {
		return
	}
	if old := mi.submenu; old != nil {
		mi.disconnectSubmenu()
		old.parentItem = nil
		if mi.menu != nil && old.ParentContainer() != nil {
			mi.menu.RemovePopup(old)
		}
	}
	mi.submenu = sub
	mi.disconnectSubmenu = nil
	if sub != nil {
		sub.parentItem = mi
		sub.SetMode(mi.mode)
		mi.disconnectSubmenu = sub.Destroyed.Connect(func(*Menu) {
			if mi.submenu == sub {
				mi.submenu = nil
			}
		})
		if mi.menu != nil {
			mi.menu.AddPopup(sub)
		}
	}
	mi.redraw()
}

func (mi *MenuItem) setMode(mode MenuMode) {
	mi.mode = mode
	if mi.submenu != nil {
		mi.submenu.SetMode(mode)
	}
}

func (mi *MenuItem) setState(state MenuItemState) {
	if mi.state == state {
		return
	}
	old := mi.state
	mi.state = state
	mi.SetBuffer(mi.textures[state])
	if old == MenuItemHighlighted && mi.menu != nil {
		mi.menu.itemUnhighlighted(mi)
	}
	if state == MenuItemHighlighted && mi.menu != nil {
		mi.menu.itemHighlighted(mi)
	}
}

// Trigger emits Triggered unless the item is disabled.
func (mi *MenuItem) Trigger() {
	if mi.state == MenuItemDisabled {
		return
	}
	mi.Triggered.Emit(mi)
	if mi.menu != nil {
		mi.menu.itemTriggered(mi)
	}
}

func (mi *MenuItem) PointerEnter() {
	mi.Buffer.PointerEnter()
	if mi.state == MenuItemEnabled {
		mi.setState(MenuItemHighlighted)
	}
}

// PointerLeave drops the highlight. An item with a submenu stays
// highlighted so the pointer can travel into the submenu; the next
// highlighted sibling clears it.
func (mi *MenuItem) PointerLeave() {
	if mi.state == MenuItemHighlighted && mi.submenu == nil {
		mi.setState(MenuItemEnabled)
	}
}

func (mi *MenuItem) PointerButton(ev ButtonEvent) bool {
	if mi.state != MenuItemHighlighted {
		return mi.state == MenuItemDisabled
	}
	switch mi.mode {
	case MenuModeNormal:
		if ev.Button == ButtonLeft && ev.Type == ButtonClick {
			mi.Trigger()
		}
	case MenuModeRightClick:
		if ev.Button == ButtonRight && ev.Type == ButtonUp {
			mi.Trigger()
		}
	}
	return true
}

// redraw renders one texture per state.
func (mi *MenuItem) redraw() {
	s := mi.style
	if s.Width <= 0 || s.Height <= 0 {
		return
	}
	bounds := image.Rect(0, 0, s.Width, s.Height)
	var textures [3]*raster.Buffer
	for state := MenuItemEnabled; state <= MenuItemDisabled; state++ {
		buf, err := raster.New(s.Width, s.Height)
		if err != nil {
			log.Printf("Warning: menu item %q: %v", mi.text, err)
			for _, t := range textures {
				if t != nil {
					t.Unlock()
				}
			}
			return
		}
		fill, color := s.Fill, s.EnabledTextColor
		switch state {
		case MenuItemHighlighted:
			fill, color = s.HighlightedFill, s.HighlightedTextColor
		case MenuItemDisabled:
			color = s.DisabledTextColor
		}
		raster.FillRect(buf, bounds, fill)
		raster.DrawTextLeft(buf, bounds, s.Padding, mi.text, s.Font, color)
		if mi.submenu != nil {
			drawSubmenuArrow(buf, bounds, s.Padding, color)
		}
		raster.Bezel(buf, bounds, s.BezelWidth, true)
		textures[state] = buf
	}
	mi.releaseTextures()
	mi.textures = textures
	mi.SetBuffer(mi.textures[mi.state])
}

func drawSubmenuArrow(buf *raster.Buffer, r image.Rectangle, padding int, argb uint32) {
	h := r.Dy() / 3
	x0 := r.Max.X - padding - h/2
	y0 := r.Min.Y + (r.Dy()-h)/2
	for i := 0; i < h; i++ {
		w := min(i, h-1-i)
		raster.FillRect(buf, image.Rect(x0, y0+i, x0+w+1, y0+i+1), raster.Solid(argb))
	}
}

func (mi *MenuItem) releaseTextures() {
	for i, t := range mi.textures {
		if t != nil {
			t.Unlock()
			mi.textures[i] = nil
		}
	}
}

func (mi *MenuItem) Destroy() {
	if mi.disconnectSubmenu != nil {
		mi.disconnectSubmenu()
		mi.disconnectSubmenu = nil
	}
	mi.releaseTextures()
	mi.Buffer.Destroy()
}
