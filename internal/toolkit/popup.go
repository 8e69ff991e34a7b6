package toolkit

// Popup is a pane shown on top of another pane, such as a window menu or
// a client popup surface.
type Popup struct {
	Pane
}

// NewPopup creates an invisible popup around element.
func NewPopup(env *Env, element Element) *Popup {
	p := &Popup{}
	p.InitPane(p, env, element)
	return p
}

// PopupMenu is a popup holding a menu. It hides itself when the menu asks
// to close.
type PopupMenu struct {
	Popup

	menu       *Menu
	disconnect func()
}

// NewPopupMenu creates an invisible popup with an empty menu.
func NewPopupMenu(env *Env, style MenuStyle) *PopupMenu {
	pm := &PopupMenu{}
	pm.menu = NewMenu(env, style)
	pm.InitPane(pm, env, pm.menu)
	pm.disconnect = pm.menu.RequestClose.Connect(func(*Menu) {
		pm.SetOpen(false)
	})
	return pm
}

// Menu returns the popup's menu.
func (pm *PopupMenu) Menu() *Menu { return pm.menu }

// SetOpen shows or hides the popup and opens or closes its menu.
func (pm *PopupMenu) SetOpen(open bool) {
	pm.menu.SetOpen(open)
	pm.SetVisible(open)
}

// Open reports whether the popup is shown.
func (pm *PopupMenu) Open() bool { return pm.Visible() }

func (pm *PopupMenu) Destroy() {
	if pm.disconnect != nil {
		pm.disconnect()
		pm.disconnect = nil
	}
	pm.Popup.Destroy()
}
