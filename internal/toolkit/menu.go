package toolkit

// Menu is a vertical list of menu items inside a border. Submenus of its
// items live in the menu's popup container.
type Menu struct {
	Pane

	style    MenuStyle
	bordered *Bordered
	box      *Box

	items       []*MenuItem
	mode        MenuMode
	highlighted *MenuItem
	parentItem  *MenuItem
	open        bool

	OpenChanged  Signal[bool]
	RequestClose Signal[*Menu]
	// ItemTriggered fires for items of this menu and of its submenus.
	ItemTriggered Signal[*MenuItem]
	Destroyed     Signal[*Menu]
}

// NewMenu creates an empty, closed menu.
func NewMenu(env *Env, style MenuStyle) *Menu {
	m := &Menu{style: style}
	m.box = NewBox(env, Vertical, style.Margin)
	m.box.SetVisible(true)
	m.bordered = NewBordered(env, m.box, style.Border)
	m.bordered.SetVisible(true)
	m.InitPane(m, env, m.bordered)
	return m
}

func (m *Menu) Style() MenuStyle { return m.style }

// Items returns the items in display order.
func (m *Menu) Items() []*MenuItem {
	out := make([]*MenuItem, len(m.items))
	copy(out, m.items)
	return out
}

// AddItem appends item. The item takes the menu's mode.
func (m *Menu) AddItem(item *MenuItem) {
	if item.menu != nil {
		panic("toolkit: menu item already belongs to a menu")
	}
	item.menu = m
	item.setMode(m.mode)
	m.items = append(m.items, item)
	item.SetVisible(true)
	m.box.AddElementBack(item)
	if item.submenu != nil {
		m.AddPopup(item.submenu)
	}
}

// RemoveItem removes item from the menu. Its submenu leaves the menu's
// popups and stays with the item.
func (m *Menu) RemoveItem(item *MenuItem) {
	if item.menu != m {
		panic("toolkit: removing a menu item of another menu")
	}
	if item.state == MenuItemHighlighted {
		item.setState(MenuItemEnabled)
	}
	if item.submenu != nil && item.submenu.ParentContainer() != nil {
		m.RemovePopup(item.submenu)
	}
	m.box.RemoveElement(item)
	for i, it := range m.items {
		if it == item {
			m.items = append(m.items[:i], m.items[i+1:]...)
			break
		}
	}
	item.menu = nil
}

func (m *Menu) Mode() MenuMode { return m.mode }

// SetMode sets the trigger mode of the menu, its items and submenus.
func (m *Menu) SetMode(mode MenuMode) {
	m.mode = mode
	for _, item := range m.items {
		item.setMode(mode)
	}
}

// Open reports whether the menu is open.
func (m *Menu) Open() bool { return m.open }

// SetOpen shows or hides the menu. Both clear the highlight.
func (m *Menu) SetOpen(open bool) {
	if h := m.highlighted; h != nil {
		h.setState(MenuItemEnabled)
	}
	m.SetVisible(open)
	if m.open == open {
		return
	}
	m.open = open
	m.OpenChanged.Emit(open)
}

// Highlighted returns the highlighted item, if any.
func (m *Menu) Highlighted() *MenuItem { return m.highlighted }

// ParentItem returns the item opening this menu as a submenu.
func (m *Menu) ParentItem() *MenuItem { return m.parentItem }

func (m *Menu) itemHighlighted(item *MenuItem) {
	if prev := m.highlighted; prev != nil && prev != item {
		m.highlighted = nil
		prev.setState(MenuItemEnabled)
	}
	m.highlighted = item
	if sub := item.submenu; sub != nil {
		x, y := m.itemPosition(item)
		sub.SetPosition(x+item.Dimensions().Width, y)
		sub.SetOpen(true)
	}
}

func (m *Menu) itemUnhighlighted(item *MenuItem) {
	if m.highlighted == item {
		m.highlighted = nil
	}
	if sub := item.submenu; sub != nil {
		sub.SetOpen(false)
	}
}

func (m *Menu) itemTriggered(item *MenuItem) {
	m.ItemTriggered.Emit(item)
	if p := m.parentItem; p != nil && p.menu != nil {
		p.menu.itemTriggered(item)
	}
}

// itemPosition returns the item's position in menu coordinates.
func (m *Menu) itemPosition(item *MenuItem) (int, int) {
	ix, iy := item.Position()
	bx, by := m.box.Position()
	ox, oy := m.bordered.Position()
	return ix + bx + ox, iy + by + oy
}

// PointerButton closes a right-click menu on a secondary press that no
// item took.
func (m *Menu) PointerButton(ev ButtonEvent) bool {
	rv := m.Pane.PointerButton(ev)
	if !rv && m.mode == MenuModeRightClick && ev.Button == ButtonRight && ev.Type == ButtonDown {
		m.RequestClose.Emit(m)
		return true
	}
	return rv
}

// KeyboardEvent navigates the menu, or its deepest open submenu holding a
// highlight. Releases are ignored.
func (m *Menu) KeyboardEvent(ev KeyEvent) bool {
	if !ev.Pressed {
		return false
	}
	return m.navigationTarget().navigate(ev.Keysym)
}

func (m *Menu) navigationTarget() *Menu {
	t := m
	for {
		h := t.highlighted
		if h == nil || h.submenu == nil || !h.submenu.open || h.submenu.highlighted == nil {
			return t
		}
		t = h.submenu
	}
}

func (m *Menu) navigate(keysym uint32) bool {
	h := m.highlighted
	switch keysym {
	case KeyDown:
		start := 0
		if h != nil {
			start = m.indexOf(h) + 1
		}
		m.highlightIndex(m.thisOrNext(start, 1))
	case KeyUp:
		start := len(m.items) - 1
		if h != nil {
			start = m.indexOf(h) - 1
		}
		m.highlightIndex(m.thisOrNext(start, -1))
	case KeyHome:
		m.highlightIndex(m.thisOrNext(0, 1))
	case KeyEnd:
		m.highlightIndex(m.thisOrNext(len(m.items)-1, -1))
	case KeyRight:
		if h != nil && h.submenu != nil && h.submenu.highlighted == nil {
			sub := h.submenu
			sub.highlightIndex(sub.thisOrNext(0, 1))
		}
	case KeyLeft:
		if m.parentItem != nil && h != nil {
			h.setState(MenuItemEnabled)
		}
	case KeyReturn, KeyKPEnter:
		if h != nil {
			h.Trigger()
		}
	case KeyEscape:
		if m.parentItem != nil {
			if h != nil {
				h.setState(MenuItemEnabled)
			}
		} else {
			m.RequestClose.Emit(m)
		}
	default:
		return false
	}
	return true
}

func (m *Menu) indexOf(item *MenuItem) int {
	for i, it := range m.items {
		if it == item {
			return i
		}
	}
	return -1
}

// thisOrNext returns the index of the first non-disabled item at or after
// start, stepping by dir and wrapping around. It returns -1 when all
// items are disabled.
func (m *Menu) thisOrNext(start, dir int) int {
	n := len(m.items)
	if n == 0 {
		return -1
	}
	i := ((start % n) + n) % n
	for range n {
		if m.items[i].state != MenuItemDisabled {
			return i
		}
		i = ((i+dir)%n + n) % n
	}
	return -1
}

func (m *Menu) highlightIndex(i int) {
	if i < 0 {
		return
	}
	m.items[i].setState(MenuItemHighlighted)
}

func (m *Menu) Destroy() {
	m.Destroyed.Emit(m)
	if p := m.parentItem; p != nil && p.submenu == m {
		p.submenu = nil
	}
	m.parentItem = nil
	m.items = nil
	m.highlighted = nil
	m.Pane.Destroy()
}
