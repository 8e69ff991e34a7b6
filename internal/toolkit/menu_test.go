package toolkit

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMenu(t *testing.T, disabled ...bool) *Menu {
	t.Helper()
	m := NewMenu(nil, DefaultMenuStyle())
	for i, d := range disabled {
		item := NewMenuItem(nil, m.Style().Item, fmt.Sprintf("I%d", i))
		m.AddItem(item)
		if d {
			item.SetEnabled(false)
		}
	}
	m.SetOpen(true)
	return m
}

func press(keysym uint32) KeyEvent   { return KeyEvent{Keysym: keysym, Pressed: true} }
func release(keysym uint32) KeyEvent { return KeyEvent{Keysym: keysym, Pressed: false} }

// hoverItem moves the pointer into item through the menu's dispatch.
func hoverItem(m *Menu, item *MenuItem) {
	x, y := m.itemPosition(item)
	m.PointerMotion(MotionEvent{X: float64(x) + 2, Y: float64(y) + 2})
}

func highlightedCount(m *Menu) int {
	n := 0
	for _, it := range m.Items() {
		if it.State() == MenuItemHighlighted {
			n++
		}
	}
	return n
}

func TestMenuKeyboardNavigation(t *testing.T) {
	m := newTestMenu(t, true, false, false, true, false)
	items := m.Items()

	var triggered []*MenuItem
	m.ItemTriggered.Connect(func(it *MenuItem) { triggered = append(triggered, it) })
	closes := 0
	m.RequestClose.Connect(func(*Menu) { closes++ })

	hoverItem(m, items[2])
	require.Equal(t, items[2], m.Highlighted())

	steps := []struct {
		key  uint32
		want int
	}{
		{KeyDown, 4},
		{KeyDown, 1},
		{KeyUp, 4},
		{KeyUp, 2},
		{KeyEnd, 4},
		{KeyHome, 1},
	}
	for _, s := range steps {
		m.KeyboardEvent(press(s.key))
		assert.Equal(t, items[s.want], m.Highlighted(), "after key %#x", s.key)
		assert.Equal(t, 1, highlightedCount(m))
	}

	m.KeyboardEvent(press(KeyReturn))
	assert.Equal(t, []*MenuItem{items[1]}, triggered)

	m.KeyboardEvent(press(KeyEscape))
	assert.Equal(t, 1, closes)

	m.KeyboardEvent(release(KeyReturn))
	m.KeyboardEvent(release(KeyEscape))
	assert.Len(t, triggered, 1)
	assert.Equal(t, 1, closes)
}

func TestMenuHighlightUniqueUnderPointerAndKeys(t *testing.T) {
	m := newTestMenu(t, false, false, true, false)
	items := m.Items()

	actions := []func(){
		func() { hoverItem(m, items[0]) },
		func() { m.KeyboardEvent(press(KeyDown)) },
		func() { hoverItem(m, items[3]) },
		func() { m.KeyboardEvent(press(KeyUp)) },
		func() { hoverItem(m, items[2]) },
		func() { m.KeyboardEvent(press(KeyHome)) },
		func() { items[0].SetEnabled(false) },
		func() { m.KeyboardEvent(press(KeyEnd)) },
	}
	for i, act := range actions {
		act()
		assert.LessOrEqual(t, highlightedCount(m), 1, "after action %d", i)
		if h := m.Highlighted(); h != nil {
			assert.Equal(t, MenuItemHighlighted, h.State())
		}
	}
}

func TestMenuDownVisitsEveryEnabledItemOnce(t *testing.T) {
	patterns := [][]bool{
		{false},
		{false, false, false},
		{true, false, true, false, false},
		{false, true, true, true, false},
		{true, true, false},
	}
	for _, disabled := range patterns {
		t.Run(fmt.Sprint(disabled), func(t *testing.T) {
			m := newTestMenu(t, disabled...)
			enabled := 0
			for _, d := range disabled {
				if !d {
					enabled++
				}
			}

			m.KeyboardEvent(press(KeyHome))
			start := m.Highlighted()
			require.NotNil(t, start)

			seen := map[*MenuItem]int{start: 1}
			for range enabled - 1 {
				m.KeyboardEvent(press(KeyDown))
				h := m.Highlighted()
				require.NotEqual(t, MenuItemDisabled, h.State())
				seen[h]++
			}
			assert.Len(t, seen, enabled)
			for it, n := range seen {
				assert.Equal(t, 1, n, "item %s", it.Text())
			}

			m.KeyboardEvent(press(KeyDown))
			assert.Equal(t, start, m.Highlighted(), "Down wraps to the first enabled item")

			m.KeyboardEvent(press(KeyEnd))
			last := m.Highlighted()
			m.KeyboardEvent(press(KeyHome))
			for range enabled - 1 {
				m.KeyboardEvent(press(KeyDown))
			}
			assert.Equal(t, last, m.Highlighted())
		})
	}
}

func TestMenuAllDisabledHighlightsNothing(t *testing.T) {
	m := newTestMenu(t, true, true)
	m.KeyboardEvent(press(KeyDown))
	m.KeyboardEvent(press(KeyHome))
	assert.Nil(t, m.Highlighted())
}

func TestMenuPointerClickTriggers(t *testing.T) {
	m := newTestMenu(t, false, true)
	items := m.Items()
	var triggered []*MenuItem
	m.ItemTriggered.Connect(func(it *MenuItem) { triggered = append(triggered, it) })

	hoverItem(m, items[0])
	m.PointerButton(ButtonEvent{Button: ButtonLeft, Type: ButtonDown})
	m.PointerButton(ButtonEvent{Button: ButtonLeft, Type: ButtonUp})
	assert.Equal(t, []*MenuItem{items[0]}, triggered)

	hoverItem(m, items[1])
	assert.Nil(t, m.Highlighted(), "disabled items do not highlight")
	m.PointerButton(ButtonEvent{Button: ButtonLeft, Type: ButtonDown})
	m.PointerButton(ButtonEvent{Button: ButtonLeft, Type: ButtonUp})
	assert.Len(t, triggered, 1)

	m.PointerMotion(Outside(0))
	assert.Equal(t, MenuItemEnabled, items[0].State(), "leaving drops the highlight")
}

func TestMenuRightClickMode(t *testing.T) {
	m := newTestMenu(t, false, false)
	m.SetMode(MenuModeRightClick)
	items := m.Items()
	for _, it := range items {
		assert.Equal(t, MenuModeRightClick, it.Mode())
	}
	var triggered []*MenuItem
	m.ItemTriggered.Connect(func(it *MenuItem) { triggered = append(triggered, it) })
	closes := 0
	m.RequestClose.Connect(func(*Menu) { closes++ })

	hoverItem(m, items[1])
	m.PointerButton(ButtonEvent{Button: ButtonLeft, Type: ButtonDown})
	m.PointerButton(ButtonEvent{Button: ButtonLeft, Type: ButtonUp})
	assert.Empty(t, triggered, "primary click does not trigger in right-click mode")

	m.PointerButton(ButtonEvent{Button: ButtonRight, Type: ButtonUp})
	assert.Equal(t, []*MenuItem{items[1]}, triggered)

	m.PointerMotion(Outside(0))
	m.PointerButton(ButtonEvent{Button: ButtonRight, Type: ButtonDown})
	assert.Equal(t, 1, closes, "secondary press outside the items closes the menu")
}

func TestSubmenuNavigation(t *testing.T) {
	m := newTestMenu(t, false, false)
	items := m.Items()
	sub := NewMenu(nil, m.Style())
	subItems := []*MenuItem{
		NewMenuItem(nil, m.Style().Item, "S0"),
		NewMenuItem(nil, m.Style().Item, "S1"),
	}
	for _, it := range subItems {
		sub.AddItem(it)
	}
	items[1].SetSubmenu(sub)
	assert.Equal(t, items[1], sub.ParentItem())
	assert.Contains(t, m.Popups(), Element(sub))

	var triggered []*MenuItem
	m.ItemTriggered.Connect(func(it *MenuItem) { triggered = append(triggered, it) })

	m.KeyboardEvent(press(KeyEnd))
	require.Equal(t, items[1], m.Highlighted())
	assert.True(t, sub.Open())
	assert.True(t, sub.Visible())
	ix, iy := m.itemPosition(items[1])
	sx, sy := sub.Position()
	assert.Equal(t, [2]int{ix + items[1].Dimensions().Width, iy}, [2]int{sx, sy})

	m.KeyboardEvent(press(KeyRight))
	assert.Equal(t, subItems[0], sub.Highlighted())
	assert.Equal(t, items[1], m.Highlighted(), "parent item stays highlighted")

	m.KeyboardEvent(press(KeyDown))
	assert.Equal(t, subItems[1], sub.Highlighted())
	assert.Equal(t, items[1], m.Highlighted())

	m.KeyboardEvent(press(KeyLeft))
	assert.Nil(t, sub.Highlighted())
	assert.True(t, sub.Open())

	m.KeyboardEvent(press(KeyRight))
	m.KeyboardEvent(press(KeyReturn))
	assert.Equal(t, []*MenuItem{subItems[0]}, triggered, "submenu triggers bubble up")

	m.KeyboardEvent(press(KeyEscape))
	assert.Nil(t, sub.Highlighted(), "escape in a submenu only leaves it")
	assert.True(t, sub.Open())

	m.KeyboardEvent(press(KeyUp))
	assert.Equal(t, items[0], m.Highlighted())
	assert.False(t, sub.Open(), "moving off the parent item closes the submenu")
}

func TestSubmenuDestroyDetachesFromItem(t *testing.T) {
	m := newTestMenu(t, false)
	item := m.Items()[0]
	sub := NewMenu(nil, m.Style())
	item.SetSubmenu(sub)

	m.RemovePopup(sub)
	sub.Destroy()
	assert.Nil(t, item.Submenu())
}

func TestPopupMenuClosesOnRequest(t *testing.T) {
	pm := NewPopupMenu(nil, DefaultMenuStyle())
	pm.Menu().AddItem(NewMenuItem(nil, DefaultMenuStyle().Item, "Close"))
	pm.SetOpen(true)
	require.True(t, pm.Open())
	require.True(t, pm.Menu().Open())

	pm.Menu().KeyboardEvent(press(KeyEscape))
	assert.False(t, pm.Open())
	assert.False(t, pm.Menu().Open())
}
