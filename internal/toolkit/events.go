package toolkit

import "math"

// Linux input event codes of the pointer buttons.
const (
	ButtonLeft   uint32 = 0x110
	ButtonRight  uint32 = 0x111
	ButtonMiddle uint32 = 0x112
)

// ButtonEventType distinguishes press, release and the synthesized click.
type ButtonEventType int

const (
	ButtonDown ButtonEventType = iota
	ButtonUp
	// ButtonClick follows a ButtonUp of the primary button when the
	// release happened within the element that saw the ButtonDown.
	ButtonClick
)

func (t ButtonEventType) String() string {
	switch t {
	case ButtonDown:
		return "down"
	case ButtonUp:
		return "up"
	case ButtonClick:
		return "click"
	default:
		return "unknown"
	}
}

// Modifier is a bitmask of keyboard modifiers, using the xkb/wlroots bit
// layout.
type Modifier uint32

const (
	ModShift Modifier = 1 << iota
	ModCaps
	ModCtrl
	ModAlt
	ModMod2
	ModMod3
	ModLogo
	ModMod5
)

// ModMove is the modifier combination that turns a primary-button press
// anywhere on a window into a window move.
const ModMove = ModAlt | ModLogo

// Keysyms used by the toolkit's keyboard navigation.
const (
	KeyHome       uint32 = 0xff50
	KeyLeft       uint32 = 0xff51
	KeyUp         uint32 = 0xff52
	KeyRight      uint32 = 0xff53
	KeyDown       uint32 = 0xff54
	KeyEnd        uint32 = 0xff57
	KeyReturn     uint32 = 0xff0d
	KeyEscape     uint32 = 0xff1b
	KeyKPEnter    uint32 = 0xff8d
	KeyTab        uint32 = 0xff09
	KeyISOLeftTab uint32 = 0xfe20
)

// MotionEvent is a pointer motion in the receiving element's coordinates.
// NaN coordinates mean the pointer is not within the element's area.
type MotionEvent struct {
	X    float64
	Y    float64
	Time uint32
}

// Outside returns a motion event meaning "the pointer left".
func Outside(time uint32) MotionEvent {
	return MotionEvent{X: math.NaN(), Y: math.NaN(), Time: time}
}

// ButtonEvent is a pointer button press, release or click.
type ButtonEvent struct {
	Button    uint32
	Type      ButtonEventType
	Time      uint32
	Modifiers Modifier
}

// AxisOrientation is the scroll axis.
type AxisOrientation int

const (
	AxisVertical AxisOrientation = iota
	AxisHorizontal
)

// AxisEvent is a scroll event. Positive delta scrolls down or right.
type AxisEvent struct {
	Orientation AxisOrientation
	Delta       float64
	Time        uint32
}

// KeyEvent is a key press or release, already translated to a keysym.
type KeyEvent struct {
	Keysym    uint32
	Pressed   bool
	Modifiers Modifier
	Time      uint32
}

// Edge is a bitmask of box edges, matching the wlroots edge values.
type Edge uint32

const (
	EdgeNone   Edge = 0
	EdgeTop    Edge = 1
	EdgeBottom Edge = 2
	EdgeLeft   Edge = 4
	EdgeRight  Edge = 8
)

// Cursor selects the pointer image.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorResizeS
	CursorResizeSE
	CursorResizeSW
	CursorMove
)

func (c Cursor) String() string {
	switch c {
	case CursorDefault:
		return "default"
	case CursorResizeS:
		return "s-resize"
	case CursorResizeSE:
		return "se-resize"
	case CursorResizeSW:
		return "sw-resize"
	case CursorMove:
		return "move"
	default:
		return "unknown"
	}
}
