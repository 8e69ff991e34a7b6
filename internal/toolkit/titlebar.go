package toolkit

import (
	"image"
	"log"

	"github.com/1broseidon/wlkit/internal/raster"
)

// Titlebar is the window decoration showing the title, a minimize button
// at the left and a close button at the right.
type Titlebar struct {
	Box

	window *Window
	style  TitlebarStyle

	title    *titlebarTitle
	minimize *titlebarButton
	close    *titlebarButton

	width      int
	text       string
	activated  bool
	properties WindowProperty

	focussed *raster.Buffer
	blurred  *raster.Buffer
}

// NewTitlebar creates the titlebar of window.
func NewTitlebar(env *Env, window *Window, style TitlebarStyle) *Titlebar {
	t := &Titlebar{window: window, style: style}
	t.InitBox(t, env, Horizontal, style.Margin)

	t.minimize = newTitlebarButton(env, t, buttonMinimize)
	t.minimize.Clicked.Connect(func(*Button) { t.window.RequestMinimize() })
	t.AddElementBack(t.minimize)

	t.title = newTitlebarTitle(env, t)
	t.title.setVisibleQuiet(true)
	t.AddElementBack(t.title)

	t.close = newTitlebarButton(env, t, buttonClose)
	t.close.Clicked.Connect(func(*Button) { t.window.RequestClose() })
	t.AddElementBack(t.close)
	return t
}

// Height returns the titlebar's height.
func (t *Titlebar) Height() int { return t.style.Height }

// Title returns the shown title text.
func (t *Titlebar) Title() string { return t.text }

// SetWidth re-renders the titlebar for the given width. It returns false
// for an invalid width.
func (t *Titlebar) SetWidth(width int) bool {
	if width == t.width && t.focussed != nil {
		return true
	}
	if width <= 0 {
		return false
	}
	focussed, err := raster.New(width, t.style.Height)
	if err != nil {
		log.Printf("Warning: titlebar background: %v", err)
		return false
	}
	blurred, err := raster.New(width, t.style.Height)
	if err != nil {
		focussed.Unlock()
		log.Printf("Warning: titlebar background: %v", err)
		return false
	}
	bounds := image.Rect(0, 0, width, t.style.Height)
	raster.FillRect(focussed, bounds, t.style.FocussedFill)
	raster.FillRect(blurred, bounds, t.style.BlurredFill)

	t.releaseBackgrounds()
	t.focussed, t.blurred = focussed, blurred
	t.width = width
	t.redraw()
	return true
}

func (t *Titlebar) releaseBackgrounds() {
	if t.focussed != nil {
		t.focussed.Unlock()
		t.focussed = nil
	}
	if t.blurred != nil {
		t.blurred.Unlock()
		t.blurred = nil
	}
}

// SetActivated switches between the focussed and blurred look.
func (t *Titlebar) SetActivated(activated bool) {
	if t.activated == activated {
		return
	}
	t.activated = activated
	t.redraw()
}

// SetTitle changes the title text.
func (t *Titlebar) SetTitle(title string) {
	if t.text == title {
		return
	}
	t.text = title
	t.redraw()
}

// SetProperties shows the buttons enabled by the window properties.
func (t *Titlebar) SetProperties(props WindowProperty) {
	if t.properties == props {
		return
	}
	t.properties = props
	t.redraw()
}

// redraw lays out the buttons and renders all parts from the current
// backgrounds.
func (t *Titlebar) redraw() {
	if t.focussed == nil {
		return
	}
	h := t.style.Height
	margin := max(t.style.Margin.Width, 0)
	showMinimize := t.properties&WindowPropertyIconifiable != 0
	showClose := t.properties&WindowPropertyClosable != 0

	titleX, titleW := 0, t.width
	if showMinimize {
		titleX += h + margin
		titleW -= h + margin
	}
	if showClose {
		titleW -= h + margin
	}
	if titleW <= 0 {
		// Too narrow for buttons.
		showMinimize, showClose = false, false
		titleX, titleW = 0, t.width
	}

	t.minimize.setVisibleQuiet(showMinimize)
	if showMinimize {
		t.minimize.redraw(image.Rect(0, 0, h, h))
	}
	t.close.setVisibleQuiet(showClose)
	if showClose {
		t.close.redraw(image.Rect(t.width-h, 0, t.width, h))
	}
	t.title.redraw(image.Rect(titleX, 0, titleX+titleW, h))
	t.cimpl.UpdateLayout()
}

func (t *Titlebar) background() *raster.Buffer {
	if t.activated {
		return t.focussed
	}
	return t.blurred
}

func (t *Titlebar) textColor() uint32 {
	if t.activated {
		return t.style.FocussedTextColor
	}
	return t.style.BlurredTextColor
}

func (t *Titlebar) Destroy() {
	t.releaseBackgrounds()
	t.Box.Destroy()
}

// titlebarTitle is the part of the titlebar showing the text. It starts
// moves, opens the window menu and shades.
type titlebarTitle struct {
	Buffer
	titlebar *Titlebar
}

func newTitlebarTitle(env *Env, t *Titlebar) *titlebarTitle {
	tt := &titlebarTitle{titlebar: t}
	tt.InitBuffer(tt, env)
	return tt
}

func (tt *titlebarTitle) redraw(r image.Rectangle) {
	t := tt.titlebar
	buf, err := raster.Crop(t.background(), r)
	if err != nil {
		log.Printf("Warning: titlebar title: %v", err)
		return
	}
	bounds := image.Rect(0, 0, r.Dx(), r.Dy())
	raster.DrawTextLeft(buf, bounds, t.style.Height/3, t.text, t.style.Font, t.textColor())
	raster.Bezel(buf, bounds, t.style.BezelWidth, true)
	tt.SetBuffer(buf)
	buf.Unlock()
}

func (tt *titlebarTitle) PointerButton(ev ButtonEvent) bool {
	w := tt.titlebar.window
	if ev.Type != ButtonDown {
		return false
	}
	switch ev.Button {
	case ButtonLeft:
		w.RequestMove()
		return true
	case ButtonRight:
		if w.Activated() {
			w.MenuSetEnabled(true)
			return true
		}
	}
	return false
}

func (tt *titlebarTitle) PointerAxis(ev AxisEvent) bool {
	if ev.Orientation != AxisVertical || ev.Delta == 0 {
		return false
	}
	w := tt.titlebar.window
	if !w.ServerSideDecorated() {
		return false
	}
	w.RequestShaded(ev.Delta < 0)
	return true
}

type buttonKind int

const (
	buttonMinimize buttonKind = iota
	buttonClose
)

type titlebarButton struct {
	Button
	titlebar *Titlebar
	kind     buttonKind
}

func newTitlebarButton(env *Env, t *Titlebar, kind buttonKind) *titlebarButton {
	b := &titlebarButton{titlebar: t, kind: kind}
	b.InitButton(b, env)
	return b
}

func (b *titlebarButton) redraw(r image.Rectangle) {
	t := b.titlebar
	released, err := raster.Crop(t.background(), r)
	if err != nil {
		log.Printf("Warning: titlebar button: %v", err)
		return
	}
	pressed, err := raster.Crop(t.background(), r)
	if err != nil {
		released.Unlock()
		log.Printf("Warning: titlebar button: %v", err)
		return
	}
	bounds := image.Rect(0, 0, r.Dx(), r.Dy())
	size := r.Dy() / 2
	for _, buf := range []*raster.Buffer{released, pressed} {
		switch b.kind {
		case buttonMinimize:
			raster.MinimizeIcon(buf, bounds, size, t.textColor())
		case buttonClose:
			raster.CloseIcon(buf, bounds, size, t.textColor())
		}
	}
	raster.Bezel(released, bounds, t.style.BezelWidth, true)
	raster.Bezel(pressed, bounds, t.style.BezelWidth, false)
	b.SetTextures(released, pressed)
	released.Unlock()
	pressed.Unlock()
}
