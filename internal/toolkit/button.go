package toolkit

import "github.com/1broseidon/wlkit/internal/raster"

// Button is a buffer element with released and pressed textures. A
// primary-button click within the button emits Clicked.
type Button struct {
	Buffer

	releasedTex *raster.Buffer
	pressedTex  *raster.Buffer
	pressed     bool

	Clicked Signal[*Button]
}

// NewButton creates an invisible button without textures.
func NewButton(env *Env) *Button {
	b := &Button{}
	b.InitButton(b, env)
	return b
}

// InitButton prepares b. self is the outermost value embedding b.
func (b *Button) InitButton(self Element, env *Env) {
	b.InitBuffer(self, env)
}

// SetTextures replaces the released and pressed textures. Both must have
// the same size; otherwise nothing changes and false is returned.
func (b *Button) SetTextures(released, pressed *raster.Buffer) bool {
	if released == nil || pressed == nil ||
		released.Width() != pressed.Width() || released.Height() != pressed.Height() {
		return false
	}
	released.Lock()
	pressed.Lock()
	b.releaseTextures()
	b.releasedTex = released
	b.pressedTex = pressed
	b.show()
	return true
}

func (b *Button) releaseTextures() {
	if b.releasedTex != nil {
		b.releasedTex.Unlock()
		b.releasedTex = nil
	}
	if b.pressedTex != nil {
		b.pressedTex.Unlock()
		b.pressedTex = nil
	}
}

// Pressed reports whether the button saw a press without a release yet.
func (b *Button) Pressed() bool { return b.pressed }

// ShowsPressed reports whether the pressed texture is shown.
func (b *Button) ShowsPressed() bool {
	return b.pressedTex != nil && b.RasterBuffer() == b.pressedTex
}

func (b *Button) show() {
	if b.pressed && b.pointerInside {
		b.SetBuffer(b.pressedTex)
	} else {
		b.SetBuffer(b.releasedTex)
	}
}

func (b *Button) PointerEnter() {
	b.Buffer.PointerEnter()
	b.show()
}

func (b *Button) PointerLeave() {
	b.show()
}

func (b *Button) PointerButton(ev ButtonEvent) bool {
	if ev.Button != ButtonLeft {
		return false
	}
	switch ev.Type {
	case ButtonDown:
		b.pressed = true
		b.show()
	case ButtonUp:
		b.pressed = false
		b.show()
	case ButtonClick:
		b.Clicked.Emit(b)
	}
	return true
}

func (b *Button) Destroy() {
	b.releaseTextures()
	b.Buffer.Destroy()
}
