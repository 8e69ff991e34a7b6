package toolkit

import "github.com/1broseidon/wlkit/internal/geom"

// Anchor is a bitmask of output edges a panel is anchored to. Values
// follow the layer-shell protocol.
type Anchor uint32

const (
	AnchorTop    Anchor = 1
	AnchorBottom Anchor = 2
	AnchorLeft   Anchor = 4
	AnchorRight  Anchor = 8
)

// PanelPositioning holds a panel's placement parameters.
type PanelPositioning struct {
	// DesiredWidth and DesiredHeight of 0 stretch the panel between the
	// two anchored edges of that axis.
	DesiredWidth  int
	DesiredHeight int
	Anchor        Anchor
	MarginTop     int
	MarginBottom  int
	MarginLeft    int
	MarginRight   int
	// ExclusiveZone reserves that many pixels along the anchored edge.
	// -1 asks to extend over other panels' exclusive zones.
	ExclusiveZone int
}

// PanelClient is the client behind a panel.
type PanelClient interface {
	// RequestSize asks the client to resize and returns the serial of
	// the request.
	RequestSize(width, height int) uint32
}

// Panel is a container placed on an output by a Layer.
type Panel struct {
	BaseContainer

	positioning PanelPositioning
	client      PanelClient
	layer       *Layer

	requestedWidth  int
	requestedHeight int
	committedWidth  int
	committedHeight int
}

// NewPanel creates an invisible panel.
func NewPanel(env *Env, positioning PanelPositioning, client PanelClient) *Panel {
	p := &Panel{positioning: positioning, client: client}
	p.InitContainer(p, env)
	return p
}

func (p *Panel) Positioning() PanelPositioning { return p.positioning }

// SetPositioning replaces the placement parameters and reconfigures the
// panel's layer.
func (p *Panel) SetPositioning(positioning PanelPositioning) {
	p.positioning = positioning
	if p.layer != nil {
		p.layer.Reconfigure()
	}
}

// Layer returns the layer holding the panel.
func (p *Panel) Layer() *Layer { return p.layer }

// SetVisible shows or hides the panel. The layer is reconfigured since a
// hidden panel reserves no space.
func (p *Panel) SetVisible(visible bool) {
	if p.visible == visible {
		return
	}
	p.BaseContainer.SetVisible(visible)
	if p.layer != nil {
		p.layer.Reconfigure()
	}
}

// RequestSize forwards a size request to the client.
func (p *Panel) RequestSize(width, height int) uint32 {
	p.requestedWidth, p.requestedHeight = width, height
	if p.client == nil {
		return 0
	}
	return p.client.RequestSize(width, height)
}

// RequestedSize returns the last size passed to RequestSize.
func (p *Panel) RequestedSize() (int, int) { return p.requestedWidth, p.requestedHeight }

// CommitSize records the size the client committed.
func (p *Panel) CommitSize(serial uint32, width, height int) {
	p.committedWidth, p.committedHeight = width, height
	p.cimpl.UpdateLayout()
}

// Dimensions is the committed size, or the children's union before the
// first commit.
func (p *Panel) Dimensions() geom.Rect {
	if p.committedWidth > 0 || p.committedHeight > 0 {
		return geom.Rect{Width: p.committedWidth, Height: p.committedHeight}
	}
	return p.BaseContainer.Dimensions()
}

// ComputeDimensions returns the panel's box within full and shrinks
// usable by the panel's exclusive zone. Panels with a negative exclusive
// zone are placed within full; others within usable. A hidden panel
// leaves usable unchanged.
func (p *Panel) ComputeDimensions(full geom.Rect, usable *geom.Rect) geom.Rect {
	pos := p.positioning
	bounds := *usable
	if pos.ExclusiveZone < 0 {
		bounds = full
	}

	box := geom.Rect{Width: pos.DesiredWidth, Height: pos.DesiredHeight}
	a := pos.Anchor

	horizontal := a & (AnchorLeft | AnchorRight)
	switch {
	case box.Width == 0 && horizontal == AnchorLeft|AnchorRight:
		box.X = bounds.X + pos.MarginLeft
		box.Width = bounds.Width - pos.MarginLeft - pos.MarginRight
	case horizontal == AnchorLeft:
		box.X = bounds.X + pos.MarginLeft
	case horizontal == AnchorRight:
		box.X = bounds.Right() - box.Width - pos.MarginRight
	default:
		box.X = bounds.X + (bounds.Width-box.Width)/2
	}

	vertical := a & (AnchorTop | AnchorBottom)
	switch {
	case box.Height == 0 && vertical == AnchorTop|AnchorBottom:
		box.Y = bounds.Y + pos.MarginTop
		box.Height = bounds.Height - pos.MarginTop - pos.MarginBottom
	case vertical == AnchorTop:
		box.Y = bounds.Y + pos.MarginTop
	case vertical == AnchorBottom:
		box.Y = bounds.Bottom() - box.Height - pos.MarginBottom
	default:
		box.Y = bounds.Y + (bounds.Height-box.Height)/2
	}

	if pos.ExclusiveZone > 0 && p.visible {
		shrinkUsable(usable, pos)
	}
	return box
}

// shrinkUsable removes the exclusive zone from usable. Only panels
// anchored to one edge, or to one edge and both its neighbours, reserve
// space.
func shrinkUsable(usable *geom.Rect, pos PanelPositioning) {
	all := AnchorTop | AnchorBottom | AnchorLeft | AnchorRight
	switch pos.Anchor & all {
	case AnchorLeft, AnchorLeft | AnchorTop | AnchorBottom:
		d := pos.ExclusiveZone + pos.MarginLeft
		usable.X += d
		usable.Width -= d
	case AnchorRight, AnchorRight | AnchorTop | AnchorBottom:
		usable.Width -= pos.ExclusiveZone + pos.MarginRight
	case AnchorTop, AnchorTop | AnchorLeft | AnchorRight:
		d := pos.ExclusiveZone + pos.MarginTop
		usable.Y += d
		usable.Height -= d
	case AnchorBottom, AnchorBottom | AnchorLeft | AnchorRight:
		usable.Height -= pos.ExclusiveZone + pos.MarginBottom
	}
	usable.Width = max(usable.Width, 0)
	usable.Height = max(usable.Height, 0)
}
