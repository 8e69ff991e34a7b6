package x11

import (
	"context"
	"fmt"
	"log"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/wlkit/internal/output"
)

// Monitor represents a physical display
type Monitor struct {
	ID     int
	Name   string
	X      int
	Y      int
	Width  int
	Height int
}

// GetMonitors retrieves all active monitors using XRandR
func (c *Connection) GetMonitors() ([]Monitor, error) {
	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor

	// Query each CRTC for active monitors
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		outputName := fmt.Sprintf("Monitor%d", i)
		outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			outputName = string(outputInfo.Name)
		}

		monitors = append(monitors, Monitor{
			ID:     i,
			Name:   outputName,
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		})
	}

	return monitors, nil
}

// Outputs returns the active monitors as layout outputs.
func (c *Connection) Outputs() ([]output.Output, error) {
	monitors, err := c.GetMonitors()
	if err != nil {
		return nil, err
	}
	return MonitorsToOutputs(monitors), nil
}

// MonitorsToOutputs converts monitors to outputs identified by their RandR
// output name. X has no per-output scale, so every output has scale 1.
// Monitors sharing a name keep the first one.
func MonitorsToOutputs(monitors []Monitor) []output.Output {
	seen := make(map[string]struct{}, len(monitors))
	outputs := make([]output.Output, 0, len(monitors))
	for _, m := range monitors {
		if _, dup := seen[m.Name]; dup {
			continue
		}
		seen[m.Name] = struct{}{}
		outputs = append(outputs, output.Output{
			ID:     output.ID(m.Name),
			Name:   m.Name,
			X:      m.X,
			Y:      m.Y,
			Width:  m.Width,
			Height: m.Height,
			Scale:  1,
		})
	}
	return outputs
}

// PointerPosition returns the pointer position on the root window.
func (c *Connection) PointerPosition() (x, y int, err error) {
	pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query pointer: %w", err)
	}
	return int(pointer.RootX), int(pointer.RootY), nil
}

// WatchScreenChanges calls fn after each RandR screen change until ctx is
// done or the connection closes. fn runs on the watching goroutine.
func (c *Connection) WatchScreenChanges(ctx context.Context, fn func()) error {
	mask := randr.NotifyMaskScreenChange | randr.NotifyMaskCrtcChange | randr.NotifyMaskOutputChange
	if err := randr.SelectInputChecked(c.XUtil.Conn(), c.Root, uint16(mask)).Check(); err != nil {
		return fmt.Errorf("failed to select randr input: %w", err)
	}

	events := make(chan struct{}, 1)
	go func() {
		defer close(events)
		for {
			ev, err := c.XUtil.Conn().WaitForEvent()
			if ev == nil && err == nil {
				return
			}
			if err != nil {
				log.Printf("Warning: X error while watching screen changes: %v", err)
				continue
			}
			switch ev.(type) {
			case randr.ScreenChangeNotifyEvent, randr.NotifyEvent:
				select {
				case events <- struct{}{}:
				default:
				}
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-events:
			if !ok {
				return nil
			}
			fn()
		}
	}
}
