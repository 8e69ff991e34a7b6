package hotkeys

import (
	"errors"
	"fmt"
	"log"

	"github.com/1broseidon/wlkit/internal/tiling"
	"github.com/1broseidon/wlkit/internal/toolkit"
)

// Action names a host operation a key binding triggers.
type Action string

const (
	ActionTile              Action = "tile"
	ActionLock              Action = "lock"
	ActionActivateNext      Action = "activate_next"
	ActionActivatePrevious  Action = "activate_previous"
	ActionNextWorkspace     Action = "next_workspace"
	ActionPreviousWorkspace Action = "previous_workspace"
	ActionClose             Action = "close"
	ActionMaximize          Action = "maximize"
)

// Actions lists the supported actions.
var Actions = []Action{
	ActionTile, ActionLock,
	ActionActivateNext, ActionActivatePrevious,
	ActionNextWorkspace, ActionPreviousWorkspace,
	ActionClose, ActionMaximize,
}

// ErrLocked is returned for bindings triggered while the session is locked.
var ErrLocked = errors.New("session locked")

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	for _, known := range Actions {
		if a == known {
			return true
		}
	}
	return false
}

// Target is the host side of the bindings.
type Target interface {
	Root() *toolkit.Root
	TileWindows(workspace string, mode tiling.Mode) ([]int, error)
	LockSession() error
}

// Perform runs a on t. It must run on the host loop.
func Perform(t Target, a Action) error {
	root := t.Root()
	if root.Locked() {
		return ErrLocked
	}
	ws := root.CurrentWorkspace()

	switch a {
	case ActionTile:
		_, err := t.TileWindows("", "")
		return err
	case ActionLock:
		return t.LockSession()
	case ActionActivateNext:
		ws.ActivateNext()
	case ActionActivatePrevious:
		ws.ActivatePrevious()
	case ActionNextWorkspace:
		cycleWorkspace(root, 1)
	case ActionPreviousWorkspace:
		cycleWorkspace(root, -1)
	case ActionClose:
		if w := ws.ActivatedWindow(); w != nil {
			w.RequestClose()
		}
	case ActionMaximize:
		if w := ws.ActivatedWindow(); w != nil {
			w.RequestMaximized(!w.Maximized())
		}
	default:
		return fmt.Errorf("unknown action %q", a)
	}
	return nil
}

func cycleWorkspace(root *toolkit.Root, dir int) {
	all := root.Workspaces()
	if len(all) < 2 {
		return
	}
	i := 0
	for j, ws := range all {
		if ws == root.CurrentWorkspace() {
			i = j
			break
		}
	}
	n := len(all)
	root.SwitchToWorkspace(all[((i+dir)%n+n)%n])
}

// Bind registers every binding on h. Triggered actions are posted with
// post so they run on the host loop. Bindings with an empty action are
// skipped; one that fails to register is logged and skipped.
func Bind(h *Handler, bindings map[string]Action, post func(func()) error, t Target) int {
	registered := 0
	for seq, action := range bindings {
		if action == "" {
			continue
		}
		err := h.RegisterFunc(seq, func() {
			err := post(func() {
				if err := Perform(t, action); err != nil && !errors.Is(err, ErrLocked) {
					log.Printf("Warning: binding %s (%s) failed: %v", seq, action, err)
				}
			})
			if err != nil {
				log.Printf("Warning: dropping binding %s: %v", seq, err)
			}
		})
		if err != nil {
			log.Printf("Warning: Failed to register binding %s: %v", seq, err)
			continue
		}
		log.Printf("Binding registered: %s -> %s", seq, action)
		registered++
	}
	return registered
}
