package toolkit

// CursorSetter changes the pointer image.
type CursorSetter interface {
	SetCursor(c Cursor)
}

// Env holds the host collaborators shared by all elements of a tree. A nil
// Env is valid; operations needing a collaborator become no-ops.
type Env struct {
	Cursor CursorSetter
}

// SetCursor forwards to the cursor collaborator, if any.
func (env *Env) SetCursor(c Cursor) {
	if env == nil || env.Cursor == nil {
		return
	}
	env.Cursor.SetCursor(c)
}
