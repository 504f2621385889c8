package component

// Cursor tracks pointer capture for the controlled entity.
type Cursor struct {
	Lock     bool
	Captured bool
}

var CursorComponent = NewComponent[Cursor]()
