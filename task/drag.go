package task

// DragSession carries the two-phase reorder protocol: Begin grabs the source
// task id, Drop applies the move against the store. The grabbed id is a
// single slot, cleared on drop or cancel, so stale drags can never leak into
// unrelated operations.
type DragSession struct {
	store   *Store
	dragID  int
	dragged bool
}

// NewDragSession creates a drag session bound to a store.
func NewDragSession(store *Store) *DragSession {
	return &DragSession{store: store}
}

// Begin grabs the task with the given id as the drag source, replacing any
// previously grabbed id.
func (d *DragSession) Begin(id int) {
	d.dragID = id
	d.dragged = true
}

// Drop completes the drag onto the target id and clears the session. It
// reports whether the canonical order changed. Dropping without an active
// drag, or onto the dragged task itself, is a no-op.
func (d *DragSession) Drop(targetID int) bool {
	if !d.dragged {
		return false
	}
	fromID := d.dragID
	d.Cancel()
	return d.store.Reorder(fromID, targetID)
}

// Cancel clears the grabbed id without reordering.
func (d *DragSession) Cancel() {
	d.dragID = 0
	d.dragged = false
}

// Active returns the grabbed task id, if a drag is in progress.
func (d *DragSession) Active() (int, bool) {
	return d.dragID, d.dragged
}
