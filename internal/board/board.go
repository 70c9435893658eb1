// Package board models the client side of the drag-and-drop contract: a
// status move is applied to the local view first, then confirmed against the
// server, and reverted when confirmation fails. The view must never keep a
// task in a column the server has not confirmed after a failure.
package board

import (
	"fmt"

	"taskforge-backend/internal/database/models"

	"github.com/google/uuid"
)

// CommitFunc confirms a move against the backing store. A nil error means
// the server accepted the new status.
type CommitFunc func(taskID uuid.UUID, status models.TaskStatus) error

// View is a local, ordered per-column picture of a project board
type View struct {
	columns map[models.TaskStatus][]uuid.UUID
	status  map[uuid.UUID]models.TaskStatus
}

// NewView creates an empty board view
func NewView() *View {
	return &View{
		columns: make(map[models.TaskStatus][]uuid.UUID),
		status:  make(map[uuid.UUID]models.TaskStatus),
	}
}

// Add places a task at the end of a column. Typically called while loading
// the board from a task listing.
func (v *View) Add(taskID uuid.UUID, status models.TaskStatus) {
	if _, ok := v.status[taskID]; ok {
		return
	}
	v.columns[status] = append(v.columns[status], taskID)
	v.status[taskID] = status
}

// Status returns the column a task is currently displayed in
func (v *View) Status(taskID uuid.UUID) (models.TaskStatus, bool) {
	s, ok := v.status[taskID]
	return s, ok
}

// Column returns the ordered task ids of a column
func (v *View) Column(status models.TaskStatus) []uuid.UUID {
	col := v.columns[status]
	out := make([]uuid.UUID, len(col))
	copy(out, col)
	return out
}

// Move applies the status change optimistically, then confirms it through
// commit. When commit fails the task is restored to its previous column and
// position and the commit error is returned: after a failed move the view
// is identical to the view before the move.
func (v *View) Move(taskID uuid.UUID, newStatus models.TaskStatus, commit CommitFunc) error {
	oldStatus, ok := v.status[taskID]
	if !ok {
		return fmt.Errorf("task %s not on board", taskID)
	}
	if oldStatus == newStatus {
		return nil
	}

	oldIndex := v.remove(taskID, oldStatus)
	v.columns[newStatus] = append(v.columns[newStatus], taskID)
	v.status[taskID] = newStatus

	if err := commit(taskID, newStatus); err != nil {
		v.remove(taskID, newStatus)
		v.insertAt(taskID, oldStatus, oldIndex)
		v.status[taskID] = oldStatus
		return err
	}
	return nil
}

// remove takes the task out of a column and returns the index it held
func (v *View) remove(taskID uuid.UUID, status models.TaskStatus) int {
	col := v.columns[status]
	for i, id := range col {
		if id == taskID {
			v.columns[status] = append(col[:i:i], col[i+1:]...)
			return i
		}
	}
	return -1
}

func (v *View) insertAt(taskID uuid.UUID, status models.TaskStatus, index int) {
	col := v.columns[status]
	if index < 0 || index >= len(col) {
		v.columns[status] = append(col, taskID)
		return
	}
	col = append(col[:index:index], append([]uuid.UUID{taskID}, col[index:]...)...)
	v.columns[status] = col
}
