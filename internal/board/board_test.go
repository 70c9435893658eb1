package board

import (
	"errors"
	"testing"

	"taskforge-backend/internal/database/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadView(t *testing.T) (*View, []uuid.UUID) {
	t.Helper()
	v := NewView()
	ids := make([]uuid.UUID, 3)
	for i := range ids {
		ids[i] = uuid.New()
		v.Add(ids[i], models.TaskStatusBacklog)
	}
	return v, ids
}

func TestMoveAppliesOptimistically(t *testing.T) {
	v, ids := loadView(t)

	err := v.Move(ids[1], models.TaskStatusDone, func(taskID uuid.UUID, status models.TaskStatus) error {
		// The local view must already reflect the move when the commit runs.
		s, ok := v.Status(taskID)
		require.True(t, ok)
		assert.Equal(t, models.TaskStatusDone, s)
		return nil
	})
	require.NoError(t, err)

	s, _ := v.Status(ids[1])
	assert.Equal(t, models.TaskStatusDone, s)
	assert.Equal(t, []uuid.UUID{ids[0], ids[2]}, v.Column(models.TaskStatusBacklog))
	assert.Equal(t, []uuid.UUID{ids[1]}, v.Column(models.TaskStatusDone))
}

func TestMoveRollsBackOnCommitFailure(t *testing.T) {
	v, ids := loadView(t)
	before := v.Column(models.TaskStatusBacklog)

	commitErr := errors.New("server rejected move")
	err := v.Move(ids[1], models.TaskStatusDone, func(uuid.UUID, models.TaskStatus) error {
		return commitErr
	})
	require.ErrorIs(t, err, commitErr)

	// After a failed commit the view equals the pre-move view, including
	// the task's position within its old column.
	s, _ := v.Status(ids[1])
	assert.Equal(t, models.TaskStatusBacklog, s)
	assert.Equal(t, before, v.Column(models.TaskStatusBacklog))
	assert.Empty(t, v.Column(models.TaskStatusDone))
}

func TestMoveToSameColumnIsNoop(t *testing.T) {
	v, ids := loadView(t)

	called := false
	err := v.Move(ids[0], models.TaskStatusBacklog, func(uuid.UUID, models.TaskStatus) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestMoveUnknownTask(t *testing.T) {
	v, _ := loadView(t)

	err := v.Move(uuid.New(), models.TaskStatusDone, func(uuid.UUID, models.TaskStatus) error {
		t.Fatal("commit must not run for unknown tasks")
		return nil
	})
	assert.Error(t, err)
}

func TestAddIsIdempotentPerTask(t *testing.T) {
	v := NewView()
	id := uuid.New()
	v.Add(id, models.TaskStatusTodo)
	v.Add(id, models.TaskStatusDone)

	s, _ := v.Status(id)
	assert.Equal(t, models.TaskStatusTodo, s)
	assert.Len(t, v.Column(models.TaskStatusTodo), 1)
	assert.Empty(t, v.Column(models.TaskStatusDone))
}
