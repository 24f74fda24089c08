package task

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focuscal/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddAndList(t *testing.T) {
	s := newTestStore(t)

	desc := "리포트 마감"
	first, err := s.Add("보고서 작성", &desc)
	require.NoError(t, err)
	assert.Equal(t, model.TaskPending, first.Status)
	require.NotNil(t, first.Description)
	assert.Equal(t, desc, *first.Description)

	second, err := s.Add("코드 리뷰", nil)
	require.NoError(t, err)
	assert.Nil(t, second.Description)

	tasks, err := s.List()
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, first.ID, tasks[0].ID)
	assert.Equal(t, second.ID, tasks[1].ID)
}

func TestLabelFor(t *testing.T) {
	s := newTestStore(t)
	created, err := s.Add("집중 작업", nil)
	require.NoError(t, err)

	t.Run("nil reference renders empty", func(t *testing.T) {
		assert.Equal(t, "", s.LabelFor(nil))
	})

	t.Run("live reference renders the task name", func(t *testing.T) {
		assert.Equal(t, "집중 작업", s.LabelFor(&created.ID))
	})

	t.Run("dangling reference renders the unlinked label", func(t *testing.T) {
		missing := created.ID + 100
		assert.Equal(t, UnlinkedLabel, s.LabelFor(&missing))
	})

	t.Run("deleted task becomes unlinked, not an error", func(t *testing.T) {
		require.NoError(t, s.Delete(created.ID))
		assert.Equal(t, UnlinkedLabel, s.LabelFor(&created.ID))
	})
}

func TestStatusAndDueDate(t *testing.T) {
	s := newTestStore(t)
	created, err := s.Add("마감 있는 작업", nil)
	require.NoError(t, err)

	require.NoError(t, s.SetStatus(created.ID, model.TaskDone))
	due := "2025-11-30"
	require.NoError(t, s.SetDueDate(created.ID, &due))

	got, err := s.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TaskDone, got.Status)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, due, *got.DueDate)

	require.NoError(t, s.SetDueDate(created.ID, nil))
	got, err = s.GetByID(created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.DueDate)
}
