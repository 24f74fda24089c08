package importer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focuscal/internal/schedule"
)

func newStore(t *testing.T) *schedule.Store {
	t.Helper()
	return schedule.NewStore(schedule.NewFileBlob(filepath.Join(t.TempDir(), "schedules.json")))
}

func TestImport(t *testing.T) {
	t.Run("creates one entry per item", func(t *testing.T) {
		s := newStore(t)
		n, err := Import(s, `
schedules:
  - name: 스프린트 계획
    description: 다음 스프린트 범위 결정
    start_date: "2025-12-01"
    start_time: "10:00"
    due_date: "2025-12-01"
    due_time: "11:30"
  - name: 회고
    start_date: "2025-12-05"
    start_time: "17:00"
    due_date: "2025-12-05"
    due_time: "18:00"
`)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		entries, err := s.List()
		require.NoError(t, err)
		assert.Len(t, entries, 5) // 3 seeds + 2 imported
		assert.Equal(t, "스프린트 계획", entries[3].Name)
	})

	t.Run("invalid YAML is an error", func(t *testing.T) {
		_, err := Import(newStore(t), "schedules: [")
		assert.Error(t, err)
	})

	t.Run("empty document is an error", func(t *testing.T) {
		_, err := Import(newStore(t), "schedules: []")
		assert.Error(t, err)
	})

	t.Run("stops at the first invalid entry, keeping earlier ones", func(t *testing.T) {
		s := newStore(t)
		n, err := Import(s, `
schedules:
  - name: 유효한 일정
    start_date: "2025-12-01"
    start_time: "10:00"
    due_date: "2025-12-01"
    due_time: "11:00"
  - name: ""
    start_date: "2025-12-02"
    start_time: "10:00"
    due_date: "2025-12-02"
    due_time: "11:00"
`)
		require.Error(t, err)
		assert.Equal(t, 1, n)
		entries, _ := s.List()
		assert.Len(t, entries, 4)
	})
}
