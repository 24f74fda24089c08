package schedule

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focuscal/internal/model"
)

func fixedClock() time.Time {
	return time.Date(2025, time.November, 20, 10, 0, 0, 0, time.Local)
}

func draft(name, startDate, startTime, dueDate, dueTime string) model.EntryDraft {
	return model.EntryDraft{
		Name:      name,
		StartDate: startDate,
		StartTime: startTime,
		DueDate:   dueDate,
		DueTime:   dueTime,
	}
}

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedules.json")
	return NewStore(NewFileBlob(path), WithClock(fixedClock)), path
}

func TestNewStore(t *testing.T) {
	t.Run("missing blob seeds the documented defaults", func(t *testing.T) {
		s, _ := newTestStore(t)
		entries, err := s.List()
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "코딩 작업", entries[0].Name)
		assert.Equal(t, "팀 회의", entries[1].Name)
		assert.Equal(t, "문서 작성", entries[2].Name)
	})

	t.Run("corrupt blob falls open to defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "schedules.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
		s := NewStore(NewFileBlob(path), WithClock(fixedClock))
		entries, err := s.List()
		require.NoError(t, err)
		assert.Len(t, entries, 3)
	})

	t.Run("future blob version is treated as unreadable", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "schedules.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"version":99,"schedules":[]}`), 0o600))
		s := NewStore(NewFileBlob(path), WithClock(fixedClock))
		entries, err := s.List()
		require.NoError(t, err)
		assert.Len(t, entries, 3)
	})
}

func TestStoreAdd(t *testing.T) {
	t.Run("assigns max id plus one", func(t *testing.T) {
		s, _ := newTestStore(t)
		e, err := s.Add(draft("스터디", "2025-12-01", "19:00", "2025-12-01", "21:00"))
		require.NoError(t, err)
		assert.Equal(t, 4, e.ID)
		assert.Equal(t, "2025-11-20", e.CreatedAt)
	})

	t.Run("assigns one on an empty collection", func(t *testing.T) {
		s, _ := newTestStore(t)
		for _, id := range []int{1, 2, 3} {
			require.NoError(t, s.Remove(id))
		}
		e, err := s.Add(draft("첫 일정", "2025-12-01", "09:00", "2025-12-01", "10:00"))
		require.NoError(t, err)
		assert.Equal(t, 1, e.ID)
	})

	t.Run("rejects a draft without a name", func(t *testing.T) {
		s, _ := newTestStore(t)
		_, err := s.Add(draft("", "2025-12-01", "09:00", "2025-12-01", "10:00"))
		require.ErrorIs(t, err, model.ErrInvalidDraft)
		entries, _ := s.List()
		assert.Len(t, entries, 3)
	})

	t.Run("rejects a due instant before the start", func(t *testing.T) {
		s, _ := newTestStore(t)
		_, err := s.Add(draft("역순", "2025-12-02", "10:00", "2025-12-01", "10:00"))
		require.ErrorIs(t, err, model.ErrInvalidDraft)
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		s, _ := newTestStore(t)
		_, err := s.Add(draft("이상한 날짜", "01/12/2025", "09:00", "2025-12-01", "10:00"))
		require.ErrorIs(t, err, model.ErrInvalidDraft)
	})
}

func TestStoreRemove(t *testing.T) {
	t.Run("is idempotent", func(t *testing.T) {
		s, _ := newTestStore(t)
		require.NoError(t, s.Remove(2))
		require.NoError(t, s.Remove(2))
		entries, _ := s.List()
		assert.Len(t, entries, 2)
	})

	t.Run("unknown id leaves the collection alone", func(t *testing.T) {
		s, _ := newTestStore(t)
		require.NoError(t, s.Remove(999))
		entries, _ := s.List()
		assert.Len(t, entries, 3)
	})
}

func TestStoreUpdate(t *testing.T) {
	t.Run("preserves id and created_at", func(t *testing.T) {
		s, _ := newTestStore(t)
		before, err := s.Get(2)
		require.NoError(t, err)

		updated, err := s.Update(2, draft("팀 회의 (연기)", "2025-11-10", "14:00", "2025-11-10", "15:00"))
		require.NoError(t, err)
		assert.Equal(t, 2, updated.ID)
		assert.Equal(t, before.CreatedAt, updated.CreatedAt)
		assert.Equal(t, "팀 회의 (연기)", updated.Name)
		assert.Equal(t, "2025-11-10", updated.StartDate)
	})

	t.Run("unknown id is an explicit not-found", func(t *testing.T) {
		s, _ := newTestStore(t)
		_, err := s.Update(42, draft("없음", "2025-11-10", "14:00", "2025-11-10", "15:00"))
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("invalid draft leaves the entry untouched", func(t *testing.T) {
		s, _ := newTestStore(t)
		_, err := s.Update(2, draft("", "2025-11-10", "14:00", "2025-11-10", "15:00"))
		require.ErrorIs(t, err, model.ErrInvalidDraft)
		e, _ := s.Get(2)
		assert.Equal(t, "팀 회의", e.Name)
	})
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedules.json")
	s := NewStore(NewFileBlob(path), WithClock(fixedClock))

	added, err := s.Add(draft("라운드트립", "2025-12-05", "08:30", "2025-12-05", "09:45"))
	require.NoError(t, err)
	require.NoError(t, s.Remove(1))
	want, err := s.List()
	require.NoError(t, err)

	reloaded := NewStore(NewFileBlob(path), WithClock(fixedClock))
	got, err := reloaded.List()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	e, err := reloaded.Get(added.ID)
	require.NoError(t, err)
	assert.Equal(t, added, e)
}

type failingPersister struct {
	entries []model.ScheduleEntry
	fail    bool
}

func (p *failingPersister) Load() ([]model.ScheduleEntry, error) { return p.entries, nil }

func (p *failingPersister) Save([]model.ScheduleEntry) error {
	if p.fail {
		return errors.New("disk full")
	}
	return nil
}

func TestPersistFailureRollsBack(t *testing.T) {
	p := &failingPersister{entries: SeedEntries(), fail: true}
	s := NewStore(p, WithClock(fixedClock))

	t.Run("add", func(t *testing.T) {
		_, err := s.Add(draft("유실 방지", "2025-12-01", "09:00", "2025-12-01", "10:00"))
		require.Error(t, err)
		entries, _ := s.List()
		assert.Len(t, entries, 3)
	})

	t.Run("remove", func(t *testing.T) {
		require.Error(t, s.Remove(1))
		entries, _ := s.List()
		assert.Len(t, entries, 3)
		assert.Equal(t, 1, entries[0].ID)
	})

	t.Run("update", func(t *testing.T) {
		_, err := s.Update(2, draft("수정", "2025-11-09", "14:00", "2025-11-09", "15:00"))
		require.Error(t, err)
		e, _ := s.Get(2)
		assert.Equal(t, "팀 회의", e.Name)
	})
}
