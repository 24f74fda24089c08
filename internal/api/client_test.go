package api

import (
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focuscal/internal/model"
	"focuscal/internal/schedule"
	"focuscal/internal/server"
)

// The client is exercised against the real server handler so both sides of
// the wire contract are covered together.
func newClientAndServer(t *testing.T) *Client {
	t.Helper()
	store := schedule.NewStore(schedule.NewFileBlob(filepath.Join(t.TempDir(), "schedules.json")))
	srv := httptest.NewServer(server.New(store, nil, nil).Handler())
	t.Cleanup(srv.Close)
	return NewClient(srv.URL)
}

func TestClientList(t *testing.T) {
	c := newClientAndServer(t)
	entries, err := c.List()
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestClientAdd(t *testing.T) {
	c := newClientAndServer(t)

	t.Run("server assigns the id", func(t *testing.T) {
		entry, err := c.Add(model.EntryDraft{
			Name:      "원격 추가",
			StartDate: "2025-12-01",
			StartTime: "09:00",
			DueDate:   "2025-12-01",
			DueTime:   "10:00",
		})
		require.NoError(t, err)
		assert.Equal(t, 4, entry.ID)
	})

	t.Run("invalid draft is rejected before any request", func(t *testing.T) {
		_, err := c.Add(model.EntryDraft{Name: ""})
		require.ErrorIs(t, err, model.ErrInvalidDraft)
	})
}

func TestClientUpdate(t *testing.T) {
	c := newClientAndServer(t)

	t.Run("round-trips the updated record", func(t *testing.T) {
		entry, err := c.Update(2, model.EntryDraft{
			Name:      "팀 회의 (원격 수정)",
			StartDate: "2025-11-09",
			StartTime: "16:00",
			DueDate:   "2025-11-09",
			DueTime:   "17:00",
		})
		require.NoError(t, err)
		assert.Equal(t, 2, entry.ID)
		assert.Equal(t, "16:00", entry.StartTime)
	})

	t.Run("unknown id maps to the store's not-found", func(t *testing.T) {
		_, err := c.Update(99, model.EntryDraft{
			Name:      "없음",
			StartDate: "2025-11-09",
			StartTime: "16:00",
			DueDate:   "2025-11-09",
			DueTime:   "17:00",
		})
		require.ErrorIs(t, err, schedule.ErrNotFound)
	})
}

func TestClientRemove(t *testing.T) {
	c := newClientAndServer(t)
	require.NoError(t, c.Remove(1))
	require.NoError(t, c.Remove(1))
	entries, err := c.List()
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestTransportError(t *testing.T) {
	t.Run("unreachable server is retryable with a readable message", func(t *testing.T) {
		c := NewClient("http://127.0.0.1:1") // nothing listens here
		_, err := c.List()
		require.Error(t, err)

		var te *TransportError
		require.ErrorAs(t, err, &te)
		assert.True(t, te.Retryable())
		assert.Contains(t, te.Error(), "list schedules")
	})

	t.Run("client errors are not retryable", func(t *testing.T) {
		te := &TransportError{Op: "update schedule", Status: 422, Detail: "invalid"}
		assert.False(t, te.Retryable())
	})

	t.Run("server errors are retryable", func(t *testing.T) {
		te := &TransportError{Op: "list schedules", Status: 503, Detail: "unavailable"}
		assert.True(t, te.Retryable())
	})
}
