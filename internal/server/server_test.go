package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focuscal/internal/model"
	"focuscal/internal/schedule"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store := schedule.NewStore(schedule.NewFileBlob(filepath.Join(t.TempDir(), "schedules.json")))
	return New(store, nil, nil)
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := doRequest(t, newTestServer(t), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestListSchedules(t *testing.T) {
	rec := doRequest(t, newTestServer(t), http.MethodGet, "/schedules", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []model.ScheduleEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	assert.Len(t, entries, 3)
}

func TestCreateSchedule(t *testing.T) {
	s := newTestServer(t)

	t.Run("valid draft returns 201 with the created record", func(t *testing.T) {
		body := `{"name":"리뷰 미팅","start_date":"2025-12-01","start_time":"10:00","due_date":"2025-12-01","due_time":"11:00"}`
		rec := doRequest(t, s, http.MethodPost, "/schedules", body)
		require.Equal(t, http.StatusCreated, rec.Code)

		var entry model.ScheduleEntry
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
		assert.Equal(t, 4, entry.ID)
		assert.Equal(t, "리뷰 미팅", entry.Name)
	})

	t.Run("missing name returns 422", func(t *testing.T) {
		body := `{"name":"","start_date":"2025-12-01","start_time":"10:00","due_date":"2025-12-01","due_time":"11:00"}`
		rec := doRequest(t, s, http.MethodPost, "/schedules", body)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, "/schedules", "{not json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateSchedule(t *testing.T) {
	s := newTestServer(t)

	t.Run("updates in place without reassigning the id", func(t *testing.T) {
		body := `{"name":"팀 회의 (이동)","start_date":"2025-11-10","start_time":"14:00","due_date":"2025-11-10","due_time":"15:00"}`
		rec := doRequest(t, s, http.MethodPut, "/schedules/2", body)
		require.Equal(t, http.StatusOK, rec.Code)

		var entry model.ScheduleEntry
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
		assert.Equal(t, 2, entry.ID)
		assert.Equal(t, "팀 회의 (이동)", entry.Name)
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		body := `{"name":"없음","start_date":"2025-11-10","start_time":"14:00","due_date":"2025-11-10","due_time":"15:00"}`
		rec := doRequest(t, s, http.MethodPut, "/schedules/99", body)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-numeric id returns 400", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPut, "/schedules/abc", "{}")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDeleteSchedule(t *testing.T) {
	s := newTestServer(t)

	t.Run("delete returns 204", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodDelete, "/schedules/1", "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("deleting an absent id is still 204 and leaves the rest", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodDelete, "/schedules/1", "")
		assert.Equal(t, http.StatusNoContent, rec.Code)

		list := doRequest(t, s, http.MethodGet, "/schedules", "")
		var entries []model.ScheduleEntry
		require.NoError(t, json.Unmarshal(list.Body.Bytes(), &entries))
		assert.Len(t, entries, 2)
	})
}

func TestListTasksWithoutRegistry(t *testing.T) {
	rec := doRequest(t, newTestServer(t), http.MethodGet, "/tasks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
