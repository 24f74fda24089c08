// Package server exposes the schedule collection and task registry over
// HTTP, so the dashboard can run against a real endpoint instead of local
// persistence.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"focuscal/internal/model"
	"focuscal/internal/schedule"
	"focuscal/internal/task"
)

// Server wires the stores into an http.Handler.
type Server struct {
	store *schedule.Store
	tasks *task.Store
	log   *zap.Logger
	mux   *http.ServeMux
}

// New constructs a Server. tasks may be nil, in which case /tasks serves an
// empty list.
func New(store *schedule.Store, tasks *task.Store, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		store: store,
		tasks: tasks,
		log:   log,
		mux:   http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /schedules", s.handleListSchedules)
	s.mux.HandleFunc("POST /schedules", s.handleCreateSchedule)
	s.mux.HandleFunc("PUT /schedules/{id}", s.handleUpdateSchedule)
	s.mux.HandleFunc("DELETE /schedules/{id}", s.handleDeleteSchedule)
	s.mux.HandleFunc("GET /tasks", s.handleListTasks)
}

// Handler returns the root handler with request logging attached.
func (s *Server) Handler() http.Handler {
	return s.logMiddleware(s.mux)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleListSchedules(w http.ResponseWriter, _ *http.Request) {
	entries, err := s.store.List()
	if err != nil {
		s.log.Error("list schedules failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list schedules")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleCreateSchedule(w http.ResponseWriter, r *http.Request) {
	var draft model.EntryDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	entry, err := s.store.Add(draft)
	if err != nil {
		if errors.Is(err, model.ErrInvalidDraft) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.log.Error("create schedule failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create schedule")
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleUpdateSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var draft model.EntryDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	entry, err := s.store.Update(id, draft)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrNotFound):
			writeError(w, http.StatusNotFound, "schedule not found")
		case errors.Is(err, model.ErrInvalidDraft):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			s.log.Error("update schedule failed", zap.Int("id", id), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to update schedule")
		}
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleDeleteSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.Remove(id); err != nil {
		s.log.Error("delete schedule failed", zap.Int("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to delete schedule")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type taskDTO struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	DueDate     *string `json:"due_date,omitempty"`
}

func (s *Server) handleListTasks(w http.ResponseWriter, _ *http.Request) {
	if s.tasks == nil {
		writeJSON(w, http.StatusOK, []taskDTO{})
		return
	}
	tasks, err := s.tasks.List()
	if err != nil {
		s.log.Error("list tasks failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}
	dtos := make([]taskDTO, 0, len(tasks))
	for _, t := range tasks {
		dtos = append(dtos, taskDTO{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Status:      t.Status,
			CreatedAt:   t.CreatedAt.Format("2006-01-02 15:04:05"),
			DueDate:     t.DueDate,
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid schedule id")
		return 0, false
	}
	return id, true
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
