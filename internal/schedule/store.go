// Package schedule owns the canonical schedule collection: CRUD, validation
// and durable persistence. The whole collection is the unit of persistence;
// every mutation rewrites the persisted blob, and the blob is reloaded
// verbatim on the next startup.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"focuscal/internal/model"
)

// ErrNotFound is returned by Update and Get when no entry has the given id.
var ErrNotFound = errors.New("schedule entry not found")

// Persister loads and saves the serialized collection. Load returning
// (nil, nil) means "no data yet"; any error is treated the same way by the
// store, which falls back to the seed defaults.
type Persister interface {
	Load() ([]model.ScheduleEntry, error)
	Save(entries []model.ScheduleEntry) error
}

// Store is the single source of truth for schedule entries. It is not safe
// for concurrent use; the UI drives it from a single goroutine.
type Store struct {
	persister Persister
	entries   []model.ScheduleEntry
	now       func() time.Time
	log       *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock injects the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger attaches a logger for load-failure diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) { s.log = log }
}

// NewStore builds a store over the given persister. A missing or unreadable
// persisted collection never fails construction: the store seeds the
// documented default entries instead.
func NewStore(p Persister, opts ...Option) *Store {
	s := &Store{
		persister: p,
		now:       time.Now,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	entries, err := p.Load()
	if err != nil {
		s.log.Warn("persisted schedules unreadable, seeding defaults", zap.Error(err))
		entries = nil
	}
	if entries == nil {
		entries = SeedEntries()
	}
	s.entries = entries
	return s
}

// List returns a copy of the collection in insertion order.
func (s *Store) List() ([]model.ScheduleEntry, error) {
	out := make([]model.ScheduleEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// Get returns the entry with the given id.
func (s *Store) Get(id int) (model.ScheduleEntry, error) {
	for _, e := range s.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return model.ScheduleEntry{}, fmt.Errorf("get entry %d: %w", id, ErrNotFound)
}

// Add validates the draft, assigns the next id (max existing + 1, or 1 on an
// empty collection), stamps created_at with today's date, appends the entry
// and persists the whole collection. A failed persist rolls the append back
// so the in-memory state never diverges from what a restart would load.
func (s *Store) Add(draft model.EntryDraft) (model.ScheduleEntry, error) {
	if err := draft.Validate(); err != nil {
		return model.ScheduleEntry{}, err
	}

	maxID := 0
	for _, e := range s.entries {
		if e.ID > maxID {
			maxID = e.ID
		}
	}

	entry := model.ScheduleEntry{
		ID:          maxID + 1,
		Name:        draft.Name,
		Description: draft.Description,
		TaskID:      draft.TaskID,
		CreatedAt:   model.DateString(s.now()),
		StartDate:   draft.StartDate,
		StartTime:   draft.StartTime,
		DueDate:     draft.DueDate,
		DueTime:     draft.DueTime,
	}

	s.entries = append(s.entries, entry)
	if err := s.persist(); err != nil {
		s.entries = s.entries[:len(s.entries)-1]
		return model.ScheduleEntry{}, err
	}
	return entry, nil
}

// Update replaces the mutable fields of the entry with the given id, keeping
// its id and created_at. Editing never reassigns ids, so references held
// elsewhere stay valid. Unknown ids are an explicit error.
func (s *Store) Update(id int, draft model.EntryDraft) (model.ScheduleEntry, error) {
	if err := draft.Validate(); err != nil {
		return model.ScheduleEntry{}, err
	}

	for i, e := range s.entries {
		if e.ID != id {
			continue
		}
		updated := e
		updated.Name = draft.Name
		updated.Description = draft.Description
		updated.TaskID = draft.TaskID
		updated.StartDate = draft.StartDate
		updated.StartTime = draft.StartTime
		updated.DueDate = draft.DueDate
		updated.DueTime = draft.DueTime

		s.entries[i] = updated
		if err := s.persist(); err != nil {
			s.entries[i] = e
			return model.ScheduleEntry{}, err
		}
		return updated, nil
	}
	return model.ScheduleEntry{}, fmt.Errorf("update entry %d: %w", id, ErrNotFound)
}

// Remove deletes the entry with the given id. Removing an id that is not
// present is a benign no-op, so calling Remove twice is safe.
func (s *Store) Remove(id int) error {
	idx := -1
	for i, e := range s.entries {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	removed := s.entries[idx]
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	if err := s.persist(); err != nil {
		s.entries = append(s.entries[:idx], append([]model.ScheduleEntry{removed}, s.entries[idx:]...)...)
		return err
	}
	return nil
}

func (s *Store) persist() error {
	if err := s.persister.Save(s.entries); err != nil {
		return fmt.Errorf("persist schedules: %w", err)
	}
	return nil
}
