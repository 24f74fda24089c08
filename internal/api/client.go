// Package api is the HTTP-backed schedule repository. It mirrors the local
// store's surface so the UI can run against a remote endpoint without the
// layout engine noticing the difference.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"focuscal/internal/model"
	"focuscal/internal/schedule"
)

// TransportError reports a failed exchange with the schedule API. The caller
// decides whether to retry; the client never retries on its own.
type TransportError struct {
	Op     string
	Status int // zero when the request never reached the server
	Detail string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: server returned %d: %s", e.Op, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Retryable reports whether repeating the same request could plausibly
// succeed. Validation rejections and not-found are not retryable.
func (e *TransportError) Retryable() bool {
	switch {
	case e.Status == 0:
		return true // network-level failure
	case e.Status >= 500:
		return true
	default:
		return false
	}
}

// Client talks to the schedule API.
type Client struct {
	base string
	hc   *http.Client
}

// NewClient builds a client for the given base URL, e.g. "http://127.0.0.1:8090".
func NewClient(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 10 * time.Second},
	}
}

// List fetches the whole collection.
func (c *Client) List() ([]model.ScheduleEntry, error) {
	var entries []model.ScheduleEntry
	if err := c.do("list schedules", http.MethodGet, "/schedules", nil, http.StatusOK, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Get fetches the collection and picks one entry; the API has no
// single-entry read.
func (c *Client) Get(id int) (model.ScheduleEntry, error) {
	entries, err := c.List()
	if err != nil {
		return model.ScheduleEntry{}, err
	}
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return model.ScheduleEntry{}, fmt.Errorf("get entry %d: %w", id, schedule.ErrNotFound)
}

// Add creates an entry; the server assigns the id.
func (c *Client) Add(draft model.EntryDraft) (model.ScheduleEntry, error) {
	if err := draft.Validate(); err != nil {
		return model.ScheduleEntry{}, err
	}
	var entry model.ScheduleEntry
	if err := c.do("create schedule", http.MethodPost, "/schedules", draft, http.StatusCreated, &entry); err != nil {
		return model.ScheduleEntry{}, err
	}
	return entry, nil
}

// Update replaces an entry's mutable fields in place.
func (c *Client) Update(id int, draft model.EntryDraft) (model.ScheduleEntry, error) {
	if err := draft.Validate(); err != nil {
		return model.ScheduleEntry{}, err
	}
	var entry model.ScheduleEntry
	err := c.do("update schedule", http.MethodPut, fmt.Sprintf("/schedules/%d", id), draft, http.StatusOK, &entry)
	if err != nil {
		var te *TransportError
		if errors.As(err, &te) && te.Status == http.StatusNotFound {
			return model.ScheduleEntry{}, fmt.Errorf("update entry %d: %w", id, schedule.ErrNotFound)
		}
		return model.ScheduleEntry{}, err
	}
	return entry, nil
}

// Remove deletes an entry. Unknown ids succeed, matching the local store.
func (c *Client) Remove(id int) error {
	return c.do("delete schedule", http.MethodDelete, fmt.Sprintf("/schedules/%d", id), nil, http.StatusNoContent, nil)
}

func (c *Client) do(op, method, path string, body any, wantStatus int, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Op: op, Err: err}
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.base+path, reqBody)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return &TransportError{Op: op, Status: resp.StatusCode, Detail: errorDetail(resp)}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}

func errorDetail(resp *http.Response) string {
	var er struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&er); err == nil && er.Detail != "" {
		return er.Detail
	}
	return http.StatusText(resp.StatusCode)
}
