package meeting

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"
)

// Store is the in-memory Scheduler. Conflicts are found with a linear scan.
type Store struct {
	mu       sync.Mutex
	meetings []Meeting
	nextID   int
	loc      *time.Location
	now      func() time.Time
}

var _ Scheduler = (*Store)(nil)

// NewStore creates an empty store interpreting times in loc (UTC when nil).
func NewStore(loc *time.Location) *Store {
	if loc == nil {
		loc = time.UTC
	}
	return &Store{nextID: 1, loc: loc, now: time.Now}
}

// Schedule adds a meeting unless it overlaps an existing one.
func (s *Store) Schedule(_ context.Context, req Request) (*Meeting, error) {
	if req.DurationMinutes <= 0 {
		req.DurationMinutes = DefaultDurationMinutes
	}
	start, err := ParseStart(req.Date, req.Time, s.loc)
	if err != nil {
		return nil, err
	}
	end := start.Add(time.Duration(req.DurationMinutes) * time.Minute)

	s.mu.Lock()
	defer s.mu.Unlock()

	if conflict := s.findConflict(start, end, ""); conflict != nil {
		return nil, &ConflictError{Existing: *conflict}
	}

	m := Meeting{
		ID:              strconv.Itoa(s.nextID),
		Title:           req.Title,
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: req.DurationMinutes,
		Attendees:       append([]string(nil), req.Attendees...),
		Location:        req.Location,
		Description:     req.Description,
		CreatedAt:       s.now(),
	}
	s.nextID++
	s.meetings = append(s.meetings, m)
	return &m, nil
}

// List returns meetings sorted by start time, optionally for a single date.
func (s *Store) List(_ context.Context, filter ListFilter) ([]Meeting, error) {
	s.mu.Lock()
	out := make([]Meeting, 0, len(s.meetings))
	for _, m := range s.meetings {
		if filter.Date != "" && m.Date != filter.Date {
			continue
		}
		out = append(out, m)
	}
	s.mu.Unlock()

	sortByStart(out, s.loc)
	if filter.MaxResults > 0 && len(out) > filter.MaxResults {
		out = out[:filter.MaxResults]
	}
	return out, nil
}

// Cancel removes a meeting by id.
func (s *Store) Cancel(_ context.Context, id string) (*Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, m := range s.meetings {
		if m.ID == id {
			s.meetings = append(s.meetings[:i], s.meetings[i+1:]...)
			return &m, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Update applies patch to a meeting, re-checking conflicts against the others.
func (s *Store) Update(_ context.Context, id string, patch Patch) (*Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, m := range s.meetings {
		if m.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	updated := applyPatch(s.meetings[idx], patch)
	start, err := updated.Start(s.loc)
	if err != nil {
		return nil, err
	}
	end := start.Add(time.Duration(updated.DurationMinutes) * time.Minute)
	if conflict := s.findConflict(start, end, id); conflict != nil {
		return nil, &ConflictError{Existing: *conflict}
	}
	s.meetings[idx] = updated
	return &updated, nil
}

// CheckAvailability reports whether the slot overlaps any stored meeting.
func (s *Store) CheckAvailability(_ context.Context, date, clock string, durationMinutes int) (*Availability, error) {
	if durationMinutes <= 0 {
		durationMinutes = DefaultDurationMinutes
	}
	start, err := ParseStart(date, clock, s.loc)
	if err != nil {
		return nil, err
	}
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	s.mu.Lock()
	defer s.mu.Unlock()
	if conflict := s.findConflict(start, end, ""); conflict != nil {
		return &Availability{Available: false, Conflict: conflict}, nil
	}
	return &Availability{Available: true}, nil
}

// Len returns the number of stored meetings.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.meetings)
}

// findConflict scans in insertion order; callers hold s.mu.
func (s *Store) findConflict(start, end time.Time, skipID string) *Meeting {
	for i := range s.meetings {
		m := s.meetings[i]
		if m.ID == skipID {
			continue
		}
		existingStart, err := m.Start(s.loc)
		if err != nil {
			continue
		}
		existingEnd := existingStart.Add(time.Duration(m.DurationMinutes) * time.Minute)
		if Overlaps(start, end, existingStart, existingEnd) {
			return &m
		}
	}
	return nil
}

func applyPatch(m Meeting, patch Patch) Meeting {
	if patch.Title != nil {
		m.Title = *patch.Title
	}
	if patch.Date != nil {
		m.Date = *patch.Date
	}
	if patch.Time != nil {
		m.Time = *patch.Time
	}
	if patch.DurationMinutes != nil && *patch.DurationMinutes > 0 {
		m.DurationMinutes = *patch.DurationMinutes
	}
	if patch.Location != nil {
		m.Location = *patch.Location
	}
	if patch.Description != nil {
		m.Description = *patch.Description
	}
	if patch.Attendees != nil {
		m.Attendees = append([]string(nil), (*patch.Attendees)...)
	} else {
		m.Attendees = append([]string(nil), m.Attendees...)
	}
	return m
}

// sortByStart orders meetings by (date, time) ascending, keeping insertion
// order for equal starts.
func sortByStart(meetings []Meeting, loc *time.Location) {
	starts := make(map[string]time.Time, len(meetings))
	for _, m := range meetings {
		start, _ := m.Start(loc)
		starts[m.ID] = start
	}
	sort.SliceStable(meetings, func(i, j int) bool {
		return starts[meetings[i].ID].Before(starts[meetings[j].ID])
	})
}
