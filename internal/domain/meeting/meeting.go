package meeting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateTimeLayout is the accepted "<date> <time>" format.
const DateTimeLayout = "2006-01-02 15:04"

// DefaultDurationMinutes applies when a request omits the duration.
const DefaultDurationMinutes = 60

var (
	// ErrNotFound is returned for unknown meeting ids.
	ErrNotFound = errors.New("meeting not found")
	// ErrInvalidDateTime is returned when date/time strings cannot be parsed.
	ErrInvalidDateTime = errors.New("invalid date/time")
)

// ConflictError reports the existing meeting a request overlaps with.
type ConflictError struct {
	Existing Meeting
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicts with meeting %q at %s %s", e.Existing.Title, e.Existing.Date, e.Existing.Time)
}

// Request carries the fields of a new meeting.
type Request struct {
	Title           string
	Date            string
	Time            string
	DurationMinutes int
	Attendees       []string
	Location        string
	Description     string
}

// Patch holds optional changes applied by Update. Nil fields are left as is.
type Patch struct {
	Title           *string
	Date            *string
	Time            *string
	DurationMinutes *int
	// Attendees replaces the attendee list when non-nil; an empty list clears it.
	Attendees   *[]string
	Location    *string
	Description *string
}

// Meeting is a scheduled entry. Date and Time keep the caller's strings.
type Meeting struct {
	ID              string
	Title           string
	Date            string
	Time            string
	DurationMinutes int
	Attendees       []string
	Location        string
	Description     string
	Link            string
	CreatedAt       time.Time
}

// Start parses the meeting start in loc.
func (m Meeting) Start(loc *time.Location) (time.Time, error) {
	return ParseStart(m.Date, m.Time, loc)
}

// End is Start plus the duration.
func (m Meeting) End(loc *time.Location) (time.Time, error) {
	start, err := m.Start(loc)
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(time.Duration(m.DurationMinutes) * time.Minute), nil
}

// ListFilter narrows List results.
type ListFilter struct {
	// Date restricts results to one YYYY-MM-DD day when set.
	Date       string
	MaxResults int
}

// Availability is the answer of CheckAvailability.
type Availability struct {
	Available bool
	Conflict  *Meeting
}

// Scheduler is the meeting capability. The in-memory Store and the Google
// Calendar adapter are interchangeable implementations.
type Scheduler interface {
	Schedule(ctx context.Context, req Request) (*Meeting, error)
	List(ctx context.Context, filter ListFilter) ([]Meeting, error)
	Cancel(ctx context.Context, id string) (*Meeting, error)
	Update(ctx context.Context, id string, patch Patch) (*Meeting, error)
	CheckAvailability(ctx context.Context, date, clock string, durationMinutes int) (*Availability, error)
}

// ParseStart parses a date ("2006-01-02") and a 24-hour clock ("15:04").
func ParseStart(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateTimeLayout, strings.TrimSpace(date)+" "+strings.TrimSpace(clock), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidDateTime, err.Error())
	}
	return t, nil
}

// Overlaps reports whether [s1,e1) and [s2,e2) intersect. Adjacent intervals
// do not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// Unavailable is the Scheduler used when the configured backend could not be
// initialised. Every operation fails with Err.
type Unavailable struct {
	Err error
}

var _ Scheduler = Unavailable{}

func (u Unavailable) Schedule(context.Context, Request) (*Meeting, error) { return nil, u.Err }

func (u Unavailable) List(context.Context, ListFilter) ([]Meeting, error) { return nil, u.Err }

func (u Unavailable) Cancel(context.Context, string) (*Meeting, error) { return nil, u.Err }

func (u Unavailable) Update(context.Context, string, Patch) (*Meeting, error) { return nil, u.Err }

func (u Unavailable) CheckAvailability(context.Context, string, string, int) (*Availability, error) {
	return nil, u.Err
}
