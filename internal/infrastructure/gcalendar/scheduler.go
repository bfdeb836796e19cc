package gcalendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"

	"github.com/janhq/jan-assistant/internal/domain/meeting"
	"github.com/janhq/jan-assistant/internal/infrastructure/metrics"
)

const defaultListResults = 10

// Scheduler implements meeting.Scheduler on a Google Calendar. Scheduling
// does not check for conflicts locally; the calendar accepts overlaps.
type Scheduler struct {
	svc        *calendar.Service
	calendarID string
	loc        *time.Location
	now        func() time.Time
}

var _ meeting.Scheduler = (*Scheduler)(nil)

// NewScheduler wraps a calendar service. loc is used to render and parse
// the "YYYY-MM-DD" / "HH:MM" strings exchanged with the tools.
func NewScheduler(svc *calendar.Service, calendarID string, loc *time.Location) *Scheduler {
	if calendarID == "" {
		calendarID = "primary"
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{svc: svc, calendarID: calendarID, loc: loc, now: time.Now}
}

// Schedule inserts an event.
func (s *Scheduler) Schedule(ctx context.Context, req meeting.Request) (_ *meeting.Meeting, err error) {
	defer s.observe("schedule", &err)

	if req.DurationMinutes <= 0 {
		req.DurationMinutes = meeting.DefaultDurationMinutes
	}
	start, err := meeting.ParseStart(req.Date, req.Time, s.loc)
	if err != nil {
		return nil, err
	}
	end := start.Add(time.Duration(req.DurationMinutes) * time.Minute)

	event := &calendar.Event{
		Summary:     req.Title,
		Location:    req.Location,
		Description: req.Description,
		Start:       s.eventTime(start),
		End:         s.eventTime(end),
		Attendees:   attendeeList(req.Attendees),
	}

	created, err := s.svc.Events.Insert(s.calendarID, event).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("insert calendar event: %w", err)
	}
	return s.toMeeting(created), nil
}

// List returns events of one day when filter.Date is set, upcoming events otherwise.
func (s *Scheduler) List(ctx context.Context, filter meeting.ListFilter) (_ []meeting.Meeting, err error) {
	defer s.observe("list", &err)

	maxResults := filter.MaxResults
	if maxResults <= 0 {
		maxResults = defaultListResults
	}
	call := s.svc.Events.List(s.calendarID).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(int64(maxResults)).
		Context(ctx)

	if filter.Date != "" {
		day, err := meeting.ParseStart(filter.Date, "00:00", s.loc)
		if err != nil {
			return nil, err
		}
		call = call.TimeMin(day.Format(time.RFC3339)).TimeMax(day.AddDate(0, 0, 1).Format(time.RFC3339))
	} else {
		call = call.TimeMin(s.now().In(s.loc).Format(time.RFC3339))
	}

	events, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}
	out := make([]meeting.Meeting, 0, len(events.Items))
	for _, ev := range events.Items {
		if ev.Status == "cancelled" {
			continue
		}
		out = append(out, *s.toMeeting(ev))
	}
	return out, nil
}

// Cancel deletes an event and returns what was removed.
func (s *Scheduler) Cancel(ctx context.Context, id string) (_ *meeting.Meeting, err error) {
	defer s.observe("cancel", &err)

	ev, err := s.svc.Events.Get(s.calendarID, id).Context(ctx).Do()
	if err != nil {
		return nil, s.mapError(id, err)
	}
	if err := s.svc.Events.Delete(s.calendarID, id).Context(ctx).Do(); err != nil {
		return nil, s.mapError(id, err)
	}
	return s.toMeeting(ev), nil
}

// Update applies patch to an existing event.
func (s *Scheduler) Update(ctx context.Context, id string, patch meeting.Patch) (_ *meeting.Meeting, err error) {
	defer s.observe("update", &err)

	ev, err := s.svc.Events.Get(s.calendarID, id).Context(ctx).Do()
	if err != nil {
		return nil, s.mapError(id, err)
	}
	current := s.toMeeting(ev)

	if patch.Title != nil {
		ev.Summary = *patch.Title
	}
	if patch.Location != nil {
		ev.Location = *patch.Location
	}
	if patch.Description != nil {
		ev.Description = *patch.Description
	}
	if patch.Attendees != nil {
		ev.Attendees = attendeeList(*patch.Attendees)
	}
	if patch.Date != nil || patch.Time != nil || patch.DurationMinutes != nil {
		date, clock, duration := current.Date, current.Time, current.DurationMinutes
		if patch.Date != nil {
			date = *patch.Date
		}
		if patch.Time != nil {
			clock = *patch.Time
		}
		if patch.DurationMinutes != nil && *patch.DurationMinutes > 0 {
			duration = *patch.DurationMinutes
		}
		start, err := meeting.ParseStart(date, clock, s.loc)
		if err != nil {
			return nil, err
		}
		ev.Start = s.eventTime(start)
		ev.End = s.eventTime(start.Add(time.Duration(duration) * time.Minute))
	}

	updated, err := s.svc.Events.Update(s.calendarID, id, ev).Context(ctx).Do()
	if err != nil {
		return nil, s.mapError(id, err)
	}
	return s.toMeeting(updated), nil
}

// CheckAvailability lists the events intersecting the requested window.
func (s *Scheduler) CheckAvailability(ctx context.Context, date, clock string, durationMinutes int) (_ *meeting.Availability, err error) {
	defer s.observe("availability", &err)

	if durationMinutes <= 0 {
		durationMinutes = meeting.DefaultDurationMinutes
	}
	start, err := meeting.ParseStart(date, clock, s.loc)
	if err != nil {
		return nil, err
	}
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	events, err := s.svc.Events.List(s.calendarID).
		SingleEvents(true).
		OrderBy("startTime").
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}
	for _, ev := range events.Items {
		if ev.Status == "cancelled" || ev.Transparency == "transparent" {
			continue
		}
		return &meeting.Availability{Available: false, Conflict: s.toMeeting(ev)}, nil
	}
	return &meeting.Availability{Available: true}, nil
}

func (s *Scheduler) eventTime(t time.Time) *calendar.EventDateTime {
	return &calendar.EventDateTime{DateTime: t.Format(time.RFC3339), TimeZone: s.loc.String()}
}

func attendeeList(addrs []string) []*calendar.EventAttendee {
	var out []*calendar.EventAttendee
	for _, addr := range addrs {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, &calendar.EventAttendee{Email: addr})
		}
	}
	return out
}

func (s *Scheduler) toMeeting(ev *calendar.Event) *meeting.Meeting {
	m := &meeting.Meeting{
		ID:          ev.Id,
		Title:       ev.Summary,
		Location:    ev.Location,
		Description: ev.Description,
		Link:        ev.HtmlLink,
	}
	for _, a := range ev.Attendees {
		m.Attendees = append(m.Attendees, a.Email)
	}
	if created, err := time.Parse(time.RFC3339, ev.Created); err == nil {
		m.CreatedAt = created
	}

	start, startOK := s.parseEventTime(ev.Start)
	end, endOK := s.parseEventTime(ev.End)
	if startOK {
		m.Date = start.Format("2006-01-02")
		m.Time = start.Format("15:04")
	}
	if startOK && endOK && end.After(start) {
		m.DurationMinutes = int(end.Sub(start) / time.Minute)
	}
	return m
}

// parseEventTime handles timed events and all-day events (date only).
func (s *Scheduler) parseEventTime(dt *calendar.EventDateTime) (time.Time, bool) {
	if dt == nil {
		return time.Time{}, false
	}
	if dt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, dt.DateTime)
		if err != nil {
			return time.Time{}, false
		}
		return t.In(s.loc), true
	}
	if dt.Date != "" {
		t, err := time.ParseInLocation("2006-01-02", dt.Date, s.loc)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

func (s *Scheduler) mapError(id string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && (apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone) {
		return fmt.Errorf("%w: %s", meeting.ErrNotFound, id)
	}
	return fmt.Errorf("calendar event %s: %w", id, err)
}

func (s *Scheduler) observe(operation string, errp *error) {
	status := "success"
	if *errp != nil {
		status = "error"
	}
	metrics.RecordProviderRequest("calendar_"+operation, "google", status)
}
