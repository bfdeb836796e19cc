package tools

import (
	"context"
	"errors"
	"time"

	"github.com/janhq/jan-assistant/internal/domain/meeting"
	"github.com/janhq/jan-assistant/internal/domain/tool"
)

type scheduleMeetingArgs struct {
	Title           string   `json:"title" validate:"required"`
	Date            string   `json:"date" validate:"required"`
	Time            string   `json:"time" validate:"required"`
	DurationMinutes int      `json:"duration_minutes" validate:"gte=1"`
	Attendees       []string `json:"attendees"`
	Location        string   `json:"location"`
	Description     string   `json:"description"`
}

type listMeetingsArgs struct {
	Date       string `json:"date"`
	MaxResults int    `json:"max_results" validate:"gte=1"`
}

type meetingIDArgs struct {
	MeetingID tool.ID `json:"meeting_id" validate:"required"`
}

type updateMeetingArgs struct {
	MeetingID       tool.ID   `json:"meeting_id" validate:"required"`
	Title           *string   `json:"title"`
	Date            *string   `json:"date"`
	Time            *string   `json:"time"`
	DurationMinutes *int      `json:"duration_minutes" validate:"omitempty,gte=1"`
	Attendees       *[]string `json:"attendees"`
	Location        *string   `json:"location"`
	Description     *string   `json:"description"`
}

type availabilityArgs struct {
	Date            string `json:"date" validate:"required"`
	Time            string `json:"time" validate:"required"`
	DurationMinutes int    `json:"duration_minutes" validate:"gte=1"`
}

const defaultMaxMeetings = 10

// meetingOutcome turns user-input failures into ordinary result text so the
// model can relay them; anything else stays an error.
func meetingOutcome(id string, err error) (string, error) {
	var conflict *meeting.ConflictError
	switch {
	case errors.As(err, &conflict):
		return meeting.FormatConflict(conflict), nil
	case errors.Is(err, meeting.ErrInvalidDateTime):
		return meeting.FormatInvalidDateTime(err), nil
	case errors.Is(err, meeting.ErrNotFound):
		return meeting.FormatNotFound(id), nil
	}
	return "", err
}

func meetingTools(scheduler meeting.Scheduler, loc *time.Location) []binding {
	return []binding{
		{
			spec: tool.Spec{
				Name:        "schedule_meeting",
				Description: "Schedule a meeting on the calendar. Fails with a conflict message when the slot overlaps an existing meeting.",
				Action:      "scheduling meeting",
				Params: []tool.Param{
					{Name: "title", Type: tool.TypeString, Description: "Meeting title", Required: true},
					{Name: "date", Type: tool.TypeString, Description: "Meeting date (YYYY-MM-DD format)", Required: true},
					{Name: "time", Type: tool.TypeString, Description: "Meeting time (HH:MM 24-hour format)", Required: true},
					{Name: "duration_minutes", Type: tool.TypeInteger, Description: "Duration in minutes (default 60)", Default: meeting.DefaultDurationMinutes},
					{Name: "attendees", Type: tool.TypeArray, Items: tool.TypeString, Description: "List of attendee email addresses"},
					{Name: "location", Type: tool.TypeString, Description: "Meeting location"},
					{Name: "description", Type: tool.TypeString, Description: "Meeting description"},
				},
			},
			handler: bound(func(ctx context.Context, in scheduleMeetingArgs) (string, error) {
				m, err := scheduler.Schedule(ctx, meeting.Request{
					Title:           in.Title,
					Date:            in.Date,
					Time:            in.Time,
					DurationMinutes: in.DurationMinutes,
					Attendees:       in.Attendees,
					Location:        in.Location,
					Description:     in.Description,
				})
				if err != nil {
					return meetingOutcome("", err)
				}
				return meeting.FormatScheduled(*m, loc), nil
			}),
		},
		{
			spec: tool.Spec{
				Name:        "list_meetings",
				Description: "List scheduled meetings, optionally for one date.",
				Action:      "listing meetings",
				Params: []tool.Param{
					{Name: "date", Type: tool.TypeString, Description: "Optional date to filter (YYYY-MM-DD)"},
					{Name: "max_results", Type: tool.TypeInteger, Description: "Max number of meetings (default 10)", Default: defaultMaxMeetings},
				},
			},
			handler: bound(func(ctx context.Context, in listMeetingsArgs) (string, error) {
				meetings, err := scheduler.List(ctx, meeting.ListFilter{Date: in.Date, MaxResults: in.MaxResults})
				if err != nil {
					return meetingOutcome("", err)
				}
				return meeting.FormatList(meetings, in.Date), nil
			}),
		},
		{
			spec: tool.Spec{
				Name:        "cancel_meeting",
				Description: "Cancel a scheduled meeting by its ID.",
				Action:      "cancelling meeting",
				Params: []tool.Param{
					{Name: "meeting_id", Type: tool.TypeString, Description: "ID of the meeting to cancel", Required: true},
				},
			},
			handler: bound(func(ctx context.Context, in meetingIDArgs) (string, error) {
				m, err := scheduler.Cancel(ctx, in.MeetingID.String())
				if err != nil {
					return meetingOutcome(in.MeetingID.String(), err)
				}
				return meeting.FormatCancelled(*m), nil
			}),
		},
		{
			spec: tool.Spec{
				Name:        "update_meeting",
				Description: "Change the title, time, duration, attendees, location or description of a scheduled meeting.",
				Action:      "updating meeting",
				Params: []tool.Param{
					{Name: "meeting_id", Type: tool.TypeString, Description: "ID of the meeting to update", Required: true},
					{Name: "title", Type: tool.TypeString, Description: "New title"},
					{Name: "date", Type: tool.TypeString, Description: "New date (YYYY-MM-DD)"},
					{Name: "time", Type: tool.TypeString, Description: "New time (HH:MM 24-hour format)"},
					{Name: "duration_minutes", Type: tool.TypeInteger, Description: "New duration in minutes"},
					{Name: "attendees", Type: tool.TypeArray, Items: tool.TypeString, Description: "Replacement list of attendee email addresses"},
					{Name: "location", Type: tool.TypeString, Description: "New location"},
					{Name: "description", Type: tool.TypeString, Description: "New description"},
				},
			},
			handler: bound(func(ctx context.Context, in updateMeetingArgs) (string, error) {
				m, err := scheduler.Update(ctx, in.MeetingID.String(), meeting.Patch{
					Title:           in.Title,
					Date:            in.Date,
					Time:            in.Time,
					DurationMinutes: in.DurationMinutes,
					Attendees:       in.Attendees,
					Location:        in.Location,
					Description:     in.Description,
				})
				if err != nil {
					return meetingOutcome(in.MeetingID.String(), err)
				}
				return meeting.FormatUpdated(*m), nil
			}),
		},
		{
			spec: tool.Spec{
				Name:        "check_availability",
				Description: "Check whether a time slot is free.",
				Action:      "checking availability",
				Params: []tool.Param{
					{Name: "date", Type: tool.TypeString, Description: "Date (YYYY-MM-DD)", Required: true},
					{Name: "time", Type: tool.TypeString, Description: "Start time (HH:MM 24-hour format)", Required: true},
					{Name: "duration_minutes", Type: tool.TypeInteger, Description: "Duration in minutes (default 60)", Default: meeting.DefaultDurationMinutes},
				},
			},
			handler: bound(func(ctx context.Context, in availabilityArgs) (string, error) {
				avail, err := scheduler.CheckAvailability(ctx, in.Date, in.Time, in.DurationMinutes)
				if err != nil {
					return meetingOutcome("", err)
				}
				return meeting.FormatAvailability(*avail, in.Date, in.Time, in.DurationMinutes), nil
			}),
		},
	}
}
