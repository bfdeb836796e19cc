package meeting

import (
	"fmt"
	"strings"
	"time"
)

// FormatScheduled renders the confirmation for a newly scheduled meeting.
func FormatScheduled(m Meeting, loc *time.Location) string {
	var sb strings.Builder
	sb.WriteString("Meeting scheduled successfully!\n\n")
	if m.ID != "" {
		fmt.Fprintf(&sb, "ID: %s\n", m.ID)
	}
	fmt.Fprintf(&sb, "Title: %s\n", m.Title)
	fmt.Fprintf(&sb, "Date: %s\n", m.Date)
	fmt.Fprintf(&sb, "Time: %s\n", m.Time)
	fmt.Fprintf(&sb, "Duration: %d minutes\n", m.DurationMinutes)
	if end, err := m.End(loc); err == nil {
		fmt.Fprintf(&sb, "End Time: %s\n", end.Format("15:04"))
	}
	writeOptional(&sb, m)
	return sb.String()
}

// FormatList renders a listing. date is the filter that produced meetings.
func FormatList(meetings []Meeting, date string) string {
	if len(meetings) == 0 {
		if date != "" {
			return fmt.Sprintf("No meetings scheduled for %s.", date)
		}
		return "No meetings scheduled."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d meeting(s):\n\n", len(meetings))
	for _, m := range meetings {
		fmt.Fprintf(&sb, "ID: %s\n", m.ID)
		fmt.Fprintf(&sb, "Title: %s\n", m.Title)
		fmt.Fprintf(&sb, "Date: %s\n", m.Date)
		fmt.Fprintf(&sb, "Time: %s\n", m.Time)
		fmt.Fprintf(&sb, "Duration: %d minutes\n", m.DurationMinutes)
		writeOptional(&sb, m)
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatCancelled renders the cancellation confirmation.
func FormatCancelled(m Meeting) string {
	return fmt.Sprintf("Meeting '%s' scheduled for %s %s has been cancelled.", m.Title, m.Date, m.Time)
}

// FormatUpdated renders the update confirmation.
func FormatUpdated(m Meeting) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Meeting %s updated.\n\n", m.ID)
	fmt.Fprintf(&sb, "Title: %s\n", m.Title)
	fmt.Fprintf(&sb, "Date: %s\n", m.Date)
	fmt.Fprintf(&sb, "Time: %s\n", m.Time)
	fmt.Fprintf(&sb, "Duration: %d minutes\n", m.DurationMinutes)
	writeOptional(&sb, m)
	return sb.String()
}

// FormatNotFound renders the unknown id message.
func FormatNotFound(id string) string {
	return fmt.Sprintf("Meeting with ID %s not found.", id)
}

// FormatConflict renders a scheduling conflict.
func FormatConflict(c *ConflictError) string {
	return fmt.Sprintf("Conflict detected! Meeting '%s' is already scheduled at %s %s", c.Existing.Title, c.Existing.Date, c.Existing.Time)
}

// FormatAvailability renders the availability answer.
func FormatAvailability(a Availability, date, clock string, durationMinutes int) string {
	if a.Available || a.Conflict == nil {
		return fmt.Sprintf("Time slot is available on %s at %s for %d minutes.", date, clock, durationMinutes)
	}
	return fmt.Sprintf("Time slot is NOT available. Conflicts with meeting '%s' at %s", a.Conflict.Title, a.Conflict.Time)
}

// FormatInvalidDateTime renders a date/time parse failure.
func FormatInvalidDateTime(err error) string {
	return fmt.Sprintf("Error parsing date/time: %s. Please use YYYY-MM-DD format for date and HH:MM format for time.", err.Error())
}

func writeOptional(sb *strings.Builder, m Meeting) {
	if len(m.Attendees) > 0 {
		fmt.Fprintf(sb, "Attendees: %s\n", strings.Join(m.Attendees, ", "))
	}
	if m.Location != "" {
		fmt.Fprintf(sb, "Location: %s\n", m.Location)
	}
	if m.Description != "" {
		fmt.Fprintf(sb, "Description: %s\n", m.Description)
	}
	if m.Link != "" {
		fmt.Fprintf(sb, "Link: %s\n", m.Link)
	}
}
