package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/amonks/taskmaster/internal/dates"
	"github.com/amonks/taskmaster/task"
)

const (
	icsProdID    = "-//taskmaster//EN"
	icsUIDDomain = "taskmaster"

	// UTC timestamp in iCalendar basic format.
	icsStampLayout = "20060102T150405Z"
)

// ExportICS serializes every task with a resolvable date to an iCalendar
// document, one VEVENT per task. Lines are CRLF-terminated per RFC 5545.
//
// The event start is the task's start date, falling back to its due date;
// the event end is the due date, falling back to the start. When both
// resolved values are date-only the event is all-day and the serialized end
// is one day after the due date, since an all-day DTEND is exclusive. When
// either value carries a time component both are emitted as UTC instants.
// Tasks with neither date are skipped.
func ExportICS(tasks []task.Task, now time.Time) []byte {
	var b strings.Builder
	writeLine(&b, "BEGIN:VCALENDAR")
	writeLine(&b, "VERSION:2.0")
	writeLine(&b, "PRODID:"+icsProdID)
	writeLine(&b, "CALSCALE:GREGORIAN")

	stamp := now.UTC().Format(icsStampLayout)
	for _, t := range tasks {
		writeEvent(&b, t, stamp)
	}

	writeLine(&b, "END:VCALENDAR")
	return []byte(b.String())
}

// ExportFilename is the download name for an export taken at the given time.
func ExportFilename(now time.Time) string {
	return "tasks-" + dates.Format(now) + ".ics"
}

func writeEvent(b *strings.Builder, t task.Task, stamp string) {
	start := t.StartDate
	if start == "" {
		start = t.DueDate
	}
	end := t.DueDate
	if end == "" {
		end = t.StartDate
	}
	if start == "" {
		return
	}

	// Resolve both boundary lines before emitting anything: a date that
	// doesn't parse skips the whole task rather than leaving a VEVENT with
	// no DTSTART.
	var dtStart, dtEnd string
	if !dates.HasTime(start) && !dates.HasTime(end) {
		if _, err := dates.Parse(start); err != nil {
			return
		}
		// Exclusive end: the day after the last included day.
		endDay, err := dates.Parse(end)
		if err != nil {
			endDay, err = dates.Parse(start)
		}
		if err != nil {
			return
		}
		dtStart = "DTSTART;VALUE=DATE:" + icsDate(start)
		dtEnd = "DTEND;VALUE=DATE:" + icsDate(dates.Format(dates.AddDays(endDay, 1)))
	} else {
		startInstant, ok := icsInstant(start)
		if !ok {
			return
		}
		endInstant, ok := icsInstant(end)
		if !ok {
			endInstant = startInstant
		}
		dtStart = "DTSTART:" + startInstant
		dtEnd = "DTEND:" + endInstant
	}

	writeLine(b, "BEGIN:VEVENT")
	writeLine(b, fmt.Sprintf("UID:%d@%s", t.ID, icsUIDDomain))
	writeLine(b, "DTSTAMP:"+stamp)
	writeLine(b, dtStart)
	writeLine(b, dtEnd)

	summary := t.Name
	if summary == "" {
		summary = "Task"
	}
	writeLine(b, "SUMMARY:"+escapeText(summary))

	var desc []string
	if t.Status != "" {
		desc = append(desc, "Status: "+string(t.Status))
	}
	if t.StartDate != "" {
		desc = append(desc, "Start: "+t.StartDate)
	}
	if t.DueDate != "" {
		desc = append(desc, "Due: "+t.DueDate)
	}
	if t.Details != "" {
		desc = append(desc, t.Details)
	}
	if len(desc) > 0 {
		writeLine(b, "DESCRIPTION:"+escapeText(strings.Join(desc, "\n")))
	}

	writeLine(b, "END:VEVENT")
}

// icsDate renders a YYYY-MM-DD value as an iCalendar DATE (YYYYMMDD).
func icsDate(value string) string {
	return strings.ReplaceAll(value, "-", "")
}

// icsInstant renders a value with a time component as a UTC DATE-TIME. A
// date-only value paired with a timestamped one resolves to its midnight.
func icsInstant(value string) (string, bool) {
	if !dates.HasTime(value) {
		day, err := dates.Parse(value)
		if err != nil {
			return "", false
		}
		return day.UTC().Format(icsStampLayout), true
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return "", false
	}
	return parsed.UTC().Format(icsStampLayout), true
}

// escapeText escapes reserved characters in iCalendar TEXT values.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	return s
}

func writeLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteString("\r\n")
}
