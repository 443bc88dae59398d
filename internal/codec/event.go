package codec

import (
	"fmt"
	"strings"
	"time"

	"qr-engine/internal/common/errors"
)

const icalUTC = "20060102T150405Z"

type eventFields struct {
	Title       string
	Start       time.Time
	End         *time.Time
	Location    *string
	Description *string
}

func parseEventTime(raw RawFields, key string) (*time.Time, error) {
	v, err := optionalString(raw, key)
	if err != nil || v == nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339, *v)
	if err != nil {
		return nil, errors.NewBadFormatError(key, fmt.Sprintf("%s must be an RFC 3339 timestamp", key))
	}
	utc := t.UTC().Truncate(time.Second)
	return &utc, nil
}

func validateEvent(raw RawFields) (eventFields, error) {
	title, err := requiredText(raw, "title", 255)
	if err != nil {
		return eventFields{}, err
	}

	start, err := parseEventTime(raw, "start")
	if err != nil {
		return eventFields{}, err
	}
	if start == nil {
		return eventFields{}, errors.NewMissingFieldError("start", "start is required")
	}

	end, err := parseEventTime(raw, "end")
	if err != nil {
		return eventFields{}, err
	}
	if end != nil && !end.After(*start) {
		return eventFields{}, errors.NewOutOfRangeError("end", "end must be after start")
	}

	location, err := optionalText(raw, "location", 255)
	if err != nil {
		return eventFields{}, err
	}
	description, err := optionalText(raw, "description", 1000)
	if err != nil {
		return eventFields{}, err
	}

	return eventFields{
		Title:       title,
		Start:       *start,
		End:         end,
		Location:    location,
		Description: description,
	}, nil
}

func buildEvent(f eventFields) Payload {
	lines := []string{
		"BEGIN:VEVENT",
		"SUMMARY:" + escapeText(f.Title),
		"DTSTART:" + f.Start.Format(icalUTC),
	}
	if f.End != nil {
		lines = append(lines, "DTEND:"+f.End.Format(icalUTC))
	}
	if f.Location != nil {
		lines = append(lines, "LOCATION:"+escapeText(*f.Location))
	}
	if f.Description != nil {
		lines = append(lines, "DESCRIPTION:"+escapeText(*f.Description))
	}
	lines = append(lines, "END:VEVENT")

	m := meta{
		"title": f.Title,
		"start": f.Start.Format(time.RFC3339),
	}
	if f.End != nil {
		m.set("end", f.End.Format(time.RFC3339))
	}
	m.str("location", f.Location).str("description", f.Description)
	return newPayload(TypeEvent, strings.Join(lines, "\r\n"), m)
}
