package scheduling

import (
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "3:04pm"
)

// AvailableDate lists the distinct start times offered on one calendar date.
type AvailableDate struct {
	Date  string   `json:"date"`
	Times []string `json:"times"`
}

// startTimeLayouts covers RFC 3339 and the offset-without-colon form the
// CRM emits (2024-01-01T09:00:00.000+0000).
var startTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02T15:04:05",
}

func ParseStartTime(s string) (time.Time, error) {
	var err error
	for _, layout := range startTimeLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// DeriveAvailableDates groups appointments by the calendar date of their
// start time in loc. Dates and times keep first-seen order and are never
// sorted. Appointments whose start time cannot be parsed are skipped and
// counted in the second return value.
func DeriveAvailableDates(appointments []Appointment, loc *time.Location) ([]AvailableDate, int) {
	if loc == nil {
		loc = time.UTC
	}

	out := []AvailableDate{}
	index := map[string]int{}
	seen := map[string]map[string]struct{}{}
	skipped := 0

	for _, ap := range appointments {
		start, err := ParseStartTime(ap.StartTime)
		if err != nil {
			skipped++
			continue
		}
		start = start.In(loc)

		date := start.Format(DateLayout)
		clock := start.Format(TimeLayout)

		i, ok := index[date]
		if !ok {
			index[date] = len(out)
			seen[date] = map[string]struct{}{clock: {}}
			out = append(out, AvailableDate{Date: date, Times: []string{clock}})
			continue
		}

		if _, dup := seen[date][clock]; dup {
			continue
		}
		seen[date][clock] = struct{}{}
		out[i].Times = append(out[i].Times, clock)
	}

	return out, skipped
}
