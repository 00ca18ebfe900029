package entries

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseTimestamp reads an entry time typed as HHMM or DDHHMM.
// Shorter input is left-padded with zeros. When the day is omitted or 00 it
// is taken from lastDay, or the 1st when lastDay is 0. The date is placed in the
// given year and month; a day past the end of the month rolls into the next.
func ParseTimestamp(text string, lastDay, year int, month time.Month, loc *time.Location) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, invalid(MissingField, "timestamp is required")
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return time.Time{}, invalid(InvalidTimestamp, fmt.Sprintf("%q is not DDHHMM or HHMM", text))
		}
	}

	if len(text) > 6 {
		return time.Time{}, invalid(InvalidTimestamp, fmt.Sprintf("%q is longer than DDHHMM", text))
	}
	text = pad(text, 6)
	day, _ := strconv.Atoi(text[0:2])
	hour, _ := strconv.Atoi(text[2:4])
	minute, _ := strconv.Atoi(text[4:6])

	// HHMM pads to day 00, which means the day was left out
	if day == 0 {
		day = lastDay
		if day == 0 {
			day = 1
		}
	}

	if day < 1 || day > 31 {
		return time.Time{}, invalid(InvalidTimestamp, fmt.Sprintf("day %d out of range", day))
	}
	if hour >= 24 {
		return time.Time{}, invalid(InvalidTimestamp, fmt.Sprintf("hour %d out of range", hour))
	}
	if minute >= 60 {
		return time.Time{}, invalid(InvalidTimestamp, fmt.Sprintf("minute %d out of range", minute))
	}

	if loc == nil {
		loc = time.Local
	}
	return time.Date(year, month, day, hour, minute, 0, 0, loc), nil
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// FormatTimestamp renders a record time for lists, e.g. "5 09:07"
func FormatTimestamp(t time.Time) string {
	return fmt.Sprintf("%d %02d:%02d", t.Day(), t.Hour(), t.Minute())
}

// FormatForInput renders a record time in the form ParseTimestamp accepts, e.g. "50907"
func FormatForInput(t time.Time) string {
	return fmt.Sprintf("%d%02d%02d", t.Day(), t.Hour(), t.Minute())
}
