package normalize

import (
	"strconv"
	"strings"
	"time"
)

// dateLayouts covers the formats seen across sheet revisions. First match
// wins; anything else is a null date.
var dateLayouts = []string{
	"2006-01-02",
	"02-Jan-2006",
	"2-Jan-2006",
	"01/02/2006",
	"1/2/2006",
	"2006-01-02 15:04:05",
	"02-01-2006",
}

func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}
	return nil
}

// parseElapsed interprets an elapsed-time literal like "01:23:45" or
// "0:07:30.50". Unparseable text becomes null and is excluded from averages.
func parseElapsed(s string) *time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return nil
	}

	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hours < 0 {
		return nil
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || minutes < 0 || minutes > 59 {
		return nil
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil || seconds < 0 || seconds >= 60 {
		return nil
	}

	d := time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds*float64(time.Second))
	return &d
}

// parseMoney coerces a cell to integer currency. Ambiguous amounts count as
// zero rather than being excluded, so sums stay well-defined downstream.
func parseMoney(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "Rs")
	s = strings.TrimPrefix(s, "PKR")
	s = strings.TrimSpace(s)

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int64(f)
}

// parseClock12 parses a strict 12-hour "HH:MM:SS AM/PM" invoice time and
// derives the 0-23 hour. Null propagates to the derived hour.
func parseClock12(s string) (*time.Time, *int) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("03:04:05 PM", strings.ToUpper(s))
	if err != nil {
		return nil, nil
	}
	hour := t.Hour()
	return &t, &hour
}
