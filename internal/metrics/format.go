package metrics

import (
	"fmt"
	"time"

	"github.com/arbazmubasher1/RidersDashboard/internal/models"
)

// FormatElapsed renders a duration as zero-padded HH:MM:SS. The earlier
// sheet revision kept two decimal places of sub-second precision; that stays
// available as a formatting option, not a contract difference.
func FormatElapsed(d time.Duration, subsecond bool) string {
	if d < 0 {
		d = 0
	}
	totalSeconds := d.Seconds()
	hours := int(totalSeconds) / 3600
	minutes := (int(totalSeconds) % 3600) / 60

	if subsecond {
		seconds := totalSeconds - float64(hours*3600+minutes*60)
		return fmt.Sprintf("%02d:%02d:%05.2f", hours, minutes, seconds)
	}
	seconds := int(totalSeconds) % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// averageElapsed is the arithmetic mean over non-null values of one duration
// field, formatted. A column with zero non-null entries renders as the zero
// string, never an error.
func averageElapsed(records []models.OrderRecord, pick func(models.OrderRecord) *time.Duration, subsecond bool) string {
	var sum time.Duration
	var n int
	for _, rec := range records {
		if d := pick(rec); d != nil {
			sum += *d
			n++
		}
	}
	if n == 0 {
		return FormatElapsed(0, subsecond)
	}
	return FormatElapsed(sum/time.Duration(n), subsecond)
}
