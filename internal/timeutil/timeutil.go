package timeutil

import (
	"time"

	"github.com/apache/arrow-go/v18/arrow"
)

// DaysSinceEpoch converts a calendar date to days since 1970-01-01, the
// representation used by arrow Date32 columns.
func DaysSinceEpoch(year int, month time.Month, day int) arrow.Date32 {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return arrow.Date32(t.Unix() / (24 * 60 * 60))
}

// Time converts a Date32 value back to a UTC time at midnight.
func Time(d arrow.Date32) time.Time {
	return time.Unix(int64(d)*24*60*60, 0).UTC()
}
