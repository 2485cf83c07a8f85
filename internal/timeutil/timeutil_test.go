package timeutil

import (
	"testing"
	"time"
)

func TestDaysSinceEpoch(t *testing.T) {
	if d := DaysSinceEpoch(1970, time.January, 1); d != 0 {
		t.Fatalf("epoch day: got %d", d)
	}
	if d := DaysSinceEpoch(1970, time.January, 2); d != 1 {
		t.Fatalf("epoch+1: got %d", d)
	}
	// The benchmark's fixed current date.
	if d := DaysSinceEpoch(1995, time.June, 17); d != 9298 {
		t.Fatalf("1995-06-17: got %d", d)
	}
}

func TestTimeRoundTrip(t *testing.T) {
	d := DaysSinceEpoch(1998, time.August, 2)
	back := Time(d)
	if back.Year() != 1998 || back.Month() != time.August || back.Day() != 2 {
		t.Fatalf("round trip gave %v", back)
	}
}
