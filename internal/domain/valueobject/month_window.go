package valueobject

import "time"

// MonthWindow is a half-open calendar month [Start, End).
type MonthWindow struct {
	Start time.Time
	End   time.Time
}

// CalendarMonth returns the calendar month containing t, evaluated in loc.
// A nil location means UTC.
func CalendarMonth(t time.Time, loc *time.Location) MonthWindow {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	return MonthWindow{
		Start: start,
		End:   start.AddDate(0, 1, 0),
	}
}

// ParseMonth parses a YYYY-MM month into its UTC window.
func ParseMonth(month string) (MonthWindow, error) {
	t, err := time.ParseInLocation("2006-01", month, time.UTC)
	if err != nil {
		return MonthWindow{}, err
	}
	return CalendarMonth(t, time.UTC), nil
}

// Contains reports whether t falls inside the window.
func (w MonthWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}
