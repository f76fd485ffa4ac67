package timeutil

import (
	"testing"
)

func newTestCalendar(t *testing.T) *Calendar {
	t.Helper()
	c, err := NewCalendar("Asia/Kolkata")
	if err != nil {
		t.Fatalf("NewCalendar error: %v", err)
	}
	return c
}

func TestWeekWindow(t *testing.T) {
	c := newTestCalendar(t)

	tests := []struct {
		anchor string
		start  string
		end    string
	}{
		{"2024-01-01", "2023-12-31", "2024-01-06"}, // Monday anchor, week starts previous Sunday
		{"2023-12-31", "2023-12-31", "2024-01-06"}, // Sunday anchor is its own week start
		{"2024-01-06", "2023-12-31", "2024-01-06"}, // Saturday anchor, last day of the week
		{"2024-02-29", "2024-02-25", "2024-03-02"}, // leap day, week crosses month boundary
	}

	for _, tt := range tests {
		w, err := c.WeekWindow(tt.anchor)
		if err != nil {
			t.Errorf("WeekWindow(%q) error: %v", tt.anchor, err)
			continue
		}
		if w.StartDate != tt.start || w.EndDate != tt.end {
			t.Errorf("WeekWindow(%q) = [%s, %s], want [%s, %s]",
				tt.anchor, w.StartDate, w.EndDate, tt.start, tt.end)
		}
		if w.Dates[0] != w.StartDate || w.Dates[6] != w.EndDate {
			t.Errorf("WeekWindow(%q) dates do not match bounds: %v", tt.anchor, w.Dates)
		}
	}
}

func TestWeekWindowConsecutiveDates(t *testing.T) {
	c := newTestCalendar(t)

	w, err := c.WeekWindow("2024-01-03")
	if err != nil {
		t.Fatalf("WeekWindow error: %v", err)
	}

	for i, date := range w.Dates {
		dow, err := c.DayOfWeek(date)
		if err != nil {
			t.Fatalf("DayOfWeek(%q) error: %v", date, err)
		}
		if dow != i {
			t.Errorf("Dates[%d] = %s has day-of-week %d, want %d", i, date, dow, i)
		}
	}
}

func TestWeekWindowInvalidAnchor(t *testing.T) {
	c := newTestCalendar(t)

	for _, anchor := range []string{"", "2024-13-01", "01-01-2024", "yesterday"} {
		if _, err := c.WeekWindow(anchor); err == nil {
			t.Errorf("WeekWindow(%q) should error", anchor)
		}
	}
}

func TestDayOfWeek(t *testing.T) {
	c := newTestCalendar(t)

	tests := []struct {
		date string
		want int
	}{
		{"2024-01-07", 0}, // Sunday
		{"2024-01-01", 1}, // Monday
		{"2024-01-02", 2}, // Tuesday
		{"2024-01-06", 6}, // Saturday
	}

	for _, tt := range tests {
		got, err := c.DayOfWeek(tt.date)
		if err != nil {
			t.Errorf("DayOfWeek(%q) error: %v", tt.date, err)
			continue
		}
		if got != tt.want {
			t.Errorf("DayOfWeek(%q) = %d, want %d", tt.date, got, tt.want)
		}
	}
}

func TestNormalizeDate(t *testing.T) {
	c := newTestCalendar(t)

	tests := []struct {
		raw  string
		want string
	}{
		{"2024-01-02", "2024-01-02"},
		// UTC midnight is already past midnight in Asia/Kolkata (+05:30)
		{"2024-01-01T00:00:00Z", "2024-01-01"},
		// late UTC evening rolls over to the next local date
		{"2024-01-01T20:00:00Z", "2024-01-02"},
	}

	for _, tt := range tests {
		got, err := c.NormalizeDate(tt.raw)
		if err != nil {
			t.Errorf("NormalizeDate(%q) error: %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeDate(%q) = %q, want %q", tt.raw, got, tt.want)
		}

		again, err := c.NormalizeDate(got)
		if err != nil {
			t.Errorf("NormalizeDate(%q) second pass error: %v", got, err)
			continue
		}
		if again != got {
			t.Errorf("NormalizeDate is not idempotent: %q -> %q", got, again)
		}
	}
}

func TestNormalizeDateInvalid(t *testing.T) {
	c := newTestCalendar(t)

	for _, raw := range []string{"", "2024/01/02", "02.01.2024", "not-a-date"} {
		if _, err := c.NormalizeDate(raw); err == nil {
			t.Errorf("NormalizeDate(%q) should error", raw)
		}
	}
}

func TestValidTime(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59"}
	for _, s := range valid {
		if !ValidTime(s) {
			t.Errorf("ValidTime(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "9:30", "24:00", "12:60", "12-30", "12:3", "120:3"}
	for _, s := range invalid {
		if ValidTime(s) {
			t.Errorf("ValidTime(%q) = true, want false", s)
		}
	}
}

func TestTimeGreater(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"10:00", "09:00", true},
		{"09:00", "10:00", false},
		{"09:00", "09:00", false},
		{"23:59", "00:00", true},
	}

	for _, tt := range tests {
		if got := TimeGreater(tt.a, tt.b); got != tt.want {
			t.Errorf("TimeGreater(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
