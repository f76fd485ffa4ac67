package timeutil

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Window представляет границы одной календарной недели
type Window struct {
	StartDate string    // воскресенье, "YYYY-MM-DD"
	EndDate   string    // суббота, "YYYY-MM-DD"
	Dates     [7]string // все 7 дат недели по порядку
}

// Calendar выполняет всю датную арифметику в одной фиксированной таймзоне.
// Неделя начинается с воскресенья (day_of_week 0)
type Calendar struct {
	loc *time.Location
}

// NewCalendar создаёт календарь для указанной таймзоны (IANA имя, например "Asia/Kolkata")
func NewCalendar(zone string) (*Calendar, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", zone, err)
	}
	return &Calendar{loc: loc}, nil
}

// Location возвращает таймзону календаря
func (c *Calendar) Location() *time.Location {
	return c.loc
}

// WeekWindow возвращает неделю, содержащую anchor: 7 последовательных дат
// начиная с воскресенья, все в фиксированной таймзоне
func (c *Calendar) WeekWindow(anchor string) (Window, error) {
	t, err := c.parseDate(anchor)
	if err != nil {
		return Window{}, err
	}

	start := t.AddDate(0, 0, -int(t.Weekday()))

	var w Window
	for i := 0; i < 7; i++ {
		w.Dates[i] = start.AddDate(0, 0, i).Format(dateLayout)
	}
	w.StartDate = w.Dates[0]
	w.EndDate = w.Dates[6]

	return w, nil
}

// DayOfWeek возвращает день недели даты: 0 = воскресенье ... 6 = суббота
func (c *Calendar) DayOfWeek(date string) (int, error) {
	t, err := c.parseDate(date)
	if err != nil {
		return 0, err
	}
	return int(t.Weekday()), nil
}

// NormalizeDate приводит дату к каноничному виду "YYYY-MM-DD" в фиксированной
// таймзоне. Принимает уже каноничную дату либо RFC3339 timestamp. Идемпотентна
func (c *Calendar) NormalizeDate(raw string) (string, error) {
	if t, err := time.ParseInLocation(dateLayout, raw, c.loc); err == nil {
		return t.Format(dateLayout), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(c.loc).Format(dateLayout), nil
	}
	return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
}

func (c *Calendar) parseDate(date string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, date, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	return t, nil
}

// ValidTime проверяет что строка - корректное время "HH:MM" в 24-часовом формате
func ValidTime(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// TimeGreater сравнивает два валидных времени "HH:MM". Лексикографическое
// сравнение корректно благодаря фиксированной ширине с ведущими нулями
func TimeGreater(a, b string) bool {
	return a > b
}
