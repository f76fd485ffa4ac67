package model

import "time"

// RecurringSlot представляет еженедельно повторяющееся окно доступности
type RecurringSlot struct {
	ID          int64     `json:"id"`
	DayOfWeek   int       `json:"day_of_week"` // 0 = Sunday, 6 = Saturday
	StartTime   string    `json:"start_time"`  // "HH:MM", 24-часовой формат
	EndTime     string    `json:"end_time"`    // "HH:MM", строго больше StartTime
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
