package model

import "time"

// SlotException представляет переопределение одного вхождения recurring слота
// на конкретную дату: перенос времени либо отмена
type SlotException struct {
	ID              int64     `json:"id"`
	RecurringSlotID int64     `json:"recurring_slot_id"`
	Date            string    `json:"date"`       // "YYYY-MM-DD" в фиксированной таймзоне
	StartTime       *string   `json:"start_time"` // nil - время не переопределено
	EndTime         *string   `json:"end_time"`
	IsDeleted       bool      `json:"is_deleted"` // true - вхождение отменено на эту дату
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
