package model

// ResolvedSlot представляет конкретное вхождение слота в разрешённой неделе.
// Не хранится в БД - вычисляется из recurring слотов и exceptions
type ResolvedSlot struct {
	Date            string  `json:"date"`
	RecurringSlotID int64   `json:"recurring_slot_id"`
	StartTime       *string `json:"start_time"`
	EndTime         *string `json:"end_time"`
	FromRecurring   bool    `json:"from_recurring"` // true - из recurring определения, false - из exception
	Description     *string `json:"description,omitempty"`
}

// WeekSchedule представляет разрешённое расписание одной недели
type WeekSchedule struct {
	StartDate string         `json:"start_date"`
	EndDate   string         `json:"end_date"`
	Slots     []ResolvedSlot `json:"slots"`
}
