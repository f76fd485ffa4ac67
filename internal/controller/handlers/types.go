package handlers

// createSlotRequest тело POST /slots
type createSlotRequest struct {
	DayOfWeek   *int    `json:"day_of_week" validate:"required,min=0,max=6"`
	StartTime   string  `json:"start_time" validate:"required"`
	EndTime     string  `json:"end_time" validate:"required"`
	Description *string `json:"description"`
}

// updateSlotRequest тело PUT /slots/{id}. Все поля опциональны
type updateSlotRequest struct {
	DayOfWeek   *int    `json:"day_of_week" validate:"omitempty,min=0,max=6"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	Description *string `json:"description"`
}

// createExceptionRequest тело POST /slots/exceptions
type createExceptionRequest struct {
	RecurringSlotID *int64  `json:"recurring_slot_id" validate:"required"`
	Date            string  `json:"date" validate:"required"`
	StartTime       *string `json:"start_time"`
	EndTime         *string `json:"end_time"`
	IsDeleted       bool    `json:"is_deleted"`
}

// messageResponse простой ответ с сообщением
type messageResponse struct {
	Message string `json:"message"`
}

// errorResponse ответ с ошибкой
type errorResponse struct {
	Error string `json:"error"`
}
