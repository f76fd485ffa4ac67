package service

import (
	"context"
	"errors"
	"fmt"

	"availability-service/internal/model"
	"availability-service/internal/repository"
	"availability-service/internal/timeutil"

	"go.uber.org/zap"
)

// MaxSlotsPerDay максимум recurring слотов в одном дне недели
const MaxSlotsPerDay = 2

// SlotStore персистентные операции над recurring слотами
type SlotStore interface {
	Create(ctx context.Context, slot *model.RecurringSlot, maxPerDay int) error
	CountByDay(ctx context.Context, dayOfWeek int) (int, error)
	GetByDay(ctx context.Context, dayOfWeek int) ([]*model.RecurringSlot, error)
	GetAll(ctx context.Context) ([]*model.RecurringSlot, error)
	GetByID(ctx context.Context, id int64) (*model.RecurringSlot, error)
	Update(ctx context.Context, slot *model.RecurringSlot) error
	Delete(ctx context.Context, id int64) (int64, error)
}

// ExceptionStore персистентные операции над exceptions
type ExceptionStore interface {
	Replace(ctx context.Context, ex *model.SlotException) error
	GetInRange(ctx context.Context, startDate, endDate string) ([]*model.SlotException, error)
	GetAll(ctx context.Context) ([]*model.SlotException, error)
	DeleteForSlotDate(ctx context.Context, recurringSlotID int64, date string) (int64, error)
}

// SlotPatch частичное обновление recurring слота. nil - поле не меняется
type SlotPatch struct {
	DayOfWeek   *int
	StartTime   *string
	EndTime     *string
	Description *string
}

// SlotService управляет recurring слотами и их exceptions, поддерживая
// инварианты: максимум 2 слота в день, end > start, непересекающиеся
// интервалы, выравнивание даты exception по дню недели слота
type SlotService struct {
	slots      SlotStore
	exceptions ExceptionStore
	calendar   *timeutil.Calendar
	logger     *zap.Logger
}

// NewSlotService создаёт новый сервис слотов
func NewSlotService(slots SlotStore, exceptions ExceptionStore, calendar *timeutil.Calendar, logger *zap.Logger) *SlotService {
	return &SlotService{
		slots:      slots,
		exceptions: exceptions,
		calendar:   calendar,
		logger:     logger,
	}
}

// CreateSlot создаёт recurring слот
func (s *SlotService) CreateSlot(ctx context.Context, dayOfWeek int, startTime, endTime string, description *string) (*model.RecurringSlot, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, validation("day_of_week must be between 0 and 6")
	}
	if err := validateTimeRange(startTime, endTime); err != nil {
		return nil, err
	}

	existing, err := s.slots.GetByDay(ctx, dayOfWeek)
	if err != nil {
		return nil, storage("load day slots", err)
	}
	if overlaps(existing, startTime, endTime, 0) {
		return nil, validation("slot overlaps another slot on this day")
	}

	slot := &model.RecurringSlot{
		DayOfWeek:   dayOfWeek,
		StartTime:   startTime,
		EndTime:     endTime,
		Description: description,
	}

	err = s.slots.Create(ctx, slot, MaxSlotsPerDay)
	if errors.Is(err, repository.ErrDayLimit) {
		return nil, validation(fmt.Sprintf("a maximum of %d slots are allowed per day", MaxSlotsPerDay))
	}
	if err != nil {
		return nil, storage("create recurring slot", err)
	}

	s.logger.Info("Recurring slot created",
		zap.Int64("slot_id", slot.ID),
		zap.Int("day_of_week", slot.DayOfWeek),
		zap.String("start_time", slot.StartTime),
		zap.String("end_time", slot.EndTime))

	return slot, nil
}

// ListSlots получает все recurring слоты, отсортированные по (day_of_week, start_time)
func (s *SlotService) ListSlots(ctx context.Context) ([]*model.RecurringSlot, error) {
	slots, err := s.slots.GetAll(ctx)
	if err != nil {
		return nil, storage("list recurring slots", err)
	}
	return slots, nil
}

// UpdateSlot частично обновляет recurring слот. Инвариант end > start
// перепроверяется на слитом состоянии, а не только на полях из patch
func (s *SlotService) UpdateSlot(ctx context.Context, id int64, patch SlotPatch) (*model.RecurringSlot, error) {
	slot, err := s.slots.GetByID(ctx, id)
	if err != nil {
		return nil, storage("load recurring slot", err)
	}
	if slot == nil {
		return nil, notFound("recurring slot does not exist")
	}

	if patch.DayOfWeek != nil {
		if *patch.DayOfWeek < 0 || *patch.DayOfWeek > 6 {
			return nil, validation("day_of_week must be between 0 and 6")
		}
		slot.DayOfWeek = *patch.DayOfWeek
	}
	if patch.StartTime != nil {
		slot.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		slot.EndTime = *patch.EndTime
	}
	if patch.Description != nil {
		slot.Description = patch.Description
	}

	if err := validateTimeRange(slot.StartTime, slot.EndTime); err != nil {
		return nil, err
	}

	daySlots, err := s.slots.GetByDay(ctx, slot.DayOfWeek)
	if err != nil {
		return nil, storage("load day slots", err)
	}
	if overlaps(daySlots, slot.StartTime, slot.EndTime, slot.ID) {
		return nil, validation("slot overlaps another slot on this day")
	}
	if movedToFullDay(daySlots, slot.ID) {
		return nil, validation(fmt.Sprintf("a maximum of %d slots are allowed per day", MaxSlotsPerDay))
	}

	if err := s.slots.Update(ctx, slot); err != nil {
		return nil, storage("update recurring slot", err)
	}

	s.logger.Info("Recurring slot updated",
		zap.Int64("slot_id", slot.ID),
		zap.Int("day_of_week", slot.DayOfWeek))

	return slot, nil
}

// DeleteSlot удаляет recurring слот вместе со всеми его exceptions
func (s *SlotService) DeleteSlot(ctx context.Context, id int64) error {
	affected, err := s.slots.Delete(ctx, id)
	if err != nil {
		return storage("delete recurring slot", err)
	}
	if affected == 0 {
		return notFound("recurring slot does not exist")
	}

	s.logger.Info("Recurring slot deleted", zap.Int64("slot_id", id))
	return nil
}

// CreateException создаёт либо заменяет exception для пары (слот, дата).
// Повторный вызов с той же парой оставляет ровно одну запись - последнюю
func (s *SlotService) CreateException(ctx context.Context, recurringSlotID int64, date string, startTime, endTime *string, isDeleted bool) (*model.SlotException, error) {
	normalized, err := s.calendar.NormalizeDate(date)
	if err != nil {
		return nil, validation(err.Error())
	}

	slot, err := s.slots.GetByID(ctx, recurringSlotID)
	if err != nil {
		return nil, storage("load recurring slot", err)
	}
	if slot == nil {
		return nil, notFound("recurring slot does not exist")
	}

	dayOfWeek, err := s.calendar.DayOfWeek(normalized)
	if err != nil {
		return nil, validation(err.Error())
	}
	if dayOfWeek != slot.DayOfWeek {
		return nil, validation(fmt.Sprintf(
			"date %s does not match the recurring slot's day_of_week (%d)",
			normalized, slot.DayOfWeek))
	}

	// Для отмены времена не нужны и не проверяются
	if !isDeleted {
		if startTime != nil && !timeutil.ValidTime(*startTime) {
			return nil, validation("start_time must be a valid HH:MM time")
		}
		if endTime != nil && !timeutil.ValidTime(*endTime) {
			return nil, validation("end_time must be a valid HH:MM time")
		}
		if startTime != nil && endTime != nil && !timeutil.TimeGreater(*endTime, *startTime) {
			return nil, validation("end time must be greater than start time")
		}
	}

	ex := &model.SlotException{
		RecurringSlotID: recurringSlotID,
		Date:            normalized,
		StartTime:       startTime,
		EndTime:         endTime,
		IsDeleted:       isDeleted,
	}

	if err := s.exceptions.Replace(ctx, ex); err != nil {
		return nil, storage("replace slot exception", err)
	}

	s.logger.Info("Slot exception replaced",
		zap.Int64("exception_id", ex.ID),
		zap.Int64("slot_id", recurringSlotID),
		zap.String("date", normalized),
		zap.Bool("is_deleted", isDeleted))

	return ex, nil
}

// ListExceptions получает все exceptions, отсортированные по (date, start_time)
func (s *SlotService) ListExceptions(ctx context.Context) ([]*model.SlotException, error) {
	exceptions, err := s.exceptions.GetAll(ctx)
	if err != nil {
		return nil, storage("list slot exceptions", err)
	}
	return exceptions, nil
}

// RemoveException удаляет exception для пары (слот, дата), возвращая
// вхождение к recurring определению
func (s *SlotService) RemoveException(ctx context.Context, recurringSlotID int64, date string) error {
	normalized, err := s.calendar.NormalizeDate(date)
	if err != nil {
		return validation(err.Error())
	}

	affected, err := s.exceptions.DeleteForSlotDate(ctx, recurringSlotID, normalized)
	if err != nil {
		return storage("delete slot exception", err)
	}
	if affected == 0 {
		return notFound("exception does not exist for this slot and date")
	}

	s.logger.Info("Slot exception removed",
		zap.Int64("slot_id", recurringSlotID),
		zap.String("date", normalized))

	return nil
}

func validateTimeRange(startTime, endTime string) error {
	if !timeutil.ValidTime(startTime) {
		return validation("start_time must be a valid HH:MM time")
	}
	if !timeutil.ValidTime(endTime) {
		return validation("end_time must be a valid HH:MM time")
	}
	if !timeutil.TimeGreater(endTime, startTime) {
		return validation("end time must be greater than start time")
	}
	return nil
}

// overlaps проверяет пересечение [start, end) с другими слотами дня
func overlaps(daySlots []*model.RecurringSlot, startTime, endTime string, excludeID int64) bool {
	for _, other := range daySlots {
		if other.ID == excludeID {
			continue
		}
		if timeutil.TimeGreater(other.EndTime, startTime) && timeutil.TimeGreater(endTime, other.StartTime) {
			return true
		}
	}
	return false
}

// movedToFullDay проверяет что слот переносится в день, где уже максимум слотов
func movedToFullDay(daySlots []*model.RecurringSlot, slotID int64) bool {
	others := 0
	for _, other := range daySlots {
		if other.ID != slotID {
			others++
		}
	}
	return others >= MaxSlotsPerDay
}
