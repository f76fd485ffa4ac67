package service

import (
	"context"
	"sort"

	"availability-service/internal/model"
	"availability-service/internal/timeutil"

	"go.uber.org/zap"
)

// WeekService разрешает расписание недели: раскрывает recurring слоты по
// датам недели и накладывает exceptions поверх
type WeekService struct {
	slots      SlotStore
	exceptions ExceptionStore
	calendar   *timeutil.Calendar
	logger     *zap.Logger
}

// NewWeekService создаёт новый сервис недельного расписания
func NewWeekService(slots SlotStore, exceptions ExceptionStore, calendar *timeutil.Calendar, logger *zap.Logger) *WeekService {
	return &WeekService{
		slots:      slots,
		exceptions: exceptions,
		calendar:   calendar,
		logger:     logger,
	}
}

// ResolveWeek возвращает конкретные слоты недели, содержащей anchor.
// День без слотов и exceptions даёт пустой результат для этой даты, не ошибку
func (s *WeekService) ResolveWeek(ctx context.Context, anchor string) (*model.WeekSchedule, error) {
	window, err := s.calendar.WeekWindow(anchor)
	if err != nil {
		return nil, validation(err.Error())
	}

	recurring, err := s.slots.GetAll(ctx)
	if err != nil {
		return nil, storage("load recurring slots", err)
	}

	// Неделя начинается с воскресенья, поэтому Dates[i] имеет день недели i
	resolved := make([]model.ResolvedSlot, 0, len(recurring))
	for dayOfWeek, date := range window.Dates {
		for _, slot := range recurring {
			if slot.DayOfWeek == dayOfWeek {
				resolved = append(resolved, resolvedFromRecurring(date, slot))
			}
		}
	}

	exceptions, err := s.exceptions.GetInRange(ctx, window.StartDate, window.EndDate)
	if err != nil {
		return nil, storage("load slot exceptions", err)
	}

	for _, ex := range exceptions {
		date, err := s.calendar.NormalizeDate(ex.Date)
		if err != nil {
			return nil, storage("normalize exception date", err)
		}

		// Exception всегда вытесняет развёрнутое recurring вхождение
		resolved = dropOccurrence(resolved, ex.RecurringSlotID, date)

		// Отменённое вхождение просто отсутствует в результате
		if !ex.IsDeleted {
			resolved = append(resolved, resolvedFromException(date, ex))
		}
	}

	// Лексикографическая сортировка корректна: даты и времена - строки
	// фиксированной ширины с ведущими нулями
	sort.Slice(resolved, func(i, j int) bool {
		return sortKey(resolved[i]) < sortKey(resolved[j])
	})

	s.logger.Debug("Week resolved",
		zap.String("start_date", window.StartDate),
		zap.String("end_date", window.EndDate),
		zap.Int("slots", len(resolved)))

	return &model.WeekSchedule{
		StartDate: window.StartDate,
		EndDate:   window.EndDate,
		Slots:     resolved,
	}, nil
}

func resolvedFromRecurring(date string, slot *model.RecurringSlot) model.ResolvedSlot {
	startTime := slot.StartTime
	endTime := slot.EndTime
	return model.ResolvedSlot{
		Date:            date,
		RecurringSlotID: slot.ID,
		StartTime:       &startTime,
		EndTime:         &endTime,
		FromRecurring:   true,
		Description:     slot.Description,
	}
}

func resolvedFromException(date string, ex *model.SlotException) model.ResolvedSlot {
	return model.ResolvedSlot{
		Date:            date,
		RecurringSlotID: ex.RecurringSlotID,
		StartTime:       ex.StartTime,
		EndTime:         ex.EndTime,
		FromRecurring:   false,
	}
}

func dropOccurrence(slots []model.ResolvedSlot, recurringSlotID int64, date string) []model.ResolvedSlot {
	kept := slots[:0]
	for _, slot := range slots {
		if slot.RecurringSlotID == recurringSlotID && slot.Date == date {
			continue
		}
		kept = append(kept, slot)
	}
	return kept
}

func sortKey(slot model.ResolvedSlot) string {
	startTime := ""
	if slot.StartTime != nil {
		startTime = *slot.StartTime
	}
	return slot.Date + " " + startTime
}
