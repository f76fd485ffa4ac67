package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"availability-service/internal/model"
	"availability-service/internal/repository"
	"availability-service/internal/timeutil"

	"go.uber.org/zap"
)

// In-memory стора, повторяющие семантику репозиториев (включая лимит дня,
// upsert для exceptions и каскадное удаление)

type exceptionKey struct {
	slotID int64
	date   string
}

type fakeExceptionStore struct {
	rows   map[exceptionKey]*model.SlotException
	nextID int64
	err    error // если установлена, возвращается из всех методов
}

func newFakeExceptionStore() *fakeExceptionStore {
	return &fakeExceptionStore{rows: make(map[exceptionKey]*model.SlotException), nextID: 1}
}

func (f *fakeExceptionStore) Replace(ctx context.Context, ex *model.SlotException) error {
	if f.err != nil {
		return f.err
	}
	key := exceptionKey{slotID: ex.RecurringSlotID, date: ex.Date}
	if existing, ok := f.rows[key]; ok {
		ex.ID = existing.ID
		ex.CreatedAt = existing.CreatedAt
	} else {
		ex.ID = f.nextID
		f.nextID++
		ex.CreatedAt = time.Now()
	}
	ex.UpdatedAt = time.Now()
	stored := *ex
	f.rows[key] = &stored
	return nil
}

func (f *fakeExceptionStore) GetInRange(ctx context.Context, startDate, endDate string) ([]*model.SlotException, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.SlotException
	for _, ex := range f.rows {
		if ex.Date >= startDate && ex.Date <= endDate {
			copied := *ex
			out = append(out, &copied)
		}
	}
	sortExceptions(out)
	return out, nil
}

func (f *fakeExceptionStore) GetAll(ctx context.Context) ([]*model.SlotException, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.SlotException
	for _, ex := range f.rows {
		copied := *ex
		out = append(out, &copied)
	}
	sortExceptions(out)
	return out, nil
}

func (f *fakeExceptionStore) DeleteForSlotDate(ctx context.Context, recurringSlotID int64, date string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	key := exceptionKey{slotID: recurringSlotID, date: date}
	if _, ok := f.rows[key]; !ok {
		return 0, nil
	}
	delete(f.rows, key)
	return 1, nil
}

func (f *fakeExceptionStore) deleteForSlot(recurringSlotID int64) {
	for key := range f.rows {
		if key.slotID == recurringSlotID {
			delete(f.rows, key)
		}
	}
}

func sortExceptions(out []*model.SlotException) {
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return derefTime(a.StartTime) < derefTime(b.StartTime)
	})
}

type fakeSlotStore struct {
	slots      map[int64]*model.RecurringSlot
	nextID     int64
	exceptions *fakeExceptionStore // для имитации FK ON DELETE CASCADE
	err        error
}

func newFakeSlotStore(exceptions *fakeExceptionStore) *fakeSlotStore {
	return &fakeSlotStore{
		slots:      make(map[int64]*model.RecurringSlot),
		nextID:     1,
		exceptions: exceptions,
	}
}

func (f *fakeSlotStore) Create(ctx context.Context, slot *model.RecurringSlot, maxPerDay int) error {
	if f.err != nil {
		return f.err
	}
	count, _ := f.CountByDay(ctx, slot.DayOfWeek)
	if count >= maxPerDay {
		return repository.ErrDayLimit
	}
	slot.ID = f.nextID
	f.nextID++
	slot.CreatedAt = time.Now()
	slot.UpdatedAt = slot.CreatedAt
	stored := *slot
	f.slots[slot.ID] = &stored
	return nil
}

func (f *fakeSlotStore) CountByDay(ctx context.Context, dayOfWeek int) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	count := 0
	for _, slot := range f.slots {
		if slot.DayOfWeek == dayOfWeek {
			count++
		}
	}
	return count, nil
}

func (f *fakeSlotStore) GetByDay(ctx context.Context, dayOfWeek int) ([]*model.RecurringSlot, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.RecurringSlot
	for _, slot := range f.slots {
		if slot.DayOfWeek == dayOfWeek {
			copied := *slot
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (f *fakeSlotStore) GetAll(ctx context.Context) ([]*model.RecurringSlot, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.RecurringSlot
	for _, slot := range f.slots {
		copied := *slot
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.DayOfWeek != b.DayOfWeek {
			return a.DayOfWeek < b.DayOfWeek
		}
		return a.StartTime < b.StartTime
	})
	return out, nil
}

func (f *fakeSlotStore) GetByID(ctx context.Context, id int64) (*model.RecurringSlot, error) {
	if f.err != nil {
		return nil, f.err
	}
	slot, ok := f.slots[id]
	if !ok {
		return nil, nil
	}
	copied := *slot
	return &copied, nil
}

func (f *fakeSlotStore) Update(ctx context.Context, slot *model.RecurringSlot) error {
	if f.err != nil {
		return f.err
	}
	slot.UpdatedAt = time.Now()
	stored := *slot
	f.slots[slot.ID] = &stored
	return nil
}

func (f *fakeSlotStore) Delete(ctx context.Context, id int64) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if _, ok := f.slots[id]; !ok {
		return 0, nil
	}
	delete(f.slots, id)
	f.exceptions.deleteForSlot(id)
	return 1, nil
}

func derefTime(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtr(s string) *string {
	return &s
}

type fixture struct {
	slots      *fakeSlotStore
	exceptions *fakeExceptionStore
	slotSvc    *SlotService
	weekSvc    *WeekService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	calendar, err := timeutil.NewCalendar("Asia/Kolkata")
	if err != nil {
		t.Fatalf("NewCalendar error: %v", err)
	}

	exceptions := newFakeExceptionStore()
	slots := newFakeSlotStore(exceptions)
	logger := zap.NewNop()

	return &fixture{
		slots:      slots,
		exceptions: exceptions,
		slotSvc:    NewSlotService(slots, exceptions, calendar, logger),
		weekSvc:    NewWeekService(slots, exceptions, calendar, logger),
	}
}
