package repository

import (
	"context"
	"errors"
	"fmt"

	"availability-service/internal/model"
	"availability-service/internal/repository/base"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDayLimit возвращается когда в дне недели уже максимум слотов
var ErrDayLimit = errors.New("day slot limit reached")

// SlotRepository управляет recurring слотами в базе данных
type SlotRepository struct {
	*base.Repository
}

// NewSlotRepository создаёт новый репозиторий
func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{Repository: base.NewRepository(pool)}
}

const slotColumns = `id, day_of_week, start_time, end_time, description, created_at, updated_at`

// Create создаёт новый recurring слот. Лимит слотов на день проверяется
// внутри транзакции под advisory блокировкой дня: блокировка строк здесь
// не работает (в пустом дне блокировать нечего), а advisory lock
// сериализует конкурентные создания в одном дне целиком
func (r *SlotRepository) Create(ctx context.Context, slot *model.RecurringSlot, maxPerDay int) error {
	return r.WithinTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('recurring_slots_day'), $1)`, slot.DayOfWeek); err != nil {
			return fmt.Errorf("lock day: %w", err)
		}

		var count int
		if err := tx.QueryRow(ctx, `SELECT count(*) FROM recurring_slots WHERE day_of_week = $1`, slot.DayOfWeek).Scan(&count); err != nil {
			return fmt.Errorf("count day slots: %w", err)
		}

		if count >= maxPerDay {
			return ErrDayLimit
		}

		insertQuery := `
			INSERT INTO recurring_slots (day_of_week, start_time, end_time, description)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at, updated_at
		`

		err := tx.QueryRow(
			ctx,
			insertQuery,
			slot.DayOfWeek,
			slot.StartTime,
			slot.EndTime,
			slot.Description,
		).Scan(&slot.ID, &slot.CreatedAt, &slot.UpdatedAt)

		if err != nil {
			return fmt.Errorf("create recurring slot: %w", err)
		}

		return nil
	})
}

// CountByDay возвращает количество слотов в дне недели
func (r *SlotRepository) CountByDay(ctx context.Context, dayOfWeek int) (int, error) {
	query := `SELECT count(*) FROM recurring_slots WHERE day_of_week = $1`

	var count int
	if err := r.QueryRow(ctx, query, dayOfWeek).Scan(&count); err != nil {
		return 0, fmt.Errorf("count slots for day: %w", err)
	}

	return count, nil
}

// GetByDay получает все слоты дня недели
func (r *SlotRepository) GetByDay(ctx context.Context, dayOfWeek int) ([]*model.RecurringSlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM recurring_slots
		WHERE day_of_week = $1
		ORDER BY start_time
	`

	rows, err := r.Query(ctx, query, dayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("get slots by day: %w", err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// GetAll получает все recurring слоты
func (r *SlotRepository) GetAll(ctx context.Context) ([]*model.RecurringSlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM recurring_slots
		ORDER BY day_of_week, start_time
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all recurring slots: %w", err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// GetByID получает recurring слот по ID
func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*model.RecurringSlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM recurring_slots
		WHERE id = $1
	`

	slot := &model.RecurringSlot{}
	err := r.QueryRow(ctx, query, id).Scan(
		&slot.ID,
		&slot.DayOfWeek,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Description,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)

	if base.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get recurring slot by id: %w", err)
	}

	return slot, nil
}

// Update обновляет recurring слот
func (r *SlotRepository) Update(ctx context.Context, slot *model.RecurringSlot) error {
	query := `
		UPDATE recurring_slots
		SET day_of_week = $2, start_time = $3, end_time = $4, description = $5, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.QueryRow(
		ctx,
		query,
		slot.ID,
		slot.DayOfWeek,
		slot.StartTime,
		slot.EndTime,
		slot.Description,
	).Scan(&slot.UpdatedAt)

	if err != nil {
		return fmt.Errorf("update recurring slot: %w", err)
	}

	return nil
}

// Delete удаляет recurring слот. Exceptions удаляются каскадом (FK ON DELETE CASCADE).
// Возвращает количество удалённых строк
func (r *SlotRepository) Delete(ctx context.Context, id int64) (int64, error) {
	query := `DELETE FROM recurring_slots WHERE id = $1`

	affected, err := r.ExecAffected(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete recurring slot: %w", err)
	}

	return affected, nil
}

func scanSlots(rows pgx.Rows) ([]*model.RecurringSlot, error) {
	var slots []*model.RecurringSlot
	for rows.Next() {
		slot := &model.RecurringSlot{}
		err := rows.Scan(
			&slot.ID,
			&slot.DayOfWeek,
			&slot.StartTime,
			&slot.EndTime,
			&slot.Description,
			&slot.CreatedAt,
			&slot.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan recurring slot: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, rows.Err()
}
