package repository

import (
	"context"
	"fmt"

	"availability-service/internal/model"
	"availability-service/internal/repository/base"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ExceptionRepository управляет exceptions (переопределениями слотов на дату) в базе данных
type ExceptionRepository struct {
	*base.Repository
}

// NewExceptionRepository создаёт новый репозиторий
func NewExceptionRepository(pool *pgxpool.Pool) *ExceptionRepository {
	return &ExceptionRepository{Repository: base.NewRepository(pool)}
}

const exceptionColumns = `id, recurring_slot_id, to_char(date, 'YYYY-MM-DD'), start_time, end_time, is_deleted, created_at, updated_at`

// Replace создаёт exception либо заменяет существующий для той же пары
// (recurring_slot_id, date). Один upsert, поэтому замена атомарна
// и конкурентные записи не накапливают дубликатов
func (r *ExceptionRepository) Replace(ctx context.Context, ex *model.SlotException) error {
	query := `
		INSERT INTO slot_exceptions (recurring_slot_id, date, start_time, end_time, is_deleted)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (recurring_slot_id, date) DO UPDATE
		SET start_time = EXCLUDED.start_time,
		    end_time = EXCLUDED.end_time,
		    is_deleted = EXCLUDED.is_deleted,
		    updated_at = now()
		RETURNING id, to_char(date, 'YYYY-MM-DD'), created_at, updated_at
	`

	err := r.QueryRow(
		ctx,
		query,
		ex.RecurringSlotID,
		ex.Date,
		ex.StartTime,
		ex.EndTime,
		ex.IsDeleted,
	).Scan(&ex.ID, &ex.Date, &ex.CreatedAt, &ex.UpdatedAt)

	if err != nil {
		return fmt.Errorf("replace slot exception: %w", err)
	}

	return nil
}

// GetInRange получает exceptions с датой в [startDate, endDate] включительно
func (r *ExceptionRepository) GetInRange(ctx context.Context, startDate, endDate string) ([]*model.SlotException, error) {
	query := `
		SELECT ` + exceptionColumns + `
		FROM slot_exceptions
		WHERE date BETWEEN $1 AND $2
		ORDER BY date, start_time
	`

	rows, err := r.Query(ctx, query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("get exceptions in range: %w", err)
	}
	defer rows.Close()

	return scanExceptions(rows)
}

// GetAll получает все exceptions
func (r *ExceptionRepository) GetAll(ctx context.Context) ([]*model.SlotException, error) {
	query := `
		SELECT ` + exceptionColumns + `
		FROM slot_exceptions
		ORDER BY date, start_time
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all exceptions: %w", err)
	}
	defer rows.Close()

	return scanExceptions(rows)
}

// DeleteForSlotDate удаляет exception для пары (recurring_slot_id, date).
// Возвращает количество удалённых строк
func (r *ExceptionRepository) DeleteForSlotDate(ctx context.Context, recurringSlotID int64, date string) (int64, error) {
	query := `DELETE FROM slot_exceptions WHERE recurring_slot_id = $1 AND date = $2`

	affected, err := r.ExecAffected(ctx, query, recurringSlotID, date)
	if err != nil {
		return 0, fmt.Errorf("delete exception for slot and date: %w", err)
	}

	return affected, nil
}

func scanExceptions(rows pgx.Rows) ([]*model.SlotException, error) {
	var exceptions []*model.SlotException
	for rows.Next() {
		ex := &model.SlotException{}
		err := rows.Scan(
			&ex.ID,
			&ex.RecurringSlotID,
			&ex.Date,
			&ex.StartTime,
			&ex.EndTime,
			&ex.IsDeleted,
			&ex.CreatedAt,
			&ex.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan slot exception: %w", err)
		}
		exceptions = append(exceptions, ex)
	}

	return exceptions, rows.Err()
}
