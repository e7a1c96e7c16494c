package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mediq/internal/domain"
)

type ScheduleRepo struct {
	db *pgxpool.Pool
}

func NewScheduleRepository(db *pgxpool.Pool) *ScheduleRepo {
	return &ScheduleRepo{db: db}
}

// Create проверяет конфликты и вставляет расписание в одной транзакции.
// Строка членства блокируется через SELECT ... FOR UPDATE, чтобы два
// параллельных запроса на одно членство не прошли проверку одновременно.
func (r *ScheduleRepo) Create(ctx context.Context, schedule domain.Schedule) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := r.checkConflicts(ctx, tx, schedule, 0); err != nil {
		return 0, err
	}

	var id int64
	query := `
		INSERT INTO schedules (membership_id, start_day, end_day, start_time, end_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id
	`

	err = tx.QueryRow(
		ctx,
		query,
		schedule.MembershipID,
		schedule.StartDay,
		schedule.EndDay,
		schedule.StartTime,
		schedule.EndTime,
		time.Now(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания расписания: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return id, nil
}

// Update перепроверяет конфликты против остальных расписаний членства
// (исключая обновляемое) и записывает новые поля в той же транзакции.
func (r *ScheduleRepo) Update(ctx context.Context, schedule domain.Schedule) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := r.checkConflicts(ctx, tx, schedule, schedule.ID); err != nil {
		return err
	}

	query := `
		UPDATE schedules
		SET start_day = $1, end_day = $2, start_time = $3, end_time = $4, updated_at = $5
		WHERE id = $6
	`

	tag, err := tx.Exec(
		ctx,
		query,
		schedule.StartDay,
		schedule.EndDay,
		schedule.StartTime,
		schedule.EndTime,
		time.Now(),
		schedule.ID,
	)

	if err != nil {
		return fmt.Errorf("ошибка обновления расписания: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("расписание не найдено")
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return nil
}

func (r *ScheduleRepo) checkConflicts(ctx context.Context, tx pgx.Tx, schedule domain.Schedule, excludeID int64) error {
	var membershipID int64
	err := tx.QueryRow(
		ctx,
		`SELECT id FROM clinic_memberships WHERE id = $1 FOR UPDATE`,
		schedule.MembershipID,
	).Scan(&membershipID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NewNotFoundError("членство не найдено")
		}
		return fmt.Errorf("ошибка блокировки членства: %w", err)
	}

	rows, err := tx.Query(
		ctx,
		`SELECT id, membership_id, start_day, end_day, start_time, end_time, created_at, updated_at
		 FROM schedules
		 WHERE membership_id = $1 AND id != $2`,
		schedule.MembershipID,
		excludeID,
	)
	if err != nil {
		return fmt.Errorf("ошибка получения расписаний членства: %w", err)
	}
	defer rows.Close()

	var existing []domain.Schedule
	for rows.Next() {
		var s domain.Schedule
		err := rows.Scan(&s.ID, &s.MembershipID, &s.StartDay, &s.EndDay, &s.StartTime, &s.EndTime, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return fmt.Errorf("ошибка сканирования строки расписания: %w", err)
		}
		existing = append(existing, s)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("ошибка обработки результатов запроса: %w", err)
	}

	for _, candidate := range existing {
		if domain.SchedulesConflict(schedule, candidate) {
			return domain.NewConflictError("время пересекается с существующим расписанием этого членства в указанные дни")
		}
	}

	return nil
}

func (r *ScheduleRepo) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	query := `
		SELECT id, membership_id, start_day, end_day, start_time, end_time, created_at, updated_at
		FROM schedules
		WHERE id = $1
	`

	var schedule domain.Schedule
	err := r.db.QueryRow(ctx, query, id).Scan(
		&schedule.ID,
		&schedule.MembershipID,
		&schedule.StartDay,
		&schedule.EndDay,
		&schedule.StartTime,
		&schedule.EndTime,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("расписание не найдено")
		}
		return nil, fmt.Errorf("ошибка получения расписания: %w", err)
	}

	return &schedule, nil
}

func (r *ScheduleRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM schedules WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления расписания: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("расписание не найдено")
	}

	return nil
}

func (r *ScheduleRepo) ListByMembership(ctx context.Context, membershipID int64) ([]domain.Schedule, error) {
	query := `
		SELECT id, membership_id, start_day, end_day, start_time, end_time, created_at, updated_at
		FROM schedules
		WHERE membership_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, membershipID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка расписаний: %w", err)
	}
	defer rows.Close()

	var schedules []domain.Schedule
	for rows.Next() {
		var schedule domain.Schedule
		err := rows.Scan(
			&schedule.ID,
			&schedule.MembershipID,
			&schedule.StartDay,
			&schedule.EndDay,
			&schedule.StartTime,
			&schedule.EndTime,
			&schedule.CreatedAt,
			&schedule.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки расписания: %w", err)
		}
		schedules = append(schedules, schedule)
	}

	return schedules, nil
}
