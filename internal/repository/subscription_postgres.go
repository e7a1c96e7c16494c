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

type SubscriptionRepo struct {
	db *pgxpool.Pool
}

func NewSubscriptionRepository(db *pgxpool.Pool) *SubscriptionRepo {
	return &SubscriptionRepo{db: db}
}

func (r *SubscriptionRepo) Create(ctx context.Context, dto domain.CreateSubscriptionDTO) (int64, error) {
	var id int64
	query := `
		INSERT INTO subscriptions (name, description, price, duration_days, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx,
		query,
		dto.Name,
		dto.Description,
		dto.Price,
		dto.DurationDays,
		dto.IsActive,
		time.Now(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания тарифа: %w", err)
	}

	return id, nil
}

func (r *SubscriptionRepo) GetByID(ctx context.Context, id int64) (*domain.Subscription, error) {
	query := `
		SELECT id, name, description, price, duration_days, is_active, created_at, updated_at
		FROM subscriptions
		WHERE id = $1
	`

	var subscription domain.Subscription
	err := r.db.QueryRow(ctx, query, id).Scan(
		&subscription.ID,
		&subscription.Name,
		&subscription.Description,
		&subscription.Price,
		&subscription.DurationDays,
		&subscription.IsActive,
		&subscription.CreatedAt,
		&subscription.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("тариф не найден")
		}
		return nil, fmt.Errorf("ошибка получения тарифа: %w", err)
	}

	return &subscription, nil
}

func (r *SubscriptionRepo) Update(ctx context.Context, id int64, dto domain.UpdateSubscriptionDTO) error {
	query := `
		UPDATE subscriptions
		SET name = COALESCE($1, name),
			description = COALESCE($2, description),
			price = COALESCE($3, price),
			duration_days = COALESCE($4, duration_days),
			is_active = COALESCE($5, is_active),
			updated_at = $6
		WHERE id = $7
	`

	tag, err := r.db.Exec(
		ctx,
		query,
		dto.Name,
		dto.Description,
		dto.Price,
		dto.DurationDays,
		dto.IsActive,
		time.Now(),
		id,
	)

	if err != nil {
		return fmt.Errorf("ошибка обновления тарифа: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("тариф не найден")
	}

	return nil
}

func (r *SubscriptionRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM subscriptions WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления тарифа: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("тариф не найден")
	}

	return nil
}

func (r *SubscriptionRepo) List(ctx context.Context, filter domain.SubscriptionFilter) ([]domain.Subscription, error) {
	query := `
		SELECT id, name, description, price, duration_days, is_active, created_at, updated_at
		FROM subscriptions
		WHERE 1=1
	`

	var args []interface{}
	if filter.IsActive != nil {
		query += fmt.Sprintf(" AND is_active = $%d", len(args)+1)
		args = append(args, *filter.IsActive)
	}

	query += fmt.Sprintf(" ORDER BY price LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка тарифов: %w", err)
	}
	defer rows.Close()

	var subscriptions []domain.Subscription
	for rows.Next() {
		var subscription domain.Subscription
		err := rows.Scan(
			&subscription.ID,
			&subscription.Name,
			&subscription.Description,
			&subscription.Price,
			&subscription.DurationDays,
			&subscription.IsActive,
			&subscription.CreatedAt,
			&subscription.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки тарифа: %w", err)
		}
		subscriptions = append(subscriptions, subscription)
	}

	return subscriptions, nil
}

func (r *SubscriptionRepo) CountByFilter(ctx context.Context, filter domain.SubscriptionFilter) (int, error) {
	query := `SELECT COUNT(*) FROM subscriptions WHERE 1=1`

	var args []interface{}
	if filter.IsActive != nil {
		query += fmt.Sprintf(" AND is_active = $%d", len(args)+1)
		args = append(args, *filter.IsActive)
	}

	var total int
	err := r.db.QueryRow(ctx, query, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("ошибка получения количества тарифов: %w", err)
	}

	return total, nil
}
