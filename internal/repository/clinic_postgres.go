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

type ClinicRepo struct {
	db *pgxpool.Pool
}

func NewClinicRepository(db *pgxpool.Pool) *ClinicRepo {
	return &ClinicRepo{
		db: db,
	}
}

func (r *ClinicRepo) Create(ctx context.Context, ownerID int64, dto domain.CreateClinicDTO) (int64, error) {
	var id int64
	query := `
		INSERT INTO clinics (owner_id, city_id, name, address, phone, description, photo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		ownerID,
		dto.CityID,
		dto.Name,
		dto.Address,
		dto.Phone,
		dto.Description,
		"",
		time.Now(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания клиники: %w", err)
	}

	return id, nil
}

const clinicSelect = `
	SELECT id, owner_id, city_id, name, address, phone, description, photo_url,
	       average_rating, reviews_count, subscription_id, subscription_expires_at,
	       created_at, updated_at
	FROM clinics
`

func scanClinic(row pgx.Row) (*domain.Clinic, error) {
	var clinic domain.Clinic
	err := row.Scan(
		&clinic.ID,
		&clinic.OwnerID,
		&clinic.CityID,
		&clinic.Name,
		&clinic.Address,
		&clinic.Phone,
		&clinic.Description,
		&clinic.PhotoURL,
		&clinic.AverageRating,
		&clinic.ReviewsCount,
		&clinic.SubscriptionID,
		&clinic.SubscriptionExpiresAt,
		&clinic.CreatedAt,
		&clinic.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("клиника не найдена")
		}
		return nil, fmt.Errorf("ошибка получения клиники: %w", err)
	}

	return &clinic, nil
}

func (r *ClinicRepo) GetByID(ctx context.Context, id int64) (*domain.Clinic, error) {
	return scanClinic(r.db.QueryRow(ctx, clinicSelect+` WHERE id = $1`, id))
}

func (r *ClinicRepo) Update(ctx context.Context, id int64, dto domain.UpdateClinicDTO) error {
	query := `
		UPDATE clinics
		SET city_id = COALESCE($1, city_id),
			name = COALESCE($2, name),
			address = COALESCE($3, address),
			phone = COALESCE($4, phone),
			description = COALESCE($5, description),
			updated_at = $6
		WHERE id = $7
	`

	tag, err := r.db.Exec(
		ctx,
		query,
		dto.CityID,
		dto.Name,
		dto.Address,
		dto.Phone,
		dto.Description,
		time.Now(),
		id,
	)

	if err != nil {
		return fmt.Errorf("ошибка обновления клиники: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("клиника не найдена")
	}

	return nil
}

func (r *ClinicRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM clinics WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления клиники: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("клиника не найдена")
	}

	return nil
}

func (r *ClinicRepo) List(ctx context.Context, filter domain.ClinicFilter) ([]domain.Clinic, error) {
	query := clinicSelect + ` WHERE 1=1`

	conditions, args := buildClinicConditions(filter)
	query += conditions

	query += fmt.Sprintf(" ORDER BY average_rating DESC, id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка клиник: %w", err)
	}
	defer rows.Close()

	var clinics []domain.Clinic
	for rows.Next() {
		clinic, err := scanClinic(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки клиники: %w", err)
		}
		clinics = append(clinics, *clinic)
	}

	return clinics, nil
}

func (r *ClinicRepo) CountByFilter(ctx context.Context, filter domain.ClinicFilter) (int, error) {
	query := `SELECT COUNT(*) FROM clinics WHERE 1=1`

	conditions, args := buildClinicConditions(filter)
	query += conditions

	var total int
	err := r.db.QueryRow(ctx, query, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("ошибка получения количества клиник: %w", err)
	}

	return total, nil
}

func buildClinicConditions(filter domain.ClinicFilter) (string, []interface{}) {
	var conditions string
	var args []interface{}

	if filter.CityID != nil {
		conditions += fmt.Sprintf(" AND city_id = $%d", len(args)+1)
		args = append(args, *filter.CityID)
	}

	if filter.OwnerID != nil {
		conditions += fmt.Sprintf(" AND owner_id = $%d", len(args)+1)
		args = append(args, *filter.OwnerID)
	}

	if filter.SearchTerm != nil && *filter.SearchTerm != "" {
		conditions += fmt.Sprintf(" AND (name ILIKE $%d OR address ILIKE $%d)", len(args)+1, len(args)+1)
		args = append(args, "%"+*filter.SearchTerm+"%")
	}

	return conditions, args
}

func (r *ClinicRepo) UpdatePhoto(ctx context.Context, id int64, photoURL string) error {
	query := `UPDATE clinics SET photo_url = $1, updated_at = $2 WHERE id = $3`

	tag, err := r.db.Exec(ctx, query, photoURL, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка обновления фото клиники: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("клиника не найдена")
	}

	return nil
}

func (r *ClinicRepo) SetSubscription(ctx context.Context, id int64, subscriptionID int64, expiresAt time.Time) error {
	query := `
		UPDATE clinics
		SET subscription_id = $1, subscription_expires_at = $2, updated_at = $3
		WHERE id = $4
	`

	tag, err := r.db.Exec(ctx, query, subscriptionID, expiresAt, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка подключения тарифа: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("клиника не найдена")
	}

	return nil
}
