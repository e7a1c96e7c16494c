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

type SpecialtyRepo struct {
	db *pgxpool.Pool
}

func NewSpecialtyRepository(db *pgxpool.Pool) *SpecialtyRepo {
	return &SpecialtyRepo{db: db}
}

func (r *SpecialtyRepo) Create(ctx context.Context, dto domain.CreateSpecialtyDTO) (int64, error) {
	var id int64
	query := `
		INSERT INTO specialties (name, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, dto.Name, dto.Description, dto.IsActive, time.Now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания специальности: %w", err)
	}

	return id, nil
}

func (r *SpecialtyRepo) GetByID(ctx context.Context, id int64) (*domain.Specialty, error) {
	query := `
		SELECT id, name, description, is_active, created_at, updated_at
		FROM specialties
		WHERE id = $1
	`

	var specialty domain.Specialty
	err := r.db.QueryRow(ctx, query, id).Scan(
		&specialty.ID,
		&specialty.Name,
		&specialty.Description,
		&specialty.IsActive,
		&specialty.CreatedAt,
		&specialty.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("специальность не найдена")
		}
		return nil, fmt.Errorf("ошибка получения специальности: %w", err)
	}

	return &specialty, nil
}

func (r *SpecialtyRepo) Update(ctx context.Context, id int64, dto domain.UpdateSpecialtyDTO) error {
	query := `
		UPDATE specialties
		SET name = COALESCE($1, name),
			description = COALESCE($2, description),
			is_active = COALESCE($3, is_active),
			updated_at = $4
		WHERE id = $5
	`

	tag, err := r.db.Exec(ctx, query, dto.Name, dto.Description, dto.IsActive, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка обновления специальности: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("специальность не найдена")
	}

	return nil
}

func (r *SpecialtyRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM specialties WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления специальности: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("специальность не найдена")
	}

	return nil
}

func (r *SpecialtyRepo) List(ctx context.Context, filter domain.SpecialtyFilter) ([]domain.Specialty, error) {
	query := `
		SELECT s.id, s.name, s.description, s.is_active, s.created_at, s.updated_at
		FROM specialties s
		WHERE 1=1
	`

	conditions, args := buildSpecialtyConditions(filter)
	query += conditions

	query += fmt.Sprintf(" ORDER BY s.name LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка специальностей: %w", err)
	}
	defer rows.Close()

	var specialties []domain.Specialty
	for rows.Next() {
		var specialty domain.Specialty
		err := rows.Scan(
			&specialty.ID,
			&specialty.Name,
			&specialty.Description,
			&specialty.IsActive,
			&specialty.CreatedAt,
			&specialty.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки специальности: %w", err)
		}
		specialties = append(specialties, specialty)
	}

	return specialties, nil
}

func (r *SpecialtyRepo) CountByFilter(ctx context.Context, filter domain.SpecialtyFilter) (int, error) {
	query := `SELECT COUNT(*) FROM specialties s WHERE 1=1`

	conditions, args := buildSpecialtyConditions(filter)
	query += conditions

	var total int
	err := r.db.QueryRow(ctx, query, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("ошибка получения количества специальностей: %w", err)
	}

	return total, nil
}

func buildSpecialtyConditions(filter domain.SpecialtyFilter) (string, []interface{}) {
	var conditions string
	var args []interface{}

	if filter.IsActive != nil {
		conditions += fmt.Sprintf(" AND s.is_active = $%d", len(args)+1)
		args = append(args, *filter.IsActive)
	}

	if filter.SearchTerm != nil && *filter.SearchTerm != "" {
		conditions += fmt.Sprintf(" AND s.name ILIKE $%d", len(args)+1)
		args = append(args, "%"+*filter.SearchTerm+"%")
	}

	if filter.DoctorID != nil {
		conditions += fmt.Sprintf(" AND s.id IN (SELECT specialty_id FROM doctor_specialties WHERE doctor_id = $%d)", len(args)+1)
		args = append(args, *filter.DoctorID)
	}

	return conditions, args
}
