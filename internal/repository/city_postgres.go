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

type CityRepo struct {
	db *pgxpool.Pool
}

func NewCityRepository(db *pgxpool.Pool) *CityRepo {
	return &CityRepo{db: db}
}

func (r *CityRepo) Create(ctx context.Context, dto domain.CreateCityDTO) (int64, error) {
	var id int64
	query := `
		INSERT INTO cities (name, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, dto.Name, dto.IsActive, time.Now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания города: %w", err)
	}

	return id, nil
}

func (r *CityRepo) GetByID(ctx context.Context, id int64) (*domain.City, error) {
	query := `
		SELECT id, name, is_active, created_at, updated_at
		FROM cities
		WHERE id = $1
	`

	var city domain.City
	err := r.db.QueryRow(ctx, query, id).Scan(
		&city.ID,
		&city.Name,
		&city.IsActive,
		&city.CreatedAt,
		&city.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("город не найден")
		}
		return nil, fmt.Errorf("ошибка получения города: %w", err)
	}

	return &city, nil
}

func (r *CityRepo) Update(ctx context.Context, id int64, dto domain.UpdateCityDTO) error {
	query := `
		UPDATE cities
		SET name = COALESCE($1, name),
			is_active = COALESCE($2, is_active),
			updated_at = $3
		WHERE id = $4
	`

	tag, err := r.db.Exec(ctx, query, dto.Name, dto.IsActive, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка обновления города: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("город не найден")
	}

	return nil
}

func (r *CityRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM cities WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления города: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("город не найден")
	}

	return nil
}

func (r *CityRepo) List(ctx context.Context, filter domain.CityFilter) ([]domain.City, error) {
	query := `
		SELECT id, name, is_active, created_at, updated_at
		FROM cities
		WHERE 1=1
	`

	conditions, args := buildCityConditions(filter)
	query += conditions

	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка городов: %w", err)
	}
	defer rows.Close()

	var cities []domain.City
	for rows.Next() {
		var city domain.City
		err := rows.Scan(&city.ID, &city.Name, &city.IsActive, &city.CreatedAt, &city.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки города: %w", err)
		}
		cities = append(cities, city)
	}

	return cities, nil
}

func (r *CityRepo) CountByFilter(ctx context.Context, filter domain.CityFilter) (int, error) {
	query := `SELECT COUNT(*) FROM cities WHERE 1=1`

	conditions, args := buildCityConditions(filter)
	query += conditions

	var total int
	err := r.db.QueryRow(ctx, query, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("ошибка получения количества городов: %w", err)
	}

	return total, nil
}

func buildCityConditions(filter domain.CityFilter) (string, []interface{}) {
	var conditions string
	var args []interface{}

	if filter.IsActive != nil {
		conditions += fmt.Sprintf(" AND is_active = $%d", len(args)+1)
		args = append(args, *filter.IsActive)
	}

	if filter.SearchTerm != nil && *filter.SearchTerm != "" {
		conditions += fmt.Sprintf(" AND name ILIKE $%d", len(args)+1)
		args = append(args, "%"+*filter.SearchTerm+"%")
	}

	return conditions, args
}
