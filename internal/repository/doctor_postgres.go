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

type DoctorRepo struct {
	db *pgxpool.Pool
}

func NewDoctorRepository(db *pgxpool.Pool) *DoctorRepo {
	return &DoctorRepo{
		db: db,
	}
}

func (r *DoctorRepo) Create(ctx context.Context, userID int64, dto domain.CreateDoctorDTO) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO doctors (user_id, bio, experience_years, profile_photo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id
	`

	now := time.Now()
	var id int64
	err = tx.QueryRow(ctx, query,
		userID,
		dto.Bio,
		dto.ExperienceYears,
		"",
		now,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания профиля врача: %w", err)
	}

	for _, specialtyID := range dto.SpecialtyIDs {
		_, err = tx.Exec(ctx,
			`INSERT INTO doctor_specialties (doctor_id, specialty_id, created_at) VALUES ($1, $2, $3)`,
			id, specialtyID, now,
		)
		if err != nil {
			return 0, fmt.Errorf("ошибка привязки специальности: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return id, nil
}

const doctorSelect = `
	SELECT d.id, d.user_id, d.bio, d.experience_years, d.average_rating, d.reviews_count,
	       d.profile_photo_url, d.created_at, d.updated_at,
	       u.id, u.email, u.phone, u.first_name, u.last_name, u.middle_name, u.role, u.is_active, u.created_at, u.updated_at
	FROM doctors d
	JOIN users u ON d.user_id = u.id
`

func (r *DoctorRepo) scanDoctor(row pgx.Row) (*domain.Doctor, error) {
	var doctor domain.Doctor
	var user domain.User

	err := row.Scan(
		&doctor.ID,
		&doctor.UserID,
		&doctor.Bio,
		&doctor.ExperienceYears,
		&doctor.AverageRating,
		&doctor.ReviewsCount,
		&doctor.ProfilePhotoURL,
		&doctor.CreatedAt,
		&doctor.UpdatedAt,
		&user.ID,
		&user.Email,
		&user.Phone,
		&user.FirstName,
		&user.LastName,
		&user.MiddleName,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("врач не найден")
		}
		return nil, fmt.Errorf("ошибка получения врача: %w", err)
	}

	doctor.User = user
	return &doctor, nil
}

func (r *DoctorRepo) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	doctor, err := r.scanDoctor(r.db.QueryRow(ctx, doctorSelect+` WHERE d.id = $1`, id))
	if err != nil {
		return nil, err
	}

	specialties, err := r.GetSpecialtiesByDoctorID(ctx, doctor.ID)
	if err != nil {
		return nil, err
	}
	doctor.Specialties = specialties

	return doctor, nil
}

func (r *DoctorRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Doctor, error) {
	doctor, err := r.scanDoctor(r.db.QueryRow(ctx, doctorSelect+` WHERE d.user_id = $1`, userID))
	if err != nil {
		return nil, err
	}

	specialties, err := r.GetSpecialtiesByDoctorID(ctx, doctor.ID)
	if err != nil {
		return nil, err
	}
	doctor.Specialties = specialties

	return doctor, nil
}

func (r *DoctorRepo) Update(ctx context.Context, id int64, dto domain.UpdateDoctorDTO) error {
	query := `
		UPDATE doctors
		SET bio = COALESCE($1, bio),
			experience_years = COALESCE($2, experience_years),
			updated_at = $3
		WHERE id = $4
	`

	tag, err := r.db.Exec(ctx, query, dto.Bio, dto.ExperienceYears, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка обновления профиля врача: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("врач не найден")
	}

	return nil
}

func (r *DoctorRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM doctors WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления врача: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("врач не найден")
	}

	return nil
}

func (r *DoctorRepo) List(ctx context.Context, filter domain.DoctorFilter) ([]domain.Doctor, error) {
	query := doctorSelect + ` WHERE u.is_active = true`

	conditions, args := buildDoctorConditions(filter)
	query += conditions

	query += fmt.Sprintf(" ORDER BY d.average_rating DESC, d.id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка врачей: %w", err)
	}
	defer rows.Close()

	var doctors []domain.Doctor
	for rows.Next() {
		doctor, err := r.scanDoctor(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки врача: %w", err)
		}
		doctors = append(doctors, *doctor)
	}

	for i := range doctors {
		specialties, err := r.GetSpecialtiesByDoctorID(ctx, doctors[i].ID)
		if err != nil {
			return nil, err
		}
		doctors[i].Specialties = specialties
	}

	return doctors, nil
}

func (r *DoctorRepo) CountByFilter(ctx context.Context, filter domain.DoctorFilter) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM doctors d
		JOIN users u ON d.user_id = u.id
		WHERE u.is_active = true
	`

	conditions, args := buildDoctorConditions(filter)
	query += conditions

	var total int
	err := r.db.QueryRow(ctx, query, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("ошибка получения количества врачей: %w", err)
	}

	return total, nil
}

func buildDoctorConditions(filter domain.DoctorFilter) (string, []interface{}) {
	var conditions string
	var args []interface{}

	if filter.SpecialtyID != nil {
		conditions += fmt.Sprintf(" AND d.id IN (SELECT doctor_id FROM doctor_specialties WHERE specialty_id = $%d)", len(args)+1)
		args = append(args, *filter.SpecialtyID)
	}

	if filter.CityID != nil {
		conditions += fmt.Sprintf(
			" AND d.id IN (SELECT cm.doctor_id FROM clinic_memberships cm JOIN clinics c ON cm.clinic_id = c.id WHERE c.city_id = $%d)",
			len(args)+1,
		)
		args = append(args, *filter.CityID)
	}

	if filter.SearchTerm != nil && *filter.SearchTerm != "" {
		conditions += fmt.Sprintf(" AND (u.first_name ILIKE $%d OR u.last_name ILIKE $%d)", len(args)+1, len(args)+1)
		args = append(args, "%"+*filter.SearchTerm+"%")
	}

	return conditions, args
}

func (r *DoctorRepo) UpdateProfilePhoto(ctx context.Context, id int64, photoURL string) error {
	query := `UPDATE doctors SET profile_photo_url = $1, updated_at = $2 WHERE id = $3`

	tag, err := r.db.Exec(ctx, query, photoURL, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка обновления фото врача: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("врач не найден")
	}

	return nil
}

func (r *DoctorRepo) AddSpecialty(ctx context.Context, doctorID, specialtyID int64) error {
	query := `
		INSERT INTO doctor_specialties (doctor_id, specialty_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (doctor_id, specialty_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, doctorID, specialtyID, time.Now())
	if err != nil {
		return fmt.Errorf("ошибка привязки специальности: %w", err)
	}

	return nil
}

func (r *DoctorRepo) RemoveSpecialty(ctx context.Context, doctorID, specialtyID int64) error {
	query := `DELETE FROM doctor_specialties WHERE doctor_id = $1 AND specialty_id = $2`

	_, err := r.db.Exec(ctx, query, doctorID, specialtyID)
	if err != nil {
		return fmt.Errorf("ошибка отвязки специальности: %w", err)
	}

	return nil
}

func (r *DoctorRepo) GetSpecialtiesByDoctorID(ctx context.Context, doctorID int64) ([]domain.Specialty, error) {
	query := `
		SELECT s.id, s.name, s.description, s.is_active, s.created_at, s.updated_at
		FROM specialties s
		JOIN doctor_specialties ds ON ds.specialty_id = s.id
		WHERE ds.doctor_id = $1
		ORDER BY s.name
	`

	rows, err := r.db.Query(ctx, query, doctorID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения специальностей врача: %w", err)
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
