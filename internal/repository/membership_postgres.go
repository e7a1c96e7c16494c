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

type MembershipRepo struct {
	db *pgxpool.Pool
}

func NewMembershipRepository(db *pgxpool.Pool) *MembershipRepo {
	return &MembershipRepo{
		db: db,
	}
}

func (r *MembershipRepo) Create(ctx context.Context, dto domain.CreateMembershipDTO) (int64, error) {
	var id int64
	query := `
		INSERT INTO clinic_memberships (doctor_id, clinic_id, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, dto.DoctorID, dto.ClinicID, dto.Position, time.Now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания членства: %w", err)
	}

	return id, nil
}

const membershipSelect = `
	SELECT id, doctor_id, clinic_id, position, created_at, updated_at
	FROM clinic_memberships
`

func scanMembership(row pgx.Row) (*domain.ClinicMembership, error) {
	var membership domain.ClinicMembership
	err := row.Scan(
		&membership.ID,
		&membership.DoctorID,
		&membership.ClinicID,
		&membership.Position,
		&membership.CreatedAt,
		&membership.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("членство не найдено")
		}
		return nil, fmt.Errorf("ошибка получения членства: %w", err)
	}

	return &membership, nil
}

func (r *MembershipRepo) GetByID(ctx context.Context, id int64) (*domain.ClinicMembership, error) {
	return scanMembership(r.db.QueryRow(ctx, membershipSelect+` WHERE id = $1`, id))
}

func (r *MembershipRepo) GetByDoctorAndClinic(ctx context.Context, doctorID, clinicID int64) (*domain.ClinicMembership, error) {
	return scanMembership(r.db.QueryRow(ctx, membershipSelect+` WHERE doctor_id = $1 AND clinic_id = $2`, doctorID, clinicID))
}

func (r *MembershipRepo) Update(ctx context.Context, id int64, dto domain.UpdateMembershipDTO) error {
	query := `
		UPDATE clinic_memberships
		SET position = COALESCE($1, position),
			updated_at = $2
		WHERE id = $3
	`

	tag, err := r.db.Exec(ctx, query, dto.Position, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка обновления членства: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("членство не найдено")
	}

	return nil
}

func (r *MembershipRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM clinic_memberships WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления членства: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("членство не найдено")
	}

	return nil
}

func (r *MembershipRepo) List(ctx context.Context, filter domain.MembershipFilter) ([]domain.ClinicMembership, error) {
	query := membershipSelect + ` WHERE 1=1`

	conditions, args := buildMembershipConditions(filter)
	query += conditions

	query += fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка членств: %w", err)
	}
	defer rows.Close()

	var memberships []domain.ClinicMembership
	for rows.Next() {
		membership, err := scanMembership(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки членства: %w", err)
		}
		memberships = append(memberships, *membership)
	}

	return memberships, nil
}

func (r *MembershipRepo) CountByFilter(ctx context.Context, filter domain.MembershipFilter) (int, error) {
	query := `SELECT COUNT(*) FROM clinic_memberships WHERE 1=1`

	conditions, args := buildMembershipConditions(filter)
	query += conditions

	var total int
	err := r.db.QueryRow(ctx, query, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("ошибка получения количества членств: %w", err)
	}

	return total, nil
}

func buildMembershipConditions(filter domain.MembershipFilter) (string, []interface{}) {
	var conditions string
	var args []interface{}

	if filter.DoctorID != nil {
		conditions += fmt.Sprintf(" AND doctor_id = $%d", len(args)+1)
		args = append(args, *filter.DoctorID)
	}

	if filter.ClinicID != nil {
		conditions += fmt.Sprintf(" AND clinic_id = $%d", len(args)+1)
		args = append(args, *filter.ClinicID)
	}

	return conditions, args
}
