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

type ReviewRepo struct {
	db *pgxpool.Pool
}

func NewReviewRepository(db *pgxpool.Pool) *ReviewRepo {
	return &ReviewRepo{
		db: db,
	}
}

// recomputeAggregate пересчитывает средний рейтинг и количество отзывов
// сущности по множеству одобренных отзывов. Выполняется в той же
// транзакции, что и изменение отзыва, чтобы производные поля не
// расходились с исходными данными.
func recomputeAggregate(ctx context.Context, tx pgx.Tx, reviewTable, entityTable, entityColumn string, entityID int64) error {
	rows, err := tx.Query(
		ctx,
		fmt.Sprintf(`SELECT rating FROM %s WHERE %s = $1 AND status = $2`, reviewTable, entityColumn),
		entityID,
		domain.ReviewStatusApproved,
	)
	if err != nil {
		return fmt.Errorf("ошибка получения одобренных отзывов: %w", err)
	}
	defer rows.Close()

	var ratings []int
	for rows.Next() {
		var rating int
		if err := rows.Scan(&rating); err != nil {
			return fmt.Errorf("ошибка сканирования рейтинга: %w", err)
		}
		ratings = append(ratings, rating)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("ошибка обработки результатов запроса: %w", err)
	}

	avg, count := domain.AggregateRatings(ratings)

	_, err = tx.Exec(
		ctx,
		fmt.Sprintf(`UPDATE %s SET average_rating = $1, reviews_count = $2, updated_at = $3 WHERE id = $4`, entityTable),
		avg,
		count,
		time.Now(),
		entityID,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления рейтинга: %w", err)
	}

	return nil
}

func (r *ReviewRepo) CreateDoctorReview(ctx context.Context, authorID, doctorID int64, dto domain.CreateReviewDTO) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	query := `
		INSERT INTO doctor_reviews (author_id, doctor_id, rating, comment, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id
	`

	err = tx.QueryRow(ctx, query, authorID, doctorID, dto.Rating, dto.Comment, domain.ReviewStatusPending, time.Now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания отзыва: %w", err)
	}

	if err := recomputeAggregate(ctx, tx, "doctor_reviews", "doctors", "doctor_id", doctorID); err != nil {
		return 0, err
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return id, nil
}

func scanDoctorReview(row pgx.Row) (*domain.DoctorReview, error) {
	var review domain.DoctorReview
	err := row.Scan(
		&review.ID,
		&review.AuthorID,
		&review.DoctorID,
		&review.Rating,
		&review.Comment,
		&review.Status,
		&review.CreatedAt,
		&review.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("отзыв не найден")
		}
		return nil, fmt.Errorf("ошибка получения отзыва: %w", err)
	}

	return &review, nil
}

const doctorReviewSelect = `
	SELECT id, author_id, doctor_id, rating, comment, status, created_at, updated_at
	FROM doctor_reviews
`

func (r *ReviewRepo) GetDoctorReviewByID(ctx context.Context, id int64) (*domain.DoctorReview, error) {
	return scanDoctorReview(r.db.QueryRow(ctx, doctorReviewSelect+` WHERE id = $1`, id))
}

func (r *ReviewRepo) GetDoctorReviewByAuthor(ctx context.Context, authorID, doctorID int64) (*domain.DoctorReview, error) {
	return scanDoctorReview(r.db.QueryRow(ctx, doctorReviewSelect+` WHERE author_id = $1 AND doctor_id = $2`, authorID, doctorID))
}

func (r *ReviewRepo) UpdateDoctorReview(ctx context.Context, id int64, dto domain.UpdateReviewDTO) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var doctorID int64
	query := `
		UPDATE doctor_reviews
		SET rating = COALESCE($1, rating),
			comment = COALESCE($2, comment),
			updated_at = $3
		WHERE id = $4
		RETURNING doctor_id
	`

	err = tx.QueryRow(ctx, query, dto.Rating, dto.Comment, time.Now(), id).Scan(&doctorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NewNotFoundError("отзыв не найден")
		}
		return fmt.Errorf("ошибка обновления отзыва: %w", err)
	}

	if err := recomputeAggregate(ctx, tx, "doctor_reviews", "doctors", "doctor_id", doctorID); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return nil
}

func (r *ReviewRepo) UpdateDoctorReviewStatus(ctx context.Context, id int64, status domain.ReviewStatus) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var doctorID int64
	err = tx.QueryRow(
		ctx,
		`UPDATE doctor_reviews SET status = $1, updated_at = $2 WHERE id = $3 RETURNING doctor_id`,
		status,
		time.Now(),
		id,
	).Scan(&doctorID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NewNotFoundError("отзыв не найден")
		}
		return fmt.Errorf("ошибка обновления статуса отзыва: %w", err)
	}

	if err := recomputeAggregate(ctx, tx, "doctor_reviews", "doctors", "doctor_id", doctorID); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return nil
}

func (r *ReviewRepo) DeleteDoctorReview(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var doctorID int64
	err = tx.QueryRow(ctx, `DELETE FROM doctor_reviews WHERE id = $1 RETURNING doctor_id`, id).Scan(&doctorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NewNotFoundError("отзыв не найден")
		}
		return fmt.Errorf("ошибка удаления отзыва: %w", err)
	}

	if err := recomputeAggregate(ctx, tx, "doctor_reviews", "doctors", "doctor_id", doctorID); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return nil
}

func (r *ReviewRepo) ListDoctorReviews(ctx context.Context, doctorID int64, filter domain.ReviewFilter) ([]domain.DoctorReview, error) {
	query := doctorReviewSelect + ` WHERE doctor_id = $1`

	conditions, args := buildReviewConditions(filter, 1)
	query += conditions
	args = append([]interface{}{doctorID}, args...)

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка отзывов: %w", err)
	}
	defer rows.Close()

	var reviews []domain.DoctorReview
	for rows.Next() {
		review, err := scanDoctorReview(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки отзыва: %w", err)
		}
		reviews = append(reviews, *review)
	}

	return reviews, nil
}

func (r *ReviewRepo) CountDoctorReviews(ctx context.Context, doctorID int64, filter domain.ReviewFilter) (int, error) {
	query := `SELECT COUNT(*) FROM doctor_reviews WHERE doctor_id = $1`

	conditions, args := buildReviewConditions(filter, 1)
	query += conditions
	args = append([]interface{}{doctorID}, args...)

	var total int
	err := r.db.QueryRow(ctx, query, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("ошибка получения количества отзывов: %w", err)
	}

	return total, nil
}

func (r *ReviewRepo) CreateClinicReview(ctx context.Context, authorID, clinicID int64, dto domain.CreateReviewDTO) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	query := `
		INSERT INTO clinic_reviews (author_id, clinic_id, rating, comment, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id
	`

	err = tx.QueryRow(ctx, query, authorID, clinicID, dto.Rating, dto.Comment, domain.ReviewStatusPending, time.Now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания отзыва: %w", err)
	}

	if err := recomputeAggregate(ctx, tx, "clinic_reviews", "clinics", "clinic_id", clinicID); err != nil {
		return 0, err
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return id, nil
}

func scanClinicReview(row pgx.Row) (*domain.ClinicReview, error) {
	var review domain.ClinicReview
	err := row.Scan(
		&review.ID,
		&review.AuthorID,
		&review.ClinicID,
		&review.Rating,
		&review.Comment,
		&review.Status,
		&review.CreatedAt,
		&review.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("отзыв не найден")
		}
		return nil, fmt.Errorf("ошибка получения отзыва: %w", err)
	}

	return &review, nil
}

const clinicReviewSelect = `
	SELECT id, author_id, clinic_id, rating, comment, status, created_at, updated_at
	FROM clinic_reviews
`

func (r *ReviewRepo) GetClinicReviewByID(ctx context.Context, id int64) (*domain.ClinicReview, error) {
	return scanClinicReview(r.db.QueryRow(ctx, clinicReviewSelect+` WHERE id = $1`, id))
}

func (r *ReviewRepo) GetClinicReviewByAuthor(ctx context.Context, authorID, clinicID int64) (*domain.ClinicReview, error) {
	return scanClinicReview(r.db.QueryRow(ctx, clinicReviewSelect+` WHERE author_id = $1 AND clinic_id = $2`, authorID, clinicID))
}

func (r *ReviewRepo) UpdateClinicReview(ctx context.Context, id int64, dto domain.UpdateReviewDTO) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var clinicID int64
	query := `
		UPDATE clinic_reviews
		SET rating = COALESCE($1, rating),
			comment = COALESCE($2, comment),
			updated_at = $3
		WHERE id = $4
		RETURNING clinic_id
	`

	err = tx.QueryRow(ctx, query, dto.Rating, dto.Comment, time.Now(), id).Scan(&clinicID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NewNotFoundError("отзыв не найден")
		}
		return fmt.Errorf("ошибка обновления отзыва: %w", err)
	}

	if err := recomputeAggregate(ctx, tx, "clinic_reviews", "clinics", "clinic_id", clinicID); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return nil
}

func (r *ReviewRepo) UpdateClinicReviewStatus(ctx context.Context, id int64, status domain.ReviewStatus) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var clinicID int64
	err = tx.QueryRow(
		ctx,
		`UPDATE clinic_reviews SET status = $1, updated_at = $2 WHERE id = $3 RETURNING clinic_id`,
		status,
		time.Now(),
		id,
	).Scan(&clinicID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NewNotFoundError("отзыв не найден")
		}
		return fmt.Errorf("ошибка обновления статуса отзыва: %w", err)
	}

	if err := recomputeAggregate(ctx, tx, "clinic_reviews", "clinics", "clinic_id", clinicID); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return nil
}

func (r *ReviewRepo) DeleteClinicReview(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var clinicID int64
	err = tx.QueryRow(ctx, `DELETE FROM clinic_reviews WHERE id = $1 RETURNING clinic_id`, id).Scan(&clinicID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NewNotFoundError("отзыв не найден")
		}
		return fmt.Errorf("ошибка удаления отзыва: %w", err)
	}

	if err := recomputeAggregate(ctx, tx, "clinic_reviews", "clinics", "clinic_id", clinicID); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return nil
}

func (r *ReviewRepo) ListClinicReviews(ctx context.Context, clinicID int64, filter domain.ReviewFilter) ([]domain.ClinicReview, error) {
	query := clinicReviewSelect + ` WHERE clinic_id = $1`

	conditions, args := buildReviewConditions(filter, 1)
	query += conditions
	args = append([]interface{}{clinicID}, args...)

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка отзывов: %w", err)
	}
	defer rows.Close()

	var reviews []domain.ClinicReview
	for rows.Next() {
		review, err := scanClinicReview(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки отзыва: %w", err)
		}
		reviews = append(reviews, *review)
	}

	return reviews, nil
}

func (r *ReviewRepo) CountClinicReviews(ctx context.Context, clinicID int64, filter domain.ReviewFilter) (int, error) {
	query := `SELECT COUNT(*) FROM clinic_reviews WHERE clinic_id = $1`

	conditions, args := buildReviewConditions(filter, 1)
	query += conditions
	args = append([]interface{}{clinicID}, args...)

	var total int
	err := r.db.QueryRow(ctx, query, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("ошибка получения количества отзывов: %w", err)
	}

	return total, nil
}

func buildReviewConditions(filter domain.ReviewFilter, offset int) (string, []interface{}) {
	var conditions string
	var args []interface{}

	if filter.AuthorID != nil {
		conditions += fmt.Sprintf(" AND author_id = $%d", offset+len(args)+1)
		args = append(args, *filter.AuthorID)
	}

	if filter.Status != nil {
		conditions += fmt.Sprintf(" AND status = $%d", offset+len(args)+1)
		args = append(args, *filter.Status)
	}

	return conditions, args
}
