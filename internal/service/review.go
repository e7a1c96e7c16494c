package service

import (
	"context"

	"go.uber.org/zap"

	"mediq/internal/domain"
	"mediq/internal/repository"
)

type ReviewServiceImpl struct {
	repo       repository.ReviewRepository
	doctorRepo repository.DoctorRepository
	clinicRepo repository.ClinicRepository
	logger     *zap.Logger
}

func NewReviewService(
	repo repository.ReviewRepository,
	doctorRepo repository.DoctorRepository,
	clinicRepo repository.ClinicRepository,
	logger *zap.Logger,
) *ReviewServiceImpl {
	return &ReviewServiceImpl{
		repo:       repo,
		doctorRepo: doctorRepo,
		clinicRepo: clinicRepo,
		logger:     logger,
	}
}

func (s *ReviewServiceImpl) CreateDoctorReview(ctx context.Context, authorID, doctorID int64, dto domain.CreateReviewDTO) (int64, error) {
	if dto.Rating < 1 || dto.Rating > 5 {
		return 0, domain.NewValidationError("оценка должна быть от 1 до 5")
	}

	doctor, err := s.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		return 0, err
	}

	if doctor.UserID == authorID {
		return 0, domain.NewForbiddenError("нельзя оставить отзыв на самого себя")
	}

	existing, err := s.repo.GetDoctorReviewByAuthor(ctx, authorID, doctorID)
	if err == nil && existing != nil {
		return 0, domain.NewConflictError("отзыв на этого врача уже оставлен")
	}

	id, err := s.repo.CreateDoctorReview(ctx, authorID, doctorID, dto)
	if err != nil {
		s.logger.Error("ошибка при создании отзыва на врача",
			zap.Int64("authorId", authorID), zap.Int64("doctorId", doctorID), zap.Error(err))
		return 0, err
	}

	return id, nil
}

func (s *ReviewServiceImpl) UpdateDoctorReview(ctx context.Context, authorID, reviewID int64, dto domain.UpdateReviewDTO) error {
	if dto.Rating != nil && (*dto.Rating < 1 || *dto.Rating > 5) {
		return domain.NewValidationError("оценка должна быть от 1 до 5")
	}

	review, err := s.repo.GetDoctorReviewByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if review.AuthorID != authorID {
		return domain.NewForbiddenError("редактировать отзыв может только его автор")
	}

	err = s.repo.UpdateDoctorReview(ctx, reviewID, dto)
	if err != nil {
		s.logger.Error("ошибка при обновлении отзыва на врача", zap.Int64("id", reviewID), zap.Error(err))
		return err
	}

	return nil
}

func (s *ReviewServiceImpl) UpdateDoctorReviewStatus(ctx context.Context, reviewID int64, dto domain.UpdateReviewStatusDTO) error {
	if !dto.Status.IsValid() {
		return domain.NewValidationError("некорректный статус отзыва")
	}

	err := s.repo.UpdateDoctorReviewStatus(ctx, reviewID, dto.Status)
	if err != nil {
		s.logger.Error("ошибка при смене статуса отзыва на врача", zap.Int64("id", reviewID), zap.Error(err))
		return err
	}

	return nil
}

func (s *ReviewServiceImpl) DeleteDoctorReview(ctx context.Context, userID int64, role domain.UserRole, reviewID int64) error {
	review, err := s.repo.GetDoctorReviewByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if review.AuthorID != userID && role != domain.UserRoleAdmin {
		return domain.NewForbiddenError("удалить отзыв может только его автор или администратор")
	}

	err = s.repo.DeleteDoctorReview(ctx, reviewID)
	if err != nil {
		s.logger.Error("ошибка при удалении отзыва на врача", zap.Int64("id", reviewID), zap.Error(err))
		return err
	}

	return nil
}

func (s *ReviewServiceImpl) GetDoctorReviewByID(ctx context.Context, id int64) (*domain.DoctorReview, error) {
	review, err := s.repo.GetDoctorReviewByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return review, nil
}

func (s *ReviewServiceImpl) ListDoctorReviews(ctx context.Context, doctorID int64, filter domain.ReviewFilter) ([]domain.DoctorReview, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	_, err := s.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		return nil, 0, err
	}

	reviews, err := s.repo.ListDoctorReviews(ctx, doctorID, filter)
	if err != nil {
		s.logger.Error("ошибка при получении отзывов на врача", zap.Int64("doctorId", doctorID), zap.Error(err))
		return nil, 0, err
	}

	total, err := s.repo.CountDoctorReviews(ctx, doctorID, filter)
	if err != nil {
		s.logger.Error("ошибка при подсчете отзывов на врача", zap.Int64("doctorId", doctorID), zap.Error(err))
		return nil, 0, err
	}

	return reviews, total, nil
}

func (s *ReviewServiceImpl) CreateClinicReview(ctx context.Context, authorID, clinicID int64, dto domain.CreateReviewDTO) (int64, error) {
	if dto.Rating < 1 || dto.Rating > 5 {
		return 0, domain.NewValidationError("оценка должна быть от 1 до 5")
	}

	clinic, err := s.clinicRepo.GetByID(ctx, clinicID)
	if err != nil {
		return 0, err
	}

	if clinic.OwnerID == authorID {
		return 0, domain.NewForbiddenError("нельзя оставить отзыв на собственную клинику")
	}

	existing, err := s.repo.GetClinicReviewByAuthor(ctx, authorID, clinicID)
	if err == nil && existing != nil {
		return 0, domain.NewConflictError("отзыв на эту клинику уже оставлен")
	}

	id, err := s.repo.CreateClinicReview(ctx, authorID, clinicID, dto)
	if err != nil {
		s.logger.Error("ошибка при создании отзыва на клинику",
			zap.Int64("authorId", authorID), zap.Int64("clinicId", clinicID), zap.Error(err))
		return 0, err
	}

	return id, nil
}

func (s *ReviewServiceImpl) UpdateClinicReview(ctx context.Context, authorID, reviewID int64, dto domain.UpdateReviewDTO) error {
	if dto.Rating != nil && (*dto.Rating < 1 || *dto.Rating > 5) {
		return domain.NewValidationError("оценка должна быть от 1 до 5")
	}

	review, err := s.repo.GetClinicReviewByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if review.AuthorID != authorID {
		return domain.NewForbiddenError("редактировать отзыв может только его автор")
	}

	err = s.repo.UpdateClinicReview(ctx, reviewID, dto)
	if err != nil {
		s.logger.Error("ошибка при обновлении отзыва на клинику", zap.Int64("id", reviewID), zap.Error(err))
		return err
	}

	return nil
}

func (s *ReviewServiceImpl) UpdateClinicReviewStatus(ctx context.Context, reviewID int64, dto domain.UpdateReviewStatusDTO) error {
	if !dto.Status.IsValid() {
		return domain.NewValidationError("некорректный статус отзыва")
	}

	err := s.repo.UpdateClinicReviewStatus(ctx, reviewID, dto.Status)
	if err != nil {
		s.logger.Error("ошибка при смене статуса отзыва на клинику", zap.Int64("id", reviewID), zap.Error(err))
		return err
	}

	return nil
}

func (s *ReviewServiceImpl) DeleteClinicReview(ctx context.Context, userID int64, role domain.UserRole, reviewID int64) error {
	review, err := s.repo.GetClinicReviewByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if review.AuthorID != userID && role != domain.UserRoleAdmin {
		return domain.NewForbiddenError("удалить отзыв может только его автор или администратор")
	}

	err = s.repo.DeleteClinicReview(ctx, reviewID)
	if err != nil {
		s.logger.Error("ошибка при удалении отзыва на клинику", zap.Int64("id", reviewID), zap.Error(err))
		return err
	}

	return nil
}

func (s *ReviewServiceImpl) GetClinicReviewByID(ctx context.Context, id int64) (*domain.ClinicReview, error) {
	review, err := s.repo.GetClinicReviewByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return review, nil
}

func (s *ReviewServiceImpl) ListClinicReviews(ctx context.Context, clinicID int64, filter domain.ReviewFilter) ([]domain.ClinicReview, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	_, err := s.clinicRepo.GetByID(ctx, clinicID)
	if err != nil {
		return nil, 0, err
	}

	reviews, err := s.repo.ListClinicReviews(ctx, clinicID, filter)
	if err != nil {
		s.logger.Error("ошибка при получении отзывов на клинику", zap.Int64("clinicId", clinicID), zap.Error(err))
		return nil, 0, err
	}

	total, err := s.repo.CountClinicReviews(ctx, clinicID, filter)
	if err != nil {
		s.logger.Error("ошибка при подсчете отзывов на клинику", zap.Int64("clinicId", clinicID), zap.Error(err))
		return nil, 0, err
	}

	return reviews, total, nil
}
