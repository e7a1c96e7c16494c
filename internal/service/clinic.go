package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"mediq/internal/domain"
	"mediq/internal/repository"
	"mediq/internal/storage"
)

type ClinicServiceImpl struct {
	repo             repository.ClinicRepository
	cityRepo         repository.CityRepository
	subscriptionRepo repository.SubscriptionRepository
	fileStorage      storage.FileStorage
	logger           *zap.Logger
}

func NewClinicService(
	repo repository.ClinicRepository,
	cityRepo repository.CityRepository,
	subscriptionRepo repository.SubscriptionRepository,
	fileStorage storage.FileStorage,
	logger *zap.Logger,
) *ClinicServiceImpl {
	return &ClinicServiceImpl{
		repo:             repo,
		cityRepo:         cityRepo,
		subscriptionRepo: subscriptionRepo,
		fileStorage:      fileStorage,
		logger:           logger,
	}
}

func (s *ClinicServiceImpl) Create(ctx context.Context, ownerID int64, dto domain.CreateClinicDTO) (int64, error) {
	city, err := s.cityRepo.GetByID(ctx, dto.CityID)
	if err != nil {
		return 0, domain.NewValidationError("указан несуществующий город")
	}

	if !city.IsActive {
		return 0, domain.NewValidationError("город недоступен для регистрации клиник")
	}

	id, err := s.repo.Create(ctx, ownerID, dto)
	if err != nil {
		s.logger.Error("ошибка при создании клиники", zap.Int64("ownerId", ownerID), zap.Error(err))
		return 0, err
	}

	if len(dto.Photo) > 0 {
		if err := s.UploadPhoto(ctx, id, dto.Photo, "clinic"); err != nil {
			s.logger.Warn("ошибка при загрузке фото клиники", zap.Int64("clinicId", id), zap.Error(err))
		}
	}

	return id, nil
}

func (s *ClinicServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Clinic, error) {
	clinic, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка при получении клиники", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return clinic, nil
}

func (s *ClinicServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateClinicDTO) error {
	if dto.CityID != nil {
		_, err := s.cityRepo.GetByID(ctx, *dto.CityID)
		if err != nil {
			return domain.NewValidationError("указан несуществующий город")
		}
	}

	err := s.repo.Update(ctx, id, dto)
	if err != nil {
		s.logger.Error("ошибка при обновлении клиники", zap.Int64("id", id), zap.Error(err))
		return err
	}

	if len(dto.Photo) > 0 {
		if err := s.UploadPhoto(ctx, id, dto.Photo, "clinic"); err != nil {
			s.logger.Warn("ошибка при загрузке фото клиники", zap.Int64("clinicId", id), zap.Error(err))
		}
	}

	return nil
}

func (s *ClinicServiceImpl) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("ошибка при удалении клиники", zap.Int64("id", id), zap.Error(err))
		return err
	}

	return nil
}

func (s *ClinicServiceImpl) List(ctx context.Context, filter domain.ClinicFilter) ([]domain.Clinic, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	clinics, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка при получении списка клиник", zap.Error(err))
		return nil, 0, err
	}

	total, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка при подсчете клиник", zap.Error(err))
		return nil, 0, err
	}

	return clinics, total, nil
}

func (s *ClinicServiceImpl) UploadPhoto(ctx context.Context, clinicID int64, photo []byte, filename string) error {
	clinic, err := s.repo.GetByID(ctx, clinicID)
	if err != nil {
		return err
	}

	if clinic.PhotoURL != "" {
		if err := s.fileStorage.DeleteFile(ctx, clinic.PhotoURL); err != nil {
			s.logger.Warn("ошибка при удалении старого фото клиники", zap.Int64("clinicId", clinicID), zap.Error(err))
		}
	}

	url, err := s.fileStorage.UploadFile(ctx, photo, filename)
	if err != nil {
		s.logger.Error("ошибка при загрузке фото клиники", zap.Int64("clinicId", clinicID), zap.Error(err))
		return domain.NewValidationError("не удалось загрузить фото")
	}

	err = s.repo.UpdatePhoto(ctx, clinicID, url)
	if err != nil {
		s.logger.Error("ошибка при сохранении URL фото клиники", zap.Int64("clinicId", clinicID), zap.Error(err))
		return err
	}

	return nil
}

func (s *ClinicServiceImpl) DeletePhoto(ctx context.Context, clinicID int64) error {
	clinic, err := s.repo.GetByID(ctx, clinicID)
	if err != nil {
		return err
	}

	if clinic.PhotoURL == "" {
		return nil
	}

	if err := s.fileStorage.DeleteFile(ctx, clinic.PhotoURL); err != nil {
		s.logger.Warn("ошибка при удалении фото клиники из хранилища", zap.Int64("clinicId", clinicID), zap.Error(err))
	}

	err = s.repo.UpdatePhoto(ctx, clinicID, "")
	if err != nil {
		s.logger.Error("ошибка при очистке URL фото клиники", zap.Int64("clinicId", clinicID), zap.Error(err))
		return err
	}

	return nil
}

// Subscribe подключает клинике тариф; срок действия считается от
// текущего момента по длительности тарифа в днях.
func (s *ClinicServiceImpl) Subscribe(ctx context.Context, clinicID, subscriptionID int64) error {
	_, err := s.repo.GetByID(ctx, clinicID)
	if err != nil {
		return err
	}

	subscription, err := s.subscriptionRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		return err
	}

	if !subscription.IsActive {
		return domain.NewValidationError("тариф недоступен для подключения")
	}

	expiresAt := time.Now().AddDate(0, 0, subscription.DurationDays)

	err = s.repo.SetSubscription(ctx, clinicID, subscriptionID, expiresAt)
	if err != nil {
		s.logger.Error("ошибка при подключении тарифа",
			zap.Int64("clinicId", clinicID), zap.Int64("subscriptionId", subscriptionID), zap.Error(err))
		return err
	}

	return nil
}
