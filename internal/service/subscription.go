package service

import (
	"context"

	"go.uber.org/zap"

	"mediq/internal/domain"
	"mediq/internal/repository"
)

type SubscriptionServiceImpl struct {
	repo   repository.SubscriptionRepository
	logger *zap.Logger
}

func NewSubscriptionService(repo repository.SubscriptionRepository, logger *zap.Logger) *SubscriptionServiceImpl {
	return &SubscriptionServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *SubscriptionServiceImpl) Create(ctx context.Context, dto domain.CreateSubscriptionDTO) (int64, error) {
	if dto.DurationDays <= 0 {
		return 0, domain.NewValidationError("длительность тарифа должна быть положительной")
	}

	id, err := s.repo.Create(ctx, dto)
	if err != nil {
		s.logger.Error("ошибка при создании тарифа", zap.Error(err))
		return 0, err
	}

	return id, nil
}

func (s *SubscriptionServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Subscription, error) {
	subscription, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка при получении тарифа", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return subscription, nil
}

func (s *SubscriptionServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateSubscriptionDTO) error {
	if dto.DurationDays != nil && *dto.DurationDays <= 0 {
		return domain.NewValidationError("длительность тарифа должна быть положительной")
	}

	err := s.repo.Update(ctx, id, dto)
	if err != nil {
		s.logger.Error("ошибка при обновлении тарифа", zap.Int64("id", id), zap.Error(err))
		return err
	}

	return nil
}

func (s *SubscriptionServiceImpl) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("ошибка при удалении тарифа", zap.Int64("id", id), zap.Error(err))
		return err
	}

	return nil
}

func (s *SubscriptionServiceImpl) List(ctx context.Context, filter domain.SubscriptionFilter) ([]domain.Subscription, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	subscriptions, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка при получении списка тарифов", zap.Error(err))
		return nil, 0, err
	}

	total, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка при подсчете тарифов", zap.Error(err))
		return nil, 0, err
	}

	return subscriptions, total, nil
}
