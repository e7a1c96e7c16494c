package service

import (
	"context"

	"go.uber.org/zap"

	"mediq/internal/domain"
	"mediq/internal/repository"
)

type CityServiceImpl struct {
	repo   repository.CityRepository
	logger *zap.Logger
}

func NewCityService(repo repository.CityRepository, logger *zap.Logger) *CityServiceImpl {
	return &CityServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *CityServiceImpl) Create(ctx context.Context, dto domain.CreateCityDTO) (int64, error) {
	id, err := s.repo.Create(ctx, dto)
	if err != nil {
		s.logger.Error("ошибка при создании города", zap.Error(err))
		return 0, err
	}

	return id, nil
}

func (s *CityServiceImpl) GetByID(ctx context.Context, id int64) (*domain.City, error) {
	city, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка при получении города", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return city, nil
}

func (s *CityServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateCityDTO) error {
	err := s.repo.Update(ctx, id, dto)
	if err != nil {
		s.logger.Error("ошибка при обновлении города", zap.Int64("id", id), zap.Error(err))
		return err
	}

	return nil
}

func (s *CityServiceImpl) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("ошибка при удалении города", zap.Int64("id", id), zap.Error(err))
		return err
	}

	return nil
}

func (s *CityServiceImpl) List(ctx context.Context, filter domain.CityFilter) ([]domain.City, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	cities, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка при получении списка городов", zap.Error(err))
		return nil, 0, err
	}

	total, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка при подсчете городов", zap.Error(err))
		return nil, 0, err
	}

	return cities, total, nil
}
