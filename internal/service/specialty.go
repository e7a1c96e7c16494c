package service

import (
	"context"

	"go.uber.org/zap"

	"mediq/internal/domain"
	"mediq/internal/repository"
)

type SpecialtyServiceImpl struct {
	repo   repository.SpecialtyRepository
	logger *zap.Logger
}

func NewSpecialtyService(repo repository.SpecialtyRepository, logger *zap.Logger) *SpecialtyServiceImpl {
	return &SpecialtyServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *SpecialtyServiceImpl) Create(ctx context.Context, dto domain.CreateSpecialtyDTO) (int64, error) {
	id, err := s.repo.Create(ctx, dto)
	if err != nil {
		s.logger.Error("ошибка при создании специальности", zap.Error(err))
		return 0, err
	}

	return id, nil
}

func (s *SpecialtyServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Specialty, error) {
	specialty, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка при получении специальности", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return specialty, nil
}

func (s *SpecialtyServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateSpecialtyDTO) error {
	err := s.repo.Update(ctx, id, dto)
	if err != nil {
		s.logger.Error("ошибка при обновлении специальности", zap.Int64("id", id), zap.Error(err))
		return err
	}

	return nil
}

func (s *SpecialtyServiceImpl) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("ошибка при удалении специальности", zap.Int64("id", id), zap.Error(err))
		return err
	}

	return nil
}

func (s *SpecialtyServiceImpl) List(ctx context.Context, filter domain.SpecialtyFilter) ([]domain.Specialty, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	specialties, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка при получении списка специальностей", zap.Error(err))
		return nil, 0, err
	}

	total, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка при подсчете специальностей", zap.Error(err))
		return nil, 0, err
	}

	return specialties, total, nil
}
