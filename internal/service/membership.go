package service

import (
	"context"

	"go.uber.org/zap"

	"mediq/internal/domain"
	"mediq/internal/repository"
)

type MembershipServiceImpl struct {
	repo       repository.MembershipRepository
	doctorRepo repository.DoctorRepository
	clinicRepo repository.ClinicRepository
	logger     *zap.Logger
}

func NewMembershipService(
	repo repository.MembershipRepository,
	doctorRepo repository.DoctorRepository,
	clinicRepo repository.ClinicRepository,
	logger *zap.Logger,
) *MembershipServiceImpl {
	return &MembershipServiceImpl{
		repo:       repo,
		doctorRepo: doctorRepo,
		clinicRepo: clinicRepo,
		logger:     logger,
	}
}

func (s *MembershipServiceImpl) Create(ctx context.Context, dto domain.CreateMembershipDTO) (int64, error) {
	_, err := s.doctorRepo.GetByID(ctx, dto.DoctorID)
	if err != nil {
		return 0, domain.NewValidationError("указан несуществующий врач")
	}

	_, err = s.clinicRepo.GetByID(ctx, dto.ClinicID)
	if err != nil {
		return 0, domain.NewValidationError("указана несуществующая клиника")
	}

	existing, err := s.repo.GetByDoctorAndClinic(ctx, dto.DoctorID, dto.ClinicID)
	if err == nil && existing != nil {
		return 0, domain.NewConflictError("врач уже состоит в этой клинике")
	}

	id, err := s.repo.Create(ctx, dto)
	if err != nil {
		s.logger.Error("ошибка при создании членства",
			zap.Int64("doctorId", dto.DoctorID), zap.Int64("clinicId", dto.ClinicID), zap.Error(err))
		return 0, err
	}

	return id, nil
}

func (s *MembershipServiceImpl) GetByID(ctx context.Context, id int64) (*domain.ClinicMembership, error) {
	membership, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка при получении членства", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return membership, nil
}

func (s *MembershipServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateMembershipDTO) error {
	err := s.repo.Update(ctx, id, dto)
	if err != nil {
		s.logger.Error("ошибка при обновлении членства", zap.Int64("id", id), zap.Error(err))
		return err
	}

	return nil
}

func (s *MembershipServiceImpl) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("ошибка при удалении членства", zap.Int64("id", id), zap.Error(err))
		return err
	}

	return nil
}

func (s *MembershipServiceImpl) List(ctx context.Context, filter domain.MembershipFilter) ([]domain.ClinicMembership, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	memberships, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка при получении списка членств", zap.Error(err))
		return nil, 0, err
	}

	total, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка при подсчете членств", zap.Error(err))
		return nil, 0, err
	}

	return memberships, total, nil
}
