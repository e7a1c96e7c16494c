package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"mediq/internal/domain"
	"mediq/internal/repository"
)

type ScheduleServiceImpl struct {
	repo           repository.ScheduleRepository
	membershipRepo repository.MembershipRepository
	clinicRepo     repository.ClinicRepository
	doctorRepo     repository.DoctorRepository
	logger         *zap.Logger
}

func NewScheduleService(
	repo repository.ScheduleRepository,
	membershipRepo repository.MembershipRepository,
	clinicRepo repository.ClinicRepository,
	doctorRepo repository.DoctorRepository,
	logger *zap.Logger,
) *ScheduleServiceImpl {
	return &ScheduleServiceImpl{
		repo:           repo,
		membershipRepo: membershipRepo,
		clinicRepo:     clinicRepo,
		doctorRepo:     doctorRepo,
		logger:         logger,
	}
}

func (s *ScheduleServiceImpl) Create(ctx context.Context, userID int64, role domain.UserRole, dto domain.CreateScheduleDTO) (int64, error) {
	if err := validateScheduleFields(dto.StartDay, dto.EndDay, dto.StartTime, dto.EndTime); err != nil {
		return 0, err
	}

	membership, err := s.membershipRepo.GetByID(ctx, dto.MembershipID)
	if err != nil {
		return 0, err
	}

	if err := s.checkScheduleAccess(ctx, userID, role, membership); err != nil {
		return 0, err
	}

	schedule := domain.Schedule{
		MembershipID: dto.MembershipID,
		StartDay:     dto.StartDay,
		EndDay:       dto.EndDay,
		StartTime:    dto.StartTime,
		EndTime:      dto.EndTime,
	}

	id, err := s.repo.Create(ctx, schedule)
	if err != nil {
		if _, ok := domain.KindOf(err); !ok {
			s.logger.Error("ошибка при создании расписания",
				zap.Int64("membershipId", dto.MembershipID), zap.Error(err))
		}
		return 0, err
	}

	return id, nil
}

func (s *ScheduleServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	schedule, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка при получении расписания", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return schedule, nil
}

func (s *ScheduleServiceImpl) Update(ctx context.Context, userID int64, role domain.UserRole, id int64, dto domain.UpdateScheduleDTO) (*domain.Schedule, error) {
	schedule, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	membership, err := s.membershipRepo.GetByID(ctx, schedule.MembershipID)
	if err != nil {
		return nil, err
	}

	if err := s.checkScheduleAccess(ctx, userID, role, membership); err != nil {
		return nil, err
	}

	if dto.StartDay != nil {
		schedule.StartDay = *dto.StartDay
	}
	if dto.EndDay != nil {
		schedule.EndDay = *dto.EndDay
	}
	if dto.StartTime != nil {
		schedule.StartTime = *dto.StartTime
	}
	if dto.EndTime != nil {
		schedule.EndTime = *dto.EndTime
	}

	if err := validateScheduleFields(schedule.StartDay, schedule.EndDay, schedule.StartTime, schedule.EndTime); err != nil {
		return nil, err
	}

	err = s.repo.Update(ctx, *schedule)
	if err != nil {
		if _, ok := domain.KindOf(err); !ok {
			s.logger.Error("ошибка при обновлении расписания", zap.Int64("id", id), zap.Error(err))
		}
		return nil, err
	}

	return schedule, nil
}

func (s *ScheduleServiceImpl) Delete(ctx context.Context, userID int64, role domain.UserRole, id int64) error {
	schedule, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	membership, err := s.membershipRepo.GetByID(ctx, schedule.MembershipID)
	if err != nil {
		return err
	}

	if err := s.checkScheduleAccess(ctx, userID, role, membership); err != nil {
		return err
	}

	err = s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("ошибка при удалении расписания", zap.Int64("id", id), zap.Error(err))
		return err
	}

	return nil
}

func (s *ScheduleServiceImpl) ListByMembership(ctx context.Context, membershipID int64) ([]domain.Schedule, error) {
	_, err := s.membershipRepo.GetByID(ctx, membershipID)
	if err != nil {
		return nil, err
	}

	schedules, err := s.repo.ListByMembership(ctx, membershipID)
	if err != nil {
		s.logger.Error("ошибка при получении расписаний членства",
			zap.Int64("membershipId", membershipID), zap.Error(err))
		return nil, err
	}

	return schedules, nil
}

// Расписание членства может менять врач этого членства, владелец
// клиники или администратор.
func (s *ScheduleServiceImpl) checkScheduleAccess(ctx context.Context, userID int64, role domain.UserRole, membership *domain.ClinicMembership) error {
	if role == domain.UserRoleAdmin {
		return nil
	}

	doctor, err := s.doctorRepo.GetByID(ctx, membership.DoctorID)
	if err == nil && doctor.UserID == userID {
		return nil
	}

	clinic, err := s.clinicRepo.GetByID(ctx, membership.ClinicID)
	if err == nil && clinic.OwnerID == userID {
		return nil
	}

	return domain.NewForbiddenError("нет прав на управление расписанием этого членства")
}

func validateScheduleFields(startDay, endDay domain.Weekday, startTime, endTime string) error {
	if !startDay.IsValid() {
		return domain.NewValidationError("некорректный день начала")
	}
	if !endDay.IsValid() {
		return domain.NewValidationError("некорректный день окончания")
	}

	if _, err := time.Parse("15:04", startTime); err != nil {
		return domain.NewValidationError("некорректное время начала, ожидается формат HH:MM")
	}
	if _, err := time.Parse("15:04", endTime); err != nil {
		return domain.NewValidationError("некорректное время окончания, ожидается формат HH:MM")
	}

	if domain.MinutesOfDay(endTime) <= domain.MinutesOfDay(startTime) {
		return domain.NewValidationError("время окончания должно быть позже времени начала")
	}

	return nil
}
