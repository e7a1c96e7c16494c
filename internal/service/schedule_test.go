package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"mediq/internal/domain"
	"mediq/internal/repository"
)

type fakeScheduleRepo struct {
	repository.ScheduleRepository
	created   *domain.Schedule
	schedules map[int64]*domain.Schedule
}

func (r *fakeScheduleRepo) Create(ctx context.Context, schedule domain.Schedule) (int64, error) {
	r.created = &schedule
	return 1, nil
}

func (r *fakeScheduleRepo) Update(ctx context.Context, schedule domain.Schedule) error {
	if _, ok := r.schedules[schedule.ID]; !ok {
		return domain.NewNotFoundError("расписание не найдено")
	}
	r.schedules[schedule.ID] = &schedule
	return nil
}

func (r *fakeScheduleRepo) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	schedule, ok := r.schedules[id]
	if !ok {
		return nil, domain.NewNotFoundError("расписание не найдено")
	}
	copied := *schedule
	return &copied, nil
}

type fakeMembershipRepo struct {
	repository.MembershipRepository
	memberships map[int64]*domain.ClinicMembership
}

func (r *fakeMembershipRepo) GetByID(ctx context.Context, id int64) (*domain.ClinicMembership, error) {
	membership, ok := r.memberships[id]
	if !ok {
		return nil, domain.NewNotFoundError("членство не найдено")
	}
	return membership, nil
}

type fakeDoctorRepo struct {
	repository.DoctorRepository
	doctors map[int64]*domain.Doctor
}

func (r *fakeDoctorRepo) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	doctor, ok := r.doctors[id]
	if !ok {
		return nil, domain.NewNotFoundError("врач не найден")
	}
	return doctor, nil
}

type fakeClinicRepo struct {
	repository.ClinicRepository
	clinics map[int64]*domain.Clinic
}

func (r *fakeClinicRepo) GetByID(ctx context.Context, id int64) (*domain.Clinic, error) {
	clinic, ok := r.clinics[id]
	if !ok {
		return nil, domain.NewNotFoundError("клиника не найдена")
	}
	return clinic, nil
}

func newScheduleServiceForTest() (*ScheduleServiceImpl, *fakeScheduleRepo) {
	scheduleRepo := &fakeScheduleRepo{schedules: map[int64]*domain.Schedule{}}

	membershipRepo := &fakeMembershipRepo{memberships: map[int64]*domain.ClinicMembership{
		10: {ID: 10, DoctorID: 20, ClinicID: 30},
	}}

	doctorRepo := &fakeDoctorRepo{doctors: map[int64]*domain.Doctor{
		20: {ID: 20, UserID: 100},
	}}

	clinicRepo := &fakeClinicRepo{clinics: map[int64]*domain.Clinic{
		30: {ID: 30, OwnerID: 200},
	}}

	svc := NewScheduleService(scheduleRepo, membershipRepo, clinicRepo, doctorRepo, zap.NewNop())

	return svc, scheduleRepo
}

func validCreateScheduleDTO() domain.CreateScheduleDTO {
	return domain.CreateScheduleDTO{
		MembershipID: 10,
		StartDay:     domain.WeekdayMonday,
		EndDay:       domain.WeekdayWednesday,
		StartTime:    "09:00",
		EndTime:      "12:00",
	}
}

func TestScheduleServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("врач членства создает расписание", func(t *testing.T) {
		svc, repo := newScheduleServiceForTest()

		id, err := svc.Create(ctx, 100, domain.UserRoleDoctor, validCreateScheduleDTO())
		if err != nil {
			t.Fatalf("неожиданная ошибка: %v", err)
		}
		if id != 1 {
			t.Errorf("id = %d, ожидалось 1", id)
		}
		if repo.created == nil || repo.created.MembershipID != 10 {
			t.Error("расписание не дошло до репозитория")
		}
	})

	t.Run("владелец клиники создает расписание", func(t *testing.T) {
		svc, _ := newScheduleServiceForTest()

		if _, err := svc.Create(ctx, 200, domain.UserRolePatient, validCreateScheduleDTO()); err != nil {
			t.Fatalf("неожиданная ошибка: %v", err)
		}
	})

	t.Run("администратор создает расписание", func(t *testing.T) {
		svc, _ := newScheduleServiceForTest()

		if _, err := svc.Create(ctx, 999, domain.UserRoleAdmin, validCreateScheduleDTO()); err != nil {
			t.Fatalf("неожиданная ошибка: %v", err)
		}
	})

	t.Run("посторонний пользователь получает отказ", func(t *testing.T) {
		svc, _ := newScheduleServiceForTest()

		_, err := svc.Create(ctx, 555, domain.UserRolePatient, validCreateScheduleDTO())
		if !domain.IsKind(err, domain.ErrorKindForbidden) {
			t.Errorf("ожидалась ошибка доступа, получено: %v", err)
		}
	})

	t.Run("несуществующее членство", func(t *testing.T) {
		svc, _ := newScheduleServiceForTest()

		dto := validCreateScheduleDTO()
		dto.MembershipID = 99

		_, err := svc.Create(ctx, 100, domain.UserRoleDoctor, dto)
		if !domain.IsKind(err, domain.ErrorKindNotFound) {
			t.Errorf("ожидалась ошибка not_found, получено: %v", err)
		}
	})

	t.Run("окончание раньше начала", func(t *testing.T) {
		svc, _ := newScheduleServiceForTest()

		dto := validCreateScheduleDTO()
		dto.StartTime = "10:00"
		dto.EndTime = "09:00"

		_, err := svc.Create(ctx, 100, domain.UserRoleDoctor, dto)
		if !domain.IsKind(err, domain.ErrorKindValidation) {
			t.Errorf("ожидалась ошибка валидации, получено: %v", err)
		}
	})

	t.Run("окончание равно началу", func(t *testing.T) {
		svc, _ := newScheduleServiceForTest()

		dto := validCreateScheduleDTO()
		dto.StartTime = "10:00"
		dto.EndTime = "10:00"

		_, err := svc.Create(ctx, 100, domain.UserRoleDoctor, dto)
		if !domain.IsKind(err, domain.ErrorKindValidation) {
			t.Errorf("ожидалась ошибка валидации, получено: %v", err)
		}
	})

	t.Run("некорректный день недели", func(t *testing.T) {
		svc, _ := newScheduleServiceForTest()

		dto := validCreateScheduleDTO()
		dto.StartDay = "someday"

		_, err := svc.Create(ctx, 100, domain.UserRoleDoctor, dto)
		if !domain.IsKind(err, domain.ErrorKindValidation) {
			t.Errorf("ожидалась ошибка валидации, получено: %v", err)
		}
	})

	t.Run("некорректный формат времени", func(t *testing.T) {
		svc, _ := newScheduleServiceForTest()

		dto := validCreateScheduleDTO()
		dto.StartTime = "9 утра"

		_, err := svc.Create(ctx, 100, domain.UserRoleDoctor, dto)
		if !domain.IsKind(err, domain.ErrorKindValidation) {
			t.Errorf("ожидалась ошибка валидации, получено: %v", err)
		}
	})
}

func TestScheduleServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("частичное обновление сохраняет остальные поля", func(t *testing.T) {
		svc, repo := newScheduleServiceForTest()
		repo.schedules[5] = &domain.Schedule{
			ID:           5,
			MembershipID: 10,
			StartDay:     domain.WeekdayMonday,
			EndDay:       domain.WeekdayWednesday,
			StartTime:    "09:00",
			EndTime:      "12:00",
		}

		newEnd := "14:00"
		updated, err := svc.Update(ctx, 100, domain.UserRoleDoctor, 5, domain.UpdateScheduleDTO{EndTime: &newEnd})
		if err != nil {
			t.Fatalf("неожиданная ошибка: %v", err)
		}

		if updated.EndTime != "14:00" {
			t.Errorf("EndTime = %s, ожидалось 14:00", updated.EndTime)
		}
		if updated.StartDay != domain.WeekdayMonday || updated.StartTime != "09:00" {
			t.Error("нетронутые поля изменились")
		}
	})

	t.Run("обновление с некорректным интервалом", func(t *testing.T) {
		svc, repo := newScheduleServiceForTest()
		repo.schedules[5] = &domain.Schedule{
			ID:           5,
			MembershipID: 10,
			StartDay:     domain.WeekdayMonday,
			EndDay:       domain.WeekdayMonday,
			StartTime:    "09:00",
			EndTime:      "12:00",
		}

		newEnd := "08:00"
		_, err := svc.Update(ctx, 100, domain.UserRoleDoctor, 5, domain.UpdateScheduleDTO{EndTime: &newEnd})
		if !domain.IsKind(err, domain.ErrorKindValidation) {
			t.Errorf("ожидалась ошибка валидации, получено: %v", err)
		}
	})

	t.Run("посторонний не может обновить", func(t *testing.T) {
		svc, repo := newScheduleServiceForTest()
		repo.schedules[5] = &domain.Schedule{
			ID:           5,
			MembershipID: 10,
			StartDay:     domain.WeekdayMonday,
			EndDay:       domain.WeekdayMonday,
			StartTime:    "09:00",
			EndTime:      "12:00",
		}

		newEnd := "14:00"
		_, err := svc.Update(ctx, 777, domain.UserRolePatient, 5, domain.UpdateScheduleDTO{EndTime: &newEnd})
		if !domain.IsKind(err, domain.ErrorKindForbidden) {
			t.Errorf("ожидалась ошибка доступа, получено: %v", err)
		}
	})
}
