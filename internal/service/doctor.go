package service

import (
	"context"

	"go.uber.org/zap"

	"mediq/internal/domain"
	"mediq/internal/repository"
	"mediq/internal/storage"
)

type DoctorServiceImpl struct {
	repo          repository.DoctorRepository
	userRepo      repository.UserRepository
	specialtyRepo repository.SpecialtyRepository
	fileStorage   storage.FileStorage
	logger        *zap.Logger
}

func NewDoctorService(
	repo repository.DoctorRepository,
	userRepo repository.UserRepository,
	specialtyRepo repository.SpecialtyRepository,
	fileStorage storage.FileStorage,
	logger *zap.Logger,
) *DoctorServiceImpl {
	return &DoctorServiceImpl{
		repo:          repo,
		userRepo:      userRepo,
		specialtyRepo: specialtyRepo,
		fileStorage:   fileStorage,
		logger:        logger,
	}
}

func (s *DoctorServiceImpl) Create(ctx context.Context, userID int64, dto domain.CreateDoctorDTO) (int64, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}

	if user.Role != domain.UserRoleDoctor {
		return 0, domain.NewForbiddenError("профиль врача доступен только пользователям с ролью врача")
	}

	existing, err := s.repo.GetByUserID(ctx, userID)
	if err == nil && existing != nil {
		return 0, domain.NewConflictError("профиль врача уже существует")
	}

	for _, specialtyID := range dto.SpecialtyIDs {
		_, err := s.specialtyRepo.GetByID(ctx, specialtyID)
		if err != nil {
			return 0, domain.NewValidationError("указана несуществующая специальность")
		}
	}

	id, err := s.repo.Create(ctx, userID, dto)
	if err != nil {
		s.logger.Error("ошибка при создании профиля врача", zap.Int64("userId", userID), zap.Error(err))
		return 0, err
	}

	for _, specialtyID := range dto.SpecialtyIDs {
		if err := s.repo.AddSpecialty(ctx, id, specialtyID); err != nil {
			s.logger.Warn("ошибка при привязке специальности",
				zap.Int64("doctorId", id), zap.Int64("specialtyId", specialtyID), zap.Error(err))
		}
	}

	if len(dto.ProfilePhoto) > 0 {
		if err := s.UploadProfilePhoto(ctx, id, dto.ProfilePhoto, "profile"); err != nil {
			s.logger.Warn("ошибка при загрузке фото профиля", zap.Int64("doctorId", id), zap.Error(err))
		}
	}

	return id, nil
}

func (s *DoctorServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	doctor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка при получении врача", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	specialties, err := s.repo.GetSpecialtiesByDoctorID(ctx, id)
	if err != nil {
		s.logger.Warn("ошибка при получении специальностей врача", zap.Int64("id", id), zap.Error(err))
	} else {
		doctor.Specialties = specialties
	}

	return doctor, nil
}

func (s *DoctorServiceImpl) GetByUserID(ctx context.Context, userID int64) (*domain.Doctor, error) {
	doctor, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	specialties, err := s.repo.GetSpecialtiesByDoctorID(ctx, doctor.ID)
	if err != nil {
		s.logger.Warn("ошибка при получении специальностей врача", zap.Int64("id", doctor.ID), zap.Error(err))
	} else {
		doctor.Specialties = specialties
	}

	return doctor, nil
}

func (s *DoctorServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateDoctorDTO) error {
	err := s.repo.Update(ctx, id, dto)
	if err != nil {
		s.logger.Error("ошибка при обновлении врача", zap.Int64("id", id), zap.Error(err))
		return err
	}

	if len(dto.ProfilePhoto) > 0 {
		if err := s.UploadProfilePhoto(ctx, id, dto.ProfilePhoto, "profile"); err != nil {
			s.logger.Warn("ошибка при загрузке фото профиля", zap.Int64("doctorId", id), zap.Error(err))
		}
	}

	return nil
}

func (s *DoctorServiceImpl) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("ошибка при удалении врача", zap.Int64("id", id), zap.Error(err))
		return err
	}

	return nil
}

func (s *DoctorServiceImpl) List(ctx context.Context, filter domain.DoctorFilter) ([]domain.Doctor, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	doctors, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка при получении списка врачей", zap.Error(err))
		return nil, 0, err
	}

	total, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка при подсчете врачей", zap.Error(err))
		return nil, 0, err
	}

	for i := range doctors {
		specialties, err := s.repo.GetSpecialtiesByDoctorID(ctx, doctors[i].ID)
		if err != nil {
			continue
		}
		doctors[i].Specialties = specialties
	}

	return doctors, total, nil
}

func (s *DoctorServiceImpl) UploadProfilePhoto(ctx context.Context, doctorID int64, photo []byte, filename string) error {
	doctor, err := s.repo.GetByID(ctx, doctorID)
	if err != nil {
		return err
	}

	if doctor.ProfilePhotoURL != "" {
		if err := s.fileStorage.DeleteFile(ctx, doctor.ProfilePhotoURL); err != nil {
			s.logger.Warn("ошибка при удалении старого фото", zap.Int64("doctorId", doctorID), zap.Error(err))
		}
	}

	url, err := s.fileStorage.UploadFile(ctx, photo, filename)
	if err != nil {
		s.logger.Error("ошибка при загрузке фото", zap.Int64("doctorId", doctorID), zap.Error(err))
		return domain.NewValidationError("не удалось загрузить фото")
	}

	err = s.repo.UpdateProfilePhoto(ctx, doctorID, url)
	if err != nil {
		s.logger.Error("ошибка при сохранении URL фото", zap.Int64("doctorId", doctorID), zap.Error(err))
		return err
	}

	return nil
}

func (s *DoctorServiceImpl) DeleteProfilePhoto(ctx context.Context, doctorID int64) error {
	doctor, err := s.repo.GetByID(ctx, doctorID)
	if err != nil {
		return err
	}

	if doctor.ProfilePhotoURL == "" {
		return nil
	}

	if err := s.fileStorage.DeleteFile(ctx, doctor.ProfilePhotoURL); err != nil {
		s.logger.Warn("ошибка при удалении фото из хранилища", zap.Int64("doctorId", doctorID), zap.Error(err))
	}

	err = s.repo.UpdateProfilePhoto(ctx, doctorID, "")
	if err != nil {
		s.logger.Error("ошибка при очистке URL фото", zap.Int64("doctorId", doctorID), zap.Error(err))
		return err
	}

	return nil
}

func (s *DoctorServiceImpl) AddSpecialty(ctx context.Context, doctorID, specialtyID int64) error {
	_, err := s.repo.GetByID(ctx, doctorID)
	if err != nil {
		return err
	}

	_, err = s.specialtyRepo.GetByID(ctx, specialtyID)
	if err != nil {
		return err
	}

	err = s.repo.AddSpecialty(ctx, doctorID, specialtyID)
	if err != nil {
		s.logger.Error("ошибка при добавлении специальности врачу",
			zap.Int64("doctorId", doctorID), zap.Int64("specialtyId", specialtyID), zap.Error(err))
		return err
	}

	return nil
}

func (s *DoctorServiceImpl) RemoveSpecialty(ctx context.Context, doctorID, specialtyID int64) error {
	err := s.repo.RemoveSpecialty(ctx, doctorID, specialtyID)
	if err != nil {
		s.logger.Error("ошибка при удалении специальности врача",
			zap.Int64("doctorId", doctorID), zap.Int64("specialtyId", specialtyID), zap.Error(err))
		return err
	}

	return nil
}

func (s *DoctorServiceImpl) GetSpecialtiesByDoctorID(ctx context.Context, doctorID int64) ([]domain.Specialty, error) {
	specialties, err := s.repo.GetSpecialtiesByDoctorID(ctx, doctorID)
	if err != nil {
		s.logger.Error("ошибка при получении специальностей врача", zap.Int64("doctorId", doctorID), zap.Error(err))
		return nil, err
	}

	return specialties, nil
}
