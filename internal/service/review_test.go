package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"mediq/internal/domain"
	"mediq/internal/repository"
)

type fakeReviewRepo struct {
	repository.ReviewRepository
	doctorReviews map[int64]*domain.DoctorReview
	clinicReviews map[int64]*domain.ClinicReview
	nextID        int64
	deleted       []int64
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{
		doctorReviews: map[int64]*domain.DoctorReview{},
		clinicReviews: map[int64]*domain.ClinicReview{},
		nextID:        1,
	}
}

func (r *fakeReviewRepo) CreateDoctorReview(ctx context.Context, authorID, doctorID int64, dto domain.CreateReviewDTO) (int64, error) {
	id := r.nextID
	r.nextID++
	r.doctorReviews[id] = &domain.DoctorReview{
		ID:       id,
		AuthorID: authorID,
		DoctorID: doctorID,
		Rating:   dto.Rating,
		Comment:  dto.Comment,
		Status:   domain.ReviewStatusPending,
	}
	return id, nil
}

func (r *fakeReviewRepo) GetDoctorReviewByID(ctx context.Context, id int64) (*domain.DoctorReview, error) {
	review, ok := r.doctorReviews[id]
	if !ok {
		return nil, domain.NewNotFoundError("отзыв не найден")
	}
	return review, nil
}

func (r *fakeReviewRepo) GetDoctorReviewByAuthor(ctx context.Context, authorID, doctorID int64) (*domain.DoctorReview, error) {
	for _, review := range r.doctorReviews {
		if review.AuthorID == authorID && review.DoctorID == doctorID {
			return review, nil
		}
	}
	return nil, domain.NewNotFoundError("отзыв не найден")
}

func (r *fakeReviewRepo) UpdateDoctorReview(ctx context.Context, id int64, dto domain.UpdateReviewDTO) error {
	review, ok := r.doctorReviews[id]
	if !ok {
		return domain.NewNotFoundError("отзыв не найден")
	}
	if dto.Rating != nil {
		review.Rating = *dto.Rating
	}
	if dto.Comment != nil {
		review.Comment = *dto.Comment
	}
	return nil
}

func (r *fakeReviewRepo) DeleteDoctorReview(ctx context.Context, id int64) error {
	if _, ok := r.doctorReviews[id]; !ok {
		return domain.NewNotFoundError("отзыв не найден")
	}
	delete(r.doctorReviews, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeReviewRepo) GetClinicReviewByAuthor(ctx context.Context, authorID, clinicID int64) (*domain.ClinicReview, error) {
	for _, review := range r.clinicReviews {
		if review.AuthorID == authorID && review.ClinicID == clinicID {
			return review, nil
		}
	}
	return nil, domain.NewNotFoundError("отзыв не найден")
}

func (r *fakeReviewRepo) CreateClinicReview(ctx context.Context, authorID, clinicID int64, dto domain.CreateReviewDTO) (int64, error) {
	id := r.nextID
	r.nextID++
	r.clinicReviews[id] = &domain.ClinicReview{
		ID:       id,
		AuthorID: authorID,
		ClinicID: clinicID,
		Rating:   dto.Rating,
		Comment:  dto.Comment,
		Status:   domain.ReviewStatusPending,
	}
	return id, nil
}

func newReviewServiceForTest() (*ReviewServiceImpl, *fakeReviewRepo) {
	reviewRepo := newFakeReviewRepo()

	doctorRepo := &fakeDoctorRepo{doctors: map[int64]*domain.Doctor{
		20: {ID: 20, UserID: 100},
	}}

	clinicRepo := &fakeClinicRepo{clinics: map[int64]*domain.Clinic{
		30: {ID: 30, OwnerID: 200},
	}}

	svc := NewReviewService(reviewRepo, doctorRepo, clinicRepo, zap.NewNop())

	return svc, reviewRepo
}

func TestReviewServiceCreateDoctorReview(t *testing.T) {
	ctx := context.Background()
	dto := domain.CreateReviewDTO{Rating: 5, Comment: "отличный врач"}

	t.Run("пациент оставляет отзыв", func(t *testing.T) {
		svc, repo := newReviewServiceForTest()

		id, err := svc.CreateDoctorReview(ctx, 1, 20, dto)
		if err != nil {
			t.Fatalf("неожиданная ошибка: %v", err)
		}

		review := repo.doctorReviews[id]
		if review == nil {
			t.Fatal("отзыв не сохранен")
		}
		if review.Status != domain.ReviewStatusPending {
			t.Errorf("новый отзыв должен ждать модерации, статус: %s", review.Status)
		}
	})

	t.Run("отзыв на самого себя запрещен", func(t *testing.T) {
		svc, _ := newReviewServiceForTest()

		_, err := svc.CreateDoctorReview(ctx, 100, 20, dto)
		if !domain.IsKind(err, domain.ErrorKindForbidden) {
			t.Errorf("ожидалась ошибка доступа, получено: %v", err)
		}
	})

	t.Run("повторный отзыв запрещен", func(t *testing.T) {
		svc, _ := newReviewServiceForTest()

		if _, err := svc.CreateDoctorReview(ctx, 1, 20, dto); err != nil {
			t.Fatalf("неожиданная ошибка: %v", err)
		}

		_, err := svc.CreateDoctorReview(ctx, 1, 20, dto)
		if !domain.IsKind(err, domain.ErrorKindConflict) {
			t.Errorf("ожидался конфликт, получено: %v", err)
		}
	})

	t.Run("оценка вне диапазона", func(t *testing.T) {
		svc, _ := newReviewServiceForTest()

		_, err := svc.CreateDoctorReview(ctx, 1, 20, domain.CreateReviewDTO{Rating: 6, Comment: "x"})
		if !domain.IsKind(err, domain.ErrorKindValidation) {
			t.Errorf("ожидалась ошибка валидации, получено: %v", err)
		}
	})

	t.Run("несуществующий врач", func(t *testing.T) {
		svc, _ := newReviewServiceForTest()

		_, err := svc.CreateDoctorReview(ctx, 1, 99, dto)
		if !domain.IsKind(err, domain.ErrorKindNotFound) {
			t.Errorf("ожидалась ошибка not_found, получено: %v", err)
		}
	})
}

func TestReviewServiceCreateClinicReview(t *testing.T) {
	ctx := context.Background()
	dto := domain.CreateReviewDTO{Rating: 4, Comment: "хорошая клиника"}

	t.Run("пациент оставляет отзыв", func(t *testing.T) {
		svc, repo := newReviewServiceForTest()

		id, err := svc.CreateClinicReview(ctx, 1, 30, dto)
		if err != nil {
			t.Fatalf("неожиданная ошибка: %v", err)
		}
		if repo.clinicReviews[id] == nil {
			t.Fatal("отзыв не сохранен")
		}
	})

	t.Run("владелец клиники не может оставить отзыв", func(t *testing.T) {
		svc, _ := newReviewServiceForTest()

		_, err := svc.CreateClinicReview(ctx, 200, 30, dto)
		if !domain.IsKind(err, domain.ErrorKindForbidden) {
			t.Errorf("ожидалась ошибка доступа, получено: %v", err)
		}
	})
}

func TestReviewServiceUpdateDoctorReview(t *testing.T) {
	ctx := context.Background()

	t.Run("автор редактирует отзыв", func(t *testing.T) {
		svc, repo := newReviewServiceForTest()
		id, _ := svc.CreateDoctorReview(ctx, 1, 20, domain.CreateReviewDTO{Rating: 3, Comment: "норм"})

		newRating := 5
		if err := svc.UpdateDoctorReview(ctx, 1, id, domain.UpdateReviewDTO{Rating: &newRating}); err != nil {
			t.Fatalf("неожиданная ошибка: %v", err)
		}

		if repo.doctorReviews[id].Rating != 5 {
			t.Errorf("рейтинг = %d, ожидалось 5", repo.doctorReviews[id].Rating)
		}
	})

	t.Run("чужой отзыв редактировать нельзя", func(t *testing.T) {
		svc, _ := newReviewServiceForTest()
		id, _ := svc.CreateDoctorReview(ctx, 1, 20, domain.CreateReviewDTO{Rating: 3, Comment: "норм"})

		newRating := 1
		err := svc.UpdateDoctorReview(ctx, 2, id, domain.UpdateReviewDTO{Rating: &newRating})
		if !domain.IsKind(err, domain.ErrorKindForbidden) {
			t.Errorf("ожидалась ошибка доступа, получено: %v", err)
		}
	})
}

func TestReviewServiceDeleteDoctorReview(t *testing.T) {
	ctx := context.Background()

	t.Run("автор удаляет свой отзыв", func(t *testing.T) {
		svc, repo := newReviewServiceForTest()
		id, _ := svc.CreateDoctorReview(ctx, 1, 20, domain.CreateReviewDTO{Rating: 3, Comment: "норм"})

		if err := svc.DeleteDoctorReview(ctx, 1, domain.UserRolePatient, id); err != nil {
			t.Fatalf("неожиданная ошибка: %v", err)
		}
		if len(repo.deleted) != 1 {
			t.Error("отзыв не удален")
		}
	})

	t.Run("администратор удаляет чужой отзыв", func(t *testing.T) {
		svc, _ := newReviewServiceForTest()
		id, _ := svc.CreateDoctorReview(ctx, 1, 20, domain.CreateReviewDTO{Rating: 3, Comment: "норм"})

		if err := svc.DeleteDoctorReview(ctx, 999, domain.UserRoleAdmin, id); err != nil {
			t.Fatalf("неожиданная ошибка: %v", err)
		}
	})

	t.Run("посторонний удалить не может", func(t *testing.T) {
		svc, _ := newReviewServiceForTest()
		id, _ := svc.CreateDoctorReview(ctx, 1, 20, domain.CreateReviewDTO{Rating: 3, Comment: "норм"})

		err := svc.DeleteDoctorReview(ctx, 2, domain.UserRolePatient, id)
		if !domain.IsKind(err, domain.ErrorKindForbidden) {
			t.Errorf("ожидалась ошибка доступа, получено: %v", err)
		}
	})
}
