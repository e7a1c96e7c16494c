package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"mediq/internal/domain"
)

type Repositories struct {
	User         UserRepository
	Auth         AuthRepository
	City         CityRepository
	Specialty    SpecialtyRepository
	Subscription SubscriptionRepository
	Doctor       DoctorRepository
	Clinic       ClinicRepository
	Membership   MembershipRepository
	Schedule     ScheduleRepository
	Review       ReviewRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Auth:         NewAuthRepository(db),
		City:         NewCityRepository(db),
		Specialty:    NewSpecialtyRepository(db),
		Subscription: NewSubscriptionRepository(db),
		Doctor:       NewDoctorRepository(db),
		Clinic:       NewClinicRepository(db),
		Membership:   NewMembershipRepository(db),
		Schedule:     NewScheduleRepository(db),
		Review:       NewReviewRepository(db),
	}
}

type UserRepository interface {
	Create(ctx context.Context, user domain.CreateUserDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Update(ctx context.Context, id int64, user domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session domain.Session) error
	GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteSessionsByUserID(ctx context.Context, userID int64) error
}

type CityRepository interface {
	Create(ctx context.Context, city domain.CreateCityDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.City, error)
	Update(ctx context.Context, id int64, city domain.UpdateCityDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.CityFilter) ([]domain.City, error)
	CountByFilter(ctx context.Context, filter domain.CityFilter) (int, error)
}

type SpecialtyRepository interface {
	Create(ctx context.Context, specialty domain.CreateSpecialtyDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Specialty, error)
	Update(ctx context.Context, id int64, specialty domain.UpdateSpecialtyDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.SpecialtyFilter) ([]domain.Specialty, error)
	CountByFilter(ctx context.Context, filter domain.SpecialtyFilter) (int, error)
}

type SubscriptionRepository interface {
	Create(ctx context.Context, subscription domain.CreateSubscriptionDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Subscription, error)
	Update(ctx context.Context, id int64, subscription domain.UpdateSubscriptionDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.SubscriptionFilter) ([]domain.Subscription, error)
	CountByFilter(ctx context.Context, filter domain.SubscriptionFilter) (int, error)
}

type DoctorRepository interface {
	Create(ctx context.Context, userID int64, doctor domain.CreateDoctorDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Doctor, error)
	Update(ctx context.Context, id int64, doctor domain.UpdateDoctorDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.DoctorFilter) ([]domain.Doctor, error)
	CountByFilter(ctx context.Context, filter domain.DoctorFilter) (int, error)

	UpdateProfilePhoto(ctx context.Context, id int64, photoURL string) error

	AddSpecialty(ctx context.Context, doctorID, specialtyID int64) error
	RemoveSpecialty(ctx context.Context, doctorID, specialtyID int64) error
	GetSpecialtiesByDoctorID(ctx context.Context, doctorID int64) ([]domain.Specialty, error)
}

type ClinicRepository interface {
	Create(ctx context.Context, ownerID int64, clinic domain.CreateClinicDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Clinic, error)
	Update(ctx context.Context, id int64, clinic domain.UpdateClinicDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.ClinicFilter) ([]domain.Clinic, error)
	CountByFilter(ctx context.Context, filter domain.ClinicFilter) (int, error)

	UpdatePhoto(ctx context.Context, id int64, photoURL string) error
	SetSubscription(ctx context.Context, id int64, subscriptionID int64, expiresAt time.Time) error
}

type MembershipRepository interface {
	Create(ctx context.Context, membership domain.CreateMembershipDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.ClinicMembership, error)
	GetByDoctorAndClinic(ctx context.Context, doctorID, clinicID int64) (*domain.ClinicMembership, error)
	Update(ctx context.Context, id int64, membership domain.UpdateMembershipDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.MembershipFilter) ([]domain.ClinicMembership, error)
	CountByFilter(ctx context.Context, filter domain.MembershipFilter) (int, error)
}

// ScheduleRepository выполняет проверку конфликтов и запись нового
// расписания в одной транзакции с блокировкой строки членства,
// чтобы два параллельных запроса не прошли проверку одновременно.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule domain.Schedule) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	Update(ctx context.Context, schedule domain.Schedule) error
	Delete(ctx context.Context, id int64) error
	ListByMembership(ctx context.Context, membershipID int64) ([]domain.Schedule, error)
}

type ReviewRepository interface {
	CreateDoctorReview(ctx context.Context, authorID, doctorID int64, review domain.CreateReviewDTO) (int64, error)
	GetDoctorReviewByID(ctx context.Context, id int64) (*domain.DoctorReview, error)
	UpdateDoctorReview(ctx context.Context, id int64, dto domain.UpdateReviewDTO) error
	UpdateDoctorReviewStatus(ctx context.Context, id int64, status domain.ReviewStatus) error
	DeleteDoctorReview(ctx context.Context, id int64) error
	ListDoctorReviews(ctx context.Context, doctorID int64, filter domain.ReviewFilter) ([]domain.DoctorReview, error)
	CountDoctorReviews(ctx context.Context, doctorID int64, filter domain.ReviewFilter) (int, error)
	GetDoctorReviewByAuthor(ctx context.Context, authorID, doctorID int64) (*domain.DoctorReview, error)

	CreateClinicReview(ctx context.Context, authorID, clinicID int64, review domain.CreateReviewDTO) (int64, error)
	GetClinicReviewByID(ctx context.Context, id int64) (*domain.ClinicReview, error)
	UpdateClinicReview(ctx context.Context, id int64, dto domain.UpdateReviewDTO) error
	UpdateClinicReviewStatus(ctx context.Context, id int64, status domain.ReviewStatus) error
	DeleteClinicReview(ctx context.Context, id int64) error
	ListClinicReviews(ctx context.Context, clinicID int64, filter domain.ReviewFilter) ([]domain.ClinicReview, error)
	CountClinicReviews(ctx context.Context, clinicID int64, filter domain.ReviewFilter) (int, error)
	GetClinicReviewByAuthor(ctx context.Context, authorID, clinicID int64) (*domain.ClinicReview, error)
}
