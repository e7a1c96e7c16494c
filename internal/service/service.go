package service

import (
	"context"

	"go.uber.org/zap"

	"mediq/config"
	"mediq/internal/domain"
	"mediq/internal/repository"
	"mediq/internal/storage"
)

type Deps struct {
	Repos       *repository.Repositories
	Logger      *zap.Logger
	Config      *config.Config
	FileStorage storage.FileStorage
}

type Services struct {
	User         UserService
	Auth         AuthService
	City         CityService
	Specialty    SpecialtyService
	Subscription SubscriptionService
	Doctor       DoctorService
	Clinic       ClinicService
	Membership   MembershipService
	Schedule     ScheduleService
	Review       ReviewService
}

func NewServices(deps Deps) *Services {
	return &Services{
		User:         NewUserService(deps.Repos.User, deps.Logger),
		Auth:         NewAuthService(deps.Repos.Auth, deps.Repos.User, deps.Config.JWT, deps.Logger),
		City:         NewCityService(deps.Repos.City, deps.Logger),
		Specialty:    NewSpecialtyService(deps.Repos.Specialty, deps.Logger),
		Subscription: NewSubscriptionService(deps.Repos.Subscription, deps.Logger),
		Doctor:       NewDoctorService(deps.Repos.Doctor, deps.Repos.User, deps.Repos.Specialty, deps.FileStorage, deps.Logger),
		Clinic:       NewClinicService(deps.Repos.Clinic, deps.Repos.City, deps.Repos.Subscription, deps.FileStorage, deps.Logger),
		Membership:   NewMembershipService(deps.Repos.Membership, deps.Repos.Doctor, deps.Repos.Clinic, deps.Logger),
		Schedule:     NewScheduleService(deps.Repos.Schedule, deps.Repos.Membership, deps.Repos.Clinic, deps.Repos.Doctor, deps.Logger),
		Review:       NewReviewService(deps.Repos.Review, deps.Repos.Doctor, deps.Repos.Clinic, deps.Logger),
	}
}

type UserService interface {
	Create(ctx context.Context, dto domain.CreateUserDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id int64, dto domain.PasswordUpdateDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}

type AuthService interface {
	Register(ctx context.Context, dto domain.RegisterRequest) (int64, error)
	Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error)
	RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
	ParseToken(ctx context.Context, token string) (int64, domain.UserRole, error)
}

type CityService interface {
	Create(ctx context.Context, dto domain.CreateCityDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.City, error)
	Update(ctx context.Context, id int64, dto domain.UpdateCityDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.CityFilter) ([]domain.City, int, error)
}

type SpecialtyService interface {
	Create(ctx context.Context, dto domain.CreateSpecialtyDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Specialty, error)
	Update(ctx context.Context, id int64, dto domain.UpdateSpecialtyDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.SpecialtyFilter) ([]domain.Specialty, int, error)
}

type SubscriptionService interface {
	Create(ctx context.Context, dto domain.CreateSubscriptionDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Subscription, error)
	Update(ctx context.Context, id int64, dto domain.UpdateSubscriptionDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.SubscriptionFilter) ([]domain.Subscription, int, error)
}

type DoctorService interface {
	Create(ctx context.Context, userID int64, dto domain.CreateDoctorDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Doctor, error)
	Update(ctx context.Context, id int64, dto domain.UpdateDoctorDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.DoctorFilter) ([]domain.Doctor, int, error)

	UploadProfilePhoto(ctx context.Context, doctorID int64, photo []byte, filename string) error
	DeleteProfilePhoto(ctx context.Context, doctorID int64) error

	AddSpecialty(ctx context.Context, doctorID, specialtyID int64) error
	RemoveSpecialty(ctx context.Context, doctorID, specialtyID int64) error
	GetSpecialtiesByDoctorID(ctx context.Context, doctorID int64) ([]domain.Specialty, error)
}

type ClinicService interface {
	Create(ctx context.Context, ownerID int64, dto domain.CreateClinicDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Clinic, error)
	Update(ctx context.Context, id int64, dto domain.UpdateClinicDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.ClinicFilter) ([]domain.Clinic, int, error)

	UploadPhoto(ctx context.Context, clinicID int64, photo []byte, filename string) error
	DeletePhoto(ctx context.Context, clinicID int64) error

	Subscribe(ctx context.Context, clinicID, subscriptionID int64) error
}

type MembershipService interface {
	Create(ctx context.Context, dto domain.CreateMembershipDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.ClinicMembership, error)
	Update(ctx context.Context, id int64, dto domain.UpdateMembershipDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.MembershipFilter) ([]domain.ClinicMembership, int, error)
}

type ScheduleService interface {
	Create(ctx context.Context, userID int64, role domain.UserRole, dto domain.CreateScheduleDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	Update(ctx context.Context, userID int64, role domain.UserRole, id int64, dto domain.UpdateScheduleDTO) (*domain.Schedule, error)
	Delete(ctx context.Context, userID int64, role domain.UserRole, id int64) error
	ListByMembership(ctx context.Context, membershipID int64) ([]domain.Schedule, error)
}

type ReviewService interface {
	CreateDoctorReview(ctx context.Context, authorID, doctorID int64, dto domain.CreateReviewDTO) (int64, error)
	UpdateDoctorReview(ctx context.Context, authorID, reviewID int64, dto domain.UpdateReviewDTO) error
	UpdateDoctorReviewStatus(ctx context.Context, reviewID int64, dto domain.UpdateReviewStatusDTO) error
	DeleteDoctorReview(ctx context.Context, userID int64, role domain.UserRole, reviewID int64) error
	GetDoctorReviewByID(ctx context.Context, id int64) (*domain.DoctorReview, error)
	ListDoctorReviews(ctx context.Context, doctorID int64, filter domain.ReviewFilter) ([]domain.DoctorReview, int, error)

	CreateClinicReview(ctx context.Context, authorID, clinicID int64, dto domain.CreateReviewDTO) (int64, error)
	UpdateClinicReview(ctx context.Context, authorID, reviewID int64, dto domain.UpdateReviewDTO) error
	UpdateClinicReviewStatus(ctx context.Context, reviewID int64, dto domain.UpdateReviewStatusDTO) error
	DeleteClinicReview(ctx context.Context, userID int64, role domain.UserRole, reviewID int64) error
	GetClinicReviewByID(ctx context.Context, id int64) (*domain.ClinicReview, error)
	ListClinicReviews(ctx context.Context, clinicID int64, filter domain.ReviewFilter) ([]domain.ClinicReview, int, error)
}
