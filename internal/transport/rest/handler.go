package rest

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mediq/config"
	"mediq/internal/service"
)

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())

	router.Use(h.errorMiddleware())

	router.Use(h.corsMiddleware())

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
			auth.POST("/refresh", h.refreshTokens)
			auth.POST("/logout", h.logout)
		}

		users := api.Group("/users")
		users.Use(h.authMiddleware())
		{
			users.GET("/me", h.getCurrentUser)
			users.GET("/:id", h.getUserByID)
			users.PUT("/:id", h.updateUser)
			users.PUT("/:id/password", h.updatePassword)

			admin := users.Group("/")
			admin.Use(h.adminMiddleware())
			{
				admin.POST("/", h.createUser)
				admin.GET("/", h.getUsers)
				admin.DELETE("/:id", h.deleteUser)
			}
		}

		cities := api.Group("/cities")
		{
			cities.GET("/", h.getCities)
			cities.GET("/:id", h.getCityByID)

			admin := cities.Group("/")
			admin.Use(h.authMiddleware(), h.adminMiddleware())
			{
				admin.POST("/", h.createCity)
				admin.PUT("/:id", h.updateCity)
				admin.DELETE("/:id", h.deleteCity)
			}
		}

		specialties := api.Group("/specialties")
		{
			specialties.GET("/", h.getSpecialties)
			specialties.GET("/:id", h.getSpecialtyByID)

			admin := specialties.Group("/")
			admin.Use(h.authMiddleware(), h.adminMiddleware())
			{
				admin.POST("/", h.createSpecialty)
				admin.PUT("/:id", h.updateSpecialty)
				admin.DELETE("/:id", h.deleteSpecialty)
			}
		}

		subscriptions := api.Group("/subscriptions")
		{
			subscriptions.GET("/", h.getSubscriptions)
			subscriptions.GET("/:id", h.getSubscriptionByID)

			admin := subscriptions.Group("/")
			admin.Use(h.authMiddleware(), h.adminMiddleware())
			{
				admin.POST("/", h.createSubscription)
				admin.PUT("/:id", h.updateSubscription)
				admin.DELETE("/:id", h.deleteSubscription)
			}
		}

		doctors := api.Group("/doctors")
		{
			doctors.GET("/", h.getDoctors)
			doctors.GET("/me", h.authMiddleware(), h.getMyDoctorProfile)
			doctors.GET("/:id", h.getDoctorByID)
			doctors.GET("/:id/specialties", h.getDoctorSpecialties)
			doctors.GET("/:id/reviews", h.optionalAuthMiddleware(), h.getDoctorReviews)

			auth := doctors.Group("/", h.authMiddleware())
			{
				auth.POST("/", h.doctorMiddleware(), h.createDoctor)
				auth.PUT("/:id", h.updateDoctor)
				auth.DELETE("/:id", h.deleteDoctor)

				auth.POST("/:id/photo", h.uploadDoctorPhoto)
				auth.DELETE("/:id/photo", h.deleteDoctorPhoto)

				auth.POST("/:id/specialties/:specialtyId", h.addDoctorSpecialty)
				auth.DELETE("/:id/specialties/:specialtyId", h.removeDoctorSpecialty)

				auth.POST("/:id/reviews", h.createDoctorReview)
			}
		}

		clinics := api.Group("/clinics")
		{
			clinics.GET("/", h.getClinics)
			clinics.GET("/:id", h.getClinicByID)
			clinics.GET("/:id/reviews", h.optionalAuthMiddleware(), h.getClinicReviews)
			clinics.GET("/:id/memberships", h.getClinicMemberships)

			auth := clinics.Group("/", h.authMiddleware())
			{
				auth.POST("/", h.createClinic)
				auth.PUT("/:id", h.updateClinic)
				auth.DELETE("/:id", h.deleteClinic)

				auth.POST("/:id/photo", h.uploadClinicPhoto)
				auth.DELETE("/:id/photo", h.deleteClinicPhoto)

				auth.POST("/:id/subscribe", h.subscribeClinic)

				auth.POST("/:id/reviews", h.createClinicReview)
			}
		}

		memberships := api.Group("/memberships")
		{
			memberships.GET("/", h.getMemberships)
			memberships.GET("/:id", h.getMembershipByID)
			memberships.GET("/:id/schedules", h.getMembershipSchedules)

			auth := memberships.Group("/", h.authMiddleware())
			{
				auth.POST("/", h.createMembership)
				auth.PUT("/:id", h.updateMembership)
				auth.DELETE("/:id", h.deleteMembership)
			}
		}

		schedules := api.Group("/schedules")
		{
			schedules.GET("/:id", h.getScheduleByID)

			auth := schedules.Group("/", h.authMiddleware())
			{
				auth.POST("/", h.createSchedule)
				auth.PUT("/:id", h.updateSchedule)
				auth.DELETE("/:id", h.deleteSchedule)
			}
		}

		h.initReviewRoutes(api)
	}
}

func (h *Handler) initReviewRoutes(api *gin.RouterGroup) {
	doctorReviews := api.Group("/reviews/doctors")
	{
		doctorReviews.GET("/:id", h.optionalAuthMiddleware(), h.getDoctorReviewByID)

		auth := doctorReviews.Group("/", h.authMiddleware())
		{
			auth.PUT("/:id", h.updateDoctorReview)
			auth.DELETE("/:id", h.deleteDoctorReview)
			auth.PUT("/:id/status", h.adminMiddleware(), h.updateDoctorReviewStatus)
		}
	}

	clinicReviews := api.Group("/reviews/clinics")
	{
		clinicReviews.GET("/:id", h.optionalAuthMiddleware(), h.getClinicReviewByID)

		auth := clinicReviews.Group("/", h.authMiddleware())
		{
			auth.PUT("/:id", h.updateClinicReview)
			auth.DELETE("/:id", h.deleteClinicReview)
			auth.PUT("/:id/status", h.adminMiddleware(), h.updateClinicReviewStatus)
		}
	}
}
