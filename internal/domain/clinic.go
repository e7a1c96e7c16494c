package domain

import (
	"time"
)

type Clinic struct {
	ID                    int64      `json:"id"`
	OwnerID               int64      `json:"owner_id"`
	CityID                int64      `json:"city_id"`
	Name                  string     `json:"name"`
	Address               string     `json:"address"`
	Phone                 string     `json:"phone"`
	Description           string     `json:"description"`
	PhotoURL              string     `json:"photo_url"`
	AverageRating         float64    `json:"average_rating"`
	ReviewsCount          int        `json:"reviews_count"`
	SubscriptionID        *int64     `json:"subscription_id"`
	SubscriptionExpiresAt *time.Time `json:"subscription_expires_at"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

type CreateClinicDTO struct {
	CityID      int64  `json:"city_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	Description string `json:"description"`
	Photo       []byte `json:"-"`
}

type UpdateClinicDTO struct {
	CityID      *int64  `json:"city_id"`
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	Description *string `json:"description"`
	Photo       []byte  `json:"-"`
}

type ClinicFilter struct {
	CityID     *int64  `json:"city_id"`
	OwnerID    *int64  `json:"owner_id"`
	SearchTerm *string `json:"search_term"`
	Limit      int     `json:"limit"`
	Offset     int     `json:"offset"`
}
