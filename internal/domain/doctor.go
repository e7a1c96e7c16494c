package domain

import (
	"time"
)

type Doctor struct {
	ID              int64       `json:"id"`
	UserID          int64       `json:"user_id"`
	Bio             string      `json:"bio"`
	ExperienceYears int         `json:"experience_years"`
	AverageRating   float64     `json:"average_rating"`
	ReviewsCount    int         `json:"reviews_count"`
	ProfilePhotoURL string      `json:"profile_photo_url"`
	Specialties     []Specialty `json:"specialties"`
	User            User        `json:"user"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type CreateDoctorDTO struct {
	UserID          int64   `json:"user_id,omitempty"`
	Bio             string  `json:"bio,omitempty"`
	ExperienceYears int     `json:"experience_years,omitempty" binding:"min=0"`
	ProfilePhoto    []byte  `json:"-"`
	SpecialtyIDs    []int64 `json:"specialty_ids,omitempty"`
}

type UpdateDoctorDTO struct {
	Bio             *string `json:"bio"`
	ExperienceYears *int    `json:"experience_years" binding:"omitempty,min=0"`
	ProfilePhoto    []byte  `json:"-"`
}

type DoctorFilter struct {
	SpecialtyID *int64  `json:"specialty_id"`
	CityID      *int64  `json:"city_id"`
	SearchTerm  *string `json:"search_term"`
	Limit       int     `json:"limit"`
	Offset      int     `json:"offset"`
}
