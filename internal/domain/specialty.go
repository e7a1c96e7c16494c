package domain

import (
	"time"
)

type Specialty struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type DoctorSpecialty struct {
	DoctorID    int64     `json:"doctor_id"`
	SpecialtyID int64     `json:"specialty_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateSpecialtyDTO struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	IsActive    bool   `json:"is_active"`
}

type UpdateSpecialtyDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

type SpecialtyFilter struct {
	IsActive   *bool   `json:"is_active"`
	SearchTerm *string `json:"search_term"`
	DoctorID   *int64  `json:"doctor_id"`
	Limit      int     `json:"limit"`
	Offset     int     `json:"offset"`
}
