package domain

import (
	"time"
)

type City struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateCityDTO struct {
	Name     string `json:"name" binding:"required"`
	IsActive bool   `json:"is_active"`
}

type UpdateCityDTO struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
}

type CityFilter struct {
	IsActive   *bool   `json:"is_active"`
	SearchTerm *string `json:"search_term"`
	Limit      int     `json:"limit"`
	Offset     int     `json:"offset"`
}
