package domain

import (
	"time"
)

type Subscription struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	DurationDays int       `json:"duration_days"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateSubscriptionDTO struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" binding:"min=0"`
	DurationDays int     `json:"duration_days" binding:"required,min=1"`
	IsActive     bool    `json:"is_active"`
}

type UpdateSubscriptionDTO struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price" binding:"omitempty,min=0"`
	DurationDays *int     `json:"duration_days" binding:"omitempty,min=1"`
	IsActive     *bool    `json:"is_active"`
}

type SubscriptionFilter struct {
	IsActive *bool `json:"is_active"`
	Limit    int   `json:"limit"`
	Offset   int   `json:"offset"`
}
