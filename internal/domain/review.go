package domain

import (
	"math"
	"time"
)

type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

func (s ReviewStatus) IsValid() bool {
	return s == ReviewStatusPending || s == ReviewStatusApproved || s == ReviewStatusRejected
}

type DoctorReview struct {
	ID        int64        `json:"id"`
	AuthorID  int64        `json:"author_id"`
	DoctorID  int64        `json:"doctor_id"`
	Rating    int          `json:"rating"`
	Comment   string       `json:"comment"`
	Status    ReviewStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type ClinicReview struct {
	ID        int64        `json:"id"`
	AuthorID  int64        `json:"author_id"`
	ClinicID  int64        `json:"clinic_id"`
	Rating    int          `json:"rating"`
	Comment   string       `json:"comment"`
	Status    ReviewStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type CreateReviewDTO struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

type UpdateReviewDTO struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" binding:"omitempty"`
}

type UpdateReviewStatusDTO struct {
	Status ReviewStatus `json:"status" binding:"required,oneof=pending approved rejected"`
}

type ReviewFilter struct {
	AuthorID *int64        `json:"author_id"`
	Status   *ReviewStatus `json:"status"`
	Limit    int           `json:"limit"`
	Offset   int           `json:"offset"`
}

// AggregateRatings считает средний рейтинг по одобренным отзывам,
// округленный до одного знака, и их количество. Без отзывов — 0.
func AggregateRatings(ratings []int) (float64, int) {
	if len(ratings) == 0 {
		return 0, 0
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}

	avg := float64(sum) / float64(len(ratings))

	return math.Round(avg*10) / 10, len(ratings)
}
