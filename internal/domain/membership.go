package domain

import (
	"time"
)

// ClinicMembership связывает врача с клиникой и владеет расписаниями.
type ClinicMembership struct {
	ID        int64      `json:"id"`
	DoctorID  int64      `json:"doctor_id"`
	ClinicID  int64      `json:"clinic_id"`
	Position  string     `json:"position"`
	Doctor    *Doctor    `json:"doctor,omitempty"`
	Clinic    *Clinic    `json:"clinic,omitempty"`
	Schedules []Schedule `json:"schedules,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CreateMembershipDTO struct {
	DoctorID int64  `json:"doctor_id" binding:"required"`
	ClinicID int64  `json:"clinic_id" binding:"required"`
	Position string `json:"position"`
}

type UpdateMembershipDTO struct {
	Position *string `json:"position"`
}

type MembershipFilter struct {
	DoctorID *int64 `json:"doctor_id"`
	ClinicID *int64 `json:"clinic_id"`
	Limit    int    `json:"limit"`
	Offset   int    `json:"offset"`
}
