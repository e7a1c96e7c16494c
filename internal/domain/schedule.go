package domain

import (
	"time"
)

type Weekday string

const (
	WeekdayMonday    Weekday = "monday"
	WeekdayTuesday   Weekday = "tuesday"
	WeekdayWednesday Weekday = "wednesday"
	WeekdayThursday  Weekday = "thursday"
	WeekdayFriday    Weekday = "friday"
	WeekdaySaturday  Weekday = "saturday"
	WeekdaySunday    Weekday = "sunday"
)

// Единый порядок дней недели для всей системы: понедельник = 0.
var weekdayOrdinals = map[Weekday]int{
	WeekdayMonday:    0,
	WeekdayTuesday:   1,
	WeekdayWednesday: 2,
	WeekdayThursday:  3,
	WeekdayFriday:    4,
	WeekdaySaturday:  5,
	WeekdaySunday:    6,
}

func (d Weekday) IsValid() bool {
	_, ok := weekdayOrdinals[d]
	return ok
}

func (d Weekday) Ordinal() int {
	return weekdayOrdinals[d]
}

type Schedule struct {
	ID           int64     `json:"id"`
	MembershipID int64     `json:"membership_id"`
	StartDay     Weekday   `json:"start_day"`
	EndDay       Weekday   `json:"end_day"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateScheduleDTO struct {
	MembershipID int64   `json:"membership_id" binding:"required"`
	StartDay     Weekday `json:"start_day" binding:"required"`
	EndDay       Weekday `json:"end_day" binding:"required"`
	StartTime    string  `json:"start_time" binding:"required"`
	EndTime      string  `json:"end_time" binding:"required"`
}

type UpdateScheduleDTO struct {
	StartDay  *Weekday `json:"start_day,omitempty"`
	EndDay    *Weekday `json:"end_day,omitempty"`
	StartTime *string  `json:"start_time,omitempty"`
	EndTime   *string  `json:"end_time,omitempty"`
}

// IsDayWithinRange проверяет принадлежность дня диапазону [start, end]
// включительно. Диапазон может переходить через конец недели
// (start > end, например пятница—понедельник).
func IsDayWithinRange(day, start, end Weekday) bool {
	d := day.Ordinal()
	s := start.Ordinal()
	e := end.Ordinal()

	if s <= e {
		return d >= s && d <= e
	}

	return d >= s || d <= e
}

// MinutesOfDay переводит время "HH:MM" в минуты от полуночи.
// Формат проверяется на границе, здесь вход считается корректным.
func MinutesOfDay(t string) int {
	parsed, err := time.Parse("15:04", t)
	if err != nil {
		return 0
	}
	return parsed.Hour()*60 + parsed.Minute()
}

// HasTimeOverlap проверяет пересечение двух интервалов времени внутри
// одного дня. Интервалы полуоткрытые: [start, end), поэтому интервал,
// заканчивающийся ровно в начале другого, пересечением не считается.
func HasTimeOverlap(start1, end1, start2, end2 string) bool {
	s1 := MinutesOfDay(start1)
	e1 := MinutesOfDay(end1)
	s2 := MinutesOfDay(start2)
	e2 := MinutesOfDay(end2)

	return !(e1 <= s2 || s1 >= e2)
}

// SchedulesConflict проверяет, пересекается ли предлагаемое расписание
// с существующим по дням и времени. Для многодневного диапазона день
// окончания существующего расписания отдельно не проверяется: если он
// попадает внутрь предлагаемого диапазона, то день начала предлагаемого
// обязательно лежит внутри существующего, и первое условие это ловит.
func SchedulesConflict(proposed, candidate Schedule) bool {
	var dayHit bool

	if proposed.StartDay != proposed.EndDay {
		dayHit = IsDayWithinRange(proposed.StartDay, candidate.StartDay, candidate.EndDay) ||
			IsDayWithinRange(proposed.EndDay, candidate.StartDay, candidate.EndDay) ||
			IsDayWithinRange(candidate.StartDay, proposed.StartDay, proposed.EndDay)
	} else {
		dayHit = IsDayWithinRange(proposed.StartDay, candidate.StartDay, candidate.EndDay)
	}

	if !dayHit {
		return false
	}

	return HasTimeOverlap(proposed.StartTime, proposed.EndTime, candidate.StartTime, candidate.EndTime)
}
