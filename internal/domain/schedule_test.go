package domain

import "testing"

func TestIsDayWithinRange(t *testing.T) {
	tests := []struct {
		name  string
		day   Weekday
		start Weekday
		end   Weekday
		want  bool
	}{
		{"внутри обычного диапазона", WeekdayTuesday, WeekdayMonday, WeekdayWednesday, true},
		{"граница начала", WeekdayMonday, WeekdayMonday, WeekdayWednesday, true},
		{"граница конца", WeekdayWednesday, WeekdayMonday, WeekdayWednesday, true},
		{"вне диапазона", WeekdayThursday, WeekdayMonday, WeekdayWednesday, false},
		{"диапазон из одного дня", WeekdayFriday, WeekdayFriday, WeekdayFriday, true},
		{"один день, мимо", WeekdaySaturday, WeekdayFriday, WeekdayFriday, false},
		{"переход через неделю, хвост", WeekdaySaturday, WeekdayFriday, WeekdayMonday, true},
		{"переход через неделю, голова", WeekdayMonday, WeekdayFriday, WeekdayMonday, true},
		{"переход через неделю, воскресенье", WeekdaySunday, WeekdayFriday, WeekdayMonday, true},
		{"переход через неделю, середина недели", WeekdayWednesday, WeekdayFriday, WeekdayMonday, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsDayWithinRange(tt.day, tt.start, tt.end)
			if got != tt.want {
				t.Errorf("IsDayWithinRange(%s, %s, %s) = %v, ожидалось %v",
					tt.day, tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestHasTimeOverlap(t *testing.T) {
	tests := []struct {
		name                       string
		start1, end1, start2, end2 string
		want                       bool
	}{
		{"полное пересечение", "09:00", "12:00", "10:00", "11:00", true},
		{"частичное пересечение", "09:00", "12:00", "11:00", "13:00", true},
		{"одинаковые интервалы", "09:00", "12:00", "09:00", "12:00", true},
		{"встык не пересекаются", "09:00", "12:00", "12:00", "13:00", false},
		{"встык в обратном порядке", "12:00", "13:00", "09:00", "12:00", false},
		{"раздельные интервалы", "08:00", "09:00", "10:00", "11:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HasTimeOverlap(tt.start1, tt.end1, tt.start2, tt.end2)
			if got != tt.want {
				t.Errorf("HasTimeOverlap(%s-%s, %s-%s) = %v, ожидалось %v",
					tt.start1, tt.end1, tt.start2, tt.end2, got, tt.want)
			}

			// Пересечение симметрично.
			reversed := HasTimeOverlap(tt.start2, tt.end2, tt.start1, tt.end1)
			if reversed != got {
				t.Errorf("пересечение несимметрично: %v против %v", got, reversed)
			}
		})
	}
}

func TestMinutesOfDay(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"09:30", 570},
		{"23:59", 1439},
	}

	for _, tt := range tests {
		if got := MinutesOfDay(tt.in); got != tt.want {
			t.Errorf("MinutesOfDay(%q) = %d, ожидалось %d", tt.in, got, tt.want)
		}
	}
}

func newSchedule(startDay, endDay Weekday, startTime, endTime string) Schedule {
	return Schedule{
		StartDay:  startDay,
		EndDay:    endDay,
		StartTime: startTime,
		EndTime:   endTime,
	}
}

func TestSchedulesConflict(t *testing.T) {
	tests := []struct {
		name      string
		proposed  Schedule
		candidate Schedule
		want      bool
	}{
		{
			name:      "пересечение дней и времени",
			proposed:  newSchedule(WeekdayMonday, WeekdayWednesday, "09:00", "12:00"),
			candidate: newSchedule(WeekdayWednesday, WeekdayThursday, "11:00", "13:00"),
			want:      true,
		},
		{
			name:      "дни пересекаются, время встык",
			proposed:  newSchedule(WeekdayMonday, WeekdayWednesday, "09:00", "12:00"),
			candidate: newSchedule(WeekdayWednesday, WeekdayThursday, "12:00", "13:00"),
			want:      false,
		},
		{
			name:      "дни не пересекаются",
			proposed:  newSchedule(WeekdayMonday, WeekdayTuesday, "09:00", "12:00"),
			candidate: newSchedule(WeekdayThursday, WeekdayFriday, "09:00", "12:00"),
			want:      false,
		},
		{
			name:      "существующий диапазон целиком внутри предлагаемого",
			proposed:  newSchedule(WeekdayMonday, WeekdayFriday, "09:00", "12:00"),
			candidate: newSchedule(WeekdayTuesday, WeekdayThursday, "10:00", "11:00"),
			want:      true,
		},
		{
			name:      "предлагаемый целиком внутри существующего",
			proposed:  newSchedule(WeekdayTuesday, WeekdayWednesday, "10:00", "11:00"),
			candidate: newSchedule(WeekdayMonday, WeekdayFriday, "09:00", "12:00"),
			want:      true,
		},
		{
			name:      "однодневное против многодневного",
			proposed:  newSchedule(WeekdayTuesday, WeekdayTuesday, "10:00", "11:00"),
			candidate: newSchedule(WeekdayMonday, WeekdayWednesday, "09:00", "12:00"),
			want:      true,
		},
		{
			name:      "однодневное мимо диапазона",
			proposed:  newSchedule(WeekdayFriday, WeekdayFriday, "10:00", "11:00"),
			candidate: newSchedule(WeekdayMonday, WeekdayWednesday, "09:00", "12:00"),
			want:      false,
		},
		{
			name:      "переход через неделю против начала недели",
			proposed:  newSchedule(WeekdayFriday, WeekdayMonday, "09:00", "12:00"),
			candidate: newSchedule(WeekdayMonday, WeekdayTuesday, "10:00", "11:00"),
			want:      true,
		},
		{
			name:      "частичное перекрытие диапазонов",
			proposed:  newSchedule(WeekdayWednesday, WeekdayFriday, "09:00", "12:00"),
			candidate: newSchedule(WeekdayMonday, WeekdayThursday, "10:00", "11:00"),
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SchedulesConflict(tt.proposed, tt.candidate)
			if got != tt.want {
				t.Errorf("SchedulesConflict = %v, ожидалось %v", got, tt.want)
			}
		})
	}
}

// Проверка пересечения не зависит от того, какое расписание считается
// предлагаемым, а какое существующим.
func TestSchedulesConflictSymmetry(t *testing.T) {
	days := []Weekday{WeekdayMonday, WeekdayWednesday, WeekdayFriday, WeekdaySunday}

	for _, s1 := range days {
		for _, e1 := range days {
			for _, s2 := range days {
				for _, e2 := range days {
					a := newSchedule(s1, e1, "09:00", "12:00")
					b := newSchedule(s2, e2, "10:00", "13:00")

					if SchedulesConflict(a, b) != SchedulesConflict(b, a) {
						t.Errorf("несимметричный результат для %s-%s против %s-%s", s1, e1, s2, e2)
					}
				}
			}
		}
	}
}
