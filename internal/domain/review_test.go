package domain

import "testing"

func TestAggregateRatings(t *testing.T) {
	tests := []struct {
		name      string
		ratings   []int
		wantAvg   float64
		wantCount int
	}{
		{"без отзывов", nil, 0, 0},
		{"один отзыв", []int{4}, 4, 1},
		{"округление до одного знака", []int{3, 3, 4}, 3.3, 3},
		{"округление вверх", []int{4, 5}, 4.5, 2},
		{"все максимальные", []int{5, 5, 5}, 5, 3},
		{"периодическая дробь", []int{1, 2, 2}, 1.7, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			avg, count := AggregateRatings(tt.ratings)
			if avg != tt.wantAvg {
				t.Errorf("средний рейтинг = %v, ожидалось %v", avg, tt.wantAvg)
			}
			if count != tt.wantCount {
				t.Errorf("количество = %d, ожидалось %d", count, tt.wantCount)
			}
		})
	}
}

func TestReviewStatusIsValid(t *testing.T) {
	valid := []ReviewStatus{ReviewStatusPending, ReviewStatusApproved, ReviewStatusRejected}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("статус %q должен быть валидным", s)
		}
	}

	if ReviewStatus("published").IsValid() {
		t.Error("неизвестный статус не должен быть валидным")
	}
}
