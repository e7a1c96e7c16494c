package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mediq/internal/domain"
	"mediq/internal/service"
)

type fakeAuthService struct {
	service.AuthService
	tokens map[string]struct {
		userID int64
		role   domain.UserRole
	}
}

func (s *fakeAuthService) ParseToken(ctx context.Context, token string) (int64, domain.UserRole, error) {
	t, ok := s.tokens[token]
	if !ok {
		return 0, "", errors.New("невалидный токен")
	}
	return t.userID, t.role, nil
}

type fakeReviewService struct {
	service.ReviewService
	reviews    map[int64]*domain.DoctorReview
	lastFilter domain.ReviewFilter
}

func (s *fakeReviewService) ListDoctorReviews(ctx context.Context, doctorID int64, filter domain.ReviewFilter) ([]domain.DoctorReview, int, error) {
	s.lastFilter = filter
	return nil, 0, nil
}

func (s *fakeReviewService) GetDoctorReviewByID(ctx context.Context, id int64) (*domain.DoctorReview, error) {
	review, ok := s.reviews[id]
	if !ok {
		return nil, domain.NewNotFoundError("отзыв не найден")
	}
	return review, nil
}

func newReviewRouterForTest() (*gin.Engine, *fakeReviewService) {
	gin.SetMode(gin.TestMode)

	auth := &fakeAuthService{tokens: map[string]struct {
		userID int64
		role   domain.UserRole
	}{
		"admin-token":   {userID: 1, role: domain.UserRoleAdmin},
		"author-token":  {userID: 7, role: domain.UserRolePatient},
		"patient-token": {userID: 8, role: domain.UserRolePatient},
	}}

	reviews := &fakeReviewService{reviews: map[int64]*domain.DoctorReview{
		100: {ID: 100, AuthorID: 7, DoctorID: 20, Rating: 4, Status: domain.ReviewStatusPending},
		101: {ID: 101, AuthorID: 7, DoctorID: 20, Rating: 5, Status: domain.ReviewStatusApproved},
	}}

	handler := NewHandler(&service.Services{Auth: auth, Review: reviews}, zap.NewNop(), nil)

	router := gin.New()
	handler.InitRoutes(router)

	return router, reviews
}

func doGet(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetDoctorReviewsStatusFilter(t *testing.T) {
	approved := domain.ReviewStatusApproved
	pending := domain.ReviewStatusPending

	tests := []struct {
		name       string
		token      string
		query      string
		wantStatus *domain.ReviewStatus
	}{
		{
			name:       "аноним видит только опубликованные",
			token:      "",
			query:      "",
			wantStatus: &approved,
		},
		{
			name:       "фильтр анонима по статусу игнорируется",
			token:      "",
			query:      "?status=pending",
			wantStatus: &approved,
		},
		{
			name:       "пациент видит только опубликованные",
			token:      "patient-token",
			query:      "?status=pending",
			wantStatus: &approved,
		},
		{
			name:       "администратор фильтрует по статусу",
			token:      "admin-token",
			query:      "?status=pending",
			wantStatus: &pending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, reviews := newReviewRouterForTest()

			w := doGet(router, "/api/v1/doctors/20/reviews"+tt.query, tt.token)
			if w.Code != http.StatusOK {
				t.Fatalf("статус ответа = %d, ожидалось 200", w.Code)
			}

			if reviews.lastFilter.Status == nil {
				t.Fatal("фильтр по статусу не установлен")
			}
			if *reviews.lastFilter.Status != *tt.wantStatus {
				t.Errorf("статус в фильтре = %s, ожидалось %s", *reviews.lastFilter.Status, *tt.wantStatus)
			}
		})
	}
}

func TestGetDoctorReviewByIDVisibility(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		reviewID string
		wantCode int
	}{
		{
			name:     "опубликованный отзыв доступен анониму",
			token:    "",
			reviewID: "101",
			wantCode: http.StatusOK,
		},
		{
			name:     "отзыв на модерации скрыт от анонима",
			token:    "",
			reviewID: "100",
			wantCode: http.StatusNotFound,
		},
		{
			name:     "отзыв на модерации скрыт от постороннего",
			token:    "patient-token",
			reviewID: "100",
			wantCode: http.StatusNotFound,
		},
		{
			name:     "автор видит свой отзыв на модерации",
			token:    "author-token",
			reviewID: "100",
			wantCode: http.StatusOK,
		},
		{
			name:     "администратор видит отзыв на модерации",
			token:    "admin-token",
			reviewID: "100",
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newReviewRouterForTest()

			w := doGet(router, "/api/v1/reviews/doctors/"+tt.reviewID, tt.token)
			if w.Code != tt.wantCode {
				t.Errorf("статус ответа = %d, ожидалось %d", w.Code, tt.wantCode)
			}
		})
	}
}
