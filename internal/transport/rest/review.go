package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mediq/internal/domain"
)

func parseReviewFilter(c *gin.Context) domain.ReviewFilter {
	limit, offset := parsePagination(c)

	filter := domain.ReviewFilter{
		Limit:  limit,
		Offset: offset,
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.ReviewStatus(statusStr)
		if status.IsValid() {
			filter.Status = &status
		}
	}

	if authorIDStr := c.Query("author_id"); authorIDStr != "" {
		authorID, err := strconv.ParseInt(authorIDStr, 10, 64)
		if err == nil {
			filter.AuthorID = &authorID
		}
	}

	return filter
}

// canViewReview решает, виден ли отзыв текущему пользователю:
// опубликованные отзывы видят все, остальные — автор и администратор.
func canViewReview(c *gin.Context, authorID int64, status domain.ReviewStatus) bool {
	if status == domain.ReviewStatusApproved {
		return true
	}

	if role, err := getUserRole(c); err == nil && role == domain.UserRoleAdmin {
		return true
	}

	userID, err := getUserID(c)
	return err == nil && userID == authorID
}

// @Summary Отзывы на врача
// @Description Опубликованные отзывы; фильтр по статусу доступен администратору
// @Tags Отзывы
// @Produce json
// @Param id path int true "ID врача"
// @Param status query string false "Статус отзыва"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} paginatedResponse "Отзывы"
// @Failure 404 {object} errorResponseBody "Врач не найден"
// @Router /doctors/{id}/reviews [get]
func (h *Handler) getDoctorReviews(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID врача")
		return
	}

	filter := parseReviewFilter(c)

	// Неопубликованные отзывы видит только администратор.
	if role, err := getUserRole(c); err != nil || role != domain.UserRoleAdmin {
		approved := domain.ReviewStatusApproved
		filter.Status = &approved
	}

	reviews, total, err := h.services.Review.ListDoctorReviews(c.Request.Context(), id, filter)
	if err != nil {
		appErrorResponse(c, err)
		return
	}

	page := filter.Offset/filter.Limit + 1
	paginatedSuccessResponse(c, reviews, total, page, filter.Limit)
}

// @Summary Создание отзыва на врача
// @Tags Отзывы
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID врача"
// @Param input body domain.CreateReviewDTO true "Оценка и комментарий"
// @Success 201 {object} successResponseBody "ID созданного отзыва"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Отзыв на самого себя"
// @Failure 409 {object} errorResponseBody "Отзыв уже оставлен"
// @Router /doctors/{id}/reviews [post]
func (h *Handler) createDoctorReview(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID врача")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var input domain.CreateReviewDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	reviewID, err := h.services.Review.CreateDoctorReview(c.Request.Context(), userID, id, input)
	if err != nil {
		appErrorResponse(c, err)
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": reviewID,
	})
}

// @Summary Отзыв на врача по ID
// @Description Отзыв не в статусе approved доступен только автору и администратору
// @Tags Отзывы
// @Produce json
// @Param id path int true "ID отзыва"
// @Success 200 {object} domain.DoctorReview "Отзыв"
// @Failure 404 {object} errorResponseBody "Отзыв не найден"
// @Router /reviews/doctors/{id} [get]
func (h *Handler) getDoctorReviewByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID отзыва")
		return
	}

	review, err := h.services.Review.GetDoctorReviewByID(c.Request.Context(), id)
	if err != nil {
		appErrorResponse(c, err)
		return
	}

	if !canViewReview(c, review.AuthorID, review.Status) {
		notFoundResponse(c, "отзыв не найден")
		return
	}

	successResponse(c, http.StatusOK, review)
}

// @Summary Редактирование отзыва на врача
// @Tags Отзывы
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID отзыва"
// @Param input body domain.UpdateReviewDTO true "Обновляемые поля"
// @Success 200 {object} messageResponseType "Отзыв обновлен"
// @Failure 403 {object} errorResponseBody "Редактировать может только автор"
// @Failure 404 {object} errorResponseBody "Отзыв не найден"
// @Router /reviews/doctors/{id} [put]
func (h *Handler) updateDoctorReview(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID отзыва")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var input domain.UpdateReviewDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Review.UpdateDoctorReview(c.Request.Context(), userID, id, input); err != nil {
		appErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "отзыв обновлен")
}

// @Summary Модерация отзыва на врача
// @Tags Отзывы
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID отзыва"
// @Param input body domain.UpdateReviewStatusDTO true "Новый статус"
// @Success 200 {object} messageResponseType "Статус обновлен"
// @Failure 400 {object} errorResponseBody "Некорректный статус"
// @Failure 404 {object} errorResponseBody "Отзыв не найден"
// @Router /reviews/doctors/{id}/status [put]
func (h *Handler) updateDoctorReviewStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID отзыва")
		return
	}

	var input domain.UpdateReviewStatusDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Review.UpdateDoctorReviewStatus(c.Request.Context(), id, input); err != nil {
		appErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "статус отзыва обновлен")
}

// @Summary Удаление отзыва на врача
// @Tags Отзывы
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID отзыва"
// @Success 204 {object} nil "Отзыв удален"
// @Failure 403 {object} errorResponseBody "Удалить может автор или администратор"
// @Failure 404 {object} errorResponseBody "Отзыв не найден"
// @Router /reviews/doctors/{id} [delete]
func (h *Handler) deleteDoctorReview(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID отзыва")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	role, _ := getUserRole(c)

	if err := h.services.Review.DeleteDoctorReview(c.Request.Context(), userID, role, id); err != nil {
		appErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}

// @Summary Отзывы на клинику
// @Description Опубликованные отзывы; фильтр по статусу доступен администратору
// @Tags Отзывы
// @Produce json
// @Param id path int true "ID клиники"
// @Param status query string false "Статус отзыва"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} paginatedResponse "Отзывы"
// @Failure 404 {object} errorResponseBody "Клиника не найдена"
// @Router /clinics/{id}/reviews [get]
func (h *Handler) getClinicReviews(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID клиники")
		return
	}

	filter := parseReviewFilter(c)

	if role, err := getUserRole(c); err != nil || role != domain.UserRoleAdmin {
		approved := domain.ReviewStatusApproved
		filter.Status = &approved
	}

	reviews, total, err := h.services.Review.ListClinicReviews(c.Request.Context(), id, filter)
	if err != nil {
		appErrorResponse(c, err)
		return
	}

	page := filter.Offset/filter.Limit + 1
	paginatedSuccessResponse(c, reviews, total, page, filter.Limit)
}

// @Summary Создание отзыва на клинику
// @Tags Отзывы
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID клиники"
// @Param input body domain.CreateReviewDTO true "Оценка и комментарий"
// @Success 201 {object} successResponseBody "ID созданного отзыва"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Отзыв на собственную клинику"
// @Failure 409 {object} errorResponseBody "Отзыв уже оставлен"
// @Router /clinics/{id}/reviews [post]
func (h *Handler) createClinicReview(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID клиники")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var input domain.CreateReviewDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	reviewID, err := h.services.Review.CreateClinicReview(c.Request.Context(), userID, id, input)
	if err != nil {
		appErrorResponse(c, err)
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": reviewID,
	})
}

// @Summary Отзыв на клинику по ID
// @Description Отзыв не в статусе approved доступен только автору и администратору
// @Tags Отзывы
// @Produce json
// @Param id path int true "ID отзыва"
// @Success 200 {object} domain.ClinicReview "Отзыв"
// @Failure 404 {object} errorResponseBody "Отзыв не найден"
// @Router /reviews/clinics/{id} [get]
func (h *Handler) getClinicReviewByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID отзыва")
		return
	}

	review, err := h.services.Review.GetClinicReviewByID(c.Request.Context(), id)
	if err != nil {
		appErrorResponse(c, err)
		return
	}

	if !canViewReview(c, review.AuthorID, review.Status) {
		notFoundResponse(c, "отзыв не найден")
		return
	}

	successResponse(c, http.StatusOK, review)
}

// @Summary Редактирование отзыва на клинику
// @Tags Отзывы
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID отзыва"
// @Param input body domain.UpdateReviewDTO true "Обновляемые поля"
// @Success 200 {object} messageResponseType "Отзыв обновлен"
// @Failure 403 {object} errorResponseBody "Редактировать может только автор"
// @Failure 404 {object} errorResponseBody "Отзыв не найден"
// @Router /reviews/clinics/{id} [put]
func (h *Handler) updateClinicReview(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID отзыва")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var input domain.UpdateReviewDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Review.UpdateClinicReview(c.Request.Context(), userID, id, input); err != nil {
		appErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "отзыв обновлен")
}

// @Summary Модерация отзыва на клинику
// @Tags Отзывы
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID отзыва"
// @Param input body domain.UpdateReviewStatusDTO true "Новый статус"
// @Success 200 {object} messageResponseType "Статус обновлен"
// @Failure 400 {object} errorResponseBody "Некорректный статус"
// @Failure 404 {object} errorResponseBody "Отзыв не найден"
// @Router /reviews/clinics/{id}/status [put]
func (h *Handler) updateClinicReviewStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID отзыва")
		return
	}

	var input domain.UpdateReviewStatusDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Review.UpdateClinicReviewStatus(c.Request.Context(), id, input); err != nil {
		appErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "статус отзыва обновлен")
}

// @Summary Удаление отзыва на клинику
// @Tags Отзывы
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID отзыва"
// @Success 204 {object} nil "Отзыв удален"
// @Failure 403 {object} errorResponseBody "Удалить может автор или администратор"
// @Failure 404 {object} errorResponseBody "Отзыв не найден"
// @Router /reviews/clinics/{id} [delete]
func (h *Handler) deleteClinicReview(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID отзыва")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	role, _ := getUserRole(c)

	if err := h.services.Review.DeleteClinicReview(c.Request.Context(), userID, role, id); err != nil {
		appErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}
