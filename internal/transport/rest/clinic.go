package rest

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mediq/internal/domain"
)

// @Summary Список клиник
// @Description Поиск клиник по городу и названию
// @Tags Клиники
// @Produce json
// @Param city_id query int false "ID города"
// @Param search query string false "Поиск по названию"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} paginatedResponse "Список клиник"
// @Router /clinics [get]
func (h *Handler) getClinics(c *gin.Context) {
	limit, offset := parsePagination(c)

	filter := domain.ClinicFilter{
		Limit:  limit,
		Offset: offset,
	}

	if cityIDStr := c.Query("city_id"); cityIDStr != "" {
		cityID, err := strconv.ParseInt(cityIDStr, 10, 64)
		if err == nil {
			filter.CityID = &cityID
		}
	}

	if search := c.Query("search"); search != "" {
		filter.SearchTerm = &search
	}

	clinics, total, err := h.services.Clinic.List(c.Request.Context(), filter)
	if err != nil {
		appErrorResponse(c, err)
		return
	}

	page := offset/limit + 1
	paginatedSuccessResponse(c, clinics, total, page, limit)
}

// @Summary Клиника по ID
// @Tags Клиники
// @Produce json
// @Param id path int true "ID клиники"
// @Success 200 {object} domain.Clinic "Клиника"
// @Failure 404 {object} errorResponseBody "Клиника не найдена"
// @Router /clinics/{id} [get]
func (h *Handler) getClinicByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID клиники")
		return
	}

	clinic, err := h.services.Clinic.GetByID(c.Request.Context(), id)
	if err != nil {
		appErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, clinic)
}

// @Summary Регистрация клиники
// @Tags Клиники
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.CreateClinicDTO true "Данные клиники"
// @Success 201 {object} successResponseBody "ID созданной клиники"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Router /clinics [post]
func (h *Handler) createClinic(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var input domain.CreateClinicDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Clinic.Create(c.Request.Context(), userID, input)
	if err != nil {
		appErrorResponse(c, err)
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Обновление клиники
// @Tags Клиники
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID клиники"
// @Param input body domain.UpdateClinicDTO true "Обновляемые поля"
// @Success 200 {object} messageResponseType "Клиника обновлена"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Клиника не найдена"
// @Router /clinics/{id} [put]
func (h *Handler) updateClinic(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID клиники")
		return
	}

	if err := h.checkClinicAccess(c, id); err != nil {
		appErrorResponse(c, err)
		return
	}

	var input domain.UpdateClinicDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Clinic.Update(c.Request.Context(), id, input); err != nil {
		appErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "клиника обновлена")
}

// @Summary Удаление клиники
// @Tags Клиники
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID клиники"
// @Success 204 {object} nil "Клиника удалена"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Клиника не найдена"
// @Router /clinics/{id} [delete]
func (h *Handler) deleteClinic(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID клиники")
		return
	}

	if err := h.checkClinicAccess(c, id); err != nil {
		appErrorResponse(c, err)
		return
	}

	if err := h.services.Clinic.Delete(c.Request.Context(), id); err != nil {
		appErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}

// @Summary Загрузка фото клиники
// @Tags Клиники
// @Security ApiKeyAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "ID клиники"
// @Param photo formData file true "Файл изображения"
// @Success 200 {object} messageResponseType "Фото загружено"
// @Failure 400 {object} errorResponseBody "Некорректный файл"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Router /clinics/{id}/photo [post]
func (h *Handler) uploadClinicPhoto(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID клиники")
		return
	}

	if err := h.checkClinicAccess(c, id); err != nil {
		appErrorResponse(c, err)
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		badRequestResponse(c, "файл не передан")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		badRequestResponse(c, "не удалось прочитать файл")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		badRequestResponse(c, "не удалось прочитать файл")
		return
	}

	if err := h.services.Clinic.UploadPhoto(c.Request.Context(), id, data, fileHeader.Filename); err != nil {
		appErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "фото загружено")
}

// @Summary Удаление фото клиники
// @Tags Клиники
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID клиники"
// @Success 204 {object} nil "Фото удалено"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Router /clinics/{id}/photo [delete]
func (h *Handler) deleteClinicPhoto(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID клиники")
		return
	}

	if err := h.checkClinicAccess(c, id); err != nil {
		appErrorResponse(c, err)
		return
	}

	if err := h.services.Clinic.DeletePhoto(c.Request.Context(), id); err != nil {
		appErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}

type subscribeClinicRequest struct {
	SubscriptionID int64 `json:"subscription_id" binding:"required"`
}

// @Summary Подключение тарифа клинике
// @Tags Клиники
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID клиники"
// @Param input body subscribeClinicRequest true "ID тарифа"
// @Success 200 {object} messageResponseType "Тариф подключен"
// @Failure 400 {object} errorResponseBody "Тариф недоступен"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Router /clinics/{id}/subscribe [post]
func (h *Handler) subscribeClinic(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID клиники")
		return
	}

	if err := h.checkClinicAccess(c, id); err != nil {
		appErrorResponse(c, err)
		return
	}

	var input subscribeClinicRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Clinic.Subscribe(c.Request.Context(), id, input.SubscriptionID); err != nil {
		appErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "тариф подключен")
}

// @Summary Членства клиники
// @Tags Клиники
// @Produce json
// @Param id path int true "ID клиники"
// @Success 200 {object} paginatedResponse "Врачи клиники"
// @Router /clinics/{id}/memberships [get]
func (h *Handler) getClinicMemberships(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID клиники")
		return
	}

	limit, offset := parsePagination(c)

	filter := domain.MembershipFilter{
		ClinicID: &id,
		Limit:    limit,
		Offset:   offset,
	}

	memberships, total, err := h.services.Membership.List(c.Request.Context(), filter)
	if err != nil {
		appErrorResponse(c, err)
		return
	}

	page := offset/limit + 1
	paginatedSuccessResponse(c, memberships, total, page, limit)
}

// Клинику может менять ее владелец или администратор.
func (h *Handler) checkClinicAccess(c *gin.Context, clinicID int64) error {
	userID, err := getUserID(c)
	if err != nil {
		return domain.NewForbiddenError("пользователь не авторизован")
	}

	role, _ := getUserRole(c)
	if role == domain.UserRoleAdmin {
		return nil
	}

	clinic, err := h.services.Clinic.GetByID(c.Request.Context(), clinicID)
	if err != nil {
		return err
	}

	if clinic.OwnerID != userID {
		return domain.NewForbiddenError("нет прав на управление этой клиникой")
	}

	return nil
}
