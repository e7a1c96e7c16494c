package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mediq/internal/domain"
)

// @Summary Расписание по ID
// @Tags Расписания
// @Produce json
// @Param id path int true "ID расписания"
// @Success 200 {object} domain.Schedule "Расписание"
// @Failure 404 {object} errorResponseBody "Расписание не найдено"
// @Router /schedules/{id} [get]
func (h *Handler) getScheduleByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID расписания")
		return
	}

	schedule, err := h.services.Schedule.GetByID(c.Request.Context(), id)
	if err != nil {
		appErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, schedule)
}

// @Summary Создание расписания
// @Description Добавляет недельный интервал работы врача в клинике. Интервал не должен пересекаться с другими расписаниями того же членства.
// @Tags Расписания
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.CreateScheduleDTO true "Данные расписания"
// @Success 201 {object} successResponseBody "ID созданного расписания"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Членство не найдено"
// @Failure 409 {object} errorResponseBody "Пересечение с существующим расписанием"
// @Router /schedules [post]
func (h *Handler) createSchedule(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	role, err := getUserRole(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var input domain.CreateScheduleDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Schedule.Create(c.Request.Context(), userID, role, input)
	if err != nil {
		appErrorResponse(c, err)
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Обновление расписания
// @Description Меняет интервал расписания с повторной проверкой пересечений, само расписание из проверки исключается.
// @Tags Расписания
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID расписания"
// @Param input body domain.UpdateScheduleDTO true "Обновляемые поля"
// @Success 200 {object} domain.Schedule "Обновленное расписание"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Расписание не найдено"
// @Failure 409 {object} errorResponseBody "Пересечение с существующим расписанием"
// @Router /schedules/{id} [put]
func (h *Handler) updateSchedule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID расписания")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	role, err := getUserRole(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var input domain.UpdateScheduleDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	schedule, err := h.services.Schedule.Update(c.Request.Context(), userID, role, id, input)
	if err != nil {
		appErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, schedule)
}

// @Summary Удаление расписания
// @Tags Расписания
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID расписания"
// @Success 204 {object} nil "Расписание удалено"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Расписание не найдено"
// @Router /schedules/{id} [delete]
func (h *Handler) deleteSchedule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID расписания")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	role, err := getUserRole(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	if err := h.services.Schedule.Delete(c.Request.Context(), userID, role, id); err != nil {
		appErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}
