package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mediq/internal/domain"
)

// @Summary Список тарифов
// @Tags Тарифы
// @Produce json
// @Param is_active query bool false "Только активные"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} paginatedResponse "Список тарифов"
// @Router /subscriptions [get]
func (h *Handler) getSubscriptions(c *gin.Context) {
	limit, offset := parsePagination(c)

	filter := domain.SubscriptionFilter{
		Limit:  limit,
		Offset: offset,
	}

	if isActiveStr := c.Query("is_active"); isActiveStr != "" {
		isActive, err := strconv.ParseBool(isActiveStr)
		if err == nil {
			filter.IsActive = &isActive
		}
	}

	subscriptions, total, err := h.services.Subscription.List(c.Request.Context(), filter)
	if err != nil {
		appErrorResponse(c, err)
		return
	}

	page := offset/limit + 1
	paginatedSuccessResponse(c, subscriptions, total, page, limit)
}

// @Summary Тариф по ID
// @Tags Тарифы
// @Produce json
// @Param id path int true "ID тарифа"
// @Success 200 {object} domain.Subscription "Тариф"
// @Failure 404 {object} errorResponseBody "Тариф не найден"
// @Router /subscriptions/{id} [get]
func (h *Handler) getSubscriptionByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID тарифа")
		return
	}

	subscription, err := h.services.Subscription.GetByID(c.Request.Context(), id)
	if err != nil {
		appErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, subscription)
}

// @Summary Создание тарифа
// @Tags Тарифы
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.CreateSubscriptionDTO true "Данные тарифа"
// @Success 201 {object} successResponseBody "ID созданного тарифа"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Router /subscriptions [post]
func (h *Handler) createSubscription(c *gin.Context) {
	var input domain.CreateSubscriptionDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Subscription.Create(c.Request.Context(), input)
	if err != nil {
		appErrorResponse(c, err)
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Обновление тарифа
// @Tags Тарифы
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID тарифа"
// @Param input body domain.UpdateSubscriptionDTO true "Обновляемые поля"
// @Success 200 {object} messageResponseType "Тариф обновлен"
// @Failure 404 {object} errorResponseBody "Тариф не найден"
// @Router /subscriptions/{id} [put]
func (h *Handler) updateSubscription(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID тарифа")
		return
	}

	var input domain.UpdateSubscriptionDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Subscription.Update(c.Request.Context(), id, input); err != nil {
		appErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "тариф обновлен")
}

// @Summary Удаление тарифа
// @Tags Тарифы
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID тарифа"
// @Success 204 {object} nil "Тариф удален"
// @Failure 404 {object} errorResponseBody "Тариф не найден"
// @Router /subscriptions/{id} [delete]
func (h *Handler) deleteSubscription(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID тарифа")
		return
	}

	if err := h.services.Subscription.Delete(c.Request.Context(), id); err != nil {
		appErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}
