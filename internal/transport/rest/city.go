package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mediq/internal/domain"
)

// @Summary Список городов
// @Tags Города
// @Produce json
// @Param is_active query bool false "Только активные"
// @Param search query string false "Поиск по названию"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} paginatedResponse "Список городов"
// @Router /cities [get]
func (h *Handler) getCities(c *gin.Context) {
	limit, offset := parsePagination(c)

	filter := domain.CityFilter{
		Limit:  limit,
		Offset: offset,
	}

	if isActiveStr := c.Query("is_active"); isActiveStr != "" {
		isActive, err := strconv.ParseBool(isActiveStr)
		if err == nil {
			filter.IsActive = &isActive
		}
	}

	if search := c.Query("search"); search != "" {
		filter.SearchTerm = &search
	}

	cities, total, err := h.services.City.List(c.Request.Context(), filter)
	if err != nil {
		appErrorResponse(c, err)
		return
	}

	page := offset/limit + 1
	paginatedSuccessResponse(c, cities, total, page, limit)
}

// @Summary Город по ID
// @Tags Города
// @Produce json
// @Param id path int true "ID города"
// @Success 200 {object} domain.City "Город"
// @Failure 404 {object} errorResponseBody "Город не найден"
// @Router /cities/{id} [get]
func (h *Handler) getCityByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID города")
		return
	}

	city, err := h.services.City.GetByID(c.Request.Context(), id)
	if err != nil {
		appErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, city)
}

// @Summary Создание города
// @Tags Города
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.CreateCityDTO true "Данные города"
// @Success 201 {object} successResponseBody "ID созданного города"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Router /cities [post]
func (h *Handler) createCity(c *gin.Context) {
	var input domain.CreateCityDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.City.Create(c.Request.Context(), input)
	if err != nil {
		appErrorResponse(c, err)
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Обновление города
// @Tags Города
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID города"
// @Param input body domain.UpdateCityDTO true "Обновляемые поля"
// @Success 200 {object} messageResponseType "Город обновлен"
// @Failure 404 {object} errorResponseBody "Город не найден"
// @Router /cities/{id} [put]
func (h *Handler) updateCity(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID города")
		return
	}

	var input domain.UpdateCityDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.City.Update(c.Request.Context(), id, input); err != nil {
		appErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "город обновлен")
}

// @Summary Удаление города
// @Tags Города
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID города"
// @Success 204 {object} nil "Город удален"
// @Failure 404 {object} errorResponseBody "Город не найден"
// @Router /cities/{id} [delete]
func (h *Handler) deleteCity(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID города")
		return
	}

	if err := h.services.City.Delete(c.Request.Context(), id); err != nil {
		appErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}
