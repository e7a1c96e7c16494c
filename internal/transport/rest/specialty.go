package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mediq/internal/domain"
)

// @Summary Список специальностей
// @Tags Специальности
// @Produce json
// @Param is_active query bool false "Только активные"
// @Param search query string false "Поиск по названию"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} paginatedResponse "Список специальностей"
// @Router /specialties [get]
func (h *Handler) getSpecialties(c *gin.Context) {
	limit, offset := parsePagination(c)

	filter := domain.SpecialtyFilter{
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

	specialties, total, err := h.services.Specialty.List(c.Request.Context(), filter)
	if err != nil {
		appErrorResponse(c, err)
		return
	}

	page := offset/limit + 1
	paginatedSuccessResponse(c, specialties, total, page, limit)
}

// @Summary Специальность по ID
// @Tags Специальности
// @Produce json
// @Param id path int true "ID специальности"
// @Success 200 {object} domain.Specialty "Специальность"
// @Failure 404 {object} errorResponseBody "Специальность не найдена"
// @Router /specialties/{id} [get]
func (h *Handler) getSpecialtyByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID специальности")
		return
	}

	specialty, err := h.services.Specialty.GetByID(c.Request.Context(), id)
	if err != nil {
		appErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, specialty)
}

// @Summary Создание специальности
// @Tags Специальности
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.CreateSpecialtyDTO true "Данные специальности"
// @Success 201 {object} successResponseBody "ID созданной специальности"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Router /specialties [post]
func (h *Handler) createSpecialty(c *gin.Context) {
	var input domain.CreateSpecialtyDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Specialty.Create(c.Request.Context(), input)
	if err != nil {
		appErrorResponse(c, err)
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Обновление специальности
// @Tags Специальности
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID специальности"
// @Param input body domain.UpdateSpecialtyDTO true "Обновляемые поля"
// @Success 200 {object} messageResponseType "Специальность обновлена"
// @Failure 404 {object} errorResponseBody "Специальность не найдена"
// @Router /specialties/{id} [put]
func (h *Handler) updateSpecialty(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID специальности")
		return
	}

	var input domain.UpdateSpecialtyDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Specialty.Update(c.Request.Context(), id, input); err != nil {
		appErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "специальность обновлена")
}

// @Summary Удаление специальности
// @Tags Специальности
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID специальности"
// @Success 204 {object} nil "Специальность удалена"
// @Failure 404 {object} errorResponseBody "Специальность не найдена"
// @Router /specialties/{id} [delete]
func (h *Handler) deleteSpecialty(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID специальности")
		return
	}

	if err := h.services.Specialty.Delete(c.Request.Context(), id); err != nil {
		appErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}
