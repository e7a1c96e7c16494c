package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mediq/internal/domain"
)

// @Summary Список членств
// @Description Связи врачей и клиник с фильтрацией
// @Tags Членства
// @Produce json
// @Param doctor_id query int false "ID врача"
// @Param clinic_id query int false "ID клиники"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} paginatedResponse "Список членств"
// @Router /memberships [get]
func (h *Handler) getMemberships(c *gin.Context) {
	limit, offset := parsePagination(c)

	filter := domain.MembershipFilter{
		Limit:  limit,
		Offset: offset,
	}

	if doctorIDStr := c.Query("doctor_id"); doctorIDStr != "" {
		doctorID, err := strconv.ParseInt(doctorIDStr, 10, 64)
		if err == nil {
			filter.DoctorID = &doctorID
		}
	}

	if clinicIDStr := c.Query("clinic_id"); clinicIDStr != "" {
		clinicID, err := strconv.ParseInt(clinicIDStr, 10, 64)
		if err == nil {
			filter.ClinicID = &clinicID
		}
	}

	memberships, total, err := h.services.Membership.List(c.Request.Context(), filter)
	if err != nil {
		appErrorResponse(c, err)
		return
	}

	page := offset/limit + 1
	paginatedSuccessResponse(c, memberships, total, page, limit)
}

// @Summary Членство по ID
// @Tags Членства
// @Produce json
// @Param id path int true "ID членства"
// @Success 200 {object} domain.ClinicMembership "Членство"
// @Failure 404 {object} errorResponseBody "Членство не найдено"
// @Router /memberships/{id} [get]
func (h *Handler) getMembershipByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID членства")
		return
	}

	membership, err := h.services.Membership.GetByID(c.Request.Context(), id)
	if err != nil {
		appErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, membership)
}

// @Summary Создание членства
// @Description Привязывает врача к клинике
// @Tags Членства
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.CreateMembershipDTO true "Данные членства"
// @Success 201 {object} successResponseBody "ID созданного членства"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 409 {object} errorResponseBody "Врач уже состоит в клинике"
// @Router /memberships [post]
func (h *Handler) createMembership(c *gin.Context) {
	var input domain.CreateMembershipDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.checkMembershipAccess(c, input.DoctorID, input.ClinicID); err != nil {
		appErrorResponse(c, err)
		return
	}

	id, err := h.services.Membership.Create(c.Request.Context(), input)
	if err != nil {
		appErrorResponse(c, err)
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Обновление членства
// @Tags Членства
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID членства"
// @Param input body domain.UpdateMembershipDTO true "Обновляемые поля"
// @Success 200 {object} messageResponseType "Членство обновлено"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Членство не найдено"
// @Router /memberships/{id} [put]
func (h *Handler) updateMembership(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID членства")
		return
	}

	membership, err := h.services.Membership.GetByID(c.Request.Context(), id)
	if err != nil {
		appErrorResponse(c, err)
		return
	}

	if err := h.checkMembershipAccess(c, membership.DoctorID, membership.ClinicID); err != nil {
		appErrorResponse(c, err)
		return
	}

	var input domain.UpdateMembershipDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Membership.Update(c.Request.Context(), id, input); err != nil {
		appErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "членство обновлено")
}

// @Summary Удаление членства
// @Tags Членства
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID членства"
// @Success 204 {object} nil "Членство удалено"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Членство не найдено"
// @Router /memberships/{id} [delete]
func (h *Handler) deleteMembership(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID членства")
		return
	}

	membership, err := h.services.Membership.GetByID(c.Request.Context(), id)
	if err != nil {
		appErrorResponse(c, err)
		return
	}

	if err := h.checkMembershipAccess(c, membership.DoctorID, membership.ClinicID); err != nil {
		appErrorResponse(c, err)
		return
	}

	if err := h.services.Membership.Delete(c.Request.Context(), id); err != nil {
		appErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}

// @Summary Расписания членства
// @Tags Членства
// @Produce json
// @Param id path int true "ID членства"
// @Success 200 {array} domain.Schedule "Расписания"
// @Failure 404 {object} errorResponseBody "Членство не найдено"
// @Router /memberships/{id}/schedules [get]
func (h *Handler) getMembershipSchedules(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID членства")
		return
	}

	schedules, err := h.services.Schedule.ListByMembership(c.Request.Context(), id)
	if err != nil {
		appErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, schedules)
}

// Членство может создать или изменить сам врач, владелец клиники или
// администратор.
func (h *Handler) checkMembershipAccess(c *gin.Context, doctorID, clinicID int64) error {
	userID, err := getUserID(c)
	if err != nil {
		return domain.NewForbiddenError("пользователь не авторизован")
	}

	role, _ := getUserRole(c)
	if role == domain.UserRoleAdmin {
		return nil
	}

	doctor, err := h.services.Doctor.GetByID(c.Request.Context(), doctorID)
	if err == nil && doctor.UserID == userID {
		return nil
	}

	clinic, err := h.services.Clinic.GetByID(c.Request.Context(), clinicID)
	if err == nil && clinic.OwnerID == userID {
		return nil
	}

	return domain.NewForbiddenError("нет прав на управление этим членством")
}
