package rest

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mediq/internal/domain"
)

// @Summary Список врачей
// @Description Поиск врачей по специальности, городу и имени
// @Tags Врачи
// @Produce json
// @Param specialty_id query int false "ID специальности"
// @Param city_id query int false "ID города"
// @Param search query string false "Поиск по имени"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} paginatedResponse "Список врачей"
// @Router /doctors [get]
func (h *Handler) getDoctors(c *gin.Context) {
	limit, offset := parsePagination(c)

	filter := domain.DoctorFilter{
		Limit:  limit,
		Offset: offset,
	}

	if specialtyIDStr := c.Query("specialty_id"); specialtyIDStr != "" {
		specialtyID, err := strconv.ParseInt(specialtyIDStr, 10, 64)
		if err == nil {
			filter.SpecialtyID = &specialtyID
		}
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

	doctors, total, err := h.services.Doctor.List(c.Request.Context(), filter)
	if err != nil {
		appErrorResponse(c, err)
		return
	}

	page := offset/limit + 1
	paginatedSuccessResponse(c, doctors, total, page, limit)
}

// @Summary Врач по ID
// @Tags Врачи
// @Produce json
// @Param id path int true "ID врача"
// @Success 200 {object} domain.Doctor "Профиль врача"
// @Failure 404 {object} errorResponseBody "Врач не найден"
// @Router /doctors/{id} [get]
func (h *Handler) getDoctorByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID врача")
		return
	}

	doctor, err := h.services.Doctor.GetByID(c.Request.Context(), id)
	if err != nil {
		appErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, doctor)
}

// @Summary Мой профиль врача
// @Tags Врачи
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} domain.Doctor "Профиль врача"
// @Failure 404 {object} errorResponseBody "Профиль врача не найден"
// @Router /doctors/me [get]
func (h *Handler) getMyDoctorProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	doctor, err := h.services.Doctor.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		appErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, doctor)
}

// @Summary Создание профиля врача
// @Tags Врачи
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.CreateDoctorDTO true "Данные профиля"
// @Success 201 {object} successResponseBody "ID созданного профиля"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 409 {object} errorResponseBody "Профиль уже существует"
// @Router /doctors [post]
func (h *Handler) createDoctor(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var input domain.CreateDoctorDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Doctor.Create(c.Request.Context(), userID, input)
	if err != nil {
		appErrorResponse(c, err)
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Обновление профиля врача
// @Tags Врачи
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID врача"
// @Param input body domain.UpdateDoctorDTO true "Обновляемые поля"
// @Success 200 {object} messageResponseType "Профиль обновлен"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Врач не найден"
// @Router /doctors/{id} [put]
func (h *Handler) updateDoctor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID врача")
		return
	}

	if err := h.checkDoctorAccess(c, id); err != nil {
		appErrorResponse(c, err)
		return
	}

	var input domain.UpdateDoctorDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Doctor.Update(c.Request.Context(), id, input); err != nil {
		appErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "профиль врача обновлен")
}

// @Summary Удаление профиля врача
// @Tags Врачи
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID врача"
// @Success 204 {object} nil "Профиль удален"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Врач не найден"
// @Router /doctors/{id} [delete]
func (h *Handler) deleteDoctor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID врача")
		return
	}

	if err := h.checkDoctorAccess(c, id); err != nil {
		appErrorResponse(c, err)
		return
	}

	if err := h.services.Doctor.Delete(c.Request.Context(), id); err != nil {
		appErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}

// @Summary Загрузка фото профиля
// @Tags Врачи
// @Security ApiKeyAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "ID врача"
// @Param photo formData file true "Файл изображения"
// @Success 200 {object} messageResponseType "Фото загружено"
// @Failure 400 {object} errorResponseBody "Некорректный файл"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Router /doctors/{id}/photo [post]
func (h *Handler) uploadDoctorPhoto(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID врача")
		return
	}

	if err := h.checkDoctorAccess(c, id); err != nil {
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

	if err := h.services.Doctor.UploadProfilePhoto(c.Request.Context(), id, data, fileHeader.Filename); err != nil {
		appErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "фото загружено")
}

// @Summary Удаление фото профиля
// @Tags Врачи
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID врача"
// @Success 204 {object} nil "Фото удалено"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Router /doctors/{id}/photo [delete]
func (h *Handler) deleteDoctorPhoto(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID врача")
		return
	}

	if err := h.checkDoctorAccess(c, id); err != nil {
		appErrorResponse(c, err)
		return
	}

	if err := h.services.Doctor.DeleteProfilePhoto(c.Request.Context(), id); err != nil {
		appErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}

// @Summary Специальности врача
// @Tags Врачи
// @Produce json
// @Param id path int true "ID врача"
// @Success 200 {array} domain.Specialty "Специальности"
// @Router /doctors/{id}/specialties [get]
func (h *Handler) getDoctorSpecialties(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID врача")
		return
	}

	specialties, err := h.services.Doctor.GetSpecialtiesByDoctorID(c.Request.Context(), id)
	if err != nil {
		appErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, specialties)
}

// @Summary Добавление специальности врачу
// @Tags Врачи
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID врача"
// @Param specialtyId path int true "ID специальности"
// @Success 200 {object} messageResponseType "Специальность добавлена"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Router /doctors/{id}/specialties/{specialtyId} [post]
func (h *Handler) addDoctorSpecialty(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID врача")
		return
	}

	specialtyID, err := strconv.ParseInt(c.Param("specialtyId"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID специальности")
		return
	}

	if err := h.checkDoctorAccess(c, id); err != nil {
		appErrorResponse(c, err)
		return
	}

	if err := h.services.Doctor.AddSpecialty(c.Request.Context(), id, specialtyID); err != nil {
		appErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "специальность добавлена")
}

// @Summary Удаление специальности врача
// @Tags Врачи
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID врача"
// @Param specialtyId path int true "ID специальности"
// @Success 204 {object} nil "Специальность удалена"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Router /doctors/{id}/specialties/{specialtyId} [delete]
func (h *Handler) removeDoctorSpecialty(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID врача")
		return
	}

	specialtyID, err := strconv.ParseInt(c.Param("specialtyId"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID специальности")
		return
	}

	if err := h.checkDoctorAccess(c, id); err != nil {
		appErrorResponse(c, err)
		return
	}

	if err := h.services.Doctor.RemoveSpecialty(c.Request.Context(), id, specialtyID); err != nil {
		appErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}

// Профиль врача может менять его владелец или администратор.
func (h *Handler) checkDoctorAccess(c *gin.Context, doctorID int64) error {
	userID, err := getUserID(c)
	if err != nil {
		return domain.NewForbiddenError("пользователь не авторизован")
	}

	role, _ := getUserRole(c)
	if role == domain.UserRoleAdmin {
		return nil
	}

	doctor, err := h.services.Doctor.GetByID(c.Request.Context(), doctorID)
	if err != nil {
		return err
	}

	if doctor.UserID != userID {
		return domain.NewForbiddenError("нет прав на управление этим профилем")
	}

	return nil
}
