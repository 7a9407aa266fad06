package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/app/ds"
	"backend/internal/app/dto"
	"backend/internal/app/repository"
)

func (h *APIHandler) toCenterResponse(c ds.Center) dto.CenterResponse {
	resp := dto.CenterResponse{
		ID:               c.ID,
		Name:             c.Name,
		Code:             c.Code,
		CountryID:        c.CountryID,
		RegionID:         c.RegionID,
		DistrictID:       c.DistrictID,
		Address:          c.Address,
		Phone:            c.Phone,
		Email:            c.Email,
		ManagerName:      c.ManagerName,
		CapacityPerDay:   c.CapacityPerDay,
		IsActive:         c.IsActive,
		TechnicianCount:  c.TechnicianCount,
		ActiveOrderCount: c.ActiveOrderCount,
		DoneOrderCount:   c.DoneOrderCount,
		TodayOrderCount:  c.TodayOrderCount,
		TotalRevenue:     c.TotalRevenue,
		AvgRating:        c.AvgRating,
		UtilizationRate:  c.UtilizationRate,
		LastOrderDate:    c.LastOrderDate,
	}
	// Подписанная ссылка живёт час, храним только имя файла
	if c.PhotoURL != nil && h.MinIOClient != nil {
		if url, err := h.MinIOClient.GetFileURL(*c.PhotoURL); err == nil {
			resp.PhotoURL = &url
		}
	}
	return resp
}

// GetCenters получает список центров
// @Summary Список сервисных центров
// @Description Возвращает все центры, опционально фильтрует по названию
// @Tags Centers
// @Produce json
// @Param query query string false "Поиск по названию"
// @Success 200 {object} dto.SuccessResponse{data=dto.CenterListResponse}
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/centers [get]
func (h *APIHandler) GetCenters(c *gin.Context) {
	var centers []ds.Center
	var err error

	searchQuery := c.Query("query")
	if searchQuery == "" {
		centers, err = h.Repository.GetAllCenters()
	} else {
		centers, err = h.Repository.SearchCentersByName(searchQuery)
	}
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := dto.CenterListResponse{Total: len(centers)}
	for _, center := range centers {
		resp.Centers = append(resp.Centers, h.toCenterResponse(center))
	}
	h.successResponse(c, http.StatusOK, "", resp)
}

// GetCenter получает один центр
// @Summary Центр по идентификатору
// @Tags Centers
// @Produce json
// @Param id path int true "ID центра"
// @Success 200 {object} dto.SuccessResponse{data=dto.CenterResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/centers/{id} [get]
func (h *APIHandler) GetCenter(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	center, err := h.Repository.GetCenterByID(id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "", h.toCenterResponse(*center))
}

// CreateCenter создаёт центр
// @Summary Создание сервисного центра
// @Tags Centers
// @Accept json
// @Produce json
// @Param request body dto.CreateCenterRequest true "Данные центра"
// @Success 201 {object} dto.SuccessResponse{data=dto.CenterResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/centers [post]
func (h *APIHandler) CreateCenter(c *gin.Context) {
	var req dto.CreateCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	center, err := h.Repository.CreateCenter(ds.Center{
		Name:           req.Name,
		Code:           req.Code,
		CountryID:      req.CountryID,
		RegionID:       req.RegionID,
		DistrictID:     req.DistrictID,
		Address:        req.Address,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Phone:          req.Phone,
		Email:          req.Email,
		ManagerName:    req.ManagerName,
		CapacityPerDay: req.CapacityPerDay,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusCreated, "центр создан", h.toCenterResponse(*center))
}

// UpdateCenter изменяет центр
// @Summary Изменение сервисного центра
// @Tags Centers
// @Accept json
// @Produce json
// @Param id path int true "ID центра"
// @Param request body dto.UpdateCenterRequest true "Изменяемые поля"
// @Success 200 {object} dto.SuccessResponse{data=dto.CenterResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/centers/{id} [put]
func (h *APIHandler) UpdateCenter(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	center, err := h.Repository.UpdateCenter(id, repository.CenterUpdate{
		Name:           req.Name,
		Code:           req.Code,
		CountryID:      req.CountryID,
		RegionID:       req.RegionID,
		DistrictID:     req.DistrictID,
		Address:        req.Address,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Phone:          req.Phone,
		Email:          req.Email,
		ManagerName:    req.ManagerName,
		CapacityPerDay: req.CapacityPerDay,
		IsActive:       req.IsActive,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "центр обновлён", h.toCenterResponse(*center))
}

// DeleteCenter удаляет центр
// @Summary Удаление сервисного центра
// @Description Запрещено при наличии заказов центра, мастера отвязываются
// @Tags Centers
// @Produce json
// @Param id path int true "ID центра"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/centers/{id} [delete]
func (h *APIHandler) DeleteCenter(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.DeleteCenter(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "центр удалён", nil)
}

// UploadCenterPhoto загружает фотографию центра
// @Summary Загрузка фотографии центра
// @Tags Centers
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "ID центра"
// @Param photo formData file true "Файл фотографии"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/centers/{id}/photo [post]
func (h *APIHandler) UploadCenterPhoto(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if h.MinIOClient == nil {
		h.errorResponse(c, http.StatusInternalServerError, "хранилище файлов недоступно")
		return
	}

	center, err := h.Repository.GetCenterByID(id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "файл не передан")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "не удалось открыть файл")
		return
	}
	defer file.Close()

	fileData, err := io.ReadAll(file)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "не удалось прочитать файл")
		return
	}

	filename, err := h.MinIOClient.UploadFile(fileData, fileHeader.Filename)
	if err != nil {
		h.handleError(c, err)
		return
	}

	// Старую фотографию убираем из хранилища
	if center.PhotoURL != nil {
		_ = h.MinIOClient.DeleteFile(*center.PhotoURL)
	}

	if err := h.Repository.SetCenterPhoto(id, filename); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "фотография загружена", gin.H{"filename": filename})
}

// ActivateCenter включает центр
// @Summary Активация центра
// @Tags Centers
// @Produce json
// @Param id path int true "ID центра"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/centers/{id}/activate [put]
func (h *APIHandler) ActivateCenter(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.ActivateCenter(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "центр активирован", nil)
}

// DeactivateCenterIfIdle выключает центр без заказов в работе
// @Summary Деактивация простаивающего центра
// @Description Центр деактивируется, только если у него нет заказов в работе
// @Tags Centers
// @Produce json
// @Param id path int true "ID центра"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/centers/{id}/deactivate-if-idle [put]
func (h *APIHandler) DeactivateCenterIfIdle(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.MarkCenterInactiveIfIdle(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "центр деактивирован, если простаивал", nil)
}

// CleanupCenterZeroPayments удаляет нулевые платежи центра
// @Summary Очистка нулевых платежей центра
// @Tags Centers
// @Produce json
// @Param id path int true "ID центра"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/centers/{id}/cleanup-zero-payments [post]
func (h *APIHandler) CleanupCenterZeroPayments(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.CleanupCenterZeroPayments(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "нулевые платежи удалены", nil)
}

// FinishAllCenterInProgress массово завершает заказы центра
// @Summary Массовое завершение заказов центра
// @Description Переводит все заказы центра в работе в завершённые
// @Tags Centers
// @Produce json
// @Param id path int true "ID центра"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/centers/{id}/finish-all [post]
func (h *APIHandler) FinishAllCenterInProgress(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.FinishAllCenterInProgress(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "заказы в работе завершены", nil)
}
