package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/app/ds"
	"backend/internal/app/dto"
	"backend/internal/app/repository"
)

func toRegionResponse(r ds.Region) dto.RegionResponse {
	return dto.RegionResponse{
		ID:               r.ID,
		Name:             r.Name,
		Code:             r.Code,
		CountryID:        r.CountryID,
		Population:       r.Population,
		AreaKm2:          r.AreaKm2,
		Latitude:         r.Latitude,
		Longitude:        r.Longitude,
		IsActive:         r.IsActive,
		DistrictCount:    r.DistrictCount,
		CenterCount:      r.CenterCount,
		TechnicianCount:  r.TechnicianCount,
		ActiveOrderCount: r.ActiveOrderCount,
		DoneOrderCount:   r.DoneOrderCount,
		TodayOrderCount:  r.TodayOrderCount,
		TotalRevenue:     r.TotalRevenue,
		AvgRating:        r.AvgRating,
		LastOrderDate:    r.LastOrderDate,
	}
}

// GetRegions получает регионы страны
// @Summary Список регионов страны
// @Tags Regions
// @Produce json
// @Param country_id query int true "ID страны"
// @Success 200 {object} dto.SuccessResponse{data=dto.RegionListResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/regions [get]
func (h *APIHandler) GetRegions(c *gin.Context) {
	countryID, ok := h.parseQueryID(c, "country_id")
	if !ok {
		return
	}
	regions, err := h.Repository.GetRegionsByCountry(countryID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := dto.RegionListResponse{Total: len(regions)}
	for _, region := range regions {
		resp.Regions = append(resp.Regions, toRegionResponse(region))
	}
	h.successResponse(c, http.StatusOK, "", resp)
}

// GetRegion получает один регион
// @Summary Регион по идентификатору
// @Tags Regions
// @Produce json
// @Param id path int true "ID региона"
// @Success 200 {object} dto.SuccessResponse{data=dto.RegionResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/regions/{id} [get]
func (h *APIHandler) GetRegion(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	region, err := h.Repository.GetRegionByID(id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "", toRegionResponse(*region))
}

// CreateRegion создаёт регион
// @Summary Создание региона
// @Tags Regions
// @Accept json
// @Produce json
// @Param request body dto.CreateRegionRequest true "Данные региона"
// @Success 201 {object} dto.SuccessResponse{data=dto.RegionResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/regions [post]
func (h *APIHandler) CreateRegion(c *gin.Context) {
	var req dto.CreateRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	region, err := h.Repository.CreateRegion(ds.Region{
		Name:       req.Name,
		Code:       req.Code,
		CountryID:  req.CountryID,
		Population: req.Population,
		AreaKm2:    req.AreaKm2,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusCreated, "регион создан", toRegionResponse(*region))
}

// UpdateRegion изменяет регион
// @Summary Изменение региона
// @Tags Regions
// @Accept json
// @Produce json
// @Param id path int true "ID региона"
// @Param request body dto.UpdateRegionRequest true "Изменяемые поля"
// @Success 200 {object} dto.SuccessResponse{data=dto.RegionResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/regions/{id} [put]
func (h *APIHandler) UpdateRegion(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	region, err := h.Repository.UpdateRegion(id, repository.RegionUpdate{
		Name:       req.Name,
		Code:       req.Code,
		CountryID:  req.CountryID,
		Population: req.Population,
		AreaKm2:    req.AreaKm2,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		IsActive:   req.IsActive,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "регион обновлён", toRegionResponse(*region))
}

// DeleteRegion удаляет регион
// @Summary Удаление региона
// @Description Районы и центры региона отвязываются, регион удаляется
// @Tags Regions
// @Produce json
// @Param id path int true "ID региона"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/regions/{id} [delete]
func (h *APIHandler) DeleteRegion(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.DeleteRegion(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "регион удалён", nil)
}

// ActivateRegion включает регион
// @Summary Активация региона
// @Tags Regions
// @Produce json
// @Param id path int true "ID региона"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/regions/{id}/activate [put]
func (h *APIHandler) ActivateRegion(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.ActivateRegion(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "регион активирован", nil)
}

// DeactivateRegion выключает регион
// @Summary Деактивация региона
// @Tags Regions
// @Produce json
// @Param id path int true "ID региона"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/regions/{id}/deactivate [put]
func (h *APIHandler) DeactivateRegion(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.DeactivateRegion(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "регион деактивирован", nil)
}

// DeactivateIdleRegionCenters выключает простаивающие центры региона
// @Summary Деактивация простаивающих центров региона
// @Tags Regions
// @Produce json
// @Param id path int true "ID региона"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/regions/{id}/deactivate-idle-centers [put]
func (h *APIHandler) DeactivateIdleRegionCenters(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.DeactivateIdleRegionCenters(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "простаивающие центры деактивированы", nil)
}

// CleanupRegionZeroPayments удаляет нулевые платежи региона
// @Summary Очистка нулевых платежей региона
// @Tags Regions
// @Produce json
// @Param id path int true "ID региона"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/regions/{id}/cleanup-zero-payments [post]
func (h *APIHandler) CleanupRegionZeroPayments(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.CleanupRegionZeroPayments(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "нулевые платежи удалены", nil)
}

// FinishAllRegionInProgress массово завершает заказы региона
// @Summary Массовое завершение заказов региона
// @Tags Regions
// @Produce json
// @Param id path int true "ID региона"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/regions/{id}/finish-all [post]
func (h *APIHandler) FinishAllRegionInProgress(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.FinishAllRegionInProgress(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "заказы в работе завершены", nil)
}
