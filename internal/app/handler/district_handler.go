package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/app/ds"
	"backend/internal/app/dto"
	"backend/internal/app/repository"
)

func toDistrictResponse(d ds.District) dto.DistrictResponse {
	return dto.DistrictResponse{
		ID:               d.ID,
		Name:             d.Name,
		Code:             d.Code,
		RegionID:         d.RegionID,
		CountryID:        d.CountryID,
		Population:       d.Population,
		AreaKm2:          d.AreaKm2,
		Latitude:         d.Latitude,
		Longitude:        d.Longitude,
		IsActive:         d.IsActive,
		CenterCount:      d.CenterCount,
		TechnicianCount:  d.TechnicianCount,
		ActiveOrderCount: d.ActiveOrderCount,
		DoneOrderCount:   d.DoneOrderCount,
		TodayOrderCount:  d.TodayOrderCount,
		TotalRevenue:     d.TotalRevenue,
		AvgRating:        d.AvgRating,
		LastOrderDate:    d.LastOrderDate,
	}
}

// GetDistricts получает районы региона
// @Summary Список районов региона
// @Tags Districts
// @Produce json
// @Param region_id query int true "ID региона"
// @Success 200 {object} dto.SuccessResponse{data=dto.DistrictListResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/districts [get]
func (h *APIHandler) GetDistricts(c *gin.Context) {
	regionID, ok := h.parseQueryID(c, "region_id")
	if !ok {
		return
	}
	districts, err := h.Repository.GetDistrictsByRegion(regionID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := dto.DistrictListResponse{Total: len(districts)}
	for _, district := range districts {
		resp.Districts = append(resp.Districts, toDistrictResponse(district))
	}
	h.successResponse(c, http.StatusOK, "", resp)
}

// GetDistrict получает один район
// @Summary Район по идентификатору
// @Tags Districts
// @Produce json
// @Param id path int true "ID района"
// @Success 200 {object} dto.SuccessResponse{data=dto.DistrictResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/districts/{id} [get]
func (h *APIHandler) GetDistrict(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	district, err := h.Repository.GetDistrictByID(id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "", toDistrictResponse(*district))
}

// CreateDistrict создаёт район
// @Summary Создание района
// @Tags Districts
// @Accept json
// @Produce json
// @Param request body dto.CreateDistrictRequest true "Данные района"
// @Success 201 {object} dto.SuccessResponse{data=dto.DistrictResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/districts [post]
func (h *APIHandler) CreateDistrict(c *gin.Context) {
	var req dto.CreateDistrictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	district, err := h.Repository.CreateDistrict(ds.District{
		Name:       req.Name,
		Code:       req.Code,
		RegionID:   req.RegionID,
		Population: req.Population,
		AreaKm2:    req.AreaKm2,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusCreated, "район создан", toDistrictResponse(*district))
}

// UpdateDistrict изменяет район
// @Summary Изменение района
// @Tags Districts
// @Accept json
// @Produce json
// @Param id path int true "ID района"
// @Param request body dto.UpdateDistrictRequest true "Изменяемые поля"
// @Success 200 {object} dto.SuccessResponse{data=dto.DistrictResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/districts/{id} [put]
func (h *APIHandler) UpdateDistrict(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateDistrictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	district, err := h.Repository.UpdateDistrict(id, repository.DistrictUpdate{
		Name:       req.Name,
		Code:       req.Code,
		RegionID:   req.RegionID,
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
	h.successResponse(c, http.StatusOK, "район обновлён", toDistrictResponse(*district))
}

// DeleteDistrict удаляет район
// @Summary Удаление района
// @Description Центры района отвязываются, район удаляется
// @Tags Districts
// @Produce json
// @Param id path int true "ID района"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/districts/{id} [delete]
func (h *APIHandler) DeleteDistrict(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.DeleteDistrict(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "район удалён", nil)
}

// ActivateDistrict включает район
// @Summary Активация района
// @Tags Districts
// @Produce json
// @Param id path int true "ID района"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/districts/{id}/activate [put]
func (h *APIHandler) ActivateDistrict(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.ActivateDistrict(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "район активирован", nil)
}

// DeactivateDistrict выключает район
// @Summary Деактивация района
// @Tags Districts
// @Produce json
// @Param id path int true "ID района"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/districts/{id}/deactivate [put]
func (h *APIHandler) DeactivateDistrict(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.DeactivateDistrict(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "район деактивирован", nil)
}

// DeactivateIdleDistrictCenters выключает простаивающие центры района
// @Summary Деактивация простаивающих центров района
// @Tags Districts
// @Produce json
// @Param id path int true "ID района"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/districts/{id}/deactivate-idle-centers [put]
func (h *APIHandler) DeactivateIdleDistrictCenters(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.DeactivateIdleDistrictCenters(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "простаивающие центры деактивированы", nil)
}

// CleanupDistrictZeroPayments удаляет нулевые платежи района
// @Summary Очистка нулевых платежей района
// @Tags Districts
// @Produce json
// @Param id path int true "ID района"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/districts/{id}/cleanup-zero-payments [post]
func (h *APIHandler) CleanupDistrictZeroPayments(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.CleanupDistrictZeroPayments(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "нулевые платежи удалены", nil)
}

// FinishAllDistrictInProgress массово завершает заказы района
// @Summary Массовое завершение заказов района
// @Tags Districts
// @Produce json
// @Param id path int true "ID района"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/districts/{id}/finish-all [post]
func (h *APIHandler) FinishAllDistrictInProgress(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.FinishAllDistrictInProgress(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "заказы в работе завершены", nil)
}
