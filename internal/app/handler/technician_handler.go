package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/app/ds"
	"backend/internal/app/dto"
	"backend/internal/app/repository"
)

func toTechnicianResponse(t ds.Technician) dto.TechnicianResponse {
	return dto.TechnicianResponse{
		ID:               t.ID,
		Name:             t.Name,
		Code:             t.Code,
		CenterID:         t.CenterID,
		CountryID:        t.CountryID,
		RegionID:         t.RegionID,
		DistrictID:       t.DistrictID,
		Phone:            t.Phone,
		Email:            t.Email,
		Specialty:        t.Specialty,
		HireDate:         t.HireDate,
		CapacityPerDay:   t.CapacityPerDay,
		IsActive:         t.IsActive,
		OrderCount:       t.OrderCount,
		ActiveOrderCount: t.ActiveOrderCount,
		DoneOrderCount:   t.DoneOrderCount,
		TodayOrderCount:  t.TodayOrderCount,
	}
}

// GetTechnicians получает мастеров центра
// @Summary Список мастеров центра
// @Tags Technicians
// @Produce json
// @Param center_id query int true "ID центра"
// @Success 200 {object} dto.SuccessResponse{data=dto.TechnicianListResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/technicians [get]
func (h *APIHandler) GetTechnicians(c *gin.Context) {
	centerID, ok := h.parseQueryID(c, "center_id")
	if !ok {
		return
	}
	techs, err := h.Repository.GetTechniciansByCenter(centerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := dto.TechnicianListResponse{Total: len(techs)}
	for _, tech := range techs {
		resp.Technicians = append(resp.Technicians, toTechnicianResponse(tech))
	}
	h.successResponse(c, http.StatusOK, "", resp)
}

// GetTechnician получает одного мастера
// @Summary Мастер по идентификатору
// @Tags Technicians
// @Produce json
// @Param id path int true "ID мастера"
// @Success 200 {object} dto.SuccessResponse{data=dto.TechnicianResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/technicians/{id} [get]
func (h *APIHandler) GetTechnician(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	tech, err := h.Repository.GetTechnicianByID(id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "", toTechnicianResponse(*tech))
}

// CreateTechnician создаёт мастера
// @Summary Создание мастера
// @Tags Technicians
// @Accept json
// @Produce json
// @Param request body dto.CreateTechnicianRequest true "Данные мастера"
// @Success 201 {object} dto.SuccessResponse{data=dto.TechnicianResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/technicians [post]
func (h *APIHandler) CreateTechnician(c *gin.Context) {
	var req dto.CreateTechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	tech, err := h.Repository.CreateTechnician(ds.Technician{
		Name:           req.Name,
		Code:           req.Code,
		CenterID:       req.CenterID,
		Phone:          req.Phone,
		Email:          req.Email,
		Specialty:      req.Specialty,
		HireDate:       req.HireDate,
		CapacityPerDay: req.CapacityPerDay,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusCreated, "мастер создан", toTechnicianResponse(*tech))
}

// UpdateTechnician изменяет мастера
// @Summary Изменение мастера
// @Tags Technicians
// @Accept json
// @Produce json
// @Param id path int true "ID мастера"
// @Param request body dto.UpdateTechnicianRequest true "Изменяемые поля"
// @Success 200 {object} dto.SuccessResponse{data=dto.TechnicianResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/technicians/{id} [put]
func (h *APIHandler) UpdateTechnician(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	tech, err := h.Repository.UpdateTechnician(id, repository.TechnicianUpdate{
		Name:           req.Name,
		Code:           req.Code,
		CenterID:       req.CenterID,
		Phone:          req.Phone,
		Email:          req.Email,
		Specialty:      req.Specialty,
		HireDate:       req.HireDate,
		CapacityPerDay: req.CapacityPerDay,
		IsActive:       req.IsActive,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "мастер обновлён", toTechnicianResponse(*tech))
}

// DeleteTechnician удаляет мастера
// @Summary Удаление мастера
// @Description Мастер снимается со своих заказов и удаляется
// @Tags Technicians
// @Produce json
// @Param id path int true "ID мастера"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/technicians/{id} [delete]
func (h *APIHandler) DeleteTechnician(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.DeleteTechnician(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "мастер удалён", nil)
}

// ActivateTechnician включает мастера
// @Summary Активация мастера
// @Tags Technicians
// @Produce json
// @Param id path int true "ID мастера"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/technicians/{id}/activate [put]
func (h *APIHandler) ActivateTechnician(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.ActivateTechnician(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "мастер активирован", nil)
}

// DeactivateTechnician выключает мастера
// @Summary Деактивация мастера
// @Tags Technicians
// @Produce json
// @Param id path int true "ID мастера"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/technicians/{id}/deactivate [put]
func (h *APIHandler) DeactivateTechnician(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.DeactivateTechnician(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "мастер деактивирован", nil)
}
