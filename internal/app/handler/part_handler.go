package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/app/ds"
	"backend/internal/app/dto"
	"backend/internal/app/repository"
)

func toPartResponse(p ds.Part) dto.PartResponse {
	return dto.PartResponse{
		ID:          p.ID,
		Name:        p.Name,
		Code:        p.Code,
		Description: p.Description,
		IsActive:    p.IsActive,
	}
}

// GetParts получает справочник деталей
// @Summary Список деталей
// @Tags Parts
// @Produce json
// @Success 200 {object} dto.SuccessResponse{data=dto.PartListResponse}
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/parts [get]
func (h *APIHandler) GetParts(c *gin.Context) {
	parts, err := h.Repository.GetAllParts()
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := dto.PartListResponse{Total: len(parts)}
	for _, part := range parts {
		resp.Parts = append(resp.Parts, toPartResponse(part))
	}
	h.successResponse(c, http.StatusOK, "", resp)
}

// GetPart получает одну деталь
// @Summary Деталь по идентификатору
// @Tags Parts
// @Produce json
// @Param id path int true "ID детали"
// @Success 200 {object} dto.SuccessResponse{data=dto.PartResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/parts/{id} [get]
func (h *APIHandler) GetPart(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	part, err := h.Repository.GetPartByID(id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "", toPartResponse(*part))
}

// CreatePart создаёт деталь
// @Summary Создание детали
// @Tags Parts
// @Accept json
// @Produce json
// @Param request body dto.CreatePartRequest true "Данные детали"
// @Success 201 {object} dto.SuccessResponse{data=dto.PartResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/parts [post]
func (h *APIHandler) CreatePart(c *gin.Context) {
	var req dto.CreatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	part, err := h.Repository.CreatePart(ds.Part{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusCreated, "деталь создана", toPartResponse(*part))
}

// UpdatePart изменяет деталь
// @Summary Изменение детали
// @Tags Parts
// @Accept json
// @Produce json
// @Param id path int true "ID детали"
// @Param request body dto.UpdatePartRequest true "Изменяемые поля"
// @Success 200 {object} dto.SuccessResponse{data=dto.PartResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/parts/{id} [put]
func (h *APIHandler) UpdatePart(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	part, err := h.Repository.UpdatePart(id, repository.PartUpdate{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "деталь обновлена", toPartResponse(*part))
}

// DeletePart удаляет деталь
// @Summary Удаление детали
// @Description Запрещено, пока на деталь ссылаются строки заказов
// @Tags Parts
// @Produce json
// @Param id path int true "ID детали"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/parts/{id} [delete]
func (h *APIHandler) DeletePart(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.DeletePart(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "деталь удалена", nil)
}

// ActivatePart включает деталь
// @Summary Активация детали
// @Tags Parts
// @Produce json
// @Param id path int true "ID детали"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/parts/{id}/activate [put]
func (h *APIHandler) ActivatePart(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.ActivatePart(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "деталь активирована", nil)
}

// DeactivatePart выключает деталь
// @Summary Деактивация детали
// @Tags Parts
// @Produce json
// @Param id path int true "ID детали"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/parts/{id}/deactivate [put]
func (h *APIHandler) DeactivatePart(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.DeactivatePart(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "деталь деактивирована", nil)
}
