package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/app/ds"
	"backend/internal/app/dto"
	"backend/internal/app/repository"
)

func toCountryResponse(c ds.Country) dto.CountryResponse {
	return dto.CountryResponse{
		ID:               c.ID,
		Name:             c.Name,
		Code:             c.Code,
		PhoneCode:        c.PhoneCode,
		IsActive:         c.IsActive,
		TechnicianCount:  c.TechnicianCount,
		RegionCount:      c.RegionCount,
		CenterCount:      c.CenterCount,
		ActiveOrderCount: c.ActiveOrderCount,
		DoneOrderCount:   c.DoneOrderCount,
		TodayOrderCount:  c.TodayOrderCount,
		TotalRevenue:     c.TotalRevenue,
		AvgRating:        c.AvgRating,
		LastOrderDate:    c.LastOrderDate,
	}
}

// GetCountries получает список стран
// @Summary Список стран
// @Description Возвращает все страны со сводными показателями
// @Tags Countries
// @Produce json
// @Success 200 {object} dto.SuccessResponse{data=dto.CountryListResponse}
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/countries [get]
func (h *APIHandler) GetCountries(c *gin.Context) {
	countries, err := h.Repository.GetAllCountries()
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := dto.CountryListResponse{Total: len(countries)}
	for _, country := range countries {
		resp.Countries = append(resp.Countries, toCountryResponse(country))
	}
	h.successResponse(c, http.StatusOK, "", resp)
}

// GetCountry получает одну страну
// @Summary Страна по идентификатору
// @Tags Countries
// @Produce json
// @Param id path int true "ID страны"
// @Success 200 {object} dto.SuccessResponse{data=dto.CountryResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/countries/{id} [get]
func (h *APIHandler) GetCountry(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	country, err := h.Repository.GetCountryByID(id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "", toCountryResponse(*country))
}

// CreateCountry создаёт страну
// @Summary Создание страны
// @Tags Countries
// @Accept json
// @Produce json
// @Param request body dto.CreateCountryRequest true "Данные страны"
// @Success 201 {object} dto.SuccessResponse{data=dto.CountryResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/countries [post]
func (h *APIHandler) CreateCountry(c *gin.Context) {
	var req dto.CreateCountryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	country, err := h.Repository.CreateCountry(ds.Country{
		Name:      req.Name,
		Code:      req.Code,
		PhoneCode: req.PhoneCode,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusCreated, "страна создана", toCountryResponse(*country))
}

// UpdateCountry изменяет страну
// @Summary Изменение страны
// @Tags Countries
// @Accept json
// @Produce json
// @Param id path int true "ID страны"
// @Param request body dto.UpdateCountryRequest true "Изменяемые поля"
// @Success 200 {object} dto.SuccessResponse{data=dto.CountryResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/countries/{id} [put]
func (h *APIHandler) UpdateCountry(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCountryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	country, err := h.Repository.UpdateCountry(id, repository.CountryUpdate{
		Name:      req.Name,
		Code:      req.Code,
		PhoneCode: req.PhoneCode,
		IsActive:  req.IsActive,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "страна обновлена", toCountryResponse(*country))
}

// DeleteCountry удаляет страну вместе с её регионами
// @Summary Удаление страны
// @Description Каскадно удаляет регионы страны, её центры отвязываются
// @Tags Countries
// @Produce json
// @Param id path int true "ID страны"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/countries/{id} [delete]
func (h *APIHandler) DeleteCountry(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.DeleteCountry(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "страна удалена", nil)
}

// ActivateCountry включает страну
// @Summary Активация страны
// @Tags Countries
// @Produce json
// @Param id path int true "ID страны"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/countries/{id}/activate [put]
func (h *APIHandler) ActivateCountry(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.ActivateCountry(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "страна активирована", nil)
}

// DeactivateCountry выключает страну
// @Summary Деактивация страны
// @Tags Countries
// @Produce json
// @Param id path int true "ID страны"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/countries/{id}/deactivate [put]
func (h *APIHandler) DeactivateCountry(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.DeactivateCountry(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "страна деактивирована", nil)
}

// DeactivateIdleCountryCenters выключает центры страны без заказов
// @Summary Деактивация центров страны без заказов
// @Tags Countries
// @Produce json
// @Param id path int true "ID страны"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/countries/{id}/deactivate-idle-centers [put]
func (h *APIHandler) DeactivateIdleCountryCenters(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.DeactivateIdleCountryCenters(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "центры без заказов деактивированы", nil)
}

// CleanupCountryZeroPayments удаляет нулевые платежи страны
// @Summary Очистка нулевых платежей страны
// @Tags Countries
// @Produce json
// @Param id path int true "ID страны"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/countries/{id}/cleanup-zero-payments [post]
func (h *APIHandler) CleanupCountryZeroPayments(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.CleanupCountryZeroPayments(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "нулевые платежи удалены", nil)
}

// FinishAllCountryInProgress массово завершает заказы страны
// @Summary Массовое завершение заказов страны
// @Tags Countries
// @Produce json
// @Param id path int true "ID страны"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/countries/{id}/finish-all [post]
func (h *APIHandler) FinishAllCountryInProgress(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.FinishAllCountryInProgress(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "заказы в работе завершены", nil)
}
