package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/app/ds"
	"backend/internal/app/dto"
	"backend/internal/app/repository"
)

func toRatingResponse(r ds.Rating) dto.RatingResponse {
	return dto.RatingResponse{
		ID:           r.ID,
		OrderID:      r.OrderID,
		Score:        r.Score,
		Comment:      r.Comment,
		RatingDate:   r.RatingDate,
		CenterID:     r.CenterID,
		TechnicianID: r.TechnicianID,
		CustomerID:   r.CustomerID,
	}
}

// GetRating получает одну оценку
// @Summary Оценка по идентификатору
// @Tags Ratings
// @Produce json
// @Param id path int true "ID оценки"
// @Success 200 {object} dto.SuccessResponse{data=dto.RatingResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/ratings/{id} [get]
func (h *APIHandler) GetRating(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	rating, err := h.Repository.GetRatingByID(id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "", toRatingResponse(*rating))
}

// GetOrderRating получает оценку заказа
// @Summary Оценка заказа
// @Tags Ratings
// @Produce json
// @Param id path int true "ID заказа"
// @Success 200 {object} dto.SuccessResponse{data=dto.RatingResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders/{id}/rating [get]
func (h *APIHandler) GetOrderRating(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	rating, err := h.Repository.GetRatingByOrder(id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "", toRatingResponse(*rating))
}

// CreateRating создаёт оценку
// @Summary Создание оценки
// @Description На заказ допускается одна оценка, балл от 1 до 5
// @Tags Ratings
// @Accept json
// @Produce json
// @Param request body dto.CreateRatingRequest true "Данные оценки"
// @Success 201 {object} dto.SuccessResponse{data=dto.RatingResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/ratings [post]
func (h *APIHandler) CreateRating(c *gin.Context) {
	var req dto.CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	rating := ds.Rating{
		OrderID: req.OrderID,
		Score:   req.Score,
		Comment: req.Comment,
	}
	if req.RatingDate != nil {
		rating.RatingDate = *req.RatingDate
	}

	created, err := h.Repository.CreateRating(rating)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusCreated, "оценка сохранена", toRatingResponse(*created))
}

// UpdateRating изменяет оценку
// @Summary Изменение оценки
// @Tags Ratings
// @Accept json
// @Produce json
// @Param id path int true "ID оценки"
// @Param request body dto.UpdateRatingRequest true "Изменяемые поля"
// @Success 200 {object} dto.SuccessResponse{data=dto.RatingResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/ratings/{id} [put]
func (h *APIHandler) UpdateRating(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	rating, err := h.Repository.UpdateRating(id, repository.RatingUpdate{
		Score:      req.Score,
		Comment:    req.Comment,
		RatingDate: req.RatingDate,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "оценка обновлена", toRatingResponse(*rating))
}

// DeleteRating удаляет оценку
// @Summary Удаление оценки
// @Tags Ratings
// @Produce json
// @Param id path int true "ID оценки"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/ratings/{id} [delete]
func (h *APIHandler) DeleteRating(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.DeleteRating(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "оценка удалена", nil)
}
