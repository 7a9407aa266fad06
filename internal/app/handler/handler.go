package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"backend/internal/app/apperr"
	"backend/internal/app/dto"
	"backend/internal/app/repository"
	"backend/internal/app/storage"
)

// APIHandler содержит обработчики для REST API
type APIHandler struct {
	Repository  *repository.Repository
	MinIOClient *storage.MinIOClient
}

func NewAPIHandler(r *repository.Repository, minioClient *storage.MinIOClient) *APIHandler {
	return &APIHandler{
		Repository:  r,
		MinIOClient: minioClient,
	}
}

// ============ Вспомогательные функции ============

func (h *APIHandler) errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{
		Status:  "fail",
		Message: message,
	})
}

func (h *APIHandler) successResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	response := dto.SuccessResponse{
		Status:  "success",
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(statusCode, response)
}

// handleError переводит доменную ошибку в HTTP-статус:
// нарушение инварианта — 400, ссылочный запрет — 409, не найдено — 404.
func (h *APIHandler) handleError(c *gin.Context, err error) {
	var validationErr *apperr.ValidationError
	var referentialErr *apperr.ReferentialError
	var notFoundErr *apperr.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		h.errorResponse(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &referentialErr):
		h.errorResponse(c, http.StatusConflict, err.Error())
	case errors.As(err, &notFoundErr):
		h.errorResponse(c, http.StatusNotFound, err.Error())
	default:
		logrus.Error(err)
		h.errorResponse(c, http.StatusInternalServerError, "внутренняя ошибка сервера")
	}
}

func (h *APIHandler) parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "некорректный идентификатор")
		return 0, false
	}
	return uint(id), true
}

func (h *APIHandler) parseQueryID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Query(param), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "некорректный параметр "+param)
		return 0, false
	}
	return uint(id), true
}
