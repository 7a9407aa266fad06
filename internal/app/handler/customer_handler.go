package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/app/ds"
	"backend/internal/app/dto"
	"backend/internal/app/repository"
)

func toCustomerResponse(c ds.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:               c.ID,
		Name:             c.Name,
		Code:             c.Code,
		Phone:            c.Phone,
		Mobile:           c.Mobile,
		Email:            c.Email,
		Address:          c.Address,
		OrderCount:       c.OrderCount,
		ActiveOrderCount: c.ActiveOrderCount,
		DoneOrderCount:   c.DoneOrderCount,
		TodayOrderCount:  c.TodayOrderCount,
		TotalPayment:     c.TotalPayment,
		BalanceDue:       c.BalanceDue,
		AvgRating:        c.AvgRating,
		LastOrderDate:    c.LastOrderDate,
		LastPaymentDate:  c.LastPaymentDate,
	}
}

// GetCustomers получает список клиентов
// @Summary Список клиентов
// @Tags Customers
// @Produce json
// @Success 200 {object} dto.SuccessResponse{data=dto.CustomerListResponse}
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/customers [get]
func (h *APIHandler) GetCustomers(c *gin.Context) {
	customers, err := h.Repository.GetAllCustomers()
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := dto.CustomerListResponse{Total: len(customers)}
	for _, customer := range customers {
		resp.Customers = append(resp.Customers, toCustomerResponse(customer))
	}
	h.successResponse(c, http.StatusOK, "", resp)
}

// GetCustomer получает одного клиента
// @Summary Клиент по идентификатору
// @Tags Customers
// @Produce json
// @Param id path int true "ID клиента"
// @Success 200 {object} dto.SuccessResponse{data=dto.CustomerResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/customers/{id} [get]
func (h *APIHandler) GetCustomer(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	customer, err := h.Repository.GetCustomerByID(id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "", toCustomerResponse(*customer))
}

// CreateCustomer создаёт клиента
// @Summary Создание клиента
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body dto.CreateCustomerRequest true "Данные клиента"
// @Success 201 {object} dto.SuccessResponse{data=dto.CustomerResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/customers [post]
func (h *APIHandler) CreateCustomer(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	customer, err := h.Repository.CreateCustomer(ds.Customer{
		Name:    req.Name,
		Code:    req.Code,
		Phone:   req.Phone,
		Mobile:  req.Mobile,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusCreated, "клиент создан", toCustomerResponse(*customer))
}

// UpdateCustomer изменяет клиента
// @Summary Изменение клиента
// @Tags Customers
// @Accept json
// @Produce json
// @Param id path int true "ID клиента"
// @Param request body dto.UpdateCustomerRequest true "Изменяемые поля"
// @Success 200 {object} dto.SuccessResponse{data=dto.CustomerResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/customers/{id} [put]
func (h *APIHandler) UpdateCustomer(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	customer, err := h.Repository.UpdateCustomer(id, repository.CustomerUpdate{
		Name:    req.Name,
		Code:    req.Code,
		Phone:   req.Phone,
		Mobile:  req.Mobile,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "клиент обновлён", toCustomerResponse(*customer))
}

// DeleteCustomer удаляет клиента
// @Summary Удаление клиента
// @Description Запрещено при наличии заказов клиента
// @Tags Customers
// @Produce json
// @Param id path int true "ID клиента"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/customers/{id} [delete]
func (h *APIHandler) DeleteCustomer(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.DeleteCustomer(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "клиент удалён", nil)
}

// CloseCustomerDebt гасит долг клиента
// @Summary Погашение долга клиента
// @Description Создаёт подтверждённый платёж на остаток долга каждого
// непогашенного заказа клиента
// @Tags Customers
// @Produce json
// @Param id path int true "ID клиента"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/customers/{id}/close-debt [post]
func (h *APIHandler) CloseCustomerDebt(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.CloseCustomerDebt(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "долг клиента погашен", nil)
}

// CleanupCustomerZeroPayments удаляет нулевые платежи клиента
// @Summary Очистка нулевых платежей клиента
// @Tags Customers
// @Produce json
// @Param id path int true "ID клиента"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/customers/{id}/cleanup-zero-payments [post]
func (h *APIHandler) CleanupCustomerZeroPayments(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.CleanupCustomerZeroPayments(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "нулевые платежи удалены", nil)
}

// CleanupCancelledOrders удаляет отменённые заказы клиента
// @Summary Удаление отменённых заказов клиента
// @Description Каскадно удаляет отменённые заказы вместе со строками,
// платежами и оценками
// @Tags Customers
// @Produce json
// @Param id path int true "ID клиента"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/customers/{id}/cleanup-cancelled-orders [post]
func (h *APIHandler) CleanupCancelledOrders(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.CleanupCancelledOrders(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "отменённые заказы удалены", nil)
}
