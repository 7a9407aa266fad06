package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/app/ds"
	"backend/internal/app/dto"
	"backend/internal/app/repository"
)

func toPaymentResponse(p ds.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:                   p.ID,
		Number:               p.Number,
		OrderID:              p.OrderID,
		PaymentDate:          p.PaymentDate,
		Amount:               p.Amount,
		Note:                 p.Note,
		State:                p.State,
		Method:               p.Method,
		CenterID:             p.CenterID,
		CustomerID:           p.CustomerID,
		OrderTotal:           p.OrderTotal,
		OrderBalanceDue:      p.OrderBalanceDue,
		CustomerTotalPayment: p.CustomerTotalPayment,
	}
}

// GetPayments получает платежи заказа
// @Summary Список платежей заказа
// @Tags Payments
// @Produce json
// @Param order_id query int true "ID заказа"
// @Success 200 {object} dto.SuccessResponse{data=dto.PaymentListResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/payments [get]
func (h *APIHandler) GetPayments(c *gin.Context) {
	orderID, ok := h.parseQueryID(c, "order_id")
	if !ok {
		return
	}
	payments, err := h.Repository.GetPaymentsByOrder(orderID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := dto.PaymentListResponse{Total: len(payments)}
	for _, payment := range payments {
		resp.Payments = append(resp.Payments, toPaymentResponse(payment))
	}
	h.successResponse(c, http.StatusOK, "", resp)
}

// GetPayment получает один платёж
// @Summary Платёж по идентификатору
// @Tags Payments
// @Produce json
// @Param id path int true "ID платежа"
// @Success 200 {object} dto.SuccessResponse{data=dto.PaymentResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/payments/{id} [get]
func (h *APIHandler) GetPayment(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	payment, err := h.Repository.GetPaymentByID(id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "", toPaymentResponse(*payment))
}

// CreatePayment создаёт платёж
// @Summary Создание платежа
// @Description Сумма платежей заказа не может превысить его сумму
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body dto.CreatePaymentRequest true "Данные платежа"
// @Success 201 {object} dto.SuccessResponse{data=dto.PaymentResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/payments [post]
func (h *APIHandler) CreatePayment(c *gin.Context) {
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	payment := ds.Payment{
		Number:  req.Number,
		OrderID: req.OrderID,
		Amount:  req.Amount,
		Note:    req.Note,
		Method:  req.Method,
	}
	if req.PaymentDate != nil {
		payment.PaymentDate = *req.PaymentDate
	}

	created, err := h.Repository.CreatePayment(payment)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusCreated, "платёж создан", toPaymentResponse(*created))
}

// UpdatePayment изменяет платёж
// @Summary Изменение платежа
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path int true "ID платежа"
// @Param request body dto.UpdatePaymentRequest true "Изменяемые поля"
// @Success 200 {object} dto.SuccessResponse{data=dto.PaymentResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/payments/{id} [put]
func (h *APIHandler) UpdatePayment(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	payment, err := h.Repository.UpdatePayment(id, repository.PaymentUpdate{
		Number:      req.Number,
		Amount:      req.Amount,
		PaymentDate: req.PaymentDate,
		Note:        req.Note,
		Method:      req.Method,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "платёж обновлён", toPaymentResponse(*payment))
}

// DeletePayment удаляет платёж
// @Summary Удаление платежа
// @Tags Payments
// @Produce json
// @Param id path int true "ID платежа"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/payments/{id} [delete]
func (h *APIHandler) DeletePayment(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.DeletePayment(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "платёж удалён", nil)
}

// ConfirmPayment подтверждает платёж
// @Summary Подтверждение платежа
// @Tags Payments
// @Produce json
// @Param id path int true "ID платежа"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/payments/{id}/confirm [put]
func (h *APIHandler) ConfirmPayment(c *gin.Context) {
	h.paymentAction(c, h.Repository.ConfirmPayment, "платёж подтверждён")
}

// CancelPayment отменяет платёж
// @Summary Отмена платежа
// @Tags Payments
// @Produce json
// @Param id path int true "ID платежа"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/payments/{id}/cancel [put]
func (h *APIHandler) CancelPayment(c *gin.Context) {
	h.paymentAction(c, h.Repository.CancelPayment, "платёж отменён")
}

// ResetPayment возвращает платёж в черновик
// @Summary Сброс платежа в черновик
// @Tags Payments
// @Produce json
// @Param id path int true "ID платежа"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/payments/{id}/reset [put]
func (h *APIHandler) ResetPayment(c *gin.Context) {
	h.paymentAction(c, h.Repository.ResetPayment, "платёж возвращён в черновик")
}

func (h *APIHandler) paymentAction(c *gin.Context, action func(uint) error, message string) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := action(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, message, nil)
}
