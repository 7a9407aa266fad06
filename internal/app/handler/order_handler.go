package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/app/ds"
	"backend/internal/app/dto"
	"backend/internal/app/repository"
)

func toOrderLineResponse(l ds.OrderLine) dto.OrderLineResponse {
	return dto.OrderLineResponse{
		ID:          l.ID,
		OrderID:     l.OrderID,
		PartID:      l.PartID,
		Description: l.Description,
		Note:        l.Note,
		Quantity:    l.Quantity,
		UnitPrice:   l.UnitPrice,
		SubTotal:    l.SubTotal,
	}
}

func toOrderResponse(o ds.Order, lines []ds.OrderLine) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:              o.ID,
		Number:          o.Number,
		CenterID:        o.CenterID,
		CustomerID:      o.CustomerID,
		TechnicianID:    o.TechnicianID,
		OrderDate:       o.OrderDate,
		State:           o.State,
		Description:     o.Description,
		LaborFee:        o.LaborFee,
		DiscountAmount:  o.DiscountAmount,
		IsWarranty:      o.IsWarranty,
		WarrantyDays:    o.WarrantyDays,
		TotalAmount:     o.TotalAmount,
		PaymentTotal:    o.PaymentTotal,
		BalanceDue:      o.BalanceDue,
		LastPaymentDate: o.LastPaymentDate,
		CountryID:       o.CountryID,
		RegionID:        o.RegionID,
		DistrictID:      o.DistrictID,
	}
	for _, line := range lines {
		resp.Lines = append(resp.Lines, toOrderLineResponse(line))
	}
	return resp
}

// GetOrders получает список заказов
// @Summary Список заказов
// @Description Возвращает заказы, опционально фильтрует по центру или клиенту
// @Tags Orders
// @Produce json
// @Param center_id query int false "ID центра"
// @Param customer_id query int false "ID клиента"
// @Success 200 {object} dto.SuccessResponse{data=dto.OrderListResponse}
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/orders [get]
func (h *APIHandler) GetOrders(c *gin.Context) {
	var orders []ds.Order
	var err error

	switch {
	case c.Query("center_id") != "":
		centerID, ok := h.parseQueryID(c, "center_id")
		if !ok {
			return
		}
		orders, err = h.Repository.GetOrdersByCenter(centerID)
	case c.Query("customer_id") != "":
		customerID, ok := h.parseQueryID(c, "customer_id")
		if !ok {
			return
		}
		orders, err = h.Repository.GetOrdersByCustomer(customerID)
	default:
		orders, err = h.Repository.GetAllOrders()
	}
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := dto.OrderListResponse{Total: len(orders)}
	for _, order := range orders {
		resp.Orders = append(resp.Orders, toOrderResponse(order, nil))
	}
	h.successResponse(c, http.StatusOK, "", resp)
}

// GetOrder получает один заказ со строками
// @Summary Заказ по идентификатору
// @Tags Orders
// @Produce json
// @Param id path int true "ID заказа"
// @Success 200 {object} dto.SuccessResponse{data=dto.OrderResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders/{id} [get]
func (h *APIHandler) GetOrder(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	order, err := h.Repository.GetOrderByID(id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	lines, err := h.Repository.GetOrderLines(id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "", toOrderResponse(*order, lines))
}

// CreateOrder создаёт заказ
// @Summary Создание заказа
// @Description Номер генерируется автоматически, если не передан
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body dto.CreateOrderRequest true "Данные заказа"
// @Success 201 {object} dto.SuccessResponse{data=dto.OrderResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders [post]
func (h *APIHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	order := ds.Order{
		Number:         req.Number,
		CenterID:       req.CenterID,
		CustomerID:     req.CustomerID,
		TechnicianID:   req.TechnicianID,
		Description:    req.Description,
		LaborFee:       req.LaborFee,
		DiscountAmount: req.DiscountAmount,
		IsWarranty:     req.IsWarranty,
		WarrantyDays:   req.WarrantyDays,
	}
	if req.OrderDate != nil {
		order.OrderDate = *req.OrderDate
	}

	created, err := h.Repository.CreateOrder(order)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusCreated, "заказ создан", toOrderResponse(*created, nil))
}

// UpdateOrder изменяет заказ
// @Summary Изменение заказа
// @Description Статус через этот метод не меняется, только действиями
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path int true "ID заказа"
// @Param request body dto.UpdateOrderRequest true "Изменяемые поля"
// @Success 200 {object} dto.SuccessResponse{data=dto.OrderResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders/{id} [put]
func (h *APIHandler) UpdateOrder(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.Repository.UpdateOrder(id, repository.OrderUpdate{
		Number:         req.Number,
		CenterID:       req.CenterID,
		CustomerID:     req.CustomerID,
		TechnicianID:   req.TechnicianID,
		OrderDate:      req.OrderDate,
		Description:    req.Description,
		LaborFee:       req.LaborFee,
		DiscountAmount: req.DiscountAmount,
		IsWarranty:     req.IsWarranty,
		WarrantyDays:   req.WarrantyDays,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "заказ обновлён", toOrderResponse(*order, nil))
}

// DeleteOrder удаляет заказ
// @Summary Удаление заказа
// @Description Каскадно удаляет строки, платежи и оценку заказа
// @Tags Orders
// @Produce json
// @Param id path int true "ID заказа"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders/{id} [delete]
func (h *APIHandler) DeleteOrder(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.DeleteOrder(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "заказ удалён", nil)
}

// ============ Действия жизненного цикла ============

// ReceiveOrder переводит заказ в статус «принят»
// @Summary Приём заказа
// @Tags Orders
// @Produce json
// @Param id path int true "ID заказа"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders/{id}/receive [put]
func (h *APIHandler) ReceiveOrder(c *gin.Context) {
	h.orderAction(c, h.Repository.ReceiveOrder, "заказ принят")
}

// DiagnoseOrder переводит заказ в статус «диагностика»
// @Summary Диагностика заказа
// @Tags Orders
// @Produce json
// @Param id path int true "ID заказа"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders/{id}/diagnose [put]
func (h *APIHandler) DiagnoseOrder(c *gin.Context) {
	h.orderAction(c, h.Repository.DiagnoseOrder, "заказ на диагностике")
}

// StartOrder переводит заказ в работу
// @Summary Запуск заказа в работу
// @Tags Orders
// @Produce json
// @Param id path int true "ID заказа"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders/{id}/start [put]
func (h *APIHandler) StartOrder(c *gin.Context) {
	h.orderAction(c, h.Repository.StartOrder, "заказ в работе")
}

// FinishOrder завершает заказ
// @Summary Завершение заказа
// @Description Отклоняется, пока долг по заказу не погашен полностью
// @Tags Orders
// @Produce json
// @Param id path int true "ID заказа"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders/{id}/finish [put]
func (h *APIHandler) FinishOrder(c *gin.Context) {
	h.orderAction(c, h.Repository.FinishOrder, "заказ завершён")
}

// CancelOrder отменяет заказ
// @Summary Отмена заказа
// @Tags Orders
// @Produce json
// @Param id path int true "ID заказа"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders/{id}/cancel [put]
func (h *APIHandler) CancelOrder(c *gin.Context) {
	h.orderAction(c, h.Repository.CancelOrder, "заказ отменён")
}

// CloseOrderIfPaid закрывает оплаченный заказ
// @Summary Закрытие оплаченного заказа
// @Tags Orders
// @Produce json
// @Param id path int true "ID заказа"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders/{id}/close-if-paid [put]
func (h *APIHandler) CloseOrderIfPaid(c *gin.Context) {
	h.orderAction(c, h.Repository.CloseOrderIfPaid, "заказ закрыт")
}

// CleanupOrderZeroPayments удаляет нулевые платежи заказа
// @Summary Очистка нулевых платежей заказа
// @Tags Orders
// @Produce json
// @Param id path int true "ID заказа"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/orders/{id}/cleanup-zero-payments [post]
func (h *APIHandler) CleanupOrderZeroPayments(c *gin.Context) {
	h.orderAction(c, h.Repository.CleanupOrderZeroPayments, "нулевые платежи удалены")
}

func (h *APIHandler) orderAction(c *gin.Context, action func(uint) error, message string) {
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

// ============ Строки заказа ============

// GetOrderLines получает строки заказа
// @Summary Строки заказа
// @Tags OrderLines
// @Produce json
// @Param id path int true "ID заказа"
// @Success 200 {object} dto.SuccessResponse{data=[]dto.OrderLineResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders/{id}/lines [get]
func (h *APIHandler) GetOrderLines(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	lines, err := h.Repository.GetOrderLines(id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.OrderLineResponse, 0, len(lines))
	for _, line := range lines {
		resp = append(resp, toOrderLineResponse(line))
	}
	h.successResponse(c, http.StatusOK, "", resp)
}

// CreateOrderLine добавляет строку в заказ
// @Summary Добавление строки заказа
// @Tags OrderLines
// @Accept json
// @Produce json
// @Param id path int true "ID заказа"
// @Param request body dto.CreateOrderLineRequest true "Данные строки"
// @Success 201 {object} dto.SuccessResponse{data=dto.OrderLineResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders/{id}/lines [post]
func (h *APIHandler) CreateOrderLine(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateOrderLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	line, err := h.Repository.CreateOrderLine(ds.OrderLine{
		OrderID:     id,
		PartID:      req.PartID,
		Description: req.Description,
		Note:        req.Note,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusCreated, "строка добавлена", toOrderLineResponse(*line))
}

// UpdateOrderLine изменяет строку заказа
// @Summary Изменение строки заказа
// @Tags OrderLines
// @Accept json
// @Produce json
// @Param id path int true "ID строки"
// @Param request body dto.UpdateOrderLineRequest true "Изменяемые поля"
// @Success 200 {object} dto.SuccessResponse{data=dto.OrderLineResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/order-lines/{id} [put]
func (h *APIHandler) UpdateOrderLine(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateOrderLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	line, err := h.Repository.UpdateOrderLine(id, repository.OrderLineUpdate{
		PartID:      req.PartID,
		Description: req.Description,
		Note:        req.Note,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "строка обновлена", toOrderLineResponse(*line))
}

// DeleteOrderLine удаляет строку заказа
// @Summary Удаление строки заказа
// @Tags OrderLines
// @Produce json
// @Param id path int true "ID строки"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/order-lines/{id} [delete]
func (h *APIHandler) DeleteOrderLine(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.DeleteOrderLine(id); err != nil {
		h.handleError(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "строка удалена", nil)
}
