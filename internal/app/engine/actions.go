package engine

import (
	"gorm.io/gorm"

	"backend/internal/app/apperr"
	"backend/internal/app/ds"
)

// Действия жизненного цикла. Переходы заказа — явные, без проверки строгого
// движения вперёд; завершение дополнительно ограничено долгом по заказу.
// Переходы платежа не ограничены вовсе: инварианты сторожат значения, а не
// статусы.

func (e *Engine) setOrderState(tx *gorm.DB, orderID uint, state string) error {
	err := tx.Model(&ds.Order{}).Where("id = ?", orderID).Update("state", state).Error
	if err != nil {
		return err
	}
	return e.React(tx, Change{Entity: "order", Fields: []string{"state"}, OrderIDs: []uint{orderID}})
}

func (e *Engine) ReceiveOrder(tx *gorm.DB, orderID uint) error {
	return e.setOrderState(tx, orderID, ds.OrderReceived)
}

func (e *Engine) DiagnoseOrder(tx *gorm.DB, orderID uint) error {
	return e.setOrderState(tx, orderID, ds.OrderDiagnosed)
}

func (e *Engine) StartOrder(tx *gorm.DB, orderID uint) error {
	return e.setOrderState(tx, orderID, ds.OrderInProgress)
}

func (e *Engine) CancelOrder(tx *gorm.DB, orderID uint) error {
	return e.setOrderState(tx, orderID, ds.OrderCancelled)
}

// FinishOrder завершает заказ только при полностью погашенном долге.
func (e *Engine) FinishOrder(tx *gorm.DB, order *ds.Order) error {
	if order.BalanceDue > 0 {
		return apperr.Validation("для завершения заказа долг должен быть полностью погашен")
	}
	return e.setOrderState(tx, order.ID, ds.OrderDone)
}

// CloseOrderIfPaid закрывает оплаченный заказ, иначе возвращает ошибку.
func (e *Engine) CloseOrderIfPaid(tx *gorm.DB, order *ds.Order) error {
	if order.BalanceDue > 0 {
		return apperr.Validation("заказ нельзя закрыть: долг не погашен полностью")
	}
	return e.setOrderState(tx, order.ID, ds.OrderDone)
}

func (e *Engine) setPaymentState(tx *gorm.DB, paymentID uint, state string) error {
	err := tx.Model(&ds.Payment{}).Where("id = ?", paymentID).Update("state", state).Error
	if err != nil {
		return err
	}
	return e.React(tx, Change{Entity: "payment", Fields: []string{"state"}, PaymentIDs: []uint{paymentID}})
}

func (e *Engine) ConfirmPayment(tx *gorm.DB, paymentID uint) error {
	return e.setPaymentState(tx, paymentID, ds.PaymentConfirmed)
}

func (e *Engine) CancelPayment(tx *gorm.DB, paymentID uint) error {
	return e.setPaymentState(tx, paymentID, ds.PaymentCancelled)
}

func (e *Engine) ResetPayment(tx *gorm.DB, paymentID uint) error {
	return e.setPaymentState(tx, paymentID, ds.PaymentDraft)
}

// MarkCenterInactiveIfIdle деактивирует центр, только если у него нет заказов
// в работе. Повторный вызов ничего не меняет.
func (e *Engine) MarkCenterInactiveIfIdle(tx *gorm.DB, centerID uint) error {
	var center ds.Center
	if err := tx.Where("id = ?", centerID).First(&center).Error; err != nil {
		return err
	}
	if !CenterIdle(center) {
		return nil
	}
	return tx.Model(&ds.Center{}).Where("id = ?", centerID).Update("is_active", false).Error
}

// DeactivateIdleCenters деактивирует центры без заказов в работе
// (региональный и районный охват).
func (e *Engine) DeactivateIdleCenters(tx *gorm.DB, centerIDs []uint) error {
	for _, id := range centerIDs {
		if err := e.MarkCenterInactiveIfIdle(tx, id); err != nil {
			return err
		}
	}
	return nil
}

// DeactivateOrderlessCenters деактивирует центры, у которых вообще нет
// заказов (страновой охват).
func (e *Engine) DeactivateOrderlessCenters(tx *gorm.DB, centerIDs []uint) error {
	for _, id := range centerIDs {
		var count int64
		if err := tx.Model(&ds.Order{}).Where("center_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := tx.Model(&ds.Center{}).Where("id = ?", id).Update("is_active", false).Error; err != nil {
			return err
		}
	}
	return nil
}

// FinishAllInProgress массово переводит заказы в работе в завершённые.
// Долг по заказу здесь не проверяется, в отличие от одиночного завершения.
func (e *Engine) FinishAllInProgress(tx *gorm.DB, centerIDs []uint) error {
	if len(centerIDs) == 0 {
		return nil
	}
	var orders []ds.Order
	err := tx.Where("center_id IN ? AND state = ?", centerIDs, ds.OrderInProgress).Find(&orders).Error
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		return nil
	}

	orderIDs := make([]uint, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}
	err = tx.Model(&ds.Order{}).Where("id IN ?", orderIDs).Update("state", ds.OrderDone).Error
	if err != nil {
		return err
	}
	return e.React(tx, Change{Entity: "order", Fields: []string{"state"}, OrderIDs: orderIDs})
}
