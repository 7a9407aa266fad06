package engine

import (
	"gorm.io/gorm"

	"backend/internal/app/apperr"
	"backend/internal/app/ds"
)

// Проверки бизнес-инвариантов. Выполняются в транзакции записи после
// пересчёта зависимых полей; ошибка откатывает запись целиком.

// ValidateOrder: при наличии гарантии срок в днях должен быть положительным.
func (e *Engine) ValidateOrder(o *ds.Order) error {
	if o.IsWarranty && o.WarrantyDays <= 0 {
		return apperr.Validation("при наличии гарантии срок в днях должен быть положительным")
	}
	return nil
}

// ValidatePayment: дата платежа не в будущем; сумма учитываемых платежей по
// заказу (без отменённых) не превышает сумму заказа. Проверяемый платёж
// исключается из суммы остальных и прибавляется отдельно.
func (e *Engine) ValidatePayment(tx *gorm.DB, p *ds.Payment) error {
	now := e.Now()
	if p.PaymentDate.After(now) && !sameDay(p.PaymentDate, now) {
		return apperr.Validation("дата платежа не может быть в будущем")
	}

	if !PaymentCounted(*p) {
		return nil
	}

	var order ds.Order
	if err := tx.Where("id = ?", p.OrderID).First(&order).Error; err != nil {
		return err
	}

	var others []ds.Payment
	err := tx.Where("order_id = ? AND id != ?", p.OrderID, p.ID).Find(&others).Error
	if err != nil {
		return err
	}

	var paid float64
	for _, other := range others {
		if PaymentCounted(other) {
			paid += other.Amount
		}
	}
	if paid+p.Amount > order.TotalAmount {
		return apperr.Validation("общая сумма платежей не может превышать сумму заказа")
	}
	return nil
}

// ValidateRating: балл от 1 до 5.
func (e *Engine) ValidateRating(r *ds.Rating) error {
	if r.Score < 1 || r.Score > 5 {
		return apperr.Validation("балл оценки должен быть от 1 до 5")
	}
	return nil
}

// ValidateRegion: население неотрицательное, площадь положительная
// (ноль трактуется как «не указано»).
func (e *Engine) ValidateRegion(r *ds.Region) error {
	if r.Population < 0 {
		return apperr.Validation("население должно быть неотрицательным")
	}
	if r.AreaKm2 < 0 {
		return apperr.Validation("площадь должна быть положительной")
	}
	return nil
}
