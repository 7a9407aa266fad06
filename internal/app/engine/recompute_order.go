package engine

import (
	"time"

	"gorm.io/gorm"

	"backend/internal/app/ds"
)

// Пересчёт производных полей заказа и его строк.

func (e *Engine) recomputeLineSubtotals(tx *gorm.DB, lineIDs []uint) error {
	if len(lineIDs) == 0 {
		return nil
	}
	var lines []ds.OrderLine
	if err := tx.Where("id IN ?", lineIDs).Find(&lines).Error; err != nil {
		return err
	}
	for _, l := range lines {
		subtotal := float64(l.Quantity) * l.UnitPrice
		err := tx.Model(&ds.OrderLine{}).Where("id = ?", l.ID).
			Update("sub_total", subtotal).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// total_amount = сумма строк + работа - скидка
func (e *Engine) recomputeOrderTotals(tx *gorm.DB, orderIDs []uint) error {
	for _, id := range orderIDs {
		var order ds.Order
		if err := tx.Where("id = ?", id).First(&order).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				continue // заказ удалён в этой же транзакции
			}
			return err
		}

		var lines []ds.OrderLine
		if err := tx.Where("order_id = ?", id).Find(&lines).Error; err != nil {
			return err
		}

		var subtotal float64
		for _, l := range lines {
			subtotal += l.SubTotal
		}
		total := subtotal + order.LaborFee - order.DiscountAmount

		err := tx.Model(&ds.Order{}).Where("id = ?", id).
			Update("total_amount", total).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// payment_total, balance_due и last_payment_date по всем платежам заказа
func (e *Engine) recomputeOrderPayments(tx *gorm.DB, orderIDs []uint) error {
	for _, id := range orderIDs {
		var order ds.Order
		if err := tx.Where("id = ?", id).First(&order).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				continue
			}
			return err
		}

		var payments []ds.Payment
		if err := tx.Where("order_id = ?", id).Find(&payments).Error; err != nil {
			return err
		}

		var total float64
		dates := make([]time.Time, 0, len(payments))
		for _, p := range payments {
			total += p.Amount
			dates = append(dates, p.PaymentDate)
		}

		err := tx.Model(&ds.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
			"payment_total":     total,
			"balance_due":       order.TotalAmount - total,
			"last_payment_date": maxDate(dates),
		}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// География заказа выводится из его центра
func (e *Engine) recomputeOrderGeo(tx *gorm.DB, orderIDs []uint) error {
	for _, id := range orderIDs {
		var order ds.Order
		if err := tx.Where("id = ?", id).First(&order).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				continue
			}
			return err
		}

		var center ds.Center
		if err := tx.Where("id = ?", order.CenterID).First(&center).Error; err != nil {
			return err
		}

		err := tx.Model(&ds.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
			"country_id":  center.CountryID,
			"region_id":   center.RegionID,
			"district_id": center.DistrictID,
		}).Error
		if err != nil {
			return err
		}
	}
	return nil
}
