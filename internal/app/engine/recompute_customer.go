package engine

import (
	"time"

	"gorm.io/gorm"

	"backend/internal/app/ds"
)

// Агрегаты клиента: счётчики заказов, суммы платежей, долг, средняя оценка
// и даты последних событий.
func (e *Engine) recomputeCustomerStats(tx *gorm.DB, customerIDs []uint) error {
	today := e.Now()

	for _, id := range customerIDs {
		var customer ds.Customer
		if err := tx.Where("id = ?", id).First(&customer).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				continue
			}
			return err
		}

		var orders []ds.Order
		if err := tx.Where("customer_id = ?", id).Find(&orders).Error; err != nil {
			return err
		}

		var active, done, todayCount int
		var ordersTotal float64
		orderDates := make([]time.Time, 0, len(orders))
		for _, o := range orders {
			if OrderCustomerActive(o) {
				active++
			}
			if OrderDone(o) {
				done++
			}
			if OrderPlacedOn(o, today) {
				todayCount++
			}
			ordersTotal += o.TotalAmount
			orderDates = append(orderDates, o.OrderDate)
		}

		var payments []ds.Payment
		if err := tx.Where("customer_id = ?", id).Find(&payments).Error; err != nil {
			return err
		}
		var paid float64
		paymentDates := make([]time.Time, 0, len(payments))
		for _, p := range payments {
			paid += p.Amount
			paymentDates = append(paymentDates, p.PaymentDate)
		}

		var ratings []ds.Rating
		if err := tx.Where("customer_id = ?", id).Find(&ratings).Error; err != nil {
			return err
		}
		var avg float64
		if len(ratings) > 0 {
			var sum int
			for _, r := range ratings {
				sum += r.Score
			}
			avg = float64(sum) / float64(len(ratings))
		}

		err := tx.Model(&ds.Customer{}).Where("id = ?", id).Updates(map[string]interface{}{
			"order_count":        len(orders),
			"active_order_count": active,
			"done_order_count":   done,
			"today_order_count":  todayCount,
			"total_payment":      paid,
			"balance_due":        ordersTotal - paid,
			"avg_rating":         avg,
			"last_order_date":    maxDate(orderDates),
			"last_payment_date":  maxDate(paymentDates),
		}).Error
		if err != nil {
			return err
		}
	}
	return nil
}
