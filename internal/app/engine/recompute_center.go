package engine

import (
	"time"

	"gorm.io/gorm"

	"backend/internal/app/ds"
)

// Агрегаты сервисного центра: счётчики заказов и мастеров, выручка,
// средняя оценка, загрузка и дата последнего заказа.
func (e *Engine) recomputeCenterStats(tx *gorm.DB, centerIDs []uint) error {
	today := e.Now()

	for _, id := range centerIDs {
		var center ds.Center
		if err := tx.Where("id = ?", id).First(&center).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				continue
			}
			return err
		}

		var techCount int64
		err := tx.Model(&ds.Technician{}).Where("center_id = ?", id).Count(&techCount).Error
		if err != nil {
			return err
		}

		var orders []ds.Order
		if err := tx.Where("center_id = ?", id).Find(&orders).Error; err != nil {
			return err
		}

		var active, done, todayCount int
		dates := make([]time.Time, 0, len(orders))
		for _, o := range orders {
			if OrderInProgress(o) {
				active++
			}
			if OrderDone(o) {
				done++
			}
			if OrderPlacedOn(o, today) {
				todayCount++
			}
			dates = append(dates, o.OrderDate)
		}

		// Выручка центра — сумма всех его платежей
		var payments []ds.Payment
		if err := tx.Where("center_id = ?", id).Find(&payments).Error; err != nil {
			return err
		}
		var revenue float64
		for _, p := range payments {
			revenue += p.Amount
		}

		var ratings []ds.Rating
		if err := tx.Where("center_id = ?", id).Find(&ratings).Error; err != nil {
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

		var utilization float64
		if center.CapacityPerDay > 0 {
			utilization = float64(active) / float64(center.CapacityPerDay) * 100
		}

		err = tx.Model(&ds.Center{}).Where("id = ?", id).Updates(map[string]interface{}{
			"technician_count":   int(techCount),
			"active_order_count": active,
			"done_order_count":   done,
			"today_order_count":  todayCount,
			"total_revenue":      revenue,
			"avg_rating":         avg,
			"utilization_rate":   utilization,
			"last_order_date":    maxDate(dates),
		}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// Счётчики заказов мастера
func (e *Engine) recomputeTechnicianStats(tx *gorm.DB, technicianIDs []uint) error {
	today := e.Now()

	for _, id := range technicianIDs {
		var tech ds.Technician
		if err := tx.Where("id = ?", id).First(&tech).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				continue
			}
			return err
		}

		var orders []ds.Order
		if err := tx.Where("technician_id = ?", id).Find(&orders).Error; err != nil {
			return err
		}

		var active, done, todayCount int
		for _, o := range orders {
			if OrderOpen(o) {
				active++
			}
			if OrderDone(o) {
				done++
			}
			if OrderPlacedOn(o, today) {
				todayCount++
			}
		}

		err := tx.Model(&ds.Technician{}).Where("id = ?", id).Updates(map[string]interface{}{
			"order_count":        len(orders),
			"active_order_count": active,
			"done_order_count":   done,
			"today_order_count":  todayCount,
		}).Error
		if err != nil {
			return err
		}
	}
	return nil
}
