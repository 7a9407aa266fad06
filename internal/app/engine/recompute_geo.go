package engine

import (
	"time"

	"gorm.io/gorm"

	"backend/internal/app/ds"
)

// Сводные агрегаты по географии. Канонический путь — обход центр -> заказ;
// регион дополнительно использует прямую денормализованную ссылку заказа,
// которая поддерживается движком и потому не расходится с обходом.

func (e *Engine) recomputeDistrictStats(tx *gorm.DB, districtIDs []uint) error {
	today := e.Now()

	for _, id := range districtIDs {
		var district ds.District
		if err := tx.Where("id = ?", id).First(&district).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				continue
			}
			return err
		}

		var centerCount, techCount int64
		if err := tx.Model(&ds.Center{}).Where("district_id = ?", id).Count(&centerCount).Error; err != nil {
			return err
		}
		if err := tx.Model(&ds.Technician{}).Where("district_id = ?", id).Count(&techCount).Error; err != nil {
			return err
		}

		// Заказы района собираются обходом его центров
		var centers []ds.Center
		if err := tx.Where("district_id = ?", id).Find(&centers).Error; err != nil {
			return err
		}
		centerIDs := make([]uint, 0, len(centers))
		for _, c := range centers {
			centerIDs = append(centerIDs, c.ID)
		}

		var orders []ds.Order
		if len(centerIDs) > 0 {
			if err := tx.Where("center_id IN ?", centerIDs).Find(&orders).Error; err != nil {
				return err
			}
		}

		var active, done, todayCount int
		var revenue float64
		orderIDs := make([]uint, 0, len(orders))
		dates := make([]time.Time, 0, len(orders))
		for _, o := range orders {
			if OrderOpen(o) {
				active++
			}
			if OrderDone(o) {
				done++
				revenue += o.TotalAmount // выручка района — только завершённые заказы
			}
			if OrderPlacedOn(o, today) {
				todayCount++
			}
			orderIDs = append(orderIDs, o.ID)
			dates = append(dates, o.OrderDate)
		}

		var avg float64
		if len(orderIDs) > 0 {
			var ratings []ds.Rating
			if err := tx.Where("order_id IN ?", orderIDs).Find(&ratings).Error; err != nil {
				return err
			}
			if len(ratings) > 0 {
				var sum int
				for _, r := range ratings {
					sum += r.Score
				}
				avg = float64(sum) / float64(len(ratings))
			}
		}

		err := tx.Model(&ds.District{}).Where("id = ?", id).Updates(map[string]interface{}{
			"center_count":       int(centerCount),
			"technician_count":   int(techCount),
			"active_order_count": active,
			"done_order_count":   done,
			"today_order_count":  todayCount,
			"total_revenue":      revenue,
			"avg_rating":         avg,
			"last_order_date":    maxDate(dates),
		}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) recomputeRegionStats(tx *gorm.DB, regionIDs []uint) error {
	today := e.Now()

	for _, id := range regionIDs {
		var region ds.Region
		if err := tx.Where("id = ?", id).First(&region).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				continue
			}
			return err
		}

		var districtCount, centerCount, techCount int64
		if err := tx.Model(&ds.District{}).Where("region_id = ?", id).Count(&districtCount).Error; err != nil {
			return err
		}
		if err := tx.Model(&ds.Center{}).Where("region_id = ?", id).Count(&centerCount).Error; err != nil {
			return err
		}
		if err := tx.Model(&ds.Technician{}).Where("region_id = ?", id).Count(&techCount).Error; err != nil {
			return err
		}

		// Срезы региона — по прямой ссылке заказа на регион
		var orders []ds.Order
		if err := tx.Where("region_id = ?", id).Find(&orders).Error; err != nil {
			return err
		}

		var active, done, todayCount int
		var revenue float64
		doneOrderIDs := make([]uint, 0, len(orders))
		doneDates := make([]time.Time, 0, len(orders))
		for _, o := range orders {
			if OrderOpen(o) {
				active++
			}
			if OrderDone(o) {
				done++
				revenue += o.TotalAmount
				doneOrderIDs = append(doneOrderIDs, o.ID)
				doneDates = append(doneDates, o.OrderDate)
			}
			if OrderPlacedOn(o, today) {
				todayCount++
			}
		}

		// Финансовый блок региона ограничен завершёнными заказами
		var avg float64
		if len(doneOrderIDs) > 0 {
			var ratings []ds.Rating
			if err := tx.Where("order_id IN ?", doneOrderIDs).Find(&ratings).Error; err != nil {
				return err
			}
			if len(ratings) > 0 {
				var sum int
				for _, r := range ratings {
					sum += r.Score
				}
				avg = float64(sum) / float64(len(ratings))
			}
		}

		err := tx.Model(&ds.Region{}).Where("id = ?", id).Updates(map[string]interface{}{
			"district_count":     int(districtCount),
			"center_count":       int(centerCount),
			"technician_count":   int(techCount),
			"active_order_count": active,
			"done_order_count":   done,
			"today_order_count":  todayCount,
			"total_revenue":      revenue,
			"avg_rating":         avg,
			"last_order_date":    maxDate(doneDates),
		}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) recomputeCountryStats(tx *gorm.DB, countryIDs []uint) error {
	today := e.Now()

	for _, id := range countryIDs {
		var country ds.Country
		if err := tx.Where("id = ?", id).First(&country).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				continue
			}
			return err
		}

		var regionCount, centerCount, techCount int64
		if err := tx.Model(&ds.Region{}).Where("country_id = ?", id).Count(&regionCount).Error; err != nil {
			return err
		}
		if err := tx.Model(&ds.Center{}).Where("country_id = ?", id).Count(&centerCount).Error; err != nil {
			return err
		}
		if err := tx.Model(&ds.Technician{}).Where("country_id = ?", id).Count(&techCount).Error; err != nil {
			return err
		}

		// Заказы страны собираются обходом её центров
		var centers []ds.Center
		if err := tx.Where("country_id = ?", id).Find(&centers).Error; err != nil {
			return err
		}
		centerIDs := make([]uint, 0, len(centers))
		for _, c := range centers {
			centerIDs = append(centerIDs, c.ID)
		}

		var orders []ds.Order
		if len(centerIDs) > 0 {
			if err := tx.Where("center_id IN ?", centerIDs).Find(&orders).Error; err != nil {
				return err
			}
		}

		var active, done, todayCount int
		var revenue float64
		orderIDs := make([]uint, 0, len(orders))
		dates := make([]time.Time, 0, len(orders))
		for _, o := range orders {
			if OrderCountryOpen(o) {
				active++
			}
			if OrderDone(o) {
				done++
			}
			if OrderPlacedOn(o, today) {
				todayCount++
			}
			revenue += o.TotalAmount // страновая выручка — по всем заказам
			orderIDs = append(orderIDs, o.ID)
			dates = append(dates, o.OrderDate)
		}

		var avg float64
		if len(orderIDs) > 0 {
			var ratings []ds.Rating
			if err := tx.Where("order_id IN ?", orderIDs).Find(&ratings).Error; err != nil {
				return err
			}
			if len(ratings) > 0 {
				var sum int
				for _, r := range ratings {
					sum += r.Score
				}
				avg = float64(sum) / float64(len(ratings))
			}
		}

		err := tx.Model(&ds.Country{}).Where("id = ?", id).Updates(map[string]interface{}{
			"region_count":       int(regionCount),
			"center_count":       int(centerCount),
			"technician_count":   int(techCount),
			"active_order_count": active,
			"done_order_count":   done,
			"today_order_count":  todayCount,
			"total_revenue":      revenue,
			"avg_rating":         avg,
			"last_order_date":    maxDate(dates),
		}).Error
		if err != nil {
			return err
		}
	}
	return nil
}
