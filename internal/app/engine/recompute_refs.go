package engine

import (
	"gorm.io/gorm"

	"backend/internal/app/ds"
)

// Пересчёт денормализованных ссылок и зеркальных сумм.

// Платежи заказа: center_id/customer_id из заказа, зеркала order_total и
// order_balance_due, затем customer_total_payment по подтверждённым платежам
// клиента (полное повторное сканирование, не инкремент).
func (e *Engine) recomputePaymentRefs(tx *gorm.DB, orderIDs, customerIDs []uint) error {
	customerIDs = append([]uint{}, customerIDs...)

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

		var paid float64
		for _, p := range payments {
			paid += p.Amount
		}

		for _, p := range payments {
			err := tx.Model(&ds.Payment{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
				"center_id":         order.CenterID,
				"customer_id":       order.CustomerID,
				"order_total":       order.TotalAmount,
				"order_balance_due": order.TotalAmount - paid,
			}).Error
			if err != nil {
				return err
			}
		}
		customerIDs = append(customerIDs, order.CustomerID)
	}

	for _, cid := range uniq(customerIDs) {
		var payments []ds.Payment
		if err := tx.Where("customer_id = ?", cid).Find(&payments).Error; err != nil {
			return err
		}

		var confirmed float64
		for _, p := range payments {
			if PaymentConfirmed(p) {
				confirmed += p.Amount
			}
		}

		err := tx.Model(&ds.Payment{}).Where("customer_id = ?", cid).
			Update("customer_total_payment", confirmed).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// Оценки заказов: center_id/technician_id/customer_id из заказа
func (e *Engine) recomputeRatingRefs(tx *gorm.DB, orderIDs []uint) error {
	if len(orderIDs) == 0 {
		return nil
	}
	var ratings []ds.Rating
	if err := tx.Where("order_id IN ?", orderIDs).Find(&ratings).Error; err != nil {
		return err
	}
	for _, r := range ratings {
		var order ds.Order
		if err := tx.Where("id = ?", r.OrderID).First(&order).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				continue
			}
			return err
		}
		err := tx.Model(&ds.Rating{}).Where("id = ?", r.ID).Updates(map[string]interface{}{
			"center_id":     order.CenterID,
			"technician_id": order.TechnicianID,
			"customer_id":   order.CustomerID,
		}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// География мастера выводится из его центра
func (e *Engine) recomputeTechnicianGeo(tx *gorm.DB, technicianIDs []uint) error {
	for _, id := range technicianIDs {
		var tech ds.Technician
		if err := tx.Where("id = ?", id).First(&tech).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				continue
			}
			return err
		}

		var countryID, regionID, districtID *uint
		if tech.CenterID != nil {
			var center ds.Center
			if err := tx.Where("id = ?", *tech.CenterID).First(&center).Error; err != nil {
				return err
			}
			countryID = center.CountryID
			regionID = center.RegionID
			districtID = center.DistrictID
		}

		err := tx.Model(&ds.Technician{}).Where("id = ?", id).Updates(map[string]interface{}{
			"country_id":  countryID,
			"region_id":   regionID,
			"district_id": districtID,
		}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// Страна района выводится из его региона
func (e *Engine) recomputeDistrictGeo(tx *gorm.DB, districtIDs []uint) error {
	for _, id := range districtIDs {
		var district ds.District
		if err := tx.Where("id = ?", id).First(&district).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				continue
			}
			return err
		}

		var countryID *uint
		if district.RegionID != nil {
			var region ds.Region
			if err := tx.Where("id = ?", *district.RegionID).First(&region).Error; err != nil {
				return err
			}
			countryID = &region.CountryID
		}

		err := tx.Model(&ds.District{}).Where("id = ?", id).
			Update("country_id", countryID).Error
		if err != nil {
			return err
		}
	}
	return nil
}
