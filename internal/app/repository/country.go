package repository

import (
	"gorm.io/gorm"

	"backend/internal/app/apperr"
	"backend/internal/app/ds"
	"backend/internal/app/engine"
)

// Методы для работы со странами

func (r *Repository) GetCountryByID(id uint) (*ds.Country, error) {
	var country ds.Country
	err := r.db.Where("id = ?", id).First(&country).Error
	if err != nil {
		return nil, notFoundOr(err, "страна %d не найдена", id)
	}
	return &country, nil
}

func (r *Repository) GetAllCountries() ([]ds.Country, error) {
	var countries []ds.Country
	err := r.db.Order("name").Find(&countries).Error
	return countries, err
}

func (r *Repository) CreateCountry(country ds.Country) (*ds.Country, error) {
	country.IsActive = true
	err := r.inTx(func(tx *gorm.DB) error {
		return wrapWriteErr(tx.Create(&country).Error,
			"название, код и телефонный код страны должны быть уникальными")
	})
	if err != nil {
		return nil, err
	}
	return &country, nil
}

type CountryUpdate struct {
	Name      *string
	Code      *string
	PhoneCode *string
	IsActive  *bool
}

func (r *Repository) UpdateCountry(id uint, upd CountryUpdate) (*ds.Country, error) {
	var country ds.Country
	err := r.inTx(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&country).Error; err != nil {
			return notFoundOr(err, "страна %d не найдена", id)
		}

		updates := map[string]interface{}{}
		if upd.Name != nil {
			updates["name"] = *upd.Name
		}
		if upd.Code != nil {
			updates["code"] = *upd.Code
		}
		if upd.PhoneCode != nil {
			updates["phone_code"] = *upd.PhoneCode
		}
		if upd.IsActive != nil {
			updates["is_active"] = *upd.IsActive
		}
		if len(updates) == 0 {
			return nil
		}
		err := tx.Model(&ds.Country{}).Where("id = ?", id).Updates(updates).Error
		if err != nil {
			return wrapWriteErr(err, "название, код и телефонный код страны должны быть уникальными")
		}
		return tx.Where("id = ?", id).First(&country).Error
	})
	if err != nil {
		return nil, err
	}
	return &country, nil
}

// DeleteCountry каскадно удаляет регионы страны и отвязывает её центры.
func (r *Repository) DeleteCountry(id uint) error {
	return r.inTx(func(tx *gorm.DB) error {
		var country ds.Country
		if err := tx.Where("id = ?", id).First(&country).Error; err != nil {
			return notFoundOr(err, "страна %d не найдена", id)
		}

		var regions []ds.Region
		if err := tx.Where("country_id = ?", id).Find(&regions).Error; err != nil {
			return err
		}
		for _, region := range regions {
			if err := r.deleteRegionTx(tx, region.ID); err != nil {
				return err
			}
		}

		if err := r.detachCentersTx(tx, "country_id", id); err != nil {
			return err
		}

		return tx.Delete(&ds.Country{}, id).Error
	})
}

// detachCentersTx обнуляет географическую ссылку центров и пересчитывает
// зависимую от неё денормализацию заказов и мастеров.
func (r *Repository) detachCentersTx(tx *gorm.DB, column string, refID uint) error {
	var centers []ds.Center
	if err := tx.Where(column+" = ?", refID).Find(&centers).Error; err != nil {
		return err
	}
	if len(centers) == 0 {
		return nil
	}

	centerIDs := make([]uint, 0, len(centers))
	for _, c := range centers {
		centerIDs = append(centerIDs, c.ID)
	}
	err := tx.Model(&ds.Center{}).Where("id IN ?", centerIDs).
		Update(column, nil).Error
	if err != nil {
		return err
	}
	return r.engine.React(tx, engine.Change{
		Entity:    "center",
		Fields:    []string{column},
		CenterIDs: centerIDs,
	})
}

// Действия над страной

func (r *Repository) ActivateCountry(id uint) error {
	return r.setCountryActive(id, true)
}

func (r *Repository) DeactivateCountry(id uint) error {
	return r.setCountryActive(id, false)
}

func (r *Repository) setCountryActive(id uint, active bool) error {
	result := r.db.Model(&ds.Country{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("страна %d не найдена", id)
	}
	return nil
}

// DeactivateIdleCountryCenters деактивирует центры страны, у которых нет
// ни одного заказа.
func (r *Repository) DeactivateIdleCountryCenters(countryID uint) error {
	return r.inTx(func(tx *gorm.DB) error {
		centerIDs, err := r.centerIDsByScope(tx, "country_id", countryID)
		if err != nil {
			return err
		}
		return r.engine.DeactivateOrderlessCenters(tx, centerIDs)
	})
}

func (r *Repository) CleanupCountryZeroPayments(countryID uint) error {
	return r.inTx(func(tx *gorm.DB) error {
		centerIDs, err := r.centerIDsByScope(tx, "country_id", countryID)
		if err != nil {
			return err
		}
		return r.cleanupZeroPaymentsTx(tx, centerIDs)
	})
}

func (r *Repository) FinishAllCountryInProgress(countryID uint) error {
	return r.inTx(func(tx *gorm.DB) error {
		centerIDs, err := r.centerIDsByScope(tx, "country_id", countryID)
		if err != nil {
			return err
		}
		return r.engine.FinishAllInProgress(tx, centerIDs)
	})
}

func (r *Repository) centerIDsByScope(tx *gorm.DB, column string, refID uint) ([]uint, error) {
	var centers []ds.Center
	if err := tx.Where(column+" = ?", refID).Find(&centers).Error; err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(centers))
	for _, c := range centers {
		ids = append(ids, c.ID)
	}
	return ids, nil
}

// cleanupZeroPaymentsTx удаляет нулевые платежи центров охвата. Действие
// идемпотентно: повторный вызов не находит целей и ничего не меняет.
func (r *Repository) cleanupZeroPaymentsTx(tx *gorm.DB, centerIDs []uint) error {
	if len(centerIDs) == 0 {
		return nil
	}
	var payments []ds.Payment
	err := tx.Where("center_id IN ? AND amount = 0", centerIDs).Find(&payments).Error
	if err != nil {
		return err
	}
	return r.deletePaymentsTx(tx, payments)
}
