package repository

import (
	"gorm.io/gorm"

	"backend/internal/app/apperr"
	"backend/internal/app/ds"
	"backend/internal/app/engine"
)

// Методы для работы с районами

func (r *Repository) GetDistrictByID(id uint) (*ds.District, error) {
	var district ds.District
	err := r.db.Where("id = ?", id).First(&district).Error
	if err != nil {
		return nil, notFoundOr(err, "район %d не найден", id)
	}
	return &district, nil
}

func (r *Repository) GetDistrictsByRegion(regionID uint) ([]ds.District, error) {
	var districts []ds.District
	err := r.db.Where("region_id = ?", regionID).Order("name").Find(&districts).Error
	return districts, err
}

func (r *Repository) CreateDistrict(district ds.District) (*ds.District, error) {
	district.IsActive = true
	district.CountryID = nil // выводится из региона при пересчёте
	err := r.inTx(func(tx *gorm.DB) error {
		err := tx.Create(&district).Error
		if err != nil {
			return wrapWriteErr(err, "код района должен быть уникальным")
		}

		change := engine.Change{
			Entity:      "district",
			Fields:      engine.AllTriggerFields("district"),
			DistrictIDs: []uint{district.ID},
		}
		if district.RegionID != nil {
			change.RegionIDs = append(change.RegionIDs, *district.RegionID)
		}
		if err := r.engine.React(tx, change); err != nil {
			return err
		}
		return tx.Where("id = ?", district.ID).First(&district).Error
	})
	if err != nil {
		return nil, err
	}
	return &district, nil
}

type DistrictUpdate struct {
	Name       *string
	Code       *string
	RegionID   *uint // 0 — отвязать от региона
	Population *int64
	AreaKm2    *float64
	Latitude   *float64
	Longitude  *float64
	IsActive   *bool
}

func (r *Repository) UpdateDistrict(id uint, upd DistrictUpdate) (*ds.District, error) {
	var district ds.District
	err := r.inTx(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&district).Error; err != nil {
			return notFoundOr(err, "район %d не найден", id)
		}

		change := engine.Change{Entity: "district", DistrictIDs: []uint{id}}
		updates := map[string]interface{}{}
		if upd.Name != nil {
			updates["name"] = *upd.Name
		}
		if upd.Code != nil {
			updates["code"] = *upd.Code
		}
		if upd.RegionID != nil {
			change.Fields = append(change.Fields, "region_id")
			if district.RegionID != nil {
				change.RegionIDs = append(change.RegionIDs, *district.RegionID)
			}
			if *upd.RegionID == 0 {
				updates["region_id"] = nil
			} else {
				updates["region_id"] = *upd.RegionID
				change.RegionIDs = append(change.RegionIDs, *upd.RegionID)
			}
		}
		if upd.Population != nil {
			updates["population"] = *upd.Population
		}
		if upd.AreaKm2 != nil {
			updates["area_km2"] = *upd.AreaKm2
		}
		if upd.Latitude != nil {
			updates["latitude"] = *upd.Latitude
		}
		if upd.Longitude != nil {
			updates["longitude"] = *upd.Longitude
		}
		if upd.IsActive != nil {
			updates["is_active"] = *upd.IsActive
		}
		if len(updates) == 0 {
			return nil
		}

		err := tx.Model(&ds.District{}).Where("id = ?", id).Updates(updates).Error
		if err != nil {
			return wrapWriteErr(err, "код района должен быть уникальным")
		}
		if err := r.engine.React(tx, change); err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&district).Error
	})
	if err != nil {
		return nil, err
	}
	return &district, nil
}

// DeleteDistrict отвязывает центры района и удаляет район.
func (r *Repository) DeleteDistrict(id uint) error {
	return r.inTx(func(tx *gorm.DB) error {
		var district ds.District
		if err := tx.Where("id = ?", id).First(&district).Error; err != nil {
			return notFoundOr(err, "район %d не найден", id)
		}

		if err := r.detachCentersTx(tx, "district_id", id); err != nil {
			return err
		}

		if err := tx.Delete(&ds.District{}, id).Error; err != nil {
			return err
		}

		change := engine.Change{
			Entity:      "district",
			Fields:      engine.AllTriggerFields("district"),
			DistrictIDs: []uint{id},
		}
		if district.RegionID != nil {
			change.RegionIDs = append(change.RegionIDs, *district.RegionID)
		}
		if district.CountryID != nil {
			change.CountryIDs = append(change.CountryIDs, *district.CountryID)
		}
		return r.engine.React(tx, change)
	})
}

// Действия над районом

func (r *Repository) ActivateDistrict(id uint) error {
	return r.setDistrictActive(id, true)
}

func (r *Repository) DeactivateDistrict(id uint) error {
	return r.setDistrictActive(id, false)
}

func (r *Repository) setDistrictActive(id uint, active bool) error {
	result := r.db.Model(&ds.District{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("район %d не найден", id)
	}
	return nil
}

func (r *Repository) DeactivateIdleDistrictCenters(districtID uint) error {
	return r.inTx(func(tx *gorm.DB) error {
		centerIDs, err := r.centerIDsByScope(tx, "district_id", districtID)
		if err != nil {
			return err
		}
		return r.engine.DeactivateIdleCenters(tx, centerIDs)
	})
}

func (r *Repository) CleanupDistrictZeroPayments(districtID uint) error {
	return r.inTx(func(tx *gorm.DB) error {
		centerIDs, err := r.centerIDsByScope(tx, "district_id", districtID)
		if err != nil {
			return err
		}
		return r.cleanupZeroPaymentsTx(tx, centerIDs)
	})
}

func (r *Repository) FinishAllDistrictInProgress(districtID uint) error {
	return r.inTx(func(tx *gorm.DB) error {
		centerIDs, err := r.centerIDsByScope(tx, "district_id", districtID)
		if err != nil {
			return err
		}
		return r.engine.FinishAllInProgress(tx, centerIDs)
	})
}
