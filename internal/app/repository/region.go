package repository

import (
	"gorm.io/gorm"

	"backend/internal/app/apperr"
	"backend/internal/app/ds"
	"backend/internal/app/engine"
)

// Методы для работы с регионами

func (r *Repository) GetRegionByID(id uint) (*ds.Region, error) {
	var region ds.Region
	err := r.db.Where("id = ?", id).First(&region).Error
	if err != nil {
		return nil, notFoundOr(err, "регион %d не найден", id)
	}
	return &region, nil
}

func (r *Repository) GetRegionsByCountry(countryID uint) ([]ds.Region, error) {
	var regions []ds.Region
	err := r.db.Where("country_id = ?", countryID).Order("name").Find(&regions).Error
	return regions, err
}

func (r *Repository) CreateRegion(region ds.Region) (*ds.Region, error) {
	region.IsActive = true
	err := r.inTx(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&ds.Country{}).Where("id = ?", region.CountryID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperr.NotFound("страна %d не найдена", region.CountryID)
		}

		err := tx.Create(&region).Error
		if err != nil {
			return wrapWriteErr(err, "название и код региона должны быть уникальными")
		}

		err = r.engine.React(tx, engine.Change{
			Entity:     "region",
			Fields:     engine.AllTriggerFields("region"),
			RegionIDs:  []uint{region.ID},
			CountryIDs: []uint{region.CountryID},
		})
		if err != nil {
			return err
		}
		return r.engine.ValidateRegion(&region)
	})
	if err != nil {
		return nil, err
	}
	return &region, nil
}

type RegionUpdate struct {
	Name       *string
	Code       *string
	CountryID  *uint
	Population *int64
	AreaKm2    *float64
	Latitude   *float64
	Longitude  *float64
	IsActive   *bool
}

func (r *Repository) UpdateRegion(id uint, upd RegionUpdate) (*ds.Region, error) {
	var region ds.Region
	err := r.inTx(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&region).Error; err != nil {
			return notFoundOr(err, "регион %d не найден", id)
		}

		change := engine.Change{Entity: "region", RegionIDs: []uint{id}}
		updates := map[string]interface{}{}
		if upd.Name != nil {
			updates["name"] = *upd.Name
		}
		if upd.Code != nil {
			updates["code"] = *upd.Code
		}
		if upd.CountryID != nil && *upd.CountryID != region.CountryID {
			updates["country_id"] = *upd.CountryID
			change.Fields = append(change.Fields, "country_id")
			change.CountryIDs = append(change.CountryIDs, region.CountryID, *upd.CountryID)
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

		err := tx.Model(&ds.Region{}).Where("id = ?", id).Updates(updates).Error
		if err != nil {
			return wrapWriteErr(err, "название и код региона должны быть уникальными")
		}
		if err := r.engine.React(tx, change); err != nil {
			return err
		}
		if err := tx.Where("id = ?", id).First(&region).Error; err != nil {
			return err
		}
		return r.engine.ValidateRegion(&region)
	})
	if err != nil {
		return nil, err
	}
	return &region, nil
}

func (r *Repository) DeleteRegion(id uint) error {
	return r.inTx(func(tx *gorm.DB) error {
		return r.deleteRegionTx(tx, id)
	})
}

// deleteRegionTx отвязывает районы и центры региона и удаляет сам регион.
func (r *Repository) deleteRegionTx(tx *gorm.DB, id uint) error {
	var region ds.Region
	if err := tx.Where("id = ?", id).First(&region).Error; err != nil {
		return notFoundOr(err, "регион %d не найден", id)
	}

	var districts []ds.District
	if err := tx.Where("region_id = ?", id).Find(&districts).Error; err != nil {
		return err
	}
	if len(districts) > 0 {
		districtIDs := make([]uint, 0, len(districts))
		for _, d := range districts {
			districtIDs = append(districtIDs, d.ID)
		}
		err := tx.Model(&ds.District{}).Where("id IN ?", districtIDs).
			Update("region_id", nil).Error
		if err != nil {
			return err
		}
		err = r.engine.React(tx, engine.Change{
			Entity:      "district",
			Fields:      []string{"region_id"},
			DistrictIDs: districtIDs,
			CountryIDs:  []uint{region.CountryID},
		})
		if err != nil {
			return err
		}
	}

	if err := r.detachCentersTx(tx, "region_id", id); err != nil {
		return err
	}

	if err := tx.Delete(&ds.Region{}, id).Error; err != nil {
		return err
	}
	return r.engine.React(tx, engine.Change{
		Entity:     "region",
		Fields:     engine.AllTriggerFields("region"),
		RegionIDs:  []uint{id},
		CountryIDs: []uint{region.CountryID},
	})
}

// Действия над регионом

func (r *Repository) ActivateRegion(id uint) error {
	return r.setRegionActive(id, true)
}

func (r *Repository) DeactivateRegion(id uint) error {
	return r.setRegionActive(id, false)
}

func (r *Repository) setRegionActive(id uint, active bool) error {
	result := r.db.Model(&ds.Region{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("регион %d не найден", id)
	}
	return nil
}

// DeactivateIdleRegionCenters деактивирует центры региона без заказов в работе.
func (r *Repository) DeactivateIdleRegionCenters(regionID uint) error {
	return r.inTx(func(tx *gorm.DB) error {
		centerIDs, err := r.centerIDsByScope(tx, "region_id", regionID)
		if err != nil {
			return err
		}
		return r.engine.DeactivateIdleCenters(tx, centerIDs)
	})
}

func (r *Repository) CleanupRegionZeroPayments(regionID uint) error {
	return r.inTx(func(tx *gorm.DB) error {
		centerIDs, err := r.centerIDsByScope(tx, "region_id", regionID)
		if err != nil {
			return err
		}
		return r.cleanupZeroPaymentsTx(tx, centerIDs)
	})
}

func (r *Repository) FinishAllRegionInProgress(regionID uint) error {
	return r.inTx(func(tx *gorm.DB) error {
		centerIDs, err := r.centerIDsByScope(tx, "region_id", regionID)
		if err != nil {
			return err
		}
		return r.engine.FinishAllInProgress(tx, centerIDs)
	})
}
