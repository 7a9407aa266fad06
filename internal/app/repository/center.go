package repository

import (
	"gorm.io/gorm"

	"backend/internal/app/apperr"
	"backend/internal/app/ds"
	"backend/internal/app/engine"
)

// Методы для работы с сервисными центрами

func (r *Repository) GetCenterByID(id uint) (*ds.Center, error) {
	var center ds.Center
	err := r.db.Where("id = ?", id).First(&center).Error
	if err != nil {
		return nil, notFoundOr(err, "сервисный центр %d не найден", id)
	}
	return &center, nil
}

func (r *Repository) GetAllCenters() ([]ds.Center, error) {
	var centers []ds.Center
	err := r.db.Order("name").Find(&centers).Error
	return centers, err
}

// Поиск центров по названию
func (r *Repository) SearchCentersByName(name string) ([]ds.Center, error) {
	var centers []ds.Center
	err := r.db.Where("name LIKE ?", "%"+name+"%").Order("name").Find(&centers).Error
	return centers, err
}

func (r *Repository) CreateCenter(center ds.Center) (*ds.Center, error) {
	center.IsActive = true
	err := r.inTx(func(tx *gorm.DB) error {
		err := tx.Create(&center).Error
		if err != nil {
			return wrapWriteErr(err, "название и код центра должны быть уникальными")
		}
		err = r.engine.React(tx, centerChange(&center, engine.AllTriggerFields("center")))
		if err != nil {
			return err
		}
		return tx.Where("id = ?", center.ID).First(&center).Error
	})
	if err != nil {
		return nil, err
	}
	return &center, nil
}

func centerChange(center *ds.Center, fields []string) engine.Change {
	ch := engine.Change{
		Entity:    "center",
		Fields:    fields,
		CenterIDs: []uint{center.ID},
	}
	if center.CountryID != nil {
		ch.CountryIDs = append(ch.CountryIDs, *center.CountryID)
	}
	if center.RegionID != nil {
		ch.RegionIDs = append(ch.RegionIDs, *center.RegionID)
	}
	if center.DistrictID != nil {
		ch.DistrictIDs = append(ch.DistrictIDs, *center.DistrictID)
	}
	return ch
}

type CenterUpdate struct {
	Name           *string
	Code           *string
	CountryID      *uint // 0 — отвязать
	RegionID       *uint
	DistrictID     *uint
	Address        *string
	Latitude       *float64
	Longitude      *float64
	Phone          *string
	Email          *string
	ManagerName    *string
	CapacityPerDay *int
	IsActive       *bool
}

func (r *Repository) UpdateCenter(id uint, upd CenterUpdate) (*ds.Center, error) {
	var center ds.Center
	err := r.inTx(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&center).Error; err != nil {
			return notFoundOr(err, "сервисный центр %d не найден", id)
		}

		change := centerChange(&center, nil)
		updates := map[string]interface{}{}
		if upd.Name != nil {
			updates["name"] = *upd.Name
		}
		if upd.Code != nil {
			updates["code"] = *upd.Code
		}
		if upd.CountryID != nil {
			updates["country_id"] = nullableRef(*upd.CountryID)
			change.Fields = append(change.Fields, "country_id")
			change.CountryIDs = append(change.CountryIDs, *upd.CountryID)
		}
		if upd.RegionID != nil {
			updates["region_id"] = nullableRef(*upd.RegionID)
			change.Fields = append(change.Fields, "region_id")
			change.RegionIDs = append(change.RegionIDs, *upd.RegionID)
		}
		if upd.DistrictID != nil {
			updates["district_id"] = nullableRef(*upd.DistrictID)
			change.Fields = append(change.Fields, "district_id")
			change.DistrictIDs = append(change.DistrictIDs, *upd.DistrictID)
		}
		if upd.Address != nil {
			updates["address"] = *upd.Address
		}
		if upd.Latitude != nil {
			updates["latitude"] = *upd.Latitude
		}
		if upd.Longitude != nil {
			updates["longitude"] = *upd.Longitude
		}
		if upd.Phone != nil {
			updates["phone"] = *upd.Phone
		}
		if upd.Email != nil {
			updates["email"] = *upd.Email
		}
		if upd.ManagerName != nil {
			updates["manager_name"] = *upd.ManagerName
		}
		if upd.CapacityPerDay != nil {
			updates["capacity_per_day"] = *upd.CapacityPerDay
			change.Fields = append(change.Fields, "capacity_per_day")
		}
		if upd.IsActive != nil {
			updates["is_active"] = *upd.IsActive
		}
		if len(updates) == 0 {
			return nil
		}

		err := tx.Model(&ds.Center{}).Where("id = ?", id).Updates(updates).Error
		if err != nil {
			return wrapWriteErr(err, "название и код центра должны быть уникальными")
		}
		if err := r.engine.React(tx, change); err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&center).Error
	})
	if err != nil {
		return nil, err
	}
	return &center, nil
}

// nullableRef переводит нулевой id в NULL
func nullableRef(id uint) interface{} {
	if id == 0 {
		return nil
	}
	return id
}

// SetCenterPhoto сохраняет имя файла фотографии центра (файл уже в MinIO).
func (r *Repository) SetCenterPhoto(id uint, filename string) error {
	result := r.db.Model(&ds.Center{}).Where("id = ?", id).Update("photo_url", filename)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("сервисный центр %d не найден", id)
	}
	return nil
}

// DeleteCenter запрещён, пока у центра есть заказы; мастера отвязываются.
func (r *Repository) DeleteCenter(id uint) error {
	return r.inTx(func(tx *gorm.DB) error {
		var center ds.Center
		if err := tx.Where("id = ?", id).First(&center).Error; err != nil {
			return notFoundOr(err, "сервисный центр %d не найден", id)
		}

		var orderCount int64
		if err := tx.Model(&ds.Order{}).Where("center_id = ?", id).Count(&orderCount).Error; err != nil {
			return err
		}
		if orderCount > 0 {
			return apperr.Referential("центр нельзя удалить: на него ссылаются заказы")
		}

		var techs []ds.Technician
		if err := tx.Where("center_id = ?", id).Find(&techs).Error; err != nil {
			return err
		}
		if len(techs) > 0 {
			techIDs := make([]uint, 0, len(techs))
			for _, t := range techs {
				techIDs = append(techIDs, t.ID)
			}
			err := tx.Model(&ds.Technician{}).Where("id IN ?", techIDs).
				Update("center_id", nil).Error
			if err != nil {
				return err
			}
			err = r.engine.React(tx, engine.Change{
				Entity:        "technician",
				Fields:        []string{"center_id"},
				TechnicianIDs: techIDs,
				CenterIDs:     []uint{id},
			})
			if err != nil {
				return err
			}
		}

		if err := tx.Delete(&ds.Center{}, id).Error; err != nil {
			return err
		}
		return r.engine.React(tx, centerChange(&center, engine.AllTriggerFields("center")))
	})
}

// Действия над центром

// ActivateCenter включает центр безусловно.
func (r *Repository) ActivateCenter(id uint) error {
	result := r.db.Model(&ds.Center{}).Where("id = ?", id).Update("is_active", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("сервисный центр %d не найден", id)
	}
	return nil
}

// MarkCenterInactiveIfIdle деактивирует центр без заказов в работе.
func (r *Repository) MarkCenterInactiveIfIdle(id uint) error {
	return r.inTx(func(tx *gorm.DB) error {
		err := r.engine.MarkCenterInactiveIfIdle(tx, id)
		return notFoundOr(err, "сервисный центр %d не найден", id)
	})
}

func (r *Repository) CleanupCenterZeroPayments(centerID uint) error {
	return r.inTx(func(tx *gorm.DB) error {
		return r.cleanupZeroPaymentsTx(tx, []uint{centerID})
	})
}

func (r *Repository) FinishAllCenterInProgress(centerID uint) error {
	return r.inTx(func(tx *gorm.DB) error {
		return r.engine.FinishAllInProgress(tx, []uint{centerID})
	})
}
