package repository

import (
	"time"

	"gorm.io/gorm"

	"backend/internal/app/apperr"
	"backend/internal/app/ds"
	"backend/internal/app/engine"
)

// Методы для работы с мастерами

func (r *Repository) GetTechnicianByID(id uint) (*ds.Technician, error) {
	var tech ds.Technician
	err := r.db.Where("id = ?", id).First(&tech).Error
	if err != nil {
		return nil, notFoundOr(err, "мастер %d не найден", id)
	}
	return &tech, nil
}

func (r *Repository) GetTechniciansByCenter(centerID uint) ([]ds.Technician, error) {
	var techs []ds.Technician
	err := r.db.Where("center_id = ?", centerID).Order("name").Find(&techs).Error
	return techs, err
}

func (r *Repository) CreateTechnician(tech ds.Technician) (*ds.Technician, error) {
	tech.IsActive = true
	if tech.CapacityPerDay == 0 {
		tech.CapacityPerDay = 1
	}
	err := r.inTx(func(tx *gorm.DB) error {
		if tech.CenterID != nil {
			var count int64
			if err := tx.Model(&ds.Center{}).Where("id = ?", *tech.CenterID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return apperr.NotFound("сервисный центр %d не найден", *tech.CenterID)
			}
		}
		if err := tx.Create(&tech).Error; err != nil {
			return err
		}

		change := engine.Change{
			Entity:        "technician",
			Fields:        engine.AllTriggerFields("technician"),
			TechnicianIDs: []uint{tech.ID},
		}
		if tech.CenterID != nil {
			change.CenterIDs = append(change.CenterIDs, *tech.CenterID)
		}
		if err := r.engine.React(tx, change); err != nil {
			return err
		}
		return tx.Where("id = ?", tech.ID).First(&tech).Error
	})
	if err != nil {
		return nil, err
	}
	return &tech, nil
}

type TechnicianUpdate struct {
	Name           *string
	Code           *string
	CenterID       *uint // 0 — отвязать от центра
	Phone          *string
	Email          *string
	Specialty      *string
	HireDate       *time.Time
	CapacityPerDay *int
	IsActive       *bool
}

func (r *Repository) UpdateTechnician(id uint, upd TechnicianUpdate) (*ds.Technician, error) {
	var tech ds.Technician
	err := r.inTx(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&tech).Error; err != nil {
			return notFoundOr(err, "мастер %d не найден", id)
		}

		change := engine.Change{Entity: "technician", TechnicianIDs: []uint{id}}
		updates := map[string]interface{}{}
		if upd.Name != nil {
			updates["name"] = *upd.Name
		}
		if upd.Code != nil {
			updates["code"] = *upd.Code
		}
		if upd.CenterID != nil {
			change.Fields = append(change.Fields, "center_id")
			if tech.CenterID != nil {
				change.CenterIDs = append(change.CenterIDs, *tech.CenterID)
			}
			if *upd.CenterID == 0 {
				updates["center_id"] = nil
			} else {
				var count int64
				if err := tx.Model(&ds.Center{}).Where("id = ?", *upd.CenterID).Count(&count).Error; err != nil {
					return err
				}
				if count == 0 {
					return apperr.NotFound("сервисный центр %d не найден", *upd.CenterID)
				}
				updates["center_id"] = *upd.CenterID
				change.CenterIDs = append(change.CenterIDs, *upd.CenterID)
			}
		}
		if upd.Phone != nil {
			updates["phone"] = *upd.Phone
		}
		if upd.Email != nil {
			updates["email"] = *upd.Email
		}
		if upd.Specialty != nil {
			updates["specialty"] = *upd.Specialty
		}
		if upd.HireDate != nil {
			updates["hire_date"] = *upd.HireDate
		}
		if upd.CapacityPerDay != nil {
			updates["capacity_per_day"] = *upd.CapacityPerDay
		}
		if upd.IsActive != nil {
			updates["is_active"] = *upd.IsActive
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&ds.Technician{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		if err := r.engine.React(tx, change); err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&tech).Error
	})
	if err != nil {
		return nil, err
	}
	return &tech, nil
}

// DeleteTechnician снимает мастера с его заказов и удаляет запись.
func (r *Repository) DeleteTechnician(id uint) error {
	return r.inTx(func(tx *gorm.DB) error {
		var tech ds.Technician
		if err := tx.Where("id = ?", id).First(&tech).Error; err != nil {
			return notFoundOr(err, "мастер %d не найден", id)
		}

		var orders []ds.Order
		if err := tx.Where("technician_id = ?", id).Find(&orders).Error; err != nil {
			return err
		}
		if len(orders) > 0 {
			orderIDs := make([]uint, 0, len(orders))
			for _, o := range orders {
				orderIDs = append(orderIDs, o.ID)
			}
			err := tx.Model(&ds.Order{}).Where("id IN ?", orderIDs).
				Update("technician_id", nil).Error
			if err != nil {
				return err
			}
			err = r.engine.React(tx, engine.Change{
				Entity:   "order",
				Fields:   []string{"technician_id"},
				OrderIDs: orderIDs,
			})
			if err != nil {
				return err
			}
		}

		if err := tx.Delete(&ds.Technician{}, id).Error; err != nil {
			return err
		}

		change := engine.Change{
			Entity:        "technician",
			Fields:        engine.AllTriggerFields("technician"),
			TechnicianIDs: []uint{id},
		}
		if tech.CenterID != nil {
			change.CenterIDs = append(change.CenterIDs, *tech.CenterID)
		}
		return r.engine.React(tx, change)
	})
}

// Действия над мастером

func (r *Repository) ActivateTechnician(id uint) error {
	return r.setTechnicianActive(id, true)
}

func (r *Repository) DeactivateTechnician(id uint) error {
	return r.setTechnicianActive(id, false)
}

func (r *Repository) setTechnicianActive(id uint, active bool) error {
	result := r.db.Model(&ds.Technician{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("мастер %d не найден", id)
	}
	return nil
}
