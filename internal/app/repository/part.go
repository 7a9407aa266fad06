package repository

import (
	"gorm.io/gorm"

	"backend/internal/app/apperr"
	"backend/internal/app/ds"
)

// Методы для работы со справочником деталей

func (r *Repository) GetPartByID(id uint) (*ds.Part, error) {
	var part ds.Part
	err := r.db.Where("id = ?", id).First(&part).Error
	if err != nil {
		return nil, notFoundOr(err, "деталь %d не найдена", id)
	}
	return &part, nil
}

func (r *Repository) GetAllParts() ([]ds.Part, error) {
	var parts []ds.Part
	err := r.db.Order("name").Find(&parts).Error
	return parts, err
}

func (r *Repository) CreatePart(part ds.Part) (*ds.Part, error) {
	part.IsActive = true
	err := r.db.Create(&part).Error
	if err != nil {
		return nil, wrapWriteErr(err, "код детали должен быть уникальным")
	}
	return &part, nil
}

type PartUpdate struct {
	Name        *string
	Code        *string
	Description *string
	IsActive    *bool
}

func (r *Repository) UpdatePart(id uint, upd PartUpdate) (*ds.Part, error) {
	var part ds.Part
	err := r.inTx(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&part).Error; err != nil {
			return notFoundOr(err, "деталь %d не найдена", id)
		}

		updates := map[string]interface{}{}
		if upd.Name != nil {
			updates["name"] = *upd.Name
		}
		if upd.Code != nil {
			updates["code"] = *upd.Code
		}
		if upd.Description != nil {
			updates["description"] = *upd.Description
		}
		if upd.IsActive != nil {
			updates["is_active"] = *upd.IsActive
		}
		if len(updates) == 0 {
			return nil
		}
		err := tx.Model(&ds.Part{}).Where("id = ?", id).Updates(updates).Error
		if err != nil {
			return wrapWriteErr(err, "код детали должен быть уникальным")
		}
		return tx.Where("id = ?", id).First(&part).Error
	})
	if err != nil {
		return nil, err
	}
	return &part, nil
}

// DeletePart запрещён, пока на деталь ссылаются строки заказов.
func (r *Repository) DeletePart(id uint) error {
	return r.inTx(func(tx *gorm.DB) error {
		var part ds.Part
		if err := tx.Where("id = ?", id).First(&part).Error; err != nil {
			return notFoundOr(err, "деталь %d не найдена", id)
		}

		var lineCount int64
		if err := tx.Model(&ds.OrderLine{}).Where("part_id = ?", id).Count(&lineCount).Error; err != nil {
			return err
		}
		if lineCount > 0 {
			return apperr.Referential("деталь нельзя удалить: на неё ссылаются строки заказов")
		}
		return tx.Delete(&ds.Part{}, id).Error
	})
}

func (r *Repository) ActivatePart(id uint) error {
	return r.setPartActive(id, true)
}

func (r *Repository) DeactivatePart(id uint) error {
	return r.setPartActive(id, false)
}

func (r *Repository) setPartActive(id uint, active bool) error {
	result := r.db.Model(&ds.Part{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("деталь %d не найдена", id)
	}
	return nil
}
