package repository

import (
	"time"

	"gorm.io/gorm"

	"backend/internal/app/apperr"
	"backend/internal/app/ds"
	"backend/internal/app/engine"
)

// Методы для работы с оценками

func (r *Repository) GetRatingByID(id uint) (*ds.Rating, error) {
	var rating ds.Rating
	err := r.db.Where("id = ?", id).First(&rating).Error
	if err != nil {
		return nil, notFoundOr(err, "оценка %d не найдена", id)
	}
	return &rating, nil
}

func (r *Repository) GetRatingByOrder(orderID uint) (*ds.Rating, error) {
	var rating ds.Rating
	err := r.db.Where("order_id = ?", orderID).First(&rating).Error
	if err != nil {
		return nil, notFoundOr(err, "у заказа %d нет оценки", orderID)
	}
	return &rating, nil
}

func (r *Repository) CreateRating(rating ds.Rating) (*ds.Rating, error) {
	err := r.inTx(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&ds.Order{}).Where("id = ?", rating.OrderID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperr.NotFound("заказ %d не найден", rating.OrderID)
		}
		if rating.RatingDate.IsZero() {
			rating.RatingDate = r.engine.Now()
		}

		err := tx.Create(&rating).Error
		if err != nil {
			return wrapWriteErr(err, "заказ уже оценён")
		}
		err = r.engine.React(tx, engine.Change{
			Entity:    "rating",
			Fields:    engine.AllTriggerFields("rating"),
			RatingIDs: []uint{rating.ID},
			OrderIDs:  []uint{rating.OrderID},
		})
		if err != nil {
			return err
		}
		if err := tx.Where("id = ?", rating.ID).First(&rating).Error; err != nil {
			return err
		}
		return r.engine.ValidateRating(&rating)
	})
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

type RatingUpdate struct {
	Score      *int
	Comment    *string
	RatingDate *time.Time
}

func (r *Repository) UpdateRating(id uint, upd RatingUpdate) (*ds.Rating, error) {
	var rating ds.Rating
	err := r.inTx(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&rating).Error; err != nil {
			return notFoundOr(err, "оценка %d не найдена", id)
		}

		change := engine.Change{
			Entity:    "rating",
			RatingIDs: []uint{id},
			OrderIDs:  []uint{rating.OrderID},
		}
		updates := map[string]interface{}{}
		if upd.Score != nil {
			updates["score"] = *upd.Score
			change.Fields = append(change.Fields, "score")
		}
		if upd.Comment != nil {
			updates["comment"] = *upd.Comment
		}
		if upd.RatingDate != nil {
			updates["rating_date"] = *upd.RatingDate
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&ds.Rating{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		if err := r.engine.React(tx, change); err != nil {
			return err
		}
		if err := tx.Where("id = ?", id).First(&rating).Error; err != nil {
			return err
		}
		return r.engine.ValidateRating(&rating)
	})
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *Repository) DeleteRating(id uint) error {
	return r.inTx(func(tx *gorm.DB) error {
		var rating ds.Rating
		if err := tx.Where("id = ?", id).First(&rating).Error; err != nil {
			return notFoundOr(err, "оценка %d не найдена", id)
		}
		if err := tx.Delete(&ds.Rating{}, id).Error; err != nil {
			return err
		}
		return r.engine.React(tx, engine.Change{
			Entity:   "rating",
			Fields:   engine.AllTriggerFields("rating"),
			OrderIDs: []uint{rating.OrderID},
		})
	})
}
