package repository

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"backend/internal/app/apperr"
	"backend/internal/app/ds"
	"backend/internal/app/engine"
)

// Методы для работы с заказами

func (r *Repository) GetOrderByID(id uint) (*ds.Order, error) {
	var order ds.Order
	err := r.db.Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, notFoundOr(err, "заказ %d не найден", id)
	}
	return &order, nil
}

func (r *Repository) GetAllOrders() ([]ds.Order, error) {
	var orders []ds.Order
	err := r.db.Order("order_date desc, id desc").Find(&orders).Error
	return orders, err
}

func (r *Repository) GetOrdersByCenter(centerID uint) ([]ds.Order, error) {
	var orders []ds.Order
	err := r.db.Where("center_id = ?", centerID).Order("order_date desc, id desc").Find(&orders).Error
	return orders, err
}

func (r *Repository) GetOrdersByCustomer(customerID uint) ([]ds.Order, error) {
	var orders []ds.Order
	err := r.db.Where("customer_id = ?", customerID).Order("order_date desc, id desc").Find(&orders).Error
	return orders, err
}

func (r *Repository) CreateOrder(order ds.Order) (*ds.Order, error) {
	err := r.inTx(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&ds.Center{}).Where("id = ?", order.CenterID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperr.NotFound("сервисный центр %d не найден", order.CenterID)
		}
		if err := tx.Model(&ds.Customer{}).Where("id = ?", order.CustomerID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperr.NotFound("клиент %d не найден", order.CustomerID)
		}

		if order.Number == "" {
			order.Number = "ORD-" + strings.ToUpper(uuid.NewString()[:8])
		}
		if order.OrderDate.IsZero() {
			order.OrderDate = r.engine.Now()
		}
		if order.State == "" {
			order.State = ds.OrderDraft
		}

		if err := tx.Create(&order).Error; err != nil {
			return wrapWriteErr(err, "номер заказа должен быть уникальным")
		}
		err := r.engine.React(tx, engine.Change{
			Entity:   "order",
			Fields:   engine.AllTriggerFields("order"),
			OrderIDs: []uint{order.ID},
		})
		if err != nil {
			return err
		}
		if err := tx.Where("id = ?", order.ID).First(&order).Error; err != nil {
			return err
		}
		return r.engine.ValidateOrder(&order)
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// OrderUpdate не принимает статус: статус меняется только действиями
// жизненного цикла.
type OrderUpdate struct {
	Number         *string
	CenterID       *uint
	CustomerID     *uint
	TechnicianID   *uint // 0 — снять мастера
	OrderDate      *time.Time
	Description    *string
	LaborFee       *float64
	DiscountAmount *float64
	IsWarranty     *bool
	WarrantyDays   *int
}

func (r *Repository) UpdateOrder(id uint, upd OrderUpdate) (*ds.Order, error) {
	var order ds.Order
	err := r.inTx(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&order).Error; err != nil {
			return notFoundOr(err, "заказ %d не найден", id)
		}

		change := engine.Change{Entity: "order", OrderIDs: []uint{id}}
		updates := map[string]interface{}{}
		if upd.Number != nil {
			updates["number"] = *upd.Number
		}
		if upd.CenterID != nil && *upd.CenterID != order.CenterID {
			var count int64
			if err := tx.Model(&ds.Center{}).Where("id = ?", *upd.CenterID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return apperr.NotFound("сервисный центр %d не найден", *upd.CenterID)
			}
			updates["center_id"] = *upd.CenterID
			change.Fields = append(change.Fields, "center_id")
			change.CenterIDs = append(change.CenterIDs, order.CenterID, *upd.CenterID)
		}
		if upd.CustomerID != nil && *upd.CustomerID != order.CustomerID {
			var count int64
			if err := tx.Model(&ds.Customer{}).Where("id = ?", *upd.CustomerID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return apperr.NotFound("клиент %d не найден", *upd.CustomerID)
			}
			updates["customer_id"] = *upd.CustomerID
			change.Fields = append(change.Fields, "customer_id")
			change.CustomerIDs = append(change.CustomerIDs, order.CustomerID, *upd.CustomerID)
		}
		if upd.TechnicianID != nil {
			change.Fields = append(change.Fields, "technician_id")
			if order.TechnicianID != nil {
				change.TechnicianIDs = append(change.TechnicianIDs, *order.TechnicianID)
			}
			if *upd.TechnicianID == 0 {
				updates["technician_id"] = nil
			} else {
				var count int64
				if err := tx.Model(&ds.Technician{}).Where("id = ?", *upd.TechnicianID).Count(&count).Error; err != nil {
					return err
				}
				if count == 0 {
					return apperr.NotFound("мастер %d не найден", *upd.TechnicianID)
				}
				updates["technician_id"] = *upd.TechnicianID
				change.TechnicianIDs = append(change.TechnicianIDs, *upd.TechnicianID)
			}
		}
		if upd.OrderDate != nil {
			updates["order_date"] = *upd.OrderDate
			change.Fields = append(change.Fields, "order_date")
		}
		if upd.Description != nil {
			updates["description"] = *upd.Description
		}
		if upd.LaborFee != nil {
			updates["labor_fee"] = *upd.LaborFee
			change.Fields = append(change.Fields, "labor_fee")
		}
		if upd.DiscountAmount != nil {
			updates["discount_amount"] = *upd.DiscountAmount
			change.Fields = append(change.Fields, "discount_amount")
		}
		if upd.IsWarranty != nil {
			updates["is_warranty"] = *upd.IsWarranty
		}
		if upd.WarrantyDays != nil {
			updates["warranty_days"] = *upd.WarrantyDays
		}
		if len(updates) == 0 {
			return nil
		}

		err := tx.Model(&ds.Order{}).Where("id = ?", id).Updates(updates).Error
		if err != nil {
			return wrapWriteErr(err, "номер заказа должен быть уникальным")
		}
		if err := r.engine.React(tx, change); err != nil {
			return err
		}
		if err := tx.Where("id = ?", id).First(&order).Error; err != nil {
			return err
		}
		return r.engine.ValidateOrder(&order)
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *Repository) DeleteOrder(id uint) error {
	return r.inTx(func(tx *gorm.DB) error {
		return r.deleteOrderTx(tx, id)
	})
}

// deleteOrderTx каскадно удаляет строки, платежи и оценки заказа, затем сам
// заказ, и пересчитывает агрегаты прежних владельцев.
func (r *Repository) deleteOrderTx(tx *gorm.DB, id uint) error {
	var order ds.Order
	if err := tx.Where("id = ?", id).First(&order).Error; err != nil {
		return notFoundOr(err, "заказ %d не найден", id)
	}

	if err := tx.Where("order_id = ?", id).Delete(&ds.OrderLine{}).Error; err != nil {
		return err
	}
	if err := tx.Where("order_id = ?", id).Delete(&ds.Payment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("order_id = ?", id).Delete(&ds.Rating{}).Error; err != nil {
		return err
	}
	if err := tx.Delete(&ds.Order{}, id).Error; err != nil {
		return err
	}

	change := engine.Change{
		Entity:      "order",
		Fields:      engine.AllTriggerFields("order"),
		OrderIDs:    []uint{id},
		CenterIDs:   []uint{order.CenterID},
		CustomerIDs: []uint{order.CustomerID},
	}
	if order.TechnicianID != nil {
		change.TechnicianIDs = append(change.TechnicianIDs, *order.TechnicianID)
	}
	if order.DistrictID != nil {
		change.DistrictIDs = append(change.DistrictIDs, *order.DistrictID)
	}
	if order.RegionID != nil {
		change.RegionIDs = append(change.RegionIDs, *order.RegionID)
	}
	if order.CountryID != nil {
		change.CountryIDs = append(change.CountryIDs, *order.CountryID)
	}
	return r.engine.React(tx, change)
}

// Действия жизненного цикла заказа

func (r *Repository) ReceiveOrder(id uint) error {
	return r.orderAction(id, func(tx *gorm.DB, o *ds.Order) error {
		return r.engine.ReceiveOrder(tx, o.ID)
	})
}

func (r *Repository) DiagnoseOrder(id uint) error {
	return r.orderAction(id, func(tx *gorm.DB, o *ds.Order) error {
		return r.engine.DiagnoseOrder(tx, o.ID)
	})
}

func (r *Repository) StartOrder(id uint) error {
	return r.orderAction(id, func(tx *gorm.DB, o *ds.Order) error {
		return r.engine.StartOrder(tx, o.ID)
	})
}

func (r *Repository) FinishOrder(id uint) error {
	return r.orderAction(id, func(tx *gorm.DB, o *ds.Order) error {
		return r.engine.FinishOrder(tx, o)
	})
}

func (r *Repository) CancelOrder(id uint) error {
	return r.orderAction(id, func(tx *gorm.DB, o *ds.Order) error {
		return r.engine.CancelOrder(tx, o.ID)
	})
}

func (r *Repository) CloseOrderIfPaid(id uint) error {
	return r.orderAction(id, func(tx *gorm.DB, o *ds.Order) error {
		return r.engine.CloseOrderIfPaid(tx, o)
	})
}

func (r *Repository) orderAction(id uint, action func(tx *gorm.DB, o *ds.Order) error) error {
	return r.inTx(func(tx *gorm.DB) error {
		var order ds.Order
		if err := tx.Where("id = ?", id).First(&order).Error; err != nil {
			return notFoundOr(err, "заказ %d не найден", id)
		}
		return action(tx, &order)
	})
}

// CleanupOrderZeroPayments удаляет нулевые платежи одного заказа.
func (r *Repository) CleanupOrderZeroPayments(orderID uint) error {
	return r.inTx(func(tx *gorm.DB) error {
		var payments []ds.Payment
		err := tx.Where("order_id = ? AND amount = 0", orderID).Find(&payments).Error
		if err != nil {
			return err
		}
		return r.deletePaymentsTx(tx, payments)
	})
}

// Методы для работы со строками заказа

func (r *Repository) GetOrderLines(orderID uint) ([]ds.OrderLine, error) {
	var lines []ds.OrderLine
	err := r.db.Where("order_id = ?", orderID).Order("id").Find(&lines).Error
	return lines, err
}

func (r *Repository) CreateOrderLine(line ds.OrderLine) (*ds.OrderLine, error) {
	err := r.inTx(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&ds.Order{}).Where("id = ?", line.OrderID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperr.NotFound("заказ %d не найден", line.OrderID)
		}
		if err := tx.Model(&ds.Part{}).Where("id = ?", line.PartID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperr.NotFound("деталь %d не найдена", line.PartID)
		}
		if line.Quantity == 0 {
			line.Quantity = 1
		}

		if err := tx.Create(&line).Error; err != nil {
			return err
		}
		err := r.engine.React(tx, engine.Change{
			Entity:   "order_line",
			Fields:   engine.AllTriggerFields("order_line"),
			LineIDs:  []uint{line.ID},
			OrderIDs: []uint{line.OrderID},
		})
		if err != nil {
			return err
		}
		return tx.Where("id = ?", line.ID).First(&line).Error
	})
	if err != nil {
		return nil, err
	}
	return &line, nil
}

type OrderLineUpdate struct {
	PartID      *uint
	Description *string
	Note        *string
	Quantity    *int
	UnitPrice   *float64
}

func (r *Repository) UpdateOrderLine(id uint, upd OrderLineUpdate) (*ds.OrderLine, error) {
	var line ds.OrderLine
	err := r.inTx(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&line).Error; err != nil {
			return notFoundOr(err, "строка заказа %d не найдена", id)
		}

		change := engine.Change{
			Entity:   "order_line",
			LineIDs:  []uint{id},
			OrderIDs: []uint{line.OrderID},
		}
		updates := map[string]interface{}{}
		if upd.PartID != nil {
			var count int64
			if err := tx.Model(&ds.Part{}).Where("id = ?", *upd.PartID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return apperr.NotFound("деталь %d не найдена", *upd.PartID)
			}
			updates["part_id"] = *upd.PartID
		}
		if upd.Description != nil {
			updates["description"] = *upd.Description
		}
		if upd.Note != nil {
			updates["note"] = *upd.Note
		}
		if upd.Quantity != nil {
			updates["quantity"] = *upd.Quantity
			change.Fields = append(change.Fields, "quantity")
		}
		if upd.UnitPrice != nil {
			updates["unit_price"] = *upd.UnitPrice
			change.Fields = append(change.Fields, "unit_price")
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&ds.OrderLine{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		if err := r.engine.React(tx, change); err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&line).Error
	})
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *Repository) DeleteOrderLine(id uint) error {
	return r.inTx(func(tx *gorm.DB) error {
		var line ds.OrderLine
		if err := tx.Where("id = ?", id).First(&line).Error; err != nil {
			return notFoundOr(err, "строка заказа %d не найдена", id)
		}
		if err := tx.Delete(&ds.OrderLine{}, id).Error; err != nil {
			return err
		}
		return r.engine.React(tx, engine.Change{
			Entity:   "order_line",
			Fields:   engine.AllTriggerFields("order_line"),
			OrderIDs: []uint{line.OrderID},
		})
	})
}
