package repository

import (
	"gorm.io/gorm"

	"backend/internal/app/apperr"
	"backend/internal/app/ds"
)

// Методы для работы с клиентами

func (r *Repository) GetCustomerByID(id uint) (*ds.Customer, error) {
	var customer ds.Customer
	err := r.db.Where("id = ?", id).First(&customer).Error
	if err != nil {
		return nil, notFoundOr(err, "клиент %d не найден", id)
	}
	return &customer, nil
}

func (r *Repository) GetAllCustomers() ([]ds.Customer, error) {
	var customers []ds.Customer
	err := r.db.Order("name").Find(&customers).Error
	return customers, err
}

func (r *Repository) CreateCustomer(customer ds.Customer) (*ds.Customer, error) {
	err := r.db.Create(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

type CustomerUpdate struct {
	Name    *string
	Code    *string
	Phone   *string
	Mobile  *string
	Email   *string
	Address *string
}

func (r *Repository) UpdateCustomer(id uint, upd CustomerUpdate) (*ds.Customer, error) {
	var customer ds.Customer
	err := r.inTx(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&customer).Error; err != nil {
			return notFoundOr(err, "клиент %d не найден", id)
		}

		updates := map[string]interface{}{}
		if upd.Name != nil {
			updates["name"] = *upd.Name
		}
		if upd.Code != nil {
			updates["code"] = *upd.Code
		}
		if upd.Phone != nil {
			updates["phone"] = *upd.Phone
		}
		if upd.Mobile != nil {
			updates["mobile"] = *upd.Mobile
		}
		if upd.Email != nil {
			updates["email"] = *upd.Email
		}
		if upd.Address != nil {
			updates["address"] = *upd.Address
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&ds.Customer{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&customer).Error
	})
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// DeleteCustomer запрещён, пока у клиента есть заказы.
func (r *Repository) DeleteCustomer(id uint) error {
	return r.inTx(func(tx *gorm.DB) error {
		var customer ds.Customer
		if err := tx.Where("id = ?", id).First(&customer).Error; err != nil {
			return notFoundOr(err, "клиент %d не найден", id)
		}

		var orderCount int64
		if err := tx.Model(&ds.Order{}).Where("customer_id = ?", id).Count(&orderCount).Error; err != nil {
			return err
		}
		if orderCount > 0 {
			return apperr.Referential("клиента нельзя удалить: на него ссылаются заказы")
		}
		return tx.Delete(&ds.Customer{}, id).Error
	})
}

// Действия над клиентом

// CloseCustomerDebt создаёт по подтверждённому платежу на остаток долга
// каждого непогашенного заказа клиента. Повторный вызов не находит долгов.
func (r *Repository) CloseCustomerDebt(id uint) error {
	return r.inTx(func(tx *gorm.DB) error {
		var customer ds.Customer
		if err := tx.Where("id = ?", id).First(&customer).Error; err != nil {
			return notFoundOr(err, "клиент %d не найден", id)
		}

		var orders []ds.Order
		err := tx.Where("customer_id = ? AND balance_due > 0", id).Find(&orders).Error
		if err != nil {
			return err
		}
		for _, order := range orders {
			payment := ds.Payment{
				OrderID:     order.ID,
				PaymentDate: r.engine.Now(),
				Amount:      order.BalanceDue,
				Note:        "погашение долга клиента",
				State:       ds.PaymentConfirmed,
				Method:      ds.PaymentMethodCash,
			}
			if err := r.createPaymentTx(tx, &payment); err != nil {
				return err
			}
		}
		return nil
	})
}

// CleanupCustomerZeroPayments удаляет нулевые платежи клиента.
func (r *Repository) CleanupCustomerZeroPayments(id uint) error {
	return r.inTx(func(tx *gorm.DB) error {
		var payments []ds.Payment
		err := tx.Where("customer_id = ? AND amount = 0", id).Find(&payments).Error
		if err != nil {
			return err
		}
		return r.deletePaymentsTx(tx, payments)
	})
}

// CleanupCancelledOrders каскадно удаляет отменённые заказы клиента.
func (r *Repository) CleanupCancelledOrders(id uint) error {
	return r.inTx(func(tx *gorm.DB) error {
		var orders []ds.Order
		err := tx.Where("customer_id = ? AND state = ?", id, ds.OrderCancelled).Find(&orders).Error
		if err != nil {
			return err
		}
		for _, order := range orders {
			if err := r.deleteOrderTx(tx, order.ID); err != nil {
				return err
			}
		}
		return nil
	})
}
