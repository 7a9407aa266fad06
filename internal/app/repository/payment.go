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

// Методы для работы с платежами

func (r *Repository) GetPaymentByID(id uint) (*ds.Payment, error) {
	var payment ds.Payment
	err := r.db.Where("id = ?", id).First(&payment).Error
	if err != nil {
		return nil, notFoundOr(err, "платёж %d не найден", id)
	}
	return &payment, nil
}

func (r *Repository) GetPaymentsByOrder(orderID uint) ([]ds.Payment, error) {
	var payments []ds.Payment
	err := r.db.Where("order_id = ?", orderID).Order("payment_date, id").Find(&payments).Error
	return payments, err
}

func (r *Repository) CreatePayment(payment ds.Payment) (*ds.Payment, error) {
	err := r.inTx(func(tx *gorm.DB) error {
		return r.createPaymentTx(tx, &payment)
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// createPaymentTx создаёт платёж внутри уже открытой транзакции
// (используется и погашением долга клиента).
func (r *Repository) createPaymentTx(tx *gorm.DB, payment *ds.Payment) error {
	var count int64
	if err := tx.Model(&ds.Order{}).Where("id = ?", payment.OrderID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperr.NotFound("заказ %d не найден", payment.OrderID)
	}

	if payment.Number == "" {
		payment.Number = "PAY-" + strings.ToUpper(uuid.NewString()[:8])
	}
	if payment.PaymentDate.IsZero() {
		payment.PaymentDate = r.engine.Now()
	}
	if payment.State == "" {
		payment.State = ds.PaymentDraft
	}
	if payment.Method == "" {
		payment.Method = ds.PaymentMethodCash
	}

	if err := tx.Create(payment).Error; err != nil {
		return wrapWriteErr(err, "номер платежа должен быть уникальным")
	}
	err := r.engine.React(tx, engine.Change{
		Entity:     "payment",
		Fields:     engine.AllTriggerFields("payment"),
		PaymentIDs: []uint{payment.ID},
		OrderIDs:   []uint{payment.OrderID},
	})
	if err != nil {
		return err
	}
	if err := tx.Where("id = ?", payment.ID).First(payment).Error; err != nil {
		return err
	}
	return r.engine.ValidatePayment(tx, payment)
}

type PaymentUpdate struct {
	Number      *string
	Amount      *float64
	PaymentDate *time.Time
	Note        *string
	Method      *string
}

func (r *Repository) UpdatePayment(id uint, upd PaymentUpdate) (*ds.Payment, error) {
	var payment ds.Payment
	err := r.inTx(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&payment).Error; err != nil {
			return notFoundOr(err, "платёж %d не найден", id)
		}

		change := engine.Change{
			Entity:     "payment",
			PaymentIDs: []uint{id},
			OrderIDs:   []uint{payment.OrderID},
		}
		updates := map[string]interface{}{}
		if upd.Number != nil {
			updates["number"] = *upd.Number
		}
		if upd.Amount != nil {
			updates["amount"] = *upd.Amount
			change.Fields = append(change.Fields, "amount")
		}
		if upd.PaymentDate != nil {
			updates["payment_date"] = *upd.PaymentDate
			change.Fields = append(change.Fields, "payment_date")
		}
		if upd.Note != nil {
			updates["note"] = *upd.Note
		}
		if upd.Method != nil {
			updates["method"] = *upd.Method
		}
		if len(updates) == 0 {
			return nil
		}

		err := tx.Model(&ds.Payment{}).Where("id = ?", id).Updates(updates).Error
		if err != nil {
			return wrapWriteErr(err, "номер платежа должен быть уникальным")
		}
		if err := r.engine.React(tx, change); err != nil {
			return err
		}
		if err := tx.Where("id = ?", id).First(&payment).Error; err != nil {
			return err
		}
		return r.engine.ValidatePayment(tx, &payment)
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *Repository) DeletePayment(id uint) error {
	return r.inTx(func(tx *gorm.DB) error {
		var payment ds.Payment
		if err := tx.Where("id = ?", id).First(&payment).Error; err != nil {
			return notFoundOr(err, "платёж %d не найден", id)
		}
		return r.deletePaymentsTx(tx, []ds.Payment{payment})
	})
}

// deletePaymentsTx удаляет платежи и пересчитывает агрегаты их заказов.
func (r *Repository) deletePaymentsTx(tx *gorm.DB, payments []ds.Payment) error {
	if len(payments) == 0 {
		return nil
	}
	paymentIDs := make([]uint, 0, len(payments))
	orderIDs := make([]uint, 0, len(payments))
	for _, p := range payments {
		paymentIDs = append(paymentIDs, p.ID)
		orderIDs = append(orderIDs, p.OrderID)
	}
	if err := tx.Where("id IN ?", paymentIDs).Delete(&ds.Payment{}).Error; err != nil {
		return err
	}
	return r.engine.React(tx, engine.Change{
		Entity:   "payment",
		Fields:   engine.AllTriggerFields("payment"),
		OrderIDs: orderIDs,
	})
}

// Действия над платежом

func (r *Repository) ConfirmPayment(id uint) error {
	return r.paymentAction(id, r.engine.ConfirmPayment)
}

func (r *Repository) CancelPayment(id uint) error {
	return r.paymentAction(id, r.engine.CancelPayment)
}

func (r *Repository) ResetPayment(id uint) error {
	return r.paymentAction(id, r.engine.ResetPayment)
}

func (r *Repository) paymentAction(id uint, action func(*gorm.DB, uint) error) error {
	return r.inTx(func(tx *gorm.DB) error {
		var payment ds.Payment
		if err := tx.Where("id = ?", id).First(&payment).Error; err != nil {
			return notFoundOr(err, "платёж %d не найден", id)
		}
		if err := action(tx, id); err != nil {
			return err
		}
		if err := tx.Where("id = ?", id).First(&payment).Error; err != nil {
			return err
		}
		return r.engine.ValidatePayment(tx, &payment)
	})
}
