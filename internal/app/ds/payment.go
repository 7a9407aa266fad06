package ds

import "time"

// Статусы платежа
const (
	PaymentDraft     = "draft"
	PaymentConfirmed = "confirmed"
	PaymentCancelled = "cancelled"
)

// Способы оплаты
const (
	PaymentMethodCash = "cash"
	PaymentMethodCard = "card"
	PaymentMethodBank = "bank"
)

// 10. Таблица платежей по заказам
type Payment struct {
	ID          uint      `gorm:"primaryKey"`
	Number      string    `gorm:"type:varchar(40);not null;uniqueIndex"`
	OrderID     uint      `gorm:"not null;index"`
	PaymentDate time.Time `gorm:"not null"`
	Amount      float64   `gorm:"type:decimal(12,2);not null"`
	Note        string    `gorm:"type:text"`
	State       string    `gorm:"type:varchar(20);not null;default:'draft'"`
	Method      string    `gorm:"type:varchar(20);not null"` // cash, card, bank

	// Рассчитываемые поля (денормализация из заказа)
	CenterID             *uint   `gorm:"default:null;index"`
	CustomerID           *uint   `gorm:"default:null;index"`
	OrderTotal           float64 `gorm:"type:decimal(14,2);default:0"`
	OrderBalanceDue      float64 `gorm:"type:decimal(14,2);default:0"`
	CustomerTotalPayment float64 `gorm:"type:decimal(14,2);default:0"` // подтверждённые платежи клиента

	Order Order `gorm:"foreignKey:OrderID"`
}
