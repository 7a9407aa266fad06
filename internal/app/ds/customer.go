package ds

import "time"

// 6. Таблица клиентов
type Customer struct {
	ID      uint   `gorm:"primaryKey"`
	Name    string `gorm:"type:varchar(100);not null"`
	Code    string `gorm:"type:varchar(20)"`
	Phone   string `gorm:"type:varchar(30)"`
	Mobile  string `gorm:"type:varchar(30)"`
	Email   string `gorm:"type:varchar(100)"`
	Address string `gorm:"type:varchar(255)"`

	// Рассчитываемые поля
	OrderCount       int        `gorm:"type:int;default:0"`
	ActiveOrderCount int        `gorm:"type:int;default:0"`
	DoneOrderCount   int        `gorm:"type:int;default:0"`
	TodayOrderCount  int        `gorm:"type:int;default:0"`
	TotalPayment     float64    `gorm:"type:decimal(14,2);default:0"`
	BalanceDue       float64    `gorm:"type:decimal(14,2);default:0"` // долг по всем заказам
	AvgRating        float64    `gorm:"type:decimal(4,2);default:0"`
	LastOrderDate    *time.Time `gorm:"default:null"`
	LastPaymentDate  *time.Time `gorm:"default:null"`
}
