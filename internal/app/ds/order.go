package ds

import "time"

// Статусы заказа
const (
	OrderDraft      = "draft"
	OrderReceived   = "received"
	OrderDiagnosed  = "diagnosed"
	OrderInProgress = "in_progress"
	OrderDone       = "done"
	OrderCancelled  = "cancelled"
)

// 7. Таблица заказов на ремонт
type Order struct {
	ID           uint      `gorm:"primaryKey"`
	Number       string    `gorm:"type:varchar(30);not null;uniqueIndex"`
	CenterID     uint      `gorm:"not null;index"` // центр с заказами удалить нельзя
	CustomerID   uint      `gorm:"not null;index"` // клиента с заказами удалить нельзя
	TechnicianID *uint     `gorm:"default:null;index"`
	OrderDate    time.Time `gorm:"not null"`
	State        string    `gorm:"type:varchar(20);not null;default:'draft'"`
	Description  string    `gorm:"type:text"`
	LaborFee     float64   `gorm:"type:decimal(12,2);default:0"`
	DiscountAmount float64 `gorm:"type:decimal(12,2);default:0"`
	IsWarranty   bool      `gorm:"type:boolean;default:false;not null"`
	WarrantyDays int       `gorm:"type:int;default:0"`

	// Рассчитываемые поля
	TotalAmount     float64    `gorm:"type:decimal(14,2);default:0"` // строки + работа - скидка
	PaymentTotal    float64    `gorm:"type:decimal(14,2);default:0"`
	BalanceDue      float64    `gorm:"type:decimal(14,2);default:0"`
	LastPaymentDate *time.Time `gorm:"default:null"`
	// География, выведенная из центра
	CountryID  *uint `gorm:"default:null;index"`
	RegionID   *uint `gorm:"default:null;index"`
	DistrictID *uint `gorm:"default:null;index"`

	Center     Center      `gorm:"foreignKey:CenterID"`
	Customer   Customer    `gorm:"foreignKey:CustomerID"`
	Technician *Technician `gorm:"foreignKey:TechnicianID"`
}
