package ds

import "time"

// 3. Таблица районов
type District struct {
	ID         uint    `gorm:"primaryKey"`
	Name       string  `gorm:"type:varchar(100);not null"`
	Code       string  `gorm:"type:varchar(20);not null;uniqueIndex"`
	IsActive   bool    `gorm:"type:boolean;default:true;not null"`
	RegionID   *uint   `gorm:"default:null;index"` // при удалении региона обнуляется
	Population int64   `gorm:"type:bigint;default:0"`
	AreaKm2    float64 `gorm:"type:decimal(12,2);default:0"`
	Latitude   float64 `gorm:"type:decimal(9,6);default:0"`
	Longitude  float64 `gorm:"type:decimal(9,6);default:0"`

	// Рассчитываемые поля
	CountryID        *uint      `gorm:"default:null;index"` // выводится из региона
	CenterCount      int        `gorm:"type:int;default:0"`
	TechnicianCount  int        `gorm:"type:int;default:0"`
	ActiveOrderCount int        `gorm:"type:int;default:0"`
	DoneOrderCount   int        `gorm:"type:int;default:0"`
	TodayOrderCount  int        `gorm:"type:int;default:0"`
	TotalRevenue     float64    `gorm:"type:decimal(14,2);default:0"` // только по завершённым заказам
	AvgRating        float64    `gorm:"type:decimal(4,2);default:0"`
	LastOrderDate    *time.Time `gorm:"default:null"`

	Region *Region `gorm:"foreignKey:RegionID"`
}
