package ds

import "time"

// 2. Таблица регионов (область/провинция внутри страны)
type Region struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"type:varchar(100);not null;uniqueIndex"`
	Code      string  `gorm:"type:varchar(20);not null;uniqueIndex"`
	IsActive  bool    `gorm:"type:boolean;default:true;not null"`
	CountryID uint    `gorm:"not null;index"` // удаление страны каскадно удаляет регионы
	Population int64  `gorm:"type:bigint;default:0"`
	AreaKm2   float64 `gorm:"type:decimal(12,2);default:0"`
	Latitude  float64 `gorm:"type:decimal(9,6);default:0"`
	Longitude float64 `gorm:"type:decimal(9,6);default:0"`

	// Рассчитываемые поля
	DistrictCount    int        `gorm:"type:int;default:0"`
	CenterCount      int        `gorm:"type:int;default:0"`
	TechnicianCount  int        `gorm:"type:int;default:0"`
	ActiveOrderCount int        `gorm:"type:int;default:0"`
	DoneOrderCount   int        `gorm:"type:int;default:0"`
	TodayOrderCount  int        `gorm:"type:int;default:0"`
	TotalRevenue     float64    `gorm:"type:decimal(14,2);default:0"` // только по завершённым заказам
	AvgRating        float64    `gorm:"type:decimal(4,2);default:0"`  // только по завершённым заказам
	LastOrderDate    *time.Time `gorm:"default:null"`

	Country Country `gorm:"foreignKey:CountryID"`
}
