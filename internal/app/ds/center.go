package ds

import "time"

// 4. Таблица сервисных центров
type Center struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"type:varchar(100);not null;uniqueIndex"`
	Code        string  `gorm:"type:varchar(20);not null;uniqueIndex"`
	IsActive    bool    `gorm:"type:boolean;default:true;not null"`
	CountryID   *uint   `gorm:"default:null;index"`
	RegionID    *uint   `gorm:"default:null;index"`
	DistrictID  *uint   `gorm:"default:null;index"`
	Address     string  `gorm:"type:varchar(255)"`
	Latitude    float64 `gorm:"type:decimal(9,6);default:0"`
	Longitude   float64 `gorm:"type:decimal(9,6);default:0"`
	Phone       string  `gorm:"type:varchar(30)"`
	Email       string  `gorm:"type:varchar(100)"`
	ManagerName string  `gorm:"type:varchar(100)"`
	// Кол-во заказов, которое центр способен принять за день
	CapacityPerDay int     `gorm:"type:int;default:0"`
	PhotoURL       *string `gorm:"type:varchar(255)"` // имя файла в MinIO

	// Рассчитываемые поля
	TechnicianCount  int        `gorm:"type:int;default:0"`
	ActiveOrderCount int        `gorm:"type:int;default:0"` // заказы в работе
	DoneOrderCount   int        `gorm:"type:int;default:0"`
	TodayOrderCount  int        `gorm:"type:int;default:0"`
	TotalRevenue     float64    `gorm:"type:decimal(14,2);default:0"` // сумма всех платежей центра
	AvgRating        float64    `gorm:"type:decimal(4,2);default:0"`
	UtilizationRate  float64    `gorm:"type:decimal(6,2);default:0"` // загрузка в процентах
	LastOrderDate    *time.Time `gorm:"default:null"`

	Country  *Country  `gorm:"foreignKey:CountryID"`
	Region   *Region   `gorm:"foreignKey:RegionID"`
	District *District `gorm:"foreignKey:DistrictID"`
}
