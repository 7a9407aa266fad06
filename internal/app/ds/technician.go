package ds

import "time"

// 5. Таблица мастеров
type Technician struct {
	ID        uint       `gorm:"primaryKey"`
	Name      string     `gorm:"type:varchar(100);not null"`
	Code      string     `gorm:"type:varchar(20);not null"`
	IsActive  bool       `gorm:"type:boolean;default:true;not null"`
	CenterID  *uint      `gorm:"default:null;index"` // при удалении центра обнуляется
	Phone     string     `gorm:"type:varchar(30)"`
	Email     string     `gorm:"type:varchar(100)"`
	Specialty string     `gorm:"type:text"`
	HireDate  *time.Time `gorm:"default:null"`
	// Кол-во заказов, которое мастер способен взять за день
	CapacityPerDay int `gorm:"type:int;default:1"`

	// Рассчитываемые поля (география выводится из центра)
	CountryID        *uint `gorm:"default:null;index"`
	RegionID         *uint `gorm:"default:null;index"`
	DistrictID       *uint `gorm:"default:null;index"`
	OrderCount       int   `gorm:"type:int;default:0"`
	ActiveOrderCount int   `gorm:"type:int;default:0"` // не завершён и не отменён
	DoneOrderCount   int   `gorm:"type:int;default:0"`
	TodayOrderCount  int   `gorm:"type:int;default:0"`

	Center *Center `gorm:"foreignKey:CenterID"`
}
