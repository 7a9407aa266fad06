package ds

import "time"

// 1. Таблица стран (вершина географической иерархии)
type Country struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Code      string `gorm:"type:varchar(10);not null;uniqueIndex"` // ISO-код
	PhoneCode string `gorm:"type:varchar(10);uniqueIndex"`
	IsActive  bool   `gorm:"type:boolean;default:true;not null"`

	// Рассчитываемые поля (обновляются движком пересчёта)
	TechnicianCount  int        `gorm:"type:int;default:0"`
	RegionCount      int        `gorm:"type:int;default:0"`
	CenterCount      int        `gorm:"type:int;default:0"`
	ActiveOrderCount int        `gorm:"type:int;default:0"`
	DoneOrderCount   int        `gorm:"type:int;default:0"`
	TodayOrderCount  int        `gorm:"type:int;default:0"`
	TotalRevenue     float64    `gorm:"type:decimal(14,2);default:0"`
	AvgRating        float64    `gorm:"type:decimal(4,2);default:0"`
	LastOrderDate    *time.Time `gorm:"default:null"`
}
