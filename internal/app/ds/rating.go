package ds

import "time"

// 11. Таблица оценок по заказам (одна оценка на заказ)
type Rating struct {
	ID         uint      `gorm:"primaryKey"`
	OrderID    uint      `gorm:"not null;uniqueIndex"`
	Score      int       `gorm:"type:int;not null"` // от 1 до 5
	Comment    string    `gorm:"type:text"`
	RatingDate time.Time `gorm:"not null"`

	// Рассчитываемые поля (денормализация из заказа)
	CenterID     *uint `gorm:"default:null;index"`
	TechnicianID *uint `gorm:"default:null;index"`
	CustomerID   *uint `gorm:"default:null;index"`

	Order Order `gorm:"foreignKey:OrderID"`
}
