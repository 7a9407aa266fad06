package ds

// 8. Таблица строк заказа (использованные детали)
type OrderLine struct {
	ID          uint    `gorm:"primaryKey"`
	OrderID     uint    `gorm:"not null;index"` // удаляется вместе с заказом
	PartID      uint    `gorm:"not null;index"` // деталь, на которую ссылаются строки, удалить нельзя
	Description string  `gorm:"type:varchar(255)"`
	Note        string  `gorm:"type:text"`
	Quantity    int     `gorm:"type:int;default:1"`
	UnitPrice   float64 `gorm:"type:decimal(12,2);default:0"`
	SubTotal    float64 `gorm:"type:decimal(12,2);default:0"` // Рассчитываемое поле

	Order Order `gorm:"foreignKey:OrderID"`
	Part  Part  `gorm:"foreignKey:PartID"`
}
