package ds

// 9. Справочник деталей
type Part struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"type:varchar(100);not null"`
	Code        string `gorm:"type:varchar(20);not null;uniqueIndex"`
	IsActive    bool   `gorm:"type:boolean;default:true;not null"`
	Description string `gorm:"type:text"`
}
