package engine

import (
	"gorm.io/gorm"

	"backend/internal/app/ds"
)

// Change описывает изменение, после которого нужно пересчитать агрегаты.
// Репозиторий заполняет id непосредственно затронутых записей, а для
// изменённых и удалённых ссылочных полей кладёт и старое, и новое значение
// (иначе пересчёт не дойдёт до прежнего владельца).
type Change struct {
	Entity string   // order, payment, rating, order_line, technician, center, district, region
	Fields []string // изменённые атрибуты; для create/delete — полный триггерный набор

	LineIDs       []uint
	OrderIDs      []uint
	PaymentIDs    []uint
	RatingIDs     []uint
	CenterIDs     []uint
	TechnicianIDs []uint
	CustomerIDs   []uint
	DistrictIDs   []uint
	RegionIDs     []uint
	CountryIDs    []uint
}

// Цели пересчёта. Порядок в runOrder фиксирован: сначала производные поля
// самих записей, затем зеркала, затем агрегаты владельцев снизу вверх.
type target int

const (
	targetLineSubtotal target = iota
	targetOrderTotals
	targetOrderGeo
	targetTechnicianGeo
	targetDistrictGeo
	targetOrderPayments
	targetPaymentRefs
	targetRatingRefs
	targetCenterStats
	targetTechnicianStats
	targetCustomerStats
	targetDistrictStats
	targetRegionStats
	targetCountryStats
)

var runOrder = []target{
	targetLineSubtotal,
	targetOrderTotals,
	targetOrderGeo,
	targetTechnicianGeo,
	targetDistrictGeo,
	targetOrderPayments,
	targetPaymentRefs,
	targetRatingRefs,
	targetCenterStats,
	targetTechnicianStats,
	targetCustomerStats,
	targetDistrictStats,
	targetRegionStats,
	targetCountryStats,
}

// Цепочка целей, зависящих от total_amount заказа
var orderTotalsChain = []target{
	targetLineSubtotal, targetOrderTotals, targetOrderPayments,
	targetPaymentRefs, targetCustomerStats,
	targetDistrictStats, targetRegionStats, targetCountryStats,
}

// Цели, зависящие от статуса/даты заказа
var orderSliceChain = []target{
	targetCenterStats, targetTechnicianStats, targetCustomerStats,
	targetDistrictStats, targetRegionStats, targetCountryStats,
}

// Статический граф зависимостей: путь атрибута -> цели пересчёта.
// Граф разрешается на уровне модели данных, без интроспекции во время записи.
var recomputeTriggers = map[string][]target{
	"order_line.quantity":   orderTotalsChain,
	"order_line.unit_price": orderTotalsChain,
	"order_line.order_id":   orderTotalsChain,

	"order.labor_fee":       orderTotalsChain,
	"order.discount_amount": orderTotalsChain,
	"order.state":           orderSliceChain,
	"order.order_date":      orderSliceChain,
	"order.center_id": {
		targetOrderGeo, targetPaymentRefs, targetRatingRefs,
		targetCenterStats, targetDistrictStats, targetRegionStats, targetCountryStats,
	},
	"order.customer_id":   {targetPaymentRefs, targetRatingRefs, targetCustomerStats},
	"order.technician_id": {targetRatingRefs, targetTechnicianStats},

	"payment.amount":       {targetOrderPayments, targetPaymentRefs, targetCenterStats, targetCustomerStats},
	"payment.payment_date": {targetOrderPayments, targetCustomerStats},
	"payment.state":        {targetPaymentRefs},
	"payment.order_id":     {targetOrderPayments, targetPaymentRefs, targetCenterStats, targetCustomerStats},

	"rating.score":    {targetCenterStats, targetCustomerStats, targetDistrictStats, targetRegionStats, targetCountryStats},
	"rating.order_id": {targetRatingRefs, targetCenterStats, targetCustomerStats, targetDistrictStats, targetRegionStats, targetCountryStats},

	"technician.center_id": {targetTechnicianGeo, targetCenterStats, targetTechnicianStats, targetDistrictStats, targetRegionStats, targetCountryStats},

	"center.country_id":       {targetOrderGeo, targetTechnicianGeo, targetDistrictStats, targetRegionStats, targetCountryStats},
	"center.region_id":        {targetOrderGeo, targetTechnicianGeo, targetDistrictStats, targetRegionStats, targetCountryStats},
	"center.district_id":      {targetOrderGeo, targetTechnicianGeo, targetDistrictStats, targetRegionStats, targetCountryStats},
	"center.capacity_per_day": {targetCenterStats},

	"district.region_id": {targetDistrictGeo, targetRegionStats},

	"region.country_id": {targetCountryStats},
}

// Полные триггерные наборы для create/delete записи
var entityTriggerFields = map[string][]string{
	"order_line": {"quantity", "unit_price", "order_id"},
	"order":      {"labor_fee", "discount_amount", "state", "order_date", "center_id", "customer_id", "technician_id"},
	"payment":    {"amount", "payment_date", "state", "order_id"},
	"rating":     {"score", "order_id"},
	"technician": {"center_id"},
	"center":     {"country_id", "region_id", "district_id", "capacity_per_day"},
	"district":   {"region_id"},
	"region":     {"country_id"},
}

// AllTriggerFields возвращает триггерный набор сущности (для create/delete).
func AllTriggerFields(entity string) []string {
	return entityTriggerFields[entity]
}

// React пересчитывает все производные поля, чьи зависимости затронуло
// изменение. Пересчёт — полная повторная агрегация по актуальным данным,
// выполняется в той же транзакции.
func (e *Engine) React(tx *gorm.DB, ch Change) error {
	set := make(map[target]bool)
	for _, f := range ch.Fields {
		for _, t := range recomputeTriggers[ch.Entity+"."+f] {
			set[t] = true
		}
	}
	if len(set) == 0 {
		return nil
	}

	sc, err := e.expandScope(tx, ch)
	if err != nil {
		return err
	}

	for _, t := range runOrder {
		if !set[t] {
			continue
		}
		if err := e.runTarget(tx, t, sc); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) runTarget(tx *gorm.DB, t target, sc *scope) error {
	switch t {
	case targetLineSubtotal:
		return e.recomputeLineSubtotals(tx, sc.lineIDs)
	case targetOrderTotals:
		return e.recomputeOrderTotals(tx, sc.orderIDs)
	case targetOrderGeo:
		return e.recomputeOrderGeo(tx, sc.orderIDs)
	case targetTechnicianGeo:
		return e.recomputeTechnicianGeo(tx, sc.technicianIDs)
	case targetDistrictGeo:
		return e.recomputeDistrictGeo(tx, sc.districtIDs)
	case targetOrderPayments:
		return e.recomputeOrderPayments(tx, sc.orderIDs)
	case targetPaymentRefs:
		return e.recomputePaymentRefs(tx, sc.orderIDs, sc.customerIDs)
	case targetRatingRefs:
		return e.recomputeRatingRefs(tx, sc.orderIDs)
	case targetCenterStats:
		return e.recomputeCenterStats(tx, sc.centerIDs)
	case targetTechnicianStats:
		return e.recomputeTechnicianStats(tx, sc.technicianIDs)
	case targetCustomerStats:
		return e.recomputeCustomerStats(tx, sc.customerIDs)
	case targetDistrictStats:
		return e.recomputeDistrictStats(tx, sc.districtIDs)
	case targetRegionStats:
		return e.recomputeRegionStats(tx, sc.regionIDs)
	case targetCountryStats:
		return e.recomputeCountryStats(tx, sc.countryIDs)
	}
	return nil
}

// Затронутые записи после обхода графа связей
type scope struct {
	lineIDs       []uint
	orderIDs      []uint
	centerIDs     []uint
	technicianIDs []uint
	customerIDs   []uint
	districtIDs   []uint
	regionIDs     []uint
	countryIDs    []uint
}

// expandScope разворачивает исходное изменение вверх по графу связей:
// платежи/оценки/строки -> заказы -> центр/клиент/мастер -> район/регион/страна.
// Для изменений самого центра дополнительно захватываются его заказы и мастера
// (их денормализованная география зависит от центра).
func (e *Engine) expandScope(tx *gorm.DB, ch Change) (*scope, error) {
	sc := &scope{
		lineIDs:       append([]uint{}, ch.LineIDs...),
		orderIDs:      append([]uint{}, ch.OrderIDs...),
		centerIDs:     append([]uint{}, ch.CenterIDs...),
		technicianIDs: append([]uint{}, ch.TechnicianIDs...),
		customerIDs:   append([]uint{}, ch.CustomerIDs...),
		districtIDs:   append([]uint{}, ch.DistrictIDs...),
		regionIDs:     append([]uint{}, ch.RegionIDs...),
		countryIDs:    append([]uint{}, ch.CountryIDs...),
	}

	// Строки, платежи и оценки приводят к своим заказам
	if len(ch.LineIDs) > 0 {
		var lines []ds.OrderLine
		if err := tx.Where("id IN ?", ch.LineIDs).Find(&lines).Error; err != nil {
			return nil, err
		}
		for _, l := range lines {
			sc.orderIDs = append(sc.orderIDs, l.OrderID)
		}
	}
	if len(ch.PaymentIDs) > 0 {
		var payments []ds.Payment
		if err := tx.Where("id IN ?", ch.PaymentIDs).Find(&payments).Error; err != nil {
			return nil, err
		}
		for _, p := range payments {
			sc.orderIDs = append(sc.orderIDs, p.OrderID)
		}
	}
	if len(ch.RatingIDs) > 0 {
		var ratings []ds.Rating
		if err := tx.Where("id IN ?", ch.RatingIDs).Find(&ratings).Error; err != nil {
			return nil, err
		}
		for _, r := range ratings {
			sc.orderIDs = append(sc.orderIDs, r.OrderID)
		}
	}

	// Изменение центра затрагивает денормализованную географию его заказов и мастеров
	if ch.Entity == "center" && len(ch.CenterIDs) > 0 {
		var orders []ds.Order
		if err := tx.Where("center_id IN ?", ch.CenterIDs).Find(&orders).Error; err != nil {
			return nil, err
		}
		for _, o := range orders {
			sc.orderIDs = append(sc.orderIDs, o.ID)
		}
		var techs []ds.Technician
		if err := tx.Where("center_id IN ?", ch.CenterIDs).Find(&techs).Error; err != nil {
			return nil, err
		}
		for _, t := range techs {
			sc.technicianIDs = append(sc.technicianIDs, t.ID)
		}
	}

	// Заказы приводят к владельцам агрегатов
	sc.orderIDs = uniq(sc.orderIDs)
	if len(sc.orderIDs) > 0 {
		var orders []ds.Order
		if err := tx.Where("id IN ?", sc.orderIDs).Find(&orders).Error; err != nil {
			return nil, err
		}
		for _, o := range orders {
			sc.centerIDs = append(sc.centerIDs, o.CenterID)
			sc.customerIDs = append(sc.customerIDs, o.CustomerID)
			if o.TechnicianID != nil {
				sc.technicianIDs = append(sc.technicianIDs, *o.TechnicianID)
			}
			if o.DistrictID != nil {
				sc.districtIDs = append(sc.districtIDs, *o.DistrictID)
			}
			if o.RegionID != nil {
				sc.regionIDs = append(sc.regionIDs, *o.RegionID)
			}
			if o.CountryID != nil {
				sc.countryIDs = append(sc.countryIDs, *o.CountryID)
			}
		}
	}

	// Центры приводят к своей географии
	sc.centerIDs = uniq(sc.centerIDs)
	if len(sc.centerIDs) > 0 {
		var centers []ds.Center
		if err := tx.Where("id IN ?", sc.centerIDs).Find(&centers).Error; err != nil {
			return nil, err
		}
		for _, c := range centers {
			if c.DistrictID != nil {
				sc.districtIDs = append(sc.districtIDs, *c.DistrictID)
			}
			if c.RegionID != nil {
				sc.regionIDs = append(sc.regionIDs, *c.RegionID)
			}
			if c.CountryID != nil {
				sc.countryIDs = append(sc.countryIDs, *c.CountryID)
			}
		}
	}

	// Районы приводят к региону и стране
	sc.districtIDs = uniq(sc.districtIDs)
	if len(sc.districtIDs) > 0 {
		var districts []ds.District
		if err := tx.Where("id IN ?", sc.districtIDs).Find(&districts).Error; err != nil {
			return nil, err
		}
		for _, d := range districts {
			if d.RegionID != nil {
				sc.regionIDs = append(sc.regionIDs, *d.RegionID)
			}
			if d.CountryID != nil {
				sc.countryIDs = append(sc.countryIDs, *d.CountryID)
			}
		}
	}

	// Регионы приводят к стране
	sc.regionIDs = uniq(sc.regionIDs)
	if len(sc.regionIDs) > 0 {
		var regions []ds.Region
		if err := tx.Where("id IN ?", sc.regionIDs).Find(&regions).Error; err != nil {
			return nil, err
		}
		for _, r := range regions {
			sc.countryIDs = append(sc.countryIDs, r.CountryID)
		}
	}

	sc.lineIDs = uniq(sc.lineIDs)
	sc.technicianIDs = uniq(sc.technicianIDs)
	sc.customerIDs = uniq(sc.customerIDs)
	sc.countryIDs = uniq(sc.countryIDs)
	return sc, nil
}
